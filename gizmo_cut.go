package kiln

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// CutFunc performs the actual mesh split, owned by the host. The gizmo
// only chooses the plane height and the keep/rotate options.
type CutFunc func(z float64, keepUpper, keepLower, rotateLower bool)

// CutGizmo positions a horizontal cutting plane over the selection. One
// grabber rides above the plane; dragging moves the plane vertically,
// clamped to the selection's height range.
type CutGizmo struct {
	gizmoBase

	cutZ float64
	maxZ float64

	startingZ            float64
	startingDragPosition mgl64.Vec3

	box           geom.Box3
	referenceSize float64
	resetPending  bool

	// Cut is invoked by PerformCut; nil means cutting is unavailable.
	Cut CutFunc
	// OnChange, when set, is called after a committed cut so the host
	// can schedule dependent recomputes.
	OnChange func()
}

func NewCutGizmo(settings *Settings, log Logger) *CutGizmo {
	g := &CutGizmo{
		gizmoBase: newGizmoBase("cut", 0, 1, settings, log),
	}
	g.grabbers[0].Color = ColorBase
	return g
}

func (g *CutGizmo) CutZ() float64 { return g.cutZ }

// SetCutZ clamps the requested plane height into the selection's range.
func (g *CutGizmo) SetCutZ(z float64) {
	g.cutZ = geom.Clamp(z, 0, g.maxZ)
}

func (g *CutGizmo) IsActivable(sel *Selection) bool {
	return !sel.IsEmpty()
}

// SetState re-arms the plane reset so each activation starts the plane
// at mid-height instead of wherever the last session left it.
func (g *CutGizmo) SetState(state GizmoState) {
	if state == StateOn && g.state != StateOn {
		g.resetPending = true
	}
	g.gizmoBase.SetState(state)
}

func (g *CutGizmo) StartDragging(sel *Selection) {
	if !g.startDragging() {
		return
	}
	g.startingZ = g.cutZ
	g.startingDragPosition = g.grabbers[0].Center
}

func (g *CutGizmo) StopDragging() {
	g.stopDragging()
}

func (g *CutGizmo) Update(data UpdateData) {
	if g.hoverID != 0 {
		return
	}
	mousePos := geom.ProjectToViewPlane(data.MouseRay, g.startingDragPosition)
	projection := mousePos.Sub(g.startingDragPosition).Dot(mgl64.Vec3{0, 0, 1})
	if data.ShiftDown {
		projection = geom.SnapToStep(projection, g.settings.Move.SnapStep)
	}
	g.SetCutZ(g.startingZ + projection)
}

func (g *CutGizmo) RecomputeLayout(sel *Selection) {
	g.box = sel.BoundingBox()
	g.referenceSize = g.box.MaxSize()
	g.maxZ = g.box.Max.Z()
	if g.resetPending {
		g.cutZ = 0.5 * g.maxZ
		g.resetPending = false
	}
	g.SetCutZ(g.cutZ)
	c := g.box.Center()
	g.grabbers[0].Center = mgl64.Vec3{c.X(), c.Y(), g.cutZ + g.settings.Cut.Offset}
}

func (g *CutGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	margin := g.settings.Cut.Margin
	min := mgl64.Vec2{g.box.Min.X() - margin, g.box.Min.Y() - margin}
	max := mgl64.Vec2{g.box.Max.X() + margin, g.box.Max.Y() + margin}
	dl.AddQuad(min, max, g.cutZ, [3]float32{0.8, 0.8, 0.8}, true)

	color := g.grabberColor(0, ColorBase)
	c := g.box.Center()
	dl.AddLine(mgl64.Vec3{c.X(), c.Y(), g.cutZ}, g.grabbers[0].Center, ColorDragging)
	gr := g.grabbers[0]
	gr.Color = color
	gr.Draw(dl, g.referenceSize, g.settings.Grabber)
}

func (g *CutGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	g.grabbers[0].DrawForPicking(dl, g.referenceSize, g.settings.Grabber, g.group, 0)
}

// PerformCut commits the plane to the host's splitter. The gizmo never
// splits meshes itself.
func (g *CutGizmo) PerformCut(keepUpper, keepLower, rotateLower bool) {
	if g.Cut == nil {
		g.log.Warnf("cut: no splitter installed, ignoring cut at z=%.3f", g.cutZ)
		return
	}
	g.log.Infof("cut: committing plane at z=%.3f (upper=%v lower=%v rotate=%v)",
		g.cutZ, keepUpper, keepLower, rotateLower)
	g.Cut(g.cutZ, keepUpper, keepLower, rotateLower)
	if g.OnChange != nil {
		g.OnChange()
	}
}
