package kiln

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// ScaleGizmo scales the selection per axis or uniformly. Ten grabbers:
// two per axis on the bounding box face midpoints (ids 0-5) and four
// uniform handles on the box corners (ids 6-9).
type ScaleGizmo struct {
	gizmoBase

	scale mgl64.Vec3

	startingScale        mgl64.Vec3
	startingDragPosition mgl64.Vec3
	startingBoxCenter    mgl64.Vec3

	box           geom.Box3
	referenceSize float64
}

func NewScaleGizmo(settings *Settings, log Logger) *ScaleGizmo {
	g := &ScaleGizmo{
		gizmoBase: newGizmoBase("scale", 0, 10, settings, log),
		scale:     mgl64.Vec3{1, 1, 1},
	}
	for i := 0; i < 6; i++ {
		g.grabbers[i].Color = AxesColors[i/2]
	}
	for i := 6; i < 10; i++ {
		g.grabbers[i].Color = ColorBase
	}
	return g
}

// Scale is the accumulated scale factors; the host reads them to commit
// and calls SetScale to seed the gizmo from the selection's current
// scale on activation.
func (g *ScaleGizmo) Scale() mgl64.Vec3     { return g.scale }
func (g *ScaleGizmo) SetScale(s mgl64.Vec3) { g.scale = s }

func (g *ScaleGizmo) IsActivable(sel *Selection) bool {
	return sel.IsSingleFullInstance() || sel.IsSingleVolume()
}

func (g *ScaleGizmo) StartDragging(sel *Selection) {
	if !g.startDragging() {
		return
	}
	if g.hoverID >= 0 && g.hoverID < len(g.grabbers) {
		g.startingDragPosition = g.grabbers[g.hoverID].Center
	}
	g.startingBoxCenter = sel.BoundingBox().Center()
	g.startingScale = g.scale
}

func (g *ScaleGizmo) StopDragging() {
	g.stopDragging()
}

func (g *ScaleGizmo) Update(data UpdateData) {
	switch {
	case g.hoverID == 0 || g.hoverID == 1:
		g.scaleAlongAxis(0, data)
	case g.hoverID == 2 || g.hoverID == 3:
		g.scaleAlongAxis(1, data)
	case g.hoverID == 4 || g.hoverID == 5:
		g.scaleAlongAxis(2, data)
	case g.hoverID >= 6 && g.hoverID <= 9:
		g.scaleUniform(data)
	}
}

func (g *ScaleGizmo) scaleAlongAxis(axis int, data UpdateData) {
	if ratio := g.calcRatio(data); ratio > 0 {
		g.scale[axis] = g.startingScale[axis] * ratio
	}
}

func (g *ScaleGizmo) scaleUniform(data UpdateData) {
	if ratio := g.calcRatio(data); ratio > 0 {
		g.scale = g.startingScale.Mul(ratio)
	}
}

// calcRatio shares Move's view-plane projection but expresses the result
// relative to the starting handle distance. Ratios that would collapse or
// invert the mesh report as 0 and the caller retains the previous scale.
func (g *ScaleGizmo) calcRatio(data UpdateData) float64 {
	startingVec := g.startingDragPosition.Sub(g.startingBoxCenter)
	lenStarting := startingVec.Len()
	if lenStarting == 0 {
		return 0
	}
	mousePos := geom.ProjectToViewPlane(data.MouseRay, g.startingDragPosition)
	projection := mousePos.Sub(g.startingDragPosition).Dot(startingVec.Mul(1.0 / lenStarting))
	ratio := (lenStarting + projection) / lenStarting
	if data.ShiftDown {
		ratio = geom.SnapToStep(ratio, g.settings.Scale.SnapStep)
	}
	return ratio
}

func (g *ScaleGizmo) RecomputeLayout(sel *Selection) {
	g.box = sel.BoundingBox()
	g.referenceSize = g.box.MaxSize()
	c := g.box.Center()
	offset := g.settings.Scale.Offset

	// face midpoints
	g.grabbers[0].Center = mgl64.Vec3{g.box.Min.X() - offset, c.Y(), c.Z()}
	g.grabbers[1].Center = mgl64.Vec3{g.box.Max.X() + offset, c.Y(), c.Z()}
	g.grabbers[2].Center = mgl64.Vec3{c.X(), g.box.Min.Y() - offset, c.Z()}
	g.grabbers[3].Center = mgl64.Vec3{c.X(), g.box.Max.Y() + offset, c.Z()}
	g.grabbers[4].Center = mgl64.Vec3{c.X(), c.Y(), g.box.Min.Z() - offset}
	g.grabbers[5].Center = mgl64.Vec3{c.X(), c.Y(), g.box.Max.Z() + offset}
	// uniform corners, in the horizontal mid-plane
	g.grabbers[6].Center = mgl64.Vec3{g.box.Min.X() - offset, g.box.Min.Y() - offset, c.Z()}
	g.grabbers[7].Center = mgl64.Vec3{g.box.Max.X() + offset, g.box.Min.Y() - offset, c.Z()}
	g.grabbers[8].Center = mgl64.Vec3{g.box.Max.X() + offset, g.box.Max.Y() + offset, c.Z()}
	g.grabbers[9].Center = mgl64.Vec3{g.box.Min.X() - offset, g.box.Max.Y() + offset, c.Z()}
}

func (g *ScaleGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	// axis connectors between the paired face grabbers
	for axis := 0; axis < 3; axis++ {
		a, b := 2*axis, 2*axis+1
		if g.grabbers[a].Enabled && g.grabbers[b].Enabled {
			dl.AddLine(g.grabbers[a].Center, g.grabbers[b].Center, AxesColors[axis])
		}
	}
	// uniform frame connecting the corners
	for i := 6; i < 10; i++ {
		j := 6 + (i-6+1)%4
		if g.grabbers[i].Enabled && g.grabbers[j].Enabled {
			dl.AddLine(g.grabbers[i].Center, g.grabbers[j].Center, ColorBase)
		}
	}
	for i := range g.grabbers {
		if !g.grabbers[i].Enabled {
			continue
		}
		base := ColorBase
		if i < 6 {
			base = AxesColors[i/2]
		}
		gr := g.grabbers[i]
		gr.Color = g.grabberColor(i, base)
		gr.Draw(dl, g.referenceSize, g.settings.Grabber)
	}
}

func (g *ScaleGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	for i := range g.grabbers {
		g.grabbers[i].DrawForPicking(dl, g.referenceSize, g.settings.Grabber, g.group, i)
	}
}
