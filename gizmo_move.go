package kiln

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// MoveGizmo translates the selection along one world axis at a time. One
// grabber per axis, pushed out past the bounding box face.
type MoveGizmo struct {
	gizmoBase

	displacement mgl64.Vec3

	startingDragPosition    mgl64.Vec3
	startingBoxCenter       mgl64.Vec3
	startingBoxBottomCenter mgl64.Vec3

	center        mgl64.Vec3
	referenceSize float64
}

func NewMoveGizmo(settings *Settings, log Logger) *MoveGizmo {
	g := &MoveGizmo{
		gizmoBase: newGizmoBase("move", 0, 3, settings, log),
	}
	for i := range g.grabbers {
		g.grabbers[i].Color = AxesColors[i]
	}
	return g
}

// Displacement is the accumulated drag offset, read by the host when it
// commits the move.
func (g *MoveGizmo) Displacement() mgl64.Vec3 { return g.displacement }

func (g *MoveGizmo) IsActivable(sel *Selection) bool {
	return !sel.IsEmpty()
}

func (g *MoveGizmo) StartDragging(sel *Selection) {
	if !g.startDragging() {
		return
	}
	g.displacement = mgl64.Vec3{}
	if g.hoverID >= 0 && g.hoverID < len(g.grabbers) {
		g.startingDragPosition = g.grabbers[g.hoverID].Center
	}
	box := sel.BoundingBox()
	g.startingBoxCenter = box.Center()
	g.startingBoxBottomCenter = mgl64.Vec3{g.startingBoxCenter.X(), g.startingBoxCenter.Y(), box.Min.Z()}
}

func (g *MoveGizmo) StopDragging() {
	g.stopDragging()
	g.displacement = mgl64.Vec3{}
}

func (g *MoveGizmo) Update(data UpdateData) {
	if g.hoverID < 0 || g.hoverID > 2 {
		return
	}
	g.displacement[g.hoverID] = g.projectOnAxis(data)
}

// projectOnAxis intersects the mouse ray with the view-aligned plane
// through the drag's starting handle position and projects the result
// onto the starting axis direction. A zero starting vector leaves the
// displacement at zero.
func (g *MoveGizmo) projectOnAxis(data UpdateData) float64 {
	startingVec := g.startingDragPosition.Sub(g.startingBoxCenter)
	lenStarting := startingVec.Len()
	if lenStarting == 0 {
		return 0
	}
	mousePos := geom.ProjectToViewPlane(data.MouseRay, g.startingDragPosition)
	projection := mousePos.Sub(g.startingDragPosition).Dot(startingVec.Mul(1.0 / lenStarting))
	if data.ShiftDown {
		projection = geom.SnapToStep(projection, g.settings.Move.SnapStep)
	}
	return projection
}

func (g *MoveGizmo) RecomputeLayout(sel *Selection) {
	box := sel.BoundingBox()
	g.center = box.Center()
	g.referenceSize = box.MaxSize()
	offset := g.settings.Move.Offset

	g.grabbers[0].Center = mgl64.Vec3{box.Max.X() + offset, g.center.Y(), g.center.Z()}
	g.grabbers[1].Center = mgl64.Vec3{g.center.X(), box.Max.Y() + offset, g.center.Z()}
	g.grabbers[2].Center = mgl64.Vec3{g.center.X(), g.center.Y(), box.Max.Z() + offset}
}

func (g *MoveGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	// elevation guide while the z handle is being dragged
	if g.IsDragging() && g.hoverID == 2 {
		dl.AddLine(g.startingBoxBottomCenter.Add(g.displacement),
			g.grabbers[2].Center, AxesColors[2])
	}
	for i := range g.grabbers {
		if !g.grabbers[i].Enabled {
			continue
		}
		color := g.grabberColor(i, AxesColors[i])
		dl.AddLine(g.center, g.grabbers[i].Center, color)
		gr := g.grabbers[i]
		gr.Color = color
		gr.Draw(dl, g.referenceSize, g.settings.Grabber)
	}
}

func (g *MoveGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	for i := range g.grabbers {
		g.grabbers[i].DrawForPicking(dl, g.referenceSize, g.settings.Grabber, g.group, i)
	}
}
