package kiln

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// RotateGizmo rotates the selection around one fixed world axis. A single
// grabber orbits a circle around the selection; the drag angle snaps in
// two concentric bands (coarse eighths inside the circle, fine 5-degree
// teeth just outside it) and is raw everywhere else.
type RotateGizmo struct {
	gizmoBase

	axis  int
	angle float64

	center        mgl64.Vec3
	radius        float64
	referenceSize float64
}

func NewRotateGizmo(axis int, settings *Settings, log Logger) *RotateGizmo {
	g := &RotateGizmo{
		gizmoBase: newGizmoBase("rotate", axis, 1, settings, log),
		axis:      axis,
	}
	g.grabbers[0].Color = AxesColors[axis]
	return g
}

// Angle is the accumulated rotation in radians, in [0, 2*pi).
func (g *RotateGizmo) Angle() float64     { return g.angle }
func (g *RotateGizmo) SetAngle(a float64) { g.angle = geom.NormalizeAngle(a) }

func (g *RotateGizmo) IsActivable(sel *Selection) bool {
	return !sel.IsEmpty()
}

// axisFrame returns the plane normal and the two in-plane unit vectors
// spanning the rotation circle, with u marking angle zero.
func (g *RotateGizmo) axisFrame() (n, u, v mgl64.Vec3) {
	switch g.axis {
	case 0:
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}
	case 1:
		return mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}
	default:
		return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}
	}
}

func (g *RotateGizmo) StartDragging(sel *Selection) {
	if !g.startDragging() {
		return
	}
	box := sel.BoundingBox()
	g.center = box.Center()
	g.radius = g.settings.Rotate.Offset + box.Radius()
}

func (g *RotateGizmo) StopDragging() {
	g.stopDragging()
}

func (g *RotateGizmo) Update(data UpdateData) {
	if g.hoverID != 0 {
		return
	}
	n, u, v := g.axisFrame()
	p, ok := geom.IntersectPlane(data.MouseRay, g.center, n)
	if !ok {
		return
	}
	d := p.Sub(g.center)
	len := d.Len()
	if len == 0 {
		return
	}
	theta := math.Atan2(d.Dot(v), d.Dot(u))
	if theta < 0 {
		theta += 2.0 * math.Pi
	}

	rc := g.settings.Rotate
	switch {
	case len >= g.radius/3.0 && len <= 2.0*g.radius/3.0:
		theta = geom.SnapToStep(theta, 2.0*math.Pi/float64(rc.SnapRegions))
	case len >= g.radius && len <= g.radius*(1.0+rc.LongTooth):
		theta = geom.SnapToStep(theta, 2.0*math.Pi/float64(rc.ScaleSteps))
	}
	g.angle = geom.NormalizeAngle(theta)
}

func (g *RotateGizmo) RecomputeLayout(sel *Selection) {
	// Keep center and radius fixed during a drag so the angle stays
	// measured against the session's starting circle.
	if !g.IsDragging() {
		box := sel.BoundingBox()
		g.center = box.Center()
		g.radius = g.settings.Rotate.Offset + box.Radius()
		g.referenceSize = box.MaxSize()
	}
	_, u, v := g.axisFrame()
	r := g.radius * (1.0 + g.settings.Rotate.GrabberOffset)
	g.grabbers[0].Center = g.center.
		Add(u.Mul(r * math.Cos(g.angle))).
		Add(v.Mul(r * math.Sin(g.angle)))
	g.grabbers[0].Orientation = mgl64.Vec3{}
}

func (g *RotateGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	_, u, v := g.axisFrame()
	color := g.grabberColor(0, AxesColors[g.axis])
	dl.AddCircle(g.center, u, v, g.radius, 64, color)
	// spoke from the circle to the grabber
	edge := g.center.
		Add(u.Mul(g.radius * math.Cos(g.angle))).
		Add(v.Mul(g.radius * math.Sin(g.angle)))
	dl.AddLine(edge, g.grabbers[0].Center, color)
	gr := g.grabbers[0]
	gr.Color = color
	gr.Draw(dl, g.referenceSize, g.settings.Grabber)
}

func (g *RotateGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	g.drawForPickingID(dl, 0)
}

func (g *RotateGizmo) drawForPickingID(dl *DrawList, id int) {
	g.grabbers[0].DrawForPicking(dl, g.referenceSize, g.settings.Grabber, 0, id)
}

// Rotate3DGizmo composes three single-axis rotate gizmos. Hover ids 0, 1
// and 2 select the X, Y and Z circle respectively; only one axis drags at
// a time.
type Rotate3DGizmo struct {
	gizmoBase
	axes [3]*RotateGizmo
}

func NewRotate3DGizmo(settings *Settings, log Logger) *Rotate3DGizmo {
	g := &Rotate3DGizmo{
		gizmoBase: newGizmoBase("rotate", 0, 3, settings, log),
	}
	for i := range g.axes {
		g.axes[i] = NewRotateGizmo(i, settings, log)
	}
	return g
}

// Rotation reports the accumulated Euler angles across the three axes.
func (g *Rotate3DGizmo) Rotation() mgl64.Vec3 {
	return mgl64.Vec3{g.axes[0].Angle(), g.axes[1].Angle(), g.axes[2].Angle()}
}

func (g *Rotate3DGizmo) SetRotation(r mgl64.Vec3) {
	for i := range g.axes {
		g.axes[i].SetAngle(r[i])
	}
}

func (g *Rotate3DGizmo) IsActivable(sel *Selection) bool {
	return !sel.IsEmpty()
}

func (g *Rotate3DGizmo) SetHoverID(id int) {
	g.gizmoBase.SetHoverID(id)
	for i := range g.axes {
		if i == g.hoverID {
			g.axes[i].SetHoverID(0)
		} else {
			g.axes[i].SetHoverID(-1)
		}
	}
}

func (g *Rotate3DGizmo) EnableGrabber(i int) {
	if i >= 0 && i < 3 {
		g.axes[i].EnableGrabber(0)
	}
}

func (g *Rotate3DGizmo) DisableGrabber(i int) {
	if i >= 0 && i < 3 {
		g.axes[i].DisableGrabber(0)
	}
}

func (g *Rotate3DGizmo) StartDragging(sel *Selection) {
	if g.hoverID < 0 || g.hoverID > 2 {
		return
	}
	g.axes[g.hoverID].StartDragging(sel)
}

func (g *Rotate3DGizmo) StopDragging() {
	for i := range g.axes {
		g.axes[i].StopDragging()
	}
}

func (g *Rotate3DGizmo) IsDragging() bool {
	for i := range g.axes {
		if g.axes[i].IsDragging() {
			return true
		}
	}
	return false
}

func (g *Rotate3DGizmo) Update(data UpdateData) {
	if g.hoverID < 0 || g.hoverID > 2 {
		return
	}
	g.axes[g.hoverID].Update(data)
}

func (g *Rotate3DGizmo) RecomputeLayout(sel *Selection) {
	for i := range g.axes {
		g.axes[i].RecomputeLayout(sel)
	}
}

func (g *Rotate3DGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	for i := range g.axes {
		g.axes[i].DrawGeometry(dl, sel)
	}
}

func (g *Rotate3DGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	for i := range g.axes {
		g.axes[i].drawForPickingID(dl, i)
	}
}
