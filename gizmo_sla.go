package kiln

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
	"github.com/kiln3d/kiln/mesh"
)

// SlaSupportGizmo places and edits support points on the object surface.
// Points live in the object's untransformed local frame and are owned by
// the model object; the gizmo keeps a 1:1 grabber per point, with list
// order defining the hover ids.
type SlaSupportGizmo struct {
	gizmoBase

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewport [4]int

	bvh       *mesh.BVH
	bvhObject *ModelObject
	bvhStamp  []mgl64.Mat4

	// currentSel is refreshed by RecomputeLayout so Update can
	// re-raycast without the host passing the selection every tick.
	currentSel *Selection

	referenceSize float64

	// OnChange, when set, is called after every successful point
	// mutation so the host can schedule a support regeneration.
	OnChange func()
}

func NewSlaSupportGizmo(settings *Settings, log Logger) *SlaSupportGizmo {
	return &SlaSupportGizmo{
		gizmoBase: newGizmoBase("sla_supports", 0, 0, settings, log),
	}
}

func (g *SlaSupportGizmo) IsActivable(sel *Selection) bool {
	return sel.IsSingleFullInstance()
}

// SetCamera installs the matrices used to unproject mouse positions.
// Viewport is (x, y, width, height) with a bottom-left origin, the
// convention the unprojection math expects.
func (g *SlaSupportGizmo) SetCamera(view, proj mgl64.Mat4, viewport [4]int) {
	g.view = view
	g.proj = proj
	g.viewport = viewport
}

// mouseRayLocal unprojects the mouse position at the near and far planes
// and transforms the resulting ray into the object's local frame.
func (g *SlaSupportGizmo) mouseRayLocal(mousePos mgl64.Vec2, sel *Selection) (geom.Linef3, bool) {
	w, h := g.viewport[2], g.viewport[3]
	if w == 0 || h == 0 {
		return geom.Linef3{}, false
	}
	near, err := mgl64.UnProject(mgl64.Vec3{mousePos.X(), mousePos.Y(), 0},
		g.view, g.proj, g.viewport[0], g.viewport[1], w, h)
	if err != nil {
		return geom.Linef3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{mousePos.X(), mousePos.Y(), 1},
		g.view, g.proj, g.viewport[0], g.viewport[1], w, h)
	if err != nil {
		return geom.Linef3{}, false
	}
	inv := sel.instanceMatrix().Inv()
	return geom.Linef3{A: near, B: far}.Transformed(inv), true
}

// ensureBVH lazily rebuilds the raycasting structure when the object or
// its volume transforms changed.
func (g *SlaSupportGizmo) ensureBVH(sel *Selection) *mesh.BVH {
	stale := g.bvh == nil || g.bvhObject != sel.Object || len(g.bvhStamp) != len(sel.Object.Volumes)
	if !stale {
		current := sel.Object.VolumeTransformSnapshot()
		for i := range current {
			if current[i] != g.bvhStamp[i] {
				stale = true
				break
			}
		}
	}
	if stale {
		g.bvh = mesh.NewBVH(sel.Object.RawMesh())
		g.bvhObject = sel.Object
		g.bvhStamp = sel.Object.VolumeTransformSnapshot()
		g.log.Debugf("sla: rebuilt raycast structure for %q", sel.Object.Name)
	}
	return g.bvh
}

// ClickedOnObject casts the mouse ray against the object mesh and, on a
// hit, appends a support point at the interpolated hit position. A miss
// adds nothing and reports false.
func (g *SlaSupportGizmo) ClickedOnObject(mousePos mgl64.Vec2, sel *Selection) bool {
	if sel.IsEmpty() {
		return false
	}
	ray, ok := g.mouseRayLocal(mousePos, sel)
	if !ok {
		return false
	}
	bvh := g.ensureBVH(sel)
	hit, ok := bvh.Raycast(ray.A, ray.Vector())
	if !ok {
		return false
	}
	point := bvh.Barycentric(hit)
	sel.Object.SupportPoints = append(sel.Object.SupportPoints, point)
	g.syncGrabbers(sel)
	g.log.Debugf("sla: added support point %v (total %d)", point, len(sel.Object.SupportPoints))
	if g.OnChange != nil {
		g.OnChange()
	}
	return true
}

func (g *SlaSupportGizmo) StartDragging(sel *Selection) {
	g.startDragging()
}

func (g *SlaSupportGizmo) StopDragging() {
	g.stopDragging()
}

// Update re-projects the hovered point while it is being dragged. The
// model list is only touched when the new ray actually hits the mesh;
// a miss leaves the point where it was.
func (g *SlaSupportGizmo) Update(data UpdateData) {
	if g.hoverID < 0 || data.MousePos == nil {
		return
	}
	obj := g.bvhObject
	if obj == nil || g.hoverID >= len(obj.SupportPoints) {
		return
	}
	if g.hoverID >= len(g.grabbers) || !g.grabbers[g.hoverID].Dragging {
		return
	}
	sel := g.currentSel
	if sel == nil {
		return
	}
	ray, ok := g.mouseRayLocal(*data.MousePos, sel)
	if !ok {
		return
	}
	hit, ok := g.ensureBVH(sel).Raycast(ray.A, ray.Vector())
	if !ok {
		return
	}
	obj.SupportPoints[g.hoverID] = g.bvh.Barycentric(hit)
	g.syncGrabbers(sel)
	if g.OnChange != nil {
		g.OnChange()
	}
}

// DeleteCurrent removes the hovered support point, or every point when
// all is set.
func (g *SlaSupportGizmo) DeleteCurrent(all bool, sel *Selection) {
	if sel.IsEmpty() {
		return
	}
	pts := sel.Object.SupportPoints
	if all {
		sel.Object.SupportPoints = pts[:0]
	} else {
		if g.hoverID < 0 || g.hoverID >= len(pts) {
			return
		}
		sel.Object.SupportPoints = append(pts[:g.hoverID], pts[g.hoverID+1:]...)
		g.hoverID = -1
	}
	g.syncGrabbers(sel)
	if g.OnChange != nil {
		g.OnChange()
	}
}

func (g *SlaSupportGizmo) RecomputeLayout(sel *Selection) {
	if sel.IsEmpty() {
		return
	}
	g.currentSel = sel
	g.referenceSize = sel.BoundingBox().MaxSize()
	g.ensureBVH(sel)
	g.syncGrabbers(sel)
}

// syncGrabbers rebuilds the grabber list 1:1 from the support points,
// positioned in world space.
func (g *SlaSupportGizmo) syncGrabbers(sel *Selection) {
	pts := sel.Object.SupportPoints
	if len(g.grabbers) != len(pts) {
		grabbers := make([]Grabber, len(pts))
		for i := range grabbers {
			grabbers[i] = NewGrabber()
		}
		n := len(g.grabbers)
		if n > len(grabbers) {
			n = len(grabbers)
		}
		copy(grabbers, g.grabbers[:n])
		g.grabbers = grabbers
	}
	inst := sel.instanceMatrix()
	for i, p := range pts {
		g.grabbers[i].Center = mgl64.TransformCoordinate(p, inst)
		g.grabbers[i].Color = ColorBase
	}
	if g.hoverID >= len(g.grabbers) {
		g.hoverID = -1
	}
}

func (g *SlaSupportGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	for i := range g.grabbers {
		gr := g.grabbers[i]
		gr.Color = g.grabberColor(i, ColorBase)
		gr.Draw(dl, g.referenceSize, g.settings.Grabber)
	}
}

func (g *SlaSupportGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	for i := range g.grabbers {
		g.grabbers[i].DrawForPicking(dl, g.referenceSize, g.settings.Grabber, g.group, i)
	}
}
