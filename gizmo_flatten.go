package kiln

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
	"github.com/kiln3d/kiln/mesh"
)

// PlaneData is one flattenable face candidate: a closed CCW polygon in
// the object frame with its unit normal and projected area. Planes are
// rebuilt wholesale whenever a volume transform changes, never mutated
// incrementally.
type PlaneData struct {
	Vertices []mgl64.Vec3
	Normal   mgl64.Vec3
	Area     float64
}

// FlattenGizmo clusters the coplanar facets of the selection's convex
// hull into pickable flat polygons. Clicking one yields its normal so
// the host can rotate the object to lay that face on the build plate.
// The planes themselves are the pick targets; there are no cube
// grabbers.
type FlattenGizmo struct {
	gizmoBase

	planes []PlaneData
	normal mgl64.Vec3 // selected flattening normal, zero when none

	sourceObject *ModelObject
	snapshot     []mgl64.Mat4

	// OnChange, when set, is called after a plane is selected so the
	// host can schedule the re-orientation.
	OnChange func()
}

const (
	flattenNormalTolerance = 0.001
	flattenMinSeedEdge     = 1.0
	flattenAreaFraction    = 0.01
	flattenSliverCos       = 0.98480775301 // cos(10 deg)
	flattenShrinkFactor    = 0.9
	flattenRoundingPasses  = 10
	flattenRoundingWeight  = 0.2
	flattenNormalOffset    = 0.1
)

func NewFlattenGizmo(settings *Settings, log Logger) *FlattenGizmo {
	return &FlattenGizmo{
		gizmoBase: newGizmoBase("flatten", 0, 0, settings, log),
	}
}

func (g *FlattenGizmo) Planes() []PlaneData { return g.planes }

// FlatteningNormal is the normal of the last selected plane, zero before
// any selection. The host reads it after StartDragging to compute the
// re-orienting rotation.
func (g *FlattenGizmo) FlatteningNormal() mgl64.Vec3 { return g.normal }

func (g *FlattenGizmo) IsActivable(sel *Selection) bool {
	return sel.IsSingleFullInstance()
}

func (g *FlattenGizmo) StartDragging(sel *Selection) {
	if g.hoverID < 0 || g.hoverID >= len(g.planes) {
		return
	}
	g.normal = g.planes[g.hoverID].Normal
	g.log.Debugf("flatten: selected plane %d, normal %v", g.hoverID, g.normal)
	if g.OnChange != nil {
		g.OnChange()
	}
}

func (g *FlattenGizmo) StopDragging() {
	g.stopDragging()
}

func (g *FlattenGizmo) Update(data UpdateData) {
	// Plane selection happens on click; there is nothing to drag.
}

// planeUpdateNecessary reports whether the cached planes are stale: the
// object changed, volumes were added or removed, or any volume transform
// no longer matches the snapshot.
func (g *FlattenGizmo) planeUpdateNecessary(sel *Selection) bool {
	if sel.IsEmpty() {
		return false
	}
	if g.sourceObject != sel.Object || len(g.snapshot) != len(sel.Object.Volumes) {
		return true
	}
	current := sel.Object.VolumeTransformSnapshot()
	for i := range current {
		if current[i] != g.snapshot[i] {
			return true
		}
	}
	return false
}

func (g *FlattenGizmo) RecomputeLayout(sel *Selection) {
	if !g.planeUpdateNecessary(sel) {
		return
	}
	g.sourceObject = sel.Object
	g.snapshot = sel.Object.VolumeTransformSnapshot()
	g.planes = g.updatePlanes(sel)
	g.hoverID = -1
	g.log.Debugf("flatten: rebuilt %d planes", len(g.planes))
}

func (g *FlattenGizmo) updatePlanes(sel *Selection) []PlaneData {
	hull := sel.Object.ConvexHull()
	if hull == nil {
		return nil
	}

	// The area threshold derives from the smallest face of the object's
	// own bounding box.
	box := hull.BoundingBox()
	size := box.Size()
	minFace := math.Min(size.X()*size.Y(), math.Min(size.X()*size.Z(), size.Y()*size.Z()))

	clusters := clusterFacets(hull, flattenNormalTolerance, flattenMinSeedEdge)

	planes := make([]PlaneData, 0, len(clusters))
	for _, cluster := range clusters {
		p, ok := buildPlane(hull, cluster, minFace)
		if !ok {
			continue
		}
		planes = append(planes, p)
	}

	sort.Slice(planes, func(i, j int) bool {
		return planes[i].Area > planes[j].Area
	})
	if max := g.settings.Flatten.MaxPlanes; len(planes) > max {
		planes = planes[:max]
	}
	return planes
}

// clusterFacets groups adjacent hull facets whose normals agree with the
// cluster seed within tol per component. Facets with an edge shorter
// than minEdge are numerical debris on a convex hull and are excluded up
// front. The walk uses an explicit worklist with visited-at-push
// semantics, so no facet is processed twice.
func clusterFacets(m *mesh.Mesh, tol, minEdge float64) [][]int {
	n := m.FaceCount()
	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		if shortestEdge(m, i) < minEdge {
			visited[i] = true
		}
	}

	neighbors := m.FaceNeighbors()
	var clusters [][]int
	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		seedNormal := m.FaceNormal(seed)
		cluster := []int{seed}
		visited[seed] = true
		worklist := []int{seed}
		for len(worklist) > 0 {
			f := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			for _, nb := range neighbors[f] {
				if nb < 0 || visited[nb] {
					continue
				}
				if !normalsClose(m.FaceNormal(nb), seedNormal, tol) {
					continue
				}
				visited[nb] = true
				cluster = append(cluster, nb)
				worklist = append(worklist, nb)
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

func normalsClose(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a.X()-b.X()) < tol &&
		math.Abs(a.Y()-b.Y()) < tol &&
		math.Abs(a.Z()-b.Z()) < tol
}

func shortestEdge(m *mesh.Mesh, face int) float64 {
	f := m.Faces[face]
	shortest := math.Inf(1)
	for j := 0; j < 3; j++ {
		d := m.Vertices[f[(j+1)%3]].Sub(m.Vertices[f[j]]).Len()
		if d < shortest {
			shortest = d
		}
	}
	return shortest
}

// buildPlane turns one facet cluster into a display polygon: project the
// cluster vertices into the normal-aligned plane, take the 2D convex
// hull, filter by area and sliver angles, then shrink, round corners and
// lift the result off the surface.
func buildPlane(m *mesh.Mesh, cluster []int, minFace float64) (PlaneData, bool) {
	normal := averageClusterNormal(m, cluster)

	// rotation taking normal to +Z
	toPlane := rotationToZ(normal)
	fromPlane := toPlane.Inv()

	var planeZ float64
	seen := make(map[int]bool)
	pts2 := make([]mgl64.Vec2, 0, 3*len(cluster))
	for _, fi := range cluster {
		for _, vi := range m.Faces[fi] {
			if seen[vi] {
				continue
			}
			seen[vi] = true
			q := toPlane.Mul3x1(m.Vertices[vi])
			pts2 = append(pts2, mgl64.Vec2{q.X(), q.Y()})
			planeZ = q.Z()
		}
	}

	hull2 := mesh.ConvexHull2D(pts2)
	if len(hull2) < 3 {
		return PlaneData{}, false
	}

	area := mesh.PolygonArea2D(hull2)
	threshold := flattenAreaFraction * minFace
	if !axisAligned(normal) {
		threshold *= 10
	}
	if area < threshold {
		return PlaneData{}, false
	}
	if hasSliverCorner(hull2, flattenSliverCos) {
		return PlaneData{}, false
	}

	shrinkToCentroid(hull2, flattenShrinkFactor)
	roundCorners(hull2, flattenRoundingPasses, flattenRoundingWeight)

	lift := normal.Mul(flattenNormalOffset)
	verts := make([]mgl64.Vec3, len(hull2))
	for i, p := range hull2 {
		verts[i] = fromPlane.Mul3x1(mgl64.Vec3{p.X(), p.Y(), planeZ}).Add(lift)
	}
	return PlaneData{Vertices: verts, Normal: normal, Area: area}, true
}

func averageClusterNormal(m *mesh.Mesh, cluster []int) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, fi := range cluster {
		sum = sum.Add(m.FaceNormal(fi))
	}
	l := sum.Len()
	if l == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return sum.Mul(1.0 / l)
}

// rotationToZ builds the rotation mapping the unit vector n onto +Z.
func rotationToZ(n mgl64.Vec3) mgl64.Mat3 {
	z := mgl64.Vec3{0, 0, 1}
	axis := n.Cross(z)
	s := axis.Len()
	c := geom.Clamp(n.Dot(z), -1, 1)
	if s < 1e-12 {
		if c > 0 {
			return mgl64.Ident3()
		}
		// antiparallel: half turn around X
		return mgl64.HomogRotate3DX(math.Pi).Mat3()
	}
	return mgl64.HomogRotate3D(math.Atan2(s, c), axis.Mul(1.0/s)).Mat3()
}

func axisAligned(n mgl64.Vec3) bool {
	return math.Abs(n.X()) > 0.999 || math.Abs(n.Y()) > 0.999 || math.Abs(n.Z()) > 0.999
}

// hasSliverCorner reports whether any interior corner is sharper than
// the angle whose cosine is cosLimit.
func hasSliverCorner(poly []mgl64.Vec2, cosLimit float64) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		prev := poly[(i-1+n)%n]
		next := poly[(i+1)%n]
		a := prev.Sub(poly[i])
		b := next.Sub(poly[i])
		la, lb := a.Len(), b.Len()
		if la == 0 || lb == 0 {
			return true
		}
		if a.Dot(b)/(la*lb) > cosLimit {
			return true
		}
	}
	return false
}

func shrinkToCentroid(poly []mgl64.Vec2, factor float64) {
	var c mgl64.Vec2
	for _, p := range poly {
		c = c.Add(p)
	}
	c = c.Mul(1.0 / float64(len(poly)))
	for i, p := range poly {
		poly[i] = c.Add(p.Sub(c).Mul(factor))
	}
}

// roundCorners relaxes each vertex toward the midpoint of its ring
// neighbors; indices wrap modulo the ring length.
func roundCorners(poly []mgl64.Vec2, passes int, weight float64) {
	n := len(poly)
	if n < 3 {
		return
	}
	buf := make([]mgl64.Vec2, n)
	for pass := 0; pass < passes; pass++ {
		for i := 0; i < n; i++ {
			mid := poly[(i-1+n)%n].Add(poly[(i+1)%n]).Mul(0.5)
			buf[i] = poly[i].Mul(1.0 - weight).Add(mid.Mul(weight))
		}
		copy(poly, buf)
	}
}

func (g *FlattenGizmo) DrawGeometry(dl *DrawList, sel *Selection) {
	if sel.IsEmpty() {
		return
	}
	inst := sel.instanceMatrix()
	for i := range g.planes {
		color := [3]float32{0.9, 0.9, 0.9}
		if i == g.hoverID {
			color = ColorHighlight
		}
		dl.AddPolygon(transformedVertices(g.planes[i].Vertices, inst),
			mgl64.TransformNormal(g.planes[i].Normal, inst), color, true)
	}
}

func (g *FlattenGizmo) DrawForPicking(dl *DrawList, sel *Selection) {
	if sel.IsEmpty() {
		return
	}
	inst := sel.instanceMatrix()
	for i := range g.planes {
		dl.AddPolygon(transformedVertices(g.planes[i].Vertices, inst),
			mgl64.TransformNormal(g.planes[i].Normal, inst), PickingColor(g.group, i), true)
	}
}

func transformedVertices(vs []mgl64.Vec3, m mgl64.Mat4) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vs))
	for i, v := range vs {
		out[i] = mgl64.TransformCoordinate(v, m)
	}
	return out
}
