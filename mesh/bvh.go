package mesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// BVH is a median-split bounding volume hierarchy over the faces of a
// mesh, built once and queried with Raycast. The mesh must not be
// mutated while the BVH is alive.
type BVH struct {
	mesh  *Mesh
	nodes []bvhNode
	faces []int32
}

type bvhNode struct {
	min, max    mgl64.Vec3
	left, right int32
	first       int32
	count       int32
}

type bvhItem struct {
	min, max mgl64.Vec3
	centroid mgl64.Vec3
	face     int32
}

const bvhLeafSize = 4

// NewBVH builds the hierarchy. An empty mesh yields a BVH whose raycasts
// always miss.
func NewBVH(m *Mesh) *BVH {
	b := &BVH{mesh: m}
	if m == nil || len(m.Faces) == 0 {
		return b
	}

	items := make([]bvhItem, len(m.Faces))
	for i, f := range m.Faces {
		it := bvhItem{face: int32(i)}
		it.min, it.max = m.Vertices[f[0]], m.Vertices[f[0]]
		for _, vi := range f[1:] {
			v := m.Vertices[vi]
			for k := 0; k < 3; k++ {
				it.min[k] = math.Min(it.min[k], v[k])
				it.max[k] = math.Max(it.max[k], v[k])
			}
		}
		it.centroid = it.min.Add(it.max).Mul(0.5)
		items[i] = it
	}
	b.recursiveBuild(items)
	return b
}

func (b *BVH) recursiveBuild(items []bvhItem) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{left: -1, right: -1, first: -1})

	minB := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	maxB := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, it := range items {
		for k := 0; k < 3; k++ {
			minB[k] = math.Min(minB[k], it.min[k])
			maxB[k] = math.Max(maxB[k], it.max[k])
		}
	}
	b.nodes[idx].min = minB
	b.nodes[idx].max = maxB

	if len(items) <= bvhLeafSize {
		b.nodes[idx].first = int32(len(b.faces))
		b.nodes[idx].count = int32(len(items))
		for _, it := range items {
			b.faces = append(b.faces, it.face)
		}
		return idx
	}

	extent := maxB.Sub(minB)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].centroid[axis] < items[j].centroid[axis]
	})

	mid := len(items) / 2
	left := b.recursiveBuild(items[:mid])
	right := b.recursiveBuild(items[mid:])
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

// Hit describes a ray/mesh intersection: the face, the distance along the
// (unit) ray direction, the barycentric coordinates of the hit within the
// face, and the hit position.
type Hit struct {
	Face  int
	T     float64
	U, V  float64
	Point mgl64.Vec3
}

// Raycast intersects the ray with the mesh and reports the nearest hit in
// front of the origin. A miss is an expected outcome and is reported via
// ok=false, never as an error.
func (b *BVH) Raycast(origin, dir mgl64.Vec3) (Hit, bool) {
	if len(b.nodes) == 0 {
		return Hit{}, false
	}
	l := dir.Len()
	if l == 0 {
		return Hit{}, false
	}
	dir = dir.Mul(1.0 / l)

	invDir := mgl64.Vec3{}
	for k := 0; k < 3; k++ {
		if dir[k] != 0 {
			invDir[k] = 1.0 / dir[k]
		} else {
			invDir[k] = math.Inf(1)
		}
	}

	best := Hit{T: math.Inf(1)}
	found := false

	stack := make([]int32, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[ni]

		if !rayBoxIntersect(origin, invDir, node.min, node.max, best.T) {
			continue
		}
		if node.count > 0 || node.left < 0 {
			for i := node.first; i < node.first+node.count; i++ {
				fi := int(b.faces[i])
				if h, ok := b.intersectFace(fi, origin, dir); ok && h.T < best.T {
					best = h
					found = true
				}
			}
			continue
		}
		stack = append(stack, node.left, node.right)
	}

	if !found {
		return Hit{}, false
	}
	return best, true
}

func rayBoxIntersect(origin, invDir, min, max mgl64.Vec3, tMax float64) bool {
	t0, t1 := 0.0, tMax
	for k := 0; k < 3; k++ {
		tn := (min[k] - origin[k]) * invDir[k]
		tf := (max[k] - origin[k]) * invDir[k]
		if tn > tf {
			tn, tf = tf, tn
		}
		t0 = math.Max(t0, tn)
		t1 = math.Min(t1, tf)
		if t0 > t1 {
			return false
		}
	}
	return true
}

// intersectFace is the Moeller-Trumbore triangle test.
func (b *BVH) intersectFace(fi int, origin, dir mgl64.Vec3) (Hit, bool) {
	f := b.mesh.Faces[fi]
	v0 := b.mesh.Vertices[f[0]]
	e1 := b.mesh.Vertices[f[1]].Sub(v0)
	e2 := b.mesh.Vertices[f[2]].Sub(v0)

	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return Hit{}, false
	}
	inv := 1.0 / det

	s := origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return Hit{}, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}
	t := e2.Dot(q) * inv
	if t <= 1e-9 {
		return Hit{}, false
	}

	return Hit{
		Face:  fi,
		T:     t,
		U:     u,
		V:     v,
		Point: origin.Add(dir.Mul(t)),
	}, true
}

// Barycentric returns the hit position recomputed from the barycentric
// coordinates, interpolating the face vertices directly. This matches the
// position a caller would get by weighting mesh vertices, independent of
// any floating point drift along the ray.
func (b *BVH) Barycentric(h Hit) mgl64.Vec3 {
	f := b.mesh.Faces[h.Face]
	w := 1.0 - h.U - h.V
	return b.mesh.Vertices[f[0]].Mul(w).
		Add(b.mesh.Vertices[f[1]].Mul(h.U)).
		Add(b.mesh.Vertices[f[2]].Mul(h.V))
}
