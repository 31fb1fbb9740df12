// Package mesh holds the triangle mesh structures and algorithms the
// gizmos lean on: indexed meshes with facet adjacency, convex hulls in 2D
// and 3D, and a BVH-accelerated raycaster.
package mesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// Mesh is an indexed triangle mesh. Faces index into Vertices; winding is
// counter-clockwise seen from the outside.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// FaceNormal returns the unit normal of face i. Degenerate faces yield a
// zero vector.
func (m *Mesh) FaceNormal(i int) mgl64.Vec3 {
	f := m.Faces[i]
	a := m.Vertices[f[0]]
	n := m.Vertices[f[1]].Sub(a).Cross(m.Vertices[f[2]].Sub(a))
	l := n.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return n.Mul(1.0 / l)
}

// FaceCentroid returns the centroid of face i.
func (m *Mesh) FaceCentroid(i int) mgl64.Vec3 {
	f := m.Faces[i]
	return m.Vertices[f[0]].Add(m.Vertices[f[1]]).Add(m.Vertices[f[2]]).Mul(1.0 / 3.0)
}

func (m *Mesh) BoundingBox() geom.Box3 {
	var box geom.Box3
	for _, v := range m.Vertices {
		box.Merge(v)
	}
	return box
}

// Transform applies mat to every vertex in place.
func (m *Mesh) Transform(mat mgl64.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mgl64.TransformCoordinate(v, mat)
	}
}

// Transformed returns a transformed copy, leaving m untouched.
func (m *Mesh) Transformed(mat mgl64.Mat4) *Mesh {
	out := m.Clone()
	out.Transform(mat)
	return out
}

func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]mgl64.Vec3, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	return out
}

// Merge appends the other mesh, remapping its face indices.
func (m *Mesh) Merge(o *Mesh) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, f := range o.Faces {
		m.Faces = append(m.Faces, [3]int{f[0] + base, f[1] + base, f[2] + base})
	}
}

// FaceNeighbors computes, for each face, the indices of the faces sharing
// each of its three edges (-1 for an open edge). Edges are matched by
// vertex index pair, so meshes with duplicated vertices should be welded
// first.
func (m *Mesh) FaceNeighbors() [][3]int {
	type edge struct{ a, b int }
	owner := make(map[edge]int, 3*len(m.Faces))
	nb := make([][3]int, len(m.Faces))
	for i := range nb {
		nb[i] = [3]int{-1, -1, -1}
	}
	for fi, f := range m.Faces {
		for j := 0; j < 3; j++ {
			a, b := f[j], f[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			key := edge{a, b}
			if other, ok := owner[key]; ok {
				nb[fi][j] = other
				// locate the matching edge slot on the other face
				of := m.Faces[other]
				for k := 0; k < 3; k++ {
					oa, ob := of[k], of[(k+1)%3]
					if oa > ob {
						oa, ob = ob, oa
					}
					if oa == a && ob == b {
						nb[other][k] = fi
					}
				}
			} else {
				owner[key] = fi
			}
		}
	}
	return nb
}

// Box builds an axis-aligned cuboid centered at the origin with the given
// full extents. Handy as a test and demo primitive.
func Box(size mgl64.Vec3) *Mesh {
	h := size.Mul(0.5)
	v := []mgl64.Vec3{
		{-h.X(), -h.Y(), -h.Z()},
		{h.X(), -h.Y(), -h.Z()},
		{h.X(), h.Y(), -h.Z()},
		{-h.X(), h.Y(), -h.Z()},
		{-h.X(), -h.Y(), h.Z()},
		{h.X(), -h.Y(), h.Z()},
		{h.X(), h.Y(), h.Z()},
		{-h.X(), h.Y(), h.Z()},
	}
	f := [][3]int{
		// bottom (z-)
		{0, 2, 1}, {0, 3, 2},
		// top (z+)
		{4, 5, 6}, {4, 6, 7},
		// front (y-)
		{0, 1, 5}, {0, 5, 4},
		// back (y+)
		{2, 3, 7}, {2, 7, 6},
		// left (x-)
		{3, 0, 4}, {3, 4, 7},
		// right (x+)
		{1, 2, 6}, {1, 6, 5},
	}
	return &Mesh{Vertices: v, Faces: f}
}
