package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxPrimitive(t *testing.T) {
	m := Box(mgl64.Vec3{2, 4, 6})
	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Faces, 12)

	box := m.BoundingBox()
	assert.Equal(t, mgl64.Vec3{-1, -2, -3}, box.Min)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, box.Max)

	// every face normal points away from the center
	for i := range m.Faces {
		n := m.FaceNormal(i)
		c := m.FaceCentroid(i)
		assert.Positive(t, n.Dot(c), "face %d winds inward", i)
	}
}

func TestFaceNeighbors(t *testing.T) {
	m := Box(mgl64.Vec3{2, 2, 2})
	nb := m.FaceNeighbors()
	require.Len(t, nb, 12)
	for i, trip := range nb {
		for _, n := range trip {
			assert.NotEqual(t, -1, n, "face %d has an open edge on a closed mesh", i)
		}
	}
	// neighborhood is symmetric
	for i, trip := range nb {
		for _, n := range trip {
			assert.Contains(t, nb[n][:], i)
		}
	}
}

func TestTransformAndMerge(t *testing.T) {
	a := Box(mgl64.Vec3{2, 2, 2})
	b := a.Transformed(mgl64.Translate3D(10, 0, 0))
	assert.Equal(t, mgl64.Vec3{9, -1, -1}, b.BoundingBox().Min)
	// original untouched
	assert.Equal(t, mgl64.Vec3{-1, -1, -1}, a.BoundingBox().Min)

	a.Merge(b)
	assert.Len(t, a.Vertices, 16)
	assert.Len(t, a.Faces, 24)
	assert.Equal(t, mgl64.Vec3{11, 1, 1}, a.BoundingBox().Max)
}

func TestConvexHull2D(t *testing.T) {
	pts := []mgl64.Vec2{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		{5, 5}, {2, 3}, // interior
	}
	hull := ConvexHull2D(pts)
	require.Len(t, hull, 4)
	assert.InDelta(t, 100.0, PolygonArea2D(hull), 1e-12)
}

func TestConvexHull3DBox(t *testing.T) {
	pts := []mgl64.Vec3{
		{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {10, 10, 0},
		{0, 0, 10}, {10, 0, 10}, {0, 10, 10}, {10, 10, 10},
		{5, 5, 5}, {2, 2, 2}, // interior points must not survive
	}
	hull, err := ConvexHull3D(pts)
	require.NoError(t, err)
	assert.Len(t, hull.Vertices, 8)
	assert.Len(t, hull.Faces, 12)

	// closed, outward-wound surface
	center := mgl64.Vec3{5, 5, 5}
	for i := range hull.Faces {
		n := hull.FaceNormal(i)
		c := hull.FaceCentroid(i)
		assert.Positive(t, n.Dot(c.Sub(center)), "face %d winds inward", i)
	}
	for _, trip := range hull.FaceNeighbors() {
		for _, n := range trip {
			assert.NotEqual(t, -1, n)
		}
	}
}

func TestConvexHull3DDegenerate(t *testing.T) {
	_, err := ConvexHull3D([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	assert.ErrorIs(t, err, ErrDegenerateHull)

	// coplanar cloud has no volume
	flat := []mgl64.Vec3{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {10, 10, 0}, {3, 4, 0}}
	_, err = ConvexHull3D(flat)
	assert.ErrorIs(t, err, ErrDegenerateHull)
}

func TestBVHRaycastHit(t *testing.T) {
	m := Box(mgl64.Vec3{20, 20, 20})
	bvh := NewBVH(m)

	hit, ok := bvh.Raycast(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.InDelta(t, 90.0, hit.T, 1e-9)
	assert.InDelta(t, 10.0, hit.Point.Z(), 1e-9)

	// interpolated position agrees with the direct hit point
	p := bvh.Barycentric(hit)
	assert.InDelta(t, hit.Point.X(), p.X(), 1e-9)
	assert.InDelta(t, hit.Point.Y(), p.Y(), 1e-9)
	assert.InDelta(t, hit.Point.Z(), p.Z(), 1e-9)
}

func TestBVHRaycastNearestOfMany(t *testing.T) {
	m := Box(mgl64.Vec3{20, 20, 20})
	far := Box(mgl64.Vec3{20, 20, 20})
	far.Transform(mgl64.Translate3D(0, 0, -100))
	m.Merge(far)
	bvh := NewBVH(m)

	hit, ok := bvh.Raycast(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.InDelta(t, 10.0, hit.Point.Z(), 1e-9, "must report the near box first")
}

func TestBVHRaycastMiss(t *testing.T) {
	bvh := NewBVH(Box(mgl64.Vec3{20, 20, 20}))

	_, ok := bvh.Raycast(mgl64.Vec3{50, 50, 100}, mgl64.Vec3{0, 0, -1})
	assert.False(t, ok)

	// pointing away from the mesh
	_, ok = bvh.Raycast(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 0, 1})
	assert.False(t, ok)

	// degenerate direction
	_, ok = bvh.Raycast(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{})
	assert.False(t, ok)
}

func TestBVHEmptyMesh(t *testing.T) {
	bvh := NewBVH(&Mesh{})
	_, ok := bvh.Raycast(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{0, 0, -1})
	assert.False(t, ok)
}

func TestBVHManyTriangles(t *testing.T) {
	// a z=0 grid of triangles, forcing real tree traversal
	m := &Mesh{}
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			base := len(m.Vertices)
			fx, fy := float64(x), float64(y)
			m.Vertices = append(m.Vertices,
				mgl64.Vec3{fx, fy, 0},
				mgl64.Vec3{fx + 1, fy, 0},
				mgl64.Vec3{fx, fy + 1, 0},
			)
			m.Faces = append(m.Faces, [3]int{base, base + 1, base + 2})
		}
	}
	bvh := NewBVH(m)

	hit, ok := bvh.Raycast(mgl64.Vec3{10.25, 10.25, 5}, mgl64.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.InDelta(t, 5.0, hit.T, 1e-9)
	assert.InDelta(t, 10.25, hit.Point.X(), 1e-9)

	_, ok = bvh.Raycast(mgl64.Vec3{10.9, 10.9, 5}, mgl64.Vec3{0, 0, -1})
	assert.False(t, ok, "upper triangle halves are open in this grid")
}
