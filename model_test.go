package kiln

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln3d/kiln/mesh"
)

func TestTransform3MatrixOrder(t *testing.T) {
	tr := IdentityTransform3()
	tr.Translation = mgl64.Vec3{5, 0, 0}
	tr.Rotation = mgl64.Vec3{0, 0, math.Pi / 2}
	tr.Scale = mgl64.Vec3{2, 2, 2}

	// scale first, then rotate, then translate
	p := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, tr.Matrix())
	assert.InDelta(t, 5.0, p.X(), 1e-9)
	assert.InDelta(t, 2.0, p.Y(), 1e-9)
	assert.InDelta(t, 0.0, p.Z(), 1e-9)
}

func TestTransform3Mirror(t *testing.T) {
	tr := IdentityTransform3()
	tr.Mirror = mgl64.Vec3{-1, 1, 1}
	p := mgl64.TransformCoordinate(mgl64.Vec3{3, 4, 5}, tr.Matrix())
	assert.Equal(t, mgl64.Vec3{-3, 4, 5}, p)
}

func TestSelectionBoundingBoxFollowsInstance(t *testing.T) {
	obj := NewModelObject("test")
	obj.AddVolume("box", mesh.Box(mgl64.Vec3{20, 20, 40}))
	inst := obj.AddInstance()
	inst.Transform.Translation = mgl64.Vec3{0, 0, 20}

	sel := SelectInstance(obj, 0)
	box := sel.BoundingBox()
	assert.InDelta(t, 0.0, box.Min.Z(), 1e-9)
	assert.InDelta(t, 40.0, box.Max.Z(), 1e-9)
	assert.InDelta(t, 40.0, sel.Height(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 0, 20}, sel.Center())
}

func TestSelectionPredicates(t *testing.T) {
	obj := NewModelObject("test")
	obj.AddVolume("box", mesh.Box(mgl64.Vec3{10, 10, 10}))
	obj.AddInstance()

	full := SelectInstance(obj, 0)
	assert.True(t, full.IsSingleFullInstance())
	assert.False(t, full.IsSingleVolume())

	vol := SelectVolume(obj, 0, 0)
	assert.False(t, vol.IsSingleFullInstance())
	assert.True(t, vol.IsSingleVolume())

	var none *Selection
	assert.True(t, none.IsEmpty())
	assert.False(t, none.IsSingleFullInstance())
}

func TestConvexHullCacheInvalidation(t *testing.T) {
	obj := NewModelObject("test")
	obj.AddVolume("box", mesh.Box(mgl64.Vec3{10, 10, 10}))
	obj.AddInstance()

	first := obj.ConvexHull()
	require.NotNil(t, first)
	assert.Same(t, first, obj.ConvexHull(), "unchanged object must reuse the cached hull")

	tr := obj.Volumes[0].Transform
	tr.Translation = mgl64.Vec3{5, 0, 0}
	obj.SetVolumeTransform(0, tr)
	second := obj.ConvexHull()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.InDelta(t, 10.0, second.BoundingBox().Max.X(), 1e-9)
}

func TestRawMeshMergesVolumes(t *testing.T) {
	obj := NewModelObject("test")
	obj.AddVolume("a", mesh.Box(mgl64.Vec3{10, 10, 10}))
	v := obj.AddVolume("b", mesh.Box(mgl64.Vec3{10, 10, 10}))
	v.Transform.Translation = mgl64.Vec3{20, 0, 0}

	raw := obj.RawMesh()
	assert.Len(t, raw.Vertices, 16)
	assert.Len(t, raw.Faces, 24)
	assert.InDelta(t, 25.0, raw.BoundingBox().Max.X(), 1e-9)
}
