package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSnapToStep(t *testing.T) {
	assert.Equal(t, 13.0, SnapToStep(13.2, 1.0))
	assert.Equal(t, 14.0, SnapToStep(13.6, 1.0))
	assert.Equal(t, -2.0, SnapToStep(-1.8, 1.0))
	assert.InDelta(t, 1.25, SnapToStep(1.23, 0.05), 1e-12)

	// a non-positive step disables quantization
	assert.Equal(t, 13.2, SnapToStep(13.2, 0))
	assert.Equal(t, 13.2, SnapToStep(13.2, -1))
}

func TestNormalizeAngle(t *testing.T) {
	twoPi := 2.0 * math.Pi
	assert.InDelta(t, 0.25, NormalizeAngle(twoPi+0.25), 1e-12)
	assert.InDelta(t, twoPi-0.25, NormalizeAngle(-0.25), 1e-12)
	assert.Equal(t, 0.0, NormalizeAngle(twoPi))
	assert.Equal(t, 0.0, NormalizeAngle(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 40))
	assert.Equal(t, 40.0, Clamp(55, 0, 40))
	assert.Equal(t, 12.5, Clamp(12.5, 0, 40))
}

func TestLineVectorAndTransform(t *testing.T) {
	l := Linef3{A: mgl64.Vec3{1, 2, 3}, B: mgl64.Vec3{4, 2, 3}}
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, l.Vector())
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, l.UnitVector())

	moved := l.Transformed(mgl64.Translate3D(0, 0, 5))
	assert.Equal(t, mgl64.Vec3{1, 2, 8}, moved.A)
	assert.Equal(t, mgl64.Vec3{4, 2, 8}, moved.B)
}

func TestIntersectPlaneZ(t *testing.T) {
	l := Linef3{A: mgl64.Vec3{1, 1, 10}, B: mgl64.Vec3{1, 1, -10}}
	p := l.IntersectPlaneZ(4)
	assert.Equal(t, mgl64.Vec3{1, 1, 4}, p)

	// parallel line drops onto the plane at its own origin
	flat := Linef3{A: mgl64.Vec3{0, 0, 2}, B: mgl64.Vec3{5, 0, 2}}
	assert.Equal(t, mgl64.Vec3{0, 0, 7}, flat.IntersectPlaneZ(7))
}

func TestProjectToViewPlane(t *testing.T) {
	ray := Linef3{A: mgl64.Vec3{3, 4, 100}, B: mgl64.Vec3{3, 4, -100}}
	p := ProjectToViewPlane(ray, mgl64.Vec3{0, 0, 10})
	assert.InDelta(t, 3.0, p.X(), 1e-12)
	assert.InDelta(t, 4.0, p.Y(), 1e-12)
	assert.InDelta(t, 10.0, p.Z(), 1e-12)
}

func TestIntersectPlane(t *testing.T) {
	ray := Linef3{A: mgl64.Vec3{0, 0, 10}, B: mgl64.Vec3{0, 0, -10}}
	p, ok := IntersectPlane(ray, mgl64.Vec3{5, 5, 2}, mgl64.Vec3{0, 0, 1})
	assert.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, p)

	_, ok = IntersectPlane(ray, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})
	assert.False(t, ok)
}

func TestBox3MergeAndDerived(t *testing.T) {
	var b Box3
	assert.False(t, b.Defined)

	b.Merge(mgl64.Vec3{1, 2, 3})
	b.Merge(mgl64.Vec3{-1, 4, 0})
	assert.True(t, b.Defined)
	assert.Equal(t, mgl64.Vec3{-1, 2, 0}, b.Min)
	assert.Equal(t, mgl64.Vec3{1, 4, 3}, b.Max)
	assert.Equal(t, mgl64.Vec3{0, 3, 1.5}, b.Center())
	assert.Equal(t, 3.0, b.MaxSize())

	diag := b.Size().Len()
	assert.InDelta(t, diag/2, b.Radius(), 1e-12)
}

func TestBox3Transformed(t *testing.T) {
	b := NewBox3(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	r := b.Transformed(mgl64.HomogRotate3DZ(math.Pi / 4))
	s := math.Sqrt2
	assert.InDelta(t, s, r.Max.X(), 1e-12)
	assert.InDelta(t, -s, r.Min.Y(), 1e-12)
	assert.InDelta(t, 1.0, r.Max.Z(), 1e-12)
}
