package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box3 is an axis-aligned bounding box. The zero value is undefined;
// merge points into it or build it with NewBox3.
type Box3 struct {
	Min     mgl64.Vec3
	Max     mgl64.Vec3
	Defined bool
}

func NewBox3(min, max mgl64.Vec3) Box3 {
	return Box3{Min: min, Max: max, Defined: true}
}

func (b *Box3) Merge(p mgl64.Vec3) {
	if !b.Defined {
		b.Min, b.Max = p, p
		b.Defined = true
		return
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

func (b *Box3) MergeBox(o Box3) {
	if !o.Defined {
		return
	}
	b.Merge(o.Min)
	b.Merge(o.Max)
}

func (b Box3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius is half the length of the box diagonal, the radius of the
// bounding sphere around the box center.
func (b Box3) Radius() float64 {
	return 0.5 * b.Size().Len()
}

// MaxSize is the largest box extent, used as the reference size for
// grabber scaling.
func (b Box3) MaxSize() float64 {
	s := b.Size()
	return math.Max(s.X(), math.Max(s.Y(), s.Z()))
}

// Transformed returns the axis-aligned box around the eight transformed
// corners of b.
func (b Box3) Transformed(m mgl64.Mat4) Box3 {
	var out Box3
	for _, x := range []float64{b.Min.X(), b.Max.X()} {
		for _, y := range []float64{b.Min.Y(), b.Max.Y()} {
			for _, z := range []float64{b.Min.Z(), b.Max.Z()} {
				out.Merge(mgl64.TransformCoordinate(mgl64.Vec3{x, y, z}, m))
			}
		}
	}
	return out
}
