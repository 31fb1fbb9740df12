// Package geom provides the small closed-form geometry used by the
// manipulation gizmos: rays, plane projections, bounding boxes and snap
// quantization. All math is double precision (mgl64).
package geom

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Linef3 is a ray expressed as two points. A is the origin, B a second
// point along the direction of travel (mouse rays come in this form from
// the host's unprojection of the cursor at the near and far planes).
type Linef3 struct {
	A mgl64.Vec3
	B mgl64.Vec3
}

func (l Linef3) Vector() mgl64.Vec3 {
	return l.B.Sub(l.A)
}

func (l Linef3) UnitVector() mgl64.Vec3 {
	v := l.Vector()
	n := v.Len()
	if n == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1.0 / n)
}

// Transformed applies m to both endpoints.
func (l Linef3) Transformed(m mgl64.Mat4) Linef3 {
	return Linef3{
		A: mgl64.TransformCoordinate(l.A, m),
		B: mgl64.TransformCoordinate(l.B, m),
	}
}

// IntersectPlaneZ returns the point where the line crosses the horizontal
// plane at the given z. A line parallel to the plane yields its origin
// clamped onto the plane.
func (l Linef3) IntersectPlaneZ(z float64) mgl64.Vec3 {
	d := l.B.Z() - l.A.Z()
	if d == 0 {
		return mgl64.Vec3{l.A.X(), l.A.Y(), z}
	}
	t := (z - l.A.Z()) / d
	return mgl64.Vec3{
		l.A.X() + t*(l.B.X()-l.A.X()),
		l.A.Y() + t*(l.B.Y()-l.A.Y()),
		z,
	}
}

// ProjectToViewPlane intersects the ray with the plane that passes through
// point and is parallel to the camera viewport. Under an orthographic
// camera the plane normal equals the ray direction, which reduces the
// ray/plane intersection to a projection along the ray.
func ProjectToViewPlane(ray Linef3, point mgl64.Vec3) mgl64.Vec3 {
	dir := ray.UnitVector()
	sq := dir.Dot(dir)
	if sq == 0 {
		return ray.A
	}
	t := point.Sub(ray.A).Dot(dir) / sq
	return ray.A.Add(dir.Mul(t))
}

// IntersectPlane intersects the ray with an arbitrary plane given by a
// point and a normal. ok is false when the ray is parallel to the plane.
func IntersectPlane(ray Linef3, planePoint, planeNormal mgl64.Vec3) (mgl64.Vec3, bool) {
	dir := ray.UnitVector()
	denom := dir.Dot(planeNormal)
	if mgl64.Abs(denom) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := planePoint.Sub(ray.A).Dot(planeNormal) / denom
	return ray.A.Add(dir.Mul(t)), true
}
