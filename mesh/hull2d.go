package mesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// ConvexHull2D computes the convex hull of a 2D point set using the
// monotone chain algorithm. The result is in counter-clockwise order with
// no duplicated endpoint. Fewer than three distinct points return the
// input unchanged.
func ConvexHull2D(points []mgl64.Vec2) []mgl64.Vec2 {
	if len(points) < 3 {
		return points
	}

	pts := make([]mgl64.Vec2, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X() != pts[j].X() {
			return pts[i].X() < pts[j].X()
		}
		return pts[i].Y() < pts[j].Y()
	})

	cross := func(o, a, b mgl64.Vec2) float64 {
		return (a.X()-o.X())*(b.Y()-o.Y()) - (a.Y()-o.Y())*(b.X()-o.X())
	}

	n := len(pts)
	hull := make([]mgl64.Vec2, 0, 2*n)

	// lower chain
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper chain
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// PolygonArea2D returns the unsigned area of a simple polygon (shoelace
// formula).
func PolygonArea2D(polygon []mgl64.Vec2) float64 {
	area := 0.0
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += polygon[i].X()*polygon[j].Y() - polygon[j].X()*polygon[i].Y()
	}
	return 0.5 * math.Abs(area)
}
