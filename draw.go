package kiln

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// The gizmos never rasterize anything themselves; they emit declarative
// draw requests into a DrawList which the host's renderer consumes once
// per frame. Everything is expressed in world space.

type DrawLine struct {
	From, To mgl64.Vec3
	Color    [3]float32
}

type DrawPolygon struct {
	// Vertices form a closed loop; the last vertex connects back to the
	// first.
	Vertices []mgl64.Vec3
	Normal   mgl64.Vec3
	Color    [3]float32
	Filled   bool
}

type DrawCube struct {
	Center      mgl64.Vec3
	Orientation mgl64.Vec3
	HalfSize    float64
	Color       [3]float32
}

type DrawList struct {
	Lines    []DrawLine
	Polygons []DrawPolygon
	Cubes    []DrawCube
}

func (dl *DrawList) Reset() {
	dl.Lines = dl.Lines[:0]
	dl.Polygons = dl.Polygons[:0]
	dl.Cubes = dl.Cubes[:0]
}

func (dl *DrawList) AddLine(from, to mgl64.Vec3, color [3]float32) {
	dl.Lines = append(dl.Lines, DrawLine{From: from, To: to, Color: color})
}

func (dl *DrawList) AddCube(center, orientation mgl64.Vec3, halfSize float64, color [3]float32) {
	dl.Cubes = append(dl.Cubes, DrawCube{
		Center:      center,
		Orientation: orientation,
		HalfSize:    halfSize,
		Color:       color,
	})
}

func (dl *DrawList) AddPolygon(vertices []mgl64.Vec3, normal mgl64.Vec3, color [3]float32, filled bool) {
	dl.Polygons = append(dl.Polygons, DrawPolygon{
		Vertices: vertices,
		Normal:   normal,
		Color:    color,
		Filled:   filled,
	})
}

// AddQuad emits an axis-aligned horizontal quad at height z, used by the
// cut gizmo's plane preview.
func (dl *DrawList) AddQuad(min, max mgl64.Vec2, z float64, color [3]float32, filled bool) {
	dl.AddPolygon([]mgl64.Vec3{
		{min.X(), min.Y(), z},
		{max.X(), min.Y(), z},
		{max.X(), max.Y(), z},
		{min.X(), max.Y(), z},
	}, mgl64.Vec3{0, 0, 1}, color, filled)
}

// AddCircle emits a line-loop circle of the given radius in the plane
// spanned by the (unit, orthogonal) axes u and v around center.
func (dl *DrawList) AddCircle(center, u, v mgl64.Vec3, radius float64, segments int, color [3]float32) {
	if segments < 3 {
		segments = 3
	}
	prev := center.Add(u.Mul(radius))
	for i := 1; i <= segments; i++ {
		a := 2.0 * math.Pi * float64(i) / float64(segments)
		p := center.Add(u.Mul(radius * math.Cos(a))).Add(v.Mul(radius * math.Sin(a)))
		dl.AddLine(prev, p, color)
		prev = p
	}
}

// Shared handle palette.
var (
	ColorBase      = [3]float32{0.75, 0.75, 0.75}
	ColorDragging  = [3]float32{1.0, 1.0, 1.0}
	ColorHighlight = [3]float32{1.0, 0.38, 0.0}
	AxesColors     = [3][3]float32{
		{1.0, 0.0, 0.0},
		{0.0, 1.0, 0.0},
		{0.0, 0.0, 1.0},
	}
)
