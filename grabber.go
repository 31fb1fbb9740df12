package kiln

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Grabber is a draggable handle: pure state recomputed every frame from
// the current selection, with no ownership of scene data. Half-size is
// derived from the reference size of the viewed object, never stored.
type Grabber struct {
	Center      mgl64.Vec3
	Orientation mgl64.Vec3 // Euler angles, radians
	Color       [3]float32
	Enabled     bool
	Dragging    bool
}

func NewGrabber() Grabber {
	return Grabber{
		Color:   [3]float32{1, 1, 1},
		Enabled: true,
	}
}

// HalfSize derives the grabber cube half-extent from the reference size
// (the largest extent of the selection's bounding box), inflated while
// the grabber is being dragged.
func (g *Grabber) HalfSize(referenceSize float64, s GrabberSettings) float64 {
	half := referenceSize * s.SizeFactor
	if half < s.MinHalfSize {
		half = s.MinHalfSize
	}
	if g.Dragging {
		half *= s.DraggingFactor
	}
	return half
}

// Draw appends the grabber's solid cube to the draw list.
func (g *Grabber) Draw(dl *DrawList, referenceSize float64, s GrabberSettings) {
	if !g.Enabled {
		return
	}
	dl.AddCube(g.Center, g.Orientation, g.HalfSize(referenceSize, s), g.Color)
}

// DrawForPicking appends the cube with the flat picking color instead of
// the display color.
func (g *Grabber) DrawForPicking(dl *DrawList, referenceSize float64, s GrabberSettings, group, id int) {
	if !g.Enabled {
		return
	}
	dl.AddCube(g.Center, g.Orientation, g.HalfSize(referenceSize, s), PickingColor(group, id))
}
