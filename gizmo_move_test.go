package kiln

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/kiln3d/kiln/geom"
)

// vertRay builds a ray dropping straight down through (x, y), the shape
// mouse rays take under a top-down orthographic camera.
func vertRay(x, y float64) geom.Linef3 {
	return geom.Linef3{
		A: mgl64.Vec3{x, y, 100},
		B: mgl64.Vec3{x, y, -100},
	}
}

func TestMoveDragAlongX(t *testing.T) {
	sel := boxSelection(mgl64.Vec3{20, 20, 20})
	g := NewMoveGizmo(DefaultSettings(), NewNopLogger())
	g.RecomputeLayout(sel)

	// x grabber sits on the box face plus the standoff offset
	assert.Equal(t, mgl64.Vec3{20, 0, 0}, g.grabbers[0].Center)

	g.SetHoverID(0)
	g.StartDragging(sel)
	g.Update(UpdateData{MouseRay: vertRay(33.2, 0)})
	assert.InDelta(t, 13.2, g.Displacement().X(), 1e-9)
	assert.Equal(t, 0.0, g.Displacement().Y())
	assert.Equal(t, 0.0, g.Displacement().Z())
}

func TestMoveShiftSnapsToWholeUnits(t *testing.T) {
	sel := boxSelection(mgl64.Vec3{20, 20, 20})
	g := NewMoveGizmo(DefaultSettings(), NewNopLogger())
	g.RecomputeLayout(sel)

	g.SetHoverID(0)
	g.StartDragging(sel)
	g.Update(UpdateData{MouseRay: vertRay(33.2, 0), ShiftDown: true})
	assert.InDelta(t, 13.0, g.Displacement().X(), 1e-9)
}

func TestMoveNegativeDisplacement(t *testing.T) {
	sel := boxSelection(mgl64.Vec3{20, 20, 20})
	g := NewMoveGizmo(DefaultSettings(), NewNopLogger())
	g.RecomputeLayout(sel)

	g.SetHoverID(1)
	g.StartDragging(sel)
	g.Update(UpdateData{MouseRay: vertRay(0, 12.5)})
	assert.InDelta(t, -7.5, g.Displacement().Y(), 1e-9)
}

func TestMoveZeroStartingVector(t *testing.T) {
	g := NewMoveGizmo(DefaultSettings(), NewNopLogger())
	// degenerate snapshot: handle exactly on the box center
	g.startingDragPosition = mgl64.Vec3{}
	g.startingBoxCenter = mgl64.Vec3{}
	g.hoverID = 0
	g.Update(UpdateData{MouseRay: vertRay(5, 5)})
	assert.Equal(t, mgl64.Vec3{}, g.Displacement())
}

func TestMoveStopDraggingResets(t *testing.T) {
	sel := boxSelection(mgl64.Vec3{20, 20, 20})
	g := NewMoveGizmo(DefaultSettings(), NewNopLogger())
	g.RecomputeLayout(sel)

	g.SetHoverID(0)
	g.StartDragging(sel)
	g.Update(UpdateData{MouseRay: vertRay(25, 0)})
	assert.NotEqual(t, mgl64.Vec3{}, g.Displacement())

	g.StopDragging()
	assert.Equal(t, mgl64.Vec3{}, g.Displacement())
	assert.False(t, g.IsDragging())
}
