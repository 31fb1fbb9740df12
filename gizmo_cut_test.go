package kiln

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/kiln3d/kiln/geom"
	"github.com/kiln3d/kiln/mesh"
)

// bedSelection places a cuboid with its bottom on the build plate.
func bedSelection(size mgl64.Vec3) *Selection {
	obj := NewModelObject("test")
	obj.AddVolume("box", mesh.Box(size))
	inst := obj.AddInstance()
	inst.Transform.Translation = mgl64.Vec3{0, 0, size.Z() / 2}
	return SelectInstance(obj, 0)
}

func TestCutClampsToSelectionHeight(t *testing.T) {
	sel := bedSelection(mgl64.Vec3{20, 20, 40})
	g := NewCutGizmo(DefaultSettings(), NewNopLogger())
	g.RecomputeLayout(sel)

	g.SetCutZ(-5)
	assert.Equal(t, 0.0, g.CutZ())

	g.SetCutZ(55)
	assert.Equal(t, 40.0, g.CutZ())

	g.SetCutZ(12.5)
	assert.Equal(t, 12.5, g.CutZ())
}

func TestCutResetsToMidHeightOnActivation(t *testing.T) {
	sel := bedSelection(mgl64.Vec3{20, 20, 40})
	g := NewCutGizmo(DefaultSettings(), NewNopLogger())

	g.SetState(StateOn)
	g.RecomputeLayout(sel)
	assert.InDelta(t, 20.0, g.CutZ(), 1e-9)

	// moving the plane and re-activating resets it again
	g.SetCutZ(3)
	g.SetState(StateOff)
	g.SetState(StateOn)
	g.RecomputeLayout(sel)
	assert.InDelta(t, 20.0, g.CutZ(), 1e-9)
}

// sideRay builds a ray travelling along -x at the given height, so its
// view plane is vertical and z displacements project cleanly.
func sideRay(z float64) geom.Linef3 {
	return geom.Linef3{
		A: mgl64.Vec3{100, 0, z},
		B: mgl64.Vec3{-100, 0, z},
	}
}

func TestCutDragMovesPlane(t *testing.T) {
	sel := bedSelection(mgl64.Vec3{20, 20, 40})
	g := NewCutGizmo(DefaultSettings(), NewNopLogger())
	g.SetState(StateOn)
	g.RecomputeLayout(sel)

	g.SetHoverID(0)
	g.StartDragging(sel)
	// grabber starts at cut_z + offset = 30; aiming 15 higher moves the
	// plane from 20 to 35
	g.Update(UpdateData{MouseRay: sideRay(45)})
	assert.InDelta(t, 35.0, g.CutZ(), 1e-9)

	// drags past the top clamp at the selection height
	g.Update(UpdateData{MouseRay: sideRay(200)})
	assert.Equal(t, 40.0, g.CutZ())

	g.Update(UpdateData{MouseRay: sideRay(-100)})
	assert.Equal(t, 0.0, g.CutZ())
}

func TestCutCommitHandsPlaneToSplitter(t *testing.T) {
	sel := bedSelection(mgl64.Vec3{20, 20, 40})
	g := NewCutGizmo(DefaultSettings(), NewNopLogger())
	g.SetState(StateOn)
	g.RecomputeLayout(sel)

	var gotZ float64
	var gotUpper, gotLower, gotRotate bool
	g.Cut = func(z float64, keepUpper, keepLower, rotateLower bool) {
		gotZ, gotUpper, gotLower, gotRotate = z, keepUpper, keepLower, rotateLower
	}
	notified := false
	g.OnChange = func() { notified = true }

	g.SetCutZ(12)
	g.PerformCut(true, false, true)
	assert.Equal(t, 12.0, gotZ)
	assert.True(t, gotUpper)
	assert.False(t, gotLower)
	assert.True(t, gotRotate)
	assert.True(t, notified)
}

func TestCutWithoutSplitterIsSafe(t *testing.T) {
	g := NewCutGizmo(DefaultSettings(), NewNopLogger())
	g.PerformCut(true, true, false) // must not panic
}
