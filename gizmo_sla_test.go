package kiln

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slaTestGizmo looks straight down the -z axis with an orthographic
// camera mapping the 800x800 viewport onto [-50,50] world units.
func slaTestGizmo() (*SlaSupportGizmo, *Selection) {
	sel := boxSelection(mgl64.Vec3{20, 20, 20})
	g := NewSlaSupportGizmo(DefaultSettings(), NewNopLogger())
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 100}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Ortho(-50, 50, -50, 50, 0.1, 1000)
	g.SetCamera(view, proj, [4]int{0, 0, 800, 800})
	g.RecomputeLayout(sel)
	return g, sel
}

func TestSlaClickAddsSupportPoint(t *testing.T) {
	g, sel := slaTestGizmo()

	// viewport center aims at the middle of the box top face
	ok := g.ClickedOnObject(mgl64.Vec2{400, 400}, sel)
	require.True(t, ok)
	require.Len(t, sel.Object.SupportPoints, 1)

	p := sel.Object.SupportPoints[0]
	assert.InDelta(t, 0.0, p.X(), 1e-6)
	assert.InDelta(t, 0.0, p.Y(), 1e-6)
	assert.InDelta(t, 10.0, p.Z(), 1e-6)

	// grabbers track the list 1:1
	assert.Len(t, g.grabbers, 1)
}

func TestSlaClickMissAddsNothing(t *testing.T) {
	g, sel := slaTestGizmo()

	// 1 world unit is 8 pixels; (790, 400) aims at x=48.75, well past
	// the box
	ok := g.ClickedOnObject(mgl64.Vec2{790, 400}, sel)
	assert.False(t, ok)
	assert.Empty(t, sel.Object.SupportPoints)
	assert.Empty(t, g.grabbers)
}

func TestSlaDragMovesSinglePoint(t *testing.T) {
	g, sel := slaTestGizmo()
	require.True(t, g.ClickedOnObject(mgl64.Vec2{400, 400}, sel))
	require.True(t, g.ClickedOnObject(mgl64.Vec2{416, 400}, sel))
	require.Len(t, sel.Object.SupportPoints, 2)

	notified := 0
	g.OnChange = func() { notified++ }

	g.SetHoverID(0)
	g.StartDragging(sel)
	// 432px maps to x=4 on the top face
	pos := mgl64.Vec2{432, 400}
	g.Update(UpdateData{MousePos: &pos})

	moved := sel.Object.SupportPoints[0]
	assert.InDelta(t, 4.0, moved.X(), 1e-6)
	assert.InDelta(t, 10.0, moved.Z(), 1e-6)
	// the other point stays put
	assert.InDelta(t, 2.0, sel.Object.SupportPoints[1].X(), 1e-6)
	assert.Equal(t, 1, notified)

	// dragging off the mesh leaves the point untouched
	miss := mgl64.Vec2{790, 400}
	g.Update(UpdateData{MousePos: &miss})
	assert.Equal(t, moved, sel.Object.SupportPoints[0])
	assert.Equal(t, 1, notified)

	g.StopDragging()
}

func TestSlaUpdateRequiresDragSession(t *testing.T) {
	g, sel := slaTestGizmo()
	require.True(t, g.ClickedOnObject(mgl64.Vec2{400, 400}, sel))

	before := sel.Object.SupportPoints[0]
	g.SetHoverID(0)
	// no StartDragging: hovering alone must not move anything
	pos := mgl64.Vec2{432, 400}
	g.Update(UpdateData{MousePos: &pos})
	assert.Equal(t, before, sel.Object.SupportPoints[0])
}

func TestSlaDeleteCurrent(t *testing.T) {
	g, sel := slaTestGizmo()
	require.True(t, g.ClickedOnObject(mgl64.Vec2{400, 400}, sel))
	require.True(t, g.ClickedOnObject(mgl64.Vec2{416, 400}, sel))

	g.SetHoverID(1)
	g.DeleteCurrent(false, sel)
	require.Len(t, sel.Object.SupportPoints, 1)
	assert.Len(t, g.grabbers, 1)
	assert.Equal(t, -1, g.HoverID())

	// deleting with nothing hovered is a no-op
	g.DeleteCurrent(false, sel)
	assert.Len(t, sel.Object.SupportPoints, 1)

	g.DeleteCurrent(true, sel)
	assert.Empty(t, sel.Object.SupportPoints)
	assert.Empty(t, g.grabbers)
}

func TestSlaActivableOnFullInstanceOnly(t *testing.T) {
	g, _ := slaTestGizmo()
	obj := NewModelObject("multi")
	obj.AddInstance()
	volSel := SelectVolume(obj, 0, 0)
	assert.False(t, g.IsActivable(volSel))

	full := SelectInstance(obj, 0)
	assert.True(t, g.IsActivable(full))
}
