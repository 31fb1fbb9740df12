// Package kiln implements the interactive manipulation gizmos of a 3D
// viewport: axis move, rotate, scale, planar cut, flatten-on-face and
// support-point placement. The package decides what handle geometry to
// draw and how drags mutate transforms; rasterization, windowing and the
// scene graph live with the host.
package kiln

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln/geom"
)

// GizmoState is the shared lifecycle of every gizmo.
type GizmoState int

const (
	StateOff GizmoState = iota
	StateHover
	StateOn
)

func (s GizmoState) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateHover:
		return "hover"
	case StateOn:
		return "on"
	}
	return "unknown"
}

// UpdateData carries one tick of input into the active gizmo. It is
// immutable and never retained beyond the call.
type UpdateData struct {
	MouseRay  geom.Linef3
	ShiftDown bool
	MousePos  *mgl64.Vec2
}

// Gizmo is the contract every controller implements. The host drives it:
// RecomputeLayout once per frame before any drawing query, SetHoverID
// from the picking readback, then StartDragging/Update/StopDragging
// around a drag session. Committing the result is the host's business;
// the gizmo only accumulates it.
type Gizmo interface {
	Name() string
	State() GizmoState
	SetState(state GizmoState)

	// IsActivable reports whether the current selection qualifies for
	// this gizmo.
	IsActivable(sel *Selection) bool

	HoverID() int
	SetHoverID(id int)
	EnableGrabber(i int)
	DisableGrabber(i int)

	StartDragging(sel *Selection)
	StopDragging()
	IsDragging() bool
	Update(data UpdateData)

	// RecomputeLayout refreshes grabber positions and cached sizes from
	// the selection. Drawing queries after it are read-only.
	RecomputeLayout(sel *Selection)
	DrawGeometry(dl *DrawList, sel *Selection)
	DrawForPicking(dl *DrawList, sel *Selection)
}

// gizmoBase holds the state shared by all controllers: grabbers, hover
// tracking and the lifecycle state. Index-based operations silently
// ignore out-of-range ids; they originate from an asynchronous picking
// readback that can race with selection changes.
type gizmoBase struct {
	name     string
	group    int
	state    GizmoState
	hoverID  int
	grabbers []Grabber
	settings *Settings
	log      Logger
}

func newGizmoBase(name string, group, grabberCount int, settings *Settings, log Logger) gizmoBase {
	b := gizmoBase{
		name:     name,
		group:    group,
		state:    StateOff,
		hoverID:  -1,
		grabbers: make([]Grabber, grabberCount),
		settings: settings,
		log:      log,
	}
	for i := range b.grabbers {
		b.grabbers[i] = NewGrabber()
	}
	return b
}

func (b *gizmoBase) Name() string              { return b.name }
func (b *gizmoBase) State() GizmoState         { return b.state }
func (b *gizmoBase) SetState(state GizmoState) { b.state = state }
func (b *gizmoBase) HoverID() int              { return b.hoverID }

func (b *gizmoBase) SetHoverID(id int) {
	if len(b.grabbers) != 0 && id >= len(b.grabbers) {
		return
	}
	if id < -1 {
		id = -1
	}
	b.hoverID = id
}

func (b *gizmoBase) EnableGrabber(i int) {
	if i >= 0 && i < len(b.grabbers) {
		b.grabbers[i].Enabled = true
	}
}

func (b *gizmoBase) DisableGrabber(i int) {
	if i >= 0 && i < len(b.grabbers) {
		b.grabbers[i].Enabled = false
	}
}

// startDragging flags the hovered grabber. It reports whether a drag
// session actually began; with nothing hovered it is a no-op.
func (b *gizmoBase) startDragging() bool {
	if b.hoverID == -1 {
		return false
	}
	if b.hoverID < len(b.grabbers) {
		b.grabbers[b.hoverID].Dragging = true
	}
	return true
}

func (b *gizmoBase) stopDragging() {
	for i := range b.grabbers {
		b.grabbers[i].Dragging = false
	}
}

func (b *gizmoBase) IsDragging() bool {
	for i := range b.grabbers {
		if b.grabbers[i].Dragging {
			return true
		}
	}
	return false
}

// grabberColor picks the display color for grabber i given the current
// hover state.
func (b *gizmoBase) grabberColor(i int, base [3]float32) [3]float32 {
	if b.hoverID == i {
		if b.grabbers[i].Dragging {
			return ColorDragging
		}
		return ColorHighlight
	}
	return base
}
