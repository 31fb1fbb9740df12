package kiln

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind indexes the fixed set of gizmo variants.
type Kind int

const (
	KindNone Kind = -1

	KindMove Kind = iota - 1
	KindScale
	KindRotate
	KindCut
	KindFlatten
	KindSlaSupports

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindScale:
		return "scale"
	case KindRotate:
		return "rotate"
	case KindCut:
		return "cut"
	case KindFlatten:
		return "flatten"
	case KindSlaSupports:
		return "sla_supports"
	}
	return "none"
}

// GizmoCollection owns one instance of every gizmo variant plus the
// single "current" pointer. Mutual exclusion lives here: activating one
// kind deactivates whatever was active, and gizmos never know about each
// other.
type GizmoCollection struct {
	gizmos  [kindCount]Gizmo
	current Kind

	overlay  *Overlay
	settings *Settings
	log      Logger
}

func NewGizmoCollection(settings *Settings, log Logger) *GizmoCollection {
	if settings == nil {
		settings = DefaultSettings()
	}
	if log == nil {
		log = NewNopLogger()
	}
	c := &GizmoCollection{
		current:  KindNone,
		overlay:  NewOverlay(settings.Overlay),
		settings: settings,
		log:      log,
	}
	c.gizmos[KindMove] = NewMoveGizmo(settings, log)
	c.gizmos[KindScale] = NewScaleGizmo(settings, log)
	c.gizmos[KindRotate] = NewRotate3DGizmo(settings, log)
	c.gizmos[KindCut] = NewCutGizmo(settings, log)
	c.gizmos[KindFlatten] = NewFlattenGizmo(settings, log)
	c.gizmos[KindSlaSupports] = NewSlaSupportGizmo(settings, log)
	return c
}

func (c *GizmoCollection) Overlay() *Overlay { return c.overlay }

// Get returns the gizmo of the given kind, nil for KindNone.
func (c *GizmoCollection) Get(k Kind) Gizmo {
	if k <= KindNone || k >= kindCount {
		return nil
	}
	return c.gizmos[k]
}

func (c *GizmoCollection) CurrentKind() Kind { return c.current }

func (c *GizmoCollection) Current() Gizmo {
	return c.Get(c.current)
}

// Activate makes kind the current gizmo if the selection qualifies,
// switching off whatever was current. Activating the current kind again
// toggles it off.
func (c *GizmoCollection) Activate(kind Kind, sel *Selection) {
	if kind == c.current {
		c.Deactivate()
		return
	}
	g := c.Get(kind)
	if g == nil || !g.IsActivable(sel) {
		return
	}
	c.Deactivate()
	g.SetState(StateOn)
	c.current = kind
	c.log.Debugf("gizmos: activated %s", kind)
}

func (c *GizmoCollection) Deactivate() {
	if g := c.Current(); g != nil {
		g.StopDragging()
		g.SetState(StateOff)
		c.log.Debugf("gizmos: deactivated %s", c.current)
	}
	c.current = KindNone
}

// Refresh demotes the current gizmo when the selection stops qualifying
// for it, and keeps the overlay hover states in sync.
func (c *GizmoCollection) Refresh(sel *Selection) {
	if g := c.Current(); g != nil && !g.IsActivable(sel) {
		c.Deactivate()
	}
	for k := Kind(0); k < kindCount; k++ {
		g := c.gizmos[k]
		if k == c.current {
			continue
		}
		if g.State() == StateHover && !g.IsActivable(sel) {
			g.SetState(StateOff)
		}
	}
}

// UpdateHover applies the overlay hover transition: a gizmo whose icon
// is under the cursor and whose selection qualifies goes Off -> Hover;
// leaving the icon reverses it. The current gizmo stays On.
func (c *GizmoCollection) UpdateHover(mousePos mgl64.Vec2, sel *Selection) {
	hovered := c.overlay.KindAt(mousePos)
	for k := Kind(0); k < kindCount; k++ {
		if k == c.current {
			continue
		}
		g := c.gizmos[k]
		if k == hovered && g.IsActivable(sel) {
			g.SetState(StateHover)
		} else if g.State() == StateHover {
			g.SetState(StateOff)
		}
	}
}

// HandleOverlayClick toggles the gizmo whose icon sits under the cursor.
// It reports whether the click was consumed by the toolbar.
func (c *GizmoCollection) HandleOverlayClick(mousePos mgl64.Vec2, sel *Selection) bool {
	kind := c.overlay.KindAt(mousePos)
	if kind == KindNone {
		return false
	}
	c.Activate(kind, sel)
	return true
}

// HandleShortcut maps a key press to its gizmo toggle. It reports
// whether the key was consumed.
func (c *GizmoCollection) HandleShortcut(key int, sel *Selection) bool {
	var kind Kind
	switch key {
	case KeyM:
		kind = KindMove
	case KeyS:
		kind = KindScale
	case KeyR:
		kind = KindRotate
	case KeyC:
		kind = KindCut
	case KeyF:
		kind = KindFlatten
	case KeyL:
		kind = KindSlaSupports
	default:
		return false
	}
	c.Activate(kind, sel)
	return true
}

// Per-frame forwarding to the current gizmo. All of these are no-ops
// with nothing active.

func (c *GizmoCollection) SetHoverID(id int) {
	if g := c.Current(); g != nil {
		g.SetHoverID(id)
	}
}

// SetHoverFromPicking decodes the blue channel of the picking readback
// pixel and routes the resulting hover id to the current gizmo.
func (c *GizmoCollection) SetHoverFromPicking(blue uint8) {
	c.SetHoverID(PickingIDFromBlue(blue))
}

// Result accessors, read by the host when it commits a finished drag.

func (c *GizmoCollection) Displacement() mgl64.Vec3 {
	if g, ok := c.Get(KindMove).(*MoveGizmo); ok {
		return g.Displacement()
	}
	return mgl64.Vec3{}
}

func (c *GizmoCollection) Scale() mgl64.Vec3 {
	if g, ok := c.Get(KindScale).(*ScaleGizmo); ok {
		return g.Scale()
	}
	return mgl64.Vec3{1, 1, 1}
}

func (c *GizmoCollection) Rotation() mgl64.Vec3 {
	if g, ok := c.Get(KindRotate).(*Rotate3DGizmo); ok {
		return g.Rotation()
	}
	return mgl64.Vec3{}
}

func (c *GizmoCollection) FlatteningNormal() mgl64.Vec3 {
	if g, ok := c.Get(KindFlatten).(*FlattenGizmo); ok {
		return g.FlatteningNormal()
	}
	return mgl64.Vec3{}
}

func (c *GizmoCollection) StartDragging(sel *Selection) {
	if g := c.Current(); g != nil {
		g.StartDragging(sel)
	}
}

func (c *GizmoCollection) StopDragging() {
	if g := c.Current(); g != nil {
		g.StopDragging()
	}
}

func (c *GizmoCollection) Update(data UpdateData) {
	g := c.Current()
	if g == nil || g.HoverID() == -1 {
		return
	}
	g.Update(data)
}

func (c *GizmoCollection) RecomputeLayout(sel *Selection) {
	if g := c.Current(); g != nil {
		g.RecomputeLayout(sel)
	}
}

func (c *GizmoCollection) DrawGeometry(dl *DrawList, sel *Selection) {
	if g := c.Current(); g != nil {
		g.DrawGeometry(dl, sel)
	}
}

func (c *GizmoCollection) DrawForPicking(dl *DrawList, sel *Selection) {
	if g := c.Current(); g != nil {
		g.DrawForPicking(dl, sel)
	}
}
