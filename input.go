package kiln

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Keyboard and mouse codes, decoupled from the windowing library so the
// package core never imports it transitively through the controllers.
const (
	KeyC int = iota
	KeyF
	KeyL
	KeyM
	KeyR
	KeyS
	KeyDelete
	KeyEscape
	KeyShift
	MouseButtonLeft
	MouseButtonRight

	inputCodeCount
)

// Input is the per-frame input snapshot the host feeds the gizmos from.
type Input struct {
	Pressed      [inputCodeCount]bool
	JustPressed  [inputCodeCount]bool
	JustReleased [inputCodeCount]bool

	MouseX, MouseY            float64
	WindowWidth, WindowHeight int
}

func (in *Input) ShiftDown() bool { return in.Pressed[KeyShift] }

var keyToGlfw = map[int]glfw.Key{
	KeyC:      glfw.KeyC,
	KeyF:      glfw.KeyF,
	KeyL:      glfw.KeyL,
	KeyM:      glfw.KeyM,
	KeyR:      glfw.KeyR,
	KeyS:      glfw.KeyS,
	KeyDelete: glfw.KeyDelete,
	KeyEscape: glfw.KeyEscape,
	KeyShift:  glfw.KeyLeftShift,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}

// Poll refreshes the snapshot from a glfw window, tracking edges against
// the previous frame's state.
func (in *Input) Poll(w *glfw.Window) {
	glfw.PollEvents()

	for code, key := range keyToGlfw {
		in.update(code, w.GetKey(key) == glfw.Press)
	}
	for code, btn := range buttonToGlfw {
		in.update(code, w.GetMouseButton(btn) == glfw.Press)
	}

	in.MouseX, in.MouseY = w.GetCursorPos()
	in.WindowWidth, in.WindowHeight = w.GetSize()
}

func (in *Input) update(code int, pressed bool) {
	in.JustPressed[code] = pressed && !in.Pressed[code]
	in.JustReleased[code] = !pressed && in.Pressed[code]
	in.Pressed[code] = pressed
}
