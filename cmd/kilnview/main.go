package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/kiln3d/kiln"
	"github.com/kiln3d/kiln/geom"
	"github.com/kiln3d/kiln/mesh"
)

func init() {
	// glfw event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	settingsPath := flag.String("settings", "", "YAML settings file (defaults apply when empty)")
	modelPath := flag.String("model", "", "3MF file to load (a demo box is used when empty)")
	iconDir := flag.String("icons", "", "directory with the overlay toolbar icons")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := run(*settingsPath, *modelPath, *iconDir, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "kilnview:", err)
		os.Exit(1)
	}
}

func run(settingsPath, modelPath, iconDir string, debug bool) error {
	settings := kiln.DefaultSettings()
	if settingsPath != "" {
		var err error
		settings, err = kiln.LoadSettings(settingsPath)
		if err != nil {
			return err
		}
	}
	if debug {
		settings.Logging.Debug = true
	}
	log := kiln.NewLogger(settings.Logging)
	defer log.Sync()

	object, err := loadObject(modelPath)
	if err != nil {
		return err
	}
	object.AddInstance()
	sel := kiln.SelectInstance(object, 0)

	gizmos := kiln.NewGizmoCollection(settings, log)
	if iconDir != "" {
		if err := gizmos.Overlay().LoadIcons(iconDir); err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(1280, 800, "kilnview", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	var input kiln.Input
	var dl kiln.DrawList
	dragging := false

	log.Infof("kilnview: %q loaded, %d volumes", object.Name, len(object.Volumes))

	for !window.ShouldClose() {
		input.Poll(window)
		mousePos := mgl64.Vec2{input.MouseX, input.MouseY}

		if input.JustPressed[kiln.KeyEscape] {
			gizmos.Deactivate()
		}
		for _, key := range []int{kiln.KeyM, kiln.KeyS, kiln.KeyR, kiln.KeyC, kiln.KeyF, kiln.KeyL} {
			if input.JustPressed[key] {
				gizmos.HandleShortcut(key, sel)
			}
		}

		gizmos.Refresh(sel)
		gizmos.Overlay().SetViewportHeight(float64(input.WindowHeight))
		gizmos.UpdateHover(mousePos, sel)

		if input.JustPressed[kiln.MouseButtonLeft] {
			if !gizmos.HandleOverlayClick(mousePos, sel) && gizmos.CurrentKind() != kiln.KindNone {
				gizmos.StartDragging(sel)
				dragging = true
			}
		}
		if dragging {
			ray := mouseRay(mousePos, input)
			mp := mousePos
			gizmos.Update(kiln.UpdateData{
				MouseRay:  ray,
				ShiftDown: input.ShiftDown(),
				MousePos:  &mp,
			})
		}
		if input.JustReleased[kiln.MouseButtonLeft] && dragging {
			gizmos.StopDragging()
			dragging = false
		}

		gizmos.RecomputeLayout(sel)
		dl.Reset()
		gizmos.DrawGeometry(&dl, sel)
		// Handing dl to a renderer is where a real host plugs in; this
		// harness only exercises the interaction loop.
		if log.DebugEnabled() {
			log.Debugf("frame: %d lines, %d polygons, %d cubes",
				len(dl.Lines), len(dl.Polygons), len(dl.Cubes))
		}

		window.SwapBuffers()
	}
	return nil
}

// mouseRay builds a crude top-down orthographic mouse ray for the demo
// harness. A real host derives this from its camera.
func mouseRay(pos mgl64.Vec2, input kiln.Input) geom.Linef3 {
	x := pos.X() - float64(input.WindowWidth)/2
	y := float64(input.WindowHeight)/2 - pos.Y()
	return geom.Linef3{
		A: mgl64.Vec3{x, y, 1000},
		B: mgl64.Vec3{x, y, -1000},
	}
}

func loadObject(path string) (*kiln.ModelObject, error) {
	object := kiln.NewModelObject("demo")
	if path == "" {
		object.AddVolume("box", mesh.Box(mgl64.Vec3{20, 20, 20}))
		return object, nil
	}
	meshes, err := mesh.Load3MF(path)
	if err != nil {
		return nil, err
	}
	object.Name = path
	for name, m := range meshes {
		object.AddVolume(name, m)
	}
	return object, nil
}
