package kiln

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
)

// Overlay is the vertical icon toolbar on the left edge of the viewport
// through which gizmos are hovered and activated. It owns the icon
// layout and the scaled icon images; drawing them is the host's job.
type Overlay struct {
	settings OverlaySettings

	viewportHeight float64
	icons          map[Kind]*OverlayIcon
}

// OverlayIcon carries one scaled image per gizmo state.
type OverlayIcon struct {
	Images [3]*image.RGBA // indexed by GizmoState
}

func NewOverlay(settings OverlaySettings) *Overlay {
	return &Overlay{
		settings: settings,
		icons:    make(map[Kind]*OverlayIcon),
	}
}

func (o *Overlay) SetViewportHeight(h float64) { o.viewportHeight = h }

// LoadIcons reads "<kind>_<state>.png" files from dir and rescales them
// to the configured icon size. Missing files fail the whole load; the
// toolbar is unusable without its images.
func (o *Overlay) LoadIcons(dir string) error {
	states := [3]string{"off", "hover", "on"}
	size := int(o.settings.IconSize)
	for k := Kind(0); k < kindCount; k++ {
		icon := &OverlayIcon{}
		for si, state := range states {
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", k, state))
			img, err := loadPNG(path)
			if err != nil {
				return err
			}
			icon.Images[si] = scaleImage(img, size, size)
		}
		o.icons[k] = icon
	}
	return nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlay icon: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("overlay icon %q: %w", path, err)
	}
	return img, nil
}

func scaleImage(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Icon returns the scaled image for one gizmo kind, nil when icons were
// never loaded.
func (o *Overlay) Icon(k Kind) *OverlayIcon { return o.icons[k] }

// IconRect returns the screen-space rectangle (top-left origin, pixels)
// of the icon for kind k, laid out as a vertical strip centered on the
// viewport.
func (o *Overlay) IconRect(k Kind) (min, max mgl64.Vec2) {
	s := o.settings.IconSize
	gap := o.settings.GapY
	total := float64(kindCount)*s + float64(kindCount-1)*gap
	top := 0.5 * (o.viewportHeight - total)
	y := top + float64(k)*(s+gap)
	return mgl64.Vec2{o.settings.OffsetX, y}, mgl64.Vec2{o.settings.OffsetX + s, y + s}
}

// KindAt returns the gizmo kind whose icon contains the mouse position,
// or KindNone.
func (o *Overlay) KindAt(pos mgl64.Vec2) Kind {
	for k := Kind(0); k < kindCount; k++ {
		min, max := o.IconRect(k)
		if pos.X() >= min.X() && pos.X() <= max.X() &&
			pos.Y() >= min.Y() && pos.Y() <= max.Y() {
			return k
		}
	}
	return KindNone
}
