package kiln

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings collects the tunables of the gizmo family. The defaults mirror
// the values the controllers were designed around; hosts can override
// them from a YAML file.
type Settings struct {
	Grabber GrabberSettings `yaml:"grabber"`
	Move    MoveSettings    `yaml:"move"`
	Scale   ScaleSettings   `yaml:"scale"`
	Rotate  RotateSettings  `yaml:"rotate"`
	Cut     CutSettings     `yaml:"cut"`
	Flatten FlattenSettings `yaml:"flatten"`
	Overlay OverlaySettings `yaml:"overlay"`
	Logging LoggingSettings `yaml:"logging"`
}

type GrabberSettings struct {
	SizeFactor     float64 `yaml:"size_factor"`
	MinHalfSize    float64 `yaml:"min_half_size"`
	DraggingFactor float64 `yaml:"dragging_factor"`
}

type MoveSettings struct {
	Offset   float64 `yaml:"offset"`
	SnapStep float64 `yaml:"snap_step"`
}

type ScaleSettings struct {
	Offset   float64 `yaml:"offset"`
	SnapStep float64 `yaml:"snap_step"`
}

type RotateSettings struct {
	Offset        float64 `yaml:"offset"`
	SnapRegions   int     `yaml:"snap_regions"`
	ScaleSteps    int     `yaml:"scale_steps"`
	LongTooth     float64 `yaml:"long_tooth"`
	GrabberOffset float64 `yaml:"grabber_offset"`
}

type CutSettings struct {
	Offset float64 `yaml:"offset"`
	Margin float64 `yaml:"margin"`
}

type FlattenSettings struct {
	// MaxPlanes is bounded by the picking codec id range.
	MaxPlanes int `yaml:"max_planes"`
}

type OverlaySettings struct {
	IconSize float64 `yaml:"icon_size"`
	OffsetX  float64 `yaml:"offset_x"`
	GapY     float64 `yaml:"gap_y"`
}

type LoggingSettings struct {
	Debug      bool   `yaml:"debug"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Grabber: GrabberSettings{
			SizeFactor:     0.025,
			MinHalfSize:    1.5,
			DraggingFactor: 1.25,
		},
		Move: MoveSettings{
			Offset:   10.0,
			SnapStep: 1.0,
		},
		Scale: ScaleSettings{
			Offset:   5.0,
			SnapStep: 0.05,
		},
		Rotate: RotateSettings{
			Offset:        5.0,
			SnapRegions:   8,
			ScaleSteps:    72,
			LongTooth:     0.1,
			GrabberOffset: 0.15,
		},
		Cut: CutSettings{
			Offset: 10.0,
			Margin: 20.0,
		},
		Flatten: FlattenSettings{
			MaxPlanes: 254,
		},
		Overlay: OverlaySettings{
			IconSize: 48.0,
			OffsetX:  10.0,
			GapY:     5.0,
		},
		Logging: LoggingSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// LoadSettings reads overrides from a YAML file on top of the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %q: %w", path, err)
	}
	return s, nil
}
