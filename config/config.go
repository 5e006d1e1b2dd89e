// Package config loads the run-host configuration for an ambient particle
// field from YAML, layered over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/phanxgames/ambient"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run-host configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Field     FieldConfig     `yaml:"field"`
	Theme     ThemeConfig     `yaml:"theme"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Debug     bool            `yaml:"debug"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	ShowFPS       bool    `yaml:"show_fps"`
	FadeIn        float64 `yaml:"fade_in"` // seconds
	ScreenshotDir string  `yaml:"screenshot_dir"`
	// Script is a pointer script played instead of real input. Empty
	// disables scripting.
	Script          string `yaml:"script"`
	ExitAfterScript bool   `yaml:"exit_after_script"`
}

// FieldConfig holds particle field settings.
type FieldConfig struct {
	SurfaceID  string     `yaml:"surface_id"`
	Device     string     `yaml:"device"`     // auto, standard, touch
	Population int        `yaml:"population"` // 0 = derive from device
	Shapes     []string   `yaml:"shapes"`
	Size       RangeValue `yaml:"size"`
	Opacity    RangeValue `yaml:"opacity"`
}

// RangeValue is a YAML-friendly min/max pair.
type RangeValue struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ThemeConfig holds the initial theme signal.
type ThemeConfig struct {
	Dark bool `yaml:"dark"`
}

// TelemetryConfig holds frame statistics output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables output
	Window    int    `yaml:"window"`     // frames aggregated per row
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FadeIn < 0 {
		errs = append(errs, fmt.Errorf("window.fade_in %v must not be negative", c.Window.FadeIn))
	}
	if _, _, err := parseDevice(c.Field.Device); err != nil {
		errs = append(errs, err)
	}
	if c.Field.Population < 0 {
		errs = append(errs, fmt.Errorf("field.population %d must not be negative", c.Field.Population))
	}
	if _, err := c.Shapes(); err != nil {
		errs = append(errs, err)
	}
	if err := checkRange("field.size", c.Field.Size, 0, 0); err != nil {
		errs = append(errs, err)
	}
	if err := checkRange("field.opacity", c.Field.Opacity, 0, 1); err != nil {
		errs = append(errs, err)
	}
	if c.Telemetry.Window < 0 {
		errs = append(errs, fmt.Errorf("telemetry.window %d must not be negative", c.Telemetry.Window))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// checkRange requires lo <= Min <= Max, and Max <= hi when hi > 0.
func checkRange(name string, r RangeValue, lo, hi float64) error {
	if r.Min < lo || r.Max < r.Min || (hi > 0 && r.Max > hi) {
		return fmt.Errorf("%s [%v, %v] out of bounds", name, r.Min, r.Max)
	}
	return nil
}

// DeviceClass resolves field.device. "auto" asks ambient.DetectDevice.
func (c *Config) DeviceClass() (ambient.DeviceClass, error) {
	d, auto, err := parseDevice(c.Field.Device)
	if err != nil {
		return 0, err
	}
	if auto {
		return ambient.DetectDevice(), nil
	}
	return d, nil
}

func parseDevice(name string) (d ambient.DeviceClass, auto bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return 0, true, nil
	case "standard":
		return ambient.DeviceStandard, false, nil
	case "touch":
		return ambient.DeviceTouch, false, nil
	}
	return 0, false, fmt.Errorf("field.device %q: want auto, standard or touch", name)
}

// Shapes parses field.shapes.
func (c *Config) Shapes() ([]ambient.Shape, error) {
	shapes := make([]ambient.Shape, 0, len(c.Field.Shapes))
	for _, name := range c.Field.Shapes {
		s, err := ambient.ParseShape(name)
		if err != nil {
			return nil, fmt.Errorf("field.shapes: %w", err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// FieldConfig builds the ambient.FieldConfig described by c.
func (c *Config) FieldConfig() (ambient.FieldConfig, error) {
	device, err := c.DeviceClass()
	if err != nil {
		return ambient.FieldConfig{}, err
	}
	shapes, err := c.Shapes()
	if err != nil {
		return ambient.FieldConfig{}, err
	}
	return ambient.FieldConfig{
		SurfaceID:  c.Field.SurfaceID,
		Device:     device,
		Population: c.Field.Population,
		Shapes:     shapes,
		Size:       ambient.Range{Min: c.Field.Size.Min, Max: c.Field.Size.Max},
		Opacity:    ambient.Range{Min: c.Field.Opacity.Min, Max: c.Field.Opacity.Max},
	}, nil
}

// RunConfig builds the ambient.RunConfig described by c, loading the
// pointer script if one is configured. OnFrame is left for the caller.
func (c *Config) RunConfig() (ambient.RunConfig, error) {
	fc, err := c.FieldConfig()
	if err != nil {
		return ambient.RunConfig{}, err
	}
	var script *ambient.ScriptRunner
	if c.Window.Script != "" {
		data, err := os.ReadFile(c.Window.Script)
		if err != nil {
			return ambient.RunConfig{}, fmt.Errorf("reading script: %w", err)
		}
		if script, err = ambient.LoadScript(data); err != nil {
			return ambient.RunConfig{}, err
		}
	}
	return ambient.RunConfig{
		Title:         c.Window.Title,
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		SurfaceID:     c.Field.SurfaceID,
		Field:         fc,
		DarkMode:      c.Theme.Dark,
		FadeIn:        float32(c.Window.FadeIn),
		ShowFPS:       c.Window.ShowFPS,
		ScreenshotDir: c.Window.ScreenshotDir,
		Debug:         c.Debug,

		Script:          script,
		ExitAfterScript: c.Window.ExitAfterScript,
	}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
