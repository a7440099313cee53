// Package config loads and validates the engine's YAML configuration:
// default viewport, formatter behavior, undo depth, and lint severities.
package config

import (
	"fmt"
	"os"

	"github.com/flowdesign/fd/format"
	"github.com/flowdesign/fd/layout"
	"gopkg.in/yaml.v3"
)

// Config specifies the tunable behavior of the engine's command-line
// tools and editor host. It supports YAML parsing and validation.
type Config struct {
	// Viewport is the canvas size documents are laid out against.
	Viewport ViewportCfg `yaml:"viewport"`

	// Format controls which passes fdfmt runs by default.
	Format FormatCfg `yaml:"format"`

	// MaxUndoDepth bounds how many commands the undo stack retains.
	MaxUndoDepth int `yaml:"maxUndoDepth"`

	// LintSeverity downgrades or upgrades specific lint rules by name,
	// e.g. {"unused-style": "warning"} to treat an Info-level rule as a
	// build-breaking Warning.
	LintSeverity map[string]string `yaml:"lintSeverity,omitempty"`
}

// ViewportCfg is the YAML-facing form of layout.Viewport.
type ViewportCfg struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FormatCfg is the YAML-facing form of format.Config.
type FormatCfg struct {
	DedupUse    bool `yaml:"dedupUse"`
	HoistStyles bool `yaml:"hoistStyles"`
	SortNodes   bool `yaml:"sortNodes"`
}

// Default returns the engine's built-in configuration, used when no
// config file is present.
func Default() Config {
	fc := format.DefaultConfig()
	return Config{
		Viewport:     ViewportCfg{Width: layout.DefaultViewport.Width, Height: layout.DefaultViewport.Height},
		Format:       FormatCfg{DedupUse: fc.DedupUse, HoistStyles: fc.HoistStyles, SortNodes: fc.SortNodes},
		MaxUndoDepth: 100,
	}
}

// Load reads and validates a YAML configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates YAML configuration from data, starting
// from Default() so a partial file only overrides what it sets.
func LoadBytes(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks all configuration constraints, returning the first
// failure found.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport: width and height must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.MaxUndoDepth < 1 {
		return fmt.Errorf("maxUndoDepth must be at least 1, got %d", c.MaxUndoDepth)
	}
	for rule, sev := range c.LintSeverity {
		if sev != "warning" && sev != "info" {
			return fmt.Errorf("lintSeverity[%q]: severity must be \"warning\" or \"info\", got %q", rule, sev)
		}
	}
	return nil
}

// ToViewport converts the config's viewport section to a layout.Viewport.
func (c Config) ToViewport() layout.Viewport {
	return layout.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// ToFormatConfig converts the config's format section to a format.Config.
func (c Config) ToFormatConfig() format.Config {
	return format.Config{DedupUse: c.Format.DedupUse, HoistStyles: c.Format.HoistStyles, SortNodes: c.Format.SortNodes}
}

// ToYAML serializes the config back to YAML bytes, e.g. for `fdspec
// config` to write out a starting file.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
