// Package config handles controller configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/engine/look"
	"github.com/Faultbox/charctl/internal/engine/motion"
)

// Config holds all settings.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Look       LookConfig       `yaml:"look"`
	Bindings   BindingsConfig   `yaml:"bindings"`
	Body       BodyConfig       `yaml:"body"`
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
	Reporting  ReportingConfig  `yaml:"reporting"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-"`
}

// ControllerConfig holds motion tuning.
type ControllerConfig struct {
	WalkSpeed     float32 `yaml:"walk_speed"`
	RunSpeed      float32 `yaml:"run_speed"`
	JumpSpeed     float32 `yaml:"jump_speed"`
	FixedTimestep float32 `yaml:"fixed_timestep"` // seconds
	Fly           bool    `yaml:"fly"`
}

// LookConfig holds mouse look settings.
type LookConfig struct {
	Sensitivity float32 `yaml:"sensitivity"` // radians per pixel
}

// BindingsConfig maps action names to key names, e.g. "jump: Space".
// Actions left out keep their default key.
type BindingsConfig map[string]string

// BodyConfig selects and sets up the physics backend.
type BodyConfig struct {
	Backend string     `yaml:"backend"` // kinematic, impulse or force
	Mass    float32    `yaml:"mass"`
	Floor   float32    `yaml:"floor"`
	Spawn   [3]float32 `yaml:"spawn,flow"`
}

// WindowConfig holds display settings for the demo.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ReportingConfig holds failure reporting settings.
type ReportingConfig struct {
	SentryDSN   string `yaml:"sentry_dsn"`
	Environment string `yaml:"environment"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	bindings := make(BindingsConfig)
	defaults := input.DefaultBindings()
	for _, a := range input.Actions() {
		bindings[a.String()] = defaults.Key(a).String()
	}

	return &Config{
		Controller: ControllerConfig{
			WalkSpeed:     motion.DefaultWalkSpeed,
			RunSpeed:      motion.DefaultRunSpeed,
			JumpSpeed:     motion.DefaultJumpSpeed,
			FixedTimestep: motion.DefaultFixedTimestep,
		},
		Look: LookConfig{
			Sensitivity: look.DefaultSensitivity,
		},
		Bindings: bindings,
		Body: BodyConfig{
			Backend: "kinematic",
			Mass:    80,
		},
		Window: WindowConfig{
			Title:  "charctl",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Reporting: ReportingConfig{
			Environment: "development",
		},
	}
}

// Motion returns the controller tuning.
func (c *Config) Motion() motion.Config {
	return motion.Config{
		Fly:           c.Controller.Fly,
		WalkSpeed:     c.Controller.WalkSpeed,
		RunSpeed:      c.Controller.RunSpeed,
		JumpSpeed:     c.Controller.JumpSpeed,
		FixedTimestep: c.Controller.FixedTimestep,
	}
}

// KeyBindings resolves the configured key names.
func (c *Config) KeyBindings() (input.Bindings, error) {
	overrides := make(map[input.Action]input.Key, len(c.Bindings))
	for name, keyName := range c.Bindings {
		action, err := input.ParseAction(name)
		if err != nil {
			return input.Bindings{}, err
		}
		key, err := input.ParseKey(keyName)
		if err != nil {
			return input.Bindings{}, err
		}
		overrides[action] = key
	}
	return input.NewBindings(overrides)
}

// SpawnPoint returns Body.Spawn as a vector.
func (c *Config) SpawnPoint() mgl32.Vec3 {
	return mgl32.Vec3(c.Body.Spawn)
}
