package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/charctl/internal/engine/body"
	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/logger"
)

// ValidationError lists every invalid setting found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	ctl := c.Controller
	if ctl.WalkSpeed <= 0 {
		add("controller.walk_speed must be positive, got %v", ctl.WalkSpeed)
	}
	if ctl.RunSpeed <= 0 {
		add("controller.run_speed must be positive, got %v", ctl.RunSpeed)
	}
	if ctl.JumpSpeed <= 0 {
		add("controller.jump_speed must be positive, got %v", ctl.JumpSpeed)
	}
	if ctl.FixedTimestep <= 0 || ctl.FixedTimestep > 1 {
		add("controller.fixed_timestep must be in (0, 1] seconds, got %v", ctl.FixedTimestep)
	}

	if c.Look.Sensitivity <= 0 {
		add("look.sensitivity must be positive, got %v", c.Look.Sensitivity)
	}

	names := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := input.ParseAction(name); err != nil {
			add("bindings: %v", err)
			continue
		}
		if _, err := input.ParseKey(c.Bindings[name]); err != nil {
			add("bindings.%s: %v", name, err)
		}
	}

	if _, err := body.ParseStrategy(c.Body.Backend); err != nil {
		add("body.backend: %v", err)
	}
	if c.Body.Mass <= 0 {
		add("body.mass must be positive, got %v", c.Body.Mass)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !logger.ValidLevel(c.Logging.Level) {
		add("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
