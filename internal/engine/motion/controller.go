// Package motion turns sampled input and the look basis into impulse, force
// and translation events at a fixed timestep.
package motion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/game/entity"
)

// Defaults for a walking character.
const (
	DefaultWalkSpeed     = 5.0
	DefaultRunSpeed      = 8.0
	DefaultJumpSpeed     = 4.0
	DefaultFixedTimestep = float32(1.0 / 60.0)

	// Damping is the share of horizontal velocity kept per step without input.
	Damping = 0.5

	// stepSlack absorbs float32 rounding in summed frame times.
	stepSlack = 1e-6
)

// Controller is the per-character motion state.
type Controller struct {
	Entity   entity.ID
	Bindings input.Bindings

	Fly       bool
	WalkSpeed float32
	RunSpeed  float32
	JumpSpeed float32

	// Velocity is the last desired velocity, and the authoritative previous
	// velocity for kinematic bodies. Dynamic bodies report their own.
	Velocity mgl32.Vec3
	Jumping  bool

	FixedTimestep float32

	accumulated float32
	pending     input.State
}

// Config holds the tunable parts of a Controller.
type Config struct {
	Fly           bool
	WalkSpeed     float32
	RunSpeed      float32
	JumpSpeed     float32
	FixedTimestep float32
}

// DefaultConfig returns walking defaults at 60 steps per second.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:     DefaultWalkSpeed,
		RunSpeed:      DefaultRunSpeed,
		JumpSpeed:     DefaultJumpSpeed,
		FixedTimestep: DefaultFixedTimestep,
	}
}

// New creates a controller for id.
func New(id entity.ID, bindings input.Bindings, cfg Config) *Controller {
	c := &Controller{
		Entity:   id,
		Bindings: bindings,
	}
	c.Configure(cfg)
	return c
}

// Configure replaces the tuning. Fly mode is only taken from cfg here, so a
// reload does not undo an in-game toggle unless the caller wants it to.
func (c *Controller) Configure(cfg Config) {
	c.Fly = cfg.Fly
	c.Retune(cfg)
}

// Retune replaces speeds and timestep, keeping runtime state.
func (c *Controller) Retune(cfg Config) {
	c.WalkSpeed = cfg.WalkSpeed
	c.RunSpeed = cfg.RunSpeed
	c.JumpSpeed = cfg.JumpSpeed
	if cfg.FixedTimestep > 0 {
		c.FixedTimestep = cfg.FixedTimestep
	}
}

// Sample runs once per render frame. It folds this frame's keys into the
// pending input, flips fly mode on the toggle key, and advances the step
// accumulator by elapsed seconds. It reports whether a fixed step is due.
//
// When a step is due the accumulator keeps only the remainder modulo one
// timestep: at most one step runs per frame, and any further whole steps that
// elapsed are dropped rather than replayed.
func (c *Controller) Sample(keys input.KeyState, elapsed float32) (due, flyToggled bool) {
	if c.Bindings.FlyToggled(keys) {
		c.Fly = !c.Fly
		flyToggled = true
	}
	c.pending = c.pending.Or(c.Bindings.Sample(keys))

	if elapsed > 0 {
		c.accumulated += elapsed
	}
	if c.accumulated+stepSlack < c.FixedTimestep {
		return false, flyToggled
	}
	c.accumulated = math32.Max(c.accumulated-c.FixedTimestep, 0)
	c.accumulated = math32.Mod(c.accumulated, c.FixedTimestep)
	return true, flyToggled
}

// Pending returns the input gathered since the last step.
func (c *Controller) Pending() input.State {
	return c.pending
}

// Accumulated returns the time carried toward the next step.
func (c *Controller) Accumulated() float32 {
	return c.accumulated
}

// Land ends a jump. Backends that resolve ground contact call it through the
// world once the body stands on something.
func (c *Controller) Land() {
	c.Jumping = false
}
