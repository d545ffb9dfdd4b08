package motion

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/engine/look"
	"github.com/Faultbox/charctl/pkg/math"
)

// Body is what a step needs to know about the controlled body.
type Body struct {
	Mass     float32
	Velocity mgl32.Vec3
}

// Result describes one fixed step, mainly for logging and tests.
type Result struct {
	Input    input.State
	Desired  mgl32.Vec3
	Delta    mgl32.Vec3
	Impulse  mgl32.Vec3
	Force    mgl32.Vec3
	Emitted  Emitted
	Grounded bool // step compared horizontal velocity only
}

// Emitted records which events a step sent.
type Emitted struct {
	Impulse     bool
	Force       bool
	Translation bool
}

// Step runs one fixed step against the look basis and body, sends the
// resulting events on frame's channels and clears the pending input.
func (c *Controller) Step(frame *events.Frame, basis look.Direction, body Body) Result {
	in := c.pending
	c.pending = input.State{}
	dt := c.FixedTimestep
	prev := body.Velocity

	if !c.Fly {
		basis = basis.Flat()
	}

	var dir mgl32.Vec3
	if in.Forward {
		dir = dir.Add(basis.Forward)
	}
	if in.Backward {
		dir = dir.Sub(basis.Forward)
	}
	if in.Right {
		dir = dir.Add(basis.Right)
	}
	if in.Left {
		dir = dir.Sub(basis.Right)
	}
	if c.Fly {
		if in.Up {
			dir = dir.Add(basis.Up)
		}
		if in.Down {
			dir = dir.Sub(basis.Up)
		}
	}

	speed := c.WalkSpeed
	if in.Run {
		speed = c.RunSpeed
	}

	var desired mgl32.Vec3
	if math.NonNegligible(dir) {
		desired = dir.Normalize().Mul(speed)
	} else {
		// Without input the horizontal velocity decays. Vertical velocity is
		// left alone here: fly mode keeps it, ground mode overwrites it below.
		desired = mgl32.Vec3{prev.X() * Damping, prev.Y(), prev.Z() * Damping}
	}

	grounded := false
	if !c.Fly {
		switch {
		case in.Jump:
			c.Jumping = true
			desired[1] = c.JumpSpeed
		case c.Jumping:
			desired[1] = prev.Y() + math.Gravity*dt
		default:
			desired[1] = 0
			grounded = true
		}
	}

	delta := desired.Sub(prev)
	if grounded {
		// Vertical contact is the backend's business while standing.
		delta[1] = 0
	}

	impulse := delta.Mul(body.Mass)
	force := impulse.Mul(1 / dt)

	res := Result{
		Input:    in,
		Desired:  desired,
		Delta:    delta,
		Impulse:  impulse,
		Force:    force,
		Grounded: grounded,
	}

	ch := frame.Channels
	if math.NonNegligible(impulse) {
		ch.Impulse.Send(events.Impulse{Entity: c.Entity, Impulse: impulse})
		res.Emitted.Impulse = true
	}
	if math.NonNegligible(force) {
		ch.Force.Send(events.Force{Entity: c.Entity, Force: force})
		res.Emitted.Force = true
	}

	c.Velocity = desired
	horizontal, vertical := math.SplitVertical(desired)
	if math.NonNegligible(horizontal) || vertical*vertical > math.Epsilon {
		ch.Translation.Send(events.Translation{Entity: c.Entity, Delta: desired.Mul(dt)})
		res.Emitted.Translation = true
	}

	return res
}
