// Package kinematic moves a body directly by translation events, without a
// physics solver.
package kinematic

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/body"
	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/game/entity"
)

var errRemoved = errors.New("body removed")

// Body is a kinematic character body resting on a flat floor.
type Body struct {
	id       entity.ID
	mass     float32
	floor    float32
	position mgl32.Vec3
	moved    mgl32.Vec3
	velocity mgl32.Vec3
	removed  bool
}

// New creates a kinematic body at spawn. Spawn points below the floor are
// lifted onto it.
func New(id entity.ID, mass, floor float32, spawn mgl32.Vec3) *Body {
	if spawn.Y() < floor {
		spawn[1] = floor
	}
	return &Body{
		id:       id,
		mass:     mass,
		floor:    floor,
		position: spawn,
	}
}

func (b *Body) Strategy() body.Strategy { return body.Kinematic }

func (b *Body) Entity() entity.ID { return b.id }

func (b *Body) Mass() (float32, error) {
	if b.removed || b.mass <= 0 {
		return 0, &body.LookupError{Entity: b.id, Resource: "mass", Err: b.err()}
	}
	return b.mass, nil
}

// Velocity returns the velocity implied by the last step's movement.
func (b *Body) Velocity() (mgl32.Vec3, error) {
	if b.removed {
		return mgl32.Vec3{}, &body.LookupError{Entity: b.id, Resource: "velocity", Err: errRemoved}
	}
	return b.velocity, nil
}

func (b *Body) err() error {
	if b.removed {
		return errRemoved
	}
	return nil
}

// Consume queues every translation sent for this body this frame.
func (b *Body) Consume(frame *events.Frame) int {
	if b.removed {
		return 0
	}
	n := 0
	for evt := range frame.Channels.Translation.Filter(events.ForEntity[events.Translation](b.id)) {
		b.moved = b.moved.Add(evt.Delta)
		n++
	}
	return n
}

// Step applies the queued movement and keeps the body above the floor.
func (b *Body) Step(dt float32) {
	if b.removed {
		return
	}
	next := b.position.Add(b.moved)
	if next.Y() < b.floor {
		next[1] = b.floor
	}
	if dt > 0 {
		b.velocity = next.Sub(b.position).Mul(1 / dt)
	}
	b.position = next
	b.moved = mgl32.Vec3{}
}

func (b *Body) Position() mgl32.Vec3 { return b.position }

// Grounded reports whether the body rests on the floor.
func (b *Body) Grounded() bool {
	return b.position.Y() <= b.floor
}

// Remove detaches the body. Lookups fail from then on.
func (b *Body) Remove() {
	b.removed = true
}

var (
	_ body.Backend  = (*Body)(nil)
	_ body.Grounder = (*Body)(nil)
)
