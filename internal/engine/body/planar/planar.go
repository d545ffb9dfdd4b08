// Package planar simulates a character body with Chipmunk2D. The horizontal
// XZ plane is a cp body in a gravity-free space; the vertical axis is
// integrated alongside it and rests on a flat floor.
package planar

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"

	"github.com/Faultbox/charctl/internal/engine/body"
	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/game/entity"
)

var errRemoved = errors.New("body removed")

// Body is a dynamic character body driven by impulse or force events.
type Body struct {
	id       entity.ID
	strategy body.Strategy
	space    *cp.Space
	cpBody   *cp.Body

	height  float32
	climb   float32
	floor   float32
	pending float32 // vertical force queued for the next step
	removed bool
}

// New creates a dynamic body. strategy must be ImpulseDynamic or ForceDynamic.
func New(id entity.ID, strategy body.Strategy, mass, floor float32, spawn mgl32.Vec3) (*Body, error) {
	if strategy != body.ImpulseDynamic && strategy != body.ForceDynamic {
		return nil, fmt.Errorf("planar body %s: unsupported strategy %s", id, strategy)
	}
	if mass <= 0 {
		return nil, fmt.Errorf("planar body %s: mass must be positive, got %v", id, mass)
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	// Characters never tip over.
	cpBody := cp.NewBody(float64(mass), math.Inf(1))
	cpBody.SetAngle(0)
	cpBody.SetAngularVelocity(0)
	cpBody.SetPosition(toPlane(spawn))
	space.AddBody(cpBody)

	height := spawn.Y()
	if height < floor {
		height = floor
	}

	return &Body{
		id:       id,
		strategy: strategy,
		space:    space,
		cpBody:   cpBody,
		height:   height,
		floor:    floor,
	}, nil
}

func (b *Body) Strategy() body.Strategy { return b.strategy }

func (b *Body) Entity() entity.ID { return b.id }

func (b *Body) Mass() (float32, error) {
	if b.removed {
		return 0, &body.LookupError{Entity: b.id, Resource: "mass", Err: errRemoved}
	}
	return float32(b.cpBody.Mass()), nil
}

func (b *Body) Velocity() (mgl32.Vec3, error) {
	if b.removed {
		return mgl32.Vec3{}, &body.LookupError{Entity: b.id, Resource: "velocity", Err: errRemoved}
	}
	v := b.cpBody.Velocity()
	return mgl32.Vec3{float32(v.X), b.climb, float32(v.Y)}, nil
}

// Consume applies this body's impulses or forces, depending on its strategy.
// Events on the other channel are ignored.
func (b *Body) Consume(frame *events.Frame) int {
	if b.removed {
		return 0
	}
	n := 0
	switch b.strategy {
	case body.ImpulseDynamic:
		for evt := range frame.Channels.Impulse.Filter(events.ForEntity[events.Impulse](b.id)) {
			b.applyImpulse(evt.Impulse)
			n++
		}
	case body.ForceDynamic:
		for evt := range frame.Channels.Force.Filter(events.ForEntity[events.Force](b.id)) {
			b.applyForce(evt.Force)
			n++
		}
	}
	return n
}

func (b *Body) applyImpulse(impulse mgl32.Vec3) {
	b.cpBody.ApplyImpulseAtWorldPoint(toPlane(impulse), b.cpBody.Position())
	b.climb += impulse.Y() / float32(b.cpBody.Mass())
}

func (b *Body) applyForce(force mgl32.Vec3) {
	b.cpBody.ApplyForceAtWorldPoint(toPlane(force), b.cpBody.Position())
	b.pending += force.Y()
}

// Step advances the space and the vertical axis by dt seconds.
func (b *Body) Step(dt float32) {
	if b.removed || dt <= 0 {
		return
	}
	b.space.Step(float64(dt))

	b.climb += b.pending / float32(b.cpBody.Mass()) * dt
	b.pending = 0
	b.height += b.climb * dt
	if b.height <= b.floor {
		b.height = b.floor
		if b.climb < 0 {
			b.climb = 0
		}
	}
}

func (b *Body) Position() mgl32.Vec3 {
	p := b.cpBody.Position()
	return mgl32.Vec3{float32(p.X), b.height, float32(p.Y)}
}

// Grounded reports whether the body rests on the floor and is not rising.
func (b *Body) Grounded() bool {
	return b.height <= b.floor && b.climb <= 0
}

// Remove takes the body out of its space. Lookups fail from then on.
func (b *Body) Remove() {
	if b.removed {
		return
	}
	b.space.RemoveBody(b.cpBody)
	b.removed = true
}

// toPlane maps world X/Z onto the cp plane.
func toPlane(v mgl32.Vec3) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Z())}
}

var (
	_ body.Backend  = (*Body)(nil)
	_ body.Grounder = (*Body)(nil)
)
