// Package body defines what the motion pipeline needs from a physics backend
// and how backends consume motion events.
package body

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/game/entity"
)

// Strategy selects which motion events a backend consumes. It is fixed when
// the backend is built.
type Strategy uint8

const (
	// Kinematic backends move by TranslationEvent only.
	Kinematic Strategy = iota
	// ImpulseDynamic backends apply ImpulseEvent.
	ImpulseDynamic
	// ForceDynamic backends apply ForceEvent over one step.
	ForceDynamic
)

func (s Strategy) String() string {
	switch s {
	case Kinematic:
		return "kinematic"
	case ImpulseDynamic:
		return "impulse"
	case ForceDynamic:
		return "force"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy parses a backend name as used in configuration.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kinematic":
		return Kinematic, nil
	case "impulse":
		return ImpulseDynamic, nil
	case "force":
		return ForceDynamic, nil
	}
	return Kinematic, fmt.Errorf("unknown body backend %q", name)
}

// ControlledBody is the read side of a physics body.
type ControlledBody interface {
	Strategy() Strategy
	Mass() (float32, error)
	Velocity() (mgl32.Vec3, error)
}

// Backend is a body that also consumes motion events and advances itself.
type Backend interface {
	ControlledBody

	// Entity is the body entity whose events this backend consumes.
	Entity() entity.ID

	// Consume applies this frame's events for Entity on the channel matching
	// Strategy. It returns the number of events applied.
	Consume(frame *events.Frame) int

	// Step advances the body by dt seconds.
	Step(dt float32)

	Position() mgl32.Vec3
}

// Grounder is implemented by backends that know where the floor is.
type Grounder interface {
	Grounded() bool
}

// ErrUnavailable is wrapped by every LookupError.
var ErrUnavailable = errors.New("body data unavailable")

// LookupError reports that a backend could not supply mass or velocity.
type LookupError struct {
	Entity   entity.ID
	Resource string
	Err      error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s lookup failed: %v", e.Entity, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s: %s lookup failed", e.Entity, e.Resource)
}

func (e *LookupError) Unwrap() error {
	if e.Err != nil {
		return errors.Join(ErrUnavailable, e.Err)
	}
	return ErrUnavailable
}

// Snapshot is the mass and velocity of a body read in one go.
type Snapshot struct {
	Mass     float32
	Velocity mgl32.Vec3
}

// Read reads mass and velocity from b. It fails if either is unavailable.
func Read(b ControlledBody) (Snapshot, error) {
	mass, err := b.Mass()
	if err != nil {
		return Snapshot{}, err
	}
	vel, err := b.Velocity()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Mass: mass, Velocity: vel}, nil
}
