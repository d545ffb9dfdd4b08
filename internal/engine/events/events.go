// Package events defines the motion events and the per-frame broadcast
// channels that carry them from the controller to body backends.
package events

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/game/entity"
)

// Translation is a displacement for kinematic consumers, already scaled by the
// fixed timestep.
type Translation struct {
	Entity entity.ID
	Delta  mgl32.Vec3
}

// Impulse is a change in momentum (mass * velocity delta).
type Impulse struct {
	Entity  entity.ID
	Impulse mgl32.Vec3
}

// Force is an impulse spread over one fixed timestep.
type Force struct {
	Entity entity.ID
	Force  mgl32.Vec3
}

// Yaw carries the absolute yaw of a look entity, in radians.
type Yaw struct {
	Entity entity.ID
	Yaw    float32
}

// Pitch carries the absolute pitch of a look entity, in radians.
type Pitch struct {
	Entity entity.ID
	Pitch  float32
}

// Look carries the full yaw/pitch/roll triple of a look entity.
type Look struct {
	Entity entity.ID
	Angles mgl32.Vec3
}

// LookDelta carries the scaled change applied to a look entity this frame.
type LookDelta struct {
	Entity entity.ID
	Delta  mgl32.Vec3
}
