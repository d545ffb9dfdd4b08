// Package look accumulates mouse motion into a bounded yaw/pitch/roll and
// derives the camera basis from it.
package look

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/charctl/internal/engine/events"
	"github.com/Faultbox/charctl/internal/game/entity"
	"github.com/Faultbox/charctl/pkg/math"
)

// DefaultSensitivity is radians of rotation per pixel of mouse travel.
const DefaultSensitivity = 0.002

// State is the orientation of a head or camera entity.
// Pitch always stays within ±math.PitchBound.
type State struct {
	Sensitivity float32
	Yaw         float32 // Rotation around world up (radians)
	Pitch       float32 // Rotation around local right (radians)
	Roll        float32 // Rotation around local forward (radians)
}

// New creates a look state facing -Z.
func New(sensitivity float32) *State {
	return &State{Sensitivity: sensitivity}
}

// Angles returns (yaw, pitch, roll).
func (s *State) Angles() mgl32.Vec3 {
	return mgl32.Vec3{s.Yaw, s.Pitch, s.Roll}
}

// Rotation returns the combined yaw, pitch, roll rotation.
func (s *State) Rotation() mgl32.Quat {
	return math.YawPitchRoll(s.Yaw, s.Pitch, s.Roll)
}

// Update applies the mouse deltas gathered this frame.
//
// Raw deltas are summed, negated so that moving the pointer right turns the
// view right and moving it down looks down, then scaled by Sensitivity. When
// the scaled delta is negligible nothing changes and no events are sent.
// Otherwise LookDelta, Look, Pitch and Yaw are sent in that order, tagged with
// id. Reports whether the state changed.
func (s *State) Update(frame *events.Frame, id entity.ID, deltas []mgl32.Vec2) bool {
	raw := math.Sum(deltas)
	delta := mgl32.Vec3{-raw.X() * s.Sensitivity, -raw.Y() * s.Sensitivity, 0}
	if !math.NonNegligible(delta) {
		return false
	}

	s.Yaw += delta.X()
	s.Pitch = math.ClampPitch(s.Pitch + delta.Y())

	ch := frame.Channels
	ch.LookDelta.Send(events.LookDelta{Entity: id, Delta: delta})
	ch.Look.Send(events.Look{Entity: id, Angles: s.Angles()})
	ch.Pitch.Send(events.Pitch{Entity: id, Pitch: s.Pitch})
	ch.Yaw.Send(events.Yaw{Entity: id, Yaw: s.Yaw})
	return true
}

// SetAngles overwrites the orientation, clamping pitch.
func (s *State) SetAngles(yaw, pitch, roll float32) {
	s.Yaw = yaw
	s.Pitch = math.ClampPitch(pitch)
	s.Roll = roll
}
