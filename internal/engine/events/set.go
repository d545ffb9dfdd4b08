package events

import (
	"time"

	"github.com/Faultbox/charctl/internal/game/entity"
)

// Channel names.
const (
	NameTranslation = "translation"
	NameImpulse     = "impulse"
	NameForce       = "force"
	NameYaw         = "yaw"
	NamePitch       = "pitch"
	NameLook        = "look"
	NameLookDelta   = "look_delta"
)

// Set is the full group of motion channels for one world.
type Set struct {
	Translation *Channel[Translation]
	Impulse     *Channel[Impulse]
	Force       *Channel[Force]
	Yaw         *Channel[Yaw]
	Pitch       *Channel[Pitch]
	Look        *Channel[Look]
	LookDelta   *Channel[LookDelta]
}

// NewSet creates a set of empty channels.
func NewSet() *Set {
	return &Set{
		Translation: NewChannel[Translation](NameTranslation),
		Impulse:     NewChannel[Impulse](NameImpulse),
		Force:       NewChannel[Force](NameForce),
		Yaw:         NewChannel[Yaw](NameYaw),
		Pitch:       NewChannel[Pitch](NamePitch),
		Look:        NewChannel[Look](NameLook),
		LookDelta:   NewChannel[LookDelta](NameLookDelta),
	}
}

// Reset discards every event in every channel.
func (s *Set) Reset() {
	s.Translation.reset()
	s.Impulse.reset()
	s.Force.reset()
	s.Yaw.reset()
	s.Pitch.reset()
	s.Look.reset()
	s.LookDelta.reset()
}

// Counts returns the number of pending events per channel name.
func (s *Set) Counts() map[string]int {
	return map[string]int{
		NameTranslation: s.Translation.Len(),
		NameImpulse:     s.Impulse.Len(),
		NameForce:       s.Force.Len(),
		NameYaw:         s.Yaw.Len(),
		NamePitch:       s.Pitch.Len(),
		NameLook:        s.Look.Len(),
		NameLookDelta:   s.LookDelta.Len(),
	}
}

// Frame is the context handed to every component during one update.
type Frame struct {
	Number   uint64
	Delta    time.Duration
	Channels *Set
}

// Begin starts a new frame on s, dropping the previous frame's events.
func Begin(s *Set, number uint64, delta time.Duration) *Frame {
	s.Reset()
	return &Frame{
		Number:   number,
		Delta:    delta,
		Channels: s,
	}
}

// Seconds returns the frame delta in seconds.
func (f *Frame) Seconds() float32 {
	return float32(f.Delta.Seconds())
}

// ForEntity returns a predicate matching events produced by id.
func ForEntity[T interface{ Source() entity.ID }](id entity.ID) func(T) bool {
	return func(evt T) bool { return evt.Source() == id }
}

// Source methods let generic filters select events by producer.

func (e Translation) Source() entity.ID { return e.Entity }
func (e Impulse) Source() entity.ID     { return e.Entity }
func (e Force) Source() entity.ID       { return e.Entity }
func (e Yaw) Source() entity.ID         { return e.Entity }
func (e Pitch) Source() entity.ID       { return e.Entity }
func (e Look) Source() entity.ID        { return e.Entity }
func (e LookDelta) Source() entity.ID   { return e.Entity }
