package input

import "github.com/go-gl/mathgl/mgl32"

// KeyState answers per-frame key queries.
type KeyState interface {
	// IsKeyDown reports whether k is held this frame.
	IsKeyDown(k Key) bool
	// JustPressed reports whether k went down this frame.
	JustPressed(k Key) bool
}

// Device is a keyboard plus the mouse motion gathered since the last frame.
type Device interface {
	KeyState
	// MouseDeltas returns the raw pointer deltas received this frame.
	MouseDeltas() []mgl32.Vec2
}

// Snapshot is an in-memory Device, used for scripted input and tests.
type Snapshot struct {
	Down    map[Key]bool
	Pressed map[Key]bool
	Mouse   []mgl32.Vec2
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Down:    make(map[Key]bool),
		Pressed: make(map[Key]bool),
	}
}

// Hold marks keys as held.
func (s *Snapshot) Hold(keys ...Key) *Snapshot {
	for _, k := range keys {
		s.Down[k] = true
	}
	return s
}

// Release marks keys as up.
func (s *Snapshot) Release(keys ...Key) *Snapshot {
	for _, k := range keys {
		delete(s.Down, k)
	}
	return s
}

// Press marks keys as pressed this frame (and held).
func (s *Snapshot) Press(keys ...Key) *Snapshot {
	for _, k := range keys {
		s.Pressed[k] = true
		s.Down[k] = true
	}
	return s
}

// Move queues a mouse delta.
func (s *Snapshot) Move(dx, dy float32) *Snapshot {
	s.Mouse = append(s.Mouse, mgl32.Vec2{dx, dy})
	return s
}

// EndFrame clears edge state and mouse deltas, keeping held keys.
func (s *Snapshot) EndFrame() {
	clear(s.Pressed)
	s.Mouse = s.Mouse[:0]
}

func (s *Snapshot) IsKeyDown(k Key) bool   { return s.Down[k] }
func (s *Snapshot) JustPressed(k Key) bool { return s.Pressed[k] }

func (s *Snapshot) MouseDeltas() []mgl32.Vec2 {
	return s.Mouse
}
