// Package sdlinput feeds SDL2 keyboard and mouse state into the controller.
package sdlinput

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/charctl/internal/engine/input"
)

// Event types reported to the host loop.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
)

// Event is a window-level event the controller does not consume itself.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Device implements input.Device on top of the SDL event queue.
type Device struct {
	down    map[input.Key]bool
	pressed map[input.Key]bool
	mouse   []mgl32.Vec2
	events  []Event
}

var _ input.Device = (*Device)(nil)

// New creates a new SDL input device.
func New() *Device {
	return &Device{
		down:    make(map[input.Key]bool),
		pressed: make(map[input.Key]bool),
		mouse:   make([]mgl32.Vec2, 0, 16),
		events:  make([]Event, 0, 4),
	}
}

// Update polls SDL events for this frame.
// Returns true if the application should quit.
func (d *Device) Update() bool {
	d.events = d.events[:0]
	d.mouse = d.mouse[:0]
	clear(d.pressed)

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			d.events = append(d.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				d.events = append(d.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			key := input.Key(e.Keysym.Scancode)
			if e.Type == sdl.KEYDOWN {
				// Key repeat would re-trigger jump and fly toggles.
				if e.Repeat == 0 {
					d.pressed[key] = true
				}
				d.down[key] = true
			} else if e.Type == sdl.KEYUP {
				delete(d.down, key)
			}

		case *sdl.MouseMotionEvent:
			d.mouse = append(d.mouse, mgl32.Vec2{float32(e.XRel), float32(e.YRel)})
		}
	}

	return false
}

// Events returns the window events from the last Update.
func (d *Device) Events() []Event {
	return d.events
}

// IsKeyDown reports whether k is held.
func (d *Device) IsKeyDown(k input.Key) bool {
	return d.down[k]
}

// JustPressed reports whether k went down during the last Update.
func (d *Device) JustPressed(k input.Key) bool {
	return d.pressed[k]
}

// MouseDeltas returns the relative mouse motion from the last Update.
func (d *Device) MouseDeltas() []mgl32.Vec2 {
	return d.mouse
}

// CaptureMouse switches SDL relative mouse mode on or off.
func CaptureMouse(on bool) {
	sdl.SetRelativeMouseMode(on)
}
