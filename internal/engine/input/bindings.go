package input

import (
	"fmt"
	"strings"
)

// Action is a logical movement command.
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	StrafeLeft
	StrafeRight
	Jump
	Run
	ToggleFly
	FlyUp
	FlyDown

	actionCount
)

var actionNames = [actionCount]string{
	MoveForward:  "move_forward",
	MoveBackward: "move_backward",
	StrafeLeft:   "strafe_left",
	StrafeRight:  "strafe_right",
	Jump:         "jump",
	Run:          "run",
	ToggleFly:    "toggle_fly",
	FlyUp:        "fly_up",
	FlyDown:      "fly_down",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, actionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// ParseAction converts a config name such as "move_forward" to an Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Bindings maps every action to one key. The zero value is not useful; build
// it with DefaultBindings or NewBindings.
type Bindings struct {
	keys [actionCount]Key
}

// DefaultBindings returns the WASD layout.
func DefaultBindings() Bindings {
	var b Bindings
	b.keys[MoveForward] = KeyW
	b.keys[MoveBackward] = KeyS
	b.keys[StrafeLeft] = KeyA
	b.keys[StrafeRight] = KeyD
	b.keys[Jump] = KeySpace
	b.keys[Run] = KeyLeftShift
	b.keys[ToggleFly] = KeyF
	b.keys[FlyUp] = KeyE
	b.keys[FlyDown] = KeyQ
	return b
}

// NewBindings starts from DefaultBindings and applies overrides. An override
// with KeyUnknown is rejected so every action always has a key.
func NewBindings(overrides map[Action]Key) (Bindings, error) {
	b := DefaultBindings()
	for a, k := range overrides {
		if a >= actionCount {
			return Bindings{}, fmt.Errorf("binding: unknown action %d", a)
		}
		if k == KeyUnknown {
			return Bindings{}, fmt.Errorf("binding %s: no key", a)
		}
		b.keys[a] = k
	}
	return b, nil
}

// Key returns the key bound to a.
func (b Bindings) Key(a Action) Key {
	if a >= actionCount {
		return KeyUnknown
	}
	return b.keys[a]
}

// Sample reads the bound keys from ks. Movement, run and fly up/down use the
// held state; jump uses the just-pressed edge so a tap is not repeated.
func (b Bindings) Sample(ks KeyState) State {
	return State{
		Forward:  ks.IsKeyDown(b.keys[MoveForward]),
		Backward: ks.IsKeyDown(b.keys[MoveBackward]),
		Left:     ks.IsKeyDown(b.keys[StrafeLeft]),
		Right:    ks.IsKeyDown(b.keys[StrafeRight]),
		Run:      ks.IsKeyDown(b.keys[Run]),
		Jump:     ks.JustPressed(b.keys[Jump]),
		Up:       ks.IsKeyDown(b.keys[FlyUp]),
		Down:     ks.IsKeyDown(b.keys[FlyDown]),
	}
}

// FlyToggled reports whether the fly toggle was pressed this frame.
func (b Bindings) FlyToggled(ks KeyState) bool {
	return ks.JustPressed(b.keys[ToggleFly])
}
