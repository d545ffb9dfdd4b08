// Package input maps physical keys to movement actions and samples them into
// per-step input state.
package input

import (
	"fmt"
	"strings"
)

// Key is a physical key code. Values match SDL scancodes (USB HID usage IDs)
// so a device adapter can convert without a lookup table.
type Key uint16

// KeyUnknown is never bound.
const KeyUnknown Key = 0

const (
	KeyA Key = 4 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	KeyReturn    Key = 40
	KeyEscape    Key = 41
	KeyBackspace Key = 42
	KeyTab       Key = 43
	KeySpace     Key = 44

	KeyRight Key = 79
	KeyLeft  Key = 80
	KeyDown  Key = 81
	KeyUp    Key = 82

	KeyLeftCtrl   Key = 224
	KeyLeftShift  Key = 225
	KeyLeftAlt    Key = 226
	KeyRightCtrl  Key = 228
	KeyRightShift Key = 229
	KeyRightAlt   Key = 230
)

var keyNames = map[Key]string{
	KeyReturn:     "Return",
	KeyEscape:     "Escape",
	KeyBackspace:  "Backspace",
	KeyTab:        "Tab",
	KeySpace:      "Space",
	KeyRight:      "Right",
	KeyLeft:       "Left",
	KeyDown:       "Down",
	KeyUp:         "Up",
	KeyLeftCtrl:   "LCtrl",
	KeyLeftShift:  "LShift",
	KeyLeftAlt:    "LAlt",
	KeyRightCtrl:  "RCtrl",
	KeyRightShift: "RShift",
	KeyRightAlt:   "RAlt",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+26)
	for k, name := range keyNames {
		m[strings.ToLower(name)] = k
	}
	for k := KeyA; k <= KeyZ; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// String returns the key's config name.
func (k Key) String() string {
	if k >= KeyA && k <= KeyZ {
		return string(rune('A' + int(k-KeyA)))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// ParseKey converts a config name such as "W", "Space" or "LShift" to a Key.
// Names are case-insensitive.
func ParseKey(name string) (Key, error) {
	if k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}
