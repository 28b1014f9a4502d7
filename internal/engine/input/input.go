// Package input defines backend-neutral key and mouse events and turns
// per-frame key states into press, repeat and release edges.
package input

import (
	"fmt"
	"strings"
)

// Key is a keyboard key the renderer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeySlash
	KeyEscape
	KeyEnter
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
	KeySpace:   "Space",
	KeySlash:   "Slash",
	KeyEscape:  "Escape",
	KeyEnter:   "Enter",
	KeyTab:     "Tab",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeyF1:      "F1",
	KeyF2:      "F2",
	KeyF3:      "F3",
	KeyF4:      "F4",
	KeyF5:      "F5",
	KeyF6:      "F6",
	KeyF7:      "F7",
	KeyF8:      "F8",
	KeyF9:      "F9",
	KeyF10:     "F10",
	KeyF11:     "F11",
	KeyF12:     "F12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Keys returns every known key except KeyUnknown.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// KeyByName resolves a config key name such as "Slash" or "f12".
func KeyByName(name string) (Key, error) {
	for k := KeyUnknown + 1; k < keyCount; k++ {
		if strings.EqualFold(keyNames[k], name) {
			return k, nil
		}
	}
	if name == "/" {
		return KeySlash, nil
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

// Action is the edge a key or button event reports.
type Action int

const (
	Press Action = iota
	Repeat
	Release
)

func (a Action) String() string {
	switch a {
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	case Release:
		return "Release"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// KeyEvent is one key edge.
type KeyEvent struct {
	Key    Key
	Action Action
}

// MouseButton is a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseRight:
		return "Right"
	case MouseMiddle:
		return "Middle"
	}
	return fmt.Sprintf("MouseButton(%d)", int(b))
}

// MouseEvent is one mouse button edge.
type MouseEvent struct {
	Button MouseButton
	Action Action
}

// MouseState is the held state of each button.
type MouseState struct {
	Left, Middle, Right bool
}

// Cursor is the cursor position in window pixels.
type Cursor struct {
	X, Y float32
}
