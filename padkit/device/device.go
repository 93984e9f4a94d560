package device

import (
	"fmt"
	"strings"
)

// Kind discriminates the families of device identity. The keyboard is a
// singleton sentinel; gamepads and touch surfaces are physical handles
// keyed by a platform instance ref.
type Kind int

const (
	Keyboard Kind = iota
	Gamepad
	Touch
)

func (k Kind) String() string {
	switch k {
	case Keyboard:
		return "keyboard"
	case Gamepad:
		return "gamepad"
	case Touch:
		return "touch"
	default:
		return "unknown"
	}
}

// ID is a stable, comparable device identity. It is the map key for all
// per-device state in the module, so keyboard and physical handles can
// never collide.
type ID struct {
	Kind Kind
	Ref  int32
}

// KeyboardID identifies the keyboard sentinel device.
var KeyboardID = ID{Kind: Keyboard}

// GamepadID returns the identity for a physical gamepad instance.
func GamepadID(ref int32) ID {
	return ID{Kind: Gamepad, Ref: ref}
}

func (id ID) String() string {
	if id.Kind == Keyboard {
		return "keyboard"
	}
	return fmt.Sprintf("%s:%d", id.Kind, id.Ref)
}

// Device describes a connected input device as reported by the platform
// layer. PlayerNumber is only meaningful when HasPlayerNumber is set;
// use Player to resolve the effective slot.
type Device struct {
	ID              ID
	Descriptor      string
	PlayerNumber    int
	HasPlayerNumber bool
	Connected       bool
}

// KeyboardDevice returns the sentinel device that button bindings fall
// back to when no physical device matches a player number.
func KeyboardDevice() Device {
	return Device{ID: KeyboardID, Descriptor: "Keyboard", Connected: true}
}

// TouchDevice returns the sentinel device for the platform touch
// surface.
func TouchDevice() Device {
	return Device{ID: ID{Kind: Touch}, Descriptor: "Touch", Connected: true}
}

// Player resolves the logical 1-based player slot for this device.
// Resolution order: explicit player number, then a numeric suffix on
// the descriptor ("Gamepad 2" -> 2), then slot 1.
func (d Device) Player() int {
	if d.HasPlayerNumber {
		return d.PlayerNumber
	}
	if n, ok := trailingNumber(d.Descriptor); ok {
		return n
	}
	return 1
}

// trailingNumber parses a run of digits at the end of s.
func trailingNumber(s string) (int, bool) {
	s = strings.TrimRight(s, " ")
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n := 0
	for i := start; i < end; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
