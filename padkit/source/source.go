// Package source defines the raw event pumps the facade polls each
// tick, and the platform capability model deciding which pumps are
// active.
package source

import (
	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
)

// Capability is a bit set of the raw event families a platform
// subscribes to. The set is resolved once at startup; there is no
// per-event platform branching.
type Capability uint8

const (
	CapKey Capability = 1 << iota
	CapMouse
	CapTouch
	CapAxis
)

// Has reports whether all bits of want are present.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Platform is the coarse runtime family the application runs on.
type Platform int

const (
	PlatformDesktop Platform = iota
	PlatformMobile
	PlatformTV
	PlatformConsole
)

func (p Platform) String() string {
	switch p {
	case PlatformMobile:
		return "mobile"
	case PlatformTV:
		return "tv"
	case PlatformConsole:
		return "console"
	default:
		return "desktop"
	}
}

// Capabilities resolves a platform into its fixed capability set:
// desktop listens for mouse, keys and axes; consoles for touch, keys
// and axes; mobile is touch-only and TVs key-only.
func Capabilities(p Platform) Capability {
	switch p {
	case PlatformMobile:
		return CapTouch
	case PlatformTV:
		return CapKey
	case PlatformConsole:
		return CapTouch | CapKey | CapAxis
	default:
		return CapMouse | CapKey | CapAxis
	}
}

// Listener receives raw events from active sources. The facade
// implements it.
type Listener interface {
	HandleKey(dev device.Device, btn string, phase button.Phase)
	HandleAxis(dev device.Device, axis int, value float64)
	HandleConnectionChange(dev device.Device)
}

// Config is handed to every source at startup.
type Config struct {
	Listener     Listener
	Capabilities Capability
}

// Source is a platform event pump. Init registers the listener, Poll
// pumps pending platform events (called once per tick, before the
// state machine advances), and Cleanup releases platform resources.
// Sources also enumerate the devices they currently see.
type Source interface {
	device.Enumerator

	Init(cfg Config) error
	Poll() error
	Cleanup() error
	Capabilities() Capability
}
