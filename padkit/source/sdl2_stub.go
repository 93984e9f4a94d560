//go:build !sdl2

package source

import (
	"fmt"

	"github.com/valerio/go-padkit/padkit/device"
)

// SDL2 stub for when SDL2 is not available
type SDL2 struct{}

func NewSDL2() *SDL2 {
	return &SDL2{}
}

func (s *SDL2) Init(cfg Config) error {
	return fmt.Errorf("SDL2 source not available - compile with -tags sdl2 and install SDL2 development libraries")
}

func (s *SDL2) Poll() error {
	return fmt.Errorf("SDL2 source not available")
}

func (s *SDL2) Cleanup() error {
	return nil
}

func (s *SDL2) Capabilities() Capability {
	return CapKey | CapMouse | CapTouch | CapAxis
}

func (s *SDL2) Devices() []device.Device {
	return nil
}
