//go:build sdl2

package source

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
)

// SDL2 pumps keyboard and game-controller events from SDL. Building it
// requires the SDL2 development libraries installed; default builds get
// a stub instead, see build tags (sdl2).
type SDL2 struct {
	listener    Listener
	caps        Capability
	controllers map[int32]*sdl.GameController
	order       []int32
}

func NewSDL2() *SDL2 {
	return &SDL2{controllers: make(map[int32]*sdl.GameController)}
}

func (s *SDL2) Init(cfg Config) error {
	s.listener = cfg.Listener
	s.caps = cfg.Capabilities

	if err := sdl.Init(sdl.INIT_EVENTS | sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	// Open controllers already plugged in so enumeration works before
	// the first added event arrives.
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if sdl.IsGameController(i) {
			s.open(i)
		}
	}

	slog.Info("SDL2 source initialized", "controllers", len(s.controllers))
	return nil
}

func (s *SDL2) open(index int) (device.Device, bool) {
	ctrl := sdl.GameControllerOpen(index)
	if ctrl == nil {
		slog.Warn("failed to open game controller", "index", index)
		return device.Device{}, false
	}
	id := int32(ctrl.Joystick().InstanceID())
	if _, ok := s.controllers[id]; !ok {
		s.controllers[id] = ctrl
		s.order = append(s.order, id)
	}
	return s.describe(id), true
}

func (s *SDL2) close(id int32) {
	ctrl, ok := s.controllers[id]
	if !ok {
		return
	}
	ctrl.Close()
	delete(s.controllers, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// describe builds the Device for an open controller. The slot position
// is appended to the descriptor so player-number resolution can fall
// back on it.
func (s *SDL2) describe(id int32) device.Device {
	slot := 1
	for i, other := range s.order {
		if other == id {
			slot = i + 1
			break
		}
	}
	name := "Gamepad"
	if ctrl := s.controllers[id]; ctrl != nil && ctrl.Name() != "" {
		name = ctrl.Name()
	}
	return device.Device{
		ID:         device.GamepadID(id),
		Descriptor: fmt.Sprintf("%s %d", name, slot),
		Connected:  true,
	}
}

func (s *SDL2) Capabilities() Capability {
	return CapKey | CapMouse | CapTouch | CapAxis
}

func (s *SDL2) Devices() []device.Device {
	devs := []device.Device{device.KeyboardDevice()}
	for _, id := range s.order {
		devs = append(devs, s.describe(id))
	}
	return devs
}

func (s *SDL2) Poll() error {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}
	return nil
}

func (s *SDL2) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.KeyboardEvent:
		if !s.caps.Has(CapKey) || e.Repeat != 0 {
			return
		}
		phase := button.Down
		if e.Type == sdl.KEYUP {
			phase = button.Up
		}
		s.listener.HandleKey(device.KeyboardDevice(), sdl.GetKeyName(e.Keysym.Sym), phase)

	case *sdl.ControllerButtonEvent:
		if !s.caps.Has(CapKey) {
			return
		}
		dev, ok := s.deviceFor(int32(e.Which))
		if !ok {
			return
		}
		phase := button.Down
		if e.Type == sdl.CONTROLLERBUTTONUP {
			phase = button.Up
		}
		name := sdl.GameControllerGetStringForButton(sdl.GameControllerButton(e.Button))
		s.listener.HandleKey(dev, name, phase)

	case *sdl.ControllerAxisEvent:
		if !s.caps.Has(CapAxis) {
			return
		}
		axis, ok := padAxis(e.Axis)
		if !ok {
			return
		}
		dev, ok := s.deviceFor(int32(e.Which))
		if !ok {
			return
		}
		s.listener.HandleAxis(dev, axis, normalizeAxis(e.Value))

	case *sdl.MouseButtonEvent:
		if !s.caps.Has(CapMouse) {
			return
		}
		phase := button.Down
		if e.Type == sdl.MOUSEBUTTONUP {
			phase = button.Up
		}
		s.listener.HandleKey(device.KeyboardDevice(), mouseButtonName(e.Button), phase)

	case *sdl.TouchFingerEvent:
		if !s.caps.Has(CapTouch) {
			return
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			s.listener.HandleKey(device.TouchDevice(), "touch", button.Down)
		case sdl.FINGERUP:
			s.listener.HandleKey(device.TouchDevice(), "touch", button.Up)
		}

	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			// Which is a device index here, not an instance id.
			if dev, ok := s.open(int(e.Which)); ok {
				s.listener.HandleConnectionChange(dev)
			}
		case sdl.CONTROLLERDEVICEREMOVED:
			dev := s.describe(e.Which)
			dev.Connected = false
			s.close(e.Which)
			s.listener.HandleConnectionChange(dev)
		}
	}
}

func (s *SDL2) deviceFor(id int32) (device.Device, bool) {
	if _, ok := s.controllers[id]; !ok {
		return device.Device{}, false
	}
	return s.describe(id), true
}

func (s *SDL2) Cleanup() error {
	for _, id := range append([]int32(nil), s.order...) {
		s.close(id)
	}
	sdl.Quit()
	return nil
}

// padAxis maps SDL's stick axes to the 1-based axis convention the
// stick processor expects. Triggers and anything else are dropped.
func padAxis(axis uint8) (int, bool) {
	switch axis {
	case uint8(sdl.CONTROLLER_AXIS_LEFTX):
		return 1, true
	case uint8(sdl.CONTROLLER_AXIS_LEFTY):
		return 2, true
	case uint8(sdl.CONTROLLER_AXIS_RIGHTX):
		return 3, true
	case uint8(sdl.CONTROLLER_AXIS_RIGHTY):
		return 4, true
	}
	return 0, false
}

func mouseButtonName(btn uint8) string {
	switch btn {
	case sdl.BUTTON_LEFT:
		return "mouse_left"
	case sdl.BUTTON_MIDDLE:
		return "mouse_middle"
	case sdl.BUTTON_RIGHT:
		return "mouse_right"
	}
	return fmt.Sprintf("mouse_%d", btn)
}

// normalizeAxis scales SDL's int16 axis range into [-1, 1].
func normalizeAxis(v int16) float64 {
	return math.Max(-1, math.Min(1, float64(v)/32767))
}
