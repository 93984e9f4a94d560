package source

import (
	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
)

// Script is an in-memory source for tests and headless runs. Raw
// events are queued programmatically and delivered to the listener on
// the next Poll, mirroring how platform pumps batch events between
// ticks.
type Script struct {
	listener Listener
	queue    []func(Listener)
	devices  []device.Device
}

// NewScript creates a script source pre-populated with the given
// connected devices.
func NewScript(devices ...device.Device) *Script {
	s := &Script{}
	for _, d := range devices {
		d.Connected = true
		s.devices = append(s.devices, d)
	}
	return s
}

func (s *Script) Init(cfg Config) error {
	s.listener = cfg.Listener
	return nil
}

func (s *Script) Capabilities() Capability {
	return CapKey | CapTouch | CapAxis
}

func (s *Script) Devices() []device.Device {
	out := make([]device.Device, len(s.devices))
	copy(out, s.devices)
	return out
}

// Poll drains queued events into the listener, stopping at the next
// barrier if one was queued.
func (s *Script) Poll() error {
	for len(s.queue) > 0 {
		deliver := s.queue[0]
		s.queue = s.queue[1:]
		if deliver == nil {
			break
		}
		if s.listener != nil {
			deliver(s.listener)
		}
	}
	return nil
}

// Barrier marks a tick boundary: events queued after it are only
// delivered by a later Poll.
func (s *Script) Barrier() {
	s.queue = append(s.queue, nil)
}

func (s *Script) Cleanup() error {
	s.queue = nil
	s.listener = nil
	return nil
}

// Key queues a raw key/button phase event.
func (s *Script) Key(dev device.Device, btn string, phase button.Phase) {
	s.queue = append(s.queue, func(l Listener) {
		l.HandleKey(dev, btn, phase)
	})
}

// Axis queues a raw normalized axis sample.
func (s *Script) Axis(dev device.Device, axis int, value float64) {
	s.queue = append(s.queue, func(l Listener) {
		l.HandleAxis(dev, axis, value)
	})
}

// Connect adds the device to the enumeration and queues a connection
// change.
func (s *Script) Connect(dev device.Device) {
	dev.Connected = true
	replaced := false
	for i, d := range s.devices {
		if d.ID == dev.ID {
			s.devices[i] = dev
			replaced = true
			break
		}
	}
	if !replaced {
		s.devices = append(s.devices, dev)
	}
	s.queue = append(s.queue, func(l Listener) {
		l.HandleConnectionChange(dev)
	})
}

// Disconnect removes the device from the enumeration and queues a
// connection change.
func (s *Script) Disconnect(dev device.Device) {
	dev.Connected = false
	for i, d := range s.devices {
		if d.ID == dev.ID {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			break
		}
	}
	s.queue = append(s.queue, func(l Listener) {
		l.HandleConnectionChange(dev)
	})
}
