package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		platform Platform
		expected Capability
	}{
		{platform: PlatformDesktop, expected: CapMouse | CapKey | CapAxis},
		{platform: PlatformConsole, expected: CapTouch | CapKey | CapAxis},
		{platform: PlatformMobile, expected: CapTouch},
		{platform: PlatformTV, expected: CapKey},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Capabilities(tt.platform))
		})
	}
}

func TestCapability_Has(t *testing.T) {
	caps := CapKey | CapAxis
	assert.True(t, caps.Has(CapKey))
	assert.True(t, caps.Has(CapKey|CapAxis))
	assert.False(t, caps.Has(CapTouch))
	assert.False(t, caps.Has(CapKey|CapTouch))
}

type recordedEvent struct {
	kind  string
	btn   string
	phase button.Phase
	axis  int
	value float64
	dev   device.Device
}

type recordingListener struct {
	events []recordedEvent
}

func (r *recordingListener) HandleKey(dev device.Device, btn string, phase button.Phase) {
	r.events = append(r.events, recordedEvent{kind: "key", dev: dev, btn: btn, phase: phase})
}

func (r *recordingListener) HandleAxis(dev device.Device, axis int, value float64) {
	r.events = append(r.events, recordedEvent{kind: "axis", dev: dev, axis: axis, value: value})
}

func (r *recordingListener) HandleConnectionChange(dev device.Device) {
	r.events = append(r.events, recordedEvent{kind: "connection", dev: dev})
}

func TestScript_DeliversQueuedEventsOnPoll(t *testing.T) {
	pad := device.Device{ID: device.GamepadID(1), Descriptor: "Gamepad 1"}
	s := NewScript(pad)
	l := &recordingListener{}
	require.NoError(t, s.Init(Config{Listener: l}))

	s.Key(pad, "a", button.Down)
	s.Axis(pad, 1, 0.5)
	assert.Empty(t, l.events, "nothing is delivered before Poll")

	require.NoError(t, s.Poll())
	if assert.Len(t, l.events, 2) {
		assert.Equal(t, "key", l.events[0].kind)
		assert.Equal(t, button.Down, l.events[0].phase)
		assert.Equal(t, "axis", l.events[1].kind)
		assert.Equal(t, 0.5, l.events[1].value)
	}

	require.NoError(t, s.Poll())
	assert.Len(t, l.events, 2, "the queue drains once")
}

func TestScript_BarrierSplitsTicks(t *testing.T) {
	pad := device.Device{ID: device.GamepadID(1), Descriptor: "Gamepad 1"}
	s := NewScript(pad)
	l := &recordingListener{}
	require.NoError(t, s.Init(Config{Listener: l}))

	s.Key(pad, "a", button.Down)
	s.Barrier()
	s.Key(pad, "a", button.Up)

	require.NoError(t, s.Poll())
	assert.Len(t, l.events, 1)

	require.NoError(t, s.Poll())
	assert.Len(t, l.events, 2)
}

func TestScript_ConnectDisconnect(t *testing.T) {
	pad := device.Device{ID: device.GamepadID(1), Descriptor: "Gamepad 1"}
	s := NewScript()
	l := &recordingListener{}
	require.NoError(t, s.Init(Config{Listener: l}))

	assert.Empty(t, s.Devices())

	s.Connect(pad)
	assert.Len(t, s.Devices(), 1, "enumeration reflects the connect immediately")

	require.NoError(t, s.Poll())
	if assert.Len(t, l.events, 1) {
		assert.Equal(t, "connection", l.events[0].kind)
		assert.True(t, l.events[0].dev.Connected)
	}

	s.Disconnect(pad)
	assert.Empty(t, s.Devices())

	require.NoError(t, s.Poll())
	if assert.Len(t, l.events, 2) {
		assert.False(t, l.events[1].dev.Connected)
	}
}
