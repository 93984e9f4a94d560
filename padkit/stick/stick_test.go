package stick

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-padkit/padkit/device"
)

type fakeEnumerator struct {
	devices []device.Device
}

func (f *fakeEnumerator) Devices() []device.Device {
	return f.devices
}

func testSetup(emit Emitter) (*Processor, device.Device) {
	pad := device.Device{ID: device.GamepadID(1), Descriptor: "Gamepad 1", Connected: true}
	r := device.NewRegistry(&fakeEnumerator{devices: []device.Device{pad}})
	r.Refresh()
	return NewProcessor(r, emit), pad
}

func TestProcessor_AxisMapping(t *testing.T) {
	p, pad := testSetup(nil)

	p.ApplyAxis(pad, 1, 0.1)
	p.ApplyAxis(pad, 2, 0.2)
	p.ApplyAxis(pad, 3, 0.3)
	p.ApplyAxis(pad, 4, 0.4)

	left, ok := p.Vector(Left, 1)
	assert.True(t, ok)
	assert.Equal(t, Vector{X: 0.1, Y: 0.2}, left)

	right, ok := p.Vector(Right, 1)
	assert.True(t, ok)
	assert.Equal(t, Vector{X: 0.3, Y: 0.4}, right)
}

func TestProcessor_UnknownAxisIgnored(t *testing.T) {
	var events int
	p, pad := testSetup(func(dev device.Device, snap Snapshot) { events++ })

	p.ApplyAxis(pad, 0, 0.5)
	p.ApplyAxis(pad, 5, 0.5)
	p.ApplyAxis(pad, -1, 0.5)

	assert.Zero(t, events, "ignored axes emit nothing")
	_, ok := p.Distance(Left, 1)
	assert.False(t, ok, "ignored axes create no state")
}

func TestProcessor_Distance(t *testing.T) {
	p, pad := testSetup(nil)

	p.ApplyAxis(pad, 1, 3)
	p.ApplyAxis(pad, 2, 4)

	d, ok := p.Distance(Left, 1)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-9)

	// The right stick exists once the device has reported any axis.
	d, ok = p.Distance(Right, 1)
	assert.True(t, ok)
	assert.Zero(t, d)
}

func TestProcessor_DistanceUnobserved(t *testing.T) {
	p, _ := testSetup(nil)

	_, ok := p.Distance(Left, 1)
	assert.False(t, ok, "no axis event seen for the device")

	_, ok = p.Distance(Left, 9)
	assert.False(t, ok, "no device for that player")
}

func TestProcessor_Angle(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		offset   float64
		expected float64
	}{
		{name: "east is the 90 degree reference", x: 1, y: 0, expected: 90},
		{name: "west", x: -1, y: 0, expected: 270},
		{name: "screen-down", x: 0, y: 1, expected: 180},
		{name: "offset is added last", x: 1, y: 0, offset: 45, expected: 135},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pad := testSetup(nil)
			p.ApplyAxis(pad, 1, tt.x)
			p.ApplyAxis(pad, 2, tt.y)

			a, ok := p.Angle(Left, tt.offset, 1)
			assert.True(t, ok)
			assert.InDelta(t, tt.expected, a, 1e-9)
		})
	}
}

func TestProcessor_AngleCenteredIsUndefined(t *testing.T) {
	p, pad := testSetup(nil)
	p.ApplyAxis(pad, 1, 0)

	_, ok := p.Angle(Left, 0, 1)
	assert.False(t, ok, "an exactly centered stick has no bearing")
}

func TestProcessor_EmitsFullSnapshot(t *testing.T) {
	var got []Snapshot
	p, pad := testSetup(func(dev device.Device, snap Snapshot) { got = append(got, snap) })

	p.ApplyAxis(pad, 1, 0.5)
	p.ApplyAxis(pad, 4, -0.5)

	if assert.Len(t, got, 2, "every applied axis update emits one event") {
		assert.Equal(t, Snapshot{Left: Vector{X: 0.5}}, got[0])
		assert.Equal(t, Snapshot{Left: Vector{X: 0.5}, Right: Vector{Y: -0.5}}, got[1])
	}
}

func TestProcessor_Forget(t *testing.T) {
	p, pad := testSetup(nil)
	p.ApplyAxis(pad, 1, 1)

	p.Forget(pad.ID)

	_, ok := p.Distance(Left, 1)
	assert.False(t, ok)
}
