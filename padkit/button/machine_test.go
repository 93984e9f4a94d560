package button

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-padkit/padkit/device"
)

func pad() device.Device {
	return device.Device{ID: device.GamepadID(7), Descriptor: "Gamepad 1", Connected: true}
}

func TestMachine_Defaults(t *testing.T) {
	m := NewMachine(nil, nil)

	assert.Equal(t, Released, m.StateOf(device.KeyboardID, "a"), "unobserved buttons default to Released")
	assert.Equal(t, Up, m.PhaseOf(device.KeyboardID, "a"), "unobserved buttons default to Up")
	assert.True(t, m.IsInState(device.KeyboardID, "a", Released))
	assert.True(t, m.IsInPhase(device.KeyboardID, "a", Up))

	_, found := m.AnyInState(device.KeyboardID, Pressed)
	assert.False(t, found)
}

func TestMachine_PressLifecycle(t *testing.T) {
	m := NewMachine(nil, nil)
	d := pad()

	m.SetPhase(d, "a", Down)
	m.Update()
	assert.Equal(t, JustPressed, m.StateOf(d.ID, "a"), "first tick after a press is JustPressed")

	m.Update()
	assert.Equal(t, Pressed, m.StateOf(d.ID, "a"), "JustPressed lasts exactly one tick")

	m.Update()
	assert.Equal(t, Pressed, m.StateOf(d.ID, "a"), "Pressed is steady while the phase stays Down")

	m.SetPhase(d, "a", Up)
	m.Update()
	assert.Equal(t, JustReleased, m.StateOf(d.ID, "a"), "first tick after a release is JustReleased")

	m.Update()
	assert.Equal(t, Released, m.StateOf(d.ID, "a"), "JustReleased lasts exactly one tick")

	m.Update()
	assert.Equal(t, Released, m.StateOf(d.ID, "a"))
}

func TestMachine_FirstObservationUp(t *testing.T) {
	m := NewMachine(nil, nil)
	d := pad()

	// An Up phase on a never-seen button is distinct from Released.
	m.SetPhase(d, "a", Up)
	m.Update()
	assert.Equal(t, JustReleased, m.StateOf(d.ID, "a"))

	m.Update()
	assert.Equal(t, Released, m.StateOf(d.ID, "a"))
}

func TestMachine_QuickTapCollapsesToPressed(t *testing.T) {
	m := NewMachine(nil, nil)
	d := pad()

	m.SetPhase(d, "a", Down)
	m.Update()
	assert.Equal(t, JustPressed, m.StateOf(d.ID, "a"))

	// Phase flips back to Down while still in JustReleased: the table
	// routes both Just* states to Pressed on a Down phase.
	m.SetPhase(d, "a", Up)
	m.Update()
	assert.Equal(t, JustReleased, m.StateOf(d.ID, "a"))

	m.SetPhase(d, "a", Down)
	m.Update()
	assert.Equal(t, Pressed, m.StateOf(d.ID, "a"))
}

func TestMachine_FanOutOrder(t *testing.T) {
	bindings := map[string][]string{"a": {"jump", "confirm"}}
	resolve := func(btn string, id device.ID) []string { return bindings[btn] }

	var got []Event
	m := NewMachine(resolve, func(ev Event) { got = append(got, ev) })
	d := pad()

	m.SetPhase(d, "a", Down)
	m.Update()

	if assert.Len(t, got, 3, "one event per bound action plus the raw button") {
		assert.Equal(t, "jump", got[0].Button)
		assert.Equal(t, "confirm", got[1].Button)
		assert.Equal(t, "a", got[2].Button)
	}
	for _, ev := range got {
		assert.Equal(t, "a", ev.Raw)
		assert.Equal(t, JustPressed, ev.State)
		assert.Equal(t, 1, ev.Player)
		assert.Equal(t, d.ID, ev.Device.ID)
	}
}

func TestMachine_NoEventsWithoutTransition(t *testing.T) {
	var got []Event
	m := NewMachine(nil, func(ev Event) { got = append(got, ev) })
	d := pad()

	m.SetPhase(d, "a", Down)
	m.Update() // JustPressed
	m.Update() // Pressed
	got = nil

	m.Update()
	m.Update()
	assert.Empty(t, got, "a steady state emits nothing")
}

func TestMachine_AnyInState(t *testing.T) {
	m := NewMachine(nil, nil)
	d := pad()

	m.SetPhase(d, "a", Down)
	m.SetPhase(d, "b", Down)
	m.Update()

	name, found := m.AnyInState(d.ID, JustPressed)
	assert.True(t, found)
	assert.Equal(t, "a", name, "first observed button wins")

	_, found = m.AnyInState(d.ID, Pressed)
	assert.False(t, found)
}

func TestMachine_PlayerNumberInEvents(t *testing.T) {
	var got []Event
	m := NewMachine(nil, func(ev Event) { got = append(got, ev) })
	d := device.Device{ID: device.GamepadID(3), Descriptor: "Gamepad 3", Connected: true}

	m.SetPhase(d, "start", Down)
	m.Update()

	if assert.Len(t, got, 1) {
		assert.Equal(t, 3, got[0].Player, "player number resolved from the descriptor")
	}
}

func TestMachine_Forget(t *testing.T) {
	m := NewMachine(nil, nil)
	d := pad()

	m.SetPhase(d, "a", Down)
	m.Update()
	m.Update()
	assert.Equal(t, Pressed, m.StateOf(d.ID, "a"))

	m.Forget(d.ID)
	assert.Equal(t, Released, m.StateOf(d.ID, "a"))
	assert.Equal(t, Up, m.PhaseOf(d.ID, "a"))
}
