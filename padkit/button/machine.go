package button

import "github.com/valerio/go-padkit/padkit/device"

// Event describes a single button transition after binding resolution.
// Button carries the bound action name, or the raw button name for the
// trailing raw event (in which case Button == Raw).
type Event struct {
	Button string
	Raw    string
	State  State
	Player int
	Device device.Device
}

// Emitter receives fan-out events as transitions happen.
type Emitter func(Event)

// Resolver returns the actions bound to a raw button on a device, in
// binding order.
type Resolver func(btn string, id device.ID) []string

type record struct {
	phase Phase
	state State
	// seen is false until the first tick assigns a state. Absence of a
	// state is distinct from Released: it marks the first tick a button
	// is observed.
	seen bool
}

type deviceState struct {
	dev     device.Device
	order   []string
	buttons map[string]*record
}

// Machine is the debouncing core. Raw phases are recorded per
// (device, button) as events arrive; Update folds them into the
// four-state lifecycle once per tick and fans transitions out through
// the emitter.
type Machine struct {
	devices map[device.ID]*deviceState
	order   []device.ID
	resolve Resolver
	emit    Emitter
}

func NewMachine(resolve Resolver, emit Emitter) *Machine {
	return &Machine{
		devices: make(map[device.ID]*deviceState),
		resolve: resolve,
		emit:    emit,
	}
}

func (m *Machine) stateFor(dev device.Device) *deviceState {
	ds, ok := m.devices[dev.ID]
	if !ok {
		ds = &deviceState{dev: dev, buttons: make(map[string]*record)}
		m.devices[dev.ID] = ds
		m.order = append(m.order, dev.ID)
	}
	ds.dev = dev
	return ds
}

// SetPhase records the raw phase for a button. The write is skipped
// when the button already settled into the steady state matching the
// phase; this avoids redundant churn within a tick but never blocks the
// first transition.
func (m *Machine) SetPhase(dev device.Device, btn string, phase Phase) {
	ds := m.stateFor(dev)
	rec, ok := ds.buttons[btn]
	if !ok {
		rec = &record{}
		ds.buttons[btn] = rec
		ds.order = append(ds.order, btn)
	}
	if rec.seen {
		if phase == Down && rec.state == Pressed {
			return
		}
		if phase == Up && rec.state == Released {
			return
		}
	}
	rec.phase = phase
}

// Update advances every recorded button one tick and emits fan-out
// events for each state write: one per bound action in binding order,
// then one for the raw button name. Other subsystems depend on that
// ordering.
func (m *Machine) Update() {
	for _, id := range m.order {
		ds := m.devices[id]
		for _, name := range ds.order {
			rec := ds.buttons[name]
			next, changed := advance(rec)
			if !changed {
				continue
			}
			rec.state = next
			rec.seen = true
			m.fanOut(ds.dev, name, next)
		}
	}
}

// advance applies the phase-to-state transition table. The steady
// states are only reached after one full tick in the corresponding
// Just* state.
func advance(rec *record) (State, bool) {
	switch rec.phase {
	case Down:
		if !rec.seen {
			return JustPressed, true
		}
		switch rec.state {
		case JustPressed, JustReleased:
			return Pressed, true
		case Released:
			return JustPressed, true
		}
	case Up:
		if !rec.seen {
			return JustReleased, true
		}
		switch rec.state {
		case JustReleased:
			return Released, true
		case Pressed, JustPressed:
			return JustReleased, true
		}
	}
	return rec.state, false
}

func (m *Machine) fanOut(dev device.Device, raw string, st State) {
	if m.emit == nil {
		return
	}
	player := dev.Player()
	if m.resolve != nil {
		for _, act := range m.resolve(raw, dev.ID) {
			m.emit(Event{Button: act, Raw: raw, State: st, Player: player, Device: dev})
		}
	}
	m.emit(Event{Button: raw, Raw: raw, State: st, Player: player, Device: dev})
}

func (m *Machine) lookup(id device.ID, btn string) (*record, bool) {
	ds, ok := m.devices[id]
	if !ok {
		return nil, false
	}
	rec, ok := ds.buttons[btn]
	return rec, ok
}

// PhaseOf returns the recorded phase, or Up if the button was never
// observed.
func (m *Machine) PhaseOf(id device.ID, btn string) Phase {
	if rec, ok := m.lookup(id, btn); ok {
		return rec.phase
	}
	return Up
}

// StateOf returns the debounced state, or Released if the button was
// never observed.
func (m *Machine) StateOf(id device.ID, btn string) State {
	if rec, ok := m.lookup(id, btn); ok && rec.seen {
		return rec.state
	}
	return Released
}

func (m *Machine) IsInPhase(id device.ID, btn string, phase Phase) bool {
	return m.PhaseOf(id, btn) == phase
}

func (m *Machine) IsInState(id device.ID, btn string, st State) bool {
	return m.StateOf(id, btn) == st
}

// AnyInState scans the device's known buttons in the order they were
// first observed and returns the first one in the given state.
func (m *Machine) AnyInState(id device.ID, st State) (string, bool) {
	ds, ok := m.devices[id]
	if !ok {
		return "", false
	}
	for _, name := range ds.order {
		rec := ds.buttons[name]
		if rec.seen && rec.state == st {
			return name, true
		}
	}
	return "", false
}

// Forget drops all accumulated button state for a device. Used by the
// facade's purge-on-disconnect policy.
func (m *Machine) Forget(id device.ID) {
	if _, ok := m.devices[id]; !ok {
		return
	}
	delete(m.devices, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
