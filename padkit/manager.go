// Package padkit normalizes raw device events (keyboard, gamepad
// buttons and axes, touch) into a debounced button-state model with
// configurable action bindings, and redistributes them as typed events.
package padkit

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-padkit/padkit/binding"
	"github.com/valerio/go-padkit/padkit/bus"
	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
	"github.com/valerio/go-padkit/padkit/source"
	"github.com/valerio/go-padkit/padkit/stick"
)

// Config holds the facade's construction options.
type Config struct {
	// Sources are the candidate event pumps; only those intersecting
	// the platform's capability set are activated.
	Sources  []source.Source
	Platform source.Platform
	Storage  binding.Storage

	// PurgeOnDisconnect drops a device's accumulated button and stick
	// state when it disconnects. Off by default: a reconnecting pad
	// then resumes exactly where it left off.
	PurgeOnDisconnect bool
}

// Manager composes the registry, binding store, state machine, stick
// processor and dispatcher behind a single update/poll surface. All
// methods must be called from the one goroutine that drives Update.
type Manager struct {
	cfg     Config
	caps    source.Capability
	sources []source.Source

	registry *device.Registry
	store    *binding.Store
	machine  *button.Machine
	sticks   *stick.Processor
	bus      *bus.Dispatcher

	actions   []string
	actionSet map[string]bool
	handles   []*device.Handle
	started   bool
}

// New wires the facade together. Startup is two-phase: no sources are
// active and no devices are known until PostInit runs.
func New(cfg Config) *Manager {
	m := &Manager{
		cfg:       cfg,
		caps:      source.Capabilities(cfg.Platform),
		actionSet: make(map[string]bool),
		bus:       bus.NewDispatcher(),
	}
	m.registry = device.NewRegistry(enumeratorFunc(m.enumerate))
	m.store = binding.NewStore(cfg.Storage, m.registry)
	m.machine = button.NewMachine(m.store.ActionsFor, m.emitButton)
	m.sticks = stick.NewProcessor(m.registry, m.emitThumbstick)

	m.handles = append(m.handles,
		m.registry.OnConnected(func(d device.Device, player int) {
			m.bus.EmitConnection(bus.ConnectionEvent{Device: d, Player: player, Connected: true})
		}),
		m.registry.OnDisconnected(func(d device.Device, player int) {
			if m.cfg.PurgeOnDisconnect {
				m.machine.Forget(d.ID)
				m.sticks.Forget(d.ID)
			}
			m.bus.EmitConnection(bus.ConnectionEvent{Device: d, Player: player, Connected: false})
		}),
	)
	return m
}

type enumeratorFunc func() []device.Device

func (f enumeratorFunc) Devices() []device.Device { return f() }

// enumerate aggregates the active sources' device lists, keeping the
// first occurrence of each identity.
func (m *Manager) enumerate() []device.Device {
	var devs []device.Device
	seen := make(map[device.ID]bool)
	for _, src := range m.sources {
		for _, d := range src.Devices() {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			devs = append(devs, d)
		}
	}
	return devs
}

// PostInit activates the sources allowed by the platform capability
// set, discovers devices and fires connected notifications for every
// device already present. Callbacks registered between New and PostInit
// still learn about pre-existing devices.
func (m *Manager) PostInit() error {
	if m.started {
		return nil
	}
	for _, src := range m.cfg.Sources {
		if src.Capabilities()&m.caps == 0 {
			slog.Debug("skipping source outside platform capabilities", "platform", m.cfg.Platform)
			continue
		}
		if err := src.Init(source.Config{Listener: m, Capabilities: m.caps}); err != nil {
			return fmt.Errorf("failed to initialize input source: %w", err)
		}
		m.sources = append(m.sources, src)
	}
	m.registry.Refresh()
	m.started = true
	for _, d := range m.registry.Devices() {
		m.bus.EmitConnection(bus.ConnectionEvent{Device: d, Player: d.Player(), Connected: true})
	}
	return nil
}

// Update runs one tick: pump the active sources, then advance every
// recorded phase through the state machine. Phases recorded while a
// tick is in progress are only visible to the next one.
func (m *Manager) Update() error {
	for _, src := range m.sources {
		if err := src.Poll(); err != nil {
			return err
		}
	}
	m.machine.Update()
	return nil
}

// Teardown deactivates sources and detaches every listener.
func (m *Manager) Teardown() {
	for _, src := range m.sources {
		if err := src.Cleanup(); err != nil {
			slog.Warn("source cleanup failed", "error", err)
		}
	}
	m.sources = nil
	for _, h := range m.handles {
		h.Cancel()
	}
	m.handles = nil
	m.bus.Close()
	m.started = false
}

// HandleKey records a raw button phase. Implements source.Listener.
func (m *Manager) HandleKey(dev device.Device, btn string, phase button.Phase) {
	m.machine.SetPhase(dev, btn, phase)
}

// HandleAxis folds a raw axis sample into the stick state. Implements
// source.Listener.
func (m *Manager) HandleAxis(dev device.Device, axis int, value float64) {
	m.sticks.ApplyAxis(dev, axis, value)
}

// HandleConnectionChange routes a platform connection event through
// the registry. Implements source.Listener.
func (m *Manager) HandleConnectionChange(dev device.Device) {
	m.registry.HandleConnectionChange(dev)
}

func (m *Manager) emitButton(ev button.Event) {
	m.bus.EmitButton(bus.ButtonEvent{
		Button: ev.Button,
		Raw:    ev.Raw,
		State:  ev.State,
		Player: ev.Player,
		Device: ev.Device,
	})
}

func (m *Manager) emitThumbstick(dev device.Device, snap stick.Snapshot) {
	m.bus.EmitThumbstick(bus.ThumbstickEvent{
		Left:   snap.Left,
		Right:  snap.Right,
		Player: dev.Player(),
		Device: dev,
	})
}

// RegisterAction records a known action name. Registration is a set;
// duplicates are dropped.
func (m *Manager) RegisterAction(name string) {
	if m.actionSet[name] {
		return
	}
	m.actionSet[name] = true
	m.actions = append(m.actions, name)
}

// Actions returns the registered action names in registration order.
func (m *Manager) Actions() []string {
	out := make([]string, len(m.actions))
	copy(out, m.actions)
	return out
}

// deviceFor resolves a player to a device, falling back to the
// keyboard sentinel.
func (m *Manager) deviceFor(player int) device.Device {
	if d, ok := m.registry.ForPlayer(player); ok {
		return d
	}
	return device.KeyboardDevice()
}

// Bind appends an action to a raw button on the player's device.
func (m *Manager) Bind(btn, action string, player int) {
	m.store.Bind(btn, action, player)
}

// BindFromConfig loads a binding file and applies it to the player's
// device, replacing existing bindings unless appendMode is set.
func (m *Manager) BindFromConfig(name string, player int, appendMode bool) {
	m.store.BindFromConfig(name, player, appendMode)
}

// LoadBindings reads a named binding definition without applying it.
func (m *Manager) LoadBindings(name string) binding.Config {
	return m.store.Load(name)
}

// SaveBindings persists a binding definition under the given name.
func (m *Manager) SaveBindings(cfg binding.Config, name string) {
	m.store.Save(cfg, name)
}

// ActionsFor returns the actions bound to a raw button on the player's
// device, in bind order.
func (m *Manager) ActionsFor(btn string, player int) []string {
	return m.store.ActionsFor(btn, m.deviceFor(player).ID)
}

// StateOf returns the debounced state of a button on the player's
// device; Released if never observed.
func (m *Manager) StateOf(btn string, player int) button.State {
	return m.machine.StateOf(m.deviceFor(player).ID, btn)
}

// PhaseOf returns the raw phase of a button on the player's device; Up
// if never observed.
func (m *Manager) PhaseOf(btn string, player int) button.Phase {
	return m.machine.PhaseOf(m.deviceFor(player).ID, btn)
}

func (m *Manager) IsInState(btn string, st button.State, player int) bool {
	return m.StateOf(btn, player) == st
}

func (m *Manager) IsInPhase(btn string, phase button.Phase, player int) bool {
	return m.PhaseOf(btn, player) == phase
}

// AnyInState returns the first of the player's observed buttons in the
// given state.
func (m *Manager) AnyInState(st button.State, player int) (string, bool) {
	return m.machine.AnyInState(m.deviceFor(player).ID, st)
}

// StickDistance returns the deflection magnitude of a stick.
func (m *Manager) StickDistance(side stick.Side, player int) (float64, bool) {
	return m.sticks.Distance(side, player)
}

// StickAngle returns the compass bearing of a stick with the offset
// applied; ok=false for a centered or unobserved stick.
func (m *Manager) StickAngle(side stick.Side, offset float64, player int) (float64, bool) {
	return m.sticks.Angle(side, offset, player)
}

// Devices returns the registry's current device list.
func (m *Manager) Devices() []device.Device {
	return m.registry.Devices()
}

// OnButton subscribes to debounced button events.
func (m *Manager) OnButton(fn func(bus.ButtonEvent)) *bus.Subscription {
	return m.bus.OnButton(fn)
}

// OnThumbstick subscribes to stick snapshot events.
func (m *Manager) OnThumbstick(fn func(bus.ThumbstickEvent)) *bus.Subscription {
	return m.bus.OnThumbstick(fn)
}

// OnConnection subscribes to device connect/disconnect events.
func (m *Manager) OnConnection(fn func(bus.ConnectionEvent)) *bus.Subscription {
	return m.bus.OnConnection(fn)
}

// OnDeviceConnected attaches a registry-level connect callback.
func (m *Manager) OnDeviceConnected(fn device.ConnectionFunc) *device.Handle {
	return m.registry.OnConnected(fn)
}

// OnDeviceDisconnected attaches a registry-level disconnect callback.
func (m *Manager) OnDeviceDisconnected(fn device.ConnectionFunc) *device.Handle {
	return m.registry.OnDisconnected(fn)
}
