package binding

import (
	"log/slog"

	"github.com/valerio/go-padkit/padkit/device"
)

type deviceBindings struct {
	order   []string
	actions map[string][]string
}

// Store holds the in-memory binding tables, one per device, and the
// load/save surface for binding files. A raw button may fan out to
// several actions and an action may be reachable from several buttons.
type Store struct {
	storage  Storage
	registry *device.Registry
	bindings map[device.ID]*deviceBindings
}

func NewStore(storage Storage, registry *device.Registry) *Store {
	return &Store{
		storage:  storage,
		registry: registry,
		bindings: make(map[device.ID]*deviceBindings),
	}
}

// Load reads a named binding definition. Read or parse failures are
// non-fatal: the caller proceeds with an empty config.
func (s *Store) Load(name string) Config {
	if s.storage == nil {
		return Config{}
	}
	data, err := s.storage.Read(name)
	if err != nil {
		slog.Warn("binding file not readable, continuing unbound", "name", name, "error", err)
		return Config{}
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		slog.Warn("binding file malformed, continuing unbound", "name", name, "error", err)
		return Config{}
	}
	return cfg
}

// Save serializes a config to mutable storage, overwriting any existing
// file of that name. Failures are logged and leave the in-memory
// binding tables untouched.
func (s *Store) Save(cfg Config, name string) {
	data, err := EncodeConfig(cfg)
	if err != nil {
		slog.Error("failed to encode bindings", "name", name, "error", err)
		return
	}
	if s.storage == nil {
		slog.Error("no binding storage configured", "name", name)
		return
	}
	if err := s.storage.Write(name, data); err != nil {
		slog.Error("failed to save bindings", "name", name, "error", err)
	}
}

// deviceFor resolves a player number to a device, falling back to the
// keyboard sentinel when no device matches.
func (s *Store) deviceFor(player int) device.Device {
	if s.registry != nil {
		if d, ok := s.registry.ForPlayer(player); ok {
			return d
		}
	}
	return device.KeyboardDevice()
}

// Bind appends an action to the button's list on the player's device.
// Repeated calls accumulate: a button bound twice carries both actions,
// in bind order.
func (s *Store) Bind(btn, action string, player int) {
	d := s.deviceFor(player)
	db, ok := s.bindings[d.ID]
	if !ok {
		db = &deviceBindings{actions: make(map[string][]string)}
		s.bindings[d.ID] = db
	}
	if _, ok := db.actions[btn]; !ok {
		db.order = append(db.order, btn)
	}
	db.actions[btn] = append(db.actions[btn], action)
}

// BindFromConfig loads a binding file and binds every action to each of
// its buttons. Unless appendMode is set, the device's existing binding
// table is discarded first.
func (s *Store) BindFromConfig(name string, player int, appendMode bool) {
	cfg := s.Load(name)
	if !appendMode {
		s.Clear(s.deviceFor(player).ID)
	}
	for _, e := range cfg {
		for _, b := range e.Buttons {
			s.Bind(b, e.Action, player)
		}
	}
}

// ActionsFor returns the actions bound to a raw button on a device, in
// bind order. The signature doubles as the state machine's resolver.
func (s *Store) ActionsFor(btn string, id device.ID) []string {
	db, ok := s.bindings[id]
	if !ok {
		return nil
	}
	return db.actions[btn]
}

// Clear drops the binding table for a device.
func (s *Store) Clear(id device.ID) {
	delete(s.bindings, id)
}
