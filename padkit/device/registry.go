package device

import "log/slog"

// Enumerator lists the devices currently visible to the platform layer.
type Enumerator interface {
	Devices() []Device
}

// ConnectionFunc is invoked with the device and its resolved player
// number whenever a connect or disconnect event arrives.
type ConnectionFunc func(d Device, player int)

// Handle detaches a registered connection callback. Cancel is
// idempotent.
type Handle struct {
	cancel func()
}

func (h *Handle) Cancel() {
	if h != nil && h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

type callback struct {
	id int
	fn ConnectionFunc
}

// Registry tracks connected devices and routes connection events to
// listeners. The device list is replaced wholesale on every refresh;
// there is no diffing beyond the connect/disconnect notifications the
// platform layer already provides.
type Registry struct {
	enum    Enumerator
	devices []Device

	nextID         int
	onConnected    []callback
	onDisconnected []callback
}

func NewRegistry(enum Enumerator) *Registry {
	return &Registry{enum: enum}
}

// Refresh re-reads the full device list from the enumerator. Lookups
// reflect the new list immediately.
func (r *Registry) Refresh() {
	if r.enum == nil {
		return
	}
	r.devices = r.enum.Devices()
}

// Devices returns a copy of the current device list in registry order.
func (r *Registry) Devices() []Device {
	out := make([]Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// ForPlayer returns the device whose resolved player number equals
// player. The first match in registry order wins.
func (r *Registry) ForPlayer(player int) (Device, bool) {
	for _, d := range r.devices {
		if d.Player() == player {
			return d, true
		}
	}
	return Device{}, false
}

// OnConnected registers a callback fired after a device connects.
// Callbacks run in registration order.
func (r *Registry) OnConnected(fn ConnectionFunc) *Handle {
	return r.attach(&r.onConnected, fn)
}

// OnDisconnected registers a callback fired after a device disconnects.
func (r *Registry) OnDisconnected(fn ConnectionFunc) *Handle {
	return r.attach(&r.onDisconnected, fn)
}

func (r *Registry) attach(list *[]callback, fn ConnectionFunc) *Handle {
	r.nextID++
	id := r.nextID
	*list = append(*list, callback{id: id, fn: fn})
	return &Handle{cancel: func() {
		for i, cb := range *list {
			if cb.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}}
}

// HandleConnectionChange refreshes the registry and then fires the
// callback list matching the device's Connected flag.
func (r *Registry) HandleConnectionChange(d Device) {
	r.Refresh()
	player := d.Player()
	if d.Connected {
		slog.Debug("device connected", "device", d.Descriptor, "player", player)
		fire(r.onConnected, d, player)
	} else {
		slog.Debug("device disconnected", "device", d.Descriptor, "player", player)
		fire(r.onDisconnected, d, player)
	}
}

// fire delivers to a snapshot of the callback list, so a callback
// cancelling a handle mid-dispatch cannot disturb the in-flight
// delivery order.
func fire(list []callback, d Device, player int) {
	snapshot := append([]callback(nil), list...)
	for _, cb := range snapshot {
		cb.fn(d, player)
	}
}
