// Package bus is the typed event dispatcher owned by the input facade.
// Delivery is synchronous and single-threaded: handlers run to
// completion, in subscription order, before control returns to the
// emitter.
package bus

import (
	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
	"github.com/valerio/go-padkit/padkit/stick"
)

// ButtonEvent is delivered once per bound action and once more for the
// raw button name on every state transition. Bound actions fire first,
// in binding order; the raw event is always last.
type ButtonEvent struct {
	Button string
	Raw    string
	State  button.State
	Player int
	Device device.Device
}

// ThumbstickEvent carries the full per-device stick snapshot after
// every applied axis sample.
type ThumbstickEvent struct {
	Left   stick.Vector
	Right  stick.Vector
	Player int
	Device device.Device
}

// ConnectionEvent reports a device connecting or disconnecting.
type ConnectionEvent struct {
	Device    device.Device
	Player    int
	Connected bool
}

// Subscription detaches an attached handler. Cancel is idempotent.
type Subscription struct {
	cancel func()
}

func (s *Subscription) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type handler[T any] struct {
	id int
	fn func(T)
}

// Dispatcher routes input events to subscribed handlers.
type Dispatcher struct {
	nextID      int
	buttons     []handler[ButtonEvent]
	thumbsticks []handler[ThumbstickEvent]
	connections []handler[ConnectionEvent]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func attach[T any](d *Dispatcher, list *[]handler[T], fn func(T)) *Subscription {
	d.nextID++
	id := d.nextID
	*list = append(*list, handler[T]{id: id, fn: fn})
	return &Subscription{cancel: func() {
		for i, h := range *list {
			if h.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}}
}

func (d *Dispatcher) OnButton(fn func(ButtonEvent)) *Subscription {
	return attach(d, &d.buttons, fn)
}

func (d *Dispatcher) OnThumbstick(fn func(ThumbstickEvent)) *Subscription {
	return attach(d, &d.thumbsticks, fn)
}

func (d *Dispatcher) OnConnection(fn func(ConnectionEvent)) *Subscription {
	return attach(d, &d.connections, fn)
}

// dispatch delivers to a snapshot of the subscriber list, so a handler
// cancelling a subscription mid-dispatch cannot disturb the in-flight
// delivery order.
func dispatch[T any](list []handler[T], ev T) {
	snapshot := append([]handler[T](nil), list...)
	for _, h := range snapshot {
		h.fn(ev)
	}
}

func (d *Dispatcher) EmitButton(ev ButtonEvent) {
	dispatch(d.buttons, ev)
}

func (d *Dispatcher) EmitThumbstick(ev ThumbstickEvent) {
	dispatch(d.thumbsticks, ev)
}

func (d *Dispatcher) EmitConnection(ev ConnectionEvent) {
	dispatch(d.connections, ev)
}

// Close drops every subscription.
func (d *Dispatcher) Close() {
	d.buttons = nil
	d.thumbsticks = nil
	d.connections = nil
}
