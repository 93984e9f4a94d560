package stick

import (
	"math"

	"github.com/valerio/go-padkit/padkit/device"
)

// Side identifies one of the two analog sticks.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Vector is a stick deflection with both components in [-1, 1].
type Vector struct {
	X float64
	Y float64
}

// Snapshot is the full per-device stick state carried by thumbstick
// events.
type Snapshot struct {
	Left  Vector
	Right Vector
}

// Emitter receives the updated snapshot after every applied axis
// sample.
type Emitter func(dev device.Device, snap Snapshot)

type entry struct {
	dev  device.Device
	snap Snapshot
}

// Processor accumulates per-axis samples into 2D stick vectors per
// device. Snapshots are created lazily on the first axis event for a
// device, with both sticks at (0,0).
type Processor struct {
	registry *device.Registry
	devices  map[device.ID]*entry
	emit     Emitter
}

func NewProcessor(registry *device.Registry, emit Emitter) *Processor {
	return &Processor{
		registry: registry,
		devices:  make(map[device.ID]*entry),
		emit:     emit,
	}
}

// ApplyAxis folds a normalized axis sample into the device's snapshot
// and emits the result. Axis indices are 1-based: 1/2 are the left
// stick X/Y, 3/4 the right. Any other index is silently ignored and
// mutates nothing.
func (p *Processor) ApplyAxis(dev device.Device, axis int, value float64) {
	if axis < 1 || axis > 4 {
		return
	}
	e, ok := p.devices[dev.ID]
	if !ok {
		e = &entry{}
		p.devices[dev.ID] = e
	}
	e.dev = dev
	switch axis {
	case 1:
		e.snap.Left.X = value
	case 2:
		e.snap.Left.Y = value
	case 3:
		e.snap.Right.X = value
	case 4:
		e.snap.Right.Y = value
	}
	if p.emit != nil {
		p.emit(dev, e.snap)
	}
}

// Vector returns the current deflection of a stick for the player's
// device. ok is false when no device matches the player or the device
// has never reported an axis.
func (p *Processor) Vector(side Side, player int) (Vector, bool) {
	if p.registry == nil {
		return Vector{}, false
	}
	d, ok := p.registry.ForPlayer(player)
	if !ok {
		return Vector{}, false
	}
	e, ok := p.devices[d.ID]
	if !ok {
		return Vector{}, false
	}
	if side == Right {
		return e.snap.Right, true
	}
	return e.snap.Left, true
}

// Distance returns the Euclidean norm of the stick's deflection.
func (p *Processor) Distance(side Side, player int) (float64, bool) {
	v, ok := p.Vector(side, player)
	if !ok {
		return 0, false
	}
	return math.Hypot(v.X, v.Y), true
}

// Angle returns the stick's direction as a compass bearing with the
// caller's offset applied, or ok=false for an exactly centered stick.
// The pipeline rotates the atan2 angle into the on-screen compass
// frame; the steps are order-sensitive. Reference: (1,0) yields 90.
func (p *Processor) Angle(side Side, offset float64, player int) (float64, bool) {
	v, ok := p.Vector(side, player)
	if !ok || (v.X == 0 && v.Y == 0) {
		return 0, false
	}
	a := math.Atan2(v.Y, v.X) * 180 / math.Pi
	a = 90 - a
	a += 180
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	a = math.Abs(a - 360)
	return a + offset, true
}

// Forget drops all accumulated stick state for a device. Used by the
// facade's purge-on-disconnect policy.
func (p *Processor) Forget(id device.ID) {
	delete(p.devices, id)
}
