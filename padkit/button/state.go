package button

// Phase is the raw, instantaneous up/down signal reported by a physical
// input. The zero value is Up, so buttons that were never observed
// report Up.
type Phase int

const (
	Up Phase = iota
	Down
)

func (p Phase) String() string {
	if p == Down {
		return "down"
	}
	return "up"
}

// State is the debounced, tick-aligned classification of a button.
// JustPressed and JustReleased are each observable for exactly one
// tick; the steady states are only reached on the following tick if the
// phase has not flipped back.
type State int

const (
	Released State = iota
	Pressed
	JustPressed
	JustReleased
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case JustPressed:
		return "just_pressed"
	case JustReleased:
		return "just_released"
	default:
		return "released"
	}
}
