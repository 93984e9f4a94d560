package source

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/device"
)

// holdWindow is slightly longer than a typical terminal key-repeat
// interval.
const holdWindow = 100 * time.Millisecond

// Terminal reads keyboard input from a tcell screen. Terminals never
// report key-up events, so a release is synthesized once a key stops
// repeating within holdWindow.
type Terminal struct {
	screen   tcell.Screen
	listener Listener
	lastSeen map[string]time.Time
	active   map[string]bool
	now      func() time.Time
}

func NewTerminal() *Terminal {
	return &Terminal{now: time.Now}
}

func (t *Terminal) Init(cfg Config) error {
	t.listener = cfg.Listener
	t.lastSeen = make(map[string]time.Time)
	t.active = make(map[string]bool)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %v", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %v", err)
		}
		t.screen = screen
	}
	return nil
}

func (t *Terminal) Capabilities() Capability {
	return CapKey
}

func (t *Terminal) Devices() []device.Device {
	return []device.Device{device.KeyboardDevice()}
}

// Poll drains pending tcell events, then reconciles the hold window:
// keys seen this frame but not the last produce a Down, keys that
// stopped repeating produce an Up.
func (t *Terminal) Poll() error {
	now := t.now()
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.lastSeen[keyName(ev)] = now
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	kb := device.KeyboardDevice()
	current := make(map[string]bool)
	for name, seen := range t.lastSeen {
		if now.Sub(seen) < holdWindow {
			current[name] = true
			if !t.active[name] {
				t.listener.HandleKey(kb, name, button.Down)
			}
		} else {
			delete(t.lastSeen, name)
		}
	}
	for name := range t.active {
		if !current[name] {
			t.listener.HandleKey(kb, name, button.Up)
		}
	}
	t.active = current
	return nil
}

func (t *Terminal) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
	return nil
}

func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return ev.Name()
}
