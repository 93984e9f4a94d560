package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/valerio/go-padkit/padkit"
	"github.com/valerio/go-padkit/padkit/binding"
	"github.com/valerio/go-padkit/padkit/bus"
	"github.com/valerio/go-padkit/padkit/button"
	"github.com/valerio/go-padkit/padkit/config"
	"github.com/valerio/go-padkit/padkit/device"
	"github.com/valerio/go-padkit/padkit/source"
)

func main() {
	app := cli.NewApp()
	app.Name = "padkit-monitor"
	app.Description = "Logs debounced button and thumbstick events from the configured input sources"
	app.Usage = "padkit-monitor [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "source",
			Usage: "Input source to activate: terminal, sdl2 or demo",
			Value: "demo",
		},
		cli.StringFlag{
			Name:  "bindings",
			Usage: "Name of a binding file to apply (without the .binding extension)",
		},
		cli.IntFlag{
			Name:  "player",
			Usage: "Player number the binding file applies to",
			Value: 1,
		},
		cli.IntFlag{
			Name:  "ticks",
			Usage: "Number of update ticks to run before exiting (0 = run until interrupted)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "rate",
			Usage: "Update ticks per second",
			Value: 60,
		},
	}
	app.Action = runMonitor

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running monitor", "error", err)
		os.Exit(1)
	}
}

func runMonitor(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))

	platform, err := cfg.PlatformValue()
	if err != nil {
		return err
	}

	src, err := pickSource(c.String("source"))
	if err != nil {
		return err
	}

	interval, err := tickInterval(c.Int("rate"))
	if err != nil {
		return err
	}

	manager := padkit.New(padkit.Config{
		Sources:           []source.Source{src},
		Platform:          platform,
		Storage:           binding.DirStorage{BaseDir: cfg.BindingDir, MutableDir: cfg.DataDir},
		PurgeOnDisconnect: cfg.PurgeOnDisconnect,
	})

	manager.OnConnection(func(ev bus.ConnectionEvent) {
		slog.Info("connection", "device", ev.Device.Descriptor, "player", ev.Player, "connected", ev.Connected)
	})
	manager.OnButton(func(ev bus.ButtonEvent) {
		slog.Info("button", "button", ev.Button, "raw", ev.Raw, "state", ev.State, "player", ev.Player)
	})
	manager.OnThumbstick(func(ev bus.ThumbstickEvent) {
		slog.Debug("thumbstick",
			"left_x", ev.Left.X, "left_y", ev.Left.Y,
			"right_x", ev.Right.X, "right_y", ev.Right.Y,
			"player", ev.Player)
	})

	if err := manager.PostInit(); err != nil {
		return err
	}
	defer manager.Teardown()

	if name := c.String("bindings"); name != "" {
		manager.BindFromConfig(name, c.Int("player"), false)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	maxTicks := c.Int("ticks")
	for tick := 0; maxTicks == 0 || tick < maxTicks; tick++ {
		select {
		case <-interrupt:
			slog.Info("interrupted, shutting down")
			return nil
		case <-ticker.C:
		}
		if err := manager.Update(); err != nil {
			return err
		}
	}
	return nil
}

// tickInterval converts a ticks-per-second rate into a ticker period.
func tickInterval(rate int) (time.Duration, error) {
	if rate <= 0 {
		return 0, fmt.Errorf("rate must be a positive number of ticks per second, got %d", rate)
	}
	return time.Second / time.Duration(rate), nil
}

func pickSource(name string) (source.Source, error) {
	switch name {
	case "terminal":
		return source.NewTerminal(), nil
	case "sdl2":
		return source.NewSDL2(), nil
	case "demo":
		return demoSource(), nil
	}
	return nil, fmt.Errorf("unknown source %q", name)
}

// demoSource scripts a short canned session: a gamepad connects, mashes
// a few buttons, wiggles the left stick and disconnects.
func demoSource() source.Source {
	pad := device.Device{ID: device.GamepadID(1), Descriptor: "Demo Gamepad 1"}
	s := source.NewScript(pad)
	s.Key(pad, "a", button.Down)
	s.Barrier()
	s.Barrier()
	s.Axis(pad, 1, 0.5)
	s.Axis(pad, 2, -0.5)
	s.Key(pad, "a", button.Up)
	s.Barrier()
	s.Barrier()
	s.Disconnect(pad)
	return s
}
