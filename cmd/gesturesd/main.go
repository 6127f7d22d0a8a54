// Command gesturesd is the touchpad gesture daemon: it polls the
// kernel's multi-touch gesture stream, classifies each gesture against
// the configured rule set, and dispatches shell commands or synthetic
// pointer motion.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"gesturesd/internal/config"
	"gesturesd/internal/control"
	"gesturesd/internal/execpool"
	"gesturesd/internal/gesture"
	"gesturesd/internal/input"
	"gesturesd/internal/logging"
	"gesturesd/internal/mouse"
	"gesturesd/internal/rule"
)

// defaultFPS sets the gesture loop's update throttle rate; there is no
// flag or config setting that changes it.
const defaultFPS = 60

func main() {
	opt, sub := parseCLIOpts(os.Args[1:])

	verbosity := 0
	switch {
	case opt.debug:
		verbosity = 2
	case opt.verbose:
		verbosity = 1
	}
	logger := logging.New(verbosity, os.Stderr)

	if sub == "reload" {
		if err := control.Reload(control.SocketPath()); err != nil {
			logger.Fatal().Err(err).Msg("reload request failed")
		}
		return
	}

	if err := run(opt, logger); err != nil {
		logger.Fatal().Err(err).Msg("gesturesd exiting")
	}
}

func run(opt CLIOpts, logger zerolog.Logger) error {
	cfg, err := config.Load(opt.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cell := rule.NewCell(cfg)

	source, err := input.Open()
	if err != nil {
		if errors.Is(err, input.ErrNoGestureDevice) {
			return fmt.Errorf("no gesture-capable touchpad found: %w", err)
		}
		return fmt.Errorf("opening input source: %w", err)
	}
	defer source.Close()

	mouseBackend, err := selectMouseBackend(opt, logger)
	var mouseWorker *mouse.Worker
	if err != nil {
		logger.Warn().Err(err).Msg("no mouse backend available, direct-mouse swipe rules will be ignored")
	} else {
		mouseWorker = mouse.NewWorker(mouseBackend, logger)
		defer mouseWorker.Close()
	}

	pool := execpool.New(logger)
	defer pool.Close()

	resolvedConfigPath := opt.configPath
	if resolvedConfigPath == "" {
		resolvedConfigPath = config.Resolve()
	}
	reload := func() error {
		newCfg, err := config.Load(resolvedConfigPath)
		if err != nil {
			return err
		}
		cell.Store(newCfg)
		logger.Info().Msg("configuration reloaded")
		return nil
	}

	server, err := control.Listen(reload, logger)
	if err != nil {
		return fmt.Errorf("starting control socket: %w", err)
	}
	defer server.Close()
	go func() {
		if err := server.Serve(); err != nil {
			logger.Warn().Err(err).Msg("control socket accept loop ended")
		}
	}()

	var mouseSink gesture.MouseSink
	if mouseWorker != nil {
		mouseSink = mouseWorker
	}
	loop := gesture.New(source, cell, pool, mouseSink, defaultFPS, logger)

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info().Msg("shutting down")
		close(done)
	}()

	logger.Info().Msg("gesturesd started")
	return loop.Run(done)
}

// selectMouseBackend picks the Wayland ydotool subprocess injector when
// -wayland is given, or when DISPLAY is unset, WAYLAND_DISPLAY is set and
// -x11 is not given. With neither variable set and no flag it returns an
// error. Otherwise it tries X11 (a persistent XTEST connection driven by
// a dedicated mouse.Worker goroutine), falling back to Wayland if X11
// initialization fails.
func selectMouseBackend(opt CLIOpts, logger zerolog.Logger) (mouse.Backend, error) {
	if opt.wayland {
		return mouse.OpenWayland(logger)
	}
	if !opt.x11 && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return nil, fmt.Errorf("neither DISPLAY nor WAYLAND_DISPLAY is set; pass -x11 or -wayland to force a backend")
	}
	if !opt.x11 && os.Getenv("DISPLAY") == "" {
		return mouse.OpenWayland(logger)
	}

	setupX11Env(logger)
	backend, err := mouse.OpenX11()
	if err != nil {
		logger.Warn().Err(err).Msg("X11 initialization failed, falling back to Wayland")
		return mouse.OpenWayland(logger)
	}
	return backend, nil
}
