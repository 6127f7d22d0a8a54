package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// setupX11Env fills in DISPLAY/XAUTHORITY when a daemon started from a
// systemd user unit or a bare TTY inherits neither, so the X11 backend
// gets a fighting chance before falling back to Wayland. It defaults
// DISPLAY to ":0" and searches the usual XAUTHORITY locations plus the
// dynamic /tmp/xauth_* files some display managers create.
func setupX11Env(logger zerolog.Logger) {
	if os.Getenv("DISPLAY") == "" {
		os.Setenv("DISPLAY", ":0")
		logger.Info().Msg("DISPLAY not set, defaulting to :0")
	}

	if xauth := os.Getenv("XAUTHORITY"); xauth != "" {
		if _, err := os.Stat(xauth); err == nil {
			return
		}
	}

	if entries, err := os.ReadDir("/tmp"); err == nil {
		for _, entry := range entries {
			if matched, _ := filepath.Match("xauth_*", entry.Name()); matched {
				path := filepath.Join("/tmp", entry.Name())
				os.Setenv("XAUTHORITY", path)
				logger.Info().Str("path", path).Msg("found dynamic XAUTHORITY file")
				return
			}
		}
	}

	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".Xauthority"),
		"/tmp/.Xauthority",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			os.Setenv("XAUTHORITY", path)
			logger.Info().Str("path", path).Msg("found XAUTHORITY file")
			return
		}
	}

	logger.Warn().Msg("could not find an XAUTHORITY file, X11 initialization may fail")
}
