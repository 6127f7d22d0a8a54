// Package config loads the TOML gesture-rule file into the internal
// rule.Config model, implementing the search-path and reload-tolerance
// contract for the configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"gesturesd/internal/rule"
)

// fileName is the configuration file's base name. Rules are declared
// as TOML array-of-tables rather than the KDL format older gesture
// daemons have used, so the file keeps the gesture-focused name with a
// TOML extension.
const fileName = "gestures.toml"

// SearchPaths returns, in priority order, the locations Load checks
// when no explicit path is given: $XDG_CONFIG_HOME/gestures.toml,
// $XDG_CONFIG_HOME/gestures/gestures.toml, and the $HOME/.config
// equivalents of both when XDG_CONFIG_HOME is unset.
func SearchPaths() []string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return nil
	}
	return []string{
		filepath.Join(base, fileName),
		filepath.Join(base, "gestures", fileName),
	}
}

// Resolve returns the first existing search-path candidate, or an
// empty string if none exist.
func Resolve() string {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads and decodes the configuration file at path. An empty path
// resolves via the search path; no config found at startup is fatal.
func Load(path string) (*rule.Config, error) {
	if path == "" {
		path = Resolve()
	}
	if path == "" {
		return nil, fmt.Errorf("config: no gestures.toml found in %v", SearchPaths())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Decode(data)
}

type fileSwipeRule struct {
	Direction    string `toml:"direction"`
	Fingers      int    `toml:"fingers"`
	Start        string `toml:"start"`
	Update       string `toml:"update"`
	End          string `toml:"end"`
	Acceleration *int   `toml:"acceleration"`
	MouseUpDelay *int   `toml:"mouse_up_delay"`
}

type filePinchRule struct {
	Direction string `toml:"direction"`
	Fingers   int    `toml:"fingers"`
	Start     string `toml:"start"`
	Update    string `toml:"update"`
	End       string `toml:"end"`
}

type fileHoldRule struct {
	Fingers int    `toml:"fingers"`
	Action  string `toml:"action"`
}

type fileConfig struct {
	Swipe []fileSwipeRule `toml:"swipe"`
	Pinch []filePinchRule `toml:"pinch"`
	Hold  []fileHoldRule  `toml:"hold"`
}

// Decode parses raw TOML bytes into a rule.Config. Declaration order
// within each array-of-tables is preserved by toml.Decode, which the
// rule index relies on to break ties between equally-matching rules.
func Decode(data []byte) (*rule.Config, error) {
	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return nil, fmt.Errorf("config: parsing TOML: %w", err)
	}

	cfg := &rule.Config{}
	for _, s := range fc.Swipe {
		cfg.Swipes = append(cfg.Swipes, &rule.SwipeRule{
			Direction:    rule.ParseSwipeDir(s.Direction),
			Fingers:      s.Fingers,
			Start:        s.Start,
			Update:       s.Update,
			End:          s.End,
			Acceleration: s.Acceleration,
			MouseUpDelay: s.MouseUpDelay,
		})
	}
	for _, p := range fc.Pinch {
		cfg.Pinches = append(cfg.Pinches, &rule.PinchRule{
			Direction: rule.ParsePinchDir(p.Direction),
			Fingers:   p.Fingers,
			Start:     p.Start,
			Update:    p.Update,
			End:       p.End,
		})
	}
	for _, h := range fc.Hold {
		cfg.Holds = append(cfg.Holds, &rule.HoldRule{
			Fingers: h.Fingers,
			Action:  h.Action,
		})
	}
	return cfg, nil
}
