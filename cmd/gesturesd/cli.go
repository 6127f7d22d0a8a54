package main

import (
	"flag"
)

// CLIOpts is a flat options struct, parsed by parseCLIOpts and
// dispatched on by main.
type CLIOpts struct {
	wayland    bool
	x11        bool
	configPath string
	verbose    bool
	debug      bool
}

func parseCLIOpts(args []string) (CLIOpts, string) {
	fs := flag.NewFlagSet("gesturesd", flag.ExitOnError)
	var opt CLIOpts
	fs.BoolVar(&opt.wayland, "wayland", false, "force the Wayland (ydotool) mouse-synthesis backend")
	fs.BoolVar(&opt.x11, "x11", false, "force the X11 (XTEST) mouse-synthesis backend")
	fs.StringVar(&opt.configPath, "config", "", "path to gestures.toml (default: search XDG config paths)")
	fs.BoolVar(&opt.verbose, "v", false, "verbose (debug) logging")
	fs.BoolVar(&opt.debug, "d", false, "very verbose (trace) logging")
	fs.Parse(args)

	sub := "start"
	if rest := fs.Args(); len(rest) > 0 {
		sub = rest[0]
	}
	return opt, sub
}
