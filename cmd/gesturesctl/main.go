// Command gesturesctl is the companion reload client: it dials
// gesturesd's control socket and sends a "reload" command.
package main

import (
	"flag"
	"fmt"
	"os"

	"gesturesd/internal/control"
)

func main() {
	socketPath := flag.String("socket", control.SocketPath(), "path to gesturesd's control socket")
	flag.Parse()

	if flag.NArg() < 1 || flag.Arg(0) != "reload" {
		fmt.Fprintln(os.Stderr, "usage: gesturesctl reload")
		os.Exit(2)
	}

	if err := control.Reload(*socketPath); err != nil {
		fmt.Fprintf(os.Stderr, "gesturesctl: %v\n", err)
		os.Exit(1)
	}
}
