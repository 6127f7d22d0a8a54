package mouse

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/rs/zerolog"
)

// x11InitTimeout bounds how long the daemon waits for the X11
// connection + XTEST extension to come up before it commits to X11
// mode at startup.
const x11InitTimeout = 2 * time.Second

// OpenX11 dials the X server and initializes the XTEST extension used
// to synthesize button and relative-motion events, failing fast if
// either doesn't come up within x11InitTimeout.
func OpenX11() (Backend, error) {
	type result struct {
		xu  *xgbutil.XUtil
		err error
	}
	done := make(chan result, 1)
	go func() {
		xu, err := xgbutil.NewConn()
		if err != nil {
			done <- result{err: fmt.Errorf("mouse: connecting to X server: %w", err)}
			return
		}
		if err := xtest.Init(xu.Conn()); err != nil {
			xu.Conn().Close()
			done <- result{err: fmt.Errorf("mouse: initializing XTEST extension: %w", err)}
			return
		}
		done <- result{xu: xu}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return &x11Backend{xu: r.xu}, nil
	case <-time.After(x11InitTimeout):
		return nil, fmt.Errorf("mouse: X11 connection did not become ready within %s", x11InitTimeout)
	}
}

type x11Backend struct {
	xu *xgbutil.XUtil
}

const (
	xtestDetailAbsolute = 0
	xtestDetailRelative = 1
)

func (b *x11Backend) MouseDown(button int) {
	_ = xtest.FakeInputChecked(b.xu.Conn(), xproto.ButtonPress, byte(button), xproto.TimeCurrentTime,
		b.xu.RootWin(), 0, 0, 0).Check()
}

func (b *x11Backend) MouseUp(button int) {
	_ = xtest.FakeInputChecked(b.xu.Conn(), xproto.ButtonRelease, byte(button), xproto.TimeCurrentTime,
		b.xu.RootWin(), 0, 0, 0).Check()
}

func (b *x11Backend) MoveRelative(dx, dy int) {
	_ = xtest.FakeInputChecked(b.xu.Conn(), xproto.MotionNotify, xtestDetailRelative, xproto.TimeCurrentTime,
		b.xu.RootWin(), int16(clampInt16(dx)), int16(clampInt16(dy)), 0).Check()
}

func (b *x11Backend) Close() {
	b.xu.Conn().Close()
}

func clampInt16(v int) int {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return v
	}
}

// waylandBackend shells out to ydotool, a subprocess-injector approach
// used in place of a compositor-specific virtual-pointer protocol
// client.
type waylandBackend struct {
	logger zerolog.Logger
}

// OpenWayland does no up-front handshake: ydotool is invoked lazily per
// command, so there's nothing to rendezvous on at startup beyond
// confirming the binary is on PATH.
func OpenWayland(logger zerolog.Logger) (Backend, error) {
	if _, err := exec.LookPath("ydotool"); err != nil {
		return nil, fmt.Errorf("mouse: ydotool not found in PATH: %w", err)
	}
	return &waylandBackend{logger: logger}, nil
}

func (b *waylandBackend) MouseDown(button int) {
	b.run("click", ydotoolButtonDownFlag(button))
}

func (b *waylandBackend) MouseUp(button int) {
	b.run("click", ydotoolButtonUpFlag(button))
}

func (b *waylandBackend) MoveRelative(dx, dy int) {
	b.run("mousemove", "-x", strconv.Itoa(dx), "-y", strconv.Itoa(dy))
}

func (b *waylandBackend) Close() {}

func (b *waylandBackend) run(args ...string) {
	if out, err := exec.Command("ydotool", args...).CombinedOutput(); err != nil {
		b.logger.Warn().Err(err).Str("output", string(out)).Strs("args", args).Msg("ydotool invocation failed")
	}
}

// ydotool click takes a bitmask: 0x40 | button for press, 0x80 | button
// for release.
func ydotoolButtonDownFlag(button int) string {
	return "0x4" + strconv.Itoa(button)
}

func ydotoolButtonUpFlag(button int) string {
	return "0x8" + strconv.Itoa(button)
}
