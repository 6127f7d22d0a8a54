// Package control implements the daemon's UNIX-domain control socket: a
// tiny line-oriented protocol ("reload\n") that lets the companion
// gesturesctl binary trigger a hot config reload without restarting the
// daemon.
package control

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

const (
	socketFileName = "gestures.sock"
	queueCapacity  = 128
	workerCount    = 4
)

// SocketPath resolves $XDG_RUNTIME_DIR/gestures.sock, falling back to
// /run/user/<euid>/gestures.sock when XDG_RUNTIME_DIR is unset, as the
// systemd user-session convention guarantees the latter exists for any
// logind session.
func SocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = filepath.Join("/run/user", strconv.Itoa(os.Geteuid()))
	}
	return filepath.Join(dir, socketFileName)
}

// Reloader is the daemon-side effect a "reload" command triggers. An
// error it returns is logged by the server, and the connection and the
// socket keep being served; leaving the previous configuration in place
// on a failed reload is up to the implementation.
type Reloader func() error

// Server owns the listening socket and its connection-handling worker
// pool.
type Server struct {
	path     string
	listener *net.UnixListener
	reload   Reloader
	logger   zerolog.Logger

	conns     chan *net.UnixConn
	wg        sync.WaitGroup
	serveDone chan struct{}
}

// Listen binds the control socket at SocketPath(), refusing to start if
// neither XDG_RUNTIME_DIR nor the /run/user fallback is usable, and
// clearing a stale socket file left by a previous, uncleanly stopped
// daemon.
func Listen(reload Reloader, logger zerolog.Logger) (*Server, error) {
	path := SocketPath()
	if err := clearStaleSocket(path); err != nil {
		return nil, err
	}

	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, fmt.Errorf("control: resolving %s: %w", path, err)
	}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, fmt.Errorf("control: binding %s: %w", path, err)
	}

	s := &Server{
		path:      path,
		listener:  ln,
		reload:    reload,
		logger:    logger,
		conns:     make(chan *net.UnixConn, queueCapacity),
		serveDone: make(chan struct{}),
	}
	for i := 0; i < workerCount; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s, nil
}

// clearStaleSocket removes path only if it already exists as a socket
// file owned by the current euid; any other kind of existing file, or a
// socket owned by someone else, is left alone and reported as an
// error, since a shared runtime directory (e.g. a world-writable /tmp
// fallback) could otherwise let this daemon unlink and rebind over
// another user's socket.
func clearStaleSocket(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("control: checking %s: %w", path, err)
	}
	if info.Mode()&os.ModeSocket == 0 {
		return fmt.Errorf("control: %s exists and is not a socket, refusing to remove it", path)
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st.Uid != uint32(os.Geteuid()) {
		return fmt.Errorf("control: %s is not owned by the current user, refusing to remove it", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("control: removing stale socket %s: %w", path, err)
	}
	return nil
}

// Serve accepts connections until Close is called. It returns nil when
// shutdown was the cause of the accept loop ending.
func (s *Server) Serve() error {
	defer close(s.serveDone)
	for {
		conn, err := s.listener.AcceptUnix()
		if err != nil {
			if strings.Contains(err.Error(), "use of closed network connection") {
				return nil
			}
			return fmt.Errorf("control: accept: %w", err)
		}

		select {
		case s.conns <- conn:
		default:
			s.logger.Warn().Msg("control connection queue full, dropping connection")
			_ = conn.Close()
		}
	}
}

func (s *Server) worker() {
	defer s.wg.Done()
	for conn := range s.conns {
		s.handle(conn)
	}
}

// handle reads newline-terminated commands off conn. The protocol
// writes no reply: a reload's outcome (success, or a parse failure
// that keeps the previous configuration) is only observable in the
// daemon's own log, and unrecognized lines are silently ignored rather
// than rejected.
func (s *Server) handle(conn *net.UnixConn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "reload") {
			continue
		}
		if err := s.reload(); err != nil {
			s.logger.Warn().Err(err).Msg("reload failed, keeping previous configuration")
		}
	}
}

// Reload dials the control socket at path and sends a "reload" command.
// The protocol carries no reply, so this only reports whether the
// command was delivered, not whether the daemon's reload succeeded —
// that outcome is only visible in the daemon's own log. This is the
// logic both cmd/gesturesd's "reload" subcommand and the standalone
// cmd/gesturesctl binary share.
func Reload(path string) error {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return fmt.Errorf("control: dialing %s: %w", path, err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("reload\n")); err != nil {
		return fmt.Errorf("control: sending reload: %w", err)
	}
	return nil
}

// Close stops accepting connections, drains the worker pool, and
// removes the socket file.
func (s *Server) Close() error {
	err := s.listener.Close()
	<-s.serveDone
	close(s.conns)
	s.wg.Wait()
	_ = os.Remove(s.path)
	return err
}
