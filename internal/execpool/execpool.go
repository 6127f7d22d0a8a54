// Package execpool fans gesture-rule action commands out to "sh -c"
// subprocesses on a small fixed worker pool, applying two different
// back-pressure policies depending on whether the caller can tolerate a
// dropped invocation.
package execpool

import (
	"context"
	"os/exec"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// queueCapacity and workerCount are this pool's fixed sizing.
const (
	queueCapacity = 256
	workerCount   = 4
)

// Pool runs shell commands on a bounded worker pool. The zero value is
// not usable; construct with New.
type Pool struct {
	logger zerolog.Logger
	queue  chan string
	group  *errgroup.Group
	cancel context.CancelFunc
}

// New starts the worker pool immediately. The pool is not created
// lazily: the daemon constructs its Pool at startup, whether or not any
// configured rule has a command action.
func New(logger zerolog.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	p := &Pool{
		logger: logger,
		queue:  make(chan string, queueCapacity),
		group:  g,
		cancel: cancel,
	}
	for i := 0; i < workerCount; i++ {
		g.Go(func() error {
			p.worker(ctx)
			return nil
		})
	}
	return p
}

func (p *Pool) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case command := <-p.queue:
			p.exec(command)
		}
	}
}

func (p *Pool) exec(command string) {
	cmd := exec.Command("sh", "-c", command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		p.logger.Warn().Err(err).Str("command", command).Str("output", string(out)).
			Msg("gesture action command failed")
		return
	}
	p.logger.Debug().Str("command", command).Msg("gesture action command completed")
}

// ExecCommand is the back-pressure policy for start/end actions: these
// fire once per gesture and must not be silently dropped, so a full
// queue blocks the caller (the gesture event loop) briefly rather than
// losing the command.
func (p *Pool) ExecCommand(command string) {
	select {
	case p.queue <- command:
	default:
		p.logger.Warn().Str("command", command).Msg("action queue full, blocking for a slot")
		p.queue <- command
	}
}

// ExecUpdate is the back-pressure policy for per-update actions: these
// fire many times per gesture, so a full queue drops the command and
// logs at DEBUG rather than stalling the event loop.
func (p *Pool) ExecUpdate(command string) {
	select {
	case p.queue <- command:
	default:
		p.logger.Debug().Str("command", command).Msg("action queue full, dropping update command")
	}
}

// Close stops the workers and waits for in-flight commands to finish.
// Queued-but-not-started commands are abandoned.
func (p *Pool) Close() {
	p.cancel()
	_ = p.group.Wait()
}
