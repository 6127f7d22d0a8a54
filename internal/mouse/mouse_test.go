package mouse

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordedCall struct {
	op     Op
	p1, p2 int
}

type fakeBackend struct {
	mu    sync.Mutex
	calls []recordedCall
	seen  chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{seen: make(chan struct{}, 256)}
}

func (f *fakeBackend) record(op Op, p1, p2 int) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{op, p1, p2})
	f.mu.Unlock()
	f.seen <- struct{}{}
}

func (f *fakeBackend) MouseDown(button int)       { f.record(Down, button, 0) }
func (f *fakeBackend) MouseUp(button int)         { f.record(Up, button, 0) }
func (f *fakeBackend) MoveRelative(dx, dy int)    { f.record(MoveRelative, dx, dy) }
func (f *fakeBackend) Close()                     {}
func (f *fakeBackend) snapshot() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeBackend) waitForCalls(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if len(f.snapshot()) >= n {
			return
		}
		select {
		case <-f.seen:
		case <-deadline:
			t.Fatalf("timed out waiting for %d backend calls, got %d", n, len(f.snapshot()))
		}
	}
}

// TestThreeFingerDragSynthesis covers a direct-mouse rule: it presses
// the button once at begin, forwards update deltas as relative moves,
// and releases the button delay milliseconds after end.
func TestThreeFingerDragSynthesis(t *testing.T) {
	backend := newFakeBackend()
	w := NewWorker(backend, zerolog.Nop())
	defer w.Close()

	w.MouseDown(1)
	backend.waitForCalls(t, 1)
	w.MoveRelative(10, -4)
	w.MoveRelative(3, 1)
	backend.waitForCalls(t, 2)
	w.MouseUpDelay(1, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	calls := backend.snapshot()
	if len(calls) < 3 {
		t.Fatalf("expected at least 3 calls, got %+v", calls)
	}
	if calls[0] != (recordedCall{Down, 1, 0}) {
		t.Fatalf("expected leading mouse down, got %+v", calls[0])
	}
	last := calls[len(calls)-1]
	if last.op != Up || last.p1 != 1 {
		t.Fatalf("expected trailing mouse up, got %+v", last)
	}
}

// TestMoveRelativeCoalescesPreservingNetDisplacement is the
// net-displacement invariant: bursts of queued moves collapse into one
// backend call whose dx/dy equal the sum of the coalesced deltas.
func TestMoveRelativeCoalescesPreservingNetDisplacement(t *testing.T) {
	backend := newFakeBackend()
	w := NewWorker(backend, zerolog.Nop())
	defer w.Close()

	// Block the worker goroutine on a down command's queue read window
	// by feeding moves fast enough that several land in the channel
	// before the worker gets scheduled.
	w.MouseDown(1)
	backend.waitForCalls(t, 1)

	for _, d := range [][2]int{{1, 1}, {2, -1}, {3, 0}, {-1, 4}} {
		w.MoveRelative(d[0], d[1])
	}
	backend.waitForCalls(t, 2)
	time.Sleep(20 * time.Millisecond)

	calls := backend.snapshot()
	var sumDx, sumDy int
	moveCalls := 0
	for _, c := range calls {
		if c.op == MoveRelative {
			sumDx += c.p1
			sumDy += c.p2
			moveCalls++
		}
	}
	if sumDx != 5 || sumDy != 4 {
		t.Fatalf("expected net displacement (5,4), got (%d,%d) across %d calls", sumDx, sumDy, moveCalls)
	}
}

func TestMouseUpDelayCancelledByInterveningDown(t *testing.T) {
	backend := newFakeBackend()
	w := NewWorker(backend, zerolog.Nop())
	defer w.Close()

	w.MouseDown(1)
	backend.waitForCalls(t, 1)
	w.MouseUpDelay(1, 30*time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	w.MouseDown(1) // cancels the pending release and re-presses
	backend.waitForCalls(t, 2)

	time.Sleep(60 * time.Millisecond)
	calls := backend.snapshot()
	ups := 0
	for _, c := range calls {
		if c.op == Up {
			ups++
		}
	}
	if ups != 0 {
		t.Fatalf("expected the pending release to be cancelled, got %d releases: %+v", ups, calls)
	}
}

func TestMoveRelativeDropsOnFullQueueWithoutBlocking(t *testing.T) {
	backend := newFakeBackend()
	// A backend whose calls never drain lets us fill the queue.
	blocking := &blockingBackend{unblock: make(chan struct{})}
	w := NewWorker(blocking, zerolog.Nop())
	defer func() {
		close(blocking.unblock)
		w.Close()
	}()

	w.MouseDown(1) // occupies the worker goroutine inside blockingBackend.MouseDown
	time.Sleep(10 * time.Millisecond)

	for i := 0; i < queueCapacity+10; i++ {
		w.MoveRelative(1, 1)
	}

	if w.DropCount() == 0 {
		t.Fatal("expected some moves to be dropped once the queue filled")
	}
	_ = backend
}

type blockingBackend struct {
	unblock chan struct{}
}

func (b *blockingBackend) MouseDown(button int) { <-b.unblock }
func (b *blockingBackend) MouseUp(button int)   {}
func (b *blockingBackend) MoveRelative(dx, dy int) {}
func (b *blockingBackend) Close()               {}

func TestSaturatingAdd(t *testing.T) {
	maxInt := int(^uint(0) >> 1)
	if got := saturatingAdd(maxInt, 10); got != maxInt {
		t.Fatalf("expected saturation at MaxInt, got %d", got)
	}
	minInt := -maxInt - 1
	if got := saturatingAdd(minInt, -10); got != minInt {
		t.Fatalf("expected saturation at MinInt, got %d", got)
	}
	if got := saturatingAdd(3, 4); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
