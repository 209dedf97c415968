package trainer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/typeuber/internal/session"
)

type loopHarness struct {
	t       *testing.T
	clock   *manualScheduler
	trainer *Trainer
	loop    *Loop
	updates chan Update
	cancel  context.CancelFunc
	errc    chan error
	once    sync.Once
}

func startLoop(t *testing.T) *loopHarness {
	t.Helper()
	clock := newManualScheduler()
	h := &loopHarness{
		t:       t,
		clock:   clock,
		trainer: newTestTrainer(t, clock),
		updates: make(chan Update, 16),
		errc:    make(chan error, 1),
	}
	h.loop = NewLoop(h.trainer, clock, func(u Update) { h.updates <- u }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.errc <- h.loop.Run(ctx) }()
	t.Cleanup(h.stop)
	h.next()
	return h
}

func (h *loopHarness) stop() {
	h.once.Do(func() {
		h.cancel()
		select {
		case err := <-h.errc:
			if err != nil {
				h.t.Errorf("run: %v", err)
			}
		case <-time.After(2 * time.Second):
			h.t.Errorf("loop did not stop")
		}
	})
}

func (h *loopHarness) send(cmd Command) Update {
	h.t.Helper()
	if err := h.loop.Send(context.Background(), cmd); err != nil {
		h.t.Fatalf("send: %v", err)
	}
	return h.next()
}

func (h *loopHarness) next() Update {
	h.t.Helper()
	select {
	case u := <-h.updates:
		return u
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for update")
		return Update{}
	}
}

func (h *loopHarness) expectQuiet() {
	h.t.Helper()
	select {
	case u := <-h.updates:
		h.t.Fatalf("unexpected update: %+v", u.Snapshot)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoopPublishesInitialState(t *testing.T) {
	h := startLoop(t)
	h.expectQuiet()
	if h.clock.Pending() != 0 {
		t.Fatalf("expected no timers before start")
	}
}

func TestLoopTicksWhileRunning(t *testing.T) {
	h := startLoop(t)
	u := h.send(Command{Kind: CommandStart})
	if u.Snapshot.Phase != session.Running {
		t.Fatalf("expected running, got %s", u.Snapshot.Phase)
	}
	for i := 1; i <= 3; i++ {
		h.clock.Advance(time.Second)
		u = h.next()
		if u.Snapshot.TimeLeft != session.DefaultTimeLimit-i {
			t.Fatalf("expected time left %d, got %d", session.DefaultTimeLimit-i, u.Snapshot.TimeLeft)
		}
	}

	u = h.send(Command{Kind: CommandTogglePause})
	if u.Snapshot.Phase != session.Paused {
		t.Fatalf("expected paused, got %s", u.Snapshot.Phase)
	}
	h.clock.Advance(10 * time.Second)
	h.expectQuiet()

	h.send(Command{Kind: CommandTogglePause})
	h.clock.Advance(time.Second)
	u = h.next()
	if u.Snapshot.TimeLeft != session.DefaultTimeLimit-4 {
		t.Fatalf("expected a single tick after resume, got time left %d", u.Snapshot.TimeLeft)
	}
	h.expectQuiet()
}

func TestLoopRapidPauseResumeKeepsOneTick(t *testing.T) {
	h := startLoop(t)
	h.send(Command{Kind: CommandStart})
	for i := 0; i < 5; i++ {
		h.send(Command{Kind: CommandTogglePause})
		h.send(Command{Kind: CommandTogglePause})
	}
	if got := h.clock.Pending(); got != 1 {
		t.Fatalf("expected one pending tick, got %d", got)
	}
	h.clock.Advance(time.Second)
	u := h.next()
	if u.Snapshot.TimeLeft != session.DefaultTimeLimit-1 {
		t.Fatalf("expected one tick, got time left %d", u.Snapshot.TimeLeft)
	}
	h.expectQuiet()
}

func TestLoopClearsFeedback(t *testing.T) {
	h := startLoop(t)
	h.send(Command{Kind: CommandStart})
	u := h.send(Command{Kind: CommandKey, Key: 'q'})
	if u.Snapshot.LastKey != "q" {
		t.Fatalf("expected feedback for q, got %q", u.Snapshot.LastKey)
	}
	h.clock.Advance(50 * time.Millisecond)
	u = h.send(Command{Kind: CommandKey, Key: 'w'})
	if u.Snapshot.LastKey != "w" {
		t.Fatalf("expected feedback for w, got %q", u.Snapshot.LastKey)
	}
	h.clock.Advance(60 * time.Millisecond)
	h.expectQuiet()
	h.clock.Advance(40 * time.Millisecond)
	u = h.next()
	if u.Snapshot.LastKey != "" {
		t.Fatalf("expected feedback cleared, got %q", u.Snapshot.LastKey)
	}
}

func TestLoopRestartCancelsTimers(t *testing.T) {
	h := startLoop(t)
	h.send(Command{Kind: CommandStart})
	h.send(Command{Kind: CommandKey, Key: 'a'})
	u := h.send(Command{Kind: CommandRestart})
	if u.Snapshot.Phase != session.NotStarted || u.Snapshot.KeyPresses != 0 {
		t.Fatalf("expected fresh session, got %+v", u.Snapshot)
	}
	if got := h.clock.Pending(); got != 0 {
		t.Fatalf("expected no pending timers, got %d", got)
	}
	h.clock.Advance(5 * time.Second)
	h.expectQuiet()
}

func TestLoopReportsCommandErrors(t *testing.T) {
	h := startLoop(t)
	u := h.send(Command{Kind: CommandTogglePause})
	if !errors.Is(u.Err, session.ErrInvalidPhase) {
		t.Fatalf("expected phase error, got %v", u.Err)
	}
	h.send(Command{Kind: CommandStart})
	u = h.send(Command{Kind: CommandKey, Key: 'A'})
	if !errors.Is(u.Err, session.ErrInvalidKey) {
		t.Fatalf("expected invalid key error, got %v", u.Err)
	}
	if u.Snapshot.KeyPresses != 0 {
		t.Fatalf("expected invalid key not to count")
	}
}

func TestLoopPublishesResultOnTimeout(t *testing.T) {
	h := startLoop(t)
	h.send(Command{Kind: CommandStart})
	var u Update
	for i := 0; i < session.DefaultTimeLimit; i++ {
		h.clock.Advance(time.Second)
		u = h.next()
	}
	if u.Snapshot.Phase != session.Over {
		t.Fatalf("expected over, got %s", u.Snapshot.Phase)
	}
	if u.Result == nil || u.Result.Completed || u.Result.TimeTaken != session.DefaultTimeLimit {
		t.Fatalf("unexpected result: %+v", u.Result)
	}
	if got := h.clock.Pending(); got != 0 {
		t.Fatalf("expected no tick after timeout, got %d", got)
	}
}

func TestSendAfterStop(t *testing.T) {
	h := startLoop(t)
	h.stop()
	<-h.loop.Done()
	if err := h.loop.Send(context.Background(), Command{Kind: CommandStart}); !errors.Is(err, ErrLoopStopped) {
		t.Fatalf("expected loop stopped, got %v", err)
	}
}
