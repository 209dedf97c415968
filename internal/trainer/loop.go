package trainer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/typeuber/internal/model"
	"github.com/verte-zerg/typeuber/internal/session"
)

// ErrLoopStopped is returned by Send once Run has returned.
var ErrLoopStopped = errors.New("loop stopped")

const mailboxSize = 64

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules callbacks on wall-clock timers.
var SystemScheduler Scheduler = systemScheduler{}

// CommandKind names a user command.
type CommandKind int

// Commands accepted by Send.
const (
	CommandStart CommandKind = iota + 1
	CommandTogglePause
	CommandRestart
	CommandKey
)

// Command is a user command sent to a Loop.
type Command struct {
	Kind CommandKind
	// Key is the typed key for CommandKey.
	Key rune
}

// Update is published after every event that may have changed the session.
type Update struct {
	Snapshot session.Snapshot
	// Result is set once the session is over.
	Result *model.Result
	// Err is the error returned by the command, if any. Stale events are
	// never published.
	Err error
}

type eventKind int

const (
	eventCommand eventKind = iota
	eventTick
	eventClear
)

type event struct {
	kind     eventKind
	cmd      Command
	token    Token
	feedback Feedback
}

// Loop serializes every command, tick and feedback clear of one Trainer on a
// single goroutine.
type Loop struct {
	trainer   *Trainer
	scheduler Scheduler
	publish   func(Update)
	logger    *zap.Logger

	mailbox chan event
	done    chan struct{}

	// Owned by the Run goroutine.
	tickTimer  Timer
	clearTimer Timer
}

// NewLoop creates a loop driving t. publish is called from the loop
// goroutine and must not call back into the loop synchronously.
func NewLoop(t *Trainer, scheduler Scheduler, publish func(Update), logger *zap.Logger) *Loop {
	if scheduler == nil {
		scheduler = SystemScheduler
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		trainer:   t,
		scheduler: scheduler,
		publish:   publish,
		logger:    logger,
		mailbox:   make(chan event, mailboxSize),
		done:      make(chan struct{}),
	}
}

// Run publishes the initial state and processes events until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.stopTimers()

	l.emit(nil)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-l.mailbox:
			l.handle(ev)
		}
	}
}

// Send queues a user command.
func (l *Loop) Send(ctx context.Context, cmd Command) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.mailbox <- event{kind: eventCommand, cmd: cmd}:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) post(ev event) {
	select {
	case l.mailbox <- ev:
	case <-l.done:
	}
}

func (l *Loop) handle(ev event) {
	var err error
	switch ev.kind {
	case eventCommand:
		err = l.handleCommand(ev.cmd)
	case eventTick:
		var next Token
		next, err = l.trainer.Tick(ev.token)
		if errors.Is(err, ErrStaleEvent) {
			return
		}
		if err == nil {
			l.scheduleTick(next)
		}
	case eventClear:
		if !l.trainer.ClearFeedback(ev.feedback) {
			return
		}
	}
	l.emit(err)
}

func (l *Loop) handleCommand(cmd Command) error {
	switch cmd.Kind {
	case CommandStart:
		tok, err := l.trainer.Start()
		if err != nil {
			return err
		}
		l.scheduleTick(tok)
	case CommandTogglePause:
		tok, err := l.trainer.TogglePause()
		if err != nil {
			return err
		}
		l.scheduleTick(tok)
	case CommandRestart:
		l.stopTimers()
		return l.trainer.Restart()
	case CommandKey:
		fb, err := l.trainer.Keystroke(cmd.Key)
		if err != nil {
			return err
		}
		l.scheduleClear(fb)
		if l.trainer.Phase() == session.Over {
			l.stopTick()
		}
	default:
		l.logger.Warn("unknown command", zap.Int("kind", int(cmd.Kind)))
	}
	return nil
}

// scheduleTick replaces any pending tick. A zero token only cancels.
func (l *Loop) scheduleTick(tok Token) {
	l.stopTick()
	if tok.IsZero() {
		return
	}
	l.tickTimer = l.scheduler.AfterFunc(time.Second, func() {
		l.post(event{kind: eventTick, token: tok})
	})
}

func (l *Loop) scheduleClear(fb Feedback) {
	if l.clearTimer != nil {
		l.clearTimer.Stop()
	}
	l.clearTimer = l.scheduler.AfterFunc(session.FeedbackDuration, func() {
		l.post(event{kind: eventClear, feedback: fb})
	})
}

func (l *Loop) stopTick() {
	if l.tickTimer != nil {
		l.tickTimer.Stop()
		l.tickTimer = nil
	}
}

func (l *Loop) stopTimers() {
	l.stopTick()
	if l.clearTimer != nil {
		l.clearTimer.Stop()
		l.clearTimer = nil
	}
}

func (l *Loop) emit(err error) {
	if l.publish == nil {
		return
	}
	u := Update{Snapshot: l.trainer.Snapshot(), Err: err}
	if res, ok := l.trainer.Result(); ok {
		u.Result = &res
	}
	l.publish(u)
}
