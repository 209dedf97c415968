// Package trainer hosts typing sessions: it owns the current session,
// replaces it on restart and guards scheduled events with tokens so that
// ticks and feedback clears from a superseded session or an earlier running
// stretch are dropped.
package trainer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/typeuber/internal/model"
	"github.com/verte-zerg/typeuber/internal/session"
	"github.com/verte-zerg/typeuber/internal/stats"
)

// ErrStaleEvent is returned for a scheduled event whose token no longer
// matches the current session or running stretch.
var ErrStaleEvent = errors.New("stale event")

// WordSource produces the words of a new session.
type WordSource interface {
	Generate(count int) []string
}

// Token identifies the running stretch a tick was scheduled for. The zero
// Token means nothing needs scheduling.
type Token struct {
	Generation uint64
	Epoch      uint64
}

// IsZero reports whether the token is empty.
func (t Token) IsZero() bool {
	return t.Epoch == 0
}

// Feedback identifies the feedback window opened by a keystroke.
type Feedback struct {
	Generation uint64
	Seq        uint64
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithClock sets the clock used by every session.
func WithClock(clock session.Clock) Option {
	return func(t *Trainer) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Trainer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Trainer is a synchronous session host. It is not safe for concurrent use;
// see Loop for a serialized host.
type Trainer struct {
	words  WordSource
	clock  session.Clock
	logger *zap.Logger

	current    *session.Session
	generation uint64
	epoch      uint64
	samples    []int
}

// New creates a trainer holding a fresh, not yet started session.
func New(words WordSource, opts ...Option) (*Trainer, error) {
	t := &Trainer{
		words:  words,
		clock:  session.SystemClock,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.reset(); err != nil {
		return nil, err
	}
	return t, nil
}

// Restart discards the current session, whatever its phase, and replaces it
// with a new one. Every outstanding token becomes stale.
func (t *Trainer) Restart() error {
	if err := t.reset(); err != nil {
		return err
	}
	t.logger.Info("session restarted", zap.Uint64("generation", t.generation))
	return nil
}

// Start starts the current session and returns the token for its first
// tick.
func (t *Trainer) Start() (Token, error) {
	if err := t.current.Start(); err != nil {
		return Token{}, err
	}
	t.logger.Info("session started", zap.Uint64("generation", t.generation))
	return t.nextStretch(), nil
}

// TogglePause pauses or resumes the current session. Resuming returns the
// token for the next tick; pausing returns the zero Token.
func (t *Trainer) TogglePause() (Token, error) {
	if err := t.current.TogglePause(); err != nil {
		return Token{}, err
	}
	if t.current.Phase() == session.Paused {
		t.epoch++
		t.logger.Info("session paused", zap.Duration("active", t.current.Active()))
		return Token{}, nil
	}
	t.logger.Info("session resumed", zap.Duration("active", t.current.Active()))
	return t.nextStretch(), nil
}

// Keystroke applies a key to the current session. The returned Feedback
// should be passed to ClearFeedback once session.FeedbackDuration elapsed.
func (t *Trainer) Keystroke(key rune) (Feedback, error) {
	press, err := t.current.Keystroke(key)
	if err != nil {
		return Feedback{}, err
	}
	if t.current.Phase() == session.Over {
		t.logOver()
	}
	return Feedback{Generation: t.generation, Seq: press.Seq}, nil
}

// Tick advances the countdown for the stretch named by tok. It returns the
// token for the following tick, or the zero Token once the session is over.
func (t *Trainer) Tick(tok Token) (Token, error) {
	if tok.Generation != t.generation || tok.Epoch != t.epoch {
		t.logger.Debug("dropped stale tick",
			zap.Uint64("generation", tok.Generation),
			zap.Uint64("epoch", tok.Epoch))
		return Token{}, ErrStaleEvent
	}
	if err := t.current.Tick(); err != nil {
		return Token{}, err
	}
	if t.current.Phase() == session.Over {
		t.samples = append(t.samples, t.current.Snapshot().WPM)
		t.logOver()
		return Token{}, nil
	}
	t.samples = append(t.samples, t.liveWPM())
	return tok, nil
}

// ClearFeedback hides the last pressed key if f still names the latest
// keystroke of the current session.
func (t *Trainer) ClearFeedback(f Feedback) bool {
	if f.Generation != t.generation {
		return false
	}
	return t.current.ClearFeedback(f.Seq)
}

// Phase returns the phase of the current session.
func (t *Trainer) Phase() session.Phase {
	return t.current.Phase()
}

// Generation numbers the sessions created so far, starting at 1.
func (t *Trainer) Generation() uint64 {
	return t.generation
}

// Snapshot returns the state of the current session.
func (t *Trainer) Snapshot() session.Snapshot {
	return t.current.Snapshot()
}

// Samples returns the WPM sampled on every tick of the current session.
func (t *Trainer) Samples() []int {
	return append([]int(nil), t.samples...)
}

// Result summarizes the current session. It reports false until the session
// is over.
func (t *Trainer) Result() (model.Result, bool) {
	if t.current.Phase() != session.Over {
		return model.Result{}, false
	}
	snap := t.current.Snapshot()
	completed := snap.TimeLeft > 0
	typed := snap.WordIndex
	if completed {
		typed = len(snap.Words)
	}
	return model.Result{
		WPM:        snap.WPM,
		Errors:     snap.Errors,
		ErrorRate:  snap.ErrorRate,
		KeyPresses: snap.KeyPresses,
		WordsTyped: typed,
		TotalWords: len(snap.Words),
		TimeTaken:  snap.TimeTaken(),
		Active:     t.current.Active(),
		Completed:  completed,
		WPMSamples: append([]int(nil), t.samples...),
	}, true
}

func (t *Trainer) reset() error {
	s, err := session.New(t.words.Generate(session.DefaultWordCount), session.DefaultTimeLimit, t.clock)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	t.current = s
	t.generation++
	t.epoch = 0
	t.samples = nil
	return nil
}

func (t *Trainer) nextStretch() Token {
	t.epoch++
	return Token{Generation: t.generation, Epoch: t.epoch}
}

// liveWPM measures the in-progress words against the active time so far,
// which the session itself only does on correct keystrokes.
func (t *Trainer) liveWPM() int {
	snap := t.current.Snapshot()
	now := t.clock.Now()
	return stats.WPM(stats.WordsCompleted(snap.WordIndex, snap.LetterIndex), now.Add(-t.current.Active()), now)
}

func (t *Trainer) logOver() {
	snap := t.current.Snapshot()
	t.logger.Info("session over",
		zap.Uint64("generation", t.generation),
		zap.Int("wpm", snap.WPM),
		zap.Int("errors", snap.Errors),
		zap.Int("keyPresses", snap.KeyPresses),
		zap.Int("timeLeft", snap.TimeLeft))
}
