// Package session implements the typing-session state machine.
//
// A Session owns every piece of state of one typing test: the word sequence,
// the cursor, the counters, the countdown and the active-time anchor. It is
// not safe for concurrent use; hosts serialize all calls on a single event
// loop. Time only enters through the injected Clock and through Tick, which
// the host calls once per second while the session is running.
package session

import (
	"time"

	"github.com/verte-zerg/typeuber/internal/stats"
)

const (
	// DefaultWordCount is the number of words in a session.
	DefaultWordCount = 50
	// DefaultTimeLimit is the countdown length in seconds.
	DefaultTimeLimit = 120
	// FeedbackDuration is how long the last pressed key stays visible.
	FeedbackDuration = 100 * time.Millisecond
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Keypress describes an accepted keystroke.
type Keypress struct {
	Key     rune
	Correct bool
	// Seq identifies the feedback window opened by this keystroke.
	Seq uint64
}

// Session is the aggregate root of a typing test.
type Session struct {
	clock     Clock
	words     []string
	timeLimit int

	phase       Phase
	wordIndex   int
	letterIndex int
	errors      int
	keyPresses  int
	timeLeft    int
	wpm         int

	// While running, active time is now minus anchor. While paused or
	// over, active holds the frozen value.
	anchor time.Time
	active time.Duration

	lastKey     rune
	feedbackSeq uint64
}

// New creates a session in the NotStarted phase. The words slice is kept
// as-is and must not be modified afterwards.
func New(words []string, timeLimit int, clock Clock) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrInvalidWordCount
	}
	for _, w := range words {
		if w == "" {
			return nil, ErrEmptyWord
		}
		for i := 0; i < len(w); i++ {
			if w[i] < 'a' || w[i] > 'z' {
				return nil, &WordError{Word: w}
			}
		}
	}
	if timeLimit <= 0 {
		return nil, ErrInvalidTimeLimit
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		clock:     clock,
		words:     words,
		timeLimit: timeLimit,
		timeLeft:  timeLimit,
	}, nil
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Start begins the countdown. It is only valid before the session started.
func (s *Session) Start() error {
	if s.phase != NotStarted {
		return &PhaseError{Op: "start", Phase: s.phase}
	}
	s.phase = Running
	s.anchor = s.clock.Now()
	s.active = 0
	s.timeLeft = s.timeLimit
	return nil
}

// TogglePause pauses a running session or resumes a paused one. Active time
// accumulates across any number of pause cycles.
func (s *Session) TogglePause() error {
	switch s.phase {
	case Running:
		s.active = s.clock.Now().Sub(s.anchor)
		s.phase = Paused
	case Paused:
		s.anchor = s.clock.Now().Add(-s.active)
		s.phase = Running
	default:
		return &PhaseError{Op: "toggle pause", Phase: s.phase}
	}
	return nil
}

// Keystroke applies one typed key. Only lowercase ASCII letters and space
// are accepted, and only while running.
func (s *Session) Keystroke(key rune) (Keypress, error) {
	if s.phase != Running {
		return Keypress{}, &PhaseError{Op: "keystroke", Phase: s.phase}
	}
	if !validKey(key) {
		return Keypress{}, ErrInvalidKey
	}

	s.feedbackSeq++
	s.lastKey = key
	s.keyPresses++
	press := Keypress{Key: key, Seq: s.feedbackSeq}

	word := s.words[s.wordIndex]
	if key != rune(word[s.letterIndex]) {
		s.errors++
		return press, nil
	}
	press.Correct = true

	lastLetter := s.letterIndex == len(word)-1
	switch {
	case lastLetter && s.wordIndex == len(s.words)-1:
		s.letterIndex++
		s.finish()
		return press, nil
	case lastLetter:
		s.wordIndex++
		s.letterIndex = 0
	default:
		s.letterIndex++
	}
	s.updateWPM(s.clock.Now())
	return press, nil
}

// Tick advances the countdown by one second and ends the session when it
// reaches zero.
func (s *Session) Tick() error {
	if s.phase != Running {
		return &PhaseError{Op: "tick", Phase: s.phase}
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.finish()
	}
	return nil
}

// ClearFeedback hides the last pressed key if seq still names the most
// recent keystroke. It reports whether anything changed.
func (s *Session) ClearFeedback(seq uint64) bool {
	if seq != s.feedbackSeq || s.lastKey == 0 {
		return false
	}
	s.lastKey = 0
	return true
}

// Active returns the active typing time, excluding pauses.
func (s *Session) Active() time.Duration {
	if s.phase == Running {
		return s.clock.Now().Sub(s.anchor)
	}
	return s.active
}

// NextLetter returns the expected letter, or 0 once every word is typed.
func (s *Session) NextLetter() rune {
	word := s.words[s.wordIndex]
	if s.letterIndex >= len(word) {
		return 0
	}
	return rune(word[s.letterIndex])
}

// Snapshot returns a read-only view of the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Words:       s.words,
		WordIndex:   s.wordIndex,
		LetterIndex: s.letterIndex,
		Errors:      s.errors,
		KeyPresses:  s.keyPresses,
		ErrorRate:   stats.ErrorRate(s.errors, s.keyPresses),
		TimeLeft:    s.timeLeft,
		TimeLimit:   s.timeLimit,
		Phase:       s.phase,
		WPM:         s.wpm,
	}
	if s.lastKey != 0 {
		snap.LastKey = string(s.lastKey)
	}
	if next := s.NextLetter(); next != 0 {
		snap.NextLetter = string(next)
	}
	return snap
}

// finish takes the termination snapshot. Nothing changes afterwards.
func (s *Session) finish() {
	now := s.clock.Now()
	s.updateWPM(now)
	s.active = now.Sub(s.anchor)
	s.phase = Over
}

// updateWPM keeps the previous value when no active time has passed.
func (s *Session) updateWPM(now time.Time) {
	if !now.After(s.anchor) {
		return
	}
	s.wpm = stats.WPM(stats.WordsCompleted(s.wordIndex, s.letterIndex), s.anchor, now)
}

func validKey(key rune) bool {
	return key == ' ' || (key >= 'a' && key <= 'z')
}
