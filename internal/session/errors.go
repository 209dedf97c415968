package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhase is wrapped by every command rejected for the phase
	// the session is in.
	ErrInvalidPhase = errors.New("invalid phase")
	// ErrInvalidKey rejects keys other than lowercase letters and space.
	ErrInvalidKey = errors.New("key must be a lowercase letter or space")
	// ErrInvalidWordCount rejects a session without words.
	ErrInvalidWordCount = errors.New("word count must be positive")
	// ErrEmptyWord rejects a word sequence containing an empty word.
	ErrEmptyWord = errors.New("words must not be empty")
	// ErrInvalidTimeLimit rejects a non-positive countdown.
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
)

// PhaseError reports a command issued in a phase that does not accept it.
// The session is left unchanged.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", e.Op, e.Phase)
}

func (e *PhaseError) Unwrap() error {
	return ErrInvalidPhase
}

// WordError reports a word with characters outside a-z.
type WordError struct {
	Word string
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %q must contain only lowercase ascii letters", e.Word)
}
