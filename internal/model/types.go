// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Theme string
	// Seed fixes the generated word sequences when set.
	Seed *int64
}

// ServerConfig defines settings for the browser front-end.
type ServerConfig struct {
	Addr  string
	Theme string
}

// Result summarizes a finished typing session.
type Result struct {
	WPM        int           `json:"wpm"`
	Errors     int           `json:"errors"`
	ErrorRate  int           `json:"errorRate"`
	KeyPresses int           `json:"totalKeyPresses"`
	WordsTyped int           `json:"wordsTyped"`
	TotalWords int           `json:"totalWords"`
	TimeTaken  int           `json:"timeTaken"`
	Active     time.Duration `json:"-"`
	Completed  bool          `json:"completed"`
	WPMSamples []int         `json:"wpmSamples"`
}
