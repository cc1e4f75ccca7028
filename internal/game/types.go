// internal/game/types.go
//
// Core type definitions for the Mastermind engine.
// Defines:
//   - Config: the alphabet bound and sequence length for a session.
//   - Model / Guess: letter sequences sized exactly to the configured length.
//   - Score: exact/inexact match counts for one scored guess.
//   - Sentinel errors shared by the engine and its callers.

package game

import "errors"

const (
	// LowerBound is the first letter of every alphabet.
	LowerBound byte = 'A'
	// MaxBound is the highest letter a session may be configured with.
	MaxBound byte = 'F'
	// MaxDim caps the sequence length.
	MaxDim = 10
)

var (
	ErrBadConfig          = errors.New("bad initial values")
	ErrBadGuess           = errors.New("bad entry")
	ErrExhausted          = errors.New("unexpected EOF")
	ErrIllegalTransition  = errors.New("illegal transition")
	errModelGuessMismatch = errors.New("model and guess lengths differ")
)

// Config holds the per-session parameters read at startup.
type Config struct {
	Bound byte // Highest usable letter (uppercase, inclusive).
	Dims  int  // Sequence length.
	Seed  int  // Generator seed.
}

// Validate checks the bound and length against the absolute limits.
// A lowercase bound is folded to uppercase in place.
func (c *Config) Validate() error {
	if c.Bound >= 'a' && c.Bound <= 'z' {
		c.Bound -= 'a' - 'A'
	}
	if c.Bound < LowerBound || c.Bound > MaxBound {
		return ErrBadConfig
	}
	if c.Dims < 1 || c.Dims > MaxDim {
		return ErrBadConfig
	}
	return nil
}

// Letters reports how many letters the alphabet contains.
func (c Config) Letters() int { return int(c.Bound-LowerBound) + 1 }

// Model is the hidden sequence for one round.
type Model []byte

// Guess is a validated candidate sequence.
type Guess []byte

func (m Model) String() string { return string(m) }
func (g Guess) String() string { return string(g) }

// Score is the result of comparing a guess against the model.
type Score struct {
	Exact   int `json:"exact"`
	Inexact int `json:"inexact"`
}

// Solved reports whether every position matched exactly.
func (s Score) Solved(dims int) bool { return s.Exact == dims }
