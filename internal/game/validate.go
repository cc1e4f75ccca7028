// internal/game/validate.go
//
// Guess input validation.
// Responsibilities:
//   - Normalize a raw line into a Guess (skip non-letters, fold case).
//   - Check an already-split Guess against the session's length and bound.
//   - Tell retryable rejections apart from errors that end the session.
package game

import (
	"errors"
	"fmt"
)

// ErrShortGuess is returned when a line holds fewer letters than the
// configured length. It is a kind of ErrBadGuess.
var ErrShortGuess = fmt.Errorf("%w: too few letters", ErrBadGuess)

// ParseGuess normalizes a raw input line into a Guess of cfg.Dims letters.
// Non-letters are skipped, lowercase is folded to uppercase, and anything
// after the cfg.Dims-th letter is discarded. A letter above cfg.Bound
// rejects the whole line.
func ParseGuess(line string, cfg Config) (Guess, error) {
	g := make(Guess, 0, cfg.Dims)
	for i := 0; i < len(line) && len(g) < cfg.Dims; i++ {
		c := line[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c >= 'A' && c <= 'Z':
		default:
			continue
		}
		if c > cfg.Bound {
			return nil, fmt.Errorf("%w: %q is beyond %q", ErrBadGuess, c, cfg.Bound)
		}
		g = append(g, c)
	}
	if len(g) < cfg.Dims {
		return nil, ErrShortGuess
	}
	return g, nil
}

// CheckGuess reports whether g already satisfies the length and bound of cfg.
func CheckGuess(g Guess, cfg Config) error {
	if len(g) != cfg.Dims {
		return fmt.Errorf("%w: want %d letters, got %d", ErrBadGuess, cfg.Dims, len(g))
	}
	for _, c := range g {
		if c < LowerBound || c > cfg.Bound {
			return fmt.Errorf("%w: %q outside %q..%q", ErrBadGuess, c, LowerBound, cfg.Bound)
		}
	}
	return nil
}

// IsRetryable separates a rejected guess from an aborted session.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBadGuess)
}
