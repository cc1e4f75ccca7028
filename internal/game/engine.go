// internal/game/engine.go
//
// Model building and scoring.
// Responsibilities:
//   - Build a hidden model from the session generator.
//   - Score a validated guess against the model (exact + inexact counts).
//
// Notes:
//   - Models and guesses are uppercase letters from LowerBound upward.
//   - Scoring is a two-pass tally: exact positions are consumed first, then
//     the remaining letters are matched one-for-one as a multiset.
package game

import "fmt"

// BuildModel draws cfg.Dims letters from gen, in order, each in
// [LowerBound, cfg.Bound]. Repeated letters are allowed.
// The generator advances by exactly cfg.Dims draws.
func BuildModel(gen *Generator, cfg Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	span := cfg.Letters()
	m := make(Model, cfg.Dims)
	for i := range m {
		m[i] = LowerBound + byte(gen.Next()%span)
	}
	return m, nil
}

// ScoreGuess compares guess against model.
//
// Pass 1:
//   - Count exact matches; those positions are consumed on both sides.
//   - Tally the unconsumed model letters.
//
// Pass 2:
//   - For each unconsumed guess letter with a positive tally, credit one
//     inexact match and decrement the tally.
//
// The result always satisfies Exact+Inexact <= len(model).
func ScoreGuess(model Model, guess Guess) (Score, error) {
	if len(model) != len(guess) {
		return Score{}, fmt.Errorf("%w: %d vs %d", errModelGuessMismatch, len(model), len(guess))
	}
	var (
		s       Score
		counts  [26]int
		matched = make([]bool, len(model))
	)

	for i := range model {
		if guess[i] == model[i] {
			s.Exact++
			matched[i] = true
		} else if j := idx(model[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := range guess {
		if matched[i] {
			continue
		}
		if j := idx(guess[i]); j >= 0 && counts[j] > 0 {
			s.Inexact++
			counts[j]--
		}
	}
	return s, nil
}

// idx maps an uppercase ASCII letter to 0..25, or -1 for anything else.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
