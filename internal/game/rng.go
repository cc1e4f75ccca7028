// internal/game/rng.go
//
// Deterministic sequence generator. The recurrence is fixed so that a seed
// always reproduces the same models:
//
//	state = (state*131071 + 524287) mod 8191
package game

import "errors"

// ErrReseeded is returned by Seed on a generator that already has a seed.
var ErrReseeded = errors.New("generator already seeded")

const (
	rngMul = 131071
	rngInc = 524287
	rngMod = 8191
)

// Generator produces the draws used to build hidden models.
// It is owned by the session that seeded it and is not safe for concurrent use.
type Generator struct {
	state  int64
	seeded bool
}

// NewGenerator returns a generator already seeded with s. This is the
// normal way to obtain one.
func NewGenerator(s int) *Generator {
	g := &Generator{}
	_ = g.Seed(s) // a zero Generator is never seeded
	return g
}

// Seed sets the internal state of a zero Generator. A generator can be
// seeded once; later calls return ErrReseeded and leave the state alone.
func (g *Generator) Seed(s int) error {
	if g.seeded {
		return ErrReseeded
	}
	// Reducing first keeps the product inside int64 and leaves the
	// recurrence's result unchanged.
	g.state = mod(int64(s), rngMod)
	g.seeded = true
	return nil
}

// Next advances the state and returns it.
func (g *Generator) Next() int {
	g.state = mod(g.state*rngMul+rngInc, rngMod)
	return int(g.state)
}

// mod returns the non-negative remainder of a/m.
func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
