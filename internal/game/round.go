// internal/game/round.go
//
// Round controller for a single player session.
// Responsibilities:
//   - Own the generator, the current model, the attempt counter and stats.
//   - Move between states only through Transition.
//
// States:
//
//	init -> guessing -> won -> init (another) ... -> done
//	               \-> exhausted
//
// Init is transient: entering it builds a model and moves to guessing.
package game

import "fmt"

// State is a controller state.
type State int

const (
	StateInit State = iota
	StateGuessing
	StateWonRound
	StateExhausted
	StateDone
)

var stateNames = [...]string{"init", "guessing", "won", "exhausted", "done"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// IsTerminal is true for exhausted and done.
func (s State) IsTerminal() bool { return s == StateExhausted || s == StateDone }

// Event drives a Transition.
type Event int

const (
	EventModelBuilt Event = iota
	EventMiss
	EventSolved
	EventRejected
	EventExhausted
	EventAnother
	EventStop
)

var eventNames = [...]string{"model_built", "miss", "solved", "rejected", "exhausted", "another", "stop"}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

// Transition is total over (State, Event). Pairs not listed below return
// ErrIllegalTransition and leave the state unchanged.
func Transition(s State, e Event) (State, error) {
	switch s {
	case StateInit:
		if e == EventModelBuilt {
			return StateGuessing, nil
		}
	case StateGuessing:
		switch e {
		case EventMiss, EventRejected:
			return StateGuessing, nil
		case EventSolved:
			return StateWonRound, nil
		case EventExhausted:
			return StateExhausted, nil
		}
	case StateWonRound:
		switch e {
		case EventAnother:
			return StateInit, nil
		case EventStop:
			return StateDone, nil
		case EventExhausted:
			return StateExhausted, nil
		}
	}
	return s, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, s, e)
}

// Session plays consecutive rounds against models from one generator.
type Session struct {
	cfg     Config
	gen     *Generator
	obs     Observer
	state   State
	model   Model
	attempt int
	round   int
	stats   Stats
}

// NewSession validates cfg and returns a session in StateInit.
// A nil observer is replaced with NopObserver.
func NewSession(cfg Config, gen *Generator, obs Observer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &Session{cfg: cfg, gen: gen, obs: obs, state: StateInit}, nil
}

func (s *Session) Config() Config { return s.cfg }
func (s *Session) State() State   { return s.state }
func (s *Session) Round() int     { return s.round }
func (s *Session) Stats() Stats   { return s.stats }

// Attempt is the number the next scored guess will carry.
func (s *Session) Attempt() int { return s.attempt }

func (s *Session) fire(e Event) error {
	next, err := Transition(s.state, e)
	if err != nil {
		return err
	}
	if next != s.state {
		s.obs.StateChanged(s.state, next)
	}
	s.state = next
	return nil
}

// StartRound builds a fresh model and resets the attempt counter to 1.
func (s *Session) StartRound() error {
	if s.state != StateInit {
		return fmt.Errorf("%w: start round in %s", ErrIllegalTransition, s.state)
	}
	m, err := BuildModel(s.gen, s.cfg)
	if err != nil {
		return err
	}
	s.model = m
	s.attempt = 1
	s.round++
	s.obs.ModelBuilt(s.round, m)
	return s.fire(EventModelBuilt)
}

// Submit scores g. A guess that does not satisfy the configuration is
// rejected with ErrBadGuess and the attempt counter does not move.
// On a win the attempt count is recorded and the session moves to won.
func (s *Session) Submit(g Guess) (Score, error) {
	if s.state != StateGuessing {
		return Score{}, fmt.Errorf("%w: guess in %s", ErrIllegalTransition, s.state)
	}
	if err := CheckGuess(g, s.cfg); err != nil {
		return Score{}, s.Reject(err)
	}
	sc, err := ScoreGuess(s.model, g)
	if err != nil {
		return Score{}, err
	}
	s.obs.Scored(s.attempt, g, sc)
	if !sc.Solved(s.cfg.Dims) {
		s.attempt++
		return sc, s.fire(EventMiss)
	}
	s.stats.Record(s.attempt)
	s.model = nil
	s.obs.RoundWon(s.round, s.attempt, s.stats.Average())
	return sc, s.fire(EventSolved)
}

// Reject records a guess that could not be produced. It returns cause so
// callers can propagate it.
func (s *Session) Reject(cause error) error {
	if err := s.fire(EventRejected); err != nil {
		return err
	}
	s.obs.Rejected(s.attempt, cause)
	return cause
}

// Exhaust ends the session because input ran out.
func (s *Session) Exhaust() error {
	if err := s.fire(EventExhausted); err != nil {
		return err
	}
	return ErrExhausted
}

// Continue answers the another-game question. Another round starts
// immediately; otherwise the session is done.
func (s *Session) Continue(another bool) error {
	if !another {
		return s.fire(EventStop)
	}
	if err := s.fire(EventAnother); err != nil {
		return err
	}
	return s.StartRound()
}
