package game

import "github.com/rs/zerolog"

// Observer receives structured notifications from a Session. The session
// calls it unconditionally; implementations decide what to show.
type Observer interface {
	ModelBuilt(round int, m Model)
	Scored(attempt int, g Guess, s Score)
	Rejected(attempt int, err error)
	RoundWon(round, attempts int, average float64)
	StateChanged(from, to State)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) ModelBuilt(int, Model)      {}
func (NopObserver) Scored(int, Guess, Score)   {}
func (NopObserver) Rejected(int, error)        {}
func (NopObserver) RoundWon(int, int, float64) {}
func (NopObserver) StateChanged(State, State)  {}

// LogObserver writes every notification as a debug event.
type LogObserver struct {
	log zerolog.Logger
}

// NewLogObserver tags events from l with component=game.
func NewLogObserver(l zerolog.Logger) *LogObserver {
	return &LogObserver{log: l.With().Str("component", "game").Logger()}
}

func (o *LogObserver) ModelBuilt(round int, m Model) {
	o.log.Debug().Int("round", round).Str("model", m.String()).Msg("model built")
}

func (o *LogObserver) Scored(attempt int, g Guess, s Score) {
	o.log.Debug().
		Int("attempt", attempt).
		Str("guess", g.String()).
		Int("exact", s.Exact).
		Int("inexact", s.Inexact).
		Msg("guess scored")
}

func (o *LogObserver) Rejected(attempt int, err error) {
	o.log.Debug().Int("attempt", attempt).Err(err).Msg("guess rejected")
}

func (o *LogObserver) RoundWon(round, attempts int, average float64) {
	o.log.Debug().
		Int("round", round).
		Int("attempts", attempts).
		Float64("average", average).
		Msg("round won")
}

func (o *LogObserver) StateChanged(from, to State) {
	o.log.Debug().Stringer("from", from).Stringer("to", to).Msg("state")
}
