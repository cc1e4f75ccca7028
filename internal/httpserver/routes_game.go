// internal/httpserver/routes_game.go
//
// HTTP routes for playing a session.
//   - POST /game/new       → seed a session and start its first round
//   - POST /game/guess     → score a guess for the current round
//   - POST /game/continue  → answer "another game?" after a win
//   - GET  /leaderboard    → best rounds for a configuration
//
// Each session keeps the same lifecycle as console play: a bad guess is
// rejected without advancing the attempt, and after a win the client must
// say whether to play another round.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/results"
	"github.com/robalobadob/mastermind/internal/store"
)

// mountGame registers the game and leaderboard routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNew)
	r.With(s.requireSession()).Post("/game/guess", s.handleGuess)
	r.With(s.requireSession()).Post("/game/continue", s.handleContinue)
	r.Get("/leaderboard", s.handleLeaderboard)
}

// -----------------------------------------------------------------------------
// /game/new

type newReq struct {
	MaxChar    string `json:"maxchar"`
	Dimensions int    `json:"dimensions"`
	Seed       int    `json:"seed"`
}

type newRes struct {
	GameID     string    `json:"gameId"`
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
	MaxChar    string    `json:"maxchar"`
	Dimensions int       `json:"dimensions"`
	Round      int       `json:"round"`
	Attempt    int       `json:"attempt"`
	State      string    `json:"state"`
}

// handleNew validates the configuration, seeds a generator and starts the
// first round.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(req.MaxChar) != 1 {
		http.Error(w, `{"error":"bad_config"}`, http.StatusBadRequest)
		return
	}
	cfg := game.Config{Bound: req.MaxChar[0], Dims: req.Dimensions, Seed: req.Seed}
	sess, err := game.NewSession(cfg, game.NewGenerator(cfg.Seed), game.NewLogObserver(log.Logger))
	if err != nil {
		http.Error(w, `{"error":"bad_config"}`, http.StatusBadRequest)
		return
	}
	if err := sess.StartRound(); err != nil {
		log.Error().Err(err).Msg("start round")
		http.Error(w, `{"error":"start_failed"}`, http.StatusInternalServerError)
		return
	}

	now := time.Now()
	if n := s.store.Prune(r.Context(), now.Add(-s.ttl)); n > 0 {
		log.Info().Int("pruned", n).Msg("expired sessions")
	}
	e := &store.Entry{ID: genID(), Session: sess, Created: now}
	if err := s.store.Save(r.Context(), e); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signSession(e.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	cfg = sess.Config()
	writeJSON(w, http.StatusOK, newRes{
		GameID:     e.ID,
		Token:      tok,
		Expires:    exp.UTC(),
		MaxChar:    string(cfg.Bound),
		Dimensions: cfg.Dims,
		Round:      sess.Round(),
		Attempt:    sess.Attempt(),
		State:      sess.State().String(),
	})
}

// -----------------------------------------------------------------------------
// /game/guess

type guessReq struct {
	Guess string `json:"guess"`
}

type guessRes struct {
	Exact   int      `json:"exact"`
	Inexact int      `json:"inexact"`
	Attempt int      `json:"attempt"` // number of the scored attempt
	Round   int      `json:"round"`
	State   string   `json:"state"` // guessing | won
	Average *float64 `json:"average,omitempty"`
}

type conflictRes struct {
	Error string `json:"error"`
	State string `json:"state"`
}

// handleGuess normalizes and scores one guess.
// - 409 unless the session is guessing.
// - 400 bad_guess for short or out-of-range guesses; the attempt stays put.
// - On a win the round is recorded in the results store (best effort).
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r.Context())
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	e.Mu.Lock()
	defer e.Mu.Unlock()
	sess := e.Session

	if sess.State() != game.StateGuessing {
		writeJSON(w, http.StatusConflict, conflictRes{Error: "not_guessing", State: sess.State().String()})
		return
	}
	cfg := sess.Config()
	g, err := game.ParseGuess(req.Guess, cfg)
	if err != nil {
		_ = sess.Reject(err)
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}

	attempt := sess.Attempt()
	sc, err := sess.Submit(g)
	if err != nil {
		log.Error().Err(err).Str("gameId", e.ID).Msg("submit")
		http.Error(w, `{"error":"submit_failed"}`, http.StatusInternalServerError)
		return
	}

	res := guessRes{
		Exact:   sc.Exact,
		Inexact: sc.Inexact,
		Attempt: attempt,
		Round:   sess.Round(),
		State:   sess.State().String(),
	}
	if sess.State() == game.StateWonRound {
		avg := sess.Stats().Average()
		res.Average = &avg
		if s.results != nil {
			if err := s.results.Insert(r.Context(), results.Result{
				GameID:   e.ID,
				Bound:    string(cfg.Bound),
				Dims:     cfg.Dims,
				Seed:     cfg.Seed,
				Round:    sess.Round(),
				Attempts: attempt,
			}); err != nil {
				log.Warn().Err(err).Str("gameId", e.ID).Msg("insert result")
			}
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /game/continue

type continueReq struct {
	Another *bool `json:"another"`
}

type continueRes struct {
	State   string `json:"state"` // guessing | done
	Round   int    `json:"round"`
	Attempt int    `json:"attempt"`
}

// handleContinue starts another round or finishes the session. A finished
// session is forgotten, so its token stops working.
func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r.Context())
	var req continueReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Another == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	e.Mu.Lock()
	defer e.Mu.Unlock()
	sess := e.Session

	if err := sess.Continue(*req.Another); err != nil {
		if errors.Is(err, game.ErrIllegalTransition) {
			writeJSON(w, http.StatusConflict, conflictRes{Error: "not_won", State: sess.State().String()})
			return
		}
		log.Error().Err(err).Str("gameId", e.ID).Msg("continue")
		http.Error(w, `{"error":"continue_failed"}`, http.StatusInternalServerError)
		return
	}
	if sess.State() == game.StateDone {
		_ = s.store.Delete(r.Context(), e.ID)
	}
	writeJSON(w, http.StatusOK, continueRes{
		State:   sess.State().String(),
		Round:   sess.Round(),
		Attempt: sess.Attempt(),
	})
}

// -----------------------------------------------------------------------------
// /leaderboard

type lbRes struct {
	MaxChar    string           `json:"maxchar"`
	Dimensions int              `json:"dimensions"`
	Rounds     int              `json:"rounds"`
	Average    float64          `json:"average"`
	Top        []results.Result `json:"top"`
}

// handleLeaderboard returns the best rounds for ?maxchar=&dimensions=
// (default F and 4).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		http.Error(w, `{"error":"unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()
	maxchar := strings.ToUpper(q.Get("maxchar"))
	if maxchar == "" {
		maxchar = "F"
	}
	dims := 4
	if v := q.Get("dimensions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, `{"error":"bad_config"}`, http.StatusBadRequest)
			return
		}
		dims = n
	}
	cfg := game.Config{Bound: maxchar[0], Dims: dims}
	if len(maxchar) != 1 || cfg.Validate() != nil {
		http.Error(w, `{"error":"bad_config"}`, http.StatusBadRequest)
		return
	}

	top, err := s.results.Leaderboard(r.Context(), maxchar, dims, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	avg, n, err := s.results.Average(r.Context(), maxchar, dims)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{MaxChar: maxchar, Dimensions: dims, Rounds: n, Average: avg, Top: top})
}
