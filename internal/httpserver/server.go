// internal/httpserver/server.go
//
// HTTP wiring for playing Mastermind over JSON.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", POST /game/new, GET /leaderboard.
//   - Session endpoints (signed token required): POST /game/guess,
//     POST /game/continue.
//
// Notes:
//   - Every game is a single-player session with its own generator; the
//     same seed replays the same models no matter how many games run.
//   - Session tokens are HS256 JWTs naming the game ID.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/mastermind/internal/results"
	"github.com/robalobadob/mastermind/internal/store"
)

// Options configures a Server.
type Options struct {
	Secret       []byte        // HMAC key for session tokens
	TTL          time.Duration // token lifetime; also how long idle sessions are kept
	ClientOrigin string        // CORS origin; empty means http://localhost:5173
}

// Server bundles router, session store and results store.
type Server struct {
	r       *chi.Mux
	store   store.Store
	results *results.Store
	secret  []byte
	ttl     time.Duration
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, rs *results.Store, opts Options) *Server {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, results: rs, secret: opts.Secret, ttl: opts.TTL}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mastermind","endpoints":["/health","POST /game/new","POST /game/guess","POST /game/continue","/leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountGame(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
