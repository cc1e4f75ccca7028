package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/results"
	"github.com/robalobadob/mastermind/internal/store"
)

type ServerSuite struct {
	suite.Suite
	h  http.Handler
	rs *results.Store
}

func (s *ServerSuite) SetupTest() {
	rs, err := results.Open(context.Background(), results.MemoryDSN())
	s.Require().NoError(err)
	s.rs = rs
	srv := httpserver.New(store.NewMemoryStore(), rs, httpserver.Options{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
	})
	s.h = srv.Router()
}

func (s *ServerSuite) TearDownTest() {
	_ = s.rs.Close()
}

func (s *ServerSuite) do(method, path, token string, body any) (int, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	out := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func (s *ServerSuite) newGame() string {
	code, res := s.do(http.MethodPost, "/game/new", "", map[string]any{"maxchar": "f", "dimensions": 4, "seed": 1})
	s.Require().Equal(http.StatusOK, code)
	s.Equal("F", res["maxchar"])
	s.Equal("guessing", res["state"])
	s.EqualValues(1, res["attempt"])
	s.EqualValues(1, res["round"])
	tok, _ := res["token"].(string)
	s.Require().NotEmpty(tok)
	return tok
}

func (s *ServerSuite) TestHealth() {
	code, res := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, code)
	s.Equal(true, res["ok"])
}

func (s *ServerSuite) TestFullSession() {
	tok := s.newGame()

	code, res := s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "aaaa"})
	s.Require().Equal(http.StatusOK, code)
	s.EqualValues(2, res["exact"])
	s.EqualValues(0, res["inexact"])
	s.EqualValues(1, res["attempt"])
	s.Equal("guessing", res["state"])
	s.NotContains(res, "average")

	code, res = s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "abgz"})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("bad_guess", res["error"])

	code, res = s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "ADEA"})
	s.Require().Equal(http.StatusOK, code)
	s.EqualValues(4, res["exact"])
	s.EqualValues(2, res["attempt"], "rejected guess does not advance the attempt")
	s.Equal("won", res["state"])
	s.EqualValues(2, res["average"])

	code, res = s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "ADEA"})
	s.Equal(http.StatusConflict, code)
	s.Equal("won", res["state"])

	code, res = s.do(http.MethodPost, "/game/continue", tok, map[string]bool{"another": true})
	s.Require().Equal(http.StatusOK, code)
	s.Equal("guessing", res["state"])
	s.EqualValues(2, res["round"])
	s.EqualValues(1, res["attempt"])

	code, res = s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "b f a f"})
	s.Require().Equal(http.StatusOK, code)
	s.Equal("won", res["state"])
	s.EqualValues(1.5, res["average"])

	code, res = s.do(http.MethodGet, "/leaderboard?maxchar=f&dimensions=4", "", nil)
	s.Require().Equal(http.StatusOK, code)
	s.EqualValues(2, res["rounds"])
	s.EqualValues(1.5, res["average"])
	top, _ := res["top"].([]any)
	s.Require().Len(top, 2)
	first, _ := top[0].(map[string]any)
	s.EqualValues(1, first["attempts"])

	code, res = s.do(http.MethodPost, "/game/continue", tok, map[string]bool{"another": false})
	s.Require().Equal(http.StatusOK, code)
	s.Equal("done", res["state"])

	code, _ = s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "ADEA"})
	s.Equal(http.StatusNotFound, code)
}

func (s *ServerSuite) TestContinueBeforeWin() {
	tok := s.newGame()
	code, res := s.do(http.MethodPost, "/game/continue", tok, map[string]bool{"another": true})
	s.Equal(http.StatusConflict, code)
	s.Equal("guessing", res["state"])

	code, _ = s.do(http.MethodPost, "/game/continue", tok, map[string]string{})
	s.Equal(http.StatusBadRequest, code)
}

func (s *ServerSuite) TestBadConfig() {
	for _, body := range []map[string]any{
		{"maxchar": "G", "dimensions": 4, "seed": 1},
		{"maxchar": "F", "dimensions": 11, "seed": 1},
		{"maxchar": "FF", "dimensions": 4, "seed": 1},
		{"maxchar": "", "dimensions": 4, "seed": 1},
	} {
		code, res := s.do(http.MethodPost, "/game/new", "", body)
		s.Equal(http.StatusBadRequest, code, "%v", body)
		s.Equal("bad_config", res["error"])
	}

	code, _ := s.do(http.MethodGet, "/leaderboard?maxchar=Z", "", nil)
	s.Equal(http.StatusBadRequest, code)
}

func (s *ServerSuite) TestTokens() {
	code, _ := s.do(http.MethodPost, "/game/guess", "", map[string]string{"guess": "AAAA"})
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/game/guess", "not-a-jwt", map[string]string{"guess": "AAAA"})
	s.Equal(http.StatusUnauthorized, code)

	// A token from a server with another secret is rejected.
	rs, err := results.Open(context.Background(), results.MemoryDSN())
	s.Require().NoError(err)
	defer rs.Close()
	other := httpserver.New(store.NewMemoryStore(), rs, httpserver.Options{Secret: []byte("other")})
	req := httptest.NewRequest(http.MethodPost, "/game/new", bytes.NewBufferString(`{"maxchar":"F","dimensions":4,"seed":1}`))
	rec := httptest.NewRecorder()
	other.Router().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)
	var res map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))

	code, _ = s.do(http.MethodPost, "/game/guess", res["token"].(string), map[string]string{"guess": "AAAA"})
	s.Equal(http.StatusUnauthorized, code)
}

func (s *ServerSuite) TestSameSeedSameModels() {
	a, b := s.newGame(), s.newGame()
	for _, tok := range []string{a, b} {
		code, res := s.do(http.MethodPost, "/game/guess", tok, map[string]string{"guess": "ADEA"})
		s.Require().Equal(http.StatusOK, code)
		s.Equal("won", res["state"])
	}
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestNotFoundIsJSON(t *testing.T) {
	srv := httpserver.New(store.NewMemoryStore(), nil, httpserver.Options{Secret: []byte("x")})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `"not_found"`)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
