package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/mastermind/internal/store"
)

// ctxEntryKey is the context key type for the session entry.
type ctxEntryKey struct{}

// signSession creates an HS256 JWT naming the game ID.
func (s *Server) signSession(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parseSession validates a token and returns the game ID it names.
func (s *Server) parseSession(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	gid, _ := claims["gid"].(string)
	if gid == "" {
		return "", errors.New("token without game id")
	}
	return gid, nil
}

// bearer extracts a token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireSession enforces a valid token and injects the live entry into the
// request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			gid, err := s.parseSession(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			e, err := s.store.Get(r.Context(), gid)
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
				return
			}
			if err != nil {
				http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), ctxEntryKey{}, e)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// entryFrom returns the entry placed by requireSession.
func entryFrom(ctx context.Context) *store.Entry {
	e, _ := ctx.Value(ctxEntryKey{}).(*store.Entry)
	return e
}
