package results

import (
	"context"
	"database/sql"

	"github.com/robalobadob/mastermind/assets"
)

// Result is one completed round.
type Result struct {
	GameID   string `json:"gameId"`
	Bound    string `json:"maxchar"`
	Dims     int    `json:"dimensions"`
	Seed     int    `json:"seed"`
	Round    int    `json:"round"`
	Attempts int    `json:"attempts"`
}

// Store records completed rounds and ranks them.
type Store struct{ db *sql.DB }

// Open opens dsn, applies migrations and returns a ready Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Insert records r. A second insert for the same game and round is ignored.
func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO round_results(game_id, bound, dims, seed, round, attempts)
VALUES(?,?,?,?,?,?)`, r.GameID, r.Bound, r.Dims, r.Seed, r.Round, r.Attempts,
	)
	return err
}

// Leaderboard returns the best rounds for a configuration: fewest attempts
// first, earliest first among ties.
func (s *Store) Leaderboard(ctx context.Context, bound string, dims, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, bound, dims, seed, round, attempts
FROM round_results
WHERE bound=? AND dims=?
ORDER BY attempts ASC, created_at ASC, id ASC
LIMIT ?`, bound, dims, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.GameID, &r.Bound, &r.Dims, &r.Seed, &r.Round, &r.Attempts); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Average returns the mean attempts per round for a configuration and how
// many rounds it covers.
func (s *Store) Average(ctx context.Context, bound string, dims int) (float64, int, error) {
	var (
		avg sql.NullFloat64
		n   int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(attempts), COUNT(1) FROM round_results WHERE bound=? AND dims=?`,
		bound, dims,
	).Scan(&avg, &n)
	return avg.Float64, n, err
}
