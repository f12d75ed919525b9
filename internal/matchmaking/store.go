package matchmaking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const defaultSuggestionLimit = 10

// Option configures the matchmaking store.
type Option func(*store)

// WithDefaultLimit sets the suggestion cap used when neither the request nor
// the club settings carry one.
func WithDefaultLimit(limit int) Option {
	return func(s *store) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// NewStore creates a new matchmaking store reading player snapshots from ratings.
func NewStore(db *sql.DB, ratings RatingStore, opts ...Option) MatchmakingService {
	s := &store{
		db:           db,
		ratings:      ratings,
		defaultLimit: defaultSuggestionLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func exists(ctx context.Context, q querier, query string, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func requireClub(ctx context.Context, q querier, clubID string) error {
	ok, err := exists(ctx, q, `SELECT 1 FROM clubs WHERE id = ?`, clubID)
	if err != nil {
		return fmt.Errorf("failed to look up club %s: %w", clubID, err)
	}
	if !ok {
		return fmt.Errorf("%w: club %s", ErrNotFound, clubID)
	}
	return nil
}

func requirePlayer(ctx context.Context, q querier, playerID string) error {
	ok, err := exists(ctx, q, `SELECT 1 FROM players WHERE id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("failed to look up player %s: %w", playerID, err)
	}
	if !ok {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func distinct(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return false
		}
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0)
	return &t
}

func stringFromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
