package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"
)

// GuardedDB fronts a *sql.DB with a circuit breaker so that history writes
// fail fast while the database is unreachable instead of blocking every dispatch.
type GuardedDB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// HistoryStoreConfig returns configuration for the message history database.
// The circuit opens once five calls in a row have failed.
func HistoryStoreConfig() Config {
	return Config{
		Name:             "history-store",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          15 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful: func(err error) bool {
			return err == nil || err == sql.ErrNoRows
		},
	}
}

// NewGuardedDB wraps db with HistoryStoreConfig.
func NewGuardedDB(db *sql.DB) *GuardedDB {
	return NewGuardedDBWithConfig(db, HistoryStoreConfig())
}

// NewGuardedDBWithConfig wraps db with a custom breaker configuration.
func NewGuardedDBWithConfig(db *sql.DB, cfg Config) *GuardedDB {
	return &GuardedDB{cb: New(cfg), db: db}
}

// QueryContext runs a query through the breaker.
func (g *GuardedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := g.cb.Execute(func() (interface{}, error) {
		return g.db.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

// ExecContext runs a statement through the breaker.
func (g *GuardedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := g.cb.Execute(func() (interface{}, error) {
		return g.db.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}

// QueryRowContext is not guarded: *sql.Row defers its error until Scan.
func (g *GuardedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return g.db.QueryRowContext(ctx, query, args...)
}

// State returns the breaker state.
func (g *GuardedDB) State() gobreaker.State {
	return g.cb.State()
}

// Name returns the breaker name.
func (g *GuardedDB) Name() string {
	return g.cb.Name()
}

// DB returns the wrapped connection pool.
func (g *GuardedDB) DB() *sql.DB {
	return g.db
}
