// Package postgres implements catalog.Store on PostgreSQL via lib/pq, with an
// optional Redis read cache for get-by-id lookups.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/showbase/showbase/pkg/catalog"
)

// foreignKeyViolation is the PostgreSQL error code raised when a write
// references a missing parent row
const foreignKeyViolation = "23503"

// Config holds database connection configuration
type Config struct {
	URL         string
	MaxConns    int
	MinConns    int
	Timeout     time.Duration
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// DefaultConfig returns sensible pool defaults
func DefaultConfig() Config {
	return Config{
		MaxConns:    20,
		MinConns:    2,
		Timeout:     5 * time.Second,
		MaxLifetime: 1 * time.Hour,
		MaxIdleTime: 10 * time.Minute,
	}
}

// Store implements catalog.Store on PostgreSQL
type Store struct {
	db    *sql.DB
	cache *Cache
}

// NewStore opens a connection pool against cfg.URL and verifies it with a
// ping. cache may be nil to run without the read cache.
func NewStore(cfg Config, cache *Cache) (*Store, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MinConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Store{db: db, cache: cache}, nil
}

// NewStoreWithDB wraps an existing connection, used by tests with sqlmock
func NewStoreWithDB(db *sql.DB, cache *Cache) *Store {
	return &Store{db: db, cache: cache}
}

// DB exposes the underlying pool for health checks and pool metrics
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// HealthCheck implements catalog.Store
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// translateError maps backend errors onto the catalog sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return catalog.ErrForeignKey
	}
	return err
}

// selectIDs collects the ids a query returns. Used to invalidate cached
// child rows before a parent delete cascades over them; errors leave the
// stale entries to expire with the TTL, so they are not surfaced.
func (s *Store) selectIDs(ctx context.Context, query string, arg int64) []int64 {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return ids
		}
		ids = append(ids, id)
	}
	return ids
}

// updateBuilder accumulates SET clauses for a partial UPDATE
type updateBuilder struct {
	cols []string
	args []interface{}
}

func (b *updateBuilder) set(col string, val interface{}) {
	b.args = append(b.args, val)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

// setClause renders "col1 = $1, col2 = $2"; empty reports no fields were added
func (b *updateBuilder) setClause() string {
	return strings.Join(b.cols, ", ")
}

func (b *updateBuilder) empty() bool {
	return len(b.cols) == 0
}

// nextArg appends an argument and returns its placeholder index
func (b *updateBuilder) nextArg(val interface{}) int {
	b.args = append(b.args, val)
	return len(b.args)
}

// nullableURL maps the "empty string clears the URL" update convention onto a
// SQL NULL
func nullableURL(url *string) interface{} {
	if url == nil || *url == "" {
		return nil
	}
	return *url
}
