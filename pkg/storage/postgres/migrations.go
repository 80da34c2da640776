package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations returns the catalog schema migrations. The hosted database
// normally owns the schema; these exist for local development and tests.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create series table",
			SQL: `
				CREATE TABLE IF NOT EXISTS series (
					id BIGSERIAL PRIMARY KEY,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					name TEXT NOT NULL,
					image_url TEXT,
					fk_user UUID NOT NULL
				);
			`,
		},
		{
			Version:     2,
			Description: "Create seasons table",
			SQL: `
				CREATE TABLE IF NOT EXISTS seasons (
					id BIGSERIAL PRIMARY KEY,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					name TEXT NOT NULL,
					fk_series BIGINT NOT NULL REFERENCES series(id) ON DELETE CASCADE,
					fk_user UUID NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_seasons_fk_series ON seasons(fk_series);
			`,
		},
		{
			Version:     3,
			Description: "Create episodes table",
			SQL: `
				CREATE TABLE IF NOT EXISTS episodes (
					id BIGSERIAL PRIMARY KEY,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					name TEXT NOT NULL,
					image_url TEXT,
					fk_season BIGINT NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
					fk_user UUID NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_episodes_fk_season ON episodes(fk_season);
			`,
		},
		{
			Version:     4,
			Description: "Create comments table",
			SQL: `
				CREATE TABLE IF NOT EXISTS comments (
					id BIGSERIAL PRIMARY KEY,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					text TEXT NOT NULL DEFAULT '',
					rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
					fk_series BIGINT REFERENCES series(id) ON DELETE CASCADE,
					fk_season BIGINT REFERENCES seasons(id) ON DELETE CASCADE,
					fk_episode BIGINT REFERENCES episodes(id) ON DELETE CASCADE,
					fk_user UUID NOT NULL,
					CHECK (num_nonnulls(fk_series, fk_season, fk_episode) = 1)
				);

				CREATE INDEX IF NOT EXISTS idx_comments_fk_series ON comments(fk_series);
				CREATE INDEX IF NOT EXISTS idx_comments_fk_season ON comments(fk_season);
				CREATE INDEX IF NOT EXISTS idx_comments_fk_episode ON comments(fk_episode);
				CREATE INDEX IF NOT EXISTS idx_comments_fk_user ON comments(fk_user);
			`,
		},
	}
}

// Migrate applies all pending migrations in version order
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range GetMigrations() {
		var applied bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`,
			m.Version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if applied {
			continue
		}

		if _, err := db.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			m.Version, m.Description,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	return nil
}
