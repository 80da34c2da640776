package postgres

import (
	"context"
	"fmt"

	"github.com/showbase/showbase/pkg/catalog"
)

func (s *Store) CreateSeries(ctx context.Context, series *catalog.Series) error {
	query := `
		INSERT INTO series (name, image_url, fk_user)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		series.Name,
		nullableURL(series.ImageURL),
		series.CreatorID,
	).Scan(&series.ID, &series.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", translateError(err))
	}

	return nil
}

func (s *Store) GetSeries(ctx context.Context, id int64) (*catalog.Series, error) {
	if s.cache != nil {
		var series catalog.Series
		if ok, _ := s.cache.Get(ctx, seriesKey(id), &series); ok {
			return &series, nil
		}
	}

	query := `
		SELECT id, created_at, name, image_url, fk_user
		FROM series
		WHERE id = $1
	`

	var series catalog.Series
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&series.ID,
		&series.CreatedAt,
		&series.Name,
		&series.ImageURL,
		&series.CreatorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, seriesKey(id), &series)
	}
	return &series, nil
}

func (s *Store) ListSeries(ctx context.Context) ([]*catalog.Series, error) {
	query := `
		SELECT id, created_at, name, image_url, fk_user
		FROM series
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	result := make([]*catalog.Series, 0)
	for rows.Next() {
		var series catalog.Series
		if err := rows.Scan(
			&series.ID,
			&series.CreatedAt,
			&series.Name,
			&series.ImageURL,
			&series.CreatorID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		result = append(result, &series)
	}

	return result, rows.Err()
}

func (s *Store) UpdateSeries(ctx context.Context, id int64, upd catalog.SeriesUpdate) (*catalog.Series, error) {
	b := &updateBuilder{}
	if upd.Name != nil {
		b.set("name", *upd.Name)
	}
	if upd.ImageURL != nil {
		b.set("image_url", nullableURL(upd.ImageURL))
	}
	if b.empty() {
		return nil, fmt.Errorf("empty update")
	}

	query := fmt.Sprintf(`
		UPDATE series SET %s
		WHERE id = $%d
		RETURNING id, created_at, name, image_url, fk_user
	`, b.setClause(), b.nextArg(id))

	var series catalog.Series
	err := s.db.QueryRowContext(ctx, query, b.args...).Scan(
		&series.ID,
		&series.CreatedAt,
		&series.Name,
		&series.ImageURL,
		&series.CreatorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if s.cache != nil {
		s.cache.Del(ctx, seriesKey(id))
	}
	return &series, nil
}

func (s *Store) DeleteSeries(ctx context.Context, id int64) error {
	// The delete cascades over seasons and episodes, so their cached
	// get-by-id entries need invalidating too; collect ids before the rows go
	var seasonIDs, episodeIDs []int64
	if s.cache != nil {
		seasonIDs = s.selectIDs(ctx, `SELECT id FROM seasons WHERE fk_series = $1`, id)
		episodeIDs = s.selectIDs(ctx, `
			SELECT e.id FROM episodes e
			JOIN seasons se ON e.fk_season = se.id
			WHERE se.fk_series = $1
		`, id)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM series WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}

	if s.cache != nil {
		s.cache.Del(ctx, seriesKey(id))
		for _, sid := range seasonIDs {
			s.cache.Del(ctx, seasonKey(sid))
		}
		for _, eid := range episodeIDs {
			s.cache.Del(ctx, episodeKey(eid))
		}
	}
	return nil
}
