package postgres

import (
	"context"
	"fmt"

	"github.com/showbase/showbase/pkg/catalog"
)

func (s *Store) CreateSeason(ctx context.Context, season *catalog.Season) error {
	query := `
		INSERT INTO seasons (name, fk_series, fk_user)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		season.Name,
		season.SeriesID,
		season.CreatorID,
	).Scan(&season.ID, &season.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create season: %w", translateError(err))
	}

	return nil
}

func (s *Store) GetSeason(ctx context.Context, id int64) (*catalog.Season, error) {
	if s.cache != nil {
		var season catalog.Season
		if ok, _ := s.cache.Get(ctx, seasonKey(id), &season); ok {
			return &season, nil
		}
	}

	query := `
		SELECT id, created_at, name, fk_series, fk_user
		FROM seasons
		WHERE id = $1
	`

	var season catalog.Season
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&season.ID,
		&season.CreatedAt,
		&season.Name,
		&season.SeriesID,
		&season.CreatorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, seasonKey(id), &season)
	}
	return &season, nil
}

func (s *Store) ListSeasons(ctx context.Context, filter catalog.SeasonFilter) ([]*catalog.Season, error) {
	query := `
		SELECT id, created_at, name, fk_series, fk_user
		FROM seasons
	`
	args := []interface{}{}
	if filter.SeriesID != nil {
		query += ` WHERE fk_series = $1`
		args = append(args, *filter.SeriesID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	result := make([]*catalog.Season, 0)
	for rows.Next() {
		var season catalog.Season
		if err := rows.Scan(
			&season.ID,
			&season.CreatedAt,
			&season.Name,
			&season.SeriesID,
			&season.CreatorID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		result = append(result, &season)
	}

	return result, rows.Err()
}

func (s *Store) UpdateSeason(ctx context.Context, id int64, upd catalog.SeasonUpdate) (*catalog.Season, error) {
	b := &updateBuilder{}
	if upd.Name != nil {
		b.set("name", *upd.Name)
	}
	if upd.SeriesID != nil {
		b.set("fk_series", *upd.SeriesID)
	}
	if b.empty() {
		return nil, fmt.Errorf("empty update")
	}

	query := fmt.Sprintf(`
		UPDATE seasons SET %s
		WHERE id = $%d
		RETURNING id, created_at, name, fk_series, fk_user
	`, b.setClause(), b.nextArg(id))

	var season catalog.Season
	err := s.db.QueryRowContext(ctx, query, b.args...).Scan(
		&season.ID,
		&season.CreatedAt,
		&season.Name,
		&season.SeriesID,
		&season.CreatorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if s.cache != nil {
		s.cache.Del(ctx, seasonKey(id))
	}
	return &season, nil
}

func (s *Store) DeleteSeason(ctx context.Context, id int64) error {
	// Cascades over the season's episodes; drop their cached entries as well
	var episodeIDs []int64
	if s.cache != nil {
		episodeIDs = s.selectIDs(ctx, `SELECT id FROM episodes WHERE fk_season = $1`, id)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM seasons WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}

	if s.cache != nil {
		s.cache.Del(ctx, seasonKey(id))
		for _, eid := range episodeIDs {
			s.cache.Del(ctx, episodeKey(eid))
		}
	}
	return nil
}
