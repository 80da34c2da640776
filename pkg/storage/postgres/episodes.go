package postgres

import (
	"context"
	"fmt"

	"github.com/showbase/showbase/pkg/catalog"
)

func (s *Store) CreateEpisode(ctx context.Context, episode *catalog.Episode) error {
	query := `
		INSERT INTO episodes (name, image_url, fk_season, fk_user)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		episode.Name,
		nullableURL(episode.ImageURL),
		episode.SeasonID,
		episode.CreatorID,
	).Scan(&episode.ID, &episode.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create episode: %w", translateError(err))
	}

	return nil
}

func (s *Store) GetEpisode(ctx context.Context, id int64) (*catalog.Episode, error) {
	if s.cache != nil {
		var episode catalog.Episode
		if ok, _ := s.cache.Get(ctx, episodeKey(id), &episode); ok {
			return &episode, nil
		}
	}

	query := `
		SELECT id, created_at, name, image_url, fk_season, fk_user
		FROM episodes
		WHERE id = $1
	`

	var episode catalog.Episode
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&episode.ID,
		&episode.CreatedAt,
		&episode.Name,
		&episode.ImageURL,
		&episode.SeasonID,
		&episode.CreatorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, episodeKey(id), &episode)
	}
	return &episode, nil
}

func (s *Store) ListEpisodes(ctx context.Context, filter catalog.EpisodeFilter) ([]*catalog.Episode, error) {
	query := `
		SELECT id, created_at, name, image_url, fk_season, fk_user
		FROM episodes
	`
	args := []interface{}{}
	if filter.SeasonID != nil {
		query += ` WHERE fk_season = $1`
		args = append(args, *filter.SeasonID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer rows.Close()

	result := make([]*catalog.Episode, 0)
	for rows.Next() {
		var episode catalog.Episode
		if err := rows.Scan(
			&episode.ID,
			&episode.CreatedAt,
			&episode.Name,
			&episode.ImageURL,
			&episode.SeasonID,
			&episode.CreatorID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		result = append(result, &episode)
	}

	return result, rows.Err()
}

func (s *Store) UpdateEpisode(ctx context.Context, id int64, upd catalog.EpisodeUpdate) (*catalog.Episode, error) {
	b := &updateBuilder{}
	if upd.Name != nil {
		b.set("name", *upd.Name)
	}
	if upd.ImageURL != nil {
		b.set("image_url", nullableURL(upd.ImageURL))
	}
	if upd.SeasonID != nil {
		b.set("fk_season", *upd.SeasonID)
	}
	if b.empty() {
		return nil, fmt.Errorf("empty update")
	}

	query := fmt.Sprintf(`
		UPDATE episodes SET %s
		WHERE id = $%d
		RETURNING id, created_at, name, image_url, fk_season, fk_user
	`, b.setClause(), b.nextArg(id))

	var episode catalog.Episode
	err := s.db.QueryRowContext(ctx, query, b.args...).Scan(
		&episode.ID,
		&episode.CreatedAt,
		&episode.Name,
		&episode.ImageURL,
		&episode.SeasonID,
		&episode.CreatorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if s.cache != nil {
		s.cache.Del(ctx, episodeKey(id))
	}
	return &episode, nil
}

func (s *Store) DeleteEpisode(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete episode: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}

	if s.cache != nil {
		s.cache.Del(ctx, episodeKey(id))
	}
	return nil
}
