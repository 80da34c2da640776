package postgres

import (
	"context"
	"fmt"

	"github.com/showbase/showbase/pkg/catalog"
)

func (s *Store) CreateComment(ctx context.Context, comment *catalog.Comment) error {
	query := `
		INSERT INTO comments (text, rating, fk_series, fk_season, fk_episode, fk_user)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		comment.Text,
		comment.Rating,
		comment.SeriesID,
		comment.SeasonID,
		comment.EpisodeID,
		comment.AuthorID,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", translateError(err))
	}

	return nil
}

func (s *Store) GetComment(ctx context.Context, id int64) (*catalog.Comment, error) {
	query := `
		SELECT id, created_at, text, rating, fk_series, fk_season, fk_episode, fk_user
		FROM comments
		WHERE id = $1
	`

	var comment catalog.Comment
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.CreatedAt,
		&comment.Text,
		&comment.Rating,
		&comment.SeriesID,
		&comment.SeasonID,
		&comment.EpisodeID,
		&comment.AuthorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &comment, nil
}

func (s *Store) ListComments(ctx context.Context, filter catalog.CommentFilter) ([]*catalog.Comment, error) {
	query := `
		SELECT id, created_at, text, rating, fk_series, fk_season, fk_episode, fk_user
		FROM comments
	`
	b := &updateBuilder{}
	where := ""
	if filter.SeriesID != nil {
		where = appendCond(where, fmt.Sprintf("fk_series = $%d", b.nextArg(*filter.SeriesID)))
	}
	if filter.SeasonID != nil {
		where = appendCond(where, fmt.Sprintf("fk_season = $%d", b.nextArg(*filter.SeasonID)))
	}
	if filter.EpisodeID != nil {
		where = appendCond(where, fmt.Sprintf("fk_episode = $%d", b.nextArg(*filter.EpisodeID)))
	}
	if filter.AuthorID != nil {
		where = appendCond(where, fmt.Sprintf("fk_user = $%d", b.nextArg(*filter.AuthorID)))
	}
	query += where + ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	result := make([]*catalog.Comment, 0)
	for rows.Next() {
		var comment catalog.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.CreatedAt,
			&comment.Text,
			&comment.Rating,
			&comment.SeriesID,
			&comment.SeasonID,
			&comment.EpisodeID,
			&comment.AuthorID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, &comment)
	}

	return result, rows.Err()
}

func (s *Store) UpdateComment(ctx context.Context, id int64, upd catalog.CommentUpdate) (*catalog.Comment, error) {
	b := &updateBuilder{}
	if upd.Text != nil {
		b.set("text", *upd.Text)
	}
	if upd.Rating != nil {
		b.set("rating", *upd.Rating)
	}
	if b.empty() {
		return nil, fmt.Errorf("empty update")
	}

	query := fmt.Sprintf(`
		UPDATE comments SET %s
		WHERE id = $%d
		RETURNING id, created_at, text, rating, fk_series, fk_season, fk_episode, fk_user
	`, b.setClause(), b.nextArg(id))

	var comment catalog.Comment
	err := s.db.QueryRowContext(ctx, query, b.args...).Scan(
		&comment.ID,
		&comment.CreatedAt,
		&comment.Text,
		&comment.Rating,
		&comment.SeriesID,
		&comment.SeasonID,
		&comment.EpisodeID,
		&comment.AuthorID,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &comment, nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}

	return nil
}

// appendCond joins WHERE conditions with AND
func appendCond(where, cond string) string {
	if where == "" {
		return " WHERE " + cond
	}
	return where + " AND " + cond
}
