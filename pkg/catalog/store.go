package catalog

import "context"

// Store is the persistence boundary for the catalog. Implementations live in
// pkg/storage; handlers receive a Store at construction so tests can supply
// an in-memory fake.
//
// Create* fill the row's ID and CreatedAt on success. Update* apply only the
// fields present in the update and return the updated row, or ErrNotFound if
// the row vanished (the check-then-act ownership race surfaces here).
// Writes referencing a missing parent return ErrForeignKey.
type Store interface {
	CreateSeries(ctx context.Context, series *Series) error
	GetSeries(ctx context.Context, id int64) (*Series, error)
	ListSeries(ctx context.Context) ([]*Series, error)
	UpdateSeries(ctx context.Context, id int64, upd SeriesUpdate) (*Series, error)
	DeleteSeries(ctx context.Context, id int64) error

	CreateSeason(ctx context.Context, season *Season) error
	GetSeason(ctx context.Context, id int64) (*Season, error)
	ListSeasons(ctx context.Context, filter SeasonFilter) ([]*Season, error)
	UpdateSeason(ctx context.Context, id int64, upd SeasonUpdate) (*Season, error)
	DeleteSeason(ctx context.Context, id int64) error

	CreateEpisode(ctx context.Context, episode *Episode) error
	GetEpisode(ctx context.Context, id int64) (*Episode, error)
	ListEpisodes(ctx context.Context, filter EpisodeFilter) ([]*Episode, error)
	UpdateEpisode(ctx context.Context, id int64, upd EpisodeUpdate) (*Episode, error)
	DeleteEpisode(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	ListComments(ctx context.Context, filter CommentFilter) ([]*Comment, error)
	UpdateComment(ctx context.Context, id int64, upd CommentUpdate) (*Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	// HealthCheck verifies the backing store is reachable
	HealthCheck(ctx context.Context) error
}
