// Package storage holds persistence concerns shared across backends.
package storage

import (
	"context"
	"time"

	"github.com/showbase/showbase/pkg/catalog"
)

// Observer receives one sample per store operation.
type Observer func(operation string, err error, duration time.Duration)

// InstrumentedStore wraps a catalog.Store and reports every operation's
// outcome and latency to an Observer.
type InstrumentedStore struct {
	inner catalog.Store
	obs   Observer
}

func NewInstrumentedStore(inner catalog.Store, obs Observer) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, obs: obs}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.obs(op, err, time.Since(start))
}

func (s *InstrumentedStore) CreateSeries(ctx context.Context, series *catalog.Series) error {
	start := time.Now()
	err := s.inner.CreateSeries(ctx, series)
	s.observe("series.create", start, err)
	return err
}

func (s *InstrumentedStore) GetSeries(ctx context.Context, id int64) (*catalog.Series, error) {
	start := time.Now()
	res, err := s.inner.GetSeries(ctx, id)
	s.observe("series.get", start, err)
	return res, err
}

func (s *InstrumentedStore) ListSeries(ctx context.Context) ([]*catalog.Series, error) {
	start := time.Now()
	res, err := s.inner.ListSeries(ctx)
	s.observe("series.list", start, err)
	return res, err
}

func (s *InstrumentedStore) UpdateSeries(ctx context.Context, id int64, upd catalog.SeriesUpdate) (*catalog.Series, error) {
	start := time.Now()
	res, err := s.inner.UpdateSeries(ctx, id, upd)
	s.observe("series.update", start, err)
	return res, err
}

func (s *InstrumentedStore) DeleteSeries(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.inner.DeleteSeries(ctx, id)
	s.observe("series.delete", start, err)
	return err
}

func (s *InstrumentedStore) CreateSeason(ctx context.Context, season *catalog.Season) error {
	start := time.Now()
	err := s.inner.CreateSeason(ctx, season)
	s.observe("season.create", start, err)
	return err
}

func (s *InstrumentedStore) GetSeason(ctx context.Context, id int64) (*catalog.Season, error) {
	start := time.Now()
	res, err := s.inner.GetSeason(ctx, id)
	s.observe("season.get", start, err)
	return res, err
}

func (s *InstrumentedStore) ListSeasons(ctx context.Context, filter catalog.SeasonFilter) ([]*catalog.Season, error) {
	start := time.Now()
	res, err := s.inner.ListSeasons(ctx, filter)
	s.observe("season.list", start, err)
	return res, err
}

func (s *InstrumentedStore) UpdateSeason(ctx context.Context, id int64, upd catalog.SeasonUpdate) (*catalog.Season, error) {
	start := time.Now()
	res, err := s.inner.UpdateSeason(ctx, id, upd)
	s.observe("season.update", start, err)
	return res, err
}

func (s *InstrumentedStore) DeleteSeason(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.inner.DeleteSeason(ctx, id)
	s.observe("season.delete", start, err)
	return err
}

func (s *InstrumentedStore) CreateEpisode(ctx context.Context, episode *catalog.Episode) error {
	start := time.Now()
	err := s.inner.CreateEpisode(ctx, episode)
	s.observe("episode.create", start, err)
	return err
}

func (s *InstrumentedStore) GetEpisode(ctx context.Context, id int64) (*catalog.Episode, error) {
	start := time.Now()
	res, err := s.inner.GetEpisode(ctx, id)
	s.observe("episode.get", start, err)
	return res, err
}

func (s *InstrumentedStore) ListEpisodes(ctx context.Context, filter catalog.EpisodeFilter) ([]*catalog.Episode, error) {
	start := time.Now()
	res, err := s.inner.ListEpisodes(ctx, filter)
	s.observe("episode.list", start, err)
	return res, err
}

func (s *InstrumentedStore) UpdateEpisode(ctx context.Context, id int64, upd catalog.EpisodeUpdate) (*catalog.Episode, error) {
	start := time.Now()
	res, err := s.inner.UpdateEpisode(ctx, id, upd)
	s.observe("episode.update", start, err)
	return res, err
}

func (s *InstrumentedStore) DeleteEpisode(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.inner.DeleteEpisode(ctx, id)
	s.observe("episode.delete", start, err)
	return err
}

func (s *InstrumentedStore) CreateComment(ctx context.Context, comment *catalog.Comment) error {
	start := time.Now()
	err := s.inner.CreateComment(ctx, comment)
	s.observe("comment.create", start, err)
	return err
}

func (s *InstrumentedStore) GetComment(ctx context.Context, id int64) (*catalog.Comment, error) {
	start := time.Now()
	res, err := s.inner.GetComment(ctx, id)
	s.observe("comment.get", start, err)
	return res, err
}

func (s *InstrumentedStore) ListComments(ctx context.Context, filter catalog.CommentFilter) ([]*catalog.Comment, error) {
	start := time.Now()
	res, err := s.inner.ListComments(ctx, filter)
	s.observe("comment.list", start, err)
	return res, err
}

func (s *InstrumentedStore) UpdateComment(ctx context.Context, id int64, upd catalog.CommentUpdate) (*catalog.Comment, error) {
	start := time.Now()
	res, err := s.inner.UpdateComment(ctx, id, upd)
	s.observe("comment.update", start, err)
	return res, err
}

func (s *InstrumentedStore) DeleteComment(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.inner.DeleteComment(ctx, id)
	s.observe("comment.delete", start, err)
	return err
}

func (s *InstrumentedStore) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := s.inner.HealthCheck(ctx)
	s.observe("healthcheck", start, err)
	return err
}
