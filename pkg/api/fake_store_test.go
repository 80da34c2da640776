package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/showbase/showbase/pkg/catalog"
)

// fakeStore is an in-memory catalog.Store for handler tests. It mirrors the
// SQL implementation's contract: sentinel errors for missing rows and broken
// references, lists ordered by id, updates returning the stored row.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	series   map[int64]*catalog.Series
	seasons  map[int64]*catalog.Season
	episodes map[int64]*catalog.Episode
	comments map[int64]*catalog.Comment

	// forcedErr, when set, is returned by every operation
	forcedErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		series:   make(map[int64]*catalog.Series),
		seasons:  make(map[int64]*catalog.Season),
		episodes: make(map[int64]*catalog.Episode),
		comments: make(map[int64]*catalog.Comment),
	}
}

func (f *fakeStore) allocID() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) CreateSeries(ctx context.Context, series *catalog.Series) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	series.ID = f.allocID()
	series.CreatedAt = time.Now()
	cp := *series
	f.series[series.ID] = &cp
	return nil
}

func (f *fakeStore) GetSeries(ctx context.Context, id int64) (*catalog.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	s, ok := f.series[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) ListSeries(ctx context.Context) ([]*catalog.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	result := make([]*catalog.Series, 0, len(f.series))
	for _, s := range f.series {
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) UpdateSeries(ctx context.Context, id int64, upd catalog.SeriesUpdate) (*catalog.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	s, ok := f.series[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.ImageURL != nil {
		if *upd.ImageURL == "" {
			s.ImageURL = nil
		} else {
			s.ImageURL = upd.ImageURL
		}
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) DeleteSeries(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.series[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.series, id)
	return nil
}

func (f *fakeStore) CreateSeason(ctx context.Context, season *catalog.Season) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.series[season.SeriesID]; !ok {
		return fmt.Errorf("insert season: %w", catalog.ErrForeignKey)
	}
	season.ID = f.allocID()
	season.CreatedAt = time.Now()
	cp := *season
	f.seasons[season.ID] = &cp
	return nil
}

func (f *fakeStore) GetSeason(ctx context.Context, id int64) (*catalog.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	s, ok := f.seasons[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) ListSeasons(ctx context.Context, filter catalog.SeasonFilter) ([]*catalog.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	result := make([]*catalog.Season, 0)
	for _, s := range f.seasons {
		if filter.SeriesID != nil && s.SeriesID != *filter.SeriesID {
			continue
		}
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) UpdateSeason(ctx context.Context, id int64, upd catalog.SeasonUpdate) (*catalog.Season, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	s, ok := f.seasons[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	if upd.SeriesID != nil {
		if _, ok := f.series[*upd.SeriesID]; !ok {
			return nil, catalog.ErrForeignKey
		}
		s.SeriesID = *upd.SeriesID
	}
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) DeleteSeason(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.seasons[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.seasons, id)
	return nil
}

func (f *fakeStore) CreateEpisode(ctx context.Context, episode *catalog.Episode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.seasons[episode.SeasonID]; !ok {
		return fmt.Errorf("insert episode: %w", catalog.ErrForeignKey)
	}
	episode.ID = f.allocID()
	episode.CreatedAt = time.Now()
	cp := *episode
	f.episodes[episode.ID] = &cp
	return nil
}

func (f *fakeStore) GetEpisode(ctx context.Context, id int64) (*catalog.Episode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	e, ok := f.episodes[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) ListEpisodes(ctx context.Context, filter catalog.EpisodeFilter) ([]*catalog.Episode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	result := make([]*catalog.Episode, 0)
	for _, e := range f.episodes {
		if filter.SeasonID != nil && e.SeasonID != *filter.SeasonID {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) UpdateEpisode(ctx context.Context, id int64, upd catalog.EpisodeUpdate) (*catalog.Episode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	e, ok := f.episodes[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	if upd.SeasonID != nil {
		if _, ok := f.seasons[*upd.SeasonID]; !ok {
			return nil, catalog.ErrForeignKey
		}
		e.SeasonID = *upd.SeasonID
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.ImageURL != nil {
		if *upd.ImageURL == "" {
			e.ImageURL = nil
		} else {
			e.ImageURL = upd.ImageURL
		}
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) DeleteEpisode(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.episodes[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.episodes, id)
	return nil
}

func (f *fakeStore) CreateComment(ctx context.Context, comment *catalog.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if comment.SeriesID != nil {
		if _, ok := f.series[*comment.SeriesID]; !ok {
			return catalog.ErrForeignKey
		}
	}
	if comment.SeasonID != nil {
		if _, ok := f.seasons[*comment.SeasonID]; !ok {
			return catalog.ErrForeignKey
		}
	}
	if comment.EpisodeID != nil {
		if _, ok := f.episodes[*comment.EpisodeID]; !ok {
			return catalog.ErrForeignKey
		}
	}
	comment.ID = f.allocID()
	comment.CreatedAt = time.Now()
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeStore) GetComment(ctx context.Context, id int64) (*catalog.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	c, ok := f.comments[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ListComments(ctx context.Context, filter catalog.CommentFilter) ([]*catalog.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	result := make([]*catalog.Comment, 0)
	for _, c := range f.comments {
		if filter.SeriesID != nil && (c.SeriesID == nil || *c.SeriesID != *filter.SeriesID) {
			continue
		}
		if filter.SeasonID != nil && (c.SeasonID == nil || *c.SeasonID != *filter.SeasonID) {
			continue
		}
		if filter.EpisodeID != nil && (c.EpisodeID == nil || *c.EpisodeID != *filter.EpisodeID) {
			continue
		}
		if filter.AuthorID != nil && c.AuthorID != *filter.AuthorID {
			continue
		}
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) UpdateComment(ctx context.Context, id int64, upd catalog.CommentUpdate) (*catalog.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	c, ok := f.comments[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	if upd.Text != nil {
		c.Text = *upd.Text
	}
	if upd.Rating != nil {
		c.Rating = *upd.Rating
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) DeleteComment(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.comments[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeStore) HealthCheck(ctx context.Context) error {
	return f.forcedErr
}
