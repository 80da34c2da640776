// Package catalog defines the TV catalog entities (series, seasons, episodes,
// comments), their validation rules, and the Store interface the resource
// handlers operate against.
package catalog

import "time"

// Series is a TV series. CreatorID is the auth subject that created the row
// and is immutable after creation.
type Series struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	CreatorID string    `json:"fk_user"`
}

// Season belongs to exactly one series
type Season struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	SeriesID  int64     `json:"fk_series"`
	CreatorID string    `json:"fk_user"`
}

// Episode belongs to exactly one season
type Episode struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image_url"`
	SeasonID  int64     `json:"fk_season"`
	CreatorID string    `json:"fk_user"`
}

// Comment is a review (rating plus optional text) targeting exactly one of a
// series, season, or episode. AuthorID is always the authenticated caller.
type Comment struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	SeriesID  *int64    `json:"fk_series"`
	SeasonID  *int64    `json:"fk_season"`
	EpisodeID *int64    `json:"fk_episode"`
	AuthorID  string    `json:"fk_user"`
}

// SeriesUpdate is a partial update; nil fields are left untouched.
// An empty ImageURL string clears the stored URL.
type SeriesUpdate struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
}

// IsEmpty reports whether no fields were supplied
func (u SeriesUpdate) IsEmpty() bool {
	return u.Name == nil && u.ImageURL == nil
}

// SeasonUpdate is a partial update for a season
type SeasonUpdate struct {
	Name     *string `json:"name"`
	SeriesID *int64  `json:"fk_series"`
}

// IsEmpty reports whether no fields were supplied
func (u SeasonUpdate) IsEmpty() bool {
	return u.Name == nil && u.SeriesID == nil
}

// EpisodeUpdate is a partial update for an episode
type EpisodeUpdate struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
	SeasonID *int64  `json:"fk_season"`
}

// IsEmpty reports whether no fields were supplied
func (u EpisodeUpdate) IsEmpty() bool {
	return u.Name == nil && u.ImageURL == nil && u.SeasonID == nil
}

// CommentUpdate is a partial update for a comment. Target FKs and author are
// immutable after creation, so only text and rating can change.
type CommentUpdate struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// IsEmpty reports whether no fields were supplied
func (u CommentUpdate) IsEmpty() bool {
	return u.Text == nil && u.Rating == nil
}

// SeasonFilter selects seasons by parent series
type SeasonFilter struct {
	SeriesID *int64
}

// EpisodeFilter selects episodes by parent season
type EpisodeFilter struct {
	SeasonID *int64
}

// CommentFilter selects comments by review target or author
type CommentFilter struct {
	SeriesID  *int64
	SeasonID  *int64
	EpisodeID *int64
	AuthorID  *string
}
