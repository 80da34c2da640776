package catalog

import (
	"fmt"
	"net/url"
)

const (
	// RatingMin and RatingMax bound a comment's rating, inclusive
	RatingMin = 1
	RatingMax = 5
)

// ValidateImageURL checks that raw parses as an absolute http or https URL.
// The empty string is allowed; it clears the stored URL.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("image_url is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("image_url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("image_url must be absolute")
	}

	return nil
}

// ValidateRating checks the inclusive 1..5 rating bounds
func ValidateRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)
	}
	return nil
}

// ValidateCommentTarget enforces the review-target rule: exactly one of the
// series/season/episode foreign keys must be set
func ValidateCommentTarget(seriesID, seasonID, episodeID *int64) error {
	targets := 0
	if seriesID != nil {
		targets++
	}
	if seasonID != nil {
		targets++
	}
	if episodeID != nil {
		targets++
	}

	switch {
	case targets == 0:
		return fmt.Errorf("one of fk_series, fk_season, fk_episode is required")
	case targets > 1:
		return fmt.Errorf("only one of fk_series, fk_season, fk_episode may be set")
	}

	return nil
}

// Validate checks a series row for create: non-empty name, well-formed image URL
func (s *Series) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.ImageURL != nil {
		if err := ValidateImageURL(*s.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a season row for create
func (s *Season) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.SeriesID <= 0 {
		return fmt.Errorf("fk_series is required")
	}
	return nil
}

// Validate checks an episode row for create
func (e *Episode) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.SeasonID <= 0 {
		return fmt.Errorf("fk_season is required")
	}
	if e.ImageURL != nil {
		if err := ValidateImageURL(*e.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a comment row for create: rating bounds plus the
// exactly-one-target rule. AuthorID is filled by the handler from the
// authenticated context before validation.
func (c *Comment) Validate() error {
	if err := ValidateRating(c.Rating); err != nil {
		return err
	}
	if err := ValidateCommentTarget(c.SeriesID, c.SeasonID, c.EpisodeID); err != nil {
		return err
	}
	if c.AuthorID == "" {
		return fmt.Errorf("author is required")
	}
	return nil
}

// Validate checks the fields present in a series update
func (u SeriesUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if u.ImageURL != nil {
		if err := ValidateImageURL(*u.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the fields present in a season update
func (u SeasonUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if u.SeriesID != nil && *u.SeriesID <= 0 {
		return fmt.Errorf("fk_series must be positive")
	}
	return nil
}

// Validate checks the fields present in an episode update
func (u EpisodeUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if u.SeasonID != nil && *u.SeasonID <= 0 {
		return fmt.Errorf("fk_season must be positive")
	}
	if u.ImageURL != nil {
		if err := ValidateImageURL(*u.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the fields present in a comment update
func (u CommentUpdate) Validate() error {
	if u.Rating != nil {
		if err := ValidateRating(*u.Rating); err != nil {
			return err
		}
	}
	return nil
}
