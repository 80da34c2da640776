package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/showbase/showbase/pkg/catalog"
	"github.com/showbase/showbase/pkg/httputil"
	"github.com/showbase/showbase/pkg/permissions"
)

type createSeasonRequest struct {
	Name     string `json:"name"`
	SeriesID int64  `json:"fk_series"`
}

func (s *Server) listSeasons(w http.ResponseWriter, r *http.Request) {
	seriesID, err := httputil.ParseQueryInt64(r, "fk_series")
	if err != nil {
		httputil.WriteBadRequest(w, "invalid fk_series")
		return
	}

	seasons, err := s.store.ListSeasons(r.Context(), catalog.SeasonFilter{SeriesID: seriesID})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list seasons")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, seasons)
}

func (s *Server) createSeason(w http.ResponseWriter, r *http.Request) {
	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionCreate, ""); d != nil {
		deny(w, d)
		return
	}

	var req createSeasonRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	season := &catalog.Season{
		Name:      req.Name,
		SeriesID:  req.SeriesID,
		CreatorID: actx.UserID,
	}
	if err := season.Validate(); err != nil {
		httputil.WriteUnprocessable(w, err.Error())
		return
	}

	// Parent existence is checked before the insert so the caller gets a
	// clean 404 instead of a surfaced constraint error
	if _, err := s.store.GetSeries(r.Context(), season.SeriesID); err != nil {
		writeStoreError(w, err, "Series not found")
		return
	}

	if err := s.store.CreateSeason(r.Context(), season); err != nil {
		s.logger.WithError(err).Error("Failed to create season")
		writeStoreError(w, err, "Series not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"season_id": season.ID,
		"series_id": season.SeriesID,
		"user_id":   actx.UserID,
	}).Info("Season created")
	httputil.WriteCreated(w, season)
}

func (s *Server) getSeason(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	season, err := s.store.GetSeason(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Season not found")
		return
	}
	httputil.WriteSuccess(w, season)
}

func (s *Server) updateSeason(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetSeason(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Season not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionUpdate, existing.CreatorID); d != nil {
		deny(w, d)
		return
	}

	var upd catalog.SeasonUpdate
	if !httputil.ParseJSONOrError(w, r, &upd) {
		return
	}
	if upd.IsEmpty() {
		httputil.WriteUnprocessable(w, "At least one field to update is required")
		return
	}
	if err := upd.Validate(); err != nil {
		httputil.WriteUnprocessable(w, err.Error())
		return
	}

	// Reparenting must point at an existing series
	if upd.SeriesID != nil {
		if _, err := s.store.GetSeries(r.Context(), *upd.SeriesID); err != nil {
			writeStoreError(w, err, "Series not found")
			return
		}
	}

	updated, err := s.store.UpdateSeason(r.Context(), id, upd)
	if err != nil {
		s.logger.WithError(err).WithField("season_id", id).Error("Failed to update season")
		writeStoreError(w, err, "Season not found")
		return
	}
	httputil.WriteSuccess(w, updated)
}

func (s *Server) deleteSeason(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetSeason(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Season not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionDelete, existing.CreatorID); d != nil {
		deny(w, d)
		return
	}

	if err := s.store.DeleteSeason(r.Context(), id); err != nil {
		s.logger.WithError(err).WithField("season_id", id).Error("Failed to delete season")
		writeStoreError(w, err, "Season not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"season_id": id,
		"user_id":   actx.UserID,
	}).Info("Season deleted")
	httputil.WriteNoContent(w)
}

// listSeasonEpisodes serves the nested GET /seasons/{id}/episodes route
func (s *Server) listSeasonEpisodes(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	if _, err := s.store.GetSeason(r.Context(), id); err != nil {
		writeStoreError(w, err, "Season not found")
		return
	}

	episodes, err := s.store.ListEpisodes(r.Context(), catalog.EpisodeFilter{SeasonID: &id})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list episodes")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, episodes)
}
