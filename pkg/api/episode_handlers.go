package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/showbase/showbase/pkg/catalog"
	"github.com/showbase/showbase/pkg/httputil"
	"github.com/showbase/showbase/pkg/permissions"
)

type createEpisodeRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
	SeasonID int64   `json:"fk_season"`
}

func (s *Server) listEpisodes(w http.ResponseWriter, r *http.Request) {
	seasonID, err := httputil.ParseQueryInt64(r, "fk_season")
	if err != nil {
		httputil.WriteBadRequest(w, "invalid fk_season")
		return
	}

	episodes, err := s.store.ListEpisodes(r.Context(), catalog.EpisodeFilter{SeasonID: seasonID})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list episodes")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, episodes)
}

func (s *Server) createEpisode(w http.ResponseWriter, r *http.Request) {
	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionCreate, ""); d != nil {
		deny(w, d)
		return
	}

	var req createEpisodeRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	episode := &catalog.Episode{
		Name:      req.Name,
		ImageURL:  normalizeURL(req.ImageURL),
		SeasonID:  req.SeasonID,
		CreatorID: actx.UserID,
	}
	if err := episode.Validate(); err != nil {
		httputil.WriteUnprocessable(w, err.Error())
		return
	}

	if _, err := s.store.GetSeason(r.Context(), episode.SeasonID); err != nil {
		writeStoreError(w, err, "Season not found")
		return
	}

	if err := s.store.CreateEpisode(r.Context(), episode); err != nil {
		s.logger.WithError(err).Error("Failed to create episode")
		writeStoreError(w, err, "Season not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"episode_id": episode.ID,
		"season_id":  episode.SeasonID,
		"user_id":    actx.UserID,
	}).Info("Episode created")
	httputil.WriteCreated(w, episode)
}

func (s *Server) getEpisode(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	episode, err := s.store.GetEpisode(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Episode not found")
		return
	}
	httputil.WriteSuccess(w, episode)
}

func (s *Server) updateEpisode(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetEpisode(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Episode not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionUpdate, existing.CreatorID); d != nil {
		deny(w, d)
		return
	}

	var upd catalog.EpisodeUpdate
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

	if upd.SeasonID != nil {
		if _, err := s.store.GetSeason(r.Context(), *upd.SeasonID); err != nil {
			writeStoreError(w, err, "Season not found")
			return
		}
	}

	updated, err := s.store.UpdateEpisode(r.Context(), id, upd)
	if err != nil {
		s.logger.WithError(err).WithField("episode_id", id).Error("Failed to update episode")
		writeStoreError(w, err, "Episode not found")
		return
	}
	httputil.WriteSuccess(w, updated)
}

func (s *Server) deleteEpisode(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetEpisode(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Episode not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionDelete, existing.CreatorID); d != nil {
		deny(w, d)
		return
	}

	if err := s.store.DeleteEpisode(r.Context(), id); err != nil {
		s.logger.WithError(err).WithField("episode_id", id).Error("Failed to delete episode")
		writeStoreError(w, err, "Episode not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"episode_id": id,
		"user_id":    actx.UserID,
	}).Info("Episode deleted")
	httputil.WriteNoContent(w)
}
