package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/showbase/showbase/pkg/catalog"
	"github.com/showbase/showbase/pkg/httputil"
	"github.com/showbase/showbase/pkg/permissions"
)

type createSeriesRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

func (s *Server) listSeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.store.ListSeries(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list series")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, series)
}

func (s *Server) createSeries(w http.ResponseWriter, r *http.Request) {
	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionCreate, ""); d != nil {
		deny(w, d)
		return
	}

	var req createSeriesRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	series := &catalog.Series{
		Name:      req.Name,
		ImageURL:  normalizeURL(req.ImageURL),
		CreatorID: actx.UserID,
	}
	if err := series.Validate(); err != nil {
		httputil.WriteUnprocessable(w, err.Error())
		return
	}

	if err := s.store.CreateSeries(r.Context(), series); err != nil {
		s.logger.WithError(err).Error("Failed to create series")
		writeStoreError(w, err, "Series not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"series_id": series.ID,
		"user_id":   actx.UserID,
	}).Info("Series created")
	httputil.WriteCreated(w, series)
}

func (s *Server) getSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	series, err := s.store.GetSeries(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Series not found")
		return
	}
	httputil.WriteSuccess(w, series)
}

func (s *Server) updateSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	// Ownership is checked against the current row before any write
	existing, err := s.store.GetSeries(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Series not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionUpdate, existing.CreatorID); d != nil {
		deny(w, d)
		return
	}

	var upd catalog.SeriesUpdate
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

	updated, err := s.store.UpdateSeries(r.Context(), id, upd)
	if err != nil {
		s.logger.WithError(err).WithField("series_id", id).Error("Failed to update series")
		writeStoreError(w, err, "Series not found")
		return
	}
	httputil.WriteSuccess(w, updated)
}

func (s *Server) deleteSeries(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetSeries(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Series not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionDelete, existing.CreatorID); d != nil {
		deny(w, d)
		return
	}

	if err := s.store.DeleteSeries(r.Context(), id); err != nil {
		s.logger.WithError(err).WithField("series_id", id).Error("Failed to delete series")
		writeStoreError(w, err, "Series not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"series_id": id,
		"user_id":   actx.UserID,
	}).Info("Series deleted")
	httputil.WriteNoContent(w)
}

// listSeriesSeasons serves the nested GET /series/{id}/seasons route. The
// parent series must exist; an empty season list is still a 200.
func (s *Server) listSeriesSeasons(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	if _, err := s.store.GetSeries(r.Context(), id); err != nil {
		writeStoreError(w, err, "Series not found")
		return
	}

	seasons, err := s.store.ListSeasons(r.Context(), catalog.SeasonFilter{SeriesID: &id})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list seasons")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, seasons)
}
