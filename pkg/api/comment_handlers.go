package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/showbase/showbase/pkg/catalog"
	"github.com/showbase/showbase/pkg/httputil"
	"github.com/showbase/showbase/pkg/permissions"
)

type createCommentRequest struct {
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	SeriesID  *int64 `json:"fk_series"`
	SeasonID  *int64 `json:"fk_season"`
	EpisodeID *int64 `json:"fk_episode"`
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	var filter catalog.CommentFilter
	for _, q := range []struct {
		key  string
		dest **int64
	}{
		{"fk_series", &filter.SeriesID},
		{"fk_season", &filter.SeasonID},
		{"fk_episode", &filter.EpisodeID},
	} {
		v, err := httputil.ParseQueryInt64(r, q.key)
		if err != nil {
			httputil.WriteBadRequest(w, "invalid "+q.key)
			return
		}
		*q.dest = v
	}
	if author := httputil.ParseQueryString(r, "fk_user", ""); author != "" {
		filter.AuthorID = &author
	}

	comments, err := s.store.ListComments(r.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list comments")
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, comments)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionCreate, ""); d != nil {
		deny(w, d)
		return
	}

	var req createCommentRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	// The author is always the authenticated caller, never client-supplied
	comment := &catalog.Comment{
		Text:      req.Text,
		Rating:    req.Rating,
		SeriesID:  req.SeriesID,
		SeasonID:  req.SeasonID,
		EpisodeID: req.EpisodeID,
		AuthorID:  actx.UserID,
	}
	if err := comment.Validate(); err != nil {
		httputil.WriteUnprocessable(w, err.Error())
		return
	}

	if !s.commentTargetExists(w, r, comment) {
		return
	}

	if err := s.store.CreateComment(r.Context(), comment); err != nil {
		s.logger.WithError(err).Error("Failed to create comment")
		writeStoreError(w, err, "Referenced resource not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"comment_id": comment.ID,
		"user_id":    actx.UserID,
	}).Info("Comment created")
	httputil.WriteCreated(w, comment)
}

// commentTargetExists verifies the single review target before the insert and
// writes the 404 itself when the target is missing
func (s *Server) commentTargetExists(w http.ResponseWriter, r *http.Request, c *catalog.Comment) bool {
	var err error
	notFoundMsg := "Referenced resource not found"
	switch {
	case c.SeriesID != nil:
		_, err = s.store.GetSeries(r.Context(), *c.SeriesID)
		notFoundMsg = "Series not found"
	case c.SeasonID != nil:
		_, err = s.store.GetSeason(r.Context(), *c.SeasonID)
		notFoundMsg = "Season not found"
	case c.EpisodeID != nil:
		_, err = s.store.GetEpisode(r.Context(), *c.EpisodeID)
		notFoundMsg = "Episode not found"
	}
	if err != nil {
		writeStoreError(w, err, notFoundMsg)
		return false
	}
	return true
}

func (s *Server) getComment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	comment, err := s.store.GetComment(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Comment not found")
		return
	}
	httputil.WriteSuccess(w, comment)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetComment(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Comment not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionUpdate, existing.AuthorID); d != nil {
		deny(w, d)
		return
	}

	var upd catalog.CommentUpdate
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

	updated, err := s.store.UpdateComment(r.Context(), id, upd)
	if err != nil {
		s.logger.WithError(err).WithField("comment_id", id).Error("Failed to update comment")
		writeStoreError(w, err, "Comment not found")
		return
	}
	httputil.WriteSuccess(w, updated)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathIDOrError(w, r, "id")
	if !ok {
		return
	}

	existing, err := s.store.GetComment(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Comment not found")
		return
	}

	actx := authContext(r)
	if d := permissions.RequirePermission(actx, permissions.ActionDelete, existing.AuthorID); d != nil {
		deny(w, d)
		return
	}

	if err := s.store.DeleteComment(r.Context(), id); err != nil {
		s.logger.WithError(err).WithField("comment_id", id).Error("Failed to delete comment")
		writeStoreError(w, err, "Comment not found")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"comment_id": id,
		"user_id":    actx.UserID,
	}).Info("Comment deleted")
	httputil.WriteNoContent(w)
}
