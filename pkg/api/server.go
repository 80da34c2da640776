// Package api exposes the catalog's REST surface: one resource handler group
// per entity, a shared auth-resolution step, and consistent error translation.
package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/showbase/showbase/pkg/auth"
	"github.com/showbase/showbase/pkg/catalog"
	"github.com/showbase/showbase/pkg/contextkeys"
	"github.com/showbase/showbase/pkg/httputil"
	"github.com/showbase/showbase/pkg/observability"
	"github.com/showbase/showbase/pkg/permissions"
)

// Server represents the API server
type Server struct {
	store    catalog.Store
	resolver *auth.Resolver
	router   *mux.Router
	logger   *logrus.Logger
	metrics  *observability.Metrics
	maxBytes int64
	origins  []string
}

// Option configures a Server
type Option func(*Server)

// WithMetrics instruments requests and auth resolutions
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMaxBodyBytes caps request body size
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBytes = n }
}

// WithCORSOrigins sets the allowed CORS origins
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// NewServer creates the API server. The store and resolver are passed in
// explicitly so tests can substitute fakes.
func NewServer(store catalog.Store, resolver *auth.Resolver, logger *logrus.Logger, opts ...Option) *Server {
	s := &Server{
		store:    store,
		resolver: resolver,
		router:   mux.NewRouter(),
		logger:   logger,
		maxBytes: 1 << 20,
		origins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(s.authContextMiddleware)
	if s.metrics != nil {
		s.router.Use(mux.MiddlewareFunc(s.metrics.HTTPMiddleware(routeTemplate)))
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Series
	s.router.HandleFunc("/series", s.listSeries).Methods("GET")
	s.router.HandleFunc("/series", s.createSeries).Methods("POST")
	s.router.HandleFunc("/series/{id}", s.getSeries).Methods("GET")
	s.router.HandleFunc("/series/{id}", s.updateSeries).Methods("PUT")
	s.router.HandleFunc("/series/{id}", s.deleteSeries).Methods("DELETE")
	s.router.HandleFunc("/series/{id}/seasons", s.listSeriesSeasons).Methods("GET")

	// Seasons
	s.router.HandleFunc("/seasons", s.listSeasons).Methods("GET")
	s.router.HandleFunc("/seasons", s.createSeason).Methods("POST")
	s.router.HandleFunc("/seasons/{id}", s.getSeason).Methods("GET")
	s.router.HandleFunc("/seasons/{id}", s.updateSeason).Methods("PUT")
	s.router.HandleFunc("/seasons/{id}", s.deleteSeason).Methods("DELETE")
	s.router.HandleFunc("/seasons/{id}/episodes", s.listSeasonEpisodes).Methods("GET")

	// Episodes
	s.router.HandleFunc("/episodes", s.listEpisodes).Methods("GET")
	s.router.HandleFunc("/episodes", s.createEpisode).Methods("POST")
	s.router.HandleFunc("/episodes/{id}", s.getEpisode).Methods("GET")
	s.router.HandleFunc("/episodes/{id}", s.updateEpisode).Methods("PUT")
	s.router.HandleFunc("/episodes/{id}", s.deleteEpisode).Methods("DELETE")

	// Comments
	s.router.HandleFunc("/comments", s.listComments).Methods("GET")
	s.router.HandleFunc("/comments", s.createComment).Methods("POST")
	s.router.HandleFunc("/comments/{id}", s.getComment).Methods("GET")
	s.router.HandleFunc("/comments/{id}", s.updateComment).Methods("PUT")
	s.router.HandleFunc("/comments/{id}", s.deleteComment).Methods("DELETE")

	// Liveness on the API port; full readiness lives on the health server
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteSuccess(w, map[string]bool{"ok": true})
	}).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the router wrapped in the standard middleware chain
func (s *Server) Handler() http.Handler {
	return httputil.Chain(
		httputil.RecoveryMiddleware(s.logger),
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.CORSMiddleware(s.origins),
		httputil.ContentTypeMiddleware,
		httputil.MaxBytesMiddleware(s.maxBytes),
	)(s.router)
}

// authContextMiddleware resolves the caller's credentials once per request
// and stashes the AuthContext for handlers and guards
func (s *Server) authContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actx := s.resolver.Resolve(r)
		if s.metrics != nil {
			outcome := "guest"
			if actx.IsAuthenticated {
				outcome = "authenticated"
			} else if _, hadToken := auth.ExtractBearerToken(r); hadToken {
				outcome = "rejected"
			}
			s.metrics.ObserveAuth(outcome)
		}
		ctx := contextkeys.WithAuth(r.Context(), actx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authContext returns the resolved AuthContext, falling back to guest
func authContext(r *http.Request) auth.AuthContext {
	if actx, ok := r.Context().Value(contextkeys.AuthKey).(auth.AuthContext); ok {
		return actx
	}
	return auth.Guest()
}

// deny writes a guard denial as a JSON error response
func deny(w http.ResponseWriter, d *permissions.Denial) {
	httputil.WriteErrorMessage(w, d.Status, d.Message)
}

// writeStoreError translates store errors: missing rows and FK violations map
// to 404, anything else is a 500 with the store's message passed through
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		httputil.WriteNotFound(w, notFoundMsg)
	case errors.Is(err, catalog.ErrForeignKey):
		httputil.WriteNotFound(w, "Referenced resource not found")
	default:
		httputil.WriteInternalError(w, err)
	}
}

// routeTemplate labels metrics with the mux route pattern to bound cardinality
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

// normalizeURL collapses an explicit empty image_url to "unset"
func normalizeURL(url *string) *string {
	if url == nil || *url == "" {
		return nil
	}
	return url
}
