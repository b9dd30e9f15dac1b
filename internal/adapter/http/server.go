package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/met-office-stac/internal/domain"
	"github.com/couchcryptid/met-office-stac/internal/stac"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// CollectionSource builds collection documents. stac.Builder implements it.
type CollectionSource interface {
	Collection(model domain.Model, theme domain.Theme) (stac.Collection, error)
}

// Server exposes health, readiness and metrics endpoints plus the
// collection documents of the configured models.
type Server struct {
	httpServer  *http.Server
	collections CollectionSource
	models      []domain.Model
	logger      *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// /collections routes.
func NewServer(addr string, ready ReadinessChecker, collections CollectionSource, models []domain.Model, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		collections: collections,
		models:      models,
		logger:      logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /collections", s.handleCollections)
	mux.HandleFunc("GET /collections/{id}", s.handleCollection)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

type collectionList struct {
	Collections []stac.Collection `json:"collections"`
	Links       []stac.Link       `json:"links"`
}

func (s *Server) handleCollections(w http.ResponseWriter, _ *http.Request) {
	list := collectionList{
		Collections: []stac.Collection{},
		Links:       []stac.Link{{Rel: "self", Href: "/collections", Type: "application/json"}},
	}
	for _, model := range s.models {
		for _, theme := range domain.Themes() {
			c, err := s.collections.Collection(model, theme)
			if err != nil {
				s.logger.Error("build collection failed", "model", model, "theme", theme, "error", err)
				writeError(w, http.StatusInternalServerError, "collection unavailable")
				return
			}
			list.Collections = append(list.Collections, c)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	model, theme, ok := domain.ParseCollectionID(id)
	if !ok || !slices.Contains(s.models, model) || !slices.Contains(domain.Themes(), theme) {
		writeError(w, http.StatusNotFound, "collection not found: "+id)
		return
	}

	c, err := s.collections.Collection(model, theme)
	if errors.Is(err, domain.ErrConfigurationGap) {
		s.logger.Warn("collection has no definition", "collection", id, "error", err)
		writeError(w, http.StatusNotFound, "collection not found: "+id)
		return
	}
	if err != nil {
		s.logger.Error("build collection failed", "collection", id, "error", err)
		writeError(w, http.StatusInternalServerError, "collection unavailable")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
