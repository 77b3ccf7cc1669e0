// Package api implements the HTTP API server.
//
// The server exposes draw creation, draw history, re-rendering of stored
// draws, and share code operations. It shares the pipeline Runner with the
// CLI, so both entry points produce identical artifacts for identical
// inputs.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amidalab/amidakuji/pkg/history"
	"github.com/amidalab/amidakuji/pkg/pipeline"
)

// Server handles API requests.
type Server struct {
	runner       *pipeline.Runner
	store        history.Store
	logger       *log.Logger
	shareBaseURL string
}

// Config configures the API server.
type Config struct {
	Runner *pipeline.Runner
	Store  history.Store
	Logger *log.Logger

	// ShareBaseURL is the base URL embedded in generated share links.
	ShareBaseURL string
}

// New creates an API server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:       cfg.Runner,
		store:        cfg.Store,
		logger:       logger,
		shareBaseURL: cfg.ShareBaseURL,
	}
}

// Routes builds the router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/draws", func(r chi.Router) {
			r.Post("/", s.handleCreateDraw)
			r.Get("/", s.handleListDraws)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDraw)
				r.Delete("/", s.handleDeleteDraw)
				r.Get("/render", s.handleRenderDraw)
			})
		})

		r.Route("/share", func(r chi.Router) {
			r.Post("/", s.handleCreateShare)
			r.Get("/{code}", s.handleDecodeShare)
			r.Get("/{code}/qr", s.handleShareQR)
		})
	})

	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
