// Package api exposes the HTTP interface for the crawl service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novelhub/tadu-crawler/internal/catalog"
	"github.com/novelhub/tadu-crawler/internal/metrics"
)

const (
	defaultPage        = 1
	defaultNumChapters = 5

	livenessMessage = "tadu-crawler is up\n"
)

// BookCrawler runs one crawl request. *catalog.Crawler satisfies it.
type BookCrawler interface {
	Crawl(ctx context.Context, page, numChapters int) ([]catalog.Book, error)
}

// Server wires HTTP handlers to the crawl pipeline.
type Server struct {
	router  chi.Router
	crawler BookCrawler
	logger  *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(crawler BookCrawler, logger *zap.Logger) *Server {
	s := &Server{
		crawler: crawler,
		logger:  logger,
	}
	metrics.Init()
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(recoverMiddleware(logger))

	r.Get("/", s.root)
	r.Get("/healthz", s.healthz)
	r.Get("/crawl", s.crawl)
	r.Handle("/metrics", metrics.Handler())

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(livenessMessage)); err != nil {
		s.logger.Error("liveness write failed", zap.Error(err))
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) crawl(w http.ResponseWriter, r *http.Request) {
	page := intQueryParam(r, "page", defaultPage)
	numChapters := intQueryParam(r, "num_chapters", defaultNumChapters)

	books, err := s.crawler.Crawl(r.Context(), page, numChapters)
	switch {
	case errors.Is(err, catalog.ErrNoBooks):
		s.writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("crawl request failed",
			zap.Int("page", page),
			zap.Int("num_chapters", numChapters),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	default:
		s.writeJSON(w, http.StatusOK, crawlResponse{Results: books})
	}
}

type crawlResponse struct {
	Results []catalog.Book `json:"results"`
}

// intQueryParam reads a non-negative integer query value, substituting def
// for missing, malformed, or negative input.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
