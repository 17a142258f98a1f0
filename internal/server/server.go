// Package server exposes a model behind the JSON autocomplete API the editor
// talks to.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinylittleshell/ghosttext/internal/autocomplete"
)

const (
	maxRequestBytes = 1 << 20
	requestTimeout  = 60 * time.Second
)

// Server serves POST /autocomplete and GET /healthz.
type Server struct {
	router    *chi.Mux
	generator Generator
	logger    *zap.Logger
}

// New creates a server backed by generator.
func New(generator Generator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:    NewRouter(logger),
		generator: generator,
		logger:    logger,
	}
	s.router.Post("/autocomplete", s.handleAutocomplete)
	s.router.Get("/healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewRouter creates a chi router with request IDs, panic recovery, request
// logging and a per-request timeout.
func NewRouter(logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.RequestSize(maxRequestBytes))
	r.Use(Recoverer(logger))
	r.Use(RequestLogger(logger))
	return r
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	var req autocomplete.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid payload", zap.Error(err))
		WriteJSON(w, http.StatusBadRequest, autocomplete.Response{})
		return
	}

	completion, err := s.generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		// Generation failures are reported as an empty suggestion.
		s.logger.Warn("generation failed",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		completion = ""
	}

	WriteJSON(w, http.StatusOK, autocomplete.Response{Completion: completion})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Warn("healthz write failed", zap.Error(err))
	}
}

// WriteJSON writes a JSON response with proper headers.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RequestLogger logs each request through zap.
func RequestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// Recoverer turns a handler panic into a 500 and logs it.
func Recoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.String("request_id", middleware.GetReqID(r.Context())),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
