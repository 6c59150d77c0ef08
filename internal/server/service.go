package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/common"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/pipeline"
)

// Server is the thin HTTP upload surface in front of the document pipeline.
// It owns no state beyond its wiring; every request is processed in isolation.
type Server struct {
	proc           *pipeline.Processor
	maxUploadBytes int64
	logger         *slog.Logger
}

// New wires the upload surface. A missing text extractor is a configuration
// error and must be caught here, before any document is accepted.
func New(proc *pipeline.Processor, maxUploadBytes int64, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if proc == nil || proc.Extractor == nil {
		return nil, errors.New("server: text extractor is required")
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 64 << 20
	}
	return &Server{proc: proc, maxUploadBytes: maxUploadBytes, logger: logger}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.withRequestID(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withRequestID tags each request with an ID for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := common.WithRequestID(r.Context(), reqID)
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
