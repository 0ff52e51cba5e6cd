package handler

import (
	"fmt"
	"net/http"
	"time"

	"doc-ingest/internal/domain"
)

// RequestMiddleware logs every request and turns handler panics into 500s.
type RequestMiddleware struct {
	logger domain.Logger
}

// NewRequestMiddleware creates a new request middleware
func NewRequestMiddleware(logger domain.Logger) *RequestMiddleware {
	return &RequestMiddleware{logger: logger}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

// Middleware wraps next with logging and panic recovery
func (m *RequestMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				m.logger.Error("Handler panic", fmt.Errorf("panic: %v", p), "method", r.Method, "path", r.URL.Path)
				// Too late to change the response once headers are out.
				if !rec.wroteHeader {
					writeError(rec, http.StatusInternalServerError, "Internal server error")
				}
			}

			m.logger.Info("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}()

		next.ServeHTTP(rec, r)
	})
}
