package handler

import (
	"net/http"
	"time"

	"quotation-merger/internal/domain"
)

// multipartOverhead covers boundaries and part headers on top of the raw files.
const multipartOverhead = 10 << 20

// RequestLogger logs one line per request
type RequestLogger struct {
	logger domain.Logger
}

// NewRequestLogger creates a new request logging middleware
func NewRequestLogger(logger domain.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// Middleware records method, path, status and duration of each request
func (m *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		}
		if rec.status >= http.StatusInternalServerError {
			m.logger.Warn("Request failed", fields...)
			return
		}
		m.logger.Info("Request handled", fields...)
	})
}

// LimitBody caps the request body at four inputs of maxFileSize plus form overhead.
func LimitBody(maxFileSize int64) func(http.Handler) http.Handler {
	limit := 4*maxFileSize + multipartOverhead
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
