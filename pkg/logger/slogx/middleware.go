package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware logs every request with its method, path, status and duration.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := Default()

		method := slog.String("method", r.Method)
		path := slog.String("path", r.URL.Path)
		logger.Info(r.Context(), "start handling request", method, path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		after := time.Since(start)

		durAttr := slog.Duration("duration", after)
		statusAttr := slog.Int("status", sw.status)
		if sw.status >= http.StatusInternalServerError {
			logger.Error(r.Context(), "finish with error", method, path, statusAttr, durAttr)
		} else {
			logger.Info(r.Context(), "finish success", method, path, statusAttr, durAttr)
		}
	})
}
