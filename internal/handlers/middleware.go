package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/apex/log"

	"tinyboards/internal/metrics"
	"tinyboards/pkg/utils"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "method not allowed"})
}

// RequestLogger tags each request with an id and logs method, path, status, bytes and
// duration once it is served.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = utils.RandomHex(8)
		}
		w.Header().Set("X-Request-ID", reqID)

		rec := &metrics.StatusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"id":     reqID,
			"method": r.Method,
			"path":   r.URL.Path,
			"status": rec.Status,
			"bytes":  rec.Bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

// Wrap applies the request logger and Prometheus middleware around h.
func Wrap(h http.Handler) http.Handler {
	return RequestLogger(metrics.Middleware(h))
}
