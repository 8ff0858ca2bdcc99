package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tinyboards"

var (
	// Placements counts queen placement attempts by outcome.
	Placements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queen_placements_total",
		Help:      "Queen placement attempts by outcome.",
	}, []string{"outcome"})

	// Moves counts chess sandbox clicks by result.
	Moves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chess_clicks_total",
		Help:      "Chess sandbox clicks by result.",
	}, []string{"result"})

	// Undos counts undo requests that reverted a move.
	Undos = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chess_undos_total",
		Help:      "Undo requests that reverted a move.",
	})

	// Sessions tracks live sessions per game kind.
	Sessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions",
		Help:      "Live sessions per game kind.",
	}, []string{"kind"})

	reqDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method", "status"})

	reqInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_inflight",
		Help:      "HTTP requests being served.",
	})

	reqErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_request_errors_total",
		Help:      "HTTP requests that ended with a 4xx or 5xx status.",
	}, []string{"method", "status"})
)

// StatusRecorder captures the status code and byte count of a response.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
	Bytes  int
}

func (w *StatusRecorder) WriteHeader(code int) {
	w.Status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *StatusRecorder) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.Bytes += n
	return n, err
}

// Flush passes through so SSE keeps streaming behind the middleware.
func (w *StatusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware observes request duration, inflight requests and error statuses.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqInflight.Inc()
		defer reqInflight.Dec()

		rec, ok := w.(*StatusRecorder)
		if !ok {
			rec = &StatusRecorder{ResponseWriter: w}
		}
		next.ServeHTTP(rec, r)

		if rec.Status == 0 {
			rec.Status = http.StatusOK
		}
		status := strconv.Itoa(rec.Status)
		reqDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
		if rec.Status >= 400 {
			reqErrors.WithLabelValues(r.Method, status).Inc()
		}
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
