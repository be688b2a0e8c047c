package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "loadprofile"
	metricsSubsystem = "gateway"

	routeOther = "other"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by the gateway, by named route.",
		},
		[]string{"route", "method", "status"},
	)
	requestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "upstream_requests_total",
			Help:      "ProfileService calls made by the gateway, by gRPC status code.",
		},
		[]string{"method", "code"},
	)
	upstreamDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "upstream_duration_seconds",
			Help:      "ProfileService call latency in seconds.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	chartRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "chart_renders_total",
			Help:      "Chart artifacts rendered, by format and result.",
		},
		[]string{"format", "result"},
	)
	profilePoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "profile_points",
			Help:      "Distinct times of day per returned profile.",
			// 1440 is one point per minute, 86400 one per second.
			Buckets: []float64{1, 24, 48, 96, 288, 1440, 86400},
		},
	)
)

func observeHTTPRequest(route, method string, status int, dur time.Duration) {
	requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	requestDurationSeconds.WithLabelValues(route, method).Observe(dur.Seconds())
}

func observeUpstream(method, code string, dur time.Duration) {
	upstreamRequestsTotal.WithLabelValues(method, code).Inc()
	upstreamDurationSeconds.WithLabelValues(method).Observe(dur.Seconds())
}

func observeChartRender(format string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	chartRendersTotal.WithLabelValues(format, result).Inc()
}

// routeLabeler records the matched route name for the request metrics.
func routeLabeler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec, ok := w.(*statusRecorder); ok {
			if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
				rec.route = route.GetName()
			}
		}
		next.ServeHTTP(w, r)
	})
}
