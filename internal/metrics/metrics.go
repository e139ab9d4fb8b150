package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	HTTPInFlight        prometheus.Gauge
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	Signups             *prometheus.CounterVec
	Signins             *prometheus.CounterVec
	AggregationDuration *prometheus.HistogramVec
	AggregatedMovies    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "movie_catalog_http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "movie_catalog_http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "movie_catalog_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Signups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "movie_catalog_signups_total",
			Help: "Signup attempts by result.",
		}, []string{"result"}),
		Signins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "movie_catalog_signins_total",
			Help: "Signin attempts by result.",
		}, []string{"result"}),
		AggregationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "movie_catalog_aggregation_duration_seconds",
			Help:    "Time spent joining movies to reviews, by scope.",
			Buckets: prometheus.DefBuckets,
		}, []string{"scope"}),
		AggregatedMovies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "movie_catalog_aggregated_movies_total",
			Help: "Movies emitted by the aggregation engine, by scope.",
		}, []string{"scope"}),
	}
}

func (m *Metrics) ObserveSignup(result string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSignin(result string) {
	if m == nil {
		return
	}
	m.Signins.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAggregation(scope string, movies int, took time.Duration) {
	if m == nil {
		return
	}
	m.AggregationDuration.WithLabelValues(scope).Observe(took.Seconds())
	m.AggregatedMovies.WithLabelValues(scope).Add(float64(movies))
}
