package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// feed poller.
type Metrics struct {
	PollsTotal      prometheus.Counter
	PollErrors      prometheus.Counter
	FetchDuration   prometheus.Histogram
	IncidentsInFeed prometheus.Histogram
	ActiveEntities  prometheus.Gauge
	PollerRunning   prometheus.Gauge
	LastPollSuccess prometheus.Gauge

	EntityEvents  *prometheus.CounterVec // label: type={add,update,remove}
	PublishErrors prometheus.Counter
}

// NewMetrics creates and registers all poller metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PollsTotal,
		m.PollErrors,
		m.FetchDuration,
		m.IncidentsInFeed,
		m.ActiveEntities,
		m.PollerRunning,
		m.LastPollSuccess,
		m.EntityEvents,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vicemergency",
			Name:      "polls_total",
			Help:      "Total feed poll attempts.",
		}),
		PollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vicemergency",
			Name:      "poll_errors_total",
			Help:      "Feed polls that failed to fetch or parse.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vicemergency",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of one feed fetch and parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		IncidentsInFeed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vicemergency",
			Name:      "incidents_in_feed",
			Help:      "Incidents per fetched feed document, before filtering.",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		}),
		ActiveEntities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vicemergency",
			Name:      "active_entities",
			Help:      "Geolocation entities currently tracked after filtering.",
		}),
		PollerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vicemergency",
			Name:      "poller_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
		LastPollSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vicemergency",
			Name:      "last_poll_success_timestamp_seconds",
			Help:      "Unix time of the last successful poll.",
		}),
		EntityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vicemergency",
			Name:      "entity_events_total",
			Help:      "Entity lifecycle events by type.",
		}, []string{"type"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vicemergency",
			Name:      "publish_errors_total",
			Help:      "Failed attempts to publish entity events.",
		}),
	}
}
