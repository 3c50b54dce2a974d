// Package metrics holds the Prometheus instruments of the weather panel.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weatherpanel"

// Fetch outcomes used as the "outcome" label
const (
	OutcomeSuccess      = "success"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
)

// Metrics holds the counters, histograms and gauges for the device loop.
type Metrics struct {
	FetchRequests *prometheus.CounterVec   // labels: source={forecast,historical}, outcome={success,network_error,parse_error}
	FetchDuration *prometheus.HistogramVec // labels: source
	ButtonEvents  *prometheus.CounterVec   // labels: event
	Transitions   *prometheus.CounterVec   // labels: from, to
	ActiveScreen  *prometheus.GaugeVec     // labels: screen; 1 for the active screen
	CityIndex     prometheus.Gauge
	RemoteClients prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them with reg. A nil reg means a
// fresh private registry, which keeps tests free of "already registered"
// panics.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Forecast and observation requests by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a single fetch including parsing.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"source"}),
		ButtonEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "button_events_total",
			Help:      "Debounced input events by kind.",
		}, []string{"event"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screen_transitions_total",
			Help:      "Screen changes by source and target screen.",
		}, []string{"from", "to"}),
		ActiveScreen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_screen",
			Help:      "1 for the screen currently shown, 0 otherwise.",
		}, []string{"screen"}),
		CityIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "city_index",
			Help:      "Index of the selected city in the catalog.",
		}),
		RemoteClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remote_clients",
			Help:      "Connected remote panel clients.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.ButtonEvents,
		m.Transitions,
		m.ActiveScreen,
		m.CityIndex,
		m.RemoteClients,
	)

	return m
}

// ObserveFetch records one fetch attempt.
func (m *Metrics) ObserveFetch(source, outcome string, seconds float64) {
	m.FetchRequests.WithLabelValues(source, outcome).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(seconds)
}

// ObserveTransition records a screen change and updates the active screen.
func (m *Metrics) ObserveTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
	m.ActiveScreen.WithLabelValues(from).Set(0)
	m.ActiveScreen.WithLabelValues(to).Set(1)
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
