// Package telemetry holds the Prometheus collectors of the dashboard.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the dashboard collectors on their own registry
type Metrics struct {
	registry        *prometheus.Registry
	analyses        *prometheus.CounterVec
	undefinedRatios *prometheus.CounterVec
	profilesLoaded  *prometheus.GaugeVec
	requestDuration *prometheus.HistogramVec
}

// New registers the dashboard collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rm_analyses_total",
			Help: "Number of client analyses computed.",
		}, []string{"category", "formula"}),
		undefinedRatios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rm_undefined_ratio_total",
			Help: "Number of analyses that could not divide by income.",
		}, []string{"formula"}),
		profilesLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rm_profiles_loaded",
			Help: "Number of client profiles loaded at start, by source.",
		}, []string{"source"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rm_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}
	m.registry.MustRegister(m.analyses, m.undefinedRatios, m.profilesLoaded, m.requestDuration)
	return m
}

// RecordAnalysis counts one analysis
func (m *Metrics) RecordAnalysis(category, formula string, unavailable bool) {
	m.analyses.WithLabelValues(category, formula).Inc()
	if unavailable {
		m.undefinedRatios.WithLabelValues(formula).Inc()
	}
}

// SetProfilesLoaded records the size of the profile store
func (m *Metrics) SetProfilesLoaded(source string, count int) {
	m.profilesLoaded.WithLabelValues(source).Set(float64(count))
}

// ObserveRequest records the latency of one HTTP request
func (m *Metrics) ObserveRequest(route, method, code string, d time.Duration) {
	m.requestDuration.WithLabelValues(route, method, code).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
