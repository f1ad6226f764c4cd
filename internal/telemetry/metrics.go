package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterWeightEntries       prometheus.Counter
	CounterWorkouts            prometheus.Counter
	CounterReports             *prometheus.CounterVec
	CounterReportFailures      *prometheus.CounterVec
	CounterRateLimitedRequests prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistReportGenerationDuration prometheus.Histogram
	HistogramRequestDuration     *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("smartfit", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("smartfit", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterWeightEntries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "weight_entries",
			Help:      "The total number of saved weight entries",
		}),
		CounterWorkouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "workouts",
			Help:      "The total number of logged workout sessions",
		}),
		CounterReports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reports",
			Help:      "The total number of generated coaching reports",
		}, []string{"type"}),
		CounterReportFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "report_failures",
			Help:      "The total number of failed report generations",
		}, []string{"type"}),
		CounterRateLimitedRequests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rate_limited_requests",
			Help:      "The total number of rate limited requests",
		}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of requests served",
		}),
		HistReportGenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "report_generation_duration_seconds",
			Help:      "Duration of a single report generation call in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 40},
		}),
		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
	}
}
