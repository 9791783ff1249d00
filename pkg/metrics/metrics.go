// Package metrics records Prometheus metrics for a sync run. The job is a
// short-lived batch, so metrics are written to a node_exporter textfile at
// the end of the run instead of being served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agentstation/gamelist/pkg/errors"
)

// Manager owns a private registry and the run metrics registered on it.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  *prometheus.Registry

	catalogLookups  *prometheus.CounterVec
	catalogErrors   *prometheus.CounterVec
	catalogLatency  *prometheus.HistogramVec
	rowsResolved    *prometheus.CounterVec
	updatesStaged   prometheus.Counter
	updatesWritten  prometheus.Counter
	bucketSize      *prometheus.GaugeVec
	imagesFetched   *prometheus.CounterVec
	runDuration     prometheus.Gauge
	lastSuccessUnix prometheus.Gauge
	runFailures     prometheus.Counter
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets custom buckets for latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "gamelist",
		subsystem: "sync",
		buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.catalogLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_lookups_total",
		Help:      "Catalog calls issued, by operation",
	}, []string{"operation"})

	m.catalogErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_errors_total",
		Help:      "Catalog calls that failed, by operation",
	}, []string{"operation"})

	m.catalogLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_lookup_duration_seconds",
		Help:      "Catalog call latency including rate limit waits",
		Buckets:   m.buckets,
	}, []string{"operation"})

	m.rowsResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_resolved_total",
		Help:      "Rows linked to the catalog, by resolution method",
	}, []string{"method"})

	m.updatesStaged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "updates_staged_total",
		Help:      "Range updates produced by reconciliation",
	})

	m.updatesWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "updates_written_total",
		Help:      "Range updates committed to the spreadsheet",
	})

	m.bucketSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bucket_games",
		Help:      "Games per presentation bucket after the last run",
	}, []string{"bucket"})

	m.imagesFetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cover_images_total",
		Help:      "Cover image fetches, by outcome (downloaded, cached, failed)",
	}, []string{"outcome"})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	})

	m.lastSuccessUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run",
	})

	m.runFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_failures_total",
		Help:      "Runs that ended in an error",
	})
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLookup records one catalog call.
func (m *Manager) RecordLookup(operation string, d time.Duration, err error) {
	m.catalogLookups.WithLabelValues(operation).Inc()
	m.catalogLatency.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.catalogErrors.WithLabelValues(operation).Inc()
	}
}

// RecordResolved records one resolved row.
func (m *Manager) RecordResolved(method string) {
	m.rowsResolved.WithLabelValues(method).Inc()
}

// RecordUpdates records staged and committed update counts.
func (m *Manager) RecordUpdates(staged, written int) {
	m.updatesStaged.Add(float64(staged))
	m.updatesWritten.Add(float64(written))
}

// SetBucketSize records the size of a bucket.
func (m *Manager) SetBucketSize(bucket string, n int) {
	m.bucketSize.WithLabelValues(bucket).Set(float64(n))
}

// RecordImage records a cover fetch outcome.
func (m *Manager) RecordImage(outcome string) {
	m.imagesFetched.WithLabelValues(outcome).Inc()
}

// RecordRun records the end of a run.
func (m *Manager) RecordRun(d time.Duration, end time.Time, err error) {
	m.runDuration.Set(d.Seconds())
	if err != nil {
		m.runFailures.Inc()
		return
	}
	m.lastSuccessUnix.Set(float64(end.Unix()))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The write is atomic.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
