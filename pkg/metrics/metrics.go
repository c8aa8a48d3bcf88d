// Package metrics provides Prometheus metrics for the B+ tree.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pkgRuntime "github.com/huynhanx03/go-bptree/pkg/runtime"
	"github.com/huynhanx03/go-bptree/pkg/settings"
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultExists   = "exists"
	ResultNotFound = "not_found"
	ResultOOM      = "out_of_memory"
	ResultInvalid  = "invalid"
)

// Split kind labels.
const (
	SplitLeaf  = "leaf"
	SplitInner = "inner"
	SplitRoot  = "root"
)

// Tree holds the collectors of one tree. A nil *Tree records nothing.
type Tree struct {
	InsertsTotal   *prometheus.CounterVec
	InsertDuration prometheus.Histogram
	SearchesTotal  *prometheus.CounterVec
	SplitsTotal    *prometheus.CounterVec
	RetriesTotal   prometheus.Counter
	RootLevel      prometheus.Gauge
}

// NewTree creates the collectors and registers them with reg.
// It returns nil when metrics are disabled.
func NewTree(reg prometheus.Registerer, cfg *settings.Metrics) *Tree {
	if !cfg.Enabled {
		return nil
	}
	f := promauto.With(reg)

	return &Tree{
		InsertsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "inserts_total",
				Help:      "Total number of insert calls by result",
			},
			[]string{"result"},
		),
		InsertDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "insert_duration_seconds",
				Help:      "Duration of insert calls in seconds",
				Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005, .01},
			},
		),
		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "searches_total",
				Help:      "Total number of search calls by result",
			},
			[]string{"result"},
		),
		SplitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "splits_total",
				Help:      "Total number of committed node splits by kind",
			},
			[]string{"kind"},
		),
		RetriesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "insert_retries_total",
				Help:      "Inserts restarted because the traced path changed under them",
			},
		),
		RootLevel: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "root_level",
				Help:      "Arena level of the current root",
			},
		),
	}
}

// RecordInsert records one insert call started at start, a runtime.NanoTime reading.
func (m *Tree) RecordInsert(result string, start int64) {
	if m == nil {
		return
	}
	m.InsertsTotal.WithLabelValues(result).Inc()
	m.InsertDuration.Observe(pkgRuntime.SinceSeconds(start))
}

func (m *Tree) RecordSearch(result string) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(result).Inc()
}

func (m *Tree) RecordSplit(kind string) {
	if m == nil {
		return
	}
	m.SplitsTotal.WithLabelValues(kind).Inc()
}

func (m *Tree) RecordRetry() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

func (m *Tree) SetRootLevel(level int) {
	if m == nil {
		return
	}
	m.RootLevel.Set(float64(level))
}
