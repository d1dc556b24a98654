package migration

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects counters of migration operations.
type Metrics struct {
	steps          *prometheus.CounterVec
	decodeFailures *prometheus.CounterVec
}

// NewMetrics returns metrics registered with given registerer. It panics if
// the metrics are already registered.
func NewMetrics(r prometheus.Registerer) *Metrics {
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "versioned",
			Subsystem: "migration",
			Name:      "steps_total",
			Help:      "Number of single version migration steps applied, by data family and target version.",
		}, []string{"type", "version"}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "versioned",
			Name:      "decode_failures_total",
			Help:      "Number of records that could not be decoded and migrated, by data family.",
		}, []string{"type"}),
	}
	r.MustRegister(m.steps, m.decodeFailures)
	return m
}

func (m *Metrics) observeStep(typeName string, version uint32) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(typeName, strconv.FormatUint(uint64(version), 10)).Inc()
}

func (m *Metrics) observeDecodeFailure(typeName string) {
	if m == nil {
		return
	}
	m.decodeFailures.WithLabelValues(typeName).Inc()
}
