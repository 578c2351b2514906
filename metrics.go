package goSession

import (
	"sync/atomic"
)

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricSessionStarted counts sessions created.
	MetricSessionStarted MetricID = iota
	// MetricSessionRefreshed counts successful loads (each load re-persists
	// the record with a refreshed expiry).
	MetricSessionRefreshed
	// MetricSessionDestroyed counts single-session logouts.
	MetricSessionDestroyed
	// MetricSessionsRevoked counts tokens destroyed by bulk revocation.
	MetricSessionsRevoked
	// MetricRevokeAll counts bulk revocation operations.
	MetricRevokeAll
	// MetricAuthSuccess counts authentications that cleared every gate.
	MetricAuthSuccess
	// MetricAuthMissingToken counts requests presenting no token.
	MetricAuthMissingToken
	// MetricAuthRejected counts tokens that resolved to no live session.
	MetricAuthRejected
	// MetricAuthLowScore counts live sessions rejected by trust scoring.
	MetricAuthLowScore
	// MetricAuthForbidden counts valid sessions lacking a required
	// permission.
	MetricAuthForbidden
	// MetricStorageFailure counts store write/delete failures.
	MetricStorageFailure
	metricIDCount
)

const (
	scoreBucketCount = TrustFactorCount + 1
	cacheLineSize    = 64
)

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the engine's lock-free counter set plus a trust-score
// distribution histogram (one bucket per possible score, 0 through 5).
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
	scores   [scoreBucketCount]uint64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Counters    map[MetricID]uint64
	TrustScores [scoreBucketCount]uint64
}

// NewMetrics creates a Metrics set; when disabled every operation is a
// no-op.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether the counter set records anything.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments a counter by one.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add increments a counter by n.
func (m *Metrics) Add(id MetricID, n uint64) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, n)
}

// ObserveScore records one trust-score observation.
func (m *Metrics) ObserveScore(score int) {
	if m == nil || !m.enabled || score < 0 || score >= scoreBucketCount {
		return
	}
	atomic.AddUint64(&m.scores[score], 1)
}

// Value returns a single counter's current value.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and the score histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricIDCount),
	}
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snapshot.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	for i := range m.scores {
		snapshot.TrustScores[i] = atomic.LoadUint64(&m.scores[i])
	}
	return snapshot
}
