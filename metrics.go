package waygraph

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCommit is called after each committed delta or batch edit.
	// nodes and edges count what the commit added.
	RecordCommit(nodes, edges int, duration time.Duration, err error)

	// RecordQuery is called after each snap resolution. hit is true when the
	// position snapped to an existing node.
	RecordQuery(duration time.Duration, hit bool)

	// RecordDedup is called after each deduplication run.
	RecordDedup(removed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCommit(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(time.Duration, bool)             {}
func (NoopMetricsCollector) RecordDedup(int, time.Duration)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CommitCount      atomic.Int64
	CommitErrors     atomic.Int64
	CommitNodes      atomic.Int64
	CommitEdges      atomic.Int64
	CommitTotalNanos atomic.Int64
	QueryCount       atomic.Int64
	QueryHits        atomic.Int64
	QueryTotalNanos  atomic.Int64
	DedupCount       atomic.Int64
	DedupRemoved     atomic.Int64
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit(nodes, edges int, duration time.Duration, err error) {
	b.CommitCount.Add(1)
	b.CommitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CommitErrors.Add(1)
		return
	}
	b.CommitNodes.Add(int64(nodes))
	b.CommitEdges.Add(int64(edges))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration, hit bool) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if hit {
		b.QueryHits.Add(1)
	}
}

// RecordDedup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDedup(removed int, _ time.Duration) {
	b.DedupCount.Add(1)
	b.DedupRemoved.Add(int64(removed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CommitCount:    b.CommitCount.Load(),
		CommitErrors:   b.CommitErrors.Load(),
		CommitNodes:    b.CommitNodes.Load(),
		CommitEdges:    b.CommitEdges.Load(),
		CommitAvgNanos: avg(b.CommitTotalNanos.Load(), b.CommitCount.Load()),
		QueryCount:     b.QueryCount.Load(),
		QueryHits:      b.QueryHits.Load(),
		QueryAvgNanos:  avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		DedupCount:     b.DedupCount.Load(),
		DedupRemoved:   b.DedupRemoved.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CommitCount    int64
	CommitErrors   int64
	CommitNodes    int64
	CommitEdges    int64
	CommitAvgNanos int64
	QueryCount     int64
	QueryHits      int64
	QueryAvgNanos  int64
	DedupCount     int64
	DedupRemoved   int64
}
