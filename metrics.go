package pagecache

import "sync/atomic"

// Stats carries usage counters for a SwapCache, in the spirit of
// segmentio/datastructures/pagecache's Stats and altmount's
// internal/pool/metrics_tracker.go: plain, process-local counters with no
// exporter attached. Nothing in the cache's correctness depends on these
// values; they exist purely for callers who want visibility into hit rate
// and churn.
type Stats struct {
	Lookups   int64
	Hits      int64
	Evictions int64
	Loads     int64
}

// HitRate returns Hits/Lookups as a value in [0, 1], or 0 when there have
// been no lookups yet.
func (s Stats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}

// counters is the mutable, atomic backing store embedded in SwapCache.
type counters struct {
	lookups   atomic.Int64
	hits      atomic.Int64
	evictions atomic.Int64
	loads     atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Lookups:   c.lookups.Load(),
		Hits:      c.hits.Load(),
		Evictions: c.evictions.Load(),
		Loads:     c.loads.Load(),
	}
}
