package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// CartCounters tracks cart store activity across all sessions.
type CartCounters struct {
	Mutations       Counter
	Rejected        Counter
	PersistFailures Counter
	Rehydrated      Counter
}

// CatalogCounters tracks product list loads.
type CatalogCounters struct {
	Loads     Counter
	Failures  Counter
	Discarded Counter
}

// Snapshot is a point-in-time copy suitable for JSON.
type Snapshot struct {
	CartMutations        uint64 `json:"cartMutations"`
	CartRejected         uint64 `json:"cartRejected"`
	CartPersistFailures  uint64 `json:"cartPersistFailures"`
	CartRehydrated       uint64 `json:"cartRehydrated"`
	CatalogLoads         uint64 `json:"catalogLoads"`
	CatalogLoadFailures  uint64 `json:"catalogLoadFailures"`
	CatalogLoadDiscarded uint64 `json:"catalogLoadDiscarded"`
}

func Collect(c *CartCounters, k *CatalogCounters) Snapshot {
	var s Snapshot
	if c != nil {
		s.CartMutations = c.Mutations.Load()
		s.CartRejected = c.Rejected.Load()
		s.CartPersistFailures = c.PersistFailures.Load()
		s.CartRehydrated = c.Rehydrated.Load()
	}
	if k != nil {
		s.CatalogLoads = k.Loads.Load()
		s.CatalogLoadFailures = k.Failures.Load()
		s.CatalogLoadDiscarded = k.Discarded.Load()
	}
	return s
}
