package cart

import (
	"context"
	"sync"
	"time"

	"ostocare-be/internal/logger"
	"ostocare-be/internal/metrics"

	"go.uber.org/zap"
)

type registryEntry struct {
	store       *Store
	lastSeen    time.Time
	units       int
	unsubscribe func()
}

// Registry hands out one Store per session, opening (and rehydrating) it on
// first access. Evicted stores are reopened from storage on the next access.
type Registry struct {
	storage  Storage
	counters *metrics.CartCounters

	mu     sync.Mutex
	stores map[string]*registryEntry
	now    func() time.Time
}

func NewRegistry(storage Storage, counters *metrics.CartCounters) *Registry {
	if counters == nil {
		counters = &metrics.CartCounters{}
	}
	return &Registry{
		storage:  storage,
		counters: counters,
		stores:   make(map[string]*registryEntry),
		now:      time.Now,
	}
}

func (r *Registry) Get(ctx context.Context, session string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.stores[session]; ok {
		e.lastSeen = r.now()
		return e.store
	}

	s := Open(ctx, session, r.storage, r.counters)
	e := &registryEntry{store: s, lastSeen: r.now(), units: s.Snapshot().TotalItemCount}
	e.unsubscribe = s.Subscribe(func(snap Snapshot) {
		r.mu.Lock()
		e.units = snap.TotalItemCount
		r.mu.Unlock()
	})
	r.stores[session] = e
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Units returns the number of units held across all open carts.
func (r *Registry) Units() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.stores {
		n = addSaturating(n, e.units)
	}
	return n
}

func (r *Registry) Counters() *metrics.CartCounters {
	return r.counters
}

// Sweep drops stores idle for longer than maxIdle and returns how many.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for session, e := range r.stores {
		if r.now().Sub(e.lastSeen) > maxIdle {
			e.unsubscribe()
			delete(r.stores, session)
			evicted++
		}
	}
	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				logger.L().Debug("evicted idle cart stores", zap.Int("evicted", n))
			}
		}
	}
}
