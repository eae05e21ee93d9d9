package catalog

import (
	"context"
	"errors"
	"sync"

	"ostocare-be/internal/logger"
	"ostocare-be/internal/metrics"
	"ostocare-be/internal/product"

	"go.uber.org/zap"
)

type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// ErrStaleLoad is returned by a Load whose result was discarded because a
// newer Load started before it finished.
var ErrStaleLoad = errors.New("catalog load superseded")

// View is one catalog page lifecycle: a one-shot product fetch feeding an
// Engine. Fetch failures leave the view in StateFailed until Retry; there is
// no automatic retry.
type View struct {
	provider product.Provider
	counters *metrics.CatalogCounters

	mu     sync.Mutex
	engine *Engine
	state  LoadState
	err    error
	gen    uint64
}

func NewView(provider product.Provider, cart QuantityReader, counters *metrics.CatalogCounters) *View {
	if counters == nil {
		counters = &metrics.CatalogCounters{}
	}
	return &View{
		provider: provider,
		counters: counters,
		engine:   NewEngine(cart),
		state:    StateIdle,
	}
}

// Load fetches the product list. If ctx is cancelled (the consumer went away)
// or a newer Load started, the result is dropped and the view is not updated.
func (v *View) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", "Load"),
	)

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state = StateLoading
	v.err = nil
	v.mu.Unlock()

	timer := metrics.StartTimer()
	v.counters.Loads.Inc()
	products, err := v.provider.FetchAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		v.counters.Discarded.Inc()
		if gen == v.gen {
			v.state = StateIdle
		}
		log.Debug("load result discarded, consumer gone", zap.Error(ctxErr))
		return ctxErr
	}
	if gen != v.gen {
		v.counters.Discarded.Inc()
		log.Debug("load result discarded, superseded")
		return ErrStaleLoad
	}

	if err != nil {
		v.counters.Failures.Inc()
		v.state = StateFailed
		v.err = err
		log.Warn("catalog load failed",
			zap.Error(err),
			zap.Duration("duration", timer.Duration()),
		)
		return err
	}

	v.engine.SetProducts(products)
	v.state = StateReady
	log.Debug("catalog loaded",
		zap.Int("products", len(products)),
		zap.Duration("duration", timer.Duration()),
	)
	return nil
}

// Retry re-fetches after a failure. It is a no-op once the view is ready.
func (v *View) Retry(ctx context.Context) error {
	if v.State() == StateReady {
		return nil
	}
	return v.Load(ctx)
}

func (v *View) State() LoadState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err returns the last fetch failure while the view is in StateFailed.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) SetFilters(patch FilterPatch) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.engine.SetFilters(patch)
}

func (v *View) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.engine.ClearFilters()
}

func (v *View) Filters() FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Filters()
}

func (v *View) Visible() []product.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Visible()
}

func (v *View) Items() []ProductView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Items()
}

// Total is the size of the unfiltered catalog.
func (v *View) Total() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.engine.products)
}
