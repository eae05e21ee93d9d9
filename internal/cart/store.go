package cart

import (
	"context"
	"sync"

	"ostocare-be/internal/logger"
	"ostocare-be/internal/metrics"
	"ostocare-be/internal/product"

	"go.uber.org/zap"
)

// Store is the single source of truth for one session's cart. Every
// successful mutation is applied in memory, written through to Storage, then
// announced to subscribers. Storage failures are logged and counted but never
// returned: the in-memory cart stays authoritative for the session.
//
// Subscribers run after the store lock is released and may read the store,
// but must not mutate it synchronously.
type Store struct {
	session  string
	key      string
	storage  Storage
	counters *metrics.CartCounters

	mu         sync.Mutex
	cart       *Cart
	persistErr error

	notifyMu sync.Mutex
	subMu    sync.Mutex
	subs     []subscriber // removal reallocates; commit ranges over a header copy
	nextSub  int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Open creates the store for session and rehydrates it from storage. An
// unreadable slot yields an empty cart.
func Open(ctx context.Context, session string, storage Storage, counters *metrics.CartCounters) *Store {
	if counters == nil {
		counters = &metrics.CartCounters{}
	}
	s := &Store{
		session:  session,
		key:      SlotKey(session),
		storage:  storage,
		counters: counters,
		cart:     New(),
	}
	s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	if s.storage == nil {
		return
	}

	log := s.log(ctx, "rehydrate")

	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		log.Warn("cart slot unavailable, starting empty", zap.Error(err))
		return
	}

	items, dropped, err := Decode(data)
	if err != nil {
		log.Warn("cart slot unreadable, starting empty", zap.Error(err))
		return
	}
	if dropped > 0 {
		log.Warn("dropped invalid persisted line items", zap.Int("dropped", dropped))
	}

	s.cart.Restore(items)
	if s.cart.Len() > 0 {
		s.counters.Rehydrated.Inc()
		log.Debug("cart rehydrated", zap.Int("lines", s.cart.Len()))
	}
}

func (s *Store) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "cart_store"),
		zap.String("method", method),
		zap.String("session", s.session),
	)
}

func (s *Store) Session() string {
	return s.session
}

// AddItem adds quantity of p under variant. See Cart.Add for the rules.
func (s *Store) AddItem(ctx context.Context, p product.Product, quantity int, variant string) (LineItem, error) {
	s.mu.Lock()
	item, err := s.cart.Add(p, quantity, variant)
	if err != nil {
		s.mu.Unlock()
		s.reject(ctx, "AddItem", err, zap.String("product_id", p.ID), zap.Int("quantity", quantity))
		return LineItem{}, err
	}
	s.commit(ctx, "AddItem")
	return item, nil
}

// SetQuantity sets a line to exactly quantity; quantity <= 0 removes it.
func (s *Store) SetQuantity(ctx context.Context, productID, variant string, quantity int) error {
	s.mu.Lock()
	changed, err := s.cart.SetQuantity(productID, variant, quantity)
	if err != nil {
		s.mu.Unlock()
		s.reject(ctx, "SetQuantity", err, zap.String("product_id", productID), zap.Int("quantity", quantity))
		return err
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}
	s.commit(ctx, "SetQuantity")
	return nil
}

// RemoveItem removes a line. Removing an absent line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID, variant string) {
	s.mu.Lock()
	if !s.cart.Remove(productID, variant) {
		s.mu.Unlock()
		return
	}
	s.commit(ctx, "RemoveItem")
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	s.commit(ctx, "Clear")
}

// Quantity returns the quantity of one line, or 0.
func (s *Store) Quantity(productID, variant string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Quantity(productID, variant)
}

// ProductQuantity implements catalog.QuantityReader.
func (s *Store) ProductQuantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ProductQuantity(productID)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

// LastPersistError is the error of the most recent write, or nil if it
// succeeded.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Subscribe registers fn to receive a snapshot after every mutation.
// Subscribers are called in the order they subscribed.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// commit persists and notifies. It must be called with s.mu held and
// releases it. notifyMu is taken before mu is dropped so subscribers see
// snapshots in mutation order.
func (s *Store) commit(ctx context.Context, method string) {
	s.counters.Mutations.Inc()
	snap := s.cart.Snapshot()
	s.persist(ctx, method, snap.Items)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.subMu.Lock()
	subs := s.subs
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func (s *Store) persist(ctx context.Context, method string, items []LineItem) {
	if s.storage == nil {
		return
	}

	data, err := Encode(items)
	if err == nil {
		// The write outlives a caller that hangs up mid-request.
		err = s.storage.Save(context.WithoutCancel(ctx), s.key, data)
	}
	s.persistErr = err
	if err != nil {
		s.counters.PersistFailures.Inc()
		s.log(ctx, method).Warn("cart persistence failed, keeping in-memory state", zap.Error(err))
	}
}

func (s *Store) reject(ctx context.Context, method string, err error, fields ...zap.Field) {
	s.counters.Rejected.Inc()
	s.log(ctx, method).Info("cart mutation rejected", append(fields, zap.Error(err))...)
}
