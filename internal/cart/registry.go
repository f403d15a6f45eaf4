package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PersisterFactory returns the persister that backs the cart with the given id.
type PersisterFactory func(cartID string) Persister

type entry struct {
	store    *Store
	lastUsed atomic.Int64 // unix nanos
}

// Registry keeps one Store per cart id, created on first use. Stores that sit
// idle are evicted by Sweep; their persisted state stays where it is.
type Registry struct {
	newPersister PersisterFactory
	logger       *zap.Logger
	now          func() time.Time

	mu     sync.RWMutex
	stores map[string]*entry
	sfg    singleflight.Group // collapses concurrent first loads of one cart
}

func NewRegistry(newPersister PersisterFactory, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		newPersister: newPersister,
		logger:       logger,
		now:          time.Now,
		stores:       make(map[string]*entry),
	}
}

func (r *Registry) Get(ctx context.Context, cartID string) *Store {
	r.mu.RLock()
	e, ok := r.stores[cartID]
	r.mu.RUnlock()
	if ok {
		e.lastUsed.Store(r.now().UnixNano())
		return e.store
	}

	v, _, _ := r.sfg.Do(cartID, func() (interface{}, error) {
		r.mu.RLock()
		existing, ok := r.stores[cartID]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		var p Persister
		if r.newPersister != nil {
			p = r.newPersister(cartID)
		}
		created := &entry{store: NewStore(ctx, cartID, p, r.logger)}

		r.mu.Lock()
		r.stores[cartID] = created
		r.mu.Unlock()
		return created, nil
	})
	e = v.(*entry)
	e.lastUsed.Store(r.now().UnixNano())
	return e.store
}

// Drop forgets the in-memory store. Persisted state is left alone.
func (r *Registry) Drop(cartID string) {
	r.mu.Lock()
	delete(r.stores, cartID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}

// Sweep evicts stores not used for longer than idle and returns their ids.
// Stores with live subscribers are kept.
func (r *Registry) Sweep(idle time.Duration) []string {
	cutoff := r.now().Add(-idle).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, e := range r.stores {
		if e.lastUsed.Load() > cutoff || e.store.Subscribers() > 0 {
			continue
		}
		delete(r.stores, id)
		evicted = append(evicted, id)
	}
	return evicted
}

// Run sweeps every interval until ctx is done. onEvict, when set, receives
// the ids of each non-empty sweep.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration, onEvict func(cartIDs ...string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("cart sweeper started",
		zap.Duration("interval", interval),
		zap.Duration("idle", idle),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("cart sweeper stopped")
			return
		case <-ticker.C:
			evicted := r.Sweep(idle)
			if len(evicted) == 0 {
				continue
			}
			if onEvict != nil {
				onEvict(evicted...)
			}
			r.logger.Debug("evicted idle carts",
				zap.Int("count", len(evicted)),
				zap.Int("remaining", r.Len()),
			)
		}
	}
}
