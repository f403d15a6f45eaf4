package cart

import (
	"context"
	"sync"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxQuantity caps the units of a single line.
const MaxQuantity = 99

// Persister saves and loads a cart's lines. Save must not fail the caller and
// Load returns an empty slice when nothing usable is stored.
type Persister interface {
	Save(ctx context.Context, lines []domain.CartLine)
	Load(ctx context.Context) []domain.CartLine
}

// Snapshot is an immutable copy of the cart handed to subscribers.
type Snapshot struct {
	CartID string            `json:"cart_id"`
	Lines  []domain.CartLine `json:"lines"`
	Total  decimal.Decimal   `json:"total"`
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store holds one cart. Mutations are serialized; each effective mutation is
// written through to the persister and then delivered to the subscribers,
// in the order the mutations were issued. Subscribers run under the store
// lock and must not call back into the store.
type Store struct {
	id        string
	persister Persister
	logger    *zap.Logger

	mu      sync.Mutex
	lines   []domain.CartLine
	subs    []subscriber
	nextSub int
}

func NewStore(ctx context.Context, id string, persister Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		id:        id,
		persister: persister,
		logger:    logger,
	}
	if persister != nil {
		s.lines = persister.Load(ctx)
	}
	if s.lines == nil {
		s.lines = []domain.CartLine{}
	}
	return s
}

func (s *Store) ID() string {
	return s.id
}

// Add puts quantity units of product into the cart. An existing line for the
// product is incremented and keeps its position. A line never exceeds
// MaxQuantity; an add that would push it past is rejected whole.
func (s *Store) Add(ctx context.Context, product domain.Product, quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		if s.lines[i].Quantity > MaxQuantity-quantity {
			return ErrInvalidQuantity
		}
		s.lines[i].Quantity += quantity
	} else {
		s.lines = append(s.lines, domain.LineFromProduct(product, quantity))
	}
	s.commit(ctx)
	return nil
}

// UpdateQuantity sets the quantity of a line, removing it when quantity <= 0.
// Unknown products are ignored. Quantities above MaxQuantity are rejected.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity > MaxQuantity {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	} else {
		s.lines[i].Quantity = quantity
	}
	s.commit(ctx)
	return nil
}

func (s *Store) Remove(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.commit(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []domain.CartLine{}
	s.commit(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

// Total is recomputed on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.lines)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Subscribe registers fn for every future mutation. The returned func removes
// the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribeLocked(fn)
}

// Watch is Subscribe with fn first called on the current state. Both happen
// under one lock, so fn sees every state from then on exactly once.
func (s *Store) Watch(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snapshot())
	return s.subscribeLocked(fn)
}

func (s *Store) subscribeLocked(fn func(Snapshot)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context) {
	if s.persister != nil {
		s.persister.Save(ctx, copyLines(s.lines))
	}

	snap := s.snapshot()
	for _, sub := range s.subs {
		sub.fn(snap)
	}
	s.logger.Debug("cart updated",
		zap.String("cart_id", s.id),
		zap.Int("lines", len(snap.Lines)),
		zap.String("total", snap.Total.StringFixed(2)),
	)
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		CartID: s.id,
		Lines:  copyLines(s.lines),
		Total:  total(s.lines),
	}
}

func (s *Store) indexOf(productID int64) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func total(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
