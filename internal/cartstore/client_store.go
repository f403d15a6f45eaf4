package cartstore

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"go.uber.org/zap"
)

const ioTimeout = 2 * time.Second

// ClientStore persists one cart under a fixed key. Failures never reach the
// caller: Save logs and drops the write, Load falls back to an empty cart.
type ClientStore struct {
	kv     KV
	key    string
	logger *zap.Logger
}

var _ cart.Persister = (*ClientStore)(nil)

func NewClientStore(kv KV, key string, logger *zap.Logger) *ClientStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientStore{kv: kv, key: key, logger: logger}
}

// Factory adapts a KV to cart.Registry.
func Factory(kv KV, logger *zap.Logger) cart.PersisterFactory {
	return func(cartID string) cart.Persister {
		return NewClientStore(kv, cartID, logger)
	}
}

func (s *ClientStore) Save(ctx context.Context, lines []domain.CartLine) {
	data, err := cart.Encode(lines)
	if err != nil {
		s.logger.Error("encode cart failed", zap.String("cart_id", s.key), zap.Error(err))
		return
	}

	// the write outlives a cancelled request
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ioTimeout)
	defer cancel()

	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.logger.Warn("save cart failed", zap.String("cart_id", s.key), zap.Error(err))
	}
}

func (s *ClientStore) Load(ctx context.Context) []domain.CartLine {
	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()

	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("load cart failed", zap.String("cart_id", s.key), zap.Error(err))
		}
		return []domain.CartLine{}
	}

	lines, err := cart.Decode(data)
	if err != nil {
		s.logger.Warn("discarding malformed cart", zap.String("cart_id", s.key), zap.Error(err))
		return []domain.CartLine{}
	}
	return lines
}

