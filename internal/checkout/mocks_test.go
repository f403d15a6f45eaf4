package checkout

import (
	"context"
	"sync"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type MockOrderWriter struct {
	m      sync.Mutex
	orders []*domain.Order
	err    error
	nextID int64
}

func (w *MockOrderWriter) CreateOrder(_ context.Context, order *domain.Order) error {
	w.m.Lock()
	defer w.m.Unlock()
	if w.err != nil {
		return w.err
	}
	w.nextID++
	order.ID = w.nextID
	w.orders = append(w.orders, order)
	return nil
}

func (w *MockOrderWriter) count() int {
	w.m.Lock()
	defer w.m.Unlock()
	return len(w.orders)
}

type MockGateway struct {
	m       sync.Mutex
	result  PaymentResult
	err     error
	release chan struct{}
	started chan struct{}
	charged []decimal.Decimal
}

func approvingGateway() *MockGateway {
	return &MockGateway{result: PaymentResult{Approved: true, TransactionID: "TXN-1"}}
}

func (g *MockGateway) Charge(ctx context.Context, amount decimal.Decimal) (PaymentResult, error) {
	g.m.Lock()
	g.charged = append(g.charged, amount)
	g.m.Unlock()

	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return PaymentResult{}, ctx.Err()
		}
	}
	return g.result, g.err
}

type MockObserver struct {
	m        sync.Mutex
	outcomes []string
}

func (o *MockObserver) CheckoutAttempt(outcome string) {
	o.m.Lock()
	defer o.m.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}
