package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &domain.User{ID: "3f1c2a8e-7a55-4b8e-9d7e-0a4f0d1f2b11", Email: "jane@example.com"}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	ctx := context.Background()
	c := cart.NewStore(ctx, "cart-1", nil, nil)
	require.NoError(t, c.Add(ctx, domain.Product{ID: 1, Name: "Kindle", Price: decimal.RequireFromString("10")}, 1))
	require.NoError(t, c.Add(ctx, domain.Product{ID: 2, Name: "Bottle", Price: decimal.RequireFromString("5")}, 3))
	return c
}

func newService(w *MockOrderWriter, g *MockGateway, o *MockObserver) *Service {
	return NewService(Deps{Orders: w, Payments: g, Observer: o, PaymentTimeout: time.Second})
}

func TestSubmit_Success(t *testing.T) {
	w, g, o := &MockOrderWriter{}, approvingGateway(), &MockObserver{}
	sut := newService(w, g, o)
	c := filledCart(t)

	order, err := sut.Submit(context.Background(), testUser, c)
	require.NoError(t, err)

	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, testUser.ID, order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Kindle", order.Items[0].Name)
	assert.Equal(t, 3, order.Items[1].Quantity)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, StateSucceeded, sut.State("cart-1"))
	require.Len(t, g.charged, 1)
	assert.Equal(t, "25.00", g.charged[0].StringFixed(2))
	assert.Equal(t, []string{OutcomeSucceeded}, o.outcomes)
}

func TestSubmit_Unauthenticated(t *testing.T) {
	w, g := &MockOrderWriter{}, approvingGateway()
	sut := newService(w, g, nil)
	c := filledCart(t)

	_, err := sut.Submit(context.Background(), nil, c)
	require.ErrorIs(t, err, ErrUnauthenticated)

	assert.Equal(t, 2, c.Len())
	assert.Empty(t, g.charged)
	assert.Equal(t, StateIdle, sut.State("cart-1"))
}

func TestSubmit_EmptyCart(t *testing.T) {
	w, g, o := &MockOrderWriter{}, approvingGateway(), &MockObserver{}
	sut := newService(w, g, o)
	c := cart.NewStore(context.Background(), "cart-1", nil, nil)

	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrEmptyCart)

	assert.Empty(t, g.charged)
	assert.Equal(t, 0, w.count())
	assert.Equal(t, StateIdle, sut.State("cart-1"))
	assert.Equal(t, []string{OutcomeEmptyCart}, o.outcomes)
}

func TestSubmit_PaymentDeclined(t *testing.T) {
	w := &MockOrderWriter{}
	g := &MockGateway{result: PaymentResult{Approved: false, Reason: "card expired"}}
	sut := newService(w, g, nil)
	c := filledCart(t)

	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrPaymentDeclined)
	assert.ErrorContains(t, err, "card expired")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 0, w.count())
	assert.Equal(t, StateFailed, sut.State("cart-1"))
}

func TestSubmit_PaymentError(t *testing.T) {
	w := &MockOrderWriter{}
	g := &MockGateway{err: errors.New("connection reset")}
	sut := newService(w, g, nil)
	c := filledCart(t)

	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrPaymentUnavailable)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, StateFailed, sut.State("cart-1"))
}

func TestSubmit_OrderWriteFails(t *testing.T) {
	w := &MockOrderWriter{err: errors.New("connection refused")}
	sut := newService(w, approvingGateway(), nil)
	c := filledCart(t)

	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrOrderWrite)
	assert.ErrorContains(t, err, "connection refused")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, StateFailed, sut.State("cart-1"))
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	w := &MockOrderWriter{}
	g := &MockGateway{result: PaymentResult{Approved: false, Reason: "insufficient funds"}}
	sut := newService(w, g, nil)
	c := filledCart(t)

	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrPaymentDeclined)

	g.result = PaymentResult{Approved: true}
	order, err := sut.Submit(context.Background(), testUser, c)
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, 1, w.count())
	assert.Equal(t, 0, c.Len())
}

func TestSubmit_OrderBreakerOpens(t *testing.T) {
	w := &MockOrderWriter{err: errors.New("db down")}
	sut := newService(w, approvingGateway(), nil)
	c := filledCart(t)

	for i := 0; i < 5; i++ {
		_, err := sut.Submit(context.Background(), testUser, c)
		require.ErrorIs(t, err, ErrOrderWrite)
	}

	w.err = nil
	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrOrderWrite)
	assert.Equal(t, 0, w.count())
	assert.Equal(t, 2, c.Len())
}

func TestSubmit_AbandonedChargesKeepBreakerClosed(t *testing.T) {
	w := &MockOrderWriter{}
	g := approvingGateway()
	g.release = make(chan struct{})
	o := &MockObserver{}
	sut := newService(w, g, o)
	c := filledCart(t)

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sut.Submit(ctx, testUser, c)
		require.ErrorIs(t, err, context.Canceled)
		require.NotErrorIs(t, err, ErrPaymentUnavailable)
	}
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, StateFailed, sut.State("cart-1"))

	g.release = nil
	order, err := sut.Submit(context.Background(), testUser, c)
	require.NoError(t, err)
	assert.Equal(t, "25", order.TotalAmount.String())
	assert.Equal(t, 1, w.count())
	assert.Contains(t, o.outcomes, OutcomeAbandoned)
}

func TestSubmit_PaymentTimeoutsOpenBreaker(t *testing.T) {
	w := &MockOrderWriter{}
	g := approvingGateway()
	g.release = make(chan struct{})
	sut := NewService(Deps{Orders: w, Payments: g, PaymentTimeout: 5 * time.Millisecond})
	c := filledCart(t)

	for i := 0; i < 5; i++ {
		_, err := sut.Submit(context.Background(), testUser, c)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	}

	g.release = nil
	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrPaymentUnavailable)
	assert.Equal(t, 0, w.count())
}

func TestSubmit_ConcurrentDoubleSubmit(t *testing.T) {
	w := &MockOrderWriter{}
	g := approvingGateway()
	g.started = make(chan struct{}, 2)
	g.release = make(chan struct{})
	o := &MockObserver{}
	sut := newService(w, g, o)
	c := filledCart(t)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = sut.Submit(context.Background(), testUser, c)
	}()

	<-g.started
	assert.Equal(t, StateSubmitting, sut.State("cart-1"))

	_, err := sut.Submit(context.Background(), testUser, c)
	require.ErrorIs(t, err, ErrCheckoutInProgress)

	close(g.release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, 1, w.count())
	assert.Len(t, g.charged, 1)
	assert.Equal(t, 0, c.Len())
	assert.Contains(t, o.outcomes, OutcomeInProgress)
}

func TestSubmit_RacingSubmissionsCreateOneOrder(t *testing.T) {
	w := &MockOrderWriter{}
	sut := newService(w, approvingGateway(), nil)
	c := filledCart(t)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sut.Submit(context.Background(), testUser, c)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, ErrCheckoutInProgress) || errors.Is(err, ErrEmptyCart), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, w.count())
}

func TestSubmit_ItemsAreFrozen(t *testing.T) {
	w := &MockOrderWriter{}
	g := approvingGateway()
	g.started = make(chan struct{}, 1)
	g.release = make(chan struct{})
	sut := newService(w, g, nil)
	c := filledCart(t)

	done := make(chan *domain.Order)
	go func() {
		order, _ := sut.Submit(context.Background(), testUser, c)
		done <- order
	}()

	<-g.started
	c.UpdateQuantity(context.Background(), 1, 50)
	close(g.release)

	order := <-done
	require.NotNil(t, order)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
}

func TestForget_DropsFinishedAttempts(t *testing.T) {
	w := &MockOrderWriter{}
	g := approvingGateway()
	sut := newService(w, g, nil)
	ctx := context.Background()

	_, err := sut.Submit(ctx, testUser, filledCart(t))
	require.NoError(t, err)

	g.started = make(chan struct{}, 1)
	g.release = make(chan struct{})
	busy := cart.NewStore(ctx, "cart-2", nil, nil)
	require.NoError(t, busy.Add(ctx, domain.Product{ID: 3, Name: "Lamp", Price: decimal.RequireFromString("7")}, 1))
	result := make(chan error, 1)
	go func() {
		_, err := sut.Submit(ctx, testUser, busy)
		result <- err
	}()
	<-g.started
	require.Equal(t, 2, sut.Tracked())

	sut.Forget("cart-1", "cart-2", "unknown")

	assert.Equal(t, 1, sut.Tracked())
	assert.Equal(t, StateIdle, sut.State("cart-1"))
	assert.Equal(t, StateSubmitting, sut.State("cart-2"))

	close(g.release)
	require.NoError(t, <-result)
	sut.Forget("cart-2")
	assert.Zero(t, sut.Tracked())
}
