package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	defaultPaymentTimeout = 10 * time.Second
	orderWriteTimeout     = 5 * time.Second
)

type OrderWriter interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

// Observer receives one outcome label per Submit call.
type Observer interface {
	CheckoutAttempt(outcome string)
}

const (
	OutcomeSucceeded          = "succeeded"
	OutcomeUnauthenticated    = "unauthenticated"
	OutcomeEmptyCart          = "empty_cart"
	OutcomeInProgress         = "in_progress"
	OutcomePaymentDeclined    = "payment_declined"
	OutcomePaymentUnavailable = "payment_unavailable"
	OutcomeOrderWriteFailed   = "order_write_failed"
	OutcomeAbandoned          = "abandoned"
)

type Deps struct {
	Orders         OrderWriter
	Payments       PaymentGateway
	Observer       Observer
	Logger         *zap.Logger
	PaymentTimeout time.Duration
}

type Service struct {
	orders         OrderWriter
	payments       PaymentGateway
	observer       Observer
	logger         *zap.Logger
	paymentTimeout time.Duration

	payBreaker   *gobreaker.CircuitBreaker[PaymentResult]
	writeBreaker *gobreaker.CircuitBreaker[struct{}]

	mu     sync.Mutex
	states map[string]State
}

func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := deps.PaymentTimeout
	if timeout <= 0 {
		timeout = defaultPaymentTimeout
	}

	payOpts := circuitbreaker.DefaultOptions("payment")
	payOpts.Logger = logger
	// abandoned charges do not count against the provider
	payOpts.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, errAbandoned) || errors.Is(err, context.Canceled)
	}
	writeOpts := circuitbreaker.DefaultOptions("order-write")
	writeOpts.Logger = logger

	return &Service{
		orders:         deps.Orders,
		payments:       deps.Payments,
		observer:       deps.Observer,
		logger:         logger,
		paymentTimeout: timeout,
		payBreaker:     circuitbreaker.New[PaymentResult](payOpts),
		writeBreaker:   circuitbreaker.New[struct{}](writeOpts),
		states:         make(map[string]State),
	}
}

// State returns the state of the latest attempt for the cart.
func (s *Service) State(cartID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(cartID)
}

// Forget drops the recorded state of the given carts. An attempt still
// submitting is kept so its guard holds until it finishes.
func (s *Service) Forget(cartIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range cartIDs {
		if s.states[id] == StateSubmitting {
			continue
		}
		delete(s.states, id)
	}
}

// Tracked returns the number of carts with a recorded state.
func (s *Service) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// Submit charges the cart total and turns the cart into an order. The cart is
// cleared only after the order has been written; on any failure it is left
// as it was. No step is retried.
func (s *Service) Submit(ctx context.Context, user *domain.User, c *cart.Store) (*domain.Order, error) {
	if user == nil || user.ID == "" {
		s.observe(OutcomeUnauthenticated)
		return nil, ErrUnauthenticated
	}

	lines, err := s.begin(c)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			s.observe(OutcomeEmptyCart)
		case errors.Is(err, ErrCheckoutInProgress):
			s.observe(OutcomeInProgress)
		}
		return nil, err
	}

	log := s.logger.With(zap.String("cart_id", c.ID()), zap.String("user_id", user.ID))

	order, outcome, err := s.place(ctx, user, lines, log)
	if err != nil {
		s.finish(c.ID(), StateFailed)
		s.observe(outcome)
		log.Warn("checkout failed", zap.String("outcome", outcome), zap.Error(err))
		return nil, err
	}

	c.Clear(ctx)
	s.finish(c.ID(), StateSucceeded)
	s.observe(OutcomeSucceeded)
	log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("total", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

// begin claims the cart for one attempt and freezes its lines.
func (s *Service) begin(c *cart.Store) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.stateLocked(c.ID())
	if cur == StateSubmitting {
		return nil, ErrCheckoutInProgress
	}
	if cur.IsTerminal() {
		cur = StateIdle
	}

	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if !cur.CanTransitionTo(StateSubmitting) {
		return nil, ErrIllegalTransition
	}
	s.states[c.ID()] = StateSubmitting
	return lines, nil
}

func (s *Service) finish(cartID string, next State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.stateLocked(cartID)
	if !cur.CanTransitionTo(next) {
		s.logger.Error("unexpected checkout transition",
			zap.String("cart_id", cartID),
			zap.String("from", cur.String()),
			zap.String("to", next.String()),
		)
	}
	s.states[cartID] = next
}

func (s *Service) place(ctx context.Context, user *domain.User, lines []domain.CartLine, log *zap.Logger) (*domain.Order, string, error) {
	items, total := domain.ItemsFromLines(lines)

	payCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	result, err := s.payBreaker.Execute(func() (PaymentResult, error) {
		res, err := s.payments.Charge(payCtx, total)
		if err != nil && ctx.Err() != nil {
			return res, fmt.Errorf("%w: %w", errAbandoned, ctx.Err())
		}
		return res, err
	})
	cancel()
	if errors.Is(err, errAbandoned) {
		return nil, OutcomeAbandoned, err
	}
	if err != nil {
		return nil, OutcomePaymentUnavailable, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	if !result.Approved {
		return nil, OutcomePaymentDeclined, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.Reason)
	}

	order := &domain.Order{
		UserID:      user.ID,
		TotalAmount: total,
		Items:       items,
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	// payment is approved; the write outlives the caller's context
	writeCtx, cancelWrite := context.WithTimeout(context.WithoutCancel(ctx), orderWriteTimeout)
	defer cancelWrite()
	_, err = s.writeBreaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.orders.CreateOrder(writeCtx, order)
	})
	if err != nil {
		log.Error("order write failed after payment",
			zap.String("transaction_id", result.TransactionID),
			zap.Error(err),
		)
		return nil, OutcomeOrderWriteFailed, fmt.Errorf("%w: %w", ErrOrderWrite, err)
	}
	return order, "", nil
}

func (s *Service) stateLocked(cartID string) State {
	if st, ok := s.states[cartID]; ok {
		return st
	}
	return StateIdle
}

func (s *Service) observe(outcome string) {
	if s.observer != nil {
		s.observer.CheckoutAttempt(outcome)
	}
}
