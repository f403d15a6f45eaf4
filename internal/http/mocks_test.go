package http

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
	"github.com/shopspring/decimal"
)

type MockCatalog struct {
	m        sync.Mutex
	products map[int64]*domain.Product
	reviews  []*domain.Review
	nextID   int64
}

func newMockCatalog(products ...*domain.Product) *MockCatalog {
	c := &MockCatalog{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		c.products[p.ID] = p
		if p.ID > c.nextID {
			c.nextID = p.ID
		}
	}
	return c
}

func (c *MockCatalog) ListProducts(_ context.Context, f repository.ProductFilter) ([]*domain.Product, error) {
	c.m.Lock()
	defer c.m.Unlock()
	out := []*domain.Product{}
	for _, p := range c.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *MockCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	c.m.Lock()
	defer c.m.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (c *MockCatalog) CreateProduct(_ context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	c.nextID++
	p.ID = c.nextID
	cp := *p
	c.products[p.ID] = &cp
	return nil
}

func (c *MockCatalog) UpdateProduct(_ context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	if _, ok := c.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	cp := *p
	c.products[p.ID] = &cp
	return nil
}

func (c *MockCatalog) DeleteProduct(_ context.Context, id int64) error {
	c.m.Lock()
	defer c.m.Unlock()
	if _, ok := c.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(c.products, id)
	return nil
}

func (c *MockCatalog) Categories(_ context.Context) ([]string, error) {
	c.m.Lock()
	defer c.m.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (c *MockCatalog) CategoryIndex(_ context.Context) (map[int64]string, error) {
	c.m.Lock()
	defer c.m.Unlock()
	idx := make(map[int64]string, len(c.products))
	for id, p := range c.products {
		idx[id] = p.Category
	}
	return idx, nil
}

func (c *MockCatalog) ListReviews(_ context.Context, productID int64) ([]*domain.Review, error) {
	c.m.Lock()
	defer c.m.Unlock()
	out := []*domain.Review{}
	for _, rv := range c.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (c *MockCatalog) CreateReview(_ context.Context, rv *domain.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	c.m.Lock()
	defer c.m.Unlock()
	if _, ok := c.products[rv.ProductID]; !ok {
		return repository.ErrProductNotFound
	}
	rv.ID = int64(len(c.reviews) + 1)
	c.reviews = append(c.reviews, rv)
	return nil
}

type MockOrders struct {
	m      sync.Mutex
	orders map[int64]*domain.Order
	events []*domain.OrderEvent
	nextID int64
}

func newMockOrders() *MockOrders {
	return &MockOrders{orders: make(map[int64]*domain.Order)}
}

// CreateOrder makes MockOrders usable as the checkout order writer.
func (o *MockOrders) CreateOrder(_ context.Context, order *domain.Order) error {
	o.m.Lock()
	defer o.m.Unlock()
	o.nextID++
	order.ID = o.nextID
	cp := *order
	o.orders[order.ID] = &cp
	return nil
}

func (o *MockOrders) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	o.m.Lock()
	defer o.m.Unlock()
	order, ok := o.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (o *MockOrders) ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	all, _ := o.ListOrders(ctx, repository.OrderFilter{})
	out := []*domain.Order{}
	for _, order := range all {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (o *MockOrders) ListOrders(_ context.Context, f repository.OrderFilter) ([]*domain.Order, error) {
	o.m.Lock()
	defer o.m.Unlock()
	out := []*domain.Order{}
	for _, order := range o.orders {
		if f.Status != "" && order.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && order.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !order.CreatedAt.Before(f.To) {
			continue
		}
		cp := *order
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (o *MockOrders) UpdateOrderStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("status", "unknown order status")
	}
	o.m.Lock()
	defer o.m.Unlock()
	order, ok := o.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (o *MockOrders) CancelOrder(_ context.Context, id int64, userID string) error {
	o.m.Lock()
	defer o.m.Unlock()
	order, ok := o.orders[id]
	if !ok || order.UserID != userID {
		return repository.ErrOrderNotFound
	}
	order.Status = domain.OrderStatusCancelled
	return nil
}

func (o *MockOrders) DeleteOrder(_ context.Context, id int64) error {
	o.m.Lock()
	defer o.m.Unlock()
	if _, ok := o.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(o.orders, id)
	return nil
}

func (o *MockOrders) CountOrders(_ context.Context) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()
	return len(o.orders), nil
}

func (o *MockOrders) Revenue(_ context.Context) (decimal.Decimal, error) {
	o.m.Lock()
	defer o.m.Unlock()
	sum := decimal.Zero
	for _, order := range o.orders {
		if order.Status != domain.OrderStatusCancelled {
			sum = sum.Add(order.TotalAmount)
		}
	}
	return sum, nil
}

func (o *MockOrders) RecentOrderEvents(_ context.Context, limit int) ([]*domain.OrderEvent, error) {
	o.m.Lock()
	defer o.m.Unlock()
	if len(o.events) > limit {
		return o.events[:limit], nil
	}
	return o.events, nil
}

// MockAuth resolves tokens of the form "token-<user id>".
type MockAuth struct {
	m      sync.Mutex
	users  map[string]*domain.User
	events *auth.Broadcaster
	signed []string
}

func newMockAuth(users ...*domain.User) *MockAuth {
	a := &MockAuth{users: make(map[string]*domain.User), events: auth.NewBroadcaster()}
	for _, u := range users {
		a.users[u.ID] = u
	}
	return a
}

func (a *MockAuth) SignUp(_ context.Context, in auth.SignUpInput) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	a.m.Lock()
	defer a.m.Unlock()
	for _, u := range a.users {
		if u.Email == in.Email {
			return nil, auth.ErrEmailTaken
		}
	}
	u := &domain.User{ID: "user-" + in.Email, Email: in.Email, FullName: in.FullName}
	a.users[u.ID] = u
	return u, nil
}

func (a *MockAuth) SignIn(_ context.Context, email, password string) (*auth.Session, error) {
	a.m.Lock()
	defer a.m.Unlock()
	for _, u := range a.users {
		if u.Email == email && password == "secret1" {
			return &auth.Session{AccessToken: "token-" + u.ID, ExpiresAt: time.Now().Add(time.Hour), User: u}, nil
		}
	}
	return nil, auth.ErrInvalidCredentials
}

func (a *MockAuth) SignOut(_ context.Context, token string) error {
	a.m.Lock()
	defer a.m.Unlock()
	a.signed = append(a.signed, token)
	return nil
}

func (a *MockAuth) Session(_ context.Context, token string) (*auth.Session, error) {
	a.m.Lock()
	defer a.m.Unlock()
	id, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	u, ok := a.users[id]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Session{AccessToken: token, ExpiresAt: time.Now().Add(time.Hour), User: u}, nil
}

func (a *MockAuth) Users(_ context.Context, f auth.UserFilter) ([]*domain.User, error) {
	a.m.Lock()
	defer a.m.Unlock()
	out := []*domain.User{}
	for _, u := range a.users {
		if f.Role == "admin" && !u.IsAdmin {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (a *MockAuth) SetAdmin(_ context.Context, id string, admin bool) (*domain.User, error) {
	a.m.Lock()
	defer a.m.Unlock()
	u, ok := a.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	u.IsAdmin = admin
	return u, nil
}

func (a *MockAuth) DeleteUser(_ context.Context, id string) error {
	a.m.Lock()
	defer a.m.Unlock()
	if _, ok := a.users[id]; !ok {
		return auth.ErrUserNotFound
	}
	delete(a.users, id)
	return nil
}

func (a *MockAuth) Events() *auth.Broadcaster {
	return a.events
}

type MockGateway struct {
	result checkout.PaymentResult
	err    error
}

func (g *MockGateway) Charge(_ context.Context, _ decimal.Decimal) (checkout.PaymentResult, error) {
	return g.result, g.err
}

// testContext returns a context that is cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
