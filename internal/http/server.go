package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/metrics"
	"github.com/fjod/storefront/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Catalog interface {
	ListProducts(ctx context.Context, f repository.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
	CategoryIndex(ctx context.Context) (map[int64]string, error)
	ListReviews(ctx context.Context, productID int64) ([]*domain.Review, error)
	CreateReview(ctx context.Context, rv *domain.Review) error
}

type Orders interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListOrders(ctx context.Context, f repository.OrderFilter) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	CancelOrder(ctx context.Context, id int64, userID string) error
	DeleteOrder(ctx context.Context, id int64) error
	CountOrders(ctx context.Context) (int, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	RecentOrderEvents(ctx context.Context, limit int) ([]*domain.OrderEvent, error)
}

type Authenticator interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*auth.Session, error)
	Users(ctx context.Context, f auth.UserFilter) ([]*domain.User, error)
	SetAdmin(ctx context.Context, id string, admin bool) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	Events() *auth.Broadcaster
}

type Checkout interface {
	Submit(ctx context.Context, user *domain.User, c *cart.Store) (*domain.Order, error)
	State(cartID string) checkout.State
}

type Deps struct {
	Catalog  Catalog
	Orders   Orders
	Auth     Authenticator
	Carts    *cart.Registry
	Checkout Checkout
	Metrics  *metrics.ServerMetrics
	Logger   *zap.Logger
	// RequestTimeout bounds every route except the websocket stream.
	RequestTimeout time.Duration
	// AllowedOrigins may open the cart stream besides the server's own origin.
	AllowedOrigins []string
	// Ready reports backend health for /health.
	Ready func(ctx context.Context) error
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}

	catalog := &CatalogHandler{catalog: d.Catalog, logger: d.Logger}
	accounts := &AuthHandler{auth: d.Auth, logger: d.Logger}
	carts := &CartHandler{
		carts:    d.Carts,
		catalog:  d.Catalog,
		events:   d.Auth.Events(),
		upgrader: newUpgrader(d.AllowedOrigins),
		logger:   d.Logger,
	}
	checkouts := &CheckoutHandler{checkout: d.Checkout, carts: d.Carts, logger: d.Logger}
	orders := &OrdersHandler{orders: d.Orders, logger: d.Logger}
	admin := &AdminHandler{catalog: d.Catalog, orders: d.Orders, auth: d.Auth, logger: d.Logger}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(Metrics(d.Metrics))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(d.Auth))

		// the stream outlives any request timeout
		r.With(CartID).Get("/cart/stream", carts.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(d.RequestTimeout))
			r.Use(middleware.Compress(5))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/signup", accounts.SignUp)
				r.Post("/signin", accounts.SignIn)
				r.With(RequireUser).Post("/signout", accounts.SignOut)
				r.With(RequireUser).Get("/session", accounts.Session)
				r.With(RequireUser).Get("/user", accounts.User)
			})

			r.Get("/categories", catalog.Categories)
			r.Route("/products", func(r chi.Router) {
				r.Get("/", catalog.ListProducts)
				r.Get("/{id}", catalog.GetProduct)
				r.Get("/{id}/reviews", catalog.ListReviews)
				r.With(RequireUser).Post("/{id}/reviews", catalog.CreateReview)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Use(CartID)
				r.Get("/", carts.GetCart)
				r.Delete("/", carts.ClearCart)
				r.Post("/items", carts.AddItem)
				r.Put("/items/{product_id}", carts.UpdateQuantity)
				r.Delete("/items/{product_id}", carts.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Use(CartID)
				r.With(RequireUser).Post("/", checkouts.Submit)
				r.Get("/state", checkouts.State)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(RequireUser)
				r.Get("/", orders.ListOrders)
				r.Get("/{id}", orders.GetOrder)
				r.Post("/{id}/cancel", orders.CancelOrder)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireUser)
				r.Use(RequireAdmin)

				r.Get("/dashboard", admin.Dashboard)
				r.Get("/reports", admin.Report)
				r.Get("/reports/export", admin.ExportReport)

				r.Get("/products", admin.ListProducts)
				r.Post("/products", admin.CreateProduct)
				r.Put("/products/{id}", admin.UpdateProduct)
				r.Delete("/products/{id}", admin.DeleteProduct)

				r.Get("/orders", admin.ListOrders)
				r.Put("/orders/{id}/status", admin.UpdateOrderStatus)
				r.Delete("/orders/{id}", admin.DeleteOrder)

				r.Get("/users", admin.ListUsers)
				r.Put("/users/{id}/admin", admin.SetAdmin)
				r.Delete("/users/{id}", admin.DeleteUser)
			})
		})
	})

	return r
}
