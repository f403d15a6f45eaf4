package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/cart"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	streamBuffer = 32
	writeWait    = 10 * time.Second
	pingPeriod   = 30 * time.Second
)

// newUpgrader accepts requests without an Origin header, from the server's
// own host, or from one of allowed.
func newUpgrader(allowed []string) *websocket.Upgrader {
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			if strings.EqualFold(u.Host, r.Host) {
				return true
			}
			_, ok := origins[strings.ToLower(strings.TrimRight(origin, "/"))]
			return ok
		},
	}
}

type CartHandler struct {
	carts    *cart.Registry
	catalog  Catalog
	events   *auth.Broadcaster
	upgrader *websocket.Upgrader
	logger   *zap.Logger
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// StreamMessageDTO is one frame on the cart stream. Type is "cart" or "auth".
type StreamMessageDTO struct {
	Type string         `json:"type"`
	Cart *cart.Snapshot `json:"cart,omitempty"`
	Auth *auth.Event    `json:"auth,omitempty"`
}

func (h *CartHandler) store(r *http.Request) *cart.Store {
	return h.carts.Get(r.Context(), cartIDFrom(r.Context()))
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store(r).Snapshot())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > cart.MaxQuantity {
		handleError(w, r, h.logger, cart.ErrInvalidQuantity)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	store := h.store(r)
	if err := store.Add(r.Context(), *p, req.Quantity); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, store.Snapshot())
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}
	var req UpdateQuantityRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	store := h.store(r)
	if err := store.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, store.Snapshot())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "product_id")
	if !ok {
		return
	}

	store := h.store(r)
	store.Remove(r.Context(), productID)
	respondJSON(w, http.StatusOK, store.Snapshot())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.Clear(r.Context())
	respondJSON(w, http.StatusOK, store.Snapshot())
}

// GET /api/v1/cart/stream
//
// Pushes the current cart followed by every change to it. Signed in callers
// also receive their own auth events. Subscriptions end with the connection.
func (h *CartHandler) Stream(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.With(zap.String("cart_id", store.ID()))
	out := make(chan StreamMessageDTO, streamBuffer)
	// subscribers run under the cart lock, so never block here
	push := func(m StreamMessageDTO) {
		select {
		case out <- m:
		default:
			log.Warn("cart stream is full, dropping message", zap.String("type", m.Type))
		}
	}

	unsubscribeCart := store.Watch(func(s cart.Snapshot) {
		push(StreamMessageDTO{Type: "cart", Cart: &s})
	})
	defer unsubscribeCart()

	if u := currentUser(r.Context()); u != nil && h.events != nil {
		userID := u.ID
		unsubscribeAuth := h.events.Subscribe(func(e auth.Event) {
			if e.UserID == userID {
				push(StreamMessageDTO{Type: "auth", Auth: &e})
			}
		})
		defer unsubscribeAuth()
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case m := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(m); err != nil {
				log.Debug("cart stream write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
