package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/cart"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkout Checkout
	carts    *cart.Registry
	logger   *zap.Logger
}

type CheckoutStateDTO struct {
	CartID string `json:"cart_id"`
	State  string `json:"state"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	store := h.carts.Get(r.Context(), cartIDFrom(r.Context()))

	order, err := h.checkout.Submit(r.Context(), currentUser(r.Context()), store)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// GET /api/v1/checkout/state
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	id := cartIDFrom(r.Context())
	respondJSON(w, http.StatusOK, CheckoutStateDTO{CartID: id, State: h.checkout.State(id).String()})
}
