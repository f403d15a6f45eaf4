package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/repository"
	"go.uber.org/zap"
)

type OrdersHandler struct {
	orders Orders
	logger *zap.Logger
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrdersByUser(r.Context(), currentUser(r.Context()).ID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	// someone else's order does not exist for this caller
	if order.UserID != currentUser(r.Context()).ID {
		handleError(w, r, h.logger, repository.ErrOrderNotFound)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// POST /api/v1/orders/{id}/cancel
func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.orders.CancelOrder(r.Context(), id, currentUser(r.Context()).ID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
