package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/auth"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/report"
	"github.com/fjod/storefront/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	recentEventsLimit = 10
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type AdminHandler struct {
	catalog Catalog
	orders  Orders
	auth    Authenticator
	logger  *zap.Logger
}

type DashboardDTO struct {
	TotalOrders   int                  `json:"total_orders"`
	TotalRevenue  decimal.Decimal      `json:"total_revenue"`
	TotalProducts int                  `json:"total_products"`
	TotalUsers    int                  `json:"total_users"`
	RecentEvents  []*domain.OrderEvent `json:"recent_events"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

type SetAdminRequestDTO struct {
	IsAdmin bool `json:"is_admin"`
}

// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.orders.CountOrders(ctx)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	revenue, err := h.orders.Revenue(ctx)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	products, err := h.catalog.ListProducts(ctx, repository.ProductFilter{})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	users, err := h.auth.Users(ctx, auth.UserFilter{})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	events, err := h.orders.RecentOrderEvents(ctx, recentEventsLimit)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, DashboardDTO{
		TotalOrders:   count,
		TotalRevenue:  revenue,
		TotalProducts: len(products),
		TotalUsers:    len(users),
		RecentEvents:  events,
	})
}

// parseWindow reads from and to as dates (2006-01-02) or RFC 3339 times.
func parseWindow(r *http.Request) (report.Window, error) {
	var win report.Window
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from", &win.From}, {"to", &win.To}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := parseTime(raw)
		if err != nil {
			return report.Window{}, domain.NewValidationError(p.name, fmt.Sprintf("invalid date %q", raw))
		}
		*p.dst = t
	}
	if !win.From.IsZero() && !win.To.IsZero() && !win.From.Before(win.To) {
		return report.Window{}, domain.NewValidationError("to", "to must be after from")
	}
	return win, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (h *AdminHandler) buildReport(r *http.Request) (report.Report, error) {
	win, err := parseWindow(r)
	if err != nil {
		return report.Report{}, err
	}

	orders, err := h.orders.ListOrders(r.Context(), repository.OrderFilter{From: win.From, To: win.To})
	if err != nil {
		return report.Report{}, err
	}
	categories, err := h.catalog.CategoryIndex(r.Context())
	if err != nil {
		return report.Report{}, err
	}

	values := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		values = append(values, *o)
	}
	return report.Build(values, win, r.URL.Query().Get("category"), categories), nil
}

// GET /api/v1/admin/reports?from=&to=&category=
func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.buildReport(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// GET /api/v1/admin/reports/export?from=&to=&category=
func (h *AdminHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.buildReport(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, rep); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// GET /api/v1/admin/products?category=&q=
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), productFilter(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = 0

	if err := h.catalog.CreateProduct(r.Context(), &p); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// PUT /api/v1/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p domain.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = id

	if err := h.catalog.UpdateProduct(r.Context(), &p); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	updated, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/admin/orders?q=&status=&from=&to=
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	win, err := parseWindow(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	f := repository.OrderFilter{
		Search: r.URL.Query().Get("q"),
		From:   win.From,
		To:     win.To,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.OrderStatus(strings.ToLower(raw))
		if !status.IsValid() {
			handleError(w, r, h.logger, domain.NewValidationError("status", fmt.Sprintf("unknown order status %q", raw)))
			return
		}
		f.Status = status
	}

	orders, err := h.orders.ListOrders(r.Context(), f)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// PUT /api/v1/admin/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	status := domain.OrderStatus(strings.ToLower(req.Status))
	if err := h.orders.UpdateOrderStatus(r.Context(), id, status); err != nil {
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

// DELETE /api/v1/admin/orders/{id}
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/admin/users?q=&role=&status=
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.auth.Users(r.Context(), auth.UserFilter{
		Search: q.Get("q"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// PUT /api/v1/admin/users/{id}/admin
func (h *AdminHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req SetAdminRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if id == currentUser(r.Context()).ID && !req.IsAdmin {
		respondError(w, http.StatusBadRequest, "invalid_request", "admins cannot revoke their own access")
		return
	}

	u, err := h.auth.SetAdmin(r.Context(), id, req.IsAdmin)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// DELETE /api/v1/admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == currentUser(r.Context()).ID {
		respondError(w, http.StatusBadRequest, "invalid_request", "admins cannot delete themselves")
		return
	}
	if err := h.auth.DeleteUser(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
