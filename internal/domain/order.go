package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusOrderReceived OrderStatus = "order_received"
	OrderStatusOrderShipped  OrderStatus = "order_shipped"
	OrderStatusCancelled     OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusOrderReceived,
	OrderStatusOrderShipped,
	OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOrderReceived, OrderStatusOrderShipped, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus maps a stored or requested status to an OrderStatus.
// An empty value is treated as pending.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	if raw == "" {
		return OrderStatusPending, nil
	}
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", NewValidationError("status", fmt.Sprintf("unknown order status %q", raw))
	}
	return s, nil
}

// OrderItem is a frozen copy of a cart line taken at checkout time.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Validate checks the shape of an order row decoded from the data store.
func (o Order) Validate() error {
	if o.UserID == "" {
		return NewValidationError("user_id", "user_id is required")
	}
	if !o.Status.IsValid() {
		return NewValidationError("status", fmt.Sprintf("unknown order status %q", o.Status))
	}
	if o.TotalAmount.IsNegative() {
		return NewValidationError("total_amount", "total_amount must not be negative")
	}
	for i, item := range o.Items {
		if item.ProductID <= 0 {
			return NewValidationError("items", fmt.Sprintf("item %d has no product_id", i))
		}
		if item.Quantity < 1 {
			return NewValidationError("items", fmt.Sprintf("item %d has quantity %d", i, item.Quantity))
		}
		if item.Price.IsNegative() {
			return NewValidationError("items", fmt.Sprintf("item %d has a negative price", i))
		}
	}
	return nil
}

// ItemsFromLines snapshots cart lines into order items and sums their total.
// The returned slice shares nothing with lines.
func ItemsFromLines(lines []CartLine) ([]OrderItem, decimal.Decimal) {
	items := make([]OrderItem, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		items[i] = OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
		}
		total = total.Add(l.Subtotal())
	}
	return items, total
}

type OrderEvent struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"order_id"`
	EventType   string     `json:"event_type"`
	Message     string     `json:"event_message"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

const (
	OrderEventPlaced        = "placed"
	OrderEventCancelled     = "cancelled"
	OrderEventStatusChanged = "status_changed"
)
