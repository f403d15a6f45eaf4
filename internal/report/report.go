// Package report folds a fetched order collection into the admin dashboard
// figures: per-month counts and revenue, status counts and best sellers.
package report

import (
	"sort"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const TopProductsLimit = 8

// Window bounds order creation times. From is inclusive, To is exclusive and
// a zero value leaves that side open.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

type MonthStat struct {
	Month   string          `json:"month"` // YYYY-MM
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Report struct {
	Months       []MonthStat                `json:"months"`
	StatusCounts map[domain.OrderStatus]int `json:"status_counts"`
	TopProducts  []ProductQuantity          `json:"top_products"`
	TotalOrders  int                        `json:"total_orders"`
	TotalRevenue decimal.Decimal            `json:"total_revenue"`
}

// Build aggregates the orders created inside window. Cancelled orders are
// counted but earn no revenue. When category is set only items whose product
// maps to it in categories feed the best seller list.
func Build(orders []domain.Order, window Window, category string, categories map[int64]string) Report {
	rep := Report{
		Months:       []MonthStat{},
		StatusCounts: make(map[domain.OrderStatus]int),
		TopProducts:  []ProductQuantity{},
		TotalRevenue: decimal.Zero,
	}

	monthIdx := make(map[string]int)
	productIdx := make(map[string]int)

	for _, o := range orders {
		if !window.Contains(o.CreatedAt) {
			continue
		}
		rep.TotalOrders++

		status := o.Status
		if status == "" {
			status = domain.OrderStatusPending
		}
		rep.StatusCounts[status]++

		key := o.CreatedAt.UTC().Format("2006-01")
		i, ok := monthIdx[key]
		if !ok {
			i = len(rep.Months)
			monthIdx[key] = i
			rep.Months = append(rep.Months, MonthStat{Month: key, Revenue: decimal.Zero})
		}
		rep.Months[i].Orders++
		if status != domain.OrderStatusCancelled {
			rep.Months[i].Revenue = rep.Months[i].Revenue.Add(o.TotalAmount)
			rep.TotalRevenue = rep.TotalRevenue.Add(o.TotalAmount)
		}

		for _, item := range o.Items {
			if category != "" && categories[item.ProductID] != category {
				continue
			}
			j, ok := productIdx[item.Name]
			if !ok {
				j = len(rep.TopProducts)
				productIdx[item.Name] = j
				rep.TopProducts = append(rep.TopProducts, ProductQuantity{Name: item.Name})
			}
			rep.TopProducts[j].Quantity += item.Quantity
		}
	}

	sort.Slice(rep.Months, func(a, b int) bool {
		return rep.Months[a].Month < rep.Months[b].Month
	})
	// ties keep first-encounter order
	sort.SliceStable(rep.TopProducts, func(a, b int) bool {
		return rep.TopProducts[a].Quantity > rep.TopProducts[b].Quantity
	})
	if len(rep.TopProducts) > TopProductsLimit {
		rep.TopProducts = rep.TopProducts[:TopProductsLimit]
	}
	return rep
}

// Month returns the stat for key, or a zero stat when no order fell in it.
func (r Report) Month(key string) MonthStat {
	for _, m := range r.Months {
		if m.Month == key {
			return m
		}
	}
	return MonthStat{Month: key, Revenue: decimal.Zero}
}
