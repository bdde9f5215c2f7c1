/*
stats.go - Derived statistics over the ledger collections

PURPOSE:
  Stats is a pure function of the current products and transactions,
  recomputed on every call. Nothing is cached or incrementally
  maintained, so two calls with no intervening mutation always agree.

TIME INJECTION:
  MonthlySales depends on "the current month". The reference time is an
  explicit parameter rather than a wall-clock read, so callers (and
  tests) decide what "now" means.
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats are the aggregate figures backing the dashboard.
type Stats struct {
	// TotalValue is the retail value of stock on hand: sum over products
	// of price * quantity.
	TotalValue decimal.Decimal `json:"totalValue"`

	// LowStockCount is the number of products at or below their reorder
	// threshold.
	LowStockCount int `json:"lowStockCount"`

	// TotalProducts is the number of products in the catalog.
	TotalProducts int `json:"totalProducts"`

	// MonthlySales is the sum of sale totals posted in now's calendar
	// month and year.
	MonthlySales decimal.Decimal `json:"monthlySales"`
}

// Stats computes the derived figures as of now.
func (e *Engine) Stats(now time.Time) Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return computeStats(e.products, e.transactions, now)
}

func computeStats(products []Product, transactions []Transaction, now time.Time) Stats {
	stats := Stats{
		TotalValue:    decimal.Zero,
		MonthlySales:  decimal.Zero,
		TotalProducts: len(products),
	}

	for _, p := range products {
		stats.TotalValue = stats.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.LowStock() {
			stats.LowStockCount++
		}
	}

	for _, tx := range transactions {
		if tx.Type != TxSale {
			continue
		}
		if tx.Date.Year() == now.Year() && tx.Date.Month() == now.Month() {
			stats.MonthlySales = stats.MonthlySales.Add(tx.TotalAmount)
		}
	}
	return stats
}
