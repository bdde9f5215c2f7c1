/*
Package ledger provides the core stock ledger engine for StockMaster.

PURPOSE:
  This package owns the authoritative collections of categories, products,
  and transactions, and the operations that mutate them consistently.
  Posting a sale or purchase atomically adjusts stock levels and appends
  an immutable transaction record.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: A product grouping (id, name, description)
  - Product: A stocked item with price, cost, quantity, and reorder level
  - Transaction: An immutable record of a posted sale or purchase
  - TransactionItem: A line item with name/price snapshotted at post time

DESIGN PRINCIPLES:
  1. Immutability: Transactions are never edited or voided once posted
  2. Precision: Uses decimal.Decimal for all monetary amounts
  3. Type Safety: Strong typing for IDs prevents mixing category/product IDs
  4. Snapshots: Line items capture product name and unit price at posting
     time, so historical records survive later product edits and deletions

SEE ALSO:
  - engine.go: Mutation operations and invariant enforcement
  - stats.go: Derived statistics over the collections
  - store.go: Persistence interface for the three storage slots
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CategoryID string
type ProductID string
type TransactionID string

// =============================================================================
// CATEGORY
// =============================================================================

type Category struct {
	ID          CategoryID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

// =============================================================================
// PRODUCT
// =============================================================================

// Product is a stocked item.
//
// INVARIANT: Quantity >= 0 after every mutation. Sales that would drive
// a quantity negative are rejected whole (see Engine.PostSale).
//
// CategoryID references a Category by id but referential integrity is not
// enforced: deleting a category leaves orphaned references, which consumers
// render as "Unknown". Cost holds the unit cost from the most recent
// purchase (last-cost-wins, no moving average).
type Product struct {
	ID         ProductID       `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID CategoryID      `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Quantity   int             `json:"quantity"`
	MinLevel   int             `json:"minLevel"`
	Supplier   string          `json:"supplier"`
}

// LowStock reports whether the product has fallen to or below its
// reorder threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinLevel
}

// =============================================================================
// TRANSACTION - Immutable record of a posted sale or purchase
// =============================================================================

type TransactionType string

const (
	TxSale     TransactionType = "SALE"
	TxPurchase TransactionType = "PURCHASE"
)

// TransactionItem is a single line of a transaction. ProductName and Price
// are snapshots taken at posting time: for a sale, Price is the product's
// selling price; for a purchase, it is the supplied unit cost.
type TransactionItem struct {
	ProductID   ProductID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Transaction records a posted sale or purchase.
//
// INVARIANT: TotalAmount equals the sum of Quantity*Price over Items.
// The engine guarantees this at construction; it is never recomputed.
type Transaction struct {
	ID                 TransactionID     `json:"id"`
	Type               TransactionType   `json:"type"`
	Date               time.Time         `json:"date"`
	Items              []TransactionItem `json:"items"`
	TotalAmount        decimal.Decimal   `json:"totalAmount"`
	CustomerOrSupplier string            `json:"customerOrSupplier"`
	InvoiceNumber      string            `json:"invoiceNumber"`
}

// =============================================================================
// OPERATION INPUTS
// =============================================================================

// ProductInput carries the fields for creating a product.
type ProductInput struct {
	SKU        string
	Name       string
	CategoryID CategoryID
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Quantity   int
	MinLevel   int
	Supplier   string
}

// ProductUpdate is a structured partial update. Nil fields are untouched;
// non-nil fields are validated and merged onto the existing product.
type ProductUpdate struct {
	SKU        *string
	Name       *string
	CategoryID *CategoryID
	Price      *decimal.Decimal
	Cost       *decimal.Decimal
	Quantity   *int
	MinLevel   *int
	Supplier   *string
}

// SaleItem requests a quantity of a product at its current selling price.
type SaleItem struct {
	ProductID ProductID
	Quantity  int
}

// SaleInput is the request to post a sale.
type SaleInput struct {
	Customer string
	Items    []SaleItem
}

// PurchaseItem restocks a product at a new unit cost.
type PurchaseItem struct {
	ProductID ProductID
	Quantity  int
	Cost      decimal.Decimal
}

// PurchaseInput is the request to post a purchase. Invoice is supplied by
// the caller (the supplier's invoice number), unlike sales where the
// engine generates one.
type PurchaseInput struct {
	Supplier string
	Invoice  string
	Items    []PurchaseItem
}
