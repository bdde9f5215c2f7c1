/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the ledger's domain model from the external API contract, allowing
  field renaming and version evolution without breaking clients.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Structural validation (required fields, non-negative numbers) lives in
  the ledger engine, not here. DTOs are pure data carriers; handlers
  only translate between wire shape and domain shape.

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/types.go: Domain model
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockmaster/stock-engine/ledger"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductDTO struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Quantity   int             `json:"quantity"`
	MinLevel   int             `json:"minLevel"`
	Supplier   string          `json:"supplier"`
}

type TransactionItemDTO struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type TransactionDTO struct {
	ID                 string               `json:"id"`
	Type               string               `json:"type"`
	Date               time.Time            `json:"date"`
	Items              []TransactionItemDTO `json:"items"`
	TotalAmount        decimal.Decimal      `json:"totalAmount"`
	CustomerOrSupplier string               `json:"customerOrSupplier"`
	InvoiceNumber      string               `json:"invoiceNumber"`
}

type StatsDTO struct {
	TotalValue    decimal.Decimal `json:"totalValue"`
	LowStockCount int             `json:"lowStockCount"`
	TotalProducts int             `json:"totalProducts"`
	MonthlySales  decimal.Decimal `json:"monthlySales"`
}

// ErrorDTO is the uniform error body.
type ErrorDTO struct {
	Error string `json:"error"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateProductRequest struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Quantity   int             `json:"quantity"`
	MinLevel   int             `json:"minLevel"`
	Supplier   string          `json:"supplier"`
}

// UpdateProductRequest carries optional fields; absent fields are left
// untouched on the product.
type UpdateProductRequest struct {
	SKU        *string          `json:"sku,omitempty"`
	Name       *string          `json:"name,omitempty"`
	CategoryID *string          `json:"categoryId,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Cost       *decimal.Decimal `json:"cost,omitempty"`
	Quantity   *int             `json:"quantity,omitempty"`
	MinLevel   *int             `json:"minLevel,omitempty"`
	Supplier   *string          `json:"supplier,omitempty"`
}

type SaleItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type PostSaleRequest struct {
	Customer string            `json:"customer"`
	Items    []SaleItemRequest `json:"items"`
}

type PurchaseItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
}

type PostPurchaseRequest struct {
	Supplier string                `json:"supplier"`
	Invoice  string                `json:"invoice"`
	Items    []PurchaseItemRequest `json:"items"`
}

// =============================================================================
// MAPPING
// =============================================================================

func toCategoryDTO(c ledger.Category) CategoryDTO {
	return CategoryDTO{ID: string(c.ID), Name: c.Name, Description: c.Description}
}

func toProductDTO(p ledger.Product) ProductDTO {
	return ProductDTO{
		ID:         string(p.ID),
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: string(p.CategoryID),
		Price:      p.Price,
		Cost:       p.Cost,
		Quantity:   p.Quantity,
		MinLevel:   p.MinLevel,
		Supplier:   p.Supplier,
	}
}

func toTransactionDTO(tx ledger.Transaction) TransactionDTO {
	items := make([]TransactionItemDTO, 0, len(tx.Items))
	for _, item := range tx.Items {
		items = append(items, TransactionItemDTO{
			ProductID:   string(item.ProductID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return TransactionDTO{
		ID:                 string(tx.ID),
		Type:               string(tx.Type),
		Date:               tx.Date,
		Items:              items,
		TotalAmount:        tx.TotalAmount,
		CustomerOrSupplier: tx.CustomerOrSupplier,
		InvoiceNumber:      tx.InvoiceNumber,
	}
}

func toStatsDTO(s ledger.Stats) StatsDTO {
	return StatsDTO{
		TotalValue:    s.TotalValue,
		LowStockCount: s.LowStockCount,
		TotalProducts: s.TotalProducts,
		MonthlySales:  s.MonthlySales,
	}
}
