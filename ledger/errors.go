/*
errors.go - Centralized error types for the stock ledger

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers match with errors.Is against the sentinels, or errors.As
  against the structured types when they need the details.

ERROR CATEGORIES:
  1. Business-rule errors - insufficient stock on a sale
  2. Validation errors    - malformed input to create/update operations
  3. Lookup errors        - an id absent from its collection
  4. Storage errors       - unreadable or incompatible persisted snapshots

PROPAGATION POLICY:
  Every error is a synchronous failure of the originating operation and
  the operation performs no mutation. Persistence failures after a
  successful mutation are logged, never propagated (in-memory state is
  the source of truth for the session).
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInsufficientStock is returned when a sale requests more of a
	// product than is currently in stock. The sale applies nothing.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrValidation is returned when input to a create/update operation
	// is malformed (negative numbers, empty required fields).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation references an id absent
	// from its collection.
	ErrNotFound = errors.New("not found")

	// ErrSchemaVersion is returned when a persisted snapshot carries a
	// schema version this build does not understand.
	ErrSchemaVersion = errors.New("unsupported snapshot schema version")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError identifies the offending product and how short
// the stock is. Requested may aggregate multiple lines for the same
// product within one sale.
type InsufficientStockError struct {
	ProductID   ProductID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError describes a single malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError names the collection and the missing id.
type NotFoundError struct {
	Kind string // "category", "product"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound)
}
