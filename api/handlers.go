/*
handlers.go - HTTP API handlers for the stock ledger

PURPOSE:
  Exposes the ledger engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates all business rules to the engine.

ENDPOINTS:
  Categories:
    GET    /api/categories        List categories (insertion order)
    POST   /api/categories        Create category
    DELETE /api/categories/{id}   Delete category

  Products:
    GET    /api/products          List products (insertion order)
    POST   /api/products          Create product
    PUT    /api/products/{id}     Partial update
    DELETE /api/products/{id}     Delete product

  Posting:
    POST   /api/sales             Post a sale
    POST   /api/purchases         Post a purchase
    GET    /api/transactions      Transaction history (most recent first)

  Reporting:
    GET    /api/stats             Derived statistics

ERROR HANDLING:
  Engine errors map to HTTP status by taxonomy:
  - 400: ValidationError (malformed input)
  - 404: NotFoundError (unknown id)
  - 409: InsufficientStockError (sale exceeds stock)
  - 500: anything else

SECURITY NOTE:
  No authentication or authorization; the login screen upstream is a
  stub and does not gate access.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - ledger/engine.go: The operations being exposed
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockmaster/stock-engine/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	Engine *ledger.Engine

	// clock feeds the stats query's "current month"; injectable for tests.
	clock func() time.Time
}

// NewHandler creates a handler backed by the given engine.
func NewHandler(engine *ledger.Engine) *Handler {
	return &Handler{Engine: engine, clock: time.Now}
}

// =============================================================================
// CATEGORY HANDLERS
// =============================================================================

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.Engine.Categories()
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = toCategoryDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.Engine.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(category))
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := ledger.CategoryID(chi.URLParam(r, "id"))
	if err := h.Engine.DeleteCategory(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.Engine.Products()
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.Engine.CreateProduct(r.Context(), ledger.ProductInput{
		SKU:        req.SKU,
		Name:       req.Name,
		CategoryID: ledger.CategoryID(req.CategoryID),
		Price:      req.Price,
		Cost:       req.Cost,
		Quantity:   req.Quantity,
		MinLevel:   req.MinLevel,
		Supplier:   req.Supplier,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(product))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := ledger.ProductID(chi.URLParam(r, "id"))

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := ledger.ProductUpdate{
		SKU:      req.SKU,
		Name:     req.Name,
		Price:    req.Price,
		Cost:     req.Cost,
		Quantity: req.Quantity,
		MinLevel: req.MinLevel,
		Supplier: req.Supplier,
	}
	if req.CategoryID != nil {
		categoryID := ledger.CategoryID(*req.CategoryID)
		update.CategoryID = &categoryID
	}

	product, err := h.Engine.UpdateProduct(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := ledger.ProductID(chi.URLParam(r, "id"))
	if err := h.Engine.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// POSTING HANDLERS
// =============================================================================

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := h.Engine.Transactions()
	dtos := make([]TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = toTransactionDTO(tx)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) PostSale(w http.ResponseWriter, r *http.Request) {
	var req PostSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]ledger.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ledger.SaleItem{
			ProductID: ledger.ProductID(item.ProductID),
			Quantity:  item.Quantity,
		})
	}

	tx, err := h.Engine.PostSale(r.Context(), ledger.SaleInput{Customer: req.Customer, Items: items})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

func (h *Handler) PostPurchase(w http.ResponseWriter, r *http.Request) {
	var req PostPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]ledger.PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ledger.PurchaseItem{
			ProductID: ledger.ProductID(item.ProductID),
			Quantity:  item.Quantity,
			Cost:      item.Cost,
		})
	}

	tx, err := h.Engine.PostPurchase(r.Context(), ledger.PurchaseInput{
		Supplier: req.Supplier,
		Invoice:  req.Invoice,
		Items:    items,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(tx))
}

// =============================================================================
// REPORTING HANDLERS
// =============================================================================

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStatsDTO(h.Engine.Stats(h.clock())))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorDTO{Error: message})
}

// writeDomainError maps the ledger error taxonomy to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientStock):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
