/*
engine.go - The stock ledger engine

PURPOSE:
  Engine owns the in-memory collections of categories, products, and
  transactions for the lifetime of the process, and exposes the mutation
  operations the presentation layer calls: create/update/delete for
  catalog records, and posting for sales and purchases.

CRITICAL INVARIANTS:
  1. ATOMICITY: Every operation fully applies or fails with no partial
     mutation. A sale with one short line changes nothing.
  2. NON-NEGATIVE STOCK: Product.Quantity >= 0 after every mutation.
  3. RECONCILED TOTALS: Transaction.TotalAmount equals the sum of its
     line items' Quantity*Price, fixed at construction.
  4. IMMUTABLE HISTORY: Transactions are never edited or removed; they
     keep their own name/price snapshots, so deleting a product does not
     disturb past records.

OWNERSHIP:
  Construct one Engine at startup and pass it to consumers; there is no
  ambient global state. A fresh Engine per test gives full isolation.

PERSISTENCE:
  Every successful mutation re-saves all three collections through the
  Store. Persistence is best-effort: a failed save is logged at WARN and
  the operation still succeeds, since in-memory state remains the source
  of truth for the session.

SEE ALSO:
  - stats.go: Derived statistics (pure function of the collections)
  - store.go: Storage slot interface
  - errors.go: Error taxonomy
*/
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine is the authoritative holder of the three collections.
//
// The access model is single logical writer, but HTTP handlers may call
// concurrently, so collections are guarded by a RWMutex.
type Engine struct {
	mu           sync.RWMutex
	categories   []Category
	products     []Product
	transactions []Transaction

	store  Store
	clock  func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithClock injects the time source. Transaction dates, invoice numbers,
// and the stats "current month" all derive from it, which keeps tests
// deterministic.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithIDGenerator injects the identifier source (defaults to UUIDv4).
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New loads the three collections from the store, falling back to the
// built-in seed data for any slot that has never been written. A slot
// that exists but cannot be decoded fails construction: refusing to
// start beats silently discarding saved state.
func New(ctx context.Context, store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:  store,
		clock:  time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := loadSlot(ctx, store, SlotCategories, &e.categories, seedCategories); err != nil {
		return nil, err
	}
	if err := loadSlot(ctx, store, SlotProducts, &e.products, seedProducts); err != nil {
		return nil, err
	}
	if err := loadSlot(ctx, store, SlotTransactions, &e.transactions, func() []Transaction { return nil }); err != nil {
		return nil, err
	}
	return e, nil
}

func loadSlot[T any](ctx context.Context, store Store, slot string, dst *[]T, seed func() []T) error {
	payload, found, err := store.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("load slot %s: %w", slot, err)
	}
	if !found {
		*dst = seed()
		return nil
	}
	if err := decodeSnapshot(payload, dst); err != nil {
		return fmt.Errorf("load slot %s: %w", slot, err)
	}
	return nil
}

// =============================================================================
// READ ACCESSORS
// =============================================================================

// Categories returns the categories in insertion order.
func (e *Engine) Categories() []Category {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Category, len(e.categories))
	copy(out, e.categories)
	return out
}

// Products returns the products in insertion order.
func (e *Engine) Products() []Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Product, len(e.products))
	copy(out, e.products)
	return out
}

// Transactions returns the transaction history, most recent first.
func (e *Engine) Transactions() []Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Transaction, len(e.transactions))
	copy(out, e.transactions)
	return out
}

// =============================================================================
// CATEGORY OPERATIONS
// =============================================================================

// CreateCategory assigns a new unique id and appends the category.
func (e *Engine) CreateCategory(ctx context.Context, name, description string) (Category, error) {
	if name == "" {
		return Category{}, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	category := Category{
		ID:          CategoryID(e.newID()),
		Name:        name,
		Description: description,
	}
	e.categories = append(e.categories, category)
	e.persistLocked(ctx)
	return category, nil
}

// DeleteCategory removes the category. Products referencing it are left
// untouched; their CategoryID becomes an orphaned reference by design.
func (e *Engine) DeleteCategory(ctx context.Context, id CategoryID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, c := range e.categories {
		if c.ID == id {
			e.categories = append(e.categories[:i], e.categories[i+1:]...)
			e.persistLocked(ctx)
			return nil
		}
	}
	return &NotFoundError{Kind: "category", ID: string(id)}
}

// =============================================================================
// PRODUCT OPERATIONS
// =============================================================================

// CreateProduct validates the input, assigns a new unique id, and appends
// the product. CategoryID existence and SKU uniqueness are deliberately
// not checked.
func (e *Engine) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	if err := validateProductInput(input); err != nil {
		return Product{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	product := Product{
		ID:         ProductID(e.newID()),
		SKU:        input.SKU,
		Name:       input.Name,
		CategoryID: input.CategoryID,
		Price:      input.Price,
		Cost:       input.Cost,
		Quantity:   input.Quantity,
		MinLevel:   input.MinLevel,
		Supplier:   input.Supplier,
	}
	e.products = append(e.products, product)
	e.persistLocked(ctx)
	return product, nil
}

// UpdateProduct merges the non-nil fields of update onto the product.
// Each touched field is validated before anything is applied.
func (e *Engine) UpdateProduct(ctx context.Context, id ProductID, update ProductUpdate) (Product, error) {
	if err := validateProductUpdate(update); err != nil {
		return Product{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.findProductLocked(id)
	if !ok {
		return Product{}, &NotFoundError{Kind: "product", ID: string(id)}
	}

	p := &e.products[i]
	if update.SKU != nil {
		p.SKU = *update.SKU
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.CategoryID != nil {
		p.CategoryID = *update.CategoryID
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Cost != nil {
		p.Cost = *update.Cost
	}
	if update.Quantity != nil {
		p.Quantity = *update.Quantity
	}
	if update.MinLevel != nil {
		p.MinLevel = *update.MinLevel
	}
	if update.Supplier != nil {
		p.Supplier = *update.Supplier
	}
	e.persistLocked(ctx)
	return *p, nil
}

// DeleteProduct removes the product. Past transactions keep their own
// name/price snapshots, so history remains valid.
func (e *Engine) DeleteProduct(ctx context.Context, id ProductID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.findProductLocked(id)
	if !ok {
		return &NotFoundError{Kind: "product", ID: string(id)}
	}
	e.products = append(e.products[:i], e.products[i+1:]...)
	e.persistLocked(ctx)
	return nil
}

// =============================================================================
// POSTING - Sales and purchases
// =============================================================================

// PostSale posts a sale: it validates every line against current stock
// before touching anything, then decrements quantities, snapshots each
// line's product name and selling price, and prepends the transaction.
//
// If any line (or the aggregate of lines for the same product) exceeds
// available stock, the whole sale fails with InsufficientStockError and
// no quantity changes.
func (e *Engine) PostSale(ctx context.Context, input SaleInput) (Transaction, error) {
	if err := validateItems(len(input.Items), func(i int) int { return input.Items[i].Quantity }); err != nil {
		return Transaction{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Validation pass: resolve every product and check cumulative
	// requested quantity against stock. Nothing mutates here.
	requested := make(map[ProductID]int, len(input.Items))
	for _, item := range input.Items {
		i, ok := e.findProductLocked(item.ProductID)
		if !ok {
			return Transaction{}, &NotFoundError{Kind: "product", ID: string(item.ProductID)}
		}
		p := e.products[i]
		requested[item.ProductID] += item.Quantity
		if requested[item.ProductID] > p.Quantity {
			return Transaction{}, &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   requested[item.ProductID],
				Available:   p.Quantity,
			}
		}
	}

	// Apply pass: decrement stock and snapshot line items.
	now := e.clock()
	total := decimal.Zero
	items := make([]TransactionItem, 0, len(input.Items))
	for _, item := range input.Items {
		i, _ := e.findProductLocked(item.ProductID)
		p := &e.products[i]
		p.Quantity -= item.Quantity
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, TransactionItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Price:       p.Price,
		})
	}

	tx := Transaction{
		ID:                 TransactionID(e.newID()),
		Type:               TxSale,
		Date:               now,
		Items:              items,
		TotalAmount:        total,
		CustomerOrSupplier: input.Customer,
		InvoiceNumber:      invoiceNumber(now),
	}
	e.transactions = append([]Transaction{tx}, e.transactions...)
	e.persistLocked(ctx)
	return tx, nil
}

// PostPurchase posts a purchase: it increments each product's quantity
// and overwrites its cost with the newly supplied unit cost
// (last-cost-wins; no moving average). Purchases never fail on stock.
func (e *Engine) PostPurchase(ctx context.Context, input PurchaseInput) (Transaction, error) {
	if err := validateItems(len(input.Items), func(i int) int { return input.Items[i].Quantity }); err != nil {
		return Transaction{}, err
	}
	for _, item := range input.Items {
		if item.Cost.IsNegative() {
			return Transaction{}, &ValidationError{Field: "cost", Message: "must not be negative"}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Validation pass: every product must resolve before any mutation.
	for _, item := range input.Items {
		if _, ok := e.findProductLocked(item.ProductID); !ok {
			return Transaction{}, &NotFoundError{Kind: "product", ID: string(item.ProductID)}
		}
	}

	now := e.clock()
	total := decimal.Zero
	items := make([]TransactionItem, 0, len(input.Items))
	for _, item := range input.Items {
		i, _ := e.findProductLocked(item.ProductID)
		p := &e.products[i]
		p.Quantity += item.Quantity
		p.Cost = item.Cost
		lineTotal := item.Cost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, TransactionItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Price:       item.Cost,
		})
	}

	tx := Transaction{
		ID:                 TransactionID(e.newID()),
		Type:               TxPurchase,
		Date:               now,
		Items:              items,
		TotalAmount:        total,
		CustomerOrSupplier: input.Supplier,
		InvoiceNumber:      input.Invoice,
	}
	e.transactions = append([]Transaction{tx}, e.transactions...)
	e.persistLocked(ctx)
	return tx, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

func (e *Engine) findProductLocked(id ProductID) (int, bool) {
	for i, p := range e.products {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// persistLocked re-saves all three collections. Failures are logged and
// swallowed: the mutation has already succeeded in memory.
func (e *Engine) persistLocked(ctx context.Context) {
	e.saveSlotLocked(ctx, SlotCategories, e.categories)
	e.saveSlotLocked(ctx, SlotProducts, e.products)
	e.saveSlotLocked(ctx, SlotTransactions, e.transactions)
}

func (e *Engine) saveSlotLocked(ctx context.Context, slot string, records any) {
	payload, err := encodeSnapshot(records)
	if err != nil {
		e.logger.Warn("encode snapshot failed", "slot", slot, "error", err)
		return
	}
	if err := e.store.Save(ctx, slot, payload); err != nil {
		e.logger.Warn("persist failed, in-memory state remains authoritative", "slot", slot, "error", err)
	}
}

func validateProductInput(input ProductInput) error {
	if input.SKU == "" {
		return &ValidationError{Field: "sku", Message: "must not be empty"}
	}
	if input.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if input.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if input.Cost.IsNegative() {
		return &ValidationError{Field: "cost", Message: "must not be negative"}
	}
	if input.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	if input.MinLevel < 0 {
		return &ValidationError{Field: "minLevel", Message: "must not be negative"}
	}
	return nil
}

func validateProductUpdate(update ProductUpdate) error {
	if update.SKU != nil && *update.SKU == "" {
		return &ValidationError{Field: "sku", Message: "must not be empty"}
	}
	if update.Name != nil && *update.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if update.Price != nil && update.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if update.Cost != nil && update.Cost.IsNegative() {
		return &ValidationError{Field: "cost", Message: "must not be negative"}
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	if update.MinLevel != nil && *update.MinLevel < 0 {
		return &ValidationError{Field: "minLevel", Message: "must not be negative"}
	}
	return nil
}

func validateItems(n int, quantity func(int) int) error {
	if n == 0 {
		return &ValidationError{Field: "items", Message: "at least one item required"}
	}
	for i := 0; i < n; i++ {
		if quantity(i) <= 0 {
			return &ValidationError{Field: "items", Message: "quantity must be positive"}
		}
	}
	return nil
}

// invoiceNumber derives a sale invoice number from the posting time,
// matching the INV-{6 digits} format customers see on receipts.
func invoiceNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return "INV-" + millis
}
