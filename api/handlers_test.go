package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stock-engine/api"
	"github.com/stockmaster/stock-engine/ledger"
	"github.com/stockmaster/stock-engine/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *ledger.Engine) {
	t.Helper()

	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	engine, err := ledger.New(context.Background(), store.NewMemory(),
		ledger.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	router := api.NewRouter(api.NewHandler(engine), []string{"*"})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, engine
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

func TestListProducts_ReturnsSeedCatalog(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/products", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decodeBody[[]api.ProductDTO](t, resp)
	assert.Len(t, products, 4)
	assert.Equal(t, "LAP-001", products[0].SKU)
}

func TestCreateCategory_ThenList(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/categories", api.CreateCategoryRequest{
		Name:        "Tools",
		Description: "Workshop tools",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[api.CategoryDTO](t, resp)
	assert.NotEmpty(t, created.ID)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categories := decodeBody[[]api.CategoryDTO](t, resp)
	assert.Len(t, categories, 4)
}

func TestCreateProduct_InvalidInput_BadRequest(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/products", api.CreateProductRequest{
		SKU:  "", // required
		Name: "Nameless",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProduct_UnknownID_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	name := "Renamed"
	resp := doJSON(t, http.MethodPut, server.URL+"/api/products/missing", api.UpdateProductRequest{
		Name: &name,
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// POSTING ENDPOINTS
// =============================================================================

func TestPostSale_Success(t *testing.T) {
	server, engine := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sales", api.PostSaleRequest{
		Customer: "Acme",
		Items:    []api.SaleItemRequest{{ProductID: "1", Quantity: 5}},
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tx := decodeBody[api.TransactionDTO](t, resp)
	assert.Equal(t, "SALE", tx.Type)
	assert.True(t, tx.TotalAmount.IntPart() == 6000)
	assert.Equal(t, "Acme", tx.CustomerOrSupplier)

	// Stock really moved.
	for _, p := range engine.Products() {
		if p.ID == "1" {
			assert.Equal(t, 10, p.Quantity)
		}
	}
}

func TestPostSale_InsufficientStock_Conflict(t *testing.T) {
	server, engine := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/sales", api.PostSaleRequest{
		Customer: "Acme",
		Items:    []api.SaleItemRequest{{ProductID: "4", Quantity: 5}},
	})

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody[api.ErrorDTO](t, resp)
	assert.Contains(t, body.Error, "Standing Desk")

	assert.Empty(t, engine.Transactions())
}

func TestPostPurchase_Success(t *testing.T) {
	server, engine := newTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/purchases", api.PostPurchaseRequest{
		Supplier: "FurniWorld",
		Invoice:  "FW-2025-104",
		Items:    []api.PurchaseItemRequest{{ProductID: "3", Quantity: 10, Cost: dec(180)}},
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	tx := decodeBody[api.TransactionDTO](t, resp)
	assert.Equal(t, "PURCHASE", tx.Type)
	assert.Equal(t, "FW-2025-104", tx.InvoiceNumber)

	for _, p := range engine.Products() {
		if p.ID == "3" {
			assert.Equal(t, 18, p.Quantity)
			assert.True(t, p.Cost.IntPart() == 180)
		}
	}
}

// =============================================================================
// REPORTING ENDPOINT
// =============================================================================

func TestGetStats(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody[api.StatsDTO](t, resp)
	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.True(t, stats.TotalValue.IntPart() == 22600)
}

func TestListTransactions_MostRecentFirst(t *testing.T) {
	server, _ := newTestServer(t)

	doJSON(t, http.MethodPost, server.URL+"/api/sales", api.PostSaleRequest{
		Customer: "Acme",
		Items:    []api.SaleItemRequest{{ProductID: "2", Quantity: 1}},
	})
	doJSON(t, http.MethodPost, server.URL+"/api/sales", api.PostSaleRequest{
		Customer: "Globex",
		Items:    []api.SaleItemRequest{{ProductID: "2", Quantity: 1}},
	})

	resp := doJSON(t, http.MethodGet, server.URL+"/api/transactions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs := decodeBody[[]api.TransactionDTO](t, resp)
	require.Len(t, txs, 2)
	assert.Equal(t, "Globex", txs[0].CustomerOrSupplier)
	assert.Equal(t, "Acme", txs[1].CustomerOrSupplier)
}
