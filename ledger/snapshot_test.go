package ledger

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripPreservesDecimals(t *testing.T) {
	products := []Product{
		{
			ID: "p-1", SKU: "A-1", Name: "Widget", CategoryID: "c-1",
			Price:    decimal.RequireFromString("19.99"),
			Cost:     decimal.RequireFromString("7.25"),
			Quantity: 12, MinLevel: 3, Supplier: "Acme",
		},
	}

	payload, err := encodeSnapshot(products)
	require.NoError(t, err)

	var decoded []Product
	require.NoError(t, decodeSnapshot(payload, &decoded))

	require.Len(t, decoded, 1)
	assert.Equal(t, products[0].ID, decoded[0].ID)
	assert.True(t, decoded[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, decoded[0].Cost.Equal(decimal.RequireFromString("7.25")))
	assert.Equal(t, 12, decoded[0].Quantity)
}

func TestSnapshot_EnvelopeCarriesVersionTag(t *testing.T) {
	payload, err := encodeSnapshot([]Category{{ID: "1", Name: "Electronics"}})
	require.NoError(t, err)

	var env struct {
		SchemaVersion int `json:"schema_version"`
	}
	require.NoError(t, json.Unmarshal(payload, &env))
	assert.Equal(t, SchemaVersion, env.SchemaVersion)
}

func TestSnapshot_UnknownVersionRejected(t *testing.T) {
	// A snapshot written by a future build must fail loudly, not be
	// half-decoded.
	payload := []byte(`{"schema_version": 99, "records": []}`)

	var out []Category
	err := decodeSnapshot(payload, &out)

	assert.ErrorIs(t, err, ErrSchemaVersion)
}

func TestSnapshot_MalformedPayloadRejected(t *testing.T) {
	var out []Category
	assert.Error(t, decodeSnapshot([]byte(`not json`), &out))
}
