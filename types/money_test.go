package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyRoundTripsExactly(t *testing.T) {
	m := Money{Amount: decimal.RequireFromString("19.99"), Currency: "EUR"}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var out Money
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Amount.Equal(m.Amount), "amount survives a round trip unchanged")
	assert.Equal(t, "EUR", out.Currency)
}

func TestMoneyAcceptsBareNumberAmounts(t *testing.T) {
	// Upstream pipelines send the amount as a JSON number.
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 120.50, "currency": "USD"}`), &m))
	assert.True(t, m.Amount.Equal(decimal.RequireFromString("120.50")))
}
