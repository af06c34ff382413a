package private

import (
	"testing"

	"github.com/fxpgr/stonk/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "symbol", CamelCase("symbol"))
	assert.Equal(t, "stopPrice", CamelCase("stop_price"))
	assert.Equal(t, "newOrderRespType", CamelCase("new_order_resp_type"))
	assert.Equal(t, "timeInForce", CamelCase("time__in_force"))
}

func TestOrderRequestFieldTable(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range orderRequestFields {
		assert.Equal(t, CamelCase(f.key), f.wire)
		assert.False(t, seen[f.wire], "duplicate wire key %s", f.wire)
		seen[f.wire] = true
	}
}

func TestNormalizeDropsAbsentFields(t *testing.T) {
	req := &OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     models.Buy,
		Type:     OrderTypeLimit,
		Price:    decimal.NewNullDecimal(decimal.RequireFromString("100.5")),
		Quantity: decimal.NewNullDecimal(decimal.RequireFromString("1")),
	}
	m := req.Normalize()

	assert.Equal(t, map[string]string{
		"symbol":   "BTCUSDT",
		"side":     "BUY",
		"type":     "LIMIT",
		"price":    "100.5",
		"quantity": "1",
	}, m)
	for _, k := range []string{"stopPrice", "timeInForce", "newOrderRespType", "timestamp", "recvWindow"} {
		_, ok := m[k]
		assert.False(t, ok, "%s must be absent", k)
	}
}

func TestNormalizeDecimalsRoundTrip(t *testing.T) {
	values := []string{"97.49999", "0.00001", "123456789.12345", "0.010", "1e3", "100.000000", "0.1"}
	for _, v := range values {
		want := decimal.RequireFromString(v)
		req := &OrderRequest{
			Price:     decimal.NewNullDecimal(want),
			StopPrice: decimal.NewNullDecimal(want),
			Quantity:  decimal.NewNullDecimal(want),
		}
		m := req.Normalize()
		for _, k := range []string{"price", "stopPrice", "quantity"} {
			got, err := decimal.NewFromString(m[k])
			assert.NoError(t, err)
			assert.True(t, want.Equal(got), "%s: %s != %s", k, m[k], v)
		}
	}
	assert.Equal(t, "97.50000", DecimalString(decimal.RequireFromString("97.50000")))
}

func TestValuesMatchNormalize(t *testing.T) {
	req := sellRequest()
	req.RecvWindow = 5000
	m := req.Normalize()
	params := req.Values()
	assert.Len(t, params, len(m))
	for k, v := range m {
		assert.Equal(t, v, params.Get(k))
	}
	assert.Equal(t, "5000", params.Get("recvWindow"))
}
