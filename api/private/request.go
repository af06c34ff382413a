package private

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/fxpgr/stonk/models"
	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeLimit         OrderType = "LIMIT"
	OrderTypeStopLossLimit OrderType = "STOP_LOSS_LIMIT"
)

type ResponseType string

const (
	ResponseTypeAck    ResponseType = "ACK"
	ResponseTypeResult ResponseType = "RESULT"
	ResponseTypeFull   ResponseType = "FULL"
)

// OrderRequest is one new-order call. Zero strings, invalid decimals and
// zero integers are absent and never reach the wire.
type OrderRequest struct {
	Symbol           string
	Side             models.Side
	Type             OrderType
	Price            decimal.NullDecimal
	StopPrice        decimal.NullDecimal
	Quantity         decimal.NullDecimal
	TimeInForce      string
	NewOrderRespType ResponseType
	// Timestamp is in milliseconds since the epoch.
	Timestamp  int64
	RecvWindow int64
}

type requestField struct {
	key   string
	wire  string
	value func(r *OrderRequest) (string, bool)
}

func stringField(get func(r *OrderRequest) string) func(r *OrderRequest) (string, bool) {
	return func(r *OrderRequest) (string, bool) {
		v := get(r)
		return v, v != ""
	}
}

func decimalField(get func(r *OrderRequest) decimal.NullDecimal) func(r *OrderRequest) (string, bool) {
	return func(r *OrderRequest) (string, bool) {
		v := get(r)
		if !v.Valid {
			return "", false
		}
		return DecimalString(v.Decimal), true
	}
}

func intField(get func(r *OrderRequest) int64) func(r *OrderRequest) (string, bool) {
	return func(r *OrderRequest) (string, bool) {
		v := get(r)
		return strconv.FormatInt(v, 10), v != 0
	}
}

var orderRequestFields = []requestField{
	{"symbol", "symbol", stringField(func(r *OrderRequest) string { return r.Symbol })},
	{"side", "side", stringField(func(r *OrderRequest) string { return string(r.Side) })},
	{"type", "type", stringField(func(r *OrderRequest) string { return string(r.Type) })},
	{"price", "price", decimalField(func(r *OrderRequest) decimal.NullDecimal { return r.Price })},
	{"stop_price", "stopPrice", decimalField(func(r *OrderRequest) decimal.NullDecimal { return r.StopPrice })},
	{"quantity", "quantity", decimalField(func(r *OrderRequest) decimal.NullDecimal { return r.Quantity })},
	{"time_in_force", "timeInForce", stringField(func(r *OrderRequest) string { return r.TimeInForce })},
	{"new_order_resp_type", "newOrderRespType", stringField(func(r *OrderRequest) string { return string(r.NewOrderRespType) })},
	{"timestamp", "timestamp", intField(func(r *OrderRequest) int64 { return r.Timestamp })},
	{"recv_window", "recvWindow", intField(func(r *OrderRequest) int64 { return r.RecvWindow })},
}

// Normalize returns the request keyed by wire names with absent fields
// left out.
func (r *OrderRequest) Normalize() map[string]string {
	m := make(map[string]string, len(orderRequestFields))
	for _, f := range orderRequestFields {
		if v, ok := f.value(r); ok {
			m[f.wire] = v
		}
	}
	return m
}

func (r *OrderRequest) Values() url.Values {
	params := url.Values{}
	for k, v := range r.Normalize() {
		params.Set(k, v)
	}
	return params
}

// DecimalString keeps the scale the value was given with, so 97.50000
// stays 97.50000.
func DecimalString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// CamelCase turns stop_price into stopPrice.
func CamelCase(key string) string {
	words := strings.Split(key, "_")
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		rs := []rune(strings.ToLower(w))
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	return b.String()
}
