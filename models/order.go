package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", NewError(InvalidArgument, "parse side", errors.Errorf("unknown side %q", s))
}

func (s Side) String() string {
	return string(s)
}

// OrderIntent is what the operator asked for on one invocation. It is
// passed by value and never modified after construction.
type OrderIntent struct {
	Symbol        string
	Side          Side
	EntryPrice    decimal.Decimal
	TargetPercent float64
	Ratio         decimal.Decimal
	Quantity      decimal.Decimal
	TimeInForce   string
	AutoApprove   bool
}

func (i OrderIntent) Validate() error {
	if strings.TrimSpace(i.Symbol) == "" {
		return NewError(InvalidArgument, "validate intent", errors.New("symbol is required"))
	}
	if i.Side != Buy && i.Side != Sell {
		return NewError(InvalidArgument, "validate intent", errors.Errorf("unknown side %q", i.Side))
	}
	if !i.Quantity.IsPositive() {
		return NewError(InvalidArgument, "validate intent", errors.Errorf("quantity must be positive, got %s", i.Quantity))
	}
	return nil
}

// BracketLevels holds the three derived prices, each at PriceScale
// fractional digits.
type BracketLevels struct {
	TargetPrice decimal.Decimal
	StopPrice   decimal.Decimal
	LimitPrice  decimal.Decimal
}

// PriceScale is the number of fractional digits every derived price
// carries. It matches the exchange tick size and is not configurable.
const PriceScale int32 = 5

// Tick is the separation between the limit and the stop price.
var Tick = decimal.New(1, -PriceScale)

func (l BracketLevels) Plan() string {
	return strings.Join([]string{
		"Target: " + l.TargetPrice.StringFixed(PriceScale),
		"Stop:   " + l.StopPrice.StringFixed(PriceScale),
		"Limit:  " + l.LimitPrice.StringFixed(PriceScale),
	}, "\n")
}

type OrderStatus int

const (
	Confirmed OrderStatus = iota
	Canceled
)

func (s OrderStatus) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Canceled:
		return "canceled"
	}
	return "unknown"
}

type OrderResult struct {
	Status  OrderStatus
	Latency time.Duration

	OrderID        int64
	ClientOrderID  string
	ExchangeStatus string
	// Raw is the exchange response body as received.
	Raw []byte
}

func (r *OrderResult) Canceled() bool {
	return r.Status == Canceled
}

func (r *OrderResult) LatencyMillis() float64 {
	return float64(r.Latency) / float64(time.Millisecond)
}

func (r *OrderResult) String() string {
	if r.Canceled() {
		return "Order canceled"
	}
	return "Order confirmed in: " + strconv.FormatFloat(r.LatencyMillis(), 'f', -1, 64) + "ms"
}

// Err reports a canceled result as a ConfirmationDeclined error, for
// callers that need the outcome as an error value.
func (r *OrderResult) Err() error {
	if r.Canceled() {
		return NewError(ConfirmationDeclined, "submit order", errors.New("order canceled by operator"))
	}
	return nil
}
