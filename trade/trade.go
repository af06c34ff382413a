// Package trade runs the order submission workflow: show the plan, ask
// for confirmation, place exactly one order and time it.
package trade

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxpgr/stonk/api/private"
	"github.com/fxpgr/stonk/logger"
	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const DefaultTimeInForce = "GTC"

type Submitter struct {
	client             private.OrderClient
	out                io.Writer
	now                func() time.Time
	recvWindow         int64
	defaultTimeInForce string
}

type Option func(*Submitter)

// WithOutput sets where the plan is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Submitter) {
		s.out = w
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Submitter) {
		s.now = now
	}
}

func WithRecvWindow(ms int64) Option {
	return func(s *Submitter) {
		s.recvWindow = ms
	}
}

func WithDefaultTimeInForce(tif string) Option {
	return func(s *Submitter) {
		if tif != "" {
			s.defaultTimeInForce = tif
		}
	}
}

func NewSubmitter(client private.OrderClient, opts ...Option) *Submitter {
	s := &Submitter{
		client:             client,
		out:                os.Stdout,
		now:                time.Now,
		defaultTimeInForce: DefaultTimeInForce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit places the order described by intent and levels. Unless the
// intent is auto-approved, confirm is asked first and a false answer
// ends the run with a canceled result and a nil error; the exchange is
// never contacted in that case. Exchange failures come back as
// ExchangeError and are never retried.
func (s *Submitter) Submit(ctx context.Context, intent models.OrderIntent, levels models.BracketLevels, confirm func() bool) (*models.OrderResult, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	sugar := logger.Get().With("symbol", intent.Symbol, "side", intent.Side)

	if _, err := fmt.Fprintln(s.out, levels.Plan()); err != nil {
		return nil, errors.Wrap(err, "failed to write plan")
	}

	if !intent.AutoApprove && (confirm == nil || !confirm()) {
		sugar.Info("order canceled")
		return &models.OrderResult{Status: models.Canceled}, nil
	}

	req := s.BuildRequest(intent, levels)
	start := s.now()
	req.Timestamp = start.UnixMilli()
	res, err := s.client.PlaceOrder(ctx, req)
	if err != nil {
		if models.KindOf(err) == 0 {
			err = models.NewError(models.ExchangeError, "place order", err)
		}
		sugar.Errorw("order failed", "error", err)
		return nil, err
	}

	var latency time.Duration
	if intent.Side == models.Sell && res.TransactTime != 0 {
		latency = time.Duration(res.TransactTime-req.Timestamp) * time.Millisecond
	} else {
		latency = s.now().Sub(start)
	}

	result := &models.OrderResult{
		Status:         models.Confirmed,
		Latency:        latency,
		OrderID:        res.OrderID,
		ClientOrderID:  res.ClientOrderID,
		ExchangeStatus: res.Status,
		Raw:            res.Raw,
	}
	sugar.Infow("order confirmed", "order_id", result.OrderID, "latency", latency)
	return result, nil
}

// BuildRequest maps an intent to the exchange request, without the
// timestamp. Sells become stop-loss-limit orders triggered at the stop
// price, buys become limit orders.
func (s *Submitter) BuildRequest(intent models.OrderIntent, levels models.BracketLevels) *private.OrderRequest {
	req := &private.OrderRequest{
		Symbol:      intent.Symbol,
		Side:        intent.Side,
		Price:       decimal.NewNullDecimal(intent.EntryPrice),
		Quantity:    decimal.NewNullDecimal(intent.Quantity),
		TimeInForce: intent.TimeInForce,
		RecvWindow:  s.recvWindow,
	}
	switch intent.Side {
	case models.Sell:
		req.Type = private.OrderTypeStopLossLimit
		req.StopPrice = decimal.NewNullDecimal(levels.StopPrice)
		req.NewOrderRespType = private.ResponseTypeResult
	case models.Buy:
		req.Type = private.OrderTypeLimit
		req.NewOrderRespType = private.ResponseTypeFull
		if req.TimeInForce == "" {
			req.TimeInForce = s.defaultTimeInForce
		}
	}
	return req
}
