package private

import (
	"context"
	"strings"
	"time"

	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
)

// OrderClient places orders on an exchange. One handle is built per
// process and handed to whatever submits orders.
type OrderClient interface {
	PlaceOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error)
}

type Options struct {
	BaseURL   string
	TestOrder bool
	Timeout   time.Duration
}

func NewClient(exchangeName string, apikey func() (string, error), seckey func() (string, error), opts Options) (OrderClient, error) {
	switch strings.ToLower(exchangeName) {
	case "binance":
		api, err := NewBinanceApi(apikey, seckey)
		if err != nil {
			return nil, err
		}
		if opts.BaseURL != "" {
			api.BaseURL = strings.TrimRight(opts.BaseURL, "/")
		}
		api.TestOrder = opts.TestOrder
		if opts.Timeout > 0 {
			api.HttpClient.Timeout = opts.Timeout
		}
		return api, nil
	}
	return nil, models.NewError(models.InvalidArgument, "new client",
		errors.Errorf("failed to init exchange api %q", exchangeName))
}
