package private

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fxpgr/stonk/logger"
	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	BINANCE_BASE_URL = "https://api.binance.com"
)

func NewBinanceApi(apikey func() (string, error), apisecret func() (string, error)) (*BinanceApi, error) {
	if apikey == nil || apisecret == nil {
		return nil, models.NewError(models.InvalidArgument, "new binance api", errors.New("credentials are required"))
	}
	return &BinanceApi{
		BaseURL:       BINANCE_BASE_URL,
		ApiKeyFunc:    apikey,
		SecretKeyFunc: apisecret,
		HttpClient:    http.Client{Timeout: 10 * time.Second},
	}, nil
}

type BinanceApi struct {
	ApiKeyFunc    func() (string, error)
	SecretKeyFunc func() (string, error)
	BaseURL       string
	// TestOrder routes orders to the validation endpoint, which checks
	// and signs them like real ones but never reaches the matching engine.
	TestOrder  bool
	HttpClient http.Client
}

type OrderResponse struct {
	Symbol        string
	OrderID       int64
	ClientOrderID string
	// TransactTime is in milliseconds since the epoch, 0 when the
	// response does not carry it.
	TransactTime int64
	Status       string
	Raw          []byte
}

func (h *BinanceApi) orderPath() string {
	if h.TestOrder {
		return "/api/v3/order/test"
	}
	return "/api/v3/order"
}

func (h *BinanceApi) privateApi(ctx context.Context, method string, path string, params url.Values) ([]byte, error) {
	if params.Get("timestamp") == "" {
		params.Set("timestamp", fmt.Sprintf("%d", time.Now().UnixMilli()))
	}

	apiKey, err := h.ApiKeyFunc()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request command %s", path)
	}
	secKey, err := h.SecretKeyFunc()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request command %s", path)
	}
	query := params.Encode()
	signature, err := GetParamHmacSHA256HexSign(secKey, query)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign request command %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.BaseURL+path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request command %s", path)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-MBX-APIKEY", apiKey)
	req.URL.RawQuery = query + "&signature=" + signature

	res, err := h.HttpClient.Do(req)
	if err != nil {
		e := models.NewError(models.ExchangeError, "request "+path, errors.Wrapf(err, "failed to request command %s", path))
		return nil, e
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, models.NewError(models.ExchangeError, "request "+path, errors.Wrapf(err, "failed to fetch result of command %s", path))
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, exchangeError("request "+path, res.StatusCode, resBody)
	}
	return resBody, nil
}

func (h *BinanceApi) PlaceOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error) {
	path := h.orderPath()
	logger.Get().Debugw("placing order",
		"path", path,
		"symbol", req.Symbol,
		"side", req.Side,
		"type", req.Type)

	byteArray, err := h.privateApi(ctx, http.MethodPost, path, req.Values())
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(byteArray) {
		e := models.NewError(models.ExchangeError, "place order", errors.Errorf("malformed response %q", string(byteArray)))
		e.Payload = byteArray
		return nil, e
	}
	value := gjson.ParseBytes(byteArray)
	return &OrderResponse{
		Symbol:        value.Get("symbol").Str,
		OrderID:       value.Get("orderId").Int(),
		ClientOrderID: value.Get("clientOrderId").Str,
		TransactTime:  value.Get("transactTime").Int(),
		Status:        value.Get("status").Str,
		Raw:           byteArray,
	}, nil
}
