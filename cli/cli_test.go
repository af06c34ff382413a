package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxpgr/stonk/api/private"
	"github.com/fxpgr/stonk/config"
	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderClient struct {
	res      *private.OrderResponse
	err      error
	requests []*private.OrderRequest
}

func (c *fakeOrderClient) PlaceOrder(_ context.Context, req *private.OrderRequest) (*private.OrderResponse, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return c.res, nil
}

type testApp struct {
	*App
	client  *fakeOrderClient
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	cfgPath string
	clients int
}

func newTestApp(t *testing.T, stdin string, interactive bool) *testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stonk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\n"), 0o600))

	ta := &testApp{
		client: &fakeOrderClient{res: &private.OrderResponse{
			OrderID:      28,
			TransactTime: 0,
			Raw:          []byte(`{"orderId":28,"status":"NEW"}`),
		}},
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		cfgPath: path,
	}
	ta.App = &App{
		In:         strings.NewReader(stdin),
		Out:        ta.out,
		Err:        ta.errOut,
		IsTerminal: func() bool { return interactive },
		NewClient: func(cfg *config.AppConfig) (private.OrderClient, error) {
			ta.clients++
			return ta.client, nil
		},
	}
	return ta
}

func (ta *testApp) run(args ...string) int {
	return ta.Run(context.Background(), append(args, "--config", ta.cfgPath))
}

func sellArgs(extra ...string) []string {
	args := []string{"order", "sell",
		"--symbol", "btc/usdt",
		"--price", "100.00000",
		"--target", "0.05",
		"--ratio", "2",
		"--quantity", "0.010",
	}
	return append(args, extra...)
}

func TestSellAutoApprove(t *testing.T) {
	ta := newTestApp(t, "", false)

	code := ta.run(sellArgs("--auto-approve", "--time-in-force", "GTC")...)
	require.Equal(t, 0, code, ta.errOut.String())

	out := ta.out.String()
	assert.Contains(t, out, "Target: 105.00000\nStop:   97.49999\nLimit:  97.50000\n")
	assert.Contains(t, out, "Order confirmed in: ")
	assert.NotContains(t, out, "Proceed?")

	require.Len(t, ta.client.requests, 1)
	assert.Equal(t, 1, ta.clients)
	m := ta.client.requests[0].Normalize()
	assert.Equal(t, "BTCUSDT", m["symbol"])
	assert.Equal(t, "SELL", m["side"])
	assert.Equal(t, "STOP_LOSS_LIMIT", m["type"])
	assert.Equal(t, "97.49999", m["stopPrice"])
	assert.Equal(t, "GTC", m["timeInForce"])
}

func TestBuyConfirmed(t *testing.T) {
	ta := newTestApp(t, "y\n", true)

	code := ta.run("order", "buy",
		"--symbol", "ETHUSDT",
		"--price", "2000",
		"--target", "0.1",
		"--ratio", "3",
		"--quantity", "1.5")
	require.Equal(t, 0, code, ta.errOut.String())
	assert.Contains(t, ta.out.String(), "Proceed? [y/N]: ")
	assert.Contains(t, ta.out.String(), "Order confirmed in: ")

	require.Len(t, ta.client.requests, 1)
	m := ta.client.requests[0].Normalize()
	assert.Equal(t, "LIMIT", m["type"])
	assert.Equal(t, "GTC", m["timeInForce"])
	assert.Equal(t, "FULL", m["newOrderRespType"])
	assert.Equal(t, "2000", m["price"])
	assert.Equal(t, "1.5", m["quantity"])
}

func TestConfirmationDeclined(t *testing.T) {
	ta := newTestApp(t, "n\n", true)

	code := ta.run(sellArgs()...)
	assert.Equal(t, 0, code)
	assert.Contains(t, ta.out.String(), "Order canceled")
	assert.Empty(t, ta.client.requests)
}

func TestNonInteractiveDeclines(t *testing.T) {
	ta := newTestApp(t, "y\n", false)

	code := ta.run(sellArgs()...)
	assert.Equal(t, 0, code)
	assert.Contains(t, ta.out.String(), "Order canceled")
	assert.Empty(t, ta.client.requests)
}

func TestVerbosePrintsResponse(t *testing.T) {
	ta := newTestApp(t, "", false)

	code := ta.run(sellArgs("--auto-approve", "--verbose")...)
	require.Equal(t, 0, code, ta.errOut.String())
	assert.Contains(t, ta.out.String(), `"orderId": 28`)
}

func TestZeroRatioRejected(t *testing.T) {
	ta := newTestApp(t, "", false)

	args := sellArgs("--auto-approve")
	for i, a := range args {
		if a == "--ratio" {
			args[i+1] = "0"
		}
	}
	code := ta.run(args...)
	assert.Equal(t, 1, code)
	assert.Contains(t, ta.errOut.String(), "invalid argument")
	assert.Empty(t, ta.client.requests)
	assert.Equal(t, 0, ta.clients)
}

func TestBadDecimalRejected(t *testing.T) {
	ta := newTestApp(t, "", false)

	args := sellArgs("--auto-approve")
	for i, a := range args {
		if a == "--price" {
			args[i+1] = "1e"
		}
	}
	assert.Equal(t, 1, ta.run(args...))
	assert.Empty(t, ta.client.requests)
}

func TestMissingRequiredFlag(t *testing.T) {
	ta := newTestApp(t, "", false)

	code := ta.run("order", "sell", "--symbol", "BTCUSDT", "--auto-approve")
	assert.Equal(t, 1, code)
	assert.Contains(t, ta.errOut.String(), "required flag")
	assert.Empty(t, ta.client.requests)
}

func TestTimeInForceIsSellOnly(t *testing.T) {
	ta := newTestApp(t, "", false)

	code := ta.run("order", "buy",
		"--symbol", "ETHUSDT",
		"--price", "2000",
		"--target", "0.1",
		"--ratio", "3",
		"--quantity", "1.5",
		"--time-in-force", "IOC",
		"--auto-approve")
	assert.Equal(t, 1, code)
	assert.Contains(t, ta.errOut.String(), "unknown flag")
	assert.Empty(t, ta.client.requests)
}

func TestExchangeErrorSurfaced(t *testing.T) {
	ta := newTestApp(t, "", false)
	e := models.NewError(models.ExchangeError, "request /api/v3/order", errors.New("rejected"))
	e.Code = -1013
	e.Message = "Filter failure: PRICE_FILTER"
	e.Payload = []byte(`{"code":-1013,"msg":"Filter failure: PRICE_FILTER"}`)
	ta.client.err = e

	code := ta.run(sellArgs("--auto-approve")...)
	assert.Equal(t, 1, code)
	assert.Len(t, ta.client.requests, 1)
	assert.Contains(t, ta.errOut.String(), "code=-1013 msg=Filter failure: PRICE_FILTER")
	assert.Contains(t, ta.errOut.String(), `{"code":-1013,"msg":"Filter failure: PRICE_FILTER"}`)
	assert.NotContains(t, ta.out.String(), "Order confirmed")
}
