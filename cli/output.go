package cli

import (
	"fmt"
	"io"

	"github.com/Jeffail/gabs"
	"github.com/fatih/color"
	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

func styleResult(r *models.OrderResult) string {
	if r.Canceled() {
		return red(r.String())
	}
	return green(r.String())
}

// printRaw pretty-prints the exchange response body. Bodies that are not
// JSON are written as they came.
func printRaw(w io.Writer, raw []byte) {
	if len(raw) == 0 {
		return
	}
	json, err := gabs.ParseJSON(raw)
	if err != nil {
		fmt.Fprintln(w, string(raw))
		return
	}
	fmt.Fprintln(w, json.StringIndent("", "  "))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, red("Error: "+err.Error()))
	var e *models.Error
	if errors.As(err, &e) && e.Kind == models.ExchangeError && len(e.Payload) > 0 {
		fmt.Fprintln(w, string(e.Payload))
	}
}
