package models

import (
	"strings"

	"github.com/pkg/errors"
)

type CurrencyPair struct {
	Trading    string `json:"trading"`
	Settlement string `json:"settlement"`
}

// Symbol is the exchange symbol of the pair, e.g. BTCUSDT.
func (p CurrencyPair) Symbol() string {
	return strings.ToUpper(p.Trading + p.Settlement)
}

// NormalizeSymbol accepts BTCUSDT, btcusdt, BTC_USDT, BTC/USDT or
// BTC-USDT and returns the exchange symbol.
func NormalizeSymbol(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewError(InvalidArgument, "normalize symbol", errors.New("empty symbol"))
	}
	xs := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '/' || r == '-'
	})
	switch len(xs) {
	case 1:
		return strings.ToUpper(xs[0]), nil
	case 2:
		return CurrencyPair{Trading: xs[0], Settlement: xs[1]}.Symbol(), nil
	}
	return "", NewError(InvalidArgument, "normalize symbol", errors.Errorf("invalid symbol %q", s))
}
