package cli

import (
	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// decimalValue reads a flag straight into a decimal so monetary input
// never passes through a float.
type decimalValue struct {
	d *decimal.Decimal
}

func newDecimalValue(p *decimal.Decimal) *decimalValue {
	return &decimalValue{d: p}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return models.NewError(models.InvalidArgument, "parse decimal", errors.Wrapf(err, "%q is not a decimal", s))
	}
	*v.d = d
	return nil
}

func (v *decimalValue) Type() string {
	return "decimal"
}

type orderFlags struct {
	symbol      string
	price       decimal.Decimal
	target      float64
	ratio       decimal.Decimal
	quantity    decimal.Decimal
	timeInForce string
	autoApprove bool
}
