// Package bracket derives the target, limit and stop prices of a bracket
// order from an entry price.
package bracket

import (
	"math"

	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type RoundingMode int

const (
	// HalfUp rounds half away from zero, which is half-up for the
	// strictly positive prices handled here.
	HalfUp RoundingMode = iota
	HalfEven
)

// Rounding is applied to the target and limit prices.
const Rounding = HalfUp

func roundPrice(d decimal.Decimal) decimal.Decimal {
	if Rounding == HalfEven {
		return d.RoundBank(models.PriceScale)
	}
	return d.Round(models.PriceScale)
}

// ComputeLevels returns the bracket around entryPrice. targetPercent is a
// fraction (0.05 for 5%) and ratio is the reward/risk ratio: the loss
// accepted below the entry is the gain aimed for above it divided by ratio.
//
// The limit price sits one tick above the stop price.
func ComputeLevels(entryPrice decimal.Decimal, targetPercent float64, ratio decimal.Decimal) (models.BracketLevels, error) {
	const op = "compute levels"
	if math.IsNaN(targetPercent) || math.IsInf(targetPercent, 0) {
		return models.BracketLevels{}, models.NewError(models.InvalidArgument, op,
			errors.Errorf("target percent must be finite, got %v", targetPercent))
	}
	if targetPercent <= 0 {
		return models.BracketLevels{}, models.NewError(models.InvalidArgument, op,
			errors.Errorf("target percent must be positive, got %v", targetPercent))
	}
	if ratio.IsZero() {
		return models.BracketLevels{}, models.NewError(models.InvalidArgument, op,
			errors.New("ratio must be nonzero"))
	}
	if ratio.IsNegative() {
		return models.BracketLevels{}, models.NewError(models.InvalidArgument, op,
			errors.Errorf("ratio must be positive, got %s", ratio))
	}
	if !entryPrice.IsPositive() {
		return models.BracketLevels{}, models.NewError(models.InvalidArgument, op,
			errors.Errorf("entry price must be positive, got %s", entryPrice))
	}
	if !entryPrice.Equal(entryPrice.Truncate(models.PriceScale)) {
		return models.BracketLevels{}, models.NewError(models.PrecisionError, op,
			errors.Errorf("entry price %s has more than %d fractional digits", entryPrice, models.PriceScale))
	}

	gain := entryPrice.Mul(decimal.NewFromFloat(targetPercent))
	loss := gain.Div(ratio)

	levels := models.BracketLevels{
		TargetPrice: roundPrice(entryPrice.Add(gain)),
		LimitPrice:  roundPrice(entryPrice.Sub(loss)),
	}
	levels.StopPrice = levels.LimitPrice.Sub(models.Tick)

	if !levels.StopPrice.IsPositive() {
		return models.BracketLevels{}, models.NewError(models.InvalidArgument, op,
			errors.Errorf("loss %s leaves no positive stop price below entry %s", loss.Round(models.PriceScale), entryPrice))
	}
	if !levels.TargetPrice.GreaterThan(entryPrice) || !levels.LimitPrice.LessThan(entryPrice) {
		return models.BracketLevels{}, models.NewError(models.PrecisionError, op,
			errors.Errorf("gain %s or loss %s vanishes at %d fractional digits", gain, loss, models.PriceScale))
	}
	return levels, nil
}
