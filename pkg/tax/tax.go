// Package tax computes per-order tax breakdowns in whole rupees.
package tax

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// Breakdown is the result of applying a tax percent to a subtotal.
type Breakdown struct {
	Subtotal   int64   `json:"subtotal"`
	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  int64   `json:"tax_amount"`
	Total      int64   `json:"total"`
}

// Calculate returns subtotal, tax and total for the given percent.
// The tax amount is rounded half-up to the whole rupee.
func Calculate(subtotal int64, taxPercent float64) (Breakdown, error) {
	if subtotal < 0 {
		return Breakdown{}, apperror.NewInvalidArgument("subtotal must not be negative, got %d", subtotal)
	}
	if taxPercent < 0 {
		return Breakdown{}, apperror.NewInvalidArgument("tax percent must not be negative, got %v", taxPercent)
	}

	// decimal.Round rounds half away from zero, which is half-up for non-negative input.
	sub := decimal.NewFromInt(subtotal)
	taxAmount := sub.
		Mul(decimal.NewFromFloat(taxPercent)).
		Div(hundred).
		Round(0)
	if sub.Add(taxAmount).GreaterThan(maxAmount) {
		return Breakdown{}, apperror.NewInvalidArgument("total of subtotal %d at %v%% is out of range", subtotal, taxPercent)
	}

	return Breakdown{
		Subtotal:   subtotal,
		TaxPercent: taxPercent,
		TaxAmount:  taxAmount.IntPart(),
		Total:      subtotal + taxAmount.IntPart(),
	}, nil
}
