// Package pricing holds the pure monetary math for carts and orders.
// Every function is deterministic and side-effect free; amounts are
// rounded to two decimals with half-away-from-zero semantics only at the
// stages that produce a user-visible figure (tax, tip, total).
package pricing

import (
	"math"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/types"
)

// DefaultTaxRate is the fallback tax rate applied when no per-call rate is
// supplied. Deployments override it through config.
const DefaultTaxRate = 0.08

// Round2 rounds to two decimal places, half away from zero on the scaled
// integer. This matches standard currency rounding for subtotals, tax,
// tips and fees.
func Round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// ModifiersTotal sums the price deltas of the selected modifiers.
func ModifiersTotal(modifiers []types.Modifier) float64 {
	var sum float64
	for _, modifier := range modifiers {
		sum += modifier.Price
	}
	return sum
}

// ItemTotal computes (unit price + modifiers) * quantity at full precision.
// Rounding is deliberately deferred to the aggregate stages.
func ItemTotal(item types.CartItem) float64 {
	if item.MenuItem == nil {
		return 0
	}
	return (item.MenuItem.Price + ModifiersTotal(item.SelectedModifiers)) * float64(item.Quantity)
}

// Subtotal sums the item totals of the whole cart. Zero for an empty cart.
func Subtotal(items []types.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += ItemTotal(item)
	}
	return sum
}

// Tax computes the rounded tax amount for a subtotal at the given rate.
func Tax(subtotal, rate float64) float64 {
	return Round2(subtotal * rate)
}

// Tip computes the rounded tip amount for a subtotal. A negative percentage
// is a contract violation and returns a typed invalid-argument error.
func Tip(subtotal, tipPercent float64) (float64, error) {
	if tipPercent < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidArgument, "tip percentage cannot be negative")
	}
	return Round2(subtotal * tipPercent / 100), nil
}

// Total combines subtotal, tax, tip and discount, clamped so a discount
// larger than the remainder never produces a negative amount due.
func Total(subtotal, tax, tip, discount float64) float64 {
	total := Round2(subtotal + tax + tip - discount)
	return math.Max(0, total)
}

// LoyaltyPoints earns one point per whole currency unit spent.
func LoyaltyPoints(total float64) int {
	return int(math.Floor(total))
}

// LoyaltyDiscount converts points to currency: 100 points buy one unit.
func LoyaltyDiscount(points int) float64 {
	return math.Floor(float64(points) / 100)
}

// IsValidPrice reports whether the value is a finite, non-negative number.
func IsValidPrice(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) && value >= 0
}

// ToCents converts a currency amount to integer cents for storage and
// gateway payloads, rounding half away from zero.
func ToCents(amount float64) int {
	return int(decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// FromCents converts stored cents back to a currency amount.
func FromCents(cents int) float64 {
	return float64(cents) / 100
}
