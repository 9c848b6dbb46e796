package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	MinDiscount = 0
	MaxDiscount = 100
)

var hundred = decimal.NewFromInt(100)

func percentOf(amount decimal.Decimal, pct int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
}

// SalePrice applies pct on top of price. The stored price of a discounted
// product is already reduced, so for those this is a second reduction.
func SalePrice(price decimal.Decimal, pct int) decimal.Decimal {
	if pct <= 0 {
		return price
	}
	return price.Sub(percentOf(price, pct))
}

func DiscountAmount(price decimal.Decimal, pct int) decimal.Decimal {
	if pct <= 0 {
		return decimal.Zero
	}
	return percentOf(price, pct)
}

func unset(d decimal.NullDecimal) bool {
	return !d.Valid || d.Decimal.IsZero()
}

// NormalizePricing derives the stored price from compare_at and pct.
// With a discount the result depends only on compare_at, so running it
// again on its own output changes nothing.
func NormalizePricing(price decimal.Decimal, compareAt decimal.NullDecimal, pct int) (decimal.Decimal, decimal.NullDecimal) {
	if unset(compareAt) && pct > 0 {
		compareAt = decimal.NewNullDecimal(price)
	}
	switch {
	case pct > 0:
		price = compareAt.Decimal.Sub(percentOf(compareAt.Decimal, pct)).Round(2)
	case unset(compareAt):
		compareAt = decimal.NewNullDecimal(price)
	}
	return price, compareAt
}

// ValidatePricing returns a field -> message map, empty when the input is acceptable.
// compare_at and cost are checked against the price NormalizePricing will store.
func ValidatePricing(price decimal.Decimal, compareAt, cost decimal.NullDecimal, pct int) map[string]string {
	errs := map[string]string{}
	if pct < MinDiscount || pct > MaxDiscount {
		errs["discount_percentage"] = fmt.Sprintf("must be between %d and %d", MinDiscount, MaxDiscount)
	}
	if price.IsNegative() {
		errs["price"] = "must not be negative"
	}
	if compareAt.Valid && compareAt.Decimal.IsNegative() {
		errs["compare_at_price"] = "must not be negative"
	}
	if cost.Valid && cost.Decimal.IsNegative() {
		errs["cost_price"] = "must not be negative"
	}
	if len(errs) > 0 {
		return errs
	}

	stored, _ := NormalizePricing(price, compareAt, pct)
	if compareAt.Valid && compareAt.Decimal.LessThan(stored) {
		errs["compare_at_price"] = "must not be less than price"
	}
	if cost.Valid && cost.Decimal.GreaterThan(stored) {
		errs["cost_price"] = "must not be greater than price"
	}
	return errs
}
