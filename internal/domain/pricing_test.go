package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullDec(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func TestNormalizePricing_DiscountWithoutCompareAt(t *testing.T) {
	price, cmp := NormalizePricing(dec("100"), decimal.NullDecimal{}, 20)

	require.True(t, cmp.Valid)
	assert.True(t, cmp.Decimal.Equal(dec("100")), cmp.Decimal.String())
	assert.True(t, price.Equal(dec("80")), price.String())
}

func TestNormalizePricing_NoDiscountCopiesPrice(t *testing.T) {
	price, cmp := NormalizePricing(dec("49.99"), decimal.NullDecimal{}, 0)

	require.True(t, cmp.Valid)
	assert.True(t, cmp.Decimal.Equal(dec("49.99")))
	assert.True(t, price.Equal(dec("49.99")))
}

func TestNormalizePricing_NoDiscountKeepsCompareAt(t *testing.T) {
	price, cmp := NormalizePricing(dec("40"), nullDec("50"), 0)

	assert.True(t, cmp.Decimal.Equal(dec("50")))
	assert.True(t, price.Equal(dec("40")))
}

func TestNormalizePricing_RoundsToCents(t *testing.T) {
	price, _ := NormalizePricing(dec("0"), nullDec("19.99"), 15)
	assert.Equal(t, "16.99", price.StringFixed(2))
}

func TestNormalizePricing_RepeatedSavesDoNotCompound(t *testing.T) {
	price, cmp := NormalizePricing(dec("100"), decimal.NullDecimal{}, 20)
	for i := 0; i < 5; i++ {
		price, cmp = NormalizePricing(price, cmp, 20)
	}
	assert.True(t, price.Equal(dec("80")), price.String())
	assert.True(t, cmp.Decimal.Equal(dec("100")))
}

func TestNormalizePricing_FullDiscount(t *testing.T) {
	price, _ := NormalizePricing(dec("10"), nullDec("10"), 100)
	assert.True(t, price.IsZero())
	assert.False(t, price.IsNegative())
}

func TestSalePriceAndDiscountAmount(t *testing.T) {
	assert.True(t, SalePrice(dec("80"), 20).Equal(dec("64")))
	assert.True(t, SalePrice(dec("80"), 0).Equal(dec("80")))
	assert.True(t, DiscountAmount(dec("80"), 20).Equal(dec("16")))
	assert.True(t, DiscountAmount(dec("80"), 0).IsZero())
}

func TestValidatePricing(t *testing.T) {
	tests := []struct {
		name      string
		price     decimal.Decimal
		cmp, cost decimal.NullDecimal
		pct       int
		field     string
	}{
		{"ok", dec("10"), nullDec("12"), nullDec("5"), 10, ""},
		{"discount above range", dec("10"), decimal.NullDecimal{}, decimal.NullDecimal{}, 101, "discount_percentage"},
		{"discount below range", dec("10"), decimal.NullDecimal{}, decimal.NullDecimal{}, -1, "discount_percentage"},
		{"negative price", dec("-1"), decimal.NullDecimal{}, decimal.NullDecimal{}, 0, "price"},
		{"compare at below price", dec("10"), nullDec("9"), decimal.NullDecimal{}, 0, "compare_at_price"},
		{"cost above price", dec("10"), decimal.NullDecimal{}, nullDec("11"), 0, "cost_price"},
		{"cost above discounted price", dec("100"), decimal.NullDecimal{}, nullDec("90"), 20, "cost_price"},
		{"compare at above discounted price", dec("80"), nullDec("70"), decimal.NullDecimal{}, 20, ""},
		{"cost at discounted price", dec("100"), decimal.NullDecimal{}, nullDec("80"), 20, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePricing(tt.price, tt.cmp, tt.cost, tt.pct)
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestDimensions(t *testing.T) {
	assert.Equal(t, "10.00×20.00×5.50 cm", Dimensions(nullDec("10"), nullDec("20"), nullDec("5.5"), "cm"))
	assert.Equal(t, "", Dimensions(nullDec("10"), decimal.NullDecimal{}, nullDec("5"), "cm"))
}
