package domain

import "github.com/shopspring/decimal"

type StockStatus string

const (
	InStockStatus    StockStatus = "In Stock"
	LowStockStatus   StockStatus = "Low Stock"
	OutOfStockStatus StockStatus = "Out of Stock"
)

const (
	DefaultLowStockThreshold = 10
	VariantLowStockThreshold = 5
)

func InStock(stock int, manage bool) bool {
	return !manage || stock > 0
}

func LowStock(stock, threshold int, manage bool) bool {
	return manage && stock > 0 && stock <= threshold
}

func StockStatusOf(stock, threshold int, manage bool) StockStatus {
	switch {
	case !manage:
		return InStockStatus
	case stock <= 0:
		return OutOfStockStatus
	case stock <= threshold:
		return LowStockStatus
	default:
		return InStockStatus
	}
}

func VariantStockStatus(stock int) StockStatus {
	return StockStatusOf(stock, VariantLowStockThreshold, true)
}

func VariantFinalPrice(productPrice, modifier decimal.Decimal) decimal.Decimal {
	return productPrice.Add(modifier)
}

func VariantFinalWeight(productWeight decimal.NullDecimal, modifier decimal.Decimal) decimal.Decimal {
	base := decimal.Zero
	if productWeight.Valid {
		base = productWeight.Decimal
	}
	return base.Add(modifier)
}
