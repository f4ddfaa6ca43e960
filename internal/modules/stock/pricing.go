package stock

import (
	"math"

	"github.com/shopspring/decimal"
)

// Upper bounds of the stocks.quantity INTEGER and stocks.price NUMERIC(12, 2) columns.
const (
	MaxQuantity = math.MaxInt32
	MaxPrice    = 9999999999.99
)

var hundred = decimal.NewFromInt(100)

// discountedPrice returns price reduced by percentage, rounded to currency precision.
func discountedPrice(price, percentage float64) float64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percentage).Div(hundred))
	v, _ := decimal.NewFromFloat(price).Mul(factor).Round(2).Float64()
	return v
}

// roundPrice normalises a client-supplied price to currency precision.
func roundPrice(price float64) float64 {
	v, _ := decimal.NewFromFloat(price).Round(2).Float64()
	return v
}
