package calculation

import (
	"fmt"

	"github.com/retireplan/spendgo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// InflationAdjuster converts today's-dollars amounts into nominal amounts
// for later years by compounding an annual rate from the start year.
type InflationAdjuster struct{}

// NewInflationAdjuster creates a new inflation adjuster
func NewInflationAdjuster() *InflationAdjuster {
	return &InflationAdjuster{}
}

// Adjust compounds realAmount by (1+rate)^yearOffset. Offset 0 returns the
// amount unchanged for any rate. The result keeps full precision; rounding
// to currency happens only at final output.
func (ia *InflationAdjuster) Adjust(realAmount decimal.Decimal, yearOffset int, rate decimal.Decimal) (decimal.Decimal, error) {
	if realAmount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %s is negative", domain.ErrInvalidInput, realAmount)
	}
	if yearOffset < 0 {
		return decimal.Zero, fmt.Errorf("%w: year offset %d is negative", domain.ErrInvalidInput, yearOffset)
	}
	if yearOffset == 0 {
		return realAmount, nil
	}
	growth := one.Add(rate)
	if growth.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: rate %s implies more than total deflation in a year", domain.ErrInvalidInput, rate)
	}
	factor := growth.Pow(decimal.NewFromInt(int64(yearOffset)))
	return realAmount.Mul(factor), nil
}
