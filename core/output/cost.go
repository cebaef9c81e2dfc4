package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// CostProjection prices an hour total at a flat hourly rate
type CostProjection struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
}

// ProjectCost multiplies hours by rate. The amount keeps full precision;
// rounding happens in String.
func ProjectCost(hours float64, rate decimal.Decimal, currency string) *CostProjection {
	return &CostProjection{
		HourlyRate: rate,
		Currency:   currency,
		Amount:     decimal.NewFromFloat(hours).Mul(rate),
	}
}

// String renders e.g. "€62,280" with whole currency units
func (c *CostProjection) String() string {
	whole := c.Amount.Round(0)
	return c.Currency + humanize.Comma(whole.IntPart())
}

// RateLabel renders e.g. "€100/h"
func (c *CostProjection) RateLabel() string {
	return fmt.Sprintf("%s%s/h", c.Currency, c.HourlyRate.String())
}
