package renderer

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const na = "n/a"

// amount formats v in the options currency, e.g. "$1,095.50B".
func (o Options) amount(v float64) string {
	code := o.Currency
	if code == "" {
		code = money.USD
	}
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, code).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart()) + o.Unit
}

// ratio formats a multiple like "13.33x".
func ratio(v float64) string { return fmt.Sprintf("%.2fx", v) }

// years formats a duration in years.
func years(v float64) string {
	if v == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%.2f years", v)
}

// rate formats a fraction as a percentage: 0.4 is "40%".
func rate(v float64) string {
	return decimal.NewFromFloat(v).Shift(2).String() + "%"
}
