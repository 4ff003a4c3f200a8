package preipo

import (
	"math"

	"github.com/shopspring/decimal"
)

// Percent is a value already multiplied by 100: 41.42 means 41.42%.
type Percent float64

// percentTolerance is the difference under which two percentages are the same figure.
const percentTolerance = 0.0001

// Equal reports whether p and q are the same percentage, within percentTolerance.
func (p Percent) Equal(q Percent) bool { return math.Abs(float64(p-q)) < percentTolerance }

// rounded returns p rounded half away from zero to two decimals.
func (p Percent) rounded() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Round(2)
}

// String formats p with two decimals, e.g. "41.42%".
func (p Percent) String() string { return p.rounded().StringFixed(2) + "%" }

// SignedString formats p with an explicit sign, e.g. "+4.12%". A percentage that rounds to
// zero is "-".
func (p Percent) SignedString() string {
	d := p.rounded()
	switch d.Sign() {
	case 0:
		return "-"
	case 1:
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}
