package preipo

import (
	"fmt"
	"math"

	"github.com/stupidvibecoder/pre-ipo/date"
)

// DaysPerYear converts elapsed calendar days into years.
const DaysPerYear = 365.0

// DefaultBaselineRate is the annual growth assumed for the baseline projection when the caller
// has no better proxy.
const DefaultBaselineRate = 0.40

// Metrics summarizes the growth of an entity between its first and last funding events.
type Metrics struct {
	EntityID          string
	From, To          date.Date // first and last event dates
	ElapsedYears      float64
	CAGR              Percent // compound annual growth rate of the valuation
	TotalRaised       float64
	ExpectedValuation float64 // first valuation projected at BaselineRate
	PerformanceDelta  Percent // last valuation relative to ExpectedValuation
	BaselineRate      float64

	efficiency    float64
	hasEfficiency bool
}

// Efficiency returns the last valuation per unit of capital raised.
// It returns false when no capital was raised on record, which is not a zero efficiency.
func (m Metrics) Efficiency() (float64, bool) { return m.efficiency, m.hasEfficiency }

// ComputeMetrics computes the growth metrics of a single entity.
//
// rate is the baseline annual growth rate as a fraction (0.40 for 40%). It must be finite and
// greater than -1, otherwise ErrInvalidParameter is returned whatever the events.
// Invalid events return an error wrapping ErrInvalidInput.
//
// ok is false, with a nil error, when metrics are not computable for these events: fewer
// than two events, no time elapsed between the first and the last one, a non-positive
// first valuation or a negative last one. No partial metrics are returned in that case.
func ComputeMetrics(events []Event, rate float64) (m Metrics, ok bool, err error) {
	if err := CheckRate(rate); err != nil {
		return Metrics{}, false, err
	}
	if err := validateEvents(events); err != nil {
		return Metrics{}, false, err
	}
	if len(events) < 2 {
		return Metrics{}, false, nil
	}

	events = sorted(events)
	first, last := events[0], events[len(events)-1]

	years := float64(first.On.DaysUntil(last.On)) / DaysPerYear
	if years <= 0 || first.Valuation <= 0 || last.Valuation < 0 {
		return Metrics{}, false, nil
	}

	expected := first.Valuation * math.Pow(1+rate, years)
	if !(expected > 0) || !finite(expected) {
		return Metrics{}, false, nil
	}

	cagr := (math.Pow(last.Valuation/first.Valuation, 1/years) - 1) * 100
	if !finite(cagr) {
		return Metrics{}, false, nil
	}

	total := cumulate(events).Total()
	m = Metrics{
		EntityID:          first.EntityID,
		From:              first.On,
		To:                last.On,
		ElapsedYears:      years,
		CAGR:              Percent(cagr),
		TotalRaised:       total,
		ExpectedValuation: expected,
		PerformanceDelta:  Percent((last.Valuation - expected) / expected * 100),
		BaselineRate:      rate,
	}
	if total > 0 {
		m.efficiency, m.hasEfficiency = last.Valuation/total, true
	}
	return m, true, nil
}

// CheckRate returns an error wrapping ErrInvalidParameter if rate is not a valid baseline
// annual growth rate.
func CheckRate(rate float64) error {
	if !finite(rate) || rate <= -1 {
		return fmt.Errorf("%w: baseline annual growth rate %v must be greater than -1", ErrInvalidParameter, rate)
	}
	return nil
}

// MarshalJSON writes the metrics with a stable field order. valuation_efficiency is omitted
// when absent.
func (m Metrics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("entity", m.EntityID)
	w.Append("from", m.From)
	w.Append("to", m.To)
	w.Append("elapsed_years", m.ElapsedYears)
	w.Append("cagr_percent", float64(m.CAGR))
	w.Append("total_raised", m.TotalRaised)
	if eff, ok := m.Efficiency(); ok {
		w.Append("valuation_efficiency", eff)
	}
	w.Append("baseline_rate", m.BaselineRate)
	w.Append("expected_valuation", m.ExpectedValuation)
	w.Append("performance_delta_percent", float64(m.PerformanceDelta))
	return w.MarshalJSON()
}
