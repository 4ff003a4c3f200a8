package renderer

import (
	preipo "github.com/stupidvibecoder/pre-ipo"
)

// Report is the renderable view of a preipo.Report. All values are already formatted.
type Report struct {
	Name       string   `json:"name"`
	Founded    int      `json:"founded,omitempty"`
	Summary    []string `json:"summary,omitempty"`
	Computable bool     `json:"computable"`

	// Metrics, only meaningful if Computable.
	Period            string `json:"period,omitempty"`
	Years             string `json:"years,omitempty"`
	CAGR              string `json:"cagr,omitempty"`
	TotalRaised       string `json:"totalRaised,omitempty"`
	Efficiency        string `json:"efficiency,omitempty"`
	BaselineRate      string `json:"baselineRate,omitempty"`
	ExpectedValuation string `json:"expectedValuation,omitempty"`
	LastValuation     string `json:"lastValuation,omitempty"`
	PerformanceDelta  string `json:"performanceDelta,omitempty"`

	Series []SeriesRow `json:"series"`
}

// SeriesRow is one line of the cumulative series table.
type SeriesRow struct {
	On               string `json:"on"`
	Round            string `json:"round"`
	Valuation        string `json:"valuation"`
	Raised           string `json:"raised"`
	CumulativeRaised string `json:"cumulativeRaised"`
}

// NewReport creates the view of r.
func NewReport(r *preipo.Report, opts Options) *Report {
	v := &Report{
		Name:       r.Profile.Name,
		Computable: r.Computable,
	}
	if v.Name == "" {
		v.Name = r.EntityID
	}
	if r.HasProfile {
		v.Founded = r.Profile.Founded
		v.Summary = r.Profile.Summary
	}

	v.Series = seriesRows(r.Series.Points(), opts)

	if !r.Computable {
		return v
	}
	m := r.Metrics
	last, _ := r.Series.Last()
	v.Period = m.From.String() + " to " + m.To.String()
	v.Years = years(m.ElapsedYears)
	v.CAGR = m.CAGR.String()
	v.TotalRaised = opts.amount(m.TotalRaised)
	v.Efficiency = na
	if eff, ok := m.Efficiency(); ok {
		v.Efficiency = ratio(eff)
	}
	v.BaselineRate = rate(m.BaselineRate)
	v.ExpectedValuation = opts.amount(m.ExpectedValuation)
	v.LastValuation = opts.amount(last.Valuation)
	v.PerformanceDelta = m.PerformanceDelta.SignedString()
	return v
}

func seriesRows(points []preipo.Point, opts Options) []SeriesRow {
	rows := make([]SeriesRow, 0, len(points))
	for _, p := range points {
		round := p.Round
		if round == "" {
			round = "-"
		}
		rows = append(rows, SeriesRow{
			On:               p.On.String(),
			Round:            round,
			Valuation:        opts.amount(p.Valuation),
			Raised:           opts.amount(p.Raised),
			CumulativeRaised: opts.amount(p.CumulativeRaised),
		})
	}
	return rows
}

// Index is the renderable view of a list of analyses.
type Index struct {
	BaselineRate string     `json:"baselineRate"`
	Rows         []IndexRow `json:"rows"`
}

// IndexRow summarizes one entity.
type IndexRow struct {
	Name             string `json:"name"`
	Rounds           int    `json:"rounds"`
	LastValuation    string `json:"lastValuation"`
	TotalRaised      string `json:"totalRaised"`
	CAGR             string `json:"cagr"`
	Efficiency       string `json:"efficiency"`
	PerformanceDelta string `json:"performanceDelta"`
}

// NewIndex creates the view of a list of analyses, in the given order.
func NewIndex(as []preipo.Analysis, profiles preipo.Profiles, opts Options) *Index {
	idx := &Index{BaselineRate: na}
	for _, a := range as {
		prof, _ := profiles.Get(a.EntityID)
		last, _ := a.Series.Last()
		row := IndexRow{
			Name:             prof.Name,
			Rounds:           a.Series.Len(),
			LastValuation:    opts.amount(last.Valuation),
			TotalRaised:      opts.amount(a.Series.Total()),
			CAGR:             na,
			Efficiency:       na,
			PerformanceDelta: na,
		}
		if a.Computable {
			idx.BaselineRate = rate(a.Metrics.BaselineRate)
			row.CAGR = a.Metrics.CAGR.String()
			row.PerformanceDelta = a.Metrics.PerformanceDelta.SignedString()
			if eff, ok := a.Metrics.Efficiency(); ok {
				row.Efficiency = ratio(eff)
			}
		}
		idx.Rows = append(idx.Rows, row)
	}
	return idx
}
