package preipo

import (
	"slices"

	"github.com/stupidvibecoder/pre-ipo/date"
)

// Point is one step of a CumulativeSeries.
type Point struct {
	On               date.Date `json:"on"`
	Round            string    `json:"round,omitempty"`
	Valuation        float64   `json:"valuation"`
	Raised           float64   `json:"raised"`
	CumulativeRaised float64   `json:"cumulative_raised"`
}

// CumulativeSeries is the chronological list of valuations of an entity, paired with the
// capital raised so far. It has one point per event.
type CumulativeSeries struct {
	EntityID string
	points   []Point
}

// BuildCumulativeSeries sorts events by date and accumulates the capital raised.
//
// Events on the same day keep their input order, so the intermediate cumulative value
// attributed to that day depends on it, the final total does not.
// events is never modified. An empty list yields an empty series.
func BuildCumulativeSeries(events []Event) (CumulativeSeries, error) {
	if err := validateEvents(events); err != nil {
		return CumulativeSeries{}, err
	}
	return cumulate(sorted(events)), nil
}

// cumulate computes the series of already sorted and valid events.
func cumulate(events []Event) CumulativeSeries {
	s := CumulativeSeries{points: make([]Point, 0, len(events))}
	if len(events) > 0 {
		s.EntityID = events[0].EntityID
	}
	total := 0.0
	for _, e := range events {
		total += e.CapitalRaised
		s.points = append(s.points, Point{
			On:               e.On,
			Round:            e.Round,
			Valuation:        e.Valuation,
			Raised:           e.CapitalRaised,
			CumulativeRaised: total,
		})
	}
	return s
}

// Len returns the number of points in the series.
func (s CumulativeSeries) Len() int { return len(s.points) }

// Points returns a copy of the points, in chronological order.
func (s CumulativeSeries) Points() []Point { return slices.Clone(s.points) }

// First returns the earliest point, false if the series is empty.
func (s CumulativeSeries) First() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[0], true
}

// Last returns the latest point, false if the series is empty.
func (s CumulativeSeries) Last() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// Total returns the capital raised over the whole series.
func (s CumulativeSeries) Total() float64 {
	p, _ := s.Last()
	return p.CumulativeRaised
}

// AsOf returns the point on a given day, or the most recent one before it.
// When several events share that day, the last one in input order is returned.
// It returns false if the day is before the first point.
func (s CumulativeSeries) AsOf(day date.Date) (Point, bool) {
	// Points are sorted: find the first point strictly after day.
	i, _ := slices.BinarySearchFunc(s.points, day, func(p Point, t date.Date) int {
		if p.On.After(t) {
			return 1
		}
		return -1
	})
	if i == 0 {
		return Point{}, false // No point on or before the given day.
	}
	return s.points[i-1], true
}
