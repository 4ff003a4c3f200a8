package preipo

import (
	"math"
	"slices"

	"github.com/stupidvibecoder/pre-ipo/date"
)

// Event is one funding observation for one entity: the valuation disclosed on a given day and
// the capital raised in that specific round.
type Event struct {
	EntityID      string
	On            date.Date
	Valuation     float64 // disclosed valuation, in the dataset's unit (e.g. billions)
	CapitalRaised float64 // capital raised in this event, 0 for valuation-only events
	Round         string  // free text, display only
}

// validate checks a single event. i is the event position used for error reporting.
func (e Event) validate(i int) error {
	switch {
	case e.On.IsZero():
		return &InputError{Index: i, EntityID: e.EntityID, Field: "date", Reason: "is missing"}
	case !finite(e.Valuation):
		return &InputError{Index: i, EntityID: e.EntityID, Field: "valuation", Reason: "is not a finite number"}
	case !finite(e.CapitalRaised):
		return &InputError{Index: i, EntityID: e.EntityID, Field: "capital raised", Reason: "is not a finite number"}
	}
	return nil
}

// validateEvents checks every event and that they all belong to the same entity.
func validateEvents(events []Event) error {
	for i, e := range events {
		if err := e.validate(i); err != nil {
			return err
		}
		if e.EntityID != events[0].EntityID {
			return &InputError{Index: i, EntityID: e.EntityID, Field: "entity", Reason: "differs from " + events[0].EntityID}
		}
	}
	return nil
}

// sorted returns a chronologically sorted copy of events. Events on the same day keep their
// relative order.
func sorted(events []Event) []Event {
	s := slices.Clone(events)
	slices.SortStableFunc(s, func(a, b Event) int { return a.On.Compare(b.On) })
	return s
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
