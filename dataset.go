package preipo

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/stupidvibecoder/pre-ipo/date"
	"golang.org/x/sync/errgroup"
)

// Dataset groups funding events by entity. Events are kept in the order they were added.
type Dataset struct {
	events map[string][]Event
}

// NewDataset returns a dataset containing events.
func NewDataset(events ...Event) *Dataset {
	d := &Dataset{events: make(map[string][]Event)}
	for _, e := range events {
		d.Add(e)
	}
	return d
}

// Add appends an event to its entity's list.
func (d *Dataset) Add(e Event) {
	d.events[e.EntityID] = append(d.events[e.EntityID], e)
}

// Has reports whether the dataset holds events for that entity.
func (d *Dataset) Has(id string) bool {
	_, ok := d.events[id]
	return ok
}

// Len returns the number of entities.
func (d *Dataset) Len() int { return len(d.events) }

// Entities returns all entity ids in alphabetical order.
func (d *Dataset) Entities() []string {
	ids := make([]string, 0, len(d.events))
	for id := range d.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Events returns a copy of the events of an entity, in input order.
func (d *Dataset) Events(id string) []Event { return slices.Clone(d.events[id]) }

// Filter returns a new dataset with only the events within r.
// Entities without any event in the range are dropped.
func (d *Dataset) Filter(r date.Range) *Dataset {
	f := NewDataset()
	for _, id := range d.Entities() {
		for _, e := range d.events[id] {
			if r.Contains(e.On) {
				f.Add(e)
			}
		}
	}
	return f
}

// Analysis is the result of running the metrics engine on one entity.
type Analysis struct {
	EntityID   string
	Series     CumulativeSeries
	Metrics    Metrics
	Computable bool // false when Metrics could not be computed
}

// Analyze computes the series and the metrics of an entity.
func (d *Dataset) Analyze(id string, rate float64) (Analysis, error) {
	events, ok := d.events[id]
	if !ok {
		return Analysis{}, fmt.Errorf("unknown entity %q", id)
	}
	series, err := BuildCumulativeSeries(events)
	if err != nil {
		return Analysis{}, fmt.Errorf("entity %q: %w", id, err)
	}
	m, computable, err := ComputeMetrics(events, rate)
	if err != nil {
		return Analysis{}, fmt.Errorf("entity %q: %w", id, err)
	}
	return Analysis{EntityID: id, Series: series, Metrics: m, Computable: computable}, nil
}

// AnalyzeAll analyzes every entity concurrently, using at most workers goroutines
// (no limit if workers <= 0). Results are in Entities() order.
// The first error cancels the remaining work.
func (d *Dataset) AnalyzeAll(ctx context.Context, rate float64, workers int) ([]Analysis, error) {
	ids := d.Entities()
	results := make([]Analysis, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := d.Analyze(id, rate)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
