package preipo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/stupidvibecoder/pre-ipo/date"
)

// DefaultSelector selects every element of a top level JSON array.
const DefaultSelector = "$[*]"

// jevent is the JSON representation of an Event.
type jevent struct {
	Entity    string    `json:"entity"`
	On        date.Date `json:"on"`
	Valuation *float64  `json:"valuation"`
	Raised    float64   `json:"raised"`
	Round     string    `json:"round"`
}

func (j jevent) event() (Event, error) {
	switch {
	case j.Entity == "":
		return Event{}, fmt.Errorf("missing the property %q", "entity")
	case j.On.IsZero():
		return Event{}, fmt.Errorf("missing the property %q", "on")
	case j.Valuation == nil:
		return Event{}, fmt.Errorf("missing the property %q", "valuation")
	}
	return Event{
		EntityID:      j.Entity,
		On:            j.On,
		Valuation:     *j.Valuation,
		CapitalRaised: j.Raised,
		Round:         j.Round,
	}, nil
}

// DecodeJSONL reads events encoded one per line. Empty lines are ignored.
func DecodeJSONL(r io.Reader) (*Dataset, error) {
	d := NewDataset()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var j jevent
		if err := json.Unmarshal(line, &j); err != nil {
			return nil, fmt.Errorf("parse error line %d: not a correct json: %w", i, err)
		}
		e, err := j.event()
		if err != nil {
			return nil, fmt.Errorf("parse error line %d: %w", i, err)
		}
		d.Add(e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonl: %w", err)
	}
	return d, nil
}

// DecodeJSON reads a JSON document and decodes the event objects picked by selector, a
// JSONPath expression such as "$.companies[*].rounds[*]". An empty selector means
// DefaultSelector.
func DecodeJSON(r io.Reader, selector string) (*Dataset, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse error: not a correct json: %w", err)
	}
	jval, err := jsonpath.Get(selector, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", selector, err)
	}
	// jsonpath returns a single value for definite paths and a list otherwise.
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}

	d := NewDataset()
	for i, jobj := range jlist {
		// Go through the JSON representation again to reuse jevent's decoding.
		raw, err := json.Marshal(jobj)
		if err != nil {
			return nil, fmt.Errorf("element #%d of %q: %w", i, selector, err)
		}
		var j jevent
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("element #%d of %q: %w", i, selector, err)
		}
		e, err := j.event()
		if err != nil {
			return nil, fmt.Errorf("element #%d of %q: %w", i, selector, err)
		}
		d.Add(e)
	}
	return d, nil
}

// EncodeJSONL writes the dataset one event per line, entities in alphabetical order and
// events in chronological order.
func EncodeJSONL(w io.Writer, d *Dataset) error {
	for _, id := range d.Entities() {
		for _, e := range sorted(d.events[id]) {
			var o jsonObjectWriter
			o.Append("entity", e.EntityID)
			o.Append("on", e.On)
			o.Append("valuation", e.Valuation)
			o.Optional("raised", e.CapitalRaised)
			o.Optional("round", e.Round)
			line, err := o.MarshalJSON()
			if err != nil {
				return fmt.Errorf("encoding %s on %s: %w", e.EntityID, e.On, err)
			}
			line = append(line, '\n')
			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return nil
}
