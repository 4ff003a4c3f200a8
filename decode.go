package preipo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stupidvibecoder/pre-ipo/date"
	"github.com/xuri/excelize/v2"
)

// This file decodes tabular funding data: one row per event with the columns entity, date,
// valuation, capital raised and an optional round label.
//
// Column names are matched case-insensitively and a trailing unit in parentheses is ignored,
// so "Valuation ($B)" is the valuation column.

// columnNames maps each accepted (normalized) header to its column.
var columnNames = map[string]string{
	"company":        colEntity,
	"entity":         colEntity,
	"entity_id":      colEntity,
	"name":           colEntity,
	"date":           colDate,
	"on":             colDate,
	"timestamp":      colDate,
	"valuation":      colValuation,
	"capital_raised": colRaised,
	"raised":         colRaised,
	"capital":        colRaised,
	"amount_raised":  colRaised,
	"round":          colRound,
	"round_label":    colRound,
	"stage":          colRound,
}

const (
	colEntity    = "entity"
	colDate      = "date"
	colValuation = "valuation"
	colRaised    = "capital raised"
	colRound     = "round"
)

// columns holds the index of each known column in a row, -1 when absent.
type columns struct {
	entity, on, valuation, raised, round int

	serials bool // dates may be spreadsheet serial numbers
}

// normalizeHeader turns "Valuation ($B)" into "valuation".
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if i := strings.Index(h, "("); i >= 0 {
		h = strings.TrimSpace(h[:i])
	}
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// parseHeader locates the known columns. entity, date and valuation are mandatory.
func parseHeader(header []string) (columns, error) {
	c := columns{entity: -1, on: -1, valuation: -1, raised: -1, round: -1}
	for i, h := range header {
		var target *int
		switch columnNames[normalizeHeader(h)] {
		case colEntity:
			target = &c.entity
		case colDate:
			target = &c.on
		case colValuation:
			target = &c.valuation
		case colRaised:
			target = &c.raised
		case colRound:
			target = &c.round
		default:
			continue // unknown columns are ignored
		}
		if *target >= 0 {
			return c, fmt.Errorf("duplicate column %q", h)
		}
		*target = i
	}
	switch {
	case c.entity < 0:
		return c, fmt.Errorf("missing %s column", colEntity)
	case c.on < 0:
		return c, fmt.Errorf("missing %s column", colDate)
	case c.valuation < 0:
		return c, fmt.Errorf("missing %s column", colValuation)
	}
	return c, nil
}

// cell returns the trimmed value at i, empty if the row is too short or i < 0.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isBlank reports whether all cells in the row are empty.
func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var errEmpty = errors.New("is empty")

// parseAmount parses a number like "1,250.5", "$40" or "1_000". Amounts are read as
// decimals so that "0.1" is the closest float to 0.1 and not a rounding of it.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer(",", "", "_", "", "$", "", " ", "").Replace(s)
	if s == "" {
		return 0, errEmpty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("is not a number: %w", err)
	}
	return d.InexactFloat64(), nil
}

// parseDay parses an ISO date, or a spreadsheet date serial number if serials is set.
func parseDay(s string, serials bool) (date.Date, error) {
	if s == "" {
		return date.Date{}, errEmpty
	}
	on, err := date.Parse(s)
	if err == nil || !serials {
		return on, err
	}
	serial, serr := decimal.NewFromString(s)
	if serr != nil {
		return date.Date{}, err
	}
	t, terr := excelize.ExcelDateToTime(serial.InexactFloat64(), false)
	if terr != nil {
		return date.Date{}, err
	}
	return date.FromTime(t), nil
}

// event decodes a row into an Event.
func (c columns) event(row []string) (Event, error) {
	e := Event{
		EntityID: cell(row, c.entity),
		Round:    cell(row, c.round),
	}
	if e.EntityID == "" {
		return e, fmt.Errorf("%s %w", colEntity, errEmpty)
	}
	var err error
	if e.On, err = parseDay(cell(row, c.on), c.serials); err != nil {
		return e, fmt.Errorf("%s %w", colDate, err)
	}
	if e.Valuation, err = parseAmount(cell(row, c.valuation)); err != nil {
		return e, fmt.Errorf("%s %w", colValuation, err)
	}
	if c.raised >= 0 {
		e.CapitalRaised, err = parseAmount(cell(row, c.raised))
		if err != nil && !errors.Is(err, errEmpty) {
			return e, fmt.Errorf("%s %w", colRaised, err)
		}
	}
	return e, nil
}

// decodeRows builds a dataset from a header row followed by data rows.
// line returns the human line number of the row i for error messages.
// serials accepts spreadsheet date serial numbers in the date column.
func decodeRows(rows [][]string, line func(i int) int, serials bool) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	c, err := parseHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line(0), err)
	}
	c.serials = serials
	d := NewDataset()
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		e, err := c.event(rows[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line(i), err)
		}
		d.Add(e)
	}
	return d, nil
}

// DecodeCSV reads a CSV document with a header row.
func DecodeCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // short rows are allowed, missing cells are empty
	cr.TrimLeadingSpace = true

	var rows [][]string
	var lines []int
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		l, _ := cr.FieldPos(0)
		rows, lines = append(rows, row), append(lines, l)
	}
	d, err := decodeRows(rows, func(i int) int { return lines[i] }, false)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return d, nil
}

// DecodeXLSX reads a spreadsheet sheet with a header row. An empty sheet name selects the
// first sheet of the workbook.
func DecodeXLSX(r io.Reader, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	d, err := decodeRows(rows, func(i int) int { return i + 1 }, true)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", sheet, err)
	}
	return d, nil
}
