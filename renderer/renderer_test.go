package renderer

import (
	"strings"
	"testing"

	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var opts = Options{Currency: "USD", Unit: "B"}

func testDataset() *preipo.Dataset {
	return preipo.NewDataset(
		preipo.Event{EntityID: "Acme", On: date.New(2024, 1, 1), Valuation: 40, CapitalRaised: 2, Round: "Series B"},
		preipo.Event{EntityID: "Acme", On: date.New(2020, 1, 2), Valuation: 10, CapitalRaised: 1, Round: "Series A"},
		preipo.Event{EntityID: "Solo", On: date.New(2021, 3, 1), Valuation: 5},
	)
}

func testReport(t *testing.T, id string, profiles preipo.Profiles) *preipo.Report {
	t.Helper()
	r, err := preipo.NewReport(testDataset(), id, profiles, 0.40)
	if err != nil {
		t.Fatalf("NewReport(%q) unexpected error: %v", id, err)
	}
	return r
}

// outline parses markdown and returns its headings and its number of tables.
func outline(t *testing.T, md string) (headings []string, tables int) {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			headings = append(headings, string(n.Lines().Value(src)))
		case east.KindTable:
			tables++
		}
		return ast.WalkContinue, nil
	})
	return headings, tables
}

func TestRenderReport(t *testing.T) {
	profiles := preipo.Profiles{"Acme": {Name: "Acme Corp", Founded: 1949, Summary: []string{"Anvils.", "Rockets."}}}
	got := RenderReport(testReport(t, "Acme", profiles), opts)

	headings, tables := outline(t, got)
	wantHeadings := []string{"Acme Corp (founded 1949)", "Profile", "Metrics", "Funding History"}
	if strings.Join(headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("RenderReport() headings = %q, want %q", headings, wantHeadings)
	}
	if tables != 2 {
		t.Errorf("RenderReport() has %d tables, want 2\n%s", tables, got)
	}

	for _, want := range []string{
		"- Anvils.\n- Rockets.\n",
		"*2020-01-02 to 2024-01-01, 4.00 years*",
		"| CAGR | 41.42% |",
		"| Total Raised | $3.00B |",
		"| Valuation Efficiency | 13.33x |",
		"| Baseline Rate | 40% |",
		"| Expected Valuation | $38.42B |",
		"| Last Valuation | $40.00B |",
		"| Performance Delta | +4.12% |",
		"| 2020-01-02 | Series A | $10.00B | $1.00B | $1.00B |",
		"| 2024-01-01 | Series B | $40.00B | $2.00B | $3.00B |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderReport() does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderReportNotComputable(t *testing.T) {
	got := RenderReport(testReport(t, "Solo", nil), opts)

	headings, tables := outline(t, got)
	if len(headings) != 4 || headings[0] != "Solo" {
		t.Errorf("RenderReport() headings = %q", headings)
	}
	if tables != 1 {
		t.Errorf("RenderReport() has %d tables, want only the series\n%s", tables, got)
	}
	for _, want := range []string{
		"No description available.",
		"Metrics not available",
		"| 2021-03-01 | - | $5.00B | $0.00B | $0.00B |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderReport() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "CAGR") {
		t.Errorf("RenderReport() renders metrics for a single event:\n%s", got)
	}
}

func TestRenderReportNoCapital(t *testing.T) {
	d := preipo.NewDataset(
		preipo.Event{EntityID: "Z", On: date.New(2020, 1, 1), Valuation: 1},
		preipo.Event{EntityID: "Z", On: date.New(2021, 1, 1), Valuation: 2},
	)
	r, err := preipo.NewReport(d, "Z", nil, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if got := RenderMetrics(r, opts); !strings.Contains(got, "| Valuation Efficiency | n/a |") {
		t.Errorf("RenderMetrics() without capital raised:\n%s", got)
	}
}

func TestRenderIndex(t *testing.T) {
	as, err := testDataset().AnalyzeAll(t.Context(), 0.40, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderIndex(as, preipo.Profiles{"Acme": {Name: "Acme Corp"}}, Options{})

	if _, tables := outline(t, got); tables != 1 {
		t.Errorf("RenderIndex() has %d tables, want 1\n%s", tables, got)
	}
	for _, want := range []string{
		"*Baseline annual growth: 40%*",
		"| Acme Corp | 2 | $40.00 | $3.00 | 41.42% | 13.33x | +4.12% |",
		"| Solo | 1 | $5.00 | $0.00 | n/a | n/a | n/a |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderIndex() does not contain %q:\n%s", want, got)
		}
	}

	if got := RenderIndex(nil, nil, opts); !strings.Contains(got, "No companies.") {
		t.Errorf("RenderIndex(nil) = %q", got)
	}
}

func TestAmount(t *testing.T) {
	testCases := []struct {
		opts Options
		v    float64
		want string
	}{
		{Options{}, 0, "$0.00"},
		{Options{Unit: "B"}, 1095.5, "$1,095.50B"},
		{Options{Unit: "B"}, 38.4159, "$38.42B"},
		{Options{Unit: "B"}, -2.5, "-$2.50B"},
	}
	for _, tc := range testCases {
		if got := tc.opts.amount(tc.v); got != tc.want {
			t.Errorf("%+v.amount(%v) = %q, want %q", tc.opts, tc.v, got, tc.want)
		}
	}
}

func TestRate(t *testing.T) {
	for v, want := range map[float64]string{0.4: "40%", 0: "0%", 0.125: "12.5%", -0.05: "-5%"} {
		if got := rate(v); got != want {
			t.Errorf("rate(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestRenderPoints(t *testing.T) {
	r := testReport(t, "Acme", nil)
	p, ok := r.Series.AsOf(date.New(2022, 1, 1))
	if !ok {
		t.Fatal("AsOf(2022-01-01) found nothing")
	}
	got := RenderPoints([]preipo.Point{p}, opts)
	if !strings.Contains(got, "| 2020-01-02 | Series A | $10.00B | $1.00B | $1.00B |") || strings.Contains(got, "2024-01-01") {
		t.Errorf("RenderPoints() =\n%s", got)
	}
	if got := RenderPoints(nil, opts); !strings.Contains(got, "No funding events.") {
		t.Errorf("RenderPoints(nil) = %q", got)
	}
}
