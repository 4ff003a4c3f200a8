package cmd

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const testCSV = `company,date,valuation ($B),capital_raised,round
Acme,2020-01-02,10,1,Series A
Acme,2024-01-01,40,2,Series B
Solo,2021-03-01,5,,Seed
`

// testData writes the test dataset and returns its path.
func testData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs a subcommand with global flags and returns what it printed.
func execute(t *testing.T, global []string, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	fs := flag.NewFlagSet("pmt", flag.ContinueOnError)
	g := newGlobals(fs)
	if err := fs.Parse(append([]string{"-raw"}, global...)); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	oldApp, oldOut := app, stdout
	app, stdout = g, &out
	t.Cleanup(func() { app, stdout = oldApp, oldOut })

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatal(err)
	}
	status := c.Execute(t.Context(), f)
	return out.String(), status
}

func TestListCmd(t *testing.T) {
	data := testData(t)
	out, status := execute(t, []string{"-data", data}, &listCmd{}, "-workers", "2")
	if status != subcommands.ExitSuccess {
		t.Fatalf("list = %v", status)
	}
	for _, want := range []string{
		"| Acme | 2 | $40.00B | $3.00B | 41.42% | 13.33x | +4.12% |",
		"| Solo | 1 | $5.00B | $0.00B | n/a | n/a | n/a |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output does not contain %q:\n%s", want, out)
		}
	}

	// With a date window Acme keeps a single round.
	out, _ = execute(t, []string{"-data", data, "-from", "2021-01-01", "-unit", "M"}, &listCmd{})
	if !strings.Contains(out, "| Acme | 1 | $40.00M | $2.00M | n/a | n/a | n/a |") {
		t.Errorf("list -from output:\n%s", out)
	}
}

func TestMetricsCmd(t *testing.T) {
	data := testData(t)

	out, status := execute(t, []string{"-data", data}, &metricsCmd{}, "-e", "acme")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "| CAGR | 41.42% |") {
		t.Errorf("metrics = %v:\n%s", status, out)
	}

	out, status = execute(t, []string{"-data", data, "-baseline", "0.1"}, &metricsCmd{}, "-e", "Acme", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("metrics -json = %v", status)
	}
	for _, want := range []string{`"entity": "Acme"`, `"cagr_percent": 41.42`, `"baseline_rate": 0.1`, `"valuation_efficiency": 13.33`} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics -json does not contain %q:\n%s", want, out)
		}
	}

	testCases := []struct {
		name   string
		global []string
		args   []string
		want   subcommands.ExitStatus
	}{
		{"not computable", nil, []string{"-e", "Solo", "-json"}, subcommands.ExitFailure},
		{"missing entity flag", nil, nil, subcommands.ExitUsageError},
		{"unknown entity", nil, []string{"-e", "Nope"}, subcommands.ExitFailure},
		{"invalid baseline", []string{"-baseline", "-1"}, []string{"-e", "Acme"}, subcommands.ExitUsageError},
		{"invalid window", []string{"-from", "2024-01-01", "-to", "2020-01-01"}, []string{"-e", "Acme"}, subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			global := append([]string{"-data", data}, tc.global...)
			if _, status := execute(t, global, &metricsCmd{}, tc.args...); status != tc.want {
				t.Errorf("metrics = %v, want %v", status, tc.want)
			}
		})
	}

	// Not computable metrics are not an error in markdown.
	out, status = execute(t, []string{"-data", data}, &metricsCmd{}, "-e", "Solo")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "Metrics not available") {
		t.Errorf("metrics -e Solo = %v:\n%s", status, out)
	}
}

func TestMissingData(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.csv")
	if _, status := execute(t, []string{"-data", missing}, &listCmd{}); status != subcommands.ExitFailure {
		t.Errorf("list with a missing data file = %v, want failure", status)
	}
}

func TestSeriesCmd(t *testing.T) {
	data := testData(t)

	out, status := execute(t, []string{"-data", data}, &seriesCmd{}, "-e", "Acme")
	if status != subcommands.ExitSuccess {
		t.Fatalf("series = %v", status)
	}
	for _, want := range []string{
		"| 2020-01-02 | Series A | $10.00B | $1.00B | $1.00B |",
		"| 2024-01-01 | Series B | $40.00B | $2.00B | $3.00B |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("series does not contain %q:\n%s", want, out)
		}
	}

	out, _ = execute(t, []string{"-data", data}, &seriesCmd{}, "-e", "Acme", "-as-of", "2023-06-30")
	if !strings.Contains(out, "| 2020-01-02 | Series A |") || strings.Contains(out, "2024-01-01") {
		t.Errorf("series -as-of:\n%s", out)
	}

	out, _ = execute(t, []string{"-data", data}, &seriesCmd{}, "-e", "Acme", "-json")
	if !strings.Contains(out, `"cumulative_raised": 3`) {
		t.Errorf("series -json:\n%s", out)
	}

	if _, status := execute(t, []string{"-data", data}, &seriesCmd{}, "-e", "Acme", "-as-of", "2019-01-01"); status != subcommands.ExitFailure {
		t.Errorf("series -as-of before the first round = %v, want failure", status)
	}
}

func TestReportCmd(t *testing.T) {
	out, status := execute(t, []string{"-data", testData(t)}, &reportCmd{}, "-e", "Acme")
	if status != subcommands.ExitSuccess {
		t.Fatalf("report = %v", status)
	}
	for _, want := range []string{"# Acme", "No description available.", "## Metrics", "## Funding History"} {
		if !strings.Contains(out, want) {
			t.Errorf("report does not contain %q:\n%s", want, out)
		}
	}
}

func TestExportCmd(t *testing.T) {
	data := testData(t)

	out, status := execute(t, []string{"-data", data}, &exportCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("export = %v", status)
	}
	want := `{"entity":"Acme","on":"2020-01-02","valuation":10,"raised":1,"round":"Series A"}
{"entity":"Acme","on":"2024-01-01","valuation":40,"raised":2,"round":"Series B"}
{"entity":"Solo","on":"2021-03-01","valuation":5,"round":"Seed"}
`
	if out != want {
		t.Errorf("export =\n%s\nwant\n%s", out, want)
	}

	// The exported file is a valid data file.
	exported := filepath.Join(t.TempDir(), "out", "events.jsonl")
	if _, status := execute(t, []string{"-data", data}, &exportCmd{}, "-o", exported); status != subcommands.ExitSuccess {
		t.Fatalf("export -o = %v", status)
	}
	out, _ = execute(t, []string{"-data", exported}, &exportCmd{})
	if out != want {
		t.Errorf("export of the exported file =\n%s\nwant\n%s", out, want)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "pmt.yaml")
	content := "data: " + testData(t) + "\nbaseline: 0.1\ncurrency: USD\nunit: M\n"
	if err := os.WriteFile(config, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, _ := execute(t, []string{"-config", config}, &metricsCmd{}, "-e", "Acme")
	for _, want := range []string{"| Baseline Rate | 10% |", "| Total Raised | $3.00M |"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics does not contain %q:\n%s", want, out)
		}
	}

	// Flags override the file.
	out, _ = execute(t, []string{"-config", config, "-baseline", "0.4", "-unit", "B"}, &metricsCmd{}, "-e", "Acme")
	if !strings.Contains(out, "| Baseline Rate | 40% |") || !strings.Contains(out, "$3.00B") {
		t.Errorf("flags do not override the config file:\n%s", out)
	}

	// A flag repairs an invalid value of the file.
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("data: "+testData(t)+"\nbaseline: -1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, status := execute(t, []string{"-config", invalid}, &metricsCmd{}, "-e", "Acme"); status != subcommands.ExitUsageError {
		t.Errorf("an invalid baseline in the config file = %v, want usage error", status)
	}
	out, status := execute(t, []string{"-config", invalid, "-baseline", "0.3"}, &metricsCmd{}, "-e", "Acme")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "| Baseline Rate | 30% |") {
		t.Errorf("-baseline does not override an invalid config file baseline: %v\n%s", status, out)
	}

	missing := filepath.Join(dir, "missing.yaml")
	if _, status := execute(t, []string{"-config", missing}, &listCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("an explicit missing config file = %v, want usage error", status)
	}
}

func TestNotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	s, err := readNotes(path)
	if err != nil || s.Len() != 0 {
		t.Fatalf("readNotes(missing) = %v, %v", s, err)
	}
	s.Append("Acme", "check the 2024 round")
	if err := writeNotes(path, s); err != nil {
		t.Fatal(err)
	}
	again, err := readNotes(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := again.Get("Acme"); v != "check the 2024 round" {
		t.Errorf("notes after a round trip = %q", v)
	}

	if err := writeNotes("", s); err != nil {
		t.Errorf("writeNotes without a file = %v", err)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"list", "series", "metrics", "report", "export", "serve", "browse", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("no completion for %q", name)
		}
	}
	if got := c.Flags["unit"].Predict(""); len(got) == 0 {
		t.Error("no completion for -unit")
	}
}

func TestTopicCmd(t *testing.T) {
	out, status := execute(t, nil, &topicCmd{}, "metrics")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "# Metrics") {
		t.Errorf("topic metrics = %v:\n%s", status, out)
	}
	if _, status := execute(t, nil, &topicCmd{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope = %v, want failure", status)
	}
}
