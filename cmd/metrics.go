package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/renderer"
)

// metricsCmd holds the flags for the 'metrics' subcommand.
type metricsCmd struct {
	entity string
	json   bool
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display the growth metrics of a company" }
func (*metricsCmd) Usage() string {
	return `pmt [-baseline <rate>] metrics -e <entity> [-json]

  Displays the CAGR of the valuation between the first and the last round, the capital
  raised, the valuation efficiency and the last valuation compared to the first one grown
  at the baseline rate.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "e", "", "Entity (company) name")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of markdown")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, cat, status := app.load()
	if status != subcommands.ExitSuccess {
		return status
	}
	id, status := entity(cat, c.entity)
	if status != subcommands.ExitSuccess {
		return status
	}
	r, err := preipo.NewReport(cat.Data, id, cat.Profiles, cat.Rate)
	if err != nil {
		return exitStatus(err)
	}

	if !c.json {
		printMarkdown(renderer.RenderMetrics(r, cat.Options))
		return subcommands.ExitSuccess
	}
	if !r.Computable {
		fmt.Fprintf(os.Stderr, "Error: metrics are not computable for %s\n", id)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return exitStatus(enc.Encode(r.Metrics))
}
