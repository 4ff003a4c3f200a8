package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/date"
	"github.com/stupidvibecoder/pre-ipo/renderer"
)

// seriesCmd holds the flags for the 'series' subcommand.
type seriesCmd struct {
	entity string
	asOf   string
	json   bool
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display the cumulative capital raised by a company" }
func (*seriesCmd) Usage() string {
	return `pmt series -e <entity> [-as-of <date>] [-json]

  Displays the funding rounds of a company in chronological order, with the capital raised
  so far at each round. With -as-of, only the last known round at that date is displayed.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "e", "", "Entity (company) name")
	f.StringVar(&c.asOf, "as-of", "", "Display only the last round on or before this date")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of markdown")
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, cat, status := app.load()
	if status != subcommands.ExitSuccess {
		return status
	}
	id, status := entity(cat, c.entity)
	if status != subcommands.ExitSuccess {
		return status
	}
	series, err := preipo.BuildCumulativeSeries(cat.Data.Events(id))
	if err != nil {
		return exitStatus(err)
	}

	points := series.Points()
	if c.asOf != "" {
		on, err := date.Parse(c.asOf)
		if err != nil {
			return exitStatus(fmt.Errorf("invalid -as-of date: %w", err))
		}
		p, ok := series.AsOf(on)
		if !ok {
			return exitStatus(fmt.Errorf("%s has no funding round on or before %s", id, on))
		}
		points = []preipo.Point{p}
	}

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return exitStatus(enc.Encode(points))
	}
	printMarkdown(renderer.RenderPoints(points, cat.Options))
	return subcommands.ExitSuccess
}
