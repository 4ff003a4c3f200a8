package cmd

import (
	"context"
	"flag"
	"runtime"

	"github.com/google/subcommands"
	"github.com/stupidvibecoder/pre-ipo/renderer"
)

type listCmd struct {
	workers int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all companies with their growth metrics" }
func (*listCmd) Usage() string {
	return `pmt list [-workers <n>]

  Displays one row per company: number of rounds, last valuation, total capital raised,
  CAGR, valuation efficiency and performance against the baseline growth.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", runtime.NumCPU(), "Maximum number of companies analyzed concurrently")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, cat, status := app.load()
	if status != subcommands.ExitSuccess {
		return status
	}
	as, err := cat.Data.AnalyzeAll(ctx, cat.Rate, c.workers)
	if err != nil {
		return exitStatus(err)
	}
	printMarkdown(renderer.RenderIndex(as, cat.Profiles, cat.Options))
	return subcommands.ExitSuccess
}
