package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/renderer"
)

type reportCmd struct {
	entity string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the full report of a company" }
func (*reportCmd) Usage() string {
	return `pmt report -e <entity>

  Displays the profile of a company, its growth metrics and its funding history.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "e", "", "Entity (company) name")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.RenderReport(r, cat.Options))
	return subcommands.ExitSuccess
}
