package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	preipo "github.com/stupidvibecoder/pre-ipo"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the funding events as JSONL" }
func (*exportCmd) Usage() string {
	return `pmt [-from <date>] [-to <date>] export [-o <file>]

  Writes the funding events, restricted to the -from/-to window, one JSON object per line,
  sorted by company and date. Without -o, events are written to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, cat, status := app.load()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.output == "" {
		return exitStatus(preipo.EncodeJSONL(stdout, cat.Data))
	}
	if err := preipo.Save(c.output, cat.Data); err != nil {
		return exitStatus(err)
	}
	fmt.Fprintf(stdout, "Successfully exported %d companies to %s\n", cat.Data.Len(), c.output)
	return subcommands.ExitSuccess
}
