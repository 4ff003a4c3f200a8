// Command pmt analyzes the funding rounds of pre-IPO companies.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/stupidvibecoder/pre-ipo/cmd"
)

func main() {
	name := path.Base(os.Args[0])
	// Exits if the shell is asking for completions.
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	logger, err := cmd.SetupLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing the logger:", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	status := commander.Execute(context.Background())
	logger.Sync()
	os.Exit(int(status))
}
