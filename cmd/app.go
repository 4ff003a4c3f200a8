// Package cmd implements the CLI application to analyze pre-IPO funding rounds.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/agent"
	"github.com/stupidvibecoder/pre-ipo/date"
	"github.com/stupidvibecoder/pre-ipo/renderer"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&listCmd{}, "analysis")
	c.Register(&seriesCmd{}, "analysis")
	c.Register(&metricsCmd{}, "analysis")
	c.Register(&reportCmd{}, "analysis")

	c.Register(&exportCmd{}, "data")
	c.Register(&serveCmd{}, "data")
	c.Register(&browseCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var app = newGlobals(flag.CommandLine)

// stdout is where commands print their output.
var stdout io.Writer = os.Stdout

// globals holds the flags shared by all subcommands.
type globals struct {
	fs       *flag.FlagSet
	config   string
	data     string
	profiles string
	baseline float64
	currency string
	unit     string
	from, to string
	verbose  bool
	raw      bool
}

func newGlobals(fs *flag.FlagSet) *globals {
	g := &globals{fs: fs}
	def := DefaultConfig()
	fs.StringVar(&g.config, "config", DefaultConfigFile, "Path to the YAML configuration file")
	fs.StringVar(&g.data, "data", def.Data, "Path to the funding events file (.csv, .jsonl, .json or .xlsx)")
	fs.StringVar(&g.profiles, "profiles", "", "Path to a YAML file of company profiles. Defaults to the embedded profiles.")
	fs.Float64Var(&g.baseline, "baseline", def.Baseline, "Baseline annual growth rate as a fraction, 0.4 for 40%")
	fs.StringVar(&g.currency, "currency", def.Currency, "ISO code of the currency amounts are expressed in")
	fs.StringVar(&g.unit, "unit", def.Unit, "Unit suffix of amounts, like B for billions")
	fs.StringVar(&g.from, "from", "", "Only consider events on or after this date (YYYY-MM-DD)")
	fs.StringVar(&g.to, "to", "", "Only consider events on or before this date (YYYY-MM-DD)")
	fs.BoolVar(&g.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&g.raw, "raw", false, "Print raw markdown instead of formatting it for the terminal")
	return g
}

// Config returns the configuration file content, overridden by the flags explicitly set.
func (g *globals) Config() (Config, error) {
	set := make(map[string]bool)
	g.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	c, err := LoadConfig(g.config, !set["config"])
	if err != nil {
		return c, err
	}
	if set["data"] {
		c.Data = g.data
	}
	if set["profiles"] {
		c.Profiles = g.profiles
	}
	if set["baseline"] {
		c.Baseline = g.baseline
	}
	if set["currency"] {
		c.Currency = g.currency
	}
	if set["unit"] {
		c.Unit = g.unit
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config validation failed: %w", err)
	}
	zap.L().Debug("Configuration", zap.String("file", g.config), zap.Any("config", c))
	return c, nil
}

// Catalog loads the dataset, restricted to -from and -to, and the profiles.
func (g *globals) Catalog(c Config) (*agent.Catalog, error) {
	window, err := date.ParseRange(g.from, g.to)
	if err != nil {
		return nil, err
	}
	d, err := preipo.Load(c.Data, preipo.LoadOptions{Sheet: c.Sheet, Selector: c.Selector})
	if err != nil {
		return nil, err
	}
	if !window.IsZero() {
		d = d.Filter(window)
	}
	profiles, err := preipo.LoadProfiles(c.Profiles)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("Dataset loaded", zap.String("file", c.Data), zap.Int("entities", d.Len()), zap.Stringer("window", window))
	return &agent.Catalog{
		Data:     d,
		Profiles: profiles,
		Rate:     c.Baseline,
		Options:  renderer.Options{Currency: c.Currency, Unit: c.Unit},
	}, nil
}

// load is Config then Catalog, printing errors on stderr.
func (g *globals) load() (Config, *agent.Catalog, subcommands.ExitStatus) {
	c, err := g.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return c, nil, subcommands.ExitUsageError
	}
	cat, err := g.Catalog(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		return c, nil, subcommands.ExitFailure
	}
	return c, cat, subcommands.ExitSuccess
}

// entity resolves the -e flag of a command.
func entity(cat *agent.Catalog, name string) (string, subcommands.ExitStatus) {
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: -e <entity> is required")
		return "", subcommands.ExitUsageError
	}
	id, ok := cat.Find(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown entity %q\n", name)
		return "", subcommands.ExitFailure
	}
	return id, subcommands.ExitSuccess
}

// SetupLogger installs the global zap logger: warnings only, or everything with -v.
func SetupLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if app.verbose {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// markdown formats md for the terminal, unless -raw.
func markdown(md string) string {
	if app.raw {
		return md
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			return out
		}
	}
	zap.L().Warn("Cannot format markdown", zap.Error(err))
	return md
}

func printMarkdown(md string) { fmt.Fprint(stdout, markdown(md)) }

// exitStatus prints err and returns the matching exit status.
func exitStatus(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, preipo.ErrInvalidParameter) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
