package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/stupidvibecoder/pre-ipo/agent"
	"github.com/stupidvibecoder/pre-ipo/session"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type browseCmd struct{}

func (*browseCmd) Name() string { return "browse" }
func (*browseCmd) Synopsis() string {
	return "browse the reports interactively, take notes and ask questions"
}
func (*browseCmd) Usage() string {
	return `pmt browse [<command>]

  Starts an interactive session. Type 'help' for the commands.
  The optional arguments are executed as a first command.

  Notes are kept in the 'notes' file of the configuration, if any.
  The 'ask' command needs a Gemini API key in GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (*browseCmd) SetFlags(_ *flag.FlagSet) {}

func (c *browseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, cat, status := app.load()
	if status != subcommands.ExitSuccess {
		return status
	}

	notes, err := readNotes(cfg.Notes)
	if err != nil {
		return exitStatus(err)
	}

	b := agent.New(stdout, os.Stdin, cat, notes)
	b.Markdown = markdown

	if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != "" {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}
		analyst := agent.NewAnalyst(cfg.Model, cat)
		if err := analyst.Start(ctx, client); err != nil {
			fmt.Fprintln(os.Stderr, "Error starting the analyst:", err)
			return subcommands.ExitFailure
		}
		b.Analyst = analyst
	}

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := b.Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Browser failed:", err)
		return subcommands.ExitFailure
	}
	return exitStatus(writeNotes(cfg.Notes, notes))
}

// readNotes reads the notes file. A missing file is an empty session.
func readNotes(path string) (*session.Session, error) {
	s := session.New()
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Debug("No notes yet", zap.String("file", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open notes file %q: %w", path, err)
	}
	defer f.Close()
	if err := s.Decode(f); err != nil {
		return nil, fmt.Errorf("could not read notes file %q: %w", path, err)
	}
	return s, nil
}

// writeNotes saves the notes, if there is a notes file.
func writeNotes(path string, s *session.Session) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create notes file %q: %w", path, err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write notes file %q: %w", path, err)
	}
	zap.L().Debug("Notes saved", zap.String("file", path), zap.Int("companies", s.Len()))
	return f.Close()
}
