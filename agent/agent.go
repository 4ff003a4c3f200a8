// Package agent implements an interactive browser of funding reports, with an optional AI
// analyst to ask questions to.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/session"
)

// Asker answers free form questions.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Browser is a REPL to browse the catalog, take notes and ask questions.
type Browser struct {
	w       io.Writer
	r       *bufio.Reader
	Catalog *Catalog
	Notes   *session.Session
	// Analyst answers 'ask' commands, they are disabled if nil.
	Analyst Asker
	// Markdown formats markdown before printing it. Markdown is printed as is if nil.
	Markdown func(string) string

	selected string
}

// New creates a new Browser reading commands from r and writing to w.
func New(w io.Writer, r io.Reader, c *Catalog, notes *session.Session) *Browser {
	if notes == nil {
		notes = session.New()
	}
	return &Browser{
		w:       w,
		r:       bufio.NewReader(r),
		Catalog: c,
		Notes:   notes,
	}
}

// Selected returns the entity currently browsed.
func (b *Browser) Selected() string { return b.selected }

const prompt = "pmt> "

const help = `Commands:
  list              list all companies
  show <company>    show the report of a company and select it
  note <text>       add a note about the selected company
  notes             show the notes of the selected company, or all notes
  baseline <rate>   set the baseline annual growth rate, 0.4 for 40%
  ask <question>    ask the analyst
  help              show this help
  bye               exit
`

// Run starts the interactive REPL session. Commands in prompts are executed first.
func (b *Browser) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(b.w, "Welcome to the pre-IPO browser. Type 'help' for the commands, 'bye' to exit.")

	for {
		fmt.Fprint(b.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(b.w, input)
		} else {
			var err error
			input, err = b.r.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(input) == "") {
				if err == io.EOF {
					fmt.Fprintln(b.w)
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "bye" {
			return nil
		}
		if err := b.execute(ctx, cmd, arg); err != nil {
			fmt.Fprintf(b.w, "error: %v\n", err)
		}
	}
}

func (b *Browser) execute(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "":
		return nil
	case "list":
		md, err := b.Catalog.Index(ctx)
		if err != nil {
			return err
		}
		b.print(md)
	case "show":
		if arg == "" {
			return fmt.Errorf("show requires a company name")
		}
		id, ok := b.Catalog.Find(arg)
		if !ok {
			return fmt.Errorf("unknown company %q", arg)
		}
		md, err := b.Catalog.Report(id)
		if err != nil {
			return err
		}
		b.selected = id
		b.print(md)
	case "note":
		if b.selected == "" {
			return fmt.Errorf("no company selected, use 'show <company>' first")
		}
		if arg == "" {
			return fmt.Errorf("note requires a text")
		}
		b.Notes.Append(b.selected, arg)
		fmt.Fprintf(b.w, "noted for %s\n", b.selected)
	case "notes":
		b.printNotes()
	case "baseline":
		if arg == "" {
			fmt.Fprintf(b.w, "baseline annual growth rate is %v\n", b.Catalog.Rate)
			return nil
		}
		rate, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid baseline %q: %w", arg, err)
		}
		if err := preipo.CheckRate(rate); err != nil {
			return err
		}
		b.Catalog.Rate = rate
		fmt.Fprintf(b.w, "baseline annual growth rate set to %v\n", rate)
	case "ask":
		if b.Analyst == nil {
			fmt.Fprintln(b.w, "The analyst is not available, set GEMINI_API_KEY to enable it.")
			return nil
		}
		if arg == "" {
			return fmt.Errorf("ask requires a question")
		}
		if b.selected != "" {
			arg = fmt.Sprintf("About %s: %s", b.selected, arg)
		}
		answer, err := b.Analyst.Ask(ctx, arg)
		if err != nil {
			return err
		}
		b.print(answer)
	case "help":
		fmt.Fprint(b.w, help)
	default:
		fmt.Fprintf(b.w, "unknown command %q\n", cmd)
		fmt.Fprint(b.w, help)
	}
	return nil
}

func (b *Browser) printNotes() {
	keys := []string{b.selected}
	if b.selected == "" {
		keys = b.Notes.Keys()
	}
	printed := false
	for _, k := range keys {
		note, ok := b.Notes.Get(k)
		if !ok {
			continue
		}
		printed = true
		fmt.Fprintf(b.w, "%s:\n", k)
		for _, line := range strings.Split(note, "\n") {
			fmt.Fprintf(b.w, "  - %s\n", line)
		}
	}
	if !printed {
		fmt.Fprintln(b.w, "no notes")
	}
}

func (b *Browser) print(md string) {
	if b.Markdown != nil {
		md = b.Markdown(md)
	}
	fmt.Fprintln(b.w, md)
}
