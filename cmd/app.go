// Package cmd implements the CLI application to manage a personal budget.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/budget"
	"github.com/etnz/budget/date"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, group(cmd))
	}
}

// Commands lists every bgt subcommand.
var Commands = []subcommands.Command{
	&incomeCmd{},
	&expenseCmd{},
	&rmCmd{},
	&logCmd{},
	&summaryCmd{},
	&categoriesCmd{},
	&exportCmd{},
	&queryCmd{},
	&fmtCmd{},
	&topicCmd{},
}

func group(c subcommands.Command) string {
	switch c.(type) {
	case *incomeCmd, *expenseCmd, *rmCmd:
		return "entries"
	case *logCmd, *summaryCmd, *categoriesCmd, *exportCmd:
		return "reports"
	default:
		return "tools"
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile     = flag.String("ledger-file", "", "Path to the ledger file. Overrides "+EnvPrefix+"_LEDGER_FILE.")
	categoriesFile = flag.String("categories-file", "", "Path to the categories file, one per line. Overrides "+EnvPrefix+"_CATEGORIES_FILE.")
	currency       = flag.String("currency", "", "ISO 4217 code of the reporting currency. Overrides "+EnvPrefix+"_CURRENCY.")
	Verbose        = flag.Bool("v", false, "Log debug messages.")
)

// stdout receives the command outputs. Tests replace it.
var stdout io.Writer = os.Stdout

// loadConfig loads the configuration, reporting errors on stderr.
func loadConfig() (*Config, bool) {
	cfg, err := LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	return cfg, true
}

// OpenLedger opens the configured ledger, and logs its mutations.
func OpenLedger(cfg *Config) (*budget.Ledger, error) {
	opts := []budget.Option{budget.WithCurrency(cfg.Currency)}
	if cfg.CategoriesFile != "" {
		categories, err := budget.LoadCategories(cfg.CategoriesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, budget.WithCategories(categories))
	}

	l, err := budget.Open(cfg.LedgerFile, opts...)
	if err != nil {
		return nil, err
	}
	var skipped *budget.SkippedEntriesError
	switch w := l.Warning(); {
	case errors.As(w, &skipped):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", w)
	case w != nil:
		fmt.Fprintf(os.Stderr, "Warning: %v\nStarting with an empty ledger.\n", w)
	}
	l.Subscribe(func(e budget.Event) {
		slog.Debug("ledger changed", "event", e.Kind, "index", e.Index, "id", e.ID)
	})
	return l, nil
}

// mutationStatus reports the error of a ledger mutation on stderr.
func mutationStatus(err error) subcommands.ExitStatus {
	if err == nil {
		return subcommands.ExitSuccess
	}
	var perr *budget.PersistenceError
	if errors.As(err, &perr) {
		fmt.Fprintf(os.Stderr, "Warning: the change was applied but data may not have been saved: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// parseRange computes the range of dates selected by the common report flags.
// Without any flag, the range is unbounded.
func parseRange(period, start, end string) (date.Range, error) {
	if period == "" && start == "" && end == "" {
		return date.Range{}, nil
	}
	if end == "" {
		end = "0d"
	}
	to, err := date.Parse(end)
	if err != nil {
		return date.Range{}, fmt.Errorf("invalid end date: %w", err)
	}
	if start != "" {
		from, err := date.Parse(start)
		if err != nil {
			return date.Range{}, fmt.Errorf("invalid start date: %w", err)
		}
		return date.Between(from, to), nil
	}
	if period == "" {
		return date.Between(date.New(1, 1, 1), to), nil
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(to, p), nil
}

// printMarkdown renders markdown for the terminal, falling back to raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	slog.Debug("markdown rendering failed", "error", err)
	fmt.Fprint(stdout, md)
}
