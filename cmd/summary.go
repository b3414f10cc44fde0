package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/budget"
	"github.com/etnz/budget/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	period string
	start  string
	end    string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals, balance and expenses by category" }
func (*summaryCmd) Usage() string {
	return `bgt summary [-p <period> | -s <start_date>] [-d <end_date>]

  Displays the total income, total expenses, balance and savings rate, and
  the expenses by category sorted by amount. Without flags, all entries are
  included.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.end, "d", "", "The end date for the range.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := parseRange(c.period, c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, ok := loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	l, err := OpenLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	summary := budget.NewSummaryReport(l, budget.Within(r))
	breakdown := budget.NewCategoryBreakdown(l, budget.Within(r))
	printMarkdown(renderer.RenderSummary(summary) + "\n" + renderer.RenderCategoryBreakdown(breakdown))
	return subcommands.ExitSuccess
}
