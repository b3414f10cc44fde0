package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/budget"
	"github.com/google/subcommands"
)

type expenseCmd struct {
	date     string
	category string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money spent" }
func (*expenseCmd) Usage() string {
	return `bgt expense -c <category> [-d <date>] <amount> <label>...

  Adds an expense entry to the ledger. The category must be one of the
  configured categories, see 'bgt categories'.

Usage Examples:
$ bgt expense -c "Food & Dining" -d 2024-01-02 200 Groceries
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the expense. See the user manual for supported date formats.")
	f.StringVar(&c.category, "c", "", "Category of the expense.")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, label, on, ok := parseEntryArgs(c.date, f.Args())
	if !ok {
		return subcommands.ExitUsageError
	}
	if c.category == "" {
		fmt.Fprintln(os.Stderr, "Error: -c category is required.")
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

	id, err := l.AddExpense(amount, label, budget.Category(c.category), on)
	if status := mutationStatus(err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Added expense %q (%s), balance is now %s\n", label, id, l.Balance())
	return subcommands.ExitSuccess
}
