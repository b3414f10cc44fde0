package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/budget/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type incomeCmd struct {
	date string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record money received" }
func (*incomeCmd) Usage() string {
	return `bgt income [-d <date>] <amount> <label>...

  Adds an income entry to the ledger. The amount must be positive, the label
  is made of the remaining arguments.

Usage Examples:
$ bgt income -d 2024-01-01 1500 Salary
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the income. See the user manual for supported date formats.")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, label, on, ok := parseEntryArgs(c.date, f.Args())
	if !ok {
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

	id, err := l.AddIncome(amount, label, on)
	if status := mutationStatus(err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Added income %q (%s), balance is now %s\n", label, id, l.Balance())
	return subcommands.ExitSuccess
}

// parseEntryArgs reads "<amount> <label>..." and the date flag, reporting
// usage errors on stderr.
func parseEntryArgs(on string, args []string) (decimal.Decimal, string, date.Date, bool) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: amount and label are required.")
		return decimal.Zero, "", date.Date{}, false
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: please enter a valid number\n", args[0])
		return decimal.Zero, "", date.Date{}, false
	}
	d, err := date.Parse(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return decimal.Zero, "", date.Date{}, false
	}
	return amount, strings.Join(args[1:], " "), d, true
}
