package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/budget"
	"github.com/google/subcommands"
)

type rmCmd struct {
	kind string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove an income or expense entry" }
func (*rmCmd) Usage() string {
	return `bgt rm -k <income|expense> <position|id>

  Removes an entry, given its position as listed by 'bgt log', or its id.
  Following entries shift down by one position.

Usage Examples:
$ bgt rm -k expense 0
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "expense", "Kind of entry to remove: income or expense.")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one position or id is required.")
		return subcommands.ExitUsageError
	}
	if c.kind != "income" && c.kind != "expense" {
		fmt.Fprintf(os.Stderr, "Error: unknown kind %q, want income or expense.\n", c.kind)
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

	arg := f.Arg(0)
	index, convErr := strconv.Atoi(arg)
	switch {
	case c.kind == "income" && convErr == nil:
		err = l.RemoveIncome(index)
	case c.kind == "income":
		err = l.RemoveIncomeByID(budget.EntryID(arg))
	case convErr == nil:
		err = l.RemoveExpense(index)
	default:
		err = l.RemoveExpenseByID(budget.EntryID(arg))
	}
	if status := mutationStatus(err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(stdout, "Removed %s %s, balance is now %s\n", c.kind, arg, l.Balance())
	return subcommands.ExitSuccess
}
