package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/budget"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `bgt fmt

  Validates and formats the ledger file. This command reads all entries,
  drops the invalid ones, assigns ids to entries without one, and writes the
  ledger back in canonical form. Dropped entries are kept in the
  "<ledger file>.bak" copy.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ok := loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	l, err := OpenLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var skipped *budget.SkippedEntriesError
	if w := l.Warning(); w != nil && !(errors.As(w, &skipped) && skipped.Backup != "") {
		// formatting would lose content that has no copy.
		fmt.Fprintln(os.Stderr, "Error: the ledger file was not fully read, it is left untouched.")
		return subcommands.ExitFailure
	}
	if err := l.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Ledger file '%s' has been formatted.\n", cfg.LedgerFile)
	return subcommands.ExitSuccess
}
