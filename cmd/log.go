package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/budget/renderer"
	"github.com/google/subcommands"
)

type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list all entries in the ledger" }
func (*logCmd) Usage() string {
	return `bgt log

  Lists income and expense entries in insertion order, with the position and
  the id to use with 'bgt rm'.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ok := loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	l, err := OpenLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderEntries(renderer.NewEntries(l)))
	return subcommands.ExitSuccess
}
