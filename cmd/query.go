package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the ledger file with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `bgt query <jsonpath>

  Evaluates a JSONPath expression against the ledger file and prints the
  result as JSON.

Usage Examples:
$ bgt query '$.expense_entries[?(@.category=="Travel")].amount'
$ bgt query '$.income_entries[-1:]'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one JSONPath expression is required.")
		return subcommands.ExitUsageError
	}

	cfg, ok := loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	result, err := Query(cfg.LedgerFile, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Query evaluates the JSONPath expression against the raw ledger file.
func Query(path, expr string) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("malformed ledger %q: %w", path, err)
	}
	result, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expr, err)
	}
	return result, nil
}
