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

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list the expense categories" }
func (*categoriesCmd) Usage() string {
	return `bgt categories

  Lists the categories accepted for new expenses: the default set, or the
  content of the categories file when one is configured.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, ok := loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	categories := budget.NewCategories(budget.DefaultCategories...)
	if cfg.CategoriesFile != "" {
		var err error
		if categories, err = budget.LoadCategories(cfg.CategoriesFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.RenderCategoryList(categories))
	return subcommands.ExitSuccess
}
