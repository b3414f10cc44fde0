// Command bgt is a personal budget tracker.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/budget"
	"github.com/etnz/budget/cmd"
	"github.com/etnz/budget/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "bgt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	completion().Complete("bgt")

	flag.Parse()

	verbose := *cmd.Verbose
	if cfg, err := cmd.LoadConfig(".env"); err == nil {
		verbose = verbose || cfg.Verbose
	}
	cmd.SetupLogging(os.Stderr, verbose)

	if sub := flag.Arg(0); sub != "" && !isBuiltin(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func isBuiltin(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion describes bgt commands and flags for shell completion.
func completion() *complete.Command {
	var categories []string
	for _, c := range budget.DefaultCategories {
		categories = append(categories, string(c))
	}

	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"ledger-file":     predict.Files("*.json"),
			"categories-file": predict.Files("*"),
			"currency":        predict.Set{"USD", "EUR", "GBP", "CHF", "JPY", "CAD"},
			"v":               predict.Nothing,
		},
	}
	for _, c := range cmd.Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			switch {
			case c.Name() == "expense" && f.Name == "c":
				sub.Flags[f.Name] = predict.Set(categories)
			case f.Name == "p":
				sub.Flags[f.Name] = predict.Set{"day", "week", "month", "quarter", "year"}
			case f.Name == "f":
				sub.Flags[f.Name] = predict.Set{"pdf", "html", "md"}
			case f.Name == "k":
				sub.Flags[f.Name] = predict.Set{"income", "expense"}
			case f.Name == "o":
				sub.Flags[f.Name] = predict.Files("*")
			default:
				sub.Flags[f.Name] = predict.Something
			}
		})
		root.Sub[c.Name()] = sub
	}
	root.Sub["topic"].Args = predict.Set(append(docs.GetAllTopics(), "*"))
	return root
}
