package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"

	"github.com/google/subcommands"

	"stockfolio"
)

// distributionCmd holds the flags for the 'distribution' subcommand.
type distributionCmd struct {
	day string
}

func (*distributionCmd) Name() string     { return "distribution" }
func (*distributionCmd) Synopsis() string { return "value held per ticker" }
func (*distributionCmd) Usage() string {
	return `stk distribution [-d <date>] <portfolio>

  Prints the monetary value per ticker the portfolio ever touched, as of
  the given date.
`
}

func (c *distributionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Date (YYYY-MM-DD), defaults to today.")
}

func (c *distributionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("distribution takes exactly one portfolio name")
	}
	portfolio := f.Arg(0)
	on, err := parseDay(c.day)
	if err != nil {
		return usageError("Error parsing date: %v", err)
	}

	engine, err := openEngine(portfolio)
	if err != nil {
		return fail(err)
	}
	distribution, err := engine.Distribution(portfolio, on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Distribution of %s on %s:\n", portfolio, on)
	for _, ticker := range slices.Sorted(maps.Keys(distribution)) {
		fmt.Printf("  %s: %s\n", ticker, stockfolio.USD(distribution[ticker]))
	}
	return subcommands.ExitSuccess
}
