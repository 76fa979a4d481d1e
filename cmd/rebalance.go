package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	day string
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "rebalance a portfolio to target weights" }
func (*rebalanceCmd) Usage() string {
	return `stk rebalance [-d <date>] <portfolio> <ticker>=<weight> [<ticker>=<weight> ...]

  Appends the trades that bring the portfolio's value distribution to the
  given weights. The weights must sum to 1 and every ticker must already be
  held.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Rebalancing date (YYYY-MM-DD), defaults to today.")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return usageError("rebalance takes <portfolio> and at least one <ticker>=<weight>")
	}
	portfolio := f.Arg(0)
	weights, status := parseWeights(f.Args()[1:])
	if status != subcommands.ExitSuccess {
		return status
	}
	on, err := parseDay(c.day)
	if err != nil {
		return usageError("Error parsing date: %v", err)
	}

	engine, err := openEngine(portfolio)
	if err != nil {
		return fail(err)
	}
	if err := engine.Rebalance(portfolio, weights, on); err != nil {
		return fail(err)
	}
	fmt.Printf("Rebalanced %q on %s\n", portfolio, on)
	return subcommands.ExitSuccess
}

// parseWeights parses ticker=weight pairs. Repeating a ticker is an error
// here, before the pairs collapse into a map.
func parseWeights(args []string) (map[string]float64, subcommands.ExitStatus) {
	weights := make(map[string]float64, len(args))
	for _, arg := range args {
		ticker, value, ok := strings.Cut(arg, "=")
		if !ok || ticker == "" {
			return nil, usageError("want <ticker>=<weight>, got %q", arg)
		}
		if _, dup := weights[ticker]; dup {
			return nil, usageError("ticker %s is weighted twice", ticker)
		}
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, usageError("Error parsing weight for %s: %v", ticker, err)
		}
		weights[ticker] = w
	}
	return weights, subcommands.ExitSuccess
}
