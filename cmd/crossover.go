package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// crossoverCmd holds the flags for the 'crossover' subcommand.
type crossoverCmd struct {
	days  int
	start string
	end   string
}

func (*crossoverCmd) Name() string     { return "crossover" }
func (*crossoverCmd) Synopsis() string { return "days a ticker closed above its moving average" }
func (*crossoverCmd) Usage() string {
	return `stk crossover [-x <days>] -s <date> [-d <date>] <ticker>

  Lists the days in the period whose closing price crossed above the x-day
  moving average, most recent first.
`
}

func (c *crossoverCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "x", 30, "Window size in trading days.")
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD), required.")
	f.StringVar(&c.end, "d", "", "End date (YYYY-MM-DD), defaults to today.")
}

func (c *crossoverCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("crossover takes exactly one ticker")
	}
	if c.start == "" {
		return usageError("crossover requires a start date (-s)")
	}
	ticker := f.Arg(0)
	start, err := parseDay(c.start)
	if err != nil {
		return usageError("Error parsing start date: %v", err)
	}
	end, err := parseDay(c.end)
	if err != nil {
		return usageError("Error parsing end date: %v", err)
	}

	engine, err := openEngine()
	if err != nil {
		return fail(err)
	}
	crossovers, err := engine.Crossovers(ticker, c.days, start, end)
	if err != nil {
		return fail(err)
	}
	if len(crossovers) == 0 {
		fmt.Printf("No %d-day crossovers for %s between %s and %s\n", c.days, ticker, start, end)
		return subcommands.ExitSuccess
	}
	fmt.Printf("%d-day crossovers for %s, most recent first:\n", c.days, ticker)
	for _, day := range crossovers {
		fmt.Printf("  %s\n", day)
	}
	return subcommands.ExitSuccess
}
