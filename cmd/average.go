package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockfolio"
)

// averageCmd holds the flags for the 'average' subcommand.
type averageCmd struct {
	days int
	day  string
}

func (*averageCmd) Name() string     { return "average" }
func (*averageCmd) Synopsis() string { return "moving average of a ticker's closing price" }
func (*averageCmd) Usage() string {
	return `stk average [-x <days>] [-d <date>] <ticker>

  Prints the x-day moving average of the closing price ending on the given
  date. Only trading days count towards the window.
`
}

func (c *averageCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "x", 30, "Window size in trading days.")
	f.StringVar(&c.day, "d", "", "End date (YYYY-MM-DD), defaults to today.")
}

func (c *averageCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("average takes exactly one ticker")
	}
	ticker := f.Arg(0)
	on, err := parseDay(c.day)
	if err != nil {
		return usageError("Error parsing date: %v", err)
	}

	engine, err := openEngine()
	if err != nil {
		return fail(err)
	}
	avg, err := engine.MovingAverage(ticker, c.days, on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%d-day moving average of %s on %s: %s\n", c.days, ticker, on, stockfolio.USD(avg))
	return subcommands.ExitSuccess
}
