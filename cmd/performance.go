package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// performanceCmd holds the flags for the 'performance' subcommand.
type performanceCmd struct {
	stock bool
	start string
	end   string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "bar chart of value over a date range" }
func (*performanceCmd) Usage() string {
	return `stk performance [-stock] -s <date> [-d <date>] <name>

  Charts a portfolio's value, or with -stock a ticker's closing price,
  between the start and end dates.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.stock, "stock", false, "Chart a ticker's closing price instead of a portfolio.")
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD), required.")
	f.StringVar(&c.end, "d", "", "End date (YYYY-MM-DD), defaults to today.")
}

func (c *performanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("performance takes exactly one portfolio or ticker name")
	}
	if c.start == "" {
		return usageError("performance requires a start date (-s)")
	}
	name := f.Arg(0)
	start, err := parseDay(c.start)
	if err != nil {
		return usageError("Error parsing start date: %v", err)
	}
	end, err := parseDay(c.end)
	if err != nil {
		return usageError("Error parsing end date: %v", err)
	}

	var portfolios []string
	if !c.stock {
		portfolios = []string{name}
	}
	engine, err := openEngine(portfolios...)
	if err != nil {
		return fail(err)
	}
	report, err := engine.PerformanceOverTime(c.stock, name, start, end)
	if err != nil {
		return fail(err)
	}
	fmt.Print(report)
	return subcommands.ExitSuccess
}
