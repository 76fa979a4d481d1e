package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockfolio"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	day string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "total asset value of a portfolio" }
func (*valueCmd) Usage() string {
	return `stk value [-d <date>] <portfolio>

  Prints the portfolio value at closing prices on the given date.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Valuation date (YYYY-MM-DD), defaults to today.")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("value takes exactly one portfolio name")
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
	value, err := engine.TotalAssetValue(portfolio, on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s on %s: %s\n", portfolio, on, stockfolio.USD(value))
	return subcommands.ExitSuccess
}
