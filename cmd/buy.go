package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	day string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a share purchase" }
func (*buyCmd) Usage() string {
	return `stk buy [-d <date>] <portfolio> <ticker> <shares>

  Appends a purchase to the ledger, dated today unless -d is given.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Purchase date (YYYY-MM-DD), defaults to today.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolio, ticker, shares, status := tradeArgs(f, "buy")
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
	if err := engine.Buy(portfolio, ticker, shares, on); err != nil {
		return fail(err)
	}
	fmt.Printf("Bought %v shares of %s for %q on %s\n", shares, ticker, portfolio, on)
	return subcommands.ExitSuccess
}
