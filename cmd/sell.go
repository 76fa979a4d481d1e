package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	day string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a share sale" }
func (*sellCmd) Usage() string {
	return `stk sell [-d <date>] <portfolio> <ticker> <shares>

  Appends a sale to the ledger. The sale is rejected when it exceeds the
  holdings on the sale date.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Sale date (YYYY-MM-DD), defaults to today.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolio, ticker, shares, status := tradeArgs(f, "sell")
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
	if err := engine.Sell(portfolio, ticker, shares, on); err != nil {
		return fail(err)
	}
	fmt.Printf("Sold %v shares of %s from %q on %s\n", shares, ticker, portfolio, on)
	return subcommands.ExitSuccess
}
