package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"stockfolio"
)

// gainCmd holds the flags for the 'gain' subcommand.
type gainCmd struct {
	start string
	end   string
}

func (*gainCmd) Name() string     { return "gain" }
func (*gainCmd) Synopsis() string { return "price gain of a ticker over a period" }
func (*gainCmd) Usage() string {
	return `stk gain -s <date> [-d <date>] <ticker>

  Prints the change in closing price between the start and end dates.
`
}

func (c *gainCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date (YYYY-MM-DD), required.")
	f.StringVar(&c.end, "d", "", "End date (YYYY-MM-DD), defaults to today.")
}

func (c *gainCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("gain takes exactly one ticker")
	}
	if c.start == "" {
		return usageError("gain requires a start date (-s)")
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
	gain, err := engine.NetGain(ticker, start, end)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s from %s to %s: %s\n", ticker, start, end, stockfolio.USD(gain).SignedString())
	return subcommands.ExitSuccess
}
