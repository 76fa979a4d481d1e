package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"

	"github.com/google/subcommands"
)

// compositionCmd holds the flags for the 'composition' subcommand.
type compositionCmd struct {
	day string
}

func (*compositionCmd) Name() string     { return "composition" }
func (*compositionCmd) Synopsis() string { return "shares held per ticker" }
func (*compositionCmd) Usage() string {
	return `stk composition [-d <date>] <portfolio>

  Prints the share count per ticker the portfolio ever touched, as of the
  given date.
`
}

func (c *compositionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "Date (YYYY-MM-DD), defaults to today.")
}

func (c *compositionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("composition takes exactly one portfolio name")
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
	composition, err := engine.Composition(portfolio, on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Composition of %s on %s:\n", portfolio, on)
	for _, ticker := range slices.Sorted(maps.Keys(composition)) {
		fmt.Printf("  %s: %v shares\n", ticker, composition[ticker])
	}
	return subcommands.ExitSuccess
}
