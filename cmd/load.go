package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"slices"

	"github.com/google/subcommands"

	"stockfolio/date"
)

// loadCmd reconstructs a portfolio from the ledger and shows it.
type loadCmd struct{}

func (*loadCmd) Name() string     { return "load" }
func (*loadCmd) Synopsis() string { return "load a portfolio from the ledger" }
func (*loadCmd) Usage() string {
	return `stk load <name>

  Loads the portfolio's entries from the ledger and prints its current
  composition.
`
}
func (*loadCmd) SetFlags(*flag.FlagSet) {}

func (c *loadCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("load takes exactly one portfolio name")
	}
	name := f.Arg(0)

	engine, err := openEngine(name)
	if err != nil {
		return fail(err)
	}
	composition, err := engine.Composition(name, date.Today())
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Portfolio %q:\n", name)
	for _, ticker := range slices.Sorted(maps.Keys(composition)) {
		fmt.Printf("  %s: %v shares\n", ticker, composition[ticker])
	}
	return subcommands.ExitSuccess
}
