package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// addCmd creates a new, empty portfolio.
type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create a new portfolio" }
func (*addCmd) Usage() string {
	return `stk add <name>

  Creates a new empty portfolio. It is persisted to the ledger with its
  first buy.
`
}
func (*addCmd) SetFlags(*flag.FlagSet) {}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("add takes exactly one portfolio name")
	}
	name := f.Arg(0)

	engine, err := openEngine()
	if err != nil {
		return fail(err)
	}
	// Reject names that already have ledger entries.
	if err := engine.LoadPortfolio(name); err == nil {
		return fail(fmt.Errorf("portfolio %q already exists", name))
	}
	if err := engine.AddPortfolio(name); err != nil {
		return fail(err)
	}
	fmt.Printf("Created portfolio %q\n", name)
	return subcommands.ExitSuccess
}
