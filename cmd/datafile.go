package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// datafileCmd points the price store at a different file.
type datafileCmd struct{}

func (*datafileCmd) Name() string     { return "datafile" }
func (*datafileCmd) Synopsis() string { return "switch the price store file" }
func (*datafileCmd) Usage() string {
	return `stk datafile <path>

  Reloads prices from the given CSV file and records it in stockfolio.toml
  for later runs.
`
}
func (*datafileCmd) SetFlags(*flag.FlagSet) {}

func (c *datafileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("datafile takes exactly one path")
	}
	path := f.Arg(0)

	engine, err := openEngine()
	if err != nil {
		return fail(err)
	}
	if err := engine.SetDataFile(path); err != nil {
		return fail(err)
	}
	cfg := loadConfig()
	cfg.Prices = path
	if err := saveConfig(cfg); err != nil {
		return fail(err)
	}
	fmt.Printf("Price store is now %q\n", path)
	return subcommands.ExitSuccess
}
