// Package cmd implements the stk command line interface.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"stockfolio"
	"stockfolio/alphavantage"
	"stockfolio/date"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "portfolios")
	c.Register(&loadCmd{}, "portfolios")
	c.Register(&datafileCmd{}, "portfolios")

	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&rebalanceCmd{}, "trading")

	c.Register(&valueCmd{}, "reports")
	c.Register(&compositionCmd{}, "reports")
	c.Register(&distributionCmd{}, "reports")
	c.Register(&performanceCmd{}, "reports")

	c.Register(&gainCmd{}, "analytics")
	c.Register(&averageCmd{}, "analytics")
	c.Register(&crossoverCmd{}, "analytics")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var pricesFile = flag.String("prices-file", "", "Path to the price store (CSV). Overrides the config file.")
var ledgerFile = flag.String("ledger-file", "", "Path to the trade ledger (CSV). Overrides the config file.")
var verbose = flag.Bool("v", false, "Log store and provider activity to stderr.")

func logger() zerolog.Logger {
	if !*verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// openEngine builds the engine from the config file, the environment and
// the global flags, then loads the named portfolios from the ledger.
func openEngine(portfolios ...string) (*stockfolio.Engine, error) {
	cfg := loadConfig()
	if *pricesFile != "" {
		cfg.Prices = *pricesFile
	}
	if *ledgerFile != "" {
		cfg.Ledger = *ledgerFile
	}

	provider := alphavantage.NewClient(cfg.APIKey)
	provider.Log = logger()

	cache, err := stockfolio.OpenPriceCache(cfg.Prices, provider)
	if err != nil {
		return nil, fmt.Errorf("opening price store %q: %w", cfg.Prices, err)
	}
	cache.SetLogger(logger())

	ledger, err := stockfolio.OpenLedger(cfg.Ledger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %q: %w", cfg.Ledger, err)
	}

	engine := stockfolio.NewEngine(cache, ledger)
	for _, name := range portfolios {
		if err := engine.LoadPortfolio(name); err != nil {
			return nil, fmt.Errorf("loading portfolio %q: %w", name, err)
		}
	}
	return engine, nil
}

// parseDay parses a -d flag value, defaulting to today when empty.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// tradeArgs parses the shared <portfolio> <ticker> <shares> positionals of
// buy and sell.
func tradeArgs(f *flag.FlagSet, verb string) (portfolio, ticker string, shares float64, status subcommands.ExitStatus) {
	if f.NArg() != 3 {
		return "", "", 0, usageError("%s takes <portfolio> <ticker> <shares>", verb)
	}
	shares, err := strconv.ParseFloat(f.Arg(2), 64)
	if err != nil {
		return "", "", 0, usageError("Error parsing share count: %v", err)
	}
	return f.Arg(0), f.Arg(1), shares, subcommands.ExitSuccess
}

// fail prints the error and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usageError prints the message and returns a usage exit status.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
