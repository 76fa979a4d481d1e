package stockfolio

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Engine composes the price cache and the ledger into portfolio
// operations. It keeps the registry of portfolio names known to this
// process; every operation checks existence explicitly before touching the
// stores.
type Engine struct {
	cache      *PriceCache
	ledger     *Ledger
	registered map[string]bool
}

// NewEngine returns an engine over the given stores.
func NewEngine(cache *PriceCache, ledger *Ledger) *Engine {
	return &Engine{
		cache:      cache,
		ledger:     ledger,
		registered: make(map[string]bool),
	}
}

// HasPortfolio reports whether a portfolio name is registered, by a prior
// AddPortfolio or LoadPortfolio.
func (e *Engine) HasPortfolio(name string) bool { return e.registered[name] }

// Portfolios returns the registered portfolio names in alphabetical order.
func (e *Engine) Portfolios() []string {
	return slices.Sorted(maps.Keys(e.registered))
}

// AddPortfolio registers a new, empty portfolio.
func (e *Engine) AddPortfolio(name string) error {
	if e.registered[name] {
		return fmt.Errorf("%w: portfolio %q", ErrAlreadyExists, name)
	}
	e.registered[name] = true
	return nil
}

// LoadPortfolio registers a portfolio reconstructed from persisted ledger
// entries. It fails with ErrAlreadyExists when the name is registered and
// ErrNotFound when the ledger has no entries for it.
func (e *Engine) LoadPortfolio(name string) error {
	if e.registered[name] {
		return fmt.Errorf("%w: portfolio %q is already loaded", ErrAlreadyExists, name)
	}
	if _, err := e.ledger.Load(name); err != nil {
		return err
	}
	e.registered[name] = true
	return nil
}

// Buy appends a positive entry for the portfolio and warms the price cache
// for the ticker, which also validates the symbol against the provider.
func (e *Engine) Buy(portfolio, ticker string, shares float64, on date.Date) error {
	if shares <= 0 {
		return fmt.Errorf("%w: share count %v must be positive", ErrInvalidArgument, shares)
	}
	if !e.registered[portfolio] {
		return fmt.Errorf("%w: portfolio %q", ErrNotFound, portfolio)
	}
	if err := e.cache.EnsureFresh(ticker, on); err != nil {
		return err
	}
	return e.ledger.Append(Entry{
		Day:       on,
		Shares:    decimal.NewFromFloat(shares),
		Ticker:    ticker,
		Portfolio: portfolio,
	})
}

// Sell appends a negative entry after checking the holdings on the sale
// date itself. A rejected sell leaves the ledger untouched.
func (e *Engine) Sell(portfolio, ticker string, shares float64, on date.Date) error {
	if shares <= 0 {
		return fmt.Errorf("%w: share count %v must be positive", ErrInvalidArgument, shares)
	}
	if !e.registered[portfolio] {
		return fmt.Errorf("%w: portfolio %q", ErrNotFound, portfolio)
	}
	quantity := decimal.NewFromFloat(shares)
	held := e.ledger.HoldingsAsOf(portfolio, ticker, on)
	if held.LessThan(quantity) {
		return fmt.Errorf("%w: cannot sell %v shares of %s, only %s held on %s",
			ErrInvalidArgument, shares, ticker, held, on)
	}
	return e.ledger.Append(Entry{
		Day:       on,
		Shares:    quantity.Neg(),
		Ticker:    ticker,
		Portfolio: portfolio,
	})
}

// TotalAssetValue values every ticker the portfolio ever touched at its
// closing price on the given date. Tickers with no current holdings
// contribute 0 without a price lookup, so a dormant ticker whose history
// does not cover the date cannot fail the valuation.
func (e *Engine) TotalAssetValue(portfolio string, on date.Date) (float64, error) {
	total, err := e.totalValue(portfolio, on)
	if err != nil {
		return 0, err
	}
	return total.InexactFloat64(), nil
}

func (e *Engine) totalValue(portfolio string, on date.Date) (decimal.Decimal, error) {
	if !e.registered[portfolio] {
		return decimal.Zero, fmt.Errorf("%w: portfolio %q", ErrNotFound, portfolio)
	}
	total := decimal.Zero
	for _, ticker := range e.ledger.TickersTouched(portfolio) {
		shares := e.ledger.HoldingsAsOf(portfolio, ticker, on)
		if !shares.IsPositive() {
			continue
		}
		price, err := e.cache.ClosingPrice(ticker, on)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(shares.Mul(decimal.NewFromFloat(price)))
	}
	return total, nil
}

// Composition returns the shares held per touched ticker as of the date.
// Tickers bought and fully sold again stay in the map with a zero count.
func (e *Engine) Composition(portfolio string, on date.Date) (map[string]float64, error) {
	if !e.registered[portfolio] {
		return nil, fmt.Errorf("%w: portfolio %q", ErrNotFound, portfolio)
	}
	composition := make(map[string]float64)
	for _, ticker := range e.ledger.TickersTouched(portfolio) {
		composition[ticker] = e.ledger.HoldingsAsOf(portfolio, ticker, on).InexactFloat64()
	}
	return composition, nil
}

// Distribution returns the monetary value held per touched ticker as of
// the date, each rounded to 2 decimals.
func (e *Engine) Distribution(portfolio string, on date.Date) (map[string]float64, error) {
	if !e.registered[portfolio] {
		return nil, fmt.Errorf("%w: portfolio %q", ErrNotFound, portfolio)
	}
	distribution := make(map[string]float64)
	for _, ticker := range e.ledger.TickersTouched(portfolio) {
		shares := e.ledger.HoldingsAsOf(portfolio, ticker, on)
		if !shares.IsPositive() {
			distribution[ticker] = 0
			continue
		}
		price, err := e.cache.ClosingPrice(ticker, on)
		if err != nil {
			return nil, err
		}
		value := shares.Mul(decimal.NewFromFloat(price))
		distribution[ticker] = value.Round(2).InexactFloat64()
	}
	return distribution, nil
}

// Rebalance appends the share deltas that bring the portfolio's
// distribution on the given date to the requested weights.
//
// Every weighted ticker must already be touched by the portfolio, and the
// weights must sum to exactly 1 in decimal arithmetic. All deltas are
// computed against the pre-rebalance state before any is appended.
func (e *Engine) Rebalance(portfolio string, weights map[string]float64, on date.Date) error {
	if !e.registered[portfolio] {
		return fmt.Errorf("%w: portfolio %q", ErrNotFound, portfolio)
	}
	touched := e.ledger.TickersTouched(portfolio)
	sum := decimal.Zero
	for ticker, w := range weights {
		if !slices.Contains(touched, ticker) {
			return fmt.Errorf("%w: ticker %s is not held in portfolio %q", ErrInvalidArgument, ticker, portfolio)
		}
		sum = sum.Add(decimal.NewFromFloat(w))
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: weights sum to %s, want 1", ErrInvalidArgument, sum)
	}

	total, err := e.totalValue(portfolio, on)
	if err != nil {
		return err
	}
	deltas := make([]Entry, 0, len(weights))
	for _, ticker := range slices.Sorted(maps.Keys(weights)) {
		price, err := e.cache.ClosingPrice(ticker, on)
		if err != nil {
			return err
		}
		target := total.Mul(decimal.NewFromFloat(weights[ticker])).Div(decimal.NewFromFloat(price))
		delta := target.Sub(e.ledger.HoldingsAsOf(portfolio, ticker, on))
		deltas = append(deltas, Entry{Day: on, Shares: delta, Ticker: ticker, Portfolio: portfolio})
	}
	for _, entry := range deltas {
		if err := e.ledger.Append(entry); err != nil {
			return err
		}
	}
	return nil
}

// NetGain reports the closing-price change of a ticker over a period.
func (e *Engine) NetGain(ticker string, start, end date.Date) (float64, error) {
	return NetGain(e.cache, ticker, start, end)
}

// MovingAverage reports the x-day moving average of a ticker's closing
// price ending on the given date.
func (e *Engine) MovingAverage(ticker string, x int, on date.Date) (float64, error) {
	return XDayMovingAverage(e.cache, ticker, x, on)
}

// Crossovers reports the days in (start, end] whose closing price crossed
// above the x-day moving average, most recent first.
func (e *Engine) Crossovers(ticker string, x int, start, end date.Date) ([]date.Date, error) {
	return XDayCrossover(e.cache, ticker, x, start, end)
}

// SetDataFile redirects the price store's backing location.
func (e *Engine) SetDataFile(path string) error {
	return e.cache.SetDataFile(path)
}
