package stockfolio

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"stockfolio/date"
)

// PriceCache owns the persisted history of daily closing prices per ticker.
//
// The whole store is loaded into sorted in-memory series at open time and
// rewritten atomically on every refresh. A ticker is fetched lazily from
// the Provider the first time it is referenced, and topped up when a query
// asks for a date beyond the cached history.
type PriceCache struct {
	path     string
	provider Provider
	series   map[string]*quoteSeries
	log      zerolog.Logger
}

// OpenPriceCache loads the price store at path, creating an empty one when
// the file does not exist yet. Refreshes go through provider.
func OpenPriceCache(path string, provider Provider) (*PriceCache, error) {
	c := &PriceCache{
		path:     path,
		provider: provider,
		log:      zerolog.Nop(),
	}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetLogger redirects the cache's operational log. The error path is never
// logged, only surfaced to the caller.
func (c *PriceCache) SetLogger(log zerolog.Logger) { c.log = log }

// SetDataFile redirects the price store to a different backing file. The
// file is created empty when missing, otherwise its records replace the
// in-memory state.
func (c *PriceCache) SetDataFile(path string) error {
	old := c.path
	c.path = path
	if err := c.reload(); err != nil {
		c.path = old
		return err
	}
	c.log.Debug().Str("path", path).Msg("price store redirected")
	return nil
}

// reload replaces the in-memory series with the content of the backing file.
func (c *PriceCache) reload() error {
	f, err := os.Open(c.path)
	if os.IsNotExist(err) {
		c.series = make(map[string]*quoteSeries)
		// Materialize the file so later appends and external readers see it.
		return writeFileAtomic(c.path, func(w io.Writer) error {
			return encodePrices(w, c.series)
		})
	}
	if err != nil {
		return fmt.Errorf("%w: opening price store %q: %w", ErrIO, c.path, err)
	}
	defer f.Close()

	table, err := decodePrices(f)
	if err != nil {
		return fmt.Errorf("decoding price store %q: %w", c.path, err)
	}
	c.series = table
	return nil
}

// Has reports whether the ticker is already cached.
func (c *PriceCache) Has(ticker string) bool {
	s, ok := c.series[ticker]
	return ok && s.Len() > 0
}

// ClosingPrice returns the closing price recorded on the most recent known
// trading day at or before the requested date. Weekends and holidays fill
// forward from the last close, as does a query past the newest record once
// a refresh attempt has been made.
//
// A date strictly after today fails with ErrInvalidArgument. An unknown
// ticker triggers a lazy fetch (ErrInvalidTicker when the provider rejects
// the symbol). A date before the ticker's first known trading day fails
// with ErrOutOfRange.
func (c *PriceCache) ClosingPrice(ticker string, on date.Date) (float64, error) {
	s, err := c.freshSeries(ticker, on)
	if err != nil {
		return 0, err
	}
	price, ok := s.closeAsOf(on)
	if !ok {
		return 0, fmt.Errorf("%w: no %s data at %s, history starts %s",
			ErrOutOfRange, ticker, on, s.oldest())
	}
	return price, nil
}

// EnsureFresh guarantees the cached history of ticker covers asOfDate as
// well as the provider can. An unknown ticker is fetched in full; a known
// one is topped up when its newest record trails asOfDate beyond the
// one-day grace window applied to queries for today.
func (c *PriceCache) EnsureFresh(ticker string, asOf date.Date) error {
	if asOf.After(date.Today()) {
		return fmt.Errorf("%w: date %s is in the future", ErrInvalidArgument, asOf)
	}
	s, ok := c.series[ticker]
	if !ok || s.Len() == 0 {
		return c.refresh(ticker)
	}
	newest := s.newest()
	if !newest.Before(asOf) {
		return nil
	}
	if asOf == date.Today() && newest.DaysUntil(asOf) <= 1 {
		return nil // yesterday's close is acceptable for today's queries
	}
	return c.refresh(ticker)
}

// freshSeries validates the query date, refreshes as needed, and hands the
// ticker's series to in-package analytics.
func (c *PriceCache) freshSeries(ticker string, asOf date.Date) (*quoteSeries, error) {
	if err := c.EnsureFresh(ticker, asOf); err != nil {
		return nil, err
	}
	return c.series[ticker], nil
}

// refresh replaces the ticker's series with the provider's full history and
// persists the store. Other tickers are untouched.
func (c *PriceCache) refresh(ticker string) error {
	quotes, err := c.provider.Daily(ticker)
	if err != nil {
		return fmt.Errorf("refreshing %s: %w", ticker, err)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("%w: provider has no data for %s", ErrInvalidTicker, ticker)
	}
	s := &quoteSeries{}
	for _, q := range quotes {
		s.append(q)
	}
	c.series[ticker] = s
	c.log.Info().Str("ticker", ticker).
		Stringer("oldest", s.oldest()).Stringer("newest", s.newest()).
		Int("days", s.Len()).Msg("price history refreshed")
	return c.save()
}

// save rewrites the backing file. All-or-nothing: a failed write leaves the
// previously committed file in place.
func (c *PriceCache) save() error {
	return writeFileAtomic(c.path, func(w io.Writer) error {
		return encodePrices(w, c.series)
	})
}
