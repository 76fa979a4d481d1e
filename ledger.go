package stockfolio

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Entry is one signed share-quantity record tied to a portfolio, a ticker
// and an effective date. A buy carries a positive delta, a sell a negative
// one. Entries are append-only: never mutated, never deleted.
type Entry struct {
	Day       date.Date
	Shares    decimal.Decimal
	Ticker    string
	Portfolio string
}

// Ledger owns the append-only log of share deltas for every portfolio,
// backed by a single store file shared by all of them.
//
// Alongside the raw entries it maintains a per (portfolio, ticker) index of
// cumulative positions sorted by date, so "shares held as of" is a binary
// search rather than a replay of the log. The index is not a single running
// total: queries are as-of an arbitrary past date, not just "now".
type Ledger struct {
	path      string
	entries   []Entry
	positions map[holdingKey]*positionSeries
	tickers   map[string]map[string]bool // portfolio -> tickers ever touched
}

type holdingKey struct{ portfolio, ticker string }

// OpenLedger loads the ledger store at path, creating an empty one when the
// file does not exist yet.
func OpenLedger(path string) (*Ledger, error) {
	l := &Ledger{
		path:      path,
		positions: make(map[holdingKey]*positionSeries),
		tickers:   make(map[string]map[string]bool),
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return l, nil // first append materializes the file
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening ledger store %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	entries, err := decodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("decoding ledger store %q: %w", path, err)
	}
	for _, e := range entries {
		l.index(e)
	}
	return l, nil
}

// Append records one entry: it is flushed to the store before the in-memory
// index picks it up. No balance validation happens here; the Engine checks
// a sell against the holdings before calling Append.
func (l *Ledger) Append(e Entry) error {
	if err := appendEntry(l.path, e); err != nil {
		return err
	}
	l.index(e)
	return nil
}

func (l *Ledger) index(e Entry) {
	l.entries = append(l.entries, e)

	key := holdingKey{e.Portfolio, e.Ticker}
	p, ok := l.positions[key]
	if !ok {
		p = &positionSeries{}
		l.positions[key] = p
	}
	p.add(e.Day, e.Shares)

	set, ok := l.tickers[e.Portfolio]
	if !ok {
		set = make(map[string]bool)
		l.tickers[e.Portfolio] = set
	}
	set[e.Ticker] = true
}

// HoldingsAsOf returns the sum of signed deltas for portfolio and ticker
// with an effective date at or before the given date.
func (l *Ledger) HoldingsAsOf(portfolio, ticker string, on date.Date) decimal.Decimal {
	p, ok := l.positions[holdingKey{portfolio, ticker}]
	if !ok {
		return decimal.Zero
	}
	return p.asOf(on)
}

// TickersTouched returns every distinct ticker the portfolio ever recorded
// an entry for, in alphabetical order.
func (l *Ledger) TickersTouched(portfolio string) []string {
	return slices.Sorted(maps.Keys(l.tickers[portfolio]))
}

// HasEntries reports whether the portfolio has at least one entry.
func (l *Ledger) HasEntries(portfolio string) bool {
	return len(l.tickers[portfolio]) > 0
}

// Load reconstructs a portfolio's ticker set from the persisted entries.
// It fails with ErrNotFound when the ledger holds no entries for that name.
func (l *Ledger) Load(portfolio string) ([]string, error) {
	if !l.HasEntries(portfolio) {
		return nil, fmt.Errorf("%w: no ledger entries for portfolio %q", ErrNotFound, portfolio)
	}
	return l.TickersTouched(portfolio), nil
}

// positionSeries stores cumulative share totals on the unique, sorted
// effective dates of one (portfolio, ticker) pair.
type positionSeries struct {
	days   []date.Date
	deltas []decimal.Decimal
	totals []decimal.Decimal // totals[i] = sum of deltas[0..i]
}

// add merges a delta at the given date and rebuilds the prefix sums from
// the insertion point on. Appends may carry any effective date, a rebalance
// can be recorded in the past.
func (p *positionSeries) add(day date.Date, delta decimal.Decimal) {
	i, found := slices.BinarySearchFunc(p.days, day, date.Date.Compare)
	if found {
		p.deltas[i] = p.deltas[i].Add(delta)
	} else {
		p.days = slices.Insert(p.days, i, day)
		p.deltas = slices.Insert(p.deltas, i, delta)
		p.totals = slices.Insert(p.totals, i, decimal.Zero)
	}
	running := decimal.Zero
	if i > 0 {
		running = p.totals[i-1]
	}
	for ; i < len(p.days); i++ {
		running = running.Add(p.deltas[i])
		p.totals[i] = running
	}
}

// asOf returns the cumulative total on the most recent effective date at or
// before day, or zero when no entry precedes it.
func (p *positionSeries) asOf(day date.Date) decimal.Decimal {
	i, found := slices.BinarySearchFunc(p.days, day, date.Date.Compare)
	if !found {
		i-- // insertion point, the entry before it is the last one <= day
	}
	if i < 0 {
		return decimal.Zero
	}
	return p.totals[i]
}
