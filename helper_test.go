package stockfolio

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stockfolio/date"
)

// day is a shorthand for fixture dates.
func day(s string) date.Date { return date.MustParse(s) }

// fakeProvider serves canned histories and counts the fetches.
type fakeProvider struct {
	quotes map[string][]Quote
	err    error
	calls  int
}

func (p *fakeProvider) Daily(ticker string) ([]Quote, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	quotes, ok := p.quotes[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTicker, ticker)
	}
	return quotes, nil
}

// closes builds a newest-first daily history from chronological
// day/close pairs, the way a provider delivers it.
func closes(pairs ...any) []Quote {
	quotes := make([]Quote, 0, len(pairs)/2)
	for i := len(pairs) - 2; i >= 0; i -= 2 {
		quotes = append(quotes, Quote{
			Day:   day(pairs[i].(string)),
			Close: pairs[i+1].(float64),
		})
	}
	return quotes
}

// openFixtureCache copies testdata/prices.csv into a temp dir and opens a
// cache on it, so refreshes never touch the fixture.
func openFixtureCache(t *testing.T, p Provider) *PriceCache {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", "prices.csv"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cache, err := OpenPriceCache(path, p)
	require.NoError(t, err)
	return cache
}

// newTestEngine wires the fixture cache to a fresh ledger.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cache := openFixtureCache(t, &fakeProvider{})
	ledger, err := OpenLedger(filepath.Join(t.TempDir(), "ledger.csv"))
	require.NoError(t, err)
	return NewEngine(cache, ledger)
}
