package stockfolio

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenLedger(filepath.Join(t.TempDir(), "ledger.csv"))
	require.NoError(t, err)
	return l
}

func shares(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestHoldingsAsOf(t *testing.T) {
	l := openTempLedger(t)
	entries := []Entry{
		{day("2024-05-10"), shares("10"), "AAPL", "retirement"},
		{day("2024-05-13"), shares("5"), "NVDA", "retirement"},
		{day("2024-05-14"), shares("-5"), "NVDA", "retirement"},
		{day("2024-05-13"), shares("2.5"), "AAPL", "vacation"},
	}
	for _, e := range entries {
		require.NoError(t, l.Append(e))
	}

	tests := []struct {
		name              string
		portfolio, ticker string
		on                string
		want              string
	}{
		{"before first entry", "retirement", "AAPL", "2024-05-09", "0"},
		{"on entry date", "retirement", "AAPL", "2024-05-10", "10"},
		{"carried forward", "retirement", "AAPL", "2024-06-01", "10"},
		{"between buy and sell", "retirement", "NVDA", "2024-05-13", "5"},
		{"after full sale", "retirement", "NVDA", "2024-06-01", "0"},
		{"portfolios are isolated", "vacation", "AAPL", "2024-06-01", "2.5"},
		{"unknown pair", "vacation", "NVDA", "2024-06-01", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := l.HoldingsAsOf(tc.portfolio, tc.ticker, day(tc.on))
			assert.True(t, got.Equal(shares(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestHoldingsAsOfBackdatedEntry(t *testing.T) {
	l := openTempLedger(t)
	require.NoError(t, l.Append(Entry{day("2024-05-13"), shares("5"), "NVDA", "retirement"}))
	// a rebalance may record an entry before existing ones
	require.NoError(t, l.Append(Entry{day("2024-05-10"), shares("2"), "NVDA", "retirement"}))

	assert.True(t, l.HoldingsAsOf("retirement", "NVDA", day("2024-05-10")).Equal(shares("2")))
	assert.True(t, l.HoldingsAsOf("retirement", "NVDA", day("2024-05-13")).Equal(shares("7")))
}

func TestTickersTouched(t *testing.T) {
	l := openTempLedger(t)
	require.NoError(t, l.Append(Entry{day("2024-05-13"), shares("5"), "NVDA", "retirement"}))
	require.NoError(t, l.Append(Entry{day("2024-05-10"), shares("10"), "AAPL", "retirement"}))
	require.NoError(t, l.Append(Entry{day("2024-05-14"), shares("-5"), "NVDA", "retirement"}))

	// sold-out tickers stay, order is alphabetical
	assert.Equal(t, []string{"AAPL", "NVDA"}, l.TickersTouched("retirement"))
	assert.Empty(t, l.TickersTouched("vacation"))
}

func TestLedgerLoad(t *testing.T) {
	l := openTempLedger(t)
	require.NoError(t, l.Append(Entry{day("2024-05-10"), shares("10"), "AAPL", "retirement"}))

	tickers, err := l.Load("retirement")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, tickers)

	_, err = l.Load("vacation")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	l, err := OpenLedger(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(Entry{day("2024-05-10"), shares("10"), "AAPL", "retirement"}))
	require.NoError(t, l.Append(Entry{day("2024-05-13"), shares("5"), "NVDA", "retirement"}))

	reopened, err := OpenLedger(path)
	require.NoError(t, err)
	assert.Equal(t, l.entries, reopened.entries)
	assert.True(t, reopened.HoldingsAsOf("retirement", "AAPL", day("2024-05-13")).Equal(shares("10")))
}

func TestOpenLedgerMissingFile(t *testing.T) {
	l, err := OpenLedger(filepath.Join(t.TempDir(), "ledger.csv"))
	require.NoError(t, err)
	assert.False(t, l.HasEntries("retirement"))
}
