package stockfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioLifecycle(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.AddPortfolio("retirement"))
	assert.True(t, e.HasPortfolio("retirement"))
	assert.ErrorIs(t, e.AddPortfolio("retirement"), ErrAlreadyExists)

	// empty portfolio values to zero
	value, err := e.TotalAssetValue("retirement", day("2024-05-10"))
	require.NoError(t, err)
	assert.Zero(t, value)

	_, err = e.TotalAssetValue("vacation", day("2024-05-10"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTotalAssetValueScenario(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))

	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))
	value, err := e.TotalAssetValue("retirement", day("2024-05-10"))
	require.NoError(t, err)
	assert.InDelta(t, 1830.5, value, 1e-9)

	require.NoError(t, e.Buy("retirement", "NVDA", 5, day("2024-05-13")))
	value, err = e.TotalAssetValue("retirement", day("2024-05-13"))
	require.NoError(t, err)
	assert.InDelta(t, 6382.75, value, 1e-9)

	require.NoError(t, e.Sell("retirement", "NVDA", 5, day("2024-05-14")))

	// Saturday valuation fills from Friday's close; the sold-out NVDA
	// position contributes nothing.
	value, err = e.TotalAssetValue("retirement", day("2024-06-01"))
	require.NoError(t, err)
	assert.InDelta(t, 1922.5, value, 1e-9)
}

func TestBuyValidation(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))

	assert.ErrorIs(t, e.Buy("retirement", "AAPL", 0, day("2024-05-10")), ErrInvalidArgument)
	assert.ErrorIs(t, e.Buy("retirement", "AAPL", -3, day("2024-05-10")), ErrInvalidArgument)
	assert.ErrorIs(t, e.Buy("vacation", "AAPL", 10, day("2024-05-10")), ErrNotFound)
	assert.ErrorIs(t, e.Buy("retirement", "NOPE", 10, day("2024-05-10")), ErrInvalidTicker)

	// nothing reached the ledger
	composition, err := e.Composition("retirement", day("2024-06-01"))
	require.NoError(t, err)
	assert.Empty(t, composition)
}

func TestSellValidation(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))

	assert.ErrorIs(t, e.Sell("retirement", "AAPL", 0, day("2024-05-13")), ErrInvalidArgument)
	assert.ErrorIs(t, e.Sell("retirement", "AAPL", 11, day("2024-05-13")), ErrInvalidArgument)
	// holdings are checked on the sale date, not today
	assert.ErrorIs(t, e.Sell("retirement", "AAPL", 5, day("2024-05-09")), ErrInvalidArgument)
	assert.ErrorIs(t, e.Sell("vacation", "AAPL", 5, day("2024-05-13")), ErrNotFound)

	// a rejected sell leaves the holdings untouched
	composition, err := e.Composition("retirement", day("2024-05-13"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 10}, composition)

	require.NoError(t, e.Sell("retirement", "AAPL", 4, day("2024-05-13")))
	composition, err = e.Composition("retirement", day("2024-05-13"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 6}, composition)
}

func TestCompositionKeepsSoldOutTickers(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "NVDA", 5, day("2024-05-13")))
	require.NoError(t, e.Sell("retirement", "NVDA", 5, day("2024-05-14")))

	composition, err := e.Composition("retirement", day("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"NVDA": 0}, composition)
}

func TestDistribution(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))
	require.NoError(t, e.Buy("retirement", "NVDA", 5, day("2024-05-13")))

	distribution, err := e.Distribution("retirement", day("2024-05-13"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 1862.8, "NVDA": 4519.95}, distribution)

	// a sold-out ticker shows up with zero value, without a price lookup
	require.NoError(t, e.Sell("retirement", "NVDA", 5, day("2024-05-14")))
	distribution, err = e.Distribution("retirement", day("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 1922.5, "NVDA": 0}, distribution)
}

func TestRebalance(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))
	require.NoError(t, e.Buy("retirement", "NVDA", 5, day("2024-05-13")))

	require.NoError(t, e.Rebalance("retirement", map[string]float64{"AAPL": 0.5, "NVDA": 0.5}, day("2024-05-10")))

	distribution, err := e.Distribution("retirement", day("2024-05-10"))
	require.NoError(t, err)
	assert.InDelta(t, 915.25, distribution["AAPL"], 1e-9)
	assert.InDelta(t, 915.25, distribution["NVDA"], 1e-9)

	// half the value at 183.05 a share is exactly 5 AAPL shares
	composition, err := e.Composition("retirement", day("2024-05-10"))
	require.NoError(t, err)
	assert.InDelta(t, 5, composition["AAPL"], 1e-9)
}

func TestRebalanceValidation(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))

	on := day("2024-05-13")
	assert.ErrorIs(t, e.Rebalance("vacation", map[string]float64{"AAPL": 1}, on), ErrNotFound)
	assert.ErrorIs(t, e.Rebalance("retirement", map[string]float64{"NVDA": 1}, on), ErrInvalidArgument)
	assert.ErrorIs(t, e.Rebalance("retirement", map[string]float64{"AAPL": 0.8}, on), ErrInvalidArgument)

	// a rejected rebalance appends nothing
	composition, err := e.Composition("retirement", on)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 10}, composition)
}

func TestRebalanceWeightsMustSumExactly(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))
	require.NoError(t, e.Buy("retirement", "NVDA", 5, day("2024-05-13")))

	on := day("2024-05-13")
	// summed as decimals, so float representation noise cannot sneak in
	require.NoError(t, e.Rebalance("retirement", map[string]float64{"AAPL": 0.1, "NVDA": 0.9}, on))
	assert.ErrorIs(t, e.Rebalance("retirement", map[string]float64{"AAPL": 0.5, "NVDA": 0.49}, on), ErrInvalidArgument)
}

func TestLoadPortfolio(t *testing.T) {
	cache := openFixtureCache(t, &fakeProvider{})
	ledger := openTempLedger(t)
	e := NewEngine(cache, ledger)
	require.NoError(t, e.AddPortfolio("retirement"))
	require.NoError(t, e.Buy("retirement", "AAPL", 10, day("2024-05-10")))

	assert.ErrorIs(t, e.LoadPortfolio("retirement"), ErrAlreadyExists)

	// a fresh engine over the same stores reconstructs the portfolio
	reopened, err := OpenLedger(ledger.path)
	require.NoError(t, err)
	e2 := NewEngine(cache, reopened)
	assert.ErrorIs(t, e2.LoadPortfolio("vacation"), ErrNotFound)
	require.NoError(t, e2.LoadPortfolio("retirement"))

	value, err := e2.TotalAssetValue("retirement", day("2024-05-10"))
	require.NoError(t, err)
	assert.InDelta(t, 1830.5, value, 1e-9)
}

func TestPortfoliosSorted(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddPortfolio("vacation"))
	require.NoError(t, e.AddPortfolio("retirement"))

	assert.Equal(t, []string{"retirement", "vacation"}, e.Portfolios())
}
