// Package stockfolio tracks portfolios of equities against a locally
// cached history of daily closing prices.
//
// The package is organized around four collaborators:
//
//   - PriceCache owns the persisted price history per ticker and answers
//     "closing price as of date" queries, refreshing from a Provider when
//     data is missing or stale.
//   - The analytics functions (NetGain, XDayMovingAverage, XDayCrossover)
//     are stateless computations over a PriceCache.
//   - Ledger owns an append-only log of signed share deltas per portfolio
//     and answers point-in-time holdings queries.
//   - Engine composes the two stores into portfolio operations: buying and
//     selling, valuation, composition, distribution, rebalancing and
//     performance reports.
//
// Both stores are flat CSV files loaded at startup and flushed on write;
// single-writer, single-process access is assumed throughout.
package stockfolio
