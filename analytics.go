package stockfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"stockfolio/date"
)

// The analytics are stateless functions over a PriceCache. They share its
// query semantics: lazy fetch on first reference, refusal of future dates,
// forward-fill over non-trading days.

// round2 rounds to 2 decimal places, halves away from zero.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// NetGain returns the change in closing price of ticker between start and
// end, rounded to 2 decimals. start must be strictly before end.
func NetGain(cache *PriceCache, ticker string, start, end date.Date) (float64, error) {
	if !start.Before(end) {
		return 0, fmt.Errorf("%w: start date %s must be before end date %s", ErrInvalidArgument, start, end)
	}
	startValue, err := cache.ClosingPrice(ticker, start)
	if err != nil {
		return 0, err
	}
	endValue, err := cache.ClosingPrice(ticker, end)
	if err != nil {
		return 0, err
	}
	return round2(endValue - startValue), nil
}

// XDayMovingAverage returns the mean closing price of ticker over the up to
// x most recent trading days at or before the given date, rounded to 2
// decimals. Days without a trading record do not enter the window; the
// window simply reaches further back in the history.
//
// x must not be negative. An x of zero yields 0.
func XDayMovingAverage(cache *PriceCache, ticker string, x int, on date.Date) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("%w: window of %d days is negative", ErrInvalidArgument, x)
	}
	s, err := cache.freshSeries(ticker, on)
	if err != nil {
		return 0, err
	}
	last := s.indexAsOf(on)
	if last < 0 {
		return 0, fmt.Errorf("%w: no %s data at or before %s", ErrOutOfRange, ticker, on)
	}
	if x == 0 {
		return 0, nil
	}
	first := last - x + 1
	if first < 0 {
		first = 0
	}
	window := make([]float64, 0, last-first+1)
	for i := first; i <= last; i++ {
		window = append(window, s.quotes[i].Close)
	}
	return round2(stat.Mean(window, nil)), nil
}

// XDayCrossover lists the trading days within [start, end] whose closing
// price exceeds their own x-day moving average, ordered most recent first.
//
// The walk starts at end and steps toward start, skipping non-trading days
// by consuming loop iterations. Around a weekend it inspects fewer days
// than a plain scan of the range would; reports produced by earlier
// releases depend on that enumeration, keep it stable.
func XDayCrossover(cache *PriceCache, ticker string, x int, start, end date.Date) ([]date.Date, error) {
	if x < 0 {
		return nil, fmt.Errorf("%w: window of %d days is negative", ErrInvalidArgument, x)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start date %s must be before end date %s", ErrInvalidArgument, start, end)
	}
	s, err := cache.freshSeries(ticker, end)
	if err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: no %s data", ErrOutOfRange, ticker)
	}

	span := s.countAfter(start, end) + 1
	var crossovers []date.Date
	for i := 0; i < span-(x-1); i++ {
		day := end.Add(-i)
		for !s.has(day) {
			day = day.Add(-i)
			i++
			if day.Before(s.oldest()) {
				return crossovers, nil
			}
		}
		price, err := cache.ClosingPrice(ticker, day)
		if err != nil {
			return nil, err
		}
		average, err := XDayMovingAverage(cache, ticker, x, day)
		if err != nil {
			return nil, err
		}
		if price > average {
			crossovers = append(crossovers, day)
		}
	}
	return crossovers, nil
}
