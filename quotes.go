package stockfolio

import (
	"slices"

	"stockfolio/date"
)

// Quote is one daily price record for a ticker. Immutable once written:
// refreshes replace a ticker's whole series, never individual records.
type Quote struct {
	Day    date.Date
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// quoteSeries stores the chronological daily quotes of a single ticker.
// Days are unique and the series is always sorted, so point-in-time
// lookups are binary searches.
type quoteSeries struct {
	days   []date.Date
	quotes []Quote
}

// Len returns the number of quotes in the series.
func (s *quoteSeries) Len() int { return len(s.days) }

// append adds a quote to the series, keeping it sorted.
// An existing quote on the same day is overwritten.
func (s *quoteSeries) append(q Quote) {
	i, found := slices.BinarySearchFunc(s.days, q.Day, date.Date.Compare)
	if found {
		s.quotes[i] = q
		return
	}
	s.days = slices.Insert(s.days, i, q.Day)
	s.quotes = slices.Insert(s.quotes, i, q)
}

// oldest returns the first known trading day. The series must not be empty.
func (s *quoteSeries) oldest() date.Date { return s.days[0] }

// newest returns the last known trading day. The series must not be empty.
func (s *quoteSeries) newest() date.Date { return s.days[len(s.days)-1] }

// has reports whether day is a trading day of this series.
func (s *quoteSeries) has(day date.Date) bool {
	_, found := slices.BinarySearchFunc(s.days, day, date.Date.Compare)
	return found
}

// indexAsOf returns the index of the most recent trading day at or before
// day, or -1 when no trading day precedes it.
func (s *quoteSeries) indexAsOf(day date.Date) int {
	i, found := slices.BinarySearchFunc(s.days, day, date.Date.Compare)
	if found {
		return i
	}
	// i is the insertion point, the entry before it is the last one <= day.
	return i - 1
}

// closeAsOf returns the closing price on day, or on the most recent trading
// day before it. The second result is false when no trading day precedes day.
func (s *quoteSeries) closeAsOf(day date.Date) (float64, bool) {
	i := s.indexAsOf(day)
	if i < 0 {
		return 0, false
	}
	return s.quotes[i].Close, true
}

// countAfter returns the number of trading days t with after < t <= until.
func (s *quoteSeries) countAfter(after, until date.Date) int {
	lo, found := slices.BinarySearchFunc(s.days, after, date.Date.Compare)
	if found {
		lo++ // exclude the lower bound itself
	}
	hi := s.indexAsOf(until)
	if hi < lo {
		return 0
	}
	return hi - lo + 1
}
