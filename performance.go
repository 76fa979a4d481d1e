package stockfolio

import (
	"fmt"
	"math"
	"strings"

	"stockfolio/date"
)

// PerformanceSample is one valued point of a performance chart.
type PerformanceSample struct {
	Day   date.Date
	Value float64
}

// PerformanceReport is a text bar chart of a stock price or a portfolio
// value over a date range. Each sampled day renders one line of asterisks,
// each asterisk standing for Scale dollars.
type PerformanceReport struct {
	Name    string
	Stock   bool
	Start   date.Date
	End     date.Date
	Samples []PerformanceSample
	Scale   int
}

// PerformanceOverTime samples the closing price of a stock, or the total
// asset value of a portfolio, over [start, end]. The sampling interval
// widens with the span so the chart stays between roughly 5 and 30 lines;
// the end date itself is always the last sample.
func (e *Engine) PerformanceOverTime(isStock bool, name string, start, end date.Date) (*PerformanceReport, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidArgument, start, end)
	}
	if !isStock && !e.registered[name] {
		return nil, fmt.Errorf("%w: portfolio %q", ErrNotFound, name)
	}

	value := func(on date.Date) (float64, error) {
		if isStock {
			return e.cache.ClosingPrice(name, on)
		}
		return e.TotalAssetValue(name, on)
	}

	span := start.DaysUntil(end)
	interval := span / 15
	switch {
	case span < 5:
		interval = 1
	case span < 30:
		interval = 2
	}

	report := &PerformanceReport{Name: name, Stock: isStock, Start: start, End: end}
	for day := start; day.Before(end); day = day.Add(interval) {
		v, err := value(day)
		if err != nil {
			return nil, err
		}
		report.Samples = append(report.Samples, PerformanceSample{Day: day, Value: v})
	}
	v, err := value(end)
	if err != nil {
		return nil, err
	}
	report.Samples = append(report.Samples, PerformanceSample{Day: end, Value: v})

	report.Scale = chartScale(report.Samples)
	return report, nil
}

// chartScale picks the dollar value of one asterisk from the largest
// sample, one power of ten below its magnitude so the tallest bar stays in
// the tens of characters.
func chartScale(samples []PerformanceSample) int {
	max := 0.0
	for _, s := range samples {
		if s.Value > max {
			max = s.Value
		}
	}
	if max <= 0 {
		return 1
	}
	k := int(math.Log10(max))
	if k > 1 {
		k--
	}
	return int(math.Pow(10, float64(k)))
}

func (r *PerformanceReport) String() string {
	kind := "portfolio"
	if r.Stock {
		kind = "stock"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Performance of %s: %s from %s to %s\n\n", kind, r.Name, r.Start, r.End)
	for _, s := range r.Samples {
		fmt.Fprintf(&b, "%s %d, %d: %s\n",
			strings.ToUpper(s.Day.Format("Jan")), s.Day.Day(), s.Day.Year(),
			strings.Repeat("*", int(s.Value/float64(r.Scale))))
	}
	fmt.Fprintf(&b, "\nScale: * = %d\n", r.Scale)
	return b.String()
}
