package stockfolio

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"stockfolio/date"
)

// This file implements the price store record format: one header line, then
// data lines "date,open,high,low,close,volume,ticker". The close sits at
// index 4 and the ticker at index 6. Rows of a ticker need not be
// contiguous; the decoder tolerates any row order and the encoder writes
// each ticker newest-first, the order the provider delivers.

const priceHeader = "date,open,high,low,close,volume,ticker"

// decodePrices reads the price store format into per-ticker series.
func decodePrices(r io.Reader) (map[string]*quoteSeries, error) {
	table := make(map[string]*quoteSeries)
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if line == 1 || txt == "" {
			continue // header or blank line
		}
		q, ticker, err := parsePriceLine(txt)
		if err != nil {
			return nil, fmt.Errorf("price store line %d: %w", line, err)
		}
		s, ok := table[ticker]
		if !ok {
			s = &quoteSeries{}
			table[ticker] = s
		}
		s.append(q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading price store: %w", ErrIO, err)
	}
	return table, nil
}

func parsePriceLine(txt string) (Quote, string, error) {
	fields := strings.Split(txt, ",")
	if len(fields) != 7 {
		return Quote{}, "", fmt.Errorf("want 7 fields %q, got %d", priceHeader, len(fields))
	}
	day, err := date.Parse(fields[0])
	if err != nil {
		return Quote{}, "", err
	}
	var numbers [4]float64
	for i, f := range fields[1:5] {
		numbers[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return Quote{}, "", fmt.Errorf("invalid price %q: %w", f, err)
		}
	}
	volume, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Quote{}, "", fmt.Errorf("invalid volume %q: %w", fields[5], err)
	}
	q := Quote{
		Day:    day,
		Open:   numbers[0],
		High:   numbers[1],
		Low:    numbers[2],
		Close:  numbers[3],
		Volume: volume,
	}
	return q, fields[6], nil
}

// encodePrices writes the whole table in the price store format, tickers in
// alphabetical order for a canonical, diff-friendly file.
func encodePrices(w io.Writer, table map[string]*quoteSeries) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, priceHeader)
	for _, ticker := range slices.Sorted(maps.Keys(table)) {
		s := table[ticker]
		for i := s.Len() - 1; i >= 0; i-- { // newest first
			q := s.quotes[i]
			fmt.Fprintf(bw, "%s,%s,%s,%s,%s,%d,%s\n",
				q.Day,
				formatPrice(q.Open), formatPrice(q.High), formatPrice(q.Low), formatPrice(q.Close),
				q.Volume, ticker)
		}
	}
	return bw.Flush()
}

func formatPrice(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// writeFileAtomic writes via a temp file in the same directory and renames
// it over path, so a failed write never corrupts previously committed
// records.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file in %q: %w", ErrIO, dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrIO, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replacing %q: %w", ErrIO, path, err)
	}
	return nil
}
