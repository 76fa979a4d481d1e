package stockfolio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"stockfolio/date"
)

// Ledger store record format: one header line, then data lines
// "date,signedShares,ticker,portfolioName". Shares may be fractional and
// negative. The file is append-only; a line is the unit of commit.

const ledgerHeader = "Date,Shares,Ticker,Portfolio"

// decodeLedger reads the ledger store format, preserving append order.
func decodeLedger(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		txt := strings.TrimSpace(scanner.Text())
		if line == 1 || txt == "" {
			continue // header or blank line
		}
		e, err := parseLedgerLine(txt)
		if err != nil {
			return nil, fmt.Errorf("ledger store line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading ledger store: %w", ErrIO, err)
	}
	return entries, nil
}

func parseLedgerLine(txt string) (Entry, error) {
	fields := strings.Split(txt, ",")
	if len(fields) != 4 {
		return Entry{}, fmt.Errorf("want 4 fields %q, got %d", ledgerHeader, len(fields))
	}
	day, err := date.Parse(fields[0])
	if err != nil {
		return Entry{}, err
	}
	shares, err := decimal.NewFromString(fields[1])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid share count %q: %w", fields[1], err)
	}
	return Entry{Day: day, Shares: shares, Ticker: fields[2], Portfolio: fields[3]}, nil
}

func formatLedgerLine(e Entry) string {
	return fmt.Sprintf("%s,%s,%s,%s\n", e.Day, e.Shares, e.Ticker, e.Portfolio)
}

// appendEntry appends a single entry line to the store file, creating the
// file with its header first when needed.
func appendEntry(path string, e Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: opening ledger store %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat ledger store %q: %w", ErrIO, path, err)
	}
	var buf strings.Builder
	if info.Size() == 0 {
		buf.WriteString(ledgerHeader + "\n")
	}
	buf.WriteString(formatLedgerLine(e))
	if _, err := f.WriteString(buf.String()); err != nil {
		return fmt.Errorf("%w: appending to ledger store %q: %w", ErrIO, path, err)
	}
	return nil
}
