package stockfolio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePricesFixture(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "prices.csv"))
	require.NoError(t, err)
	defer f.Close()

	table, err := decodePrices(f)
	require.NoError(t, err)
	require.Contains(t, table, "AAPL")
	require.Contains(t, table, "NVDA")

	nvda := table["NVDA"]
	assert.Equal(t, day("2024-04-01"), nvda.oldest())
	assert.Equal(t, day("2024-06-03"), nvda.newest())
	price, ok := nvda.closeAsOf(day("2024-05-13"))
	assert.True(t, ok)
	assert.Equal(t, 903.99, price)
}

func TestDecodePricesRejectsBadLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "2024-05-10,898.78,NVDA"},
		{"bad date", "10/05/2024,894.29,907.57,890.69,898.78,41000000,NVDA"},
		{"bad price", "2024-05-10,894.29,907.57,890.69,abc,41000000,NVDA"},
		{"bad volume, fractional", "2024-05-10,894.29,907.57,890.69,898.78,4.5,NVDA"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodePrices(strings.NewReader(priceHeader + "\n" + tc.line + "\n"))
			assert.Error(t, err)
		})
	}
}

func TestEncodePricesRoundTrip(t *testing.T) {
	table := map[string]*quoteSeries{}
	s := &quoteSeries{}
	s.append(Quote{Day: day("2024-05-10"), Open: 894.29, High: 907.57, Low: 890.69, Close: 898.78, Volume: 41000000})
	s.append(Quote{Day: day("2024-05-13"), Open: 899.47, High: 914.83, Low: 895.85, Close: 903.99, Volume: 41137000})
	table["NVDA"] = s

	var b strings.Builder
	require.NoError(t, encodePrices(&b, table))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, priceHeader, lines[0])
	// newest first
	assert.Equal(t, "2024-05-13,899.47,914.83,895.85,903.99,41137000,NVDA", lines[1])
	assert.Equal(t, "2024-05-10,894.29,907.57,890.69,898.78,41000000,NVDA", lines[2])

	decoded, err := decodePrices(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, table["NVDA"].quotes, decoded["NVDA"].quotes)
}

func TestWriteFileAtomicLeavesOldFileOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.csv")
	require.NoError(t, os.WriteFile(path, []byte("committed\n"), 0o644))

	err := writeFileAtomic(path, func(io.Writer) error {
		return assert.AnError
	})
	require.Error(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "committed\n", string(content))
}
