// Package alphavantage fetches daily price history from the Alpha Vantage
// TIME_SERIES_DAILY endpoint and exposes it as a stockfolio.Provider.
//
// Responses are cached on disk with a key that expires every day, so
// repeated lookups for the same symbol hit the network at most once per
// calendar day.
package alphavantage

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"stockfolio"
	"stockfolio/date"
)

// DefaultBaseURL is the production Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// EnvAPIKey is the environment variable holding the API key.
const EnvAPIKey = "ALPHAVANTAGE_API_KEY"

// Client queries Alpha Vantage. The zero logger is silent.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Log     zerolog.Logger
}

// NewClient returns a client with the default endpoint and a daily-expiring
// disk cache on its transport.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  apiKey,
		HTTP:    dailyClient(zerolog.Nop()),
		Log:     zerolog.Nop(),
	}
}

// Daily returns the full daily history for ticker, newest first.
//
// An unknown symbol yields stockfolio.ErrInvalidTicker; transport and
// decoding failures yield stockfolio.ErrIO.
func (c *Client) Daily(ticker string) ([]stockfolio.Quote, error) {
	addr := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&outputsize=full&datatype=csv&symbol=%s&apikey=%s",
		c.BaseURL, url.QueryEscape(ticker), url.QueryEscape(c.APIKey))

	resp, err := c.HTTP.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage GET for %s: %v", stockfolio.ErrIO, ticker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: alphavantage GET for %s: %s", stockfolio.ErrIO, ticker, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage read for %s: %v", stockfolio.ErrIO, ticker, err)
	}

	// Errors come back as a JSON object even when csv was requested.
	if strings.Contains(string(body), "Error Message") {
		return nil, fmt.Errorf("%w: %s is not known to alphavantage", stockfolio.ErrInvalidTicker, ticker)
	}

	quotes, err := parseDailyCSV(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage payload for %s: %v", stockfolio.ErrIO, ticker, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: %s has no price history", stockfolio.ErrInvalidTicker, ticker)
	}
	c.Log.Info().Str("ticker", ticker).Int("days", len(quotes)).Msg("fetched daily history")
	return quotes, nil
}

// parseDailyCSV decodes the "timestamp,open,high,low,close,volume" payload.
// Rows arrive newest first and are kept in that order.
func parseDailyCSV(body string) ([]stockfolio.Quote, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "timestamp,") {
		return nil, fmt.Errorf("unexpected payload %.40q", body)
	}
	quotes := make([]stockfolio.Quote, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		q, err := parseDailyRow(line)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func parseDailyRow(line string) (stockfolio.Quote, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return stockfolio.Quote{}, fmt.Errorf("row %q has %d fields, want 6", line, len(fields))
	}
	day, err := date.Parse(fields[0])
	if err != nil {
		return stockfolio.Quote{}, err
	}
	var prices [4]float64
	for i, field := range fields[1:5] {
		prices[i], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return stockfolio.Quote{}, fmt.Errorf("row %q: %v", line, err)
		}
	}
	volume, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return stockfolio.Quote{}, fmt.Errorf("row %q: %v", line, err)
	}
	return stockfolio.Quote{
		Day:    day,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: volume,
	}, nil
}
