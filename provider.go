package stockfolio

// Provider is the logical contract of the remote market-data source.
//
// Daily returns the complete daily price history known for a ticker,
// newest first. Implementations report a rejected or unknown symbol by
// wrapping ErrInvalidTicker, and transport failures by wrapping ErrIO.
// Transport details (endpoints, authentication, response shape) belong to
// the implementation, not to the core.
type Provider interface {
	Daily(ticker string) ([]Quote, error)
}
