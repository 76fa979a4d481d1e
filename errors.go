package stockfolio

import "errors"

// Error kinds returned by the core. Callers discriminate with errors.Is;
// the concrete message carries the operation-specific detail.
var (
	// ErrInvalidArgument reports a caller mistake: bad date ordering, a
	// non-positive share count, a date in the future, malformed rebalance
	// weights, or selling more than held.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound reports an unknown portfolio, or a load with no
	// persisted entries.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists reports a duplicate portfolio name.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidTicker reports a symbol the provider rejects or has no
	// data for.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrOutOfRange reports a date outside a ticker's known trading
	// history.
	ErrOutOfRange = errors.New("out of range")

	// ErrIO reports an unreadable or unwritable store, or an unreachable
	// provider.
	ErrIO = errors.New("io failure")
)
