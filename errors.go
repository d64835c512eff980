package tradedesk

import "errors"

// Errors reported by the desk. They are wrapped with context, test them with errors.Is.
var (
	ErrInvalidOrder           = errors.New("invalid order")
	ErrInvalidStrategy        = errors.New("invalid strategy")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInsufficientShares     = errors.New("insufficient shares")
	ErrSymbolNotFound         = errors.New("symbol not found in portfolio")
	ErrDataUnavailable        = errors.New("market data unavailable")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
