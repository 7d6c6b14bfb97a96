package errors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrOrderNotPending       = errors.New("order is not pending")
	ErrAmountBelowMinimum    = errors.New("amount below minimum")
	ErrAmountAboveMaximum    = errors.New("amount above maximum")
	ErrMalformedNotification = errors.New("malformed notification")
	ErrGatewayLookup         = errors.New("gateway lookup failed")
)
