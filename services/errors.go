package services

import "errors"

var (
	ErrUnauthenticated      = errors.New("login required")
	ErrUnauthorized         = errors.New("role not permitted")
	ErrInvalidCredentials   = errors.New("invalid signup details: provide name, email, or phone")
	ErrMissingField         = errors.New("missing required field")
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderAlreadyAccepted = errors.New("order has already been accepted")
	ErrUnsupportedOrderType = errors.New("unsupported order type")
	// ErrStoreFailure wraps every database error.
	ErrStoreFailure = errors.New("operation failed")
)
