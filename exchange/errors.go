package exchange

import "errors"

var (
	// ErrValidation reports rejected input: missing registration fields, a
	// duplicate email, or a malformed listing.
	ErrValidation = errors.New("validation error")
	// ErrAuth reports that no user matched the supplied credentials.
	ErrAuth = errors.New("invalid email or password")
)
