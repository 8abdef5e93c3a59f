package integrate

import "errors"

var (
	// ErrUnknownMethod is returned for a method name outside Methods.
	ErrUnknownMethod = errors.New("unknown integration method")

	// ErrUnknownIntegrand is returned by Lookup for names not in the catalog.
	ErrUnknownIntegrand = errors.New("unknown integrand")
)
