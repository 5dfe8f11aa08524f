package typemap

import "errors"

var (
	// ErrMappingAlreadyRegistered is returned by RegisterGoType under the
	// ErrorIfExists conflict policy.
	ErrMappingAlreadyRegistered = errors.New("type mapping already registered")
)
