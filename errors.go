package schemakit

import "errors"

// Common errors used throughout the schemakit package
var (
	// ErrVersionNotFound is returned when an engine version banner contains no
	// recognizable dotted numeric version. Capability gating elsewhere depends
	// on a parsed version, so this surfaces loudly instead of defaulting.
	ErrVersionNotFound = errors.New("no version number found in input")

	// ErrUnsupportedProvider indicates no registered methods factory matched
	// the live connection's driver.
	ErrUnsupportedProvider = errors.New("unsupported database provider")
)
