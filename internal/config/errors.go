package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration is incomplete or invalid.
var (
	// ErrInvalidKDFProfile indicates an unrecognized Identity.KDFProfile
	// value (must be "", "current", or "legacy").
	ErrInvalidKDFProfile = errors.New("invalid kdf profile, must be \"current\" or \"legacy\"")
	// ErrInvalidRemoteConfig indicates a remote endpoint was configured
	// without an accompanying bearer token.
	ErrInvalidRemoteConfig = errors.New("remote endpoint configured without a remote token")
)
