// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Identity.KDFProfile {
	case "", "current", "legacy":
	default:
		return ErrInvalidKDFProfile
	}

	if cfg.Remote.Endpoint != "" && cfg.Remote.Token == "" {
		return ErrInvalidRemoteConfig
	}

	return nil
}
