// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// StructuredConfig is the top-level configuration container for the
// envvault CLI. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Identity holds the location and KDF behavior of the on-disk identity
	// store.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Logging controls the verbosity of the structured logger.
	Logging Logging `envPrefix:"LOG_"`

	// Remote holds the optional best-effort remote-sync endpoint. Empty by
	// default; when unset, no network calls are ever made.
	Remote Remote `envPrefix:"REMOTE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Identity groups the settings that control where identity material and
// central-backend vaults live, and which KDF parameter set new identities
// are derived with.
type Identity struct {
	// Root overrides the default identity root (~/.env-vault). Mainly used
	// by tests and by operators running multiple identities side by side.
	// Env: IDENTITY_ROOT
	Root string `env:"ROOT"`

	// KDFProfile selects the scrypt parameter set used by initialize:
	// "current" (default) or "legacy". Unlock always tries current first
	// regardless of this setting; this only controls what new identities
	// are created with, and exists so tests can exercise the legacy-param
	// code path without waiting on the current profile's cost.
	// Env: IDENTITY_KDF_PROFILE
	KDFProfile string `env:"KDF_PROFILE"`
}

// Logging groups settings for the structured logger.
type Logging struct {
	// Level is the zerolog level name (debug, info, warn, error). Defaults
	// to "info" when empty.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Remote groups the settings for the optional cloud/back-end sync adapter.
// Nothing in the vault engine depends on these; they are read only by
// internal/remotesync and internal/cliapp.
type Remote struct {
	// Endpoint is the base URL of the remote vault store. Empty disables
	// remote sync entirely.
	// Env: REMOTE_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Token is the shared secret used to mint the bearer token sent with
	// every remote-sync request. Never the vault password.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// Timeout bounds every remote-sync HTTP call.
	// Env: REMOTE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
