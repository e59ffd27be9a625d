package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-identity-root   override the identity store root (default ~/.env-vault)
//	-log-level       zerolog level name (debug, info, warn, error)
//	-kdf-profile     scrypt parameter set used by initialize: current or legacy
//	-c/-config       JSON config file path
//	-remote-endpoint remote sync endpoint URL
//	-remote-timeout  remote sync request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var identityRoot string
	var logLevel string
	var kdfProfile string
	var jsonConfigPath string
	var remoteEndpoint string
	var remoteTimeout time.Duration

	flag.StringVar(&identityRoot, "identity-root", "", "Identity store root directory")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&kdfProfile, "kdf-profile", "", "KDF parameter set for new identities (current, legacy)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&remoteEndpoint, "remote-endpoint", "", "Remote sync endpoint URL")
	flag.DurationVar(&remoteTimeout, "remote-timeout", 0, "Remote sync request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Identity: Identity{
			Root:       identityRoot,
			KDFProfile: kdfProfile,
		},
		Logging: Logging{
			Level: logLevel,
		},
		Remote: Remote{
			Endpoint: remoteEndpoint,
			Timeout:  remoteTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
