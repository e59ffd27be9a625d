// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/envvault/envvault/internal/cliapp"
	"github.com/envvault/envvault/internal/config"
	"github.com/envvault/envvault/internal/logger"
)

func main() {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("cliapp", cfg.Logging.Level)
	app := cliapp.NewApp(cfg, log)

	// GetStructuredConfig's flag pass (internal/config.ParseFlags) already
	// consumed any global flags (-identity-root, -log-level, ...); the
	// command and its own arguments are whatever remains.
	os.Exit(app.Run(context.Background(), flag.Args()))
}
