// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cliapp

import (
	"context"
	"fmt"
	"os"

	"github.com/envvault/envvault/internal/identitystore"
	"github.com/envvault/envvault/internal/primitives"
	"github.com/envvault/envvault/internal/vaulterr"
)

// cmdInit implements `init`: create this host's identity. An optional
// positional argument sets the device label; it defaults to the host
// name.
func (a *App) cmdInit(ctx context.Context, args []string) int {
	label := deviceLabelFromArgs(args)

	root, err := a.identityRoot()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	password, err := a.readPassword("set a vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 2
	}
	confirm, err := a.readPassword("confirm password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 2
	}
	if string(password) != string(confirm) {
		fmt.Fprintln(a.stderr, "error: passwords do not match")
		return 2
	}

	err = identitystore.New(root).Initialize(password, label, a.cfg.Identity.KDFProfile)
	if err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindAlreadyInitialized: 1,
			vaulterr.KindBadCredentials:     2,
		})
	}

	fmt.Fprintf(a.stdout, "identity created at %s\n", root)
	return 0
}

func deviceLabelFromArgs(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "device"
	}
	return host
}

// cmdIdentity implements `identity`: print the public key and fingerprint.
// Unauthenticated; no password is requested.
func (a *App) cmdIdentity(ctx context.Context, args []string) int {
	root, err := a.identityRoot()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	identity := identitystore.New(root)

	pub, err := identity.PublicKey()
	if err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{vaulterr.KindNoIdentity: 1})
	}
	fp, err := identity.Fingerprint()
	if err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{vaulterr.KindNoIdentity: 1})
	}

	fmt.Fprintf(a.stdout, "public-key: %s\n", primitives.EncodePublicKey(pub))
	fmt.Fprintf(a.stdout, "fingerprint: %s\n", fp)
	return 0
}

// cmdReset implements `reset [-f]`: permanently deletes this host's
// identity directory. Without -f, asks for interactive confirmation.
func (a *App) cmdReset(ctx context.Context, args []string) int {
	forced := false
	for _, arg := range args {
		if arg == "-f" || arg == "--force" {
			forced = true
		}
	}

	root, err := a.identityRoot()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	if !forced {
		ok, err := a.confirmFn(fmt.Sprintf("permanently delete identity at %s", root))
		if err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Fprintln(a.stdout, "aborted")
			return 1
		}
	}

	if err := os.RemoveAll(root); err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintln(a.stdout, "identity removed")
	return 0
}
