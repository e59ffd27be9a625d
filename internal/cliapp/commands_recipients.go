// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cliapp

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/envvault/envvault/internal/primitives"
	"github.com/envvault/envvault/internal/promptui"
	"github.com/envvault/envvault/internal/vaulterr"
)

// cmdShare implements `share <name|.> <public-key-base64> [label]`.
func (a *App) cmdShare(ctx context.Context, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(a.stderr, "usage: envvault share <name|.> <public-key-base64> [label]")
		return 2
	}
	name, pubKeyB64 := args[0], args[1]
	label := ""
	if len(args) > 2 {
		label = args[2]
	}

	engine, err := a.engineFor(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 2
	}

	// An already-present key is reported without a password prompt.
	if pub, err := primitives.DecodePublicKey(pubKeyB64); err == nil {
		fp := primitives.Fingerprint(pub[:])
		if view, err := engine.Recipients(); err == nil {
			for _, r := range view.Recipients {
				if r.Fingerprint == fp {
					fmt.Fprintf(a.stdout, "%s already has access as %q\n", r.Fingerprint, r.Label)
					return 0
				}
			}
		}
	}

	password, err := a.readPassword("vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 2
	}

	result, err := engine.Share(password, pubKeyB64, label)
	if err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindInvalidPublicKey: 1,
			vaulterr.KindNoAccess:         2,
		})
	}

	if result.AlreadyShared {
		fmt.Fprintf(a.stdout, "%s already has access as %q\n", result.Fingerprint, result.Label)
		return 0
	}

	backend, _ := a.resolveBackend(name)
	a.maybeSyncRemote(ctx, backend)

	fmt.Fprintf(a.stdout, "shared with %s as %q\n", result.Fingerprint, result.Label)
	return 0
}

// cmdRevoke implements `revoke <name|.> <fingerprint>`.
func (a *App) cmdRevoke(ctx context.Context, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(a.stderr, "usage: envvault revoke <name|.> <fingerprint>")
		return 2
	}
	name, fingerprint := args[0], args[1]

	engine, err := a.engineFor(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	password, err := a.readPassword("vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	if err := engine.Revoke(password, fingerprint); err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindNotARecipient: 1,
			vaulterr.KindSelfRevoke:    2,
		})
	}

	backend, _ := a.resolveBackend(name)
	a.maybeSyncRemote(ctx, backend)

	fmt.Fprintf(a.stdout, "revoked %s\n", fingerprint)
	return 0
}

// cmdRecipients implements `recipients [name|.]`: a pure read, requiring
// no password. Renders an interactive scrollable list when stdout is a
// terminal, plain text otherwise.
func (a *App) cmdRecipients(ctx context.Context, args []string) int {
	name := "."
	if len(args) > 0 {
		name = args[0]
	}

	engine, err := a.engineFor(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	view, err := engine.Recipients()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	if f, ok := a.stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		if err := promptui.ShowRecipients(view); err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(a.stdout, "dek_version: %d\n", view.DEKVersion)
	for _, r := range view.Recipients {
		caller := ""
		if r.IsCaller {
			caller = " (you)"
		}
		fmt.Fprintf(a.stdout, "%s  %s%s\n", r.Fingerprint, r.Label, caller)
	}
	return 0
}
