// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cliapp is the command-line front end named in spec.md §6: it
// parses the command surface (init, identity, init-repo, add, get, share,
// revoke, recipients, list, rm, edit, doctor, reset), wires an
// identitystore.Store and an artifact.Backend into a vault.Engine per
// invocation, and maps vaulterr.Kind to the exit codes spec.md §6 assigns
// each command. Nothing here holds state the vault engine depends on.
package cliapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/envvault/envvault/internal/artifact"
	"github.com/envvault/envvault/internal/config"
	"github.com/envvault/envvault/internal/identitystore"
	"github.com/envvault/envvault/internal/logger"
	"github.com/envvault/envvault/internal/promptui"
	"github.com/envvault/envvault/internal/remotesync"
	"github.com/envvault/envvault/internal/vault"
	"github.com/envvault/envvault/internal/vaulterr"
)

const defaultIdentityDirName = ".env-vault"

// App is the concrete CLI runtime: one dispatch table over the command
// surface, a config, and a logger. It constructs its identitystore,
// artifact backend, and vault.Engine fresh on every Run call, since a
// process only ever executes one command before exiting.
type App struct {
	cfg *config.StructuredConfig
	log *logger.Logger

	stdout io.Writer
	stderr io.Writer

	// readPasswordFn and confirmFn default to internal/promptui's
	// interactive Bubble Tea prompts; tests substitute deterministic
	// stand-ins, since neither prompt can run without a terminal.
	readPasswordFn func(prompt string) (string, error)
	confirmFn      func(prompt string) (bool, error)
}

// NewApp constructs an [App] from cfg and log. log may be [logger.Nop] in
// tests.
func NewApp(cfg *config.StructuredConfig, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		cfg:            cfg,
		log:            log,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		readPasswordFn: promptui.ReadPassword,
		confirmFn:      promptui.Confirm,
	}
}

// identityRoot resolves the configured identity root, defaulting to
// ~/.env-vault when unset.
func (a *App) identityRoot() (string, error) {
	if a.cfg.Identity.Root != "" {
		return a.cfg.Identity.Root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultIdentityDirName), nil
}

// resolveBackend opens the central backend for name, or the local
// ./.env-vault backend when name is ".".
func (a *App) resolveBackend(name string) (artifact.Backend, error) {
	if name == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		return artifact.OpenLocal(cwd), nil
	}

	root, err := a.identityRoot()
	if err != nil {
		return nil, err
	}
	return artifact.OpenCentral(root, name)
}

// engineFor constructs a [vault.Engine] over the identity store and the
// backend selected by name.
func (a *App) engineFor(name string) (*vault.Engine, error) {
	root, err := a.identityRoot()
	if err != nil {
		return nil, err
	}
	backend, err := a.resolveBackend(name)
	if err != nil {
		return nil, err
	}
	identity := identitystore.New(root)
	return vault.NewEngine(identity, backend, a.log), nil
}

// readPassword prompts for a password via a.readPasswordFn.
func (a *App) readPassword(prompt string) ([]byte, error) {
	pw, err := a.readPasswordFn(prompt)
	if err != nil {
		return nil, err
	}
	return []byte(pw), nil
}

// maybeSyncRemote pushes a vault's two artifact files to the configured
// remote endpoint after a successful local mutation. Failure is logged,
// never fatal: the git workflow remains the primary distribution channel
// (spec.md §1).
func (a *App) maybeSyncRemote(ctx context.Context, backend artifact.Backend) {
	if a.cfg.Remote.Endpoint == "" {
		return
	}

	root, err := a.identityRoot()
	if err != nil {
		a.log.Warn().Err(err).Msg("remote sync: resolve identity root failed")
		return
	}
	fingerprint, err := identitystore.New(root).Fingerprint()
	if err != nil {
		a.log.Warn().Err(err).Msg("remote sync: resolve fingerprint failed")
		return
	}

	payload, err := backend.LoadPayload()
	if err != nil {
		a.log.Warn().Err(err).Msg("remote sync: reload payload failed")
		return
	}
	doc, err := backend.LoadRecipients()
	if err != nil {
		a.log.Warn().Err(err).Msg("remote sync: reload recipients failed")
		return
	}
	recipientsJSON, err := json.Marshal(doc)
	if err != nil {
		a.log.Warn().Err(err).Msg("remote sync: marshal recipients failed")
		return
	}

	client := remotesync.New(remotesync.Config{
		Endpoint: a.cfg.Remote.Endpoint,
		Token:    a.cfg.Remote.Token,
		Timeout:  a.cfg.Remote.Timeout,
	})

	if err := client.Push(ctx, fingerprint, backend.Name(), payload, recipientsJSON); err != nil {
		a.log.Warn().Err(err).Msg("remote sync: push failed")
	}
}

// Run dispatches args[0] to a command and returns the process exit code.
// args is the program's arguments with the binary name already stripped.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "usage: envvault <init|identity|init-repo|add|get|share|revoke|recipients|list|rm|edit|doctor|reset> [args...]")
		return 2
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "init":
		return a.cmdInit(ctx, rest)
	case "identity":
		return a.cmdIdentity(ctx, rest)
	case "init-repo":
		return a.cmdInitRepo(ctx, rest)
	case "add":
		return a.cmdAdd(ctx, rest)
	case "get":
		return a.cmdGet(ctx, rest)
	case "share":
		return a.cmdShare(ctx, rest)
	case "revoke":
		return a.cmdRevoke(ctx, rest)
	case "recipients":
		return a.cmdRecipients(ctx, rest)
	case "list":
		return a.cmdList(ctx, rest)
	case "rm":
		return a.cmdRm(ctx, rest)
	case "edit":
		return a.cmdEdit(ctx, rest)
	case "doctor":
		return a.cmdDoctor(ctx, rest)
	case "reset":
		return a.cmdReset(ctx, rest)
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n", cmd)
		return 2
	}
}

// exitForKind maps a vaulterr.Kind to an exit code using the per-command
// table in spec.md §6; codes not present in a command's table fall back
// to a generic nonzero failure.
func exitForKind(kind vaulterr.Kind, table map[vaulterr.Kind]int) int {
	if code, ok := table[kind]; ok {
		return code
	}
	return 1
}

// reportErr prints a kind-appropriate, non-secret message for err and
// returns the matching exit code from table (or 1 if err carries no
// known kind, or is a plain Go error such as an I/O failure outside the
// core).
func (a *App) reportErr(err error, table map[vaulterr.Kind]int) int {
	kind, ok := vaulterr.KindOf(err)
	if !ok {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(a.stderr, "error: %s\n", kind)
	return exitForKind(kind, table)
}
