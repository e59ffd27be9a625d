// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cliapp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/envvault/envvault/internal/artifact"
	"github.com/envvault/envvault/internal/editorbridge"
	"github.com/envvault/envvault/internal/envmerge"
	"github.com/envvault/envvault/internal/vaulterr"
)

// cmdInitRepo implements `init-repo [env-file]`: creates the local
// ./.env-vault backend from the given plaintext file, or an empty
// template if none is given.
func (a *App) cmdInitRepo(ctx context.Context, args []string) int {
	plaintext, err := readPlaintextArg(args, 0)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 2
	}

	engine, err := a.engineFor(".")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	password, err := a.readPassword("vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	if err := engine.InitVault(password, plaintext, false); err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindNoIdentity:    1,
			vaulterr.KindAlreadyExists: 2,
		})
	}

	backend, _ := a.resolveBackend(".")
	a.maybeSyncRemote(ctx, backend)

	fmt.Fprintln(a.stdout, "vault initialized")
	return 0
}

// cmdAdd implements `add <name|.> [file]`: merges plaintext content read
// from file, or stdin if no file is given, into the vault's existing
// content. Keys in the new content overwrite or append; every other
// line of the existing content (comments, blank lines, untouched keys)
// is preserved, via internal/envmerge. If the vault does not exist yet,
// the new content is written as-is.
func (a *App) cmdAdd(ctx context.Context, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(a.stderr, "usage: envvault add <name|.> [file]")
		return 2
	}
	name := args[0]

	patch, err := readPlaintextArg(args, 1)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 2
	}

	engine, err := a.engineFor(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	backend, err := a.resolveBackend(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	password, err := a.readPassword("vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	toWrite := patch
	if backend.Exists() {
		current, err := engine.Get(password)
		if err != nil {
			return a.reportErr(err, map[vaulterr.Kind]int{
				vaulterr.KindNoAccess:       1,
				vaulterr.KindIntegrity:      1,
				vaulterr.KindBadCredentials: 1,
			})
		}
		toWrite = []byte(envmerge.Merge(string(current), string(patch)))
	}

	if err := engine.Put(password, toWrite); err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindNoAccess: 1,
		})
	}

	a.maybeSyncRemote(ctx, backend)

	fmt.Fprintln(a.stdout, "content saved")
	return 0
}

// cmdGet implements `get [name|.] [out-file]`: decrypts and writes
// content to out-file, or stdout if none is given. With -clipboard,
// writes to the system clipboard instead of stdout.
func (a *App) cmdGet(ctx context.Context, args []string) int {
	name, rest := ".", args
	if len(rest) > 0 && rest[0] != "-clipboard" {
		name, rest = rest[0], rest[1:]
	}

	useClipboard := false
	var outFile string
	for _, arg := range rest {
		if arg == "-clipboard" {
			useClipboard = true
			continue
		}
		outFile = arg
	}

	engine, err := a.engineFor(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	password, err := a.readPassword("vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 3
	}

	plaintext, err := engine.Get(password)
	if err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindNoAccess:       1,
			vaulterr.KindIntegrity:      2,
			vaulterr.KindBadCredentials: 3,
		})
	}

	if useClipboard {
		if err := copyToClipboard(string(plaintext)); err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			return 1
		}
		fmt.Fprintln(a.stdout, "copied to clipboard")
		return 0
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, plaintext, 0600); err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	a.stdout.Write(plaintext)
	return 0
}

// cmdEdit implements `edit <name|.>`: decrypts content, hands it to the
// user's $EDITOR via internal/editorbridge, and writes back whatever the
// editor returns. Unlike add, this does not go through internal/envmerge:
// the editor already operates on the full current document, so its
// output is the new document, not a patch to merge onto the old one.
func (a *App) cmdEdit(ctx context.Context, args []string) int {
	name := "."
	if len(args) > 0 {
		name = args[0]
	}

	engine, err := a.engineFor(name)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	password, err := a.readPassword("vault password")
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 3
	}

	err = engine.Edit(password, func(current []byte) ([]byte, error) {
		return editorbridge.Spawn(ctx, current)
	})
	if err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{
			vaulterr.KindNoAccess:       1,
			vaulterr.KindIntegrity:      2,
			vaulterr.KindBadCredentials: 3,
		})
	}

	backend, _ := a.resolveBackend(name)
	a.maybeSyncRemote(ctx, backend)

	fmt.Fprintln(a.stdout, "vault updated")
	return 0
}

// cmdList implements `list`: enumerates central vault names.
func (a *App) cmdList(ctx context.Context, args []string) int {
	root, err := a.identityRoot()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	names, err := artifact.ListCentral(root)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	for _, name := range names {
		fmt.Fprintln(a.stdout, name)
	}
	return 0
}

// cmdRm implements `rm <name>`: permanently deletes a central vault
// directory after interactive confirmation.
func (a *App) cmdRm(ctx context.Context, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(a.stderr, "usage: envvault rm <name>")
		return 2
	}
	name := args[0]

	root, err := a.identityRoot()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	ok, err := a.confirmFn(fmt.Sprintf("permanently delete vault %q", name))
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	if !ok {
		fmt.Fprintln(a.stdout, "aborted")
		return 1
	}

	if err := artifact.RemoveCentral(root, name); err != nil {
		return a.reportErr(err, map[vaulterr.Kind]int{vaulterr.KindInvalidName: 2})
	}

	fmt.Fprintln(a.stdout, "vault removed")
	return 0
}

// readPlaintextArg reads plaintext from args[idx] if present, or from
// stdin otherwise. An empty args slice and a missing idx both mean
// "read from stdin", matching `add`'s and `init-repo`'s optional file
// argument.
func readPlaintextArg(args []string, idx int) ([]byte, error) {
	if idx < len(args) && args[idx] != "" {
		return os.ReadFile(args[idx])
	}
	return io.ReadAll(os.Stdin)
}
