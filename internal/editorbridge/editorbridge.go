// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package editorbridge spawns the user's $VISUAL or $EDITOR over a
// plaintext buffer for the edit command, the "editor spawning" external
// collaborator named in spec.md §1. It holds no invariants the vault
// engine depends on: it is handed a plaintext slice and hands back a
// (possibly mutated) one.
package editorbridge

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/envvault/envvault/internal/vaulterr"
)

// forbiddenChars are shell metacharacters spec.md §6 requires $EDITOR and
// $VISUAL to be rejected for, since their value is passed to exec without
// going through a shell.
const forbiddenChars = ";&|`$"

// defaultEditor is used when neither $VISUAL nor $EDITOR is set.
const defaultEditor = "vi"

// Spawn writes plaintext to a 0600 temp file, resolves an editor command
// from $VISUAL then $EDITOR (falling back to defaultEditor), runs it
// against the temp file, and reads the (possibly edited) file back.
//
// Fails with [vaulterr.KindIO] if the resolved editor value contains any
// of [forbiddenChars], or if any filesystem or subprocess step fails.
func Spawn(ctx context.Context, plaintext []byte) ([]byte, error) {
	const op = "editorbridge.Spawn"

	editor, err := resolveEditor()
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	tmp, err := os.CreateTemp("", "envvault-edit-*.env")
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(plaintext); err != nil {
		tmp.Close()
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, fmt.Errorf("editor %q: %w", editor, err))
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	return edited, nil
}

// resolveEditor picks $VISUAL, then $EDITOR, then defaultEditor, and
// rejects any value containing a shell metacharacter.
func resolveEditor() (string, error) {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = defaultEditor
	}

	if strings.ContainsAny(editor, forbiddenChars) {
		return "", fmt.Errorf("editor command %q contains a forbidden shell metacharacter", editor)
	}

	return editor, nil
}
