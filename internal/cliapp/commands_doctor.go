// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cliapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/envvault/envvault/internal/doctor"
)

// cmdDoctor implements `doctor [--fix]`: audits the identity root and,
// if the current directory has a local vault, the project's .env-vault
// too. Exit codes per spec.md's doctor table: 0 clean (or fully fixed),
// 1 issues remain.
func (a *App) cmdDoctor(ctx context.Context, args []string) int {
	fix := false
	for _, arg := range args {
		if arg == "--fix" || arg == "-fix" {
			fix = true
		}
	}

	root, err := a.identityRoot()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}
	localRoot := filepath.Join(cwd, ".env-vault")
	if _, err := os.Stat(localRoot); err != nil {
		localRoot = ""
	}

	result, err := doctor.Run(doctor.Config{
		IdentityRoot:   root,
		LocalVaultRoot: localRoot,
		ProjectDir:     cwd,
		Fix:            fix,
	})
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return 1
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(a.stdout, "warning: %s\n", w)
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(a.stdout, "issue: %s\n", issue)
	}
	for _, f := range result.FixesApplied {
		fmt.Fprintf(a.stdout, "fixed: %s\n", f)
	}

	if result.Clean() {
		fmt.Fprintln(a.stdout, "ok")
		return 0
	}
	return 1
}
