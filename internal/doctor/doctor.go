// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package doctor implements the integrity checker (spec.md §4.5): it
// walks the identity root and, optionally, a project's local vault,
// asserting on-disk permission modes, reporting the KDF parameter set in
// effect, and checking for a .gitignore that excludes plaintext .env
// files. In --fix mode it tightens modes in place; it never loosens them.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/envvault/envvault/internal/primitives"
	"github.com/envvault/envvault/models"
)

const (
	maxDirMode  = 0700
	maxFileMode = 0600
)

// Result is the structured outcome of a doctor run.
type Result struct {
	// Issues are permission or missing-artifact problems found.
	Issues []string
	// Warnings are non-fatal advisories, such as a legacy KDF profile.
	Warnings []string
	// FixesApplied lists the fixes made when Fix is requested.
	FixesApplied []string
}

// Clean reports whether the run found no issues (warnings do not count).
func (r *Result) Clean() bool {
	return len(r.Issues) == 0
}

// Config selects what a doctor run inspects.
type Config struct {
	// IdentityRoot is the per-user identity directory (see identitystore).
	IdentityRoot string
	// LocalVaultRoot is the optional .env-vault directory of the current
	// project; empty if there is none.
	LocalVaultRoot string
	// ProjectDir is the directory .gitignore is checked in, normally the
	// parent of LocalVaultRoot.
	ProjectDir string
	// Fix tightens any mode violations found in place.
	Fix bool
}

// Run performs one integrity check pass per Config and returns a [Result].
func Run(cfg Config) (*Result, error) {
	result := &Result{}

	if cfg.IdentityRoot != "" {
		if _, err := os.Stat(cfg.IdentityRoot); err == nil {
			checkIdentityRoot(cfg, result)
		}
	}

	if cfg.LocalVaultRoot != "" {
		if _, err := os.Stat(cfg.LocalVaultRoot); err == nil {
			checkVaultDir(cfg.LocalVaultRoot, cfg.Fix, result)
		}
	}

	if cfg.ProjectDir != "" && cfg.LocalVaultRoot != "" {
		checkGitignore(cfg.ProjectDir, result)
	}

	return result, nil
}

func checkIdentityRoot(cfg Config, result *Result) {
	checkMode(cfg.IdentityRoot, true, cfg.Fix, result)

	identityDir := filepath.Join(cfg.IdentityRoot, "identity")
	if _, err := os.Stat(identityDir); err == nil {
		checkMode(identityDir, true, cfg.Fix, result)
		for _, name := range []string{"private.key", "public.key", "salt"} {
			checkMode(filepath.Join(identityDir, name), false, cfg.Fix, result)
		}
	}

	configPath := filepath.Join(cfg.IdentityRoot, "config.json")
	if _, err := os.Stat(configPath); err == nil {
		checkMode(configPath, false, cfg.Fix, result)
		checkKDFProfile(configPath, result)
	}

	reposRoot := filepath.Join(cfg.IdentityRoot, "repos")
	entries, err := os.ReadDir(reposRoot)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			checkVaultDir(filepath.Join(reposRoot, entry.Name()), cfg.Fix, result)
		}
	}
}

func checkVaultDir(root string, fix bool, result *Result) {
	checkMode(root, true, fix, result)
	for _, name := range []string{"secrets.enc", "recipients.json"} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			checkMode(path, false, fix, result)
		}
	}
}

// checkMode asserts that path's permission bits do not exceed the allowed
// maximum (0700 for directories, 0600 for files). In fix mode it tightens
// an excessive mode down to the maximum, never loosening a stricter one.
func checkMode(path string, isDir, fix bool, result *Result) {
	info, err := os.Stat(path)
	if err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("%s: %v", path, err))
		return
	}

	maxMode := os.FileMode(maxFileMode)
	if isDir {
		maxMode = maxDirMode
	}

	mode := info.Mode().Perm()
	if mode&^maxMode != 0 {
		if fix {
			tightened := mode & maxMode
			if err := os.Chmod(path, tightened); err != nil {
				result.Issues = append(result.Issues, fmt.Sprintf("%s: mode %04o exceeds %04o, fix failed: %v", path, mode, maxMode, err))
				return
			}
			result.FixesApplied = append(result.FixesApplied, fmt.Sprintf("%s: tightened mode %04o -> %04o", path, mode, maxMode))
			return
		}
		result.Issues = append(result.Issues, fmt.Sprintf("%s: mode %04o exceeds %04o", path, mode, maxMode))
	}
}

// checkKDFProfile reads the device config and warns if its KDF profile is
// the legacy, weaker parameter set.
func checkKDFProfile(configPath string, result *Result) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return
	}

	var cfg models.DeviceConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		result.Issues = append(result.Issues, fmt.Sprintf("%s: malformed config: %v", configPath, err))
		return
	}

	switch cfg.KDFProfile {
	case "", "current":
		// current, or pre-tracking (decrypt falls back to trying both).
	case "legacy":
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"identity %q uses legacy KDF parameters (N=%d); re-initialize to upgrade to current (N=%d)",
			configPath, primitives.LegacyKDFParams.N, primitives.CurrentKDFParams.N))
	default:
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: unrecognized kdfProfile %q", configPath, cfg.KDFProfile))
	}
}

// checkGitignore warns if projectDir's .gitignore does not exclude
// plaintext .env files, which would otherwise risk committing secrets
// alongside the encrypted artifacts.
func checkGitignore(projectDir string, result *Result) {
	raw, err := os.ReadFile(filepath.Join(projectDir, ".gitignore"))
	if err != nil {
		result.Warnings = append(result.Warnings, "no .gitignore found in project directory; plaintext .env files are not excluded from version control")
		return
	}

	excluded := false
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == ".env" || line == "*.env" || line == ".env.*" || line == "*.env.*" {
			excluded = true
			break
		}
	}
	if !excluded {
		result.Warnings = append(result.Warnings, ".gitignore does not appear to exclude .env/.env.* files")
	}
}
