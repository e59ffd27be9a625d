// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package artifact

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/envvault/envvault/internal/vaulterr"
)

// ListCentral enumerates every central vault name under
// <identityRoot>/repos/ whose secrets.enc is present, ignoring dotfiles,
// stray temp files, and non-directory entries. Names are returned sorted
// for reproducible output.
func ListCentral(identityRoot string) ([]string, error) {
	const op = "artifact.ListCentral"

	reposRoot := filepath.Join(identityRoot, "repos")

	entries, err := os.ReadDir(reposRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || len(entry.Name()) == 0 || entry.Name()[0] == '.' {
			continue
		}

		backend, err := OpenCentral(identityRoot, entry.Name())
		if err != nil {
			continue // not a valid vault name; skip rather than fail the whole listing
		}
		if backend.Exists() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}
