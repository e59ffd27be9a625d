// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package artifact

import (
	"os"
	"path/filepath"

	"github.com/envvault/envvault/internal/vaulterr"
)

// RemoveCentral deletes a central vault's entire directory,
// <identityRoot>/repos/<name>/, including its payload, recipients
// document, and optional metadata. It is the backing operation for the
// `rm` command; callers are responsible for obtaining user confirmation
// first, since this is irreversible.
func RemoveCentral(identityRoot, name string) error {
	const op = "artifact.RemoveCentral"

	if err := IsValidName(name); err != nil {
		return vaulterr.New(vaulterr.KindInvalidName, op, err)
	}

	root := filepath.Join(identityRoot, "repos", name)
	if err := os.RemoveAll(root); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	return nil
}
