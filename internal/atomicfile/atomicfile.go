// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package atomicfile implements the write-temp-then-rename protocol that
// every on-disk artifact in this vault relies on: identity files,
// encrypted payloads, and recipients documents are all written this way
// so that a reader never observes a partially written file.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/envvault/envvault/internal/utils"
)

// Write creates a sibling temp file with a random suffix, writes data to
// it with the given permission bits, fsyncs it, renames it into place,
// then reasserts the permission bits (rename can be affected by umask on
// some platforms). On any failure the temp file is removed.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+utils.TempFileSuffix()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("atomicfile: create temp file: %w", err)
	}

	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("atomicfile: write temp file: %w", err)
	}

	if err = f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("atomicfile: sync temp file: %w", err)
	}

	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("atomicfile: close temp file: %w", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("atomicfile: rename into place: %w", err)
	}

	if err = os.Chmod(path, perm); err != nil {
		return fmt.Errorf("atomicfile: reassert mode: %w", err)
	}

	return nil
}
