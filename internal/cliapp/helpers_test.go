// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cliapp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

func readFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	return string(raw), err
}

func writeTempPlaintext(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plaintext.env")
	if err := writeFile(path, content); err != nil {
		t.Fatalf("write temp plaintext: %v", err)
	}
	return path
}

// parseIdentityOutput extracts the public key and fingerprint from
// `identity`'s stdout output.
func parseIdentityOutput(t *testing.T, output string) (publicKeyB64, fingerprint string) {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "public-key: "):
			publicKeyB64 = strings.TrimPrefix(line, "public-key: ")
		case strings.HasPrefix(line, "fingerprint: "):
			fingerprint = strings.TrimPrefix(line, "fingerprint: ")
		}
	}
	if publicKeyB64 == "" || fingerprint == "" {
		t.Fatalf("could not parse identity output: %q", output)
	}
	return publicKeyB64, fingerprint
}
