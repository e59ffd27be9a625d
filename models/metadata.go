// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VaultMetadata holds free-form, non-secret annotations about a vault
// (e.g. a project description). It is loaded and saved by the artifact
// store alongside the payload and recipients document, but it is never
// read or written by the vault engine itself.
type VaultMetadata map[string]string
