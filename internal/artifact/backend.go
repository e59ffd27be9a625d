// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package artifact abstracts the two physical layouts a vault can live in
// — the central per-name layout under the identity root
// (<identity-root>/repos/<name>/) and the per-project local layout
// (./.env-vault/) — behind a single [Backend] interface. It owns layout
// and I/O only; it never inspects the ciphertext or the recipients
// document it reads and writes.
//
// Every write goes through [Backend.WriteBoth] or [Backend.SaveMeta], so a
// reader never observes a partially written file: WriteBoth stages new
// file contents under a .staging/ directory and renames them into place
// one at a time (payload before recipients); SaveMeta writes its single
// file with an atomic temp-file-then-rename.
package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/envvault/envvault/internal/atomicfile"
	"github.com/envvault/envvault/internal/utils"
	"github.com/envvault/envvault/internal/vaulterr"
	"github.com/envvault/envvault/models"
)

const (
	dirMode  = 0700
	fileMode = 0600

	payloadFileName    = "secrets.enc"
	recipientsFileName = "recipients.json"
	metaFileName       = "meta.json"
	stagingDirName     = ".staging"
)

//go:generate mockgen -source=backend.go -destination=../mock/artifact_backend_mock.go -package=mock

// Backend is one vault's on-disk location, abstracting over the central
// and local layouts described in spec.md §4.3.
type Backend interface {
	// Name is the display name of the vault: the central name for a
	// central backend, the working directory's basename for a local one.
	Name() string

	// Exists reports whether this backend's secrets.enc is present. A
	// missing or zero-byte payload is treated as absent, never corrupt.
	Exists() bool

	// LoadPayload reads the raw encrypted payload bytes.
	LoadPayload() ([]byte, error)

	// LoadRecipients reads and decodes the recipients document.
	LoadRecipients() (*models.RecipientsDocument, error)

	// LoadMeta reads and decodes the optional metadata file. Returns an
	// empty, non-nil map if meta.json does not exist.
	LoadMeta() (models.VaultMetadata, error)

	// SaveMeta atomically rewrites the optional metadata file. Never
	// called by the vault engine itself.
	SaveMeta(meta models.VaultMetadata) error

	// WriteBoth atomically rewrites the payload and recipients document
	// together: both are first staged under .staging/, then renamed into
	// place in sequence, payload first. A crash between the two renames
	// leaves the old recipients document pointing at a DEK that no longer
	// decrypts the new payload — a self-detecting inconsistency via
	// [vaulterr.KindIntegrity] on the next read, per spec.md §9.
	WriteBoth(payload []byte, doc *models.RecipientsDocument) error

	// Root returns the backend's root directory on disk.
	Root() string
}

type fsBackend struct {
	name string
	root string
}

// OpenCentral returns a [Backend] for the central layout
// <identityRoot>/repos/<name>/. Fails with [vaulterr.KindInvalidName] if
// name does not satisfy [IsValidName].
func OpenCentral(identityRoot, name string) (Backend, error) {
	const op = "artifact.OpenCentral"

	if err := IsValidName(name); err != nil {
		return nil, vaulterr.New(vaulterr.KindInvalidName, op, err)
	}

	return &fsBackend{
		name: name,
		root: filepath.Join(identityRoot, "repos", name),
	}, nil
}

// OpenLocal returns a [Backend] for the per-project layout
// <workDir>/.env-vault/. The display name is the basename of workDir.
func OpenLocal(workDir string) Backend {
	return &fsBackend{
		name: filepath.Base(workDir),
		root: filepath.Join(workDir, ".env-vault"),
	}
}

func (b *fsBackend) Name() string { return b.name }
func (b *fsBackend) Root() string { return b.root }

func (b *fsBackend) payloadPath() string    { return filepath.Join(b.root, payloadFileName) }
func (b *fsBackend) recipientsPath() string { return filepath.Join(b.root, recipientsFileName) }
func (b *fsBackend) metaPath() string       { return filepath.Join(b.root, metaFileName) }

func (b *fsBackend) Exists() bool {
	info, err := os.Stat(b.payloadPath())
	return err == nil && info.Size() > 0
}

func (b *fsBackend) LoadPayload() ([]byte, error) {
	const op = "artifact.LoadPayload"

	raw, err := os.ReadFile(b.payloadPath())
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}
	return raw, nil
}

func (b *fsBackend) LoadRecipients() (*models.RecipientsDocument, error) {
	const op = "artifact.LoadRecipients"

	raw, err := os.ReadFile(b.recipientsPath())
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	var doc models.RecipientsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, err)
	}
	if doc.Recipients == nil {
		doc.Recipients = make(map[string]models.Recipient)
	}

	return &doc, nil
}

func (b *fsBackend) LoadMeta() (models.VaultMetadata, error) {
	const op = "artifact.LoadMeta"

	raw, err := os.ReadFile(b.metaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return models.VaultMetadata{}, nil
		}
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	var meta models.VaultMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, err)
	}
	if meta == nil {
		meta = models.VaultMetadata{}
	}

	return meta, nil
}

func (b *fsBackend) SaveMeta(meta models.VaultMetadata) error {
	const op = "artifact.SaveMeta"

	if err := b.ensureRoot(); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	if err := atomicfile.Write(b.metaPath(), raw, fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	return nil
}

func (b *fsBackend) WriteBoth(payload []byte, doc *models.RecipientsDocument) error {
	const op = "artifact.WriteBoth"

	if err := b.ensureRoot(); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	stagingDir := filepath.Join(b.root, stagingDirName)
	if err := os.MkdirAll(stagingDir, dirMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	defer os.Remove(stagingDir) // best-effort; only succeeds once empty

	recipientsRaw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	suffix := utils.TempFileSuffix()
	stagedPayload := filepath.Join(stagingDir, payloadFileName+"."+suffix)
	stagedRecipients := filepath.Join(stagingDir, recipientsFileName+"."+suffix)

	if err := atomicfile.Write(stagedPayload, payload, fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	defer os.Remove(stagedPayload)

	if err := atomicfile.Write(stagedRecipients, recipientsRaw, fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	defer os.Remove(stagedRecipients)

	// Payload before recipients: a crash here leaves a payload that the
	// old recipients document cannot decrypt, which is self-detecting via
	// KindIntegrity on the next read (spec.md §9).
	if err := os.Rename(stagedPayload, b.payloadPath()); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := os.Chmod(b.payloadPath(), fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	if err := os.Rename(stagedRecipients, b.recipientsPath()); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := os.Chmod(b.recipientsPath(), fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	return nil
}

func (b *fsBackend) ensureRoot() error {
	if err := os.MkdirAll(b.root, dirMode); err != nil {
		return err
	}
	return os.Chmod(b.root, dirMode)
}
