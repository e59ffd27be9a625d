// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault implements the DEK lifecycle across init-vault, put, get,
// share, revoke, and edit. It is the only package that coordinates
// [identitystore.Store] and [artifact.Backend]: it borrows both to execute
// the protocols in spec.md §4.4 and holds no state of its own across
// calls beyond what is already persisted on disk.
package vault

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"io"
	"sort"
	"time"

	"github.com/envvault/envvault/internal/artifact"
	"github.com/envvault/envvault/internal/identitystore"
	"github.com/envvault/envvault/internal/logger"
	"github.com/envvault/envvault/internal/primitives"
	"github.com/envvault/envvault/internal/vaulterr"
	"github.com/envvault/envvault/models"
)

// Engine coordinates one identity and one backend to execute the vault
// protocols. It never persists state of its own; every fact it needs is
// either passed in by the caller (the password) or already on disk.
type Engine struct {
	identity identitystore.Store
	backend  artifact.Backend
	log      *logger.Logger
}

// NewEngine returns an [Engine] over identity and backend. log may be
// [logger.Nop] in tests.
func NewEngine(identity identitystore.Store, backend artifact.Backend, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{identity: identity, backend: backend, log: log}
}

// unlocked bundles everything InitVault/Put/Get/Share/Revoke need after a
// successful identity unlock: the caller's own keys and fingerprint.
type unlocked struct {
	privateKey  [32]byte
	publicKey   [32]byte
	fingerprint string
	legacyUsed  bool
}

// unlock derives the caller's private key from password and computes the
// matching public key and fingerprint. Every operation that decrypts or
// writes the vault goes through here; Recipients and an already-shared
// Share return without calling it.
func (e *Engine) unlock(password []byte) (unlocked, error) {
	priv, legacyUsed, err := e.identity.Unlock(password)
	if err != nil {
		return unlocked{}, err
	}
	pub, err := e.identity.PublicKey()
	if err != nil {
		return unlocked{}, err
	}
	if legacyUsed {
		e.log.Warn().Msg("identity unlocked with legacy KDF parameters; consider re-initializing under current parameters")
	}
	return unlocked{
		privateKey:  priv,
		publicKey:   pub,
		fingerprint: primitives.Fingerprint(pub[:]),
		legacyUsed:  legacyUsed,
	}, nil
}

// InitVault creates a vault from scratch: a fresh DEK, the caller as its
// sole recipient, dek_version 1. Fails with [vaulterr.KindAlreadyExists]
// if the backend already has a payload and overwrite is false.
func (e *Engine) InitVault(password, plaintext []byte, overwrite bool) error {
	const op = "vault.InitVault"

	if e.backend.Exists() && !overwrite {
		return vaulterr.New(vaulterr.KindAlreadyExists, op, nil)
	}

	u, err := e.unlock(password)
	if err != nil {
		return err
	}

	cfg, err := e.identity.Config()
	if err != nil {
		return err
	}

	dek, err := newDEK()
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	ciphertext, err := primitives.Encrypt(plaintext, dek[:])
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	wrapped, err := wrapDEKFor(dek, u.publicKey)
	if err != nil {
		return err
	}

	doc := models.NewRecipientsDocument()
	doc.Recipients[u.fingerprint] = models.Recipient{
		Label:      cfg.DeviceLabel,
		PublicKey:  primitives.EncodePublicKey(u.publicKey),
		WrappedDEK: wrapped,
		AddedAt:    time.Now().UTC(),
	}

	if err := e.backend.WriteBoth(ciphertext, doc); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	return nil
}

// Put adds or replaces a vault's content. If the vault does not yet
// exist, it behaves like [Engine.InitVault]. Otherwise it rotates the DEK:
// a fresh DEK encrypts the new plaintext, and every existing recipient's
// wrapped DEK is rewritten for it. Fails with [vaulterr.KindNoAccess] if
// the caller is not already a recipient.
func (e *Engine) Put(password, plaintext []byte) error {
	const op = "vault.Put"

	if !e.backend.Exists() {
		return e.InitVault(password, plaintext, false)
	}

	u, err := e.unlock(password)
	if err != nil {
		return err
	}

	doc, err := e.backend.LoadRecipients()
	if err != nil {
		return err
	}

	caller, ok := doc.Recipients[u.fingerprint]
	if !ok {
		return vaulterr.New(vaulterr.KindNoAccess, op, nil)
	}
	// Unwrapping the caller's own record is the access check: only a
	// device holding the matching private key can prove membership.
	if _, err := unwrapDEKFrom(caller, u.privateKey); err != nil {
		return err
	}

	dek, err := newDEK()
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	ciphertext, err := primitives.Encrypt(plaintext, dek[:])
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	if err := rewrapAllFor(doc, dek); err != nil {
		return err
	}
	doc.DEKVersion++

	if err := e.backend.WriteBoth(ciphertext, doc); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	return nil
}

// Get unlocks the identity, locates the caller's recipient record,
// unwraps the DEK, and decrypts the payload. It never writes.
func (e *Engine) Get(password []byte) ([]byte, error) {
	const op = "vault.Get"

	u, err := e.unlock(password)
	if err != nil {
		return nil, err
	}

	doc, err := e.backend.LoadRecipients()
	if err != nil {
		return nil, err
	}

	caller, ok := doc.Recipients[u.fingerprint]
	if !ok {
		return nil, vaulterr.New(vaulterr.KindNoAccess, op, nil)
	}

	dek, err := unwrapDEKFrom(caller, u.privateKey)
	if err != nil {
		return nil, err
	}

	ciphertext, err := e.backend.LoadPayload()
	if err != nil {
		return nil, err
	}

	plaintext, err := primitives.Decrypt(ciphertext, dek[:])
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}

// ShareResult reports the outcome of [Engine.Share].
type ShareResult struct {
	// Fingerprint is the fingerprint of the shared-to public key.
	Fingerprint string
	// Label is the recipient's label: the one just assigned, or the
	// pre-existing one if AlreadyShared is true.
	Label string
	// AlreadyShared reports whether the fingerprint already had an entry;
	// in that case, the call was idempotent and dek_version is unchanged.
	AlreadyShared bool
}

// Share grants a new device access to the vault's current DEK without
// rotating it: sharing extends the readership of the same content.
// Idempotent by fingerprint — sharing an already-present key reports the
// existing label and does not require unlocking the identity.
func (e *Engine) Share(password []byte, recipientPublicKeyB64, label string) (ShareResult, error) {
	const op = "vault.Share"

	recipientPub, err := primitives.DecodePublicKey(recipientPublicKeyB64)
	if err != nil {
		return ShareResult{}, err
	}
	fingerprint := primitives.Fingerprint(recipientPub[:])

	doc, err := e.backend.LoadRecipients()
	if err != nil {
		return ShareResult{}, err
	}

	if existing, ok := doc.Recipients[fingerprint]; ok {
		return ShareResult{Fingerprint: fingerprint, Label: existing.Label, AlreadyShared: true}, nil
	}

	u, err := e.unlock(password)
	if err != nil {
		return ShareResult{}, err
	}

	caller, ok := doc.Recipients[u.fingerprint]
	if !ok {
		return ShareResult{}, vaulterr.New(vaulterr.KindNoAccess, op, nil)
	}

	dek, err := unwrapDEKFrom(caller, u.privateKey)
	if err != nil {
		return ShareResult{}, err
	}

	wrapped, err := wrapDEKFor(dek, recipientPub)
	if err != nil {
		return ShareResult{}, err
	}

	if label == "" {
		label = "device-" + fingerprint[:8]
	}

	doc.Recipients[fingerprint] = models.Recipient{
		Label:      label,
		PublicKey:  primitives.EncodePublicKey(recipientPub),
		WrappedDEK: wrapped,
		AddedAt:    time.Now().UTC(),
	}

	ciphertext, err := e.backend.LoadPayload()
	if err != nil {
		return ShareResult{}, err
	}
	if err := e.backend.WriteBoth(ciphertext, doc); err != nil {
		return ShareResult{}, vaulterr.New(vaulterr.KindIO, op, err)
	}

	return ShareResult{Fingerprint: fingerprint, Label: label}, nil
}

// Revoke removes a recipient and rotates the DEK: the payload is
// re-encrypted under a fresh key and re-wrapped for every remaining
// recipient, so the revoked device's old wrapped DEK can no longer unlock
// current content even if it retained a copy.
func (e *Engine) Revoke(password []byte, fingerprint string) error {
	const op = "vault.Revoke"

	doc, err := e.backend.LoadRecipients()
	if err != nil {
		return err
	}

	if _, ok := doc.Recipients[fingerprint]; !ok {
		return vaulterr.New(vaulterr.KindNotARecipient, op, nil)
	}

	u, err := e.unlock(password)
	if err != nil {
		return err
	}

	if fingerprint == u.fingerprint {
		return vaulterr.New(vaulterr.KindSelfRevoke, op, nil)
	}

	caller, ok := doc.Recipients[u.fingerprint]
	if !ok {
		return vaulterr.New(vaulterr.KindNoAccess, op, nil)
	}

	oldDEK, err := unwrapDEKFrom(caller, u.privateKey)
	if err != nil {
		return err
	}

	oldCiphertext, err := e.backend.LoadPayload()
	if err != nil {
		return err
	}
	plaintext, err := primitives.Decrypt(oldCiphertext, oldDEK[:])
	if err != nil {
		return err
	}

	delete(doc.Recipients, fingerprint)

	newDEK, err := newDEK()
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	newCiphertext, err := primitives.Encrypt(plaintext, newDEK[:])
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	if err := rewrapAllFor(doc, newDEK); err != nil {
		return err
	}
	doc.DEKVersion++

	if err := e.backend.WriteBoth(newCiphertext, doc); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	return nil
}

// Edit composes [Engine.Get] with a caller-supplied mutation and, only on
// a net content change, [Engine.Put]. A byte-equal result is a no-op: no
// writes occur and dek_version is unchanged.
func (e *Engine) Edit(password []byte, apply func([]byte) ([]byte, error)) error {
	current, err := e.Get(password)
	if err != nil {
		return err
	}

	mutated, err := apply(current)
	if err != nil {
		return err
	}

	if bytes.Equal(current, mutated) {
		return nil
	}

	return e.Put(password, mutated)
}

// RecipientView is one recipient's entry in a [RecipientsView].
type RecipientView struct {
	Fingerprint string
	Label       string
	PublicKey   string
	AddedAt     time.Time
	IsCaller    bool
}

// RecipientsView is the read-only projection returned by [Engine.Recipients].
type RecipientsView struct {
	DEKVersion uint64
	Recipients []RecipientView
}

// Recipients is a pure read: it never unlocks the identity (fingerprinting
// a public key requires no private-key operation) and never writes.
func (e *Engine) Recipients() (RecipientsView, error) {
	doc, err := e.backend.LoadRecipients()
	if err != nil {
		return RecipientsView{}, err
	}

	callerFP, err := e.identity.Fingerprint()
	if err != nil {
		return RecipientsView{}, err
	}

	fingerprints := make([]string, 0, len(doc.Recipients))
	for fp := range doc.Recipients {
		fingerprints = append(fingerprints, fp)
	}
	sort.Strings(fingerprints)

	view := RecipientsView{DEKVersion: doc.DEKVersion, Recipients: make([]RecipientView, 0, len(fingerprints))}
	for _, fp := range fingerprints {
		rec := doc.Recipients[fp]
		view.Recipients = append(view.Recipients, RecipientView{
			Fingerprint: fp,
			Label:       rec.Label,
			PublicKey:   rec.PublicKey,
			AddedAt:     rec.AddedAt,
			IsCaller:    fp == callerFP,
		})
	}

	return view, nil
}

// newDEK returns a fresh random 32-byte data encryption key.
func newDEK() ([32]byte, error) {
	var dek [32]byte
	_, err := io.ReadFull(rand.Reader, dek[:])
	return dek, err
}

// wrapDEKFor seals dek for recipientPublic and base64-encodes the result,
// the form stored in a recipient's WrappedDEK field.
func wrapDEKFor(dek [32]byte, recipientPublic [32]byte) (string, error) {
	sealed, err := primitives.Seal(dek[:], recipientPublic)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// unwrapDEKFrom decodes and opens rec.WrappedDEK with privateKey, failing
// with [vaulterr.KindIntegrity] if the decoded DEK is not 32 bytes.
func unwrapDEKFrom(rec models.Recipient, privateKey [32]byte) ([32]byte, error) {
	const op = "vault.unwrapDEKFrom"

	var dek [32]byte

	sealed, err := base64.StdEncoding.DecodeString(rec.WrappedDEK)
	if err != nil {
		return dek, vaulterr.New(vaulterr.KindIntegrity, op, err)
	}

	opened, err := primitives.Open(sealed, privateKey)
	if err != nil {
		return dek, err
	}
	if len(opened) != 32 {
		return dek, vaulterr.New(vaulterr.KindIntegrity, op, nil)
	}

	copy(dek[:], opened)
	return dek, nil
}

// rewrapAllFor re-wraps dek for every recipient already in doc, preserving
// label, public key, and added-at, and overwriting only WrappedDEK.
func rewrapAllFor(doc *models.RecipientsDocument, dek [32]byte) error {
	for fp, rec := range doc.Recipients {
		pub, err := primitives.DecodePublicKey(rec.PublicKey)
		if err != nil {
			return err
		}
		wrapped, err := wrapDEKFor(dek, pub)
		if err != nil {
			return err
		}
		rec.WrappedDEK = wrapped
		doc.Recipients[fp] = rec
	}
	return nil
}
