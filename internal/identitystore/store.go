// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package identitystore

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/envvault/envvault/internal/atomicfile"
	"github.com/envvault/envvault/internal/primitives"
	"github.com/envvault/envvault/internal/vaulterr"
	"github.com/envvault/envvault/models"
)

//go:generate mockgen -source=store.go -destination=../mock/identitystore_mock.go -package=mock

const (
	dirMode  = 0700
	fileMode = 0600

	identityDirName  = "identity"
	configFileName   = "config.json"
	privateKeyName   = "private.key"
	publicKeyName    = "public.key"
	saltFileName     = "salt"
	minPasswordBytes = 8
)

// Store persists and unlocks a single host user's device identity: a
// long-term Curve25519 keypair, the KDF salt protecting its private half,
// and a read-only device configuration record.
//
// Store borrows the same fingerprint/keypair vocabulary as [primitives] but
// owns none of the cryptography itself — every derive/encrypt/decrypt call
// is delegated there.
type Store interface {
	// Initialize generates a fresh keypair, seals the private half under a
	// key derived from password, and writes all identity files. kdfProfile
	// selects the scrypt parameter set to seal under: "current" (the
	// default, used when kdfProfile is empty) or "legacy". Fails with
	// [vaulterr.KindAlreadyInitialized] if an identity already exists, or
	// [vaulterr.KindBadCredentials] if password is shorter than 8 bytes or
	// kdfProfile is neither of those two values.
	Initialize(password []byte, deviceLabel, kdfProfile string) error

	// Unlock derives a key from password and the stored salt, trying the
	// current KDF parameters first and the legacy set second, and uses it
	// to open the sealed private key. legacyUsed reports whether the
	// legacy parameter set was the one that succeeded, a non-fatal
	// upgrade-recommended signal. Never writes to disk. Fails with
	// [vaulterr.KindBadCredentials] if neither parameter set opens the
	// sealed private key, and with [vaulterr.KindNoIdentity] if no
	// identity exists yet.
	Unlock(password []byte) (privateKey [32]byte, legacyUsed bool, err error)

	// PublicKey reads the identity's public key. Unauthenticated; does not
	// require the password.
	PublicKey() ([32]byte, error)

	// Fingerprint returns the pure function of [Store.PublicKey].
	Fingerprint() (string, error)

	// Config reads the read-only device configuration record.
	Config() (*models.DeviceConfig, error)

	// Root returns the identity root directory this store operates on.
	Root() string
}

// fsStore is the filesystem-backed implementation of [Store], rooted at a
// per-host-user directory (conventionally ~/.env-vault).
type fsStore struct {
	root string
}

// New returns a [Store] rooted at root. root need not exist yet;
// [fsStore.Initialize] creates it.
func New(root string) Store {
	return &fsStore{root: root}
}

func (s *fsStore) Root() string { return s.root }

func (s *fsStore) identityDir() string  { return filepath.Join(s.root, identityDirName) }
func (s *fsStore) configPath() string   { return filepath.Join(s.root, configFileName) }
func (s *fsStore) privatePath() string  { return filepath.Join(s.identityDir(), privateKeyName) }
func (s *fsStore) publicPath() string   { return filepath.Join(s.identityDir(), publicKeyName) }
func (s *fsStore) saltPath() string     { return filepath.Join(s.identityDir(), saltFileName) }

func (s *fsStore) exists() bool {
	_, err := os.Stat(s.configPath())
	return err == nil
}

func (s *fsStore) Initialize(password []byte, deviceLabel, kdfProfile string) error {
	const op = "identitystore.Initialize"

	if s.exists() {
		return vaulterr.New(vaulterr.KindAlreadyInitialized, op, nil)
	}
	if len(password) < minPasswordBytes {
		return vaulterr.New(vaulterr.KindBadCredentials, op, nil)
	}

	if kdfProfile == "" {
		kdfProfile = "current"
	}
	var params primitives.KDFParams
	switch kdfProfile {
	case "current":
		params = primitives.CurrentKDFParams
	case "legacy":
		params = primitives.LegacyKDFParams
	default:
		return vaulterr.New(vaulterr.KindBadCredentials, op, nil)
	}

	pub, priv, err := primitives.GenerateKeypair()
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	salt := make([]byte, primitives.SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	derived, err := primitives.Derive(password, salt, params)
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	sealedPrivate, err := primitives.Encrypt(priv[:], derived)
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	if err := os.MkdirAll(s.identityDir(), dirMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := os.Chmod(s.root, dirMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := os.Chmod(s.identityDir(), dirMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	if err := atomicfile.Write(s.saltPath(), salt, fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := atomicfile.Write(s.publicPath(), pub[:], fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := atomicfile.Write(s.privatePath(), sealedPrivate, fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	cfg := &models.DeviceConfig{
		CreatedAt:   time.Now().UTC(),
		DeviceLabel: deviceLabel,
		Fingerprint: primitives.Fingerprint(pub[:]),
		KDFProfile:  kdfProfile,
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}
	if err := atomicfile.Write(s.configPath(), raw, fileMode); err != nil {
		return vaulterr.New(vaulterr.KindIO, op, err)
	}

	return nil
}

func (s *fsStore) Unlock(password []byte) ([32]byte, bool, error) {
	const op = "identitystore.Unlock"

	var zero [32]byte

	if !s.exists() {
		return zero, false, vaulterr.New(vaulterr.KindNoIdentity, op, nil)
	}

	salt, err := os.ReadFile(s.saltPath())
	if err != nil {
		return zero, false, vaulterr.New(vaulterr.KindIO, op, err)
	}

	sealed, err := os.ReadFile(s.privatePath())
	if err != nil {
		return zero, false, vaulterr.New(vaulterr.KindIO, op, err)
	}

	if priv, err := s.tryUnseal(sealed, password, salt, primitives.CurrentKDFParams); err == nil {
		return priv, false, nil
	}

	if priv, err := s.tryUnseal(sealed, password, salt, primitives.LegacyKDFParams); err == nil {
		return priv, true, nil
	}

	return zero, false, vaulterr.New(vaulterr.KindBadCredentials, op, nil)
}

// tryUnseal derives a key under params and attempts to open sealed with it.
// Both the derive step and the AEAD open are pure; neither touches disk.
func (s *fsStore) tryUnseal(sealed, password, salt []byte, params primitives.KDFParams) ([32]byte, error) {
	var priv [32]byte

	derived, err := primitives.Derive(password, salt, params)
	if err != nil {
		return priv, err
	}

	plain, err := primitives.Decrypt(sealed, derived)
	if err != nil {
		return priv, err
	}
	if len(plain) != primitives.PrivateKeySize {
		return priv, vaulterr.New(vaulterr.KindIntegrity, "identitystore.tryUnseal", nil)
	}

	copy(priv[:], plain)
	return priv, nil
}

func (s *fsStore) PublicKey() ([32]byte, error) {
	const op = "identitystore.PublicKey"

	var pub [32]byte

	if !s.exists() {
		return pub, vaulterr.New(vaulterr.KindNoIdentity, op, nil)
	}

	raw, err := os.ReadFile(s.publicPath())
	if err != nil {
		return pub, vaulterr.New(vaulterr.KindIO, op, err)
	}
	if len(raw) != primitives.PublicKeySize {
		return pub, vaulterr.New(vaulterr.KindIntegrity, op, nil)
	}

	copy(pub[:], raw)
	return pub, nil
}

func (s *fsStore) Fingerprint() (string, error) {
	pub, err := s.PublicKey()
	if err != nil {
		return "", err
	}
	return primitives.Fingerprint(pub[:]), nil
}

func (s *fsStore) Config() (*models.DeviceConfig, error) {
	const op = "identitystore.Config"

	if !s.exists() {
		return nil, vaulterr.New(vaulterr.KindNoIdentity, op, nil)
	}

	raw, err := os.ReadFile(s.configPath())
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	var cfg models.DeviceConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, err)
	}

	return &cfg, nil
}
