package primitives

import (
	"golang.org/x/crypto/scrypt"

	"github.com/envvault/envvault/internal/vaulterr"
)

// SaltSize is the length in bytes of a KDF salt.
const SaltSize = 16

// derivedKeySize is the length in bytes of a derived key.
const derivedKeySize = 32

// KDFParams holds a named scrypt parameter set.
type KDFParams struct {
	N, R, P int
}

// CurrentKDFParams is the parameter set used to derive keys for every newly
// initialized identity.
var CurrentKDFParams = KDFParams{N: 1 << 17, R: 8, P: 1}

// LegacyKDFParams is a weaker, retired parameter set kept only so that
// [Derive] can still unlock identities created before CurrentKDFParams was
// adopted. Never used to derive keys for new identities.
var LegacyKDFParams = KDFParams{N: 1 << 14, R: 8, P: 1}

// Derive runs scrypt(password, salt, params) and returns a 32-byte key.
// Deterministic: identical (password, salt, params) always yield the same
// key; distinct salts yield distinct keys for the same password.
func Derive(password, salt []byte, params KDFParams) ([]byte, error) {
	key, err := scrypt.Key(password, salt, params.N, params.R, params.P, derivedKeySize)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, "primitives.Derive", err)
	}
	return key, nil
}
