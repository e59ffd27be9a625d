package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/envvault/envvault/internal/vaulterr"
)

// gcmNonceSize is the standard GCM IV length in bytes.
const gcmNonceSize = 12

// gcmTagSize is the GCM authentication tag length in bytes.
const gcmTagSize = 16

// minCiphertextLen is the shortest byte sequence [Decrypt] will attempt to
// open: a nonce plus a tag with zero bytes of actual ciphertext in between.
const minCiphertextLen = gcmNonceSize + gcmTagSize

// Encrypt performs AES-256-GCM authenticated encryption of plaintext under
// key (which must be 32 bytes). The output layout is
// IV (12 bytes) ‖ ciphertext ‖ auth-tag (16 bytes); the IV is generated fresh
// from the OS CSPRNG on every call, so two encryptions of identical
// plaintext under the same key produce distinct outputs.
//
// Returns an error only on OS randomness failure or an invalid key length.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	const op = "primitives.Encrypt"

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses [Encrypt]: it splits the IV from blob, decrypts the
// remainder under key, and verifies the authentication tag.
//
// Fails with [vaulterr.KindIntegrity] when blob is shorter than 28 bytes or
// when the auth tag does not verify — the same kind is used for both so
// that no error message distinguishes "wrong key" from "tampered
// ciphertext".
func Decrypt(blob, key []byte) ([]byte, error) {
	const op = "primitives.Decrypt"

	if len(blob) < minCiphertextLen {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, fmt.Errorf("ciphertext too short: %d bytes", len(blob)))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, err)
	}

	return plaintext, nil
}
