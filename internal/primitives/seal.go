package primitives

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/box"

	"github.com/envvault/envvault/internal/vaulterr"
)

// PublicKeySize is the length in bytes of a Curve25519 public key.
const PublicKeySize = 32

// PrivateKeySize is the length in bytes of a Curve25519 private scalar.
const PrivateKeySize = 32

// sealNonceSize is the XSalsa20-Poly1305 nonce length in bytes.
const sealNonceSize = 24

// sealOverhead is nacl/box's per-message authentication overhead in bytes.
const sealOverhead = box.Overhead

// minSealedLen is the shortest byte sequence [Open] will attempt to open:
// an ephemeral public key and a nonce with zero bytes of ciphertext.
const minSealedLen = PublicKeySize + sealNonceSize + sealOverhead

// GenerateKeypair returns a fresh Curve25519 keypair suitable for use as a
// device identity or as an ephemeral key inside [Seal].
func GenerateKeypair() (publicKey, privateKey [32]byte, err error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return publicKey, privateKey, vaulterr.New(vaulterr.KindIO, "primitives.GenerateKeypair", err)
	}
	return *pub, *priv, nil
}

// Seal performs anonymous public-key encryption of message to the holder of
// recipientPublic: it generates a fresh ephemeral Curve25519 keypair, derives
// a shared secret via X25519, and encrypts message with XSalsa20-Poly1305.
// The ephemeral public key is attached so the recipient can decrypt without
// knowing who sent it and without ever learning the ephemeral private key.
//
// Output layout: ephemeral-public (32) ‖ nonce (24) ‖ ciphertext+tag.
// Every call uses a fresh ephemeral keypair and nonce, so compromising one
// sealed message never compromises another.
func Seal(message []byte, recipientPublic [32]byte) ([]byte, error) {
	const op = "primitives.Seal"

	ephPub, ephPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	var nonce [sealNonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, vaulterr.New(vaulterr.KindIO, op, err)
	}

	out := make([]byte, 0, PublicKeySize+sealNonceSize+len(message)+sealOverhead)
	out = append(out, ephPub[:]...)
	out = append(out, nonce[:]...)
	out = box.Seal(out, message, &nonce, &recipientPublic, ephPriv)

	return out, nil
}

// Open reverses [Seal]: it splits the ephemeral public key and nonce from
// sealed, then decrypts and verifies the remainder using recipientPrivate.
//
// Fails with [vaulterr.KindIntegrity] on truncation or any authentication
// mismatch — the same kind used for every other AEAD failure, so no message
// distinguishes a wrong key from tampered data.
func Open(sealed []byte, recipientPrivate [32]byte) ([]byte, error) {
	const op = "primitives.Open"

	if len(sealed) < minSealedLen {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, fmt.Errorf("sealed box too short: %d bytes", len(sealed)))
	}

	var ephPub [32]byte
	copy(ephPub[:], sealed[:PublicKeySize])

	var nonce [sealNonceSize]byte
	copy(nonce[:], sealed[PublicKeySize:PublicKeySize+sealNonceSize])

	ciphertext := sealed[PublicKeySize+sealNonceSize:]

	message, ok := box.Open(nil, ciphertext, &nonce, &ephPub, &recipientPrivate)
	if !ok {
		return nil, vaulterr.New(vaulterr.KindIntegrity, op, fmt.Errorf("authentication failed"))
	}

	return message, nil
}
