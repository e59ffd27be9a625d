package primitives

import (
	"encoding/base64"
	"fmt"

	"github.com/envvault/envvault/internal/vaulterr"
)

// EncodePublicKey renders a public key as standard base64, the encoding
// used in both the recipients document and the share command's argument.
func EncodePublicKey(publicKey [32]byte) string {
	return base64.StdEncoding.EncodeToString(publicKey[:])
}

// DecodePublicKey base64-decodes s and validates that it yields exactly
// [PublicKeySize] bytes. Fails with [vaulterr.KindInvalidPublicKey] on a
// base64 error or a length mismatch.
func DecodePublicKey(s string) ([32]byte, error) {
	const op = "primitives.DecodePublicKey"

	var out [32]byte

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return out, vaulterr.New(vaulterr.KindInvalidPublicKey, op, err)
	}

	if len(raw) != PublicKeySize {
		return out, vaulterr.New(vaulterr.KindInvalidPublicKey, op, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(raw)))
	}

	copy(out[:], raw)
	return out, nil
}
