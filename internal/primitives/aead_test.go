package primitives

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/envvault/envvault/internal/vaulterr"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := randomKey(t)
	plaintext := []byte("DATABASE_URL=postgres://localhost/app")

	blob, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := Decrypt(blob, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestEncrypt_EmptyPlaintext(t *testing.T) {
	key := randomKey(t)

	blob, err := Encrypt(nil, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := Decrypt(blob, key)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected zero bytes, got %d", len(got))
	}
}

func TestEncrypt_ProducesDistinctOutputs(t *testing.T) {
	key := randomKey(t)
	plaintext := []byte("same plaintext every time")

	b1, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b2, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if bytes.Equal(b1, b2) {
		t.Fatalf("expected two encryptions of the same plaintext to differ (IV uniqueness)")
	}
}

func TestDecrypt_WrongKeyFailsWithIntegrity(t *testing.T) {
	key1 := randomKey(t)
	key2 := randomKey(t)

	blob, err := Encrypt([]byte("secret"), key1)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	_, err = Decrypt(blob, key2)
	if !vaulterr.Is(err, vaulterr.KindIntegrity) {
		t.Fatalf("expected KindIntegrity, got %v", err)
	}
}

func TestDecrypt_TamperedCiphertextFailsWithIntegrity(t *testing.T) {
	key := randomKey(t)

	blob, err := Encrypt([]byte("secret"), key)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	blob[len(blob)-1] ^= 0xFF

	_, err = Decrypt(blob, key)
	if !vaulterr.Is(err, vaulterr.KindIntegrity) {
		t.Fatalf("expected KindIntegrity, got %v", err)
	}
}

func TestDecrypt_RejectsShortInput(t *testing.T) {
	key := randomKey(t)

	tests := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"one byte short of minimum", minCiphertextLen - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(make([]byte, tt.n), key)
			if !vaulterr.Is(err, vaulterr.KindIntegrity) {
				t.Fatalf("expected KindIntegrity, got %v", err)
			}
		})
	}
}
