package primitives

import (
	"bytes"
	"testing"
)

func TestDerive_DeterministicForSameInputs(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1, err := Derive(password, salt, LegacyKDFParams)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	k2, err := Derive(password, salt, LegacyKDFParams)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if len(k1) != derivedKeySize {
		t.Fatalf("derived key length = %d, want %d", len(k1), derivedKeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected identical derived keys for identical inputs")
	}
}

func TestDerive_DifferentSaltProducesDifferentKey(t *testing.T) {
	password := []byte("same password")
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	k1, err := Derive(password, salt1, LegacyKDFParams)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	k2, err := Derive(password, salt2, LegacyKDFParams)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if bytes.Equal(k1, k2) {
		t.Fatalf("expected different derived keys for different salts")
	}
}

func TestDerive_CurrentAndLegacyParamsDisagree(t *testing.T) {
	password := []byte("same password")
	salt := bytes.Repeat([]byte{0x03}, SaltSize)

	current, err := Derive(password, salt, CurrentKDFParams)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}
	legacy, err := Derive(password, salt, LegacyKDFParams)
	if err != nil {
		t.Fatalf("Derive error: %v", err)
	}

	if bytes.Equal(current, legacy) {
		t.Fatalf("expected current and legacy parameter sets to derive different keys")
	}
}
