package vaulterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	err := New(KindIntegrity, "vault.Get", cause)

	assert.Contains(t, err.Error(), "vault.Get")
	assert.Contains(t, err.Error(), "integrity")
	assert.Contains(t, err.Error(), "boom")
}

func TestError_ErrorMessage_NoCause(t *testing.T) {
	err := New(KindNoAccess, "vault.Get", nil)
	assert.Equal(t, "vault.Get: noAccess", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := New(KindIO, "artifact.Save", cause)

	assert.ErrorIs(t, err, cause)
}

func TestIs(t *testing.T) {
	err := New(KindBadCredentials, "identitystore.Unlock", nil)
	wrapped := fmt.Errorf("context: %w", err)

	assert.True(t, Is(wrapped, KindBadCredentials))
	assert.False(t, Is(wrapped, KindIntegrity))
	assert.False(t, Is(errors.New("plain error"), KindIntegrity))
}

func TestKindOf(t *testing.T) {
	err := New(KindSelfRevoke, "vault.Revoke", nil)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindSelfRevoke, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNoIdentity, "noIdentity"},
		{KindAlreadyInitialized, "alreadyInitialized"},
		{KindBadCredentials, "badCredentials"},
		{KindIntegrity, "integrity"},
		{KindNoAccess, "noAccess"},
		{KindAlreadyShared, "alreadyShared"},
		{KindNotARecipient, "notARecipient"},
		{KindSelfRevoke, "selfRevoke"},
		{KindInvalidName, "invalidName"},
		{KindInvalidPublicKey, "invalidPublicKey"},
		{KindAlreadyExists, "alreadyExists"},
		{KindIO, "io"},
		{Kind(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}
