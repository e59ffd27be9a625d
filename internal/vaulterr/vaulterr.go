// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vaulterr defines the closed error-kind taxonomy shared by every
// core package (primitives, identitystore, artifact, vault).
//
// Every error that can cross a package boundary in the core is wrapped as an
// *Error with one of the Kind constants below. Callers match on Kind, never
// on message text, via [errors.As] or [Is]. This keeps the cryptographic
// failure surface closed: wrong password, tampered ciphertext, a truncated
// sealed box, and a non-matching key all collapse to either
// [KindBadCredentials] or [KindIntegrity], so no caller-visible message
// distinguishes them.
package vaulterr

import (
	"errors"
	"fmt"
)

// Kind identifies one of the closed set of externally visible failure
// conditions a core operation can report.
type Kind int

const (
	// KindNoIdentity means the identity files are missing; run init.
	KindNoIdentity Kind = iota + 1
	// KindAlreadyInitialized means an identity already exists.
	KindAlreadyInitialized
	// KindBadCredentials means the password failed against both current
	// and legacy KDF parameters.
	KindBadCredentials
	// KindIntegrity means an AEAD verification failure occurred at any
	// layer (symmetric payload, sealed DEK, or a structurally malformed
	// wrapped value). Never distinguishes "wrong key" from "tampered data".
	KindIntegrity
	// KindNoAccess means the caller's fingerprint is absent from the
	// recipients document.
	KindNoAccess
	// KindAlreadyShared means the fingerprint is already present. It is
	// not an error condition: the vault engine's Share reports this case
	// through its result value with a nil error, not as an error of this
	// kind.
	KindAlreadyShared
	// KindNotARecipient means the revoke target's fingerprint is absent.
	KindNotARecipient
	// KindSelfRevoke means the revoke target equals the caller.
	KindSelfRevoke
	// KindInvalidName means a vault name fails validation.
	KindInvalidName
	// KindInvalidPublicKey means a public key failed to decode or is not
	// exactly 32 bytes.
	KindInvalidPublicKey
	// KindAlreadyExists means init-vault targeted an existing artifact
	// without explicit overwrite consent.
	KindAlreadyExists
	// KindIO means an underlying filesystem failure occurred; the
	// original error is propagated unchanged via Unwrap.
	KindIO
)

// String renders the kind as the lowerCamelCase name used in log fields and
// CLI diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNoIdentity:
		return "noIdentity"
	case KindAlreadyInitialized:
		return "alreadyInitialized"
	case KindBadCredentials:
		return "badCredentials"
	case KindIntegrity:
		return "integrity"
	case KindNoAccess:
		return "noAccess"
	case KindAlreadyShared:
		return "alreadyShared"
	case KindNotARecipient:
		return "notARecipient"
	case KindSelfRevoke:
		return "selfRevoke"
	case KindInvalidName:
		return "invalidName"
	case KindInvalidPublicKey:
		return "invalidPublicKey"
	case KindAlreadyExists:
		return "alreadyExists"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the concrete error type produced by every core package. It
// carries a Kind for programmatic dispatch, the operation name (e.g.
// "vault.Put", "identitystore.Unlock") for diagnostics, and an optional
// wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface. The message never includes
// ciphertext, keys, or plaintext — only the operation, the kind, and the
// wrapped cause's message when there is one.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the wrapped cause, if any, so callers can still inspect
// underlying I/O errors with [errors.Is]/[errors.As] for the [KindIO] case.
func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an *Error with the given kind, operation, and optional
// wrapped cause.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err carries the given kind, unwrapping through any
// number of wrapping layers via [errors.As].
func Is(err error, kind Kind) bool {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// KindOf extracts the Kind from err, if it is (or wraps) a *Error. The
// second return value reports whether a Kind was found.
func KindOf(err error) (Kind, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return 0, false
}
