// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Recipient is one device's entry in a vault's recipients document.
// It is created by share, removed by revoke, and has its WrappedDEK
// overwritten on every DEK rotation.
type Recipient struct {
	// Label is a human-readable name for the device, either supplied at
	// share time or defaulted from the fingerprint prefix.
	Label string `json:"label"`

	// PublicKey is the recipient's Curve25519 public key, base64-encoded.
	PublicKey string `json:"publicKey"`

	// WrappedDEK is the vault's current data-encryption key, sealed for
	// this recipient's public key, base64-encoded.
	WrappedDEK string `json:"wrappedDEK"`

	// AddedAt is the UTC timestamp at which this recipient was granted
	// access.
	AddedAt time.Time `json:"addedAt"`
}
