// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DeviceConfig is the read-only record written once at identity init and
// persisted as the identity root's config.json.
type DeviceConfig struct {
	// CreatedAt is the UTC timestamp at which the identity was created.
	CreatedAt time.Time `json:"createdAt"`

	// DeviceLabel is a human-readable name for this device, supplied at
	// init time.
	DeviceLabel string `json:"deviceLabel"`

	// Fingerprint is the device's own fingerprint, a pure function of its
	// public key, cached here to avoid recomputing it on every read.
	Fingerprint string `json:"fingerprint"`

	// KDFProfile names the parameter set ("current" or "legacy") used to
	// derive the key that seals this identity's private key. Absent on
	// identities created before profile tracking was introduced, in which
	// case unlock falls back to trying both parameter sets.
	KDFProfile string `json:"kdfProfile,omitempty"`
}
