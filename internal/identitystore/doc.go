// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identitystore persists a single host user's device identity:
// a long-term Curve25519 keypair, the KDF salt that protects its private
// half, and a read-only device configuration record.
//
// The private key is sealed (AES-256-GCM, via internal/primitives) under
// a key derived from the user's password and the stored salt. The public
// key, salt, and config record are kept in the clear — none of the three
// is secret on its own.
package identitystore
