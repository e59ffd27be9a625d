// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package primitives implements the stateless cryptographic building blocks
// the rest of envvault is built on: authenticated symmetric encryption,
// anonymous public-key sealing, password-based key derivation, and
// fingerprinting.
//
// # Key hierarchy
//
// A vault's data never touches disk under the user's password directly.
// Instead:
//
//  1. DEK (data-encryption key) — a random 256-bit AES key, generated fresh
//     by the vault engine on every content mutation. It encrypts a vault's
//     payload with [Encrypt]/[Decrypt].
//  2. Per recipient, the DEK is wrapped with that recipient's public key
//     using [Seal]; only the matching private key can [Open] it.
//  3. A device's own private key is itself sealed at rest — not with
//     public-key cryptography, but symmetrically under a key derived from
//     the user's password via [Derive].
//
// None of these functions hold state; all take their key material as
// arguments and return either ciphertext or an error. Callers (primarily
// internal/identitystore and internal/vault) are responsible for wiring keys
// between layers and for mapping failures to the closed error-kind taxonomy
// in internal/vaulterr — KindBadCredentials for KDF/unwrap failures that
// originate from password entry, KindIntegrity for every AEAD verification
// failure.
package primitives
