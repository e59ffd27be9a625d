// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateBearerToken creates a signed HMAC-SHA256 JWT asserting that
// fingerprint is authorized to push/pull artifacts at a remote endpoint.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the CLI installation issuing the token
//   - Subject   (sub): the caller's identity fingerprint
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty
// or zero.
func GenerateBearerToken(issuer, fingerprint string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || fingerprint == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating bearer token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   fingerprint,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing bearer token: %w", err)
	}

	return signed, nil
}

// ValidateAndParseBearerToken validates tokenString and returns the
// fingerprint carried in its subject claim.
//
// Validation includes signature verification against tokenSignKey, issuer
// match against tokenIssuer, expiration, and presence of a non-empty
// subject.
func ValidateAndParseBearerToken(tokenString, tokenSignKey, tokenIssuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing bearer token: %w", err)
	}

	fingerprint, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred getting subject from bearer token: %w", err)
	}
	if fingerprint == "" {
		return "", errors.New("empty subject in bearer token")
	}

	return fingerprint, nil
}

// ParseBearerToken extracts the token value out of an "Authorization:
// Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
