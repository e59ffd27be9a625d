// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package remotesync implements the optional "cloud/back-end syncing"
// external collaborator named in spec.md §1: best-effort push/pull of a
// vault's two artifact files to an HTTP endpoint. Nothing in the vault
// engine depends on this package; a push/pull failure is always
// recoverable by re-running the mutating command, since the git workflow
// remains the primary distribution channel.
package remotesync

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/envvault/envvault/internal/utils"
)

const (
	defaultTimeout = 15 * time.Second
	tokenIssuer    = "envvault"
	tokenLifetime  = 5 * time.Minute
)

// Config configures a [Client].
type Config struct {
	// Endpoint is the base URL of the remote vault store.
	Endpoint string
	// Token is the shared secret used to mint each request's bearer
	// token; never the vault password.
	Token string
	// Timeout bounds every HTTP call. Defaults to 15s.
	Timeout time.Duration
}

// Client pushes and pulls a vault's two artifact files to a remote HTTP
// endpoint, authenticating each request with a short-lived bearer token
// minted from Config.Token.
type Client struct {
	http  *resty.Client
	token string
}

// New returns a [Client] for cfg. Panics are never raised here; a bad
// Endpoint surfaces as a request error on the first call.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:  resty.New().SetBaseURL(cfg.Endpoint).SetTimeout(timeout),
		token: cfg.Token,
	}
}

// payload is the wire shape of both the push request body and the pull
// response body (SPEC_FULL.md §6).
type payload struct {
	Payload    string `json:"payload"`
	Recipients string `json:"recipients"`
}

// Push uploads a vault's current payload and recipients document,
// base64-encoding both per the wire format. fingerprint identifies the
// caller in the minted bearer token's subject claim.
func (c *Client) Push(ctx context.Context, fingerprint, name string, payloadBytes, recipientsBytes []byte) error {
	token, err := c.mintToken(fingerprint)
	if err != nil {
		return fmt.Errorf("remotesync: mint token: %w", err)
	}

	body := payload{
		Payload:    base64.StdEncoding.EncodeToString(payloadBytes),
		Recipients: base64.StdEncoding.EncodeToString(recipientsBytes),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put("/vaults/" + name)
	if err != nil {
		return fmt.Errorf("remotesync: push request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("remotesync: push failed: %s", resp.Status())
	}

	return nil
}

// Pull downloads a vault's payload and recipients document.
func (c *Client) Pull(ctx context.Context, fingerprint, name string) (payloadBytes, recipientsBytes []byte, err error) {
	token, err := c.mintToken(fingerprint)
	if err != nil {
		return nil, nil, fmt.Errorf("remotesync: mint token: %w", err)
	}

	var body payload
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&body).
		Get("/vaults/" + name)
	if err != nil {
		return nil, nil, fmt.Errorf("remotesync: pull request: %w", err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("remotesync: pull failed: %s", resp.Status())
	}

	payloadBytes, err = base64.StdEncoding.DecodeString(body.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("remotesync: decode payload: %w", err)
	}
	recipientsBytes, err = base64.StdEncoding.DecodeString(body.Recipients)
	if err != nil {
		return nil, nil, fmt.Errorf("remotesync: decode recipients: %w", err)
	}

	return payloadBytes, recipientsBytes, nil
}

func (c *Client) mintToken(fingerprint string) (string, error) {
	return utils.GenerateBearerToken(tokenIssuer, fingerprint, tokenLifetime, c.token)
}
