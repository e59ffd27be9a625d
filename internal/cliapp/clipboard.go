// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cliapp

import "github.com/atotto/clipboard"

// copyToClipboard writes text to the system clipboard, letting `get
// -clipboard` hand a decrypted secret to another program without ever
// printing it to a terminal that might log scrollback.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
