// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRecipientsDocument_MarshalJSON_StableFingerprintOrder(t *testing.T) {
	doc := NewRecipientsDocument()
	doc.Recipients["ffff000000000000"] = Recipient{Label: "z", AddedAt: time.Unix(0, 0).UTC()}
	doc.Recipients["0000000000000000"] = Recipient{Label: "a", AddedAt: time.Unix(0, 0).UTC()}
	doc.Recipients["7777000000000000"] = Recipient{Label: "m", AddedAt: time.Unix(0, 0).UTC()}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	first := strings.Index(string(raw), "0000000000000000")
	second := strings.Index(string(raw), "7777000000000000")
	third := strings.Index(string(raw), "ffff000000000000")

	if !(first < second && second < third) {
		t.Fatalf("expected fingerprints in sorted order, got offsets %d, %d, %d", first, second, third)
	}
}

func TestNewRecipientsDocument_StartsAtVersionOne(t *testing.T) {
	doc := NewRecipientsDocument()
	if doc.DEKVersion != 1 {
		t.Fatalf("DEKVersion = %d, want 1", doc.DEKVersion)
	}
	if len(doc.Recipients) != 0 {
		t.Fatalf("expected empty recipients map, got %d entries", len(doc.Recipients))
	}
}

func TestRecipientsDocument_HasRecipient(t *testing.T) {
	doc := NewRecipientsDocument()
	doc.Recipients["abcd000000000000"] = Recipient{Label: "dev"}

	if !doc.HasRecipient("abcd000000000000") {
		t.Fatal("expected HasRecipient to return true for a present fingerprint")
	}
	if doc.HasRecipient("0000000000000000") {
		t.Fatal("expected HasRecipient to return false for an absent fingerprint")
	}
}

func TestRecipientsDocument_RoundTrip(t *testing.T) {
	doc := NewRecipientsDocument()
	doc.Recipients["abcd000000000000"] = Recipient{
		Label:      "laptop",
		PublicKey:  "cHVibGljLWtleS1wbGFjZWhvbGRlci0zMmJ5dGVzISE=",
		WrappedDEK: "d3JhcHBlZC1kZWstcGxhY2Vob2xkZXI=",
		AddedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var got RecipientsDocument
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if got.DEKVersion != doc.DEKVersion {
		t.Fatalf("DEKVersion = %d, want %d", got.DEKVersion, doc.DEKVersion)
	}
	gotRecipient, ok := got.Recipients["abcd000000000000"]
	if !ok {
		t.Fatal("expected recipient to round-trip")
	}
	if gotRecipient != doc.Recipients["abcd000000000000"] {
		t.Fatalf("recipient mismatch: got %+v, want %+v", gotRecipient, doc.Recipients["abcd000000000000"])
	}
}
