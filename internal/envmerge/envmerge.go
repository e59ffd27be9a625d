// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package envmerge parses and re-serializes KEY=VALUE text, preserving
// line order, blank lines, and "#" comments, and applies a patch of
// added/changed keys on top of an existing document without disturbing
// keys the patch doesn't mention. This is the ".env parser/merger"
// external collaborator named in spec.md §1, used by the add command to
// merge a new file's keys into a vault's existing content.
package envmerge

import (
	"strings"
)

// Line is one line of a parsed .env document: either a KEY=VALUE entry
// (Key non-empty) or an opaque line (blank, comment, or malformed)
// preserved verbatim in Raw.
type Line struct {
	Key   string
	Value string
	Raw   string
}

// Document is a parsed .env file: its lines in original order plus an
// index from key to line position for O(1) lookups and updates.
type Document struct {
	lines []Line
	index map[string]int
}

// Parse splits text into a [Document], recognizing "KEY=VALUE" lines
// (surrounding whitespace trimmed from the key) and preserving every
// other line — blank lines, "#" comments, and anything that doesn't
// parse as KEY=VALUE — verbatim.
func Parse(text string) *Document {
	doc := &Document{index: make(map[string]int)}

	rawLines := strings.Split(text, "\n")
	// A trailing newline produces one empty trailing element from Split;
	// drop it so round-tripping an empty document doesn't add a blank line.
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}

	for _, raw := range rawLines {
		key, value, ok := splitKeyValue(raw)
		if !ok {
			doc.lines = append(doc.lines, Line{Raw: raw})
			continue
		}
		doc.lines = append(doc.lines, Line{Key: key, Value: value, Raw: raw})
		doc.index[key] = len(doc.lines) - 1
	}

	return doc
}

// splitKeyValue reports whether raw is a KEY=VALUE line: a trimmed,
// non-empty key (not starting with "#") followed by "=" and a value.
func splitKeyValue(raw string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}

	idx := strings.Index(raw, "=")
	if idx < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(raw[:idx])
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}

	return key, raw[idx+1:], true
}

// Get returns the value for key and whether it is present.
func (d *Document) Get(key string) (string, bool) {
	idx, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.lines[idx].Value, true
}

// Set adds key=value if key is new, or rewrites the existing line in
// place (preserving its position) if key is already present.
func (d *Document) Set(key, value string) {
	if idx, ok := d.index[key]; ok {
		d.lines[idx] = Line{Key: key, Value: value, Raw: key + "=" + value}
		return
	}
	d.lines = append(d.lines, Line{Key: key, Value: value, Raw: key + "=" + value})
	d.index[key] = len(d.lines) - 1
}

// Delete removes key's line entirely, if present.
func (d *Document) Delete(key string) {
	idx, ok := d.index[key]
	if !ok {
		return
	}
	d.lines = append(d.lines[:idx], d.lines[idx+1:]...)
	delete(d.index, key)
	for k, i := range d.index {
		if i > idx {
			d.index[k] = i - 1
		}
	}
}

// Keys returns every KEY present, in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.index))
	for _, line := range d.lines {
		if line.Key != "" {
			keys = append(keys, line.Key)
		}
	}
	return keys
}

// String re-serializes the document, preserving original line order,
// comments, and blank lines, with a trailing newline.
func (d *Document) String() string {
	var b strings.Builder
	for _, line := range d.lines {
		b.WriteString(line.Raw)
		b.WriteByte('\n')
	}
	return b.String()
}

// Merge applies patch on top of base: every key in patch overwrites or
// appends in base, and every other line of base (comments, blank lines,
// untouched keys) is preserved as-is. Returns the merged text.
func Merge(base, patch string) string {
	doc := Parse(base)
	patchDoc := Parse(patch)

	for _, key := range patchDoc.Keys() {
		value, _ := patchDoc.Get(key)
		doc.Set(key, value)
	}

	return doc.String()
}
