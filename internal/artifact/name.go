// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package artifact

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRE matches the permitted shape of a central vault name: it must
// start with an alphanumeric character, then may contain up to 99 more
// alphanumerics, dots, underscores, or hyphens.
var nameRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,99}$`)

// IsValidName reports whether name is safe to use as a central vault
// directory component: it must match [nameRE], must not be "." or "..",
// and must not contain a path separator or the sequence "..". Any
// violation returns a descriptive error; callers must not perform any
// filesystem operation when this returns non-nil.
func IsValidName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("vault name %q is reserved", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("vault name %q must not contain a path separator", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("vault name %q must not contain \"..\"", name)
	}
	if !nameRE.MatchString(name) {
		return fmt.Errorf("vault name %q must match %s", name, nameRE.String())
	}
	return nil
}
