// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength        = 80
	maxDescriptionLength = 4000
)

// ValidateName checks entity display names: non-empty after trimming and at
// most 80 characters.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return &ValidationError{Field: "name", Message: "exceeds 80 characters"}
	}
	return nil
}

// ValidateDescription checks free-form descriptions: non-empty after trimming
// and at most 4000 characters.
func ValidateDescription(desc string) error {
	trimmed := strings.TrimSpace(desc)
	if trimmed == "" {
		return &ValidationError{Field: "description", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return &ValidationError{Field: "description", Message: "exceeds 4000 characters"}
	}
	return nil
}

func normalizeLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
