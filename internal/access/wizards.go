// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package access decides who holds wizard privileges.
package access

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// compiledEntry holds an allow-list pattern and its compiled glob.
type compiledEntry struct {
	pattern string
	glob    glob.Glob
}

// WizardSet is a static allow-list of users pre-approved for wizard level.
// Entries are matched against both the platform user ID and the display
// name, case-insensitively, and may use glob syntax ("U0*", "admin-*").
//
// Thread-safety: entries are immutable after construction and require no
// synchronization.
type WizardSet struct {
	entries []compiledEntry
}

// NewWizardSet compiles the allow-list entries. Empty entries are skipped.
// Returns an error if any pattern fails to compile (invalid glob syntax).
func NewWizardSet(patterns []string) (*WizardSet, error) {
	set := &WizardSet{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, oops.In("access").
				Code("INVALID_WIZARD_PATTERN").
				With("pattern", p).
				Wrap(err)
		}
		set.entries = append(set.entries, compiledEntry{pattern: p, glob: g})
	}
	return set, nil
}

// ParseWizardList splits a comma-separated allow-list (the WIZARDS setting)
// and compiles it.
func ParseWizardList(list string) (*WizardSet, error) {
	return NewWizardSet(strings.Split(list, ","))
}

// Allowed reports whether the user ID or display name matches an entry.
func (s *WizardSet) Allowed(userID, name string) bool {
	if s == nil {
		return false
	}
	userID = strings.ToLower(strings.TrimSpace(userID))
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range s.entries {
		if userID != "" && e.glob.Match(userID) {
			return true
		}
		if name != "" && e.glob.Match(name) {
			return true
		}
	}
	return false
}

// Size returns the number of compiled entries.
func (s *WizardSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
