// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package command

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry manages command registration and lookup.
// It is thread-safe for concurrent access.
type Registry struct {
	commands map[string]Entry
	aliases  map[string]string
	mu       sync.RWMutex
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Entry),
		aliases:  make(map[string]string),
	}
}

// Register adds a command and its aliases to the registry.
// If a name or alias collides with an existing entry, the later registration
// wins and a warning is logged.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.commands[entry.Name]; ok {
		slog.Warn("command conflict: overwriting existing command",
			"command", entry.Name,
			"previous", existing.Name)
	}
	r.commands[entry.Name] = entry
	for _, alias := range entry.Aliases {
		if prev, ok := r.aliases[alias]; ok && prev != entry.Name {
			slog.Warn("alias conflict: reassigning alias",
				"alias", alias,
				"previous_command", prev,
				"new_command", entry.Name)
		}
		r.aliases[alias] = entry.Name
	}
}

// Get retrieves a command by canonical name or alias.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	entry, ok := r.commands[name]
	return entry, ok
}

// All returns all registered commands sorted by name.
// The returned slice is a copy and safe to modify.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.commands))
	for _, e := range r.commands {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
