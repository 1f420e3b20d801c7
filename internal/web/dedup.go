// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package web

import "sync"

// eventDedup remembers recently seen event IDs so retried webhook deliveries
// run a command only once. Capacity is bounded; the oldest entry is evicted
// when full.
type eventDedup struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
	next  int
	cap   int
}

func newEventDedup(capacity int) *eventDedup {
	if capacity <= 0 {
		capacity = 1
	}
	return &eventDedup{
		seen:  make(map[string]struct{}, capacity),
		order: make([]string, capacity),
		cap:   capacity,
	}
}

// Seen records the ID and reports whether it was already present. Empty IDs
// are never deduplicated.
func (d *eventDedup) Seen(id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if evicted := d.order[d.next]; evicted != "" {
		delete(d.seen, evicted)
	}
	d.order[d.next] = id
	d.next = (d.next + 1) % d.cap
	d.seen[id] = struct{}{}
	return false
}
