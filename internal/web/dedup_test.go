// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package web

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDedup(t *testing.T) {
	d := newEventDedup(3)

	assert.False(t, d.Seen("a"))
	assert.True(t, d.Seen("a"))
	assert.False(t, d.Seen("b"))
	assert.False(t, d.Seen("c"))
	assert.True(t, d.Seen("b"))
}

func TestEventDedupEvictsOldest(t *testing.T) {
	d := newEventDedup(2)

	assert.False(t, d.Seen("a"))
	assert.False(t, d.Seen("b"))
	assert.False(t, d.Seen("c"), "c evicts a")
	assert.False(t, d.Seen("a"), "a was evicted, so it reads as new")
	assert.True(t, d.Seen("c"))
}

func TestEventDedupEmptyID(t *testing.T) {
	d := newEventDedup(2)

	assert.False(t, d.Seen(""))
	assert.False(t, d.Seen(""), "empty IDs are never deduplicated")
}

func TestEventDedupCapacityBound(t *testing.T) {
	d := newEventDedup(100)
	for i := 0; i < 1000; i++ {
		d.Seen(fmt.Sprintf("ev-%d", i))
	}
	assert.LessOrEqual(t, len(d.seen), 100)
}
