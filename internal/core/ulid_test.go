// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	id1 := NewULID()
	id2 := NewULID()

	assert.NotEmpty(t, id1.String())
	assert.NotEqual(t, id1.String(), id2.String())
	// Monotonic entropy keeps same-millisecond IDs sortable.
	assert.LessOrEqual(t, id1.String(), id2.String())
}

func TestParseULID(t *testing.T) {
	original := NewULID()
	parsed, err := ParseULID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParseULID_Invalid(t *testing.T) {
	_, err := ParseULID("invalid")
	assert.Error(t, err)
}
