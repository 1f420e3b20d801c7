// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"errors"
	"fmt"
)

// Sentinel errors for world operations. Callers use errors.Is to branch on
// these; the command layer maps them onto player-facing messages.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDirection indicates a direction outside the fixed set.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidSlot indicates an equipment slot outside the fixed set.
	ErrInvalidSlot = errors.New("invalid equipment slot")

	// ErrDuplicateExit indicates an exit already leads from the room in
	// that direction.
	ErrDuplicateExit = errors.New("exit already exists in that direction")

	// ErrNoExit indicates the room has no exit in the requested direction.
	ErrNoExit = errors.New("no exit in that direction")

	// ErrSlotConflict indicates another instance already occupies the slot.
	ErrSlotConflict = errors.New("equipment slot already occupied")

	// ErrNotWearable indicates the object's wear flags permit no slot.
	ErrNotWearable = errors.New("object cannot be worn")

	// ErrNotHeld indicates the instance is not in the player's inventory.
	ErrNotHeld = errors.New("object is not in inventory")

	// ErrNotEquipped indicates the instance is not currently equipped.
	ErrNotEquipped = errors.New("object is not equipped")
)

// ValidationError describes a field-level constraint violation on a domain
// entity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
