// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"context"
)

// PlayerRepository manages player persistence.
type PlayerRepository interface {
	// Get retrieves a player by platform user ID.
	Get(ctx context.Context, userID string) (*Player, error)

	// Upsert creates the player if absent and returns the stored row.
	// An existing player's name and level are left untouched unless the
	// upsert raises them (wizard promotion never demotes).
	Upsert(ctx context.Context, p *Player) (*Player, error)

	// SetRoom updates the player's current room.
	SetRoom(ctx context.Context, userID, roomID string) error

	// SetCharacter updates class, race, and gender.
	SetCharacter(ctx context.Context, userID string, classID, raceID *int32, gender *string) error

	// ListInRoom returns players currently in the room, ordered by name.
	ListInRoom(ctx context.Context, roomID string) ([]*Player, error)
}

// RoomRepository manages room persistence.
type RoomRepository interface {
	// Get retrieves a room by ID.
	Get(ctx context.Context, id string) (*Room, error)

	// Upsert creates the room if absent and returns the stored row.
	Upsert(ctx context.Context, r *Room) (*Room, error)

	// SetDescription updates a room's description.
	SetDescription(ctx context.Context, id, description string) error
}

// ExitRepository manages exit persistence.
type ExitRepository interface {
	// Create persists a new exit and assigns its ID.
	// Returns ErrDuplicateExit when an exit already leads from the room
	// in that direction.
	Create(ctx context.Context, exit *Exit) error

	// Find returns the exit leading from the room in the direction, or
	// ErrNoExit.
	Find(ctx context.Context, fromRoomID string, direction Direction) (*Exit, error)

	// ListFrom returns all exits from a room in display order.
	ListFrom(ctx context.Context, fromRoomID string) ([]*Exit, error)
}

// ObjectRepository manages object definition lookups. Definitions are
// imported by the seed loader and read-only at runtime.
type ObjectRepository interface {
	// GetByVnum retrieves an object definition by vnum.
	GetByVnum(ctx context.Context, vnum int32) (*ObjectDefinition, error)

	// Insert persists an object definition (seed import).
	Insert(ctx context.Context, def *ObjectDefinition) error
}

// InstanceRepository manages object instance persistence.
type InstanceRepository interface {
	// Get retrieves an instance by ID with its definition joined.
	Get(ctx context.Context, id string) (*ObjectInstance, error)

	// Create persists a new instance.
	Create(ctx context.Context, inst *ObjectInstance) error

	// ListHeldBy returns instances carried (not equipped) by a player,
	// definitions joined.
	ListHeldBy(ctx context.Context, playerID string) ([]*ObjectInstance, error)

	// ListEquippedBy returns instances equipped by a player in slot
	// display order, definitions joined.
	ListEquippedBy(ctx context.Context, playerID string) ([]*ObjectInstance, error)

	// ListInRoom returns instances lying in a room, definitions joined.
	ListInRoom(ctx context.Context, roomID string) ([]*ObjectInstance, error)

	// FindInSlot returns the instance equipped in the player's slot,
	// locking the row for the transaction, or ErrNotFound.
	FindInSlot(ctx context.Context, playerID string, slot EquipmentSlot) (*ObjectInstance, error)

	// SetEquipped moves the instance into the player's slot.
	SetEquipped(ctx context.Context, id, playerID string, slot EquipmentSlot) error

	// SetCarried moves the instance into the player's inventory.
	SetCarried(ctx context.Context, id, playerID string) error

	// SetInRoom drops the instance into a room.
	SetInRoom(ctx context.Context, id, roomID string) error
}

// LookupRepository serves the static class/race/area tables.
type LookupRepository interface {
	// ListClasses returns all classes ordered by ID.
	ListClasses(ctx context.Context) ([]Class, error)

	// ListRaces returns all races ordered by ID.
	ListRaces(ctx context.Context) ([]Race, error)

	// FindClass resolves a class by case-insensitive name.
	FindClass(ctx context.Context, name string) (*Class, error)

	// FindRace resolves a race by case-insensitive name.
	FindRace(ctx context.Context, name string) (*Race, error)

	// UpsertArea records an imported area and returns its ID.
	UpsertArea(ctx context.Context, area *Area) (int32, error)
}

// Transactor runs fn within a database transaction. Repository calls made
// with the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
