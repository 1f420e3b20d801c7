// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"time"
)

// Direction identifies which way an exit leads.
type Direction string

// The fixed compass/vertical direction set.
const (
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionEast  Direction = "east"
	DirectionWest  Direction = "west"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// Directions lists all valid directions in display order. Exits are always
// shown in this ranking for deterministic output.
var Directions = []Direction{
	DirectionNorth,
	DirectionSouth,
	DirectionEast,
	DirectionWest,
	DirectionUp,
	DirectionDown,
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// Validate checks that the direction is a recognized value.
func (d Direction) Validate() error {
	switch d {
	case DirectionNorth, DirectionSouth, DirectionEast, DirectionWest, DirectionUp, DirectionDown:
		return nil
	default:
		return ErrInvalidDirection
	}
}

// Rank returns the direction's position in the fixed display ordering.
// Unknown directions sort last.
func (d Direction) Rank() int {
	for i, dir := range Directions {
		if d == dir {
			return i
		}
	}
	return len(Directions)
}

// ParseDirection parses a direction case-insensitively, accepting the
// single-letter shortcuts (n, s, e, w, u, d).
func ParseDirection(s string) (Direction, error) {
	switch normalizeLower(s) {
	case "north", "n":
		return DirectionNorth, nil
	case "south", "s":
		return DirectionSouth, nil
	case "east", "e":
		return DirectionEast, nil
	case "west", "w":
		return DirectionWest, nil
	case "up", "u":
		return DirectionUp, nil
	case "down", "d":
		return DirectionDown, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Exit represents a one-way directed connection between two rooms.
// At most one exit exists per (from room, direction) pair; the store's
// uniqueness constraint enforces this under concurrency. A return path
// requires a second explicit exit.
type Exit struct {
	ID         int64
	FromRoomID string
	Direction  Direction
	ToRoomID   string
	CreatedBy  string
	CreatedAt  time.Time
}

// NewExit creates a validated exit. The ID is assigned by the store.
func NewExit(fromRoomID string, direction Direction, toRoomID, createdBy string) (*Exit, error) {
	if fromRoomID == "" {
		return nil, &ValidationError{Field: "from_room_id", Message: "cannot be empty"}
	}
	if toRoomID == "" {
		return nil, &ValidationError{Field: "to_room_id", Message: "cannot be empty"}
	}
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	return &Exit{
		FromRoomID: fromRoomID,
		Direction:  direction,
		ToRoomID:   toRoomID,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
