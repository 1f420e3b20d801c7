// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package world contains the game world domain types and logic.
//
// For creating domain objects (Player, Room, Exit, ObjectInstance), prefer
// using constructor functions (NewX) over direct struct initialization.
// Constructors ensure validation and proper initialization of required fields.
package world

import "time"

// WizardLevel is the level threshold for world-editing commands.
const WizardLevel = 50

// Player represents a character owned by a chat-platform user.
// The platform user ID is the primary key; a player is created on first
// interaction and never deleted in normal operation.
type Player struct {
	UserID        string
	Name          string
	Level         int32
	Experience    int32
	ClassID       *int32
	RaceID        *int32
	Gender        *string
	CurrentRoomID *string // nil until the player first looks in a channel
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPlayer creates a level-1 player for a platform user.
func NewPlayer(userID, name string) (*Player, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "cannot be empty"}
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Player{
		UserID:    userID,
		Name:      name,
		Level:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsWizard reports whether the player has world-editing privileges.
func (p *Player) IsWizard() bool {
	return p.Level >= WizardLevel
}

// InRoom reports whether the player has entered a room yet.
func (p *Player) InRoom() bool {
	return p.CurrentRoomID != nil && *p.CurrentRoomID != ""
}

// CharacterComplete reports whether class, race, and gender are all chosen.
func (p *Player) CharacterComplete() bool {
	return p.ClassID != nil && p.RaceID != nil && p.Gender != nil
}
