// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"fmt"
	"time"
)

// DefaultRoomDescription is assigned to rooms created lazily on first reference.
const DefaultRoomDescription = "A mysterious room in the workspace."

// Room represents a persistent location node. Its ID is either a chat channel
// ID or a virtual identifier (e.g. "vnum_3001" for imported area rooms).
// A room may carry an attached channel so public actions surface there;
// virtual rooms have no attachment.
type Room struct {
	ID                string
	Name              string
	Description       string
	AttachedChannelID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRoom creates a room with the default description, attached to its own
// channel. Virtual rooms detach afterwards.
func NewRoom(id, name string) (*Room, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	attached := id
	return &Room{
		ID:                id,
		Name:              name,
		Description:       DefaultRoomDescription,
		AttachedChannelID: &attached,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// VirtualRoomID is the room ID for an imported area room.
func VirtualRoomID(vnum int32) string {
	return fmt.Sprintf("vnum_%d", vnum)
}

// NewVirtualRoom creates an imported area room. It has no attached channel
// until a wizard binds one.
func NewVirtualRoom(vnum int32, name, description string) (*Room, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if description == "" {
		description = DefaultRoomDescription
	}
	now := time.Now().UTC()
	return &Room{
		ID:          VirtualRoomID(vnum),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsVirtual reports whether the room has no attached chat channel.
func (r *Room) IsVirtual() bool {
	return r.AttachedChannelID == nil || *r.AttachedChannelID == ""
}
