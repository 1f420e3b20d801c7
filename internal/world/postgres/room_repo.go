// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/chatmud/chatmud/internal/world"
)

// RoomRepository implements world.RoomRepository using PostgreSQL.
type RoomRepository struct {
	pool poolIface
}

// NewRoomRepository creates a new RoomRepository.
func NewRoomRepository(pool poolIface) *RoomRepository {
	return &RoomRepository{pool: pool}
}

var _ world.RoomRepository = (*RoomRepository)(nil)

const roomColumns = `id, name, description, attached_channel_id, created_at, updated_at`

// Get retrieves a room by ID.
func (r *RoomRepository) Get(ctx context.Context, id string) (*world.Room, error) {
	row := q(ctx, r.pool).QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	room, err := scanRoom(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("room_id", id).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get room").With("room_id", id).Wrap(err)
	}
	return room, nil
}

// Upsert creates the room if absent and returns the stored row. An existing
// room keeps its name and description; only updated_at moves.
func (r *RoomRepository) Upsert(ctx context.Context, room *world.Room) (*world.Room, error) {
	row := q(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO rooms (id, name, description, attached_channel_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING `+roomColumns,
		room.ID, room.Name, room.Description, room.AttachedChannelID, room.CreatedAt)
	stored, err := scanRoom(row)
	if err != nil {
		return nil, oops.With("operation", "upsert room").With("room_id", room.ID).Wrap(err)
	}
	return stored, nil
}

// SetDescription updates a room's description.
func (r *RoomRepository) SetDescription(ctx context.Context, id, description string) error {
	tag, err := q(ctx, r.pool).Exec(ctx,
		`UPDATE rooms SET description = $2, updated_at = now() WHERE id = $1`,
		id, description)
	if err != nil {
		return oops.With("operation", "set room description").With("room_id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.With("room_id", id).Wrap(world.ErrNotFound)
	}
	return nil
}

func scanRoom(row pgx.Row) (*world.Room, error) {
	var room world.Room
	err := row.Scan(
		&room.ID, &room.Name, &room.Description, &room.AttachedChannelID,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
