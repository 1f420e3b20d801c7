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

// PlayerRepository implements world.PlayerRepository using PostgreSQL.
type PlayerRepository struct {
	pool poolIface
}

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(pool poolIface) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

var _ world.PlayerRepository = (*PlayerRepository)(nil)

const playerColumns = `user_id, name, level, experience, class_id, race_id, gender, current_room_id, created_at, updated_at`

// Get retrieves a player by platform user ID.
func (r *PlayerRepository) Get(ctx context.Context, userID string) (*world.Player, error) {
	row := q(ctx, r.pool).QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE user_id = $1`, userID)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("user_id", userID).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get player").With("user_id", userID).Wrap(err)
	}
	return p, nil
}

// Upsert creates the player if absent and returns the stored row in one
// atomic statement. GREATEST keeps wizard promotion from ever demoting.
func (r *PlayerRepository) Upsert(ctx context.Context, p *world.Player) (*world.Player, error) {
	row := q(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO players (user_id, name, level, experience, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET level = GREATEST(players.level, EXCLUDED.level),
		    updated_at = EXCLUDED.updated_at
		RETURNING `+playerColumns,
		p.UserID, p.Name, p.Level, p.Experience, p.CreatedAt)
	stored, err := scanPlayer(row)
	if err != nil {
		return nil, oops.With("operation", "upsert player").With("user_id", p.UserID).Wrap(err)
	}
	return stored, nil
}

// SetRoom updates the player's current room.
func (r *PlayerRepository) SetRoom(ctx context.Context, userID, roomID string) error {
	tag, err := q(ctx, r.pool).Exec(ctx,
		`UPDATE players SET current_room_id = $2, updated_at = now() WHERE user_id = $1`,
		userID, roomID)
	if err != nil {
		return oops.With("operation", "set player room").With("user_id", userID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.With("user_id", userID).Wrap(world.ErrNotFound)
	}
	return nil
}

// SetCharacter updates class, race, and gender.
func (r *PlayerRepository) SetCharacter(ctx context.Context, userID string, classID, raceID *int32, gender *string) error {
	tag, err := q(ctx, r.pool).Exec(ctx,
		`UPDATE players SET class_id = $2, race_id = $3, gender = $4, updated_at = now() WHERE user_id = $1`,
		userID, classID, raceID, gender)
	if err != nil {
		return oops.With("operation", "set character").With("user_id", userID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.With("user_id", userID).Wrap(world.ErrNotFound)
	}
	return nil
}

// ListInRoom returns players currently in the room, ordered by name.
func (r *PlayerRepository) ListInRoom(ctx context.Context, roomID string) ([]*world.Player, error) {
	rows, err := q(ctx, r.pool).Query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE current_room_id = $1 ORDER BY name`, roomID)
	if err != nil {
		return nil, oops.With("operation", "list players in room").With("room_id", roomID).Wrap(err)
	}
	defer rows.Close()

	var players []*world.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, oops.With("operation", "scan player row").Wrap(err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate players").Wrap(err)
	}
	return players, nil
}

func scanPlayer(row pgx.Row) (*world.Player, error) {
	var p world.Player
	err := row.Scan(
		&p.UserID, &p.Name, &p.Level, &p.Experience,
		&p.ClassID, &p.RaceID, &p.Gender, &p.CurrentRoomID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
