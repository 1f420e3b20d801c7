// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/chatmud/chatmud/internal/world"
)

// ExitRepository implements world.ExitRepository using PostgreSQL.
// The UNIQUE (from_room_id, direction) constraint is the serialization point
// for concurrent digs; a violation surfaces as world.ErrDuplicateExit.
type ExitRepository struct {
	pool poolIface
}

// NewExitRepository creates a new ExitRepository.
func NewExitRepository(pool poolIface) *ExitRepository {
	return &ExitRepository{pool: pool}
}

var _ world.ExitRepository = (*ExitRepository)(nil)

// Create persists a new exit and assigns its ID.
func (r *ExitRepository) Create(ctx context.Context, exit *world.Exit) error {
	err := q(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO exits (from_room_id, direction, to_room_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		exit.FromRoomID, exit.Direction.String(), exit.ToRoomID, exit.CreatedBy, exit.CreatedAt,
	).Scan(&exit.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.With("from_room_id", exit.FromRoomID).
				With("direction", exit.Direction.String()).
				Wrap(world.ErrDuplicateExit)
		}
		return oops.With("operation", "create exit").
			With("from_room_id", exit.FromRoomID).
			With("direction", exit.Direction.String()).
			Wrap(err)
	}
	return nil
}

// Find returns the exit leading from the room in the direction.
func (r *ExitRepository) Find(ctx context.Context, fromRoomID string, direction world.Direction) (*world.Exit, error) {
	row := q(ctx, r.pool).QueryRow(ctx, `
		SELECT id, from_room_id, direction, to_room_id, created_by, created_at
		FROM exits WHERE from_room_id = $1 AND direction = $2`,
		fromRoomID, direction.String())
	exit, err := scanExit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("from_room_id", fromRoomID).
			With("direction", direction.String()).
			Wrap(world.ErrNoExit)
	}
	if err != nil {
		return nil, oops.With("operation", "find exit").With("from_room_id", fromRoomID).Wrap(err)
	}
	return exit, nil
}

// ListFrom returns all exits from a room in display order
// (north, south, east, west, up, down).
func (r *ExitRepository) ListFrom(ctx context.Context, fromRoomID string) ([]*world.Exit, error) {
	rows, err := q(ctx, r.pool).Query(ctx, `
		SELECT id, from_room_id, direction, to_room_id, created_by, created_at
		FROM exits WHERE from_room_id = $1
		ORDER BY array_position(ARRAY['north','south','east','west','up','down'], direction)`,
		fromRoomID)
	if err != nil {
		return nil, oops.With("operation", "list exits").With("from_room_id", fromRoomID).Wrap(err)
	}
	defer rows.Close()

	var exits []*world.Exit
	for rows.Next() {
		exit, err := scanExit(rows)
		if err != nil {
			return nil, oops.With("operation", "scan exit row").Wrap(err)
		}
		exits = append(exits, exit)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate exits").Wrap(err)
	}
	return exits, nil
}

func scanExit(row pgx.Row) (*world.Exit, error) {
	var exit world.Exit
	var direction string
	err := row.Scan(&exit.ID, &exit.FromRoomID, &direction, &exit.ToRoomID, &exit.CreatedBy, &exit.CreatedAt)
	if err != nil {
		return nil, err
	}
	exit.Direction = world.Direction(direction)
	return &exit, nil
}
