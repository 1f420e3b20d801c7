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

// LookupRepository implements world.LookupRepository using PostgreSQL.
type LookupRepository struct {
	pool poolIface
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(pool poolIface) *LookupRepository {
	return &LookupRepository{pool: pool}
}

var _ world.LookupRepository = (*LookupRepository)(nil)

// ListClasses returns all classes ordered by ID.
func (r *LookupRepository) ListClasses(ctx context.Context) ([]world.Class, error) {
	rows, err := q(ctx, r.pool).Query(ctx, `SELECT id, name, description FROM classes ORDER BY id`)
	if err != nil {
		return nil, oops.With("operation", "list classes").Wrap(err)
	}
	defer rows.Close()

	var classes []world.Class
	for rows.Next() {
		var c world.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, oops.With("operation", "scan class row").Wrap(err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate classes").Wrap(err)
	}
	return classes, nil
}

// ListRaces returns all races ordered by ID.
func (r *LookupRepository) ListRaces(ctx context.Context) ([]world.Race, error) {
	rows, err := q(ctx, r.pool).Query(ctx, `SELECT id, name, description FROM races ORDER BY id`)
	if err != nil {
		return nil, oops.With("operation", "list races").Wrap(err)
	}
	defer rows.Close()

	var races []world.Race
	for rows.Next() {
		var race world.Race
		if err := rows.Scan(&race.ID, &race.Name, &race.Description); err != nil {
			return nil, oops.With("operation", "scan race row").Wrap(err)
		}
		races = append(races, race)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate races").Wrap(err)
	}
	return races, nil
}

// FindClass resolves a class by case-insensitive name.
func (r *LookupRepository) FindClass(ctx context.Context, name string) (*world.Class, error) {
	var c world.Class
	err := q(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, description FROM classes WHERE lower(name) = lower(trim($1))`, name).
		Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("class", name).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "find class").With("class", name).Wrap(err)
	}
	return &c, nil
}

// FindRace resolves a race by case-insensitive name.
func (r *LookupRepository) FindRace(ctx context.Context, name string) (*world.Race, error) {
	var race world.Race
	err := q(ctx, r.pool).QueryRow(ctx,
		`SELECT id, name, description FROM races WHERE lower(name) = lower(trim($1))`, name).
		Scan(&race.ID, &race.Name, &race.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("race", name).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "find race").With("race", name).Wrap(err)
	}
	return &race, nil
}

// UpsertArea records an imported area and returns its ID.
func (r *LookupRepository) UpsertArea(ctx context.Context, area *world.Area) (int32, error) {
	var id int32
	err := q(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO areas (name, file_name, min_vnum, max_vnum, rooms_count, exits_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (file_name) DO UPDATE
		SET name = EXCLUDED.name, min_vnum = EXCLUDED.min_vnum, max_vnum = EXCLUDED.max_vnum,
		    rooms_count = EXCLUDED.rooms_count, exits_count = EXCLUDED.exits_count
		RETURNING id`,
		area.Name, area.FileName, area.MinVnum, area.MaxVnum, area.RoomsCount, area.ExitsCount).Scan(&id)
	if err != nil {
		return 0, oops.With("operation", "upsert area").With("file_name", area.FileName).Wrap(err)
	}
	return id, nil
}
