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

// ObjectRepository implements world.ObjectRepository using PostgreSQL.
type ObjectRepository struct {
	pool poolIface
}

// NewObjectRepository creates a new ObjectRepository.
func NewObjectRepository(pool poolIface) *ObjectRepository {
	return &ObjectRepository{pool: pool}
}

var _ world.ObjectRepository = (*ObjectRepository)(nil)

const objectColumns = `vnum, keywords, short_desc, long_desc, material, item_type, wear_flags, extra_flags,
	value0, value1, value2, value3, weight, cost, level, condition, area_id`

// GetByVnum retrieves an object definition by vnum.
func (r *ObjectRepository) GetByVnum(ctx context.Context, vnum int32) (*world.ObjectDefinition, error) {
	row := q(ctx, r.pool).QueryRow(ctx,
		`SELECT `+objectColumns+` FROM objects WHERE vnum = $1`, vnum)
	def, err := scanObjectDefinition(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("vnum", vnum).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get object").With("vnum", vnum).Wrap(err)
	}
	return def, nil
}

// Insert persists an object definition. Re-imports replace the existing row.
func (r *ObjectRepository) Insert(ctx context.Context, def *world.ObjectDefinition) error {
	_, err := q(ctx, r.pool).Exec(ctx, `
		INSERT INTO objects (vnum, keywords, short_desc, long_desc, material, item_type, wear_flags, extra_flags,
		                     value0, value1, value2, value3, weight, cost, level, condition, area_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (vnum) DO UPDATE
		SET keywords = EXCLUDED.keywords, short_desc = EXCLUDED.short_desc,
		    long_desc = EXCLUDED.long_desc, material = EXCLUDED.material,
		    item_type = EXCLUDED.item_type,
		    wear_flags = EXCLUDED.wear_flags, extra_flags = EXCLUDED.extra_flags,
		    value0 = EXCLUDED.value0, value1 = EXCLUDED.value1,
		    value2 = EXCLUDED.value2, value3 = EXCLUDED.value3,
		    weight = EXCLUDED.weight, cost = EXCLUDED.cost,
		    level = EXCLUDED.level, condition = EXCLUDED.condition,
		    area_id = EXCLUDED.area_id`,
		def.Vnum, def.Keywords, def.ShortDesc, def.LongDesc, def.Material, def.ItemType, def.WearFlags, def.ExtraFlags,
		def.Value0, def.Value1, def.Value2, def.Value3, def.Weight, def.Cost, def.Level, def.Condition, def.AreaID)
	if err != nil {
		return oops.With("operation", "insert object").With("vnum", def.Vnum).Wrap(err)
	}
	return nil
}

func scanObjectDefinition(row pgx.Row) (*world.ObjectDefinition, error) {
	var def world.ObjectDefinition
	err := row.Scan(
		&def.Vnum, &def.Keywords, &def.ShortDesc, &def.LongDesc, &def.Material, &def.ItemType,
		&def.WearFlags, &def.ExtraFlags,
		&def.Value0, &def.Value1, &def.Value2, &def.Value3,
		&def.Weight, &def.Cost, &def.Level, &def.Condition, &def.AreaID,
	)
	if err != nil {
		return nil, err
	}
	return &def, nil
}
