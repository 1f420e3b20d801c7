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

// InstanceRepository implements world.InstanceRepository using PostgreSQL.
// List and Get queries join the object template so callers get descriptions
// and wear flags without a second round trip.
type InstanceRepository struct {
	pool poolIface
}

// NewInstanceRepository creates a new InstanceRepository.
func NewInstanceRepository(pool poolIface) *InstanceRepository {
	return &InstanceRepository{pool: pool}
}

var _ world.InstanceRepository = (*InstanceRepository)(nil)

const instanceSelect = `
	SELECT i.id, i.vnum, i.location_type, i.location_id, i.equipped_slot,
	       i.condition, i.timer, i.created_at, i.updated_at,
	       o.vnum, o.keywords, o.short_desc, o.long_desc, o.material, o.item_type, o.wear_flags, o.extra_flags,
	       o.value0, o.value1, o.value2, o.value3, o.weight, o.cost, o.level, o.condition, o.area_id
	FROM object_instances i
	JOIN objects o ON o.vnum = i.vnum`

// Get retrieves an instance by ID with its definition joined.
func (r *InstanceRepository) Get(ctx context.Context, id string) (*world.ObjectInstance, error) {
	row := q(ctx, r.pool).QueryRow(ctx, instanceSelect+` WHERE i.id = $1`, id)
	inst, err := scanInstance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("instance_id", id).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get instance").With("instance_id", id).Wrap(err)
	}
	return inst, nil
}

// Create persists a new instance.
func (r *InstanceRepository) Create(ctx context.Context, inst *world.ObjectInstance) error {
	_, err := q(ctx, r.pool).Exec(ctx, `
		INSERT INTO object_instances (id, vnum, location_type, location_id, equipped_slot,
		                              condition, timer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		inst.ID, inst.Vnum,
		inst.Containment.LocationType.String(), inst.Containment.HolderID,
		slotPtrToString(inst.EquippedSlot),
		inst.Condition, inst.Timer, inst.CreatedAt)
	if err != nil {
		return oops.With("operation", "create instance").With("instance_id", inst.ID).Wrap(err)
	}
	return nil
}

// ListHeldBy returns instances carried (not equipped) by a player.
func (r *InstanceRepository) ListHeldBy(ctx context.Context, playerID string) ([]*world.ObjectInstance, error) {
	return r.list(ctx,
		instanceSelect+` WHERE i.location_type = 'player' AND i.location_id = $1 ORDER BY i.id`,
		playerID)
}

// ListEquippedBy returns instances equipped by a player in slot display order.
func (r *InstanceRepository) ListEquippedBy(ctx context.Context, playerID string) ([]*world.ObjectInstance, error) {
	return r.list(ctx,
		instanceSelect+` WHERE i.location_type = 'equipped' AND i.location_id = $1
		ORDER BY array_position(ARRAY['light','finger_l','finger_r','neck_1','neck_2','body','head',
		                              'legs','feet','hands','arms','shield','about','waist',
		                              'wrist_l','wrist_r','wield','hold','float'], i.equipped_slot)`,
		playerID)
}

// ListInRoom returns instances lying in a room.
func (r *InstanceRepository) ListInRoom(ctx context.Context, roomID string) ([]*world.ObjectInstance, error) {
	return r.list(ctx,
		instanceSelect+` WHERE i.location_type = 'room' AND i.location_id = $1 ORDER BY i.id`,
		roomID)
}

// FindInSlot returns the instance equipped in the player's slot, locking the
// instance row for the duration of the surrounding transaction.
func (r *InstanceRepository) FindInSlot(ctx context.Context, playerID string, slot world.EquipmentSlot) (*world.ObjectInstance, error) {
	row := q(ctx, r.pool).QueryRow(ctx, `
		SELECT i.id, i.vnum, i.location_type, i.location_id, i.equipped_slot,
		       i.condition, i.timer, i.created_at, i.updated_at,
		       o.vnum, o.keywords, o.short_desc, o.long_desc, o.material, o.item_type, o.wear_flags, o.extra_flags,
		       o.value0, o.value1, o.value2, o.value3, o.weight, o.cost, o.level, o.condition, o.area_id
		FROM object_instances i
		JOIN objects o ON o.vnum = i.vnum
		WHERE i.location_type = 'equipped' AND i.location_id = $1 AND i.equipped_slot = $2
		FOR UPDATE OF i`,
		playerID, slot.String())
	inst, err := scanInstance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.With("player_id", playerID).With("slot", slot.String()).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "find in slot").With("slot", slot.String()).Wrap(err)
	}
	return inst, nil
}

// SetEquipped moves the instance into the player's slot.
func (r *InstanceRepository) SetEquipped(ctx context.Context, id, playerID string, slot world.EquipmentSlot) error {
	return r.relocate(ctx, id, "equipped", playerID, slot.String())
}

// SetCarried moves the instance into the player's inventory.
func (r *InstanceRepository) SetCarried(ctx context.Context, id, playerID string) error {
	return r.relocate(ctx, id, "player", playerID, nil)
}

// SetInRoom drops the instance into a room.
func (r *InstanceRepository) SetInRoom(ctx context.Context, id, roomID string) error {
	return r.relocate(ctx, id, "room", roomID, nil)
}

func (r *InstanceRepository) relocate(ctx context.Context, id, locationType, holderID string, slot any) error {
	tag, err := q(ctx, r.pool).Exec(ctx, `
		UPDATE object_instances
		SET location_type = $2, location_id = $3, equipped_slot = $4, updated_at = now()
		WHERE id = $1`,
		id, locationType, holderID, slot)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.With("instance_id", id).With("slot", slot).Wrap(world.ErrSlotConflict)
		}
		return oops.With("operation", "relocate instance").With("instance_id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.With("instance_id", id).Wrap(world.ErrNotFound)
	}
	return nil
}

func (r *InstanceRepository) list(ctx context.Context, sql string, args ...any) ([]*world.ObjectInstance, error) {
	rows, err := q(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.With("operation", "list instances").Wrap(err)
	}
	defer rows.Close()

	var instances []*world.ObjectInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, oops.With("operation", "scan instance row").Wrap(err)
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate instances").Wrap(err)
	}
	return instances, nil
}

func scanInstance(row pgx.Row) (*world.ObjectInstance, error) {
	var inst world.ObjectInstance
	var def world.ObjectDefinition
	var locationType string
	var slot *string
	err := row.Scan(
		&inst.ID, &inst.Vnum, &locationType, &inst.Containment.HolderID, &slot,
		&inst.Condition, &inst.Timer, &inst.CreatedAt, &inst.UpdatedAt,
		&def.Vnum, &def.Keywords, &def.ShortDesc, &def.LongDesc, &def.Material, &def.ItemType,
		&def.WearFlags, &def.ExtraFlags,
		&def.Value0, &def.Value1, &def.Value2, &def.Value3,
		&def.Weight, &def.Cost, &def.Level, &def.Condition, &def.AreaID,
	)
	if err != nil {
		return nil, err
	}
	inst.Containment.LocationType = world.LocationType(locationType)
	if slot != nil {
		s := world.EquipmentSlot(*slot)
		inst.EquippedSlot = &s
	}
	inst.Definition = &def
	return &inst, nil
}

func slotPtrToString(slot *world.EquipmentSlot) *string {
	if slot == nil {
		return nil
	}
	s := slot.String()
	return &s
}
