// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package seed

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/samber/oops"

	"github.com/chatmud/chatmud/internal/world"
)

// SeedActor is recorded as the creator of exits made by an import.
const SeedActor = "seed"

// Loader imports parsed seed files into the store. Every step is idempotent,
// so re-running a seed is safe.
type Loader struct {
	rooms      world.RoomRepository
	exits      world.ExitRepository
	objects    world.ObjectRepository
	lookups    world.LookupRepository
	transactor world.Transactor
}

// NewLoader creates a seed loader.
func NewLoader(rooms world.RoomRepository, exits world.ExitRepository, objects world.ObjectRepository, lookups world.LookupRepository, transactor world.Transactor) *Loader {
	return &Loader{rooms: rooms, exits: exits, objects: objects, lookups: lookups, transactor: transactor}
}

// LoadFile parses and imports the seed file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.In("seed").Code("SEED_READ_FAILED").With("path", path).Wrap(err)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	if err := l.Apply(ctx, f); err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return f, nil
}

// Apply imports a parsed file in one transaction: virtual rooms first, then
// the exits linking them, then every object definition stamped with the area
// ID. The area row records how many rooms and exits the import produced.
func (l *Loader) Apply(ctx context.Context, f *File) error {
	errb := oops.In("seed").With("area", f.Area.FileName)

	return l.transactor.WithinTx(ctx, func(ctx context.Context) error {
		var exitsCount int32
		for _, rs := range f.Rooms {
			room, err := world.NewVirtualRoom(rs.Vnum, rs.Name, rs.Description)
			if err != nil {
				return errb.Code("SEED_ROOM_INVALID").With("vnum", rs.Vnum).Wrap(err)
			}
			if _, err := l.rooms.Upsert(ctx, room); err != nil {
				return errb.Code("SEED_ROOM_UPSERT_FAILED").With("vnum", rs.Vnum).Wrap(err)
			}
		}
		for _, rs := range f.Rooms {
			for _, es := range rs.Exits {
				direction, err := world.ParseDirection(es.Direction)
				if err != nil {
					return errb.Code("SEED_EXIT_INVALID").With("from_vnum", rs.Vnum).Wrap(err)
				}
				exit, err := world.NewExit(world.VirtualRoomID(rs.Vnum), direction, world.VirtualRoomID(es.ToVnum), SeedActor)
				if err != nil {
					return errb.Code("SEED_EXIT_INVALID").With("from_vnum", rs.Vnum).Wrap(err)
				}
				err = l.exits.Create(ctx, exit)
				if err != nil && !errors.Is(err, world.ErrDuplicateExit) {
					return errb.Code("SEED_EXIT_CREATE_FAILED").With("from_vnum", rs.Vnum).Wrap(err)
				}
				exitsCount++
			}
		}

		areaID, err := l.lookups.UpsertArea(ctx, &world.Area{
			Name:       f.Area.Name,
			FileName:   f.Area.FileName,
			MinVnum:    f.Area.MinVnum,
			MaxVnum:    f.Area.MaxVnum,
			RoomsCount: int32(len(f.Rooms)),
			ExitsCount: exitsCount,
		})
		if err != nil {
			return errb.Code("SEED_AREA_UPSERT_FAILED").Wrap(err)
		}

		for _, obj := range f.Objects {
			def := &world.ObjectDefinition{
				Vnum:       obj.Vnum,
				Keywords:   obj.Keywords,
				ShortDesc:  obj.ShortDesc,
				LongDesc:   obj.LongDesc,
				Material:   obj.Material,
				ItemType:   obj.ItemType,
				WearFlags:  obj.WearFlags,
				ExtraFlags: obj.ExtraFlags,
				Value0:     obj.Value0,
				Value1:     obj.Value1,
				Value2:     obj.Value2,
				Value3:     obj.Value3,
				Weight:     obj.Weight,
				Cost:       obj.Cost,
				Level:      obj.Level,
				Condition:  100,
				AreaID:     &areaID,
			}
			if err := l.objects.Insert(ctx, def); err != nil {
				return errb.Code("SEED_OBJECT_INSERT_FAILED").With("vnum", obj.Vnum).Wrap(err)
			}
		}

		slog.InfoContext(ctx, "seed applied",
			"area", f.Area.FileName,
			"rooms", len(f.Rooms),
			"exits", exitsCount,
			"objects", len(f.Objects))
		return nil
	})
}
