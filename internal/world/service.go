// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// ErrPermissionDenied is returned when an operation requires wizard level.
var ErrPermissionDenied = errors.New("permission denied")

// WizardRoster decides whether a user is pre-approved for wizard level.
// This mirrors internal/access.WizardSet to avoid coupling world to access.
type WizardRoster interface {
	Allowed(userID, name string) bool
}

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	Players    PlayerRepository
	Rooms      RoomRepository
	Exits      ExitRepository
	Objects    ObjectRepository
	Instances  InstanceRepository
	Lookups    LookupRepository
	Transactor Transactor
	Wizards    WizardRoster
}

// Service implements the game world operations on top of the repositories.
// Concurrency is resolved by the store: player upserts are single atomic
// statements, exit creation relies on the (room, direction) uniqueness
// constraint, and equipment swaps run inside one transaction.
type Service struct {
	players    PlayerRepository
	rooms      RoomRepository
	exits      ExitRepository
	objects    ObjectRepository
	instances  InstanceRepository
	lookups    LookupRepository
	transactor Transactor
	wizards    WizardRoster
}

// NewService creates a new Service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		players:    cfg.Players,
		rooms:      cfg.Rooms,
		exits:      cfg.Exits,
		objects:    cfg.Objects,
		instances:  cfg.Instances,
		lookups:    cfg.Lookups,
		transactor: cfg.Transactor,
		wizards:    cfg.Wizards,
	}
}

// GetOrCreatePlayer resolves the player for a platform user, creating a
// level-1 character on first contact. Users on the wizard roster are
// promoted to WizardLevel; the promotion never demotes an existing level.
func (s *Service) GetOrCreatePlayer(ctx context.Context, userID, name string) (*Player, error) {
	p, err := NewPlayer(userID, name)
	if err != nil {
		return nil, err
	}
	if s.wizards != nil && s.wizards.Allowed(userID, name) {
		p.Level = WizardLevel
	}
	stored, err := s.players.Upsert(ctx, p)
	if err != nil {
		return nil, oops.Wrapf(err, "upsert player %s", userID)
	}
	return stored, nil
}

// EnsureRoom resolves the room for a channel, creating it with the default
// description on first reference.
func (s *Service) EnsureRoom(ctx context.Context, channelID, name string) (*Room, error) {
	r, err := NewRoom(channelID, name)
	if err != nil {
		return nil, err
	}
	stored, err := s.rooms.Upsert(ctx, r)
	if err != nil {
		return nil, oops.Wrapf(err, "upsert room %s", channelID)
	}
	return stored, nil
}

// RoomView is everything a look renders: the room, its exits in display
// order, the players present, and the items lying about.
type RoomView struct {
	Room    *Room
	Exits   []*Exit
	Players []*Player
	Items   []*ObjectInstance
}

// Look places the player in the room (if not already there) and returns the
// full room view.
func (s *Service) Look(ctx context.Context, player *Player, room *Room) (*RoomView, error) {
	if player.CurrentRoomID == nil || *player.CurrentRoomID != room.ID {
		if err := s.players.SetRoom(ctx, player.UserID, room.ID); err != nil {
			return nil, oops.Wrapf(err, "move player %s to room %s", player.UserID, room.ID)
		}
		player.CurrentRoomID = &room.ID
	}
	return s.viewRoom(ctx, room)
}

func (s *Service) viewRoom(ctx context.Context, room *Room) (*RoomView, error) {
	exits, err := s.exits.ListFrom(ctx, room.ID)
	if err != nil {
		return nil, oops.Wrapf(err, "list exits from %s", room.ID)
	}
	players, err := s.players.ListInRoom(ctx, room.ID)
	if err != nil {
		return nil, oops.Wrapf(err, "list players in %s", room.ID)
	}
	items, err := s.instances.ListInRoom(ctx, room.ID)
	if err != nil {
		return nil, oops.Wrapf(err, "list items in %s", room.ID)
	}
	return &RoomView{Room: room, Exits: exits, Players: players, Items: items}, nil
}

// Dig creates a new exit from the wizard's current room to the target
// channel's room, creating the target room if needed. The exit is one-way;
// a return path is a second dig from the far side.
func (s *Service) Dig(ctx context.Context, wizard *Player, direction Direction, toChannelID, toName string) (*Exit, *Room, error) {
	if !wizard.IsWizard() {
		return nil, nil, ErrPermissionDenied
	}
	if !wizard.InRoom() {
		return nil, nil, oops.Code("not_in_room").Errorf("player %s has no current room", wizard.UserID)
	}
	target, err := s.EnsureRoom(ctx, toChannelID, toName)
	if err != nil {
		return nil, nil, err
	}
	exit, err := NewExit(*wizard.CurrentRoomID, direction, target.ID, wizard.UserID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.exits.Create(ctx, exit); err != nil {
		if errors.Is(err, ErrDuplicateExit) {
			return nil, nil, ErrDuplicateExit
		}
		return nil, nil, oops.Wrapf(err, "create exit %s from %s", direction, *wizard.CurrentRoomID)
	}
	return exit, target, nil
}

// MoveResult reports a completed walk: the room left behind and the view of
// the destination.
type MoveResult struct {
	From *Room
	View *RoomView
}

// Move walks the player through the exit in the given direction.
// Returns ErrNoExit when the current room has no exit that way.
func (s *Service) Move(ctx context.Context, player *Player, direction Direction) (*MoveResult, error) {
	if !player.InRoom() {
		return nil, ErrNoExit
	}
	from, err := s.rooms.Get(ctx, *player.CurrentRoomID)
	if err != nil {
		return nil, oops.Wrapf(err, "get room %s", *player.CurrentRoomID)
	}
	exit, err := s.exits.Find(ctx, from.ID, direction)
	if err != nil {
		if errors.Is(err, ErrNoExit) || errors.Is(err, ErrNotFound) {
			return nil, ErrNoExit
		}
		return nil, oops.Wrapf(err, "find exit %s from %s", direction, from.ID)
	}
	dest, err := s.rooms.Get(ctx, exit.ToRoomID)
	if err != nil {
		return nil, oops.Wrapf(err, "get room %s", exit.ToRoomID)
	}
	if err := s.players.SetRoom(ctx, player.UserID, dest.ID); err != nil {
		return nil, oops.Wrapf(err, "move player %s to room %s", player.UserID, dest.ID)
	}
	player.CurrentRoomID = &dest.ID
	view, err := s.viewRoom(ctx, dest)
	if err != nil {
		return nil, err
	}
	return &MoveResult{From: from, View: view}, nil
}

// Teleport places a wizard directly into the room, creating nothing.
// Returns ErrNotFound when the room does not exist.
func (s *Service) Teleport(ctx context.Context, wizard *Player, roomID string) (*RoomView, error) {
	if !wizard.IsWizard() {
		return nil, ErrPermissionDenied
	}
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := s.players.SetRoom(ctx, wizard.UserID, room.ID); err != nil {
		return nil, oops.Wrapf(err, "move player %s to room %s", wizard.UserID, room.ID)
	}
	wizard.CurrentRoomID = &room.ID
	return s.viewRoom(ctx, room)
}

// DescribeRoom sets the description of the wizard's current room.
func (s *Service) DescribeRoom(ctx context.Context, wizard *Player, description string) error {
	if !wizard.IsWizard() {
		return ErrPermissionDenied
	}
	if !wizard.InRoom() {
		return oops.Code("not_in_room").Errorf("player %s has no current room", wizard.UserID)
	}
	if err := ValidateDescription(description); err != nil {
		return err
	}
	if err := s.rooms.SetDescription(ctx, *wizard.CurrentRoomID, description); err != nil {
		return oops.Wrapf(err, "describe room %s", *wizard.CurrentRoomID)
	}
	return nil
}

// SetCharacter records the player's class, race, and gender choices.
// Names are resolved case-insensitively against the lookup tables.
func (s *Service) SetCharacter(ctx context.Context, player *Player, className, raceName, gender string) error {
	class, err := s.lookups.FindClass(ctx, className)
	if err != nil {
		return err
	}
	race, err := s.lookups.FindRace(ctx, raceName)
	if err != nil {
		return err
	}
	g := normalizeLower(gender)
	switch g {
	case "male", "female", "neutral":
	default:
		return &ValidationError{Field: "gender", Message: "must be male, female, or neutral"}
	}
	if err := s.players.SetCharacter(ctx, player.UserID, &class.ID, &race.ID, &g); err != nil {
		return oops.Wrapf(err, "set character for %s", player.UserID)
	}
	player.ClassID = &class.ID
	player.RaceID = &race.ID
	player.Gender = &g
	return nil
}

// Inventory returns the instances the player carries, unequipped.
func (s *Service) Inventory(ctx context.Context, playerID string) ([]*ObjectInstance, error) {
	items, err := s.instances.ListHeldBy(ctx, playerID)
	if err != nil {
		return nil, oops.Wrapf(err, "list inventory for %s", playerID)
	}
	return items, nil
}

// Equipped returns the instances the player wears, in slot display order.
func (s *Service) Equipped(ctx context.Context, playerID string) ([]*ObjectInstance, error) {
	items, err := s.instances.ListEquippedBy(ctx, playerID)
	if err != nil {
		return nil, oops.Wrapf(err, "list equipment for %s", playerID)
	}
	return items, nil
}

// FindHeld resolves a keyword against the player's inventory, returning the
// first match or ErrNotFound.
func (s *Service) FindHeld(ctx context.Context, playerID, keyword string) (*ObjectInstance, error) {
	items, err := s.Inventory(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Definition != nil && item.Definition.MatchesKeyword(keyword) {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

// Take picks up the first room item matching the keyword into the player's
// inventory. Returns the item and the room it was taken from, or ErrNotFound
// when nothing in the room matches.
func (s *Service) Take(ctx context.Context, player *Player, keyword string) (*ObjectInstance, *Room, error) {
	if !player.InRoom() {
		return nil, nil, ErrNotFound
	}
	room, err := s.rooms.Get(ctx, *player.CurrentRoomID)
	if err != nil {
		return nil, nil, oops.Wrapf(err, "get room %s", *player.CurrentRoomID)
	}
	items, err := s.instances.ListInRoom(ctx, room.ID)
	if err != nil {
		return nil, nil, oops.Wrapf(err, "list items in %s", room.ID)
	}
	for _, item := range items {
		if item.Definition != nil && item.Definition.MatchesKeyword(keyword) {
			if err := s.instances.SetCarried(ctx, item.ID, player.UserID); err != nil {
				return nil, nil, oops.Wrapf(err, "take %s", item.ID)
			}
			item.Containment = Containment{LocationType: LocationPlayer, HolderID: player.UserID}
			return item, room, nil
		}
	}
	return nil, nil, ErrNotFound
}

// Drop moves the first carried item matching the keyword onto the floor of
// the player's current room. Returns ErrNotFound when nothing carried
// matches.
func (s *Service) Drop(ctx context.Context, player *Player, keyword string) (*ObjectInstance, *Room, error) {
	if !player.InRoom() {
		return nil, nil, ErrNotFound
	}
	room, err := s.rooms.Get(ctx, *player.CurrentRoomID)
	if err != nil {
		return nil, nil, oops.Wrapf(err, "get room %s", *player.CurrentRoomID)
	}
	item, err := s.FindHeld(ctx, player.UserID, keyword)
	if err != nil {
		return nil, nil, err
	}
	if err := s.instances.SetInRoom(ctx, item.ID, room.ID); err != nil {
		return nil, nil, oops.Wrapf(err, "drop %s", item.ID)
	}
	item.Containment = Containment{LocationType: LocationRoom, HolderID: room.ID}
	return item, room, nil
}

// FindEquipped resolves a keyword against the player's worn equipment,
// returning the first match or ErrNotFound.
func (s *Service) FindEquipped(ctx context.Context, playerID, keyword string) (*ObjectInstance, error) {
	items, err := s.Equipped(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Definition != nil && item.Definition.MatchesKeyword(keyword) {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

// EquipResult reports where an item landed and what it displaced.
type EquipResult struct {
	Slot     EquipmentSlot
	Replaced *ObjectInstance // nil unless a worn item was swapped out
}

// Equip wears or wields the instance. Candidate slots come from the wear
// flags, restricted to the given slots when non-empty (wield vs wear vs
// hold). The first free candidate wins; if all candidates are occupied the
// first one's occupant is swapped back into inventory. The slot scan and
// both moves run in one transaction so concurrent equips cannot double-fill
// a slot.
func (s *Service) Equip(ctx context.Context, player *Player, inst *ObjectInstance, restrict ...EquipmentSlot) (*EquipResult, error) {
	if !inst.HeldBy(player.UserID) {
		return nil, ErrNotHeld
	}
	if inst.Definition == nil {
		return nil, ErrNotWearable
	}
	candidates := inst.Definition.WearSlots()
	if len(restrict) > 0 {
		candidates = intersectSlots(candidates, restrict)
	}
	if len(candidates) == 0 {
		return nil, ErrNotWearable
	}

	var result EquipResult
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		for _, slot := range candidates {
			_, err := s.instances.FindInSlot(ctx, player.UserID, slot)
			if errors.Is(err, ErrNotFound) {
				result.Slot = slot
				return s.instances.SetEquipped(ctx, inst.ID, player.UserID, slot)
			}
			if err != nil {
				return oops.Wrapf(err, "check slot %s", slot)
			}
		}
		// All candidates occupied; swap out the first.
		slot := candidates[0]
		occupant, err := s.instances.FindInSlot(ctx, player.UserID, slot)
		if err != nil {
			return oops.Wrapf(err, "lock slot %s", slot)
		}
		if err := s.instances.SetCarried(ctx, occupant.ID, player.UserID); err != nil {
			return oops.Wrapf(err, "unequip %s", occupant.ID)
		}
		result.Slot = slot
		result.Replaced = occupant
		return s.instances.SetEquipped(ctx, inst.ID, player.UserID, slot)
	})
	if err != nil {
		return nil, err
	}
	inst.Containment = Containment{LocationType: LocationEquipped, HolderID: player.UserID}
	inst.EquippedSlot = &result.Slot
	return &result, nil
}

// Unequip removes a worn instance back into inventory.
func (s *Service) Unequip(ctx context.Context, player *Player, inst *ObjectInstance) error {
	if !inst.IsEquipped() || inst.Containment.HolderID != player.UserID {
		return ErrNotEquipped
	}
	if err := s.instances.SetCarried(ctx, inst.ID, player.UserID); err != nil {
		return oops.Wrapf(err, "unequip %s", inst.ID)
	}
	inst.Containment = Containment{LocationType: LocationPlayer, HolderID: player.UserID}
	inst.EquippedSlot = nil
	return nil
}

// CharacterSheet gathers what the sheet command renders, including the
// full class and race lists for players still choosing.
type CharacterSheet struct {
	Player  *Player
	Class   *Class
	Race    *Race
	Classes []Class
	Races   []Race
}

// Sheet resolves the player's class and race names for display. Missing
// choices stay nil.
func (s *Service) Sheet(ctx context.Context, player *Player) (*CharacterSheet, error) {
	classes, err := s.lookups.ListClasses(ctx)
	if err != nil {
		return nil, oops.Wrapf(err, "list classes")
	}
	races, err := s.lookups.ListRaces(ctx)
	if err != nil {
		return nil, oops.Wrapf(err, "list races")
	}

	sheet := &CharacterSheet{Player: player, Classes: classes, Races: races}
	if player.ClassID != nil {
		for i := range classes {
			if classes[i].ID == *player.ClassID {
				sheet.Class = &classes[i]
				break
			}
		}
	}
	if player.RaceID != nil {
		for i := range races {
			if races[i].ID == *player.RaceID {
				sheet.Race = &races[i]
				break
			}
		}
	}
	return sheet, nil
}

func intersectSlots(candidates, allowed []EquipmentSlot) []EquipmentSlot {
	var out []EquipmentSlot
	for _, c := range candidates {
		for _, a := range allowed {
			if c == a {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
