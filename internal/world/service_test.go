// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fakes. Not safe for concurrent use; tests are
// sequential.

type fakePlayers struct {
	byID map[string]*Player
}

func newFakePlayers() *fakePlayers { return &fakePlayers{byID: map[string]*Player{}} }

func (f *fakePlayers) Get(_ context.Context, userID string) (*Player, error) {
	p, ok := f.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayers) Upsert(_ context.Context, p *Player) (*Player, error) {
	if existing, ok := f.byID[p.UserID]; ok {
		if p.Level > existing.Level {
			existing.Level = p.Level
		}
		cp := *existing
		return &cp, nil
	}
	cp := *p
	f.byID[p.UserID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePlayers) SetRoom(_ context.Context, userID, roomID string) error {
	p, ok := f.byID[userID]
	if !ok {
		return ErrNotFound
	}
	p.CurrentRoomID = &roomID
	return nil
}

func (f *fakePlayers) SetCharacter(_ context.Context, userID string, classID, raceID *int32, gender *string) error {
	p, ok := f.byID[userID]
	if !ok {
		return ErrNotFound
	}
	p.ClassID, p.RaceID, p.Gender = classID, raceID, gender
	return nil
}

func (f *fakePlayers) ListInRoom(_ context.Context, roomID string) ([]*Player, error) {
	var out []*Player
	for _, p := range f.byID {
		if p.CurrentRoomID != nil && *p.CurrentRoomID == roomID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeRooms struct {
	byID map[string]*Room
}

func newFakeRooms() *fakeRooms { return &fakeRooms{byID: map[string]*Room{}} }

func (f *fakeRooms) Get(_ context.Context, id string) (*Room, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRooms) Upsert(_ context.Context, r *Room) (*Room, error) {
	if existing, ok := f.byID[r.ID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *r
	f.byID[r.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRooms) SetDescription(_ context.Context, id, description string) error {
	r, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	r.Description = description
	return nil
}

type fakeExits struct {
	exits  []*Exit
	nextID int64
}

func (f *fakeExits) Create(_ context.Context, exit *Exit) error {
	for _, e := range f.exits {
		if e.FromRoomID == exit.FromRoomID && e.Direction == exit.Direction {
			return ErrDuplicateExit
		}
	}
	f.nextID++
	exit.ID = f.nextID
	cp := *exit
	f.exits = append(f.exits, &cp)
	return nil
}

func (f *fakeExits) Find(_ context.Context, fromRoomID string, direction Direction) (*Exit, error) {
	for _, e := range f.exits {
		if e.FromRoomID == fromRoomID && e.Direction == direction {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNoExit
}

func (f *fakeExits) ListFrom(_ context.Context, fromRoomID string) ([]*Exit, error) {
	var out []*Exit
	for _, e := range f.exits {
		if e.FromRoomID == fromRoomID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Direction.Rank() < out[j].Direction.Rank() })
	return out, nil
}

type fakeInstances struct {
	byID map[string]*ObjectInstance
}

func newFakeInstances() *fakeInstances {
	return &fakeInstances{byID: map[string]*ObjectInstance{}}
}

func (f *fakeInstances) Get(_ context.Context, id string) (*ObjectInstance, error) {
	inst, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inst
	return &cp, nil
}

func (f *fakeInstances) Create(_ context.Context, inst *ObjectInstance) error {
	cp := *inst
	f.byID[inst.ID] = &cp
	return nil
}

func (f *fakeInstances) ListHeldBy(_ context.Context, playerID string) ([]*ObjectInstance, error) {
	var out []*ObjectInstance
	for _, inst := range f.byID {
		if inst.HeldBy(playerID) {
			cp := *inst
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInstances) ListEquippedBy(_ context.Context, playerID string) ([]*ObjectInstance, error) {
	var out []*ObjectInstance
	for _, inst := range f.byID {
		if inst.IsEquipped() && inst.Containment.HolderID == playerID {
			cp := *inst
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EquippedSlot.Rank() < out[j].EquippedSlot.Rank()
	})
	return out, nil
}

func (f *fakeInstances) ListInRoom(_ context.Context, roomID string) ([]*ObjectInstance, error) {
	var out []*ObjectInstance
	for _, inst := range f.byID {
		if inst.Containment.LocationType == LocationRoom && inst.Containment.HolderID == roomID {
			cp := *inst
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeInstances) FindInSlot(_ context.Context, playerID string, slot EquipmentSlot) (*ObjectInstance, error) {
	for _, inst := range f.byID {
		if inst.IsEquipped() && inst.Containment.HolderID == playerID && *inst.EquippedSlot == slot {
			cp := *inst
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeInstances) SetEquipped(_ context.Context, id, playerID string, slot EquipmentSlot) error {
	inst, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	s := slot
	inst.Containment = Containment{LocationType: LocationEquipped, HolderID: playerID}
	inst.EquippedSlot = &s
	return nil
}

func (f *fakeInstances) SetCarried(_ context.Context, id, playerID string) error {
	inst, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	inst.Containment = Containment{LocationType: LocationPlayer, HolderID: playerID}
	inst.EquippedSlot = nil
	return nil
}

func (f *fakeInstances) SetInRoom(_ context.Context, id, roomID string) error {
	inst, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	inst.Containment = Containment{LocationType: LocationRoom, HolderID: roomID}
	inst.EquippedSlot = nil
	return nil
}

type fakeLookups struct {
	classes []Class
	races   []Race
}

func (f *fakeLookups) ListClasses(_ context.Context) ([]Class, error) { return f.classes, nil }
func (f *fakeLookups) ListRaces(_ context.Context) ([]Race, error)   { return f.races, nil }

func (f *fakeLookups) FindClass(_ context.Context, name string) (*Class, error) {
	for i := range f.classes {
		if strings.EqualFold(f.classes[i].Name, strings.TrimSpace(name)) {
			return &f.classes[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeLookups) FindRace(_ context.Context, name string) (*Race, error) {
	for i := range f.races {
		if strings.EqualFold(f.races[i].Name, strings.TrimSpace(name)) {
			return &f.races[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeLookups) UpsertArea(_ context.Context, _ *Area) (int32, error) { return 1, nil }

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type rosterFunc func(userID, name string) bool

func (f rosterFunc) Allowed(userID, name string) bool { return f(userID, name) }

type fixture struct {
	svc       *Service
	players   *fakePlayers
	rooms     *fakeRooms
	exits     *fakeExits
	instances *fakeInstances
	lookups   *fakeLookups
}

func newFixture(roster WizardRoster) *fixture {
	f := &fixture{
		players:   newFakePlayers(),
		rooms:     newFakeRooms(),
		exits:     &fakeExits{},
		instances: newFakeInstances(),
		lookups: &fakeLookups{
			classes: []Class{{ID: 1, Name: "Warrior"}, {ID: 2, Name: "Mage"}},
			races:   []Race{{ID: 1, Name: "Human"}, {ID: 2, Name: "Elf"}},
		},
	}
	f.svc = NewService(ServiceConfig{
		Players:    f.players,
		Rooms:      f.rooms,
		Exits:      f.exits,
		Instances:  f.instances,
		Lookups:    f.lookups,
		Transactor: fakeTx{},
		Wizards:    roster,
	})
	return f
}

func (f *fixture) wizardIn(t *testing.T, roomID string) *Player {
	t.Helper()
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "UWIZ", "Gandalf")
	require.NoError(t, err)
	room, err := f.svc.EnsureRoom(ctx, roomID, "lobby")
	require.NoError(t, err)
	_, err = f.svc.Look(ctx, p, room)
	require.NoError(t, err)
	return p
}

func allowAll(_, _ string) bool { return true }
func denyAll(_, _ string) bool  { return false }

func TestGetOrCreatePlayer(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)
	assert.Equal(t, int32(1), p.Level)
	assert.False(t, p.IsWizard())

	// Second call returns the same character.
	again, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)
	assert.Equal(t, p.UserID, again.UserID)
	assert.Len(t, f.players.byID, 1)
}

func TestGetOrCreatePlayer_WizardPromotion(t *testing.T) {
	f := newFixture(rosterFunc(allowAll))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Gandalf")
	require.NoError(t, err)
	assert.Equal(t, int32(WizardLevel), p.Level)
	assert.True(t, p.IsWizard())
}

func TestGetOrCreatePlayer_PromotionOnReturn(t *testing.T) {
	roster := denyAll
	f := newFixture(rosterFunc(func(u, n string) bool { return roster(u, n) }))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Radagast")
	require.NoError(t, err)
	assert.False(t, p.IsWizard())

	// Added to the roster between sessions; next contact promotes.
	roster = allowAll
	p, err = f.svc.GetOrCreatePlayer(ctx, "U1", "Radagast")
	require.NoError(t, err)
	assert.True(t, p.IsWizard())
}

func TestEnsureRoom_DefaultDescription(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()

	room, err := f.svc.EnsureRoom(ctx, "C1", "general")
	require.NoError(t, err)
	assert.Equal(t, DefaultRoomDescription, room.Description)
	require.NotNil(t, room.AttachedChannelID)
	assert.Equal(t, "C1", *room.AttachedChannelID)
}

func TestLook_PlacesPlayer(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)
	room, err := f.svc.EnsureRoom(ctx, "C1", "general")
	require.NoError(t, err)

	view, err := f.svc.Look(ctx, p, room)
	require.NoError(t, err)
	require.NotNil(t, p.CurrentRoomID)
	assert.Equal(t, "C1", *p.CurrentRoomID)
	require.Len(t, view.Players, 1)
	assert.Equal(t, "Frodo", view.Players[0].Name)
	assert.Empty(t, view.Exits)
}

func TestDig(t *testing.T) {
	f := newFixture(rosterFunc(allowAll))
	wiz := f.wizardIn(t, "C1")
	ctx := context.Background()

	exit, target, err := f.svc.Dig(ctx, wiz, DirectionNorth, "C2", "library")
	require.NoError(t, err)
	assert.Equal(t, "C1", exit.FromRoomID)
	assert.Equal(t, "C2", exit.ToRoomID)
	assert.Equal(t, "library", target.Name)

	// Same direction again is rejected; a different direction is fine.
	_, _, err = f.svc.Dig(ctx, wiz, DirectionNorth, "C3", "vault")
	assert.ErrorIs(t, err, ErrDuplicateExit)
	_, _, err = f.svc.Dig(ctx, wiz, DirectionSouth, "C3", "vault")
	assert.NoError(t, err)
}

func TestDig_RequiresWizard(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)
	_, _, err = f.svc.Dig(ctx, p, DirectionNorth, "C2", "library")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestMove(t *testing.T) {
	f := newFixture(rosterFunc(allowAll))
	wiz := f.wizardIn(t, "C1")
	ctx := context.Background()

	_, _, err := f.svc.Dig(ctx, wiz, DirectionNorth, "C2", "library")
	require.NoError(t, err)

	result, err := f.svc.Move(ctx, wiz, DirectionNorth)
	require.NoError(t, err)
	assert.Equal(t, "C1", result.From.ID)
	assert.Equal(t, "C2", result.View.Room.ID)
	assert.Equal(t, "C2", *wiz.CurrentRoomID)

	// One-way: no return exit was created.
	_, err = f.svc.Move(ctx, wiz, DirectionSouth)
	assert.ErrorIs(t, err, ErrNoExit)
}

func TestMove_NoRoomYet(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)
	_, err = f.svc.Move(ctx, p, DirectionNorth)
	assert.ErrorIs(t, err, ErrNoExit)
}

func TestTeleport(t *testing.T) {
	f := newFixture(rosterFunc(allowAll))
	wiz := f.wizardIn(t, "C1")
	ctx := context.Background()

	_, err := f.svc.EnsureRoom(ctx, "C9", "throne")
	require.NoError(t, err)

	view, err := f.svc.Teleport(ctx, wiz, "C9")
	require.NoError(t, err)
	assert.Equal(t, "C9", view.Room.ID)

	_, err = f.svc.Teleport(ctx, wiz, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDescribeRoom(t *testing.T) {
	f := newFixture(rosterFunc(allowAll))
	wiz := f.wizardIn(t, "C1")
	ctx := context.Background()

	require.NoError(t, f.svc.DescribeRoom(ctx, wiz, "A vaulted marble hall."))
	room, err := f.rooms.Get(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "A vaulted marble hall.", room.Description)

	var verr *ValidationError
	err = f.svc.DescribeRoom(ctx, wiz, "   ")
	assert.ErrorAs(t, err, &verr)
}

func TestSetCharacter(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()

	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)
	assert.False(t, p.CharacterComplete())

	require.NoError(t, f.svc.SetCharacter(ctx, p, "warrior", "ELF", "Male"))
	assert.True(t, p.CharacterComplete())
	assert.Equal(t, int32(1), *p.ClassID)
	assert.Equal(t, int32(2), *p.RaceID)
	assert.Equal(t, "male", *p.Gender)

	err = f.svc.SetCharacter(ctx, p, "warrior", "elf", "robot")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	err = f.svc.SetCharacter(ctx, p, "bard", "elf", "male")
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedHeldItem(t *testing.T, f *fixture, id, playerID, keywords, wearFlags string) *ObjectInstance {
	t.Helper()
	inst, err := NewObjectInstance(id, 3001, Containment{LocationType: LocationPlayer, HolderID: playerID})
	require.NoError(t, err)
	inst.Definition = &ObjectDefinition{
		Vnum:      3001,
		Keywords:  keywords,
		ShortDesc: "a " + strings.Fields(keywords)[0],
		WearFlags: wearFlags,
	}
	require.NoError(t, f.instances.Create(context.Background(), inst))
	return inst
}

func TestEquip_FirstFreeSlot(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	ring1 := seedHeldItem(t, f, "01A", "U1", "ring gold", "take finger")
	ring2 := seedHeldItem(t, f, "01B", "U1", "ring silver", "take finger")

	res, err := f.svc.Equip(ctx, p, ring1)
	require.NoError(t, err)
	assert.Equal(t, SlotFingerL, res.Slot)
	assert.Nil(t, res.Replaced)

	res, err = f.svc.Equip(ctx, p, ring2)
	require.NoError(t, err)
	assert.Equal(t, SlotFingerR, res.Slot)
	assert.Nil(t, res.Replaced)
}

func TestEquip_SwapsWhenFull(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	old := seedHeldItem(t, f, "01A", "U1", "sword rusty", "take wield")
	fresh := seedHeldItem(t, f, "01B", "U1", "sword shiny", "take wield")

	_, err = f.svc.Equip(ctx, p, old)
	require.NoError(t, err)

	res, err := f.svc.Equip(ctx, p, fresh)
	require.NoError(t, err)
	assert.Equal(t, SlotWield, res.Slot)
	require.NotNil(t, res.Replaced)
	assert.Equal(t, "01A", res.Replaced.ID)

	// The displaced sword is back in inventory.
	held, err := f.svc.Inventory(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, held, 1)
	assert.Equal(t, "01A", held[0].ID)
}

func TestEquip_NotWearable(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	rock := seedHeldItem(t, f, "01A", "U1", "rock", "take")
	_, err = f.svc.Equip(ctx, p, rock)
	assert.ErrorIs(t, err, ErrNotWearable)
}

func TestEquip_RestrictToWield(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	torch := seedHeldItem(t, f, "01A", "U1", "torch", "take hold wield")
	res, err := f.svc.Equip(ctx, p, torch, SlotWield)
	require.NoError(t, err)
	assert.Equal(t, SlotWield, res.Slot)

	dagger := seedHeldItem(t, f, "01B", "U1", "dagger", "take hold")
	_, err = f.svc.Equip(ctx, p, dagger, SlotWield)
	assert.ErrorIs(t, err, ErrNotWearable)
}

func TestUnequip(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	hat := seedHeldItem(t, f, "01A", "U1", "hat", "take head")
	_, err = f.svc.Equip(ctx, p, hat)
	require.NoError(t, err)

	require.NoError(t, f.svc.Unequip(ctx, p, hat))
	assert.False(t, hat.IsEquipped())

	err = f.svc.Unequip(ctx, p, hat)
	assert.ErrorIs(t, err, ErrNotEquipped)
}

func TestFindHeld(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	_, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	seedHeldItem(t, f, "01A", "U1", "sword long", "take wield")

	inst, err := f.svc.FindHeld(ctx, "U1", "sw")
	require.NoError(t, err)
	assert.Equal(t, "01A", inst.ID)

	_, err = f.svc.FindHeld(ctx, "U1", "shield")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSheet(t *testing.T) {
	f := newFixture(rosterFunc(denyAll))
	ctx := context.Background()
	p, err := f.svc.GetOrCreatePlayer(ctx, "U1", "Frodo")
	require.NoError(t, err)

	sheet, err := f.svc.Sheet(ctx, p)
	require.NoError(t, err)
	assert.Nil(t, sheet.Class)
	assert.Nil(t, sheet.Race)

	require.NoError(t, f.svc.SetCharacter(ctx, p, "mage", "human", "neutral"))
	sheet, err = f.svc.Sheet(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, sheet.Class)
	assert.Equal(t, "Mage", sheet.Class.Name)
	require.NotNil(t, sheet.Race)
	assert.Equal(t, "Human", sheet.Race.Name)
}
