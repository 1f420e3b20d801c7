// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

//go:build integration

package world_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/chatmud/chatmud/internal/core"
	"github.com/chatmud/chatmud/internal/world"
)

var _ = Describe("Service", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		resetWorld(ctx, env.pool)
	})

	Describe("GetOrCreatePlayer", func() {
		It("creates a level 1 player on first contact", func() {
			p, err := env.Service.GetOrCreatePlayer(ctx, "U100", "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Level).To(Equal(int32(1)))
			Expect(p.IsWizard()).To(BeFalse())
		})

		It("promotes allow-listed users to wizard level", func() {
			p, err := env.Service.GetOrCreatePlayer(ctx, "UWIZ", "gandalf")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Level).To(Equal(world.WizardLevel))
			Expect(p.IsWizard()).To(BeTrue())
		})

		It("promotes an existing mortal added to the roster later", func() {
			_, err := env.Players.Upsert(ctx, mustPlayer("UWIZ", "gandalf"))
			Expect(err).NotTo(HaveOccurred())

			p, err := env.Service.GetOrCreatePlayer(ctx, "UWIZ", "gandalf")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Level).To(Equal(world.WizardLevel))
		})

		It("is idempotent for repeated contact", func() {
			first, err := env.Service.GetOrCreatePlayer(ctx, "U100", "alice")
			Expect(err).NotTo(HaveOccurred())
			second, err := env.Service.GetOrCreatePlayer(ctx, "U100", "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.UserID).To(Equal(first.UserID))
			Expect(second.Level).To(Equal(first.Level))
		})
	})

	Describe("Dig and Move", func() {
		It("creates a one-way exit and walks it", func() {
			wiz, err := env.Service.GetOrCreatePlayer(ctx, "UWIZ", "gandalf")
			Expect(err).NotTo(HaveOccurred())
			from, err := env.Service.EnsureRoom(ctx, "C100", "lounge")
			Expect(err).NotTo(HaveOccurred())
			_, err = env.Service.Look(ctx, wiz, from)
			Expect(err).NotTo(HaveOccurred())

			exit, target, err := env.Service.Dig(ctx, wiz, world.DirectionNorth, "C200", "den")
			Expect(err).NotTo(HaveOccurred())
			Expect(exit.ToRoomID).To(Equal("C200"))
			Expect(target.Description).To(Equal(world.DefaultRoomDescription))

			result, err := env.Service.Move(ctx, wiz, world.DirectionNorth)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.From.ID).To(Equal("C100"))
			Expect(result.View.Room.ID).To(Equal("C200"))

			// One-way: walking back must fail.
			_, err = env.Service.Move(ctx, wiz, world.DirectionSouth)
			Expect(err).To(MatchError(world.ErrNoExit))
		})

		It("rejects a duplicate exit via the uniqueness constraint", func() {
			wiz, err := env.Service.GetOrCreatePlayer(ctx, "UWIZ", "gandalf")
			Expect(err).NotTo(HaveOccurred())
			from, err := env.Service.EnsureRoom(ctx, "C100", "lounge")
			Expect(err).NotTo(HaveOccurred())
			_, err = env.Service.Look(ctx, wiz, from)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = env.Service.Dig(ctx, wiz, world.DirectionEast, "C200", "den")
			Expect(err).NotTo(HaveOccurred())
			_, _, err = env.Service.Dig(ctx, wiz, world.DirectionEast, "C300", "attic")
			Expect(err).To(MatchError(world.ErrDuplicateExit))
		})
	})

	Describe("Equipment", func() {
		var player *world.Player

		BeforeEach(func() {
			var err error
			player, err = env.Service.GetOrCreatePlayer(ctx, "U100", "alice")
			Expect(err).NotTo(HaveOccurred())
		})

		seedObject := func(vnum int32, keywords, shortDesc, wearFlags string) {
			Expect(env.Objects.Insert(ctx, &world.ObjectDefinition{
				Vnum:      vnum,
				Keywords:  keywords,
				ShortDesc: shortDesc,
				ItemType:  "armor",
				WearFlags: wearFlags,
				Condition: 100,
			})).To(Succeed())
		}

		giveItem := func(vnum int32) *world.ObjectInstance {
			inst, err := world.NewObjectInstance(core.NewULID().String(), vnum, world.Containment{
				LocationType: world.LocationPlayer,
				HolderID:     player.UserID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(env.Instances.Create(ctx, inst)).To(Succeed())
			got, err := env.Instances.Get(ctx, inst.ID)
			Expect(err).NotTo(HaveOccurred())
			return got
		}

		It("equips into the first free candidate slot", func() {
			seedObject(3040, "ring copper", "a copper ring", "take finger")
			first := giveItem(3040)
			second := giveItem(3040)

			res, err := env.Service.Equip(ctx, player, first)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Slot).To(Equal(world.SlotFingerL))

			res, err = env.Service.Equip(ctx, player, second)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Slot).To(Equal(world.SlotFingerR))
			Expect(res.Replaced).To(BeNil())
		})

		It("swaps the occupant when every candidate slot is full", func() {
			seedObject(3001, "helmet steel", "a steel helmet", "take head")
			seedObject(3002, "cap leather", "a leather cap", "take head")
			helmet := giveItem(3001)
			cap := giveItem(3002)

			_, err := env.Service.Equip(ctx, player, helmet)
			Expect(err).NotTo(HaveOccurred())

			res, err := env.Service.Equip(ctx, player, cap)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Slot).To(Equal(world.SlotHead))
			Expect(res.Replaced).NotTo(BeNil())
			Expect(res.Replaced.ID).To(Equal(helmet.ID))

			worn, err := env.Instances.ListEquippedBy(ctx, player.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(worn).To(HaveLen(1))
			Expect(worn[0].ID).To(Equal(cap.ID))

			held, err := env.Instances.ListHeldBy(ctx, player.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(held).To(HaveLen(1))
			Expect(held[0].ID).To(Equal(helmet.ID))
		})

		It("enforces the one-instance-per-slot constraint in the schema", func() {
			seedObject(3001, "helmet steel", "a steel helmet", "take head")
			helmet := giveItem(3001)
			cap := giveItem(3001)

			Expect(env.Instances.SetEquipped(ctx, helmet.ID, player.UserID, world.SlotHead)).To(Succeed())
			err := env.Instances.SetEquipped(ctx, cap.ID, player.UserID, world.SlotHead)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SetCharacter", func() {
		It("resolves class and race by case-insensitive name", func() {
			player, err := env.Service.GetOrCreatePlayer(ctx, "U100", "alice")
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Service.SetCharacter(ctx, player, "WARRIOR", "human", "female")).To(Succeed())

			sheet, err := env.Service.Sheet(ctx, player)
			Expect(err).NotTo(HaveOccurred())
			Expect(sheet.Class.Name).To(Equal("Warrior"))
			Expect(sheet.Race.Name).To(Equal("Human"))
		})
	})
})

func mustPlayer(userID, name string) *world.Player {
	p, err := world.NewPlayer(userID, name)
	Expect(err).NotTo(HaveOccurred())
	return p
}
