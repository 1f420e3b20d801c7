// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

//go:build integration

package world_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/chatmud/chatmud/internal/seed"
	"github.com/chatmud/chatmud/internal/world"
	worldpg "github.com/chatmud/chatmud/internal/world/postgres"
)

const testSeed = `
format_version: "1.0.0"
area:
  name: Midgaard
  file_name: midgaard.are
  min_vnum: 3000
  max_vnum: 3099
rooms:
  - vnum: 3001
    name: The Temple Square
    description: A wide square in front of the temple.
    exits:
      - direction: north
        to_vnum: 3005
  - vnum: 3005
    name: The Temple Of Midgaard
    exits:
      - direction: south
        to_vnum: 3001
objects:
  - vnum: 3001
    keywords: helmet steel
    short_desc: a steel helmet
    item_type: armor
    wear_flags: take head
  - vnum: 3020
    keywords: sword long
    short_desc: a long sword
    item_type: weapon
    wear_flags: take wield
`

var _ = Describe("Seed loader", func() {
	var (
		ctx    context.Context
		loader *seed.Loader
	)

	BeforeEach(func() {
		ctx = context.Background()
		resetWorld(ctx, env.pool)
		loader = seed.NewLoader(env.Rooms, env.Exits, env.Objects, env.Lookups, worldpg.NewTransactor(env.pool))
	})

	It("imports area, rooms, exits, and object templates", func() {
		f, err := seed.Parse([]byte(testSeed))
		Expect(err).NotTo(HaveOccurred())
		Expect(loader.Apply(ctx, f)).To(Succeed())

		def, err := env.Objects.GetByVnum(ctx, 3001)
		Expect(err).NotTo(HaveOccurred())
		Expect(def.ShortDesc).To(Equal("a steel helmet"))
		Expect(def.AreaID).NotTo(BeNil())

		square, err := env.Rooms.Get(ctx, "vnum_3001")
		Expect(err).NotTo(HaveOccurred())
		Expect(square.Name).To(Equal("The Temple Square"))
		Expect(square.IsVirtual()).To(BeTrue())

		north, err := env.Exits.Find(ctx, "vnum_3001", world.DirectionNorth)
		Expect(err).NotTo(HaveOccurred())
		Expect(north.ToRoomID).To(Equal("vnum_3005"))

		var roomsCount, exitsCount int32
		err = env.pool.QueryRow(ctx,
			`SELECT rooms_count, exits_count FROM areas WHERE file_name = 'midgaard.are'`).
			Scan(&roomsCount, &exitsCount)
		Expect(err).NotTo(HaveOccurred())
		Expect(roomsCount).To(Equal(int32(2)))
		Expect(exitsCount).To(Equal(int32(2)))
	})

	It("lets a wizard teleport into an imported room", func() {
		f, err := seed.Parse([]byte(testSeed))
		Expect(err).NotTo(HaveOccurred())
		Expect(loader.Apply(ctx, f)).To(Succeed())

		wiz, err := env.Service.GetOrCreatePlayer(ctx, "UWIZ", "gandalf")
		Expect(err).NotTo(HaveOccurred())

		view, err := env.Service.Teleport(ctx, wiz, "vnum_3005")
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Room.Name).To(Equal("The Temple Of Midgaard"))
	})

	It("is idempotent across reruns", func() {
		f, err := seed.Parse([]byte(testSeed))
		Expect(err).NotTo(HaveOccurred())
		Expect(loader.Apply(ctx, f)).To(Succeed())
		Expect(loader.Apply(ctx, f)).To(Succeed())

		def, err := env.Objects.GetByVnum(ctx, 3020)
		Expect(err).NotTo(HaveOccurred())
		Expect(def.ShortDesc).To(Equal("a long sword"))
	})
})
