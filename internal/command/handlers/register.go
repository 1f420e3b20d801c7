// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import "github.com/chatmud/chatmud/internal/command"

// Register installs every command into the registry. Direction shortcuts
// (n, south, u, ...) are aliases of move; the handler reads the invoked name
// to recover the direction.
func Register(reg *command.Registry) {
	reg.Register(command.Entry{
		Name:    "look",
		Aliases: []string{"l"},
		Handler: LookHandler,
		Help:    "Look around the current room.",
		Usage:   "look",
	})
	reg.Register(command.Entry{
		Name: "move",
		Aliases: []string{
			"go",
			"north", "n", "south", "s", "east", "e",
			"west", "w", "up", "u", "down", "d",
		},
		Handler: MoveHandler,
		Help:    "Travel through an exit.",
		Usage:   "move <direction>",
	})
	reg.Register(command.Entry{
		Name:    "character",
		Aliases: []string{"char", "c", "sheet"},
		Handler: CharacterHandler,
		Help:    "Show your character sheet.",
		Usage:   "character",
	})
	reg.Register(command.Entry{
		Name:    "create",
		Handler: CreateHandler,
		Help:    "Choose your class, race, and gender.",
		Usage:   createUsage,
	})
	reg.Register(command.Entry{
		Name:    "inventory",
		Aliases: []string{"i", "inv"},
		Handler: InventoryHandler,
		Help:    "List what you are carrying.",
		Usage:   "inventory",
	})
	reg.Register(command.Entry{
		Name:    "equipment",
		Aliases: []string{"eq"},
		Handler: EquipmentHandler,
		Help:    "List what you are wearing and wielding.",
		Usage:   "equipment",
	})
	reg.Register(command.Entry{
		Name:    "get",
		Aliases: []string{"take"},
		Handler: GetHandler,
		Help:    "Pick up an item from the room.",
		Usage:   "get <item>",
	})
	reg.Register(command.Entry{
		Name:    "drop",
		Handler: DropHandler,
		Help:    "Drop a carried item in the room.",
		Usage:   "drop <item>",
	})
	reg.Register(command.Entry{
		Name:    "wear",
		Handler: WearHandler,
		Help:    "Wear a carried item.",
		Usage:   "wear <item>",
	})
	reg.Register(command.Entry{
		Name:    "wield",
		Handler: WieldHandler,
		Help:    "Wield a carried weapon.",
		Usage:   "wield <item>",
	})
	reg.Register(command.Entry{
		Name:    "hold",
		Handler: HoldHandler,
		Help:    "Hold a carried item in your off hand.",
		Usage:   "hold <item>",
	})
	reg.Register(command.Entry{
		Name:    "remove",
		Handler: RemoveHandler,
		Help:    "Take off a worn item.",
		Usage:   "remove <item>",
	})
	reg.Register(command.Entry{
		Name:    "help",
		Aliases: []string{"h"},
		Handler: HelpHandler(reg),
		Help:    "Show this command list.",
		Usage:   "help [command]",
	})

	// Wizard commands. The router hides these from mortals entirely.
	reg.Register(command.Entry{
		Name:    "dig",
		Handler: DigHandler,
		Wizard:  true,
		Help:    "Dig a one-way exit to another channel.",
		Usage:   digUsage,
	})
	reg.Register(command.Entry{
		Name:    "teleport",
		Aliases: []string{"tp"},
		Handler: TeleportHandler,
		Wizard:  true,
		Help:    "Jump directly to a room.",
		Usage:   teleportUsage,
	})
	reg.Register(command.Entry{
		Name:    "describe",
		Aliases: []string{"desc"},
		Handler: DescribeHandler,
		Wizard:  true,
		Help:    "Rewrite the current room's description.",
		Usage:   describeUsage,
	})
}
