// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/world"
)

const digUsage = "dig <direction> <#channel>"

// DigHandler creates a one-way exit from the wizard's current room to the
// referenced channel's room, creating that room if needed. A return path
// needs a second dig from the far side.
func DigHandler(ctx context.Context, exec *command.Execution) error {
	words := exec.Args.Words()
	channel := exec.Args.FirstChannel()
	if len(words) == 0 || channel == nil {
		return command.ErrInvalidArgs("dig", digUsage)
	}

	direction, err := world.ParseDirection(words[0])
	if err != nil {
		return command.WorldError(
			fmt.Sprintf("Invalid direction: `%s`. Valid directions: north, south, east, west, up, down", words[0]),
			nil)
	}

	if channel.ChannelID == "" {
		// Bare #name references carry no ID; the client only expands real
		// channel mentions.
		return command.WorldError(
			fmt.Sprintf("I can't resolve #%s. Pick the channel from the mention autocomplete so it expands.", channel.Text),
			nil)
	}

	if !exec.Player.InRoom() {
		return command.WorldError("You need to be in a room to dig. Use `look` in a channel first!", nil)
	}

	exit, target, err := exec.Services.World.Dig(ctx, exec.Player, direction, channel.ChannelID, channel.Text)
	if err != nil {
		if errors.Is(err, world.ErrDuplicateExit) {
			return command.WorldError(
				fmt.Sprintf("An exit to the %s already exists from here.", direction), nil)
		}
		return command.WorldError("The ground refuses to yield.", err)
	}

	reply(exec, "You dig an exit to the %s, leading to #%s.", exit.Direction, target.Name)
	broadcast(ctx, exec, exec.Room,
		fmt.Sprintf("_%s digs an exit to the %s, revealing a passage to <#%s>._",
			exec.Player.Name, exit.Direction, target.ID))
	return nil
}
