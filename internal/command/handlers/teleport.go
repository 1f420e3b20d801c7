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

const teleportUsage = "teleport <#channel>"

// TeleportHandler moves a wizard straight to an existing room, no exit
// required. Unlike dig, it never creates the destination.
func TeleportHandler(ctx context.Context, exec *command.Execution) error {
	channel := exec.Args.FirstChannel()
	var roomID string
	switch {
	case channel != nil && channel.ChannelID != "":
		roomID = channel.ChannelID
	case len(exec.Args.Words()) == 1:
		// Wizards may address virtual rooms by raw ID (e.g. vnum_3001).
		roomID = exec.Args.Words()[0]
	default:
		return command.ErrInvalidArgs("teleport", teleportUsage)
	}

	view, err := exec.Services.World.Teleport(ctx, exec.Player, roomID)
	if err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return command.WorldError("That room doesn't exist. Dig it first.", nil)
		}
		return command.WorldError("The teleport fizzles.", err)
	}

	broadcast(ctx, exec, view.Room, fmt.Sprintf("_%s appears in a shimmer of light._", exec.Player.Name))
	reply(exec, "You teleport to #%s.\n\n%s", view.Room.Name, renderRoomView(view, exec.Player))
	return nil
}
