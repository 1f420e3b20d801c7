// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"fmt"

	"github.com/chatmud/chatmud/internal/command"
)

// LookHandler places the player in the invoking channel's room and shows
// the room: description, exits, players present, and items. Everyone else
// in the channel sees the player looking.
func LookHandler(ctx context.Context, exec *command.Execution) error {
	if !exec.InRoom() {
		reply(exec, "You can only look while in a channel. Join one and try again.")
		return nil
	}

	view, err := exec.Services.World.Look(ctx, exec.Player, exec.Room)
	if err != nil {
		return command.WorldError("You can't see anything here.", err)
	}

	reply(exec, "%s", renderRoomView(view, exec.Player))
	broadcast(ctx, exec, view.Room, fmt.Sprintf("_%s looks around the room carefully._", exec.Player.Name))
	return nil
}
