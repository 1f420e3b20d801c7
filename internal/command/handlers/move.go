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

// MoveHandler walks the player through an exit. It serves both the explicit
// form ("move north") and the bare direction verbs ("north", "n"), which
// register as their own entries and resolve the direction from InvokedAs.
func MoveHandler(ctx context.Context, exec *command.Execution) error {
	dirWord := exec.InvokedAs
	if dirWord == "move" || dirWord == "go" {
		words := exec.Args.Words()
		if len(words) == 0 {
			return command.ErrInvalidArgs("move", "move <direction>")
		}
		dirWord = words[0]
	}

	direction, err := world.ParseDirection(dirWord)
	if err != nil {
		return command.WorldError(
			fmt.Sprintf("Invalid direction: `%s`. Valid directions: north, south, east, west, up, down", dirWord),
			nil)
	}

	result, err := exec.Services.World.Move(ctx, exec.Player, direction)
	if err != nil {
		if errors.Is(err, world.ErrNoExit) {
			return command.WorldError(
				fmt.Sprintf("There is no exit to the %s from here.", direction), nil)
		}
		return command.WorldError("You can't go that way right now.", err)
	}

	broadcast(ctx, exec, result.From, fmt.Sprintf("_%s heads %s._", exec.Player.Name, direction))
	broadcast(ctx, exec, result.View.Room, fmt.Sprintf("_%s arrives._", exec.Player.Name))

	reply(exec, "You travel %s from #%s to #%s.\n\n%s",
		direction, result.From.Name, result.View.Room.Name,
		renderRoomView(result.View, exec.Player))
	return nil
}
