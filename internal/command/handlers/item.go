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

// GetHandler picks up an item from the current room's floor.
func GetHandler(ctx context.Context, exec *command.Execution) error {
	words := exec.Args.Words()
	if len(words) == 0 {
		return command.ErrInvalidArgs("get", "get <item>")
	}
	keyword := words[0]

	if !exec.Player.InRoom() {
		return command.WorldError("You need to be in a room first! Use `look` in a channel to enter a room.", nil)
	}

	inst, room, err := exec.Services.World.Take(ctx, exec.Player, keyword)
	if err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return command.WorldError(fmt.Sprintf("You don't see '%s' here.", keyword), nil)
		}
		return command.WorldError("It slips from your grasp.", err)
	}

	reply(exec, "You pick up %s.", inst.ShortDesc())
	broadcast(ctx, exec, room, fmt.Sprintf("_%s picks up %s._", exec.Player.Name, inst.ShortDesc()))
	return nil
}

// DropHandler puts a carried item down in the current room.
func DropHandler(ctx context.Context, exec *command.Execution) error {
	words := exec.Args.Words()
	if len(words) == 0 {
		return command.ErrInvalidArgs("drop", "drop <item>")
	}
	keyword := words[0]

	if !exec.Player.InRoom() {
		return command.WorldError("You need to be in a room first! Use `look` in a channel to enter a room.", nil)
	}

	inst, room, err := exec.Services.World.Drop(ctx, exec.Player, keyword)
	if err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return command.WorldError(fmt.Sprintf("You aren't carrying '%s'.", keyword), nil)
		}
		return command.WorldError("Your pack refuses to open.", err)
	}

	reply(exec, "You drop %s.", inst.ShortDesc())
	broadcast(ctx, exec, room, fmt.Sprintf("_%s drops %s._", exec.Player.Name, inst.ShortDesc()))
	return nil
}
