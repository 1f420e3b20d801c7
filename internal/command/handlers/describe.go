// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"errors"

	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/world"
)

const describeUsage = "describe <text>"

// DescribeHandler sets the description of the wizard's current room.
func DescribeHandler(ctx context.Context, exec *command.Execution) error {
	if exec.Rest == "" {
		return command.ErrInvalidArgs("describe", describeUsage)
	}

	err := exec.Services.World.DescribeRoom(ctx, exec.Player, exec.Rest)
	if err != nil {
		var verr *world.ValidationError
		if errors.As(err, &verr) {
			return command.WorldError("That description won't do: "+verr.Message+".", nil)
		}
		return command.WorldError("The room resists redecoration.", err)
	}

	reply(exec, "The room shimmers as your description takes hold.")
	broadcast(ctx, exec, exec.Room, "_The room shifts subtly, as though rewritten._")
	return nil
}
