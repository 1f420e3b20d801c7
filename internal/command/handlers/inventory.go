// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatmud/chatmud/internal/command"
)

// InventoryHandler lists what the player carries, excluding worn equipment.
func InventoryHandler(ctx context.Context, exec *command.Execution) error {
	items, err := exec.Services.World.Inventory(ctx, exec.Player.UserID)
	if err != nil {
		return command.WorldError("Your pack refuses to open.", err)
	}

	if len(items) == 0 {
		reply(exec, "You aren't carrying anything.")
		return nil
	}

	var b strings.Builder
	b.WriteString("*You are carrying:*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "• %s\n", item.ShortDesc())
	}
	reply(exec, "%s", b.String())
	return nil
}
