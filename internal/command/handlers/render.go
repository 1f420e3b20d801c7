// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package handlers provides command handler implementations.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/observability"
	"github.com/chatmud/chatmud/internal/world"
)

// renderRoomView formats a room for the looking player in chat markup.
func renderRoomView(view *world.RoomView, viewer *world.Player) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*You look around #%s*\n", view.Room.Name)
	b.WriteString(view.Room.Description)
	b.WriteString("\n")

	if len(view.Exits) > 0 {
		b.WriteString("\n*Exits:*\n")
		for _, exit := range view.Exits {
			fmt.Fprintf(&b, "• *%s* → <#%s>\n", exit.Direction, exit.ToRoomID)
		}
	}

	if len(view.Players) > 0 {
		b.WriteString("\n*Players here:*\n")
		for _, p := range view.Players {
			if p.UserID == viewer.UserID {
				fmt.Fprintf(&b, "• %s (you)\n", p.Name)
			} else {
				fmt.Fprintf(&b, "• %s\n", p.Name)
			}
		}
	}

	if len(view.Items) > 0 {
		b.WriteString("\n*You see:*\n")
		for _, item := range view.Items {
			desc := item.ShortDesc()
			if item.Definition != nil && item.Definition.LongDesc != "" {
				desc = item.Definition.LongDesc
			}
			fmt.Fprintf(&b, "• %s\n", desc)
		}
	}

	return b.String()
}

// reply writes the player-facing response. Write failures are counted but
// never fail the command.
func reply(exec *command.Execution, format string, args ...any) {
	if _, err := fmt.Fprintf(exec.Output, format, args...); err != nil {
		observability.RecordCommandOutputFailure(exec.InvokedAs)
	}
}

// broadcast posts a public message to the room's attached channel.
// Best-effort: failures are logged, not returned.
func broadcast(ctx context.Context, exec *command.Execution, room *world.Room, text string) {
	if exec.Services.Notify == nil || room == nil || room.IsVirtual() {
		return
	}
	if err := exec.Services.Notify.Post(ctx, *room.AttachedChannelID, text); err != nil {
		slog.WarnContext(ctx, "room broadcast failed",
			"channel_id", *room.AttachedChannelID,
			"error", err)
	}
}
