// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package command provides the command registry, parser, and routing.
package command

import (
	"context"
	"io"

	"github.com/chatmud/chatmud/internal/world"
)

// Handler is the function signature for command handlers.
type Handler func(ctx context.Context, exec *Execution) error

// Entry represents a registered command.
type Entry struct {
	Name    string   // canonical name (e.g. "look")
	Aliases []string // shortcuts resolved to this entry (e.g. "l")
	Handler Handler
	Wizard  bool   // requires wizard level; hidden from non-wizards
	Help    string // short description (one line)
	Usage   string // usage pattern (e.g. "dig <direction> <#channel>")
}

// Notifier posts public messages into a channel. Broadcasts are best-effort;
// handlers log failures but never fail the command over them.
type Notifier interface {
	Post(ctx context.Context, channelID, text string) error
}

// Services provides access to core services for command handlers.
// Handlers MUST NOT store references to services beyond execution.
type Services struct {
	World  *world.Service
	Notify Notifier
}

// Execution provides context for command execution. Output receives the
// player-facing reply; the transport layer decides whether that becomes an
// ephemeral response or a DM.
type Execution struct {
	Player      *world.Player
	Room        *world.Room // nil when invoked from a DM
	ChannelID   string
	ChannelName string
	Args        Args
	Rest        string // raw argument text, whitespace preserved
	InvokedAs   string
	Output      io.Writer
	Services    *Services
}

// InRoom reports whether the command was invoked from a channel with a room.
func (e *Execution) InRoom() bool {
	return e.Room != nil
}
