// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatmud/chatmud/internal/command"
)

// HelpHandler renders the command list, or detail for one command. Wizard
// commands stay invisible to mortals.
func HelpHandler(reg *command.Registry) command.Handler {
	return func(ctx context.Context, exec *command.Execution) error {
		words := exec.Args.Words()
		if len(words) > 0 {
			return helpFor(exec, reg, words[0])
		}

		var b strings.Builder
		b.WriteString("*Available commands:*\n")
		for _, entry := range reg.All() {
			if entry.Wizard && !exec.Player.IsWizard() {
				continue
			}
			fmt.Fprintf(&b, "• `%s`", entry.Name)
			if len(entry.Aliases) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(entry.Aliases, ", "))
			}
			if entry.Help != "" {
				fmt.Fprintf(&b, ": %s", entry.Help)
			}
			b.WriteString("\n")
		}
		b.WriteString("\nTry `help <command>` for usage.")
		reply(exec, "%s", b.String())
		return nil
	}
}

func helpFor(exec *command.Execution, reg *command.Registry, name string) error {
	entry, ok := reg.Get(strings.ToLower(name))
	if !ok || (entry.Wizard && !exec.Player.IsWizard()) {
		return command.ErrUnknownCommand(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", entry.Name)
	if entry.Help != "" {
		fmt.Fprintf(&b, "%s\n", entry.Help)
	}
	if entry.Usage != "" {
		fmt.Fprintf(&b, "Usage: `%s`\n", entry.Usage)
	}
	if len(entry.Aliases) > 0 {
		fmt.Fprintf(&b, "Aliases: %s\n", strings.Join(entry.Aliases, ", "))
	}
	reply(exec, "%s", b.String())
	return nil
}
