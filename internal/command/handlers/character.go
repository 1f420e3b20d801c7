// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/world"
)

const createUsage = "create <class> <race> <gender>"

// CharacterHandler shows the player's character sheet.
func CharacterHandler(ctx context.Context, exec *command.Execution) error {
	sheet, err := exec.Services.World.Sheet(ctx, exec.Player)
	if err != nil {
		return command.WorldError("Your reflection is too blurry to read.", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", sheet.Player.Name)
	fmt.Fprintf(&b, "*Level:* %d\n", sheet.Player.Level)
	fmt.Fprintf(&b, "*Experience:* %d\n", sheet.Player.Experience)
	if sheet.Class != nil {
		fmt.Fprintf(&b, "*Class:* %s\n", sheet.Class.Name)
	}
	if sheet.Race != nil {
		fmt.Fprintf(&b, "*Race:* %s\n", sheet.Race.Name)
	}
	if sheet.Player.Gender != nil {
		fmt.Fprintf(&b, "*Gender:* %s\n", *sheet.Player.Gender)
	}
	if sheet.Player.IsWizard() {
		b.WriteString("*Rank:* wizard\n")
	}
	b.WriteString("\n*Classes:*\n")
	for _, c := range sheet.Classes {
		fmt.Fprintf(&b, "• *%s* - %s\n", c.Name, c.Description)
	}
	b.WriteString("\n*Races:*\n")
	for _, r := range sheet.Races {
		fmt.Fprintf(&b, "• *%s* - %s\n", r.Name, r.Description)
	}
	if !sheet.Player.CharacterComplete() {
		b.WriteString("\nYour character is incomplete. Use `create <class> <race> <gender>` to finish it.")
	}

	reply(exec, "%s", b.String())
	return nil
}

// CreateHandler records class, race, and gender choices.
func CreateHandler(ctx context.Context, exec *command.Execution) error {
	words := exec.Args.Words()
	if len(words) != 3 {
		return command.ErrInvalidArgs("create", createUsage)
	}

	err := exec.Services.World.SetCharacter(ctx, exec.Player, words[0], words[1], words[2])
	if err != nil {
		var verr *world.ValidationError
		if errors.As(err, &verr) {
			return command.WorldError("Gender must be male, female, or neutral.", nil)
		}
		if errors.Is(err, world.ErrNotFound) {
			return command.WorldError(
				fmt.Sprintf("No such class or race: `%s %s`. Try `help create` for the lists.", words[0], words[1]),
				nil)
		}
		return command.WorldError("The character scribe is out to lunch.", err)
	}

	reply(exec, "Welcome, %s. Your character is ready. Use `look` in a channel to enter the world.", exec.Player.Name)
	return nil
}
