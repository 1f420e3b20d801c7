// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the ChatMUD CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatmud",
		Short: "ChatMUD - a multiplayer text adventure living in your chat workspace",
		Long: `ChatMUD turns chat channels into the rooms of a multiplayer text
adventure. Slash commands and direct messages drive the game; wizards dig
exits between channels and shape the world.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewValidateSeedsCmd())

	return cmd
}
