// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/chatmud/chatmud/internal/config"
	"github.com/chatmud/chatmud/internal/seed"
	"github.com/chatmud/chatmud/internal/store"
	"github.com/chatmud/chatmud/internal/world/postgres"
)

// Default timeout for seed imports.
const defaultSeedTimeout = 30 * time.Second

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "seed <file.yaml> [file.yaml...]",
		Short: "Import area seed files",
		Long: `Validates and imports one or more YAML seed files of rooms,
exits, and item templates. Imports are idempotent; re-running a seed updates
in place.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, paths []string, timeout time.Duration) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database_url is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return err
	}

	loader := seed.NewLoader(
		postgres.NewRoomRepository(pool),
		postgres.NewExitRepository(pool),
		postgres.NewObjectRepository(pool),
		postgres.NewLookupRepository(pool),
		postgres.NewTransactor(pool),
	)

	for _, path := range paths {
		f, err := loader.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		cmd.Printf("Seeded %s\n", f.Describe())
	}
	return nil
}
