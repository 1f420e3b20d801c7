// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/chatmud/chatmud/internal/seed"
)

// NewValidateSeedsCmd creates the validate-seeds subcommand.
func NewValidateSeedsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-seeds <file.yaml> [file.yaml...]",
		Short: "Validate seed files without touching the database",
		Long: `Checks seed files against the schema and format version
constraint. Does NOT require a database connection; exits non-zero on the
first invalid file. Useful in CI:

  chatmud validate-seeds seeds/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateSeeds(cmd, args)
		},
	}
}

func runValidateSeeds(cmd *cobra.Command, paths []string) error {
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return oops.In("seed").Code("SEED_READ_FAILED").With("path", path).Wrap(err)
		}
		f, err := seed.Parse(raw)
		if err != nil {
			return oops.With("path", path).Wrap(err)
		}
		cmd.Printf("ok: %s\n", f.Describe())
	}
	return nil
}
