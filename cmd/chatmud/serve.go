// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/chatmud/chatmud/internal/access"
	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/command/handlers"
	"github.com/chatmud/chatmud/internal/config"
	"github.com/chatmud/chatmud/internal/logging"
	"github.com/chatmud/chatmud/internal/observability"
	"github.com/chatmud/chatmud/internal/slack"
	"github.com/chatmud/chatmud/internal/store"
	"github.com/chatmud/chatmud/internal/web"
	"github.com/chatmud/chatmud/internal/world"
	"github.com/chatmud/chatmud/internal/world/postgres"
)

const shutdownTimeout = 15 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook and observability servers",
		Long: `Runs pending migrations, then serves the chat platform webhooks
(slash commands and event deliveries) plus metrics and health endpoints.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefault("chatmud", version, cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return err
	}

	wizards, err := access.ParseWizardList(cfg.Wizards)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	svc := world.NewService(world.ServiceConfig{
		Players:    postgres.NewPlayerRepository(pool),
		Rooms:      postgres.NewRoomRepository(pool),
		Exits:      postgres.NewExitRepository(pool),
		Objects:    postgres.NewObjectRepository(pool),
		Instances:  postgres.NewInstanceRepository(pool),
		Lookups:    postgres.NewLookupRepository(pool),
		Transactor: postgres.NewTransactor(pool),
		Wizards:    wizards,
	})

	obs := observability.NewServer(cfg.MetricsAddr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})

	registry := command.NewRegistry()
	handlers.Register(registry)
	router, err := command.NewRouter(registry, command.WithMetrics(obs.Metrics()))
	if err != nil {
		return err
	}

	client := slack.NewClient(cfg.Slack.BotToken)
	webSrv, err := web.NewServer(web.ServerConfig{
		Addr:     cfg.ListenAddr,
		Verifier: slack.NewVerifier(cfg.Slack.SigningSecret),
		World:    svc,
		Router:   router,
		Notify:   client,
		Metrics:  obs.Metrics(),
	})
	if err != nil {
		return err
	}

	obsErrs, err := obs.Start()
	if err != nil {
		return err
	}
	webErrs, err := webSrv.Start()
	if err != nil {
		stopServer(obs.Stop)
		return err
	}

	slog.Info("chatmud serving",
		"listen_addr", webSrv.Addr(),
		"metrics_addr", obs.Addr(),
		"wizard_patterns", wizards.Size())

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err = <-webErrs:
	case err = <-obsErrs:
	}

	stopServer(webSrv.Stop)
	stopServer(obs.Stop)
	return err
}

func runMigrations(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("migrator close failed", "error", closeErr)
		}
	}()

	if err := migrator.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	return nil
}

func stopServer(stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
