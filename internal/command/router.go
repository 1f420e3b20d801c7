// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package command

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chatmud/chatmud/internal/observability"
)

var tracer = otel.Tracer("chatmud/command")

// Router parses input, resolves the command, gates wizard-only entries, and
// executes the handler.
type Router struct {
	registry *Registry
	metrics  *observability.Metrics // optional, can be nil
}

// RouterOption configures a Router during construction.
type RouterOption func(*Router)

// WithMetrics configures the router to record command metrics.
func WithMetrics(m *observability.Metrics) RouterOption {
	return func(r *Router) { r.metrics = m }
}

// NewRouter creates a new command router with the given registry.
func NewRouter(registry *Registry, opts ...RouterOption) (*Router, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	r := &Router{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Route parses and executes a command.
// Wizard-only commands invoked by non-wizards fail as unknown commands, so
// their existence is never revealed.
func (r *Router) Route(ctx context.Context, input string, exec *Execution) (err error) {
	if exec.Player == nil {
		return ErrNoPlayer()
	}
	if exec.Services == nil {
		return ErrNilServices()
	}

	parsed, err := Parse(input)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.name", parsed.Name),
			attribute.String("player.id", exec.Player.UserID),
		),
	)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if r.metrics != nil {
			status := "ok"
			if err != nil {
				status = "error"
			}
			r.metrics.CommandsTotal.WithLabelValues(parsed.Name, status).Inc()
			r.metrics.CommandDuration.WithLabelValues(parsed.Name).Observe(time.Since(start).Seconds())
		}
	}()

	entry, ok := r.registry.Get(parsed.Name)
	if !ok {
		err = ErrUnknownCommand(parsed.Name)
		return err
	}
	if entry.Wizard && !exec.Player.IsWizard() {
		span.SetAttributes(attribute.Bool("command.wizard_gated", true))
		err = ErrUnknownCommand(parsed.Name)
		return err
	}

	exec.Args = parsed.Args
	exec.Rest = parsed.Rest
	exec.InvokedAs = parsed.Name
	err = entry.Handler(ctx, exec)
	if err != nil {
		slog.WarnContext(ctx, "command execution failed",
			"command", entry.Name,
			"player_id", exec.Player.UserID,
			"error", err,
		)
	}
	return err
}
