// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package web serves the chat platform webhooks: slash command invocations
// and event deliveries.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/observability"
	"github.com/chatmud/chatmud/internal/slack"
	"github.com/chatmud/chatmud/internal/world"
)

const (
	maxBodyBytes  = 1 << 20
	dedupCapacity = 1000

	headerSignature = "X-Slack-Signature"
	headerTimestamp = "X-Slack-Request-Timestamp"
)

// RequestVerifier authenticates a webhook request body against its
// signature headers.
type RequestVerifier interface {
	Verify(signature, timestamp string, body []byte) error
}

// ServerConfig holds the webhook server dependencies.
type ServerConfig struct {
	Addr     string
	Verifier RequestVerifier
	World    *world.Service
	Router   *command.Router
	Notify   command.Notifier
	Metrics  *observability.Metrics // optional
}

// Server handles webhook HTTP traffic. Slash commands are answered in the
// HTTP response as ephemeral messages; DM events are acknowledged first and
// answered through the chat client.
type Server struct {
	cfg        ServerConfig
	listener   net.Listener
	httpServer *http.Server
	dedup      *eventDedup
	running    atomic.Bool
	wg         sync.WaitGroup
}

// NewServer creates a webhook server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Verifier == nil {
		return nil, oops.In("web").Errorf("verifier is required")
	}
	if cfg.World == nil || cfg.Router == nil {
		return nil, oops.In("web").Errorf("world service and router are required")
	}
	return &Server{
		cfg:   cfg,
		dedup: newEventDedup(dedupCapacity),
	}, nil
}

// Handler returns the webhook route mux. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/commands", s.handleSlashCommand)
	mux.HandleFunc("POST /slack/events", s.handleEvent)
	return mux
}

// Start begins serving webhooks. It returns an error channel that receives
// any error from the HTTP server after it starts; the channel is closed when
// the server stops gracefully.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("webhook server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.cfg.Addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("webhook server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("webhook server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server and waits for in-flight event
// processing to finish.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_webhook_server").Wrap(err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return oops.With("operation", "drain_webhook_workers").Wrap(ctx.Err())
	}

	slog.Info("webhook server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// slashResponse is the immediate JSON answer to a slash command. Ephemeral
// responses are visible only to the invoking user.
type slashResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func (s *Server) handleSlashCommand(w http.ResponseWriter, r *http.Request) {
	const endpoint = "commands"

	body, ok := s.readAndVerify(w, r, endpoint)
	if !ok {
		return
	}

	cmd, err := slack.ParseSlashCommand(body)
	if err != nil {
		s.count(endpoint, "bad_request")
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}
	if cmd.UserID == "" {
		s.count(endpoint, "bad_request")
		http.Error(w, "missing user", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	player, err := s.cfg.World.GetOrCreatePlayer(ctx, cmd.UserID, cmd.UserName)
	if err != nil {
		slog.ErrorContext(ctx, "player resolution failed", "user_id", cmd.UserID, "error", err)
		s.count(endpoint, "error")
		s.respondEphemeral(w, "The world is unavailable right now. Try again shortly.")
		return
	}

	var room *world.Room
	if cmd.ChannelID != "" && cmd.ChannelName != "directmessage" {
		room, err = s.cfg.World.EnsureRoom(ctx, cmd.ChannelID, cmd.ChannelName)
		if err != nil {
			slog.ErrorContext(ctx, "room resolution failed", "channel_id", cmd.ChannelID, "error", err)
			s.count(endpoint, "error")
			s.respondEphemeral(w, "The world is unavailable right now. Try again shortly.")
			return
		}
	}

	var out bytes.Buffer
	exec := &command.Execution{
		Player:      player,
		Room:        room,
		ChannelID:   cmd.ChannelID,
		ChannelName: cmd.ChannelName,
		Output:      &out,
		Services:    &command.Services{World: s.cfg.World, Notify: s.cfg.Notify},
	}

	if routeErr := s.cfg.Router.Route(ctx, cmd.Text, exec); routeErr != nil {
		s.count(endpoint, "command_error")
		s.respondEphemeral(w, command.PlayerMessage(routeErr))
		return
	}

	s.count(endpoint, "ok")
	text := out.String()
	if text == "" {
		text = "Done."
	}
	s.respondEphemeral(w, text)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	const endpoint = "events"

	body, ok := s.readAndVerify(w, r, endpoint)
	if !ok {
		return
	}

	env, err := slack.ParseEventEnvelope(body)
	if err != nil {
		s.count(endpoint, "bad_request")
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	switch env.Type {
	case slack.EnvelopeURLVerification:
		s.count(endpoint, "ok")
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // best-effort response write
		json.NewEncoder(w).Encode(map[string]string{"challenge": env.Challenge})
		return

	case slack.EnvelopeEventCallback:
		if s.dedup.Seen(env.EventID) {
			if s.cfg.Metrics != nil {
				s.cfg.Metrics.EventsDeduped.Inc()
			}
			s.count(endpoint, "duplicate")
			w.WriteHeader(http.StatusOK)
			return
		}

		ev, err := slack.ParseMessageEvent(env.Event)
		if err != nil || !ev.IsDirectMessage() {
			s.count(endpoint, "ignored")
			w.WriteHeader(http.StatusOK)
			return
		}

		// Ack before processing; the platform retries slow responses.
		s.count(endpoint, "ok")
		w.WriteHeader(http.StatusOK)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.processDirectMessage(context.WithoutCancel(r.Context()), ev)
		}()
		return

	default:
		s.count(endpoint, "ignored")
		w.WriteHeader(http.StatusOK)
	}
}

// processDirectMessage runs a DM as a command with no room context and sends
// the reply back to the IM channel.
func (s *Server) processDirectMessage(ctx context.Context, ev *slack.MessageEvent) {
	player, err := s.cfg.World.GetOrCreatePlayer(ctx, ev.User, ev.User)
	if err != nil {
		slog.ErrorContext(ctx, "player resolution failed", "user_id", ev.User, "error", err)
		return
	}

	var out bytes.Buffer
	exec := &command.Execution{
		Player:    player,
		ChannelID: ev.Channel,
		Output:    &out,
		Services:  &command.Services{World: s.cfg.World, Notify: s.cfg.Notify},
	}

	var text string
	if routeErr := s.cfg.Router.Route(ctx, ev.Text, exec); routeErr != nil {
		text = command.PlayerMessage(routeErr)
	} else if text = out.String(); text == "" {
		text = "Done."
	}

	if s.cfg.Notify == nil {
		return
	}
	if err := s.cfg.Notify.Post(ctx, ev.Channel, text); err != nil {
		slog.ErrorContext(ctx, "direct message reply failed", "channel_id", ev.Channel, "error", err)
	}
}

// readAndVerify consumes the request body and authenticates it. On failure
// it writes the HTTP error itself and returns ok=false.
func (s *Server) readAndVerify(w http.ResponseWriter, r *http.Request, endpoint string) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.count(endpoint, "bad_request")
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return nil, false
	}

	sig := r.Header.Get(headerSignature)
	ts := r.Header.Get(headerTimestamp)
	if err := s.cfg.Verifier.Verify(sig, ts, body); err != nil {
		if errors.Is(err, slack.ErrStaleTimestamp) || errors.Is(err, slack.ErrBadSignature) ||
			errors.Is(err, slack.ErrMissingSignature) {
			s.count(endpoint, "unauthorized")
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return nil, false
		}
		s.count(endpoint, "error")
		http.Error(w, "verification failed", http.StatusInternalServerError)
		return nil, false
	}

	return body, true
}

func (s *Server) respondEphemeral(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // best-effort response write
	json.NewEncoder(w).Encode(slashResponse{ResponseType: "ephemeral", Text: text})
}

func (s *Server) count(endpoint, status string) {
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.WebhooksTotal.WithLabelValues(endpoint, status).Inc()
	}
}
