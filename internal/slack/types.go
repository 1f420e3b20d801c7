// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package slack

import (
	"encoding/json"
	"net/url"

	"github.com/samber/oops"
)

// SlashCommand is the form payload of a slash command invocation.
type SlashCommand struct {
	TeamID      string
	ChannelID   string
	ChannelName string
	UserID      string
	UserName    string
	Command     string
	Text        string
	ResponseURL string
	TriggerID   string
}

// ParseSlashCommand decodes an application/x-www-form-urlencoded body.
func ParseSlashCommand(body []byte) (*SlashCommand, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, oops.With("operation", "parse slash command form").Wrap(err)
	}
	return &SlashCommand{
		TeamID:      values.Get("team_id"),
		ChannelID:   values.Get("channel_id"),
		ChannelName: values.Get("channel_name"),
		UserID:      values.Get("user_id"),
		UserName:    values.Get("user_name"),
		Command:     values.Get("command"),
		Text:        values.Get("text"),
		ResponseURL: values.Get("response_url"),
		TriggerID:   values.Get("trigger_id"),
	}, nil
}

// Event envelope types.
const (
	EnvelopeURLVerification = "url_verification"
	EnvelopeEventCallback   = "event_callback"
)

// EventEnvelope is the outer JSON payload of the events endpoint.
type EventEnvelope struct {
	Type      string          `json:"type"`
	Token     string          `json:"token,omitempty"`
	Challenge string          `json:"challenge,omitempty"`
	TeamID    string          `json:"team_id,omitempty"`
	EventID   string          `json:"event_id,omitempty"`
	EventTime int64           `json:"event_time,omitempty"`
	Event     json.RawMessage `json:"event,omitempty"`
}

// ParseEventEnvelope decodes the outer event payload.
func ParseEventEnvelope(body []byte) (*EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, oops.With("operation", "parse event envelope").Wrap(err)
	}
	return &env, nil
}

// MessageEvent is the inner event for message deliveries. Direct messages
// arrive with ChannelType "im".
type MessageEvent struct {
	Type        string `json:"type"`
	ChannelType string `json:"channel_type"`
	Channel     string `json:"channel"`
	User        string `json:"user"`
	Text        string `json:"text"`
	EventTS     string `json:"ts"`
	BotID       string `json:"bot_id,omitempty"`
}

// ParseMessageEvent decodes the inner event of an event_callback envelope.
func ParseMessageEvent(raw json.RawMessage) (*MessageEvent, error) {
	var ev MessageEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, oops.With("operation", "parse message event").Wrap(err)
	}
	return &ev, nil
}

// IsDirectMessage reports whether the event is a user DM the game should
// treat as a command. Bot echoes are excluded so the game never answers
// itself.
func (e *MessageEvent) IsDirectMessage() bool {
	return e.Type == "message" && e.ChannelType == "im" && e.BotID == "" && e.User != ""
}
