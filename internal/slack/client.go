// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/samber/oops"
)

// Messenger delivers game output back to the chat platform.
type Messenger interface {
	// Post sends a message to a channel.
	Post(ctx context.Context, channelID, text string) error

	// DM opens (or reuses) a direct message conversation with the user
	// and sends the text there.
	DM(ctx context.Context, userID, text string) error
}

// DefaultAPIBase is the Web API root.
const DefaultAPIBase = "https://slack.com/api"

// Client is a minimal Web API client covering chat.postMessage and
// conversations.open.
type Client struct {
	httpClient *http.Client
	apiBase    string
	botToken   string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIBase overrides the Web API root, mainly for tests.
func WithAPIBase(base string) ClientOption {
	return func(c *Client) { c.apiBase = base }
}

// NewClient creates a Web API client authenticated with the bot token.
func NewClient(botToken string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    DefaultAPIBase,
		botToken:   botToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Messenger = (*Client)(nil)

// Post sends a message to a channel via chat.postMessage.
func (c *Client) Post(ctx context.Context, channelID, text string) error {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	err := c.call(ctx, "chat.postMessage", map[string]any{
		"channel": channelID,
		"text":    text,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.OK {
		return oops.Code("SLACK_API_ERROR").
			With("method", "chat.postMessage").
			With("channel", channelID).
			Errorf("api error: %s", resp.Error)
	}
	return nil
}

// DM opens a conversation with the user and posts the text there.
func (c *Client) DM(ctx context.Context, userID, text string) error {
	var resp struct {
		OK      bool   `json:"ok"`
		Error   string `json:"error"`
		Channel struct {
			ID string `json:"id"`
		} `json:"channel"`
	}
	err := c.call(ctx, "conversations.open", map[string]any{
		"users": userID,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.OK {
		return oops.Code("SLACK_API_ERROR").
			With("method", "conversations.open").
			With("user", userID).
			Errorf("api error: %s", resp.Error)
	}
	return c.Post(ctx, resp.Channel.ID, text)
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return oops.With("operation", "marshal api payload").With("method", method).Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, bytes.NewReader(body))
	if err != nil {
		return oops.With("operation", "build api request").With("method", method).Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return oops.Code("SLACK_API_UNREACHABLE").With("method", method).Wrap(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return oops.With("operation", "read api response").With("method", method).Wrap(err)
	}
	if resp.StatusCode != http.StatusOK {
		return oops.Code("SLACK_API_ERROR").
			With("method", method).
			With("status", resp.StatusCode).
			Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return oops.With("operation", "decode api response").With("method", method).Wrap(err)
	}
	return nil
}
