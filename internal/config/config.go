// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package config loads server configuration from a YAML file, environment
// variables, and command-line flags, in that order of precedence.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// EnvPrefix namespaces the environment variables the loader reads.
// Nested keys use a double underscore: CHATMUD_SLACK__BOT_TOKEN maps to
// slack.bot_token.
const EnvPrefix = "CHATMUD_"

// SlackConfig carries the workspace credentials.
type SlackConfig struct {
	SigningSecret string `koanf:"signing_secret"`
	BotToken      string `koanf:"bot_token"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Config is the full server configuration.
type Config struct {
	ListenAddr  string      `koanf:"listen_addr"`
	MetricsAddr string      `koanf:"metrics_addr"`
	DatabaseURL string      `koanf:"database_url"`
	Wizards     string      `koanf:"wizards"` // comma-separated user IDs or name globs
	Slack       SlackConfig `koanf:"slack"`
	Log         LogConfig   `koanf:"log"`
}

// Default returns the configuration defaults applied before any source.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		MetricsAddr: ":9090",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load merges configuration from the optional YAML file at path, the
// environment, and the given flag set (highest precedence). A nil flag set
// skips the flag layer; an empty path skips the file layer.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	errb := oops.In("config")

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errb.Code("CONFIG_FILE_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errb.Code("CONFIG_ENV_LOAD_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, errb.Code("CONFIG_FLAG_LOAD_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errb.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}
	return &cfg, nil
}

// Validate checks that the settings a running server cannot do without are
// present.
func (c *Config) Validate() error {
	errb := oops.In("config").Code("CONFIG_INVALID")
	switch {
	case c.DatabaseURL == "":
		return errb.Errorf("database_url is required")
	case c.Slack.SigningSecret == "":
		return errb.Errorf("slack.signing_secret is required")
	case c.Slack.BotToken == "":
		return errb.Errorf("slack.bot_token is required")
	}
	return nil
}

// envKey maps CHATMUD_SLACK__BOT_TOKEN onto slack.bot_token. A single
// underscore stays part of the key; a double underscore descends a level.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
