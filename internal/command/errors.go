// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package command

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNilRegistry indicates the router was constructed without a registry.
var ErrNilRegistry = errors.New("registry cannot be nil")

// Error codes for command routing failures.
const (
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeInvalidArgs    = "INVALID_ARGS"
	CodeWorldError     = "WORLD_ERROR"
	CodeEmptyInput     = "EMPTY_INPUT"
	CodeNoPlayer       = "NO_PLAYER"
)

// ErrUnknownCommand creates an error for an unknown command. Wizard commands
// invoked by non-wizards produce this same error, so probing reveals nothing.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrInvalidArgs creates an error for invalid arguments.
func ErrInvalidArgs(cmd, usage string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("usage", usage).
		Errorf("invalid arguments")
}

// WorldError creates an error for world state issues with a player-facing
// message.
func WorldError(message string, cause error) error {
	builder := oops.Code(CodeWorldError).With("message", message)
	if cause != nil {
		return builder.Wrap(cause)
	}
	return builder.Errorf("%s", message)
}

// ErrNoPlayer creates an error when a command executes without a player.
func ErrNoPlayer() error {
	return oops.Code(CodeNoPlayer).Errorf("no player associated with request")
}

// ErrNilServices creates an error when execution services are missing.
func ErrNilServices() error {
	return oops.Code(CodeNoPlayer).Errorf("execution services are nil")
}

// PlayerMessage extracts a player-facing message from an error.
func PlayerMessage(err error) string {
	const fallback = "Something went wrong. Try again."
	if err == nil {
		return fallback
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return fallback
	}

	switch oopsErr.Code() {
	case CodeUnknownCommand:
		return "Unknown command. Try `help`."
	case CodeEmptyInput:
		return "What do you want to do? Try `help`."
	case CodeInvalidArgs:
		if usage, ok := oopsErr.Context()["usage"].(string); ok && usage != "" {
			return "Usage: " + usage
		}
		return "Invalid arguments."
	case CodeWorldError:
		if msg, ok := oopsErr.Context()["message"].(string); ok {
			return msg
		}
		return fallback
	default:
		return fallback
	}
}
