// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

// Class is a playable character class from the lookup tables.
type Class struct {
	ID          int32
	Name        string
	Description string
}

// Race is a playable character race from the lookup tables.
type Race struct {
	ID          int32
	Name        string
	Description string
}

// Area groups imported rooms, exits, and object definitions under one
// source file. The counts record what the last import produced.
type Area struct {
	ID         int32
	Name       string
	FileName   string
	MinVnum    int32
	MaxVnum    int32
	RoomsCount int32
	ExitsCount int32
}
