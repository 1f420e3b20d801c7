// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

// Package seed imports area content (rooms, exits, item templates) from YAML
// seed files.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// FormatConstraint is the range of seed file format versions this build
// understands.
const FormatConstraint = "^1.0"

//go:embed schema/seed.schema.json
var schemaJSON []byte

// AreaSeed identifies the area a seed file populates.
type AreaSeed struct {
	Name     string `yaml:"name" json:"name"`
	FileName string `yaml:"file_name" json:"file_name"`
	MinVnum  int32  `yaml:"min_vnum" json:"min_vnum"`
	MaxVnum  int32  `yaml:"max_vnum" json:"max_vnum"`
}

// RoomSeed is one virtual room. Its vnum becomes the room ID ("vnum_3001").
type RoomSeed struct {
	Vnum        int32      `yaml:"vnum" json:"vnum"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Exits       []ExitSeed `yaml:"exits,omitempty" json:"exits,omitempty"`
}

// ExitSeed is a one-way link from its room to another room in the same file.
type ExitSeed struct {
	Direction string `yaml:"direction" json:"direction" jsonschema:"enum=north,enum=south,enum=east,enum=west,enum=up,enum=down"`
	ToVnum    int32  `yaml:"to_vnum" json:"to_vnum"`
}

// ObjectSeed is one item template.
type ObjectSeed struct {
	Vnum       int32  `yaml:"vnum" json:"vnum"`
	Keywords   string `yaml:"keywords" json:"keywords"`
	ShortDesc  string `yaml:"short_desc" json:"short_desc"`
	LongDesc   string `yaml:"long_desc,omitempty" json:"long_desc,omitempty"`
	Material   string `yaml:"material,omitempty" json:"material,omitempty"`
	ItemType   string `yaml:"item_type" json:"item_type"`
	WearFlags  string `yaml:"wear_flags,omitempty" json:"wear_flags,omitempty"`
	ExtraFlags string `yaml:"extra_flags,omitempty" json:"extra_flags,omitempty"`
	Value0     int32  `yaml:"value0,omitempty" json:"value0,omitempty"`
	Value1     int32  `yaml:"value1,omitempty" json:"value1,omitempty"`
	Value2     string `yaml:"value2,omitempty" json:"value2,omitempty"`
	Value3     int32  `yaml:"value3,omitempty" json:"value3,omitempty"`
	Weight     int32  `yaml:"weight,omitempty" json:"weight,omitempty"`
	Cost       int32  `yaml:"cost,omitempty" json:"cost,omitempty"`
	Level      int32  `yaml:"level,omitempty" json:"level,omitempty"`
}

// File is a full seed file.
type File struct {
	FormatVersion string       `yaml:"format_version" json:"format_version"`
	Area          AreaSeed     `yaml:"area" json:"area"`
	Rooms         []RoomSeed   `yaml:"rooms,omitempty" json:"rooms,omitempty"`
	Objects       []ObjectSeed `yaml:"objects,omitempty" json:"objects,omitempty"`
}

// Parse validates raw YAML against the seed schema and the format version
// constraint, then decodes it.
func Parse(raw []byte) (*File, error) {
	errb := oops.In("seed")

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errb.Code("SEED_YAML_INVALID").Wrap(err)
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errb.Code("SEED_YAML_INVALID").Wrap(err)
	}

	if err := checkFormatVersion(f.FormatVersion); err != nil {
		return nil, err
	}

	roomVnums := make(map[int32]bool, len(f.Rooms))
	for _, room := range f.Rooms {
		if room.Vnum < f.Area.MinVnum || room.Vnum > f.Area.MaxVnum {
			return nil, errb.Code("SEED_VNUM_OUT_OF_RANGE").
				With("vnum", room.Vnum).
				With("min_vnum", f.Area.MinVnum).
				With("max_vnum", f.Area.MaxVnum).
				Errorf("room vnum %d outside area range [%d, %d]", room.Vnum, f.Area.MinVnum, f.Area.MaxVnum)
		}
		if roomVnums[room.Vnum] {
			return nil, errb.Code("SEED_ROOM_DUPLICATE").
				With("vnum", room.Vnum).
				Errorf("room vnum %d defined twice", room.Vnum)
		}
		roomVnums[room.Vnum] = true
	}

	// Exits may only target rooms defined in the same file, so imports never
	// dangle.
	for _, room := range f.Rooms {
		for _, exit := range room.Exits {
			if !roomVnums[exit.ToVnum] {
				return nil, errb.Code("SEED_EXIT_TARGET_UNDEFINED").
					With("from_vnum", room.Vnum).
					With("to_vnum", exit.ToVnum).
					Errorf("exit %s from room %d targets undefined room %d", exit.Direction, room.Vnum, exit.ToVnum)
			}
		}
	}

	for _, obj := range f.Objects {
		if obj.Vnum < f.Area.MinVnum || obj.Vnum > f.Area.MaxVnum {
			return nil, errb.Code("SEED_VNUM_OUT_OF_RANGE").
				With("vnum", obj.Vnum).
				With("min_vnum", f.Area.MinVnum).
				With("max_vnum", f.Area.MaxVnum).
				Errorf("object vnum %d outside area range [%d, %d]", obj.Vnum, f.Area.MinVnum, f.Area.MaxVnum)
		}
	}

	return &f, nil
}

// validateSchema checks the decoded document against the embedded JSON
// schema. The document is round-tripped through JSON so numeric types match
// what the validator expects.
func validateSchema(doc any) error {
	errb := oops.In("seed")

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return errb.Code("SEED_SCHEMA_CHECK_FAILED").Wrap(err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonDoc))
	if err != nil {
		return errb.Code("SEED_SCHEMA_CHECK_FAILED").Wrap(err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return errb.Code("SEED_SCHEMA_CHECK_FAILED").Wrap(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("seed.schema.json", schemaDoc); err != nil {
		return errb.Code("SEED_SCHEMA_CHECK_FAILED").Wrap(err)
	}
	schema, err := compiler.Compile("seed.schema.json")
	if err != nil {
		return errb.Code("SEED_SCHEMA_CHECK_FAILED").Wrap(err)
	}

	if err := schema.Validate(inst); err != nil {
		return errb.Code("SEED_SCHEMA_VIOLATION").Wrap(err)
	}
	return nil
}

func checkFormatVersion(version string) error {
	errb := oops.In("seed").With("format_version", version)

	v, err := semver.NewVersion(version)
	if err != nil {
		return errb.Code("SEED_FORMAT_VERSION_INVALID").Wrap(err)
	}
	constraint, err := semver.NewConstraint(FormatConstraint)
	if err != nil {
		return errb.Code("SEED_FORMAT_VERSION_INVALID").Wrap(err)
	}
	if !constraint.Check(v) {
		return errb.Code("SEED_FORMAT_VERSION_UNSUPPORTED").
			Errorf("seed format %s is outside supported range %s", version, FormatConstraint)
	}
	return nil
}

// Describe summarizes a parsed file for logs and CLI output.
func (f *File) Describe() string {
	return fmt.Sprintf("%s (%s): %d rooms, %d objects, vnums %d-%d",
		f.Area.Name, f.Area.FileName, len(f.Rooms), len(f.Objects), f.Area.MinVnum, f.Area.MaxVnum)
}
