// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"strings"
	"time"
)

// LocationType says what kind of holder contains an object instance.
type LocationType string

// Holder kinds for object instances.
const (
	LocationRoom      LocationType = "room"
	LocationPlayer    LocationType = "player"
	LocationContainer LocationType = "container"
	LocationEquipped  LocationType = "equipped"
)

// String returns the string representation of the location type.
func (l LocationType) String() string {
	return string(l)
}

// Validate checks that the location type is a recognized value.
func (l LocationType) Validate() error {
	switch l {
	case LocationRoom, LocationPlayer, LocationContainer, LocationEquipped:
		return nil
	default:
		return &ValidationError{Field: "location_type", Message: "unknown location type"}
	}
}

// ObjectDefinition is an item template imported from an area file. Instances
// reference the template by vnum; the template itself is immutable at runtime.
type ObjectDefinition struct {
	Vnum       int32
	Keywords   string
	ShortDesc  string
	LongDesc   string
	Material   string
	ItemType   string
	WearFlags  string
	ExtraFlags string
	Value0     int32
	Value1     int32
	Value2     string
	Value3     int32
	Weight     int32
	Cost       int32
	Level      int32
	Condition  int32
	AreaID     *int32
}

// MatchesKeyword reports whether word matches one of the definition's
// space-separated keywords by case-insensitive prefix.
func (d *ObjectDefinition) MatchesKeyword(word string) bool {
	needle := normalizeLower(word)
	if needle == "" {
		return false
	}
	for _, kw := range strings.Fields(strings.ToLower(d.Keywords)) {
		if strings.HasPrefix(kw, needle) {
			return true
		}
	}
	return false
}

// WearSlots returns the candidate equipment slots for this definition.
func (d *ObjectDefinition) WearSlots() []EquipmentSlot {
	return SlotsForWearFlags(d.WearFlags)
}

// Containment locates an instance: what kind of holder and which one.
type Containment struct {
	LocationType LocationType
	HolderID     string
}

// ObjectInstance is a concrete item in the world, stamped from a definition.
// EquippedSlot is set exactly when LocationType is LocationEquipped.
type ObjectInstance struct {
	ID           string
	Vnum         int32
	Containment  Containment
	EquippedSlot *EquipmentSlot
	Condition    int32
	Timer        *int32
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Definition is populated by queries that join the template.
	Definition *ObjectDefinition
}

// NewObjectInstance stamps an instance of the given template into a holder.
// The ID must be a fresh ULID.
func NewObjectInstance(id string, vnum int32, loc Containment) (*ObjectInstance, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if err := loc.LocationType.Validate(); err != nil {
		return nil, err
	}
	if loc.HolderID == "" {
		return nil, &ValidationError{Field: "holder_id", Message: "cannot be empty"}
	}
	if loc.LocationType == LocationEquipped {
		return nil, &ValidationError{Field: "location_type", Message: "instances start unequipped"}
	}
	now := time.Now().UTC()
	return &ObjectInstance{
		ID:          id,
		Vnum:        vnum,
		Containment: loc,
		Condition:   100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsEquipped reports whether the instance currently occupies a slot.
func (o *ObjectInstance) IsEquipped() bool {
	return o.Containment.LocationType == LocationEquipped && o.EquippedSlot != nil
}

// HeldBy reports whether the instance is carried (not equipped) by the player.
func (o *ObjectInstance) HeldBy(playerID string) bool {
	return o.Containment.LocationType == LocationPlayer && o.Containment.HolderID == playerID
}

// ShortDesc returns the joined template's short description, or a fallback.
func (o *ObjectInstance) ShortDesc() string {
	if o.Definition != nil && o.Definition.ShortDesc != "" {
		return o.Definition.ShortDesc
	}
	return "something"
}
