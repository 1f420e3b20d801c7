// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectDefinition_MatchesKeyword(t *testing.T) {
	def := &ObjectDefinition{Keywords: "sword long blade"}

	assert.True(t, def.MatchesKeyword("sword"))
	assert.True(t, def.MatchesKeyword("SW"))
	assert.True(t, def.MatchesKeyword("blade"))
	assert.False(t, def.MatchesKeyword("axe"))
	assert.False(t, def.MatchesKeyword(""))
	assert.False(t, def.MatchesKeyword("   "))
}

func TestNewObjectInstance(t *testing.T) {
	inst, err := NewObjectInstance("01ARZ3NDEKTSV4RRFFQ69G5FAV", 3001, Containment{
		LocationType: LocationPlayer,
		HolderID:     "U1",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3001), inst.Vnum)
	assert.Equal(t, int32(100), inst.Condition)
	assert.True(t, inst.HeldBy("U1"))
	assert.False(t, inst.IsEquipped())
}

func TestNewObjectInstance_Invalid(t *testing.T) {
	_, err := NewObjectInstance("", 3001, Containment{LocationType: LocationRoom, HolderID: "C1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = NewObjectInstance("id", 3001, Containment{LocationType: "closet", HolderID: "C1"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "location_type", verr.Field)

	_, err = NewObjectInstance("id", 3001, Containment{LocationType: LocationRoom, HolderID: ""})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "holder_id", verr.Field)

	_, err = NewObjectInstance("id", 3001, Containment{LocationType: LocationEquipped, HolderID: "U1"})
	require.ErrorAs(t, err, &verr)
}

func TestObjectInstance_ShortDesc(t *testing.T) {
	inst := &ObjectInstance{}
	assert.Equal(t, "something", inst.ShortDesc())

	inst.Definition = &ObjectDefinition{ShortDesc: "a long sword"}
	assert.Equal(t, "a long sword", inst.ShortDesc())
}
