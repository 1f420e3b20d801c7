// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("  Wield ")
	require.NoError(t, err)
	assert.Equal(t, SlotWield, slot)

	_, err = ParseSlot("elbow")
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestSlotsInOrder_CoversValidate(t *testing.T) {
	for _, slot := range SlotsInOrder {
		assert.NoError(t, slot.Validate(), "slot %s", slot)
	}
	assert.Len(t, SlotsInOrder, 19)
}

func TestSlotDisplayLabel(t *testing.T) {
	assert.Equal(t, "<wielded>", SlotWield.DisplayLabel())
	assert.Equal(t, "<worn on finger>", SlotFingerL.DisplayLabel())
	assert.Equal(t, "<worn on finger>", SlotFingerR.DisplayLabel())
	assert.Equal(t, "<used as light>", SlotLight.DisplayLabel())
	assert.Equal(t, "<floating nearby>", SlotFloat.DisplayLabel())
}

func TestSlotsForWearFlags(t *testing.T) {
	tests := []struct {
		flags string
		want  []EquipmentSlot
	}{
		{"take finger", []EquipmentSlot{SlotFingerL, SlotFingerR}},
		{"take wield", []EquipmentSlot{SlotWield}},
		{"take body", []EquipmentSlot{SlotBody}},
		{"take neck", []EquipmentSlot{SlotNeck1, SlotNeck2}},
		{"take", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.flags, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotsForWearFlags(tt.flags))
		})
	}
}
