// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package world

import "strings"

// EquipmentSlot is a fixed body/location tag an object instance occupies when
// worn or wielded. A player holds at most one instance per slot.
type EquipmentSlot string

// The fixed slot enumeration, stored as-is in the equipped_slot column.
const (
	SlotLight   EquipmentSlot = "light"
	SlotFingerL EquipmentSlot = "finger_l"
	SlotFingerR EquipmentSlot = "finger_r"
	SlotNeck1   EquipmentSlot = "neck_1"
	SlotNeck2   EquipmentSlot = "neck_2"
	SlotBody    EquipmentSlot = "body"
	SlotHead    EquipmentSlot = "head"
	SlotLegs    EquipmentSlot = "legs"
	SlotFeet    EquipmentSlot = "feet"
	SlotHands   EquipmentSlot = "hands"
	SlotArms    EquipmentSlot = "arms"
	SlotShield  EquipmentSlot = "shield"
	SlotAbout   EquipmentSlot = "about"
	SlotWaist   EquipmentSlot = "waist"
	SlotWristL  EquipmentSlot = "wrist_l"
	SlotWristR  EquipmentSlot = "wrist_r"
	SlotWield   EquipmentSlot = "wield"
	SlotHold    EquipmentSlot = "hold"
	SlotFloat   EquipmentSlot = "float"
)

// SlotsInOrder lists every slot in display order (top to bottom on a
// character sheet).
var SlotsInOrder = []EquipmentSlot{
	SlotLight,
	SlotFingerL, SlotFingerR,
	SlotNeck1, SlotNeck2,
	SlotBody, SlotHead, SlotLegs, SlotFeet, SlotHands, SlotArms,
	SlotShield, SlotAbout, SlotWaist,
	SlotWristL, SlotWristR,
	SlotWield, SlotHold, SlotFloat,
}

// String returns the string representation of the slot.
func (s EquipmentSlot) String() string {
	return string(s)
}

// Validate checks that the slot is a recognized value.
func (s EquipmentSlot) Validate() error {
	for _, known := range SlotsInOrder {
		if s == known {
			return nil
		}
	}
	return ErrInvalidSlot
}

// Rank returns the slot's position in the fixed display ordering.
// Unknown slots sort last.
func (s EquipmentSlot) Rank() int {
	for i, slot := range SlotsInOrder {
		if s == slot {
			return i
		}
	}
	return len(SlotsInOrder)
}

// DisplayLabel returns the slot label shown in equipment listings.
func (s EquipmentSlot) DisplayLabel() string {
	switch s {
	case SlotLight:
		return "<used as light>"
	case SlotFingerL, SlotFingerR:
		return "<worn on finger>"
	case SlotNeck1, SlotNeck2:
		return "<worn around neck>"
	case SlotBody:
		return "<worn on body>"
	case SlotHead:
		return "<worn on head>"
	case SlotLegs:
		return "<worn on legs>"
	case SlotFeet:
		return "<worn on feet>"
	case SlotHands:
		return "<worn on hands>"
	case SlotArms:
		return "<worn on arms>"
	case SlotShield:
		return "<worn as shield>"
	case SlotAbout:
		return "<worn about body>"
	case SlotWaist:
		return "<worn about waist>"
	case SlotWristL, SlotWristR:
		return "<worn around wrist>"
	case SlotWield:
		return "<wielded>"
	case SlotHold:
		return "<held>"
	case SlotFloat:
		return "<floating nearby>"
	default:
		return "<worn>"
	}
}

// WornPhrase returns prose for "You wear X <phrase>." messages.
func (s EquipmentSlot) WornPhrase() string {
	switch s {
	case SlotLight:
		return "as a light"
	case SlotFingerL, SlotFingerR:
		return "on your finger"
	case SlotNeck1, SlotNeck2:
		return "around your neck"
	case SlotBody:
		return "on your body"
	case SlotHead:
		return "on your head"
	case SlotLegs:
		return "on your legs"
	case SlotFeet:
		return "on your feet"
	case SlotHands:
		return "on your hands"
	case SlotArms:
		return "on your arms"
	case SlotShield:
		return "as a shield"
	case SlotAbout:
		return "about your body"
	case SlotWaist:
		return "about your waist"
	case SlotWristL, SlotWristR:
		return "around your wrist"
	case SlotWield, SlotHold:
		return "in your hand"
	case SlotFloat:
		return "floating nearby"
	default:
		return ""
	}
}

// ParseSlot parses a slot from its stored string representation.
func ParseSlot(s string) (EquipmentSlot, error) {
	slot := EquipmentSlot(normalizeLower(s))
	if err := slot.Validate(); err != nil {
		return "", err
	}
	return slot, nil
}

// SlotsForWearFlags maps an object definition's wear flags onto candidate
// equipment slots, in the order they should be tried when wearing.
// The "take" flag marks an item as portable, not wearable, and yields no slot.
func SlotsForWearFlags(wearFlags string) []EquipmentSlot {
	flags := strings.ToLower(wearFlags)
	var slots []EquipmentSlot
	add := func(contains string, candidates ...EquipmentSlot) {
		if strings.Contains(flags, contains) {
			slots = append(slots, candidates...)
		}
	}
	add("finger", SlotFingerL, SlotFingerR)
	add("neck", SlotNeck1, SlotNeck2)
	add("body", SlotBody)
	add("head", SlotHead)
	add("legs", SlotLegs)
	add("feet", SlotFeet)
	add("hands", SlotHands)
	add("arms", SlotArms)
	add("shield", SlotShield)
	add("about", SlotAbout)
	add("waist", SlotWaist)
	add("wrist", SlotWristL, SlotWristR)
	add("wield", SlotWield)
	add("hold", SlotHold)
	add("float", SlotFloat)
	return slots
}
