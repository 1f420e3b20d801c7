// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chatmud/chatmud/internal/command"
	"github.com/chatmud/chatmud/internal/world"
)

// EquipmentHandler lists worn items slot by slot.
func EquipmentHandler(ctx context.Context, exec *command.Execution) error {
	items, err := exec.Services.World.Equipped(ctx, exec.Player.UserID)
	if err != nil {
		return command.WorldError("Your gear blurs before your eyes.", err)
	}

	if len(items) == 0 {
		reply(exec, "You aren't using anything.")
		return nil
	}

	var b strings.Builder
	b.WriteString("*You are using:*\n")
	for _, item := range items {
		if item.EquippedSlot == nil {
			continue
		}
		fmt.Fprintf(&b, "`%-22s` %s\n", item.EquippedSlot.DisplayLabel(), item.ShortDesc())
	}
	reply(exec, "%s", b.String())
	return nil
}

// WearHandler equips a carried item into a wearable slot. Wielding and
// holding have their own commands, so those slots are excluded here.
func WearHandler(ctx context.Context, exec *command.Execution) error {
	return equipByKeyword(ctx, exec, "wear", wearableSlots(), func(exec *command.Execution, res *world.EquipResult, inst *world.ObjectInstance) {
		reply(exec, "You wear %s %s.", inst.ShortDesc(), res.Slot.WornPhrase())
		broadcast(ctx, exec, exec.Room, fmt.Sprintf("_%s wears %s._", exec.Player.Name, inst.ShortDesc()))
	})
}

// WieldHandler readies a weapon in the wield slot.
func WieldHandler(ctx context.Context, exec *command.Execution) error {
	return equipByKeyword(ctx, exec, "wield", []world.EquipmentSlot{world.SlotWield}, func(exec *command.Execution, res *world.EquipResult, inst *world.ObjectInstance) {
		reply(exec, "You wield %s.", inst.ShortDesc())
		broadcast(ctx, exec, exec.Room, fmt.Sprintf("_%s wields %s._", exec.Player.Name, inst.ShortDesc()))
	})
}

// HoldHandler grips an item in the off-hand hold slot.
func HoldHandler(ctx context.Context, exec *command.Execution) error {
	return equipByKeyword(ctx, exec, "hold", []world.EquipmentSlot{world.SlotHold}, func(exec *command.Execution, res *world.EquipResult, inst *world.ObjectInstance) {
		reply(exec, "You hold %s.", inst.ShortDesc())
		broadcast(ctx, exec, exec.Room, fmt.Sprintf("_%s holds %s._", exec.Player.Name, inst.ShortDesc()))
	})
}

// RemoveHandler takes a worn item off, back into inventory.
func RemoveHandler(ctx context.Context, exec *command.Execution) error {
	words := exec.Args.Words()
	if len(words) == 0 {
		return command.ErrInvalidArgs("remove", "remove <item>")
	}
	keyword := words[0]

	inst, err := exec.Services.World.FindEquipped(ctx, exec.Player.UserID, keyword)
	if err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return command.WorldError(fmt.Sprintf("You aren't wearing '%s'.", keyword), nil)
		}
		return command.WorldError("Your gear blurs before your eyes.", err)
	}

	if err := exec.Services.World.Unequip(ctx, exec.Player, inst); err != nil {
		return command.WorldError("It won't come off.", err)
	}

	reply(exec, "You remove %s.", inst.ShortDesc())
	broadcast(ctx, exec, exec.Room, fmt.Sprintf("_%s removes %s._", exec.Player.Name, inst.ShortDesc()))
	return nil
}

func equipByKeyword(ctx context.Context, exec *command.Execution, verb string, restrict []world.EquipmentSlot, done func(*command.Execution, *world.EquipResult, *world.ObjectInstance)) error {
	words := exec.Args.Words()
	if len(words) == 0 {
		return command.ErrInvalidArgs(verb, verb+" <item>")
	}
	keyword := words[0]

	inst, err := exec.Services.World.FindHeld(ctx, exec.Player.UserID, keyword)
	if err != nil {
		if errors.Is(err, world.ErrNotFound) {
			return command.WorldError(fmt.Sprintf("You aren't carrying '%s'.", keyword), nil)
		}
		return command.WorldError("Your pack refuses to open.", err)
	}

	res, err := exec.Services.World.Equip(ctx, exec.Player, inst, restrict...)
	if err != nil {
		if errors.Is(err, world.ErrNotWearable) {
			return command.WorldError(fmt.Sprintf("You can't %s %s.", verb, inst.ShortDesc()), nil)
		}
		if errors.Is(err, world.ErrSlotConflict) {
			return command.WorldError("You're already using something there.", nil)
		}
		return command.WorldError("It slips from your grasp.", err)
	}

	if res.Replaced != nil {
		reply(exec, "You stop using %s.", res.Replaced.ShortDesc())
	}
	done(exec, res, inst)
	return nil
}

// wearableSlots is every slot except wield and hold, which have dedicated
// commands.
func wearableSlots() []world.EquipmentSlot {
	slots := make([]world.EquipmentSlot, 0, len(world.SlotsInOrder))
	for _, slot := range world.SlotsInOrder {
		if slot == world.SlotWield || slot == world.SlotHold {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}
