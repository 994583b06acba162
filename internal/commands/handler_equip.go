package commands

import (
	"context"
	"fmt"

	"github.com/jademud/jademud/internal/game"
)

// handleEquip marks a carried item as worn.
func (r *Registry) handleEquip(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	if args == "" {
		return nil, NewUserError("Equip what?")
	}
	item, err := resolveCarried(actor, args)
	if err != nil {
		return nil, err
	}
	if actor.IsEquipped(item.Id()) {
		return nil, NewUserError(fmt.Sprintf("You are already wearing %s.", item.Name()))
	}
	if err := actor.Equip(item.Id()); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: fmt.Sprintf("You equip %s.", item.Name())}, nil
}

// handleUnequip clears the worn mark on an item.
func (r *Registry) handleUnequip(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	if args == "" {
		return nil, NewUserError("Unequip what?")
	}
	item, err := resolveCarried(actor, args)
	if err != nil {
		return nil, err
	}
	if !actor.IsEquipped(item.Id()) {
		return nil, NewUserError(fmt.Sprintf("You are not wearing %s.", item.Name()))
	}
	if err := actor.Unequip(item.Id()); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: fmt.Sprintf("You remove %s.", item.Name())}, nil
}
