package commands

import (
	"context"
	"fmt"

	"github.com/jademud/jademud/internal/game"
	"github.com/jademud/jademud/internal/shop"
)

// handleSell offers a carried item to a merchant: "sell <item> to
// <merchant>". Equipped items must be unequipped first.
func (r *Registry) handleSell(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	room, err := r.room(actor)
	if err != nil {
		return nil, err
	}

	itemName, merchantName, ok := SplitKeyword(args, "to")
	if !ok {
		itemName, merchantName = args, ""
	}
	if itemName == "" {
		return nil, NewUserError("Sell what?")
	}

	item, err := resolveCarried(actor, itemName)
	if err != nil {
		return nil, err
	}
	if actor.IsEquipped(item.Id()) {
		return nil, NewUserError(fmt.Sprintf("You must unequip %s first.", item.Name()))
	}

	merchant, err := resolveMerchant(room, actor, merchantName)
	if err != nil {
		return nil, err
	}

	sh, err := shop.New(r.world, merchant, r.spawn)
	if err != nil {
		return nil, err
	}
	res := sh.SellItem(actor, item)
	return &Result{Success: res.Success, Message: res.Message, Data: res.Data}, nil
}
