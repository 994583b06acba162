package commands

import (
	"context"

	"github.com/jademud/jademud/internal/game"
	"github.com/jademud/jademud/internal/shop"
)

// handleBuy purchases a listed good: "buy <good> from <merchant>". The
// merchant part may be omitted when only one merchant is present; the good
// may be a name or a 1-based listing position.
func (r *Registry) handleBuy(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	room, err := r.room(actor)
	if err != nil {
		return nil, err
	}

	goodName, merchantName, ok := SplitKeyword(args, "from")
	if !ok {
		goodName, merchantName = args, ""
	}
	if goodName == "" {
		return nil, NewUserError("Buy what?")
	}

	merchant, err := resolveMerchant(room, actor, merchantName)
	if err != nil {
		return nil, err
	}

	sh, err := shop.New(r.world, merchant, r.spawn)
	if err != nil {
		return nil, err
	}
	res := sh.BuyGood(actor, goodName)
	return &Result{Success: res.Success, Message: res.Message, Data: res.Data}, nil
}
