package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/game"
	"github.com/jademud/jademud/internal/shop"
)

// handleList shows a merchant's offerings: "list" or "list <merchant>".
func (r *Registry) handleList(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	room, err := r.room(actor)
	if err != nil {
		return nil, err
	}

	merchant, err := resolveMerchant(room, actor, strings.TrimSpace(args))
	if err != nil {
		return nil, err
	}

	sh, err := shop.New(r.world, merchant, r.spawn)
	if err != nil {
		return nil, err
	}

	goods := sh.Goods()
	var b strings.Builder
	fmt.Fprintf(&b, "%s sells:\n", merchant.Name())
	for i, g := range goods {
		fmt.Fprintf(&b, "  %d. %s - %d silver %s\n", i+1, g.Name, g.Price, stockNote(g.Stock))
	}

	return &Result{
		Success: true,
		Message: strings.TrimRight(b.String(), "\n"),
		Data: map[string]any{
			"action":       "list_goods",
			"merchantName": merchant.Name(),
			"goods":        goods,
		},
	}, nil
}

func stockNote(stock int) string {
	switch {
	case stock < 0:
		return "(unlimited)"
	case stock == 0:
		return "(sold out)"
	case stock == 1:
		return "(1 left)"
	default:
		return fmt.Sprintf("(%d left)", stock)
	}
}
