package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/game"
)

// handleInventory lists what the actor carries, marking equipped items.
func (r *Registry) handleInventory(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	items := actor.Inventory()

	var b strings.Builder
	if len(items) == 0 {
		b.WriteString("You are carrying nothing.")
	} else {
		b.WriteString("You are carrying:\n")
		for _, item := range items {
			mark := ""
			if actor.IsEquipped(item.Id()) {
				mark = " (equipped)"
			}
			fmt.Fprintf(&b, "  %s%s\n", item.Name(), mark)
		}
	}
	fmt.Fprintf(&b, "\nSilver: %d", actor.Silver())

	return &Result{Success: true, Message: b.String()}, nil
}
