package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/game"
)

// handleGo moves the actor through a named exit. Movement may be vetoed,
// in which case whoever vetoed has already told the actor why.
func (r *Registry) handleGo(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	room, err := r.room(actor)
	if err != nil {
		return nil, err
	}
	facet, _ := room.Room()

	direction := strings.ToLower(strings.TrimSpace(args))
	if direction == "" {
		return nil, NewUserError("Go where?")
	}

	destId, ok := facet.Exit(direction)
	if !ok {
		return nil, NewUserError(fmt.Sprintf("You cannot go %s from here.", direction))
	}
	dest := r.world.Get(destId)
	if dest == nil {
		return nil, NewUserError(fmt.Sprintf("You cannot go %s from here.", direction))
	}

	moved, err := r.world.MoveTo(ctx, actor, dest, game.MoveOpts{})
	if err != nil {
		return nil, err
	}
	if !moved {
		return &Result{Message: "You stay where you are."}, nil
	}

	return &Result{
		Success: true,
		Message: game.Describe(dest, actor),
		Data:    map[string]any{"action": "go", "roomId": dest.Id()},
	}, nil
}
