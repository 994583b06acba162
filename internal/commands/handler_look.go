package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/game"
)

// handleLook describes the room, or one of its occupants by name.
func (r *Registry) handleLook(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	room, err := r.room(actor)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(args)
	if name == "" {
		return &Result{Success: true, Message: game.Describe(room, actor)}, nil
	}

	for _, e := range room.Inventory() {
		if e == actor || !e.Match(name) {
			continue
		}
		return &Result{Success: true, Message: describeEntity(e)}, nil
	}
	for _, e := range actor.Inventory() {
		if e.Match(name) {
			return &Result{Success: true, Message: describeEntity(e)}, nil
		}
	}
	return nil, NewUserError(fmt.Sprintf("You see no %q here.", name))
}

func describeEntity(e *game.Entity) string {
	if s := e.Short(); s != "" {
		return fmt.Sprintf("%s: %s", e.Name(), s)
	}
	return fmt.Sprintf("You see nothing special about %s.", e.Name())
}
