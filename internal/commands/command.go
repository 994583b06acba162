// Package commands resolves player input lines into verb handlers and runs
// them against the world. Handlers return a Result whose Message goes back
// to the player and whose Data carries the structured trade payloads.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/game"
)

// Result is what a command hands back to its caller. Data is nil for plain
// informational commands.
type Result struct {
	Success bool
	Message string
	Data    map[string]any
}

// HandlerFunc executes one verb. Returning a *UserError turns into a failed
// Result with that message; any other error is a system failure and
// propagates.
type HandlerFunc func(ctx context.Context, actor *game.Entity, args string) (*Result, error)

// Registry maps verbs to handlers.
type Registry struct {
	world    *game.World
	spawn    game.SpawnFunc
	handlers map[string]HandlerFunc
	aliases  map[string]string
}

// NewRegistry builds the verb table with all built-in handlers registered.
func NewRegistry(world *game.World, spawn game.SpawnFunc) *Registry {
	r := &Registry{
		world:    world,
		spawn:    spawn,
		handlers: make(map[string]HandlerFunc),
		aliases:  make(map[string]string),
	}

	r.Register("ask", r.handleAsk)
	r.Register("buy", r.handleBuy)
	r.Register("sell", r.handleSell)
	r.Register("list", r.handleList)
	r.Register("go", r.handleGo)
	r.Register("look", r.handleLook)
	r.Register("inventory", r.handleInventory)
	r.Register("equip", r.handleEquip)
	r.Register("unequip", r.handleUnequip)

	r.Alias("l", "look")
	r.Alias("i", "inventory")
	r.Alias("inv", "inventory")
	r.Alias("wear", "equip")
	r.Alias("remove", "unequip")

	return r
}

// Register binds a verb to a handler, replacing any previous binding.
func (r *Registry) Register(verb string, h HandlerFunc) {
	r.handlers[strings.ToLower(verb)] = h
}

// Alias makes one verb run another's handler.
func (r *Registry) Alias(alias, verb string) {
	r.aliases[strings.ToLower(alias)] = strings.ToLower(verb)
}

// Exec parses an input line and runs the matching handler. Unknown verbs
// and usage mistakes come back as failed Results; only genuine system
// failures return an error.
func (r *Registry) Exec(ctx context.Context, actor *game.Entity, line string) (*Result, error) {
	verb, args := splitVerb(line)
	if verb == "" {
		return &Result{Message: ""}, nil
	}

	key := strings.ToLower(verb)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	h, ok := r.handlers[key]
	if !ok {
		// Bare directions work as movement shorthand.
		if room, err := r.room(actor); err == nil {
			if facet, ok := room.Room(); ok {
				if _, found := facet.Exit(key); found {
					return r.handleGo(ctx, actor, key)
				}
			}
		}
		return &Result{Message: fmt.Sprintf("You don't know how to %q.", verb)}, nil
	}

	res, err := h(ctx, actor, args)
	var ue *UserError
	if errors.As(err, &ue) {
		return &Result{Message: ue.Message}, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// room returns the actor's current room entity.
func (r *Registry) room(actor *game.Entity) (*game.Entity, error) {
	env := actor.Environment()
	if env == nil {
		return nil, NewUserError("You are not in any room.")
	}
	if _, ok := env.Room(); !ok {
		return nil, NewUserError("You are not in any room.")
	}
	return env, nil
}

// splitVerb separates the first token from the rest of the line.
func splitVerb(line string) (verb, args string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
