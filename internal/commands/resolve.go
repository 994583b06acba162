package commands

import (
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/game"
)

// resolveNPC finds the npc the actor is addressing. A named query matches
// occupants by display name; an empty query requires exactly one npc in the
// room so "ask about tea" works in a one-npc room.
func resolveNPC(room, actor *game.Entity, name string) (*game.Entity, error) {
	return resolveOccupant(room, actor, name, func(e *game.Entity) bool {
		_, ok := e.NPC()
		return ok
	}, "person")
}

// resolveMerchant is resolveNPC narrowed to merchants.
func resolveMerchant(room, actor *game.Entity, name string) (*game.Entity, error) {
	return resolveOccupant(room, actor, name, func(e *game.Entity) bool {
		return e.IsMerchant()
	}, "merchant")
}

// resolveAddressedNPC handles "<npc> <keyword>" with no separating token.
// The longest leading run of tokens naming an npc in the room wins and the
// remainder is the keyword; when no occupant answers to any prefix the
// whole string is the keyword and the room's sole npc is implied.
func resolveAddressedNPC(room, actor *game.Entity, args string) (*game.Entity, string, error) {
	tokens := strings.Fields(args)
	for i := len(tokens) - 1; i >= 1; i-- {
		name := strings.Join(tokens[:i], " ")
		for _, e := range room.Inventory() {
			if e == actor {
				continue
			}
			if _, ok := e.NPC(); !ok {
				continue
			}
			if e.Match(name) {
				return e, strings.Join(tokens[i:], " "), nil
			}
		}
	}

	npc, err := resolveNPC(room, actor, "")
	if err != nil {
		return nil, "", err
	}
	return npc, strings.Join(tokens, " "), nil
}

func resolveOccupant(room, actor *game.Entity, name string, qualifies func(*game.Entity) bool, kind string) (*game.Entity, error) {
	var candidates []*game.Entity
	for _, e := range room.Inventory() {
		if e == actor || !qualifies(e) {
			continue
		}
		candidates = append(candidates, e)
	}

	if name == "" {
		switch len(candidates) {
		case 0:
			return nil, NewUserError("There is nothing to trade with here.")
		case 1:
			return candidates[0], nil
		default:
			return nil, NewUserError(fmt.Sprintf("Which %s do you mean?", kind))
		}
	}

	for _, e := range candidates {
		if e.Match(name) {
			return e, nil
		}
	}
	return nil, NewUserError(fmt.Sprintf("There is no such %s here.", kind))
}

// resolveCarried finds an item in the actor's inventory by name, first
// match in carry order.
func resolveCarried(actor *game.Entity, name string) (*game.Entity, error) {
	for _, e := range actor.Inventory() {
		if e.Match(name) {
			return e, nil
		}
	}
	return nil, NewUserError(fmt.Sprintf("You are not carrying %q.", name))
}
