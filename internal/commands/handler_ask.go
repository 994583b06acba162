package commands

import (
	"context"
	"strings"

	"github.com/jademud/jademud/internal/game"
)

// handleAsk runs the npc chat protocol: "ask <npc> about <keyword>", or the
// abbreviated "ask <npc> <keyword>". The npc part may be omitted entirely
// when only one npc is present.
func (r *Registry) handleAsk(ctx context.Context, actor *game.Entity, args string) (*Result, error) {
	room, err := r.room(actor)
	if err != nil {
		return nil, err
	}

	var npc *game.Entity
	npcName, keyword, ok := SplitKeyword(args, "about")
	if ok {
		if keyword == "" {
			return nil, NewUserError("Ask about what?")
		}
		npc, err = resolveNPC(room, actor, npcName)
	} else {
		if strings.TrimSpace(args) == "" {
			return nil, NewUserError("Ask about what?")
		}
		npc, keyword, err = resolveAddressedNPC(room, actor, args)
	}
	if err != nil {
		return nil, err
	}

	reply := game.Ask(npc, actor, keyword)
	return &Result{
		Success: true,
		Message: reply,
		Data: map[string]any{
			"action":  "ask",
			"npcName": npc.Name(),
			"keyword": keyword,
		},
	}, nil
}
