package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Respawner re-creates defeated npcs at their spawn points after their
// definition's respawn delay. Driven by the tick driver.
type Respawner struct {
	world *World
	dict  *Dictionary

	// missingSince tracks when a spawn-point shortfall was first observed,
	// keyed by "<roomId>|<npcDefId>".
	missingSince map[string]time.Time

	now func() time.Time
}

func NewRespawner(world *World, dict *Dictionary) *Respawner {
	return &Respawner{
		world:        world,
		dict:         dict,
		missingSince: make(map[string]time.Time),
		now:          time.Now,
	}
}

// Tick satisfies the driver's Manager interface.
func (r *Respawner) Tick(ctx context.Context) error {
	for roomDefId, roomSpec := range r.dict.Rooms.GetAll() {
		room := r.world.Get(AreaId(roomDefId))
		if room == nil {
			continue
		}

		want := map[string]int{}
		for _, ref := range roomSpec.NPCs {
			want[string(ref.Id())]++
		}

		for defId, expected := range want {
			r.reconcile(room, defId, expected)
		}
	}
	return nil
}

func (r *Respawner) reconcile(room *Entity, defId string, expected int) {
	spec := r.dict.NPCs.Get(defId)
	if spec == nil || spec.Respawn == "" {
		return
	}
	delay, err := time.ParseDuration(spec.Respawn)
	if err != nil {
		return
	}

	live := 0
	prefix := NamespaceNPC + "/" + defId + "#"
	for _, e := range room.Inventory() {
		if facet, ok := e.NPC(); ok && strings.HasPrefix(e.Id(), prefix) && !facet.Defeated {
			live++
		}
	}

	key := room.Id() + "|" + defId
	if live >= expected {
		delete(r.missingSince, key)
		return
	}

	since, ok := r.missingSince[key]
	if !ok {
		r.missingSince[key] = r.now()
		return
	}
	if r.now().Sub(since) < delay {
		return
	}

	for i := live; i < expected; i++ {
		if _, err := SpawnNPC(r.world, room, defId, spec, uuid.NewString()[:8]); err != nil {
			slog.Warn("npc respawn failed", "npc", defId, "room", room.Id(), "error", err)
			return
		}
	}
	slog.Info("npc respawned", "npc", defId, "room", room.Id(), "count", expected-live)
	delete(r.missingSince, key)
}
