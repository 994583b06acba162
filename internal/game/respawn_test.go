package game

import (
	"context"
	"strings"
	"testing"
	"time"
)

func respawnFixture(t *testing.T) (*World, *Dictionary, *Respawner) {
	t.Helper()

	dict := testDictionary()
	dict.NPCs.Get("sect-guard").Respawn = "1m"

	w, err := BuildWorld(dict, newRecordingPublisher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w, dict, NewRespawner(w, dict)
}

func countNPCs(room *Entity, defId string) int {
	n := 0
	prefix := NamespaceNPC + "/" + defId + "#"
	for _, e := range room.Inventory() {
		if facet, ok := e.NPC(); ok && strings.HasPrefix(e.Id(), prefix) && !facet.Defeated {
			n++
		}
	}
	return n
}

func TestRespawnerWaitsOutDelay(t *testing.T) {
	w, _, r := respawnFixture(t)
	clock := time.Unix(1000, 0)
	r.now = func() time.Time { return clock }

	gate := w.Get(AreaId("gate"))
	w.Destroy(w.Get(NPCId("sect-guard", "1")))

	// First tick records the shortfall, second tick is still inside the
	// delay window.
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock = clock.Add(30 * time.Second)
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countNPCs(gate, "sect-guard"); got != 0 {
		t.Fatalf("guard count = %d before the delay elapsed, expected 0", got)
	}

	clock = clock.Add(time.Minute)
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := countNPCs(gate, "sect-guard"); got != 1 {
		t.Fatalf("guard count = %d after the delay elapsed, expected 1", got)
	}
}

func TestRespawnerIgnoresNPCsWithoutRespawn(t *testing.T) {
	w, _, r := respawnFixture(t)
	clock := time.Unix(1000, 0)
	r.now = func() time.Time { return clock }

	teahouse := w.Get(AreaId("teahouse"))
	w.Destroy(w.Get(NPCId("old-chen", "1")))

	for i := 0; i < 3; i++ {
		if err := r.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clock = clock.Add(time.Hour)
	}
	if got := countNPCs(teahouse, "old-chen"); got != 0 {
		t.Errorf("old-chen count = %d, expected 0 (no respawn configured)", got)
	}
}

func TestRespawnerLeavesFullRoomsAlone(t *testing.T) {
	w, _, r := respawnFixture(t)
	clock := time.Unix(1000, 0)
	r.now = func() time.Time { return clock }

	gate := w.Get(AreaId("gate"))
	for i := 0; i < 3; i++ {
		if err := r.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		clock = clock.Add(time.Hour)
	}
	if got := countNPCs(gate, "sect-guard"); got != 1 {
		t.Errorf("guard count = %d, expected the original single spawn", got)
	}
}
