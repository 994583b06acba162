package game

import (
	"context"
	"testing"

	"github.com/jademud/jademud/internal/storage"
)

func testDictionary() *Dictionary {
	items := &mapStorer[*ItemSpec]{}
	_ = items.Save("tea", &ItemSpec{Name: "cup of tea", Type: "drink", Value: 4})

	npcs := &mapStorer[*NPCSpec]{}
	chen := &NPCSpec{
		Name:        "Old Chen",
		Short:       "a stooped tea seller",
		Affiliation: "teahouse",
		Silver:      200,
		Inquiry:     map[string]string{"tea": "Finest leaves in the valley.", "default": "Hmm?"},
		Merchant: &MerchantSpec{
			Goods: []Good{{BlueprintId: "tea", Name: "cup of tea", Price: 5, Stock: -1}},
		},
	}
	_ = npcs.Save("old-chen", chen)
	guard := &NPCSpec{
		Name:        "Sect Guard",
		Affiliation: "iron-sect",
		Pass: &PassGrantSpec{
			Keyword: "passage",
			Key:     "gate_pass",
			TTL:     "5m",
		},
	}
	_ = npcs.Save("sect-guard", guard)

	rooms := &mapStorer[*RoomSpec]{}
	_ = rooms.Save("teahouse", &RoomSpec{
		Name: "Teahouse",
		Long: "Steam curls from a row of clay pots.",
		Exits: map[string]storage.Ref[*RoomSpec]{
			"east": storage.NewRef[*RoomSpec]("gate"),
		},
		NPCs: []storage.Ref[*NPCSpec]{storage.NewResolvedRef("old-chen", chen)},
	})
	_ = rooms.Save("gate", &RoomSpec{
		Name: "Sect Gate",
		Long: "A lacquered gate blocks the mountain path.",
		Exits: map[string]storage.Ref[*RoomSpec]{
			"west":  storage.NewRef[*RoomSpec]("teahouse"),
			"north": storage.NewRef[*RoomSpec]("hall"),
		},
		NPCs: []storage.Ref[*NPCSpec]{storage.NewResolvedRef("sect-guard", guard)},
		Checkpoint: &Checkpoint{
			Dest:        AreaId("hall"),
			GuardPrefix: NamespaceNPC + "/sect-guard",
			Affiliation: "iron-sect",
			PassKey:     "gate_pass",
			Denial:      "The guard bars your way.",
		},
	})
	_ = rooms.Save("hall", &RoomSpec{
		Name: "Inner Hall",
		Long: "Incense hangs in the still air.",
	})

	return &Dictionary{Rooms: rooms, NPCs: npcs, Items: items}
}

func TestBuildWorldRooms(t *testing.T) {
	w, err := BuildWorld(testDictionary(), newRecordingPublisher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []string{"teahouse", "gate", "hall"} {
		if w.Get(AreaId(id)) == nil {
			t.Errorf("room %q missing from built world", id)
		}
	}

	gate := w.Get(AreaId("gate"))
	facet, ok := gate.Room()
	if !ok {
		t.Fatal("gate should carry a room facet")
	}
	if got := facet.Exits["west"]; got != AreaId("teahouse") {
		t.Errorf("west exit = %q, expected %q", got, AreaId("teahouse"))
	}
	if got := facet.Exits["north"]; got != AreaId("hall") {
		t.Errorf("north exit = %q, expected %q", got, AreaId("hall"))
	}
}

func TestBuildWorldSpawnsNPCs(t *testing.T) {
	w, err := BuildWorld(testDictionary(), newRecordingPublisher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chen := w.Get(NPCId("old-chen", "1"))
	if chen == nil {
		t.Fatal("old-chen instance 1 not spawned")
	}
	if chen.Environment() != w.Get(AreaId("teahouse")) {
		t.Error("old-chen should stand in the teahouse")
	}
	if chen.Name() != "Old Chen" {
		t.Errorf("name = %q, expected %q", chen.Name(), "Old Chen")
	}
	if got := chen.Affiliation(); got != "teahouse" {
		t.Errorf("affiliation = %q, expected %q", got, "teahouse")
	}
	if got := chen.Silver(); got != 200 {
		t.Errorf("silver = %d, expected 200", got)
	}
	if !chen.IsMerchant() {
		t.Error("old-chen should be a merchant")
	}
	goods := chen.Goods()
	if len(goods) != 1 || goods[0].BlueprintId != "tea" {
		t.Errorf("goods = %v, expected the tea listing", goods)
	}

	speaker := NewEntity(PlayerId("Wei"), "Wei")
	if got := Ask(chen, speaker, "tea"); got != "Finest leaves in the valley." {
		t.Errorf("Ask(tea) = %q", got)
	}
}

func TestBuildWorldInstallsCheckpoint(t *testing.T) {
	w, err := BuildWorld(testDictionary(), newRecordingPublisher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gate := w.Get(AreaId("gate"))
	hall := w.Get(AreaId("hall"))
	outsider := newTestPlayer(w, gate, "Wei")

	ok, err := w.MoveTo(context.Background(), outsider, hall, MoveOpts{Quiet: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("outsider should be blocked at the built checkpoint")
	}

	// The guard's chat hook grants a pass which then admits the mover.
	guard := w.Get(NPCId("sect-guard", "1"))
	if guard == nil {
		t.Fatal("sect-guard instance 1 not spawned")
	}
	Ask(guard, outsider, "passage")

	ok, err = w.MoveTo(context.Background(), outsider, hall, MoveOpts{Quiet: true})
	if err != nil || !ok {
		t.Fatalf("move = (%v, %v), expected success after asking for passage", ok, err)
	}
}

func TestBuildWorldNumbersDuplicateSpawns(t *testing.T) {
	dict := testDictionary()
	spec := dict.Rooms.Get("teahouse")
	spec.NPCs = append(spec.NPCs, storage.NewResolvedRef("old-chen", dict.NPCs.Get("old-chen")))

	w, err := BuildWorld(dict, newRecordingPublisher())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Get(NPCId("old-chen", "1")) == nil || w.Get(NPCId("old-chen", "2")) == nil {
		t.Error("duplicate spawns should be numbered 1 and 2")
	}
}
