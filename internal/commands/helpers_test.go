package commands

import (
	"context"
	"sync"
	"testing"

	"github.com/jademud/jademud/internal/game"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs map[string][]string
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{msgs: map[string][]string{}}
}

func (p *recordingPublisher) PublishToEntity(id string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs[id] = append(p.msgs[id], string(data))
	return nil
}

type blueprintStore struct {
	specs map[string]*game.ItemSpec
}

func (s *blueprintStore) Save(id string, v *game.ItemSpec) error { s.specs[id] = v; return nil }
func (s *blueprintStore) Get(id string) *game.ItemSpec           { return s.specs[id] }
func (s *blueprintStore) GetAll() map[string]*game.ItemSpec      { return s.specs }

// fixture is a small two-room world with a merchant, a plain npc, and a
// player, enough for every verb to run against.
type fixture struct {
	world    *game.World
	registry *Registry
	pub      *recordingPublisher

	teahouse *game.Entity
	street   *game.Entity
	chen     *game.Entity
	beggar   *game.Entity
	actor    *game.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	pub := newRecordingPublisher()
	w := game.NewWorld(pub)

	teahouse := game.NewEntity(game.AreaId("teahouse"), "Teahouse").WithRoom(&game.RoomFacet{
		Long:  "Steam curls from a row of clay pots.",
		Exits: map[string]string{"east": game.AreaId("street")},
	})
	street := game.NewEntity(game.AreaId("street"), "Market Street").WithRoom(&game.RoomFacet{
		Long:  "Stalls crowd both sides of the road.",
		Exits: map[string]string{"west": game.AreaId("teahouse")},
	})
	for _, room := range []*game.Entity{teahouse, street} {
		if err := w.Add(room); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	chen := game.NewEntity(game.NPCId("old-chen", "1"), "Old Chen").
		SetShort("a stooped tea seller").
		WithNPC(&game.NPCFacet{
			Inquiry: map[string]string{
				"tea":     "Finest leaves in the valley.",
				"default": "Old Chen hums tunelessly.",
			},
		})
	if err := chen.SetGoods([]game.Good{
		{BlueprintId: "tea", Name: "cup of tea", Price: 5, Stock: -1},
		{BlueprintId: "bun", Name: "steamed bun", Price: 3, Stock: 2},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := chen.Set(game.AttrRecycle, &game.RecyclePolicy{
		Enabled:      true,
		AllowedTypes: []string{"food"},
		PriceRate:    0.5,
		MinPrice:     1,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	beggar := game.NewEntity(game.NPCId("beggar", "1"), "Ragged Beggar").WithNPC(&game.NPCFacet{})

	actor := game.NewEntity(game.PlayerId("Wei"), "Wei")
	if err := actor.SetSilver(50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, e := range []*game.Entity{chen, beggar, actor} {
		if err := w.Add(e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Place(e, teahouse); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items := &blueprintStore{specs: map[string]*game.ItemSpec{
		"tea": {Name: "cup of tea", Type: "drink", Value: 4},
		"bun": {Name: "steamed bun", Type: "food", Value: 2},
	}}

	return &fixture{
		world:    w,
		registry: NewRegistry(w, game.NewSpawner(items)),
		pub:      pub,
		teahouse: teahouse,
		street:   street,
		chen:     chen,
		beggar:   beggar,
		actor:    actor,
	}
}

func (f *fixture) exec(t *testing.T, line string) *Result {
	t.Helper()
	res, err := f.registry.Exec(context.Background(), f.actor, line)
	if err != nil {
		t.Fatalf("exec %q: %v", line, err)
	}
	return res
}

func (f *fixture) give(t *testing.T, name, itemType string, value int) *game.Entity {
	t.Helper()
	item := game.NewEntity(game.ItemId(name, "test"), name)
	if err := item.Set(game.AttrItemType, itemType); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := item.Set(game.AttrItemValue, value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.world.Add(item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.world.Place(item, f.actor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return item
}
