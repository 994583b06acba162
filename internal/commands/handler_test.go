package commands

import (
	"strings"
	"testing"

	"github.com/jademud/jademud/internal/game"
)

func TestAskCommand(t *testing.T) {
	tests := map[string]struct {
		line string
		want string
	}{
		"named npc with keyword": {
			line: "ask Chen about tea",
			want: "Finest leaves in the valley.",
		},
		"unknown keyword falls back to default": {
			line: "ask Chen about dragons",
			want: "Old Chen hums tunelessly.",
		},
		"npc without an inquiry table": {
			line: "ask Beggar about tea",
			want: "Ragged Beggar does not respond.",
		},
		"abbreviated grammar": {
			line: "ask Chen tea",
			want: "Finest leaves in the valley.",
		},
		"abbreviated grammar with multiword name": {
			line: "ask Old Chen tea",
			want: "Finest leaves in the valley.",
		},
		"abbreviated grammar falls back to default reply": {
			line: "ask Chen dragons",
			want: "Old Chen hums tunelessly.",
		},
		"bare keyword with several npcs present": {
			line: "ask tea",
			want: "Which person do you mean?",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			res := f.exec(t, tt.line)
			if res.Message != tt.want {
				t.Errorf("message = %q, expected %q", res.Message, tt.want)
			}
		})
	}
}

func TestAskCommandAbbreviatedResolvesAddressee(t *testing.T) {
	f := newFixture(t)

	// Two npcs share the room, so the leading token has to pick one.
	res := f.exec(t, "ask Chen tea")
	if !res.Success {
		t.Fatalf("ask failed: %s", res.Message)
	}
	if res.Data["npcName"] != "Old Chen" || res.Data["keyword"] != "tea" {
		t.Errorf("data = %v", res.Data)
	}
}

func TestAskCommandMissingKeyword(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "ask")
	if res.Success || res.Message != "Ask about what?" {
		t.Errorf("got %+v", res)
	}
}

func TestBuyCommand(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "buy steamed bun from Chen")
	if !res.Success {
		t.Fatalf("buy failed: %s", res.Message)
	}
	if res.Data["action"] != "buy" || res.Data["price"] != 3 {
		t.Errorf("data = %v", res.Data)
	}
	if f.actor.Silver() != 47 {
		t.Errorf("silver = %d, expected 47", f.actor.Silver())
	}
	if len(f.actor.Inventory()) != 1 {
		t.Error("bought item should land in the inventory")
	}
}

func TestBuyCommandSoleMerchant(t *testing.T) {
	f := newFixture(t)

	// No "from" clause: the room's single merchant is implied, and the
	// beggar standing around does not make it ambiguous.
	res := f.exec(t, "buy cup of tea")
	if !res.Success {
		t.Fatalf("buy failed: %s", res.Message)
	}
}

func TestBuyCommandByIndex(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "buy 2 from Chen")
	if !res.Success {
		t.Fatalf("buy failed: %s", res.Message)
	}
	if res.Data["price"] != 3 {
		t.Errorf("price = %v, expected listing 2's price", res.Data["price"])
	}
}

func TestBuyCommandFromNonMerchant(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "buy tea from Beggar")
	if res.Success || !strings.Contains(res.Message, "no such merchant") {
		t.Errorf("got %+v", res)
	}
}

func TestSellCommand(t *testing.T) {
	f := newFixture(t)
	f.give(t, "steamed bun", "food", 7)

	res := f.exec(t, "sell bun to Chen")
	if !res.Success {
		t.Fatalf("sell failed: %s", res.Message)
	}
	if res.Data["action"] != "sell" || res.Data["price"] != 3 {
		t.Errorf("data = %v", res.Data)
	}
	if f.actor.Silver() != 53 {
		t.Errorf("silver = %d, expected 53", f.actor.Silver())
	}
	if len(f.actor.Inventory()) != 0 {
		t.Error("sold item should be gone")
	}
}

func TestSellCommandEquippedItemRefused(t *testing.T) {
	f := newFixture(t)
	item := f.give(t, "steamed bun", "food", 7)
	if err := f.actor.Equip(item.Id()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := f.exec(t, "sell bun to Chen")
	if res.Success || !strings.Contains(res.Message, "unequip") {
		t.Errorf("got %+v", res)
	}
	if item.Destroyed() {
		t.Error("equipped item must survive a refused sale")
	}
}

func TestListCommand(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "list")
	if !res.Success {
		t.Fatalf("list failed: %s", res.Message)
	}
	if res.Data["action"] != "list_goods" {
		t.Errorf("action = %v", res.Data["action"])
	}
	for _, want := range []string{"1. cup of tea - 5 silver (unlimited)", "2. steamed bun - 3 silver (2 left)"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("listing missing %q:\n%s", want, res.Message)
		}
	}
}

func TestGoCommand(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "go east")
	if !res.Success {
		t.Fatalf("go failed: %s", res.Message)
	}
	if f.actor.Environment() != f.street {
		t.Error("actor should be on the street")
	}
	if !strings.Contains(res.Message, "Stalls crowd both sides") {
		t.Errorf("arrival should describe the new room:\n%s", res.Message)
	}
}

func TestGoCommandVetoStaysPut(t *testing.T) {
	f := newFixture(t)
	f.teahouse.Subscribe(game.EventLeaving, func(ev *game.Event) {
		ev.Cancel()
	})

	res := f.exec(t, "go east")
	if res.Success {
		t.Fatal("vetoed move should not succeed")
	}
	if f.actor.Environment() != f.teahouse {
		t.Error("actor should stay in the teahouse")
	}
}

func TestLookCommand(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, "look")
	if !res.Success {
		t.Fatalf("look failed: %s", res.Message)
	}
	for _, want := range []string{"Teahouse", "Steam curls", "Exits: east"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("description missing %q:\n%s", want, res.Message)
		}
	}

	res = f.exec(t, "look Chen")
	if !strings.Contains(res.Message, "a stooped tea seller") {
		t.Errorf("look at npc = %q", res.Message)
	}
}

func TestEquipRoundTrip(t *testing.T) {
	f := newFixture(t)
	item := f.give(t, "straw hat", "clothing", 1)

	res := f.exec(t, "equip hat")
	if !res.Success {
		t.Fatalf("equip failed: %s", res.Message)
	}
	if !f.actor.IsEquipped(item.Id()) {
		t.Error("item should be equipped")
	}

	res = f.exec(t, "unequip hat")
	if !res.Success {
		t.Fatalf("unequip failed: %s", res.Message)
	}
	if f.actor.IsEquipped(item.Id()) {
		t.Error("item should no longer be equipped")
	}

	res = f.exec(t, "unequip hat")
	if res.Success {
		t.Error("unequipping twice should fail")
	}
}
