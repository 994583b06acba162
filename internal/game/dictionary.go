package game

import (
	"fmt"

	"github.com/jademud/jademud/internal/storage"
)

// Dictionary holds the definition stores the world is built from.
type Dictionary struct {
	Rooms storage.Storer[*RoomSpec]
	NPCs  storage.Storer[*NPCSpec]
	Items storage.Storer[*ItemSpec]
}

// Resolve resolves cross-store references on every definition. Called once
// after all stores are loaded, before the world is built.
func (d *Dictionary) Resolve() error {
	for id, room := range d.Rooms.GetAll() {
		if err := room.Resolve(d); err != nil {
			return fmt.Errorf("room %s: %w", id, err)
		}
	}
	for id, npc := range d.NPCs.GetAll() {
		if err := npc.Resolve(d); err != nil {
			return fmt.Errorf("npc %s: %w", id, err)
		}
	}
	return nil
}
