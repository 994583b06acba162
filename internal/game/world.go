package game

import (
	"fmt"
	"sync"
)

// World is the single source of truth for entity containment. Entities are
// held in an arena keyed by id, with containment kept as two indexes that
// are only ever mutated together: child id to parent id, and parent id to
// the ordered list of child ids. Insertion order in the child list is what
// players see in room and shop listings.
type World struct {
	mu       sync.RWMutex
	entities map[string]*Entity
	parent   map[string]string
	children map[string][]string

	pub Publisher
}

func NewWorld(pub Publisher) *World {
	return &World{
		entities: make(map[string]*Entity),
		parent:   make(map[string]string),
		children: make(map[string][]string),
		pub:      pub,
	}
}

// Add registers an entity as top-level and fires its creation hook.
func (w *World) Add(e *Entity) error {
	w.mu.Lock()
	if _, exists := w.entities[e.id]; exists {
		w.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrEntityExists, e.id)
	}
	w.entities[e.id] = e
	e.world = w
	w.mu.Unlock()

	e.emit(&Event{Type: EventCreated, Who: e})
	return nil
}

// Get returns the entity with the given id, or nil.
func (w *World) Get(id string) *Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.entities[id]
}

// Place puts an entity directly into a container, bypassing the movement
// protocol. Used for initial placement: login, npc spawn, purchase
// materialization. The entity must not already be contained.
func (w *World) Place(e, container *Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[e.id]; !ok {
		return fmt.Errorf("%w: %s", ErrEntityUnknown, e.id)
	}
	if _, ok := w.entities[container.id]; !ok {
		return fmt.Errorf("%w: %s", ErrEntityUnknown, container.id)
	}
	if cur, ok := w.parent[e.id]; ok {
		return fmt.Errorf("placing %s: already contained by %s", e.id, cur)
	}

	w.parent[e.id] = container.id
	w.children[container.id] = append(w.children[container.id], e.id)
	return nil
}

// Destroy detaches an entity, fires its destruction hook, and removes it
// from the arena. Contained entities are destroyed with it. After Destroy
// returns, Destroyed() answers true and no subscriber of the entity will
// fire again.
func (w *World) Destroy(e *Entity) {
	for _, child := range w.Inventory(e) {
		w.Destroy(child)
	}

	e.emit(&Event{Type: EventDestroyed, Who: e})
	e.dropSubscriptions()
	e.destroyed = true

	w.mu.Lock()
	w.detachLocked(e.id)
	delete(w.children, e.id)
	delete(w.entities, e.id)
	w.mu.Unlock()
}

// detachLocked removes the child->parent link and the parent's child-list
// entry together. Caller holds the write lock.
func (w *World) detachLocked(id string) {
	pid, ok := w.parent[id]
	if !ok {
		return
	}
	delete(w.parent, id)

	kids := w.children[pid]
	for i, k := range kids {
		if k == id {
			w.children[pid] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

// Environment returns the container of e, or nil if top-level.
func (w *World) Environment(e *Entity) *Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	pid, ok := w.parent[e.id]
	if !ok {
		return nil
	}
	return w.entities[pid]
}

// Inventory returns the contents of e in insertion order.
func (w *World) Inventory(e *Entity) []*Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ids := w.children[e.id]
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if child := w.entities[id]; child != nil {
			out = append(out, child)
		}
	}
	return out
}

// verifyLocked checks bidirectional containment consistency for one entity.
// A violation means corrupted world state and is the one condition the
// engine treats as fatal rather than as a result value.
func (w *World) verifyLocked(id string) error {
	pid, ok := w.parent[id]
	if !ok {
		return nil
	}
	for _, k := range w.children[pid] {
		if k == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %s claims environment %s which does not list it", ErrContainmentCorrupt, id, pid)
}

// Broadcast delivers a message to every entity directly contained in room,
// except the optional excluded sender.
func (w *World) Broadcast(room *Entity, except *Entity, msg string) {
	if w.pub == nil {
		return
	}
	for _, e := range w.Inventory(room) {
		if except != nil && e.id == except.id {
			continue
		}
		// Delivery failures are per-recipient; one dead subscriber must not
		// block the rest of the room.
		_ = w.pub.PublishToEntity(e.id, []byte(msg))
	}
}

// Tell delivers a message directly to one entity.
func (w *World) Tell(e *Entity, msg string) {
	if w.pub == nil {
		return
	}
	_ = w.pub.PublishToEntity(e.id, []byte(msg))
}
