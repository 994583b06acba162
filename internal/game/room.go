package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-errors"

	"github.com/jademud/jademud/internal/storage"
)

// RoomFacet carries the room-specific state of an entity.
type RoomFacet struct {
	Short       string
	Long        string
	Exits       map[string]string // direction -> room entity id
	Coordinates [3]int
}

// Exit returns the destination room id for a direction, if the room has one.
func (r *RoomFacet) Exit(direction string) (string, bool) {
	dest, ok := r.Exits[strings.ToLower(direction)]
	return dest, ok
}

// Describe renders the room for a player: long text, exits, and the other
// occupants in insertion order.
func Describe(room *Entity, viewer *Entity) string {
	facet, ok := room.Room()
	if !ok {
		return room.Name()
	}

	var b strings.Builder
	b.WriteString(room.Name())
	b.WriteString("\n")
	b.WriteString(facet.Long)

	dirs := make([]string, 0, len(facet.Exits))
	for d := range facet.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	if len(dirs) > 0 {
		b.WriteString(fmt.Sprintf("\nExits: %s", strings.Join(dirs, ", ")))
	}

	for _, e := range room.Inventory() {
		if viewer != nil && e.Id() == viewer.Id() {
			continue
		}
		label := e.Short()
		if label == "" {
			label = e.Name()
		}
		b.WriteString(fmt.Sprintf("\n%s is here.", label))
	}

	return b.String()
}

// RoomSpec is a room definition loaded from asset files. Rooms are virtual:
// each definition is instantiated exactly once at world load and retained
// for the process lifetime.
type RoomSpec struct {
	Name        string                            `json:"name"`
	Short       string                            `json:"short"`
	Long        string                            `json:"long"`
	Coordinates [3]int                            `json:"coordinates"`
	Exits       map[string]storage.Ref[*RoomSpec] `json:"exits,omitempty"`

	// NPCs is the spawn list; list a definition twice for two instances.
	NPCs []storage.Ref[*NPCSpec] `json:"npcs,omitempty"`

	// Checkpoint, when set, gates departures toward a specific destination.
	Checkpoint *Checkpoint `json:"checkpoint,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *RoomSpec) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if r.Long == "" {
		el.Add(fmt.Errorf("room long description is required"))
	}
	for dir, exit := range r.Exits {
		if err := exit.Validate(); err != nil {
			el.Add(fmt.Errorf("exit %s: %w", dir, err))
		}
	}
	if r.Checkpoint != nil {
		el.Add(r.Checkpoint.Validate())
	}

	return el.Err()
}

// Resolve resolves exit and spawn references against the dictionary.
func (r *RoomSpec) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	for dir := range r.Exits {
		exit := r.Exits[dir]
		if err := exit.Resolve(dict.Rooms); err != nil {
			el.Add(fmt.Errorf("exit %s: %w", dir, err))
		}
		r.Exits[dir] = exit
	}
	for i := range r.NPCs {
		el.Add(r.NPCs[i].Resolve(dict.NPCs))
	}
	return el.Err()
}
