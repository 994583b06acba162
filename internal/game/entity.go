package game

import (
	"fmt"
	"strings"

	"github.com/jademud/jademud/internal/storage"
)

// Entity id namespaces. Every entity id is "<namespace>/<path>", with
// instanced entities (npcs, items) carrying an "#<instance>" suffix.
const (
	NamespaceArea   = "area"
	NamespacePlayer = "player"
	NamespaceNPC    = "npc"
	NamespaceItem   = "item"
)

func AreaId(path string) string {
	return NamespaceArea + "/" + path
}

func PlayerId(name string) string {
	return NamespacePlayer + "/" + strings.ToLower(name)
}

func NPCId(path, instance string) string {
	return fmt.Sprintf("%s/%s#%s", NamespaceNPC, path, instance)
}

func ItemId(path, instance string) string {
	return fmt.Sprintf("%s/%s#%s", NamespaceItem, path, instance)
}

// Namespace returns the leading namespace segment of an entity id.
func Namespace(id string) string {
	ns, _, ok := strings.Cut(id, "/")
	if !ok {
		return ""
	}
	return ns
}

// Entity is the one concrete game-object type. Rooms, players, npcs, items
// and merchants are all entities; what varies is which facets they carry
// and which attribute keys are set on them.
type Entity struct {
	id    string
	name  string
	short string

	// attrs persists with the entity. temp is session scratch space and is
	// never written to storage.
	attrs storage.Bag
	temp  storage.Bag

	room *RoomFacet
	npc  *NPCFacet

	subs []*subscription

	world     *World
	destroyed bool
}

func NewEntity(id, name string) *Entity {
	return &Entity{
		id:    id,
		name:  name,
		attrs: storage.Bag{},
		temp:  storage.Bag{},
	}
}

func (e *Entity) Id() string {
	return e.id
}

func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) Short() string {
	if e.short == "" {
		return e.name
	}
	return e.short
}

func (e *Entity) SetShort(s string) *Entity {
	e.short = s
	return e
}

// Get unmarshals the persisted attribute at key into out.
func (e *Entity) Get(key string, out any) (bool, error) {
	return e.attrs.Get(key, out)
}

// Set stores a persisted attribute.
func (e *Entity) Set(key string, v any) error {
	return e.attrs.Set(key, v)
}

// GetTemp unmarshals the session-scoped value at key into out.
func (e *Entity) GetTemp(key string, out any) (bool, error) {
	return e.temp.Get(key, out)
}

// SetTemp stores a session-scoped value. Temp values are never persisted.
func (e *Entity) SetTemp(key string, v any) error {
	return e.temp.Set(key, v)
}

// Attrs exposes the persisted bag for save/restore plumbing.
func (e *Entity) Attrs() storage.Bag {
	return e.attrs
}

// RestoreAttrs replaces the persisted bag wholesale (login restore).
func (e *Entity) RestoreAttrs(b storage.Bag) {
	if b == nil {
		b = storage.Bag{}
	}
	e.attrs = b
}

func (e *Entity) WithRoom(r *RoomFacet) *Entity {
	e.room = r
	return e
}

func (e *Entity) WithNPC(n *NPCFacet) *Entity {
	e.npc = n
	return e
}

// Room returns the room facet, if this entity is a room.
func (e *Entity) Room() (*RoomFacet, bool) {
	return e.room, e.room != nil
}

// NPC returns the npc facet, if this entity is an npc.
func (e *Entity) NPC() (*NPCFacet, bool) {
	return e.npc, e.npc != nil
}

// Environment returns the entity's current container, or nil for top-level
// entities such as rooms.
func (e *Entity) Environment() *Entity {
	if e.world == nil {
		return nil
	}
	return e.world.Environment(e)
}

// Inventory returns the directly-contained entities in insertion order.
func (e *Entity) Inventory() []*Entity {
	if e.world == nil {
		return nil
	}
	return e.world.Inventory(e)
}

// Destroyed reports whether the entity has been removed from the world.
// Anything holding a stale reference must treat a destroyed entity as gone.
func (e *Entity) Destroyed() bool {
	return e.destroyed
}

// Match reports whether query names this entity: either a case-sensitive
// substring of the display name, or an exact match ignoring case.
func (e *Entity) Match(query string) bool {
	return MatchName(e.name, query)
}

// MatchName is the naming rule behind Match, usable against any display
// name (shop listings, for instance).
func MatchName(name, query string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(name, query) {
		return true
	}
	return strings.EqualFold(name, query)
}
