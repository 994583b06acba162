package game

import (
	"fmt"
	"sort"
	"time"
)

// BuildWorld instantiates the virtual world from its definitions: one
// entity per room, npc instances per spawn list, and checkpoint handlers
// installed. Virtual entities live for the process lifetime.
func BuildWorld(dict *Dictionary, pub Publisher) (*World, error) {
	w := NewWorld(pub)

	rooms := dict.Rooms.GetAll()
	ids := make([]string, 0, len(rooms))
	for id := range rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		spec := rooms[id]
		room := NewEntity(AreaId(id), spec.Name).
			SetShort(spec.Short).
			WithRoom(roomFacet(id, spec, dict))
		if err := w.Add(room); err != nil {
			return nil, fmt.Errorf("building room %s: %w", id, err)
		}
	}

	// Second pass: spawn npcs and install checkpoints, now that every exit
	// destination exists.
	counts := map[string]int{}
	for _, id := range ids {
		spec := rooms[id]
		room := w.Get(AreaId(id))

		for _, ref := range spec.NPCs {
			counts[string(ref.Id())]++
			instance := fmt.Sprintf("%d", counts[string(ref.Id())])
			if _, err := SpawnNPC(w, room, string(ref.Id()), ref.Get(), instance); err != nil {
				return nil, fmt.Errorf("spawning npc %s in %s: %w", ref.Id(), id, err)
			}
		}

		if spec.Checkpoint != nil {
			spec.Checkpoint.Install(room)
		}
	}

	return w, nil
}

func roomFacet(id string, spec *RoomSpec, dict *Dictionary) *RoomFacet {
	exits := make(map[string]string, len(spec.Exits))
	for dir, ref := range spec.Exits {
		exits[dir] = AreaId(string(ref.Id()))
	}
	return &RoomFacet{
		Short:       spec.Short,
		Long:        spec.Long,
		Exits:       exits,
		Coordinates: spec.Coordinates,
	}
}

// SpawnNPC materializes one npc instance from its definition and places it
// in the given room.
func SpawnNPC(w *World, room *Entity, defId string, spec *NPCSpec, instance string) (*Entity, error) {
	facet := &NPCFacet{
		Inquiry: spec.Inquiry,
	}
	if spec.Pass != nil {
		facet.OnChat = passGrantHook(spec.Pass)
	}

	e := NewEntity(NPCId(defId, instance), spec.Name).
		SetShort(spec.Short).
		WithNPC(facet)

	if spec.Affiliation != "" {
		if err := e.Set(AttrAffiliation, spec.Affiliation); err != nil {
			return nil, err
		}
	}
	if spec.Silver > 0 {
		if err := e.SetSilver(spec.Silver); err != nil {
			return nil, err
		}
	}
	if spec.Merchant != nil {
		if err := e.SetGoods(spec.Merchant.Goods); err != nil {
			return nil, err
		}
		if spec.Merchant.Recycle != nil {
			if err := e.Set(AttrRecycle, spec.Merchant.Recycle); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Add(e); err != nil {
		return nil, err
	}
	if err := w.Place(e, room); err != nil {
		return nil, err
	}
	return e, nil
}

// passGrantHook builds the chat hook that hands out a timed pass when the
// configured keyword is asked about.
func passGrantHook(spec *PassGrantSpec) ChatFunc {
	ttl, err := time.ParseDuration(spec.TTL)
	if err != nil {
		// Validate() rejects bad durations before the world is built.
		return nil
	}
	return func(speaker *Entity, keyword string) {
		if keyword != spec.Keyword {
			return
		}
		_ = GrantPass(speaker, spec.Key, time.Now().Add(ttl))
	}
}
