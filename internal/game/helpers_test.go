package game

import (
	"strings"
	"sync"
)

// recordingPublisher captures published messages for assertions.
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

func (p *recordingPublisher) messagesTo(id string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgs[id]
}

func (p *recordingPublisher) received(id, substr string) bool {
	for _, m := range p.messagesTo(id) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// mapStorer is an in-memory Storer for building test dictionaries.
type mapStorer[T interface{ Validate() error }] struct {
	records map[string]T
}

func (s *mapStorer[T]) Save(id string, v T) error {
	if s.records == nil {
		s.records = map[string]T{}
	}
	s.records[id] = v
	return nil
}

func (s *mapStorer[T]) Get(id string) T {
	return s.records[id]
}

func (s *mapStorer[T]) GetAll() map[string]T {
	return s.records
}

func newTestRoom(w *World, id, name string) *Entity {
	room := NewEntity(AreaId(id), name).WithRoom(&RoomFacet{
		Long:  name + " stretches out before you.",
		Exits: map[string]string{},
	})
	if err := w.Add(room); err != nil {
		panic(err)
	}
	return room
}

func newTestPlayer(w *World, room *Entity, name string) *Entity {
	p := NewEntity(PlayerId(name), name)
	if err := w.Add(p); err != nil {
		panic(err)
	}
	if err := w.Place(p, room); err != nil {
		panic(err)
	}
	return p
}
