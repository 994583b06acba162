package game

// EventType identifies a lifecycle or transition hook on an entity.
type EventType int

const (
	// EventCreated fires on an entity when it is added to the world.
	EventCreated EventType = iota

	// EventDestroyed fires on an entity as it is removed from the world.
	EventDestroyed

	// EventLeaving fires on a source container before one of its contents
	// moves out. Cancellable.
	EventLeaving

	// EventEntering fires on a destination container before an entity moves
	// in. Cancellable.
	EventEntering

	// EventEntered fires on the destination container after a move commits.
	EventEntered
)

// Event is the payload delivered to subscribers. Apart from the cancel flag
// it is not mutated after emission.
type Event struct {
	Type EventType

	// Who is the entity the event is about (the mover, the created entity).
	Who *Entity

	// From and Dest are the containers involved in a transition. Nil for
	// lifecycle events.
	From *Entity
	Dest *Entity

	cancelled bool
}

// Cancel vetoes the operation the event announces. Only meaningful for
// EventLeaving and EventEntering; the emitter checks the flag after every
// subscriber has run.
func (ev *Event) Cancel() {
	ev.cancelled = true
}

func (ev *Event) Cancelled() bool {
	return ev.cancelled
}

// EventFunc handles a single event emission.
type EventFunc func(*Event)

type subscription struct {
	etype EventType
	fn    EventFunc
}

// Subscribe registers fn for events of type t on this entity. Subscribers
// fire synchronously in registration order. The returned func removes the
// subscription; destroying the entity removes all subscriptions.
func (e *Entity) Subscribe(t EventType, fn EventFunc) func() {
	sub := &subscription{etype: t, fn: fn}
	e.subs = append(e.subs, sub)

	return func() {
		for i, s := range e.subs {
			if s == sub {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// emit runs every matching subscriber and returns the event so the caller
// can inspect the cancel flag. All subscribers run even after a cancel; the
// flag gates the commit, not the remaining handlers.
func (e *Entity) emit(ev *Event) *Event {
	// Snapshot: a handler may unsubscribe itself (or others) mid-emission.
	subs := make([]*subscription, len(e.subs))
	copy(subs, e.subs)

	for _, s := range subs {
		if s.etype == ev.Type {
			s.fn(ev)
		}
	}
	return ev
}

// dropSubscriptions removes every handler. Called on destroy so no handler
// outlives its entity.
func (e *Entity) dropSubscriptions() {
	e.subs = nil
}
