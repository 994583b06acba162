package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/pixil98/go-errors"
)

// Checkpoint gates departures from a room toward one specific destination.
// While an active guard stands in the room, a mover must either share the
// guard's affiliation or carry a currently-valid temp pass; the pass is
// consumed on the single permitted crossing. A guard that is fighting,
// defeated, or destroyed does not block anyone.
type Checkpoint struct {
	// Dest is the gated destination room entity id.
	Dest string `json:"dest"`

	// GuardPrefix identifies the guard among the room's occupants by
	// entity id prefix.
	GuardPrefix string `json:"guard_prefix"`

	// Affiliation passes unchallenged.
	Affiliation string `json:"affiliation"`

	// PassKey is the temp key a valid pass is stored under.
	PassKey string `json:"pass_key"`

	// Denial is spoken directly to a rejected mover.
	Denial string `json:"denial"`

	// now is a test seam; zero value means time.Now.
	now func() time.Time
}

func (c *Checkpoint) Validate() error {
	el := errors.NewErrorList()
	if c.Dest == "" {
		el.Add(fmt.Errorf("checkpoint dest is required"))
	}
	if c.GuardPrefix == "" {
		el.Add(fmt.Errorf("checkpoint guard_prefix is required"))
	}
	if c.PassKey == "" {
		el.Add(fmt.Errorf("checkpoint pass_key is required"))
	}
	if c.Denial == "" {
		el.Add(fmt.Errorf("checkpoint denial message is required"))
	}
	return el.Err()
}

// Install subscribes the checkpoint to the room's pre-leave hook. Returns
// the unsubscribe func.
func (c *Checkpoint) Install(room *Entity) func() {
	return room.Subscribe(EventLeaving, func(ev *Event) {
		if ev.Cancelled() {
			// Someone earlier in the chain already vetoed; the move will
			// not commit, so the checkpoint must not charge for it.
			return
		}
		if ev.Dest == nil || ev.Dest.Id() != c.Dest {
			return
		}

		guard := c.activeGuard(room)
		if guard == nil {
			return
		}

		if ev.Who.Affiliation() == guard.Affiliation() {
			return
		}

		if PassValid(ev.Who, c.PassKey, c.clock()) {
			// The pass pays for a crossing, not an attempt: consume it
			// only once the mover actually arrives. A destination-side
			// veto means no arrival and the pass stays spendable.
			c.consumeOnArrival(room, ev.Who, ev.Dest)
			return
		}

		ev.Cancel()
		if room.world != nil {
			room.world.Tell(ev.Who, c.Denial)
		}
	})
}

// consumeOnArrival hooks the destination's post-commit event and zeroes the
// mover's pass on their next arrival from the guarded room. One shot: the
// hook removes itself the first time the mover enters, whether or not that
// entry came through the checkpoint.
func (c *Checkpoint) consumeOnArrival(room, mover, dest *Entity) {
	var unsub func()
	unsub = dest.Subscribe(EventEntered, func(ev *Event) {
		if ev.Who != mover {
			return
		}
		unsub()
		if ev.From == room {
			_ = mover.SetTemp(c.PassKey, 0)
		}
	})
}

// activeGuard finds the first occupant matching the guard prefix that is
// still capable of guarding.
func (c *Checkpoint) activeGuard(room *Entity) *Entity {
	for _, e := range room.Inventory() {
		if !strings.HasPrefix(e.Id(), c.GuardPrefix) {
			continue
		}
		facet, ok := e.NPC()
		if !ok {
			continue
		}
		// A fighting guard is treated as distracted and does not block.
		if e.Destroyed() || facet.Defeated || facet.InCombat {
			continue
		}
		return e
	}
	return nil
}

func (c *Checkpoint) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
