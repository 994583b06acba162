package game

import (
	"context"
	"fmt"
)

// MoveOpts tunes a single MoveTo call.
type MoveOpts struct {
	// Quiet suppresses the departure/arrival broadcasts.
	Quiet bool
}

// MoveTo transitions mover from its current container into dest.
//
// The protocol: a cancellable EventLeaving fires on the source container,
// then a cancellable EventEntering on the destination. If any subscriber
// cancels, nothing has been mutated and the call returns false — a veto is
// an expected outcome, not an error. Otherwise the containment indexes are
// updated together under the world lock, departure/arrival broadcasts go
// out (unless opts.Quiet), EventEntered fires on the destination, and the
// call returns true.
//
// The only error conditions are corrupted containment state and
// unregistered entities; those abort before any event fires.
func (w *World) MoveTo(ctx context.Context, mover, dest *Entity, opts MoveOpts) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Validate fully before any subscriber or mutation sees the move.
	w.mu.RLock()
	_, moverKnown := w.entities[mover.id]
	_, destKnown := w.entities[dest.id]
	verifyErr := w.verifyLocked(mover.id)
	w.mu.RUnlock()

	if !moverKnown {
		return false, fmt.Errorf("moving %s: %w", mover.id, ErrEntityUnknown)
	}
	if !destKnown {
		return false, fmt.Errorf("moving %s to %s: %w", mover.id, dest.id, ErrEntityUnknown)
	}
	if verifyErr != nil {
		return false, verifyErr
	}
	if mover.destroyed || dest.destroyed {
		return false, fmt.Errorf("moving %s to %s: %w", mover.id, dest.id, ErrEntityUnknown)
	}

	source := w.Environment(mover)
	if source == dest {
		return true, nil
	}

	if source != nil {
		ev := source.emit(&Event{Type: EventLeaving, Who: mover, From: source, Dest: dest})
		if ev.Cancelled() {
			return false, nil
		}
	}

	ev := dest.emit(&Event{Type: EventEntering, Who: mover, From: source, Dest: dest})
	if ev.Cancelled() {
		return false, nil
	}

	// Commit. Both indexes change under one critical section so no other
	// command ever observes the mover half-moved.
	w.mu.Lock()
	w.detachLocked(mover.id)
	w.parent[mover.id] = dest.id
	w.children[dest.id] = append(w.children[dest.id], mover.id)
	w.mu.Unlock()

	if !opts.Quiet {
		if source != nil {
			if _, ok := source.Room(); ok {
				w.Broadcast(source, mover, fmt.Sprintf("%s leaves.", mover.Name()))
			}
		}
		if _, ok := dest.Room(); ok {
			w.Broadcast(dest, mover, fmt.Sprintf("%s arrives.", mover.Name()))
		}
	}

	dest.emit(&Event{Type: EventEntered, Who: mover, From: source, Dest: dest})

	return true, nil
}
