// Package history implements the bounded undo/redo stack wrapping the
// transaction engine. The stack is owned by the session that constructs it,
// never shared globally, so tests can run independent histories side by side.
package history

// DefaultLimit is the number of snapshots retained by default
const DefaultLimit = 20

// History is a linear, bounded stack of full-state snapshots with a cursor.
// Snapshots are treated as immutable: the engine never mutates a state it has
// returned, so the stack stores them directly without copying.
type History[T any] struct {
	snapshots []T
	cursor    int
	limit     int
}

// New creates a history seeded with the initial state
func New[T any](initial T, limit int) *History[T] {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History[T]{
		snapshots: []T{initial},
		cursor:    0,
		limit:     limit,
	}
}

// Current returns the snapshot at the cursor
func (h *History[T]) Current() T {
	return h.snapshots[h.cursor]
}

// Push appends a new snapshot, discarding any redone-away future. When the
// retained count exceeds the limit the oldest snapshot is dropped, which
// makes undo beyond the limit a no-op rather than an error.
func (h *History[T]) Push(snapshot T) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot)
	if len(h.snapshots) > h.limit {
		h.snapshots = h.snapshots[1:]
	}
	h.cursor = len(h.snapshots) - 1
}

// CanUndo reports whether a previous snapshot exists
func (h *History[T]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later snapshot exists
func (h *History[T]) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Undo moves the cursor one step back and returns the re-exposed snapshot.
// At the earliest snapshot it is a no-op returning the current one.
func (h *History[T]) Undo() T {
	if h.CanUndo() {
		h.cursor--
	}
	return h.snapshots[h.cursor]
}

// Redo moves the cursor one step forward. At the latest snapshot it is a
// no-op returning the current one.
func (h *History[T]) Redo() T {
	if h.CanRedo() {
		h.cursor++
	}
	return h.snapshots[h.cursor]
}

// Restore replaces the whole stack with a single snapshot. Used by backup
// import: undo history is intentionally not preserved across a restore.
func (h *History[T]) Restore(snapshot T) {
	h.snapshots = []T{snapshot}
	h.cursor = 0
}

// Len returns the number of retained snapshots
func (h *History[T]) Len() int {
	return len(h.snapshots)
}
