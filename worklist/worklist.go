// Package worklist implements the fixpoint scheduling queues of spec
// §4.7 (C7): FIFO and LIFO orderings, each with an optional
// duplicate-free mode that rejects a push for an element already
// enqueued.
package worklist

import "fmt"

// Empty is returned by Pop/Peek on an empty working set (spec §4.7,
// "Fails with WorkingSetEmpty on pop/peek when empty").
type Empty struct{}

func (Empty) Error() string { return "worklist: working set is empty" }

// Kind selects FIFO or LIFO discipline at configuration time (spec §6,
// "fixpointWorkingSet").
type Kind int

const (
	FIFO Kind = iota
	LIFO
)

func (k Kind) String() string {
	if k == LIFO {
		return "LIFO"
	}
	return "FIFO"
}

// WorkingSet is a scheduling queue over comparable node identifiers.
// It is not safe for concurrent use; spec §5 reserves the engine to a
// single driver thread.
type WorkingSet struct {
	kind        Kind
	duplicateOK bool
	items       []string
	queued      map[string]bool
}

// New builds a WorkingSet of the given kind. When allowDuplicates is
// false, Push silently drops an element already present in the set
// (spec §4.7, "duplicate-free option that rejects push(e) when e is
// already enqueued").
func New(kind Kind, allowDuplicates bool) *WorkingSet {
	return &WorkingSet{kind: kind, duplicateOK: allowDuplicates, queued: map[string]bool{}}
}

// Push enqueues id.
func (w *WorkingSet) Push(id string) {
	if !w.duplicateOK && w.queued[id] {
		return
	}
	w.items = append(w.items, id)
	w.queued[id] = true
}

// Pop removes and returns the next id per the set's discipline, or
// Empty if nothing is queued.
func (w *WorkingSet) Pop() (string, error) {
	if len(w.items) == 0 {
		return "", Empty{}
	}
	var id string
	switch w.kind {
	case LIFO:
		id = w.items[len(w.items)-1]
		w.items = w.items[:len(w.items)-1]
	default:
		id = w.items[0]
		w.items = w.items[1:]
	}
	delete(w.queued, id)
	return id, nil
}

// Peek returns the next id without removing it.
func (w *WorkingSet) Peek() (string, error) {
	if len(w.items) == 0 {
		return "", Empty{}
	}
	if w.kind == LIFO {
		return w.items[len(w.items)-1], nil
	}
	return w.items[0], nil
}

// Len reports the number of queued ids.
func (w *WorkingSet) Len() int { return len(w.items) }

func (w *WorkingSet) String() string {
	return fmt.Sprintf("WorkingSet(%s, duplicates=%v, len=%d)", w.kind, w.duplicateOK, len(w.items))
}
