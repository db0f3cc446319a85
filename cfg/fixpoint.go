package cfg

import (
	"absint/analysis"
	"absint/diag"
	"absint/worklist"
)

// Config holds the per-run fixpoint parameters configured at the
// engine level (spec §6: wideningThreshold, narrowingSteps,
// fixpointWorkingSet).
type Config struct {
	WideningThreshold int
	NarrowingSteps    int
	Worklist          worklist.Kind
	// AllowDuplicateWork selects the plain FIFO/LIFO worklist instead of
	// the duplicate-free variant (spec §6, "fixpointWorkingSet (FIFO /
	// LIFO / duplicate-free variants)"). The default, false, is
	// duplicate-free: a node already pending a re-visit is not queued
	// twice.
	AllowDuplicateWork bool
}

// Result is the per-node entry/exit state map produced by one CFG
// fixpoint (spec §4.8).
type Result struct {
	Entry map[string]*analysis.State
	Exit  map[string]*analysis.State
}

// Run computes the sound fixpoint of g starting from entryState at
// g.Entry(), per spec §4.8. bottom seeds every node's entry/exit
// before the first visit.
func Run(g Graph, entryState, bottom *analysis.State, cfg Config) (*Result, error) {
	threshold := cfg.WideningThreshold
	if threshold <= 0 {
		threshold = 5
	}

	order := make([]string, 0, len(g.Statements()))
	stmts := map[string]Statement{}
	for _, s := range g.Statements() {
		order = append(order, s.ID())
		stmts[s.ID()] = s
	}

	preds := map[string][]Edge{}
	succs := map[string][]Edge{}
	for _, e := range g.Edges() {
		preds[e.To] = append(preds[e.To], e)
		succs[e.From] = append(succs[e.From], e)
	}

	entry := map[string]*analysis.State{}
	exit := map[string]*analysis.State{}
	for _, id := range order {
		entry[id] = bottom
		exit[id] = bottom
	}

	visits := map[string]int{}
	w := worklist.New(cfg.Worklist, cfg.AllowDuplicateWork)
	w.Push(g.Entry())

	for {
		n, err := w.Pop()
		if err != nil {
			if _, isEmpty := err.(worklist.Empty); isEmpty {
				break
			}
			return nil, err
		}

		stmt, ok := stmts[n]
		if !ok {
			return nil, &diag.ValidationError{Code: diag.CodeValidationBadCFG, Message: "edge references unknown statement " + n}
		}

		sPre := computeEntry(n, g.Entry(), entryState, preds, exit, bottom)
		entry[n] = sPre

		sPost, err := stmt.Execute(sPre)
		if err != nil {
			return nil, &diag.FixpointError{NodeID: n, Cause: err}
		}

		if !sPost.Leq(exit[n]) {
			visits[n]++
			exit[n] = combine(exit[n], sPost, visits[n], threshold)
			// Deterministic ordering: push successors in the graph's own
			// edge insertion order (spec §4.8, "Tie-breaking").
			for _, e := range succs[n] {
				w.Push(e.To)
			}
		}
	}

	if cfg.NarrowingSteps > 0 {
		descend(g.Entry(), order, stmts, preds, entryState, entry, exit, cfg.NarrowingSteps)
	}

	return &Result{Entry: entry, Exit: exit}, nil
}

func computeEntry(
	n, entryID string,
	entryState *analysis.State,
	preds map[string][]Edge,
	exit map[string]*analysis.State,
	bottom *analysis.State,
) *analysis.State {
	acc := bottom
	if n == entryID {
		acc = entryState
	}
	for _, e := range preds[n] {
		contrib := exit[e.From]
		if e.Kind != Sequential && e.Guard != nil {
			contrib = contrib.Assume(e.Guard, e.Kind == TrueBranch)
		}
		acc = acc.Join(contrib)
	}
	return acc
}

// combine implements spec §4.8 step 3: lub below the widening
// threshold, widen(old, old⊔new) at or beyond it.
func combine(old, newState *analysis.State, visits, threshold int) *analysis.State {
	if visits < threshold {
		return old.Join(newState)
	}
	return old.Widen(old.Join(newState))
}

// descend runs the optional narrowing phase (spec §4.8 step 4, §9 Open
// Question (b)): re-execute every statement from the converged entry
// states and narrow the exit, bounded by a finite step count so the
// phase is guaranteed to terminate even though the spec leaves its
// exact bound a configuration choice.
func descend(
	entryID string,
	order []string,
	stmts map[string]Statement,
	preds map[string][]Edge,
	entryState *analysis.State,
	entry, exit map[string]*analysis.State,
	steps int,
) {
	for step := 0; step < steps; step++ {
		changed := false
		for _, n := range order {
			sPre := computeEntry(n, entryID, entryState, preds, exit, exit[n])
			sPost, err := stmts[n].Execute(sPre)
			if err != nil {
				// A descending-phase failure is not fatal: keep the
				// ascending-phase result for this node and stop refining it.
				continue
			}
			narrowed := exit[n].Narrow(sPost)
			if !narrowed.Equal(exit[n]) {
				changed = true
			}
			entry[n] = sPre
			exit[n] = narrowed
		}
		if !changed {
			break
		}
	}
}
