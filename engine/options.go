// Package engine implements the consumer-facing API (spec §6): a
// configure/run pair that wires the lattice, environment, heap,
// composite state, worklist, CFG fixpoint, interprocedural driver, and
// check harness together into one whole-program analysis run.
package engine

import (
	"absint/analysis"
	"absint/check"
	"absint/diag"
	"absint/domain"
	"absint/heap"
	"absint/interproc"
	"absint/state"
	"absint/worklist"
)

// AnalysisGraphs selects the serialized-graph output format (spec §6).
// Producing the actual DOT/GraphML/HTML artifacts is an external
// collaborator's job (spec §1, "file I/O and graph serialization...
// out of scope"); the engine only validates the requested format, and
// Run does not read it.
type AnalysisGraphs int

const (
	GraphsNone AnalysisGraphs = iota
	GraphsDOT
	GraphsGraphML
	GraphsGraphMLWithSubnodes
	GraphsHTML
	GraphsHTMLWithSubnodes
)

// Options configures one engine run (spec §6, "configure(options)").
// Zero-value fields take the documented defaults.
type Options struct {
	// ValueDomain builds the starting (identity/top) value domain. Required.
	ValueDomain func() domain.Value
	// BottomValueDomain builds the value domain's bottom element. Required.
	BottomValueDomain func() domain.Value
	// TypeDomain builds the starting type domain; defaults to domain.TrivialType{}.
	TypeDomain func() domain.Type

	CallGraph               interproc.CallGraph
	InterproceduralAnalysis bool
	ContextSensitivityK     int // k for the context-sensitivity token; 0 = unbounded

	FixpointWorkingSet worklist.Kind
	// AllowDuplicateWork selects the plain (non duplicate-free)
	// worklist variant; see cfg.Config.AllowDuplicateWork.
	AllowDuplicateWork bool

	WideningThreshold int // default 5
	NarrowingSteps    int

	OpenCallPolicy interproc.OpenCallPolicy

	Optimize            bool // accepted but not read by Run: no block-head caching is done
	DumpForcesUnwinding bool

	SerializeInputs  bool
	SerializeResults bool
	AnalysisGraphs   AnalysisGraphs

	SyntacticChecks []check.Check
	SemanticChecks  []check.Check
}

// resolved is Options with every default applied and validated, ready
// to drive a run.
type resolved struct {
	opts Options
}

// configure validates options and applies documented defaults (spec
// §6). It never runs a fixpoint; errors here are always SetupError.
func configure(opts Options) (*resolved, error) {
	if opts.ValueDomain == nil {
		return nil, diag.NewSetupError(diag.CodeSetupMissingDomain, "Options.ValueDomain is required")
	}
	if opts.BottomValueDomain == nil {
		return nil, diag.NewSetupError(diag.CodeSetupMissingDomain, "Options.BottomValueDomain is required")
	}
	if opts.TypeDomain == nil {
		opts.TypeDomain = func() domain.Type { return domain.TrivialType{} }
	}
	if opts.WideningThreshold <= 0 {
		opts.WideningThreshold = 5
	}
	if opts.NarrowingSteps < 0 {
		return nil, diag.NewSetupError(diag.CodeSetupInvalidOption, "Options.NarrowingSteps must be >= 0")
	}
	if opts.ContextSensitivityK < 0 {
		return nil, diag.NewSetupError(diag.CodeSetupInvalidOption, "Options.ContextSensitivityK must be >= 0")
	}
	if opts.AnalysisGraphs < GraphsNone || opts.AnalysisGraphs > GraphsHTMLWithSubnodes {
		return nil, diag.NewSetupError(diag.CodeSetupInvalidOption, "Options.AnalysisGraphs is not a recognized format")
	}
	if opts.InterproceduralAnalysis && opts.CallGraph == nil {
		return nil, diag.NewSetupError(diag.CodeSetupMissingDomain, "Options.CallGraph is required when InterproceduralAnalysis is set")
	}
	return &resolved{opts: opts}, nil
}

func (r *resolved) newState() *analysis.State {
	return analysis.New(state.New(heap.New(), r.opts.ValueDomain(), r.opts.TypeDomain()))
}

func (r *resolved) newBottomState() *analysis.State {
	return analysis.New(state.New(heap.New(), r.opts.BottomValueDomain(), r.opts.TypeDomain()))
}
