package interproc

import (
	"github.com/google/uuid"

	"absint/analysis"
	"absint/cfg"
	"absint/diag"
	"absint/source"
	"absint/state"
	"absint/symbolic"
)

// AnalyzedCFG is one context-token-specific result of analyzing a
// graph (spec §4.9, "getAnalysisResultsOf(cfg) -> set<AnalyzedCFG>").
type AnalyzedCFG struct {
	ID     string
	Graph  cfg.Graph
	Token  ContextSensitivityToken
	Result *cfg.Result
}

// Driver is the interprocedural fixpoint driver (C9). It holds every
// CFG reachable from the entry point, a call graph for resolving call
// sites, and a summary cache keyed by (token, callee).
type Driver struct {
	Graphs         map[string]cfg.Graph
	Formals        map[string][]string
	CallGraphImpl  CallGraph
	OpenCallPolicy OpenCallPolicy
	K              int
	Config         cfg.Config
	Bottom         *analysis.State

	cache          map[string]*analysis.State
	pendingSummary map[string]*analysis.State
	recursiveHits  map[string]bool
	activeStack    []activeFrame
	results        map[string][]AnalyzedCFG
}

type activeFrame struct {
	token  ContextSensitivityToken
	callee string
}

// NewDriver builds a driver ready to analyze the given graphs.
func NewDriver(graphs map[string]cfg.Graph, formals map[string][]string, callGraph CallGraph, policy OpenCallPolicy, k int, cfgConfig cfg.Config, bottom *analysis.State) *Driver {
	return &Driver{
		Graphs:         graphs,
		Formals:        formals,
		CallGraphImpl:  callGraph,
		OpenCallPolicy: policy,
		K:              k,
		Config:         cfgConfig,
		Bottom:         bottom,
		cache:          map[string]*analysis.State{},
		pendingSummary: map[string]*analysis.State{},
		recursiveHits:  map[string]bool{},
		results:        map[string][]AnalyzedCFG{},
	}
}

// NeedsCallGraph reports whether this driver requires a call graph to
// make progress (spec §4.9, "needsCallGraph() -> bool"): true whenever
// any graph contains a call statement, which in practice means "a call
// graph was configured at all" for this engine's single-pass wiring.
func (d *Driver) NeedsCallGraph() bool {
	return d.CallGraphImpl != nil
}

// GetAnalysisResultsOf returns every context-token-specific result
// computed so far for the graph named id.
func (d *Driver) GetAnalysisResultsOf(id string) []AnalyzedCFG {
	return d.results[id]
}

// Fixpoint drives the whole-program analysis starting from entryID
// with initialState at the root context token (spec §4.9,
// "fixpoint(initialState, worklistKind, fixpointConfig)").
func (d *Driver) Fixpoint(entryID string, initialState *analysis.State) (*cfg.Result, error) {
	token := RootToken(d.K)
	return d.runCFG(entryID, token, initialState)
}

func (d *Driver) runCFG(id string, token ContextSensitivityToken, entryState *analysis.State) (*cfg.Result, error) {
	g, ok := d.Graphs[id]
	if !ok {
		return nil, &diag.CallGraphError{Code: diag.CodeCallGraphUnresolved, Message: "unknown callee " + id}
	}

	d.activeStack = append(d.activeStack, activeFrame{token: token, callee: id})
	result, err := cfg.Run(g, entryState, d.Bottom, d.Config)
	d.activeStack = d.activeStack[:len(d.activeStack)-1]
	if err != nil {
		return nil, err
	}

	d.results[id] = append(d.results[id], AnalyzedCFG{ID: uuid.NewString(), Graph: g, Token: token, Result: result})
	return result, nil
}

// Call resolves a call site, analyzes (or retrieves a cached summary
// for) every target, rebinds the return value, and joins the results
// across targets (multiple targets model dynamic dispatch). It is the
// method a frontend's call-site Statement invokes from Execute.
func (d *Driver) Call(callSite string, args []symbolic.Expr, returnTarget symbolic.Identifier, callerState *analysis.State) (*analysis.State, error) {
	if len(d.activeStack) == 0 {
		return nil, &diag.CallGraphError{Code: diag.CodeCallGraphUnresolved, Message: "call site reached outside a running fixpoint"}
	}
	callerToken := d.activeStack[len(d.activeStack)-1].token
	childToken := callerToken.Push(callSite)

	if d.CallGraphImpl == nil {
		return nil, &diag.CallGraphError{Code: diag.CodeCallGraphUnresolved, Message: "no call graph configured"}
	}

	targets, ok := d.CallGraphImpl.Resolve(callSite)
	if !ok || len(targets) == 0 {
		return d.handleOpenCall(callerState, returnTarget)
	}

	var merged *analysis.State
	for _, target := range targets {
		entry := d.bindFormals(callerState, target.ID(), args, childToken)
		summary, err := d.invoke(childToken, target.ID(), entry)
		if err != nil {
			return nil, err
		}
		rebound := d.rebindReturn(callerState, summary, returnTarget)
		if merged == nil {
			merged = rebound
		} else {
			merged = merged.Join(rebound)
		}
	}
	return merged, nil
}

// invoke implements spec §4.9 steps 3-5: cache lookup, recursion
// detection via the active-frame stack, and SCC stabilization.
func (d *Driver) invoke(token ContextSensitivityToken, calleeID string, entry *analysis.State) (*analysis.State, error) {
	key := token.Key() + "|" + calleeID

	if cached, ok := d.cache[key]; ok {
		return cached, nil
	}

	if d.isActive(token, calleeID) {
		// Recursion (self-edge or SCC): return the best summary computed
		// so far for this (token, callee); the active outer invocation
		// will stabilize it (spec §4.9, "Recursion").
		d.recursiveHits[key] = true
		if pending, ok := d.pendingSummary[key]; ok {
			return pending, nil
		}
		return d.Bottom, nil
	}

	d.pendingSummary[key] = d.Bottom
	summary, err := d.computeSummary(token, calleeID, entry)
	if err != nil {
		return nil, err
	}

	if d.recursiveHits[key] {
		summary, err = d.stabilize(token, calleeID, entry, summary, key)
		if err != nil {
			return nil, err
		}
		delete(d.recursiveHits, key)
	}

	delete(d.pendingSummary, key)
	d.cache[key] = summary
	return summary, nil
}

func (d *Driver) computeSummary(token ContextSensitivityToken, calleeID string, entry *analysis.State) (*analysis.State, error) {
	result, err := d.runCFG(calleeID, token, entry)
	if err != nil {
		return nil, err
	}
	g := d.Graphs[calleeID]
	return result.Exit[g.Exit()], nil
}

// stabilize re-runs a recursive callee's fixpoint, widening the head
// summary against each new iteration, until it stops changing or the
// widening threshold is exhausted (spec §4.9, "Termination: SCC
// iteration widens the head state").
func (d *Driver) stabilize(token ContextSensitivityToken, calleeID string, entry, initial *analysis.State, key string) (*analysis.State, error) {
	current := initial
	threshold := d.Config.WideningThreshold
	if threshold <= 0 {
		threshold = 5
	}
	for i := 0; i < threshold+1; i++ {
		d.pendingSummary[key] = current
		next, err := d.computeSummary(token, calleeID, entry)
		if err != nil {
			return nil, err
		}
		widened := current.Widen(current.Join(next))
		if widened.Equal(current) {
			return widened, nil
		}
		current = widened
	}
	return current, nil
}

func (d *Driver) isActive(token ContextSensitivityToken, calleeID string) bool {
	for _, f := range d.activeStack {
		if f.callee == calleeID && f.token.Equal(token) {
			return true
		}
	}
	return false
}

// bindFormals implements spec §4.9 step 2: push the callee's scope and
// assign each formal to its actual argument, evaluated in the caller's
// state.
func (d *Driver) bindFormals(callerState *analysis.State, calleeID string, args []symbolic.Expr, token ContextSensitivityToken) *analysis.State {
	scopeToken := symbolic.RootScope.Push(token.Key())
	callee := callerState.PushScope(scopeToken)
	for i, name := range d.Formals[calleeID] {
		if i >= len(args) {
			break
		}
		formal := &symbolic.Variable{Ident: name}
		bound, err := callee.Assign(formal, args[i], source.CodeLocation{})
		if err == nil {
			callee = bound
		}
	}
	return callee
}

// rebindReturn implements spec §4.9 step 4's "popScope, rebind return
// value" half. It does NOT resume execution from the callee's own
// summary: a flat, scope-blind environment means the callee's
// formal-parameter bindings can share a key with one of the caller's
// own variables (self-recursion reusing the same parameter name is the
// case that bites), so continuing from the summary wholesale would
// clobber the caller's other locals. Instead the callee's "return"
// binding alone is sliced out of the summary and joined into the
// caller's own continuing state under returnTarget, leaving every
// other caller binding untouched.
func (d *Driver) rebindReturn(callerState, summary *analysis.State, returnTarget symbolic.Identifier) *analysis.State {
	merged := callerState.Composite.Heap.Join(summary.Composite.Heap)
	callerState = callerState.WithComposite(state.New(merged, callerState.Composite.Value, callerState.Composite.Type))

	if returnTarget == nil {
		return callerState
	}

	retVar := &symbolic.Variable{Ident: "return"}
	onlyReturn := func(name string) bool { return name != retVar.Name() }
	sliver := summary.Composite.Value.ForgetIdentifiersIf(onlyReturn)
	sliver = sliver.ApplyReplacement([]symbolic.Identifier{retVar}, []symbolic.Identifier{returnTarget})

	base := callerState.Composite.Value
	if !returnTarget.Weak() {
		base = base.ForgetIdentifier(returnTarget)
	}
	value := base.Join(sliver)

	return callerState.WithComposite(state.New(callerState.Composite.Heap, value, callerState.Composite.Type))
}

func (d *Driver) handleOpenCall(callerState *analysis.State, returnTarget symbolic.Identifier) (*analysis.State, error) {
	switch d.OpenCallPolicy {
	case FailOnOpenCall:
		return nil, &diag.CallGraphError{Code: diag.CodeCallGraphOpenFailed, Message: "open call site has no resolvable target"}
	case ReturnBottom:
		if returnTarget == nil {
			return callerState, nil
		}
		return callerState.ForgetIdentifier(returnTarget), nil
	default: // ReturnTop
		if returnTarget == nil {
			return callerState, nil
		}
		bound, err := callerState.Assign(returnTarget, &symbolic.Skip{}, source.CodeLocation{})
		if err != nil {
			return callerState, nil
		}
		return bound, nil
	}
}
