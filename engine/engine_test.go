package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absint/analysis"
	"absint/cfg"
	"absint/check"
	"absint/domain"
	"absint/domains/constprop"
	"absint/engine"
	"absint/source"
	"absint/symbolic"
)

type assignStmt struct {
	id     string
	target *symbolic.Variable
	expr   symbolic.Expr
}

func (s *assignStmt) ID() string                    { return s.id }
func (s *assignStmt) Location() source.CodeLocation { return source.CodeLocation{} }
func (s *assignStmt) Execute(in *analysis.State) (*analysis.State, error) {
	return in.Assign(s.target, s.expr, source.CodeLocation{})
}

type fakeGraph struct {
	id    string
	stmts []cfg.Statement
	edges []cfg.Edge
	entry string
	exit  string
}

func (g *fakeGraph) ID() string                  { return g.id }
func (g *fakeGraph) Statements() []cfg.Statement { return g.stmts }
func (g *fakeGraph) Edges() []cfg.Edge           { return g.edges }
func (g *fakeGraph) Entry() string               { return g.entry }
func (g *fakeGraph) Exit() string                { return g.exit }
func (g *fakeGraph) Descriptor() cfg.Descriptor  { return cfg.Descriptor{Signature: g.id} }

func constant(v int) *symbolic.Constant {
	return &symbolic.Constant{Type: symbolic.NewTypeSet("int"), Value: v}
}

func variable(name string) *symbolic.Variable {
	return &symbolic.Variable{Ident: name, Type: symbolic.NewTypeSet("int")}
}

// constantZeroCheck warns whenever a variable is known to be exactly
// zero at a statement's exit, demonstrating a check wired through
// Options.SemanticChecks end to end.
type constantZeroCheck struct {
	warnings []check.Warning
	name     string
}

func (c *constantZeroCheck) Name() string { return c.name }

func (c *constantZeroCheck) Visit(g cfg.Graph, stmt cfg.Statement, results *check.Results) {
	for _, s := range results.GetAnalysisResultsAt(g.ID(), stmt.ID()) {
		dom, ok := s.Composite.Value.(*constprop.Domain)
		if !ok {
			continue
		}
		if v, ok := dom.Get(variable("z")).Value(); ok && v == 0 {
			c.warnings = append(c.warnings, check.Warning{Message: "z is exactly zero", Check: c.name})
		}
	}
}

func (c *constantZeroCheck) Warnings() []check.Warning { return c.warnings }

func TestEngineRunsStraightLineConstantPropagation(t *testing.T) {
	x, y, z := variable("x"), variable("y"), variable("z")
	s1 := &assignStmt{id: "s1", target: x, expr: constant(3)}
	s2 := &assignStmt{id: "s2", target: y, expr: &symbolic.BinaryOp{Op: "+", Left: x, Right: constant(4)}}
	s3 := &assignStmt{id: "s3", target: z, expr: &symbolic.BinaryOp{Op: "*", Left: y, Right: constant(2)}}
	g := &fakeGraph{
		id:    "main",
		stmts: []cfg.Statement{s1, s2, s3},
		edges: []cfg.Edge{{From: "s1", To: "s2"}, {From: "s2", To: "s3"}},
		entry: "s1",
		exit:  "s3",
	}

	checker := &constantZeroCheck{name: "z-is-zero"}
	e, err := engine.Configure(engine.Options{
		ValueDomain:       func() domain.Value { return constprop.New() },
		BottomValueDomain: func() domain.Value { return constprop.Bottom() },
		SemanticChecks:    []check.Check{checker},
	})
	require.NoError(t, err)

	warnings, err := e.Run(engine.Application{
		Graphs:  map[string]cfg.Graph{"main": g},
		EntryID: "main",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestEngineConfigureRejectsMissingValueDomain(t *testing.T) {
	_, err := engine.Configure(engine.Options{})
	assert.Error(t, err)
}

func TestEngineRunRejectsUnknownEntry(t *testing.T) {
	e, err := engine.Configure(engine.Options{
		ValueDomain:       func() domain.Value { return constprop.New() },
		BottomValueDomain: func() domain.Value { return constprop.Bottom() },
	})
	require.NoError(t, err)

	_, err = e.Run(engine.Application{Graphs: map[string]cfg.Graph{}, EntryID: "missing"})
	assert.Error(t, err)
}
