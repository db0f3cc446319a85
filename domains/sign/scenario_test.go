package sign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absint/analysis"
	"absint/cfg"
	"absint/domain"
	"absint/domains/sign"
	"absint/heap"
	"absint/source"
	"absint/state"
	"absint/symbolic"
	"absint/worklist"
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

// guardStmt is a no-op CFG node whose only role is to carry the
// successor edges' guard expression; its Execute is the identity.
type guardStmt struct{ id string }

func (s *guardStmt) ID() string                    { return s.id }
func (s *guardStmt) Location() source.CodeLocation { return source.CodeLocation{} }
func (s *guardStmt) Execute(in *analysis.State) (*analysis.State, error) { return in, nil }

type loopGraph struct {
	id    string
	stmts []cfg.Statement
	edges []cfg.Edge
}

func (g *loopGraph) ID() string                  { return g.id }
func (g *loopGraph) Statements() []cfg.Statement { return g.stmts }
func (g *loopGraph) Edges() []cfg.Edge           { return g.edges }
func (g *loopGraph) Entry() string                { return "s1" }
func (g *loopGraph) Exit() string                 { return "cond" }
func (g *loopGraph) Descriptor() cfg.Descriptor   { return cfg.Descriptor{Signature: g.id} }

func constant(v int) *symbolic.Constant {
	return &symbolic.Constant{Type: symbolic.NewTypeSet("int"), Value: v}
}

func variable(name string) *symbolic.Variable {
	return &symbolic.Variable{Ident: name, Type: symbolic.NewTypeSet("int")}
}

// TestSignDomainOnLoopWidensToPositive is scenario S2: x=1; while
// (x<1000) x=x+1; with widening threshold 3, the loop head stabilizes
// to Positive.
func TestSignDomainOnLoopWidensToPositive(t *testing.T) {
	x := variable("x")
	s1 := &assignStmt{id: "s1", target: x, expr: constant(1)}
	cond := &guardStmt{id: "cond"}
	guard := &symbolic.BinaryOp{Op: "<", Left: x, Right: constant(1000)}
	body := &assignStmt{id: "body", target: x, expr: &symbolic.BinaryOp{Op: "+", Left: x, Right: constant(1)}}

	g := &loopGraph{
		id:    "main",
		stmts: []cfg.Statement{s1, cond, body},
		edges: []cfg.Edge{
			{From: "s1", To: "cond"},
			{From: "cond", To: "body", Kind: cfg.TrueBranch, Guard: guard},
			{From: "body", To: "cond"},
		},
	}

	entryState := analysis.New(state.New(heap.New(), sign.New(), domain.TrivialType{}))
	bottomState := analysis.New(state.New(heap.New(), sign.Bottom(), domain.TrivialType{}))

	result, err := cfg.Run(g, entryState, bottomState, cfg.Config{WideningThreshold: 3, Worklist: worklist.FIFO})
	require.NoError(t, err)

	exitValue := result.Exit["cond"].Composite.Value.(*sign.Domain)
	assert.Equal(t, sign.Positive(), exitValue.Get(x))
}
