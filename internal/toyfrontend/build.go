package toyfrontend

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"absint/cfg"
	"absint/diag"
	"absint/engine"
	"absint/source"
	"absint/symbolic"
)

// Build walks a parsed Program into an engine.Application: one
// cfg.Graph per function. The toy language has no call expressions —
// interprocedural analysis is already exercised end to end by
// interproc's own driver tests, and engine.Engine.Run never hands a
// frontend the interproc.Driver it constructs internally, so a
// frontend-built interproc.CallStatement would have nowhere to attach
// its Driver field before the fixpoint runs. This frontend stays
// intraprocedural and demonstrates the CFG consumer interface (§6)
// instead: If/While/Assign/field-write/Return/Heap/value-domain all
// driven end to end from real syntax.
func Build(prog *Program) (engine.Application, error) {
	graphs := make(map[string]cfg.Graph, len(prog.Functions))
	formals := make(map[string][]string, len(prog.Functions))

	for _, fn := range prog.Functions {
		if _, exists := graphs[fn.Name]; exists {
			return engine.Application{}, &diag.ValidationError{
				Code:     diag.CodeValidationBadCFG,
				Message:  fmt.Sprintf("function %q redeclared", fn.Name),
				Position: toPosition(fn.Pos),
			}
		}
		g, err := buildFunction(fn)
		if err != nil {
			return engine.Application{}, err
		}
		graphs[fn.Name] = g
		formals[fn.Name] = fn.Params
	}

	entryID := "main"
	if _, ok := graphs[entryID]; !ok {
		for _, fn := range prog.Functions {
			entryID = fn.Name
			break
		}
	}
	if entryID == "" {
		return engine.Application{}, &diag.ValidationError{
			Code:    diag.CodeValidationBadCFG,
			Message: "program declares no functions",
		}
	}

	return engine.Application{Graphs: graphs, Formals: formals, EntryID: entryID}, nil
}

// functionGraph is the cfg.Graph built for one Function.
type functionGraph struct {
	name    string
	stmts   []cfg.Statement
	edges   []cfg.Edge
	entry   string
	exit    string
	formals []string
}

func (g *functionGraph) ID() string                  { return g.name }
func (g *functionGraph) Statements() []cfg.Statement { return g.stmts }
func (g *functionGraph) Edges() []cfg.Edge           { return g.edges }
func (g *functionGraph) Entry() string               { return g.entry }
func (g *functionGraph) Exit() string                { return g.exit }
func (g *functionGraph) Descriptor() cfg.Descriptor {
	return cfg.Descriptor{Signature: g.name, Formals: g.formals}
}

// builder accumulates the statements and edges of one function while
// walking its AST, handing out fresh node ids as it goes.
type builder struct {
	fn    string
	n     int
	stmts []cfg.Statement
	edges []cfg.Edge
}

func (b *builder) fresh(prefix string) string {
	b.n++
	return fmt.Sprintf("%s.%s%d", b.fn, prefix, b.n)
}

func (b *builder) emit(s cfg.Statement) string {
	b.stmts = append(b.stmts, s)
	return s.ID()
}

func (b *builder) edge(from, to string, kind cfg.EdgeKind, guard symbolic.Expr) {
	b.edges = append(b.edges, cfg.Edge{From: from, To: to, Kind: kind, Guard: guard})
}

func buildFunction(fn *Function) (cfg.Graph, error) {
	b := &builder{fn: fn.Name}
	entry, exit, err := b.buildBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	return &functionGraph{name: fn.Name, stmts: b.stmts, edges: b.edges, entry: entry, exit: exit, formals: fn.Params}, nil
}

// buildBlock threads a brace-delimited statement list into a single
// entry/exit pair, wiring Sequential edges between consecutive
// statements. An empty block still needs somewhere for a caller to
// attach a guarded edge, so it gets a single pass-through noop node.
func (b *builder) buildBlock(block *Block) (entry, exit string, err error) {
	if len(block.Stmts) == 0 {
		id := b.fresh("noop")
		b.emit(&noopStatement{id: id, loc: posLoc(b.fn, block.Pos)})
		return id, id, nil
	}

	var firstEntry, prevExit string
	for i, s := range block.Stmts {
		e, x, err := b.buildStatement(s)
		if err != nil {
			return "", "", err
		}
		if i == 0 {
			firstEntry = e
		} else {
			b.edge(prevExit, e, cfg.Sequential, nil)
		}
		prevExit = x
	}
	return firstEntry, prevExit, nil
}

func (b *builder) buildStatement(s *Statement) (entry, exit string, err error) {
	switch {
	case s.If != nil:
		return b.buildIf(s.If)
	case s.While != nil:
		return b.buildWhile(s.While)
	case s.Return != nil:
		id := b.fresh("return")
		loc := posLoc(b.fn, s.Pos)
		var e symbolic.Expr = &symbolic.Skip{At: toPosition(s.Pos)}
		if s.Return.Expr != nil {
			e = toExpr(s.Return.Expr)
		}
		target := &symbolic.Variable{At: toPosition(s.Pos), Type: symbolic.NewTypeSet("any"), Ident: "return"}
		b.emit(&assignStatement{id: id, loc: loc, target: target, expr: e})
		return id, id, nil
	case s.Field != nil:
		id := b.fresh("field")
		loc := posLoc(b.fn, s.Pos)
		b.emit(&fieldAssignStatement{
			id:     id,
			loc:    loc,
			target: s.Field.Target,
			expr:   toExpr(s.Field.Value),
		})
		return id, id, nil
	case s.Assign != nil:
		id := b.fresh("assign")
		loc := posLoc(b.fn, s.Pos)
		target := &symbolic.Variable{At: toPosition(s.Pos), Type: symbolic.NewTypeSet("any"), Ident: s.Assign.Target}
		b.emit(&assignStatement{id: id, loc: loc, target: target, expr: toExpr(s.Assign.Value)})
		return id, id, nil
	}
	return "", "", &diag.ValidationError{
		Code:     diag.CodeValidationBadCFG,
		Message:  "statement has no recognized form",
		Position: toPosition(s.Pos),
	}
}

func (b *builder) buildIf(s *IfStmt) (entry, exit string, err error) {
	condID := b.fresh("cond")
	loc := posLoc(b.fn, s.Pos)
	b.emit(&noopStatement{id: condID, loc: loc})
	guard := toExpr(s.Cond)

	thenEntry, thenExit, err := b.buildBlock(s.Then)
	if err != nil {
		return "", "", err
	}
	b.edge(condID, thenEntry, cfg.TrueBranch, guard)

	joinID := b.fresh("endif")
	b.emit(&noopStatement{id: joinID, loc: loc})
	b.edge(thenExit, joinID, cfg.Sequential, nil)

	if s.Else != nil {
		elseEntry, elseExit, err := b.buildBlock(s.Else)
		if err != nil {
			return "", "", err
		}
		b.edge(condID, elseEntry, cfg.FalseBranch, guard)
		b.edge(elseExit, joinID, cfg.Sequential, nil)
	} else {
		b.edge(condID, joinID, cfg.FalseBranch, guard)
	}

	return condID, joinID, nil
}

func (b *builder) buildWhile(s *WhileStmt) (entry, exit string, err error) {
	condID := b.fresh("cond")
	loc := posLoc(b.fn, s.Pos)
	b.emit(&noopStatement{id: condID, loc: loc})
	guard := toExpr(s.Cond)

	bodyEntry, bodyExit, err := b.buildBlock(s.Body)
	if err != nil {
		return "", "", err
	}
	b.edge(condID, bodyEntry, cfg.TrueBranch, guard)
	b.edge(bodyExit, condID, cfg.Sequential, nil)

	doneID := b.fresh("done")
	b.emit(&noopStatement{id: doneID, loc: loc})
	b.edge(condID, doneID, cfg.FalseBranch, guard)

	return condID, doneID, nil
}

// toPosition converts a participle lexer.Position into the engine's
// own source.Position.
func toPosition(pos lexer.Position) source.Position {
	return source.Position{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

// posLoc builds a CodeLocation for fn at pos, the identity threaded
// into state.State.Assign and, for allocations, into
// symbolic.AllocationSite.
func posLoc(fn string, pos lexer.Position) source.CodeLocation {
	return source.CodeLocation{Position: toPosition(pos)}
}
