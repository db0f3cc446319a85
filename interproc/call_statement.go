package interproc

import (
	"absint/analysis"
	"absint/source"
	"absint/symbolic"
)

// CallStatement is a cfg.Statement that delegates to a Driver's Call,
// letting a frontend embed call sites directly in a CFG without the
// engine's intraprocedural fixpoint needing any special case for them
// (spec §9, "capability sets" over distinguished statement kinds).
type CallStatement struct {
	StmtID       string
	Loc          source.CodeLocation
	CallSite     string
	Args         []symbolic.Expr
	ReturnTarget symbolic.Identifier
	Driver       *Driver
}

func (s *CallStatement) ID() string                    { return s.StmtID }
func (s *CallStatement) Location() source.CodeLocation { return s.Loc }

func (s *CallStatement) Execute(in *analysis.State) (*analysis.State, error) {
	return s.Driver.Call(s.CallSite, s.Args, s.ReturnTarget, in)
}
