package toyfrontend

import (
	"absint/analysis"
	"absint/source"
	"absint/symbolic"
)

// assignStatement models `target = expr;` and, doubling as the
// function's implicit binding point, `return expr;` (bound to the
// conventional "return" variable, the same name interproc's driver
// rebinds a call's result from).
type assignStatement struct {
	id     string
	loc    source.CodeLocation
	target symbolic.Identifier
	expr   symbolic.Expr
}

func (s *assignStatement) ID() string                    { return s.id }
func (s *assignStatement) Location() source.CodeLocation { return s.loc }
func (s *assignStatement) Execute(in *analysis.State) (*analysis.State, error) {
	return in.Assign(s.target, s.expr, s.loc)
}

// fieldAssignStatement models `target.field = expr;`: field-
// insensitively, by assigning expr through every allocation site
// `target` currently points to (spec §4.4's "assign through an
// allocation site identifier" rule), joining the results when target
// may point to more than one site. A target the heap has no
// information for yet (e.g. never allocated) is a no-op, matching
// heap.Heap.Assign's rule 3.
type fieldAssignStatement struct {
	id     string
	loc    source.CodeLocation
	target string
	expr   symbolic.Expr
}

func (s *fieldAssignStatement) ID() string                    { return s.id }
func (s *fieldAssignStatement) Location() source.CodeLocation { return s.loc }
func (s *fieldAssignStatement) Execute(in *analysis.State) (*analysis.State, error) {
	sites, ok := in.Composite.Heap.Lookup(s.target)
	if !ok || len(sites) == 0 {
		return in, nil
	}
	var out *analysis.State
	for _, site := range sites {
		next, err := in.Assign(site, s.expr, s.loc)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = next
		} else {
			out = out.Join(next)
		}
	}
	return out, nil
}

// noopStatement is a pure control-flow join/branch point: the CFG
// node an if/while guard or an empty block attaches to, carrying no
// semantic transfer of its own.
type noopStatement struct {
	id  string
	loc source.CodeLocation
}

func (s *noopStatement) ID() string                    { return s.id }
func (s *noopStatement) Location() source.CodeLocation { return s.loc }
func (s *noopStatement) Execute(in *analysis.State) (*analysis.State, error) {
	return in, nil
}
