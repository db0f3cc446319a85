package symbolic

import "absint/source"

// Skip is the no-op placeholder expression (spec §3).
type Skip struct {
	At source.Position
}

// Constant is a literal value of a known type (spec §3).
type Constant struct {
	At    source.Position
	Type  TypeSet
	Value any
}

// Variable is a named, positioned identifier, the leaves of most
// expression trees (spec §3).
type Variable struct {
	At     source.Position
	Type   TypeSet
	Scopes []ScopeToken
	Ident  string
	IsWeak bool
}

// MetaVariable is an engine-introduced identifier with no source-level
// name, e.g. a temporary standing in for a call's return value. It shares
// Identifier's contract but is never produced directly by a frontend.
type MetaVariable struct {
	At     source.Position
	Type   TypeSet
	Scopes []ScopeToken
	Label  string
	IsWeak bool
}

// UnaryOp applies a named operator to one operand.
type UnaryOp struct {
	At   source.Position
	Type TypeSet
	Op   string
	E    Expr
}

// BinaryOp applies a named operator to two operands.
type BinaryOp struct {
	At    source.Position
	Type  TypeSet
	Op    string
	Left  Expr
	Right Expr
}

// TernaryOp applies a named operator to three operands (e.g. a
// conditional-value operator).
type TernaryOp struct {
	At    source.Position
	Type  TypeSet
	Op    string
	A, B, C Expr
}

// HeapAllocation denotes a `new T`-style allocation at a program point.
// Rewriting it (symbolic.Rewriter) yields an AllocationSite.
type HeapAllocation struct {
	At   source.Position
	Type TypeSet
	Loc  source.CodeLocation
}

// HeapReference denotes taking the address of an inner expression.
// Rewriting it yields a PointerIdentifier.
type HeapReference struct {
	At    source.Position
	Type  TypeSet
	Inner Expr
}

// HeapDereference denotes dereferencing a pointer-valued inner
// expression.
type HeapDereference struct {
	At    source.Position
	Type  TypeSet
	Inner Expr
}

// AccessChild denotes a field/element access on a container expression,
// field-insensitively (spec §4.2).
type AccessChild struct {
	At       source.Position
	Type     TypeSet
	Receiver Expr
	Child    string
}

// PointerIdentifier is an identifier denoting "points to targetLocation".
// It is both an expression variant and an Identifier, produced by
// rewriting HeapReference and HeapDereference (spec §4.2).
type PointerIdentifier struct {
	At             source.Position
	Type           TypeSet
	TargetLocation string
	IsWeak         bool
}

// AllocationSite is the abstract identity of an object allocated at one
// program location (spec §3, "Allocation site"). Two sites with the same
// CodeLocation but different strengths collapse under the heap domain's
// replacement rules (C4).
type AllocationSite struct {
	Type   TypeSet
	Loc    source.CodeLocation
	IsWeak bool
}
