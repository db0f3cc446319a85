package symbolic

import (
	"fmt"
)

// --- Skip ---

func (s *Skip) ExprKind() Kind          { return KindSkip }
func (s *Skip) Types() TypeSet          { return nil }
func (s *Skip) Pos() Position           { return s.At }
func (s *Skip) Rescope(ScopeToken, bool) Expr { return s }
func (s *Skip) String() string          { return "skip" }

// --- Constant ---

func (c *Constant) ExprKind() Kind { return KindConstant }
func (c *Constant) Types() TypeSet { return c.Type }
func (c *Constant) Pos() Position  { return c.At }
func (c *Constant) Rescope(ScopeToken, bool) Expr {
	// Constants have no free identifiers, so rescoping is the identity
	// (trivially satisfies the scope round-trip property, spec §8.9).
	return c
}
func (c *Constant) String() string { return fmt.Sprintf("%v", c.Value) }

// --- Variable ---

func (v *Variable) ExprKind() Kind { return KindVariable }
func (v *Variable) Types() TypeSet { return v.Type }
func (v *Variable) Pos() Position  { return v.At }
func (v *Variable) Name() string   { return v.Ident }
func (v *Variable) Weak() bool     { return v.IsWeak }
func (v *Variable) Weaken() Identifier {
	cp := *v
	cp.IsWeak = true
	return &cp
}
func (v *Variable) Rescope(token ScopeToken, push bool) Expr {
	cp := *v
	cp.Scopes = rescopeStack(v.Scopes, token, push)
	return &cp
}
func (v *Variable) String() string { return v.Ident }

// --- MetaVariable ---

func (m *MetaVariable) ExprKind() Kind { return KindMetaVariable }
func (m *MetaVariable) Types() TypeSet { return m.Type }
func (m *MetaVariable) Pos() Position  { return m.At }
func (m *MetaVariable) Name() string   { return "$" + m.Label }
func (m *MetaVariable) Weak() bool     { return m.IsWeak }
func (m *MetaVariable) Weaken() Identifier {
	cp := *m
	cp.IsWeak = true
	return &cp
}
func (m *MetaVariable) Rescope(token ScopeToken, push bool) Expr {
	cp := *m
	cp.Scopes = rescopeStack(m.Scopes, token, push)
	return &cp
}
func (m *MetaVariable) String() string { return m.Name() }

// --- UnaryOp ---

func (u *UnaryOp) ExprKind() Kind { return KindUnaryOp }
func (u *UnaryOp) Types() TypeSet { return u.Type }
func (u *UnaryOp) Pos() Position  { return u.At }
func (u *UnaryOp) Rescope(token ScopeToken, push bool) Expr {
	cp := *u
	cp.E = u.E.Rescope(token, push)
	return &cp
}
func (u *UnaryOp) String() string { return fmt.Sprintf("%s(%s)", u.Op, u.E) }

// --- BinaryOp ---

func (b *BinaryOp) ExprKind() Kind { return KindBinaryOp }
func (b *BinaryOp) Types() TypeSet { return b.Type }
func (b *BinaryOp) Pos() Position  { return b.At }
func (b *BinaryOp) Rescope(token ScopeToken, push bool) Expr {
	cp := *b
	cp.Left = b.Left.Rescope(token, push)
	cp.Right = b.Right.Rescope(token, push)
	return &cp
}
func (b *BinaryOp) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }

// --- TernaryOp ---

func (t *TernaryOp) ExprKind() Kind { return KindTernaryOp }
func (t *TernaryOp) Types() TypeSet { return t.Type }
func (t *TernaryOp) Pos() Position  { return t.At }
func (t *TernaryOp) Rescope(token ScopeToken, push bool) Expr {
	cp := *t
	cp.A = t.A.Rescope(token, push)
	cp.B = t.B.Rescope(token, push)
	cp.C = t.C.Rescope(token, push)
	return &cp
}
func (t *TernaryOp) String() string { return fmt.Sprintf("%s(%s, %s, %s)", t.Op, t.A, t.B, t.C) }

// --- HeapAllocation ---

func (h *HeapAllocation) ExprKind() Kind { return KindHeapAllocation }
func (h *HeapAllocation) Types() TypeSet { return h.Type }
func (h *HeapAllocation) Pos() Position  { return h.At }
func (h *HeapAllocation) Rescope(ScopeToken, bool) Expr { return h }
func (h *HeapAllocation) String() string {
	return fmt.Sprintf("new@%s", h.Loc)
}

// --- HeapReference ---

func (h *HeapReference) ExprKind() Kind { return KindHeapReference }
func (h *HeapReference) Types() TypeSet { return h.Type }
func (h *HeapReference) Pos() Position  { return h.At }
func (h *HeapReference) Rescope(token ScopeToken, push bool) Expr {
	cp := *h
	cp.Inner = h.Inner.Rescope(token, push)
	return &cp
}
func (h *HeapReference) String() string { return fmt.Sprintf("&%s", h.Inner) }

// --- HeapDereference ---

func (h *HeapDereference) ExprKind() Kind { return KindHeapDereference }
func (h *HeapDereference) Types() TypeSet { return h.Type }
func (h *HeapDereference) Pos() Position  { return h.At }
func (h *HeapDereference) Rescope(token ScopeToken, push bool) Expr {
	cp := *h
	cp.Inner = h.Inner.Rescope(token, push)
	return &cp
}
func (h *HeapDereference) String() string { return fmt.Sprintf("*%s", h.Inner) }

// --- AccessChild ---

func (a *AccessChild) ExprKind() Kind { return KindAccessChild }
func (a *AccessChild) Types() TypeSet { return a.Type }
func (a *AccessChild) Pos() Position  { return a.At }
func (a *AccessChild) Rescope(token ScopeToken, push bool) Expr {
	cp := *a
	cp.Receiver = a.Receiver.Rescope(token, push)
	return &cp
}
func (a *AccessChild) String() string { return fmt.Sprintf("%s.%s", a.Receiver, a.Child) }

// --- PointerIdentifier ---

func (p *PointerIdentifier) ExprKind() Kind { return KindPointerIdentifier }
func (p *PointerIdentifier) Types() TypeSet { return p.Type }
func (p *PointerIdentifier) Pos() Position  { return p.At }
func (p *PointerIdentifier) Name() string   { return "*" + p.TargetLocation }
func (p *PointerIdentifier) Weak() bool     { return p.IsWeak }
func (p *PointerIdentifier) Weaken() Identifier {
	cp := *p
	cp.IsWeak = true
	return &cp
}
func (p *PointerIdentifier) Rescope(ScopeToken, bool) Expr { return p }
func (p *PointerIdentifier) String() string                { return p.Name() }

// --- AllocationSite ---

func (a *AllocationSite) ExprKind() Kind { return KindAllocationSite }
func (a *AllocationSite) Types() TypeSet { return a.Type }
func (a *AllocationSite) Pos() Position  { return a.Loc.Position }
func (a *AllocationSite) Name() string   { return "alloc@" + a.Loc.String() }
func (a *AllocationSite) Weak() bool     { return a.IsWeak }
func (a *AllocationSite) Weaken() Identifier {
	cp := *a
	cp.IsWeak = true
	return &cp
}
func (a *AllocationSite) Rescope(ScopeToken, bool) Expr { return a }
func (a *AllocationSite) String() string                { return a.Name() }
