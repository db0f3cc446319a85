package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absint/source"
)

func TestScopeRoundTrip(t *testing.T) {
	v := &Variable{At: source.Position{Line: 1}, Type: NewTypeSet("int"), Ident: "x"}
	token := RootScope.Push("call1")

	pushed := v.Rescope(token, true)
	popped := pushed.Rescope(token, false)

	assert.Equal(t, v, popped)
}

func TestRescopeRecursesThroughBinaryOp(t *testing.T) {
	x := &Variable{Ident: "x", Type: NewTypeSet("int")}
	y := &Variable{Ident: "y", Type: NewTypeSet("int")}
	expr := &BinaryOp{Op: "+", Left: x, Right: y, Type: NewTypeSet("int")}

	token := RootScope.Push("call1")
	pushed := expr.Rescope(token, true).(*BinaryOp)

	assert.Equal(t, []ScopeToken{token}, pushed.Left.(*Variable).Scopes)
	assert.Equal(t, []ScopeToken{token}, pushed.Right.(*Variable).Scopes)
}

type fakeHeap struct {
	sites map[string][]*AllocationSite
	seen  map[string]bool
}

func (h *fakeHeap) Lookup(name string) ([]*AllocationSite, bool) {
	s, ok := h.sites[name]
	return s, ok
}

func (h *fakeHeap) SeenAt(loc source.CodeLocation) bool {
	return h.seen[loc.String()]
}

func TestRewriterHeapAllocationFreshIsStrong(t *testing.T) {
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{}, seen: map[string]bool{}}
	rw := NewRewriter(ctx)

	loc := source.CodeLocation{Position: source.Position{Line: 5}}
	alloc := &HeapAllocation{Type: NewTypeSet("T"), Loc: loc}

	result := rw.Rewrite(alloc)
	site, ok := result.Only().(*AllocationSite)
	require.True(t, ok)
	assert.False(t, site.IsWeak)
}

func TestRewriterHeapAllocationRevisitedIsWeak(t *testing.T) {
	loc := source.CodeLocation{Position: source.Position{Line: 5}}
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{}, seen: map[string]bool{loc.String(): true}}
	rw := NewRewriter(ctx)

	alloc := &HeapAllocation{Type: NewTypeSet("T"), Loc: loc}
	site := rw.Rewrite(alloc).Only().(*AllocationSite)
	assert.True(t, site.IsWeak)
}

func TestRewriterHeapReferenceYieldsPointer(t *testing.T) {
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{}, seen: map[string]bool{}}
	rw := NewRewriter(ctx)

	ref := &HeapReference{Inner: &Variable{Ident: "p"}, Type: NewTypeSet("ptr")}
	result := rw.Rewrite(ref)

	ptr, ok := result.Only().(*PointerIdentifier)
	require.True(t, ok)
	assert.Equal(t, "p", ptr.TargetLocation)
}

func TestRewriterHeapDereferenceExpandsPointerSet(t *testing.T) {
	site := &AllocationSite{Loc: source.CodeLocation{Position: source.Position{Line: 1}}}
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{"p": {site}}, seen: map[string]bool{}}
	rw := NewRewriter(ctx)

	deref := &HeapDereference{Inner: &Variable{Ident: "p"}}
	result := rw.Rewrite(deref)

	require.Len(t, result, 1)
	ptr := result.Only().(*PointerIdentifier)
	assert.Equal(t, site.Name(), ptr.TargetLocation)
}

func TestRewriterDereferenceOfUntrackedVariableRecurses(t *testing.T) {
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{}, seen: map[string]bool{}}
	rw := NewRewriter(ctx)

	deref := &HeapDereference{Inner: &Variable{Ident: "q"}}
	result := rw.Rewrite(deref)

	v, ok := result.Only().(*Variable)
	require.True(t, ok)
	assert.Equal(t, "q", v.Name())
}

func TestRewriterAccessChildThroughPointerWeakensSite(t *testing.T) {
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{}, seen: map[string]bool{}}
	rw := NewRewriter(ctx)

	access := &AccessChild{Receiver: &PointerIdentifier{TargetLocation: "p"}, Child: "f"}
	result := rw.Rewrite(access)

	site, ok := result.Only().(*AllocationSite)
	require.True(t, ok)
	assert.True(t, site.IsWeak)
}

func TestRewriterBareTrackedVariableExpandsFieldInsensitively(t *testing.T) {
	site := &AllocationSite{Loc: source.CodeLocation{Position: source.Position{Line: 2}}}
	ctx := &fakeHeap{sites: map[string][]*AllocationSite{"p": {site}}, seen: map[string]bool{}}
	rw := NewRewriter(ctx)

	result := rw.Rewrite(&Variable{Ident: "p"})
	ptr := result.Only().(*PointerIdentifier)
	assert.Equal(t, site.Name(), ptr.TargetLocation)
}

func TestTypeSetUnionAndContains(t *testing.T) {
	a := NewTypeSet("int", "float")
	b := NewTypeSet("float", "bool")
	u := a.Union(b)

	assert.True(t, u.Contains("int"))
	assert.True(t, u.Contains("bool"))
	assert.ElementsMatch(t, []string{"bool", "float", "int"}, u.Names())
}
