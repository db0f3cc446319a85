package symbolic

import "fmt"

// ScopeToken names one lexical scope a call pushes an expression into
// (spec §3, §4.9 "bindFormals ... via pushScope"). Tokens are opaque and
// comparable so the interprocedural driver can use them as map keys.
type ScopeToken struct {
	callSite string
	depth    int
}

// RootScope is the scope of the program's entry point, with no pushed
// call frames.
var RootScope = ScopeToken{}

// Push returns the scope one call frame deeper, identified by callSite
// (typically a CFG node id).
func (t ScopeToken) Push(callSite string) ScopeToken {
	return ScopeToken{callSite: callSite, depth: t.depth + 1}
}

func (t ScopeToken) String() string {
	if t.depth == 0 {
		return "<root>"
	}
	return fmt.Sprintf("%s@%d", t.callSite, t.depth)
}

// Depth is the number of pushed call frames.
func (t ScopeToken) Depth() int { return t.depth }

// Equal reports whether two scope tokens name the same frame.
func (t ScopeToken) Equal(other ScopeToken) bool {
	return t.callSite == other.callSite && t.depth == other.depth
}

// rescopeStack implements the push/pop half of Expr.Rescope for
// identifiers that carry an explicit scope stack (Variable,
// MetaVariable). Pushing appends token; popping removes it only if it is
// exactly the top of the stack, which is what makes
// popScope(pushScope(e, τ), τ) = e hold (spec §8, property 9) for any
// token the caller pushed itself.
func rescopeStack(stack []ScopeToken, token ScopeToken, push bool) []ScopeToken {
	if push {
		out := make([]ScopeToken, len(stack)+1)
		copy(out, stack)
		out[len(stack)] = token
		return out
	}
	if len(stack) > 0 && stack[len(stack)-1].Equal(token) {
		if len(stack) == 1 {
			return nil
		}
		return stack[:len(stack)-1]
	}
	return stack
}
