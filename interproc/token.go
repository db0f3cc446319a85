// Package interproc implements the interprocedural driver (spec §4.9,
// C9): call resolution, context-sensitivity tokens, a summary cache,
// and recursion/SCC stabilization.
package interproc

import "strings"

// ContextSensitivityToken is a bounded (k-limited) summary of the call
// stack, used as a cache key for callee summaries (spec §3, "Context
// sensitivity token"; spec §4.9, "pluggable ContextSensitivityToken").
type ContextSensitivityToken struct {
	k      int
	frames []string
}

// RootToken is the token at the program's entry point, bounded to
// depth k (k <= 0 means unbounded).
func RootToken(k int) ContextSensitivityToken {
	return ContextSensitivityToken{k: k}
}

// Push returns the child token for a call at callSite, truncated to
// the last k frames when k is bounded.
func (t ContextSensitivityToken) Push(callSite string) ContextSensitivityToken {
	frames := make([]string, len(t.frames)+1)
	copy(frames, t.frames)
	frames[len(t.frames)] = callSite
	if t.k > 0 && len(frames) > t.k {
		frames = frames[len(frames)-t.k:]
	}
	return ContextSensitivityToken{k: t.k, frames: frames}
}

// Key returns a string uniquely identifying this token, suitable as a
// cache key.
func (t ContextSensitivityToken) Key() string {
	return strings.Join(t.frames, "/")
}

func (t ContextSensitivityToken) String() string {
	if len(t.frames) == 0 {
		return "<root>"
	}
	return t.Key()
}

// Equal reports whether two tokens denote the same bounded call-stack
// summary.
func (t ContextSensitivityToken) Equal(other ContextSensitivityToken) bool {
	return t.Key() == other.Key()
}
