package interproc

// CodeMember identifies one callable unit (function/procedure) a call
// site can resolve to (spec §4.9, "a set of CodeMember targets").
type CodeMember interface {
	ID() string
}

// OpenCallPolicy governs how the driver treats a call site the
// CallGraph could not resolve to any target (spec §6,
// "openCallPolicy: {TOP, BOTTOM, FAIL}").
type OpenCallPolicy int

const (
	ReturnTop OpenCallPolicy = iota
	ReturnBottom
	FailOnOpenCall
)

// CallGraph resolves a call site to zero or more callable targets.
type CallGraph interface {
	Resolve(callSite string) ([]CodeMember, bool)
}

// memberID is the minimal CodeMember for callers that only have a
// string identifier on hand (e.g. a toy frontend's call graph).
type memberID string

func (m memberID) ID() string { return string(m) }

// Member wraps a plain string id as a CodeMember.
func Member(id string) CodeMember { return memberID(id) }

// StaticCallGraph is a CallGraph backed by a fixed call-site -> callee
// map, sufficient for a frontend that resolves calls during CFG
// construction (no dynamic dispatch).
type StaticCallGraph struct {
	targets map[string][]CodeMember
}

// NewStaticCallGraph builds a StaticCallGraph from a call-site -> callee
// id map.
func NewStaticCallGraph(edges map[string]string) *StaticCallGraph {
	targets := make(map[string][]CodeMember, len(edges))
	for site, callee := range edges {
		targets[site] = []CodeMember{Member(callee)}
	}
	return &StaticCallGraph{targets: targets}
}

func (g *StaticCallGraph) Resolve(callSite string) ([]CodeMember, bool) {
	targets, ok := g.targets[callSite]
	return targets, ok
}
