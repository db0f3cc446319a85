package toyfrontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absint/cfg"
	"absint/check"
	"absint/domain"
	"absint/domains/constprop"
	"absint/engine"
	"absint/internal/toyfrontend"
	"absint/symbolic"
)

// recordKnownValue mirrors engine_test.go's constantZeroCheck,
// generalized to record whatever value a named variable is known to
// be (if any) at a given statement, so a test can assert on it
// directly instead of only on a pass/fail warning.
type recordKnownValue struct {
	target string
	value  int
	known  bool
}

func (c *recordKnownValue) Name() string { return "record-known-value" }

func (c *recordKnownValue) Visit(g cfg.Graph, stmt cfg.Statement, results *check.Results) {
	for _, s := range results.GetAnalysisResultsAt(g.ID(), stmt.ID()) {
		dom, ok := s.Composite.Value.(*constprop.Domain)
		if !ok {
			continue
		}
		if v, known := dom.Get(&symbolic.Variable{Ident: c.target}).Value(); known {
			c.value, c.known = v, true
		}
	}
}

func (c *recordKnownValue) Warnings() []check.Warning { return nil }

func TestParseAndBuildStraightLineFunction(t *testing.T) {
	src := `
func main() {
	x = 1;
	y = x + 2;
}
`
	prog, err := toyfrontend.Parse("straight.tiny", src)
	require.NoError(t, err)

	app, err := toyfrontend.Build(prog)
	require.NoError(t, err)
	assert.Equal(t, "main", app.EntryID)
	assert.Contains(t, app.Graphs, "main")

	eng, err := engine.Configure(engine.Options{
		ValueDomain:       func() domain.Value { return constprop.New() },
		BottomValueDomain: func() domain.Value { return constprop.Bottom() },
	})
	require.NoError(t, err)

	warnings, err := eng.Run(app)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestParseAndBuildIfElseJoin(t *testing.T) {
	src := `
func main() {
	x = 1;
	if (*) {
		x = 2;
	} else {
		x = 3;
	}
	y = x;
}
`
	prog, err := toyfrontend.Parse("branch.tiny", src)
	require.NoError(t, err)

	app, err := toyfrontend.Build(prog)
	require.NoError(t, err)

	recorder := &recordKnownValue{target: "y"}
	eng, err := engine.Configure(engine.Options{
		ValueDomain:       func() domain.Value { return constprop.New() },
		BottomValueDomain: func() domain.Value { return constprop.Bottom() },
		SemanticChecks:    []check.Check{recorder},
	})
	require.NoError(t, err)

	_, err = eng.Run(app)
	require.NoError(t, err)
	assert.False(t, recorder.known, "y joins x=2 and x=3, so it must not be a known constant")
}

func TestParseAndBuildWhileLoopWithAllocation(t *testing.T) {
	src := `
func main() {
	p = new T;
	while (*) {
		p = new T;
		p.f = 1;
	}
}
`
	prog, err := toyfrontend.Parse("loop.tiny", src)
	require.NoError(t, err)

	app, err := toyfrontend.Build(prog)
	require.NoError(t, err)

	eng, err := engine.Configure(engine.Options{
		ValueDomain:       func() domain.Value { return constprop.New() },
		BottomValueDomain: func() domain.Value { return constprop.Bottom() },
	})
	require.NoError(t, err)

	_, err = eng.Run(app)
	require.NoError(t, err)
}

func TestParseRejectsMalformedSource(t *testing.T) {
	_, err := toyfrontend.Parse("bad.tiny", "func main() { x = ; }")
	assert.Error(t, err)
}

func TestBuildRejectsDuplicateFunctionNames(t *testing.T) {
	src := `
func main() { x = 1; }
func main() { y = 2; }
`
	prog, err := toyfrontend.Parse("dup.tiny", src)
	require.NoError(t, err)

	_, err = toyfrontend.Build(prog)
	assert.Error(t, err)
}
