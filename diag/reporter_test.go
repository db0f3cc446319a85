package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"absint/source"
)

func TestReporterFormatsPositionedError(t *testing.T) {
	src := "x = 3\ny = x + bogus\nz = y * 2\n"
	r := NewReporter("prog.tiny", src)

	d := Diagnostic{
		Level:    LevelError,
		Code:     CodeSemanticRefusedStep,
		Message:  "undefined identifier 'bogus'",
		Position: source.Position{File: "prog.tiny", Line: 2, Column: 9},
		Notes:    []string{"identifiers must be assigned before use"},
	}

	out := r.Format(d)

	assert.Contains(t, out, "error["+CodeSemanticRefusedStep+"]")
	assert.Contains(t, out, "undefined identifier 'bogus'")
	assert.Contains(t, out, "prog.tiny:2:9")
	assert.Contains(t, out, "y = x + bogus")
	assert.Contains(t, out, "identifiers must be assigned before use")
}

func TestReporterFormatsSetupErrorWithoutPosition(t *testing.T) {
	r := NewReporter("", "")
	d := FromError(NewSetupError(CodeSetupMissingDomain, "no heap domain configured"))

	out := r.Format(d)

	assert.Contains(t, out, "error["+CodeSetupMissingDomain+"]")
	assert.Contains(t, out, "no heap domain configured")
}

func TestFromErrorWrapsFixpointCause(t *testing.T) {
	cause := &SemanticError{Code: CodeSemanticBadRewrite, Message: "rewrite produced no identifier"}
	wrapped := &FixpointError{NodeID: "n3", Cause: cause}

	d := FromError(wrapped)

	assert.Equal(t, LevelError, d.Level)
	assert.Contains(t, d.Notes[0], "n3")
}
