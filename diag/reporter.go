package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"absint/source"
)

// Level is the severity of a Diagnostic.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelNote    Level = "note"
)

// Diagnostic is a structured, positioned message the reporter can render
// with source context, adapted from the teacher's CompilerError
// (kanso/internal/errors/reporter.go) but carrying the engine's own error
// codes instead of the language front-end's.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	Position source.Position
	Notes    []string
}

// FromError renders any of the taxonomy's errors (§7) as a Diagnostic so
// the reporter has one formatting path for both fatal errors and check
// warnings.
func FromError(err error) Diagnostic {
	switch e := err.(type) {
	case *SetupError:
		return Diagnostic{Level: LevelError, Code: e.Code, Message: e.Message}
	case *ValidationError:
		return Diagnostic{Level: LevelError, Code: e.Code, Message: e.Message, Position: e.Position}
	case *SemanticError:
		return Diagnostic{Level: LevelError, Code: e.Code, Message: e.Message, Position: e.Position}
	case *CallGraphError:
		return Diagnostic{Level: LevelError, Code: e.Code, Message: e.Message}
	case *FixpointError:
		return Diagnostic{
			Level:   LevelError,
			Code:    CodeFixpointNodeFailed,
			Message: e.Error(),
			Notes:   []string{fmt.Sprintf("originating node: %s", e.NodeID)},
		}
	case *Cancelled:
		return Diagnostic{Level: LevelNote, Code: CodeCancelled, Message: e.Error()}
	default:
		return Diagnostic{Level: LevelError, Message: err.Error()}
	}
}

// Reporter formats Diagnostics against a known source text, producing the
// same caret-underlined, colorized style as the teacher's CLI.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a reporter for one source file. Source may be empty
// for diagnostics that have no associated text (e.g. SetupError).
func NewReporter(filename, src string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(src, "\n")}
}

// Format renders a single Diagnostic as a multi-line, human-readable
// report.
func (r *Reporter) Format(d Diagnostic) string {
	var b strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	levelColor := r.levelColor(d.Level)

	if d.Code != "" {
		b.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		b.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	if !d.Position.IsValid() {
		for _, note := range d.Notes {
			b.WriteString(fmt.Sprintf("  %s %s\n", dim("note:"), note))
		}
		return b.String()
	}

	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)

	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Position.Line > 0 && d.Position.Line <= len(r.lines) {
		b.WriteString(fmt.Sprintf("%s %s %s\n", bold(pad(d.Position.Line, width)), dim("│"), r.lines[d.Position.Line-1]))
		marker := strings.Repeat(" ", max0(d.Position.Column-1)) + levelColor("^")
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	for _, note := range d.Notes {
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), dim("note:"), note))
	}

	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) levelColor(level Level) func(...interface{}) string {
	switch level {
	case LevelError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	}
}

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}

func pad(n, width int) string {
	return fmt.Sprintf("%*d", width, n)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
