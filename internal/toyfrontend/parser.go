package toyfrontend

import (
	"github.com/alecthomas/participle/v2"
)

// Parse lexes and parses src (filename is used only for diagnostics)
// into a Program, following the teacher's ParseSource shape
// (grammar/parser.go): build a fresh parser per call and surface a
// participle.Error on failure so callers can render it with caret
// positions, the same contract the teacher's CLI relies on.
func Parse(filename, src string) (*Program, error) {
	parser, err := participle.Build[Program](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, err
	}
	return parser.ParseString(filename, src)
}
