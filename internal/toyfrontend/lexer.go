// Package toyfrontend is a minimal participle-based frontend for a toy
// imperative language, built only to exercise the CFG consumer
// interface (spec §6) end to end from a real textual syntax, the way
// cmd/absint-run demonstrates the engine.
//
// The language has functions, assignment, field writes, new-allocation,
// if/else, while, and return; a bare "*" stands for a nondeterministic
// condition (spec's "if(*)"/"while(*)" scenarios), since the fixpoint
// only ever assumes both branches of a guard rather than evaluating it.
package toyfrontend

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes toy-language source, grounded on the teacher's own
// stateful lexer (grammar/lexer.go) but trimmed to this language's much
// smaller token set.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Operator", `(==|!=|<=|>=|[-+*/<>=])`, nil},
		{"Punctuation", `[(){};,.]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
