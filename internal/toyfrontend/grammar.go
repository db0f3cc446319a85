package toyfrontend

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the root of a parsed toy source file: a sequence of
// functions, each analyzed independently (the toy language has no
// calls, see Build's doc comment for why).
type Program struct {
	Pos       lexer.Position
	Functions []*Function `@@*`
}

// Function is `func name(params) { statements }`.
type Function struct {
	Pos    lexer.Position
	Name   string   `"func" @Ident`
	Params []string `"(" [ @Ident { "," @Ident } ] ")"`
	Body   *Block   `@@`
}

// Block is a brace-delimited statement list.
type Block struct {
	Pos   lexer.Position
	Stmts []*Statement `"{" @@* "}"`
}

// Statement is the alternation over every statement form, following
// the teacher's struct-of-optional-pointers alternation pattern
// (grammar/grammar.go's Statement). Exactly one field is non-nil after
// a successful parse.
type Statement struct {
	Pos    lexer.Position
	If     *IfStmt          `  @@`
	While  *WhileStmt       `| @@`
	Return *ReturnStmt      `| @@`
	Field  *FieldAssignStmt `| @@`
	Assign *AssignStmt      `| @@`
}

// IfStmt is `if (cond) { ... } [else { ... }]`.
type IfStmt struct {
	Pos  lexer.Position
	Cond *Expr  `"if" "(" @@ ")"`
	Then *Block `@@`
	Else *Block `[ "else" @@ ]`
}

// WhileStmt is `while (cond) { ... }`.
type WhileStmt struct {
	Pos  lexer.Position
	Cond *Expr  `"while" "(" @@ ")"`
	Body *Block `@@`
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Pos  lexer.Position
	Expr *Expr `"return" [ @@ ] ";"`
}

// FieldAssignStmt is `target.field = value;`, a field-insensitive
// write through whatever allocation sites target currently holds
// (spec §4.4).
type FieldAssignStmt struct {
	Pos    lexer.Position
	Target string `@Ident "."`
	Field  string `@Ident "="`
	Value  *Expr  `@@ ";"`
}

// AssignStmt is `target = value;`.
type AssignStmt struct {
	Pos    lexer.Position
	Target string `@Ident "="`
	Value  *Expr  `@@ ";"`
}

// Expr is the flat left-to-right binary fold the teacher's own
// expression grammar uses (grammar/grammar.go's Expr/BinaryExpr),
// rather than precedence climbing: BinOp.Operator carries whatever
// comparison or arithmetic token follows, and the symbolic IR
// conversion folds left to right with no precedence at all, which is
// enough for a toy language whose programs are written with explicit
// parentheses where it matters.
type Expr struct {
	Pos    lexer.Position
	Binary *BinaryExpr `@@`
}

// BinaryExpr is one operand followed by zero or more (operator,
// operand) pairs.
type BinaryExpr struct {
	Pos  lexer.Position
	Left *UnaryExpr `@@`
	Ops  []*BinOp   `{ @@ }`
}

// BinOp is one trailing (operator, operand) pair of a BinaryExpr.
type BinOp struct {
	Operator string     `@("==" | "!=" | "<=" | ">=" | "<" | ">" | "+" | "-" | "*" | "/")`
	Right    *UnaryExpr `@@`
}

// UnaryExpr is an optionally negated Primary.
type UnaryExpr struct {
	Pos     lexer.Position
	Negate  bool     `[ @"-" ]`
	Primary *Primary `@@`
}

// Primary is the leaf of the expression grammar: a new-allocation, an
// integer literal, the nondeterministic wildcard "*", a variable
// reference, or a parenthesized sub-expression.
type Primary struct {
	Pos    lexer.Position
	New    *NewExpr `  @@`
	Number *string  `| @Integer`
	Nondet bool     `| @"*"`
	Ident  *string  `| @Ident`
	Parens *Expr    `| "(" @@ ")"`
}

// NewExpr is `new Type`, a heap allocation (spec §3, "Allocation
// site").
type NewExpr struct {
	Pos  lexer.Position
	Type string `"new" @Ident`
}
