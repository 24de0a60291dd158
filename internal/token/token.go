package token

import "fmt"

type TokenType string

// Token carries the source position of every AST node and diagnostic.
type Token struct {
	Type    TokenType
	Lexeme  string // Exact source text
	Literal string // Decoded literal value, where applicable
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT_LOWER = "IDENT_LOWER" // variables: x, acc
	IDENT_UPPER = "IDENT_UPPER" // constructors and types: Some, Pair
	UNDERSCORE  = "UNDERSCORE"  // _

	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"
	CHAR   = "CHAR"
	TRUE   = "TRUE"
	FALSE  = "FALSE"

	CASE  = "CASE"
	ARROW = "ARROW" // ->
	BANG  = "BANG"  // ! (strictness marker)
	AT    = "AT"    // @ (alias pattern)
	COLON = "COLON" // : (type annotation)
)

func New(tokenType TokenType, lexeme string, line, column int) Token {
	return Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
}

// Pos renders the position as "line:column" for diagnostics.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
