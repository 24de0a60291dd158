// Package matcher compiles multi-equation pattern matches into decision
// trees of single-pattern case forms, preserving the semantics of
// sequential top-to-bottom equation matching.
package matcher

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/config"
	"github.com/funvibe/matchc/internal/diagnostics"
	"github.com/funvibe/matchc/internal/prettyprinter"
	"github.com/funvibe/matchc/internal/symbols"
	"github.com/funvibe/matchc/internal/token"
)

// Mode selects the emission strategy for grouped alternatives.
type Mode int

const (
	// Plain emits one multi-alternative case. Used at the top of a
	// definition.
	Plain Mode = iota

	// Guarded emits single-alternative cases chained one at a time, so the
	// result can later take a sibling fallback via appendFallback.
	Guarded
)

func (m Mode) String() string {
	if m == Plain {
		return "plain"
	}
	return "guarded"
}

// Clause is one equation: a row of patterns aligned to the scrutinee list,
// and the body to evaluate when the row matches.
type Clause struct {
	Patterns []ast.Pattern
	Body     ast.Expression
}

// Context carries the per-compilation-unit state: the fresh-binder counter,
// the constructor table, the diagnostics sink and the options. It is not
// safe for concurrent use; one unit is compiled by one goroutine.
type Context struct {
	unitID  string // tags trace output, one per compilation unit
	counter int
	symbols *symbols.Table
	diags   *diagnostics.Bag
	opts    config.Options
	printer *prettyprinter.CodePrinter
}

func NewContext(table *symbols.Table, bag *diagnostics.Bag, opts config.Options) *Context {
	return &Context{
		unitID:  uuid.NewString(),
		symbols: table,
		diags:   bag,
		opts:    opts,
		printer: prettyprinter.NewCodePrinter(),
	}
}

// freshIdent returns a binder unique for the lifetime of the compilation
// unit. The generated prefix keeps it out of the user namespace, so
// substitution can never capture an existing binding.
func (c *Context) freshIdent(tok token.Token) *ast.Identifier {
	c.counter++
	name := fmt.Sprintf("%s%d", config.GeneratedNamePrefix, c.counter)
	t := token.Token{Type: token.IDENT_LOWER, Lexeme: name, Literal: name, Line: tok.Line, Column: tok.Column}
	return &ast.Identifier{Token: t, Value: name}
}

func (c *Context) freshVarPattern(tok token.Token) (*ast.Identifier, *ast.IdentifierPattern) {
	v := c.freshIdent(tok)
	return v, &ast.IdentifierPattern{Token: v.Token, Value: v.Value}
}

func (c *Context) tracef(level int, tok token.Token, format string, args ...interface{}) {
	if c.diags == nil {
		return
	}
	c.diags.Tracef(level, tok, "[unit %s] %s", c.unitID, fmt.Sprintf(format, args...))
}

// CompileMatch compiles a multi-equation definition against its argument
// variables into a single decision-tree expression. Every scrutinee must be
// a bare variable reference; every clause must carry one pattern per
// scrutinee.
func (c *Context) CompileMatch(scrutinees []ast.Expression, clauses []Clause) (ast.Expression, error) {
	return c.compile(Plain, scrutinees, clauses)
}
