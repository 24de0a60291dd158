// Package matchc is the public entry point of the match compiler. It wraps
// the internal packages into a per-file compilation unit: build a Unit,
// register the constructor tables of the file, compile each multi-equation
// definition, then render the collected diagnostics.
package matchc

import (
	"io"

	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/config"
	"github.com/funvibe/matchc/internal/diagnostics"
	"github.com/funvibe/matchc/internal/matcher"
	"github.com/funvibe/matchc/internal/rewrite"
	"github.com/funvibe/matchc/internal/symbols"
)

// Aliases so callers outside the module can name the compiler's types.
type (
	Expression  = ast.Expression
	Pattern     = ast.Pattern
	Clause      = matcher.Clause
	Options     = config.Options
	Constructor = symbols.Constructor
	Diagnostic  = diagnostics.DiagnosticError
)

// LoadOptions reads matchc.yaml by walking up from dir; missing files yield
// the defaults.
func LoadOptions(dir string) (Options, error) {
	return config.LoadProject(dir)
}

// Unit compiles the match expressions of one source file. Not safe for
// concurrent use.
type Unit struct {
	table *symbols.Table
	bag   *diagnostics.Bag
	ctx   *matcher.Context
}

// NewUnit creates a compilation unit for the named file. The builtin prelude
// types are pre-registered.
func NewUnit(file string, opts Options) *Unit {
	table := symbols.NewTable()
	table.InitBuiltins()
	bag := diagnostics.NewBag(file)
	bag.TraceLevel = opts.TraceLevel
	return &Unit{
		table: table,
		bag:   bag,
		ctx:   matcher.NewContext(table, bag, opts),
	}
}

// DefineType registers a user-defined algebraic data type and its
// constructors before compilation.
func (u *Unit) DefineType(typeName string, ctors ...Constructor) {
	u.table.DefineType(typeName, ctors...)
}

// Compile turns one multi-equation definition into a decision tree. The
// scrutinees are the definition's argument variables; each clause carries one
// pattern per argument. A returned error is a fatal *Diagnostic; advisory
// warnings and hints accumulate on the unit.
func (u *Unit) Compile(scrutinees []Expression, clauses []Clause) (Expression, error) {
	return u.ctx.CompileMatch(scrutinees, clauses)
}

// EliminateTuples runs the tuple-elimination pre-pass bottom-up over an
// expression tree, compiling away cases over freshly built product values.
func (u *Unit) EliminateTuples(expr Expression) (Expression, error) {
	return rewrite.BottomUp(expr, u.ctx.Rewriter())
}

// Diagnostics returns everything collected so far, in emission order.
func (u *Unit) Diagnostics() []*Diagnostic {
	return u.bag.Diags
}

// Render writes the unit's diagnostics to w, colorized when w is a terminal.
func (u *Unit) Render(w io.Writer) {
	diagnostics.Render(w, u.bag.Diags)
}
