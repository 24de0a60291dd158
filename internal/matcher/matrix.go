package matcher

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/diagnostics"
	"github.com/funvibe/matchc/internal/token"
)

// shape classifies the canonical pattern shapes of a column.
type shape int

const (
	shapeVar shape = iota
	shapeCon
	shapeBool
	shapeLit
)

func (s shape) String() string {
	switch s {
	case shapeVar:
		return "variable"
	case shapeCon:
		return "constructor"
	case shapeBool:
		return "boolean"
	default:
		return "literal"
	}
}

// rawShape classifies a pattern that may still carry aliases or modifiers.
// Classification never rewrites anything, so it is safe on columns that
// have not been canonicalized yet.
func rawShape(pat ast.Pattern) shape {
	switch p := stripAll(pat).(type) {
	case *ast.ConstructorPattern, *ast.RawConstructorPattern:
		return shapeCon
	case *ast.LiteralPattern:
		if p.IsBool() {
			return shapeBool
		}
		return shapeLit
	case *ast.StringPattern:
		return shapeLit
	default:
		return shapeVar
	}
}

func stripAll(pat ast.Pattern) ast.Pattern {
	for {
		switch p := pat.(type) {
		case *ast.StrictPattern:
			pat = p.Pattern
		case *ast.AnnotatedPattern:
			pat = p.Pattern
		case *ast.AliasPattern:
			pat = p.Pattern
		default:
			return pat
		}
	}
}

// compile is the clause-matrix compiler. It consumes the scrutinee columns
// left to right (subject to the reordering heuristic) and produces one
// expression equivalent to sequential top-to-bottom equation matching.
// Every recursive call strictly shrinks either the column count or the row
// count, so compilation always terminates.
func (c *Context) compile(mode Mode, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	for _, cl := range clauses {
		if len(cl.Patterns) != len(scruts) {
			return nil, c.diags.Fatal(diagnostics.ErrM003, cl.Body.GetToken(),
				fmt.Sprintf("%d pattern(s) for %d scrutinee(s)", len(cl.Patterns), len(scruts)))
		}
	}
	if len(scruts) == 0 {
		return c.compileEmpty(clauses)
	}
	if len(clauses) == 0 {
		return nil, c.diags.Fatal(diagnostics.ErrM002, scruts[0].GetToken())
	}

	u, ok := scruts[0].(*ast.Identifier)
	if !ok {
		return nil, c.diags.Fatal(diagnostics.ErrM004, scruts[0].GetToken())
	}

	canon := make([]Clause, len(clauses))
	for i, cl := range clauses {
		pat, body, err := c.canonicalize(u, cl.Patterns[0], cl.Body)
		if err != nil {
			return nil, err
		}
		row := make([]ast.Pattern, 0, len(cl.Patterns))
		row = append(row, pat)
		row = append(row, cl.Patterns[1:]...)
		canon[i] = Clause{Patterns: row, Body: body}
	}

	c.tracef(2, u.GetToken(), "compile %s: %d column(s), %d equation(s)", mode, len(scruts), len(canon))

	switch {
	case allShape(canon, shapeVar):
		return c.compileVars(mode, u, scruts, canon)
	case allShape(canon, shapeCon):
		return c.compileCons(mode, u, scruts, canon)
	case allShape(canon, shapeBool):
		return c.compileBools(mode, u, scruts, canon)
	case allShape(canon, shapeLit):
		return c.compileLits(u, scruts, canon)
	case c.productColumn(canon):
		return c.compileProduct(mode, u, scruts, canon)
	default:
		return c.compileMixed(mode, scruts, canon)
	}
}

func allShape(clauses []Clause, s shape) bool {
	for _, cl := range clauses {
		if rawShape(cl.Patterns[0]) != s {
			return false
		}
	}
	return true
}

// compileEmpty handles the zero-column base case: the first remaining
// equation wins; later ones survive only as fallbacks of an open guarded
// chain, otherwise they are dead and reported.
func (c *Context) compileEmpty(clauses []Clause) (ast.Expression, error) {
	if len(clauses) == 0 {
		return nil, c.diags.Fatal(diagnostics.ErrM002, token.Token{})
	}
	result := clauses[0].Body
	for _, cl := range clauses[1:] {
		result = c.appendFallback(cl.Body, result)
	}
	return result, nil
}

// compileVars: every row binds the scrutinee to a name; substitute it into
// the bodies and move on to the next column.
func (c *Context) compileVars(mode Mode, u *ast.Identifier, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	reduced := make([]Clause, len(clauses))
	for i, cl := range clauses {
		body := cl.Body
		if p, ok := cl.Patterns[0].(*ast.IdentifierPattern); ok {
			body = ast.Substitute(body, p.Value, u)
		}
		reduced[i] = Clause{Patterns: cl.Patterns[1:], Body: body}
	}
	return c.compile(mode, scruts[1:], reduced)
}

// compileCons groups an all-constructor column into one conditional over u
// with one alternative per distinct constructor, in sorted name order.
// The grouping is stable: equations keep their relative order within each
// alternative.
func (c *Context) compileCons(mode Mode, u *ast.Identifier, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	sorted := make([]Clause, len(clauses))
	copy(sorted, clauses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Patterns[0].(*ast.ConstructorPattern).Name.Value <
			sorted[j].Patterns[0].(*ast.ConstructorPattern).Name.Value
	})

	var alts []*ast.CaseAlt
	for start := 0; start < len(sorted); {
		name := sorted[start].Patterns[0].(*ast.ConstructorPattern).Name.Value
		end := start
		for end < len(sorted) && sorted[end].Patterns[0].(*ast.ConstructorPattern).Name.Value == name {
			end++
		}
		alt, err := c.compileConGroup(u, scruts, sorted[start:end])
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
		start = end
	}
	return c.emit(mode, u, alts), nil
}

// compileConGroup compiles the sub-matrix of one constructor: fresh field
// variables become new leading columns, the constructor pattern of each row
// is replaced by its sub-patterns.
func (c *Context) compileConGroup(u *ast.Identifier, scruts []ast.Expression, group []Clause) (*ast.CaseAlt, error) {
	head := group[0].Patterns[0].(*ast.ConstructorPattern)
	arity := c.symbols.FieldCount(head.Name.Value)
	if arity < 0 {
		arity = len(head.Elements)
	}
	if arity != len(head.Elements) {
		return nil, c.diags.Fatal(diagnostics.ErrM003, head.GetToken(),
			fmt.Sprintf("constructor %s expects %d field(s), pattern has %d", head.Name.Value, arity, len(head.Elements)))
	}

	fieldVars := make([]ast.Expression, arity)
	fieldPats := make([]ast.Pattern, arity)
	for i := 0; i < arity; i++ {
		v, vp := c.freshVarPattern(head.Token)
		fieldVars[i] = v
		fieldPats[i] = vp
	}

	subScruts := make([]ast.Expression, 0, arity+len(scruts)-1)
	subScruts = append(subScruts, fieldVars...)
	subScruts = append(subScruts, scruts[1:]...)

	subClauses := make([]Clause, len(group))
	for i, cl := range group {
		cp := cl.Patterns[0].(*ast.ConstructorPattern)
		if len(cp.Elements) != arity {
			return nil, c.diags.Fatal(diagnostics.ErrM003, cp.GetToken(),
				fmt.Sprintf("constructor %s expects %d field(s), pattern has %d", cp.Name.Value, arity, len(cp.Elements)))
		}
		row := make([]ast.Pattern, 0, arity+len(cl.Patterns)-1)
		row = append(row, cp.Elements...)
		row = append(row, cl.Patterns[1:]...)
		subClauses[i] = Clause{Patterns: row, Body: cl.Body}
	}

	body, err := c.compile(Guarded, subScruts, subClauses)
	if err != nil {
		return nil, err
	}
	pattern := &ast.ConstructorPattern{Token: head.Token, Name: head.Name, Elements: fieldPats}
	return &ast.CaseAlt{Pattern: pattern, Body: body}, nil
}

// compileBools groups an all-boolean column by literal value, true before
// false. Booleans are the only literals with an enumerable value space, so
// grouping cannot misrepresent fall-through.
func (c *Context) compileBools(mode Mode, u *ast.Identifier, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	sorted := make([]Clause, len(clauses))
	copy(sorted, clauses)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := sorted[i].Patterns[0].(*ast.LiteralPattern).Value.(bool)
		b := sorted[j].Patterns[0].(*ast.LiteralPattern).Value.(bool)
		return a && !b
	})

	var alts []*ast.CaseAlt
	for start := 0; start < len(sorted); {
		value := sorted[start].Patterns[0].(*ast.LiteralPattern).Value.(bool)
		end := start
		for end < len(sorted) && sorted[end].Patterns[0].(*ast.LiteralPattern).Value.(bool) == value {
			end++
		}
		group := sorted[start:end]
		subClauses := make([]Clause, len(group))
		for i, cl := range group {
			subClauses[i] = Clause{Patterns: cl.Patterns[1:], Body: cl.Body}
		}
		body, err := c.compile(Guarded, scruts[1:], subClauses)
		if err != nil {
			return nil, err
		}
		head := group[0].Patterns[0].(*ast.LiteralPattern)
		alts = append(alts, &ast.CaseAlt{
			Pattern: &ast.LiteralPattern{Token: head.Token, Value: value},
			Body:    body,
		})
		start = end
	}
	return c.emit(mode, u, alts), nil
}

// compileLits handles non-boolean literal columns, exotic literals
// included. The value space is not enumerable, so clauses are never
// grouped or reordered: each becomes its own guarded sub-match over u,
// chained in original order.
func (c *Context) compileLits(u *ast.Identifier, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	var result ast.Expression
	for i, cl := range clauses {
		body, err := c.compile(Guarded, scruts[1:], []Clause{{Patterns: cl.Patterns[1:], Body: cl.Body}})
		if err != nil {
			return nil, err
		}
		wrapped := &ast.CaseExpression{
			Token:     cl.Patterns[0].GetToken(),
			Scrutinee: u,
			Alts:      []*ast.CaseAlt{{Pattern: cl.Patterns[0], Body: body}},
		}
		if i == 0 {
			result = wrapped
		} else {
			result = c.appendFallback(wrapped, result)
		}
	}
	return result, nil
}

// productColumn reports whether the column mixes variables with
// constructors that are each the unique constructor of their type. Such a
// constructor is irrefutable, so variable rows can legally be expanded
// into it without losing completeness information.
func (c *Context) productColumn(clauses []Clause) bool {
	sawCon := false
	for _, cl := range clauses {
		switch p := cl.Patterns[0].(type) {
		case *ast.WildcardPattern, *ast.IdentifierPattern:
		case *ast.ConstructorPattern:
			if !c.symbols.IsSoleConstructor(p.Name.Value) {
				return false
			}
			sawCon = true
		default:
			return false
		}
	}
	return sawCon
}

// compileProduct rewrites every variable row into the product constructor
// applied to wildcard fields, then regroups as an all-constructor column.
// Variable bindings are preserved by substituting the scrutinee first.
func (c *Context) compileProduct(mode Mode, u *ast.Identifier, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	var template *ast.ConstructorPattern
	for _, cl := range clauses {
		if cp, ok := cl.Patterns[0].(*ast.ConstructorPattern); ok {
			template = cp
			break
		}
	}
	arity := c.symbols.FieldCount(template.Name.Value)
	if arity < 0 {
		arity = len(template.Elements)
	}

	rewritten := make([]Clause, len(clauses))
	for i, cl := range clauses {
		if _, ok := cl.Patterns[0].(*ast.ConstructorPattern); ok {
			rewritten[i] = cl
			continue
		}
		body := cl.Body
		if p, ok := cl.Patterns[0].(*ast.IdentifierPattern); ok {
			body = ast.Substitute(body, p.Value, u)
		}
		tok := cl.Patterns[0].GetToken()
		fields := make([]ast.Pattern, arity)
		for j := 0; j < arity; j++ {
			fields[j] = &ast.WildcardPattern{Token: tok}
		}
		row := make([]ast.Pattern, 0, len(cl.Patterns))
		row = append(row, &ast.ConstructorPattern{Token: tok, Name: template.Name, Elements: fields})
		row = append(row, cl.Patterns[1:]...)
		rewritten[i] = Clause{Patterns: row, Body: body}
	}
	return c.compileCons(mode, u, scruts, rewritten)
}

// compileMixed is the general mixed case: try to move a uniform column to
// the front, otherwise split off the leading run of equal-shape rows.
func (c *Context) compileMixed(mode Mode, scruts []ast.Expression, clauses []Clause) (ast.Expression, error) {
	if !c.opts.PreserveOrder {
		if k := uniformColumn(clauses); k > 0 {
			top := clauses[0].Patterns[k]
			if rawShape(top) != shapeVar {
				// The move changes which argument is forced first; flag it
				// unless the top pattern is a plain variable.
				c.diags.Hint(diagnostics.HintM001, top.GetToken(), "column "+strconv.Itoa(k+1))
			}
			c.tracef(1, top.GetToken(), "reordering column %d to the front", k+1)
			newScruts, newClauses := rotateColumn(scruts, clauses, k)
			return c.compile(mode, newScruts, newClauses)
		}
	}

	// Column-0 prefix split: compile the maximal leading run of one shape
	// as the primary match and everything after it as the fallback. The
	// shape changes at the boundary, so both halves are non-empty and the
	// recursion shrinks.
	first := rawShape(clauses[0].Patterns[0])
	split := 1
	for split < len(clauses) && rawShape(clauses[split].Patterns[0]) == first {
		split++
	}
	these, err := c.compile(Guarded, scruts, clauses[:split])
	if err != nil {
		return nil, err
	}
	those, err := c.compile(mode, scruts, clauses[split:])
	if err != nil {
		return nil, err
	}
	return c.appendFallback(those, these), nil
}

// uniformColumn returns the index of the leftmost column (past column 0)
// whose patterns all share one shape, or 0 when there is none. Column 0 is
// excluded because the caller only gets here when it is mixed.
func uniformColumn(clauses []Clause) int {
	cols := len(clauses[0].Patterns)
	for k := 1; k < cols; k++ {
		s := rawShape(clauses[0].Patterns[k])
		uniform := true
		for _, cl := range clauses[1:] {
			if rawShape(cl.Patterns[k]) != s {
				uniform = false
				break
			}
		}
		if uniform {
			return k
		}
	}
	return 0
}

// rotateColumn moves column k to position 0, preserving the relative order
// of the other columns, in both the scrutinee list and every row.
func rotateColumn(scruts []ast.Expression, clauses []Clause, k int) ([]ast.Expression, []Clause) {
	newScruts := make([]ast.Expression, 0, len(scruts))
	newScruts = append(newScruts, scruts[k])
	newScruts = append(newScruts, scruts[:k]...)
	newScruts = append(newScruts, scruts[k+1:]...)

	newClauses := make([]Clause, len(clauses))
	for i, cl := range clauses {
		row := make([]ast.Pattern, 0, len(cl.Patterns))
		row = append(row, cl.Patterns[k])
		row = append(row, cl.Patterns[:k]...)
		row = append(row, cl.Patterns[k+1:]...)
		newClauses[i] = Clause{Patterns: row, Body: cl.Body}
	}
	return newScruts, newClauses
}

// appendFallback chains fallback behind primary. Only open guarded chains
// can take a fallback: a single-alternative case gains a fresh-variable
// default alternative, a two-alternative case delegates to its default
// branch. Anything else cannot be extended; the fallback equations are
// unreachable and reported, and primary is returned unchanged.
func (c *Context) appendFallback(fallback, primary ast.Expression) ast.Expression {
	cse, ok := primary.(*ast.CaseExpression)
	if !ok {
		c.diags.Warn(diagnostics.WarnM001, fallback.GetToken())
		return primary
	}
	switch len(cse.Alts) {
	case 1:
		_, vp := c.freshVarPattern(cse.Token)
		return &ast.CaseExpression{
			Token:     cse.Token,
			Scrutinee: cse.Scrutinee,
			Alts: []*ast.CaseAlt{
				cse.Alts[0],
				{Pattern: vp, Body: fallback},
			},
		}
	case 2:
		tail := c.appendFallback(fallback, cse.Alts[1].Body)
		if tail == cse.Alts[1].Body {
			return cse
		}
		return &ast.CaseExpression{
			Token:     cse.Token,
			Scrutinee: cse.Scrutinee,
			Alts: []*ast.CaseAlt{
				cse.Alts[0],
				{Pattern: cse.Alts[1].Pattern, Body: tail},
			},
		}
	default:
		c.diags.Warn(diagnostics.WarnM001, fallback.GetToken())
		return primary
	}
}

// emit assembles the alternatives of one decision node. Plain mode emits a
// normal multi-alternative case; Guarded mode right-nests them one at a
// time so the chain stays open for appendFallback.
func (c *Context) emit(mode Mode, u *ast.Identifier, alts []*ast.CaseAlt) ast.Expression {
	if mode == Plain || len(alts) == 1 {
		return &ast.CaseExpression{Token: u.Token, Scrutinee: u, Alts: alts}
	}
	result := &ast.CaseExpression{Token: u.Token, Scrutinee: u, Alts: []*ast.CaseAlt{alts[len(alts)-1]}}
	for i := len(alts) - 2; i >= 0; i-- {
		_, vp := c.freshVarPattern(u.Token)
		result = &ast.CaseExpression{
			Token:     u.Token,
			Scrutinee: u,
			Alts: []*ast.CaseAlt{
				alts[i],
				{Pattern: vp, Body: result},
			},
		}
	}
	return result
}
