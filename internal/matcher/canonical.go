package matcher

import (
	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/diagnostics"
)

// canonicalize rewrites a pattern/body pair against the scrutinee variable
// u into one of the canonical shapes: variable, constructor, literal or
// exotic literal. Aliases are eliminated by substitution; strictness
// markers and type annotations at variable positions are turned into
// synthetic single-pattern guards; annotations anywhere else are dropped
// with a warning.
//
// u must be a bare variable reference; the caller guarantees this.
func (c *Context) canonicalize(u *ast.Identifier, pat ast.Pattern, body ast.Expression) (ast.Pattern, ast.Expression, error) {
	switch p := pat.(type) {
	case *ast.WildcardPattern, *ast.IdentifierPattern, *ast.ConstructorPattern,
		*ast.LiteralPattern, *ast.StringPattern:
		return pat, body, nil

	case *ast.AliasPattern:
		// name @ inner: every free occurrence of name in the body now
		// refers to the scrutinee itself.
		return c.canonicalize(u, p.Pattern, ast.Substitute(body, p.Name, u))

	case *ast.StrictPattern:
		if x, ok := stripModifiers(p.Pattern).(*ast.IdentifierPattern); ok {
			// !x binds like a variable but must force the scrutinee. The
			// row becomes a fresh variable whose body matches it eagerly
			// against !x before running the original body.
			v, vp := c.freshVarPattern(p.Token)
			guard := &ast.CaseExpression{
				Token:     p.Token,
				Scrutinee: v,
				Alts: []*ast.CaseAlt{{
					Pattern: &ast.StrictPattern{Token: p.Token, Pattern: x},
					Body:    body,
				}},
			}
			return vp, guard, nil
		}
		// At non-variable positions the constructor match forces the
		// scrutinee anyway; the marker carries nothing here.
		return c.canonicalize(u, p.Pattern, body)

	case *ast.AnnotatedPattern:
		if x, ok := stripModifiers(p.Pattern).(*ast.IdentifierPattern); ok {
			v, vp := c.freshVarPattern(p.Token)
			guard := &ast.CaseExpression{
				Token:     p.Token,
				Scrutinee: v,
				Alts: []*ast.CaseAlt{{
					Pattern: &ast.AnnotatedPattern{Token: p.Token, Pattern: x, TypeName: p.TypeName},
					Body:    body,
				}},
			}
			return vp, guard, nil
		}
		c.diags.Warn(diagnostics.WarnM002, p.GetToken(), p.TypeName.Value)
		return c.canonicalize(u, p.Pattern, body)

	case *ast.RawConstructorPattern:
		return nil, nil, c.diags.Fatal(diagnostics.ErrM001, p.GetToken(), p.Name.Value)

	default:
		return nil, nil, c.diags.Fatal(diagnostics.ErrM001, pat.GetToken())
	}
}

// stripModifiers removes strictness markers and type annotations, which
// carry no matching power of their own.
func stripModifiers(pat ast.Pattern) ast.Pattern {
	for {
		switch p := pat.(type) {
		case *ast.StrictPattern:
			pat = p.Pattern
		case *ast.AnnotatedPattern:
			pat = p.Pattern
		default:
			return pat
		}
	}
}
