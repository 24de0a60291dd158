package matcher

import (
	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/config"
	"github.com/funvibe/matchc/internal/diagnostics"
	"github.com/funvibe/matchc/internal/symbols"
	"github.com/funvibe/matchc/internal/token"
)

// Builders for hand-written trees. Positions are synthetic; the compiler
// only carries them through.

func tok(t token.TokenType, lexeme string) token.Token {
	return token.New(t, lexeme, 1, 1)
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: tok(token.IDENT_LOWER, name), Value: name}
}

func intLit(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: tok(token.INT, ""), Value: v}
}

func call(fn string, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{
		Token:     tok(token.IDENT_UPPER, fn),
		Function:  &ast.Identifier{Token: tok(token.IDENT_UPPER, fn), Value: fn},
		Arguments: args,
	}
}

func plus(left, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Token: tok("PLUS", "+"), Left: left, Operator: "+", Right: right}
}

func varPat(name string) *ast.IdentifierPattern {
	return &ast.IdentifierPattern{Token: tok(token.IDENT_LOWER, name), Value: name}
}

func wildPat() *ast.WildcardPattern {
	return &ast.WildcardPattern{Token: tok(token.UNDERSCORE, "_")}
}

func conPat(name string, elements ...ast.Pattern) *ast.ConstructorPattern {
	return &ast.ConstructorPattern{
		Token:    tok(token.IDENT_UPPER, name),
		Name:     &ast.Identifier{Token: tok(token.IDENT_UPPER, name), Value: name},
		Elements: elements,
	}
}

func litPat(v interface{}) *ast.LiteralPattern {
	return &ast.LiteralPattern{Token: tok(token.INT, ""), Value: v}
}

func caseExpr(scrut ast.Expression, alts ...*ast.CaseAlt) *ast.CaseExpression {
	return &ast.CaseExpression{Token: tok(token.CASE, "case"), Scrutinee: scrut, Alts: alts}
}

func alt(p ast.Pattern, body ast.Expression) *ast.CaseAlt {
	return &ast.CaseAlt{Pattern: p, Body: body}
}

func newTestContext(opts config.Options) (*Context, *diagnostics.Bag) {
	table := symbols.NewTable()
	table.InitBuiltins()
	bag := diagnostics.NewBag("test.lang")
	return NewContext(table, bag, opts), bag
}
