package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/config"
	"github.com/funvibe/matchc/internal/diagnostics"
	"github.com/funvibe/matchc/internal/prettyprinter"
	"github.com/funvibe/matchc/internal/token"
)

func TestCanonicalizeKeepsCanonicalShapes(t *testing.T) {
	c, bag := newTestContext(config.Default())
	u := ident("a")
	body := intLit(1)

	for _, pat := range []ast.Pattern{
		varPat("x"),
		wildPat(),
		conPat("Some", varPat("x")),
		litPat(int64(7)),
		&ast.StringPattern{Token: tok(token.STRING, ""), Parts: []ast.StringPatternPart{{Value: "hi"}}},
	} {
		gotPat, gotBody, err := c.canonicalize(u, pat, body)
		require.NoError(t, err)
		assert.Same(t, pat, gotPat)
		assert.Same(t, ast.Expression(body), gotBody)
	}
	assert.Empty(t, bag.Diags)
}

func TestCanonicalizeAliasSubstitutesBody(t *testing.T) {
	c, _ := newTestContext(config.Default())
	u := ident("a")
	pat := &ast.AliasPattern{
		Token:   tok(token.AT, "@"),
		Name:    "whole",
		Pattern: conPat("Some", varPat("x")),
	}
	body := plus(ident("whole"), ident("x"))

	gotPat, gotBody, err := c.canonicalize(u, pat, body)
	require.NoError(t, err)
	assert.IsType(t, &ast.ConstructorPattern{}, gotPat)

	printed := prettyprinter.NewCodePrinter().Print(gotBody)
	assert.Equal(t, "a + x", printed)
}

func TestCanonicalizeStrictVariableIntroducesGuard(t *testing.T) {
	c, _ := newTestContext(config.Default())
	u := ident("a")
	pat := &ast.StrictPattern{Token: tok(token.BANG, "!"), Pattern: varPat("x")}
	body := plus(ident("x"), intLit(1))

	gotPat, gotBody, err := c.canonicalize(u, pat, body)
	require.NoError(t, err)

	vp, ok := gotPat.(*ast.IdentifierPattern)
	require.True(t, ok, "strict variable row must become a variable row")
	assert.True(t, strings.HasPrefix(vp.Value, config.GeneratedNamePrefix))

	guard, ok := gotBody.(*ast.CaseExpression)
	require.True(t, ok, "body must become a guard case")
	require.Len(t, guard.Alts, 1)
	scrut, ok := guard.Scrutinee.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, vp.Value, scrut.Value)
	assert.IsType(t, &ast.StrictPattern{}, guard.Alts[0].Pattern)
}

func TestCanonicalizeStrictConstructorStripsMarker(t *testing.T) {
	c, bag := newTestContext(config.Default())
	u := ident("a")
	inner := conPat("Some", varPat("x"))
	pat := &ast.StrictPattern{Token: tok(token.BANG, "!"), Pattern: inner}
	body := ident("x")

	gotPat, gotBody, err := c.canonicalize(u, pat, body)
	require.NoError(t, err)
	assert.Same(t, ast.Pattern(inner), gotPat)
	assert.Same(t, ast.Expression(body), gotBody)
	assert.Empty(t, bag.Diags)
}

func TestCanonicalizeAnnotatedVariableIntroducesGuard(t *testing.T) {
	c, bag := newTestContext(config.Default())
	u := ident("a")
	pat := &ast.AnnotatedPattern{
		Token:    tok(token.COLON, ":"),
		Pattern:  varPat("n"),
		TypeName: &ast.Identifier{Token: tok(token.IDENT_UPPER, "Int"), Value: "Int"},
	}
	body := ident("n")

	gotPat, gotBody, err := c.canonicalize(u, pat, body)
	require.NoError(t, err)
	assert.IsType(t, &ast.IdentifierPattern{}, gotPat)

	guard, ok := gotBody.(*ast.CaseExpression)
	require.True(t, ok)
	require.Len(t, guard.Alts, 1)
	assert.IsType(t, &ast.AnnotatedPattern{}, guard.Alts[0].Pattern)
	assert.Empty(t, bag.Warnings())
}

func TestCanonicalizeAnnotatedConstructorDropsAnnotation(t *testing.T) {
	c, bag := newTestContext(config.Default())
	u := ident("a")
	inner := conPat("Some", varPat("x"))
	pat := &ast.AnnotatedPattern{
		Token:    tok(token.COLON, ":"),
		Pattern:  inner,
		TypeName: &ast.Identifier{Token: tok(token.IDENT_UPPER, "Option"), Value: "Option"},
	}

	gotPat, _, err := c.canonicalize(u, pat, ident("x"))
	require.NoError(t, err)
	assert.Same(t, ast.Pattern(inner), gotPat)
	require.Len(t, bag.Warnings(), 1)
	assert.Equal(t, diagnostics.WarnM002, bag.Warnings()[0].Code)
}

func TestCanonicalizeRawConstructorIsFatal(t *testing.T) {
	c, bag := newTestContext(config.Default())
	u := ident("a")
	pat := &ast.RawConstructorPattern{
		Token: tok(token.IDENT_UPPER, "Some"),
		Name:  &ast.Identifier{Token: tok(token.IDENT_UPPER, "Some"), Value: "Some"},
		Args:  []ast.Pattern{varPat("x")},
	}

	_, _, err := c.canonicalize(u, pat, ident("x"))
	require.Error(t, err)
	assert.True(t, bag.HasCode(diagnostics.ErrM001))
}
