// Package rewrite is the generic expression-tree rewriting driver. It walks
// a tree bottom-up and applies a local rewrite to every node, rebuilding
// spines and sharing untouched subtrees.
package rewrite

import (
	"github.com/funvibe/matchc/internal/ast"
)

// Func is a local, single-node rewrite. It returns the (possibly new) node;
// returning the input unchanged is the common case.
type Func func(ast.Expression) (ast.Expression, error)

// BottomUp applies fn to every expression node, children first. A node is
// rebuilt only when one of its children changed, so unchanged subtrees are
// shared with the input.
func BottomUp(expr ast.Expression, fn Func) (ast.Expression, error) {
	switch e := expr.(type) {
	case *ast.CallExpression:
		function, err := BottomUp(e.Function, fn)
		if err != nil {
			return nil, err
		}
		args, argsChanged, err := bottomUpAll(e.Arguments, fn)
		if err != nil {
			return nil, err
		}
		if function != e.Function || argsChanged {
			e = &ast.CallExpression{Token: e.Token, Function: function, Arguments: args}
		}
		return fn(e)
	case *ast.InfixExpression:
		left, err := BottomUp(e.Left, fn)
		if err != nil {
			return nil, err
		}
		right, err := BottomUp(e.Right, fn)
		if err != nil {
			return nil, err
		}
		if left != e.Left || right != e.Right {
			e = &ast.InfixExpression{Token: e.Token, Left: left, Operator: e.Operator, Right: right}
		}
		return fn(e)
	case *ast.CaseExpression:
		scrut, err := BottomUp(e.Scrutinee, fn)
		if err != nil {
			return nil, err
		}
		changed := scrut != e.Scrutinee
		alts := make([]*ast.CaseAlt, len(e.Alts))
		for i, alt := range e.Alts {
			body, err := BottomUp(alt.Body, fn)
			if err != nil {
				return nil, err
			}
			if body == alt.Body {
				alts[i] = alt
				continue
			}
			alts[i] = &ast.CaseAlt{Pattern: alt.Pattern, Body: body}
			changed = true
		}
		if changed {
			e = &ast.CaseExpression{Token: e.Token, Scrutinee: scrut, Alts: alts}
		}
		return fn(e)
	default:
		// Leaves: identifiers and literals.
		return fn(expr)
	}
}

func bottomUpAll(exprs []ast.Expression, fn Func) ([]ast.Expression, bool, error) {
	changed := false
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		rewritten, err := BottomUp(e, fn)
		if err != nil {
			return nil, false, err
		}
		out[i] = rewritten
		if rewritten != e {
			changed = true
		}
	}
	if !changed {
		return exprs, false, nil
	}
	return out, true, nil
}
