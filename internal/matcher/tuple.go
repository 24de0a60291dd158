package matcher

import (
	"github.com/funvibe/matchc/internal/ast"
	"github.com/funvibe/matchc/internal/rewrite"
)

// RewriteTupleCase is the tuple-elimination pre-pass. A case that
// scrutinizes a freshly built product value whose components are local
// variables, and whose alternatives all deconstruct that same product,
// never needs the tuple at all: the components are matched directly. The
// naive tuple translation would instantiate higher-rank polymorphic
// arguments, so the tuple must not be built in the first place.
//
// Any other case shape passes through unchanged. The rewrite is local to
// one node; the rewrite driver applies it bottom-up across a unit.
func (c *Context) RewriteTupleCase(node ast.Expression) (ast.Expression, error) {
	cse, ok := node.(*ast.CaseExpression)
	if !ok || len(cse.Alts) == 0 {
		return node, nil
	}
	call, ok := cse.Scrutinee.(*ast.CallExpression)
	if !ok {
		return node, nil
	}
	fn, ok := call.Function.(*ast.Identifier)
	if !ok {
		return node, nil
	}
	ctor, found := c.symbols.Lookup(fn.Value)
	if !found || !c.symbols.IsSoleConstructor(fn.Value) {
		return node, nil
	}
	if len(call.Arguments) != ctor.Arity {
		return node, nil
	}
	components := make([]ast.Expression, len(call.Arguments))
	for i, arg := range call.Arguments {
		id, ok := arg.(*ast.Identifier)
		if !ok {
			return node, nil
		}
		components[i] = id
	}

	clauses := make([]Clause, len(cse.Alts))
	for i, alt := range cse.Alts {
		cp, ok := alt.Pattern.(*ast.ConstructorPattern)
		if !ok || cp.Name.Value != fn.Value || len(cp.Elements) != ctor.Arity {
			return node, nil
		}
		clauses[i] = Clause{Patterns: cp.Elements, Body: alt.Body}
	}

	c.tracef(1, cse.GetToken(), "eliminating %s construction over %d component(s)", fn.Value, ctor.Arity)
	return c.compile(Plain, components, clauses)
}

// Rewriter adapts the pre-pass to the generic tree-rewrite driver.
func (c *Context) Rewriter() rewrite.Func {
	return c.RewriteTupleCase
}
