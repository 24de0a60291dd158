package ast

// Substitute replaces every free occurrence of name in expr with
// replacement. It rebuilds only the spine it touches; untouched subtrees
// are shared with the input. Alternatives whose pattern binds name shadow
// the substitution.
func Substitute(expr Expression, name string, replacement Expression) Expression {
	switch e := expr.(type) {
	case *Identifier:
		if e.Value == name {
			return replacement
		}
		return e
	case *CallExpression:
		fn := Substitute(e.Function, name, replacement)
		args, argsChanged := substituteAll(e.Arguments, name, replacement)
		if fn == e.Function && !argsChanged {
			return e
		}
		return &CallExpression{Token: e.Token, Function: fn, Arguments: args}
	case *InfixExpression:
		left := Substitute(e.Left, name, replacement)
		right := Substitute(e.Right, name, replacement)
		if left == e.Left && right == e.Right {
			return e
		}
		return &InfixExpression{Token: e.Token, Left: left, Operator: e.Operator, Right: right}
	case *CaseExpression:
		scrut := Substitute(e.Scrutinee, name, replacement)
		changed := scrut != e.Scrutinee
		alts := make([]*CaseAlt, len(e.Alts))
		for i, alt := range e.Alts {
			if Binds(alt.Pattern, name) {
				alts[i] = alt
				continue
			}
			body := Substitute(alt.Body, name, replacement)
			if body == alt.Body {
				alts[i] = alt
				continue
			}
			alts[i] = &CaseAlt{Pattern: alt.Pattern, Body: body}
			changed = true
		}
		if !changed {
			return e
		}
		return &CaseExpression{Token: e.Token, Scrutinee: scrut, Alts: alts}
	default:
		// Literals contain no identifiers.
		return expr
	}
}

func substituteAll(exprs []Expression, name string, replacement Expression) ([]Expression, bool) {
	changed := false
	out := make([]Expression, len(exprs))
	for i, e := range exprs {
		out[i] = Substitute(e, name, replacement)
		if out[i] != e {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return out, true
}
