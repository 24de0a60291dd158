package matcher

// A small structural evaluator used by the equivalence tests: compiled
// decision trees and sequential top-to-bottom matching of the original
// equations must agree on every argument vector.

import (
	"fmt"
	"strings"

	"github.com/funvibe/matchc/internal/ast"
)

type conValue struct {
	name   string
	fields []value
}

type value interface{}

type env map[string]value

func (e env) extend() env {
	child := make(env, len(e)+4)
	for k, v := range e {
		child[k] = v
	}
	return child
}

func evalExpr(e env, expr ast.Expression) (value, error) {
	switch n := expr.(type) {
	case *ast.Identifier:
		if v, ok := e[n.Value]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("unbound variable %s", n.Value)
	case *ast.IntegerLiteral:
		return n.Value, nil
	case *ast.FloatLiteral:
		return n.Value, nil
	case *ast.BooleanLiteral:
		return n.Value, nil
	case *ast.StringLiteral:
		return n.Value, nil
	case *ast.CharLiteral:
		return n.Value, nil
	case *ast.CallExpression:
		fn, ok := n.Function.(*ast.Identifier)
		if !ok {
			return nil, fmt.Errorf("cannot apply %T", n.Function)
		}
		fields := make([]value, len(n.Arguments))
		for i, arg := range n.Arguments {
			v, err := evalExpr(e, arg)
			if err != nil {
				return nil, err
			}
			fields[i] = v
		}
		return conValue{name: fn.Value, fields: fields}, nil
	case *ast.InfixExpression:
		left, err := evalExpr(e, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := evalExpr(e, n.Right)
		if err != nil {
			return nil, err
		}
		l, lok := left.(int64)
		r, rok := right.(int64)
		if !lok || !rok {
			return nil, fmt.Errorf("non-integer operands for %s", n.Operator)
		}
		switch n.Operator {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		default:
			return nil, fmt.Errorf("unknown operator %s", n.Operator)
		}
	case *ast.CaseExpression:
		scrut, err := evalExpr(e, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		for _, a := range n.Alts {
			bound := e.extend()
			if matchValue(a.Pattern, scrut, bound) {
				return evalExpr(bound, a.Body)
			}
		}
		return nil, fmt.Errorf("no alternative matched")
	default:
		return nil, fmt.Errorf("cannot evaluate %T", expr)
	}
}

func matchValue(pat ast.Pattern, v value, bound env) bool {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.IdentifierPattern:
		bound[p.Value] = v
		return true
	case *ast.LiteralPattern:
		switch lit := p.Value.(type) {
		case bool:
			b, ok := v.(bool)
			return ok && b == lit
		case int64:
			i, ok := v.(int64)
			return ok && i == lit
		case float64:
			f, ok := v.(float64)
			return ok && f == lit
		case string:
			s, ok := v.(string)
			return ok && s == lit
		}
		return false
	case *ast.ConstructorPattern:
		cv, ok := v.(conValue)
		if !ok || cv.name != p.Name.Value || len(cv.fields) != len(p.Elements) {
			return false
		}
		for i, el := range p.Elements {
			if !matchValue(el, cv.fields[i], bound) {
				return false
			}
		}
		return true
	case *ast.StringPattern:
		s, ok := v.(string)
		if !ok {
			return false
		}
		return matchStringParts(p.Parts, s, bound)
	case *ast.AliasPattern:
		bound[p.Name] = v
		return matchValue(p.Pattern, v, bound)
	case *ast.StrictPattern:
		// The evaluator is strict; forcing is a no-op here.
		return matchValue(p.Pattern, v, bound)
	case *ast.AnnotatedPattern:
		return matchValue(p.Pattern, v, bound)
	default:
		return false
	}
}

func matchStringParts(parts []ast.StringPatternPart, s string, bound env) bool {
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		if !part.IsCapture {
			if !strings.HasPrefix(s, part.Value) {
				return false
			}
			s = s[len(part.Value):]
			continue
		}
		if i == len(parts)-1 {
			bound[part.Value] = s
			return true
		}
		next := parts[i+1]
		if next.IsCapture {
			return false // adjacent captures are ambiguous, not supported
		}
		idx := strings.Index(s, next.Value)
		if idx < 0 {
			return false
		}
		bound[part.Value] = s[:idx]
		s = s[idx:]
	}
	return s == ""
}

// evalSequential is the reference semantics: try each equation top to
// bottom, matching its whole row against the argument vector.
func evalSequential(args []value, clauses []Clause, e env) (value, error) {
	for _, cl := range clauses {
		bound := e.extend()
		matched := true
		for i, pat := range cl.Patterns {
			if !matchValue(pat, args[i], bound) {
				matched = false
				break
			}
		}
		if matched {
			return evalExpr(bound, cl.Body)
		}
	}
	return nil, fmt.Errorf("no equation matched")
}
