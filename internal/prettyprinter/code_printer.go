package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/funvibe/matchc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"++": 5,
	"+":  7,
	"-":  7,
	"*":  8,
	"/":  8,
	"%":  8,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// Print renders an expression as source-like text. Used by trace output
// and tests; never by compilation itself.
func (p *CodePrinter) Print(expr ast.Expression) string {
	p.buf.Reset()
	p.indent = 0
	p.printExpr(expr, 0)
	return p.buf.String()
}

// PrintPattern renders a single pattern.
func (p *CodePrinter) PrintPattern(pat ast.Pattern) string {
	p.buf.Reset()
	p.indent = 0
	p.printPattern(pat)
	return p.buf.String()
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		p.write(e.Value)
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.FloatLiteral:
		p.write(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.BooleanLiteral:
		if e.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.StringLiteral:
		p.write(strconv.Quote(e.Value))
	case *ast.CharLiteral:
		p.write("'" + string(rune(e.Value)) + "'")
	case *ast.CallExpression:
		p.printExpr(e.Function, 10)
		p.write("(")
		for i, arg := range e.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(arg, 0)
		}
		p.write(")")
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		if prec < parentPrec {
			p.write("(")
		}
		p.printExpr(e.Left, prec)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec+1)
		if prec < parentPrec {
			p.write(")")
		}
	case *ast.CaseExpression:
		p.write("case ")
		p.printExpr(e.Scrutinee, 0)
		p.write(" {\n")
		p.indent++
		for _, alt := range e.Alts {
			p.writeIndent()
			p.printPattern(alt.Pattern)
			p.write(" -> ")
			p.printExpr(alt.Body, 0)
			p.write("\n")
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	default:
		p.write(fmt.Sprintf("<%T>", expr))
	}
}

func (p *CodePrinter) printPattern(pat ast.Pattern) {
	if pat == nil {
		p.write("<???>")
		return
	}
	switch pt := pat.(type) {
	case *ast.WildcardPattern:
		p.write("_")
	case *ast.IdentifierPattern:
		p.write(pt.Value)
	case *ast.ConstructorPattern:
		p.write(pt.Name.Value)
		if len(pt.Elements) > 0 {
			p.write("(")
			for i, el := range pt.Elements {
				if i > 0 {
					p.write(", ")
				}
				p.printPattern(el)
			}
			p.write(")")
		}
	case *ast.LiteralPattern:
		switch v := pt.Value.(type) {
		case bool:
			if v {
				p.write("true")
			} else {
				p.write("false")
			}
		case int64:
			p.write(strconv.FormatInt(v, 10))
		case float64:
			p.write(strconv.FormatFloat(v, 'g', -1, 64))
		case string:
			p.write(strconv.Quote(v))
		default:
			p.write(fmt.Sprintf("<%T>", pt.Value))
		}
	case *ast.StringPattern:
		p.write("\"")
		for _, part := range pt.Parts {
			if part.IsCapture {
				p.write("{" + part.Value + "}")
			} else {
				p.write(part.Value)
			}
		}
		p.write("\"")
	case *ast.AliasPattern:
		p.write(pt.Name + " @ ")
		p.printPattern(pt.Pattern)
	case *ast.StrictPattern:
		p.write("!")
		p.printPattern(pt.Pattern)
	case *ast.AnnotatedPattern:
		p.printPattern(pt.Pattern)
		p.write(": " + pt.TypeName.Value)
	case *ast.RawConstructorPattern:
		p.write(pt.Name.Value)
		p.write("[")
		for i, el := range pt.Args {
			if i > 0 {
				p.write(" ")
			}
			p.printPattern(el)
		}
		p.write("]")
	default:
		p.write(fmt.Sprintf("<%T>", pat))
	}
}
