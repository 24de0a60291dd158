package ast

import (
	"github.com/funvibe/matchc/internal/token"
)

// Pattern is the closed sum of pattern shapes. The match compiler accepts
// all of them except RawConstructorPattern, which earlier passes must have
// resolved.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// WildcardPattern: _
type WildcardPattern struct {
	Token token.Token
}

func (p *WildcardPattern) patternNode()         {}
func (p *WildcardPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *WildcardPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// IdentifierPattern binds the scrutinee to a name: x
type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (p *IdentifierPattern) patternNode()         {}
func (p *IdentifierPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *IdentifierPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// ConstructorPattern matches a data constructor with one sub-pattern per
// field: Some(x), Pair(a, b)
type ConstructorPattern struct {
	Token    token.Token // Constructor name
	Name     *Identifier
	Elements []Pattern
}

func (p *ConstructorPattern) patternNode()         {}
func (p *ConstructorPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *ConstructorPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// LiteralPattern matches a literal by equality: 1, 'c', "s", true.
// Boolean literals are finitely enumerable and may be grouped by the match
// compiler; all other literals may not.
type LiteralPattern struct {
	Token token.Token
	Value interface{} // bool, int64, float64, string
}

func (p *LiteralPattern) patternNode()         {}
func (p *LiteralPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *LiteralPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// IsBool reports whether the literal is a boolean, the only literal kind
// whose value space is exhaustively enumerable.
func (p *LiteralPattern) IsBool() bool {
	_, ok := p.Value.(bool)
	return ok
}

// StringPattern: "/hello/{name}" with captures. Matched through the capture
// mechanism rather than direct equality, so it is never grouped.
type StringPattern struct {
	Token token.Token
	Parts []StringPatternPart
}

// StringPatternPart is either a literal segment or a capture variable.
type StringPatternPart struct {
	IsCapture bool
	Value     string // literal text or capture variable name
}

func (p *StringPattern) patternNode()         {}
func (p *StringPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *StringPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// AliasPattern binds a name to the whole scrutinee in addition to matching
// the inner pattern: name @ pattern
type AliasPattern struct {
	Token   token.Token // The '@' token
	Name    string
	Pattern Pattern
}

func (p *AliasPattern) patternNode()         {}
func (p *AliasPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *AliasPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// StrictPattern forces evaluation of the scrutinee before matching the
// inner pattern: !pattern. Carries no matching power of its own.
type StrictPattern struct {
	Token   token.Token // The '!' token
	Pattern Pattern
}

func (p *StrictPattern) patternNode()         {}
func (p *StrictPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *StrictPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// AnnotatedPattern carries a type annotation on the inner pattern: x: Int.
// The annotation has no matching power.
type AnnotatedPattern struct {
	Token    token.Token // The ':' token
	Pattern  Pattern
	TypeName *Identifier
}

func (p *AnnotatedPattern) patternNode()         {}
func (p *AnnotatedPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *AnnotatedPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// RawConstructorPattern is the parse-time constructor shape whose argument
// list has not been grouped into fields. Earlier passes resolve it into
// ConstructorPattern; the match compiler treats it as an internal error.
type RawConstructorPattern struct {
	Token token.Token
	Name  *Identifier
	Args  []Pattern
}

func (p *RawConstructorPattern) patternNode()         {}
func (p *RawConstructorPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *RawConstructorPattern) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// Binds reports whether the pattern binds the given name anywhere.
func Binds(p Pattern, name string) bool {
	switch pat := p.(type) {
	case *IdentifierPattern:
		return pat.Value == name
	case *ConstructorPattern:
		for _, el := range pat.Elements {
			if Binds(el, name) {
				return true
			}
		}
	case *RawConstructorPattern:
		for _, el := range pat.Args {
			if Binds(el, name) {
				return true
			}
		}
	case *AliasPattern:
		return pat.Name == name || Binds(pat.Pattern, name)
	case *StrictPattern:
		return Binds(pat.Pattern, name)
	case *AnnotatedPattern:
		return Binds(pat.Pattern, name)
	case *StringPattern:
		for _, part := range pat.Parts {
			if part.IsCapture && part.Value == name {
				return true
			}
		}
	}
	return false
}
