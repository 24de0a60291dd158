package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/matchc/internal/token"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic codes. Errors abort the pass for the enclosing definition;
// warnings and hints are advisory and compilation continues.
const (
	// Internal invariant violations (malformed input from an earlier pass).
	ErrM001 = "M001" // flat constructor pattern reached the match compiler
	ErrM002 = "M002" // equations exhausted while scrutinees remain
	ErrM003 = "M003" // equation width does not match scrutinee count
	ErrM004 = "M004" // scrutinee is not a variable reference

	WarnM001 = "MW01" // unreachable equations
	WarnM002 = "MW02" // dropped type annotation on non-variable sub-pattern

	HintM001 = "MH01" // match column reordered, evaluation order changes
)

var messages = map[string]string{
	ErrM001:  "internal: constructor pattern with flat argument list reached the match compiler",
	ErrM002:  "internal: no equations left for the remaining scrutinees",
	ErrM003:  "internal: equation width does not match the number of scrutinees",
	ErrM004:  "internal: match scrutinee is not a variable reference",
	WarnM001: "equation(s) can never be reached",
	WarnM002: "type annotations on non-variable sub-patterns are not supported in multi-equation definitions and are ignored",
	HintM001: "pattern match column reordered for efficiency; argument evaluation order changes",
}

// DiagnosticError is a positioned diagnostic. It implements error so fatal
// diagnostics can be returned through ordinary error plumbing.
type DiagnosticError struct {
	Code     string
	Severity Severity
	Token    token.Token
	File     string
	Message  string
}

func (e *DiagnosticError) Error() string {
	loc := e.Token.Pos()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s: %s [%s]: %s", loc, e.Severity, e.Code, e.Message)
}

func newDiagnostic(code string, severity Severity, tok token.Token, args ...string) *DiagnosticError {
	msg, ok := messages[code]
	if !ok {
		msg = "unknown diagnostic"
	}
	if len(args) > 0 {
		msg = msg + ": " + strings.Join(args, ", ")
	}
	return &DiagnosticError{Code: code, Severity: severity, Token: tok, Message: msg}
}

// NewError creates an error-severity diagnostic for the given code.
// Extra args are appended to the code's message template.
func NewError(code string, tok token.Token, args ...string) *DiagnosticError {
	return newDiagnostic(code, SeverityError, tok, args...)
}

func NewWarning(code string, tok token.Token, args ...string) *DiagnosticError {
	return newDiagnostic(code, SeverityWarning, tok, args...)
}

func NewHint(code string, tok token.Token, args ...string) *DiagnosticError {
	return newDiagnostic(code, SeverityHint, tok, args...)
}
