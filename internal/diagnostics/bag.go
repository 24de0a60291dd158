package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/matchc/internal/token"
)

// Bag collects the diagnostics of one compilation unit. It is the sink the
// match compiler reports into; fatal diagnostics are additionally returned
// as errors by the pass itself.
type Bag struct {
	File       string
	Diags      []*DiagnosticError
	TraceLevel int       // 0 disables trace output
	TraceOut   io.Writer // defaults to os.Stderr
}

func NewBag(file string) *Bag {
	return &Bag{File: file}
}

func (b *Bag) add(d *DiagnosticError) *DiagnosticError {
	if d.File == "" {
		d.File = b.File
	}
	b.Diags = append(b.Diags, d)
	return d
}

func (b *Bag) Warn(code string, tok token.Token, args ...string) {
	b.add(NewWarning(code, tok, args...))
}

func (b *Bag) Hint(code string, tok token.Token, args ...string) {
	b.add(NewHint(code, tok, args...))
}

// Fatal records an error diagnostic and returns it so the caller can abort
// the pass for the enclosing definition.
func (b *Bag) Fatal(code string, tok token.Token, args ...string) *DiagnosticError {
	return b.add(NewError(code, tok, args...))
}

// Tracef writes debug-only trace output. It never affects compiled output.
func (b *Bag) Tracef(level int, tok token.Token, format string, args ...interface{}) {
	if level > b.TraceLevel {
		return
	}
	out := b.TraceOut
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "trace %s:%s: %s\n", b.File, tok.Pos(), fmt.Sprintf(format, args...))
}

func (b *Bag) Warnings() []*DiagnosticError { return b.filter(SeverityWarning) }
func (b *Bag) Hints() []*DiagnosticError    { return b.filter(SeverityHint) }
func (b *Bag) Errors() []*DiagnosticError   { return b.filter(SeverityError) }

func (b *Bag) filter(s Severity) []*DiagnosticError {
	var out []*DiagnosticError
	for _, d := range b.Diags {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// HasCode reports whether any collected diagnostic carries the given code.
func (b *Bag) HasCode(code string) bool {
	for _, d := range b.Diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
