// Package diag defines the compiler's diagnostic record and its
// required multi-line rendering.
package diag

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/luminac/internal/token"
)

// Error codes, grouped by the two error kinds the source distinguishes.
// Lexical/syntactic errors (L01-L02); semantic errors (S10-S21), one code
// per category named in §7.
const (
	CodeUnexpectedToken = "L01"
	CodeEmptyParens     = "L02"

	CodeUnresolvedName          = "S10"
	CodeDuplicateDeclaration    = "S11"
	CodeIncompatibleConversion  = "S12"
	CodeUnsupportedOperator     = "S13"
	CodeArgumentMismatch        = "S14"
	CodeWrongReturnType         = "S15"
	CodeForbiddenPipelinePair   = "S16"
	CodeNonUniquePipelineVar    = "S17"
	CodeUnsupportedElementType  = "S18"
	CodeArraySizeConstraint     = "S19"
	CodeRepeatedPipelineBody    = "S20"
	CodeIncludeNotFound         = "S21"
)

// Diagnostic is one reported problem, carrying enough of the offending
// token to render the caret-annotated format below without re-reading
// the file.
type Diagnostic struct {
	File    string
	Code    string
	Message string
	Tok     token.Token
}

// New builds a Diagnostic anchored at tok.
func New(code, message string, tok token.Token) Diagnostic {
	return Diagnostic{File: tok.Pos.File, Code: code, Message: message, Tok: tok}
}

// String renders the diagnostic in the external four-line format:
//
//	In file [<path>] :
//	    Error on line[<line>] : <message>
//	              <offending source line>
//	              <column-aligned caret span>
//
// This is a deliberate departure from single-line "file:line:col:
// error[CODE]: message" renderers — the source's §6 treats this
// rendering as the stated external interface.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "In file [%s] :\n", d.File)
	fmt.Fprintf(&b, "    Error on line[%d] : %s\n", d.Tok.Pos.Line, d.Message)
	fmt.Fprintf(&b, "              %s\n", d.Tok.Pos.SourceLine)
	fmt.Fprintf(&b, "              %s", caret(d.Tok))
	return b.String()
}

// Error implements the error interface.
func (d Diagnostic) Error() string { return d.String() }

func caret(tok token.Token) string {
	width := len([]rune(tok.Text))
	if width == 0 {
		width = 1
	}
	col := tok.Pos.Column
	if col < 1 {
		col = 1
	}
	return strings.Repeat(" ", col-1) + strings.Repeat("^", width)
}

// Collector is an append-only diagnostic sink threaded explicitly
// through every checker function, per the source's "shared traversal
// state" design note — never a package-level global.
type Collector struct {
	items []Diagnostic
}

// Add records a diagnostic without aborting the caller.
func (c *Collector) Add(d Diagnostic) { c.items = append(c.items, d) }

// Addf is a convenience wrapper around New+Add.
func (c *Collector) Addf(code, message string, tok token.Token) {
	c.Add(New(code, message, tok))
}

// All returns every diagnostic recorded so far, in discovery order.
func (c *Collector) All() []Diagnostic { return c.items }

// Empty reports whether no diagnostic has been recorded, the condition
// the driver uses to decide its exit code.
func (c *Collector) Empty() bool { return len(c.items) == 0 }
