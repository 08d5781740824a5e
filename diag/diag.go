// Package diag implements the diagnostics sink: typed compiler errors and
// warnings with source position, collected in tree order and rendered with
// a quoted source line and caret.
package diag

import (
	"fmt"
	"strings"
)

// Kind identifies the abstract cause of a Diagnostic.
type Kind int

const (
	SyntaxError Kind = iota
	SemanticError
	TypeError
	UndefinedSymbol
	SymbolRedefinition
	IncompatibleTypes
	FunctionNotFound
	WrongArgumentCount
	InvalidAssignment
	ConstantAssignment
	UninitializedVariable // warning only
	UnreachableCode       // reserved, never emitted by the core
)

// String gives the rendered description for a Kind, used in Diagnostic.Render.
func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "Syntax Error"
	case SemanticError:
		return "Semantic Error"
	case TypeError:
		return "Type Error"
	case UndefinedSymbol:
		return "Undefined Symbol"
	case SymbolRedefinition:
		return "Symbol Redefinition"
	case IncompatibleTypes:
		return "Incompatible Types"
	case FunctionNotFound:
		return "Function Not Found"
	case WrongArgumentCount:
		return "Wrong Argument Count"
	case InvalidAssignment:
		return "Invalid Assignment"
	case ConstantAssignment:
		return "Constant Assignment"
	case UninitializedVariable:
		return "Uninitialized Variable"
	case UnreachableCode:
		return "Unreachable Code"
	default:
		return "Unknown Diagnostic"
	}
}

// Diagnostic is a single typed error or warning with source position.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
	Col     int
	File    string // optional source filename
}

// Render formats the diagnostic as <file>:<line>:<col>: error|warning:
// <kind>: <message>, followed by the quoted source line and a caret under
// the offending column. src is the full source text the diagnostic was
// raised against; if empty, only the first line is emitted.
func (d Diagnostic) Render(isWarning bool, src string) string {
	sb := strings.Builder{}
	sev := "error"
	if isWarning {
		sev = "warning"
	}
	file := d.File
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&sb, "%s:%d:%d: %s: %s: %s\n", file, d.Line, d.Col, sev, d.Kind.String(), d.Message)

	line := sourceLine(src, d.Line)
	if line == "" {
		return sb.String()
	}
	fmt.Fprintf(&sb, "%4d | %s\n", d.Line, line)

	// Caret line: preserve tabs up to the column, space elsewhere.
	sb.WriteString("     | ")
	for i, r := range line {
		if i >= d.Col-1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("^\n")
	return sb.String()
}

// sourceLine returns the 1-indexed line n of src, or "" if out of range.
func sourceLine(src string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Sink accumulates errors and warnings in the order they are raised.
// The compiler pipeline is strictly sequential (no concurrent phases), so
// it needs no channel or mutex to collect diagnostics safely.
type Sink struct {
	errors   []Diagnostic
	warnings []Diagnostic
	Source   string // full source text, used for rendering
	File     string // source filename, used for rendering
}

// NewSink returns a Sink ready to collect diagnostics for the given source.
func NewSink(file, src string) *Sink {
	return &Sink{Source: src, File: file}
}

func (s *Sink) add(kind Kind, message string, line, col int) Diagnostic {
	return Diagnostic{Kind: kind, Message: message, Line: line, Col: col, File: s.File}
}

// Error appends an error-level diagnostic.
func (s *Sink) Error(kind Kind, message string, line, col int) {
	s.errors = append(s.errors, s.add(kind, message, line, col))
}

// Warning appends a warning-level diagnostic.
func (s *Sink) Warning(kind Kind, message string, line, col int) {
	s.warnings = append(s.warnings, s.add(kind, message, line, col))
}

// HasErrors reports whether any error-level diagnostic was raised.
func (s *Sink) HasErrors() bool { return len(s.errors) > 0 }

// HasWarnings reports whether any warning-level diagnostic was raised.
func (s *Sink) HasWarnings() bool { return len(s.warnings) > 0 }

// Errors returns all errors, in the order they were raised.
func (s *Sink) Errors() []Diagnostic { return s.errors }

// Warnings returns all warnings, in the order they were raised.
func (s *Sink) Warnings() []Diagnostic { return s.warnings }

// Render renders every error then every warning, in raised order.
func (s *Sink) Render() string {
	sb := strings.Builder{}
	for _, d := range s.errors {
		sb.WriteString(d.Render(false, s.Source))
	}
	for _, d := range s.warnings {
		sb.WriteString(d.Render(true, s.Source))
	}
	return sb.String()
}

// --- Typed shortcuts, one per recurring diagnostic shape ---

func (s *Sink) UndefinedSymbol(name string, line, col int) {
	s.Error(UndefinedSymbol, fmt.Sprintf("undefined symbol %q", name), line, col)
}

func (s *Sink) RedefinedSymbol(name string, line, col int) {
	s.Error(SymbolRedefinition, fmt.Sprintf("%q is already defined in this scope", name), line, col)
}

func (s *Sink) TypeErrorf(expected, actual string, line, col int) {
	s.Error(TypeError, fmt.Sprintf("expected %s, got %s", expected, actual), line, col)
}

func (s *Sink) IncompatibleTypesf(left, right, op string, line, col int) {
	s.Error(IncompatibleTypes, fmt.Sprintf("incompatible types %s and %s for operator %q", left, right, op), line, col)
}

func (s *Sink) WrongArgumentCount(name string, expected, actual, line, col int) {
	s.Error(WrongArgumentCount, fmt.Sprintf("function %q expects %d argument(s), got %d", name, expected, actual), line, col)
}

func (s *Sink) UninitializedVariable(name string, line, col int) {
	s.Warning(UninitializedVariable, fmt.Sprintf("variable %q is used before being initialized", name), line, col)
}

func (s *Sink) ConstantAssignment(name string, line, col int) {
	s.Error(ConstantAssignment, fmt.Sprintf("cannot assign to constant %q", name), line, col)
}
