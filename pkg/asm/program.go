// Package asm implements the two-pass 8085 assembler: source text in,
// a fully resolved Program (machine code plus symbol table and
// diagnostics) out.
package asm

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (sv Severity) String() string {
	if sv == SeverityError {
		return "error"
	}
	return "warning"
}

// DiagnosticCode names the kind of problem a Diagnostic reports, so
// callers can filter or test against it without parsing Message text.
type DiagnosticCode string

const (
	CodeUnknownMnemonic    DiagnosticCode = "UnknownMnemonic"
	CodeUndefinedSymbol    DiagnosticCode = "UndefinedSymbol"
	CodeDuplicateSymbol    DiagnosticCode = "DuplicateSymbol"
	CodeOriginOverlap      DiagnosticCode = "OriginOverlap"
	CodeOperandShapeError  DiagnosticCode = "OperandShapeError"
	CodeValueOutOfRange    DiagnosticCode = "ValueOutOfRange"
	CodeSyntaxError        DiagnosticCode = "SyntaxError"
)

// Diagnostic is one assembly-time error or warning.
type Diagnostic struct {
	Severity Severity
	Code     DiagnosticCode
	Message  string
	Line     int
}

// ListingLine is one line of a program listing: its address, the bytes
// emitted for it (if any), and the original source text.
type ListingLine struct {
	Line    int
	Addr    uint16
	Bytes   []byte
	Source  string
}

// Program is the output of assembling a source file: a full 64K memory
// image, the origin the code was assembled to run from, the resolved
// symbol table, line/address cross-references, and any diagnostics
// collected along the way.
type Program struct {
	Memory [65536]byte
	Origin uint16

	Symbols map[string]*Symbol

	LineToAddr map[int]uint16
	AddrToLine map[uint16]int

	Diagnostics []Diagnostic
	Listing     []ListingLine

	SourceLines []string

	// written tracks which memory addresses pass two has actually
	// emitted a byte to, and what that byte was. It lets writeByte tell
	// a genuine overlap (same address, different value) apart from the
	// ordinary pattern of sequential non-overlapping ORG segments.
	written map[uint16]byte
}

// writeByte stores b at addr and warns with CodeOriginOverlap if addr
// was already written with a different value; a rewrite with the same
// value stays silent.
func (p *Program) writeByte(addr uint16, b byte, line int) {
	if p.written == nil {
		p.written = map[uint16]byte{}
	}
	if prev, ok := p.written[addr]; ok && prev != b {
		p.addDiag(SeverityWarning, CodeOriginOverlap, line,
			"byte at %04XH rewritten (was %02XH, now %02XH)", addr, prev, b)
	}
	p.Memory[addr] = b
	p.written[addr] = b
}

// HasErrors reports whether any diagnostic is an error (as opposed to a
// warning); callers typically refuse to run a Program that has one.
func (p *Program) HasErrors() bool {
	for _, d := range p.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (p *Program) addDiag(sv Severity, code DiagnosticCode, line int, format string, args ...any) {
	p.Diagnostics = append(p.Diagnostics, Diagnostic{
		Severity: sv, Code: code, Line: line, Message: fmt.Sprintf(format, args...),
	})
}

// Symbol is a named value bound during assembly: either a label (bound
// to the address of the statement it prefixes) or an EQU constant.
type Symbol struct {
	Name       string
	Value      uint16
	DefinedAt  int
	IsEquate   bool
	References []int
}
