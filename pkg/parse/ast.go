// Package parse turns a lexed line into a Statement: a label definition,
// a directive, an instruction with its operands, or nothing at all. It
// does not resolve labels or synthesize opcodes — that's pkg/asm.
package parse

import (
	"github.com/8085dev/asm85/pkg/inst"
	"github.com/8085dev/asm85/pkg/lex"
)

// DirectiveKind identifies an assembler directive.
type DirectiveKind int

const (
	DirORG DirectiveKind = iota
	DirDB
	DirDW
	DirDS
	DirEQU
	DirEND
)

var directiveNames = map[string]DirectiveKind{
	"ORG": DirORG, "DB": DirDB, "DW": DirDW, "DS": DirDS, "EQU": DirEQU, "END": DirEND,
}

// LookupDirective resolves an upper-cased directive name.
func LookupDirective(name string) (DirectiveKind, bool) {
	d, ok := directiveNames[name]
	return d, ok
}

// OperandKind discriminates the OperandNode variants.
type OperandKind int

const (
	OperandReg OperandKind = iota
	OperandRegPair
	// OperandRegOrPair covers B, D and H: each names either a single
	// register or the register pair it leads (BC, DE, HL). Which one is
	// meant depends on the instruction's operand shape, so resolution is
	// deferred to pkg/asm rather than decided here.
	OperandRegOrPair
	OperandNumber
	OperandLabel
	OperandString
)

// OperandNode is one parsed operand. Only the field matching Kind is
// meaningful, except OperandRegOrPair which populates both Reg and
// RegPair with the two possible readings.
type OperandNode struct {
	Kind    OperandKind
	Reg     inst.Reg
	RegPair inst.RegPair
	Number  int64
	Label   string
	Str     string
	Span    lex.Span
}

// StatementKind discriminates the Statement variants.
type StatementKind int

const (
	StmtBlank StatementKind = iota
	StmtLabelOnly
	StmtDirective
	StmtInstruction
)

// Statement is one parsed source line. A line can carry both a label and
// an instruction or directive ("LOOP: DCR B"); Label is set whenever a
// label is present regardless of Kind.
type Statement struct {
	Kind StatementKind
	Line int

	Label     string
	HasLabel  bool
	Directive DirectiveKind
	Mnemonic  string
	Operands  []OperandNode

	Source string // the raw source line, for listings
}

// Error is a parse-time diagnostic tied to a source span.
type Error struct {
	Span   lex.Span
	Reason string
}

func (e Error) Error() string {
	return e.Reason
}
