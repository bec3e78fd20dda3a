package asm

import (
	"strings"

	"github.com/8085dev/asm85/pkg/inst"
	"github.com/8085dev/asm85/pkg/parse"
)

// Assemble runs both passes over source and returns the resulting
// Program. A Program with HasErrors() true still has its memory image
// and listing filled in as far as assembly got, so a caller that wants
// to show partial results (e.g. a listing pane) can still do so.
func Assemble(source string) *Program {
	stmts, perrs := parse.Parse(source)

	p := &Program{
		Symbols:    map[string]*Symbol{},
		LineToAddr: map[int]uint16{},
		AddrToLine: map[uint16]int{},

		SourceLines: strings.Split(source, "\n"),
	}
	for _, pe := range perrs {
		p.addDiag(SeverityError, CodeSyntaxError, pe.Span.Line, "%s", pe.Reason)
	}

	addrs := passOneAddresses(p, stmts)
	passTwoEmit(p, stmts, addrs)
	return p
}

// passOneAddresses assigns an address to every statement (its location
// counter at the moment it's reached) and binds every label and EQU
// symbol. It returns the per-statement starting address, indexed the
// same way as stmts, for pass two to reuse without redoing the walk.
func passOneAddresses(p *Program, stmts []parse.Statement) []uint16 {
	addrs := make([]uint16, len(stmts))
	lc := uint16(0)
	origin := uint16(0)
	sawOrigin := false
	ended := false

	for i, st := range stmts {
		if ended {
			addrs[i] = lc
			continue
		}

		isEquate := st.Kind == parse.StmtDirective && st.Directive == parse.DirEQU
		if st.HasLabel && !isEquate {
			bindLabel(p, st.Label, lc, st.Line)
		}

		addrs[i] = lc

		switch st.Kind {
		case parse.StmtBlank, parse.StmtLabelOnly:
			// no bytes, no LC change
		case parse.StmtDirective:
			switch st.Directive {
			case parse.DirORG:
				v := operandValue(p, st.Operands, 0, st.Line)
				if !sawOrigin {
					origin = uint16(v)
					sawOrigin = true
				}
				lc = uint16(v)
			case parse.DirEQU:
				if st.HasLabel {
					bindEquate(p, st.Label, operandValue(p, st.Operands, 0, st.Line), st.Line)
				} else {
					p.addDiag(SeverityError, CodeSyntaxError, st.Line, "EQU requires a label")
				}
			case parse.DirDB:
				lc += uint16(dbLength(st.Operands))
			case parse.DirDW:
				lc += uint16(2 * len(st.Operands))
			case parse.DirDS:
				lc += uint16(operandValue(p, st.Operands, 0, st.Line))
			case parse.DirEND:
				ended = true
			}
		case parse.StmtInstruction:
			op, ok := inst.LookupMnemonic(st.Mnemonic)
			if !ok {
				p.addDiag(SeverityError, CodeUnknownMnemonic, st.Line, "unknown mnemonic %s", st.Mnemonic)
				lc += 3 // assume worst case so later addresses stay plausible
				continue
			}
			lc += uint16(inst.Catalog[op].Length)
		}
	}

	p.Origin = origin
	return addrs
}

func dbLength(operands []parse.OperandNode) int {
	n := 0
	for _, op := range operands {
		if op.Kind == parse.OperandString {
			n += len(op.Str)
		} else {
			n++
		}
	}
	return n
}

func bindLabel(p *Program, name string, value uint16, line int) {
	if existing, ok := p.Symbols[name]; ok {
		p.addDiag(SeverityError, CodeDuplicateSymbol, line,
			"label %s already defined at line %d", name, existing.DefinedAt)
		return
	}
	p.Symbols[name] = &Symbol{Name: name, Value: value, DefinedAt: line}
}

func bindEquate(p *Program, name string, value int64, line int) {
	if existing, ok := p.Symbols[name]; ok {
		p.addDiag(SeverityError, CodeDuplicateSymbol, line,
			"symbol %s already defined at line %d", name, existing.DefinedAt)
		return
	}
	p.Symbols[name] = &Symbol{Name: name, Value: uint16(value), DefinedAt: line, IsEquate: true}
}

// operandValue resolves a numeric or already-bound-symbol operand at
// index idx. ORG, EQU and DS operands must be known at the point
// they're used — an 8085 assembler doesn't support forward references
// in these positions — so a still-undefined symbol here is reported
// immediately rather than deferred to pass two.
func operandValue(p *Program, operands []parse.OperandNode, idx int, line int) int64 {
	if idx >= len(operands) {
		return 0
	}
	o := operands[idx]
	if o.Kind == parse.OperandLabel {
		sym, ok := p.Symbols[o.Label]
		if !ok {
			p.addDiag(SeverityError, CodeUndefinedSymbol, line, "undefined symbol %s", o.Label)
			return 0
		}
		return int64(sym.Value)
	}
	return o.Number
}
