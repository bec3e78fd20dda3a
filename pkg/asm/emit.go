package asm

import (
	"github.com/8085dev/asm85/pkg/inst"
	"github.com/8085dev/asm85/pkg/parse"
)

// passTwoEmit walks the statements a second time, now synthesizing
// opcode bytes and resolving every symbol reference against the
// complete table pass one built.
func passTwoEmit(p *Program, stmts []parse.Statement, addrs []uint16) {
	for i, st := range stmts {
		addr := addrs[i]

		switch st.Kind {
		case parse.StmtDirective:
			emitDirective(p, st, addr)
		case parse.StmtInstruction:
			emitInstruction(p, st, addr)
		}

		if st.Kind != parse.StmtBlank {
			p.LineToAddr[st.Line] = addr
			p.AddrToLine[addr] = st.Line
		}
	}
}

func emitDirective(p *Program, st parse.Statement, addr uint16) {
	switch st.Directive {
	case parse.DirDB:
		pos := addr
		var bytes []byte
		for _, opnd := range st.Operands {
			if opnd.Kind == parse.OperandString {
				for i := 0; i < len(opnd.Str); i++ {
					b := opnd.Str[i]
					p.writeByte(pos, b, st.Line)
					bytes = append(bytes, b)
					pos++
				}
				continue
			}
			v, ok := resolveValue(p, opnd, st.Line)
			if !ok {
				continue
			}
			p.writeByte(pos, byte(v), st.Line)
			bytes = append(bytes, byte(v))
			pos++
		}
		p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Bytes: bytes, Source: st.Source})
	case parse.DirDW:
		pos := addr
		var bytes []byte
		for _, opnd := range st.Operands {
			v, ok := resolveValue(p, opnd, st.Line)
			if !ok {
				continue
			}
			lo, hi := byte(v), byte(v>>8)
			p.writeByte(pos, lo, st.Line)
			p.writeByte(pos+1, hi, st.Line)
			bytes = append(bytes, lo, hi)
			pos += 2
		}
		p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Bytes: bytes, Source: st.Source})
	case parse.DirDS, parse.DirORG, parse.DirEQU, parse.DirEND:
		p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Source: st.Source})
	}
}

func emitInstruction(p *Program, st parse.Statement, addr uint16) {
	op, ok := inst.LookupMnemonic(st.Mnemonic)
	if !ok {
		p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Source: st.Source})
		return
	}

	shape := inst.Catalog[op].Shape
	var r1, r2 inst.Reg
	var rp inst.RegPair
	var rst uint8
	var immBytes []byte
	ok = true
	rangeOK := true

	switch shape {
	case inst.ShapeNone:
		// no operands

	case inst.ShapeRegReg:
		r1, ok = resolveReg(p, st, 0)
		if ok {
			var ok2 bool
			r2, ok2 = resolveReg(p, st, 1)
			ok = ok && ok2
		}

	case inst.ShapeReg:
		r1, ok = resolveReg(p, st, 0)

	case inst.ShapeRegImm8:
		r1, ok = resolveReg(p, st, 0)
		if ok && len(st.Operands) > 1 {
			v, vok := resolveValue(p, st.Operands[1], st.Line)
			ok = vok
			if ok {
				rangeOK = checkImm8(p, v, st.Line)
				immBytes = []byte{byte(v)}
			}
		}

	case inst.ShapeRegPair:
		rp, ok = resolveRegPair(p, st, 0)

	case inst.ShapeRegPairImm16:
		rp, ok = resolveRegPair(p, st, 0)
		if ok && len(st.Operands) > 1 {
			v, vok := resolveValue(p, st.Operands[1], st.Line)
			ok = vok
			if ok {
				rangeOK = checkImm16(p, v, st.Line)
				immBytes = []byte{byte(v), byte(v >> 8)}
			}
		}

	case inst.ShapeImm8, inst.ShapePort8:
		if len(st.Operands) > 0 {
			v, vok := resolveValue(p, st.Operands[0], st.Line)
			ok = vok
			if ok {
				rangeOK = checkImm8(p, v, st.Line)
				immBytes = []byte{byte(v)}
			}
		} else {
			ok = false
		}

	case inst.ShapeAddr16:
		if len(st.Operands) > 0 {
			v, vok := resolveValue(p, st.Operands[0], st.Line)
			ok = vok
			if ok {
				rangeOK = checkImm16(p, v, st.Line)
				immBytes = []byte{byte(v), byte(v >> 8)}
			}
		} else {
			ok = false
		}

	case inst.ShapeRSTNum:
		if len(st.Operands) > 0 {
			v, vok := resolveValue(p, st.Operands[0], st.Line)
			ok = vok
			rst = uint8(v)
		} else {
			ok = false
		}
	}

	if !ok {
		p.addDiag(SeverityError, CodeOperandShapeError, st.Line, "%s: invalid operands", st.Mnemonic)
		p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Source: st.Source})
		return
	}
	if !rangeOK {
		p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Source: st.Source})
		return
	}

	base := inst.EncodeByte(op, r1, r2, rp, rst)
	bytes := append([]byte{base}, immBytes...)

	pos := addr
	for _, b := range bytes {
		p.writeByte(pos, b, st.Line)
		pos++
	}
	p.Listing = append(p.Listing, ListingLine{Line: st.Line, Addr: addr, Bytes: bytes, Source: st.Source})
}

func resolveReg(p *Program, st parse.Statement, idx int) (inst.Reg, bool) {
	if idx >= len(st.Operands) {
		p.addDiag(SeverityError, CodeOperandShapeError, st.Line, "%s: missing register operand", st.Mnemonic)
		return 0, false
	}
	o := st.Operands[idx]
	switch o.Kind {
	case parse.OperandReg, parse.OperandRegOrPair:
		return o.Reg, true
	}
	p.addDiag(SeverityError, CodeOperandShapeError, o.Span.Line, "%s: expected a register operand", st.Mnemonic)
	return 0, false
}

func resolveRegPair(p *Program, st parse.Statement, idx int) (inst.RegPair, bool) {
	if idx >= len(st.Operands) {
		p.addDiag(SeverityError, CodeOperandShapeError, st.Line, "%s: missing register-pair operand", st.Mnemonic)
		return 0, false
	}
	o := st.Operands[idx]
	switch o.Kind {
	case parse.OperandRegPair, parse.OperandRegOrPair:
		return o.RegPair, true
	}
	p.addDiag(SeverityError, CodeOperandShapeError, st.Line, "%s: expected a register-pair operand", st.Mnemonic)
	return 0, false
}

// checkImm8 reports whether v fits an 8-bit immediate or port operand,
// emitting CodeValueOutOfRange if not.
func checkImm8(p *Program, v int64, line int) bool {
	if v < 0 || v > 0xFF {
		p.addDiag(SeverityError, CodeValueOutOfRange, line, "value %Xh out of range for an 8-bit operand (00H-FFH)", v)
		return false
	}
	return true
}

// checkImm16 reports whether v fits a 16-bit immediate or address
// operand, emitting CodeValueOutOfRange if not.
func checkImm16(p *Program, v int64, line int) bool {
	if v < 0 || v > 0xFFFF {
		p.addDiag(SeverityError, CodeValueOutOfRange, line, "value %Xh out of range for a 16-bit operand (0000H-FFFFH)", v)
		return false
	}
	return true
}

// resolveValue evaluates a numeric or label operand. Label operands are
// looked up in the symbol table built during pass one; anything still
// undefined at this point is a genuinely undefined symbol, not a
// forward reference, since pass one already saw every label.
func resolveValue(p *Program, o parse.OperandNode, line int) (int64, bool) {
	switch o.Kind {
	case parse.OperandNumber:
		return o.Number, true
	case parse.OperandLabel:
		sym, ok := p.Symbols[o.Label]
		if !ok {
			p.addDiag(SeverityError, CodeUndefinedSymbol, line, "undefined symbol %s", o.Label)
			return 0, false
		}
		sym.References = append(sym.References, line)
		return int64(sym.Value), true
	}
	p.addDiag(SeverityError, CodeOperandShapeError, line, "expected a numeric or label operand")
	return 0, false
}
