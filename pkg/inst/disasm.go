package inst

import (
	"fmt"
	"strings"
)

// Disassembled is one decoded instruction at a fixed address, suitable for
// a listing line, a debugger's "next instruction" hover, or the disasm
// CLI subcommand.
type Disassembled struct {
	Addr    uint16
	Length  int
	TStates int
	Text    string // e.g. "MVI A, 05H" or "JNZ 0100H" (addresses as numbers, never labels)
	Bytes   []byte
	Valid   bool
}

// DisassembleAt decodes the instruction at addr in mem without mutating
// any CPU state. It reads past the end of mem as zero bytes rather than
// panicking, so disassembling the last few bytes of a program never
// crashes the caller.
func DisassembleAt(mem []byte, addr uint16) Disassembled {
	b0 := byteAt(mem, addr)
	d := DecodeTable[b0]
	if !d.Valid {
		return Disassembled{Addr: addr, Length: 1, TStates: 4, Text: fmt.Sprintf("DB %02XH", b0), Bytes: []byte{b0}}
	}

	raw := make([]byte, d.Length)
	for i := 0; i < d.Length; i++ {
		raw[i] = byteAt(mem, addr+uint16(i))
	}

	text := formatOperand(d, raw)
	return Disassembled{
		Addr: addr, Length: d.Length, TStates: d.TStates, Text: text, Bytes: raw, Valid: true,
	}
}

func byteAt(mem []byte, addr uint16) byte {
	if int(addr) >= len(mem) {
		return 0
	}
	return mem[addr]
}

func formatOperand(d DecodeEntry, raw []byte) string {
	mnem := d.Op.Mnemonic()
	switch Catalog[d.Op].Shape {
	case ShapeNone:
		return mnem
	case ShapeRegReg:
		return fmt.Sprintf("%s %s, %s", mnem, d.R1, d.R2)
	case ShapeReg:
		return fmt.Sprintf("%s %s", mnem, d.R1)
	case ShapeRegImm8:
		return fmt.Sprintf("%s %s, %02XH", mnem, d.R1, raw[1])
	case ShapeRegPair:
		return fmt.Sprintf("%s %s", mnem, d.RP)
	case ShapeRegPairImm16:
		return fmt.Sprintf("%s %s, %04XH", mnem, d.RP, le16(raw[1], raw[2]))
	case ShapeImm8:
		return fmt.Sprintf("%s %02XH", mnem, raw[1])
	case ShapeAddr16:
		return fmt.Sprintf("%s %04XH", mnem, le16(raw[1], raw[2]))
	case ShapePort8:
		return fmt.Sprintf("%s %02XH", mnem, raw[1])
	case ShapeRSTNum:
		return fmt.Sprintf("%s %d", mnem, d.RSTNum)
	}
	return mnem
}

func le16(lo, hi byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// InstructionEntry is the informational counterpart of Entry, looked up
// by mnemonic rather than decoded from a byte — used by the symbols/help
// surfaces that want instruction metadata without an encoded operand.
type InstructionEntry struct {
	Mnemonic string
	Shape    OperandShape
	Length   int
	TStates  int
	Desc     string
}

// InstructionInfo looks up static metadata for a mnemonic, case-insensitive.
func InstructionInfo(mnemonic string) (InstructionEntry, bool) {
	op, ok := LookupMnemonic(strings.ToUpper(mnemonic))
	if !ok {
		return InstructionEntry{}, false
	}
	e := Catalog[op]
	return InstructionEntry{
		Mnemonic: op.Mnemonic(),
		Shape:    e.Shape,
		Length:   e.Length,
		TStates:  e.TStates,
		Desc:     e.Desc,
	}, true
}
