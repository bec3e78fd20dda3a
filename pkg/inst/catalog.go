package inst

// Entry holds static metadata for one 8085 mnemonic family. Register and
// register-pair operands are not enumerated individually — BaseOpcode is
// the opcode byte with all register fields zeroed, and EncodeByte folds
// in the actual operand bits at assembly time (spec §4.A, §9).
type Entry struct {
	Shape      OperandShape
	BaseOpcode byte
	Length     int // total instruction length in bytes (opcode + operand bytes)

	// TStates is the cost in the common case. TStatesAlt is either the
	// cost when an operand is the M (HL-indirect) pseudo-register, for
	// families whose timing depends on that, or the "taken" cost for
	// conditional branches (TStates is then the "not taken" cost). A
	// zero TStatesAlt means "no alternate — always use TStates".
	TStates    int
	TStatesAlt int

	Flags uint8 // bitmask of Flag* bits this instruction can modify
	Desc  string
}

// Flag bits for Entry.Flags and PSW layout (spec §4.E): S Z 0 AC 0 P 1 CY.
const (
	FlagCY uint8 = 1 << 0
	FlagP  uint8 = 1 << 2
	FlagAC uint8 = 1 << 4
	FlagZ  uint8 = 1 << 6
	FlagS  uint8 = 1 << 7
)

// Catalog maps each OpCode to its Entry.
var Catalog [opCodeCount]Entry

func init() {
	set := func(op OpCode, e Entry) { Catalog[op] = e }

	// --- Data transfer ---
	set(MOV, Entry{Shape: ShapeRegReg, BaseOpcode: 0x40, Length: 1, TStates: 4, TStatesAlt: 7,
		Desc: "Move register/memory to register/memory"})
	set(MVI, Entry{Shape: ShapeRegImm8, BaseOpcode: 0x06, Length: 2, TStates: 7, TStatesAlt: 10,
		Desc: "Move immediate to register/memory"})
	set(LXI, Entry{Shape: ShapeRegPairImm16, BaseOpcode: 0x01, Length: 3, TStates: 10,
		Desc: "Load register pair immediate"})
	set(LDA, Entry{Shape: ShapeAddr16, BaseOpcode: 0x3A, Length: 3, TStates: 13,
		Desc: "Load accumulator direct"})
	set(STA, Entry{Shape: ShapeAddr16, BaseOpcode: 0x32, Length: 3, TStates: 13,
		Desc: "Store accumulator direct"})
	set(LHLD, Entry{Shape: ShapeAddr16, BaseOpcode: 0x2A, Length: 3, TStates: 16,
		Desc: "Load H and L direct"})
	set(SHLD, Entry{Shape: ShapeAddr16, BaseOpcode: 0x22, Length: 3, TStates: 16,
		Desc: "Store H and L direct"})
	set(LDAX, Entry{Shape: ShapeRegPair, BaseOpcode: 0x0A, Length: 1, TStates: 7,
		Desc: "Load accumulator indirect (BC or DE)"})
	set(STAX, Entry{Shape: ShapeRegPair, BaseOpcode: 0x02, Length: 1, TStates: 7,
		Desc: "Store accumulator indirect (BC or DE)"})
	set(XCHG, Entry{Shape: ShapeNone, BaseOpcode: 0xEB, Length: 1, TStates: 4,
		Desc: "Exchange DE and HL"})

	// --- Arithmetic ---
	set(ADD, Entry{Shape: ShapeReg, BaseOpcode: 0x80, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Add register/memory to A"})
	set(ADI, Entry{Shape: ShapeImm8, BaseOpcode: 0xC6, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Add immediate to A"})
	set(ADC, Entry{Shape: ShapeReg, BaseOpcode: 0x88, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Add register/memory to A with carry"})
	set(ACI, Entry{Shape: ShapeImm8, BaseOpcode: 0xCE, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Add immediate to A with carry"})
	set(SUB, Entry{Shape: ShapeReg, BaseOpcode: 0x90, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Subtract register/memory from A"})
	set(SUI, Entry{Shape: ShapeImm8, BaseOpcode: 0xD6, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Subtract immediate from A"})
	set(SBB, Entry{Shape: ShapeReg, BaseOpcode: 0x98, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Subtract register/memory from A with borrow"})
	set(SBI, Entry{Shape: ShapeImm8, BaseOpcode: 0xDE, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Subtract immediate from A with borrow"})
	set(INR, Entry{Shape: ShapeReg, BaseOpcode: 0x04, Length: 1, TStates: 4, TStatesAlt: 10,
		Flags: FlagS | FlagZ | FlagAC | FlagP, Desc: "Increment register/memory"})
	set(DCR, Entry{Shape: ShapeReg, BaseOpcode: 0x05, Length: 1, TStates: 4, TStatesAlt: 10,
		Flags: FlagS | FlagZ | FlagAC | FlagP, Desc: "Decrement register/memory"})
	set(INX, Entry{Shape: ShapeRegPair, BaseOpcode: 0x03, Length: 1, TStates: 6,
		Desc: "Increment register pair"})
	set(DCX, Entry{Shape: ShapeRegPair, BaseOpcode: 0x0B, Length: 1, TStates: 6,
		Desc: "Decrement register pair"})
	set(DAD, Entry{Shape: ShapeRegPair, BaseOpcode: 0x09, Length: 1, TStates: 10,
		Flags: FlagCY, Desc: "Add register pair to HL"})
	set(DAA, Entry{Shape: ShapeNone, BaseOpcode: 0x27, Length: 1, TStates: 4,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Decimal adjust accumulator"})

	// --- Logical ---
	set(ANA, Entry{Shape: ShapeReg, BaseOpcode: 0xA0, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "AND register/memory with A"})
	set(ANI, Entry{Shape: ShapeImm8, BaseOpcode: 0xE6, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "AND immediate with A"})
	set(XRA, Entry{Shape: ShapeReg, BaseOpcode: 0xA8, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "XOR register/memory with A"})
	set(XRI, Entry{Shape: ShapeImm8, BaseOpcode: 0xEE, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "XOR immediate with A"})
	set(ORA, Entry{Shape: ShapeReg, BaseOpcode: 0xB0, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "OR register/memory with A"})
	set(ORI, Entry{Shape: ShapeImm8, BaseOpcode: 0xF6, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "OR immediate with A"})
	set(CMP, Entry{Shape: ShapeReg, BaseOpcode: 0xB8, Length: 1, TStates: 4, TStatesAlt: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Compare register/memory with A"})
	set(CPI, Entry{Shape: ShapeImm8, BaseOpcode: 0xFE, Length: 2, TStates: 7,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Compare immediate with A"})
	set(RLC, Entry{Shape: ShapeNone, BaseOpcode: 0x07, Length: 1, TStates: 4,
		Flags: FlagCY, Desc: "Rotate A left"})
	set(RRC, Entry{Shape: ShapeNone, BaseOpcode: 0x0F, Length: 1, TStates: 4,
		Flags: FlagCY, Desc: "Rotate A right"})
	set(RAL, Entry{Shape: ShapeNone, BaseOpcode: 0x17, Length: 1, TStates: 4,
		Flags: FlagCY, Desc: "Rotate A left through carry"})
	set(RAR, Entry{Shape: ShapeNone, BaseOpcode: 0x1F, Length: 1, TStates: 4,
		Flags: FlagCY, Desc: "Rotate A right through carry"})
	set(CMA, Entry{Shape: ShapeNone, BaseOpcode: 0x2F, Length: 1, TStates: 4,
		Desc: "Complement A"})
	set(CMC, Entry{Shape: ShapeNone, BaseOpcode: 0x3F, Length: 1, TStates: 4,
		Flags: FlagCY, Desc: "Complement carry"})
	set(STC, Entry{Shape: ShapeNone, BaseOpcode: 0x37, Length: 1, TStates: 4,
		Flags: FlagCY, Desc: "Set carry"})

	// --- Branch ---
	set(JMP, Entry{Shape: ShapeAddr16, BaseOpcode: 0xC3, Length: 3, TStates: 10, Desc: "Jump unconditional"})
	for mnem, op := range jccByName {
		set(op, Entry{Shape: ShapeAddr16, BaseOpcode: jccBase[mnem], Length: 3,
			TStates: 7, TStatesAlt: 10, Desc: "Jump on condition " + mnem[1:]})
	}
	set(CALL, Entry{Shape: ShapeAddr16, BaseOpcode: 0xCD, Length: 3, TStates: 18, Desc: "Call unconditional"})
	for mnem, op := range ccByName {
		set(op, Entry{Shape: ShapeAddr16, BaseOpcode: ccBase[mnem], Length: 3,
			TStates: 9, TStatesAlt: 18, Desc: "Call on condition " + mnem[1:]})
	}
	set(RET, Entry{Shape: ShapeNone, BaseOpcode: 0xC9, Length: 1, TStates: 10, Desc: "Return unconditional"})
	for mnem, op := range rccByName {
		set(op, Entry{Shape: ShapeNone, BaseOpcode: rccBase[mnem], Length: 1,
			TStates: 6, TStatesAlt: 12, Desc: "Return on condition " + mnem[1:]})
	}
	set(RST, Entry{Shape: ShapeRSTNum, BaseOpcode: 0xC7, Length: 1, TStates: 12, Desc: "Restart"})
	set(PCHL, Entry{Shape: ShapeNone, BaseOpcode: 0xE9, Length: 1, TStates: 6, Desc: "Jump to address in HL"})

	// --- Stack, I/O, machine control ---
	set(PUSH, Entry{Shape: ShapeRegPair, BaseOpcode: 0xC5, Length: 1, TStates: 12, Desc: "Push register pair / PSW"})
	set(POP, Entry{Shape: ShapeRegPair, BaseOpcode: 0xC1, Length: 1, TStates: 10,
		Flags: FlagS | FlagZ | FlagAC | FlagP | FlagCY, Desc: "Pop register pair / PSW"})
	set(XTHL, Entry{Shape: ShapeNone, BaseOpcode: 0xE3, Length: 1, TStates: 16, Desc: "Exchange top of stack with HL"})
	set(SPHL, Entry{Shape: ShapeNone, BaseOpcode: 0xF9, Length: 1, TStates: 6, Desc: "Load SP from HL"})
	set(IN, Entry{Shape: ShapePort8, BaseOpcode: 0xDB, Length: 2, TStates: 10, Desc: "Input from port"})
	set(OUT, Entry{Shape: ShapePort8, BaseOpcode: 0xD3, Length: 2, TStates: 10, Desc: "Output to port"})
	set(EI, Entry{Shape: ShapeNone, BaseOpcode: 0xFB, Length: 1, TStates: 4, Desc: "Enable interrupts"})
	set(DI, Entry{Shape: ShapeNone, BaseOpcode: 0xF3, Length: 1, TStates: 4, Desc: "Disable interrupts"})
	set(HLT, Entry{Shape: ShapeNone, BaseOpcode: 0x76, Length: 1, TStates: 5, Desc: "Halt"})
	set(NOP, Entry{Shape: ShapeNone, BaseOpcode: 0x00, Length: 1, TStates: 4, Desc: "No operation"})
	set(RIM, Entry{Shape: ShapeNone, BaseOpcode: 0x20, Length: 1, TStates: 4, Desc: "Read interrupt mask"})
	set(SIM, Entry{Shape: ShapeNone, BaseOpcode: 0x30, Length: 1, TStates: 4, Desc: "Set interrupt mask"})

	buildDecodeTable()
}

// jccBase/ccBase/rccBase give the base opcode byte for each conditional
// mnemonic; the condition is already folded into the fixed byte (unlike
// register fields, the eight 8085 conditions are not a clean bit-shift
// of a single 3-bit field in a way worth generalizing further).
var jccBase = map[string]byte{
	"JNZ": 0xC2, "JZ": 0xCA, "JNC": 0xD2, "JC": 0xDA,
	"JPO": 0xE2, "JPE": 0xEA, "JP": 0xF2, "JM": 0xFA,
}

var ccBase = map[string]byte{
	"CNZ": 0xC4, "CZ": 0xCC, "CNC": 0xD4, "CC": 0xDC,
	"CPO": 0xE4, "CPE": 0xEC, "CP": 0xF4, "CM": 0xFC,
}

var rccBase = map[string]byte{
	"RNZ": 0xC0, "RZ": 0xC8, "RNC": 0xD0, "RC": 0xD8,
	"RPO": 0xE0, "RPE": 0xE8, "RP": 0xF0, "RM": 0xF8,
}

// ByteLength returns the instruction's encoded byte length.
func ByteLength(op OpCode) int {
	return Catalog[op].Length
}

// TStatesOf returns the T-state cost of op given whether any of its
// operands is the M (HL-indirect) pseudo-register and, for conditional
// branches, whether the branch is taken.
func TStatesOf(op OpCode, usesM bool, taken bool) int {
	e := &Catalog[op]
	if IsConditionalBranch(op) {
		if taken {
			return e.TStatesAlt
		}
		return e.TStates
	}
	if usesM && e.TStatesAlt != 0 {
		return e.TStatesAlt
	}
	return e.TStates
}
