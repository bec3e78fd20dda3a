package inst

// OpCode identifies an 8085 mnemonic family (not a concrete encoded
// byte — a mnemonic can cover many encoded bytes once register and
// register-pair operands are folded in, per §4.A).
type OpCode uint8

const (
	MOV OpCode = iota
	MVI
	LXI
	LDA
	STA
	LHLD
	SHLD
	LDAX
	STAX
	XCHG

	ADD
	ADI
	ADC
	ACI
	SUB
	SUI
	SBB
	SBI
	INR
	DCR
	INX
	DCX
	DAD
	DAA

	ANA
	ANI
	XRA
	XRI
	ORA
	ORI
	CMP
	CPI
	RLC
	RRC
	RAL
	RAR
	CMA
	CMC
	STC

	JMP
	JNZ
	JZ
	JNC
	JC
	JPO
	JPE
	JP
	JM
	CALL
	CNZ
	CZ
	CNC
	CC
	CPO
	CPE
	CPpos // "CP" (call-if-positive) — named CPpos to avoid clashing with the CMP mnemonic's CP-style callers
	CM
	RET
	RNZ
	RZ
	RNC
	RC
	RPO
	RPE
	RP
	RM
	RST
	PCHL

	PUSH
	POP
	XTHL
	SPHL
	IN
	OUT
	EI
	DI
	HLT
	NOP
	RIM
	SIM

	opCodeCount // sentinel
)

// OperandShape is the canonical operand-shape tuple from spec §3/§4.A.
// RSTNum and None are implementation additions: RST's operand is a
// 3-bit literal folded directly into the opcode (not an appended byte),
// and several instructions take no operand at all.
type OperandShape uint8

const (
	ShapeNone OperandShape = iota
	ShapeReg
	ShapeRegReg
	ShapeRegImm8
	ShapeRegPair
	ShapeRegPairImm16
	ShapeImm8
	ShapeAddr16
	ShapePort8
	ShapeRSTNum
)

// jccByName, ccByName and rccByName map each branch family's eight
// condition mnemonics to their OpCodes.
var jccByName = map[string]OpCode{
	"JNZ": JNZ, "JZ": JZ, "JNC": JNC, "JC": JC,
	"JPO": JPO, "JPE": JPE, "JP": JP, "JM": JM,
}

var ccByName = map[string]OpCode{
	"CNZ": CNZ, "CZ": CZ, "CNC": CNC, "CC": CC,
	"CPO": CPO, "CPE": CPE, "CP": CPpos, "CM": CM,
}

var rccByName = map[string]OpCode{
	"RNZ": RNZ, "RZ": RZ, "RNC": RNC, "RC": RC,
	"RPO": RPO, "RPE": RPE, "RP": RP, "RM": RM,
}

// LookupMnemonic resolves an upper-cased mnemonic string to an OpCode.
func LookupMnemonic(name string) (OpCode, bool) {
	if op, ok := mnemonicTable[name]; ok {
		return op, true
	}
	if op, ok := jccByName[name]; ok {
		return op, true
	}
	if op, ok := ccByName[name]; ok {
		return op, true
	}
	if op, ok := rccByName[name]; ok {
		return op, true
	}
	return 0, false
}

var mnemonicTable = map[string]OpCode{
	"MOV": MOV, "MVI": MVI, "LXI": LXI, "LDA": LDA, "STA": STA,
	"LHLD": LHLD, "SHLD": SHLD, "LDAX": LDAX, "STAX": STAX, "XCHG": XCHG,
	"ADD": ADD, "ADI": ADI, "ADC": ADC, "ACI": ACI, "SUB": SUB, "SUI": SUI,
	"SBB": SBB, "SBI": SBI, "INR": INR, "DCR": DCR, "INX": INX, "DCX": DCX,
	"DAD": DAD, "DAA": DAA,
	"ANA": ANA, "ANI": ANI, "XRA": XRA, "XRI": XRI, "ORA": ORA, "ORI": ORI,
	"CMP": CMP, "CPI": CPI, "RLC": RLC, "RRC": RRC, "RAL": RAL, "RAR": RAR,
	"CMA": CMA, "CMC": CMC, "STC": STC,
	"JMP": JMP, "CALL": CALL, "RET": RET, "RST": RST, "PCHL": PCHL,
	"PUSH": PUSH, "POP": POP, "XTHL": XTHL, "SPHL": SPHL,
	"IN": IN, "OUT": OUT, "EI": EI, "DI": DI, "HLT": HLT, "NOP": NOP,
	"RIM": RIM, "SIM": SIM,
}

// Mnemonic returns the canonical textual mnemonic for an OpCode.
func (op OpCode) Mnemonic() string {
	for _, tbl := range []map[string]OpCode{mnemonicTable, jccByName, ccByName, rccByName} {
		for name, o := range tbl {
			if o == op {
				if op == CPpos {
					return "CP"
				}
				return name
			}
		}
	}
	return "???"
}

// IsConditionalBranch reports whether op is a Jcc/Ccc/Rcc family member,
// i.e. one whose T-state cost depends on whether the branch is taken.
func IsConditionalBranch(op OpCode) bool {
	switch op {
	case JNZ, JZ, JNC, JC, JPO, JPE, JP, JM,
		CNZ, CZ, CNC, CC, CPO, CPE, CPpos, CM,
		RNZ, RZ, RNC, RC, RPO, RPE, RP, RM:
		return true
	}
	return false
}
