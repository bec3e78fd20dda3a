package inst

// DecodeEntry is one row of the fetch-time decode table: everything the
// emulator needs to execute an already-fetched opcode byte without
// redoing any bit-field arithmetic (spec §9: "opcode_byte → (handler,
// length, cycles)" as a flat 256-entry array, faster and simpler than a
// string-keyed map).
type DecodeEntry struct {
	Valid      bool
	Op         OpCode
	R1, R2     Reg
	RP         RegPair
	RSTNum     uint8
	Length     int
	TStates    int // not-taken / default cost
	TStatesAlt int // taken cost, for conditional branches; 0 otherwise
}

// DecodeTable is indexed directly by the fetched opcode byte.
var DecodeTable [256]DecodeEntry

func buildDecodeTable() {
	set := func(b byte, d DecodeEntry) {
		if DecodeTable[b].Valid {
			panic("inst: opcode byte collision during decode table construction")
		}
		d.Valid = true
		DecodeTable[b] = d
	}

	allRegs := func() []Reg {
		return []Reg{RegB, RegC, RegD, RegE, RegH, RegL, RegM, RegA}
	}
	allPairsLXI := []RegPair{PairBC, PairDE, PairHL, PairSP}
	allPairsPush := []RegPair{PairBC, PairDE, PairHL, PairPSW}

	// MOV r1, r2 — every combination except (M, M), which is HLT.
	for _, r1 := range allRegs() {
		for _, r2 := range allRegs() {
			if r1 == RegM && r2 == RegM {
				continue
			}
			b := EncodeByte(MOV, r1, r2, 0, 0)
			set(b, decodeOf(MOV, r1, r2, 0, 0))
		}
	}

	// MVI r, data8
	for _, r := range allRegs() {
		b := EncodeByte(MVI, r, 0, 0, 0)
		set(b, decodeOf(MVI, r, 0, 0, 0))
	}

	// ALU-with-register families: reg folded into bits 0-2
	for _, op := range []OpCode{ADD, ADC, SUB, SBB, ANA, XRA, ORA, CMP} {
		for _, r := range allRegs() {
			b := EncodeByte(op, r, 0, 0, 0)
			set(b, decodeOf(op, r, 0, 0, 0))
		}
	}

	// INR/DCR: reg folded into bits 3-5
	for _, op := range []OpCode{INR, DCR} {
		for _, r := range allRegs() {
			b := EncodeByte(op, r, 0, 0, 0)
			set(b, decodeOf(op, r, 0, 0, 0))
		}
	}

	// LXI/INX/DCX/DAD: pair folded into bits 4-5, pair 11 = SP
	for _, op := range []OpCode{LXI, INX, DCX, DAD} {
		for _, p := range allPairsLXI {
			b := EncodeByte(op, 0, 0, p, 0)
			set(b, decodeOf(op, 0, 0, p, 0))
		}
	}

	// LDAX/STAX: pair 00/01 only (BC/DE)
	for _, op := range []OpCode{LDAX, STAX} {
		for _, p := range []RegPair{PairBC, PairDE} {
			b := EncodeByte(op, 0, 0, p, 0)
			set(b, decodeOf(op, 0, 0, p, 0))
		}
	}

	// PUSH/POP: pair 11 = PSW
	for _, op := range []OpCode{PUSH, POP} {
		for _, p := range allPairsPush {
			b := EncodeByte(op, 0, 0, p, 0)
			set(b, decodeOf(op, 0, 0, p, 0))
		}
	}

	// RST 0-7
	for n := uint8(0); n < 8; n++ {
		b := EncodeByte(RST, 0, 0, 0, n)
		set(b, decodeOf(RST, 0, 0, 0, n))
	}

	// Everything else has exactly one fixed encoding.
	fixed := []OpCode{
		LDA, STA, LHLD, SHLD, XCHG, ADI, ACI, SUI, SBI, ANI, XRI, ORI, CPI, DAA,
		RLC, RRC, RAL, RAR, CMA, CMC, STC,
		JMP, CALL, RET, PCHL, XTHL, SPHL, IN, OUT, EI, DI, HLT, NOP, RIM, SIM,
	}
	for mnem, op := range jccByName {
		_ = mnem
		fixed = append(fixed, op)
	}
	for mnem, op := range ccByName {
		_ = mnem
		fixed = append(fixed, op)
	}
	for mnem, op := range rccByName {
		_ = mnem
		fixed = append(fixed, op)
	}
	for _, op := range fixed {
		b := Catalog[op].BaseOpcode
		set(b, decodeOf(op, 0, 0, 0, 0))
	}
}

func decodeOf(op OpCode, r1, r2 Reg, rp RegPair, rst uint8) DecodeEntry {
	e := &Catalog[op]
	usesM := UsesM(op, r1, r2)
	d := DecodeEntry{
		Op: op, R1: r1, R2: r2, RP: rp, RSTNum: rst,
		Length:  e.Length,
		TStates: TStatesOf(op, usesM, false),
	}
	if IsConditionalBranch(op) {
		d.TStatesAlt = TStatesOf(op, usesM, true)
	}
	return d
}
