package inst

import "testing"

// TestCatalogCompleteness verifies every OpCode has a catalog entry.
func TestCatalogCompleteness(t *testing.T) {
	for op := OpCode(0); op < opCodeCount; op++ {
		e := &Catalog[op]
		if e.Length == 0 {
			t.Errorf("OpCode %d (%s) has no length", op, op.Mnemonic())
		}
		if e.TStates == 0 {
			t.Errorf("OpCode %d (%s) has 0 T-states", op, op.Mnemonic())
		}
		if e.Desc == "" {
			t.Errorf("OpCode %d (%s) has no description", op, op.Mnemonic())
		}
	}
}

// TestEncodeByte verifies opcode synthesis against known datasheet bytes.
func TestEncodeByte(t *testing.T) {
	tests := []struct {
		op       OpCode
		r1, r2   Reg
		rp       RegPair
		rst      uint8
		wantByte byte
	}{
		{op: MOV, r1: RegB, r2: RegB, wantByte: 0x40},
		{op: MOV, r1: RegA, r2: RegL, wantByte: 0x7D},
		{op: MOV, r1: RegM, r2: RegA, wantByte: 0x77},
		{op: MVI, r1: RegA, wantByte: 0x3E},
		{op: MVI, r1: RegM, wantByte: 0x36},
		{op: ADD, r1: RegC, wantByte: 0x81},
		{op: ADD, r1: RegM, wantByte: 0x86},
		{op: CMP, r1: RegA, wantByte: 0xBF},
		{op: INR, r1: RegB, wantByte: 0x04},
		{op: DCR, r1: RegA, wantByte: 0x3D},
		{op: LXI, rp: PairBC, wantByte: 0x01},
		{op: LXI, rp: PairSP, wantByte: 0x31},
		{op: INX, rp: PairHL, wantByte: 0x23},
		{op: DAD, rp: PairSP, wantByte: 0x39},
		{op: LDAX, rp: PairDE, wantByte: 0x1A},
		{op: PUSH, rp: PairPSW, wantByte: 0xF5},
		{op: POP, rp: PairHL, wantByte: 0xE1},
		{op: RST, rst: 0, wantByte: 0xC7},
		{op: RST, rst: 5, wantByte: 0xEF},
		{op: RST, rst: 7, wantByte: 0xFF},
	}

	for _, tc := range tests {
		got := EncodeByte(tc.op, tc.r1, tc.r2, tc.rp, tc.rst)
		if got != tc.wantByte {
			t.Errorf("EncodeByte(%s, %s, %s, %s, %d) = 0x%02X, want 0x%02X",
				tc.op.Mnemonic(), tc.r1, tc.r2, tc.rp, tc.rst, got, tc.wantByte)
		}
	}
}

// TestHLTIsNotAMovByte confirms MOV M,M is excluded from the decode table
// in favor of HLT, which shares its would-be encoding.
func TestHLTIsNotAMovByte(t *testing.T) {
	d := DecodeTable[0x76]
	if !d.Valid || d.Op != HLT {
		t.Errorf("0x76 decodes to %v, want HLT", d.Op.Mnemonic())
	}
}

// TestTStatesOf verifies timing, including the M-operand and taken-branch
// variants.
func TestTStatesOf(t *testing.T) {
	if got := TStatesOf(ADD, false, false); got != 4 {
		t.Errorf("ADD r: got %d T-states, want 4", got)
	}
	if got := TStatesOf(ADD, true, false); got != 7 {
		t.Errorf("ADD M: got %d T-states, want 7", got)
	}
	if got := TStatesOf(JNZ, false, false); got != 7 {
		t.Errorf("JNZ not taken: got %d, want 7", got)
	}
	if got := TStatesOf(JNZ, false, true); got != 10 {
		t.Errorf("JNZ taken: got %d, want 10", got)
	}
	if got := TStatesOf(CALL, false, false); got != 18 {
		t.Errorf("CALL: got %d, want 18", got)
	}
	if got := TStatesOf(RNZ, false, true); got != 12 {
		t.Errorf("RNZ taken: got %d, want 12", got)
	}
}

// TestDecodeTableRoundTrip verifies every populated decode row re-encodes
// to the byte it was stored under.
func TestDecodeTableRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		d := DecodeTable[b]
		if !d.Valid {
			continue
		}
		got := EncodeByte(d.Op, d.R1, d.R2, d.RP, d.RSTNum)
		if got != byte(b) {
			t.Errorf("DecodeTable[0x%02X] = %s, re-encodes to 0x%02X", b, d.Op.Mnemonic(), got)
		}
	}
}

// TestDisassembleAt verifies mnemonic text generation for representative
// instructions.
func TestDisassembleAt(t *testing.T) {
	tests := []struct {
		mem  []byte
		addr uint16
		want string
	}{
		{mem: []byte{0x3E, 0xFF}, want: "MVI A, FFH"},
		{mem: []byte{0x80}, want: "ADD B"},
		{mem: []byte{0x00}, want: "NOP"},
		{mem: []byte{0x01, 0x34, 0x12}, want: "LXI B, 1234H"},
		{mem: []byte{0xC3, 0x00, 0x10}, want: "JMP 1000H"},
		{mem: []byte{0x76}, want: "HLT"},
		{mem: []byte{0x40}, want: "MOV B, B"},
	}

	for _, tc := range tests {
		got := DisassembleAt(tc.mem, tc.addr)
		if got.Text != tc.want {
			t.Errorf("DisassembleAt(%v): got %q want %q", tc.mem, got.Text, tc.want)
		}
	}
}

// TestInstructionInfo verifies lookups by mnemonic, case-insensitively.
func TestInstructionInfo(t *testing.T) {
	e, ok := InstructionInfo("mvi")
	if !ok {
		t.Fatal("expected MVI to be found")
	}
	if e.Mnemonic != "MVI" || e.Length != 2 {
		t.Errorf("InstructionInfo(mvi) = %+v", e)
	}

	if _, ok := InstructionInfo("NOTANOP"); ok {
		t.Error("expected unknown mnemonic to fail lookup")
	}
}

// TestIsConditionalBranch spot-checks branch-family detection.
func TestIsConditionalBranch(t *testing.T) {
	for _, op := range []OpCode{JNZ, CZ, RPO} {
		if !IsConditionalBranch(op) {
			t.Errorf("%s should be a conditional branch", op.Mnemonic())
		}
	}
	for _, op := range []OpCode{JMP, CALL, RET, NOP} {
		if IsConditionalBranch(op) {
			t.Errorf("%s should not be a conditional branch", op.Mnemonic())
		}
	}
}
