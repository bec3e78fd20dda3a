package cpu

import (
	"testing"

	"github.com/8085dev/asm85/pkg/inst"
	"github.com/stretchr/testify/require"
)

func TestExecAdd(t *testing.T) {
	tests := []struct {
		a, b   uint8
		wantA  uint8
		wantCY bool
		wantZ  bool
	}{
		{0, 0, 0, false, true},
		{1, 1, 2, false, false},
		{0xFF, 1, 0, true, true},
		{0x0F, 1, 0x10, false, false},
	}
	for _, tc := range tests {
		s := &State{A: tc.a, B: tc.b}
		Exec(s, inst.ADD, inst.RegB, 0, 0, 0, 0)
		require.Equal(t, tc.wantA, s.A, "ADD %02X+%02X", tc.a, tc.b)
		require.Equal(t, tc.wantCY, s.CY, "ADD %02X+%02X CY", tc.a, tc.b)
		require.Equal(t, tc.wantZ, s.Z, "ADD %02X+%02X Z", tc.a, tc.b)
	}
}

func TestExecSubBorrow(t *testing.T) {
	s := &State{A: 0x00, B: 0x01}
	Exec(s, inst.SUB, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0xFF), s.A)
	require.True(t, s.CY, "SUB 0-1 should set borrow (CY)")
	require.True(t, s.AC, "SUB 0-1 should set half-borrow (AC)")
}

func TestExecAdcUsesCarry(t *testing.T) {
	s := &State{A: 5, B: 3, CY: true}
	Exec(s, inst.ADC, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(9), s.A)
}

func TestExecSbbUsesCarry(t *testing.T) {
	s := &State{A: 5, B: 3, CY: true}
	Exec(s, inst.SBB, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(1), s.A)
	require.False(t, s.AC, "SBB 5-3-1 should not need a half-borrow")
}

func TestExecCmpDoesNotModifyA(t *testing.T) {
	s := &State{A: 0x10, B: 0x20}
	Exec(s, inst.CMP, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0x10), s.A, "CMP must not modify A")
	require.True(t, s.CY, "CMP 10 < 20 should set CY")
	require.False(t, s.AC, "CMP 0x10-0x20 should not need a low-nibble borrow")
}

func TestExecLogicOps(t *testing.T) {
	s := &State{A: 0xFF, B: 0x0F}
	Exec(s, inst.ANA, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0x0F), s.A)
	require.False(t, s.CY)
	require.True(t, s.AC)

	s = &State{A: 0xF0, B: 0x0F}
	Exec(s, inst.ORA, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0xFF), s.A)
	require.False(t, s.CY)
	require.False(t, s.AC)

	s = &State{A: 0xFF, B: 0xFF}
	Exec(s, inst.XRA, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0), s.A)
	require.True(t, s.Z)
}

func TestExecInrDcr(t *testing.T) {
	s := &State{B: 0x7F, CY: true}
	Exec(s, inst.INR, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0x80), s.B)
	require.True(t, s.CY, "INR must not touch CY")

	s = &State{B: 0x00, CY: true}
	Exec(s, inst.DCR, inst.RegB, 0, 0, 0, 0)
	require.Equal(t, uint8(0xFF), s.B)
	require.True(t, s.CY, "DCR must not touch CY")
	require.True(t, s.AC, "DCR 0x00 should set half-borrow (AC)")
}

func TestExecMovMemory(t *testing.T) {
	s := &State{}
	s.SetHL(0x2000)
	s.Memory[0x2000] = 0x42
	Exec(s, inst.MOV, inst.RegA, inst.RegM, 0, 0, 0)
	require.Equal(t, uint8(0x42), s.A)
}

func TestExecLxiDad(t *testing.T) {
	s := &State{}
	Exec(s, inst.LXI, 0, 0, inst.PairBC, 0, 0x1234)
	require.Equal(t, uint16(0x1234), s.BC())
	s.SetHL(0x0001)
	Exec(s, inst.DAD, 0, 0, inst.PairBC, 0, 0)
	require.Equal(t, uint16(0x1235), s.HL())
}

func TestExecDAA(t *testing.T) {
	tests := []struct {
		a, want uint8
		ac, cy  bool
	}{
		{0x09, 0x09, false, false},
		{0x0A, 0x10, false, false},
		{0x9A, 0x00, false, false},
	}
	for _, tc := range tests {
		s := &State{A: tc.a, AC: tc.ac, CY: tc.cy}
		Exec(s, inst.DAA, 0, 0, 0, 0, 0)
		require.Equal(t, tc.want, s.A, "DAA %02X", tc.a)
	}
}

func TestExecJumpAndCall(t *testing.T) {
	s := &State{PC: 0x0010, SP: 0xFFFE}
	Exec(s, inst.JMP, 0, 0, 0, 0, 0x2000)
	require.Equal(t, uint16(0x2000), s.PC)

	s = &State{PC: 0x0010, SP: 0xFFFE}
	Exec(s, inst.CALL, 0, 0, 0, 0, 0x3000)
	require.Equal(t, uint16(0x3000), s.PC)
	require.Equal(t, uint16(0xFFFC), s.SP, "CALL should push the return address")
	require.Equal(t, uint8(0x10), s.Memory[0xFFFC])
	require.Equal(t, uint8(0x00), s.Memory[0xFFFD])

	Exec(s, inst.RET, 0, 0, 0, 0, 0)
	require.Equal(t, uint16(0x0010), s.PC)
	require.Equal(t, uint16(0xFFFE), s.SP)
}

func TestExecRst(t *testing.T) {
	s := &State{PC: 0x0100, SP: 0xFFFE}
	Exec(s, inst.RST, 0, 0, 0, 5, 0)
	require.Equal(t, uint16(0x0028), s.PC)
}

func TestExecConditionalBranchTaken(t *testing.T) {
	s := &State{PC: 0x0010, Z: true}
	Exec(s, inst.JZ, 0, 0, 0, 0, 0x1000)
	require.Equal(t, uint16(0x1000), s.PC, "JZ taken")

	s = &State{PC: 0x0010, Z: false}
	Exec(s, inst.JZ, 0, 0, 0, 0, 0x1000)
	require.Equal(t, uint16(0x0010), s.PC, "JZ not taken: PC should be unchanged")
}

func TestExecPushPopPSW(t *testing.T) {
	s := &State{A: 0x42, S: true, Z: true, AC: false, P: true, CY: true, SP: 0xFFFE}
	Exec(s, inst.PUSH, 0, 0, inst.PairPSW, 0, 0)
	require.Equal(t, uint16(0xFFFC), s.SP)

	s2 := &State{SP: s.SP, Memory: s.Memory}
	Exec(s2, inst.POP, 0, 0, inst.PairPSW, 0, 0)
	require.Equal(t, uint8(0x42), s2.A)
	require.True(t, s2.S)
	require.True(t, s2.Z)
	require.False(t, s2.AC)
	require.True(t, s2.P)
	require.True(t, s2.CY)
}

func TestExecEiDelaysOneInstruction(t *testing.T) {
	s := &State{}
	Exec(s, inst.EI, 0, 0, 0, 0, 0)
	require.False(t, s.InterruptsEnabled, "EI must not enable interrupts immediately")
	Exec(s, inst.NOP, 0, 0, 0, 0, 0)
	require.True(t, s.InterruptsEnabled, "EI should take effect after the following instruction")
}

func TestExecHlt(t *testing.T) {
	s := &State{}
	Exec(s, inst.HLT, 0, 0, 0, 0, 0)
	require.True(t, s.Halted)
}

func TestExecDeterministic(t *testing.T) {
	base := State{A: 0x42, B: 0x13, C: 0x24, D: 0x35, E: 0x46, H: 0x57, L: 0x68, SP: 0xFFF0, PC: 0x0100}
	for op := inst.OpCode(0); int(op) < len(inst.Catalog); op++ {
		info := &inst.Catalog[op]
		if info.Desc == "" {
			continue
		}
		s1, s2 := base, base
		func() {
			defer func() { recover() }()
			Exec(&s1, op, inst.RegB, inst.RegC, inst.PairBC, 1, 0x1234)
		}()
		func() {
			defer func() { recover() }()
			Exec(&s2, op, inst.RegB, inst.RegC, inst.PairBC, 1, 0x1234)
		}()
		require.Equal(t, s1, s2, "OpCode %s is not deterministic", op.Mnemonic())
	}
}
