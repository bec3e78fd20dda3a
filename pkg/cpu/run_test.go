package cpu

import (
	"context"
	"testing"

	"github.com/8085dev/asm85/pkg/asm"
	"github.com/stretchr/testify/require"
)

func TestResetLoadsProgram(t *testing.T) {
	p := asm.Assemble("        ORG 0020H\n        HLT\n")
	require.False(t, p.HasErrors(), "unexpected assembly errors: %+v", p.Diagnostics)
	s := Reset(p)
	require.Equal(t, uint16(0x0020), s.PC)
	require.Equal(t, uint16(0xFFFF), s.SP)
	require.Equal(t, uint8(0x76), s.Memory[0x0020], "HLT")
}

func TestStepSimpleSequence(t *testing.T) {
	p := asm.Assemble("        MVI A, 05H\n        MOV B, A\n        HLT\n")
	require.False(t, p.HasErrors(), "unexpected assembly errors: %+v", p.Diagnostics)
	s := Reset(p)

	r := s.Step()
	require.Equal(t, 2, r.Length)
	require.Equal(t, uint8(0x05), s.A)

	r = s.Step()
	require.Equal(t, 1, r.Length)
	require.Equal(t, uint8(0x05), s.B)

	r = s.Step()
	require.True(t, r.Halted)
	require.True(t, s.Halted)
}

func TestStepIllegalOpcode(t *testing.T) {
	s := &State{}
	s.Memory[0] = 0xED // not a valid 8085 opcode
	r := s.Step()
	require.True(t, r.Illegal)
	require.Equal(t, uint16(1), s.PC, "illegal opcode should still advance PC by one")
}

func TestStepAfterHaltDoesNotRefetch(t *testing.T) {
	p := asm.Assemble("        MVI A, 01H\n        HLT\n        MVI A, 02H\n")
	s := Reset(p)
	s.Step() // MVI A,01H
	r := s.Step()
	require.True(t, r.Halted)

	cyclesBefore := s.Cycles
	pcBefore := s.PC
	r = s.Step()
	require.True(t, r.Halted)
	require.Equal(t, pcBefore, s.PC, "a halted CPU must not advance PC")
	require.Equal(t, uint8(0x01), s.A, "a halted CPU must not execute the next opcode")
	require.Equal(t, cyclesBefore+4, s.Cycles)
}

func TestRunStopsAtHalt(t *testing.T) {
	p := asm.Assemble("        MVI A, 01H\n        INR A\n        HLT\n")
	s := Reset(p)
	res := Run(context.Background(), s, nil)
	require.Equal(t, "halt", res.StoppedBy)
	require.Equal(t, uint8(0x02), s.A)
	require.EqualValues(t, 3, res.Steps)
}

func TestRunRespectsStepLimit(t *testing.T) {
	p := asm.Assemble("LOOP:   JMP LOOP\n")
	s := Reset(p)
	limit := uint64(10)
	res := Run(context.Background(), s, &limit)
	require.Equal(t, "limit", res.StoppedBy)
	require.EqualValues(t, 10, res.Steps)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	p := asm.Assemble("LOOP:   JMP LOOP\n")
	s := Reset(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Run(ctx, s, nil)
	require.Equal(t, "context", res.StoppedBy)
}

func TestRunOnStepHookStops(t *testing.T) {
	p := asm.Assemble("        MVI A, 01H\n        INR A\n        INR A\n        HLT\n")
	s := Reset(p)
	count := 0
	s.OnStep = func(st *State) bool {
		count++
		return count >= 2
	}
	res := Run(context.Background(), s, nil)
	require.Equal(t, "hook", res.StoppedBy)
	require.EqualValues(t, 2, res.Steps)
}

func TestConditionalBranchTStates(t *testing.T) {
	p := asm.Assemble("        JZ TARGET\nTARGET: HLT\n")
	s := Reset(p)
	s.Z = false
	r := s.Step()
	require.Equal(t, 7, r.TStates, "JZ not taken")

	p = asm.Assemble("        JZ TARGET\nTARGET: HLT\n")
	s = Reset(p)
	s.Z = true
	r = s.Step()
	require.Equal(t, 10, r.TStates, "JZ taken")
}
