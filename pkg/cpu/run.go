package cpu

import (
	"context"
	"fmt"

	"github.com/8085dev/asm85/pkg/asm"
	"github.com/8085dev/asm85/pkg/inst"
)

// Reset builds a fresh State with prog loaded into memory at its
// assembled addresses and PC set to the program's origin.
func Reset(prog *asm.Program) *State {
	s := &State{}
	copy(s.Memory[:], prog.Memory[:])
	s.PC = prog.Origin
	s.SP = 0xFFFF
	return s
}

// StepResult reports what happened during one Step call.
type StepResult struct {
	Addr     uint16 // address the instruction was fetched from
	Op       inst.OpCode
	Length   int
	TStates  int
	Halted   bool
	Illegal  bool
}

// illegalOpcodeTStates is what an undecodable byte is charged: the
// 8085 doesn't document behavior here, so Step treats it as a 1-byte,
// 4-T-state no-op rather than crashing the run loop.
const illegalOpcodeTStates = 4

// Step fetches, decodes and executes exactly one instruction, advancing
// PC and the cycle counters. It does not consult OnStep; Run does that.
func (s *State) Step() StepResult {
	if s.Halted {
		s.Cycles += 4
		result := StepResult{Addr: s.PC, Halted: true}
		s.LastStep = result
		return result
	}

	addr := s.PC
	opcodeByte := s.Memory[addr]
	d := inst.DecodeTable[opcodeByte]

	if !d.Valid {
		s.PC++
		s.Cycles += illegalOpcodeTStates
		s.InstructionsExecuted++
		result := StepResult{Addr: addr, Length: 1, TStates: illegalOpcodeTStates, Illegal: true}
		s.LastStep = result
		return result
	}

	var imm uint16
	shape := inst.Catalog[d.Op].Shape
	switch shape {
	case inst.ShapeRegImm8, inst.ShapeImm8, inst.ShapePort8:
		imm = uint16(s.Memory[addr+1])
	case inst.ShapeAddr16, inst.ShapeRegPairImm16:
		lo := uint16(s.Memory[addr+1])
		hi := uint16(s.Memory[addr+2])
		imm = hi<<8 | lo
	}

	s.PC = addr + uint16(d.Length)

	usesM := inst.UsesM(d.Op, d.R1, d.R2)
	taken := false
	if inst.IsConditionalBranch(d.Op) {
		taken = condTrue(d.Op, s)
	}

	Exec(s, d.Op, d.R1, d.R2, d.RP, d.RSTNum, imm)

	cost := inst.TStatesOf(d.Op, usesM, taken)
	s.Cycles += uint64(cost)
	s.InstructionsExecuted++

	result := StepResult{Addr: addr, Op: d.Op, Length: d.Length, TStates: cost, Halted: s.Halted}
	s.LastStep = result
	return result
}

// RunResult summarizes a completed Run call.
type RunResult struct {
	Steps      uint64
	Cycles     uint64
	Halted     bool
	StoppedBy  string // "halt", "limit", "context", "fetch", "hook", or "" if still running
}

// Run steps the CPU until it halts (via HLT), a step limit is reached,
// ctx is canceled, or OnFetch or OnStep asks the run to stop. A nil
// limit means no step cap.
func Run(ctx context.Context, s *State, limit *uint64) RunResult {
	var steps uint64
	for {
		if s.Halted {
			return RunResult{Steps: steps, Cycles: s.Cycles, Halted: true, StoppedBy: "halt"}
		}
		if limit != nil && steps >= *limit {
			return RunResult{Steps: steps, Cycles: s.Cycles, StoppedBy: "limit"}
		}
		select {
		case <-ctx.Done():
			return RunResult{Steps: steps, Cycles: s.Cycles, StoppedBy: "context"}
		default:
		}

		if s.OnFetch != nil && s.OnFetch(s) {
			return RunResult{Steps: steps, Cycles: s.Cycles, StoppedBy: "fetch"}
		}

		s.Step()
		steps++

		if s.OnStep != nil && s.OnStep(s) {
			return RunResult{Steps: steps, Cycles: s.Cycles, Halted: s.Halted, StoppedBy: "hook"}
		}
	}
}

func (r StepResult) String() string {
	if r.Illegal {
		return fmt.Sprintf("%04XH: <illegal>", r.Addr)
	}
	return fmt.Sprintf("%04XH: %s", r.Addr, r.Op.Mnemonic())
}
