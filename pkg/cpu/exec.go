package cpu

import "github.com/8085dev/asm85/pkg/inst"

// execAdd, execAdc, execSub, ... are the per-family ALU helpers: each
// takes the operand value already resolved (register, memory or
// immediate — Exec doesn't care which) and updates A and the flags.
func execAdd(s *State, value uint8) {
	sum := uint16(s.A) + uint16(value)
	idx := halfCarryIndex(s.A, value, uint8(sum))
	s.CY = sum&0x100 != 0
	s.AC = HalfcarryAddTable[idx]
	s.A = uint8(sum)
	setSZP(s, s.A)
}

func execAdc(s *State, value uint8) {
	carry := uint16(0)
	if s.CY {
		carry = 1
	}
	sum := uint16(s.A) + uint16(value) + carry
	idx := halfCarryIndex(s.A, value, uint8(sum))
	s.CY = sum&0x100 != 0
	s.AC = HalfcarryAddTable[idx]
	s.A = uint8(sum)
	setSZP(s, s.A)
}

func execSub(s *State, value uint8) {
	diff := uint16(s.A) - uint16(value)
	idx := halfCarryIndex(s.A, value, uint8(diff))
	s.CY = diff&0x100 != 0
	s.AC = HalfcarrySubTable[idx]
	s.A = uint8(diff)
	setSZP(s, s.A)
}

func execSbb(s *State, value uint8) {
	borrow := uint16(0)
	if s.CY {
		borrow = 1
	}
	diff := uint16(s.A) - uint16(value) - borrow
	idx := halfCarryIndex(s.A, value, uint8(diff))
	s.CY = diff&0x100 != 0
	s.AC = HalfcarrySubTable[idx]
	s.A = uint8(diff)
	setSZP(s, s.A)
}

func execCmp(s *State, value uint8) {
	diff := uint16(s.A) - uint16(value)
	idx := halfCarryIndex(s.A, value, uint8(diff))
	s.CY = diff&0x100 != 0
	s.AC = HalfcarrySubTable[idx]
	setSZP(s, uint8(diff))
}

func execAnd(s *State, value uint8) {
	s.A &= value
	s.AC = true
	s.CY = false
	setSZP(s, s.A)
}

func execOr(s *State, value uint8) {
	s.A |= value
	s.AC = false
	s.CY = false
	setSZP(s, s.A)
}

func execXor(s *State, value uint8) {
	s.A ^= value
	s.AC = false
	s.CY = false
	setSZP(s, s.A)
}

func execInr(s *State, r inst.Reg) {
	v := regRead(s, r) + 1
	s.AC = v&0x0F == 0
	setSZP(s, v)
	regWrite(s, r, v)
}

func execDcr(s *State, r inst.Reg) {
	v := regRead(s, r)
	result := v - 1
	idx := halfCarryIndex(v, 1, result)
	s.AC = HalfcarrySubTable[idx]
	setSZP(s, result)
	regWrite(s, r, result)
}

// execDaa is the textbook decimal-adjust algorithm shared by the 8080
// and 8085: a low-nibble correction followed by a high-nibble
// correction, each gated on the corresponding flag or nibble overflow.
func execDaa(s *State) {
	correction := uint16(0)
	lo := s.A & 0x0F
	hi := s.A >> 4
	cy := s.CY
	ac := false

	if lo > 9 || s.AC {
		correction += 0x06
		ac = lo+0x06 > 0x0F
	}
	if hi > 9 || cy || (hi == 9 && lo > 9) {
		correction += 0x60
		cy = true
	}

	result := uint16(s.A) + correction
	s.A = uint8(result)
	s.CY = cy || result > 0xFF
	s.AC = ac
	setSZP(s, s.A)
}

func execDad(s *State, rp inst.RegPair) {
	hl := s.HL()
	val := pairRead(s, rp)
	result := uint32(hl) + uint32(val)
	s.CY = result&0x10000 != 0
	s.SetHL(uint16(result))
}

// condTrue reports whether a Jcc/Ccc/Rcc family member's condition
// currently holds.
func condTrue(op inst.OpCode, s *State) bool {
	switch op {
	case inst.JNZ, inst.CNZ, inst.RNZ:
		return !s.Z
	case inst.JZ, inst.CZ, inst.RZ:
		return s.Z
	case inst.JNC, inst.CNC, inst.RNC:
		return !s.CY
	case inst.JC, inst.CC, inst.RC:
		return s.CY
	case inst.JPO, inst.CPO, inst.RPO:
		return !s.P
	case inst.JPE, inst.CPE, inst.RPE:
		return s.P
	case inst.JP, inst.CPpos, inst.RP:
		return !s.S
	case inst.JM, inst.CM, inst.RM:
		return s.S
	}
	return false
}

func (s *State) push16(v uint16) {
	s.SP--
	s.Memory[s.SP] = uint8(v >> 8)
	s.SP--
	s.Memory[s.SP] = uint8(v)
}

func (s *State) pop16() uint16 {
	lo := s.Memory[s.SP]
	s.SP++
	hi := s.Memory[s.SP]
	s.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Exec performs one already-decoded instruction. r1/r2/rp/rst come from
// the pkg/inst decode table; imm carries any immediate, port or address
// operand fetched after the opcode byte (low byte only for 8-bit forms).
func Exec(s *State, op inst.OpCode, r1, r2 inst.Reg, rp inst.RegPair, rst uint8, imm uint16) {
	switch op {
	case inst.MOV:
		regWrite(s, r1, regRead(s, r2))
	case inst.MVI:
		regWrite(s, r1, uint8(imm))
	case inst.LXI:
		pairWrite(s, rp, imm)
	case inst.LDA:
		s.A = s.Memory[imm]
	case inst.STA:
		s.Memory[imm] = s.A
	case inst.LHLD:
		s.L = s.Memory[imm]
		s.H = s.Memory[imm+1]
	case inst.SHLD:
		s.Memory[imm] = s.L
		s.Memory[imm+1] = s.H
	case inst.LDAX:
		s.A = s.Memory[pairRead(s, rp)]
	case inst.STAX:
		s.Memory[pairRead(s, rp)] = s.A
	case inst.XCHG:
		s.D, s.H = s.H, s.D
		s.E, s.L = s.L, s.E

	case inst.ADD:
		execAdd(s, regRead(s, r1))
	case inst.ADI:
		execAdd(s, uint8(imm))
	case inst.ADC:
		execAdc(s, regRead(s, r1))
	case inst.ACI:
		execAdc(s, uint8(imm))
	case inst.SUB:
		execSub(s, regRead(s, r1))
	case inst.SUI:
		execSub(s, uint8(imm))
	case inst.SBB:
		execSbb(s, regRead(s, r1))
	case inst.SBI:
		execSbb(s, uint8(imm))
	case inst.INR:
		execInr(s, r1)
	case inst.DCR:
		execDcr(s, r1)
	case inst.INX:
		pairWrite(s, rp, pairRead(s, rp)+1)
	case inst.DCX:
		pairWrite(s, rp, pairRead(s, rp)-1)
	case inst.DAD:
		execDad(s, rp)
	case inst.DAA:
		execDaa(s)

	case inst.ANA:
		execAnd(s, regRead(s, r1))
	case inst.ANI:
		execAnd(s, uint8(imm))
	case inst.XRA:
		execXor(s, regRead(s, r1))
	case inst.XRI:
		execXor(s, uint8(imm))
	case inst.ORA:
		execOr(s, regRead(s, r1))
	case inst.ORI:
		execOr(s, uint8(imm))
	case inst.CMP:
		execCmp(s, regRead(s, r1))
	case inst.CPI:
		execCmp(s, uint8(imm))
	case inst.RLC:
		bit7 := s.A&0x80 != 0
		s.A = s.A<<1 | boolBit(bit7)
		s.CY = bit7
	case inst.RRC:
		bit0 := s.A&0x01 != 0
		s.A = s.A>>1 | boolBit(bit0)<<7
		s.CY = bit0
	case inst.RAL:
		bit7 := s.A&0x80 != 0
		s.A = s.A<<1 | boolBit(s.CY)
		s.CY = bit7
	case inst.RAR:
		bit0 := s.A&0x01 != 0
		s.A = s.A>>1 | boolBit(s.CY)<<7
		s.CY = bit0
	case inst.CMA:
		s.A = ^s.A
	case inst.CMC:
		s.CY = !s.CY
	case inst.STC:
		s.CY = true

	case inst.JMP:
		s.PC = imm
	case inst.PCHL:
		s.PC = s.HL()
	case inst.CALL:
		s.push16(s.PC)
		s.PC = imm
	case inst.RET:
		s.PC = s.pop16()
	case inst.RST:
		s.push16(s.PC)
		s.PC = uint16(rst) * 8

	case inst.PUSH:
		if rp == inst.PairPSW {
			s.push16(uint16(s.A)<<8 | uint16(s.PackPSW()))
		} else {
			s.push16(pairRead(s, rp))
		}
	case inst.POP:
		v := s.pop16()
		if rp == inst.PairPSW {
			s.A = uint8(v >> 8)
			s.UnpackPSW(uint8(v))
		} else {
			pairWrite(s, rp, v)
		}
	case inst.XTHL:
		lo := s.Memory[s.SP]
		hi := s.Memory[s.SP+1]
		s.Memory[s.SP] = s.L
		s.Memory[s.SP+1] = s.H
		s.L, s.H = lo, hi
	case inst.SPHL:
		s.SP = s.HL()
	case inst.IN:
		s.A = s.Ports[uint8(imm)]
	case inst.OUT:
		s.Ports[uint8(imm)] = s.A
	case inst.EI:
		s.eiPending = true
	case inst.DI:
		s.InterruptsEnabled = false
	case inst.HLT:
		s.Halted = true
	case inst.NOP:
	case inst.RIM:
		// Simplified: report the interrupt-enable state in bit 6 and
		// zero elsewhere. Pending-interrupt and serial-input bits are
		// not modeled.
		if s.InterruptsEnabled {
			s.A = 1 << 6
		} else {
			s.A = 0
		}
	case inst.SIM:
		// Simplified: accepted but has no effect. Serial output and
		// interrupt-mask programming are not modeled.

	default:
		if inst.IsConditionalBranch(op) {
			execConditional(s, op, imm)
		}
	}

	if op != inst.EI && s.eiPending {
		s.eiPending = false
		s.InterruptsEnabled = true
	}
}

func execConditional(s *State, op inst.OpCode, imm uint16) {
	taken := condTrue(op, s)
	switch {
	case op == inst.JNZ || op == inst.JZ || op == inst.JNC || op == inst.JC ||
		op == inst.JPO || op == inst.JPE || op == inst.JP || op == inst.JM:
		if taken {
			s.PC = imm
		}
	case op == inst.CNZ || op == inst.CZ || op == inst.CNC || op == inst.CC ||
		op == inst.CPO || op == inst.CPE || op == inst.CPpos || op == inst.CM:
		if taken {
			s.push16(s.PC)
			s.PC = imm
		}
	default: // Rcc
		if taken {
			s.PC = s.pop16()
		}
	}
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
