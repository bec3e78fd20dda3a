package cpu

import "github.com/8085dev/asm85/pkg/inst"

// regRead and regWrite give generic access to any of the eight 8-bit
// operand positions (B,C,D,E,H,L,M,A), where M reads/writes the memory
// byte at (HL). This is what lets Exec dispatch per mnemonic family
// instead of once per concrete register combination.
func regRead(s *State, r inst.Reg) uint8 {
	switch r {
	case inst.RegB:
		return s.B
	case inst.RegC:
		return s.C
	case inst.RegD:
		return s.D
	case inst.RegE:
		return s.E
	case inst.RegH:
		return s.H
	case inst.RegL:
		return s.L
	case inst.RegM:
		return s.Memory[s.HL()]
	case inst.RegA:
		return s.A
	}
	return 0
}

func regWrite(s *State, r inst.Reg, v uint8) {
	switch r {
	case inst.RegB:
		s.B = v
	case inst.RegC:
		s.C = v
	case inst.RegD:
		s.D = v
	case inst.RegE:
		s.E = v
	case inst.RegH:
		s.H = v
	case inst.RegL:
		s.L = v
	case inst.RegM:
		s.Memory[s.HL()] = v
	case inst.RegA:
		s.A = v
	}
}

// pairRead and pairWrite give generic access to BC/DE/HL/SP. PSW is
// handled separately by PUSH/POP since it packs A with the flags rather
// than two plain registers.
func pairRead(s *State, rp inst.RegPair) uint16 {
	switch rp {
	case inst.PairBC:
		return s.BC()
	case inst.PairDE:
		return s.DE()
	case inst.PairHL:
		return s.HL()
	case inst.PairSP:
		return s.SP
	}
	return 0
}

func pairWrite(s *State, rp inst.RegPair, v uint16) {
	switch rp {
	case inst.PairBC:
		s.SetBC(v)
	case inst.PairDE:
		s.SetDE(v)
	case inst.PairHL:
		s.SetHL(v)
	case inst.PairSP:
		s.SP = v
	}
}
