// Package trace implements the pure observer hooks spec.md §4.F calls
// for: breakpoints, watches, a coverage bitmap, a hit/cycle profiler,
// and a lockstep diff runner. The observers never mutate cpu.State; each
// attaches to cpu.State's OnFetch or OnStep callback and only reads.
// DiffRun is not an observer: it drives its two States by calling Step.
package trace

import "github.com/8085dev/asm85/pkg/cpu"

// Breakpoints is a set of addresses that, when reached, stop a Run.
// Hit checking happens before the fetch of the instruction at that
// address, so a breakpoint address is never partially executed.
type Breakpoints struct {
	set map[uint16]bool
	Hit uint16 // address of the last breakpoint that fired
}

func NewBreakpoints() *Breakpoints {
	return &Breakpoints{set: map[uint16]bool{}}
}

func (b *Breakpoints) Set(addr uint16)   { b.set[addr] = true }
func (b *Breakpoints) Clear(addr uint16) { delete(b.set, addr) }
func (b *Breakpoints) Has(addr uint16) bool {
	return b.set[addr]
}

// OnFetch is a cpu.State.OnFetch hook: it reports the run should stop
// when PC sits on a set breakpoint, recording which one fired.
func (b *Breakpoints) OnFetch(s *cpu.State) bool {
	if b.set[s.PC] {
		b.Hit = s.PC
		return true
	}
	return false
}
