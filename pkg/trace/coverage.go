package trace

import "github.com/8085dev/asm85/pkg/cpu"

// Coverage is a full-address-space hit bitmap: Hit[addr] is true once
// the fetch for an instruction starting at addr has occurred. It is
// marked before the instruction executes, matching spec's definition
// of coverage as "true at PC before each fetch" rather than after.
type Coverage struct {
	Hit [65536]bool
}

func NewCoverage() *Coverage {
	return &Coverage{}
}

// OnFetch is a cpu.State.OnFetch hook; it only records and never asks
// the run to stop.
func (c *Coverage) OnFetch(s *cpu.State) bool {
	c.Hit[s.PC] = true
	return false
}

// Percent reports the number of hit addresses as a percentage of
// reachable, a count the caller supplies (capped at 100%).
func (c *Coverage) Percent(reachable int) float64 {
	if reachable == 0 {
		return 0
	}
	hit := 0
	for _, b := range c.Hit {
		if b {
			hit++
		}
	}
	if hit > reachable {
		hit = reachable
	}
	return 100 * float64(hit) / float64(reachable)
}
