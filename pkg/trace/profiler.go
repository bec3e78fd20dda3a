package trace

import (
	"sort"
	"sync"

	"github.com/8085dev/asm85/pkg/cpu"
)

// Sample is the accumulated hit/cycle count for one instruction
// address.
type Sample struct {
	Addr   uint16
	Hits   uint64
	Cycles uint64
}

// Profiler accumulates per-address hit and cycle counts across a run.
// It is safe for concurrent use so a caller running several profiled
// programs in parallel can share one instance per run without races.
type Profiler struct {
	mu      sync.Mutex
	samples map[uint16]*Sample
}

func NewProfiler() *Profiler {
	return &Profiler{samples: map[uint16]*Sample{}}
}

// OnStep is a cpu.State.OnStep hook; it records the instruction that
// just ran, keyed by its fetch address (via s.LastStep), and never
// stops the run.
func (p *Profiler) OnStep(s *cpu.State) bool {
	r := s.LastStep
	p.mu.Lock()
	defer p.mu.Unlock()
	sm, ok := p.samples[r.Addr]
	if !ok {
		sm = &Sample{Addr: r.Addr}
		p.samples[r.Addr] = sm
	}
	sm.Hits++
	sm.Cycles += uint64(r.TStates)
	return false
}

// LoadSamples replaces the profiler's accumulated state with samples
// restored from elsewhere (pkg/asmcheckpoint, in particular).
func (p *Profiler) LoadSamples(samples []Sample) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = make(map[uint16]*Sample, len(samples))
	for _, sm := range samples {
		cp := sm
		p.samples[sm.Addr] = &cp
	}
}

// Samples returns every recorded address's sample, in no particular
// order.
func (p *Profiler) Samples() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Sample, 0, len(p.samples))
	for _, sm := range p.samples {
		out = append(out, *sm)
	}
	return out
}

// TopByHits returns the n addresses with the most hits, descending.
func (p *Profiler) TopByHits(n int) []Sample {
	return top(p.Samples(), n, func(s Sample) uint64 { return s.Hits })
}

// TopByCycles returns the n addresses that consumed the most cycles,
// descending.
func (p *Profiler) TopByCycles(n int) []Sample {
	return top(p.Samples(), n, func(s Sample) uint64 { return s.Cycles })
}

func top(samples []Sample, n int, by func(Sample) uint64) []Sample {
	sort.Slice(samples, func(i, j int) bool {
		return by(samples[i]) > by(samples[j])
	})
	if n >= 0 && n < len(samples) {
		samples = samples[:n]
	}
	return samples
}
