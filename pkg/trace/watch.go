package trace

import "github.com/8085dev/asm85/pkg/cpu"

// WatchRange is an inclusive [Start,End] byte range to monitor for
// writes.
type WatchRange struct {
	Start, End uint16
}

func (r WatchRange) contains(addr uint16) bool {
	return addr >= r.Start && addr <= r.End
}

// WatchHit records a single observed change inside a watched range.
type WatchHit struct {
	Addr     uint16
	OldValue byte
	NewValue byte
	AtPC     uint16 // PC after the step that produced the change
}

// Watches snapshots the bytes under a set of WatchRanges and reports
// any that differ after each step. Comparison happens after the step,
// never mid-instruction, so a single MOV that touches a watched cell
// is reported once with its before/after values.
type Watches struct {
	ranges []WatchRange
	prev   map[uint16]byte
	Hits   []WatchHit
}

func NewWatches(ranges ...WatchRange) *Watches {
	w := &Watches{ranges: ranges, prev: map[uint16]byte{}}
	return w
}

// Arm snapshots the current memory contents of every watched range.
// Call it once before the first step so the first comparison has a
// baseline instead of reporting every byte as "changed from 0".
func (w *Watches) Arm(s *cpu.State) {
	for _, r := range w.ranges {
		for a := uint32(r.Start); a <= uint32(r.End); a++ {
			w.prev[uint16(a)] = s.Memory[uint16(a)]
		}
	}
}

// OnStep is a cpu.State.OnStep hook: it never itself asks the run to
// stop, only records hits; callers that want to stop on first hit can
// check len(w.Hits) after each Run/Step.
func (w *Watches) OnStep(s *cpu.State) bool {
	for addr, old := range w.prev {
		cur := s.Memory[addr]
		if cur != old {
			w.Hits = append(w.Hits, WatchHit{Addr: addr, OldValue: old, NewValue: cur, AtPC: s.PC})
			w.prev[addr] = cur
		}
	}
	return false
}

// StopOnHit wraps OnStep so it also requests the run stop as soon as
// any watched byte changes.
func (w *Watches) StopOnHit(s *cpu.State) bool {
	before := len(w.Hits)
	w.OnStep(s)
	return len(w.Hits) > before
}
