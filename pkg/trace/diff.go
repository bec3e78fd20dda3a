package trace

import (
	"context"

	"github.com/8085dev/asm85/pkg/cpu"
)

// Snapshot is the comparable slice of machine state the diff runner
// checks after each step. It excludes memory and ports, and DiffRun
// does not compare them at all: two runs that differ only in memory or
// port contents are not reported as diverged.
type Snapshot struct {
	PC, SP              uint16
	A, B, C, D, E, H, L uint8
	S, Z, AC, P, CY     bool
	Halted              bool
}

func snapshotOf(s *cpu.State) Snapshot {
	return Snapshot{
		PC: s.PC, SP: s.SP,
		A: s.A, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L,
		S: s.S, Z: s.Z, AC: s.AC, P: s.P, CY: s.CY,
		Halted: s.Halted,
	}
}

// FlagMask selects which flags DiffRun compares, so callers can ignore
// flags an instruction leaves in a don't-care state rather than flag a
// spurious divergence.
type FlagMask struct {
	S, Z, AC, P, CY bool
}

// MaskAll compares every flag.
var MaskAll = FlagMask{S: true, Z: true, AC: true, P: true, CY: true}

func equalMasked(a, b Snapshot, m FlagMask) bool {
	if a.PC != b.PC || a.SP != b.SP || a.Halted != b.Halted {
		return false
	}
	if a.A != b.A || a.B != b.B || a.C != b.C || a.D != b.D || a.E != b.E || a.H != b.H || a.L != b.L {
		return false
	}
	if m.S && a.S != b.S {
		return false
	}
	if m.Z && a.Z != b.Z {
		return false
	}
	if m.AC && a.AC != b.AC {
		return false
	}
	if m.P && a.P != b.P {
		return false
	}
	if m.CY && a.CY != b.CY {
		return false
	}
	return true
}

// DiffResult reports the outcome of a lockstep DiffRun.
type DiffResult struct {
	Diverged   bool
	Step       uint64
	Left       Snapshot
	Right      Snapshot
	LeftSteps  uint64 // total steps left actually completed
	RightSteps uint64
}

// DiffRun steps left and right in lockstep, comparing their Snapshot
// (masked by m) after every step, and returns at the first divergence
// or when either halts. DiffRun does not reset or load either State;
// both must already be reset and loaded by the caller.
func DiffRun(ctx context.Context, left, right *cpu.State, m FlagMask, limit uint64) DiffResult {
	var steps uint64
	for steps < limit {
		select {
		case <-ctx.Done():
			return DiffResult{Step: steps, Left: snapshotOf(left), Right: snapshotOf(right), LeftSteps: steps, RightSteps: steps}
		default:
		}
		if left.Halted || right.Halted {
			break
		}

		left.Step()
		right.Step()
		steps++

		ls, rs := snapshotOf(left), snapshotOf(right)
		if !equalMasked(ls, rs, m) {
			return DiffResult{
				Diverged: true, Step: steps,
				Left: ls, Right: rs,
				LeftSteps: steps, RightSteps: steps,
			}
		}
	}
	return DiffResult{Step: steps, Left: snapshotOf(left), Right: snapshotOf(right), LeftSteps: steps, RightSteps: steps}
}
