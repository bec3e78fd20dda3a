// Package asmcheckpoint persists the trace state of a long-running
// emulation (coverage bitmap, profiler samples, machine registers) so
// a run can be resumed across process restarts instead of redone from
// scratch.
package asmcheckpoint

import (
	"encoding/gob"
	"os"

	"github.com/8085dev/asm85/pkg/cpu"
	"github.com/8085dev/asm85/pkg/trace"
)

// Checkpoint holds everything needed to resume a profiled, covered run.
type Checkpoint struct {
	State    cpu.State
	Coverage [65536]bool
	Samples  []trace.Sample
}

func init() {
	gob.Register(cpu.StepResult{})
}

// Save writes a checkpoint to path, truncating any existing file.
func Save(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// Load reads a checkpoint previously written by Save.
func Load(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}

// FromRun captures a Checkpoint from a live State plus its attached
// coverage and profiler observers.
func FromRun(s *cpu.State, cov *trace.Coverage, prof *trace.Profiler) *Checkpoint {
	snap := *s
	// gob skips func-typed struct fields, so the hooks would not reach
	// the wire format either way; they are cleared here so the
	// Checkpoint value itself holds no live observers.
	snap.OnFetch = nil
	snap.OnStep = nil
	ckpt := &Checkpoint{State: snap}
	if cov != nil {
		ckpt.Coverage = cov.Hit
	}
	if prof != nil {
		ckpt.Samples = prof.Samples()
	}
	return ckpt
}

// Restore rebuilds a State, Coverage and Profiler from a Checkpoint.
// The hooks on the returned State are left unset; callers re-attach
// OnFetch/OnStep themselves if they want the resumed run observed the
// same way the checkpointed one was.
func Restore(ckpt *Checkpoint) (*cpu.State, *trace.Coverage, *trace.Profiler) {
	s := ckpt.State
	s.OnFetch = nil
	s.OnStep = nil

	cov := trace.NewCoverage()
	cov.Hit = ckpt.Coverage

	prof := trace.NewProfiler()
	prof.LoadSamples(ckpt.Samples)

	return &s, cov, prof
}
