package asmcheckpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/8085dev/asm85/pkg/asm"
	"github.com/8085dev/asm85/pkg/cpu"
	"github.com/8085dev/asm85/pkg/trace"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	p := asm.Assemble("LOOP:   INR A\n        JMP LOOP\n")
	s := cpu.Reset(p)
	cov := trace.NewCoverage()
	prof := trace.NewProfiler()
	s.OnFetch = cov.OnFetch
	s.OnStep = prof.OnStep

	limit := uint64(5)
	cpu.Run(context.Background(), s, &limit)

	ckpt := FromRun(s, cov, prof)
	path := filepath.Join(t.TempDir(), "run.ckpt")
	require.NoError(t, Save(path, ckpt))

	loaded, err := Load(path)
	require.NoError(t, err)

	rs, rcov, rprof := Restore(loaded)
	require.Equal(t, s.PC, rs.PC)
	require.Equal(t, s.A, rs.A)
	require.Nil(t, rs.OnFetch, "Restore should leave hooks unattached")
	require.Nil(t, rs.OnStep, "Restore should leave hooks unattached")
	require.Equal(t, cov.Hit, rcov.Hit, "restored coverage bitmap should match original")
	require.Len(t, rprof.Samples(), len(prof.Samples()))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.ckpt"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}
