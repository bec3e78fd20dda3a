package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParityTable(t *testing.T) {
	require.True(t, ParityTable[0x00], "0x00 has even parity (zero bits set)")
	require.False(t, ParityTable[0x01], "0x01 has odd parity")
	require.True(t, ParityTable[0xFF], "0xFF has even parity (eight bits set)")
	require.True(t, ParityTable[0x03], "0x03 has even parity (two bits set)")
}

func TestSetSZP(t *testing.T) {
	s := &State{}
	setSZP(s, 0x00)
	require.True(t, s.Z, "0x00 should set Z")
	require.False(t, s.S, "0x00 should clear S")

	setSZP(s, 0x80)
	require.True(t, s.S, "0x80 should set S")
	require.False(t, s.Z, "0x80 should clear Z")
}

func TestPackUnpackPSW(t *testing.T) {
	s := &State{S: true, Z: false, AC: true, P: true, CY: true}
	psw := s.PackPSW()

	// layout: S Z 0 AC 0 P 1 CY
	want := uint8(0x80 | 0x10 | 0x04 | 0x02 | 0x01)
	require.Equal(t, want, psw)

	s2 := &State{}
	s2.UnpackPSW(psw)
	require.True(t, s2.S)
	require.False(t, s2.Z)
	require.True(t, s2.AC)
	require.True(t, s2.P)
	require.True(t, s2.CY)
}

func TestPackPSWBit1AlwaysSet(t *testing.T) {
	s := &State{}
	psw := s.PackPSW()
	require.NotZero(t, psw&0x02, "PSW bit 1 must always read as 1 on the 8085")
}
