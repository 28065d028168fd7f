package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nescore/nes6502/irq"
	"github.com/nescore/nes6502/memory"
)

// load wires a fresh flat bus with the given bytes placed at addr and
// PowerOn/Reset vectors both pointed at addr, so a test can run straight
// off the top of a program without hand-writing vector bytes each time.
func load(addr uint16, bytes ...uint8) (*Chip, memory.Bus) {
	bus := memory.NewRAM(nil)
	bus.PowerOn()
	for i, b := range bytes {
		bus.Write(addr+uint16(i), b)
	}
	bus.Write(ResetVector, uint8(addr&0xFF))
	bus.Write(ResetVector+1, uint8(addr>>8))

	c := New(Config{})
	c.PowerOn(bus)
	return c, bus
}

func TestPowerOnState(t *testing.T) {
	c, _ := load(0x8000)
	snap := c.Snapshot()
	assert.Equal(t, uint8(0), snap.A)
	assert.Equal(t, uint8(0), snap.X)
	assert.Equal(t, uint8(0), snap.Y)
	assert.Equal(t, uint8(0xFD), snap.S)
	assert.Equal(t, uint8(0x34), snap.P)
	assert.Equal(t, uint16(0x8000), snap.PC)
	assert.Equal(t, uint64(0), snap.Cycles)
}

func TestResetAfterPowerOnDecrementsStackAndSetsI(t *testing.T) {
	c, bus := load(0x8000)
	c.S = 0xFD
	c.P.I = false
	c.Reset(bus)
	assert.Equal(t, uint8(0xFA), c.S, "reset must decrement S by 3 without writing anything")
	assert.True(t, c.P.I)
	assert.Equal(t, uint16(0x8000), c.PC)
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := load(0x8000, 0xA9, 0x00) // LDA #$00
	cycles, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cycles)
	assert.True(t, c.P.Z)
	assert.False(t, c.P.N)
	assert.Equal(t, uint16(0x8002), c.PC)
}

func TestLDANegativeSetsN(t *testing.T) {
	c, bus := load(0x8000, 0xA9, 0x80) // LDA #$80
	_, err := c.Step(bus)
	require.NoError(t, err)
	assert.False(t, c.P.Z)
	assert.True(t, c.P.N)
}

func TestBMIBranchNotTaken(t *testing.T) {
	c, bus := load(0x8000, 0x30, 0x10) // BMI +16
	c.P.N = false
	cycles, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cycles)
	assert.Equal(t, uint16(0x8002), c.PC)
}

func TestBMIBranchTakenSamePage(t *testing.T) {
	c, bus := load(0x8000, 0x30, 0x10) // BMI +16 -> 0x8012, same page as 0x8002
	c.P.N = true
	cycles, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cycles, "taken branch costs base+1")
	assert.Equal(t, uint16(0x8012), c.PC)
}

func TestBMIBranchTakenCrossesPage(t *testing.T) {
	c, bus := load(0x80F0, 0x30, 0x20) // BMI +32 from 0x80F0 -> next=0x80F2, target=0x8112
	c.P.N = true
	cycles, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), cycles, "taken branch to a new page costs base+2")
	assert.Equal(t, uint16(0x8112), c.PC)
}

func TestCMPThreeCases(t *testing.T) {
	cases := []struct {
		name        string
		a, m        uint8
		wantC, wantZ bool
	}{
		{"less", 0x10, 0x20, false, false},
		{"equal", 0x20, 0x20, true, true},
		{"greater", 0x30, 0x20, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, bus := load(0x8000, 0xC9, tc.m) // CMP #$m
			c.A = tc.a
			_, err := c.Step(bus)
			require.NoError(t, err)
			assert.Equal(t, tc.wantC, c.P.C, "carry")
			assert.Equal(t, tc.wantZ, c.P.Z, "zero")
		})
	}
}

func TestBITZeroPage(t *testing.T) {
	c, bus := load(0x8000, 0x24, 0x10) // BIT $10
	bus.Write(0x0010, 0xC0)            // N and V bits of M set
	c.A = 0x0F                         // A & M == 0
	_, err := c.Step(bus)
	require.NoError(t, err)
	assert.True(t, c.P.Z)
	assert.True(t, c.P.N)
	assert.True(t, c.P.V)
}

func TestADCSignedOverflow(t *testing.T) {
	c, bus := load(0x8000, 0x69, 0x50) // ADC #$50
	c.A = 0x50
	c.P.C = false
	_, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xA0), c.A)
	assert.True(t, c.P.V, "0x50+0x50 overflows into the sign bit")
	assert.True(t, c.P.N)
	assert.False(t, c.P.C)
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := load(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.Write(0x02FF, 0x34)
	bus.Write(0x0200, 0x12) // high byte fetched from 0x0200, not 0x0300
	bus.Write(0x0300, 0xFF)
	_, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestJSRThenRTSRoundTrips(t *testing.T) {
	c, bus := load(0x8000, 0x20, 0x00, 0x90, 0xEA) // JSR $9000 ; (return site) NOP
	bus.Write(0x9000, 0x60)                        // RTS
	_, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)

	_, err = c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8003), c.PC, "RTS must resume at the byte after JSR")
}

func TestBRKPushesPCPlus2AndSetsBU(t *testing.T) {
	c, bus := load(0x8000, 0x00, 0x00) // BRK ; padding byte
	bus.Write(IRQVector, 0x00)
	bus.Write(IRQVector+1, 0x90)
	startS := c.S
	_, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.P.I)

	// Push order is PCH, then PCL, then P, so P ends up two slots below
	// where PCH was written.
	retHi := bus.Read(0x0100 | uint16(startS))
	retLo := bus.Read(0x0100 | uint16(startS-1))
	pushed := bus.Read(0x0100 | uint16(startS-2))
	assert.Equal(t, uint8(0x30), pushed&0x30, "BRK must force both B and U on push")
	assert.Equal(t, uint16(0x8002), uint16(retHi)<<8|uint16(retLo))
}

func TestUnimplementedOpcodeHaltsAndLatches(t *testing.T) {
	c, bus := load(0x8000, 0x02) // not a legal opcode
	_, err := c.Step(bus)
	var unimpl UnimplementedOpcode
	require.ErrorAs(t, err, &unimpl)
	assert.Equal(t, uint8(0x02), unimpl.Opcode)

	_, err2 := c.Step(bus)
	assert.Equal(t, err, err2, "a halted CPU must keep returning the same error")
}

func TestNMIEdgeTriggeredOnlyOnRisingEdge(t *testing.T) {
	line := &irq.Line{}
	bus := memory.NewRAM(nil)
	bus.PowerOn()
	bus.Write(ResetVector, 0x00)
	bus.Write(ResetVector+1, 0x80)
	bus.Write(NMIVector, 0x00)
	bus.Write(NMIVector+1, 0x90)
	bus.Write(0x8000, 0xEA) // NOP, in case NMI doesn't fire

	c := New(Config{NMI: line})
	c.PowerOn(bus)

	line.Set(true)
	cycles, err := c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cycles)
	assert.Equal(t, uint16(0x9000), c.PC)

	// Line still held, but no new rising edge: next Step must execute the
	// opcode at the NMI handler's entry point rather than re-firing.
	bus.Write(0x9000, 0xEA)
	cycles, err = c.Step(bus)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cycles)
}

func TestSnapshotStringFormat(t *testing.T) {
	c, _ := load(0x8000)
	c.A, c.X, c.Y, c.S = 0x01, 0x04, 0x05, 0x02
	got := c.String()
	assert.Contains(t, got, "a:0x01")
	assert.Contains(t, got, "x:0x04")
	assert.Contains(t, got, "y:0x05")
	assert.Contains(t, got, "s:0x02")
}

// TestDecodeTableLegalOpcodeCount pins the legal matrix at 151 entries.
func TestDecodeTableLegalOpcodeCount(t *testing.T) {
	count := 0
	for _, e := range decodeTable {
		if e.exec != nil {
			count++
		}
	}
	if count != 151 {
		t.Fatalf("expected 151 legal opcodes, got %d\n%s", count, spew.Sdump(decodeTable))
	}
}
