// Package cpu implements the Ricoh 2A03 — a MOS 6502 core with BCD
// arithmetic disabled in silicon — as used by the Nintendo Entertainment
// System. It decodes the standard 151-opcode legal matrix across
// thirteen addressing modes, executes each instruction as a single
// atomic step (no sub-cycle timing is modeled), and keeps a monotonic
// cycle counter consistent with the historical part.
package cpu

import (
	"fmt"

	"github.com/nescore/nes6502/irq"
	"github.com/nescore/nes6502/memory"
	"github.com/nescore/nes6502/status"
)

// Vector addresses the CPU loads PC from on reset and interrupt entry.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)

	stackBase = uint16(0x0100)
)

// UnimplementedOpcode is returned by Step when the opcode byte at PC has
// no entry in the legal decode table. Per the spec, illegal/undocumented
// opcodes are never silently executed as NOPs or given fictitious
// semantics: the CPU halts and keeps returning this same error on every
// subsequent Step call until the host intervenes.
type UnimplementedOpcode struct {
	Opcode uint8
	PC     uint16
}

// Error implements the error interface.
func (e UnimplementedOpcode) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%.2X at PC 0x%.4X", e.Opcode, e.PC)
}

// Chip is a single 6502 core: registers, status flags, a cycle counter
// and the interrupt lines it samples between instructions. The zero
// value is a CPU with every register at zero; call PowerOn to bring it
// to the documented power-on state before running a ROM.
type Chip struct {
	A  uint8          // Accumulator
	X  uint8          // X index register
	Y  uint8          // Y index register
	S  uint8          // Stack pointer
	PC uint16         // Program counter
	P  status.Register // Status flags

	cycles uint64

	irqSource irq.Sender
	nmiSource irq.Sender
	nmiPrev   bool // edge detection for NMI

	halted    bool
	haltCause error
}

// Config wires the optional interrupt sources a Chip samples between
// instructions. Both may be nil, in which case that line never fires.
type Config struct {
	IRQ irq.Sender
	NMI irq.Sender
}

// New constructs a Chip in its zero-register state. Call PowerOn before
// stepping it to reach the documented power-on register values.
func New(cfg Config) *Chip {
	return &Chip{
		irqSource: cfg.IRQ,
		nmiSource: cfg.NMI,
	}
}

// PowerOn sets the documented power-on register defaults and zeroes the
// APU I/O register range the NES maps at $4000-$400F and $4017.
func (c *Chip) PowerOn(bus memory.Bus) {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = status.Unpack(0x34)
	c.cycles = 0
	c.halted = false
	c.haltCause = nil
	c.nmiPrev = false

	bus.WriteRange(0x4000, 0x400F, 0x00)
	bus.Write(0x4017, 0x00)

	lo := uint16(bus.Read(ResetVector))
	hi := uint16(bus.Read(ResetVector + 1))
	c.PC = hi<<8 | lo
}

// Reset implements the reset-line behavior: the stack pointer acts as if
// PC and P were pushed (three decrements) without anything actually
// being written, interrupts are disabled, APU status is silenced, and PC
// is reloaded from the reset vector. Every other register is left
// untouched.
func (c *Chip) Reset(bus memory.Bus) {
	c.S -= 3
	c.P.I = true
	bus.Write(0x4015, 0x00)

	lo := uint16(bus.Read(ResetVector))
	hi := uint16(bus.Read(ResetVector + 1))
	c.PC = hi<<8 | lo
}

// Cycles returns the number of cycles consumed since the last PowerOn.
func (c *Chip) Cycles() uint64 {
	return c.cycles
}

// Snapshot is a point-in-time, comparable copy of CPU-visible state. It
// exists so tests and debug tooling can diff expected-vs-actual register
// state without reaching into unexported fields.
type Snapshot struct {
	A, X, Y, S uint8
	PC         uint16
	P          uint8
	Cycles     uint64
}

// Snapshot captures the CPU's current externally visible state.
func (c *Chip) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, X: c.X, Y: c.Y, S: c.S,
		PC:     c.PC,
		P:      c.P.Pack(),
		Cycles: c.cycles,
	}
}

// String implements fmt.Stringer with the conventional debug dump; the
// p field is the program counter.
func (c *Chip) String() string {
	return fmt.Sprintf("CPU: a:0x%.2X, s:0x%.2X, p:0x%.2X, x:0x%.2X, y:0x%.2X", c.A, c.S, c.PC, c.X, c.Y)
}

// Step executes exactly one instruction, or services at most one pending
// interrupt, and returns the number of cycles it consumed. If the CPU is
// halted on a prior UnimplementedOpcode it returns that same error again
// without touching any state.
func (c *Chip) Step(bus memory.Bus) (uint64, error) {
	if c.halted {
		return 0, c.haltCause
	}

	nmiEdge := c.nmiSource != nil && c.nmiSource.Raised()
	nmiRising := nmiEdge && !c.nmiPrev
	c.nmiPrev = nmiEdge
	if nmiRising {
		c.enterInterrupt(bus, NMIVector)
		c.cycles += 7
		return 7, nil
	}
	if c.irqSource != nil && c.irqSource.Raised() && !c.P.I {
		c.enterInterrupt(bus, IRQVector)
		c.cycles += 7
		return 7, nil
	}

	opcodePC := c.PC
	opcode := bus.Read(opcodePC)
	entry := decodeTable[opcode]
	if entry.exec == nil {
		c.halted = true
		c.haltCause = UnimplementedOpcode{Opcode: opcode, PC: opcodePC}
		return 0, c.haltCause
	}

	op := resolve(entry.mode, opcodePC, c.X, c.Y, bus)

	extra, err := entry.exec(c, bus, op)
	if err != nil {
		c.halted = true
		c.haltCause = err
		return 0, err
	}

	if !entry.controlFlow {
		c.PC = opcodePC + uint16(entry.bytes)
	}

	total := uint64(entry.cycles) + extra
	if entry.pageCrossPenalty && op.pageCrossed {
		total++
	}
	c.cycles += total
	return total, nil
}

// enterInterrupt performs the seven-cycle hardware IRQ/NMI entry sequence:
// push PC high then low, push P with B forced to 0 and U forced to 1, set
// I, and load PC from the given vector. Unlike BRK this never advances PC
// before pushing it — the interrupt happens strictly between instructions.
func (c *Chip) enterInterrupt(bus memory.Bus, vector uint16) {
	c.push(bus, uint8(c.PC>>8))
	c.push(bus, uint8(c.PC&0xFF))
	c.push(bus, c.P.InterruptPushByte())
	c.P.I = true
	lo := uint16(bus.Read(vector))
	hi := uint16(bus.Read(vector + 1))
	c.PC = hi<<8 | lo
}

// push writes val to the stack page at 0x0100|S and decrements S,
// wrapping modulo 256.
func (c *Chip) push(bus memory.Bus, val uint8) {
	bus.Write(stackBase+uint16(c.S), val)
	c.S--
}

// pop increments S, wrapping modulo 256, and reads the byte now pointed
// to.
func (c *Chip) pop(bus memory.Bus) uint8 {
	c.S++
	return bus.Read(stackBase + uint16(c.S))
}

// setNZ sets the Z and N flags from the result value an instruction just
// produced. Flags always reflect the value the instruction actually
// computed, never re-derived from a register after the fact.
func (c *Chip) setNZ(result uint8) {
	c.P.Z = result == 0
	c.P.N = result&0x80 != 0
}
