package cpu

import "github.com/nescore/nes6502/memory"

// Mode identifies one of the 6502's thirteen addressing modes.
type Mode uint8

const (
	Implicit Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (d,X)
	IndirectIndexed // (d),Y
)

// operand is what an addressing-mode resolver hands back to an
// instruction: either an accumulator reference, an effective memory
// address, or nothing at all for an implicit-operand instruction.
type operand struct {
	addr         uint16
	isAccumulator bool
	pageCrossed  bool
}

// resolve computes the operand for an instruction at opcodePC under the
// given addressing mode. It is a pure function of the bus contents and
// the X/Y registers: it never writes to the bus and never mutates CPU
// state, so branch prediction, instruction decoding and cycle counting
// can all inspect the result without side effects.
func resolve(mode Mode, opcodePC uint16, x, y uint8, bus memory.Bus) operand {
	switch mode {
	case Implicit:
		return operand{}

	case Accumulator:
		return operand{isAccumulator: true}

	case Immediate:
		return operand{addr: opcodePC + 1}

	case ZeroPage:
		return operand{addr: uint16(bus.Read(opcodePC + 1))}

	case ZeroPageX:
		zp := bus.Read(opcodePC+1) + x
		return operand{addr: uint16(zp)}

	case ZeroPageY:
		zp := bus.Read(opcodePC+1) + y
		return operand{addr: uint16(zp)}

	case Relative:
		disp := int8(bus.Read(opcodePC + 1))
		base := opcodePC + 2
		target := base + uint16(int16(disp))
		return operand{addr: target, pageCrossed: memory.PageCrossed(base, target)}

	case Absolute:
		addr := readAbsolute(opcodePC+1, bus)
		return operand{addr: addr}

	case AbsoluteX:
		base := readAbsolute(opcodePC+1, bus)
		addr := base + uint16(x)
		return operand{addr: addr, pageCrossed: memory.PageCrossed(base, addr)}

	case AbsoluteY:
		base := readAbsolute(opcodePC+1, bus)
		addr := base + uint16(y)
		return operand{addr: addr, pageCrossed: memory.PageCrossed(base, addr)}

	case Indirect:
		ptr := readAbsolute(opcodePC+1, bus)
		// Faithfully reproduces the indirect-JMP page-wrap bug: if ptr's
		// low byte is 0xFF, the high byte is fetched from the start of
		// the SAME page rather than the next one.
		loAddr := ptr
		hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		lo := uint16(bus.Read(loAddr))
		hi := uint16(bus.Read(hiAddr))
		return operand{addr: hi<<8 | lo}

	case IndexedIndirect:
		zp := bus.Read(opcodePC+1) + x
		lo := uint16(bus.Read(uint16(zp)))
		hi := uint16(bus.Read(uint16(zp + 1)))
		return operand{addr: hi<<8 | lo}

	case IndirectIndexed:
		zp := bus.Read(opcodePC + 1)
		lo := uint16(bus.Read(uint16(zp)))
		hi := uint16(bus.Read(uint16(zp + 1)))
		base := hi<<8 | lo
		addr := base + uint16(y)
		return operand{addr: addr, pageCrossed: memory.PageCrossed(base, addr)}

	default:
		return operand{}
	}
}

// readAbsolute reads a little-endian 16-bit address starting at addr.
func readAbsolute(addr uint16, bus memory.Bus) uint16 {
	lo := uint16(bus.Read(addr))
	hi := uint16(bus.Read(addr + 1))
	return hi<<8 | lo
}

// bytesFor returns the instruction length in bytes for a given mode.
func bytesFor(mode Mode) uint8 {
	switch mode {
	case Implicit, Accumulator:
		return 1
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndexedIndirect, IndirectIndexed:
		return 2
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		return 1
	}
}
