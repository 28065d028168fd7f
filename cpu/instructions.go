package cpu

import (
	"github.com/nescore/nes6502/memory"
	"github.com/nescore/nes6502/status"
)

// instrFunc executes one decoded instruction against the given operand
// and returns any cycle count beyond entry.cycles (used only by branches,
// which add 1 when taken and another 1 when the branch crosses a page).
type instrFunc func(c *Chip, bus memory.Bus, op operand) (extraCycles uint64, err error)

// readOperand loads the byte an instruction operates on, whether that is
// the accumulator or a resolved bus address.
func readOperand(c *Chip, bus memory.Bus, op operand) uint8 {
	if op.isAccumulator {
		return c.A
	}
	return bus.Read(op.addr)
}

// writeOperand stores a result back to wherever readOperand found it.
func writeOperand(c *Chip, bus memory.Bus, op operand, v uint8) {
	if op.isAccumulator {
		c.A = v
		return
	}
	bus.Write(op.addr, v)
}

// --- loads / stores -------------------------------------------------

func ldaExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A = readOperand(c, bus, op)
	c.setNZ(c.A)
	return 0, nil
}

func ldxExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.X = readOperand(c, bus, op)
	c.setNZ(c.X)
	return 0, nil
}

func ldyExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.Y = readOperand(c, bus, op)
	c.setNZ(c.Y)
	return 0, nil
}

func staExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	bus.Write(op.addr, c.A)
	return 0, nil
}

func stxExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	bus.Write(op.addr, c.X)
	return 0, nil
}

func styExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	bus.Write(op.addr, c.Y)
	return 0, nil
}

// --- register transfers ----------------------------------------------

func taxExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.X = c.A
	c.setNZ(c.X)
	return 0, nil
}

func tayExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.Y = c.A
	c.setNZ(c.Y)
	return 0, nil
}

func tsxExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.X = c.S
	c.setNZ(c.X)
	return 0, nil
}

func txaExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A = c.X
	c.setNZ(c.A)
	return 0, nil
}

func txsExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.S = c.X
	return 0, nil
}

func tyaExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A = c.Y
	c.setNZ(c.A)
	return 0, nil
}

// --- arithmetic --------------------------------------------------------

// adc implements both ADC and SBC. SBC feeds in the one's complement of
// its operand, which makes the shared carry/overflow math work out for
// subtraction without a separate code path.
func (c *Chip) adc(v uint8) {
	carryIn := uint16(0)
	if c.P.C {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(v) + carryIn
	result := uint8(sum)
	c.P.V = (c.A^result)&(v^result)&0x80 != 0
	c.P.C = sum > 0xFF
	c.A = result
	c.setNZ(result)
}

func adcExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.adc(readOperand(c, bus, op))
	return 0, nil
}

func sbcExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.adc(^readOperand(c, bus, op))
	return 0, nil
}

// --- bitwise -------------------------------------------------------

func andExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A &= readOperand(c, bus, op)
	c.setNZ(c.A)
	return 0, nil
}

func oraExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A |= readOperand(c, bus, op)
	c.setNZ(c.A)
	return 0, nil
}

func eorExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A ^= readOperand(c, bus, op)
	c.setNZ(c.A)
	return 0, nil
}

func bitExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	v := readOperand(c, bus, op)
	c.P.Z = c.A&v == 0
	c.P.N = v&0x80 != 0
	c.P.V = v&0x40 != 0
	return 0, nil
}

// --- compares -------------------------------------------------------

func compare(c *Chip, reg, v uint8) {
	result := reg - v
	c.P.C = reg >= v
	c.P.Z = reg == v
	c.P.N = result&0x80 != 0
}

func cmpExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	compare(c, c.A, readOperand(c, bus, op))
	return 0, nil
}

func cpxExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	compare(c, c.X, readOperand(c, bus, op))
	return 0, nil
}

func cpyExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	compare(c, c.Y, readOperand(c, bus, op))
	return 0, nil
}

// --- shifts / rotates -----------------------------------------------

func aslExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	v := readOperand(c, bus, op)
	c.P.C = v&0x80 != 0
	res := v << 1
	writeOperand(c, bus, op, res)
	c.setNZ(res)
	return 0, nil
}

func lsrExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	v := readOperand(c, bus, op)
	c.P.C = v&0x01 != 0
	res := v >> 1
	writeOperand(c, bus, op, res)
	c.setNZ(res)
	return 0, nil
}

func rolExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	v := readOperand(c, bus, op)
	oldCarry := c.P.C
	c.P.C = v&0x80 != 0
	res := v << 1
	if oldCarry {
		res |= 0x01
	}
	writeOperand(c, bus, op, res)
	c.setNZ(res)
	return 0, nil
}

func rorExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	v := readOperand(c, bus, op)
	oldCarry := c.P.C
	c.P.C = v&0x01 != 0
	res := v >> 1
	if oldCarry {
		res |= 0x80
	}
	writeOperand(c, bus, op, res)
	c.setNZ(res)
	return 0, nil
}

// --- increments / decrements -----------------------------------------

func incExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	res := readOperand(c, bus, op) + 1
	writeOperand(c, bus, op, res)
	c.setNZ(res)
	return 0, nil
}

func decExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	res := readOperand(c, bus, op) - 1
	writeOperand(c, bus, op, res)
	c.setNZ(res)
	return 0, nil
}

func inxExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.X++
	c.setNZ(c.X)
	return 0, nil
}

func inyExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.Y++
	c.setNZ(c.Y)
	return 0, nil
}

func dexExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.X--
	c.setNZ(c.X)
	return 0, nil
}

func deyExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.Y--
	c.setNZ(c.Y)
	return 0, nil
}

// --- stack -------------------------------------------------------

func phaExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.push(bus, c.A)
	return 0, nil
}

func phpExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.push(bus, c.P.PushByte())
	return 0, nil
}

func plaExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.A = c.pop(bus)
	c.setNZ(c.A)
	return 0, nil
}

func plpExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.P.RestoreFrom(status.Unpack(c.pop(bus)))
	return 0, nil
}

// --- flag instructions -----------------------------------------------

func clcExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.C = false; return 0, nil }
func secExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.C = true; return 0, nil }
func cliExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.I = false; return 0, nil }
func seiExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.I = true; return 0, nil }
func cldExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.D = false; return 0, nil }
func sedExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.D = true; return 0, nil }
func clvExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { c.P.V = false; return 0, nil }

func nopExec(c *Chip, bus memory.Bus, op operand) (uint64, error) { return 0, nil }

// --- jumps / calls -----------------------------------------------

func jmpExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.PC = op.addr
	return 0, nil
}

func jsrExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	ret := c.PC + 2 // address of JSR's last operand byte, per the 6502 return convention
	c.push(bus, uint8(ret>>8))
	c.push(bus, uint8(ret&0xFF))
	c.PC = op.addr
	return 0, nil
}

func rtsExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	lo := uint16(c.pop(bus))
	hi := uint16(c.pop(bus))
	c.PC = (hi<<8 | lo) + 1
	return 0, nil
}

// --- software/hardware interrupts -----------------------------------

func brkExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	ret := c.PC + 2 // skip BRK's padding byte
	c.push(bus, uint8(ret>>8))
	c.push(bus, uint8(ret&0xFF))
	c.push(bus, c.P.PushByte())
	c.P.I = true
	lo := uint16(bus.Read(IRQVector))
	hi := uint16(bus.Read(IRQVector + 1))
	c.PC = hi<<8 | lo
	return 0, nil
}

func rtiExec(c *Chip, bus memory.Bus, op operand) (uint64, error) {
	c.P.RestoreFrom(status.Unpack(c.pop(bus)))
	lo := uint16(c.pop(bus))
	hi := uint16(c.pop(bus))
	c.PC = hi<<8 | lo
	return 0, nil
}

// --- branches -------------------------------------------------------

// branch builds an instrFunc for a conditional branch. Branches always
// set PC themselves (taken or not) so the generic Step loop never
// double-advances it; the returned extra cycle count is 1 when taken,
// plus 1 more when the branch target lands in a different page than the
// instruction following the branch.
func branch(cond func(c *Chip) bool) instrFunc {
	return func(c *Chip, bus memory.Bus, op operand) (uint64, error) {
		next := c.PC + 2
		if !cond(c) {
			c.PC = next
			return 0, nil
		}
		extra := uint64(1)
		if memory.PageCrossed(next, op.addr) {
			extra++
		}
		c.PC = op.addr
		return extra, nil
	}
}

var (
	bccExec = branch(func(c *Chip) bool { return !c.P.C })
	bcsExec = branch(func(c *Chip) bool { return c.P.C })
	beqExec = branch(func(c *Chip) bool { return c.P.Z })
	bmiExec = branch(func(c *Chip) bool { return c.P.N })
	bneExec = branch(func(c *Chip) bool { return !c.P.Z })
	bplExec = branch(func(c *Chip) bool { return !c.P.N })
	bvcExec = branch(func(c *Chip) bool { return !c.P.V })
	bvsExec = branch(func(c *Chip) bool { return c.P.V })
)
