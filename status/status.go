// Package status implements the 6502 processor status register (P): the
// eight condition flags packed into a single byte for PHP/BRK/PLP/RTI and
// unpacked into independent booleans for everyday flag logic in the cpu
// package.
package status

// Bit positions within the packed status byte.
const (
	bitCarry     = 0
	bitZero      = 1
	bitInterrupt = 2
	bitDecimal   = 3
	bitBreak     = 4
	bitUnused    = 5
	bitOverflow  = 6
	bitNegative  = 7
)

// Register holds the eight 6502 status flags as independent booleans.
// B and U have no persistent effect on instruction semantics (the real
// chip has no physical B flip-flop); they exist here purely so that
// Pack/Unpack round-trip every bit of a byte that was read from or is
// about to be pushed to the stack.
type Register struct {
	C bool // Carry
	Z bool // Zero
	I bool // Interrupt disable
	D bool // Decimal mode (tracked, never consulted by ADC/SBC on NES silicon)
	B bool // Break (push-time only, see cpu.Chip push/pull helpers)
	U bool // Unused, conventionally 1
	V bool // Overflow
	N bool // Negative
}

// New returns a Register with every flag clear.
func New() Register {
	return Register{}
}

// Pack converts the register into its packed byte form. It performs no
// masking or forcing of any bit: callers that need PHP/BRK's "force B
// and U to 1" behavior, or a hardware interrupt's "force B to 0", apply
// that on the returned byte themselves.
func (r Register) Pack() uint8 {
	var b uint8
	b |= boolBit(r.C, bitCarry)
	b |= boolBit(r.Z, bitZero)
	b |= boolBit(r.I, bitInterrupt)
	b |= boolBit(r.D, bitDecimal)
	b |= boolBit(r.B, bitBreak)
	b |= boolBit(r.U, bitUnused)
	b |= boolBit(r.V, bitOverflow)
	b |= boolBit(r.N, bitNegative)
	return b
}

// Unpack decodes a packed status byte into a Register. Like Pack, it is a
// plain bit-for-bit conversion; PLP/RTI's "ignore B and U" behavior is
// implemented by the caller selectively copying fields out of the result.
func Unpack(b uint8) Register {
	return Register{
		C: bitSet(b, bitCarry),
		Z: bitSet(b, bitZero),
		I: bitSet(b, bitInterrupt),
		D: bitSet(b, bitDecimal),
		B: bitSet(b, bitBreak),
		U: bitSet(b, bitUnused),
		V: bitSet(b, bitOverflow),
		N: bitSet(b, bitNegative),
	}
}

// RestoreFrom copies C, Z, I, D, V and N from src into r, leaving r's B
// and U untouched. This is the PLP/RTI restore rule.
func (r *Register) RestoreFrom(src Register) {
	r.C = src.C
	r.Z = src.Z
	r.I = src.I
	r.D = src.D
	r.V = src.V
	r.N = src.N
}

// PushByte returns the byte PHP/BRK push: the live flags with B and U
// both forced to 1.
func (r Register) PushByte() uint8 {
	return r.Pack() | (1 << bitBreak) | (1 << bitUnused)
}

// InterruptPushByte returns the byte a hardware IRQ/NMI entry pushes: the
// live flags with B forced to 0 and U forced to 1.
func (r Register) InterruptPushByte() uint8 {
	return (r.Pack() &^ (1 << bitBreak)) | (1 << bitUnused)
}

func boolBit(v bool, bit uint) uint8 {
	if v {
		return 1 << bit
	}
	return 0
}

func bitSet(b uint8, bit uint) bool {
	return (b>>bit)&1 == 1
}
