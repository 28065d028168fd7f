package cpu

// decodeEntry is one row of the 256-entry opcode dispatch table. Entries
// for opcode bytes with no legal 6502 instruction are left at their zero
// value (exec == nil), which Step recognizes as UnimplementedOpcode.
type decodeEntry struct {
	mnemonic         string
	mode             Mode
	bytes            uint8
	cycles           uint8
	pageCrossPenalty bool // add 1 cycle when the addressing mode crossed a page
	controlFlow      bool // instruction sets PC itself; Step must not also advance it
	exec             instrFunc
}

// op is a constructor shorthand used to populate decodeTable below. bytes
// is derived from mode so every entry only has to state its mnemonic,
// mode and base cycle count.
func op(mnemonic string, mode Mode, cycles uint8, pageCrossPenalty, controlFlow bool, fn instrFunc) decodeEntry {
	return decodeEntry{
		mnemonic:         mnemonic,
		mode:             mode,
		bytes:            bytesFor(mode),
		cycles:           cycles,
		pageCrossPenalty: pageCrossPenalty,
		controlFlow:      controlFlow,
		exec:             fn,
	}
}

// decodeTable is indexed by opcode byte. It holds every one of the 151
// legal, documented 6502 opcodes; undocumented/illegal bytes are left as
// the zero decodeEntry.
var decodeTable = [256]decodeEntry{
	// ADC
	0x69: op("ADC", Immediate, 2, false, false, adcExec),
	0x65: op("ADC", ZeroPage, 3, false, false, adcExec),
	0x75: op("ADC", ZeroPageX, 4, false, false, adcExec),
	0x6D: op("ADC", Absolute, 4, false, false, adcExec),
	0x7D: op("ADC", AbsoluteX, 4, true, false, adcExec),
	0x79: op("ADC", AbsoluteY, 4, true, false, adcExec),
	0x61: op("ADC", IndexedIndirect, 6, false, false, adcExec),
	0x71: op("ADC", IndirectIndexed, 5, true, false, adcExec),

	// AND
	0x29: op("AND", Immediate, 2, false, false, andExec),
	0x25: op("AND", ZeroPage, 3, false, false, andExec),
	0x35: op("AND", ZeroPageX, 4, false, false, andExec),
	0x2D: op("AND", Absolute, 4, false, false, andExec),
	0x3D: op("AND", AbsoluteX, 4, true, false, andExec),
	0x39: op("AND", AbsoluteY, 4, true, false, andExec),
	0x21: op("AND", IndexedIndirect, 6, false, false, andExec),
	0x31: op("AND", IndirectIndexed, 5, true, false, andExec),

	// ASL
	0x0A: op("ASL", Accumulator, 2, false, false, aslExec),
	0x06: op("ASL", ZeroPage, 5, false, false, aslExec),
	0x16: op("ASL", ZeroPageX, 6, false, false, aslExec),
	0x0E: op("ASL", Absolute, 6, false, false, aslExec),
	0x1E: op("ASL", AbsoluteX, 7, false, false, aslExec),

	// branches
	0x90: op("BCC", Relative, 2, false, true, bccExec),
	0xB0: op("BCS", Relative, 2, false, true, bcsExec),
	0xF0: op("BEQ", Relative, 2, false, true, beqExec),
	0x30: op("BMI", Relative, 2, false, true, bmiExec),
	0xD0: op("BNE", Relative, 2, false, true, bneExec),
	0x10: op("BPL", Relative, 2, false, true, bplExec),
	0x50: op("BVC", Relative, 2, false, true, bvcExec),
	0x70: op("BVS", Relative, 2, false, true, bvsExec),

	// BIT
	0x24: op("BIT", ZeroPage, 3, false, false, bitExec),
	0x2C: op("BIT", Absolute, 4, false, false, bitExec),

	// BRK
	0x00: op("BRK", Implicit, 7, false, true, brkExec),

	// flag clears
	0x18: op("CLC", Implicit, 2, false, false, clcExec),
	0xD8: op("CLD", Implicit, 2, false, false, cldExec),
	0x58: op("CLI", Implicit, 2, false, false, cliExec),
	0xB8: op("CLV", Implicit, 2, false, false, clvExec),

	// CMP
	0xC9: op("CMP", Immediate, 2, false, false, cmpExec),
	0xC5: op("CMP", ZeroPage, 3, false, false, cmpExec),
	0xD5: op("CMP", ZeroPageX, 4, false, false, cmpExec),
	0xCD: op("CMP", Absolute, 4, false, false, cmpExec),
	0xDD: op("CMP", AbsoluteX, 4, true, false, cmpExec),
	0xD9: op("CMP", AbsoluteY, 4, true, false, cmpExec),
	0xC1: op("CMP", IndexedIndirect, 6, false, false, cmpExec),
	0xD1: op("CMP", IndirectIndexed, 5, true, false, cmpExec),

	// CPX / CPY
	0xE0: op("CPX", Immediate, 2, false, false, cpxExec),
	0xE4: op("CPX", ZeroPage, 3, false, false, cpxExec),
	0xEC: op("CPX", Absolute, 4, false, false, cpxExec),
	0xC0: op("CPY", Immediate, 2, false, false, cpyExec),
	0xC4: op("CPY", ZeroPage, 3, false, false, cpyExec),
	0xCC: op("CPY", Absolute, 4, false, false, cpyExec),

	// DEC / DEX / DEY
	0xC6: op("DEC", ZeroPage, 5, false, false, decExec),
	0xD6: op("DEC", ZeroPageX, 6, false, false, decExec),
	0xCE: op("DEC", Absolute, 6, false, false, decExec),
	0xDE: op("DEC", AbsoluteX, 7, false, false, decExec),
	0xCA: op("DEX", Implicit, 2, false, false, dexExec),
	0x88: op("DEY", Implicit, 2, false, false, deyExec),

	// EOR
	0x49: op("EOR", Immediate, 2, false, false, eorExec),
	0x45: op("EOR", ZeroPage, 3, false, false, eorExec),
	0x55: op("EOR", ZeroPageX, 4, false, false, eorExec),
	0x4D: op("EOR", Absolute, 4, false, false, eorExec),
	0x5D: op("EOR", AbsoluteX, 4, true, false, eorExec),
	0x59: op("EOR", AbsoluteY, 4, true, false, eorExec),
	0x41: op("EOR", IndexedIndirect, 6, false, false, eorExec),
	0x51: op("EOR", IndirectIndexed, 5, true, false, eorExec),

	// INC / INX / INY
	0xE6: op("INC", ZeroPage, 5, false, false, incExec),
	0xF6: op("INC", ZeroPageX, 6, false, false, incExec),
	0xEE: op("INC", Absolute, 6, false, false, incExec),
	0xFE: op("INC", AbsoluteX, 7, false, false, incExec),
	0xE8: op("INX", Implicit, 2, false, false, inxExec),
	0xC8: op("INY", Implicit, 2, false, false, inyExec),

	// JMP / JSR
	0x4C: op("JMP", Absolute, 3, false, true, jmpExec),
	0x6C: op("JMP", Indirect, 5, false, true, jmpExec),
	0x20: op("JSR", Absolute, 6, false, true, jsrExec),

	// LDA / LDX / LDY
	0xA9: op("LDA", Immediate, 2, false, false, ldaExec),
	0xA5: op("LDA", ZeroPage, 3, false, false, ldaExec),
	0xB5: op("LDA", ZeroPageX, 4, false, false, ldaExec),
	0xAD: op("LDA", Absolute, 4, false, false, ldaExec),
	0xBD: op("LDA", AbsoluteX, 4, true, false, ldaExec),
	0xB9: op("LDA", AbsoluteY, 4, true, false, ldaExec),
	0xA1: op("LDA", IndexedIndirect, 6, false, false, ldaExec),
	0xB1: op("LDA", IndirectIndexed, 5, true, false, ldaExec),

	0xA2: op("LDX", Immediate, 2, false, false, ldxExec),
	0xA6: op("LDX", ZeroPage, 3, false, false, ldxExec),
	0xB6: op("LDX", ZeroPageY, 4, false, false, ldxExec),
	0xAE: op("LDX", Absolute, 4, false, false, ldxExec),
	0xBE: op("LDX", AbsoluteY, 4, true, false, ldxExec),

	0xA0: op("LDY", Immediate, 2, false, false, ldyExec),
	0xA4: op("LDY", ZeroPage, 3, false, false, ldyExec),
	0xB4: op("LDY", ZeroPageX, 4, false, false, ldyExec),
	0xAC: op("LDY", Absolute, 4, false, false, ldyExec),
	0xBC: op("LDY", AbsoluteX, 4, true, false, ldyExec),

	// LSR
	0x4A: op("LSR", Accumulator, 2, false, false, lsrExec),
	0x46: op("LSR", ZeroPage, 5, false, false, lsrExec),
	0x56: op("LSR", ZeroPageX, 6, false, false, lsrExec),
	0x4E: op("LSR", Absolute, 6, false, false, lsrExec),
	0x5E: op("LSR", AbsoluteX, 7, false, false, lsrExec),

	// NOP
	0xEA: op("NOP", Implicit, 2, false, false, nopExec),

	// ORA
	0x09: op("ORA", Immediate, 2, false, false, oraExec),
	0x05: op("ORA", ZeroPage, 3, false, false, oraExec),
	0x15: op("ORA", ZeroPageX, 4, false, false, oraExec),
	0x0D: op("ORA", Absolute, 4, false, false, oraExec),
	0x1D: op("ORA", AbsoluteX, 4, true, false, oraExec),
	0x19: op("ORA", AbsoluteY, 4, true, false, oraExec),
	0x01: op("ORA", IndexedIndirect, 6, false, false, oraExec),
	0x11: op("ORA", IndirectIndexed, 5, true, false, oraExec),

	// stack
	0x48: op("PHA", Implicit, 3, false, false, phaExec),
	0x08: op("PHP", Implicit, 3, false, false, phpExec),
	0x68: op("PLA", Implicit, 4, false, false, plaExec),
	0x28: op("PLP", Implicit, 4, false, false, plpExec),

	// ROL / ROR
	0x2A: op("ROL", Accumulator, 2, false, false, rolExec),
	0x26: op("ROL", ZeroPage, 5, false, false, rolExec),
	0x36: op("ROL", ZeroPageX, 6, false, false, rolExec),
	0x2E: op("ROL", Absolute, 6, false, false, rolExec),
	0x3E: op("ROL", AbsoluteX, 7, false, false, rolExec),

	0x6A: op("ROR", Accumulator, 2, false, false, rorExec),
	0x66: op("ROR", ZeroPage, 5, false, false, rorExec),
	0x76: op("ROR", ZeroPageX, 6, false, false, rorExec),
	0x6E: op("ROR", Absolute, 6, false, false, rorExec),
	0x7E: op("ROR", AbsoluteX, 7, false, false, rorExec),

	// RTI / RTS
	0x40: op("RTI", Implicit, 6, false, true, rtiExec),
	0x60: op("RTS", Implicit, 6, false, true, rtsExec),

	// SBC
	0xE9: op("SBC", Immediate, 2, false, false, sbcExec),
	0xE5: op("SBC", ZeroPage, 3, false, false, sbcExec),
	0xF5: op("SBC", ZeroPageX, 4, false, false, sbcExec),
	0xED: op("SBC", Absolute, 4, false, false, sbcExec),
	0xFD: op("SBC", AbsoluteX, 4, true, false, sbcExec),
	0xF9: op("SBC", AbsoluteY, 4, true, false, sbcExec),
	0xE1: op("SBC", IndexedIndirect, 6, false, false, sbcExec),
	0xF1: op("SBC", IndirectIndexed, 5, true, false, sbcExec),

	// flag sets
	0x38: op("SEC", Implicit, 2, false, false, secExec),
	0xF8: op("SED", Implicit, 2, false, false, sedExec),
	0x78: op("SEI", Implicit, 2, false, false, seiExec),

	// STA / STX / STY
	0x85: op("STA", ZeroPage, 3, false, false, staExec),
	0x95: op("STA", ZeroPageX, 4, false, false, staExec),
	0x8D: op("STA", Absolute, 4, false, false, staExec),
	0x9D: op("STA", AbsoluteX, 5, false, false, staExec),
	0x99: op("STA", AbsoluteY, 5, false, false, staExec),
	0x81: op("STA", IndexedIndirect, 6, false, false, staExec),
	0x91: op("STA", IndirectIndexed, 6, false, false, staExec),

	0x86: op("STX", ZeroPage, 3, false, false, stxExec),
	0x96: op("STX", ZeroPageY, 4, false, false, stxExec),
	0x8E: op("STX", Absolute, 4, false, false, stxExec),

	0x84: op("STY", ZeroPage, 3, false, false, styExec),
	0x94: op("STY", ZeroPageX, 4, false, false, styExec),
	0x8C: op("STY", Absolute, 4, false, false, styExec),

	// register transfers
	0xAA: op("TAX", Implicit, 2, false, false, taxExec),
	0xA8: op("TAY", Implicit, 2, false, false, tayExec),
	0xBA: op("TSX", Implicit, 2, false, false, tsxExec),
	0x8A: op("TXA", Implicit, 2, false, false, txaExec),
	0x9A: op("TXS", Implicit, 2, false, false, txsExec),
	0x98: op("TYA", Implicit, 2, false, false, tyaExec),
}
