package cpu

// newOpcodeTable builds the 256-slot dispatch table: the 151 documented
// 6502 opcodes at their canonical byte values plus the five custom
// extension opcodes, laid out as the familiar 16x16 opcode grid so every
// official slot matches the canonical 6502 map byte-for-byte. Every other
// slot is left nil, which Clock treats as an unknown-opcode abort.
func newOpcodeTable() [256]*Instruction {
	var t [256]*Instruction

	set := func(op uint8, name string, am func(c *CPU) uint8, fn func(c *CPU) uint8, mode AddrMode, cycles uint8) {
		t[op] = &Instruction{Name: name, AM: am, Op: fn, Mode: mode, Cycles: cycles}
	}

	imp := (*CPU).amIMP
	imm := (*CPU).amIMM
	zp0 := (*CPU).amZP0
	zpx := (*CPU).amZPX
	zpy := (*CPU).amZPY
	rel := (*CPU).amREL
	abs := (*CPU).amABS
	abx := (*CPU).amABX
	aby := (*CPU).amABY
	ind := (*CPU).amIND
	izx := (*CPU).amIZX
	izy := (*CPU).amIZY

	set(0x00, "BRK", imp, (*CPU).opBRK, ModeIMP, 7)
	set(0x01, "ORA", izx, (*CPU).opORA, ModeIZX, 6)
	set(0x05, "ORA", zp0, (*CPU).opORA, ModeZP0, 3)
	set(0x06, "ASL", zp0, (*CPU).opASL, ModeZP0, 5)
	set(0x08, "PHP", imp, (*CPU).opPHP, ModeIMP, 3)
	set(0x09, "ORA", imm, (*CPU).opORA, ModeIMM, 2)
	set(0x0A, "ASL", imp, (*CPU).opASL, ModeIMP, 2)
	set(0x0D, "ORA", abs, (*CPU).opORA, ModeABS, 4)
	set(0x0E, "ASL", abs, (*CPU).opASL, ModeABS, 6)

	set(0x10, "BPL", rel, (*CPU).opBPL, ModeREL, 2)
	set(0x11, "ORA", izy, (*CPU).opORA, ModeIZY, 5)
	set(0x15, "ORA", zpx, (*CPU).opORA, ModeZPX, 4)
	set(0x16, "ASL", zpx, (*CPU).opASL, ModeZPX, 6)
	set(0x18, "CLC", imp, (*CPU).opCLC, ModeIMP, 2)
	set(0x19, "ORA", aby, (*CPU).opORA, ModeABY, 4)
	set(0x1D, "ORA", abx, (*CPU).opORA, ModeABX, 4)
	set(0x1E, "ASL", abx, (*CPU).opASL, ModeABX, 7)

	set(0x20, "JSR", abs, (*CPU).opJSR, ModeABS, 6)
	set(0x21, "AND", izx, (*CPU).opAND, ModeIZX, 6)
	set(0x24, "BIT", zp0, (*CPU).opBIT, ModeZP0, 3)
	set(0x25, "AND", zp0, (*CPU).opAND, ModeZP0, 3)
	set(0x26, "ROL", zp0, (*CPU).opROL, ModeZP0, 5)
	set(0x28, "PLP", imp, (*CPU).opPLP, ModeIMP, 4)
	set(0x29, "AND", imm, (*CPU).opAND, ModeIMM, 2)
	set(0x2A, "ROL", imp, (*CPU).opROL, ModeIMP, 2)
	set(0x2C, "BIT", abs, (*CPU).opBIT, ModeABS, 4)
	set(0x2D, "AND", abs, (*CPU).opAND, ModeABS, 4)
	set(0x2E, "ROL", abs, (*CPU).opROL, ModeABS, 6)

	set(0x30, "BMI", rel, (*CPU).opBMI, ModeREL, 2)
	set(0x31, "AND", izy, (*CPU).opAND, ModeIZY, 5)
	set(0x35, "AND", zpx, (*CPU).opAND, ModeZPX, 4)
	set(0x36, "ROL", zpx, (*CPU).opROL, ModeZPX, 6)
	set(0x38, "SEC", imp, (*CPU).opSEC, ModeIMP, 2)
	set(0x39, "AND", aby, (*CPU).opAND, ModeABY, 4)
	set(0x3D, "AND", abx, (*CPU).opAND, ModeABX, 4)
	set(0x3E, "ROL", abx, (*CPU).opROL, ModeABX, 7)

	set(0x40, "RTI", imp, (*CPU).opRTI, ModeIMP, 6)
	set(0x41, "EOR", izx, (*CPU).opEOR, ModeIZX, 6)
	set(0x45, "EOR", zp0, (*CPU).opEOR, ModeZP0, 3)
	set(0x46, "LSR", zp0, (*CPU).opLSR, ModeZP0, 5)
	set(0x48, "PHA", imp, (*CPU).opPHA, ModeIMP, 3)
	set(0x49, "EOR", imm, (*CPU).opEOR, ModeIMM, 2)
	set(0x4A, "LSR", imp, (*CPU).opLSR, ModeIMP, 2)
	set(0x4C, "JMP", abs, (*CPU).opJMP, ModeABS, 3)
	set(0x4D, "EOR", abs, (*CPU).opEOR, ModeABS, 4)
	set(0x4E, "LSR", abs, (*CPU).opLSR, ModeABS, 6)

	set(0x50, "BVC", rel, (*CPU).opBVC, ModeREL, 2)
	set(0x51, "EOR", izy, (*CPU).opEOR, ModeIZY, 5)
	set(0x55, "EOR", zpx, (*CPU).opEOR, ModeZPX, 4)
	set(0x56, "LSR", zpx, (*CPU).opLSR, ModeZPX, 6)
	set(0x58, "CLI", imp, (*CPU).opCLI, ModeIMP, 2)
	set(0x59, "EOR", aby, (*CPU).opEOR, ModeABY, 4)
	set(0x5D, "EOR", abx, (*CPU).opEOR, ModeABX, 4)
	set(0x5E, "LSR", abx, (*CPU).opLSR, ModeABX, 7)

	set(0x60, "RTS", imp, (*CPU).opRTS, ModeIMP, 6)
	set(0x61, "ADC", izx, (*CPU).opADC, ModeIZX, 6)
	set(0x65, "ADC", zp0, (*CPU).opADC, ModeZP0, 3)
	set(0x66, "ROR", zp0, (*CPU).opROR, ModeZP0, 5)
	set(0x68, "PLA", imp, (*CPU).opPLA, ModeIMP, 4)
	set(0x69, "ADC", imm, (*CPU).opADC, ModeIMM, 2)
	set(0x6A, "ROR", imp, (*CPU).opROR, ModeIMP, 2)
	set(0x6C, "JMP", ind, (*CPU).opJMP, ModeIND, 5)
	set(0x6D, "ADC", abs, (*CPU).opADC, ModeABS, 4)
	set(0x6E, "ROR", abs, (*CPU).opROR, ModeABS, 6)

	set(0x70, "BVS", rel, (*CPU).opBVS, ModeREL, 2)
	set(0x71, "ADC", izy, (*CPU).opADC, ModeIZY, 5)
	set(0x75, "ADC", zpx, (*CPU).opADC, ModeZPX, 4)
	set(0x76, "ROR", zpx, (*CPU).opROR, ModeZPX, 6)
	set(0x78, "SEI", imp, (*CPU).opSEI, ModeIMP, 2)
	set(0x79, "ADC", aby, (*CPU).opADC, ModeABY, 4)
	set(0x7D, "ADC", abx, (*CPU).opADC, ModeABX, 4)
	set(0x7E, "ROR", abx, (*CPU).opROR, ModeABX, 7)

	set(0x81, "STA", izx, (*CPU).opSTA, ModeIZX, 6)
	set(0x84, "STY", zp0, (*CPU).opSTY, ModeZP0, 3)
	set(0x85, "STA", zp0, (*CPU).opSTA, ModeZP0, 3)
	set(0x86, "STX", zp0, (*CPU).opSTX, ModeZP0, 3)
	set(0x88, "DEY", imp, (*CPU).opDEY, ModeIMP, 2)
	set(0x8A, "TXA", imp, (*CPU).opTXA, ModeIMP, 2)
	set(0x8C, "STY", abs, (*CPU).opSTY, ModeABS, 4)
	set(0x8D, "STA", abs, (*CPU).opSTA, ModeABS, 4)
	set(0x8E, "STX", abs, (*CPU).opSTX, ModeABS, 4)

	set(0x90, "BCC", rel, (*CPU).opBCC, ModeREL, 2)
	set(0x91, "STA", izy, (*CPU).opSTA, ModeIZY, 6)
	set(0x94, "STY", zpx, (*CPU).opSTY, ModeZPX, 4)
	set(0x95, "STA", zpx, (*CPU).opSTA, ModeZPX, 4)
	set(0x96, "STX", zpy, (*CPU).opSTX, ModeZPY, 4)
	set(0x98, "TYA", imp, (*CPU).opTYA, ModeIMP, 2)
	set(0x99, "STA", aby, (*CPU).opSTA, ModeABY, 5)
	set(0x9A, "TXS", imp, (*CPU).opTXS, ModeIMP, 2)
	set(0x9D, "STA", abx, (*CPU).opSTA, ModeABX, 5)

	set(0xA0, "LDY", imm, (*CPU).opLDY, ModeIMM, 2)
	set(0xA1, "LDA", izx, (*CPU).opLDA, ModeIZX, 6)
	set(0xA2, "LDX", imm, (*CPU).opLDX, ModeIMM, 2)
	set(0xA4, "LDY", zp0, (*CPU).opLDY, ModeZP0, 3)
	set(0xA5, "LDA", zp0, (*CPU).opLDA, ModeZP0, 3)
	set(0xA6, "LDX", zp0, (*CPU).opLDX, ModeZP0, 3)
	set(0xA8, "TAY", imp, (*CPU).opTAY, ModeIMP, 2)
	set(0xA9, "LDA", imm, (*CPU).opLDA, ModeIMM, 2)
	set(0xAA, "TAX", imp, (*CPU).opTAX, ModeIMP, 2)
	set(0xAC, "LDY", abs, (*CPU).opLDY, ModeABS, 4)
	set(0xAD, "LDA", abs, (*CPU).opLDA, ModeABS, 4)
	set(0xAE, "LDX", abs, (*CPU).opLDX, ModeABS, 4)

	set(0xB0, "BCS", rel, (*CPU).opBCS, ModeREL, 2)
	set(0xB1, "LDA", izy, (*CPU).opLDA, ModeIZY, 5)
	set(0xB4, "LDY", zpx, (*CPU).opLDY, ModeZPX, 4)
	set(0xB5, "LDA", zpx, (*CPU).opLDA, ModeZPX, 4)
	set(0xB6, "LDX", zpy, (*CPU).opLDX, ModeZPY, 4)
	set(0xB8, "CLV", imp, (*CPU).opCLV, ModeIMP, 2)
	set(0xB9, "LDA", aby, (*CPU).opLDA, ModeABY, 4)
	set(0xBA, "TSX", imp, (*CPU).opTSX, ModeIMP, 2)
	set(0xBC, "LDY", abx, (*CPU).opLDY, ModeABX, 4)
	set(0xBD, "LDA", abx, (*CPU).opLDA, ModeABX, 4)
	set(0xBE, "LDX", aby, (*CPU).opLDX, ModeABY, 4)

	set(0xC0, "CPY", imm, (*CPU).opCPY, ModeIMM, 2)
	set(0xC1, "CMP", izx, (*CPU).opCMP, ModeIZX, 6)
	set(0xC4, "CPY", zp0, (*CPU).opCPY, ModeZP0, 3)
	set(0xC5, "CMP", zp0, (*CPU).opCMP, ModeZP0, 3)
	set(0xC6, "DEC", zp0, (*CPU).opDEC, ModeZP0, 5)
	set(0xC8, "INY", imp, (*CPU).opINY, ModeIMP, 2)
	set(0xC9, "CMP", imm, (*CPU).opCMP, ModeIMM, 2)
	set(0xCA, "DEX", imp, (*CPU).opDEX, ModeIMP, 2)
	set(0xCC, "CPY", abs, (*CPU).opCPY, ModeABS, 4)
	set(0xCD, "CMP", abs, (*CPU).opCMP, ModeABS, 4)
	set(0xCE, "DEC", abs, (*CPU).opDEC, ModeABS, 6)

	set(0xD0, "BNE", rel, (*CPU).opBNE, ModeREL, 2)
	set(0xD1, "CMP", izy, (*CPU).opCMP, ModeIZY, 5)
	set(0xD5, "CMP", zpx, (*CPU).opCMP, ModeZPX, 4)
	set(0xD6, "DEC", zpx, (*CPU).opDEC, ModeZPX, 6)
	set(0xD8, "CLD", imp, (*CPU).opCLD, ModeIMP, 2)
	set(0xD9, "CMP", aby, (*CPU).opCMP, ModeABY, 4)
	set(0xDD, "CMP", abx, (*CPU).opCMP, ModeABX, 4)
	set(0xDE, "DEC", abx, (*CPU).opDEC, ModeABX, 7)

	set(0xE0, "CPX", imm, (*CPU).opCPX, ModeIMM, 2)
	set(0xE1, "SBC", izx, (*CPU).opSBC, ModeIZX, 6)
	set(0xE4, "CPX", zp0, (*CPU).opCPX, ModeZP0, 3)
	set(0xE5, "SBC", zp0, (*CPU).opSBC, ModeZP0, 3)
	set(0xE6, "INC", zp0, (*CPU).opINC, ModeZP0, 5)
	set(0xE8, "INX", imp, (*CPU).opINX, ModeIMP, 2)
	set(0xE9, "SBC", imm, (*CPU).opSBC, ModeIMM, 2)
	set(0xEA, "NOP", imp, (*CPU).opNOP, ModeIMP, 2)
	set(0xEC, "CPX", abs, (*CPU).opCPX, ModeABS, 4)
	set(0xED, "SBC", abs, (*CPU).opSBC, ModeABS, 4)
	set(0xEE, "INC", abs, (*CPU).opINC, ModeABS, 6)

	set(0xF0, "BEQ", rel, (*CPU).opBEQ, ModeREL, 2)
	set(0xF1, "SBC", izy, (*CPU).opSBC, ModeIZY, 5)
	set(0xF5, "SBC", zpx, (*CPU).opSBC, ModeZPX, 4)
	set(0xF6, "INC", zpx, (*CPU).opINC, ModeZPX, 6)
	set(0xF8, "SED", imp, (*CPU).opSED, ModeIMP, 2)
	set(0xF9, "SBC", aby, (*CPU).opSBC, ModeABY, 4)
	set(0xFD, "SBC", abx, (*CPU).opSBC, ModeABX, 4)
	set(0xFE, "INC", abx, (*CPU).opINC, ModeABX, 7)

	// Custom extension opcodes, placed in byte values a documented 6502
	// never occupies.
	set(0x02, "HLT", imp, (*CPU).opHLT, ModeIMP, 2)
	set(0xF2, "OUT", imp, (*CPU).opOUT, ModeIMP, 2)
	set(0xFA, "OUY", imp, (*CPU).opOUY, ModeIMP, 2)
	set(0xF3, "IN", imp, (*CPU).opIN, ModeIMP, 2)
	set(0xF7, "WAI", imp, (*CPU).opWAI, ModeIMP, 2)

	return t
}

// decodeTable is a package-level copy of the opcode table used for
// stateless decoding (disassembly) where no live CPU exists.
var decodeTable = newOpcodeTable()

// InstructionAt exposes the decoded mnemonic and addressing mode for an
// opcode byte, used by internal/disasm to render machine code without
// needing a live CPU instance.
func InstructionAt(opcode uint8) (name string, mode AddrMode, ok bool) {
	inst := decodeTable[opcode]
	if inst == nil {
		return "", 0, false
	}
	return inst.Name, inst.Mode, true
}
