package asm

// Slots is the per-mnemonic addressing-mode-to-opcode-byte vector; a nil
// field means the mnemonic has no encoding for that mode. The byte values
// match the canonical 6502 opcode map the same way the interpreter's own
// optable.go (internal/cpu) does, so assembling and disassembling the same
// mnemonic/mode pair always round-trips.
type Slots struct {
	Imp, Imm                *uint8
	Zp, Zpx, Zpy             *uint8
	Abs, Abx, Aby            *uint8
	Ind, Inx, Iny            *uint8
}

func b(v uint8) *uint8 { return &v }

var opcodeTable = map[string]Slots{
	"ADC": {Imm: b(0x69), Zp: b(0x65), Zpx: b(0x75), Abs: b(0x6D), Abx: b(0x7D), Aby: b(0x79), Inx: b(0x61), Iny: b(0x71)},
	"AND": {Imm: b(0x29), Zp: b(0x25), Zpx: b(0x35), Abs: b(0x2D), Abx: b(0x3D), Aby: b(0x39), Inx: b(0x21), Iny: b(0x31)},
	"ASL": {Imp: b(0x0A), Zp: b(0x06), Zpx: b(0x16), Abs: b(0x0E), Abx: b(0x1E)},
	"BIT": {Zp: b(0x24), Abs: b(0x2C)},
	"BRK": {Imp: b(0x00)},
	"CLC": {Imp: b(0x18)},
	"CLD": {Imp: b(0xD8)},
	"CLI": {Imp: b(0x58)},
	"CLV": {Imp: b(0xB8)},
	"CMP": {Imm: b(0xC9), Zp: b(0xC5), Zpx: b(0xD5), Abs: b(0xCD), Abx: b(0xDD), Aby: b(0xD9), Inx: b(0xC1), Iny: b(0xD1)},
	"CPX": {Imm: b(0xE0), Zp: b(0xE4), Abs: b(0xEC)},
	"CPY": {Imm: b(0xC0), Zp: b(0xC4), Abs: b(0xCC)},
	"DEC": {Zp: b(0xC6), Zpx: b(0xD6), Abs: b(0xCE), Abx: b(0xDE)},
	"DEX": {Imp: b(0xCA)},
	"DEY": {Imp: b(0x88)},
	"EOR": {Imm: b(0x49), Zp: b(0x45), Zpx: b(0x55), Abs: b(0x4D), Abx: b(0x5D), Aby: b(0x59), Inx: b(0x41), Iny: b(0x51)},
	"INC": {Zp: b(0xE6), Zpx: b(0xF6), Abs: b(0xEE), Abx: b(0xFE)},
	"INX": {Imp: b(0xE8)},
	"INY": {Imp: b(0xC8)},
	"JMP": {Abs: b(0x4C), Ind: b(0x6C)},
	"JSR": {Abs: b(0x20)},
	"LDA": {Imm: b(0xA9), Zp: b(0xA5), Zpx: b(0xB5), Abs: b(0xAD), Abx: b(0xBD), Aby: b(0xB9), Inx: b(0xA1), Iny: b(0xB1)},
	"LDX": {Imm: b(0xA2), Zp: b(0xA6), Zpy: b(0xB6), Abs: b(0xAE), Aby: b(0xBE)},
	"LDY": {Imm: b(0xA0), Zp: b(0xA4), Zpx: b(0xB4), Abs: b(0xAC), Abx: b(0xBC)},
	"LSR": {Imp: b(0x4A), Zp: b(0x46), Zpx: b(0x56), Abs: b(0x4E), Abx: b(0x5E)},
	"NOP": {Imp: b(0xEA)},
	"ORA": {Imm: b(0x09), Zp: b(0x05), Zpx: b(0x15), Abs: b(0x0D), Abx: b(0x1D), Aby: b(0x19), Inx: b(0x01), Iny: b(0x11)},
	"PHA": {Imp: b(0x48)},
	"PHP": {Imp: b(0x08)},
	"PLA": {Imp: b(0x68)},
	"PLP": {Imp: b(0x28)},
	"ROL": {Imp: b(0x2A), Zp: b(0x26), Zpx: b(0x36), Abs: b(0x2E), Abx: b(0x3E)},
	"ROR": {Imp: b(0x6A), Zp: b(0x66), Zpx: b(0x76), Abs: b(0x6E), Abx: b(0x7E)},
	"RTI": {Imp: b(0x40)},
	"RTS": {Imp: b(0x60)},
	"SBC": {Imm: b(0xE9), Zp: b(0xE5), Zpx: b(0xF5), Abs: b(0xED), Abx: b(0xFD), Aby: b(0xF9), Inx: b(0xE1), Iny: b(0xF1)},
	"SEC": {Imp: b(0x38)},
	"SED": {Imp: b(0xF8)},
	"SEI": {Imp: b(0x78)},
	"STA": {Zp: b(0x85), Zpx: b(0x95), Abs: b(0x8D), Abx: b(0x9D), Aby: b(0x99), Inx: b(0x81), Iny: b(0x91)},
	"STX": {Zp: b(0x86), Zpy: b(0x96), Abs: b(0x8E)},
	"STY": {Zp: b(0x84), Zpx: b(0x94), Abs: b(0x8C)},
	"TAX": {Imp: b(0xAA)},
	"TAY": {Imp: b(0xA8)},
	"TSX": {Imp: b(0xBA)},
	"TXA": {Imp: b(0x8A)},
	"TXS": {Imp: b(0x9A)},
	"TYA": {Imp: b(0x98)},

	// Custom extension opcodes, implied mode only.
	"HLT": {Imp: b(0x02)},
	"OUT": {Imp: b(0xF2)},
	"OUY": {Imp: b(0xFA)},
	"IN":  {Imp: b(0xF3)},
	"WAI": {Imp: b(0xF7)},
}

// branchTable holds the eight relative-branch mnemonics, encoded separately
// from the slot vector since a branch's operand is always a one-byte
// displacement rather than an addressing-mode-dependent byte or word.
var branchTable = map[string]uint8{
	"BCC": 0x90, "BCS": 0xB0, "BEQ": 0xF0, "BMI": 0x30,
	"BNE": 0xD0, "BPL": 0x10, "BVC": 0x50, "BVS": 0x70,
}

// slotFor returns the opcode byte for mode from slots, or nil if that
// mnemonic has no encoding in that mode.
func slotFor(slots Slots, mode AddrMode) *uint8 {
	switch mode {
	case AMImplied:
		return slots.Imp
	case AMImmediate:
		return slots.Imm
	case AMZeroPage:
		return slots.Zp
	case AMZeroPageX:
		return slots.Zpx
	case AMZeroPageY:
		return slots.Zpy
	case AMAbsolute:
		return slots.Abs
	case AMAbsoluteX:
		return slots.Abx
	case AMAbsoluteY:
		return slots.Aby
	case AMIndirect:
		return slots.Ind
	case AMIndirectX:
		return slots.Inx
	case AMIndirectY:
		return slots.Iny
	default:
		return nil
	}
}
