// Package disasm renders machine-code memory back into readable assembly
// text and hex grids, covering the full 151-opcode documented set plus the
// five custom extension opcodes the interpreter implements.
package disasm

import (
	"fmt"
	"strings"

	"github.com/aharris/sixtwo/internal/cpu"
	"github.com/aharris/sixtwo/internal/memory"
)

// Listing is a disassembled memory range: Index holds the instruction
// start addresses in ascending order, Lines maps each start address to its
// rendered text.
type Listing struct {
	Index []uint16
	Lines map[uint16]string
}

// Stringify renders the instruction at addr padded to length columns, used
// by the debug UI to align a mnemonic column against an operand column.
func (l *Listing) Stringify(addr uint16, length int) string {
	line := l.Lines[addr]
	if len(line) >= length {
		return line + " "
	}
	return line + strings.Repeat(" ", length-len(line))
}

func hex2(v uint8) string  { return fmt.Sprintf("%02X", v) }
func hex4(v uint16) string { return fmt.Sprintf("%04X", v) }

// Disassemble walks bus from start to end (inclusive), decoding one
// instruction at a time via cpu.InstructionAt to resolve each opcode
// byte's mnemonic and addressing mode. Bytes that don't correspond to any
// known opcode (HLT/OUT/etc. are known; a raw illegal byte is not) are
// rendered as a single-byte ".DB".
func Disassemble(bus *memory.Bus, start, end uint16) *Listing {
	listing := &Listing{Lines: make(map[uint16]string)}

	addr := uint32(start)
	for addr <= uint32(end) {
		lineAddr := uint16(addr)
		opcode := bus.Read(lineAddr)
		name, mode, ok := cpu.InstructionAt(opcode)
		if !ok {
			listing.Index = append(listing.Index, lineAddr)
			listing.Lines[lineAddr] = fmt.Sprintf("$%s: .DB $%s", hex4(lineAddr), hex2(opcode))
			addr++
			continue
		}

		addr++
		operand, size := formatOperand(bus, mode, uint16(addr))
		addr += uint32(size)

		sb := &strings.Builder{}
		sb.WriteString("$")
		sb.WriteString(hex4(lineAddr))
		sb.WriteString(": ")
		sb.WriteString(name)
		if operand != "" {
			sb.WriteString(" ")
			sb.WriteString(operand)
		}

		listing.Index = append(listing.Index, lineAddr)
		listing.Lines[lineAddr] = sb.String()
	}

	return listing
}

// formatOperand reads the operand bytes (if any) for mode starting at
// addr, returning the rendered operand text and how many bytes it
// consumed.
func formatOperand(bus *memory.Bus, mode cpu.AddrMode, addr uint16) (string, uint16) {
	switch mode {
	case cpu.ModeIMP:
		return "", 0
	case cpu.ModeIMM:
		return "#$" + hex2(bus.Read(addr)), 1
	case cpu.ModeZP0:
		return "$" + hex2(bus.Read(addr)), 1
	case cpu.ModeZPX:
		return "$" + hex2(bus.Read(addr)) + ",X", 1
	case cpu.ModeZPY:
		return "$" + hex2(bus.Read(addr)) + ",Y", 1
	case cpu.ModeREL:
		offset := int8(bus.Read(addr))
		target := uint16(int32(addr) + 1 + int32(offset))
		return "$" + hex4(target), 1
	case cpu.ModeABS:
		return "$" + hex4(bus.Read16(addr)), 2
	case cpu.ModeABX:
		return "$" + hex4(bus.Read16(addr)) + ",X", 2
	case cpu.ModeABY:
		return "$" + hex4(bus.Read16(addr)) + ",Y", 2
	case cpu.ModeIND:
		return "($" + hex4(bus.Read16(addr)) + ")", 2
	case cpu.ModeIZX:
		return "($" + hex2(bus.Read(addr)) + ",X)", 1
	case cpu.ModeIZY:
		return "($" + hex2(bus.Read(addr)) + "),Y", 1
	default:
		return "", 0
	}
}

// HexDump renders numRow rows of numCol bytes each, starting at addr, as
// "$ADDR: XX XX ...".
func HexDump(bus *memory.Bus, addr uint16, numRow, numCol int) string {
	sb := &strings.Builder{}
	cur := addr
	for row := 0; row < numRow; row++ {
		sb.WriteString("$")
		sb.WriteString(hex4(cur))
		sb.WriteString(":")
		for col := 0; col < numCol; col++ {
			sb.WriteString(" ")
			sb.WriteString(hex2(bus.Read(cur)))
			cur++
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
