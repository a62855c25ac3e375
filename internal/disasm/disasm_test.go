package disasm

import (
	"testing"

	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
)

func TestDisassembleRoundTrip(t *testing.T) {
	bus := memory.NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	// LDA #$05 ; STA $10 ; JMP $0800
	bus.Poke(0x0800, 0xA9)
	bus.Poke(0x0801, 0x05)
	bus.Poke(0x0802, 0x85)
	bus.Poke(0x0803, 0x10)
	bus.Poke(0x0804, 0x4C)
	bus.Poke16(0x0805, 0x0800)

	listing := Disassemble(bus, 0x0800, 0x0806)
	if len(listing.Index) != 3 {
		t.Fatalf("expected 3 decoded instructions, got %d", len(listing.Index))
	}
	if listing.Lines[0x0800] != "$0800: LDA #$05" {
		t.Fatalf("unexpected LDA line: %q", listing.Lines[0x0800])
	}
	if listing.Lines[0x0802] != "$0802: STA $10" {
		t.Fatalf("unexpected STA line: %q", listing.Lines[0x0802])
	}
	if listing.Lines[0x0804] != "$0804: JMP $0800" {
		t.Fatalf("unexpected JMP line: %q", listing.Lines[0x0804])
	}
}

func TestHexDump(t *testing.T) {
	bus := memory.NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	bus.Poke(0x0000, 0xAB)
	bus.Poke(0x0001, 0xCD)
	dump := HexDump(bus, 0x0000, 1, 2)
	if dump != "$0000: AB CD\n" {
		t.Fatalf("unexpected hex dump: %q", dump)
	}
}
