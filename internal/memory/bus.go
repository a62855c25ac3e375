// Package memory implements the 64 KiB memory-mapped bus: a flat array of
// cells that are either undefined or a resolved byte, with write-side
// effects dispatched to collaborators for the framebuffer, clear-screen,
// and beep regions.
package memory

import "github.com/aharris/sixtwo/internal/io"

// Address ranges for the machine's fixed memory map.
const (
	ZeroPageStart    = 0x0000
	ZeroPageEnd      = 0x00FF
	RandomByte       = 0x00FE
	StackStart       = 0x0100
	StackEnd         = 0x01FF
	FramebufferStart = 0x0200
	FramebufferEnd   = 0x06AF
	ClearScreenCell  = 0x06B0
	BeepCell         = 0x06B1
	KeyArrowUp       = 0x06E0
	KeyArrowDown     = 0x06E1
	KeyArrowLeft     = 0x06E2
	KeyArrowRight    = 0x06E3
	KeyEnter         = 0x06E4
	RawKeyCode       = 0x06E0
	MouseLeft        = 0x06F0
	MouseRight       = 0x06F1
	MouseMiddle      = 0x06F2
	ReservedStart    = 0x06F3
	ReservedEnd      = 0x06FF
	GeneralRAMStart  = 0x0700
	GeneralRAMEnd    = 0x7FFF
	ProgramAreaStart = 0x8000
	ProgramAreaEnd   = 0xFFFF
	DefaultOrigin    = 0x0800
	DefaultProgram   = 0x8000
	VectorNMI        = 0xFFFA
	VectorReset      = 0xFFFC
	VectorBRK        = 0xFFFE

	framebufferWidth  = 40
	framebufferHeight = 30
)

// Bus is the sole owner of the machine's 64 KiB address space.
type Bus struct {
	data    [65536]byte
	written [65536]bool

	fb     io.Framebuffer
	beeper io.Beeper
}

// NewBus creates a Bus with the given collaborators. Either may be nil, in
// which case writes to their mapped regions are simply stored without a
// side effect.
func NewBus(fb io.Framebuffer, beeper io.Beeper) *Bus {
	return &Bus{fb: fb, beeper: beeper}
}

// Read returns the byte at addr regardless of whether it was ever written;
// reading an undefined cell returns 0 (callers that must distinguish
// undefined-from-zero use Defined).
func (b *Bus) Read(addr uint16) byte {
	return b.data[addr]
}

// Read16 reads a little-endian 16-bit value at addr, addr+1.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// Defined reports whether addr has ever been written, distinguishing an
// unresolved cell from one that legitimately holds zero.
func (b *Bus) Defined(addr uint16) bool {
	return b.written[addr]
}

// Poke stores a byte without triggering any collaborator side effect. The
// assembler uses this exclusively: code generation must not beep or draw
// pixels at build time.
func (b *Bus) Poke(addr uint16, v byte) {
	b.data[addr] = v
	b.written[addr] = true
}

// Poke16 stores a little-endian 16-bit value with Poke.
func (b *Bus) Poke16(addr uint16, v uint16) {
	b.Poke(addr, byte(v))
	b.Poke(addr+1, byte(v>>8))
}

// Write stores a byte as a runtime CPU write, dispatching to whichever
// collaborator the address range maps to.
func (b *Bus) Write(addr uint16, v byte) {
	b.Poke(addr, v)
	switch {
	case addr >= FramebufferStart && addr <= FramebufferEnd:
		b.paintPixel(addr, v)
	case addr == ClearScreenCell:
		if v != 0 {
			if b.fb != nil {
				b.fb.Clear()
			}
			b.data[addr] = 0
		}
	case addr == BeepCell:
		if v != 0 {
			if b.beeper != nil {
				b.beeper.Beep()
			}
			b.data[addr] = 0
		}
	}
}

func (b *Bus) paintPixel(addr uint16, v byte) {
	if b.fb == nil {
		return
	}
	cell := addr - FramebufferStart
	x := int(cell) % framebufferWidth
	y := int(cell) / framebufferWidth
	b.fb.DrawPixel(x, y, v)
}

// ClearInputCells zeroes the keyboard and mouse mapped cells, part of the
// CPU's reset sequence.
func (b *Bus) ClearInputCells() {
	for addr := uint16(KeyArrowUp); addr <= KeyEnter; addr++ {
		b.Poke(addr, 0)
	}
	for addr := uint16(MouseLeft); addr <= MouseMiddle; addr++ {
		b.Poke(addr, 0)
	}
}

// RefreshRandom writes a fresh random byte to the random-number register.
// CPU.Clock calls this once at the start of every step, so a running
// program can read $00FE as a source of randomness.
func (b *Bus) RefreshRandom(v byte) {
	b.Poke(RandomByte, v)
}

// LoadProgram pokes a contiguous block of bytes starting at addr, used to
// load assembled output or test fixtures without running through Write's
// side effects.
func (b *Bus) LoadProgram(addr uint16, bytes []byte) {
	for i, v := range bytes {
		b.Poke(addr+uint16(i), v)
	}
}
