package memory

import (
	"testing"

	"github.com/aharris/sixtwo/internal/io"
)

func TestBus_Read(t *testing.T) {
	bus := NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	vec1 := bus.Read(0)
	if vec1 != 0 {
		t.Errorf("Read() = %v, want 0", vec1)
	}

	bus.Write(1, 0xDE)
	vec2 := bus.Read(1)
	if vec2 != 0xDE {
		t.Errorf("Read() = %v, want 0xDE", vec2)
	}

	bus.Write(ProgramAreaEnd, 0x22)
	vec3 := bus.Read(ProgramAreaEnd)
	if vec3 != 0x22 {
		t.Errorf("Read() = %v, want 0x22", vec3)
	}
}

func TestBus_DefinedDistinguishesUnwrittenFromZero(t *testing.T) {
	bus := NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	if bus.Defined(0x1234) {
		t.Fatalf("fresh cell should be undefined")
	}
	bus.Poke(0x1234, 0)
	if !bus.Defined(0x1234) {
		t.Fatalf("poked cell should be defined even when the value is 0")
	}
}

func TestBus_Read16LittleEndian(t *testing.T) {
	bus := NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	bus.Poke16(VectorReset, 0x8000)
	if got := bus.Read16(VectorReset); got != 0x8000 {
		t.Errorf("Read16() = %#04x, want 0x8000", got)
	}
}

func TestBus_WriteFramebufferCellPaintsPixel(t *testing.T) {
	rec := &io.Recorder{}
	bus := NewBus(rec, rec)

	bus.Write(FramebufferStart+41, 0x07) // cell 41 -> x=1, y=1 on a 40-wide grid

	if len(rec.Pixels) != 1 {
		t.Fatalf("expected 1 DrawPixel call, got %d", len(rec.Pixels))
	}
	px := rec.Pixels[0]
	if px.X != 1 || px.Y != 1 || px.Color != 0x07 {
		t.Errorf("DrawPixel(%d,%d,%#02x), want (1,1,0x07)", px.X, px.Y, px.Color)
	}
}

func TestBus_WriteClearScreenCellClearsAndResets(t *testing.T) {
	rec := &io.Recorder{}
	bus := NewBus(rec, rec)

	bus.Write(ClearScreenCell, 1)

	if rec.Cleared != 1 {
		t.Fatalf("expected Clear() to be called once, got %d", rec.Cleared)
	}
	if bus.Read(ClearScreenCell) != 0 {
		t.Errorf("ClearScreenCell should self-reset to 0 after triggering")
	}
}

func TestBus_WriteBeepCellBeepsAndResets(t *testing.T) {
	rec := &io.Recorder{}
	bus := NewBus(rec, rec)

	bus.Write(BeepCell, 1)

	if rec.Beeps != 1 {
		t.Fatalf("expected Beep() to be called once, got %d", rec.Beeps)
	}
	if bus.Read(BeepCell) != 0 {
		t.Errorf("BeepCell should self-reset to 0 after triggering")
	}
}

func TestBus_PokeDoesNotTriggerSideEffects(t *testing.T) {
	rec := &io.Recorder{}
	bus := NewBus(rec, rec)

	bus.Poke(FramebufferStart, 0xFF)
	bus.Poke(BeepCell, 1)

	if len(rec.Pixels) != 0 || rec.Beeps != 0 {
		t.Errorf("Poke must not trigger framebuffer/beep side effects")
	}
}

func TestBus_ClearInputCells(t *testing.T) {
	bus := NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	bus.Poke(KeyArrowUp, 1)
	bus.Poke(MouseLeft, 1)

	bus.ClearInputCells()

	if bus.Read(KeyArrowUp) != 0 || bus.Read(MouseLeft) != 0 {
		t.Errorf("ClearInputCells should zero the keyboard/mouse cells")
	}
}
