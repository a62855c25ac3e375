package asm

import (
	"testing"

	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
)

type testSink struct {
	logs   []string
	errors []string
}

func (s *testSink) Log(text string)      { s.logs = append(s.logs, text) }
func (s *testSink) LogError(text string) { s.errors = append(s.errors, text) }

func newTestAssembler() (*Assembler, *memory.Bus, *io.Recorder, *testSink) {
	rec := &io.Recorder{}
	sink := &testSink{}
	bus := memory.NewBus(rec, rec)
	return New(bus, sink, rec), bus, rec, sink
}

func TestAssembleSimpleAddition(t *testing.T) {
	a, bus, _, _ := newTestAssembler()
	src := `
		LDA #$05
		ADC #$03
		STA $10
		BRK
	`
	if err := a.Assemble(src); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if bus.Read(memory.DefaultOrigin) != 0xA9 {
		t.Fatalf("expected LDA immediate opcode at origin, got %#02x", bus.Read(memory.DefaultOrigin))
	}
	// LDA #$05; ADC #$03; STA $10; BRK -- verify STA's zero-page operand.
	// LDA(2) + ADC(2) = 4 bytes before STA.
	sta := uint16(memory.DefaultOrigin + 4)
	if bus.Read(sta) != 0x85 {
		t.Fatalf("expected STA zero-page opcode, got %#02x", bus.Read(sta))
	}
	if bus.Read(sta+1) != 0x10 {
		t.Fatalf("expected STA operand 0x10, got %#02x", bus.Read(sta+1))
	}
}

func TestAssembleForwardLabelReference(t *testing.T) {
	a, bus, _, _ := newTestAssembler()
	src := `
		JMP START
		NOP
		START:
		LDA #$01
	`
	if err := a.Assemble(src); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	target := bus.Read16(memory.DefaultOrigin + 1)
	start, ok := a.Labels()["START"]
	if !ok {
		t.Fatalf("label START not recorded")
	}
	if target != start {
		t.Fatalf("JMP operand %#04x does not match label START (%#04x)", target, start)
	}
}

func TestAssembleUnresolvedLabelFails(t *testing.T) {
	a, _, rec, _ := newTestAssembler()
	src := `JMP NOWHERE`
	err := a.Assemble(src)
	if err == nil {
		t.Fatalf("expected assemble error for unresolved label")
	}
	ae, ok := err.(*AssembleError)
	if !ok {
		t.Fatalf("expected *AssembleError, got %T", err)
	}
	if ae.Code != ErrLabelNotFound {
		t.Fatalf("expected ErrLabelNotFound, got %d", ae.Code)
	}
	if rec.Beeps == 0 {
		t.Fatalf("expected a beep on failed assemble")
	}
}

func TestAssembleBranchOutOfRange(t *testing.T) {
	a, _, _, _ := newTestAssembler()
	var src string
	src += "BNE FAR\n"
	for i := 0; i < 200; i++ {
		src += "NOP\n"
	}
	src += "FAR:\nNOP\n"
	err := a.Assemble(src)
	if err == nil {
		t.Fatalf("expected branch-out-of-range error")
	}
	ae := err.(*AssembleError)
	if ae.Code != ErrBranchOutOfRange {
		t.Fatalf("expected ErrBranchOutOfRange, got %d", ae.Code)
	}
}

func TestAssembleDataDirectives(t *testing.T) {
	a, bus, _, _ := newTestAssembler()
	src := `
		ORG $0800
		MSG: .DB "HI", 0
		PTR: .DW MSG
	`
	if err := a.Assemble(src); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if bus.Read(0x0800) != 'H' || bus.Read(0x0801) != 'I' || bus.Read(0x0802) != 0 {
		t.Fatalf("unexpected .DB bytes: %02x %02x %02x", bus.Read(0x0800), bus.Read(0x0801), bus.Read(0x0802))
	}
	ptrAddr := uint16(0x0803)
	if bus.Read16(ptrAddr) != 0x0800 {
		t.Fatalf("expected .DW MSG to resolve to 0x0800, got %#04x", bus.Read16(ptrAddr))
	}
}

func TestAssembleConstantsAndHighLowByte(t *testing.T) {
	a, bus, _, _ := newTestAssembler()
	src := `
		ADDR = $1234
		LDA #<ADDR
		LDA #>ADDR
	`
	if err := a.Assemble(src); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if bus.Read(memory.DefaultOrigin) != 0xA9 {
		t.Fatalf("expected LDA immediate for <ADDR")
	}
	if bus.Read(memory.DefaultOrigin+1) != 0x34 {
		t.Fatalf("expected low byte 0x34, got %#02x", bus.Read(memory.DefaultOrigin+1))
	}
	if bus.Read(memory.DefaultOrigin+3) != 0x12 {
		t.Fatalf("expected high byte 0x12, got %#02x", bus.Read(memory.DefaultOrigin+3))
	}
}

func TestAssembleAccumulatorMode(t *testing.T) {
	a, bus, _, _ := newTestAssembler()
	if err := a.Assemble("ASL A"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if bus.Read(memory.DefaultOrigin) != 0x0A {
		t.Fatalf("expected accumulator-mode ASL opcode 0x0A, got %#02x", bus.Read(memory.DefaultOrigin))
	}
}

func TestAssembleDuplicateLabelFails(t *testing.T) {
	a, _, _, _ := newTestAssembler()
	src := `
		HERE: NOP
		HERE: NOP
	`
	err := a.Assemble(src)
	if err == nil {
		t.Fatalf("expected duplicate-label error")
	}
	if err.(*AssembleError).Code != ErrLabelAlreadyDefined {
		t.Fatalf("expected ErrLabelAlreadyDefined, got %v", err)
	}
}
