package machine

import (
	"testing"

	"github.com/aharris/sixtwo/internal/asm"
	"github.com/aharris/sixtwo/internal/cpu"
	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
)

type testSink struct {
	errors []string
}

func (s *testSink) Log(text string)      {}
func (s *testSink) LogError(text string) { s.errors = append(s.errors, text) }

func newTestMachine() (*Machine, *io.Recorder, *io.BufferOutput, *testSink) {
	rec := &io.Recorder{}
	out := &io.BufferOutput{}
	sink := &testSink{}
	m := New(rec, rec, sink, out, &io.QueueInput{})
	return m, rec, out, sink
}

// Scenario 1: LDA #$05 ADC #$03 STA $10 BRK, reset vector = 0x8000.
func TestScenarioAddition(t *testing.T) {
	m, _, _, _ := newTestMachine()
	src := `
		ORG $8000
		LDA #$05
		ADC #$03
		STA $10
		BRK
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Bus.Poke16(memory.VectorReset, 0x8000)
	m.Boot()
	m.RunToHalt(1000)

	if m.Bus.Read(0x10) != 8 {
		t.Fatalf("memory[0x10] = %d, want 8", m.Bus.Read(0x10))
	}
	if m.CPU.A != 8 {
		t.Fatalf("A = %d, want 8", m.CPU.A)
	}
	if m.CPU.GetFlag(cpu.FlagZero) != 0 {
		t.Fatalf("Z should be clear")
	}
	if m.CPU.GetFlag(cpu.FlagNegative) != 0 {
		t.Fatalf("N should be clear")
	}
	if m.CPU.GetFlag(cpu.FlagCarry) != 0 {
		t.Fatalf("C should be clear")
	}
}

// Scenario 2: LDX #$00 LOOP: INX CPX #$05 BNE LOOP BRK.
func TestScenarioLoop(t *testing.T) {
	m, _, _, _ := newTestMachine()
	src := `
		ORG $8000
		LDX #$00
		LOOP: INX
		CPX #$05
		BNE LOOP
		BRK
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Bus.Poke16(memory.VectorReset, 0x8000)
	m.Boot()
	m.RunToHalt(1000)

	if m.CPU.X != 5 {
		t.Fatalf("X = %d, want 5", m.CPU.X)
	}
	if m.CPU.GetFlag(cpu.FlagZero) != 1 {
		t.Fatalf("Z should be set")
	}
	if m.CPU.GetFlag(cpu.FlagCarry) != 1 {
		t.Fatalf("C should be set")
	}
}

// Scenario 3: LDA #$99 SED CLC ADC #$01 BRK (BCD wrap).
func TestScenarioBCDWrap(t *testing.T) {
	m, _, _, _ := newTestMachine()
	src := `
		ORG $8000
		LDA #$99
		SED
		CLC
		ADC #$01
		BRK
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Bus.Poke16(memory.VectorReset, 0x8000)
	m.Boot()
	m.RunToHalt(1000)

	if m.CPU.A != 0x00 {
		t.Fatalf("A = %#02x, want 0x00", m.CPU.A)
	}
	if m.CPU.GetFlag(cpu.FlagCarry) != 1 {
		t.Fatalf("C should be set")
	}
	if m.CPU.GetFlag(cpu.FlagZero) != 1 {
		t.Fatalf("Z should be set")
	}
}

// Scenario 4: DEFINE PTR $0200 LDA #$FF STA PTR BRK.
func TestScenarioFramebufferWrite(t *testing.T) {
	m, rec, _, _ := newTestMachine()
	src := `
		ORG $8000
		DEFINE PTR $0200
		LDA #$FF
		STA PTR
		BRK
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Bus.Poke16(memory.VectorReset, 0x8000)
	m.Boot()
	m.RunToHalt(1000)

	if m.Bus.Read(0x0200) != 0xFF {
		t.Fatalf("memory[0x0200] = %#02x, want 0xFF", m.Bus.Read(0x0200))
	}
	if len(rec.Pixels) == 0 {
		t.Fatalf("expected at least one DrawPixel call")
	}
	first := rec.Pixels[0]
	if first.X != 0 || first.Y != 0 || first.Color != 0xFF {
		t.Fatalf("unexpected pixel write: %+v", first)
	}
}

// Scenario 5: .ORG $FFFC .DW START .ORG $8000 START: LDA #$41 OUT HLT.
func TestScenarioOutputAndHalt(t *testing.T) {
	m, _, out, _ := newTestMachine()
	src := `
		.ORG $FFFC
		.DW START
		.ORG $8000
		START: LDA #$41
		OUT
		HLT
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Boot()
	result := m.RunToHalt(1000)

	if out.String() != "A" {
		t.Fatalf("output = %q, want \"A\"", out.String())
	}
	if !result.Halted {
		t.Fatalf("expected CPU to halt")
	}
}

// Scenario 6: JMP LATER with no LATER: label defined.
func TestScenarioUnresolvedLabelFails(t *testing.T) {
	m, _, _, sink := newTestMachine()
	err := m.Load("JMP LATER")
	if err == nil {
		t.Fatalf("expected assemble failure")
	}
	ae, ok := err.(*asm.AssembleError)
	if !ok {
		t.Fatalf("expected *asm.AssembleError, got %T", err)
	}
	if ae.Code != asm.ErrLabelNotFound {
		t.Fatalf("expected error #%d, got #%d", asm.ErrLabelNotFound, ae.Code)
	}
	found := false
	for _, e := range sink.errors {
		if e == "Could not assemble code." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected \"Could not assemble code.\" to be logged, got %v", sink.errors)
	}
}

// Invariant: N PHA followed by N PLA restores A and SP. The closing BRK
// then pushes PC and P (3 bytes), so the final SP is 3 below the start.
func TestStackRoundTrip(t *testing.T) {
	m, _, _, _ := newTestMachine()
	src := `
		ORG $8000
		LDA #$01
		PHA
		LDA #$02
		PHA
		LDA #$03
		PHA
		PLA
		PLA
		PLA
		BRK
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Bus.Poke16(memory.VectorReset, 0x8000)
	initialSP := uint8(0xFF)
	m.Boot()
	m.RunToHalt(1000)

	if m.CPU.A != 0x01 {
		t.Fatalf("A = %#02x, want the first pushed value 0x01", m.CPU.A)
	}
	if m.CPU.SP != initialSP-3 {
		t.Fatalf("SP = %#02x, want %#02x (balanced PHA/PLA, then BRK's 3-byte push)", m.CPU.SP, initialSP-3)
	}
}

// Invariant: JSR L / RTS leaves PC at the byte following the 3-byte JSR
// and restores SP.
func TestJSRRTSReturnsToCallSite(t *testing.T) {
	m, _, _, _ := newTestMachine()
	src := `
		ORG $8000
		JSR SUB
		BRK
		SUB: RTS
	`
	if err := m.Load(src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Bus.Poke16(memory.VectorReset, 0x8000)
	initialSP := uint8(0xFF)
	m.Boot()

	// Step past JSR and RTS, landing back right after the call.
	m.Scheduler.Step()
	m.Scheduler.Step()

	if m.CPU.PC != 0x8003 {
		t.Fatalf("PC = %#04x, want 0x8003 (byte after the 3-byte JSR)", m.CPU.PC)
	}
	if m.CPU.SP != initialSP {
		t.Fatalf("SP = %#02x, want %#02x", m.CPU.SP, initialSP)
	}
}
