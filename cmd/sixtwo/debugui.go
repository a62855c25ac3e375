package main

import (
	"fmt"
	"strings"

	"github.com/aharris/sixtwo/internal/cpu"
	"github.com/aharris/sixtwo/internal/disasm"
	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/machine"
	"github.com/aharris/sixtwo/internal/memory"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

// runDebugUI opens the termui debugger over an assembled program: register
// and flag paragraphs, two RAM hex-dump pages, a disassembly window
// centered on PC, and a tips bar, with Space/R/I/N driving the scheduler.
func runDebugUI(source string, intervalMS int, noColor bool) error {
	sink := newStdLogger()
	m := machine.New(io.NopFramebuffer{}, io.NopBeeper{}, sink, &io.BufferOutput{}, &io.QueueInput{})
	if err := m.Load(source); err != nil {
		return err
	}
	m.Boot()
	m.Scheduler.IntervalMS = intervalMS

	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer ui.Close()

	d := newDebugger(m, noColor)
	d.initLayout()
	d.draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "Q", "<C-c>":
			return nil
		case "<Space>":
			d.m.Scheduler.Step()
		case "r", "R":
			d.m.Boot()
			d.m.Scheduler.ClearInputCells()
		case "i", "I":
			d.m.CPU.IRQ()
		case "n", "N":
			d.m.CPU.NMI()
		}
		d.draw()
	}
	return nil
}

// debugger holds the live Machine and the termui widgets showing its state.
type debugger struct {
	m       *machine.Machine
	noColor bool

	paragraphCPU  *widgets.Paragraph
	paragraphCode *widgets.Paragraph
	paragraphRam0 *widgets.Paragraph
	paragraphRam1 *widgets.Paragraph
	paragraphTips *widgets.Paragraph
}

func newDebugger(m *machine.Machine, noColor bool) *debugger {
	return &debugger{m: m, noColor: noColor}
}

func (d *debugger) initLayout() {
	d.paragraphRam0 = widgets.NewParagraph()
	d.paragraphRam0.Title = "RAM Page 0x0000"
	d.paragraphRam0.SetRect(0, 0, 56, 18)

	d.paragraphRam1 = widgets.NewParagraph()
	d.paragraphRam1.Title = "RAM Page 0x0800"
	d.paragraphRam1.SetRect(0, 18, 56, 36)

	d.paragraphCPU = widgets.NewParagraph()
	d.paragraphCPU.Title = "CPU"
	d.paragraphCPU.SetRect(56, 0, 56+34, 7)

	d.paragraphCode = widgets.NewParagraph()
	d.paragraphCode.Title = "Disassembly"
	d.paragraphCode.SetRect(56, 7, 56+34, 7+29)

	d.paragraphTips = widgets.NewParagraph()
	d.paragraphTips.Title = "Tips"
	d.paragraphTips.SetRect(0, 36, 56+34, 39)
}

func (d *debugger) draw() {
	d.renderRam(d.paragraphRam0, 0x0000)
	d.renderRam(d.paragraphRam1, memory.DefaultOrigin)
	d.renderCpu()
	d.renderCode()
	d.renderTips()

	ui.Render(d.paragraphRam0, d.paragraphRam1, d.paragraphCPU, d.paragraphCode, d.paragraphTips)
}

func (d *debugger) renderCpu() {
	c := d.m.CPU
	sb := &strings.Builder{}
	flags := []uint8{
		cpu.FlagNegative,
		cpu.FlagOverflow,
		cpu.FlagUnused,
		cpu.FlagBreak,
		cpu.FlagDecimal,
		cpu.FlagInterrupt,
		cpu.FlagZero,
		cpu.FlagCarry,
	}
	symbols := []rune{'N', 'V', '-', 'B', 'D', 'I', 'Z', 'C'}

	sb.WriteString("STATUS: ")
	for i, f := range flags {
		if d.noColor {
			sb.WriteRune('[')
			sb.WriteRune(symbols[i])
			sb.WriteRune(']')
			if c.GetFlag(f) != 0 {
				sb.WriteRune('*')
			}
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune('[')
		sb.WriteRune(symbols[i])
		sb.WriteRune(']')
		sb.WriteString("(fg:")
		if c.GetFlag(f) != 0 {
			sb.WriteString("green")
		} else {
			sb.WriteString("red")
		}
		sb.WriteString(") ")
	}
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("PC: $%04X SP: $%02X", c.PC, c.SP))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("A: $%02X [%d]", c.A, c.A))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("X: $%02X [%d]", c.X, c.X))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("Y: $%02X [%d]", c.Y, c.Y))
	if c.Halted {
		sb.WriteString("  HALTED")
	}

	d.paragraphCPU.Text = sb.String()
}

func (d *debugger) renderRam(p *widgets.Paragraph, addr uint16) {
	p.Text = disasm.HexDump(d.m.Bus, addr, 16, 16)
}

func (d *debugger) renderCode() {
	listing := disasm.Disassemble(d.m.Bus, memory.DefaultOrigin, memory.ProgramAreaEnd)
	pc := int32(d.m.CPU.PC)
	lower := pc - 6
	upper := pc + 200

	sb := &strings.Builder{}
	shown := 0
	for _, addr := range listing.Index {
		a := int32(addr)
		if a < lower {
			continue
		}
		if a > upper || shown >= 29 {
			break
		}
		line := listing.Stringify(addr, 32)
		if addr == d.m.CPU.PC && !d.noColor {
			sb.WriteString(fmt.Sprintf("[%s](fg:cyan)", line))
		} else if addr == d.m.CPU.PC {
			sb.WriteString("-> " + line)
		} else {
			sb.WriteString(line)
		}
		sb.WriteRune('\n')
		shown++
	}
	d.paragraphCode.Text = sb.String()
}

func (d *debugger) renderTips() {
	d.paragraphTips.Text = "SPACE = Step Instruction    R = RESET    I = IRQ    N = NMI    Q = QUIT"
}
