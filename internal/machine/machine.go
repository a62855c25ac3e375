// Package machine wires the assembler, the interpreter, the memory bus,
// and the scheduler into the single coherent unit a host (the CLI, the
// debug UI) drives: assemble source, reset, then run to completion or
// step interactively.
package machine

import (
	"github.com/aharris/sixtwo/internal/asm"
	"github.com/aharris/sixtwo/internal/cpu"
	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
	"github.com/aharris/sixtwo/internal/sched"
)

// Machine owns one bus, one CPU, one assembler, and one scheduler, so
// exactly one goroutine is ever mutating CPU state and memory at a time.
type Machine struct {
	Bus       *memory.Bus
	CPU       *cpu.CPU
	Assembler *asm.Assembler
	Scheduler *sched.Scheduler
	Sink      io.StatusSink
}

// New wires a Machine around the given collaborators. Any of them may be
// the headless implementations from internal/io for a non-interactive run.
func New(fb io.Framebuffer, beeper io.Beeper, sink io.StatusSink, output io.CharOutput, input io.CharInput) *Machine {
	bus := memory.NewBus(fb, beeper)
	c := cpu.New(bus)
	c.Output = output
	c.Input = input

	return &Machine{
		Bus:       bus,
		CPU:       c,
		Assembler: asm.New(bus, sink, beeper),
		Scheduler: sched.New(c),
		Sink:      sink,
	}
}

// Load assembles source into the bus. It does not reset the CPU; call
// Boot once loading succeeds.
func (m *Machine) Load(source string) error {
	return m.Assembler.Assemble(source)
}

// Boot runs the reset sequence, loading PC from the reset vector (or the
// default origin if the vector is unset).
func (m *Machine) Boot() {
	m.CPU.Reset()
}

// RunToHalt steps the machine until the CPU halts or maxSteps is reached,
// returning the final step's result. maxSteps is only a safety bound
// against a program that never halts.
func (m *Machine) RunToHalt(maxSteps int) cpu.StepResult {
	var last cpu.StepResult
	for i := 0; i < maxSteps; i++ {
		last = m.Scheduler.Step()
		if last.Halted {
			break
		}
	}
	return last
}
