// Package sched implements a cooperative execution scheduler: the host
// requests N steps per tick, the scheduler loops the interpreter's
// fetch/decode/execute cycle until N is reached or a step halts, and a
// single flag checked between steps makes cancellation cooperative rather
// than timer-driven.
package sched

import (
	"github.com/aharris/sixtwo/internal/cpu"
)

// InputEvent is a host keyboard/mouse event pending delivery at the next
// well-defined interposition point, immediately before an instruction runs.
type InputEvent struct {
	Address   uint16
	Value     byte
	Interrupt bool
}

// TickResult reports why a Tick call stopped: it ran its full batch, the
// CPU halted (an unknown opcode or undefined byte), or a stop was
// requested mid-batch.
type TickResult struct {
	Steps    int
	Halted   bool
	Stopped  bool
	LastStep cpu.StepResult
}

// Scheduler drives a *cpu.CPU through batches of steps on the host's
// behalf. It is single-threaded and cooperative: nothing but the
// scheduler's own goroutine ever calls CPU.Clock.
type Scheduler struct {
	CPU *cpu.CPU

	// IterationsPerTick is the pacing parameter controlling how many steps
	// a single Tick call runs. Debug mode uses Step instead, which is
	// equivalent to IterationsPerTick == 1 for a single call.
	IterationsPerTick int

	// IntervalMS is the milliseconds-between-tick-batches the host should
	// wait between Tick calls (>= 0, default 0). The scheduler itself does
	// not sleep; pacing is entirely the host's responsibility, and no
	// timeout is enforced on a batch that never halts.
	IntervalMS int

	stopRequested bool
	pending       []InputEvent
}

// New creates a Scheduler with a one-step-per-tick default.
func New(c *cpu.CPU) *Scheduler {
	return &Scheduler{CPU: c, IterationsPerTick: 1}
}

// RequestStop sets the cooperative cancellation flag, typically mapped to
// an escape key or similar host-level interrupt request.
func (s *Scheduler) RequestStop() {
	s.stopRequested = true
}

// Stopped reports whether a stop has been requested.
func (s *Scheduler) Stopped() bool {
	return s.stopRequested
}

// Resume clears the cancellation flag so a later Tick/Step can run again.
func (s *Scheduler) Resume() {
	s.stopRequested = false
}

// QueueInput enqueues a host input event for delivery immediately before
// the next step fetches.
func (s *Scheduler) QueueInput(ev InputEvent) {
	s.pending = append(s.pending, ev)
}

// deliverPending applies every queued input event: writing its byte into
// the mapped memory cell, and — if the event is interrupt-tagged and P.I
// is clear — vectoring a maskable interrupt before the next step runs.
func (s *Scheduler) deliverPending() {
	if len(s.pending) == 0 {
		return
	}
	events := s.pending
	s.pending = nil

	for _, ev := range events {
		s.CPU.Bus.Write(ev.Address, ev.Value)
		if ev.Interrupt {
			s.CPU.IRQ()
		}
	}
}

// ClearInputCells resets the keyboard/mouse-mapped cells, used by a host
// reset action.
func (s *Scheduler) ClearInputCells() {
	s.CPU.Bus.ClearInputCells()
}

// Step runs exactly one instruction, delivering any pending input first.
// This is the debug-mode path: the scheduler runs exactly one step per
// user request instead of a full batch.
func (s *Scheduler) Step() cpu.StepResult {
	s.deliverPending()
	return s.CPU.Clock()
}

// Tick runs up to IterationsPerTick steps, stopping early on a halt or a
// cooperative stop request.
func (s *Scheduler) Tick() TickResult {
	n := s.IterationsPerTick
	if n <= 0 {
		n = 1
	}

	result := TickResult{}
	for i := 0; i < n; i++ {
		if s.stopRequested {
			result.Stopped = true
			s.stopRequested = false
			break
		}
		step := s.Step()
		result.Steps++
		result.LastStep = step
		if step.Halted {
			result.Halted = true
			break
		}
	}
	return result
}
