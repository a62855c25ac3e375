package sched

import (
	"testing"

	"github.com/aharris/sixtwo/internal/cpu"
	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
)

func TestTickRunsFullBatch(t *testing.T) {
	bus := memory.NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	bus.Poke(memory.DefaultOrigin, 0xEA)   // NOP
	bus.Poke(memory.DefaultOrigin+1, 0xEA) // NOP
	bus.Poke(memory.DefaultOrigin+2, 0xEA) // NOP

	c := cpu.New(bus)
	c.Reset()

	s := New(c)
	s.IterationsPerTick = 3
	result := s.Tick()

	if result.Steps != 3 {
		t.Fatalf("expected 3 steps, got %d", result.Steps)
	}
	if result.Halted || result.Stopped {
		t.Fatalf("unexpected halt/stop: %+v", result)
	}
}

func TestTickStopsOnHalt(t *testing.T) {
	bus := memory.NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	bus.Poke(memory.DefaultOrigin, 0x02) // HLT

	c := cpu.New(bus)
	c.Reset()

	s := New(c)
	s.IterationsPerTick = 10
	result := s.Tick()

	if !result.Halted {
		t.Fatalf("expected halt")
	}
	// HLT itself executes on the first Clock call (setting CPU.Halted);
	// the halted StepResult only surfaces on the following call, so the
	// batch consumes two steps before Tick observes the halt.
	if result.Steps != 2 {
		t.Fatalf("expected 2 steps before halt observed, got %d", result.Steps)
	}
}

func TestRequestStopInterruptsBatch(t *testing.T) {
	bus := memory.NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	for i := uint16(0); i < 10; i++ {
		bus.Poke(memory.DefaultOrigin+i, 0xEA)
	}
	c := cpu.New(bus)
	c.Reset()

	s := New(c)
	s.IterationsPerTick = 10
	s.RequestStop()
	result := s.Tick()

	if !result.Stopped {
		t.Fatalf("expected stop")
	}
	if result.Steps != 0 {
		t.Fatalf("expected 0 steps when stop requested before any ran, got %d", result.Steps)
	}
	if s.Stopped() {
		t.Fatalf("expected stop flag cleared after being observed")
	}
}

func TestQueuedInputDeliveredBeforeStep(t *testing.T) {
	bus := memory.NewBus(io.NopFramebuffer{}, io.NopBeeper{})
	bus.Poke(memory.DefaultOrigin, 0xEA) // NOP

	c := cpu.New(bus)
	c.Reset()

	s := New(c)
	s.QueueInput(InputEvent{Address: memory.KeyArrowUp, Value: 1})
	s.Step()

	if bus.Read(memory.KeyArrowUp) != 1 {
		t.Fatalf("expected queued input byte written before step")
	}
}
