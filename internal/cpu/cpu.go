// Package cpu implements the 6502 programmer-visible state and the
// fetch/decode/execute loop: three 8-bit registers, an 8-bit processor
// status word, a 256-byte stack page, and the 151-arm documented opcode
// table plus five custom extension opcodes (HLT, OUT, OUY, IN, WAI) for
// halting, character output, line input, and waiting for an interrupt.
package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
)

// Instruction describes one of the 256 opcode-table slots: its mnemonic,
// the addressing-mode function that computes its operand, the function
// that carries out its effect, its base cycle count, and the addressing
// mode tag that fetch and the disassembler use to tell how the operand is
// encoded.
type Instruction struct {
	Name   string
	AM     func(c *CPU) uint8
	Op     func(c *CPU) uint8
	Cycles uint8
	Mode   AddrMode
}

// CPU holds the full 6502 programmer-visible state plus the bookkeeping
// fields an addressing-mode/opcode pair needs to communicate (the fetched
// operand byte, the resolved effective address, and the pending relative
// branch offset).
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8

	Bus *memory.Bus

	Output io.CharOutput
	Input  io.CharInput

	Halted  bool
	Waiting bool

	inputBuf []byte

	fetched     uint8
	addrAbs     uint16
	addrRel     uint16
	opcode      uint8
	cycles      uint8
	pageCrossed bool

	clockCount uint64

	lookup [256]*Instruction
	rng    *rand.Rand
}

// New builds a CPU with the documented opcode table installed and both
// registers and flags zeroed; call Reset before stepping.
func New(bus *memory.Bus) *CPU {
	c := &CPU{Bus: bus}
	c.lookup = newOpcodeTable()
	c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	return c
}

// Reset runs the power-on/reset sequence: registers cleared, SP set to
// 0xFF, P set to 0x24 (interrupt-disable and the always-1 unused bit), PC
// loaded from the reset vector if it is non-zero, else defaulted to the
// program origin, and the keyboard/mouse mapped cells cleared.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFF
	c.P = FlagInterrupt | FlagUnused

	vector := c.Bus.Read16(memory.VectorReset)
	if vector != 0 {
		c.PC = vector
	} else {
		c.PC = memory.DefaultOrigin
	}

	c.Bus.ClearInputCells()

	c.Halted = false
	c.Waiting = false
	c.addrAbs, c.addrRel, c.fetched = 0, 0, 0
	c.cycles = 8
}

// IRQ vectors a maskable interrupt through 0xFFFE/0xFFFF if P.I is clear.
// It pushes PC then P with the break flag cleared, distinguishing a
// hardware interrupt from a software BRK on the pushed status byte.
func (c *CPU) IRQ() {
	if c.GetFlag(FlagInterrupt) != 0 {
		return
	}
	c.pushPC()
	c.SetFlag(FlagBreak, false)
	c.SetFlag(FlagUnused, true)
	c.SetFlag(FlagInterrupt, true)
	c.push(c.P)
	c.PC = c.Bus.Read16(memory.VectorBRK)
	c.cycles = 7
	c.Waiting = false
}

// NMI is IRQ's non-maskable counterpart, vectoring through 0xFFFA/0xFFFB
// unconditionally.
func (c *CPU) NMI() {
	c.pushPC()
	c.SetFlag(FlagBreak, false)
	c.SetFlag(FlagUnused, true)
	c.SetFlag(FlagInterrupt, true)
	c.push(c.P)
	c.PC = c.Bus.Read16(memory.VectorNMI)
	c.cycles = 8
	c.Waiting = false
}

// StepResult reports what a single Clock call observed, so the scheduler
// (internal/sched) can decide whether to keep stepping.
type StepResult struct {
	Halted         bool
	UnknownOpcode  bool
	UnknownAddr    uint16
	UnknownByte    uint8
	UndefinedCell  bool
}

// Clock executes exactly one instruction: refresh the random-number cell,
// fetch the opcode at PC, dispatch the addressing-mode and opcode
// functions, and accumulate cycle count. It returns a StepResult
// describing any abort condition (an unknown opcode at a defined byte vs.
// an undefined byte).
func (c *CPU) Clock() StepResult {
	if c.Halted {
		return StepResult{Halted: true}
	}
	if c.Waiting {
		return StepResult{}
	}

	c.Bus.RefreshRandom(byte(c.rng.Intn(256)))

	addr := c.PC
	if !c.Bus.Defined(addr) {
		c.Halted = true
		return StepResult{Halted: true, UndefinedCell: true}
	}
	c.opcode = c.read(addr)
	inst := c.lookup[c.opcode]

	if inst == nil {
		c.Halted = true
		return StepResult{Halted: true, UnknownOpcode: true, UnknownAddr: addr, UnknownByte: c.opcode}
	}

	c.PC++
	c.SetFlag(FlagUnused, true)

	amExtra := inst.AM(c)
	c.pageCrossed = amExtra != 0
	opExtra := inst.Op(c)

	c.cycles = inst.Cycles + opExtra
	c.clockCount += uint64(c.cycles)

	if logEnable {
		logger.Log(fmt.Sprintf("$%04X: %s A=%02X X=%02X Y=%02X P=%02X SP=%02X", addr, inst.Name, c.A, c.X, c.Y, c.P, c.SP))
	}

	return StepResult{}
}

// fetch loads the operand byte for the current instruction unless the
// addressing mode is implied/accumulator, in which case amIMP already
// parked the accumulator value in c.fetched.
func (c *CPU) fetch() uint8 {
	if c.lookup[c.opcode].Mode != ModeIMP {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}

// accumulatorMode reports whether the current instruction operates on the
// accumulator directly rather than a memory operand (ASL A, ROL A, ...).
func (c *CPU) accumulatorMode() bool {
	return c.lookup[c.opcode].Mode == ModeIMP
}

func (c *CPU) read(addr uint16) uint8  { return c.Bus.Read(addr) }
func (c *CPU) read16(addr uint16) uint16 { return c.Bus.Read16(addr) }
func (c *CPU) write(addr uint16, v uint8) { c.Bus.Write(addr, v) }

func (c *CPU) push(v uint8) {
	c.Bus.Write(memory.StackStart+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.Bus.Read(memory.StackStart + uint16(c.SP))
}

func (c *CPU) pushPC() {
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC & 0x00FF))
}

func (c *CPU) popPC() {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	c.PC = hi<<8 | lo
}

// ClockCount returns the running total of cycle-accounting units consumed.
// It is bookkeeping only: each Clock call always executes one full
// instruction regardless of this count, which is never used to gate
// execution.
func (c *CPU) ClockCount() uint64 {
	return c.clockCount
}
