package cpu

// The five custom opcodes below are non-6502 extensions, assigned to byte
// values (0x02, 0xF2, 0xF3, 0xF7, 0xFA) that are undocumented/illegal slots
// on a real 6502 and so carry no documented opcode this simulator would
// otherwise need. Undocumented opcodes are out of scope, freeing these
// slots for reuse.

// opHLT terminates the step loop; Clock's caller (internal/sched) observes
// c.Halted and stops scheduling further steps.
func (c *CPU) opHLT() uint8 {
	c.Halted = true
	return 0
}

// opOUT emits the character in A to the output collaborator; A==13 is a
// newline, left to the collaborator to interpret like any other code.
func (c *CPU) opOUT() uint8 {
	if c.Output != nil {
		c.Output.WriteByte(c.A)
	}
	return 0
}

// opOUY emits the 16-bit character (A<<8)|Y.
func (c *CPU) opOUY() uint8 {
	if c.Output != nil {
		c.Output.WriteWide(uint16(c.A)<<8 | uint16(c.Y))
	}
	return 0
}

// opIN blocks synchronously for a line of input the first time the
// buffer is empty, then yields the next buffered byte in A, NUL-terminated.
func (c *CPU) opIN() uint8 {
	if len(c.inputBuf) == 0 {
		if c.Input != nil {
			c.inputBuf = append(c.Input.ReadLine(), 0)
		} else {
			c.inputBuf = []byte{0}
		}
	}
	c.A = c.inputBuf[0]
	c.inputBuf = c.inputBuf[1:]
	return 0
}

// opWAI suspends the step loop without halting execution; cpu.IRQ/cpu.NMI
// clear Waiting, resuming from the next instruction.
func (c *CPU) opWAI() uint8 {
	c.Waiting = true
	return 0
}
