// Package cpu implements a MOS 6502 instruction-set interpreter: registers,
// flags, program counter, the operand/instruction decoder, and the
// per-opcode executor.
package cpu

import (
	"fmt"

	"github.com/bdwalton/nescore/mem"
)

// StackBase is the fixed base address of the hardware stack
// (0x0100-0x01FF).
const StackBase = 0x0100

// CPU holds all mutable 6502 state: registers, flags, program counter, the
// BCD-arithmetic capability, and the cycle clock. It owns none of the
// memory it operates on; every operation takes a mem.Memory explicitly.
type CPU struct {
	Registers  Registers
	Flags      Flags
	PC         ProgramCounter
	BCDEnabled bool
	Clock      Clock
}

// New creates a CPU with BCD arithmetic enabled. Using BCD still requires
// the BCD status flag to be set at execution time.
func New() *CPU {
	return &CPU{
		Registers:  newRegisters(),
		Flags:      NewFlags(0),
		BCDEnabled: true,
	}
}

// WithoutBCD creates a CPU that always uses binary arithmetic for ADC/SBC,
// regardless of the BCD flag's value. This matches the 2A03 variant used in
// the NES, which lacks decimal mode.
func WithoutBCD() *CPU {
	c := New()
	c.BCDEnabled = false
	return c
}

func (c *CPU) String() string {
	return fmt.Sprintf("A=%02x X=%02x Y=%02x SP=%02x PC=%04x P=%02x",
		c.Registers.A, c.Registers.X, c.Registers.Y, c.Registers.SP, c.PC.Get(), c.Flags.Bits())
}

func (c *CPU) stackAddr() uint64 {
	return StackBase + uint64(c.Registers.SP)
}

// Push writes val onto the stack then decrements SP (which wraps modulo
// 256, matching real hardware: pushing past the bottom of the stack page
// is allowed).
func (c *CPU) Push(m mem.Memory, val uint8) error {
	if err := m.SetU8(c.stackAddr(), val); err != nil {
		return err
	}
	c.Registers.SP--
	return nil
}

// Pull increments SP then reads the byte now on top of the stack.
func (c *CPU) Pull(m mem.Memory) (uint8, error) {
	c.Registers.SP++
	return m.GetU8(c.stackAddr())
}

// Peek reads the top of the stack without advancing SP.
func (c *CPU) Peek(m mem.Memory) (uint8, error) {
	addr := StackBase + uint64(c.Registers.SP+1)
	return m.GetU8(addr)
}

func (c *CPU) pushU16(m mem.Memory, v uint16) error {
	if err := c.Push(m, uint8(v>>8)); err != nil {
		return err
	}
	return c.Push(m, uint8(v&0xFF))
}

func (c *CPU) pullU16(m mem.Memory) (uint16, error) {
	lo, err := c.Pull(m)
	if err != nil {
		return 0, err
	}
	hi, err := c.Pull(m)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// Reset sets PC from the reset vector (0xFFFC), matching a hardware cold
// start / reset-line pulse.
func (c *CPU) Reset(m mem.Memory) error {
	addr, err := mem.GetU16LE(m, vectorReset)
	if err != nil {
		return err
	}
	c.PC.Set(addr)
	c.Flags.SetIf(FlagInterrupt, true)
	return nil
}

// NMI pushes PC and P (without the BREAK bit) and jumps through the NMI
// vector (0xFFFA), mirroring BRK's stack discipline for a hardware-driven
// non-maskable interrupt (e.g. PPU vblank).
func (c *CPU) NMI(m mem.Memory) error {
	if err := c.pushU16(m, c.PC.Get()); err != nil {
		return err
	}
	if err := c.Push(m, c.Flags.Bits()&^FlagBreak); err != nil {
		return err
	}
	c.Flags.SetIf(FlagInterrupt, true)
	addr, err := mem.GetU16LE(m, vectorNMI)
	if err != nil {
		return err
	}
	c.PC.Set(addr)
	return nil
}

// Step decodes and executes exactly one instruction, advancing Clock by
// its cycle cost. It returns the number of cycles the instruction spent so
// a caller (e.g. a system facade) can drive a collaborator, such as a PPU,
// by the same amount.
func (c *CPU) Step(m mem.Memory) (uint8, error) {
	inst, err := Decode(c, m)
	if err != nil {
		return 0, err
	}
	if err := Execute(c, m, inst); err != nil {
		return 0, &ExecError{Mnemonic: inst.Mnemonic, Err: err}
	}
	c.Clock.Advance(uint64(inst.Cycles))
	return inst.Cycles, nil
}
