package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdwalton/nescore/mem"
)

func step(t *testing.T, c *CPU, m mem.Memory) {
	t.Helper()
	_, err := c.Step(m)
	assert.NoError(t, err)
}

func TestADCBCDCarryOut(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x69) // ADC #imm
	m.SetU8(1, 0x85) // 85 BCD

	c := New()
	c.Flags.SetIf(FlagBCD, true)
	c.Registers.A = 0x17 // 17 BCD, 17+85=102 -> carry, A=02

	step(t, c, m)

	assert.Equal(t, uint8(0x02), c.Registers.A)
	assert.True(t, c.Flags.Carry())
	assert.False(t, c.Flags.has(FlagZero))
}

func TestADCBinaryWhenBCDDisabled(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x69)
	m.SetU8(1, 0x85)

	c := WithoutBCD()
	c.Flags.SetIf(FlagBCD, true) // flag set, but CPU can't use it
	c.Registers.A = 0x17

	step(t, c, m)

	assert.Equal(t, uint8(0x9C), c.Registers.A) // 0x17+0x85 = 0x9C, binary
	assert.False(t, c.Flags.Carry())
	assert.True(t, c.Flags.has(FlagSign))
}

func TestBranchTaken(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0xF0) // BEQ
	m.SetU8(1, 0x05)

	c := New()
	c.Flags.SetIf(FlagZero, true)

	step(t, c, m)
	assert.Equal(t, uint16(7), c.PC.Get()) // 2 (instruction) + 5 (delta)
}

func TestBranchNotTaken(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0xF0)
	m.SetU8(1, 0x05)

	c := New()
	c.Flags.SetIf(FlagZero, false)

	step(t, c, m)
	assert.Equal(t, uint16(2), c.PC.Get())
}

func TestBRKPushesReturnAddressAndSetsInterrupt(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x00) // BRK
	m.SetU8(0xFFFE, 0x00)
	m.SetU8(0xFFFF, 0x90)

	c := New()
	c.PC.Set(0x1000)

	step(t, c, m)

	assert.Equal(t, uint16(0x9000), c.PC.Get())
	assert.True(t, c.Flags.has(FlagInterrupt))

	p, err := c.Pull(m)
	assert.NoError(t, err)
	assert.True(t, p&FlagBreak != 0)

	addr, err := c.pullU16(m)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1002), addr)
}

func TestBITFlagPattern(t *testing.T) {
	c := New()
	c.Registers.A = 0xFF
	c.bit(0x80)
	assert.True(t, c.Flags.has(FlagSign))
	assert.False(t, c.Flags.has(FlagOverflow))
	assert.False(t, c.Flags.has(FlagZero))

	c.Registers.A = 0x02
	c.bit(0x01)
	assert.True(t, c.Flags.has(FlagZero))
}

func TestCMPFlagPattern(t *testing.T) {
	c := New()
	c.Registers.A = 42

	c.compare(c.Registers.A, 42)
	assert.True(t, c.Flags.has(FlagZero))
	assert.True(t, c.Flags.has(FlagCarry))
	assert.False(t, c.Flags.has(FlagSign))

	c.compare(c.Registers.A, 41)
	assert.False(t, c.Flags.has(FlagZero))
	assert.True(t, c.Flags.has(FlagCarry))
	assert.False(t, c.Flags.has(FlagSign))

	c.compare(c.Registers.A, 43)
	assert.False(t, c.Flags.has(FlagZero))
	assert.False(t, c.Flags.has(FlagCarry))
	assert.True(t, c.Flags.has(FlagSign))
}

func TestJSRandRTSRoundTrip(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x20) // JSR
	m.SetU8(1, 0x00)
	m.SetU8(2, 0x40)
	m.SetU8(0x4000, 0x60) // RTS

	c := New()
	step(t, c, m) // JSR
	assert.Equal(t, uint16(0x4000), c.PC.Get())

	step(t, c, m) // RTS
	assert.Equal(t, uint16(3), c.PC.Get())
}

func TestStackOperationsPreserveReserved(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x08) // PHP
	m.SetU8(1, 0x28) // PLP

	c := New()
	step(t, c, m)
	step(t, c, m)
	assert.True(t, c.Flags.has(FlagReserved))
}
