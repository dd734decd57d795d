package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdwalton/nescore/mem"
)

func TestDecodeUnknownOpcode(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0xFF) // unused in the 151-entry table

	c := New()
	_, err := Decode(c, m)
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
}

func TestDecodeImmediate(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0xA9) // LDA #imm
	m.SetU8(1, 0x7F)

	c := New()
	inst, err := Decode(c, m)
	assert.NoError(t, err)
	assert.Equal(t, LDA, inst.Mnemonic)
	assert.Equal(t, Immediate, inst.Operand.Kind)
	assert.Equal(t, uint8(0x7F), inst.Operand.Imm)
	assert.Equal(t, uint16(2), c.PC.Get())
}

func TestDecodeAbsoluteJumpCarriesRawTarget(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x4C) // JMP absolute
	m.SetU8(1, 0x34)
	m.SetU8(2, 0x12)

	c := New()
	inst, err := Decode(c, m)
	assert.NoError(t, err)
	assert.Equal(t, JMP, inst.Mnemonic)
	assert.Equal(t, TwoByteImmediate, inst.Operand.Kind)
	assert.Equal(t, uint16(0x1234), inst.Operand.Addr)
}

func TestDecodeIndirectJumpKeepsPointerAddress(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0x6C) // JMP indirect
	m.SetU8(1, 0x00)
	m.SetU8(2, 0x02)

	c := New()
	inst, err := Decode(c, m)
	assert.NoError(t, err)
	assert.Equal(t, Indirect, inst.Operand.Kind)
	assert.Equal(t, uint16(0x0200), inst.Operand.Addr)
}

func TestDecodeRelativeBranch(t *testing.T) {
	m := mem.NewFixed(0x10000)
	m.SetU8(0, 0xD0) // BNE
	m.SetU8(1, 0xFB) // -5

	c := New()
	inst, err := Decode(c, m)
	assert.NoError(t, err)
	assert.Equal(t, BNE, inst.Mnemonic)
	assert.Equal(t, Offset, inst.Operand.Kind)
	assert.Equal(t, int8(-5), inst.Operand.Delta)
}
