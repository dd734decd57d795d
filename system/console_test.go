package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdwalton/nescore/nesrom"
)

// nromTestROM builds a single-16KB-PRG-bank, single-8KB-CHR-bank mapper-0
// cartridge with a reset vector pointing at resetTarget and the
// instruction bytes at that address already poked in.
func nromTestROM(resetTarget uint16, code ...uint8) *nesrom.ROM {
	prg := make([]byte, 16384)
	prg[0x3FFC] = uint8(resetTarget)
	prg[0x3FFD] = uint8(resetTarget >> 8)

	off := int(resetTarget) - 0x8000
	if off >= 0x4000 {
		off -= 0x4000
	}
	copy(prg[off:], code)

	return &nesrom.ROM{
		Header: &nesrom.Header{PRGROMSize: 1, CHRROMSize: 1, Mapper: 0},
		PRG:    prg,
		CHR:    make([]byte, 8192),
	}
}

func TestStepWithoutCartridgeFails(t *testing.T) {
	c := New()
	err := c.Step(nil)
	assert.ErrorIs(t, err, ErrNoCartridgeInserted)
}

func TestLoadResetsPCFromVector(t *testing.T) {
	c := New()
	assert.Equal(t, uint8(0x24), c.CPU.Flags.Bits())

	rom := nromTestROM(0x8100, 0xEA) // NOP at 0x8100
	assert.NoError(t, c.Load(rom))
	assert.Equal(t, uint16(0x8100), c.CPU.PC.Get())
}

func TestStepExecutesOneInstruction(t *testing.T) {
	c := New()
	rom := nromTestROM(0x8100, 0xA9, 0x42) // LDA #$42
	assert.NoError(t, c.Load(rom))

	assert.NoError(t, c.Step(nil))
	assert.Equal(t, uint8(0x42), c.CPU.Registers.A)
	assert.Equal(t, uint16(0x8102), c.CPU.PC.Get())
}

func TestStepOnUnknownOpcodeReportsDecodeError(t *testing.T) {
	c := New()
	rom := nromTestROM(0x8100, 0xFF) // not a documented opcode
	assert.NoError(t, c.Load(rom))

	err := c.Step(nil)
	var decodeErr *InstructionDecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestRAMIsMirroredAcrossWindow(t *testing.T) {
	c := New()
	assert.NoError(t, c.SetU8(0x0010, 0x99))

	v, err := c.GetU8(0x0810)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x99), v)
}

func TestOAMDMACopies256BytesFromRAMPage(t *testing.T) {
	c := New()
	for i := uint64(0); i < 256; i++ {
		assert.NoError(t, c.SetU8(0x0200+i, uint8(i)))
	}
	assert.NoError(t, c.SetU8(oamDMA, 0x02))

	c.WriteReg(0x2003, 0x05) // OAMADDR = 5
	assert.Equal(t, uint8(5), c.ReadReg(0x2004))
}

// WriteReg/ReadReg give the tests a way to peek at OAM through the PPU's
// register interface without exporting PPU internals.
func (c *Console) WriteReg(reg uint16, val uint8) { c.ppu.WriteReg(reg, val) }
func (c *Console) ReadReg(reg uint16) uint8        { return c.ppu.ReadReg(reg) }

func TestEjectRemovesPRGWindow(t *testing.T) {
	c := New()
	rom := nromTestROM(0x8100, 0xEA)
	assert.NoError(t, c.Load(rom))
	c.Eject()

	_, err := c.GetU8(0x8100)
	assert.Error(t, err)
}
