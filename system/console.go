// Package system wires the CPU core, memory map, mapper, and picture
// processor together into a single runnable console, mirroring the way
// the teacher's console package composes a bus from the same parts.
package system

import (
	"github.com/bdwalton/nescore/cpu"
	"github.com/bdwalton/nescore/mappers"
	"github.com/bdwalton/nescore/mem"
	"github.com/bdwalton/nescore/nesrom"
	"github.com/bdwalton/nescore/video"
)

// Memory map layout, per the CPU's view of the bus.
// https://www.nesdev.org/wiki/CPU_memory_map
const (
	ramBase      = 0x0000
	ramSize      = 0x0800
	ramWindow    = 0x2000 // 0x0000-0x1FFF mirrors the 2KB of built-in RAM
	ppuRegBase   = 0x2000
	ppuRegWindow = 0x2000 // 0x2000-0x3FFF mirrors the 8 PPU registers
	ioBase       = 0x4000
	ioSize       = 0x0020
	prgBase      = 0x8000

	oamDMA = 0x4014
)

// Console is the system facade: it owns a CPU, a PPU, the memory map they
// share, and whatever cartridge is currently loaded.
type Console struct {
	CPU *cpu.CPU

	ppu    *video.PPU
	mapper mappers.Mapper
	header *nesrom.Header
	ram    *mem.Fixed
	io     *mem.Fixed
	bus    *mem.Virtual
	loaded bool
}

// New constructs a console with an empty cartridge slot. The CPU is the
// 2A03 variant used by the NES, which lacks decimal mode.
func New() *Console {
	c := &Console{
		CPU: cpu.WithoutBCD(),
		ram: mem.NewFixed(ramSize),
		io:  mem.NewFixed(ioSize),
		bus: mem.NewVirtual(0x10000),
	}
	c.CPU.Flags.Replace(0x24)
	c.ppu = video.New(c, nesrom.MirrorHorizontal)

	// Attach failures here would mean the fixed layout itself overlaps,
	// which would be a programming error in this package, not a runtime
	// condition callers need to handle.
	if err := c.bus.Attach(ramBase, mem.NewMirrored(c.ram, ramWindow)); err != nil {
		panic(err)
	}
	if err := c.bus.Attach(ppuRegBase, mem.NewMirrored(video.NewRegisterWindow(c.ppu), ppuRegWindow)); err != nil {
		panic(err)
	}
	if err := c.bus.Attach(ioBase, c.io); err != nil {
		panic(err)
	}

	return c
}

// ChrRead lets the PPU read the loaded cartridge's CHR data.
func (c *Console) ChrRead(addr uint16) uint8 {
	if c.mapper == nil {
		return 0
	}
	v, _ := c.mapper.CHR().GetU8(uint64(addr))
	return v
}

// ChrWrite lets the PPU write the loaded cartridge's CHR RAM, if any.
func (c *Console) ChrWrite(addr uint16, val uint8) {
	if c.mapper == nil {
		return
	}
	_ = c.mapper.CHR().SetU8(uint64(addr), val)
}

// TriggerNMI is called by the PPU at the start of vertical blank, when
// PPUCTRL's generate-NMI bit is set.
func (c *Console) TriggerNMI() {
	_ = c.CPU.NMI(c)
}

// Len, GetU8, and SetU8 make Console itself the mem.Memory the CPU
// executes against: everything but OAMDMA forwards straight to the
// attached segments, and a write to OAMDMA triggers the 256-byte sprite
// memory copy real hardware does.
func (c *Console) Len() uint64 {
	return c.bus.Len()
}

func (c *Console) GetU8(addr uint64) (uint8, error) {
	return c.bus.GetU8(addr)
}

func (c *Console) SetU8(addr uint64, v uint8) error {
	if addr == oamDMA {
		base := uint64(v) << 8
		for i := uint64(0); i < 256; i++ {
			b, err := c.bus.GetU8(base + i)
			if err != nil {
				return err
			}
			c.ppu.WriteOAM(uint8(i), b)
		}
		return nil
	}
	return c.bus.SetU8(addr, v)
}

// Load installs rom's PRG into the CPU-visible memory map and hands its
// CHR to the PPU, replacing any cartridge already loaded. It resets the
// CPU from the new cartridge's reset vector.
func (c *Console) Load(rom *nesrom.ROM) error {
	if c.loaded {
		c.Eject()
	}

	m := mappers.Get(rom)
	if err := c.bus.Attach(prgBase, m.PRG()); err != nil {
		return err
	}

	c.mapper = m
	c.header = rom.Header
	c.ppu.SetMirroring(m.Mirroring())
	c.loaded = true

	return c.CPU.Reset(c)
}

// Eject removes the currently loaded cartridge's PRG window from the
// memory map. It is a no-op if nothing is loaded.
func (c *Console) Eject() {
	if !c.loaded {
		return
	}
	c.bus.Detach(prgBase)
	c.mapper = nil
	c.header = nil
	c.loaded = false
}

// Header reports the loaded cartridge's parsed header, or nil if no
// cartridge is loaded.
func (c *Console) Header() *nesrom.Header {
	return c.header
}

// Step executes exactly one CPU instruction, then advances the PPU by the
// same number of cycles (the PPU clock runs 3x the CPU clock). frame is
// passed through to the PPU unchanged.
func (c *Console) Step(frame []byte) error {
	if !c.loaded {
		return ErrNoCartridgeInserted
	}

	cycles, err := c.CPU.Step(c)
	if err != nil {
		if _, ok := err.(*cpu.DecodeError); ok {
			return &InstructionDecodeError{Err: err}
		}
		return &ExecutionError{Err: err}
	}

	c.ppu.Advance(int(cycles)*3, frame)
	return nil
}
