// Package mappers implements and registers mappers that are referenced
// numerically by iNES and NES 2.0 ROM files. Only mapper 0 (NROM) is
// implemented as such (fixed, mirrored PRG window and CHR ROM or RAM); every
// other mapper number is handed the same fixed PRG/CHR view with no bank
// switching, so a caller can still inspect which mapper a cartridge wants
// without the core claiming to emulate its bank-switching hardware.
package mappers

import (
	"github.com/bdwalton/nescore/mem"
	"github.com/bdwalton/nescore/nesrom"
)

// Mapper exposes whatever a cartridge's mapper hardware contributes to the
// memory map: a PRG window for the CPU bus, a CHR window for the video
// bus, and the handful of attributes the system facade needs to report.
type Mapper interface {
	ID() uint16
	Name() string
	PRG() mem.Memory
	CHR() mem.Memory
	Mirroring() nesrom.Mirroring
	HasSaveRAM() bool
}

// factories is keyed by mapper id; absent ids fall back to newUnsupported.
var factories = map[uint16]func(*nesrom.ROM) Mapper{
	0: newMapper0,
}

// Get constructs the Mapper a ROM's header asks for. Every mapper number
// resolves to *some* Mapper: numbers this package doesn't specifically
// implement get a flat passthrough rather than an error, since mapper
// diversity beyond reporting the number is out of scope.
func Get(rom *nesrom.ROM) Mapper {
	if f, ok := factories[rom.Header.Mapper]; ok {
		return f(rom)
	}
	return newUnsupported(rom)
}

type baseMapper struct {
	id   uint16
	name string
	rom  *nesrom.ROM
}

func (bm *baseMapper) ID() uint16 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) Mirroring() nesrom.Mirroring {
	return bm.rom.Header.MirroringMode()
}

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.Header.SRAMPresent
}
