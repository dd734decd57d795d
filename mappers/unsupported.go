package mappers

import (
	"github.com/bdwalton/nescore/mem"
	"github.com/bdwalton/nescore/nesrom"
)

// unsupportedMapper is the fallback for any mapper number this package
// doesn't implement. It exposes the cartridge's raw PRG/CHR bytes through
// the same windowed, possibly-mirrored view mapper0 uses, with no
// bank-switching: good enough to boot simple ROMs, and callers can still
// read ID() to learn which real mapper hardware they're missing.
type unsupportedMapper struct {
	*baseMapper
	prg *mem.ReadOnly
	chr mem.Memory
}

func newUnsupported(rom *nesrom.ROM) Mapper {
	var chr mem.Memory
	if rom.Header.CHRROMSize == 0 {
		chr = mem.NewFixed(chrBankBytes)
	} else {
		chr = mem.NewReadOnly(mem.NewFixedFrom(rom.CHR))
	}

	return &unsupportedMapper{
		baseMapper: &baseMapper{id: rom.Header.Mapper, name: "unsupported", rom: rom},
		prg:        newMirroredPRG(rom.PRG),
		chr:        chr,
	}
}

func (m *unsupportedMapper) PRG() mem.Memory {
	return m.prg
}

func (m *unsupportedMapper) CHR() mem.Memory {
	return m.chr
}
