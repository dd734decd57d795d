package mappers

import (
	"github.com/bdwalton/nescore/mem"
	"github.com/bdwalton/nescore/nesrom"
)

const chrBankBytes = 8192

// mapper0 implements NROM: PRG ROM occupies the whole 0x8000-0xFFFF window,
// mirrored if the cartridge only supplies one 16KB bank; CHR is either
// fixed ROM or, if the header reports no CHR ROM banks, 8KB of CHR RAM.
type mapper0 struct {
	*baseMapper
	prg *mem.ReadOnly
	chr mem.Memory
}

func newMapper0(rom *nesrom.ROM) Mapper {
	var chr mem.Memory
	if rom.Header.CHRROMSize == 0 {
		chr = mem.NewFixed(chrBankBytes)
	} else {
		chr = mem.NewReadOnly(mem.NewFixedFrom(rom.CHR))
	}

	return &mapper0{
		baseMapper: &baseMapper{id: 0, name: "NROM", rom: rom},
		prg:        newMirroredPRG(rom.PRG),
		chr:        chr,
	}
}

func (m *mapper0) PRG() mem.Memory {
	return m.prg
}

func (m *mapper0) CHR() mem.Memory {
	return m.chr
}
