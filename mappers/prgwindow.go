package mappers

import "github.com/bdwalton/nescore/mem"

// mirroredPRG presents a cartridge's PRG bytes as the fixed 32KB CPU window
// (0x8000-0xFFFF becomes addresses 0-0x7FFF here once composed behind a
// base offset by the caller). When the cartridge supplies fewer than 32KB
// of PRG ROM (the common single-16KB-bank NROM case), addresses wrap
// modulo the bank length, mirroring the low bank into the high half of the
// window exactly as NROM-128 hardware does.
type mirroredPRG struct {
	data []uint8
}

const prgWindowSize = 0x8000

func (p *mirroredPRG) Len() uint64 {
	return prgWindowSize
}

func (p *mirroredPRG) GetU8(addr uint64) (uint8, error) {
	if addr >= prgWindowSize {
		return 0, &mem.OutOfBoundsError{Addr: addr, Len: prgWindowSize}
	}
	if len(p.data) == 0 {
		return 0, &mem.OutOfBoundsError{Addr: addr, Len: 0}
	}
	return p.data[addr%uint64(len(p.data))], nil
}

func (p *mirroredPRG) SetU8(addr uint64, v uint8) error {
	if addr >= prgWindowSize {
		return &mem.OutOfBoundsError{Addr: addr, Len: prgWindowSize}
	}
	if len(p.data) == 0 {
		return &mem.OutOfBoundsError{Addr: addr, Len: 0}
	}
	p.data[addr%uint64(len(p.data))] = v
	return nil
}

// newMirroredPRG wraps data in the mirrored 32KB window and, like any other
// ROM bank in this package, composes mem.ReadOnly rather than hand-rolling
// the not-writable sentinel.
func newMirroredPRG(data []uint8) *mem.ReadOnly {
	return mem.NewReadOnly(&mirroredPRG{data: data})
}
