package video

import "github.com/bdwalton/nescore/mem"

// RegisterWindow adapts a PPU's eight registers to the mem.Memory
// capability so the system facade can attach it into the CPU's address
// space (wrapped in a mem.Mirrored to cover the full 0x2000-0x3FFF range).
type RegisterWindow struct {
	ppu *PPU
}

func NewRegisterWindow(ppu *PPU) *RegisterWindow {
	return &RegisterWindow{ppu: ppu}
}

func (w *RegisterWindow) Len() uint64 {
	return 8
}

func (w *RegisterWindow) GetU8(addr uint64) (uint8, error) {
	if addr >= 8 {
		return 0, &mem.OutOfBoundsError{Addr: addr, Len: 8}
	}
	return w.ppu.ReadReg(uint16(addr)), nil
}

func (w *RegisterWindow) SetU8(addr uint64, v uint8) error {
	if addr >= 8 {
		return &mem.OutOfBoundsError{Addr: addr, Len: 8}
	}
	w.ppu.WriteReg(uint16(addr), v)
	return nil
}
