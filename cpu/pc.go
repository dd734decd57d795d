package cpu

// ProgramCounter is the 16-bit instruction pointer. It wraps modulo 2^16,
// matching real 6502 behavior at the top of the address space.
type ProgramCounter struct {
	addr uint16
}

func (pc ProgramCounter) Get() uint16 {
	return pc.addr
}

// Set jumps absolutely to addr.
func (pc *ProgramCounter) Set(addr uint16) {
	pc.addr = addr
}

// Advance adds a signed offset to the program counter, used by branches
// (-128..127) and by the decoder stepping past consumed instruction bytes.
func (pc *ProgramCounter) Advance(delta int) {
	pc.addr = uint16(int32(pc.addr) + int32(delta))
}

// Clock is the CPU's cycle counter. It only ever increases during normal
// operation; a dedicated type (rather than a bare field) matches the
// original implementation's separation of the clock from the rest of CPU
// state and gives debug tooling something self-contained to print.
type Clock struct {
	cycles uint64
}

func (c *Clock) Advance(n uint64) {
	c.cycles += n
}

func (c Clock) Cycles() uint64 {
	return c.cycles
}
