package cpu

import "github.com/bdwalton/nescore/mem"

// IndexRegister names which index register an Indexed operand adds to its
// base address.
type IndexRegister int

const (
	IndexX IndexRegister = iota
	IndexY
)

// OperandKind tags which addressing-mode variant an Operand carries.
type OperandKind int

const (
	// Immediate is a literal value; no address; read-only.
	Immediate OperandKind = iota
	// Accumulator aliases the A register; readable and writable.
	Accumulator
	// Absolute names mem[m]; address is m.
	Absolute
	// Indexed names mem[base+reg], 16-bit arithmetic, no zero-page wrap.
	Indexed
	// Indirect names mem[mem16le[m]]; used by JMP.
	Indirect
	// PreIndexedIndirect: pointer at mem16le[(m+X)&0xFF], value at pointer.
	PreIndexedIndirect
	// PostIndexedIndirect: pointer at mem16le[m], value at pointer+Y.
	PostIndexedIndirect
	// Offset is a raw signed branch displacement; not routed through Get/Set.
	Offset
	// TwoByteImmediate is a raw JSR/JMP target; not routed through Get/Set.
	TwoByteImmediate
)

// Operand is the resolved argument of an instruction: a closed tagged
// variant over the 6502's documented addressing modes. Only the fields
// relevant to Kind are meaningful.
type Operand struct {
	Kind OperandKind

	Imm   uint8         // Immediate
	Addr  uint16        // Absolute / Indirect / TwoByteImmediate target
	Base  uint16        // Indexed base
	Reg   IndexRegister // Indexed register
	ZP    uint8         // PreIndexedIndirect / PostIndexedIndirect pointer byte
	Delta int8          // Offset
}

func indexRegValue(c *CPU, reg IndexRegister) uint16 {
	if reg == IndexX {
		return uint16(c.Registers.X)
	}
	return uint16(c.Registers.Y)
}

// GetAddr yields the operand's 16-bit effective address. Immediate and
// Accumulator have no address and fail with ErrNonAddressOperand.
func (op Operand) GetAddr(c *CPU, m mem.Memory) (uint16, error) {
	switch op.Kind {
	case Immediate, Accumulator:
		return 0, ErrNonAddressOperand
	case Absolute:
		return op.Addr, nil
	case Indexed:
		// 16-bit arithmetic; this abstraction does not emulate the
		// zero-page-wrap quirk of hardware zero-page,X/Y addressing.
		return op.Base + indexRegValue(c, op.Reg), nil
	case Indirect:
		return mem.GetU16LE(m, uint64(op.Addr))
	case PreIndexedIndirect:
		ptr := (uint16(op.ZP) + uint16(c.Registers.X)) & 0xFF
		return mem.GetU16LE(m, uint64(ptr))
	case PostIndexedIndirect:
		// Deviation from hardware, preserved intentionally: the
		// pointer fetch is plain 16-bit arithmetic with no zero-page
		// wrap between op.ZP and op.ZP+1.
		base, err := mem.GetU16LE(m, uint64(op.ZP))
		if err != nil {
			return 0, err
		}
		return base + uint16(c.Registers.Y), nil
	default:
		return 0, ErrNonAddressOperand
	}
}

// GetU8 returns the byte the operand names. Immediate and Accumulator
// bypass the bus entirely; every other variant resolves GetAddr first.
func (op Operand) GetU8(c *CPU, m mem.Memory) (uint8, error) {
	switch op.Kind {
	case Immediate:
		return op.Imm, nil
	case Accumulator:
		return c.Registers.A, nil
	default:
		addr, err := op.GetAddr(c, m)
		if err != nil {
			return 0, err
		}
		return m.GetU8(uint64(addr))
	}
}

// SetU8 writes v through the operand. Only Absolute, Indexed, and
// Accumulator support writes; everything else fails with
// ErrReadOnlyOperand.
func (op Operand) SetU8(c *CPU, m mem.Memory, v uint8) error {
	switch op.Kind {
	case Accumulator:
		c.Registers.A = v
		return nil
	case Absolute, Indexed:
		addr, err := op.GetAddr(c, m)
		if err != nil {
			return err
		}
		return m.SetU8(uint64(addr), v)
	default:
		return ErrReadOnlyOperand
	}
}
