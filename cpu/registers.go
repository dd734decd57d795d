package cpu

// Registers holds the accumulator and index registers plus the stack
// pointer. Flags and the program counter are tracked separately (Flags,
// ProgramCounter) since they have their own invariants.
type Registers struct {
	A, X, Y uint8
	SP      uint8
}

// initialStackPointer is the well-known 6502 power-on stack pointer value.
const initialStackPointer = 0xFD

func newRegisters() Registers {
	return Registers{SP: initialStackPointer}
}

// RegisterName identifies a CPU register generically, used by debug
// tooling that wants to get or set "whichever register the user asked for"
// without a type switch at every call site.
type RegisterName int

const (
	RegA RegisterName = iota
	RegX
	RegY
	RegP
	RegSP
)

func (n RegisterName) String() string {
	switch n {
	case RegA:
		return "A"
	case RegX:
		return "X"
	case RegY:
		return "Y"
	case RegP:
		return "P"
	case RegSP:
		return "S"
	default:
		return "?"
	}
}

// Get retrieves the named register's value from cpu.
func (n RegisterName) Get(c *CPU) uint8 {
	switch n {
	case RegA:
		return c.Registers.A
	case RegX:
		return c.Registers.X
	case RegY:
		return c.Registers.Y
	case RegP:
		return c.Flags.Bits()
	case RegSP:
		return c.Registers.SP
	default:
		panic("unknown register name")
	}
}

// Set stores val into the named register on cpu. Setting RegP goes through
// Flags.Replace, so FlagReserved is re-asserted.
func (n RegisterName) Set(c *CPU, val uint8) {
	switch n {
	case RegA:
		c.Registers.A = val
	case RegX:
		c.Registers.X = val
	case RegY:
		c.Registers.Y = val
	case RegP:
		c.Flags.Replace(val)
	case RegSP:
		c.Registers.SP = val
	default:
		panic("unknown register name")
	}
}
