package cpu

import "github.com/bdwalton/nescore/mem"

// bcdToUint decodes one BCD byte ((v/10)<<4 | v%10 is the encoding) back to
// its decimal value 0-99.
func bcdToUint(v uint8) int {
	return int(v>>4)*10 + int(v&0x0F)
}

// uintToBcd encodes a decimal value 0-99 as a BCD byte.
func uintToBcd(v int) uint8 {
	return uint8((v/10)<<4 | (v % 10))
}

// Execute applies inst's semantic effect to c and m: register/flag
// updates, memory reads/writes, PC changes, and stack traffic. It is the
// single dispatch point the CPU's Step loop calls after Decode.
func Execute(c *CPU, m mem.Memory, inst Instruction) error {
	op := inst.Operand

	switch inst.Mnemonic {
	case ADC:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.adc(v)

	case SBC:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.sbc(v)

	case AND:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.Registers.A &= v
		c.Flags.SetSignAndZero(c.Registers.A)

	case ORA:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.Registers.A |= v
		c.Flags.SetSignAndZero(c.Registers.A)

	case EOR:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.Registers.A ^= v
		c.Flags.SetSignAndZero(c.Registers.A)

	case BIT:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.bit(v)

	case ASL:
		return c.shift(m, op, func(ov uint8) (nv uint8, carry bool) {
			return ov << 1, ov&0x80 != 0
		})

	case LSR:
		return c.shift(m, op, func(ov uint8) (nv uint8, carry bool) {
			return ov >> 1, ov&0x01 != 0
		})

	case ROL:
		carryIn := c.Flags.Carry()
		return c.shift(m, op, func(ov uint8) (nv uint8, carry bool) {
			nv = ov << 1
			if carryIn {
				nv |= 0x01
			}
			return nv, ov&0x80 != 0
		})

	case ROR:
		carryIn := c.Flags.Carry()
		return c.shift(m, op, func(ov uint8) (nv uint8, carry bool) {
			nv = ov >> 1
			if carryIn {
				nv |= 0x80
			}
			return nv, ov&0x01 != 0
		})

	case CMP:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.compare(c.Registers.A, v)

	case CPX:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.compare(c.Registers.X, v)

	case CPY:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.compare(c.Registers.Y, v)

	case DEC:
		return c.incDecMem(m, op, -1)

	case INC:
		return c.incDecMem(m, op, 1)

	case DEX:
		c.Registers.X--
		c.Flags.SetSignAndZero(c.Registers.X)

	case DEY:
		c.Registers.Y--
		c.Flags.SetSignAndZero(c.Registers.Y)

	case INX:
		c.Registers.X++
		c.Flags.SetSignAndZero(c.Registers.X)

	case INY:
		c.Registers.Y++
		c.Flags.SetSignAndZero(c.Registers.Y)

	case LDA:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.Registers.A = v
		c.Flags.SetSignAndZero(v)

	case LDX:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.Registers.X = v
		c.Flags.SetSignAndZero(v)

	case LDY:
		v, err := op.GetU8(c, m)
		if err != nil {
			return err
		}
		c.Registers.Y = v
		c.Flags.SetSignAndZero(v)

	case STA:
		return op.SetU8(c, m, c.Registers.A)

	case STX:
		return op.SetU8(c, m, c.Registers.X)

	case STY:
		return op.SetU8(c, m, c.Registers.Y)

	case TAX:
		c.Registers.X = c.Registers.A
		c.Flags.SetSignAndZero(c.Registers.X)

	case TAY:
		c.Registers.Y = c.Registers.A
		c.Flags.SetSignAndZero(c.Registers.Y)

	case TXA:
		c.Registers.A = c.Registers.X
		c.Flags.SetSignAndZero(c.Registers.A)

	case TYA:
		c.Registers.A = c.Registers.Y
		c.Flags.SetSignAndZero(c.Registers.A)

	case TSX:
		c.Registers.X = c.Registers.SP
		c.Flags.SetSignAndZero(c.Registers.X)

	case TXS:
		c.Registers.SP = c.Registers.X

	case CLC:
		c.Flags.SetIf(FlagCarry, false)
	case SEC:
		c.Flags.SetIf(FlagCarry, true)
	case CLD:
		c.Flags.SetIf(FlagBCD, false)
	case SED:
		c.Flags.SetIf(FlagBCD, true)
	case CLI:
		c.Flags.SetIf(FlagInterrupt, false)
	case SEI:
		c.Flags.SetIf(FlagInterrupt, true)
	case CLV:
		c.Flags.SetIf(FlagOverflow, false)

	case PHA:
		return c.Push(m, c.Registers.A)

	case PHP:
		return c.Push(m, c.Flags.Bits()|FlagBreak)

	case PLA:
		v, err := c.Pull(m)
		if err != nil {
			return err
		}
		c.Registers.A = v
		c.Flags.SetSignAndZero(v)

	case PLP:
		v, err := c.Pull(m)
		if err != nil {
			return err
		}
		c.Flags.Replace(v)

	case JMP:
		return c.execJMP(m, op)

	case JSR:
		return c.execJSR(m, op)

	case RTS:
		return c.execRTS(m)

	case RTI:
		return c.execRTI(m)

	case BRK:
		return c.execBRK(m)

	case BCC:
		c.branch(!c.Flags.has(FlagCarry), op)
	case BCS:
		c.branch(c.Flags.has(FlagCarry), op)
	case BEQ:
		c.branch(c.Flags.has(FlagZero), op)
	case BNE:
		c.branch(!c.Flags.has(FlagZero), op)
	case BMI:
		c.branch(c.Flags.has(FlagSign), op)
	case BPL:
		c.branch(!c.Flags.has(FlagSign), op)
	case BVS:
		c.branch(c.Flags.has(FlagOverflow), op)
	case BVC:
		c.branch(!c.Flags.has(FlagOverflow), op)

	case NOP:
		// no effect

	default:
		return ErrUnknownOpcode
	}

	return nil
}

// adc implements ADC's two modes: BCD digit-pair arithmetic when the CPU
// was constructed with BCD support and the BCD flag is currently set, or
// plain binary arithmetic otherwise.
func (c *CPU) adc(value uint8) {
	if c.BCDEnabled && c.Flags.has(FlagBCD) {
		carry := 0
		if c.Flags.Carry() {
			carry = 1
		}
		sum := bcdToUint(c.Registers.A) + bcdToUint(value) + carry
		c.Flags.SetIf(FlagCarry, sum > 99)
		c.Registers.A = uintToBcd(sum % 100)
		c.Flags.SetSignAndZero(c.Registers.A)
		return
	}

	carry := uint16(0)
	if c.Flags.Carry() {
		carry = 1
	}
	sum := uint16(c.Registers.A) + uint16(value) + carry
	result := uint8(sum)

	c.Flags.SetIf(FlagCarry, sum > 0xFF)
	c.Flags.SetIf(FlagOverflow, (c.Registers.A^result)&(value^result)&0x80 != 0)
	c.Registers.A = result
	c.Flags.SetSignAndZero(result)
}

// sbc mirrors adc: BCD digit-pair subtraction in decimal mode, otherwise
// the standard SBC-as-ADC-of-the-complement hardware trick.
func (c *CPU) sbc(value uint8) {
	if c.BCDEnabled && c.Flags.has(FlagBCD) {
		borrow := 1
		if c.Flags.Carry() {
			borrow = 0
		}
		diff := bcdToUint(c.Registers.A) - bcdToUint(value) - borrow
		c.Flags.SetIf(FlagCarry, diff >= 0)
		if diff < 0 {
			diff += 100
		}
		c.Registers.A = uintToBcd(diff % 100)
		c.Flags.SetSignAndZero(c.Registers.A)
		return
	}

	c.adc(^value)
}

// bit tests value against the accumulator: ZERO reflects value&A, SIGN and
// OVERFLOW are copied directly from bits 7 and 6 of value.
func (c *CPU) bit(value uint8) {
	c.Flags.SetIf(FlagZero, value&c.Registers.A == 0)
	c.Flags.SetIf(FlagSign, value&FlagSign != 0)
	c.Flags.SetIf(FlagOverflow, value&FlagOverflow != 0)
}

// compare computes reg-operand in signed arithmetic per the CMP/CPX/CPY
// flag rule: SIGN set iff the difference is negative, CARRY set iff it is
// >= 0, ZERO set iff it is exactly 0.
func (c *CPU) compare(reg, value uint8) {
	diff := int16(reg) - int16(value)
	c.Flags.SetIf(FlagSign, diff < 0)
	c.Flags.SetIf(FlagCarry, diff >= 0)
	c.Flags.SetIf(FlagZero, diff == 0)
}

// shift applies an ASL/LSR/ROL/ROR-shaped transform (old value in, new
// value and shifted-out carry bit out) to op, writing the result back and
// setting flags accordingly.
func (c *CPU) shift(m mem.Memory, op Operand, f func(ov uint8) (nv uint8, carry bool)) error {
	ov, err := op.GetU8(c, m)
	if err != nil {
		return err
	}
	nv, carry := f(ov)
	if err := op.SetU8(c, m, nv); err != nil {
		return err
	}
	c.Flags.SetIf(FlagCarry, carry)
	c.Flags.SetSignAndZero(nv)
	return nil
}

func (c *CPU) incDecMem(m mem.Memory, op Operand, delta int) error {
	ov, err := op.GetU8(c, m)
	if err != nil {
		return err
	}
	nv := uint8(int(ov) + delta)
	if err := op.SetU8(c, m, nv); err != nil {
		return err
	}
	c.Flags.SetSignAndZero(nv)
	return nil
}

// branch table: BCC !C, BCS C, BEQ Z, BNE !Z, BMI N, BPL !N, BVS V, BVC !V.
// The displacement is only applied when cond holds; PC is otherwise left at
// the address Decode already advanced it to (the start of the next
// instruction).
func (c *CPU) branch(cond bool, op Operand) {
	if cond {
		c.PC.Advance(int(op.Delta))
	}
}

func (c *CPU) execJMP(m mem.Memory, op Operand) error {
	switch op.Kind {
	case TwoByteImmediate:
		c.PC.Set(op.Addr)
		return nil
	default:
		addr, err := op.GetAddr(c, m)
		if err != nil {
			return err
		}
		c.PC.Set(addr)
		return nil
	}
}

func (c *CPU) execJSR(m mem.Memory, op Operand) error {
	if err := c.pushU16(m, c.PC.Get()-1); err != nil {
		return err
	}
	c.PC.Set(op.Addr)
	return nil
}

func (c *CPU) execRTS(m mem.Memory) error {
	addr, err := c.pullU16(m)
	if err != nil {
		return err
	}
	c.PC.Set(addr + 1)
	return nil
}

func (c *CPU) execRTI(m mem.Memory) error {
	p, err := c.Pull(m)
	if err != nil {
		return err
	}
	c.Flags.Replace(p)
	addr, err := c.pullU16(m)
	if err != nil {
		return err
	}
	c.PC.Set(addr)
	return nil
}

// execBRK implements the software interrupt. PC is advanced by one more
// byte (BRK's padding byte) before the return address is pushed, the
// pushed copy of P has BREAK forced on (the in-register P does not gain
// BREAK), and INTERRUPT is set on the in-register P after the push (real
// NMOS hardware does this even though it only affects the copy still in
// the register, not the one already on the stack).
func (c *CPU) execBRK(m mem.Memory) error {
	c.PC.Advance(1)
	if err := c.pushU16(m, c.PC.Get()); err != nil {
		return err
	}
	if err := c.Push(m, c.Flags.Bits()|FlagBreak); err != nil {
		return err
	}
	c.Flags.SetIf(FlagInterrupt, true)
	addr, err := mem.GetU16LE(m, vectorBRK)
	if err != nil {
		return err
	}
	c.PC.Set(addr)
	return nil
}
