package mem

// Mirrored wraps a backing store and presents a larger, repeating address
// window over it: address a maps to a % inner.Len(). This is the same
// addr&mask trick a memory map typically applies to its built-in RAM and
// PPU register block, lifted into a reusable Memory so callers don't have
// to mask addresses by hand at every attach site.
type Mirrored struct {
	inner  Memory
	window uint64
}

// NewMirrored reports window as its own length while repeating inner every
// inner.Len() bytes. window must be a multiple of inner.Len().
func NewMirrored(inner Memory, window uint64) *Mirrored {
	return &Mirrored{inner: inner, window: window}
}

func (m *Mirrored) Len() uint64 {
	return m.window
}

func (m *Mirrored) GetU8(addr uint64) (uint8, error) {
	if addr >= m.window {
		return 0, &OutOfBoundsError{Addr: addr, Len: m.window}
	}
	return m.inner.GetU8(addr % m.inner.Len())
}

func (m *Mirrored) SetU8(addr uint64, v uint8) error {
	if addr >= m.window {
		return &OutOfBoundsError{Addr: addr, Len: m.window}
	}
	return m.inner.SetU8(addr%m.inner.Len(), v)
}
