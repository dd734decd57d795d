package mem

// ReadOnly wraps a Memory and fails every write with
// ErrMemoryNotWritable. Used to model ROM banks.
type ReadOnly struct {
	inner Memory
}

func NewReadOnly(inner Memory) *ReadOnly {
	return &ReadOnly{inner: inner}
}

func (r *ReadOnly) Len() uint64 {
	return r.inner.Len()
}

func (r *ReadOnly) GetU8(addr uint64) (uint8, error) {
	return r.inner.GetU8(addr)
}

func (r *ReadOnly) SetU8(addr uint64, v uint8) error {
	return ErrMemoryNotWritable
}

// WriteOnly wraps a Memory and fails every read with
// ErrMemoryNotReadable. Used to model write-only memory-mapped registers.
type WriteOnly struct {
	inner Memory
}

func NewWriteOnly(inner Memory) *WriteOnly {
	return &WriteOnly{inner: inner}
}

func (w *WriteOnly) Len() uint64 {
	return w.inner.Len()
}

func (w *WriteOnly) GetU8(addr uint64) (uint8, error) {
	return 0, ErrMemoryNotReadable
}

func (w *WriteOnly) SetU8(addr uint64, v uint8) error {
	return w.inner.SetU8(addr, v)
}
