package mem

import "sort"

type segment struct {
	base    uint64
	backing Memory
}

func (s segment) end() uint64 {
	return s.base + s.backing.Len()
}

// Virtual composes heterogeneous backing stores (RAM, ROM, memory-mapped
// registers) into one address space. Segments are kept in base-address
// order; attaching a segment whose half-open range would intersect an
// existing one is rejected with ErrMemoryOverlap and leaves the segment list
// unchanged. Lookup is a binary search (sort.Search) over the sorted
// segments.
type Virtual struct {
	segments []segment
	size     uint64
}

// NewVirtual creates an empty virtual address space reporting the given
// total addressable size (used only for Len; segments may cover less).
func NewVirtual(size uint64) *Virtual {
	return &Virtual{size: size}
}

func (v *Virtual) Len() uint64 {
	return v.size
}

// Attach maps backing at base. It fails with ErrMemoryOverlap if the new
// segment's range [base, base+backing.Len()) intersects any segment already
// attached.
func (v *Virtual) Attach(base uint64, backing Memory) error {
	end := base + backing.Len()
	idx := sort.Search(len(v.segments), func(i int) bool {
		return v.segments[i].base >= base
	})

	if idx > 0 && v.segments[idx-1].end() > base {
		return ErrMemoryOverlap
	}
	if idx < len(v.segments) && end > v.segments[idx].base {
		return ErrMemoryOverlap
	}

	v.segments = append(v.segments, segment{})
	copy(v.segments[idx+1:], v.segments[idx:])
	v.segments[idx] = segment{base: base, backing: backing}
	return nil
}

// Detach removes the segment starting exactly at base, if any.
func (v *Virtual) Detach(base uint64) {
	for i, s := range v.segments {
		if s.base == base {
			v.segments = append(v.segments[:i], v.segments[i+1:]...)
			return
		}
	}
}

// find returns the segment containing addr, or ok=false.
func (v *Virtual) find(addr uint64) (segment, bool) {
	// segments are sorted by base; the owning segment is the last one
	// whose base is <= addr.
	idx := sort.Search(len(v.segments), func(i int) bool {
		return v.segments[i].base > addr
	}) - 1
	if idx < 0 {
		return segment{}, false
	}
	s := v.segments[idx]
	if addr >= s.end() {
		return segment{}, false
	}
	return s, true
}

func (v *Virtual) GetU8(addr uint64) (uint8, error) {
	s, ok := v.find(addr)
	if !ok {
		return 0, &OutOfBoundsError{Addr: addr, Len: v.size}
	}
	return s.backing.GetU8(addr - s.base)
}

func (v *Virtual) SetU8(addr uint64, val uint8) error {
	s, ok := v.find(addr)
	if !ok {
		return &OutOfBoundsError{Addr: addr, Len: v.size}
	}
	return s.backing.SetU8(addr-s.base, val)
}
