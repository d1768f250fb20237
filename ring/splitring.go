// File: ring/splitring.go
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0

package ring

import (
	"fmt"
	"unsafe"

	"github.com/ianmihura/cbuffer/pagesize"
)

// SplitRing is the naïve comparison baseline for MagicRing: a circular byte
// queue over a single flat allocation. Records that straddle the physical
// wrap point are copied in two pieces instead of one.
//
// SplitRing is also the fallback ring on platforms where aliasmap.Supported
// reports false.
type SplitRing struct {
	buf  []byte
	cap  int
	head int
	tail int
}

// NewSplitRing constructs a ring over a flat allocation of
// pagesize.RoundUpToPage(bytes) bytes.
func NewSplitRing(bytes int) (*SplitRing, error) {
	cap := pagesize.RoundUpToPage(bytes)
	return &SplitRing{
		buf: make([]byte, cap),
		cap: cap,
	}, nil
}

// Reset sets head = tail = 0. It does not zero memory.
func (r *SplitRing) Reset() {
	r.head = 0
	r.tail = 0
}

// Capacity returns the ring's byte capacity.
func (r *SplitRing) Capacity() int { return r.cap }

// ByteAt returns the byte at offset i without bounds checking beyond what
// the underlying slice enforces.
func (r *SplitRing) ByteAt(i int) byte { return r.buf[i] }

// ByteAtChecked is the bounds-checked counterpart to ByteAt.
func (r *SplitRing) ByteAtChecked(i int) (byte, error) {
	if i < 0 || i >= r.cap {
		return 0, fmt.Errorf("%w: byte offset %d out of [0, %d)", ErrPrecondition, i, r.cap)
	}
	return r.buf[i], nil
}

// Close releases the ring's backing storage. SplitRing has nothing to free
// beyond letting the GC reclaim buf; Close exists so SplitRing and MagicRing
// share the same lifecycle surface.
func (r *SplitRing) Close() error {
	r.buf = nil
	return nil
}

// SplitPush writes the bytes of v starting at head, splitting the copy across the
// wrap point when head+sizeof(v) exceeds Capacity().
func SplitPush[R any](r *SplitRing, v R) error {
	size := int(unsafe.Sizeof(v))
	if size > r.cap {
		return fmt.Errorf("%w: record size %d exceeds capacity %d", ErrPrecondition, size, r.cap)
	}

	c := r.head
	if c+size <= r.cap {
		// Hot path: contiguous write, branch-unlikely on the alternative.
		*(*R)(unsafe.Pointer(&r.buf[c])) = v
		c += size
		if c == r.cap {
			c = 0
		}
	} else {
		// Cold path: split across the physical boundary.
		src := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
		first := r.cap - c
		copy(r.buf[c:], src[:first])
		copy(r.buf[:size-first], src[first:])
		c = size - first
	}
	r.head = c
	return nil
}

// SplitPop reads sizeof(R) bytes starting at tail, splitting the copy across the
// wrap point when tail+sizeof(R) exceeds Capacity().
func SplitPop[R any](r *SplitRing) (R, error) {
	var out R
	size := int(unsafe.Sizeof(out))
	if size > r.cap {
		return out, fmt.Errorf("%w: record size %d exceeds capacity %d", ErrPrecondition, size, r.cap)
	}

	c := r.tail
	if c+size <= r.cap {
		out = *(*R)(unsafe.Pointer(&r.buf[c]))
		c += size
		if c == r.cap {
			c = 0
		}
	} else {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&out)), size)
		first := r.cap - c
		copy(dst[:first], r.buf[c:])
		copy(dst[first:], r.buf[:size-first])
		c = size - first
	}
	r.tail = c
	return out, nil
}
