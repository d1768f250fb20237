// Package ring implements the aliased (MagicRing) and naïve (SplitRing)
// circular byte buffers, plus the flat typed array (FlatArray) used as their
// comparison baseline.
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0
package ring

import (
	"fmt"
	"unsafe"

	"github.com/ianmihura/cbuffer/aliasmap"
	"github.com/ianmihura/cbuffer/pagesize"
)

// DefaultVirtualMultiplier is the default virtual-to-physical size ratio
// used by NewMagicRing. Sixteen aliases of the physical window is enough
// headroom for most record sizes without reserving an excessive amount of
// address space.
const DefaultVirtualMultiplier = 16

// MagicRing is a circular byte queue backed by a virtual-aliasing mapping:
// any record no larger than the physical window can be pushed or popped with
// a single unconditional copy, because the mapping guarantees that every
// span of length <= Phys that starts inside [0, Virt) and ends at or before
// Virt is contiguous physical storage.
//
// MagicRing is not safe for concurrent use. It has no "full" state: Push
// always succeeds and silently overwrites unread data if the caller races
// ahead of Pop.
type MagicRing struct {
	mapping *aliasmap.Mapping
	head    uint64
	tail    uint64
}

// NewMagicRing constructs a ring with physical size RoundUpToPage(physBytes)
// and virtual size DefaultVirtualMultiplier * physSize.
func NewMagicRing(physBytes int) (*MagicRing, error) {
	return NewMagicRingWithVirtual(physBytes, DefaultVirtualMultiplier)
}

// NewMagicRingWithVirtual constructs a ring with physical size
// RoundUpToPage(physBytes) and virtual size RoundUpToPage(vMult * physSize).
func NewMagicRingWithVirtual(physBytes, vMult int) (*MagicRing, error) {
	if vMult < 1 {
		vMult = 1
	}
	p := pagesize.RoundUpToPage(physBytes)
	v := pagesize.RoundUpToPage(vMult * p)
	m, err := aliasmap.New(p, v)
	if err != nil {
		return nil, err
	}
	return &MagicRing{mapping: m}, nil
}

// Reset sets head = tail = 0. It does not zero memory.
func (r *MagicRing) Reset() {
	r.head = 0
	r.tail = 0
}

// PhysSize returns the physical backing size in bytes.
func (r *MagicRing) PhysSize() int { return r.mapping.Phys }

// VirtSize returns the total virtual reservation size in bytes.
func (r *MagicRing) VirtSize() int { return r.mapping.Virt }

// PageCount returns Virt/Phys, the number of times the physical region is
// aliased across the reservation.
func (r *MagicRing) PageCount() int { return r.mapping.PageCount() }

// PhysItemCount returns how many elements of elemSize fit in the physical
// window.
func (r *MagicRing) PhysItemCount(elemSize int) int { return r.mapping.Phys / elemSize }

// VirtItemCount returns how many elements of elemSize fit in the virtual
// reservation.
func (r *MagicRing) VirtItemCount(elemSize int) int { return r.mapping.Virt / elemSize }

// ByteAt returns the byte at offset i without bounds checking beyond what
// the underlying slice enforces; implementation-defined for i >= VirtSize().
func (r *MagicRing) ByteAt(i int) byte { return r.mapping.Base[i] }

// ByteAtChecked is the bounds-checked counterpart to ByteAt, returning
// ErrPrecondition instead of panicking when i is out of range.
func (r *MagicRing) ByteAtChecked(i int) (byte, error) {
	if i < 0 || i >= r.mapping.Virt {
		return 0, fmt.Errorf("%w: byte offset %d out of [0, %d)", ErrPrecondition, i, r.mapping.Virt)
	}
	return r.mapping.Base[i], nil
}

// Close releases the ring's virtual reservation. It is idempotent and never
// returns an error a caller must act on; release failures go to
// aliasmap.DiagLog.
func (r *MagicRing) Close() error {
	return r.mapping.Close()
}

// Push writes the bytes of v starting at the current head and advances head
// by sizeof(v). It always succeeds once constructed; it returns
// ErrPrecondition only if sizeof(v) exceeds the ring's physical window,
// since the aliasing guarantee does not extend past a single physical span.
func Push[R any](r *MagicRing, v R) error {
	size := int(unsafe.Sizeof(v))
	if size > r.mapping.Phys {
		return fmt.Errorf("%w: record size %d exceeds physical window %d", ErrPrecondition, size, r.mapping.Phys)
	}

	*(*R)(unsafe.Pointer(&r.mapping.Base[r.head])) = v

	r.head += uint64(size)
	if r.head >= uint64(r.mapping.Virt) {
		r.head -= uint64(r.mapping.Virt)
	}
	return nil
}

// Pop reads sizeof(R) bytes starting at the current tail, advances tail by
// that amount, and returns the decoded value. It returns whatever bytes
// currently lie at tail if the caller has not pushed that much data, since
// MagicRing trusts the caller to track what is actually live.
func Pop[R any](r *MagicRing) (R, error) {
	var out R
	size := int(unsafe.Sizeof(out))
	if size > r.mapping.Phys {
		return out, fmt.Errorf("%w: record size %d exceeds physical window %d", ErrPrecondition, size, r.mapping.Phys)
	}

	out = *(*R)(unsafe.Pointer(&r.mapping.Base[r.tail]))

	r.tail += uint64(size)
	if r.tail >= uint64(r.mapping.Virt) {
		r.tail -= uint64(r.mapping.Virt)
	}
	return out, nil
}
