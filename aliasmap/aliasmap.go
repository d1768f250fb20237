// Package aliasmap implements the virtual-aliasing mapping primitive.
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0
//
// A contiguous virtual reservation is backed by a single physical region
// installed at every slot, so that byte i of the reservation and byte
// (i mod phys) of the reservation refer to the same storage.
//
// Not every platform exposes the syscall trio this needs (a fixed-address
// MAP_FIXED remap plus an anonymous shared memory object). Supported reports
// whether the current build has a real implementation; callers without it
// should fall back to a non-aliased ring.
package aliasmap

import (
	"errors"
	"fmt"
	"log"

	"github.com/ianmihura/cbuffer/pagesize"
)

// ErrUnsupportedPlatform is returned by New when the current build has no
// aliasing backend. Callers should fall back to a split (non-aliased) ring.
var ErrUnsupportedPlatform = errors.New("aliasmap: virtual aliasing not supported on this platform")

// Stage identifies which step of the mapping algorithm failed.
type Stage int

const (
	StageReserveVirtual Stage = iota
	StageCreateMemObj
	StageSizeMemObj
	StageInstallMapping
)

func (s Stage) String() string {
	switch s {
	case StageReserveVirtual:
		return "reserve_virtual"
	case StageCreateMemObj:
		return "create_memobj"
	case StageSizeMemObj:
		return "size_memobj"
	case StageInstallMapping:
		return "install_mapping"
	default:
		return "unknown"
	}
}

// AllocFailedError signals that constructing a Mapping failed at Stage. No
// mapping is installed when this is returned.
type AllocFailedError struct {
	Stage Stage
	Err   error
}

func (e *AllocFailedError) Error() string {
	return fmt.Sprintf("aliasmap: alloc failed at %s: %v", e.Stage, e.Err)
}

func (e *AllocFailedError) Unwrap() error { return e.Err }

// DiagLog receives release-time errors that must not propagate from Close.
// Tests may redirect it; production code leaves it as log.Printf, mirroring
// the package-level diagnostic hook the rest of this codebase uses.
var DiagLog = log.Printf

// Mapping is a virtual reservation of size Virt bytes, backed by a single
// physical region of size Phys bytes repeated Virt/Phys times.
type Mapping struct {
	Base []byte // length Virt; Base[i] aliases Base[i%Phys]
	Phys int
	Virt int

	closed bool
	impl   mappingImpl
}

// mappingImpl is the platform-specific handle needed to release a Mapping.
// Defined per build in mapping_linux.go / mapping_fallback.go.
type mappingImpl interface {
	release(m *Mapping) error
}

// New reserves a virtual range of size v (rounded up to a multiple of p) and
// aliases it onto a single physical region of size p. p must be positive; it
// is rounded up to a page multiple first, and v is raised to at least p and
// then rounded up to a multiple of p, which makes it a page multiple too.
func New(p, v int) (*Mapping, error) {
	if p <= 0 {
		return nil, &AllocFailedError{Stage: StageReserveVirtual, Err: errors.New("physical size must be positive")}
	}
	p = pagesize.RoundUpToPage(p)
	if v < p {
		v = p
	}
	v = roundToMultiple(v, p)
	return newPlatform(p, v)
}

// roundToMultiple rounds v up to the nearest multiple of p.
func roundToMultiple(v, p int) int {
	if v%p == 0 {
		return v
	}
	return ((v / p) + 1) * p
}

// Close releases the whole [0, Virt) reservation in one operation. It always
// returns nil: release failures are sent to DiagLog and do not propagate. It
// is idempotent.
func (m *Mapping) Close() error {
	if m == nil || m.closed {
		return nil
	}
	m.closed = true
	if m.impl == nil {
		return nil
	}
	if err := m.impl.release(m); err != nil {
		DiagLog("aliasmap: release warning: %v", err)
	}
	return nil
}

// PageCount returns Virt/Phys, the number of times the physical region is
// aliased across the virtual reservation.
func (m *Mapping) PageCount() int {
	return m.Virt / m.Phys
}
