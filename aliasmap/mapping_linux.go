//go:build linux && (amd64 || arm64)

// File: aliasmap/mapping_linux.go
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0
//
// The real virtual-aliasing backend, available on linux/amd64 and
// linux/arm64.

package aliasmap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Supported reports whether this build can install virtual-aliasing
// mappings. True on linux/amd64 and linux/arm64.
func Supported() bool { return true }

type unixMapping struct {
	orig unsafe.Pointer
}

func (m unixMapping) release(mp *Mapping) error {
	if m.orig == nil {
		return nil
	}
	if err := unix.MunmapPtr(m.orig, uintptr(mp.Virt)); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}

// newPlatform implements the aliasing mapping in four steps: reserve a
// virtual range, back it with one anonymous shared memory
// object, install that object at every slot, close the handle.
//
// MmapPtr (rather than Mmap) is used throughout so the reservation and its
// aliased installs are addressed as raw pointers: two Go []byte slices are
// not allowed to alias the same memory as far as the race detector and
// escape analysis are concerned, but this is exactly what an aliased ring
// needs, so the reservation is only turned into a slice once, at the end,
// over the full virtual span.
func newPlatform(p, v int) (*Mapping, error) {
	// Step 1: reserve the virtual range with no access permissions. This
	// pins the address range so every later MAP_FIXED install lands inside
	// it and nothing else can be placed there first.
	orig, err := unix.MmapPtr(-1, 0, nil, uintptr(v), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, &AllocFailedError{Stage: StageReserveVirtual, Err: err}
	}

	// Step 2: create the anonymous, shared, page-aligned backing object.
	fd, err := unix.MemfdCreate("cbuffer-magicring", unix.MFD_CLOEXEC)
	if err != nil {
		unix.MunmapPtr(orig, uintptr(v))
		return nil, &AllocFailedError{Stage: StageCreateMemObj, Err: err}
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(p)); err != nil {
		unix.MunmapPtr(orig, uintptr(v))
		return nil, &AllocFailedError{Stage: StageSizeMemObj, Err: err}
	}

	// Step 3: install the same object at every slot in the reservation,
	// replacing the PROT_NONE placeholder with a read+write shared mapping
	// fixed at that exact address.
	slots := v / p
	for k := 0; k < slots; k++ {
		addr := unsafe.Add(orig, k*p)
		_, err := unix.MmapPtr(fd, 0, addr, uintptr(p), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_FIXED)
		if err != nil {
			unix.MunmapPtr(orig, uintptr(v))
			return nil, &AllocFailedError{Stage: StageInstallMapping, Err: err}
		}
	}

	// Step 4 (handle close) happens via the deferred unix.Close(fd) above;
	// the installed mappings keep the object's storage alive.
	return &Mapping{
		Base: unsafe.Slice((*byte)(orig), v),
		Phys: p,
		Virt: v,
		impl: unixMapping{orig: orig},
	}, nil
}
