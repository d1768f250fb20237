// File: pagesize/pagesize.go
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0
//
// Package pagesize provides the page-rounding and power-of-two helpers that
// every physical/virtual size in cbuffer is derived from.
package pagesize

import (
	"os"
	"sync"
)

var (
	once     sync.Once
	pageSize int
)

// Get returns the OS page size, queried once and cached for the life of the
// process.
func Get() int {
	once.Do(func() {
		pageSize = os.Getpagesize()
	})
	return pageSize
}

// RoundUpToPage returns the smallest multiple of the page size that is >=
// max(n, page size). n <= 0 returns exactly one page.
func RoundUpToPage(n int) int {
	ps := Get()
	if n <= 0 {
		return ps
	}
	if n < ps {
		return ps
	}
	return ((n + ps - 1) / ps) * ps
}

// BitCeil returns the smallest power of two >= max(n, 1).
func BitCeil(n int) int {
	if n <= 1 {
		return 1
	}
	u := uint64(n - 1)
	u |= u >> 1
	u |= u >> 2
	u |= u >> 4
	u |= u >> 8
	u |= u >> 16
	u |= u >> 32
	return int(u + 1)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
