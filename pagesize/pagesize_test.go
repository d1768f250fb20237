// File: pagesize/pagesize_test.go
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0

package pagesize

import "testing"

// TestRoundUpToPage checks exact rounding against a fixed table of inputs.
func TestRoundUpToPage(t *testing.T) {
	ps := Get()
	if ps != 4096 {
		t.Skipf("test assumes a 4096-byte page, got %d", ps)
	}

	cases := []struct {
		in, want int
	}{
		{0, 4096},
		{1, 4096},
		{4096, 4096},
		{4097, 8192},
		{5000, 8192},
		{50000, 53248},
	}
	for _, c := range cases {
		if got := RoundUpToPage(c.in); got != c.want {
			t.Errorf("RoundUpToPage(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRoundUpToPageIsMultiple(t *testing.T) {
	ps := Get()
	for _, n := range []int{0, 1, ps - 1, ps, ps + 1, 10 * ps, 10*ps + 3} {
		got := RoundUpToPage(n)
		if got%ps != 0 {
			t.Errorf("RoundUpToPage(%d) = %d is not a multiple of page size %d", n, got, ps)
		}
		if got < n {
			t.Errorf("RoundUpToPage(%d) = %d is smaller than input", n, got)
		}
	}
}

func TestBitCeil(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{1024, 1024},
		{1025, 2048},
	}
	for _, c := range cases {
		if got := BitCeil(c.in); got != c.want {
			t.Errorf("BitCeil(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, -1, 3, 5, 1023} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}
