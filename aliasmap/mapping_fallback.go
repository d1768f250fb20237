//go:build !(linux && (amd64 || arm64))

// File: aliasmap/mapping_fallback.go
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0

package aliasmap

// Supported reports whether this build can install virtual-aliasing
// mappings. False everywhere the linux/(amd64|arm64) MAP_FIXED remap trick
// isn't available; callers should use ring.NewSplitRing instead.
func Supported() bool { return false }

func newPlatform(p, v int) (*Mapping, error) {
	return nil, &AllocFailedError{Stage: StageReserveVirtual, Err: ErrUnsupportedPlatform}
}
