// File: ring/errors.go
// Author: ianmihura <ianmihura@users.noreply.github.com>
// License: Apache-2.0

package ring

import "errors"

// ErrPrecondition signals a programming error: a record larger than the
// ring's physical window, an out-of-range offset or index passed to a checked
// accessor (ByteAtChecked, FlatArray.At), or a non-positive count passed to
// NewFlatArray. It is never returned once a ring has been successfully
// constructed and used within its documented constraints.
var ErrPrecondition = errors.New("cbuffer: precondition violated")
