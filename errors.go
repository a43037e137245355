// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// Sentinel errors, one per §7 error kind. Callers should compare with
// [errors.Is], not string matching — wording is intentionally
// non-normative, the taxonomy is.
var (
	// ErrInvalidArgument is returned for a nil pointer or zero-size
	// argument where one is forbidden. No state is changed.
	ErrInvalidArgument = errors.New("xchg: invalid argument")

	// ErrOutOfBounds is returned by Cursor.Seek to a negative position or
	// past the end of the cursor's buffer. The position is unchanged.
	ErrOutOfBounds = errors.New("xchg: seek out of bounds")

	// ErrEOF is returned when a cursor has no bytes left to read a tag.
	ErrEOF = errors.New("xchg: no more data to read")

	// ErrTruncated is returned when a length prefix or payload extends
	// past the cursor's end.
	ErrTruncated = errors.New("xchg: message is truncated")

	// ErrInvalidType is returned when a decoded tag carries the reserved
	// Invalid type code, or any code outside the known range.
	ErrInvalidType = errors.New("xchg: invalid scalar type")

	// ErrInsufficientSpace is returned when a write would exceed the
	// cursor's remaining capacity.
	ErrInsufficientSpace = errors.New("xchg: insufficient space to write value")

	// ErrTypeMismatch is returned by a typed reader when the next value's
	// (type, nullness, list-ness) does not match what was requested. The
	// cursor's position and Err() are left exactly as they were, so a
	// Peek-then-dispatch caller can try a different reader without
	// rewinding anything.
	ErrTypeMismatch = errors.New("xchg: value type does not match reader")

	// ErrInvalidMessage is returned by Channel.Send/Return when the given
	// Cursor is not the one the matching Prepare/Receive call produced.
	ErrInvalidMessage = errors.New("xchg: message does not match next channel slot")

	// ErrNoEgress is returned by Channel.Prepare/Send when the channel
	// was not configured with an egress buffer.
	ErrNoEgress = errors.New("xchg: channel has no egress")

	// ErrNoIngress is returned by Channel.Receive/Return when the channel
	// was not configured with an ingress buffer.
	ErrNoIngress = errors.New("xchg: channel has no ingress")

	// ErrInvalidSize is returned by NewChannel when slotSize or a buffer
	// length violates the power-of-two / multiple-of-slotSize rules.
	ErrInvalidSize = errors.New("xchg: invalid channel size")

	// ErrFull is returned by Channel.Prepare when the egress ring has no
	// free slot. It is a control-flow signal, not a failure — it
	// satisfies [IsWouldBlock] for ecosystem consistency with
	// code.hybscloud.com/lfq's own ErrWouldBlock.
	ErrFull = fmt.Errorf("xchg: channel is full: %w", iox.ErrWouldBlock)

	// ErrEmpty is returned by Channel.Receive when the ingress ring has
	// no full slot yet. Also a control-flow signal; see [ErrFull].
	ErrEmpty = fmt.Errorf("xchg: channel is empty: %w", iox.ErrWouldBlock)
)

// IsWouldBlock reports whether err is [ErrFull], [ErrEmpty], or anything
// else the caller should simply retry later rather than treat as
// failure. Delegates to [iox.IsWouldBlock] for wrapped-error support, the
// same convention code.hybscloud.com/lfq uses for its own ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control-flow signal rather than a
// genuine failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err is nil or a semantic signal such as
// [ErrFull] / [ErrEmpty]. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
