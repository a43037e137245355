// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

import "encoding/binary"

// Cursor is a transient, non-owning handle that positions read/write
// operations inside a byte slice — typically a slot handed back by
// [Channel.Prepare] or [Channel.Receive], but any caller-supplied slice
// works for standalone encode/decode.
//
// A Cursor owns no memory. It borrows the slice it was bound to, and
// every list read it returns is a window into that same slice: no
// allocation, no copy. The borrow is only valid until the Cursor is
// rebound (by [Cursor.Init], or by the next Prepare/Receive on its
// direction) or the underlying buffer is reclaimed.
type Cursor struct {
	data    []byte
	pos     int
	lastErr error
}

// Init binds c to data and resets its position and error state. data
// must be non-empty.
func (c *Cursor) Init(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidArgument
	}
	c.data = data
	c.pos = 0
	c.lastErr = nil
	return nil
}

// Reset seeks c back to the beginning of its bound buffer and clears its
// error state. The buffer binding itself is unchanged.
func (c *Cursor) Reset() {
	c.pos = 0
	c.lastErr = nil
}

// Position returns the next byte offset c will read from or write to.
func (c *Cursor) Position() int {
	return c.pos
}

// Seek moves c to an absolute byte offset. Unlike the C reference this
// package ports, position == len(data) is accepted (seeking to exactly
// EOF); only a negative position or position > len(data) fails.
func (c *Cursor) Seek(position int) error {
	if position < 0 || position > len(c.data) {
		c.lastErr = ErrOutOfBounds
		return ErrOutOfBounds
	}
	c.pos = position
	c.lastErr = nil
	return nil
}

// Err returns the error recorded by the most recent operation that
// recorded one. Per §7, a type-mismatch from a typed reader never
// updates this — only the genuine failure kinds do.
func (c *Cursor) Err() error {
	return c.lastErr
}

// PeekInfo describes the next value in a Cursor without consuming it.
type PeekInfo struct {
	Type  ScalarType
	Null  bool
	List  bool
	Count uint64
}

// Peek reports the type, nullness, list-ness, and (for a non-null list)
// element count of the next value in c, without advancing its position.
//
// If Peek succeeds, the matching typed reader on the same cursor is
// guaranteed to succeed — callers can dispatch on Peek's result before
// committing to a specific ReadXxx call.
func (c *Cursor) Peek() (PeekInfo, error) {
	_, t, err := c.decodeHeader(c.pos)
	if err != nil {
		return PeekInfo{}, err
	}
	return PeekInfo{Type: t.typ, Null: t.isNull, List: t.isList, Count: t.count}, nil
}

// decodedTag carries the parsed tag plus the list count read from the
// length prefix (if any). decodeHeader returns the position just past
// both separately.
type decodedTag struct {
	typ    ScalarType
	isNull bool
	isList bool
	count  uint64
}

// decodeHeader parses the tag and, if present, the length prefix
// starting at pos, validates the payload fits, and returns the position
// just past the header (i.e. where the payload begins). It never
// advances c.pos — callers decide whether to commit — and on success it
// leaves c.lastErr exactly as it found it, so a caller checking for a
// type/null/list-ness mismatch after a successful parse can still report
// ErrTypeMismatch without erasing a genuine error recorded earlier. Only
// a parse failure here (EOF, truncation, invalid type) updates lastErr.
func (c *Cursor) decodeHeader(pos int) (int, decodedTag, error) {
	if pos+tagSize > len(c.data) {
		c.lastErr = ErrEOF
		return 0, decodedTag{}, ErrEOF
	}
	rawTag := decodeTag(c.data[pos])
	pos += tagSize

	var count uint64
	if !rawTag.isNull && rawTag.isList && rawTag.lsz != lsz0 {
		n := rawTag.lsz.nrBytes()
		if pos+n > len(c.data) {
			c.lastErr = ErrTruncated
			return 0, decodedTag{}, ErrTruncated
		}
		count = decodeLength(c.data[pos:pos+n], n)
		pos += n
	}

	if !rawTag.typ.valid() {
		c.lastErr = ErrInvalidType
		return 0, decodedTag{}, ErrInvalidType
	}

	sz := payloadSize(rawTag.typ, rawTag.isNull, rawTag.isList, count)
	if !rawTag.isNull {
		if pos+sz > len(c.data) {
			c.lastErr = ErrTruncated
			return 0, decodedTag{}, ErrTruncated
		}
	}

	return pos, decodedTag{typ: rawTag.typ, isNull: rawTag.isNull, isList: rawTag.isList, count: count}, nil
}

func payloadSize(t ScalarType, null, list bool, count uint64) int {
	if null {
		return 0
	}
	if list {
		return int(count) * int(scalarSize[t])
	}
	return int(scalarSize[t])
}

func decodeLength(b []byte, n int) uint64 {
	switch n {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	default: // 8
		return binary.LittleEndian.Uint64(b)
	}
}

func encodeLength(b []byte, n int, count uint64) {
	switch n {
	case 1:
		b[0] = byte(count)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(count))
	default: // 8
		binary.LittleEndian.PutUint64(b, count)
	}
}

// decodedValue is the result of the generic read kernel: a value
// descriptor whose data window points directly into the cursor's own
// buffer (zero-copy).
type decodedValue struct {
	typ   ScalarType
	null  bool
	list  bool
	count uint64
	data  []byte // nil if null, or if list && count == 0
}

// readValue is the generic kernel every typed reader (after checking the
// tag matches what it wants) delegates to. It advances c's position past
// the tag, length prefix, and payload.
func (c *Cursor) readValue() (decodedValue, error) {
	bodyPos, dt, err := c.decodeHeader(c.pos)
	if err != nil {
		return decodedValue{}, err
	}

	sz := payloadSize(dt.typ, dt.isNull, dt.isList, dt.count)

	var data []byte
	if sz > 0 {
		data = c.data[bodyPos : bodyPos+sz : bodyPos+sz]
		bodyPos += sz
	}

	c.pos = bodyPos
	c.lastErr = nil
	return decodedValue{typ: dt.typ, null: dt.isNull, list: dt.isList, count: dt.count, data: data}, nil
}

// writeValue is the generic write kernel every typed writer builds a
// decodedValue for and delegates to. It validates the descriptor against
// the §3 invariants, then emits tag + length prefix + payload and
// advances c's position.
func (c *Cursor) writeValue(v decodedValue) error {
	if !v.typ.valid() {
		c.lastErr = ErrInvalidType
		return ErrInvalidType
	}

	if v.null {
		if v.data != nil || v.count != 0 {
			c.lastErr = ErrInvalidArgument
			return ErrInvalidArgument
		}
	} else if v.list && v.count == 0 {
		if v.data != nil {
			c.lastErr = ErrInvalidArgument
			return ErrInvalidArgument
		}
	} else {
		wantSz := int(scalarSize[v.typ])
		if v.list {
			wantSz *= int(v.count)
		}
		if len(v.data) != wantSz {
			c.lastErr = ErrInvalidArgument
			return ErrInvalidArgument
		}
	}

	lsz := lsz0
	if v.list {
		lsz = lszFromCount(v.count)
	}
	nrBytes := lsz.nrBytes()
	sz := len(v.data)

	if c.pos+tagSize+nrBytes+sz > len(c.data) {
		c.lastErr = ErrInsufficientSpace
		return ErrInsufficientSpace
	}

	t := tag{typ: v.typ, lsz: lsz, isList: v.list, isNull: v.null}
	c.data[c.pos] = t.encode()
	c.pos += tagSize

	if nrBytes > 0 {
		encodeLength(c.data[c.pos:c.pos+nrBytes], nrBytes, v.count)
		c.pos += nrBytes
	}

	if sz > 0 {
		copy(c.data[c.pos:c.pos+sz], v.data)
		c.pos += sz
	}

	c.lastErr = nil
	return nil
}

// ReadNull reads a null scalar value and reports its declared type.
func (c *Cursor) ReadNull() (ScalarType, error) {
	_, dt, err := c.decodeHeader(c.pos)
	if err != nil {
		return Invalid, err
	}
	if dt.isList || !dt.isNull {
		return Invalid, ErrTypeMismatch
	}
	v, err := c.readValue()
	if err != nil {
		return Invalid, err
	}
	return v.typ, nil
}

// ReadNullList reads a null list and reports its declared element type.
func (c *Cursor) ReadNullList() (ScalarType, error) {
	_, dt, err := c.decodeHeader(c.pos)
	if err != nil {
		return Invalid, err
	}
	if !dt.isList || !dt.isNull {
		return Invalid, ErrTypeMismatch
	}
	v, err := c.readValue()
	if err != nil {
		return Invalid, err
	}
	return v.typ, nil
}

// WriteNull writes a null value of the given type.
func (c *Cursor) WriteNull(t ScalarType) error {
	return c.writeValue(decodedValue{typ: t, null: true})
}

// WriteNullList writes a null list of the given element type.
func (c *Cursor) WriteNullList(t ScalarType) error {
	return c.writeValue(decodedValue{typ: t, null: true, list: true})
}
