// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

// ScalarType identifies the datatype of a value in a [Cursor] stream.
// It occupies the low 4 bits of a wire tag byte.
type ScalarType uint8

const (
	// Invalid is never written by a writer and is rejected by every
	// reader; its presence in a decoded tag means the stream is corrupt
	// or was never written by this package.
	Invalid ScalarType = iota
	Bool
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

// scalarSize maps a ScalarType to its fixed encoded width in bytes.
// Index 0 (Invalid) is unused and kept at zero so an accidental lookup
// produces an empty, never a out-of-bounds, size.
var scalarSize = [12]uint8{
	Invalid: 0,
	Bool:    1,
	Int8:    1,
	Uint8:   1,
	Int16:   2,
	Uint16:  2,
	Int32:   4,
	Uint32:  4,
	Int64:   8,
	Uint64:  8,
	Float32: 4,
	Float64: 8,
}

func (t ScalarType) valid() bool {
	return t > Invalid && int(t) < len(scalarSize)
}

func (t ScalarType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// lszClass is the list-size class packed into bits [4:5] of a [tag]. It
// selects how many bytes the list-length prefix occupies: 0 (no prefix,
// absent or empty list), 1, 2, or 8.
type lszClass uint8

const (
	lsz0 lszClass = iota // no length prefix
	lsz1                 // 1-byte length prefix, count <= 0xFF
	lsz2                 // 2-byte length prefix, count <= 0xFFFF
	lsz8                 // 8-byte length prefix
)

// lszFromCount selects the smallest length-prefix class that can hold
// count, per §4.1: an empty (or absent) list needs no prefix at all.
func lszFromCount(count uint64) lszClass {
	switch {
	case count == 0:
		return lsz0
	case count <= 0xFF:
		return lsz1
	case count <= 0xFFFF:
		return lsz2
	default:
		return lsz8
	}
}

// nrBytes returns how many bytes the length prefix occupies for this
// class. There is no 4-byte class: a 2-byte count already reaches 65535
// elements, and anything past that jumps straight to 8 bytes.
func (c lszClass) nrBytes() int {
	switch c {
	case lsz0:
		return 0
	case lsz1:
		return 1
	case lsz2:
		return 2
	default:
		return 8
	}
}

// tag is the packed one-byte wire descriptor: type | lsz<<4 | isList<<6 | isNull<<7.
type tag struct {
	typ    ScalarType
	lsz    lszClass
	isList bool
	isNull bool
}

func (t tag) encode() byte {
	b := byte(t.typ) & 0x0F
	b |= byte(t.lsz) << 4
	if t.isList {
		b |= 1 << 6
	}
	if t.isNull {
		b |= 1 << 7
	}
	return b
}

func decodeTag(b byte) tag {
	return tag{
		typ:    ScalarType(b & 0x0F),
		lsz:    lszClass((b >> 4) & 0x03),
		isList: b&(1<<6) != 0,
		isNull: b&(1<<7) != 0,
	}
}

const tagSize = 1
