// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

import "unsafe"

// scalar is the set of Go types the codec knows how to lay out directly
// as fixed-width wire payloads. Endianness and float representation
// follow the host's native layout — portability across architectures is
// out of scope, the same tradeoff the C original makes by memcpy-ing
// payloads in place.
type scalar interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

func scalarBytes[T scalar](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// writeScalar builds a decodedValue for a single non-null, non-list value
// and hands it to the write kernel.
func writeScalar[T scalar](c *Cursor, t ScalarType, v T) error {
	return c.writeValue(decodedValue{typ: t, data: scalarBytes(&v)})
}

// readScalar checks the next tag matches a non-null, non-list value of
// type t before committing to the generic read kernel, so a mismatch
// never perturbs the cursor per §7.
func readScalar[T scalar](c *Cursor, t ScalarType) (T, error) {
	var zero T
	_, dt, err := c.decodeHeader(c.pos)
	if err != nil {
		return zero, err
	}
	if dt.isNull || dt.isList || dt.typ != t {
		return zero, ErrTypeMismatch
	}
	v, err := c.readValue()
	if err != nil {
		return zero, err
	}
	var out T
	copy(scalarBytes(&out), v.data)
	return out, nil
}

// writeList builds a decodedValue for a non-null list. An empty,
// non-null list carries no payload bytes at all, matching §4.1.
func writeList[T scalar](c *Cursor, t ScalarType, list []T) error {
	var data []byte
	if len(list) > 0 {
		data = unsafe.Slice((*byte)(unsafe.Pointer(&list[0])), len(list)*int(unsafe.Sizeof(list[0])))
	}
	return c.writeValue(decodedValue{typ: t, list: true, count: uint64(len(list)), data: data})
}

// readList checks the next tag matches a non-null list of type t, then
// returns a slice reinterpreting the cursor's own backing bytes as []T:
// zero allocation, zero copy. A zero-length, non-null list reads back as
// a nil slice.
func readList[T scalar](c *Cursor, t ScalarType) ([]T, uint64, error) {
	_, dt, err := c.decodeHeader(c.pos)
	if err != nil {
		return nil, 0, err
	}
	if dt.isNull || !dt.isList || dt.typ != t {
		return nil, 0, ErrTypeMismatch
	}
	v, err := c.readValue()
	if err != nil {
		return nil, 0, err
	}
	if v.count == 0 {
		return nil, 0, nil
	}
	list := unsafe.Slice((*T)(unsafe.Pointer(&v.data[0])), v.count)
	return list, v.count, nil
}

// WriteBool writes a non-null bool scalar.
func WriteBool(c *Cursor, v bool) error { return writeScalar(c, Bool, v) }

// ReadBool reads a non-null bool scalar.
func ReadBool(c *Cursor) (bool, error) { return readScalar[bool](c, Bool) }

// WriteBoolList writes a non-null list of bools.
func WriteBoolList(c *Cursor, v []bool) error { return writeList(c, Bool, v) }

// ReadBoolList reads a non-null list of bools, zero-copy.
func ReadBoolList(c *Cursor) ([]bool, uint64, error) { return readList[bool](c, Bool) }

// WriteInt8 writes a non-null int8 scalar.
func WriteInt8(c *Cursor, v int8) error { return writeScalar(c, Int8, v) }

// ReadInt8 reads a non-null int8 scalar.
func ReadInt8(c *Cursor) (int8, error) { return readScalar[int8](c, Int8) }

// WriteInt8List writes a non-null list of int8s.
func WriteInt8List(c *Cursor, v []int8) error { return writeList(c, Int8, v) }

// ReadInt8List reads a non-null list of int8s, zero-copy.
func ReadInt8List(c *Cursor) ([]int8, uint64, error) { return readList[int8](c, Int8) }

// WriteUint8 writes a non-null uint8 scalar.
func WriteUint8(c *Cursor, v uint8) error { return writeScalar(c, Uint8, v) }

// ReadUint8 reads a non-null uint8 scalar.
func ReadUint8(c *Cursor) (uint8, error) { return readScalar[uint8](c, Uint8) }

// WriteUint8List writes a non-null list of uint8s.
func WriteUint8List(c *Cursor, v []uint8) error { return writeList(c, Uint8, v) }

// ReadUint8List reads a non-null list of uint8s, zero-copy.
func ReadUint8List(c *Cursor) ([]uint8, uint64, error) { return readList[uint8](c, Uint8) }

// WriteInt16 writes a non-null int16 scalar.
func WriteInt16(c *Cursor, v int16) error { return writeScalar(c, Int16, v) }

// ReadInt16 reads a non-null int16 scalar.
func ReadInt16(c *Cursor) (int16, error) { return readScalar[int16](c, Int16) }

// WriteInt16List writes a non-null list of int16s.
func WriteInt16List(c *Cursor, v []int16) error { return writeList(c, Int16, v) }

// ReadInt16List reads a non-null list of int16s, zero-copy.
func ReadInt16List(c *Cursor) ([]int16, uint64, error) { return readList[int16](c, Int16) }

// WriteUint16 writes a non-null uint16 scalar.
func WriteUint16(c *Cursor, v uint16) error { return writeScalar(c, Uint16, v) }

// ReadUint16 reads a non-null uint16 scalar.
func ReadUint16(c *Cursor) (uint16, error) { return readScalar[uint16](c, Uint16) }

// WriteUint16List writes a non-null list of uint16s.
func WriteUint16List(c *Cursor, v []uint16) error { return writeList(c, Uint16, v) }

// ReadUint16List reads a non-null list of uint16s, zero-copy.
func ReadUint16List(c *Cursor) ([]uint16, uint64, error) { return readList[uint16](c, Uint16) }

// WriteInt32 writes a non-null int32 scalar.
func WriteInt32(c *Cursor, v int32) error { return writeScalar(c, Int32, v) }

// ReadInt32 reads a non-null int32 scalar.
func ReadInt32(c *Cursor) (int32, error) { return readScalar[int32](c, Int32) }

// WriteInt32List writes a non-null list of int32s.
func WriteInt32List(c *Cursor, v []int32) error { return writeList(c, Int32, v) }

// ReadInt32List reads a non-null list of int32s, zero-copy.
func ReadInt32List(c *Cursor) ([]int32, uint64, error) { return readList[int32](c, Int32) }

// WriteUint32 writes a non-null uint32 scalar.
func WriteUint32(c *Cursor, v uint32) error { return writeScalar(c, Uint32, v) }

// ReadUint32 reads a non-null uint32 scalar.
func ReadUint32(c *Cursor) (uint32, error) { return readScalar[uint32](c, Uint32) }

// WriteUint32List writes a non-null list of uint32s.
func WriteUint32List(c *Cursor, v []uint32) error { return writeList(c, Uint32, v) }

// ReadUint32List reads a non-null list of uint32s, zero-copy.
func ReadUint32List(c *Cursor) ([]uint32, uint64, error) { return readList[uint32](c, Uint32) }

// WriteInt64 writes a non-null int64 scalar.
func WriteInt64(c *Cursor, v int64) error { return writeScalar(c, Int64, v) }

// ReadInt64 reads a non-null int64 scalar.
func ReadInt64(c *Cursor) (int64, error) { return readScalar[int64](c, Int64) }

// WriteInt64List writes a non-null list of int64s.
func WriteInt64List(c *Cursor, v []int64) error { return writeList(c, Int64, v) }

// ReadInt64List reads a non-null list of int64s, zero-copy.
func ReadInt64List(c *Cursor) ([]int64, uint64, error) { return readList[int64](c, Int64) }

// WriteUint64 writes a non-null uint64 scalar.
func WriteUint64(c *Cursor, v uint64) error { return writeScalar(c, Uint64, v) }

// ReadUint64 reads a non-null uint64 scalar.
func ReadUint64(c *Cursor) (uint64, error) { return readScalar[uint64](c, Uint64) }

// WriteUint64List writes a non-null list of uint64s.
func WriteUint64List(c *Cursor, v []uint64) error { return writeList(c, Uint64, v) }

// ReadUint64List reads a non-null list of uint64s, zero-copy.
func ReadUint64List(c *Cursor) ([]uint64, uint64, error) { return readList[uint64](c, Uint64) }

// WriteFloat32 writes a non-null float32 scalar.
func WriteFloat32(c *Cursor, v float32) error { return writeScalar(c, Float32, v) }

// ReadFloat32 reads a non-null float32 scalar.
func ReadFloat32(c *Cursor) (float32, error) { return readScalar[float32](c, Float32) }

// WriteFloat32List writes a non-null list of float32s.
func WriteFloat32List(c *Cursor, v []float32) error { return writeList(c, Float32, v) }

// ReadFloat32List reads a non-null list of float32s, zero-copy.
func ReadFloat32List(c *Cursor) ([]float32, uint64, error) { return readList[float32](c, Float32) }

// WriteFloat64 writes a non-null float64 scalar.
func WriteFloat64(c *Cursor, v float64) error { return writeScalar(c, Float64, v) }

// ReadFloat64 reads a non-null float64 scalar.
func ReadFloat64(c *Cursor) (float64, error) { return readScalar[float64](c, Float64) }

// WriteFloat64List writes a non-null list of float64s.
func WriteFloat64List(c *Cursor, v []float64) error { return writeList(c, Float64, v) }

// ReadFloat64List reads a non-null list of float64s, zero-copy.
func ReadFloat64List(c *Cursor) ([]float64, uint64, error) { return readList[float64](c, Float64) }
