// Copyright (c) 2026 the xchg authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xchg

import "testing"

func TestTagRoundTrip(t *testing.T) {
	cases := []tag{
		{typ: Bool, lsz: lsz0, isList: false, isNull: false},
		{typ: Int16, lsz: lsz0, isList: false, isNull: true},
		{typ: Uint32, lsz: lsz1, isList: true, isNull: false},
		{typ: Float64, lsz: lsz8, isList: true, isNull: false},
		{typ: Int64, lsz: lsz0, isList: true, isNull: true},
	}
	for _, want := range cases {
		got := decodeTag(want.encode())
		if got != want {
			t.Errorf("decodeTag(encode(%+v)) = %+v", want, got)
		}
	}
}

func TestLszFromCount(t *testing.T) {
	tests := []struct {
		count uint64
		want  lszClass
	}{
		{0, lsz0},
		{1, lsz1},
		{0xFF, lsz1},
		{0x100, lsz2},
		{0xFFFF, lsz2},
		{0x10000, lsz8},
		{16500, lsz2},
	}
	for _, tt := range tests {
		if got := lszFromCount(tt.count); got != tt.want {
			t.Errorf("lszFromCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

// TestThreeNullsTagBytes reproduces the three-nulls byte vector: a null
// int8, a null int16, and a null int32 each encode to a single tag byte
// with no length prefix and no payload.
func TestThreeNullsTagBytes(t *testing.T) {
	buf := make([]byte, 3)
	var c Cursor
	if err := c.Init(buf); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteNull(Int8); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteNull(Int16); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteNull(Int32); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x82, 0x84, 0x86}
	for i, b := range want {
		if buf[i] != b {
			t.Errorf("buf[%d] = %#02x, want %#02x", i, buf[i], b)
		}
	}
}

// TestBoolListThreeZerosBytes reproduces the bool-list-of-3 byte vector:
// tag 0x51 (Bool | lsz1<<4 | isList), 1-byte length prefix 3, then 3
// zero bytes.
func TestBoolListThreeZerosBytes(t *testing.T) {
	buf := make([]byte, 16)
	var c Cursor
	if err := c.Init(buf); err != nil {
		t.Fatal(err)
	}
	if err := WriteBoolList(&c, []bool{false, false, false}); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x51, 0x03, 0x00, 0x00, 0x00}
	for i, b := range want {
		if buf[i] != b {
			t.Errorf("buf[%d] = %#02x, want %#02x", i, buf[i], b)
		}
	}
}
