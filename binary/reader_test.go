// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binary

import (
	"bytes"
	"fmt"
	"math"
	"testing"
)

var casesUint = []struct {
	v uint32
	b []byte
}{
	{b: []byte{0x08}, v: 8},
	{b: []byte{0x80, 0x7f}, v: 16256},
	{b: []byte{0x80, 0x80, 0x80, 0xfd, 0x07}, v: 2141192192},
}

func TestReadVarUint32(t *testing.T) {
	for _, c := range casesUint {
		t.Run(fmt.Sprint(c.v), func(t *testing.T) {
			r := NewReader(c.b)
			n, err := r.VarU32()
			if err != nil {
				t.Fatal(err)
			}
			if n != c.v {
				t.Fatalf("got = %d; want = %d", n, c.v)
			}
		})
	}
}

func TestReadVarUint32Err(t *testing.T) {
	r := NewReader(nil)
	if _, err := r.VarU32(); err != ErrUnexpectedEnd {
		t.Fatalf("got err=%v, want=%v", err, ErrUnexpectedEnd)
	}
}

var casesInt = []struct {
	v int64
	b []byte
}{
	{b: []byte{0xff, 0x7e}, v: -129},
	{b: []byte{0xe4, 0x00}, v: 100},
	{b: []byte{0x80, 0x80, 0x80, 0xfd, 0x07}, v: 2141192192},
}

func TestReadVarint64(t *testing.T) {
	for _, c := range casesInt {
		t.Run(fmt.Sprint(c.v), func(t *testing.T) {
			r := NewReader(c.b)
			n, err := r.VarI64()
			if err != nil {
				t.Fatal(err)
			}
			if n != c.v {
				t.Fatalf("got = %d; want = %d", n, c.v)
			}
		})
	}
}

var varint32Cases = []struct {
	b []byte
	v int32
}{
	{[]byte{0x80, 0x80, 0x80, 0x80, 0x78}, -2147483648}, // int32 min
	{[]byte{0xff, 0xff, 0xff, 0xff, 0x07}, 2147483647},  // int32 max
}

func TestReadVarint32(t *testing.T) {
	for _, c := range varint32Cases {
		t.Run(fmt.Sprint(c.v), func(t *testing.T) {
			r := NewReader(c.b)
			n, err := r.VarI32()
			if err != nil {
				t.Fatal(err)
			}
			if n != c.v {
				t.Fatalf("got = %d; want = %d", n, c.v)
			}
		})
	}
}

func TestVarUint32TooLarge(t *testing.T) {
	// A 6th continuation byte is never legal for a 32-bit value.
	b := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	r := NewReader(b)
	_, err := r.VarU32()
	if _, ok := err.(VarIntTooLargeError); !ok {
		t.Fatalf("got err=%v (%T), want VarIntTooLargeError", err, err)
	}
}

func TestVarUint32OverflowBitsInFinalByte(t *testing.T) {
	// 5-byte encoding where the final byte carries bits above bit 3.
	b := []byte{0xff, 0xff, 0xff, 0xff, 0x1f}
	r := NewReader(b)
	_, err := r.VarU32()
	if _, ok := err.(VarIntTooLargeError); !ok {
		t.Fatalf("got err=%v (%T), want VarIntTooLargeError", err, err)
	}
}

func TestLEB128RoundTripUint32(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 16384, 1 << 28, math.MaxUint32} {
		enc := EncodeVarUint32(v)
		r := NewReader(enc)
		got, err := r.VarU32()
		if err != nil {
			t.Fatalf("VarU32(%x): %v", enc, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
		if !r.AtEnd() {
			t.Fatalf("round trip %d: %d trailing bytes", v, r.Remaining())
		}
	}
}

func TestLEB128RoundTripInt32(t *testing.T) {
	for _, v := range []int32{0, -1, 1, 63, -64, 64, -65, math.MinInt32, math.MaxInt32} {
		enc := EncodeVarint32(v)
		r := NewReader(enc)
		got, err := r.VarI32()
		if err != nil {
			t.Fatalf("VarI32(%x): %v", enc, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	}
}

func TestLEB128RoundTripInt64(t *testing.T) {
	for _, v := range []int64{0, -1, math.MinInt64, math.MaxInt64} {
		enc := EncodeVarint64(v)
		r := NewReader(enc)
		got, err := r.VarI64()
		if err != nil {
			t.Fatalf("VarI64(%x): %v", enc, err)
		}
		if got != v {
			t.Fatalf("round trip %d: got %d", v, got)
		}
	}
}

func TestF32BitExact(t *testing.T) {
	for _, bits := range []uint32{0, 1, 0x7fc00000, 0x80000000, math.Float32bits(-0.0), math.Float32bits(1.5)} {
		buf := make([]byte, 4)
		buf[0] = byte(bits)
		buf[1] = byte(bits >> 8)
		buf[2] = byte(bits >> 16)
		buf[3] = byte(bits >> 24)
		r := NewReader(buf)
		f, err := r.F32()
		if err != nil {
			t.Fatal(err)
		}
		if math.Float32bits(f) != bits {
			t.Fatalf("bits %#x: got %#x", bits, math.Float32bits(f))
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "add", "hello, 世界"} {
		enc := EncodeString(s)
		r := NewReader(enc)
		got, err := r.String()
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("got %q, want %q", got, s)
		}
	}
}

func TestStringInvalidUtf8(t *testing.T) {
	enc := append(EncodeVarUint32(2), 0xff, 0xfe)
	r := NewReader(enc)
	if _, err := r.String(); err == nil {
		t.Fatal("expected InvalidUtf8Error")
	} else if _, ok := err.(InvalidUtf8Error); !ok {
		t.Fatalf("got %T, want InvalidUtf8Error", err)
	}
}

func TestLimitsReservedBitsRejected(t *testing.T) {
	// flags=0x2 sets a reserved bit.
	b := append([]byte{0x02}, EncodeVarUint32(0)...)
	r := NewReader(b)
	if _, err := r.Limits(); err == nil {
		t.Fatal("expected InvalidLimitsError")
	} else if _, ok := err.(InvalidLimitsError); !ok {
		t.Fatalf("got %T, want InvalidLimitsError", err)
	}
}

func TestLimitsWithMax(t *testing.T) {
	b := []byte{0x01, 0x01, 0x02} // flags=1, min=1, max=2
	r := NewReader(b)
	l, err := r.Limits()
	if err != nil {
		t.Fatal(err)
	}
	if l.Min != 1 || !l.HasMax || l.Max != 2 {
		t.Fatalf("got %+v", l)
	}
}

func TestFuncTypeTag(t *testing.T) {
	b := []byte{0x60, 0x02, 0x7F, 0x7F, 0x01, 0x7F} // (i32,i32)->i32
	r := NewReader(b)
	ft, err := r.FuncType()
	if err != nil {
		t.Fatal(err)
	}
	if len(ft.Params) != 2 || ft.Params[0] != ValTypeI32 || len(ft.Results) != 1 {
		t.Fatalf("got %+v", ft)
	}
}

func TestFuncTypeBadTag(t *testing.T) {
	r := NewReader([]byte{0x61})
	if _, err := r.FuncType(); err == nil {
		t.Fatal("expected InvalidFuncTypeTagError")
	} else if _, ok := err.(InvalidFuncTypeTagError); !ok {
		t.Fatalf("got %T, want InvalidFuncTypeTagError", err)
	}
}

func TestBlockTypeEmpty(t *testing.T) {
	r := NewReader([]byte{0x40})
	bt, err := r.BlockType()
	if err != nil {
		t.Fatal(err)
	}
	if bt.Kind != BlockKindEmpty {
		t.Fatalf("got %+v", bt)
	}
}

func TestBlockTypeValue(t *testing.T) {
	r := NewReader([]byte{0x7F})
	bt, err := r.BlockType()
	if err != nil {
		t.Fatal(err)
	}
	if bt.Kind != BlockKindValue || bt.ValueType != ValTypeI32 {
		t.Fatalf("got %+v", bt)
	}
}

func TestBlockTypeIndex(t *testing.T) {
	// Signed LEB128 for 5 (not a valtype byte, not 0x40): 0x05.
	r := NewReader([]byte{0x05})
	bt, err := r.BlockType()
	if err != nil {
		t.Fatal(err)
	}
	if bt.Kind != BlockKindTypeIndex || bt.TypeIndex != 5 {
		t.Fatalf("got %+v", bt)
	}
}

func TestSubReaderBounded(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	sub, err := r.Sub(3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Remaining() != 3 {
		t.Fatalf("sub remaining = %d", sub.Remaining())
	}
	if r.Remaining() != 2 {
		t.Fatalf("parent remaining = %d", r.Remaining())
	}
	if _, err := sub.Bytes(4); err != ErrUnexpectedEnd {
		t.Fatalf("sub read past bound: err=%v", err)
	}
}

func TestBytesNeverPartial(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.Bytes(5); err != ErrUnexpectedEnd {
		t.Fatalf("err=%v, want ErrUnexpectedEnd", err)
	}
	if r.Pos() != 0 {
		t.Fatalf("cursor advanced on failed read: pos=%d", r.Pos())
	}
}

func TestReadBytesEqual(t *testing.T) {
	r := NewReader(bytes.Repeat([]byte{0xAB}, 10))
	b, err := r.Bytes(10)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, bytes.Repeat([]byte{0xAB}, 10)) {
		t.Fatalf("got % x", b)
	}
}
