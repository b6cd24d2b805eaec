// Copyright 2018 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binary

// EncodeVarUint32 returns the canonical LEB128 encoding of v.
func EncodeVarUint32(v uint32) []byte {
	return encodeVarUint(uint64(v))
}

// EncodeVarUint64 returns the canonical LEB128 encoding of v.
func EncodeVarUint64(v uint64) []byte {
	return encodeVarUint(v)
}

func encodeVarUint(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

// EncodeVarint32 returns the canonical signed LEB128 encoding of v.
func EncodeVarint32(v int32) []byte {
	return encodeVarint(int64(v))
}

// EncodeVarint64 returns the canonical signed LEB128 encoding of v.
func EncodeVarint64(v int64) []byte {
	return encodeVarint(v)
}

func encodeVarint(v int64) []byte {
	var out []byte
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

// EncodeString returns the length-prefixed UTF-8 encoding of s.
func EncodeString(s string) []byte {
	out := EncodeVarUint32(uint32(len(s)))
	return append(out, s...)
}
