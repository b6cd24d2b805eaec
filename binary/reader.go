// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binary decodes the WebAssembly 1.0 binary primitive grammar:
// fixed-width little-endian integers, signed/unsigned LEB128, length-
// prefixed UTF-8 strings, and the reusable grammar fragments (value types,
// limits, function/table/memory/global types, block types, memory
// arguments) that the higher-level module parser is built from.
//
// A Reader is a cursor over an immutable byte slice. It never copies the
// underlying buffer and never mutates it; decoded strings are fresh
// allocations, while the byte slices returned by Bytes (and the buffers of
// sub-Readers from Sub) alias the underlying buffer.
package binary

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Reader is a bounds-checked cursor over an in-memory byte buffer.
//
// A Reader is not safe for concurrent use; the buffer it borrows is
// immutable, so independent Readers (or sub-Readers, see Sub) over the
// same buffer are always safe to use from different goroutines.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf in a Reader starting at position 0. buf is never
// copied or modified.
func NewReader(buf []byte) *Reader {
	logger.Printf("new reader over %d bytes", len(buf))
	return &Reader{buf: buf}
}

// Pos reports the current cursor offset within the buffer.
func (r *Reader) Pos() int { return r.pos }

// Len reports the total size of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// AtEnd reports whether the cursor has reached the end of the buffer.
func (r *Reader) AtEnd() bool { return r.pos >= len(r.buf) }

// Peek returns the next byte without advancing the cursor. It fails with
// ErrUnexpectedEnd if the buffer is exhausted.
func (r *Reader) Peek() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrUnexpectedEnd
	}
	return r.buf[r.pos], nil
}

// Byte returns the next byte and advances the cursor by one.
func (r *Reader) Byte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrUnexpectedEnd
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Bytes returns the next n bytes and advances the cursor by n. The
// returned slice aliases the Reader's buffer; callers that need to
// retain it across further reads must copy it. Never returns a partial
// result: on failure the cursor is left unadvanced.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if r.pos+n > len(r.buf) {
		return nil, ErrUnexpectedEnd
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// U32 reads a fixed-width little-endian uint32 (used for the module magic
// and version fields).
func (r *Reader) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U64 reads a fixed-width little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// F32 reads a 4-byte little-endian bit pattern and bit-casts it to a
// float32, preserving NaN payloads and signed zero exactly.
func (r *Reader) F32() (float32, error) {
	b, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b), nil
}

// F64 reads an 8-byte little-endian bit pattern and bit-casts it to a
// float64.
func (r *Reader) F64() (float64, error) {
	b, err := r.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b), nil
}

// maxShift bounds how many value-carrying bits a var-uint/var-int of the
// given width may accumulate before the terminator byte: 28 for a 32-bit
// value, 63 for a 64-bit value (and 28 for the signed 33-bit block-type
// index encoding, since (33-1)/7*7 == 28 as well).
func maxShift(width int) uint {
	return uint(((width - 1) / 7) * 7)
}

// VarU32 decodes an unsigned LEB128 value into a uint32.
func (r *Reader) VarU32() (uint32, error) {
	v, err := r.varUint(32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// VarU64 decodes an unsigned LEB128 value into a uint64.
func (r *Reader) VarU64() (uint64, error) {
	return r.varUint(64)
}

func (r *Reader) varUint(width int) (uint64, error) {
	var (
		result uint64
		shift  uint
	)
	limit := maxShift(width)
	for {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		if shift > limit {
			return 0, VarIntTooLargeError{Width: width}
		}
		cur := uint64(b & 0x7f)
		if shift == limit {
			// The terminator (or any continuation byte landing exactly on
			// the limit) must not carry bits above the target width.
			maxFinal := uint64(1)<<(uint(width)-shift) - 1
			if cur > maxFinal {
				return 0, VarIntTooLargeError{Width: width}
			}
		}
		result |= cur << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// VarI32 decodes a signed LEB128 value into an int32.
func (r *Reader) VarI32() (int32, error) {
	v, err := r.varInt(32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// VarI64 decodes a signed LEB128 value into an int64.
func (r *Reader) VarI64() (int64, error) {
	return r.varInt(64)
}

// varI33 decodes a signed LEB128 value into a width-33 signed integer,
// returned widened to int64. Used to disambiguate the block-type
// sentinel: signed 33-bit LEB allows the type-index encoding to coexist
// with the negative valtype/empty sentinels.
func (r *Reader) varI33() (int64, error) {
	return r.varInt(33)
}

func (r *Reader) varInt(width int) (int64, error) {
	var (
		result int64
		shift  uint
		b      byte
		err    error
	)
	limit := maxShift(width)
	for {
		b, err = r.Byte()
		if err != nil {
			return 0, err
		}
		if shift > limit {
			return 0, VarIntTooLargeError{Width: width, Signed: true}
		}
		cur := int64(b & 0x7f)
		if shift == limit {
			remaining := uint(width) - shift
			mask := int64(0x7f) &^ (1<<remaining - 1)
			var expected int64
			if cur&(1<<(remaining-1)) != 0 {
				expected = mask
			}
			if cur&mask != expected {
				return 0, VarIntTooLargeError{Width: width, Signed: true}
			}
		}
		result |= cur << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	// Sign-extend if the sign bit (bit 6) of the terminator byte is set
	// and we haven't already filled the full width.
	if shift < uint(width) && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, nil
}

// String reads a length-prefixed (var-u32) UTF-8 string.
func (r *Reader) String() (string, error) {
	n, err := r.VarU32()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		cp := make([]byte, len(b))
		copy(cp, b)
		return "", InvalidUtf8Error{Bytes: cp}
	}
	return string(b), nil
}

// ValType reads a single value-type byte.
func (r *Reader) ValType() (ValType, error) {
	b, err := r.Byte()
	if err != nil {
		return 0, err
	}
	vt, ok := valTypeByteMap[b]
	if !ok {
		return 0, InvalidValTypeError(b)
	}
	return vt, nil
}

// Limits reads a limits structure: a var-u32 flags byte, a var-u32 min,
// and (if bit 0 of flags is set) a var-u32 max. Any reserved bit beyond
// bit 0 is rejected with InvalidLimitsError.
func (r *Reader) Limits() (Limits, error) {
	flags, err := r.VarU32()
	if err != nil {
		return Limits{}, err
	}
	if flags&^0x1 != 0 {
		return Limits{}, InvalidLimitsError(flags)
	}
	min, err := r.VarU32()
	if err != nil {
		return Limits{}, err
	}
	l := Limits{Min: min}
	if flags&0x1 != 0 {
		max, err := r.VarU32()
		if err != nil {
			return Limits{}, err
		}
		l.Max = max
		l.HasMax = true
	}
	return l, nil
}

// FuncType reads a function type: the mandatory 0x60 tag, a vector of
// parameter value types, and a vector of result value types.
func (r *Reader) FuncType() (FuncType, error) {
	tag, err := r.Byte()
	if err != nil {
		return FuncType{}, err
	}
	if tag != 0x60 {
		return FuncType{}, InvalidFuncTypeTagError(tag)
	}
	params, err := r.valTypeVec()
	if err != nil {
		return FuncType{}, err
	}
	results, err := r.valTypeVec()
	if err != nil {
		return FuncType{}, err
	}
	return FuncType{Params: params, Results: results}, nil
}

func (r *Reader) valTypeVec() ([]ValType, error) {
	n, err := r.VarU32()
	if err != nil {
		return nil, err
	}
	vs := make([]ValType, n)
	for i := range vs {
		if vs[i], err = r.ValType(); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

// TableType reads a table type: an element value type followed by limits.
// The element type is not required to be a reference type: any value type
// is accepted here, and the validate package does not reject one either.
func (r *Reader) TableType() (TableType, error) {
	et, err := r.ValType()
	if err != nil {
		return TableType{}, err
	}
	lim, err := r.Limits()
	if err != nil {
		return TableType{}, err
	}
	return TableType{ElemType: et, Limits: lim}, nil
}

// MemoryType reads a memory type: just limits.
func (r *Reader) MemoryType() (MemoryType, error) {
	lim, err := r.Limits()
	if err != nil {
		return MemoryType{}, err
	}
	return MemoryType{Limits: lim}, nil
}

// GlobalType reads a global type: a content value type and a mutability
// byte (0 = const, non-zero = mutable).
func (r *Reader) GlobalType() (GlobalType, error) {
	ct, err := r.ValType()
	if err != nil {
		return GlobalType{}, err
	}
	m, err := r.Byte()
	if err != nil {
		return GlobalType{}, err
	}
	return GlobalType{ContentType: ct, Mutable: m != 0}, nil
}

const blockTypeEmpty = 0x40

// BlockType disambiguates and reads the block-type sentinel: 0x40 for
// Empty, a value-type tag byte for a single result type, or (rewinding
// one byte) a signed var-i33 type index for multi-value blocks.
func (r *Reader) BlockType() (BlockType, error) {
	b, err := r.Peek()
	if err != nil {
		return BlockType{}, err
	}
	if b == blockTypeEmpty {
		r.pos++
		return BlockType{Kind: BlockKindEmpty}, nil
	}
	if vt, ok := valTypeByteMap[b]; ok {
		r.pos++
		return BlockType{Kind: BlockKindValue, ValueType: vt}, nil
	}
	idx, err := r.varI33()
	if err != nil {
		return BlockType{}, err
	}
	if idx < 0 {
		return BlockType{}, InvalidBlockTypeError{Byte: b}
	}
	return BlockType{Kind: BlockKindTypeIndex, TypeIndex: uint32(idx)}, nil
}

// MemArg reads a memory_immediate: a var-u32 alignment hint followed by a
// var-u32 offset.
func (r *Reader) MemArg() (MemArg, error) {
	align, err := r.VarU32()
	if err != nil {
		return MemArg{}, err
	}
	offset, err := r.VarU32()
	if err != nil {
		return MemArg{}, err
	}
	return MemArg{Align: align, Offset: offset}, nil
}

// ExternalKind reads a one-byte external-kind tag.
func (r *Reader) ExternalKind() (ExternalKind, error) {
	b, err := r.Byte()
	if err != nil {
		return 0, err
	}
	switch ExternalKind(b) {
	case ExternalFunction, ExternalTable, ExternalMemory, ExternalGlobal:
		return ExternalKind(b), nil
	default:
		return 0, InvalidExternalKindError(b)
	}
}

// Sub carves out the next n bytes as an independent Reader (sharing the
// same backing array) and advances this Reader past them. The returned
// sub-Reader's own operations fail with ErrUnexpectedEnd at its own
// boundary, never reaching back into the parent buffer: a section body
// can never read past its own declared length.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b}, nil
}
