// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"errors"
	"fmt"
)

// ErrInvalidMagic is returned when the first four bytes of the input are
// not the WebAssembly magic number `\0asm`.
var ErrInvalidMagic = errors.New("wasm: invalid magic number")

// UnsupportedVersionError is returned when the module's version field is
// not the one binary format version (1) this decoder understands.
type UnsupportedVersionError uint32

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("wasm: unsupported version %d (want 1)", uint32(e))
}

// UnknownSectionError is returned for a section id outside 0..12.
type UnknownSectionError uint8

func (e UnknownSectionError) Error() string {
	return fmt.Sprintf("wasm: unknown section id %d", uint8(e))
}

// SectionSizeMismatchError is returned when a section's decoded body
// consumed fewer bytes than its declared length. A decoder that would run
// past the declared length fails with binary.ErrUnexpectedEnd instead.
type SectionSizeMismatchError struct {
	ID       SectionID
	Declared int
	Consumed int
}

func (e SectionSizeMismatchError) Error() string {
	return fmt.Sprintf("wasm: section %s declared length %d but decoder consumed %d bytes",
		e.ID, e.Declared, e.Consumed)
}

// InvalidOpcodeError is returned when a byte outside the legal constant-
// initializer opcode set is encountered while decoding an init_expr.
type InvalidOpcodeError byte

func (e InvalidOpcodeError) Error() string {
	return fmt.Sprintf("wasm: invalid opcode %#x in constant initializer expression", byte(e))
}

// ErrEmptyInitExpr is returned when a constant initializer produces no
// operators before End.
var ErrEmptyInitExpr = errors.New("wasm: constant initializer expression produces no value")
