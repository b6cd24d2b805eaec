// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wasm parses the WebAssembly 1.0 binary module format into a
// lazy, ordered stream of typed section events (see Parser), rather than
// an eagerly built whole-module AST.
package wasm

import "github.com/mgnr/wasmtap/binary"

// Magic is the 4-byte tag `\0asm`, read as a little-endian uint32.
const Magic uint32 = 0x6d736100

// Version is the only binary format version this decoder understands.
const Version uint32 = 1

// Import describes one entry in the Import section: a (module, field)
// pair naming the host-provided entity, its kind, and a kind-dependent
// descriptor.
type Import struct {
	Module string
	Field  string
	Kind   binary.ExternalKind
	Desc   ImportDesc
}

// ImportDesc is the kind-dependent descriptor carried by an Import. Its
// concrete type is determined by the Import's Kind field:
// FuncImportDesc, TableImportDesc, MemoryImportDesc, or GlobalImportDesc.
type ImportDesc interface {
	isImportDesc()
}

// FuncImportDesc is the descriptor for a function import: an index into
// the module's type section.
type FuncImportDesc struct {
	TypeIndex uint32
}

func (FuncImportDesc) isImportDesc() {}

// TableImportDesc is the descriptor for a table import.
type TableImportDesc struct {
	Type binary.TableType
}

func (TableImportDesc) isImportDesc() {}

// MemoryImportDesc is the descriptor for a memory import.
type MemoryImportDesc struct {
	Type binary.MemoryType
}

func (MemoryImportDesc) isImportDesc() {}

// GlobalImportDesc is the descriptor for a global import.
type GlobalImportDesc struct {
	Type binary.GlobalType
}

func (GlobalImportDesc) isImportDesc() {}

// Export describes one entry in the Export section.
type Export struct {
	Name  string
	Kind  binary.ExternalKind
	Index uint32
}

// ConstOpKind identifies which of the opcodes legal in a constant
// initializer expression (the five producing operators or End) a
// ConstOperator represents.
type ConstOpKind uint8

const (
	ConstOpI32Const ConstOpKind = iota
	ConstOpI64Const
	ConstOpF32Const
	ConstOpF64Const
	ConstOpGlobalGet
	ConstOpEnd
)

func (k ConstOpKind) String() string {
	switch k {
	case ConstOpI32Const:
		return "i32.const"
	case ConstOpI64Const:
		return "i64.const"
	case ConstOpF32Const:
		return "f32.const"
	case ConstOpF64Const:
		return "f64.const"
	case ConstOpGlobalGet:
		return "global.get"
	case ConstOpEnd:
		return "end"
	default:
		return "<unknown const op>"
	}
}

// ConstOperator is one decoded operator of a constant initializer
// expression. Only the field matching Kind is meaningful.
type ConstOperator struct {
	Kind        ConstOpKind
	I32         int32
	I64         int64
	F32         float32
	F64         float64
	GlobalIndex uint32
}

// GlobalEntry declares a global variable: its type and the constant
// initializer expression that computes its value.
type GlobalEntry struct {
	Type binary.GlobalType
	Init []ConstOperator
}

// ElementSegment describes a group of function indices to be placed into
// a table starting at a computed offset.
type ElementSegment struct {
	TableIndex  uint32
	Offset      []ConstOperator
	FuncIndices []uint32
}

// DataSegment describes a group of raw bytes to be placed into a linear
// memory starting at a computed offset.
type DataSegment struct {
	MemoryIndex uint32
	Offset      []ConstOperator
	Data        []byte
}

// LocalEntry is a run-length-encoded group of local variables of the same
// type declared at the start of a function body.
type LocalEntry struct {
	Count uint32
	Type  binary.ValType
}

// FunctionBody is one entry of the Code section: the function's declared
// locals followed by its uninterpreted instruction bytes. Code is kept
// verbatim (including the trailing 0x0b End opcode) so that a later
// consumer can add instruction-level decoding without this package having
// had to understand the operator set itself.
type FunctionBody struct {
	Locals []LocalEntry
	Code   []byte
}
