// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binary

import "fmt"

// ValType represents the type of a value in the WebAssembly 1.0 binary
// format plus the reference-type tokens (v128, funcref, externref).
type ValType int8

const (
	ValTypeI32       ValType = -0x01
	ValTypeI64       ValType = -0x02
	ValTypeF32       ValType = -0x03
	ValTypeF64       ValType = -0x04
	ValTypeV128      ValType = -0x05
	ValTypeFuncRef   ValType = -0x10
	ValTypeExternRef ValType = -0x11
)

var valTypeStrMap = map[ValType]string{
	ValTypeI32:       "i32",
	ValTypeI64:       "i64",
	ValTypeF32:       "f32",
	ValTypeF64:       "f64",
	ValTypeV128:      "v128",
	ValTypeFuncRef:   "funcref",
	ValTypeExternRef: "externref",
}

func (t ValType) String() string {
	if s, ok := valTypeStrMap[t]; ok {
		return s
	}
	return fmt.Sprintf("<unknown value_type %d>", int8(t))
}

// IsRefType reports whether t is one of the reference types legal for a
// table's element type.
func (t ValType) IsRefType() bool {
	return t == ValTypeFuncRef || t == ValTypeExternRef
}

// valTypeByteMap maps the one-byte wire encoding onto ValType.
var valTypeByteMap = map[byte]ValType{
	0x7F: ValTypeI32,
	0x7E: ValTypeI64,
	0x7D: ValTypeF32,
	0x7C: ValTypeF64,
	0x7B: ValTypeV128,
	0x70: ValTypeFuncRef,
	0x6F: ValTypeExternRef,
}

// Limits describes the resizable bounds of a table or a linear memory.
type Limits struct {
	Min    uint32
	Max    uint32 // only meaningful when HasMax is true
	HasMax bool
}

// pageSpaceCap is the maximum number of pages (memory) or elements
// (table) a well-formed module's limits may declare.
const pageSpaceCap = 65536

// MaxPageSpace exports pageSpaceCap for validators checking Limits values
// decoded by this package.
const MaxPageSpace = pageSpaceCap

// FuncType describes the parameter and result value types of a function
// signature. The tag byte is always 0x60 on the wire (enforced in Reader.FuncType).
type FuncType struct {
	Params  []ValType
	Results []ValType
}

func (f FuncType) String() string {
	return fmt.Sprintf("<func %v -> %v>", f.Params, f.Results)
}

// TableType describes a table's element type and size limits.
type TableType struct {
	ElemType ValType
	Limits   Limits
}

// MemoryType describes a linear memory's size limits, in units of 64KiB
// pages.
type MemoryType struct {
	Limits Limits
}

// GlobalType describes the content type and mutability of a global variable.
type GlobalType struct {
	ContentType ValType
	Mutable     bool
}

// BlockKind enumerates the three shapes a BlockType can take.
type BlockKind uint8

const (
	BlockKindEmpty BlockKind = iota
	BlockKindValue
	BlockKindTypeIndex
)

// BlockType is the signature of a structured control-flow block: either
// empty, a single result value type, or an index into the module's type
// section (multi-value blocks).
type BlockType struct {
	Kind      BlockKind
	ValueType ValType // meaningful when Kind == BlockKindValue
	TypeIndex uint32  // meaningful when Kind == BlockKindTypeIndex
}

func (b BlockType) String() string {
	switch b.Kind {
	case BlockKindEmpty:
		return "<empty block>"
	case BlockKindValue:
		return b.ValueType.String()
	default:
		return fmt.Sprintf("<block type index %d>", b.TypeIndex)
	}
}

// MemArg is the alignment/offset immediate carried by every memory-access
// instruction.
type MemArg struct {
	Align  uint32
	Offset uint32
}

// ExternalKind identifies the kind of entry an Import or Export refers to.
type ExternalKind uint8

const (
	ExternalFunction ExternalKind = 0
	ExternalTable    ExternalKind = 1
	ExternalMemory   ExternalKind = 2
	ExternalGlobal   ExternalKind = 3
)

func (k ExternalKind) String() string {
	switch k {
	case ExternalFunction:
		return "function"
	case ExternalTable:
		return "table"
	case ExternalMemory:
		return "memory"
	case ExternalGlobal:
		return "global"
	default:
		return fmt.Sprintf("<unknown external_kind %d>", uint8(k))
	}
}
