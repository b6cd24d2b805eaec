// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import "github.com/mgnr/wasmtap/binary"

// PayloadKind enumerates the closed set of event kinds a Parser can
// yield. The Go compiler does not check a switch on Kind() for
// exhaustiveness; consumers catch an unhandled kind at run time by
// keeping the switch's default case a hard failure.
type PayloadKind uint8

const (
	KindVersion PayloadKind = iota
	KindCustomSection
	KindTypeSection
	KindImportSection
	KindFunctionSection
	KindTableSection
	KindMemorySection
	KindGlobalSection
	KindExportSection
	KindStartSection
	KindElementSection
	KindCodeSection
	KindDataSection
	KindDataCountSection
	KindEnd
)

// Payload is one event yielded by Parser.Next: a closed sum type, the
// same shape as ImportDesc. An unexported marker method closes the
// interface to this package's own concrete types.
type Payload interface {
	Kind() PayloadKind
	isPayload()
}

// VersionPayload is the bookend event yielded once the magic and version
// header have been verified.
type VersionPayload struct {
	Version uint32
}

func (VersionPayload) Kind() PayloadKind { return KindVersion }
func (VersionPayload) isPayload()        {}

// EndPayload is the bookend event yielded once the last byte of the input
// has been consumed.
type EndPayload struct{}

func (EndPayload) Kind() PayloadKind { return KindEnd }
func (EndPayload) isPayload()        {}

// CustomSectionPayload carries a Custom section's name and raw payload
// bytes, verbatim.
type CustomSectionPayload struct {
	Name    string
	Payload []byte
}

func (CustomSectionPayload) Kind() PayloadKind { return KindCustomSection }
func (CustomSectionPayload) isPayload()        {}

// TypeSectionPayload carries the Type section's function signatures.
type TypeSectionPayload struct {
	Types []binary.FuncType
}

func (TypeSectionPayload) Kind() PayloadKind { return KindTypeSection }
func (TypeSectionPayload) isPayload()        {}

// ImportSectionPayload carries the Import section's entries, in order.
type ImportSectionPayload struct {
	Imports []Import
}

func (ImportSectionPayload) Kind() PayloadKind { return KindImportSection }
func (ImportSectionPayload) isPayload()        {}

// FunctionSectionPayload carries the Function section's type indices, one
// per function defined in the Code section (in the same order).
type FunctionSectionPayload struct {
	TypeIndices []uint32
}

func (FunctionSectionPayload) Kind() PayloadKind { return KindFunctionSection }
func (FunctionSectionPayload) isPayload()        {}

// TableSectionPayload carries the Table section's table declarations.
type TableSectionPayload struct {
	Tables []binary.TableType
}

func (TableSectionPayload) Kind() PayloadKind { return KindTableSection }
func (TableSectionPayload) isPayload()        {}

// MemorySectionPayload carries the Memory section's memory declarations.
type MemorySectionPayload struct {
	Memories []binary.MemoryType
}

func (MemorySectionPayload) Kind() PayloadKind { return KindMemorySection }
func (MemorySectionPayload) isPayload()        {}

// GlobalSectionPayload carries the Global section's declarations.
type GlobalSectionPayload struct {
	Globals []GlobalEntry
}

func (GlobalSectionPayload) Kind() PayloadKind { return KindGlobalSection }
func (GlobalSectionPayload) isPayload()        {}

// ExportSectionPayload carries the Export section's entries, in
// declaration order (duplicate-name detection is the Validator's job).
type ExportSectionPayload struct {
	Exports []Export
}

func (ExportSectionPayload) Kind() PayloadKind { return KindExportSection }
func (ExportSectionPayload) isPayload()        {}

// StartSectionPayload carries the module's start function index.
type StartSectionPayload struct {
	FuncIndex uint32
}

func (StartSectionPayload) Kind() PayloadKind { return KindStartSection }
func (StartSectionPayload) isPayload()        {}

// ElementSectionPayload carries the Element section's segments.
type ElementSectionPayload struct {
	Segments []ElementSegment
}

func (ElementSectionPayload) Kind() PayloadKind { return KindElementSection }
func (ElementSectionPayload) isPayload()        {}

// CodeSectionPayload carries the Code section's function bodies, one per
// entry in the Function section (in the same order).
type CodeSectionPayload struct {
	Bodies []FunctionBody
}

func (CodeSectionPayload) Kind() PayloadKind { return KindCodeSection }
func (CodeSectionPayload) isPayload()        {}

// DataSectionPayload carries the Data section's segments.
type DataSectionPayload struct {
	Segments []DataSegment
}

func (DataSectionPayload) Kind() PayloadKind { return KindDataSection }
func (DataSectionPayload) isPayload()        {}

// DataCountSectionPayload carries the DataCount section's declared count.
type DataCountSectionPayload struct {
	Count uint32
}

func (DataCountSectionPayload) Kind() PayloadKind { return KindDataCountSection }
func (DataCountSectionPayload) isPayload()        {}
