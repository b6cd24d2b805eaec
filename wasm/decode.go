// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import "github.com/mgnr/wasmtap/binary"

// Each decodeXxxSection function consumes a section body from a
// sub-Reader scoped to exactly that section's declared length,
// following the vector-of-T shape: a var-u32 count followed by that
// many elements, unless noted otherwise.

func decodeCustomSection(r *binary.Reader) (CustomSectionPayload, error) {
	name, err := r.String()
	if err != nil {
		return CustomSectionPayload{}, err
	}
	payload, err := r.Bytes(r.Remaining())
	if err != nil {
		return CustomSectionPayload{}, err
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return CustomSectionPayload{Name: name, Payload: cp}, nil
}

func decodeTypeSection(r *binary.Reader) (TypeSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return TypeSectionPayload{}, err
	}
	types := make([]binary.FuncType, n)
	for i := range types {
		if types[i], err = r.FuncType(); err != nil {
			return TypeSectionPayload{}, err
		}
	}
	return TypeSectionPayload{Types: types}, nil
}

func decodeImportEntry(r *binary.Reader) (Import, error) {
	mod, err := r.String()
	if err != nil {
		return Import{}, err
	}
	field, err := r.String()
	if err != nil {
		return Import{}, err
	}
	kind, err := r.ExternalKind()
	if err != nil {
		return Import{}, err
	}

	imp := Import{Module: mod, Field: field, Kind: kind}

	// Each import kind reads its own descriptor shape, not a uniform
	// var-u32: a table import carries a TableType, a memory import a
	// MemoryType, and so on.
	switch kind {
	case binary.ExternalFunction:
		idx, err := r.VarU32()
		if err != nil {
			return Import{}, err
		}
		imp.Desc = FuncImportDesc{TypeIndex: idx}

	case binary.ExternalTable:
		t, err := r.TableType()
		if err != nil {
			return Import{}, err
		}
		imp.Desc = TableImportDesc{Type: t}

	case binary.ExternalMemory:
		t, err := r.MemoryType()
		if err != nil {
			return Import{}, err
		}
		imp.Desc = MemoryImportDesc{Type: t}

	case binary.ExternalGlobal:
		t, err := r.GlobalType()
		if err != nil {
			return Import{}, err
		}
		imp.Desc = GlobalImportDesc{Type: t}
	}

	return imp, nil
}

func decodeImportSection(r *binary.Reader) (ImportSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return ImportSectionPayload{}, err
	}
	imports := make([]Import, n)
	for i := range imports {
		if imports[i], err = decodeImportEntry(r); err != nil {
			return ImportSectionPayload{}, err
		}
	}
	return ImportSectionPayload{Imports: imports}, nil
}

func decodeFunctionSection(r *binary.Reader) (FunctionSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return FunctionSectionPayload{}, err
	}
	idxs := make([]uint32, n)
	for i := range idxs {
		if idxs[i], err = r.VarU32(); err != nil {
			return FunctionSectionPayload{}, err
		}
	}
	return FunctionSectionPayload{TypeIndices: idxs}, nil
}

func decodeTableSection(r *binary.Reader) (TableSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return TableSectionPayload{}, err
	}
	tables := make([]binary.TableType, n)
	for i := range tables {
		if tables[i], err = r.TableType(); err != nil {
			return TableSectionPayload{}, err
		}
	}
	return TableSectionPayload{Tables: tables}, nil
}

func decodeMemorySection(r *binary.Reader) (MemorySectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return MemorySectionPayload{}, err
	}
	mems := make([]binary.MemoryType, n)
	for i := range mems {
		if mems[i], err = r.MemoryType(); err != nil {
			return MemorySectionPayload{}, err
		}
	}
	return MemorySectionPayload{Memories: mems}, nil
}

func decodeGlobalEntry(r *binary.Reader) (GlobalEntry, error) {
	gt, err := r.GlobalType()
	if err != nil {
		return GlobalEntry{}, err
	}
	init, err := readConstExpr(r)
	if err != nil {
		return GlobalEntry{}, err
	}
	return GlobalEntry{Type: gt, Init: init}, nil
}

func decodeGlobalSection(r *binary.Reader) (GlobalSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return GlobalSectionPayload{}, err
	}
	globals := make([]GlobalEntry, n)
	for i := range globals {
		if globals[i], err = decodeGlobalEntry(r); err != nil {
			return GlobalSectionPayload{}, err
		}
	}
	return GlobalSectionPayload{Globals: globals}, nil
}

func decodeExportEntry(r *binary.Reader) (Export, error) {
	name, err := r.String()
	if err != nil {
		return Export{}, err
	}
	kind, err := r.ExternalKind()
	if err != nil {
		return Export{}, err
	}
	idx, err := r.VarU32()
	if err != nil {
		return Export{}, err
	}
	return Export{Name: name, Kind: kind, Index: idx}, nil
}

func decodeExportSection(r *binary.Reader) (ExportSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return ExportSectionPayload{}, err
	}
	exports := make([]Export, n)
	for i := range exports {
		if exports[i], err = decodeExportEntry(r); err != nil {
			return ExportSectionPayload{}, err
		}
	}
	return ExportSectionPayload{Exports: exports}, nil
}

func decodeStartSection(r *binary.Reader) (StartSectionPayload, error) {
	idx, err := r.VarU32()
	if err != nil {
		return StartSectionPayload{}, err
	}
	return StartSectionPayload{FuncIndex: idx}, nil
}

func decodeElementSegment(r *binary.Reader) (ElementSegment, error) {
	tableIdx, err := r.VarU32()
	if err != nil {
		return ElementSegment{}, err
	}
	offset, err := readConstExpr(r)
	if err != nil {
		return ElementSegment{}, err
	}
	n, err := r.VarU32()
	if err != nil {
		return ElementSegment{}, err
	}
	fns := make([]uint32, n)
	for i := range fns {
		if fns[i], err = r.VarU32(); err != nil {
			return ElementSegment{}, err
		}
	}
	return ElementSegment{TableIndex: tableIdx, Offset: offset, FuncIndices: fns}, nil
}

func decodeElementSection(r *binary.Reader) (ElementSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return ElementSectionPayload{}, err
	}
	segs := make([]ElementSegment, n)
	for i := range segs {
		if segs[i], err = decodeElementSegment(r); err != nil {
			return ElementSectionPayload{}, err
		}
	}
	return ElementSectionPayload{Segments: segs}, nil
}

func decodeLocalEntry(r *binary.Reader) (LocalEntry, error) {
	count, err := r.VarU32()
	if err != nil {
		return LocalEntry{}, err
	}
	vt, err := r.ValType()
	if err != nil {
		return LocalEntry{}, err
	}
	return LocalEntry{Count: count, Type: vt}, nil
}

func decodeFunctionBody(r *binary.Reader) (FunctionBody, error) {
	bodyLen, err := r.VarU32()
	if err != nil {
		return FunctionBody{}, err
	}
	body, err := r.Sub(int(bodyLen))
	if err != nil {
		return FunctionBody{}, err
	}

	n, err := body.VarU32()
	if err != nil {
		return FunctionBody{}, err
	}
	locals := make([]LocalEntry, n)
	for i := range locals {
		if locals[i], err = decodeLocalEntry(body); err != nil {
			return FunctionBody{}, err
		}
	}

	code, err := body.Bytes(body.Remaining())
	if err != nil {
		return FunctionBody{}, err
	}
	cp := make([]byte, len(code))
	copy(cp, code)

	return FunctionBody{Locals: locals, Code: cp}, nil
}

func decodeCodeSection(r *binary.Reader) (CodeSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return CodeSectionPayload{}, err
	}
	bodies := make([]FunctionBody, n)
	for i := range bodies {
		if bodies[i], err = decodeFunctionBody(r); err != nil {
			return CodeSectionPayload{}, err
		}
	}
	return CodeSectionPayload{Bodies: bodies}, nil
}

func decodeDataSegment(r *binary.Reader) (DataSegment, error) {
	memIdx, err := r.VarU32()
	if err != nil {
		return DataSegment{}, err
	}
	offset, err := readConstExpr(r)
	if err != nil {
		return DataSegment{}, err
	}
	n, err := r.VarU32()
	if err != nil {
		return DataSegment{}, err
	}
	data, err := r.Bytes(int(n))
	if err != nil {
		return DataSegment{}, err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return DataSegment{MemoryIndex: memIdx, Offset: offset, Data: cp}, nil
}

func decodeDataSection(r *binary.Reader) (DataSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return DataSectionPayload{}, err
	}
	segs := make([]DataSegment, n)
	for i := range segs {
		if segs[i], err = decodeDataSegment(r); err != nil {
			return DataSectionPayload{}, err
		}
	}
	return DataSectionPayload{Segments: segs}, nil
}

func decodeDataCountSection(r *binary.Reader) (DataCountSectionPayload, error) {
	n, err := r.VarU32()
	if err != nil {
		return DataCountSectionPayload{}, err
	}
	return DataCountSectionPayload{Count: n}, nil
}
