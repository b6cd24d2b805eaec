// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"github.com/mgnr/wasmtap/binary"
	"github.com/mgnr/wasmtap/wasm"
)

// maxArity caps the number of parameters or results a function type may
// declare.
const maxArity = 1000

// Validate folds a Parser's event stream once and reports whether the
// module is well-formed at the structural level: no duplicate non-Custom
// sections, no function type exceeding the arity cap, no duplicate
// export names, table/memory limits within bounds, and a Function
// section whose entry count matches the Code section's.
//
// Validate does not re-check anything the Parser already guarantees
// (magic, version, section framing, vector lengths): any error the
// Parser itself returns is wrapped in a ParseError and reported after
// any findings already made, and folding stops there, since the stream
// cannot be folded past a malformed input.
//
// This is purely a module-level structural check: it does not type-check
// instruction operand stacks inside function bodies.
func Validate(buf []byte) (bool, []string) {
	v := &validator{
		seen:        make(map[wasm.SectionID]bool),
		exportNames: make(map[string]bool),
	}
	v.run(buf)
	return len(v.errors) == 0, v.errors
}

type validator struct {
	seen        map[wasm.SectionID]bool
	exportNames map[string]bool
	errors      []string

	haveFunction bool
	funcCount    int
	haveCode     bool
	codeCount    int
}

func (v *validator) fail(err error) {
	v.errors = append(v.errors, err.Error())
	logger.Printf("%v", err)
}

func (v *validator) run(buf []byte) {
	p := wasm.NewParser(buf)
	for {
		payload, err := p.Next()
		if err != nil {
			v.fail(ParseError{Err: err})
			return
		}
		if payload == nil {
			return
		}

		if payload.Kind() != wasm.KindCustomSection && payload.Kind() != wasm.KindVersion && payload.Kind() != wasm.KindEnd {
			id := payloadSectionID(payload)
			if v.seen[id] {
				v.fail(DuplicateSectionError(id))
			}
			v.seen[id] = true
		}

		v.visit(payload)

		if payload.Kind() == wasm.KindEnd {
			v.checkFunctionCodeParity()
			return
		}
	}
}

func (v *validator) visit(payload wasm.Payload) {
	switch p := payload.(type) {
	case wasm.TypeSectionPayload:
		v.checkTypeSection(p)
	case wasm.ImportSectionPayload:
		v.checkImportSection(p)
	case wasm.FunctionSectionPayload:
		v.haveFunction = true
		v.funcCount = len(p.TypeIndices)
	case wasm.TableSectionPayload:
		v.checkTableSection(p)
	case wasm.MemorySectionPayload:
		v.checkMemorySection(p)
	case wasm.ExportSectionPayload:
		v.checkExportSection(p)
	case wasm.CodeSectionPayload:
		v.haveCode = true
		v.codeCount = len(p.Bodies)
	}
}

func (v *validator) checkTypeSection(p wasm.TypeSectionPayload) {
	for i, ft := range p.Types {
		if len(ft.Params) > maxArity {
			v.fail(TypeArityTooLargeError{Index: i, Which: "params", Arity: len(ft.Params)})
		}
		if len(ft.Results) > maxArity {
			v.fail(TypeArityTooLargeError{Index: i, Which: "results", Arity: len(ft.Results)})
		}
	}
}

func (v *validator) checkImportSection(p wasm.ImportSectionPayload) {
	for i, imp := range p.Imports {
		switch d := imp.Desc.(type) {
		case wasm.TableImportDesc:
			v.checkLimits("table", i, d.Type.Limits)
		case wasm.MemoryImportDesc:
			v.checkLimits("memory", i, d.Type.Limits)
		}
	}
}

func (v *validator) checkTableSection(p wasm.TableSectionPayload) {
	for i, t := range p.Tables {
		v.checkLimits("table", i, t.Limits)
	}
}

func (v *validator) checkMemorySection(p wasm.MemorySectionPayload) {
	for i, m := range p.Memories {
		v.checkLimits("memory", i, m.Limits)
	}
}

func (v *validator) checkLimits(context string, index int, l binary.Limits) {
	if l.HasMax && l.Max < l.Min {
		v.fail(LimitsOutOfBoundsError{Context: context, Index: index, Limits: limitsStringer(l)})
		return
	}
	if l.Min > binary.MaxPageSpace || (l.HasMax && l.Max > binary.MaxPageSpace) {
		v.fail(LimitsOutOfBoundsError{Context: context, Index: index, Limits: limitsStringer(l)})
	}
}

func (v *validator) checkExportSection(p wasm.ExportSectionPayload) {
	for _, e := range p.Exports {
		if v.exportNames[e.Name] {
			v.fail(DuplicateExportError(e.Name))
			continue
		}
		v.exportNames[e.Name] = true
	}
}

func (v *validator) checkFunctionCodeParity() {
	switch {
	case v.funcCount > 0 && !v.haveCode:
		v.fail(MissingSectionError(wasm.SectionIDCode))
	case v.codeCount > 0 && !v.haveFunction:
		v.fail(MissingSectionError(wasm.SectionIDFunction))
	case v.haveFunction && v.haveCode && v.funcCount != v.codeCount:
		v.fail(FunctionCodeCountMismatchError{Functions: v.funcCount, Bodies: v.codeCount})
	}
}

func payloadSectionID(payload wasm.Payload) wasm.SectionID {
	switch payload.(type) {
	case wasm.TypeSectionPayload:
		return wasm.SectionIDType
	case wasm.ImportSectionPayload:
		return wasm.SectionIDImport
	case wasm.FunctionSectionPayload:
		return wasm.SectionIDFunction
	case wasm.TableSectionPayload:
		return wasm.SectionIDTable
	case wasm.MemorySectionPayload:
		return wasm.SectionIDMemory
	case wasm.GlobalSectionPayload:
		return wasm.SectionIDGlobal
	case wasm.ExportSectionPayload:
		return wasm.SectionIDExport
	case wasm.StartSectionPayload:
		return wasm.SectionIDStart
	case wasm.ElementSectionPayload:
		return wasm.SectionIDElement
	case wasm.CodeSectionPayload:
		return wasm.SectionIDCode
	case wasm.DataSectionPayload:
		return wasm.SectionIDData
	case wasm.DataCountSectionPayload:
		return wasm.SectionIDDataCount
	default:
		return wasm.SectionIDCustom
	}
}

type limitsStringer binary.Limits

func (l limitsStringer) String() string {
	if l.HasMax {
		return "{min:" + uitoa(l.Min) + " max:" + uitoa(l.Max) + "}"
	}
	return "{min:" + uitoa(l.Min) + "}"
}

func uitoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
