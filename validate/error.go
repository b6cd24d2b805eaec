// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"fmt"

	"github.com/mgnr/wasmtap/wasm"
)

// DuplicateSectionError is returned when a section kind that the binary
// format restricts to appearing at most once (every kind except Custom)
// is encountered a second time.
type DuplicateSectionError wasm.SectionID

func (e DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate %s section", wasm.SectionID(e))
}

// TypeArityTooLargeError is returned when a function type's parameter or
// result list exceeds the arity cap.
type TypeArityTooLargeError struct {
	Index int
	Which string // "params" or "results"
	Arity int
}

func (e TypeArityTooLargeError) Error() string {
	return fmt.Sprintf("type %d: %s arity %d exceeds the maximum", e.Index, e.Which, e.Arity)
}

// DuplicateExportError is returned when two exports declare the same name.
type DuplicateExportError string

func (e DuplicateExportError) Error() string {
	return fmt.Sprintf("duplicate export name %q", string(e))
}

// LimitsOutOfBoundsError is returned when a table or memory's limits
// declare a maximum smaller than its minimum, or exceed the page-space
// cap.
type LimitsOutOfBoundsError struct {
	Context string // "table" or "memory"
	Index   int
	Limits  interface{ String() string }
}

func (e LimitsOutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %d: limits %v out of bounds", e.Context, e.Index, e.Limits)
}

// FunctionCodeCountMismatchError is returned when the Function section's
// entry count doesn't match the Code section's entry count.
type FunctionCodeCountMismatchError struct {
	Functions int
	Bodies    int
}

func (e FunctionCodeCountMismatchError) Error() string {
	return fmt.Sprintf("function section declares %d functions but code section has %d bodies", e.Functions, e.Bodies)
}

// MissingSectionError is returned when a section required by another
// present section is absent (e.g. a Code section with no matching
// Function section).
type MissingSectionError wasm.SectionID

func (e MissingSectionError) Error() string {
	return fmt.Sprintf("missing %s section", wasm.SectionID(e))
}

// ParseError wraps any error surfaced by the underlying Parser while the
// Validator was folding its event stream. The Validator does no decoding
// of its own; every malformed-input check already happened in the
// Parser, so this wrapper exists only to give such errors a validate
// package type.
type ParseError struct {
	Err error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}
