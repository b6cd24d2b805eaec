// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"strings"
	"testing"
)

func header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
}

func TestValidateMinimalModule(t *testing.T) {
	ok, errs := Validate(header())
	if !ok || len(errs) != 0 {
		t.Fatalf("got ok=%v errs=%v, want valid", ok, errs)
	}
}

// S6: function/code count mismatch.
func TestValidateFunctionCodeCountMismatch(t *testing.T) {
	buf := append(header(),
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // type: () -> ()
		0x03, 0x03, 0x02, 0x00, 0x00, // function: 2 functions of type 0
		0x0A, 0x04, 0x01, 0x02, 0x00, 0x0B, // code: 1 body
	)
	ok, errs := Validate(buf)
	if ok {
		t.Fatal("expected invalid module")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, "code section has 1 bodies") {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors = %v, want a FunctionCodeCountMismatchError", errs)
	}
}

// S7: duplicate export name.
func TestValidateDuplicateExport(t *testing.T) {
	buf := append(header(),
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // type: () -> ()
		0x03, 0x02, 0x01, 0x00, // function: 1 function of type 0
		0x07, 0x0D, 0x02, // export section, 2 entries
		0x03, 'f', 'o', 'o', 0x00, 0x00, // export "foo" func 0
		0x03, 'f', 'o', 'o', 0x00, 0x00, // export "foo" func 0 again
		0x0A, 0x04, 0x01, 0x02, 0x00, 0x0B, // code: 1 body
	)
	ok, errs := Validate(buf)
	if ok {
		t.Fatal("expected invalid module")
	}
	found := false
	for _, e := range errs {
		if strings.Contains(e, `duplicate export name "foo"`) {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors = %v, want a DuplicateExportError", errs)
	}
}

func TestValidateDuplicateSection(t *testing.T) {
	buf := append(header(),
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	)
	ok, errs := Validate(buf)
	if ok {
		t.Fatal("expected invalid module")
	}
	if len(errs) == 0 || !strings.Contains(errs[0], "duplicate type section") {
		t.Fatalf("errors = %v, want DuplicateSectionError", errs)
	}
}

func TestValidateMemoryLimitsOutOfBounds(t *testing.T) {
	// min=2, max=1: max < min.
	buf := append(header(), 0x05, 0x04, 0x01, 0x01, 0x02, 0x01)
	ok, errs := Validate(buf)
	if ok {
		t.Fatal("expected invalid module")
	}
	if len(errs) == 0 || !strings.Contains(errs[0], "out of bounds") {
		t.Fatalf("errors = %v, want LimitsOutOfBoundsError", errs)
	}
}

func TestValidateMissingCodeSection(t *testing.T) {
	buf := append(header(),
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x00,
	)
	ok, errs := Validate(buf)
	if ok {
		t.Fatal("expected invalid module")
	}
	if len(errs) == 0 || !strings.Contains(errs[0], "missing code section") {
		t.Fatalf("errors = %v, want MissingSectionError", errs)
	}
}

// An empty Function section (declared, but with zero entries) paired
// with no Code section is well-formed: the "missing" checks only fire
// when the present section actually declares entries.
func TestValidateEmptyFunctionSectionNoCodeSection(t *testing.T) {
	buf := append(header(), 0x03, 0x01, 0x00) // function section, 0 entries
	ok, errs := Validate(buf)
	if !ok || len(errs) != 0 {
		t.Fatalf("got ok=%v errs=%v, want valid", ok, errs)
	}
}

func TestValidateParseErrorWrapped(t *testing.T) {
	buf := []byte{0x00, 0x62, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
	ok, errs := Validate(buf)
	if ok || len(errs) != 1 {
		t.Fatalf("got ok=%v errs=%v", ok, errs)
	}
	if !strings.Contains(errs[0], "parse error") {
		t.Fatalf("errs[0] = %q, want a wrapped parse error", errs[0])
	}
}

// Idempotence: validating the same buffer twice gives the same result.
func TestValidateIdempotent(t *testing.T) {
	buf := append(header(), 0x01, 0x04, 0x01, 0x60, 0x00, 0x00)
	ok1, errs1 := Validate(buf)
	ok2, errs2 := Validate(buf)
	if ok1 != ok2 || len(errs1) != len(errs2) {
		t.Fatalf("validation is not idempotent: (%v,%v) vs (%v,%v)", ok1, errs1, ok2, errs2)
	}
}

// A well-formed module stays valid after inserting a custom section
// anywhere: custom sections carry no structural constraints.
func TestValidateCustomSectionIsInert(t *testing.T) {
	base := append(header(), 0x01, 0x04, 0x01, 0x60, 0x00, 0x00)
	withCustom := append(append([]byte{}, header()...), 0x00, 0x05, 0x03, 'f', 'o', 'o', 0xAA)
	withCustom = append(withCustom, 0x01, 0x04, 0x01, 0x60, 0x00, 0x00)

	ok1, errs1 := Validate(base)
	ok2, errs2 := Validate(withCustom)
	if ok1 != ok2 || len(errs1) != len(errs2) {
		t.Fatalf("custom section changed validity: base=(%v,%v) withCustom=(%v,%v)", ok1, errs1, ok2, errs2)
	}
}
