// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import "github.com/mgnr/wasmtap/binary"

const (
	opI32Const  byte = 0x41
	opI64Const  byte = 0x42
	opF32Const  byte = 0x43
	opF64Const  byte = 0x44
	opGlobalGet byte = 0x23
	opEnd       byte = 0x0b
)

// readConstExpr decodes a constant initializer expression: a sequence of
// the five legal opcodes, terminated by End. Used inside the Global,
// Element, and Data section decoders. Permissively accepts any non-empty
// sequence of producing operators terminated by End, not just a single
// one; an End with no operator before it fails with ErrEmptyInitExpr.
func readConstExpr(r *binary.Reader) ([]ConstOperator, error) {
	var ops []ConstOperator

	for {
		op, err := r.Byte()
		if err != nil {
			return nil, err
		}

		switch op {
		case opI32Const:
			v, err := r.VarI32()
			if err != nil {
				return nil, err
			}
			ops = append(ops, ConstOperator{Kind: ConstOpI32Const, I32: v})

		case opI64Const:
			v, err := r.VarI64()
			if err != nil {
				return nil, err
			}
			ops = append(ops, ConstOperator{Kind: ConstOpI64Const, I64: v})

		case opF32Const:
			v, err := r.F32()
			if err != nil {
				return nil, err
			}
			ops = append(ops, ConstOperator{Kind: ConstOpF32Const, F32: v})

		case opF64Const:
			v, err := r.F64()
			if err != nil {
				return nil, err
			}
			ops = append(ops, ConstOperator{Kind: ConstOpF64Const, F64: v})

		case opGlobalGet:
			idx, err := r.VarU32()
			if err != nil {
				return nil, err
			}
			ops = append(ops, ConstOperator{Kind: ConstOpGlobalGet, GlobalIndex: idx})

		case opEnd:
			ops = append(ops, ConstOperator{Kind: ConstOpEnd})
			if len(ops) == 1 {
				// Only the End operator was seen: an empty initializer.
				return nil, ErrEmptyInitExpr
			}
			return ops, nil

		default:
			return nil, InvalidOpcodeError(op)
		}
	}
}
