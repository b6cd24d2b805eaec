// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import "github.com/mgnr/wasmtap/binary"

type parserState uint8

const (
	stateAwaitHeader parserState = iota
	stateAwaitSection
	stateDone
)

// Parser drives the WebAssembly module grammar over an in-memory buffer,
// exposing it as a single-use, ordered, lazy sequence of Payload events.
// Each call to Next advances the underlying Reader by exactly one
// section (or by the fixed 8-byte header, or not at all once End has
// been yielded).
//
// A Parser performs no work between calls to Next: abandoning the
// sequence by simply ceasing to call Next drops the Reader and leaks
// nothing.
type Parser struct {
	r     *binary.Reader
	state parserState
}

// NewParser returns a Parser over buf. buf is never copied; the Parser
// only reads it.
func NewParser(buf []byte) *Parser {
	return &Parser{r: binary.NewReader(buf)}
}

// Done reports whether the stream has already yielded its terminal End
// event.
func (p *Parser) Done() bool {
	return p.state == stateDone
}

// Next pulls and returns the next event. Once End has been yielded, Next
// returns (nil, nil) on every subsequent call; callers are expected to
// stop pulling once they observe an End payload (or a non-nil error,
// which is always terminal for the stream).
func (p *Parser) Next() (Payload, error) {
	switch p.state {
	case stateAwaitHeader:
		return p.readHeader()
	case stateAwaitSection:
		return p.readSection()
	default:
		return nil, nil
	}
}

func (p *Parser) readHeader() (Payload, error) {
	magic, err := p.r.U32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}
	version, err := p.r.U32()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, UnsupportedVersionError(version)
	}
	p.state = stateAwaitSection
	return VersionPayload{Version: version}, nil
}

func (p *Parser) readSection() (Payload, error) {
	if p.r.AtEnd() {
		p.state = stateDone
		return EndPayload{}, nil
	}

	idByte, err := p.r.Byte()
	if err != nil {
		return nil, err
	}
	if !isKnownSectionID(idByte) {
		return nil, UnknownSectionError(idByte)
	}
	id := SectionID(idByte)
	logger.Printf("reading %s section", id)

	length, err := p.r.VarU32()
	if err != nil {
		return nil, err
	}

	sub, err := p.r.Sub(int(length))
	if err != nil {
		return nil, err
	}

	payload, err := decodeSectionBody(id, sub)
	if err != nil {
		return nil, err
	}

	if !sub.AtEnd() {
		return nil, SectionSizeMismatchError{
			ID:       id,
			Declared: int(length),
			Consumed: sub.Pos(),
		}
	}

	return payload, nil
}

func decodeSectionBody(id SectionID, sub *binary.Reader) (Payload, error) {
	switch id {
	case SectionIDCustom:
		return decodeCustomSection(sub)
	case SectionIDType:
		return decodeTypeSection(sub)
	case SectionIDImport:
		return decodeImportSection(sub)
	case SectionIDFunction:
		return decodeFunctionSection(sub)
	case SectionIDTable:
		return decodeTableSection(sub)
	case SectionIDMemory:
		return decodeMemorySection(sub)
	case SectionIDGlobal:
		return decodeGlobalSection(sub)
	case SectionIDExport:
		return decodeExportSection(sub)
	case SectionIDStart:
		return decodeStartSection(sub)
	case SectionIDElement:
		return decodeElementSection(sub)
	case SectionIDCode:
		return decodeCodeSection(sub)
	case SectionIDData:
		return decodeDataSection(sub)
	case SectionIDDataCount:
		return decodeDataCountSection(sub)
	default:
		// Unreachable: isKnownSectionID already bounds id to 0..12.
		return nil, UnknownSectionError(id)
	}
}

// All collects the entire event stream into a slice, for callers who do
// want a fully materialized view. It stops at the first error or at
// (and including) End, whichever comes first.
func All(buf []byte) ([]Payload, error) {
	p := NewParser(buf)
	var payloads []Payload
	for {
		pl, err := p.Next()
		if err != nil {
			return payloads, err
		}
		if pl == nil {
			return payloads, nil
		}
		payloads = append(payloads, pl)
		if pl.Kind() == KindEnd {
			return payloads, nil
		}
	}
}
