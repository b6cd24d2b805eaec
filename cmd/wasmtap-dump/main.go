// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wasmtap-dump prints the section-by-section structure of a
// WebAssembly binary module and reports whether it is well-formed.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/mgnr/wasmtap/binary"
	"github.com/mgnr/wasmtap/validate"
	"github.com/mgnr/wasmtap/wasm"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: wasmtap-dump [options] file1.wasm [file2.wasm [...]]

ex:
 $> wasmtap-dump ./file1.wasm

options:
`,
		)
		flag.PrintDefaults()
		os.Exit(1)
	}
}

var (
	flagVerbose  = flag.Bool("v", false, "enable/disable verbose mode")
	flagNoVerify = flag.Bool("n", false, "skip validation, print the event stream only")
)

func main() {
	log.SetPrefix("wasmtap-dump: ")
	log.SetFlags(0)

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
	}

	binary.PrintDebugInfo = *flagVerbose
	wasm.PrintDebugInfo = *flagVerbose
	validate.PrintDebugInfo = *flagVerbose

	for i, fname := range flag.Args() {
		if i > 0 {
			fmt.Println()
		}
		process(fname)
	}
}

func process(fname string) {
	buf, err := ioutil.ReadFile(fname)
	if err != nil {
		log.Fatalf("could not read %q: %v", fname, err)
	}

	fmt.Printf("%s:\n", fname)

	p := wasm.NewParser(buf)
	for {
		payload, err := p.Next()
		if err != nil {
			log.Fatalf("%s: %v", fname, err)
		}
		if payload == nil {
			break
		}
		printPayload(payload)
		if payload.Kind() == wasm.KindEnd {
			break
		}
	}

	if *flagNoVerify {
		return
	}

	ok, errs := validate.Validate(buf)
	fmt.Printf("\nis_valid: %v\n", ok)
	for _, e := range errs {
		fmt.Printf("  error: %s\n", e)
	}
}

func printPayload(payload wasm.Payload) {
	switch p := payload.(type) {
	case wasm.VersionPayload:
		fmt.Printf(" version: %#x\n", p.Version)
	case wasm.CustomSectionPayload:
		fmt.Printf(" custom %q: %d bytes\n", p.Name, len(p.Payload))
	case wasm.TypeSectionPayload:
		fmt.Printf(" type: %d entries\n", len(p.Types))
		for i, ft := range p.Types {
			fmt.Printf("  - type[%d] %v\n", i, ft)
		}
	case wasm.ImportSectionPayload:
		fmt.Printf(" import: %d entries\n", len(p.Imports))
		for i, im := range p.Imports {
			fmt.Printf("  - import[%d] %s.%s (%v)\n", i, im.Module, im.Field, im.Kind)
		}
	case wasm.FunctionSectionPayload:
		fmt.Printf(" function: %d entries\n", len(p.TypeIndices))
	case wasm.TableSectionPayload:
		fmt.Printf(" table: %d entries\n", len(p.Tables))
	case wasm.MemorySectionPayload:
		fmt.Printf(" memory: %d entries\n", len(p.Memories))
	case wasm.GlobalSectionPayload:
		fmt.Printf(" global: %d entries\n", len(p.Globals))
	case wasm.ExportSectionPayload:
		fmt.Printf(" export: %d entries\n", len(p.Exports))
		for i, e := range p.Exports {
			fmt.Printf("  - export[%d] %q -> %v[%d]\n", i, e.Name, e.Kind, e.Index)
		}
	case wasm.StartSectionPayload:
		fmt.Printf(" start: func[%d]\n", p.FuncIndex)
	case wasm.ElementSectionPayload:
		fmt.Printf(" element: %d segments\n", len(p.Segments))
	case wasm.CodeSectionPayload:
		fmt.Printf(" code: %d bodies\n", len(p.Bodies))
	case wasm.DataSectionPayload:
		fmt.Printf(" data: %d segments\n", len(p.Segments))
	case wasm.DataCountSectionPayload:
		fmt.Printf(" data count: %d\n", p.Count)
	case wasm.EndPayload:
		fmt.Printf(" end\n")
	}
}
