// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command kernelcc compiles a JSON-encoded kernel definition to WGSL.
//
// Usage:
//
//	kernelcc [options] <input.json>
//
// Examples:
//
//	kernelcc kernel.json                    # Compile, print to stdout
//	kernelcc -o kernel.wgsl kernel.json      # Compile to file
//	kernelcc -unchecked kernel.json          # Skip validated module creation
//	kernelcc -apple kernel.json              # Enable the SafeTanh workaround
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gogpu/kernelc/kernel"
	"github.com/gogpu/kernelc/kernel/kerneljson"
	"github.com/gogpu/kernelc/wgsl"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	unchecked   = flag.Bool("unchecked", false, "use unvalidated shader-module creation")
	apple       = flag.Bool("apple", false, "enable the SafeTanh workaround extension")
	versionFlag = flag.Bool("version", false, "print version")
)

// version returns the module version from build info.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("kernelcc version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	inputPath := args[0]

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	def, err := kerneljson.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding kernel definition: %v\n", err)
		os.Exit(1)
	}

	mode := kernel.Checked
	if *unchecked {
		mode = kernel.Unchecked
	}
	opts := wgsl.DefaultOptions()
	opts.Apple = *apple

	_, source, err := wgsl.Compile(def, mode, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(source), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully compiled %s to %s (%d bytes, mode=%s)\n", inputPath, *output, len(source), mode)
	} else {
		if _, err := os.Stdout.WriteString(source); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: kernelcc [options] <input.json>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  kernelcc kernel.json               Compile to stdout\n")
	fmt.Fprintf(os.Stderr, "  kernelcc -o kernel.wgsl kernel.json Compile to file\n")
	fmt.Fprintf(os.Stderr, "  kernelcc -apple kernel.json         Enable SafeTanh workaround\n")
}
