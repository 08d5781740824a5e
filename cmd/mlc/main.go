// Command mlc is the ahead-of-time compiler driver: it reads one M
// source file, runs it through the frontend, the semantic analyzer and
// the IR generator in sequence, and writes either an object file or
// textual LLVM IR.
//
// The flag surface covers an output path, an optimization level, and a
// verbose/dump-IR switch, wired through cobra/pflag.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
