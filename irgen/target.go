package irgen

import (
	"errors"
	"fmt"

	"tinygo.org/x/go-llvm"
)

// OptLevel selects the optimization pipeline Optimize runs, matching the
// -O0..-O3 CLI flags.
type OptLevel int

const (
	OptNone OptLevel = iota
	OptLess
	OptDefault
	OptAggressive
)

// Optimize runs LLVM's standard module and function pass pipeline at the
// given level, built through PassManagerBuilder the way opt(1) configures
// -O1/-O2/-O3, rather than hand-picking individual passes.
func (g *Generator) Optimize(level OptLevel) {
	if level == OptNone {
		return
	}
	pmb := llvm.NewPassManagerBuilder()
	defer pmb.Dispose()
	pmb.SetOptLevel(int(level))

	fpm := llvm.NewFunctionPassManagerForModule(g.module)
	defer fpm.Dispose()
	pmb.PopulateFunc(fpm)

	fpm.InitializeFunc()
	for fn := g.module.FirstFunction(); !fn.IsNil(); fn = llvm.NextFunction(fn) {
		fpm.RunFunc(fn)
	}
	fpm.FinalizeFunc()

	mpm := llvm.NewPassManager()
	defer mpm.Dispose()
	pmb.Populate(mpm)
	mpm.Run(g.module)
}

// TargetOptions describes the target machine EmitObject compiles for.
type TargetOptions struct {
	Triple   string // empty uses the host's default triple
	CPU      string // empty uses "generic"
	Features string
}

// EmitObject emits g's module, without verifying it (see Verify), as a
// relocatable object file for the requested target, returning the
// compiled bytes. It mirrors the
// teacher's target-machine setup (InitializeAllTarget*, GetTargetFromTriple,
// CreateTargetMachine, EmitToMemoryBuffer) but returns errors through Go's
// normal error channel instead of leaving disposal to the caller: every
// llvm.TargetMachine and llvm.MemoryBuffer created here is disposed before
// returning, success or failure.
func (g *Generator) EmitObject(opts TargetOptions) ([]byte, error) {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargets()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()

	triple := opts.Triple
	if triple == "" {
		triple = llvm.DefaultTargetTriple()
	}
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return nil, fmt.Errorf("resolving target triple %q: %w", triple, err)
	}

	cpu := opts.CPU
	if cpu == "" {
		cpu = "generic"
	}

	tm := target.CreateTargetMachine(triple, cpu, opts.Features,
		llvm.CodeGenLevelDefault, llvm.RelocDefault, llvm.CodeModelDefault)
	defer tm.Dispose()

	td := tm.CreateTargetData()
	defer td.Dispose()
	g.module.SetDataLayout(td.String())
	g.module.SetTarget(tm.Triple())

	buf, err := tm.EmitToMemoryBuffer(g.module, llvm.ObjectFile)
	if err != nil {
		return nil, fmt.Errorf("emitting object code: %w", err)
	}
	if buf.IsNil() {
		return nil, errors.New("target machine produced no object code")
	}
	out := make([]byte, len(buf.Bytes()))
	copy(out, buf.Bytes())
	buf.Dispose()
	return out, nil
}

// EmitDefault emits g's module as a relocatable object using the host's
// default target, the common case for the CLI's default -o path.
func (g *Generator) EmitDefault() ([]byte, error) {
	return g.EmitObject(TargetOptions{})
}
