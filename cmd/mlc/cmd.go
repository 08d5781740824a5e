package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mlc/diag"
	"mlc/frontend"
	"mlc/irgen"
	"mlc/semantic"
)

// options collects the driver's flags: an output path, an optimization
// level, and switches for dumping intermediate artifacts instead of
// producing an object file.
type options struct {
	out        string
	optLevel   int
	emitLL     bool
	emitO      bool
	emitTokens bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opt := &options{}

	cmd := &cobra.Command{
		Use:   "mlc <source.m>",
		Short: "mlc compiles M source files to native object code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opt)
		},
	}

	cmd.Flags().StringVarP(&opt.out, "output", "o", "", "output file path (defaults to <source>.o or <source>.ll)")
	cmd.Flags().IntVarP(&opt.optLevel, "optimize", "O", 2, "optimization level 0-3")
	cmd.Flags().BoolVar(&opt.emitLL, "emit-ll", false, "write textual LLVM IR next to the input, replacing its extension with .ll")
	cmd.Flags().BoolVar(&opt.emitO, "emit-o", false, "write a native object file with extension .o (the default)")
	cmd.Flags().BoolVar(&opt.emitTokens, "emit-tokens", false, "print the token stream and exit, without compiling")
	cmd.Flags().BoolVarP(&opt.verbose, "verbose", "v", false, "print the size and path of the written object file to stdout")

	return cmd
}

func run(src string, opt *options) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	source := string(data)

	if opt.emitTokens {
		return emitTokens(src, source)
	}

	prog, err := frontend.Parse(src, source)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	sink := diag.NewSink(src, source)
	analyzer := semantic.New(sink)
	analyzer.Analyze(prog)
	if sink.HasWarnings() {
		fmt.Fprint(os.Stderr, sink.Render())
	}
	if sink.HasErrors() {
		fmt.Fprint(os.Stderr, sink.Render())
		return fmt.Errorf("%s: semantic analysis failed with %d error(s)", src, len(sink.Errors()))
	}

	base := strings.TrimSuffix(src, filepath.Ext(src))
	moduleName := filepath.Base(base)
	gen := irgen.New(moduleName)
	defer gen.Close()

	if err := gen.Generate(prog); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	level := irgen.OptLevel(opt.optLevel)
	if level < irgen.OptNone || level > irgen.OptAggressive {
		return fmt.Errorf("optimization level must be 0-3, got %d", opt.optLevel)
	}
	gen.Optimize(level)
	if err := gen.Verify(); err != nil {
		return fmt.Errorf("%s: generated module failed verification: %w", src, err)
	}

	if opt.emitLL {
		out := opt.out
		if out == "" {
			out = base + ".ll"
		}
		return os.WriteFile(out, []byte(gen.String()), 0644)
	}

	obj, err := gen.EmitDefault()
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	out := opt.out
	if out == "" {
		out = base + ".o"
	}
	if opt.verbose {
		fmt.Printf("wrote %d bytes to %s\n", len(obj), out)
	}
	return os.WriteFile(out, obj, 0644)
}

func emitTokens(path, source string) error {
	toks, err := frontend.Tokens(path, source)
	if err != nil {
		return err
	}
	for _, tk := range toks {
		fmt.Println(tk)
	}
	return nil
}
