package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunEmitsLLVMIR(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "add.m")
	if err := os.WriteFile(src, []byte(`
: add(a: i32, b: i32): i32 {
	return a + b;
}
`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out := filepath.Join(dir, "add.ll")
	opt := &options{emitLL: true, out: out}
	if err := run(src, opt); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty LLVM IR output")
	}
}

func TestRunRejectsSemanticErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.m")
	if err := os.WriteFile(src, []byte(`
: main(): i32 {
	return undefinedVar;
}
`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	opt := &options{emitLL: true, out: filepath.Join(dir, "bad.ll")}
	if err := run(src, opt); err == nil {
		t.Fatal("expected an error for an undefined symbol")
	}
}

func TestRunRejectsBadOptLevel(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ok.m")
	if err := os.WriteFile(src, []byte(`
: main(): i32 {
	return 0;
}
`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	opt := &options{emitLL: true, optLevel: 9, out: filepath.Join(dir, "ok.ll")}
	if err := run(src, opt); err == nil {
		t.Fatal("expected an error for an out-of-range optimization level")
	}
}
