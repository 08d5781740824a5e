package irgen

import (
	"strings"
	"testing"

	"mlc/diag"
	"mlc/frontend"
	"mlc/semantic"
)

func generate(t *testing.T, src string) *Generator {
	t.Helper()
	prog, err := frontend.Parse("test.m", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sink := diag.NewSink("test.m", src)
	semantic.New(sink).Analyze(prog)
	if sink.HasErrors() {
		t.Fatalf("unexpected semantic errors: %s", sink.Render())
	}

	g := New("test")
	t.Cleanup(g.Close)
	if err := g.Generate(prog); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return g
}

func TestGenerateSimpleFunctionVerifies(t *testing.T) {
	g := generate(t, `
: add(a: i32, b: i32): i32 {
	return a + b;
}
`)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() error = %v\nIR:\n%s", err, g.String())
	}
	ir := g.String()
	if !strings.Contains(ir, "define i32 @add") {
		t.Fatalf("expected a definition for add, got:\n%s", ir)
	}
}

func TestGenerateIfElseVerifies(t *testing.T) {
	g := generate(t, `
: abs(x: i32): i32 {
	if (x < 0) {
		return 0 - x;
	} else {
		return x;
	}
}
`)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() error = %v\nIR:\n%s", err, g.String())
	}
}

func TestGenerateWhileLoopVerifies(t *testing.T) {
	g := generate(t, `
: sum(n: i32): i32 {
	total: i32 = 0;
	i: i32 = 0;
	while (i < n) {
		total = total + i;
		i = i + 1;
	}
	return total;
}
`)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() error = %v\nIR:\n%s", err, g.String())
	}
}

func TestGenerateMixedTypeArithmeticWidens(t *testing.T) {
	g := generate(t, `
: combine(a: i32, b: f64): f64 {
	return a + b;
}
`)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() error = %v\nIR:\n%s", err, g.String())
	}
	if !strings.Contains(g.String(), "sitofp") {
		t.Fatalf("expected an int->float widening conversion, got:\n%s", g.String())
	}
}

func TestGeneratePrintAndToString(t *testing.T) {
	g := generate(t, `
: report(n: i32): void {
	println(toString(n));
}
`)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() error = %v\nIR:\n%s", err, g.String())
	}
}

func TestGenerateMutualRecursionResolvesForwardReference(t *testing.T) {
	g := generate(t, `
: isEven(n: i32): bool {
	if (n == 0) {
		return true;
	}
	return isOdd(n - 1);
}

: isOdd(n: i32): bool {
	if (n == 0) {
		return false;
	}
	return isEven(n - 1);
}
`)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() error = %v\nIR:\n%s", err, g.String())
	}
}

func TestOptimizeRunsWithoutError(t *testing.T) {
	g := generate(t, `
: square(x: i32): i32 {
	return x * x;
}
`)
	g.Optimize(OptDefault)
	if err := g.Verify(); err != nil {
		t.Fatalf("Verify() after Optimize error = %v\nIR:\n%s", err, g.String())
	}
}
