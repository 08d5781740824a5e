package semantic

import (
	"testing"

	"mlc/diag"
	"mlc/frontend"
)

func analyze(t *testing.T, src string) *diag.Sink {
	t.Helper()
	prog, err := frontend.Parse("test.m", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sink := diag.NewSink("test.m", src)
	New(sink).Analyze(prog)
	return sink
}

func TestAnalyzeAcceptsWellTypedProgram(t *testing.T) {
	sink := analyze(t, `
: add(a: i32, b: i32): i32 {
	return a + b;
}

: main(): i32 {
	x: i32 = add(1, 2);
	return x;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %s", sink.Render())
	}
}

func TestAnalyzeForwardReference(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	return helper();
}

: helper(): i32 {
	return 1;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors for forward reference: %s", sink.Render())
	}
}

func TestAnalyzeUndefinedSymbol(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	return y;
}
`)
	if !sink.HasErrors() {
		t.Fatal("expected an undefined-symbol error")
	}
	if sink.Errors()[0].Kind != diag.UndefinedSymbol {
		t.Fatalf("kind = %v, want UndefinedSymbol", sink.Errors()[0].Kind)
	}
}

func TestAnalyzeIncompatibleAssignment(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	x: bool = 1 + 2;
	return 0;
}
`)
	if !sink.HasErrors() {
		t.Fatal("expected a type error for the initializer")
	}
}

func TestAnalyzeWideningAssignmentAccepted(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	x: i64 = 1;
	y: f64 = x;
	return 0;
}
`)
	if sink.HasErrors() {
		t.Fatalf("widening assignment should be accepted: %s", sink.Render())
	}
}

func TestAnalyzeConstantAssignment(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	const x: i32 = 5;
	x = 6;
	return 0;
}
`)
	if !sink.HasErrors() {
		t.Fatal("expected a constant-assignment error")
	}
	found := false
	for _, d := range sink.Errors() {
		if d.Kind == diag.ConstantAssignment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ConstantAssignment diagnostic, got %s", sink.Render())
	}
}

func TestAnalyzeWrongArgumentCount(t *testing.T) {
	sink := analyze(t, `
: add(a: i32, b: i32): i32 {
	return a + b;
}

: main(): i32 {
	return add(1);
}
`)
	if !sink.HasErrors() {
		t.Fatal("expected a wrong-argument-count error")
	}
}

func TestAnalyzeRedefinedSymbol(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	x: i32 = 1;
	x: i32 = 2;
	return 0;
}
`)
	if !sink.HasErrors() {
		t.Fatal("expected a redefinition error")
	}
}

func TestAnalyzeUninitializedVariableWarning(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	x: i32;
	return x;
}
`)
	if !sink.HasWarnings() {
		t.Fatal("expected an uninitialized-variable warning")
	}
}

func TestAnalyzeMissingReturnError(t *testing.T) {
	sink := analyze(t, `
: f(): i32 {
	x: i32 = 5;
}
`)
	if !sink.HasErrors() {
		t.Fatal("expected a missing-return error")
	}
	if sink.Errors()[0].Kind != diag.SemanticError {
		t.Fatalf("kind = %v, want SemanticError", sink.Errors()[0].Kind)
	}
}

func TestAnalyzeReturnInsideIfElseSatisfiesPresenceCheck(t *testing.T) {
	sink := analyze(t, `
: abs(x: i32): i32 {
	if (x < 0) {
		return 0 - x;
	} else {
		return x;
	}
}
`)
	if sink.HasErrors() {
		t.Fatalf("a return in every branch of an if/else should satisfy the presence check: %s", sink.Render())
	}
}

func TestAnalyzeReturnOnlyInWhileBodySatisfiesPresenceCheck(t *testing.T) {
	sink := analyze(t, `
: f(n: i32): i32 {
	x: i32 = 0;
	while (x < n) {
		return x;
	}
}
`)
	if sink.HasErrors() {
		t.Fatalf("the presence check only requires a return to appear somewhere in the body, not on every path: %s", sink.Render())
	}
}

func TestAnalyzeShadowingInNestedBlock(t *testing.T) {
	sink := analyze(t, `
: main(): i32 {
	x: i32 = 1;
	if (x == 1) {
		x: bool = true;
	}
	return x;
}
`)
	if sink.HasErrors() {
		t.Fatalf("shadowing in a nested scope should be allowed: %s", sink.Render())
	}
}
