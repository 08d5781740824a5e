package frontend

import (
	"testing"

	"mlc/ast"
)

func TestParseSimpleFunction(t *testing.T) {
	src := `
: add(a: i32, b: i32): i32 {
	return a + b;
}
`
	prog, err := Parse("test.m", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if prog.Typ != ast.Program {
		t.Fatalf("root type = %v, want Program", prog.Typ)
	}
	if len(prog.Children) != 1 {
		t.Fatalf("len(children) = %d, want 1", len(prog.Children))
	}
	fn := prog.Children[0]
	if fn.Typ != ast.FunctionDecl {
		t.Fatalf("decl type = %v, want FunctionDecl", fn.Typ)
	}
	info, ok := fn.Data.(ast.FuncInfo)
	if !ok || info.Name != "add" || info.ReturnType != "i32" {
		t.Fatalf("fn info = %+v", fn.Data)
	}
}

func TestParseExternDecl(t *testing.T) {
	src := `extern : puts(s: string): i32;`
	prog, err := Parse("test.m", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Children) != 1 || prog.Children[0].Typ != ast.ExternFunctionDecl {
		t.Fatalf("unexpected program shape: %+v", prog)
	}
}

func TestParseIfWhileAndAssignment(t *testing.T) {
	src := `
: run(n: i32): void {
	x: i32 = 0;
	while (x < n) {
		if (x == 5) {
			x = x + 2;
		} else {
			x = x + 1;
		}
	}
	return;
}
`
	prog, err := Parse("test.m", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := prog.Children[0]
	body := fn.Children[1]
	if body.Typ != ast.Block {
		t.Fatalf("body type = %v, want Block", body.Typ)
	}
	if body.Children[0].Typ != ast.VariableDecl {
		t.Fatalf("stmt0 = %v, want VariableDecl", body.Children[0].Typ)
	}
	if body.Children[1].Typ != ast.While {
		t.Fatalf("stmt1 = %v, want While", body.Children[1].Typ)
	}
}

func TestParseCastAndCall(t *testing.T) {
	src := `
: main(): i32 {
	println("hi");
	x: f32 = 1 as : f32;
	return 0;
}
`
	prog, err := Parse("test.m", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	body := prog.Children[0].Children[1]
	callStmt := body.Children[0]
	if callStmt.Typ != ast.ExprStmt {
		t.Fatalf("stmt0 = %v, want ExprStmt", callStmt.Typ)
	}
	decl := body.Children[1]
	if decl.Typ != ast.VariableDecl || len(decl.Children) != 1 || decl.Children[0].Typ != ast.Cast {
		t.Fatalf("decl shape = %+v", decl)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("test.m", `: main(): i32 { return }`)
	if err == nil {
		t.Fatal("expected a syntax error for missing ';'")
	}
}

func TestLexerComments(t *testing.T) {
	lx := newLexer("// comment\nfoo /* block */ bar")
	tk := lx.Next()
	if tk.typ != tokIdent || tk.val != "foo" {
		t.Fatalf("tok0 = %+v", tk)
	}
	tk = lx.Next()
	if tk.typ != tokIdent || tk.val != "bar" {
		t.Fatalf("tok1 = %+v", tk)
	}
}
