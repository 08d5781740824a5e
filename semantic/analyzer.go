// Package semantic implements the two-phase semantic analyzer: a
// signature-collection pass that populates the global scope with every
// function before any body is checked (so forward references and mutual
// recursion resolve), followed by a per-function body-checking pass that
// type-checks statements and expressions and raises diagnostics into a
// diag.Sink.
//
// Both passes walk the parse tree with an explicit Analyzer value
// threading the scope cursor and diagnostics sink, rather than relying on
// module-level state, so multiple programs can be analyzed independently
// in the same process.
package semantic

import (
	"fmt"

	"mlc/ast"
	"mlc/diag"
	"mlc/symtab"
	"mlc/types"
)

// Analyzer holds the state threaded through both passes of one analysis
// run: the diagnostics sink, the symbol table under construction, and the
// return type of whichever function body is currently being checked (so
// Return statements can be checked against it).
type Analyzer struct {
	sink        *diag.Sink
	table       *symtab.Table
	curReturn   types.Type
	curFuncName string
}

// New returns an Analyzer that reports into sink.
func New(sink *diag.Sink) *Analyzer {
	return &Analyzer{sink: sink, table: symtab.New()}
}

// Table returns the symbol table built up by Analyze, valid after Analyze
// returns regardless of whether errors were raised.
func (a *Analyzer) Table() *symtab.Table { return a.table }

// Analyze runs both passes over prog, a Program node. It always returns
// (never aborts early on the first error) so that a single invocation
// surfaces every diagnostic in the program; callers check
// sink.HasErrors() afterward.
func (a *Analyzer) Analyze(prog *ast.Node) {
	a.collectSignatures(prog)
	for _, decl := range prog.Children {
		if decl.Typ == ast.FunctionDecl {
			a.checkFunctionBody(decl)
		}
	}
}

// collectSignatures is the first pass: every function and extern
// declaration is defined in the global scope before any body is checked.
func (a *Analyzer) collectSignatures(prog *ast.Node) {
	for _, decl := range prog.Children {
		switch decl.Typ {
		case ast.FunctionDecl, ast.ExternFunctionDecl:
			a.defineFunction(decl)
		}
	}
}

func (a *Analyzer) defineFunction(decl *ast.Node) {
	info := decl.Data.(ast.FuncInfo)
	retType, ok := types.FromName(info.ReturnType)
	if !ok {
		a.sink.Error(diag.TypeError, fmt.Sprintf("unknown return type %q", info.ReturnType), decl.Line, decl.Col)
		retType = types.TUnk
	}

	paramList := decl.Children[0]
	sym := &symtab.Symbol{
		Name: info.Name, Type: retType, Line: decl.Line, Col: decl.Col,
		Kind: symtab.FunctionSymbol,
	}
	for _, p := range paramList.Children {
		pinfo := p.Data.(ast.ParamInfo)
		pt, ok := types.FromName(pinfo.Type)
		if !ok {
			a.sink.Error(diag.TypeError, fmt.Sprintf("unknown parameter type %q", pinfo.Type), p.Line, p.Col)
			pt = types.TUnk
		}
		sym.Params = append(sym.Params, &symtab.Symbol{
			Name: pinfo.Name, Type: pt, Line: p.Line, Col: p.Col,
			Kind: symtab.VariableSymbol, IsInitialized: true,
		})
	}

	if !a.table.Define(sym) {
		a.sink.RedefinedSymbol(info.Name, decl.Line, decl.Col)
	}
}

// checkFunctionBody is the second pass for one non-extern function: it
// enters a fresh scope, binds parameters, and checks every statement in
// the body against the declared return type.
func (a *Analyzer) checkFunctionBody(decl *ast.Node) {
	info := decl.Data.(ast.FuncInfo)
	retType, _ := types.FromName(info.ReturnType)
	paramList := decl.Children[0]
	body := decl.Children[1]

	a.table.EnterScope(info.Name)
	defer a.table.ExitScope()

	for _, p := range paramList.Children {
		pinfo := p.Data.(ast.ParamInfo)
		pt, _ := types.FromName(pinfo.Type)
		sym := &symtab.Symbol{
			Name: pinfo.Name, Type: pt, Line: p.Line, Col: p.Col,
			Kind: symtab.VariableSymbol, IsInitialized: true,
		}
		if !a.table.Define(sym) {
			a.sink.RedefinedSymbol(pinfo.Name, p.Line, p.Col)
		}
	}

	prevReturn, prevName := a.curReturn, a.curFuncName
	a.curReturn, a.curFuncName = retType, info.Name
	a.checkBlock(body)
	a.curReturn, a.curFuncName = prevReturn, prevName

	if retType != types.TVoid && !retType.IsUnknown() && !containsReturn(body) {
		a.sink.Error(diag.SemanticError,
			fmt.Sprintf("function %q must return a value of type %s but has no return statement", info.Name, retType),
			decl.Line, decl.Col)
	}
}

// containsReturn reports whether n or any statement nested inside it
// (blocks, if/else branches, while bodies) is a Return. This is a
// presence check, not a control-flow-complete one: it does not verify
// that every path through the function actually reaches a return.
func containsReturn(n *ast.Node) bool {
	if n.Typ == ast.Return {
		return true
	}
	switch n.Typ {
	case ast.Block, ast.If, ast.While:
		for _, child := range n.Children {
			if containsReturn(child) {
				return true
			}
		}
	}
	return false
}

// checkBlock enters its own nested scope so variables declared inside a
// nested { } shadow, rather than collide with, the enclosing scope.
func (a *Analyzer) checkBlock(block *ast.Node) {
	a.checkBlockNamed("", block)
}

func (a *Analyzer) checkBlockNamed(name string, block *ast.Node) {
	a.table.EnterScope(name)
	defer a.table.ExitScope()
	for _, stmt := range block.Children {
		a.checkStmt(stmt)
	}
}

func (a *Analyzer) checkStmt(n *ast.Node) {
	switch n.Typ {
	case ast.Block:
		a.checkBlock(n)
	case ast.VariableDecl:
		a.checkVarDecl(n)
	case ast.Assignment:
		a.checkAssignment(n)
	case ast.If:
		a.checkIf(n)
	case ast.While:
		a.checkWhile(n)
	case ast.Return:
		a.checkReturn(n)
	case ast.ExprStmt:
		a.checkExpr(n.Children[0])
	default:
		a.sink.Error(diag.SemanticError, fmt.Sprintf("unexpected statement node %s", n.Typ), n.Line, n.Col)
	}
}

func (a *Analyzer) checkVarDecl(n *ast.Node) {
	info := n.Data.(ast.VarInfo)
	declType, ok := types.FromName(info.Type)
	if !ok {
		a.sink.Error(diag.TypeError, fmt.Sprintf("unknown type %q", info.Type), n.Line, n.Col)
		declType = types.TUnk
	}

	sym := &symtab.Symbol{
		Name: info.Name, Type: declType, Line: n.Line, Col: n.Col,
		Kind: symtab.VariableSymbol, IsConstant: info.Const,
	}

	if info.HasInit {
		initType := a.checkExpr(n.Children[0])
		if !types.Assignable(declType, initType) {
			a.sink.Error(diag.TypeError,
				fmt.Sprintf("cannot initialize %q of type %s with value of type %s", info.Name, declType, initType),
				n.Children[0].Line, n.Children[0].Col)
		}
		sym.IsInitialized = true
	} else if info.Const {
		a.sink.Error(diag.InvalidAssignment, fmt.Sprintf("constant %q must be initialized", info.Name), n.Line, n.Col)
	}

	if !a.table.Define(sym) {
		a.sink.RedefinedSymbol(info.Name, n.Line, n.Col)
	}
}

func (a *Analyzer) checkAssignment(n *ast.Node) {
	name := n.Data.(string)
	sym := a.table.Resolve(name)
	if sym == nil {
		a.sink.UndefinedSymbol(name, n.Line, n.Col)
		a.checkExpr(n.Children[0])
		return
	}
	if sym.Kind != symtab.VariableSymbol {
		a.sink.Error(diag.InvalidAssignment, fmt.Sprintf("%q is not a variable", name), n.Line, n.Col)
	}
	if sym.IsConstant {
		a.sink.ConstantAssignment(name, n.Line, n.Col)
	}

	valType := a.checkExpr(n.Children[0])
	if !types.Assignable(sym.Type, valType) {
		a.sink.Error(diag.IncompatibleTypes,
			fmt.Sprintf("cannot assign value of type %s to %q of type %s", valType, name, sym.Type),
			n.Children[0].Line, n.Children[0].Col)
	}
	sym.IsInitialized = true
}

func (a *Analyzer) checkIf(n *ast.Node) {
	condType := a.checkExpr(n.Children[0])
	if condType != types.TBool && !condType.IsUnknown() {
		a.sink.TypeErrorf("bool", condType.String(), n.Children[0].Line, n.Children[0].Col)
	}
	a.checkNamedBranch("if", n.Children[1])
	if len(n.Children) > 2 {
		a.checkNamedBranch("else", n.Children[2])
	}
}

// checkNamedBranch checks an if/else arm, naming its scope "if" or "else"
// as appropriate. An else-if chain's arm is itself an If node, which
// names its own "if" scope when checked, so it is dispatched normally
// rather than wrapped in a second named scope.
func (a *Analyzer) checkNamedBranch(name string, n *ast.Node) {
	if n.Typ == ast.Block {
		a.checkBlockNamed(name, n)
		return
	}
	a.checkStmt(n)
}

func (a *Analyzer) checkWhile(n *ast.Node) {
	condType := a.checkExpr(n.Children[0])
	if condType != types.TBool && !condType.IsUnknown() {
		a.sink.TypeErrorf("bool", condType.String(), n.Children[0].Line, n.Children[0].Col)
	}
	a.checkBlockNamed("while", n.Children[1])
}

func (a *Analyzer) checkReturn(n *ast.Node) {
	if len(n.Children) == 0 {
		if a.curReturn != types.TVoid && !a.curReturn.IsUnknown() {
			a.sink.Error(diag.TypeError,
				fmt.Sprintf("function %q must return a value of type %s", a.curFuncName, a.curReturn), n.Line, n.Col)
		}
		return
	}
	valType := a.checkExpr(n.Children[0])
	if !types.Assignable(a.curReturn, valType) {
		a.sink.Error(diag.IncompatibleTypes,
			fmt.Sprintf("function %q returns %s, got %s", a.curFuncName, a.curReturn, valType),
			n.Children[0].Line, n.Children[0].Col)
	}
}

// checkExpr type-checks an expression node and returns its resulting
// type. It always returns a usable Type, falling back to types.TUnk (the
// bottom type) on error so callers can keep checking without cascading
// diagnostics.
func (a *Analyzer) checkExpr(n *ast.Node) types.Type {
	switch n.Typ {
	case ast.IntLiteral:
		return types.TI32
	case ast.FloatLiteral:
		return types.TF32
	case ast.BoolLiteral:
		return types.TBool
	case ast.StringLiteral:
		return types.TString
	case ast.Identifier:
		return a.checkIdentifier(n)
	case ast.Binary:
		return a.checkBinary(n)
	case ast.Unary:
		return a.checkUnary(n)
	case ast.Cast:
		return a.checkCast(n)
	case ast.Call:
		return a.checkCall(n)
	default:
		a.sink.Error(diag.SemanticError, fmt.Sprintf("unexpected expression node %s", n.Typ), n.Line, n.Col)
		return types.TUnk
	}
}

func (a *Analyzer) checkIdentifier(n *ast.Node) types.Type {
	name := n.Data.(string)
	sym := a.table.Resolve(name)
	if sym == nil {
		a.sink.UndefinedSymbol(name, n.Line, n.Col)
		return types.TUnk
	}
	if sym.Kind == symtab.VariableSymbol && !sym.IsInitialized {
		a.sink.UninitializedVariable(name, n.Line, n.Col)
	}
	return sym.Type
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}

func (a *Analyzer) checkBinary(n *ast.Node) types.Type {
	op := n.Data.(string)
	left := a.checkExpr(n.Children[0])
	right := a.checkExpr(n.Children[1])

	switch {
	case logicalOps[op]:
		if (left != types.TBool && !left.IsUnknown()) || (right != types.TBool && !right.IsUnknown()) {
			a.sink.IncompatibleTypesf(left.String(), right.String(), op, n.Line, n.Col)
			return types.TUnk
		}
		return types.TBool
	case comparisonOps[op]:
		if !types.Comparable(left, right) {
			a.sink.IncompatibleTypesf(left.String(), right.String(), op, n.Line, n.Col)
			return types.TUnk
		}
		return types.TBool
	default: // + - * / %
		if !left.IsNumeric() || !right.IsNumeric() {
			if !left.IsUnknown() && !right.IsUnknown() {
				a.sink.IncompatibleTypesf(left.String(), right.String(), op, n.Line, n.Col)
			}
			return types.TUnk
		}
		return types.Widen(left, right)
	}
}

func (a *Analyzer) checkUnary(n *ast.Node) types.Type {
	op := n.Data.(string)
	operand := a.checkExpr(n.Children[0])
	if op == "!" {
		if operand != types.TBool && !operand.IsUnknown() {
			a.sink.Error(diag.IncompatibleTypes,
				fmt.Sprintf("operator %q requires a bool operand, got %s", op, operand), n.Line, n.Col)
			return types.TUnk
		}
		return types.TBool
	}
	// Unary minus.
	if !operand.IsNumeric() {
		if !operand.IsUnknown() {
			a.sink.Error(diag.IncompatibleTypes,
				fmt.Sprintf("operator %q requires a numeric operand, got %s", op, operand), n.Line, n.Col)
		}
		return types.TUnk
	}
	return operand
}

func (a *Analyzer) checkCast(n *ast.Node) types.Type {
	info := n.Data.(ast.CastInfo)
	target, ok := types.FromName(info.Type)
	if !ok {
		a.sink.Error(diag.TypeError, fmt.Sprintf("unknown cast target type %q", info.Type), n.Line, n.Col)
		target = types.TUnk
	}
	source := a.checkExpr(n.Children[0])
	if !types.CastAdmissible(source, target) {
		a.sink.Error(diag.IncompatibleTypes,
			fmt.Sprintf("cannot cast %s to %s", source, target), n.Line, n.Col)
		return types.TUnk
	}
	return target
}

func (a *Analyzer) checkCall(n *ast.Node) types.Type {
	name := n.Data.(string)
	argList := n.Children[0]

	argTypes := make([]types.Type, len(argList.Children))
	for i, arg := range argList.Children {
		argTypes[i] = a.checkExpr(arg)
	}

	sym := a.table.Resolve(name)
	if sym == nil {
		a.sink.Error(diag.FunctionNotFound, fmt.Sprintf("undefined function %q", name), n.Line, n.Col)
		return types.TUnk
	}
	if sym.Kind != symtab.FunctionSymbol {
		a.sink.Error(diag.FunctionNotFound, fmt.Sprintf("%q is not a function", name), n.Line, n.Col)
		return types.TUnk
	}

	if len(sym.Params) != len(argTypes) {
		a.sink.WrongArgumentCount(name, len(sym.Params), len(argTypes), n.Line, n.Col)
		return sym.Type
	}
	for i, p := range sym.Params {
		if !types.Assignable(p.Type, argTypes[i]) {
			a.sink.Error(diag.IncompatibleTypes,
				fmt.Sprintf("argument %d of %q expects %s, got %s", i+1, name, p.Type, argTypes[i]),
				argList.Children[i].Line, argList.Children[i].Col)
		}
	}
	return sym.Type
}
