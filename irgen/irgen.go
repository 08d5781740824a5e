// Package irgen lowers a checked ast.Node tree into LLVM IR using the
// official LLVM C API bindings (tinygo.org/x/go-llvm), and drives the
// LLVM pass manager and target machine to optimize, verify and emit it.
//
// There is exactly one generator: prototype declaration, body emission,
// then a separate optimize/verify/emit stage. It runs strictly
// sequentially. The context, builder and module it owns are released
// through a single Close method reachable from every return path,
// including error returns; the target machine created for object
// emission is disposed before EmitObject returns.
package irgen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"mlc/ast"
	"mlc/types"
)

// localVar is one entry in a lexical scope: the alloca backing a variable
// and the source type it holds, needed to pick the right LLVM op family
// (integer vs. float) when the variable participates in an expression.
type localVar struct {
	ptr llvm.Value
	typ types.Type
}

// Generator owns one LLVM context/module/builder triple and lowers a
// single program into it. It is not safe for concurrent use; callers
// needing to compile multiple programs concurrently should construct one
// Generator per goroutine.
type Generator struct {
	ctx     llvm.Context
	builder llvm.Builder
	module  llvm.Module

	fns    map[string]llvm.Value
	rets   map[string]types.Type
	params map[string][]types.Type
	scopes []map[string]localVar

	curFn       llvm.Value
	curRet      types.Type
	strCount    int
	printfFn    llvm.Value
	snprintfFn  llvm.Value
	tostringBuf llvm.Value
	closed      bool
}

const tostringBufSize = 32

// New creates a fresh LLVM context, module and builder for moduleName.
// Callers must call Close when finished, regardless of whether Generate
// succeeded, to release the underlying LLVM resources.
func New(moduleName string) *Generator {
	ctx := llvm.NewContext()
	g := &Generator{
		ctx:     ctx,
		builder: ctx.NewBuilder(),
		module:  ctx.NewModule(moduleName),
		fns:     make(map[string]llvm.Value),
		rets:    make(map[string]types.Type),
		params:  make(map[string][]types.Type),
	}
	g.declareRuntime()
	return g
}

// Close releases the builder, module and context owned by g. It is safe
// to call more than once.
func (g *Generator) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.builder.Dispose()
	g.module.Dispose()
	g.ctx.Dispose()
}

// Module exposes the underlying LLVM module, mainly for tests that want
// to inspect textual IR via Module.String().
func (g *Generator) Module() llvm.Module { return g.module }

// declareRuntime declares the small set of libc functions the builtin
// print/println/toString calls lower to, and the scratch buffer toString
// formats into.
func (g *Generator) declareRuntime() {
	i8ptr := llvm.PointerType(g.ctx.Int8Type(), 0)

	printfType := llvm.FunctionType(g.ctx.Int32Type(), []llvm.Type{i8ptr}, true)
	g.printfFn = llvm.AddFunction(g.module, "printf", printfType)

	snprintfType := llvm.FunctionType(g.ctx.Int32Type(),
		[]llvm.Type{i8ptr, g.ctx.Int64Type(), i8ptr}, true)
	g.snprintfFn = llvm.AddFunction(g.module, "snprintf", snprintfType)

	bufType := llvm.ArrayType(g.ctx.Int8Type(), tostringBufSize)
	g.tostringBuf = llvm.AddGlobal(g.module, bufType, "m.tostring.buf")
	g.tostringBuf.SetInitializer(llvm.ConstNull(bufType))
	g.tostringBuf.SetLinkage(llvm.PrivateLinkage)
}

// Generate lowers prog, a Program node whose declarations have already
// passed semantic analysis, into the module owned by g. It runs the two
// lowering phases: prototype declaration for every function (so mutually
// recursive calls resolve), then body emission for every non-extern
// function.
func (g *Generator) Generate(prog *ast.Node) error {
	for _, decl := range prog.Children {
		if err := g.declarePrototype(decl); err != nil {
			return err
		}
	}
	for _, decl := range prog.Children {
		if decl.Typ == ast.FunctionDecl {
			if err := g.emitBody(decl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) declarePrototype(decl *ast.Node) error {
	if decl.Typ != ast.FunctionDecl && decl.Typ != ast.ExternFunctionDecl {
		return fmt.Errorf("line %d:%d: expected a function declaration, got %s", decl.Line, decl.Col, decl.Typ)
	}
	info := decl.Data.(ast.FuncInfo)
	retType, ok := types.FromName(info.ReturnType)
	if !ok {
		return fmt.Errorf("line %d:%d: unknown return type %q", decl.Line, decl.Col, info.ReturnType)
	}

	paramList := decl.Children[0]
	paramTypes := make([]llvm.Type, len(paramList.Children))
	paramSrc := make([]types.Type, len(paramList.Children))
	for i, p := range paramList.Children {
		pinfo := p.Data.(ast.ParamInfo)
		pt, ok := types.FromName(pinfo.Type)
		if !ok {
			return fmt.Errorf("line %d:%d: unknown parameter type %q", p.Line, p.Col, pinfo.Type)
		}
		paramTypes[i] = g.llvmType(pt)
		paramSrc[i] = pt
	}

	fnType := llvm.FunctionType(g.llvmType(retType), paramTypes, false)
	fn := llvm.AddFunction(g.module, info.Name, fnType)
	g.fns[info.Name] = fn
	g.rets[info.Name] = retType
	g.params[info.Name] = paramSrc
	return nil
}

func (g *Generator) emitBody(decl *ast.Node) error {
	info := decl.Data.(ast.FuncInfo)
	fn := g.fns[info.Name]
	paramList := decl.Children[0]
	body := decl.Children[1]

	entry := g.ctx.AddBasicBlock(fn, "entry")
	g.builder.SetInsertPointAtEnd(entry)

	g.curFn = fn
	g.curRet = g.rets[info.Name]
	g.pushScope()
	defer g.popScope()

	for i, p := range paramList.Children {
		pinfo := p.Data.(ast.ParamInfo)
		pt, _ := types.FromName(pinfo.Type)
		alloca := g.builder.CreateAlloca(g.llvmType(pt), pinfo.Name)
		g.builder.CreateStore(fn.Param(i), alloca)
		g.define(pinfo.Name, alloca, pt)
	}

	terminated, err := g.emitStmt(body)
	if err != nil {
		return err
	}
	if !terminated {
		if g.curRet == types.TVoid {
			g.builder.CreateRetVoid()
		} else {
			g.builder.CreateRet(llvm.ConstNull(g.llvmType(g.curRet)))
		}
	}
	return nil
}

func (g *Generator) pushScope() { g.scopes = append(g.scopes, make(map[string]localVar)) }
func (g *Generator) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

func (g *Generator) define(name string, ptr llvm.Value, typ types.Type) {
	g.scopes[len(g.scopes)-1][name] = localVar{ptr: ptr, typ: typ}
}

func (g *Generator) resolve(name string) (localVar, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if v, ok := g.scopes[i][name]; ok {
			return v, true
		}
	}
	return localVar{}, false
}

// emitStmt lowers one statement node. It returns true if the statement
// unconditionally terminated the current basic block (a Return), so
// callers know not to fall through with a redundant branch.
func (g *Generator) emitStmt(n *ast.Node) (bool, error) {
	switch n.Typ {
	case ast.Block:
		g.pushScope()
		defer g.popScope()
		terminated := false
		for _, stmt := range n.Children {
			t, err := g.emitStmt(stmt)
			if err != nil {
				return terminated, err
			}
			terminated = terminated || t
			if terminated {
				break
			}
		}
		return terminated, nil
	case ast.VariableDecl:
		return false, g.emitVarDecl(n)
	case ast.Assignment:
		return false, g.emitAssign(n)
	case ast.If:
		return g.emitIf(n)
	case ast.While:
		return false, g.emitWhile(n)
	case ast.Return:
		return true, g.emitReturn(n)
	case ast.ExprStmt:
		_, err := g.emitExpr(n.Children[0])
		return false, err
	default:
		return false, fmt.Errorf("line %d:%d: unexpected statement node %s", n.Line, n.Col, n.Typ)
	}
}

func (g *Generator) emitVarDecl(n *ast.Node) error {
	info := n.Data.(ast.VarInfo)
	declType, ok := types.FromName(info.Type)
	if !ok {
		return fmt.Errorf("line %d:%d: unknown type %q", n.Line, n.Col, info.Type)
	}
	alloca := g.builder.CreateAlloca(g.llvmType(declType), info.Name)
	g.define(info.Name, alloca, declType)

	if info.HasInit {
		val, srcType, err := g.emitExprTyped(n.Children[0])
		if err != nil {
			return err
		}
		g.builder.CreateStore(g.convert(val, srcType, declType), alloca)
	}
	return nil
}

func (g *Generator) emitAssign(n *ast.Node) error {
	name := n.Data.(string)
	v, ok := g.resolve(name)
	if !ok {
		return fmt.Errorf("line %d:%d: undeclared variable %q", n.Line, n.Col, name)
	}
	val, srcType, err := g.emitExprTyped(n.Children[0])
	if err != nil {
		return err
	}
	g.builder.CreateStore(g.convert(val, srcType, v.typ), v.ptr)
	return nil
}

func (g *Generator) emitIf(n *ast.Node) (bool, error) {
	cond, err := g.emitExpr(n.Children[0])
	if err != nil {
		return false, err
	}

	thenBlock := g.ctx.AddBasicBlock(g.curFn, "if.then")
	var elseBlock, endBlock llvm.BasicBlock
	hasElse := len(n.Children) > 2

	if hasElse {
		elseBlock = g.ctx.AddBasicBlock(g.curFn, "if.else")
		g.builder.CreateCondBr(cond, thenBlock, elseBlock)
	} else {
		endBlock = g.ctx.AddBasicBlock(g.curFn, "if.end")
		g.builder.CreateCondBr(cond, thenBlock, endBlock)
	}

	g.builder.SetInsertPointAtEnd(thenBlock)
	thenTerm, err := g.emitStmt(n.Children[1])
	if err != nil {
		return false, err
	}
	if !hasElse {
		if !thenTerm {
			g.builder.CreateBr(endBlock)
		}
		g.builder.SetInsertPointAtEnd(endBlock)
		return false, nil
	}

	if !thenTerm {
		endBlock = g.ctx.AddBasicBlock(g.curFn, "if.end")
		g.builder.CreateBr(endBlock)
	}

	g.builder.SetInsertPointAtEnd(elseBlock)
	elseTerm, err := g.emitStmt(n.Children[2])
	if err != nil {
		return false, err
	}
	if !elseTerm {
		if endBlock.IsNil() {
			endBlock = g.ctx.AddBasicBlock(g.curFn, "if.end")
		}
		g.builder.CreateBr(endBlock)
	}

	if thenTerm && elseTerm {
		return true, nil
	}
	g.builder.SetInsertPointAtEnd(endBlock)
	return false, nil
}

func (g *Generator) emitWhile(n *ast.Node) error {
	condBlock := g.ctx.AddBasicBlock(g.curFn, "whilecond")
	bodyBlock := g.ctx.AddBasicBlock(g.curFn, "whilebody")
	endBlock := g.ctx.AddBasicBlock(g.curFn, "whileend")

	g.builder.CreateBr(condBlock)
	g.builder.SetInsertPointAtEnd(condBlock)
	cond, err := g.emitExpr(n.Children[0])
	if err != nil {
		return err
	}
	g.builder.CreateCondBr(cond, bodyBlock, endBlock)

	g.builder.SetInsertPointAtEnd(bodyBlock)
	terminated, err := g.emitStmt(n.Children[1])
	if err != nil {
		return err
	}
	if !terminated {
		g.builder.CreateBr(condBlock)
	}

	g.builder.SetInsertPointAtEnd(endBlock)
	return nil
}

func (g *Generator) emitReturn(n *ast.Node) error {
	if len(n.Children) == 0 {
		g.builder.CreateRetVoid()
		return nil
	}
	val, srcType, err := g.emitExprTyped(n.Children[0])
	if err != nil {
		return err
	}
	g.builder.CreateRet(g.convert(val, srcType, g.curRet))
	return nil
}

// emitExpr lowers an expression and discards its static type.
func (g *Generator) emitExpr(n *ast.Node) (llvm.Value, error) {
	v, _, err := g.emitExprTyped(n)
	return v, err
}

// emitExprTyped lowers an expression and also returns the type it was
// checked to carry, so callers can insert a widening coercion (store,
// return and call-argument sites all need the source type to do this).
func (g *Generator) emitExprTyped(n *ast.Node) (llvm.Value, types.Type, error) {
	switch n.Typ {
	case ast.IntLiteral:
		return llvm.ConstInt(g.ctx.Int32Type(), uint64(n.Data.(int64)), true), types.TI32, nil
	case ast.FloatLiteral:
		return llvm.ConstFloat(g.ctx.FloatType(), n.Data.(float64)), types.TF32, nil
	case ast.BoolLiteral:
		b := uint64(0)
		if n.Data.(bool) {
			b = 1
		}
		return llvm.ConstInt(g.ctx.Int1Type(), b, false), types.TBool, nil
	case ast.StringLiteral:
		// String literals are lowered only as direct arguments to
		// print/println (see emitPrint). Semantic analysis also accepts
		// them in string-typed declarations, returns and arguments; those
		// uses reach this case and are reported as a generator error.
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: string literal used outside an argument position", n.Line, n.Col)
	case ast.Identifier:
		return g.emitIdentifier(n)
	case ast.Binary:
		return g.emitBinary(n)
	case ast.Unary:
		return g.emitUnary(n)
	case ast.Cast:
		return g.emitCast(n)
	case ast.Call:
		return g.emitCall(n)
	default:
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: unexpected expression node %s", n.Line, n.Col, n.Typ)
	}
}

func (g *Generator) emitIdentifier(n *ast.Node) (llvm.Value, types.Type, error) {
	name := n.Data.(string)
	v, ok := g.resolve(name)
	if !ok {
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: undeclared variable %q", n.Line, n.Col, name)
	}
	return g.builder.CreateLoad(v.ptr, name), v.typ, nil
}

func (g *Generator) emitBinary(n *ast.Node) (llvm.Value, types.Type, error) {
	op := n.Data.(string)

	if op == "&&" || op == "||" {
		left, err := g.emitExpr(n.Children[0])
		if err != nil {
			return llvm.Value{}, types.TUnk, err
		}
		right, err := g.emitExpr(n.Children[1])
		if err != nil {
			return llvm.Value{}, types.TUnk, err
		}
		if op == "&&" {
			return g.builder.CreateAnd(left, right, ""), types.TBool, nil
		}
		return g.builder.CreateOr(left, right, ""), types.TBool, nil
	}

	left, leftType, err := g.emitExprTyped(n.Children[0])
	if err != nil {
		return llvm.Value{}, types.TUnk, err
	}
	right, rightType, err := g.emitExprTyped(n.Children[1])
	if err != nil {
		return llvm.Value{}, types.TUnk, err
	}

	// Widen the narrower operand up to the common type before the binary
	// instruction, rather than leaving LLVM to reject mismatched operand
	// types outright.
	common := types.Widen(leftType, rightType)
	if isComparison(op) {
		// Comparisons widen to whichever operand type is "larger" purely
		// to pick a consistent compare instruction; the result is bool
		// regardless.
		if leftType.IsFloat() || rightType.IsFloat() {
			common = types.TF64
			if leftType.Kind != types.F64 && rightType.Kind != types.F64 {
				common = types.TF32
			}
		}
	}
	left = g.convert(left, leftType, common)
	right = g.convert(right, rightType, common)
	isFloat := common.IsFloat()

	switch op {
	case "+":
		if isFloat {
			return g.builder.CreateFAdd(left, right, ""), common, nil
		}
		return g.builder.CreateAdd(left, right, ""), common, nil
	case "-":
		if isFloat {
			return g.builder.CreateFSub(left, right, ""), common, nil
		}
		return g.builder.CreateSub(left, right, ""), common, nil
	case "*":
		if isFloat {
			return g.builder.CreateFMul(left, right, ""), common, nil
		}
		return g.builder.CreateMul(left, right, ""), common, nil
	case "/":
		if isFloat {
			return g.builder.CreateFDiv(left, right, ""), common, nil
		}
		return g.builder.CreateSDiv(left, right, ""), common, nil
	case "%":
		if isFloat {
			return g.builder.CreateFRem(left, right, ""), common, nil
		}
		return g.builder.CreateSRem(left, right, ""), common, nil
	case "==", "!=", "<", "<=", ">", ">=":
		if isFloat {
			return g.builder.CreateFCmp(floatPredicate(op), left, right, ""), types.TBool, nil
		}
		return g.builder.CreateICmp(intPredicate(op), left, right, ""), types.TBool, nil
	default:
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: unsupported binary operator %q", n.Line, n.Col, op)
	}
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

func intPredicate(op string) llvm.IntPredicate {
	switch op {
	case "==":
		return llvm.IntEQ
	case "!=":
		return llvm.IntNE
	case "<":
		return llvm.IntSLT
	case "<=":
		return llvm.IntSLE
	case ">":
		return llvm.IntSGT
	default:
		return llvm.IntSGE
	}
}

func floatPredicate(op string) llvm.FloatPredicate {
	switch op {
	case "==":
		return llvm.FloatOEQ
	case "!=":
		return llvm.FloatONE
	case "<":
		return llvm.FloatOLT
	case "<=":
		return llvm.FloatOLE
	case ">":
		return llvm.FloatOGT
	default:
		return llvm.FloatOGE
	}
}

func (g *Generator) emitUnary(n *ast.Node) (llvm.Value, types.Type, error) {
	op := n.Data.(string)
	val, typ, err := g.emitExprTyped(n.Children[0])
	if err != nil {
		return llvm.Value{}, types.TUnk, err
	}
	if op == "!" {
		return g.builder.CreateNot(val, ""), types.TBool, nil
	}
	// Unary minus.
	if typ.IsFloat() {
		return g.builder.CreateFNeg(val, ""), typ, nil
	}
	return g.builder.CreateNeg(val, ""), typ, nil
}

func (g *Generator) emitCast(n *ast.Node) (llvm.Value, types.Type, error) {
	info := n.Data.(ast.CastInfo)
	target, ok := types.FromName(info.Type)
	if !ok {
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: unknown cast target type %q", n.Line, n.Col, info.Type)
	}
	val, src, err := g.emitExprTyped(n.Children[0])
	if err != nil {
		return llvm.Value{}, types.TUnk, err
	}
	return g.convert(val, src, target), target, nil
}

// convert coerces val from its checked type to to, narrowing or widening
// as needed. Call sites that must only widen (assignment, return,
// argument passing) should already have verified types.Assignable(to,
// from) holds before relying on the result.
func (g *Generator) convert(val llvm.Value, from, to types.Type) llvm.Value {
	if from == to {
		return val
	}
	llTo := g.llvmType(to)
	switch {
	case from.IsInteger() && to.IsInteger():
		fw, tw := intBits(from.Kind), intBits(to.Kind)
		if tw > fw {
			return g.builder.CreateSExt(val, llTo, "")
		}
		if tw < fw {
			return g.builder.CreateTrunc(val, llTo, "")
		}
		return val
	case from.IsInteger() && to.IsFloat():
		return g.builder.CreateSIToFP(val, llTo, "")
	case from.IsFloat() && to.IsInteger():
		return g.builder.CreateFPToSI(val, llTo, "")
	case from.IsFloat() && to.IsFloat():
		if to.Kind == types.F64 {
			return g.builder.CreateFPExt(val, llTo, "")
		}
		return g.builder.CreateFPTrunc(val, llTo, "")
	default:
		return val
	}
}

func intBits(k types.Kind) int {
	switch k {
	case types.I8, types.U8:
		return 8
	case types.I16, types.U16:
		return 16
	case types.I32, types.U32:
		return 32
	case types.I64, types.U64:
		return 64
	default:
		return 32
	}
}

// llvmType maps a checked Type to its LLVM representation. Every unsigned
// width maps to the same integer type as its signed counterpart: M keeps
// unsigned types distinct at the type-checking layer but lowers all
// integer arithmetic through signed LLVM instructions.
func (g *Generator) llvmType(t types.Type) llvm.Type {
	switch t.Kind {
	case types.I8, types.U8:
		return g.ctx.Int8Type()
	case types.I16, types.U16:
		return g.ctx.Int16Type()
	case types.I32, types.U32:
		return g.ctx.Int32Type()
	case types.I64, types.U64:
		return g.ctx.Int64Type()
	case types.F32:
		return g.ctx.FloatType()
	case types.F64:
		return g.ctx.DoubleType()
	case types.Bool:
		return g.ctx.Int1Type()
	case types.String:
		return llvm.PointerType(g.ctx.Int8Type(), 0)
	case types.Void:
		return g.ctx.VoidType()
	default:
		return g.ctx.Int32Type()
	}
}

func (g *Generator) emitCall(n *ast.Node) (llvm.Value, types.Type, error) {
	name := n.Data.(string)
	argList := n.Children[0]

	switch name {
	case "print", "println":
		return g.emitPrint(n, name == "println")
	case "toString":
		return g.emitToString(n)
	}

	fn, ok := g.fns[name]
	if !ok {
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: undeclared function %q", n.Line, n.Col, name)
	}
	params := g.params[name]
	args := make([]llvm.Value, len(argList.Children))
	for i, a := range argList.Children {
		v, srcType, err := g.emitExprTyped(a)
		if err != nil {
			return llvm.Value{}, types.TUnk, err
		}
		// Coerce each argument to the callee's declared parameter type, the
		// same widening applied at store and return sites.
		args[i] = g.convert(v, srcType, params[i])
	}
	ret := g.rets[name]
	return g.builder.CreateCall(fn, args, ""), ret, nil
}

func (g *Generator) emitPrint(n *ast.Node, newline bool) (llvm.Value, types.Type, error) {
	argList := n.Children[0]
	if len(argList.Children) != 1 {
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: print expects exactly one argument", n.Line, n.Col)
	}
	arg := argList.Children[0]

	var strPtr llvm.Value
	var err error
	if arg.Typ == ast.StringLiteral {
		strPtr = g.globalString(arg.Data.(string))
	} else {
		strPtr, _, err = g.emitExprTyped(arg)
		if err != nil {
			return llvm.Value{}, types.TUnk, err
		}
	}

	format := "%s"
	if newline {
		format = "%s\n"
	}
	fmtPtr := g.globalString(format)
	g.builder.CreateCall(g.printfFn, []llvm.Value{fmtPtr, strPtr}, "")
	return llvm.Value{}, types.TVoid, nil
}

func (g *Generator) emitToString(n *ast.Node) (llvm.Value, types.Type, error) {
	argList := n.Children[0]
	if len(argList.Children) != 1 {
		return llvm.Value{}, types.TUnk, fmt.Errorf("line %d:%d: toString expects exactly one argument", n.Line, n.Col)
	}
	val, srcType, err := g.emitExprTyped(argList.Children[0])
	if err != nil {
		return llvm.Value{}, types.TUnk, err
	}
	val = g.convert(val, srcType, types.TI32)

	zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
	bufPtr := g.builder.CreateGEP(g.tostringBuf, []llvm.Value{zero, zero}, "")
	size := llvm.ConstInt(g.ctx.Int64Type(), tostringBufSize, false)
	fmtPtr := g.globalString("%d")
	g.builder.CreateCall(g.snprintfFn, []llvm.Value{bufPtr, size, fmtPtr, val}, "")
	return bufPtr, types.TString, nil
}

// globalString adds s as a new private, null-terminated global (one per
// call; equal strings are not shared) and returns a pointer to its first
// character.
func (g *Generator) globalString(s string) llvm.Value {
	g.strCount++
	name := fmt.Sprintf("m.str.%d", g.strCount)
	cst := llvm.ConstString(s, true)
	glob := llvm.AddGlobal(g.module, cst.Type(), name)
	glob.SetInitializer(cst)
	glob.SetLinkage(llvm.PrivateLinkage)
	glob.SetGlobalConstant(true)
	zero := llvm.ConstInt(g.ctx.Int32Type(), 0, false)
	return g.builder.CreateGEP(glob, []llvm.Value{zero, zero}, "")
}

// Verify runs the LLVM module verifier and turns any structural problem
// into a Go error instead of the default abort-the-process behaviour.
func (g *Generator) Verify() error {
	return llvm.VerifyModule(g.module, llvm.ReturnStatusAction)
}

// String renders the module's textual LLVM IR, mainly for tests and the
// --emit-ll CLI flag.
func (g *Generator) String() string {
	return g.module.String()
}
