package frontend

import (
	"fmt"

	"mlc/ast"
)

// Parser is a recursive-descent parser building ast.Node trees directly
// with one token of lookahead, plus a one-token peek (peekNext) that tells
// a variable declaration from an assignment at statement start: declarations
// at the top, statements inside a block, and a precedence-climbing
// expression grammar (||, &&, equality, relational, additive,
// multiplicative, unary, cast, primary).
type Parser struct {
	lx     *lexer
	tok    token
	file   string
	peeked *token
}

// ParseError reports a syntax error with source position.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse lexes and parses src into a Program node, or returns the first
// syntax error encountered.
func Parse(file, src string) (prog *ast.Node, err error) {
	p := &Parser{lx: newLexer(src), file: file}
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	p.advance()
	prog = p.parseProgram()
	return prog, nil
}

func (p *Parser) advance() {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
	} else {
		p.tok = p.lx.Next()
	}
	if p.tok.typ == tokError {
		p.fail(p.tok.val)
	}
}

// peekNext returns the token after the current one without consuming it.
func (p *Parser) peekNext() token {
	if p.peeked == nil {
		t := p.lx.Next()
		p.peeked = &t
	}
	return *p.peeked
}

func (p *Parser) fail(msg string) {
	panic(&ParseError{Msg: msg, Line: p.tok.line, Col: p.tok.col})
}

func (p *Parser) expect(tt tokenType, what string) token {
	if p.tok.typ != tt {
		p.fail(fmt.Sprintf("expected %s, got %q", what, p.tok.val))
	}
	t := p.tok
	p.advance()
	return t
}

func (p *Parser) parseType() string {
	t := p.expect(tokIdent, "type name")
	return t.val
}

// parseProgram := (ExternDecl | FuncDecl)* EOF
func (p *Parser) parseProgram() *ast.Node {
	line, col := p.tok.line, p.tok.col
	var decls []*ast.Node
	for p.tok.typ != tokEOF {
		if p.tok.typ == tokKwExtern {
			decls = append(decls, p.parseExternDecl())
		} else {
			decls = append(decls, p.parseFuncDecl())
		}
	}
	return ast.New(ast.Program, line, col, nil, decls...)
}

// ExternDecl := "extern" ":" Ident "(" ParamList? ")" ":" Type ";"
func (p *Parser) parseExternDecl() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.advance() // extern
	p.expect(tokColon, "':'")
	name := p.expect(tokIdent, "function name")
	params := p.parseParamList()
	p.expect(tokColon, "':'")
	ret := p.parseType()
	p.expect(tokSemicolon, "';'")
	return ast.New(ast.ExternFunctionDecl, line, col,
		ast.FuncInfo{Name: name.val, ReturnType: ret}, params)
}

// FuncDecl := ":" Ident "(" ParamList? ")" ":" Type Block
func (p *Parser) parseFuncDecl() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.expect(tokColon, "':'")
	name := p.expect(tokIdent, "function name")
	params := p.parseParamList()
	p.expect(tokColon, "':'")
	ret := p.parseType()
	body := p.parseBlock()
	return ast.New(ast.FunctionDecl, line, col,
		ast.FuncInfo{Name: name.val, ReturnType: ret}, params, body)
}

// ParamList := "(" (Param ("," Param)*)? ")"
func (p *Parser) parseParamList() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.expect(tokLParen, "'('")
	var params []*ast.Node
	for p.tok.typ != tokRParen {
		params = append(params, p.parseParam())
		if p.tok.typ == tokComma {
			p.advance()
		} else {
			break
		}
	}
	p.expect(tokRParen, "')'")
	return ast.New(ast.ParamList, line, col, nil, params...)
}

// Param := Ident ":" Type
func (p *Parser) parseParam() *ast.Node {
	line, col := p.tok.line, p.tok.col
	name := p.expect(tokIdent, "parameter name")
	p.expect(tokColon, "':'")
	typ := p.parseType()
	return ast.New(ast.Param, line, col, ast.ParamInfo{Name: name.val, Type: typ})
}

// Block := "{" Stmt* "}"
func (p *Parser) parseBlock() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.expect(tokLBrace, "'{'")
	var stmts []*ast.Node
	for p.tok.typ != tokRBrace {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(tokRBrace, "'}'")
	return ast.New(ast.Block, line, col, nil, stmts...)
}

func (p *Parser) parseStmt() *ast.Node {
	switch p.tok.typ {
	case tokLBrace:
		return p.parseBlock()
	case tokKwIf:
		return p.parseIf()
	case tokKwWhile:
		return p.parseWhile()
	case tokKwReturn:
		return p.parseReturn()
	case tokKwConst:
		return p.parseVarDecl(true)
	case tokIdent:
		// Either a variable declaration ("x : i32 = e;"), an assignment
		// ("x = e;"), or an expression statement ("f(e);").
		if p.peekNext().typ == tokColon {
			return p.parseVarDecl(false)
		}
		return p.parseAssignmentOrExprStmt()
	default:
		p.fail(fmt.Sprintf("unexpected token %q at start of statement", p.tok.val))
		return nil
	}
}

// VariableDecl := ["const"] Ident ":" Type ("=" Expr)? ";"
func (p *Parser) parseVarDecl(isConst bool) *ast.Node {
	line, col := p.tok.line, p.tok.col
	if isConst {
		p.advance() // const
	}
	name := p.expect(tokIdent, "variable name")
	p.expect(tokColon, "':'")
	typ := p.parseType()
	var init []*ast.Node
	hasInit := false
	if p.tok.typ == tokAssign {
		p.advance()
		hasInit = true
		init = append(init, p.parseExpr())
	}
	p.expect(tokSemicolon, "';'")
	return ast.New(ast.VariableDecl, line, col,
		ast.VarInfo{Name: name.val, Type: typ, Const: isConst, HasInit: hasInit}, init...)
}

// Assignment := Ident "=" Expr ";"
// ExprStmt    := Call ";"
func (p *Parser) parseAssignmentOrExprStmt() *ast.Node {
	line, col := p.tok.line, p.tok.col
	name := p.expect(tokIdent, "identifier")
	if p.tok.typ == tokAssign {
		p.advance()
		val := p.parseExpr()
		p.expect(tokSemicolon, "';'")
		return ast.New(ast.Assignment, line, col, name.val, val)
	}
	if p.tok.typ == tokLParen {
		call := p.parseCallTail(line, col, name.val)
		p.expect(tokSemicolon, "';'")
		return ast.New(ast.ExprStmt, line, col, nil, call)
	}
	p.fail(fmt.Sprintf("unexpected token %q after identifier %q", p.tok.val, name.val))
	return nil
}

// If := "if" "(" Expr ")" Block ("else" (If | Block))?
func (p *Parser) parseIf() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.advance() // if
	p.expect(tokLParen, "'('")
	cond := p.parseExpr()
	p.expect(tokRParen, "')'")
	then := p.parseBlock()
	children := []*ast.Node{cond, then}
	if p.tok.typ == tokKwElse {
		p.advance()
		if p.tok.typ == tokKwIf {
			children = append(children, p.parseIf())
		} else {
			children = append(children, p.parseBlock())
		}
	}
	return ast.New(ast.If, line, col, nil, children...)
}

// While := "while" "(" Expr ")" Block
func (p *Parser) parseWhile() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.advance() // while
	p.expect(tokLParen, "'('")
	cond := p.parseExpr()
	p.expect(tokRParen, "')'")
	body := p.parseBlock()
	return ast.New(ast.While, line, col, nil, cond, body)
}

// Return := "return" Expr? ";"
func (p *Parser) parseReturn() *ast.Node {
	line, col := p.tok.line, p.tok.col
	p.advance() // return
	var children []*ast.Node
	if p.tok.typ != tokSemicolon {
		children = append(children, p.parseExpr())
	}
	p.expect(tokSemicolon, "';'")
	return ast.New(ast.Return, line, col, nil, children...)
}

// --- Expressions, lowest to highest precedence ---

func (p *Parser) parseExpr() *ast.Node { return p.parseOr() }

func (p *Parser) parseOr() *ast.Node {
	left := p.parseAnd()
	for p.tok.typ == tokOr {
		line, col := p.tok.line, p.tok.col
		p.advance()
		right := p.parseAnd()
		left = ast.New(ast.Binary, line, col, "||", left, right)
	}
	return left
}

func (p *Parser) parseAnd() *ast.Node {
	left := p.parseEquality()
	for p.tok.typ == tokAnd {
		line, col := p.tok.line, p.tok.col
		p.advance()
		right := p.parseEquality()
		left = ast.New(ast.Binary, line, col, "&&", left, right)
	}
	return left
}

func (p *Parser) parseEquality() *ast.Node {
	left := p.parseRelational()
	for p.tok.typ == tokEq || p.tok.typ == tokNe {
		op := p.tok.val
		line, col := p.tok.line, p.tok.col
		p.advance()
		right := p.parseRelational()
		left = ast.New(ast.Binary, line, col, op, left, right)
	}
	return left
}

func (p *Parser) parseRelational() *ast.Node {
	left := p.parseAdditive()
	for p.tok.typ == tokLt || p.tok.typ == tokLe || p.tok.typ == tokGt || p.tok.typ == tokGe {
		op := p.tok.val
		line, col := p.tok.line, p.tok.col
		p.advance()
		right := p.parseAdditive()
		left = ast.New(ast.Binary, line, col, op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() *ast.Node {
	left := p.parseMultiplicative()
	for p.tok.typ == tokPlus || p.tok.typ == tokMinus {
		op := p.tok.val
		line, col := p.tok.line, p.tok.col
		p.advance()
		right := p.parseMultiplicative()
		left = ast.New(ast.Binary, line, col, op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() *ast.Node {
	left := p.parseUnary()
	for p.tok.typ == tokStar || p.tok.typ == tokSlash || p.tok.typ == tokPercent {
		op := p.tok.val
		line, col := p.tok.line, p.tok.col
		p.advance()
		right := p.parseUnary()
		left = ast.New(ast.Binary, line, col, op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	if p.tok.typ == tokMinus || p.tok.typ == tokNot {
		op := p.tok.val
		line, col := p.tok.line, p.tok.col
		p.advance()
		operand := p.parseUnary()
		return ast.New(ast.Unary, line, col, op, operand)
	}
	return p.parseCast()
}

// Cast := Primary ("as" ":" Type)*
func (p *Parser) parseCast() *ast.Node {
	expr := p.parsePrimary()
	for p.tok.typ == tokKwAs {
		line, col := p.tok.line, p.tok.col
		p.advance()
		p.expect(tokColon, "':'")
		typ := p.parseType()
		expr = ast.New(ast.Cast, line, col, ast.CastInfo{Type: typ}, expr)
	}
	return expr
}

func (p *Parser) parsePrimary() *ast.Node {
	line, col := p.tok.line, p.tok.col
	switch p.tok.typ {
	case tokInt:
		v, err := parseIntLiteral(p.tok.val)
		if err != nil {
			p.fail(fmt.Sprintf("invalid integer literal %q", p.tok.val))
		}
		p.advance()
		return ast.New(ast.IntLiteral, line, col, v)
	case tokFloat:
		v, err := parseFloatLiteral(p.tok.val)
		if err != nil {
			p.fail(fmt.Sprintf("invalid float literal %q", p.tok.val))
		}
		p.advance()
		return ast.New(ast.FloatLiteral, line, col, v)
	case tokString:
		v := p.tok.val
		p.advance()
		return ast.New(ast.StringLiteral, line, col, v)
	case tokBool:
		v := p.tok.val == "true"
		p.advance()
		return ast.New(ast.BoolLiteral, line, col, v)
	case tokLParen:
		p.advance()
		e := p.parseExpr()
		p.expect(tokRParen, "')'")
		return e
	case tokIdent:
		name := p.tok.val
		p.advance()
		if p.tok.typ == tokLParen {
			return p.parseCallTail(line, col, name)
		}
		return ast.New(ast.Identifier, line, col, name)
	default:
		p.fail(fmt.Sprintf("unexpected token %q in expression", p.tok.val))
		return nil
	}
}

// parseCallTail parses "(" ArgList? ")" given the callee name was already
// consumed.
func (p *Parser) parseCallTail(line, col int, name string) *ast.Node {
	p.expect(tokLParen, "'('")
	argsLine, argsCol := p.tok.line, p.tok.col
	var args []*ast.Node
	for p.tok.typ != tokRParen {
		args = append(args, p.parseExpr())
		if p.tok.typ == tokComma {
			p.advance()
		} else {
			break
		}
	}
	p.expect(tokRParen, "')'")
	argList := ast.New(ast.ArgList, argsLine, argsCol, nil, args...)
	return ast.New(ast.Call, line, col, name, argList)
}
