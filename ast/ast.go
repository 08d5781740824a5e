// Package ast defines the parse-tree node type the core consumes: a
// tagged variant (NodeType tag plus a generic Data payload and ordered
// Children) rather than a generated-visitor tree, so callers walk it with
// an ordinary Go type switch on Typ instead of a Visit/Accept pair.
package ast

import "fmt"

// NodeType tags the production or leaf kind a Node represents.
type NodeType int

const (
	Program NodeType = iota
	FunctionDecl
	ExternFunctionDecl
	ParamList
	Param
	VariableDecl
	Assignment
	Block
	If
	While
	Return
	ExprStmt
	Binary
	Unary
	Call
	ArgList
	Cast
	Identifier
	IntLiteral
	FloatLiteral
	BoolLiteral
	StringLiteral
)

var names = [...]string{
	Program: "Program", FunctionDecl: "FunctionDecl", ExternFunctionDecl: "ExternFunctionDecl",
	ParamList: "ParamList", Param: "Param", VariableDecl: "VariableDecl",
	Assignment: "Assignment", Block: "Block", If: "If", While: "While",
	Return: "Return", ExprStmt: "ExprStmt", Binary: "Binary", Unary: "Unary",
	Call: "Call", ArgList: "ArgList", Cast: "Cast", Identifier: "Identifier",
	IntLiteral: "IntLiteral", FloatLiteral: "FloatLiteral", BoolLiteral: "BoolLiteral",
	StringLiteral: "StringLiteral",
}

func (t NodeType) String() string {
	if int(t) < 0 || int(t) >= len(names) {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return names[t]
}

// Node is a single parse-tree node. Data carries production-specific
// payload: the operator string for Binary/Unary, the literal value for
// *Literal nodes, a plain name string for Identifier and Call, and one of
// the Info structs below for declarations, parameters and casts.
type Node struct {
	Typ      NodeType
	Line     int
	Col      int
	Data     interface{}
	Children []*Node
}

// FuncInfo is the Data payload of FunctionDecl and ExternFunctionDecl.
type FuncInfo struct {
	Name       string
	ReturnType string
}

// ParamInfo is the Data payload of Param.
type ParamInfo struct {
	Name string
	Type string
}

// VarInfo is the Data payload of VariableDecl.
type VarInfo struct {
	Name    string
	Type    string
	Const   bool
	HasInit bool
}

// CastInfo is the Data payload of Cast: the target type named in "e as : T".
type CastInfo struct {
	Type string
}

// New returns a Node of the given type at the given position with the
// given children, in order.
func New(typ NodeType, line, col int, data interface{}, children ...*Node) *Node {
	return &Node{Typ: typ, Line: line, Col: col, Data: data, Children: children}
}

// Text returns a string representation of a leaf node's Data.
func (n *Node) Text() string {
	switch v := n.Data.(type) {
	case string:
		return v
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s@%d:%d", n.Typ, n.Line, n.Col)
}
