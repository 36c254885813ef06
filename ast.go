package main

import "strings"

// Position records where a node starts in the source.
type Position struct {
	Row int
}

// Pos returns the 1-based source row of the node.
func (p Position) Pos() int { return p.Row }

// Node is implemented by every AST node. The set of implementations is
// closed: all traversals type-switch over the concrete types below.
type Node interface {
	Pos() int
	node()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node that can appear in a statement list.
type Statement interface {
	Node
	stmtNode()
}

// Target is the left-hand side of an assignment: either a fresh declaration
// or a reference to an existing variable.
type Target interface {
	Node
	VarName() string
	targetNode()
}

// Program is the root of the tree.
type Program struct {
	Position
	Statements []Statement
}

type IntegerLiteral struct {
	Position
	Text string // decimal digits, range-checked by the type checker
}

type StringLiteral struct {
	Position
	Value string // escape sequences already decoded
}

type VariableReference struct {
	Position
	Name string
}

type VariableDeclaration struct {
	Position
	Name string
	Type Type
}

// ArithmeticOp is one of + - * / applied to two int operands.
type ArithmeticOp struct {
	Position
	Op          string
	Left, Right Expression
}

// LogicalOp is = (equality on any matching types), & (boolean and) or
// < (integer comparison).
type LogicalOp struct {
	Position
	Op          string
	Left, Right Expression
}

type UnaryNot struct {
	Position
	Operand Expression
}

// Range holds the inclusive bounds of a for loop.
type Range struct {
	Position
	Begin, End Expression
}

type Assignment struct {
	Position
	Target Target
	Expr   Expression
}

// ExpressionStatement is a print or assert statement.
type ExpressionStatement struct {
	Position
	Keyword string // "print" or "assert"
	Expr    Expression
}

type ReadStatement struct {
	Position
	Variable *VariableReference
}

type Loop struct {
	Position
	Variable *VariableReference
	Range    *Range
	Body     []Statement
}

func (*Program) node()             {}
func (*IntegerLiteral) node()      {}
func (*StringLiteral) node()       {}
func (*VariableReference) node()   {}
func (*VariableDeclaration) node() {}
func (*ArithmeticOp) node()        {}
func (*LogicalOp) node()           {}
func (*UnaryNot) node()            {}
func (*Range) node()               {}
func (*Assignment) node()          {}
func (*ExpressionStatement) node() {}
func (*ReadStatement) node()       {}
func (*Loop) node()                {}

func (*IntegerLiteral) exprNode()    {}
func (*StringLiteral) exprNode()     {}
func (*VariableReference) exprNode() {}
func (*ArithmeticOp) exprNode()      {}
func (*LogicalOp) exprNode()         {}
func (*UnaryNot) exprNode()          {}

func (*VariableDeclaration) stmtNode() {}
func (*Assignment) stmtNode()          {}
func (*ExpressionStatement) stmtNode() {}
func (*ReadStatement) stmtNode()       {}
func (*Loop) stmtNode()                {}

func (*VariableReference) targetNode()   {}
func (*VariableDeclaration) targetNode() {}

func (n *VariableReference) VarName() string   { return n.Name }
func (n *VariableDeclaration) VarName() string { return n.Name }

// ToSExpr converts an AST node to its s-expression representation.
func ToSExpr(node Node) string {
	switch n := node.(type) {
	case *Program:
		return list("program", statementsSExpr(n.Statements)...)
	case *IntegerLiteral:
		return "(integer " + n.Text + ")"
	case *StringLiteral:
		return "(string " + quote(n.Value) + ")"
	case *VariableReference:
		return "(var " + quote(n.Name) + ")"
	case *VariableDeclaration:
		return "(decl " + quote(n.Name) + " " + string(n.Type) + ")"
	case *ArithmeticOp:
		return list("binary", quote(n.Op), ToSExpr(n.Left), ToSExpr(n.Right))
	case *LogicalOp:
		return list("logical", quote(n.Op), ToSExpr(n.Left), ToSExpr(n.Right))
	case *UnaryNot:
		return list("not", ToSExpr(n.Operand))
	case *Range:
		return list("range", ToSExpr(n.Begin), ToSExpr(n.End))
	case *Assignment:
		return list("assign", ToSExpr(n.Target), ToSExpr(n.Expr))
	case *ExpressionStatement:
		return list(n.Keyword, ToSExpr(n.Expr))
	case *ReadStatement:
		return list("read", ToSExpr(n.Variable))
	case *Loop:
		body := list("block", statementsSExpr(n.Body)...)
		return list("for", ToSExpr(n.Variable), ToSExpr(n.Range), body)
	default:
		return ""
	}
}

func statementsSExpr(stmts []Statement) []string {
	parts := make([]string, len(stmts))
	for i, stmt := range stmts {
		parts[i] = ToSExpr(stmt)
	}
	return parts
}

func list(head string, items ...string) string {
	return "(" + strings.Join(append([]string{head}, items...), " ") + ")"
}

// quote writes s as an s-expression string; only \ and " are escaped.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// statementCount counts statements including those nested in loop bodies.
func statementCount(stmts []Statement) int {
	count := len(stmts)
	for _, stmt := range stmts {
		if loop, ok := stmt.(*Loop); ok {
			count += statementCount(loop.Body)
		}
	}
	return count
}
