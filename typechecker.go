package main

import (
	"fmt"
	"strconv"
)

// TypeChecker walks a program once, defining variables in its symbol table
// and inferring expression types bottom-up on a stack of type tags.
type TypeChecker struct {
	table     *SymbolTable
	stack     []Type
	loopDepth int // number of enclosing loop bodies
}

// NewTypeChecker creates a checker that defines variables in table. A table
// shared across several CheckProgram calls accumulates their declarations.
func NewTypeChecker(table *SymbolTable) *TypeChecker {
	return &TypeChecker{table: table}
}

// Check type-checks prog against a fresh symbol table and returns the table
// for use by the interpreter.
func Check(prog *Program) (*SymbolTable, error) {
	table := NewSymbolTable()
	if err := NewTypeChecker(table).CheckProgram(prog); err != nil {
		return nil, err
	}
	return table, nil
}

// CheckProgram type-checks every statement of prog.
func (tc *TypeChecker) CheckProgram(prog *Program) error {
	tc.stack = tc.stack[:0]
	tc.loopDepth = 0
	if err := tc.checkStatements(prog.Statements); err != nil {
		return err
	}
	if len(tc.stack) != 0 {
		panic(fmt.Sprintf("type stack not empty after checking: %v", tc.stack))
	}
	return nil
}

// CheckExpression infers the type of a standalone expression.
func (tc *TypeChecker) CheckExpression(expr Expression) (Type, error) {
	tc.stack = tc.stack[:0]
	if err := tc.checkExpression(expr); err != nil {
		return "", err
	}
	typ := tc.pop()
	if len(tc.stack) != 0 {
		panic(fmt.Sprintf("type stack not empty after checking: %v", tc.stack))
	}
	return typ, nil
}

func (tc *TypeChecker) push(t Type) {
	tc.stack = append(tc.stack, t)
}

func (tc *TypeChecker) pop() Type {
	if len(tc.stack) == 0 {
		panic("type stack underflow")
	}
	t := tc.stack[len(tc.stack)-1]
	tc.stack = tc.stack[:len(tc.stack)-1]
	return t
}

// pop2 pops the right then the left operand type.
func (tc *TypeChecker) pop2() (left, right Type) {
	right = tc.pop()
	left = tc.pop()
	return left, right
}

func (tc *TypeChecker) checkStatements(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := tc.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (tc *TypeChecker) checkStatement(stmt Statement) error {
	switch n := stmt.(type) {
	case *VariableDeclaration:
		_, err := tc.declare(n)
		return err

	case *Assignment:
		if err := tc.checkExpression(n.Expr); err != nil {
			return err
		}
		exprType := tc.pop()

		var sym *Symbol
		var err error
		switch target := n.Target.(type) {
		case *VariableDeclaration:
			sym, err = tc.declare(target)
		case *VariableReference:
			sym, err = tc.resolve(target)
		}
		if err != nil {
			return err
		}
		if sym.Type != exprType {
			return semanticErrorf(n.Row,
				"Attempting to assign expression of type %q to variable %q of type %q on row %d.",
				exprType, sym.Name, sym.Type, n.Row)
		}
		return nil

	case *Loop:
		sym, err := tc.resolve(n.Variable)
		if err != nil {
			return err
		}
		if sym.Type != TypeInt {
			return semanticErrorf(n.Variable.Row, "Loop variable %s on row %d is not an int.",
				sym.Name, n.Variable.Row)
		}
		if err := tc.checkRange(n.Range); err != nil {
			return err
		}
		tc.loopDepth++
		defer func() { tc.loopDepth-- }()
		return tc.checkStatements(n.Body)

	case *ExpressionStatement:
		if err := tc.checkExpression(n.Expr); err != nil {
			return err
		}
		typ := tc.pop()
		switch {
		case n.Keyword == "assert" && typ != TypeBool:
			return semanticErrorf(n.Row, "Invalid argument type %q for assert statement on row %d.", typ, n.Row)
		case n.Keyword == "print" && typ == TypeBool:
			return semanticErrorf(n.Row, "Invalid argument type %q for print statement on row %d.", typ, n.Row)
		}
		return nil

	case *ReadStatement:
		sym, err := tc.resolve(n.Variable)
		if err != nil {
			return err
		}
		if sym.Type == TypeBool {
			return semanticErrorf(n.Row, "Invalid argument type %q for read statement on row %d.", sym.Type, n.Row)
		}
		return nil

	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

// declare defines the variable, rejecting redefinitions and declarations
// inside loop bodies.
func (tc *TypeChecker) declare(decl *VariableDeclaration) (*Symbol, error) {
	if tc.loopDepth > 0 {
		return nil, semanticErrorf(decl.Row, "Variable %s is declared inside a loop body on row %d.",
			decl.Name, decl.Row)
	}
	sym, ok := tc.table.Define(decl.Name, decl.Type, decl.Row)
	if !ok {
		return nil, semanticErrorf(decl.Row, "Variable %s is already defined (row %d).", decl.Name, sym.Row)
	}
	return sym, nil
}

func (tc *TypeChecker) resolve(ref *VariableReference) (*Symbol, error) {
	sym := tc.table.Resolve(ref.Name)
	if sym == nil {
		return nil, semanticErrorf(ref.Row, "Reference to undefined identifier %s on row %d.", ref.Name, ref.Row)
	}
	return sym, nil
}

func (tc *TypeChecker) checkRange(r *Range) error {
	if err := tc.checkExpression(r.Begin); err != nil {
		return err
	}
	if err := tc.checkExpression(r.End); err != nil {
		return err
	}
	left, right := tc.pop2()
	if left != TypeInt || right != TypeInt {
		return semanticErrorf(r.Row, "Invalid argument types for range operator \"..\" on row %d.", r.Row)
	}
	return nil
}

func (tc *TypeChecker) checkExpression(expr Expression) error {
	switch n := expr.(type) {
	case *IntegerLiteral:
		if _, err := parseInt32(n.Text); err != nil {
			return semanticErrorf(n.Row, "Integer overflow on row %d, in literal %s.", n.Row, n.Text)
		}
		tc.push(TypeInt)

	case *StringLiteral:
		tc.push(TypeString)

	case *VariableReference:
		sym, err := tc.resolve(n)
		if err != nil {
			return err
		}
		tc.push(sym.Type)

	case *ArithmeticOp:
		if err := tc.checkOperands(n.Left, n.Right); err != nil {
			return err
		}
		left, right := tc.pop2()
		if left != TypeInt || right != TypeInt {
			return semanticErrorf(n.Row, "Non-integer arguments to arithmetic operator on row %d.", n.Row)
		}
		tc.push(TypeInt)

	case *LogicalOp:
		if err := tc.checkOperands(n.Left, n.Right); err != nil {
			return err
		}
		left, right := tc.pop2()
		switch n.Op {
		case "&":
			if left != TypeBool || right != TypeBool {
				return semanticErrorf(n.Row, "Non-boolean arguments to logical and operator \"&\" on row %d.", n.Row)
			}
		case "<":
			if left != TypeInt || right != TypeInt {
				return semanticErrorf(n.Row, "Non-integer arguments to comparison operator \"<\" on row %d.", n.Row)
			}
		default:
			if left != right {
				return semanticErrorf(n.Row, "Logical operator %q cannot be applied to types %q and %q on row %d.",
					n.Op, left, right, n.Row)
			}
		}
		tc.push(TypeBool)

	case *UnaryNot:
		if err := tc.checkExpression(n.Operand); err != nil {
			return err
		}
		if tc.pop() != TypeBool {
			return semanticErrorf(n.Row, "Invalid argument type for unary not operator \"!\" on row %d.", n.Row)
		}
		tc.push(TypeBool)

	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
	return nil
}

func (tc *TypeChecker) checkOperands(left, right Expression) error {
	if err := tc.checkExpression(left); err != nil {
		return err
	}
	return tc.checkExpression(right)
}

// parseInt32 parses decimal digits into a 32-bit signed integer.
func parseInt32(text string) (int32, error) {
	n, err := strconv.ParseInt(text, 10, 32)
	return int32(n), err
}
