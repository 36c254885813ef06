package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Interpreter executes a type-checked program. Variable values live in the
// symbol table produced by the type checker.
type Interpreter struct {
	table *SymbolTable
	in    WordReader
	out   io.Writer
}

func NewInterpreter(table *SymbolTable, in WordReader, out io.Writer) *Interpreter {
	return &Interpreter{table: table, in: in, out: out}
}

// Run executes the statements of prog in order and stops at the first error.
func (it *Interpreter) Run(prog *Program) error {
	return it.execStatements(prog.Statements)
}

func (it *Interpreter) execStatements(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := it.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) symbol(name string) *Symbol {
	sym := it.table.Resolve(name)
	if sym == nil {
		panic(fmt.Sprintf("variable %q missing from symbol table", name))
	}
	return sym
}

func (it *Interpreter) execStatement(stmt Statement) error {
	switch n := stmt.(type) {
	case *VariableDeclaration:
		it.table.Reset(it.symbol(n.Name))
		return nil

	case *Assignment:
		v, err := it.Eval(n.Expr)
		if err != nil {
			return err
		}
		it.table.SetValue(it.symbol(n.Target.VarName()), v)
		return nil

	case *Loop:
		return it.execLoop(n)

	case *ExpressionStatement:
		v, err := it.Eval(n.Expr)
		if err != nil {
			return err
		}
		if n.Keyword == "print" {
			if _, err := io.WriteString(it.out, v.String()); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		}
		if !v.AsBool() {
			if ref, ok := n.Expr.(*VariableReference); ok {
				return runtimeErrorf(AssertionError, n.Row, "Assertion failed on row %d (variable %s is false).",
					n.Row, ref.Name)
			}
			return runtimeErrorf(AssertionError, n.Row, "Assertion failed on row %d.", n.Row)
		}
		return nil

	case *ReadStatement:
		return it.execRead(n)

	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

// execLoop evaluates both bounds once and runs the body for every value in
// the inclusive range, storing the counter in the loop variable first.
func (it *Interpreter) execLoop(n *Loop) error {
	begin, err := it.Eval(n.Range.Begin)
	if err != nil {
		return err
	}
	end, err := it.Eval(n.Range.End)
	if err != nil {
		return err
	}

	sym := it.symbol(n.Variable.Name)
	for i := int64(begin.AsInt()); i <= int64(end.AsInt()); i++ {
		it.table.SetValue(sym, IntValue(int32(i)))
		if err := it.execStatements(n.Body); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execRead(n *ReadStatement) error {
	sym := it.symbol(n.Variable.Name)
	word, err := it.in.ReadWord()
	if errors.Is(err, io.EOF) {
		return runtimeErrorf(ReadError, n.Row, "Unexpected end of input while reading variable %s.", sym.Name)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if sym.Type == TypeString {
		it.table.SetValue(sym, StringValue(word))
		return nil
	}

	num, err := parseInt32(word)
	if errors.Is(err, strconv.ErrRange) {
		return runtimeErrorf(ReadError, n.Row, "Input %q is out of integer range.", word)
	}
	if err != nil {
		return runtimeErrorf(ReadError, n.Row, "Input %q is not a valid integer.", word)
	}
	it.table.SetValue(sym, IntValue(num))
	return nil
}

// Eval evaluates an expression to a value.
func (it *Interpreter) Eval(expr Expression) (Value, error) {
	switch n := expr.(type) {
	case *IntegerLiteral:
		num, err := parseInt32(n.Text)
		if err != nil {
			panic(fmt.Sprintf("unchecked integer literal %s", n.Text))
		}
		return IntValue(num), nil

	case *StringLiteral:
		return StringValue(n.Value), nil

	case *VariableReference:
		return it.table.Value(it.symbol(n.Name)), nil

	case *ArithmeticOp:
		left, right, err := it.evalOperands(n.Left, n.Right)
		if err != nil {
			return Value{}, err
		}
		a, b := left.AsInt(), right.AsInt()
		switch n.Op {
		case "+":
			return IntValue(a + b), nil
		case "-":
			return IntValue(a - b), nil
		case "*":
			return IntValue(a * b), nil
		case "/":
			if b == 0 {
				return Value{}, runtimeErrorf(RuntimeError, n.Row, "Division by zero on row %d.", n.Row)
			}
			return IntValue(a / b), nil
		default:
			panic(fmt.Sprintf("unknown arithmetic operator %q", n.Op))
		}

	case *LogicalOp:
		left, right, err := it.evalOperands(n.Left, n.Right)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case "=":
			return BoolValue(left.Equal(right)), nil
		case "&":
			return BoolValue(left.AsBool() && right.AsBool()), nil
		case "<":
			return BoolValue(left.AsInt() < right.AsInt()), nil
		default:
			panic(fmt.Sprintf("unknown logical operator %q", n.Op))
		}

	case *UnaryNot:
		v, err := it.Eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(!v.AsBool()), nil

	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (it *Interpreter) evalOperands(left, right Expression) (Value, Value, error) {
	l, err := it.Eval(left)
	if err != nil {
		return Value{}, Value{}, err
	}
	r, err := it.Eval(right)
	if err != nil {
		return Value{}, Value{}, err
	}
	return l, r, nil
}
