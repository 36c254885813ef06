package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"
)

func at(row int) Position { return Position{Row: row} }

func parseProgram(t *testing.T, source string) *Program {
	t.Helper()
	prog, err := NewParser(source).ParseProgram()
	if err != nil {
		t.Fatalf("parsing %q: %v", source, err)
	}
	return prog
}

func parseExpr(t *testing.T, source string) Expression {
	t.Helper()
	expr, err := NewParser(source).ParseExpression()
	if err != nil {
		t.Fatalf("parsing %q: %v", source, err)
	}
	return expr
}

func TestParseExpressionTree(t *testing.T) {
	got := parseExpr(t, "x *\n(y - 1)")
	want := &ArithmeticOp{
		Position: at(1),
		Op:       "*",
		Left:     &VariableReference{Position: at(1), Name: "x"},
		Right: &ArithmeticOp{
			Position: at(2),
			Op:       "-",
			Left:     &VariableReference{Position: at(2), Name: "y"},
			Right:    &IntegerLiteral{Position: at(2), Text: "1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOperatorClassification(t *testing.T) {
	for _, op := range []string{"+", "-", "*", "/"} {
		expr := parseExpr(t, "1 "+op+" 2")
		arith, ok := expr.(*ArithmeticOp)
		be.True(t, ok)
		if ok {
			be.Equal(t, arith.Op, op)
		}
	}
	for _, op := range []string{"=", "&", "<"} {
		expr := parseExpr(t, "a "+op+" b")
		logical, ok := expr.(*LogicalOp)
		be.True(t, ok)
		if ok {
			be.Equal(t, logical.Op, op)
		}
	}
}

func TestParseDeclarationWithInitializer(t *testing.T) {
	got := parseProgram(t, "var foo12 : int := 0;")
	want := &Program{
		Position: at(1),
		Statements: []Statement{
			&Assignment{
				Position: at(1),
				Target:   &VariableDeclaration{Position: at(1), Name: "foo12", Type: TypeInt},
				Expr:     &IntegerLiteral{Position: at(1), Text: "0"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatements(t *testing.T) {
	got := parseProgram(t, `var s : string;
print "How many times?";
read foo;
assert (!b);
x := 1;`)
	want := &Program{
		Position: at(1),
		Statements: []Statement{
			&VariableDeclaration{Position: at(1), Name: "s", Type: TypeString},
			&ExpressionStatement{Position: at(2), Keyword: "print",
				Expr: &StringLiteral{Position: at(2), Value: "How many times?"}},
			&ReadStatement{Position: at(3),
				Variable: &VariableReference{Position: at(3), Name: "foo"}},
			&ExpressionStatement{Position: at(4), Keyword: "assert",
				Expr: &UnaryNot{Position: at(4), Operand: &VariableReference{Position: at(4), Name: "b"}}},
			&Assignment{Position: at(5),
				Target: &VariableReference{Position: at(5), Name: "x"},
				Expr:   &IntegerLiteral{Position: at(5), Text: "1"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLoop(t *testing.T) {
	got := parseProgram(t, `for i in 0..length-1 do
  print i;
end for;`)
	want := &Program{
		Position: at(1),
		Statements: []Statement{
			&Loop{
				Position: at(1),
				Variable: &VariableReference{Position: at(1), Name: "i"},
				Range: &Range{
					Position: at(1),
					Begin:    &IntegerLiteral{Position: at(1), Text: "0"},
					End: &ArithmeticOp{Position: at(1), Op: "-",
						Left:  &VariableReference{Position: at(1), Name: "length"},
						Right: &IntegerLiteral{Position: at(1), Text: "1"}},
				},
				Body: []Statement{
					&ExpressionStatement{Position: at(2), Keyword: "print",
						Expr: &VariableReference{Position: at(2), Name: "i"}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		source     string
		kind       ErrorKind
		message    string
		incomplete bool
	}{
		{"", SyntaxError, "Expected a statement but found end of input on row 1, col 1.", true},
		{`read "foo";`, SyntaxError, `Expected an identifier but found string literal "foo" on row 1, col 6.`, false},
		{"read 10;", SyntaxError, "Expected an identifier but found integer literal 10 on row 1, col 6.", false},
		{"print 1", SyntaxError, `Expected ";" but found end of input on row 1, col 8.`, true},
		{"print 1;;", SyntaxError, `Expected a statement but found ";" on row 1, col 9.`, false},
		{"x = 1;", SyntaxError, `Expected ":=" but found operator "=" on row 1, col 3.`, false},
		{"var x int;", SyntaxError, `Expected ":" but found keyword "int" on row 1, col 7.`, false},
		{"var x : for;", SyntaxError, `Expected a type name but found keyword "for" on row 1, col 9.`, false},
		{"print (1 + 2;", SyntaxError, `Expected ")" but found ";" on row 1, col 13.`, false},
		{"print !!x;", SyntaxError, `Expected an operand but found "!" on row 1, col 8.`, false},
		{"print 1 + + 2;", SyntaxError, `Expected an operand but found operator "+" on row 1, col 11.`, false},
		{"for i in 1..2 do end for;", SyntaxError, `Expected a statement but found keyword "end" on row 1, col 18.`, false},
		{"for i in 1 do print i; end for;", SyntaxError, `Expected ".." but found keyword "do" on row 1, col 12.`, false},
		{"for i in 1..2 do print i; end;", SyntaxError, `Expected keyword "for" but found ";" on row 1, col 30.`, false},
		{"for i = 1..2 do print i; end for;", SyntaxError, `Expected keyword "in" but found operator "=" on row 1, col 7.`, false},
		{"print 1 @ 2;", LexicalError, `Invalid token "@" on row 1, col 9.`, false},
	}

	for _, tt := range tests {
		_, err := NewParser(tt.source).ParseProgram()
		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("%q: expected *Error, got %v", tt.source, err)
		}
		be.Equal(t, e.Kind, tt.kind)
		be.Equal(t, e.Message, tt.message)
		be.Equal(t, e.Incomplete, tt.incomplete)
	}
}

func TestParseExpressionRejectsTrailingTokens(t *testing.T) {
	_, err := NewParser("1 + 2 + 3").ParseExpression()
	var e *Error
	be.True(t, errors.As(err, &e))
	be.Equal(t, e.Message, `Expected end of input but found operator "+" on row 1, col 7.`)
	be.Equal(t, e.Row, 1)
	be.Equal(t, e.Col, 7)
}

func TestToSExpr(t *testing.T) {
	prog := parseProgram(t, `var n : int := 3;
for i in 1..n do
  assert (!(i = 0));
  print "a\"b";
end for;
read n;`)
	be.Equal(t, ToSExpr(prog),
		`(program (assign (decl "n" int) (integer 3)) `+
			`(for (var "i") (range (integer 1) (var "n")) `+
			`(block (assert (not (logical "=" (var "i") (integer 0)))) (print (string "a\"b")))) `+
			`(read (var "n")))`)
}

func TestStatementCount(t *testing.T) {
	prog := parseProgram(t, `var i : int;
for i in 1..2 do
  print i;
  print i;
end for;`)
	be.Equal(t, statementCount(prog.Statements), 4)
}
