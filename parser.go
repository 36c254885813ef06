package main

import "fmt"

// Parser is a recursive descent parser with one token of lookahead. It
// reports the first syntax error and never returns a partial tree.
type Parser struct {
	scanner *Scanner
	curr    Token
}

// NewParser creates a parser reading tokens from source.
func NewParser(source string) *Parser {
	return &Parser{scanner: NewScanner(source)}
}

// ParseProgram parses a whole program and checks that nothing follows it.
func (p *Parser) ParseProgram() (*Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	row := p.curr.Row
	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(EOF, ""); err != nil {
		return nil, err
	}
	return &Program{Position: Position{Row: row}, Statements: stmts}, nil
}

// ParseExpression parses a single expression followed by end of input.
func (p *Parser) ParseExpression() (Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(EOF, ""); err != nil {
		return nil, err
	}
	return expr, nil
}

// advance reads the next token into curr.
func (p *Parser) advance() error {
	tok, err := p.scanner.NextToken()
	if err != nil {
		return err
	}
	p.curr = tok
	return nil
}

// match consumes the current token if it has the given type and, when value
// is non-empty, the given literal.
func (p *Parser) match(typ TokenType, value string) (Token, error) {
	tok := p.curr
	if tok.Type != typ || (value != "" && tok.Literal != value) {
		return tok, p.unexpected(describeExpected(typ, value))
	}
	return tok, p.advance()
}

func (p *Parser) unexpected(expected string) error {
	err := syntaxErrorf(p.curr, "Expected %s but found %s on row %d, col %d.",
		expected, p.curr.Describe(), p.curr.Row, p.curr.Col)
	err.Incomplete = p.curr.Type == EOF
	return err
}

func (p *Parser) isKeyword(word string) bool {
	return p.curr.Type == KEYWORD && p.curr.Literal == word
}

func describeExpected(typ TokenType, value string) string {
	if value != "" {
		return Token{Type: typ, Literal: value}.Describe()
	}
	switch typ {
	case EOF:
		return "end of input"
	case IDENT:
		return "an identifier"
	case INT:
		return "an integer literal"
	case STRING:
		return "a string literal"
	default:
		return fmt.Sprintf("%q", string(typ))
	}
}

// parseStatements parses one or more semicolon-terminated statements. The
// list ends at end of input or at the keyword "end".
func (p *Parser) parseStatements() ([]Statement, error) {
	var stmts []Statement
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(SEMICOLON, ""); err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.curr.Type == EOF || p.isKeyword("end") {
			return stmts, nil
		}
	}
}

func (p *Parser) parseStatement() (Statement, error) {
	tok := p.curr
	pos := Position{Row: tok.Row}

	switch {
	case tok.Type == IDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.match(ASSIGN, ""); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		target := &VariableReference{Position: pos, Name: tok.Literal}
		return &Assignment{Position: pos, Target: target, Expr: expr}, nil

	case p.isKeyword("var"):
		return p.parseDeclaration()

	case p.isKeyword("for"):
		return p.parseLoop()

	case p.isKeyword("read"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.match(IDENT, "")
		if err != nil {
			return nil, err
		}
		ref := &VariableReference{Position: Position{Row: name.Row}, Name: name.Literal}
		return &ReadStatement{Position: pos, Variable: ref}, nil

	case p.isKeyword("print"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Position: pos, Keyword: "print", Expr: expr}, nil

	case p.isKeyword("assert"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.match(LPAREN, ""); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(RPAREN, ""); err != nil {
			return nil, err
		}
		return &ExpressionStatement{Position: pos, Keyword: "assert", Expr: expr}, nil

	default:
		return nil, p.unexpected("a statement")
	}
}

// parseDeclaration parses "var" IDENT ":" type [":=" expr]. With an
// initializer the result is an Assignment whose target is the declaration.
func (p *Parser) parseDeclaration() (Statement, error) {
	pos := Position{Row: p.curr.Row}
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.match(IDENT, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.match(COLON, ""); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	decl := &VariableDeclaration{Position: pos, Name: name.Literal, Type: typ}
	if p.curr.Type != ASSIGN {
		return decl, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Assignment{Position: pos, Target: decl, Expr: expr}, nil
}

func (p *Parser) parseType() (Type, error) {
	if p.curr.Type == KEYWORD {
		switch typ := Type(p.curr.Literal); typ {
		case TypeInt, TypeString, TypeBool:
			return typ, p.advance()
		}
	}
	return "", p.unexpected("a type name")
}

// parseLoop parses "for" IDENT "in" expr ".." expr "do" statements "end" "for".
func (p *Parser) parseLoop() (Statement, error) {
	pos := Position{Row: p.curr.Row}
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.match(IDENT, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.match(KEYWORD, "in"); err != nil {
		return nil, err
	}

	begin, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	rangeTok, err := p.match(RANGE, "")
	if err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.match(KEYWORD, "do"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.match(KEYWORD, "end"); err != nil {
		return nil, err
	}
	if _, err := p.match(KEYWORD, "for"); err != nil {
		return nil, err
	}

	return &Loop{
		Position: pos,
		Variable: &VariableReference{Position: Position{Row: name.Row}, Name: name.Literal},
		Range:    &Range{Position: Position{Row: rangeTok.Row}, Begin: begin, End: end},
		Body:     body,
	}, nil
}

// parseExpression parses '!' operand, or operand with at most one binary
// operator. Longer chains need parentheses.
func (p *Parser) parseExpression() (Expression, error) {
	if p.curr.Type == BANG {
		pos := Position{Row: p.curr.Row}
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return &UnaryNot{Position: pos, Operand: operand}, nil
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != OPERATOR {
		return left, nil
	}

	op := p.curr
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	pos := Position{Row: op.Row}
	switch op.Literal {
	case "=", "&", "<":
		return &LogicalOp{Position: pos, Op: op.Literal, Left: left, Right: right}, nil
	default:
		return &ArithmeticOp{Position: pos, Op: op.Literal, Left: left, Right: right}, nil
	}
}

func (p *Parser) parseOperand() (Expression, error) {
	tok := p.curr
	pos := Position{Row: tok.Row}

	switch tok.Type {
	case INT:
		return &IntegerLiteral{Position: pos, Text: tok.Literal}, p.advance()
	case STRING:
		return &StringLiteral{Position: pos, Value: tok.Literal}, p.advance()
	case IDENT:
		return &VariableReference{Position: pos, Name: tok.Literal}, p.advance()
	case LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.match(RPAREN, ""); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.unexpected("an operand")
	}
}
