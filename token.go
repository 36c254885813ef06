package main

import "fmt"

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

const (
	EOF TokenType = "EOF"

	// Identifiers + literals
	IDENT   TokenType = "IDENT"   // foo, x_1
	INT     TokenType = "INT"     // 12345
	STRING  TokenType = "STRING"  // "hello\n"
	KEYWORD TokenType = "KEYWORD" // var, for, print, int, ...

	// Operators
	OPERATOR  TokenType = "OPERATOR" // + - * / < = &
	BANG      TokenType = "!"
	RANGE     TokenType = ".."
	ASSIGN    TokenType = ":="
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	SEMICOLON TokenType = ";"
)

// keywords holds every reserved word, including the type names.
var keywords = map[string]bool{
	"var":    true,
	"for":    true,
	"end":    true,
	"in":     true,
	"do":     true,
	"read":   true,
	"print":  true,
	"assert": true,
	"int":    true,
	"string": true,
	"bool":   true,
}

// Token is a single lexical unit. Literal holds the decoded value for STRING
// tokens, the digit text for INT tokens, the name for IDENT and KEYWORD
// tokens, and the symbol for operators.
type Token struct {
	Type    TokenType
	Literal string
	Row     int // 1-based
	Col     int // 1-based, column of the first character
}

// Describe renders the token for syntax error messages.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT:
		return fmt.Sprintf("identifier %q", t.Literal)
	case INT:
		return "integer literal " + t.Literal
	case STRING:
		return fmt.Sprintf("string literal %q", t.Literal)
	case KEYWORD:
		return fmt.Sprintf("keyword %q", t.Literal)
	case OPERATOR:
		return fmt.Sprintf("operator %q", t.Literal)
	default:
		return fmt.Sprintf("%q", string(t.Type))
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d\t%s\t%q", t.Row, t.Col, t.Type, t.Literal)
}
