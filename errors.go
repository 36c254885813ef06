package main

import "fmt"

// ErrorKind identifies which stage rejected the program.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
	SemanticError
	RuntimeError
	ReadError
	AssertionError
)

// Label is the category shown in front of the message by the CLI.
func (k ErrorKind) Label() string {
	switch k {
	case LexicalError:
		return "Lexical error"
	case SyntaxError:
		return "Syntax error"
	case SemanticError:
		return "Semantic error"
	case RuntimeError:
		return "Runtime error"
	case ReadError:
		return "Read error"
	case AssertionError:
		return "Assertion failed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) String() string {
	return k.Label()
}

// Error is the only error type returned by the scanner, parser, type checker
// and interpreter. Row is 0 when the error has no source position (read
// errors), Col is 0 unless the error came from the scanner or parser.
type Error struct {
	Kind    ErrorKind
	Row     int
	Col     int
	Message string

	// Incomplete is set when scanning or parsing ran out of input, so the
	// same source followed by more text might be valid.
	Incomplete bool
}

func (e *Error) Error() string {
	return e.Message
}

func lexicalErrorf(row, col int, format string, args ...any) *Error {
	return &Error{Kind: LexicalError, Row: row, Col: col, Message: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(tok Token, format string, args ...any) *Error {
	return &Error{Kind: SyntaxError, Row: tok.Row, Col: tok.Col, Message: fmt.Sprintf(format, args...)}
}

func semanticErrorf(row int, format string, args ...any) *Error {
	return &Error{Kind: SemanticError, Row: row, Message: fmt.Sprintf(format, args...)}
}

func runtimeErrorf(kind ErrorKind, row int, format string, args ...any) *Error {
	return &Error{Kind: kind, Row: row, Message: fmt.Sprintf(format, args...)}
}
