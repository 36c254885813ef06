package main

import (
	"strings"
	"unicode"
)

// Scanner turns Mini-PL source text into tokens, one per NextToken call.
// It is not rewindable: once EOF is returned, every later call returns EOF
// again.
type Scanner struct {
	input []rune
	pos   int // index of the next unread rune
	row   int // 1-based row of the next unread rune
	col   int // column of the last consumed rune on the current row
}

// NewScanner creates a scanner over the given source text.
func NewScanner(source string) *Scanner {
	return &Scanner{input: []rune(source), row: 1}
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

// peek returns the next unread rune, or 0 at the end of input.
func (s *Scanner) peek() rune {
	return s.peekAt(0)
}

func (s *Scanner) peekAt(offset int) rune {
	if s.pos+offset >= len(s.input) {
		return 0
	}
	return s.input[s.pos+offset]
}

// advance consumes one rune, keeping row and column up to date.
func (s *Scanner) advance() rune {
	c := s.input[s.pos]
	s.pos++
	if c == '\n' {
		s.row++
		s.col = 0
	} else {
		s.col++
	}
	return c
}

// NextToken skips whitespace and comments and scans the next token.
func (s *Scanner) NextToken() (Token, error) {
	if err := s.skipWhitespaceAndComments(); err != nil {
		return Token{}, err
	}

	row, col := s.row, s.col+1
	token := func(typ TokenType, lit string) (Token, error) {
		return Token{Type: typ, Literal: lit, Row: row, Col: col}, nil
	}

	if s.atEnd() {
		return token(EOF, "")
	}

	c := s.peek()
	switch {
	case c == '.':
		s.advance()
		if s.peek() != '.' {
			return Token{}, lexicalErrorf(row, col, "Invalid token \".\" on row %d, col %d.", row, col)
		}
		s.advance()
		return token(RANGE, "..")

	case c == ':':
		s.advance()
		if s.peek() == '=' {
			s.advance()
			return token(ASSIGN, ":=")
		}
		return token(COLON, ":")

	case c == '!':
		s.advance()
		return token(BANG, "!")

	case strings.ContainsRune("+-*/<=&", c):
		s.advance()
		return token(OPERATOR, string(c))

	case c == ';':
		s.advance()
		return token(SEMICOLON, ";")

	case c == '(':
		s.advance()
		return token(LPAREN, "(")

	case c == ')':
		s.advance()
		return token(RPAREN, ")")

	case isDigit(c):
		return token(INT, s.readWhile(isDigit))

	case unicode.IsLetter(c):
		lit := s.readWhile(isIdentifierRune)
		if keywords[lit] {
			return token(KEYWORD, lit)
		}
		return token(IDENT, lit)

	case c == '"':
		lit, err := s.readString(row, col)
		if err != nil {
			return Token{}, err
		}
		return token(STRING, lit)

	default:
		s.advance()
		return Token{}, lexicalErrorf(row, col, "Invalid token %q on row %d, col %d.", string(c), row, col)
	}
}

// Tokenize scans the whole input. The returned slice always ends with EOF.
func (s *Scanner) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := s.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (s *Scanner) skipWhitespaceAndComments() error {
	for !s.atEnd() {
		switch {
		case unicode.IsSpace(s.peek()):
			s.advance()
		case s.peek() == '/' && s.peekAt(1) == '/':
			s.skipLineComment()
		case s.peek() == '/' && s.peekAt(1) == '*':
			if err := s.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *Scanner) skipLineComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
}

// skipBlockComment skips a /* */ comment. Block comments nest.
func (s *Scanner) skipBlockComment() error {
	row, col := s.row, s.col+1
	s.advance() // skip /*
	s.advance()
	depth := 1
	for depth > 0 {
		if s.atEnd() {
			err := lexicalErrorf(row, col,
				"Reached end of input while scanning for a comment starting on row %d, col %d.", row, col)
			err.Incomplete = true
			return err
		}
		if s.peek() == '/' && s.peekAt(1) == '*' {
			s.advance()
			s.advance()
			depth++
		} else if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			depth--
		} else {
			s.advance()
		}
	}
	return nil
}

func (s *Scanner) readWhile(pred func(rune) bool) string {
	start := s.pos
	for !s.atEnd() && pred(s.peek()) {
		s.advance()
	}
	return string(s.input[start:s.pos])
}

// readString scans a string literal and returns its decoded value. row and
// col locate the opening quote.
func (s *Scanner) readString(row, col int) (string, error) {
	unterminated := func() error {
		err := lexicalErrorf(row, col,
			"Reached end of input while scanning for a string literal starting on row %d, col %d.", row, col)
		err.Incomplete = true
		return err
	}

	s.advance() // skip opening "
	var sb strings.Builder
	for {
		if s.atEnd() {
			return "", unterminated()
		}
		escRow, escCol := s.row, s.col+1
		c := s.advance()
		if c == '"' {
			return sb.String(), nil
		}
		if c != '\\' {
			sb.WriteRune(c)
			continue
		}

		if s.atEnd() {
			return "", unterminated()
		}
		switch e := s.advance(); e {
		case '\\', '"':
			sb.WriteRune(e)
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		default:
			return "", lexicalErrorf(escRow, escCol,
				"Invalid escape sequence \"\\%c\" on row %d, col %d.", e, escRow, escCol)
		}
	}
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isIdentifierRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
