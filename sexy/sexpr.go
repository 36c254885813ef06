package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is an s-expression: an atom or a list of nodes.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeEllipsis:
		return "..."
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

// Helper constructors for common node types
func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewEllipsis() *Node {
	return &Node{Type: NodeEllipsis}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// IsAtom checks if the node is an atomic value
func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

// Match checks actual against pattern. Atoms must be equal. Lists must have
// the same length, except that an ellipsis as the last pattern item matches
// any number of remaining items; anywhere else it matches any single datum.
// The error names the first mismatching position as a path of list indexes.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}
	if pattern.IsAtom() {
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}

	items := pattern.Items
	open := len(items) > 0 && items[len(items)-1].Type == NodeEllipsis
	if open {
		items = items[:len(items)-1]
		if len(actual.Items) < len(items) {
			return fmt.Errorf("at %s: expected at least %d items, got %d in %s", path, len(items), len(actual.Items), actual)
		}
	} else if len(actual.Items) != len(items) {
		return fmt.Errorf("at %s: expected %d items, got %d in %s", path, len(items), len(actual.Items), actual)
	}

	for i, item := range items {
		if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	result, err := p.parseDatum()
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("expected EOF but got %s", p.currentToken.Type)
	}
	return result, nil
}

func (p *parser) nextToken() error {
	tok, err := p.lexer.nextToken()
	if err != nil {
		return err
	}
	p.currentToken = tok
	return nil
}

func (p *parser) parseDatum() (*Node, error) {
	var node *Node
	switch p.currentToken.Type {
	case tokenSymbol:
		node = NewSymbol(p.currentToken.Value)
	case tokenString:
		node = NewString(p.currentToken.Value)
	case tokenInteger:
		node = NewInteger(p.currentToken.Value)
	case tokenEllipsis:
		node = NewEllipsis()
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("unexpected token: %s", p.currentToken.Type)
	}
	return node, p.nextToken()
}

func (p *parser) parseList() (*Node, error) {
	var items []*Node
	if err := p.nextToken(); err != nil { // consume '('
		return nil, err
	}

	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("expected ')' but got %s", p.currentToken.Type)
	}
	return NewList(items...), p.nextToken() // consume ')'
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenEllipsis
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenEllipsis:
		return "ellipsis"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type  tokenType
	Value string
}

type lexer struct {
	input []rune
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) readWhile(pred func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.input) && pred(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

func (l *lexer) nextToken() (token, error) {
	for {
		l.readWhile(unicode.IsSpace)
		if l.peek(0) != ';' {
			break
		}
		l.readWhile(func(r rune) bool { return r != '\n' })
	}

	c := l.peek(0)
	switch {
	case l.pos >= len(l.input):
		return token{Type: tokenEOF}, nil
	case c == '(':
		l.pos++
		return token{Type: tokenLParen, Value: "("}, nil
	case c == ')':
		l.pos++
		return token{Type: tokenRParen, Value: ")"}, nil
	case c == '"':
		str, err := l.readString()
		if err != nil {
			return token{}, err
		}
		return token{Type: tokenString, Value: str}, nil
	case c == '.':
		if l.peek(1) == '.' && l.peek(2) == '.' {
			l.pos += 3
			return token{Type: tokenEllipsis, Value: "..."}, nil
		}
		return token{}, fmt.Errorf("unexpected character '.'")
	case unicode.IsDigit(c) || (c == '-' && unicode.IsDigit(l.peek(1))):
		start := l.pos
		l.pos++
		l.readWhile(unicode.IsDigit)
		return token{Type: tokenInteger, Value: string(l.input[start:l.pos])}, nil
	case unicode.IsLetter(c):
		return token{Type: tokenSymbol, Value: l.readWhile(isSymbolChar)}, nil
	default:
		return token{}, fmt.Errorf("unexpected character '%c'", c)
	}
}

func (l *lexer) readString() (string, error) {
	var sb strings.Builder
	l.pos++ // skip opening quote

	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		c := l.input[l.pos]
		if c == '\\' {
			l.pos++
			switch l.peek(0) {
			case '"', '\\':
				c = l.input[l.pos]
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.peek(0))
			}
		}
		sb.WriteRune(c)
		l.pos++
	}

	if l.pos >= len(l.input) {
		return "", fmt.Errorf("unterminated string")
	}
	l.pos++ // skip closing quote
	return sb.String(), nil
}

func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}
