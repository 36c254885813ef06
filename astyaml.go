package main

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAML renders an AST as a YAML document. Every node becomes a mapping
// with its kind and row followed by its fields.
func ToYAML(node Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(node)); err != nil {
		return nil, fmt.Errorf("encoding AST: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding AST: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlNode(node Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, yamlString(key), value)
	}

	add("kind", yamlString(nodeKind(node)))
	add("row", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(node.Pos())})

	switch n := node.(type) {
	case *Program:
		add("statements", yamlStatements(n.Statements))
	case *IntegerLiteral:
		add("text", yamlString(n.Text))
	case *StringLiteral:
		add("value", yamlString(n.Value))
	case *VariableReference:
		add("name", yamlString(n.Name))
	case *VariableDeclaration:
		add("name", yamlString(n.Name))
		add("type", yamlString(string(n.Type)))
	case *ArithmeticOp:
		add("op", yamlString(n.Op))
		add("left", yamlNode(n.Left))
		add("right", yamlNode(n.Right))
	case *LogicalOp:
		add("op", yamlString(n.Op))
		add("left", yamlNode(n.Left))
		add("right", yamlNode(n.Right))
	case *UnaryNot:
		add("operand", yamlNode(n.Operand))
	case *Range:
		add("begin", yamlNode(n.Begin))
		add("end", yamlNode(n.End))
	case *Assignment:
		add("target", yamlNode(n.Target))
		add("expr", yamlNode(n.Expr))
	case *ExpressionStatement:
		add("keyword", yamlString(n.Keyword))
		add("expr", yamlNode(n.Expr))
	case *ReadStatement:
		add("variable", yamlNode(n.Variable))
	case *Loop:
		add("variable", yamlNode(n.Variable))
		add("range", yamlNode(n.Range))
		add("body", yamlStatements(n.Body))
	}
	return m
}

func yamlStatements(stmts []Statement) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, stmt := range stmts {
		seq.Content = append(seq.Content, yamlNode(stmt))
	}
	return seq
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func nodeKind(node Node) string {
	switch node.(type) {
	case *Program:
		return "Program"
	case *IntegerLiteral:
		return "IntegerLiteral"
	case *StringLiteral:
		return "StringLiteral"
	case *VariableReference:
		return "VariableReference"
	case *VariableDeclaration:
		return "VariableDeclaration"
	case *ArithmeticOp:
		return "ArithmeticOp"
	case *LogicalOp:
		return "LogicalOp"
	case *UnaryNot:
		return "UnaryNot"
	case *Range:
		return "Range"
	case *Assignment:
		return "Assignment"
	case *ExpressionStatement:
		return "ExpressionStatement"
	case *ReadStatement:
		return "ReadStatement"
	case *Loop:
		return "Loop"
	default:
		return fmt.Sprintf("%T", node)
	}
}
