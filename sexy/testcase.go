package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType represents the type of input code fence in a test
type InputType string

const (
	InputTypeProgram InputType = "minipl"
	InputTypeExpr    InputType = "minipl-expr"
)

// AssertionType represents the type of assertion code fence in a test
type AssertionType string

const (
	AssertionTypeAST    AssertionType = "ast"    // s-expression pattern for the syntax tree
	AssertionTypeOutput AssertionType = "output" // text the program prints
	AssertionTypeError  AssertionType = "error"  // category label line, then the message
)

// stdinFence holds the words read statements consume. It is test data, not
// an assertion.
const stdinFence = "input"

// Assertion represents a single assertion in a test
type Assertion struct {
	Type       AssertionType
	Content    string // The raw content of the assertion code fence
	ParsedSexy *Node  // The parsed pattern, for ast assertions only
}

// TestCase represents a complete test case extracted from Markdown
type TestCase struct {
	Name       string    // The test name from the heading (after "Test: ")
	Input      string    // The raw source from the input fence
	InputType  InputType // The type of input fence
	InputData  string    // The content of the input fence for read statements (if any)
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
// A test starts at a heading of the form "Test: name" and owns the fenced
// code blocks up to the next such heading.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var currentTestCase *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if currentTestCase != nil {
				if err := validateTestCase(currentTestCase); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *currentTestCase)
			}
			currentTestCase = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)

			if currentTestCase == nil {
				if isInputFence(language) || isAssertionFence(language) || language == stdinFence {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
				}
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", lineNum, language)
				}
				// Allow code blocks with no language specified
				return ast.WalkContinue, nil
			}

			switch {
			case isInputFence(language):
				if currentTestCase.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, currentTestCase.Name)
				}
				currentTestCase.Input = strings.TrimRight(content, "\n")
				currentTestCase.InputType = InputType(language)

			case language == stdinFence:
				if currentTestCase.InputData != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple stdin fences found in test '%s'", lineNum, currentTestCase.Name)
				}
				currentTestCase.InputData = content

			case isAssertionFence(language):
				assertion := Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
				}
				if assertion.Type == AssertionTypeAST {
					parsedSexy, parseErr := Parse(assertion.Content)
					if parseErr != nil {
						return ast.WalkStop, fmt.Errorf("line %d: failed to parse ast assertion in test '%s': %w", lineNum, currentTestCase.Name, parseErr)
					}
					assertion.ParsedSexy = parsedSexy
				}
				currentTestCase.Assertions = append(currentTestCase.Assertions, assertion)

			case language != "":
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, currentTestCase.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if currentTestCase != nil {
		if err := validateTestCase(currentTestCase); err != nil {
			return nil, err
		}
		testCases = append(testCases, *currentTestCase)
	}

	return testCases, nil
}

// extractTextFromNode extracts plain text content from a markdown node
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// extractCodeBlockContent extracts the content from a fenced code block
func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isInputFence(language string) bool {
	return language == string(InputTypeProgram) || language == string(InputTypeExpr)
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionTypeAST, AssertionTypeOutput, AssertionTypeError:
		return true
	}
	return false
}

// validateTestCase ensures a test case has both input and at least one assertion
func validateTestCase(testCase *TestCase) error {
	if testCase.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", testCase.Name)
	}
	if len(testCase.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", testCase.Name)
	}
	if testCase.InputType == InputTypeExpr {
		for _, a := range testCase.Assertions {
			if a.Type != AssertionTypeAST {
				return fmt.Errorf("test '%s': %s assertions need a %s fence", testCase.Name, a.Type, InputTypeProgram)
			}
		}
	}
	return nil
}

// getLineNumber calculates the line number of a given AST node
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	lineNum := 1
	for i := 0; i < startPos && i < len(source); i++ {
		if source[i] == '\n' {
			lineNum++
		}
	}
	return lineNum
}
