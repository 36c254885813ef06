package main

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/nalgeon/be"
)

// scriptedLines replays a fixed list of lines and records every prompt.
type scriptedLines struct {
	lines   []string
	prompts []string
	history []string
}

func (s *scriptedLines) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedLines) AppendHistory(line string) {
	s.history = append(s.history, line)
}

func runScript(t *testing.T, lines ...string) (src *scriptedLines, out, errOut string) {
	t.Helper()
	withoutColor(t)
	src = &scriptedLines{lines: lines}
	var stdout, stderr strings.Builder
	be.Err(t, NewREPL(src, &stdout).Loop(&stderr), nil)
	return src, stdout.String(), stderr.String()
}

func withoutColor(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestREPLDeclarationsPersist(t *testing.T) {
	_, out, errOut := runScript(t,
		"var x : int := 40;",
		"x := x + 2;",
		"print x;",
	)
	be.Equal(t, errOut, "")
	be.Equal(t, out, "\n\n42\n\n")
}

func TestREPLContinuesIncompleteInput(t *testing.T) {
	src, out, errOut := runScript(t,
		"var i : int;",
		"for i in 1..3 do",
		"  print i;",
		"end for;",
	)
	be.Equal(t, errOut, "")
	be.Equal(t, out, "\n123\n\n")
	be.Equal(t, src.prompts, []string{"> ", "> ", ". ", ". ", "> "})
	be.Equal(t, src.history, []string{"var i : int;", "for i in 1..3 do", "  print i;", "end for;"})
}

func TestREPLReportsErrorsAndKeepsGoing(t *testing.T) {
	_, out, errOut := runScript(t,
		"var x : int;",
		"print y;",
		`print "after";`,
	)
	be.Equal(t, errOut, "Semantic error:\nReference to undefined identifier y on row 1.\n")
	be.Equal(t, out, "\nafter\n\n")
}

func TestREPLKeepsDeclarationsBeforeFailure(t *testing.T) {
	_, out, errOut := runScript(t,
		"var a : int := 1; var b : int := a / 0;",
		"print a;",
		"var a : int;",
	)
	be.Equal(t, errOut,
		"Runtime error:\nDivision by zero on row 1.\n"+
			"Semantic error:\nVariable a is already defined (row 1).\n")
	be.Equal(t, out, "1\n\n")
}

func TestREPLSkipsBlankLines(t *testing.T) {
	src, out, _ := runScript(t, "", "   ", "print 1;")
	be.Equal(t, out, "1\n\n")
	be.Equal(t, len(src.history), 1)
}

func TestREPLReadPromptsForWords(t *testing.T) {
	src, out, errOut := runScript(t,
		"var s : string; var n : int;",
		"read s; read n; print s; print n;",
		"hello 7",
	)
	be.Equal(t, errOut, "")
	be.Equal(t, out, "\nhello7\n\n")
	be.Equal(t, src.prompts, []string{"> ", "> ", "? ", "> "})
}

func TestREPLReadAtEndOfInput(t *testing.T) {
	_, _, errOut := runScript(t, "var n : int; read n;")
	be.Equal(t, errOut, "Read error:\nUnexpected end of input while reading variable n.\n")
}

func TestREPLEval(t *testing.T) {
	var out strings.Builder
	repl := NewREPL(&scriptedLines{}, &out)

	be.Err(t, repl.Eval("var x : string := \"hi\";"), nil)
	be.Err(t, repl.Eval("print x;"), nil)
	be.Equal(t, out.String(), "hi")

	err := repl.Eval("print x")
	var e *Error
	be.True(t, errors.As(err, &e))
	be.True(t, e.Incomplete)
}
