package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

const (
	replPrompt         = "> "
	replContinuePrompt = ". "
	replReadPrompt     = "? "
)

// LineSource supplies lines of text after showing a prompt. It returns
// io.EOF when there are no more lines.
type LineSource interface {
	Prompt(prompt string) (string, error)
}

// plainLineSource reads lines from a non-interactive reader.
type plainLineSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (s *plainLineSource) Prompt(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// promptWordReader feeds read statements from the REPL's own line source.
type promptWordReader struct {
	lines LineSource
	words []string
}

func (r *promptWordReader) ReadWord() (string, error) {
	for len(r.words) == 0 {
		line, err := r.lines.Prompt(replReadPrompt)
		if err != nil {
			return "", err
		}
		r.words = strings.Fields(line)
	}
	word := r.words[0]
	r.words = r.words[1:]
	return word, nil
}

// REPL executes statements one input at a time. All inputs share one symbol
// table, so a variable declared in one input is visible in later ones.
type REPL struct {
	lines   LineSource
	out     io.Writer
	table   *SymbolTable
	checker *TypeChecker
	interp  *Interpreter
}

func NewREPL(lines LineSource, out io.Writer) *REPL {
	table := NewSymbolTable()
	in := &promptWordReader{lines: lines}
	return &REPL{
		lines:   lines,
		out:     out,
		table:   table,
		checker: NewTypeChecker(table),
		interp:  NewInterpreter(table, in, out),
	}
}

// Eval parses, checks and runs one input. Declarations made before a
// failing statement stay defined.
func (r *REPL) Eval(source string) error {
	prog, err := NewParser(source).ParseProgram()
	if err != nil {
		return err
	}
	if err := r.checker.CheckProgram(prog); err != nil {
		return err
	}
	return r.interp.Run(prog)
}

// Loop reads inputs until the line source is exhausted. An input that ends
// in the middle of a statement is continued on the next line. Errors are
// reported to errOut and do not end the session.
func (r *REPL) Loop(errOut io.Writer) error {
	var pending strings.Builder
	for {
		prompt := replPrompt
		if pending.Len() > 0 {
			prompt = replContinuePrompt
		}
		line, err := r.lines.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		if h, ok := r.lines.(interface{ AppendHistory(string) }); ok {
			h.AppendHistory(line)
		}

		pending.WriteString(line)
		pending.WriteByte('\n')

		err = r.Eval(pending.String())
		var e *Error
		if errors.As(err, &e) && e.Incomplete {
			continue
		}
		pending.Reset()
		if err != nil {
			reportError(errOut, err)
			continue
		}
		fmt.Fprintln(r.out)
	}
}

// newLineSource uses line editing when stdin and stdout are terminals.
func newLineSource() (LineSource, func()) {
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return state, func() { state.Close() }
	}
	return &plainLineSource{scanner: bufio.NewScanner(os.Stdin), out: io.Discard}, func() {}
}
