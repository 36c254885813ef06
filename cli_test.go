package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inconshreveable/log15"
	"github.com/nalgeon/be"
	"gopkg.in/urfave/cli.v1"
)

func TestReportError(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	reportError(&buf, syntaxErrorf(Token{Row: 2, Col: 5}, "Expected %s.", `";"`))
	be.Equal(t, buf.String(), "Syntax error:\nExpected \";\".\n")

	buf.Reset()
	reportError(&buf, errors.New("plain failure"))
	be.Equal(t, buf.String(), "plain failure\n")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&Error{Kind: LexicalError}, exitCompileError},
		{&Error{Kind: SyntaxError}, exitCompileError},
		{&Error{Kind: SemanticError}, exitCompileError},
		{&Error{Kind: RuntimeError}, exitRuntimeError},
		{&Error{Kind: ReadError}, exitRuntimeError},
		{&Error{Kind: AssertionError}, exitRuntimeError},
		{fmt.Errorf("wrapped: %w", &Error{Kind: AssertionError}), exitRuntimeError},
		{errors.New("io"), exitUsageError},
	}
	for _, tt := range tests {
		be.Equal(t, exitCode(tt.err), tt.want)
	}
}

func TestFinish(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	be.Err(t, finish(&buf, nil), nil)
	be.Equal(t, buf.String(), "")

	err := finish(&buf, runtimeErrorf(RuntimeError, 4, "Division by zero on row %d.", 4))
	exit, ok := err.(cli.ExitCoder)
	be.True(t, ok)
	if ok {
		be.Equal(t, exit.ExitCode(), exitRuntimeError)
	}
	be.Equal(t, buf.String(), "Runtime error:\nDivision by zero on row 4.\n")
}

func commandContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	be.Err(t, set.Parse(args), nil)
	return cli.NewContext(newApp(), set, nil)
}

func TestSourceArg(t *testing.T) {
	file := filepath.Join(t.TempDir(), "prog.mpl")
	be.Err(t, os.WriteFile(file, []byte("print 1;"), 0644), nil)

	var buf bytes.Buffer
	source, err := sourceArg(commandContext(t, file), &buf)
	be.Err(t, err, nil)
	be.Equal(t, source, "print 1;")
	be.Equal(t, buf.String(), "")
}

func TestSourceArgErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := sourceArg(commandContext(t), &buf)
	be.True(t, err != nil)
	be.Equal(t, buf.String(), "Give the name of the source file as a parameter.\n")

	buf.Reset()
	missing := filepath.Join(t.TempDir(), "missing.mpl")
	_, err = sourceArg(commandContext(t, missing), &buf)
	be.True(t, err != nil)
	be.Equal(t, buf.String(), fmt.Sprintf("File %q not found.\n", missing))
}

func TestOpenInputFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "words.txt")
	be.Err(t, os.WriteFile(file, []byte("7 eleven\n"), 0644), nil)

	in, closeInput, err := openInput(Config{Run: RunConfig{Input: file}})
	be.Err(t, err, nil)
	defer closeInput()

	var out strings.Builder
	err = Run("var n : int; var s : string; read n; read s; print n; print s;", in, &out)
	be.Err(t, err, nil)
	be.Equal(t, out.String(), "7eleven")
}

func TestSetupLoggingFiltersByVerbosity(t *testing.T) {
	defer log15.Root().SetHandler(log15.DiscardHandler())

	var buf bytes.Buffer
	setupLogging(int(log15.LvlWarn), log15.StreamHandler(&buf, log15.LogfmtFormat()))
	logger.Info("hidden")
	logger.Warn("shown", "n", 1)

	be.True(t, !strings.Contains(buf.String(), "hidden"))
	be.True(t, strings.Contains(buf.String(), "shown"))
	be.True(t, strings.Contains(buf.String(), "module=minipl"))
}

func TestUseColor(t *testing.T) {
	be.True(t, useColor("always"))
	be.True(t, !useColor("never"))
}
