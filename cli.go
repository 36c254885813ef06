package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"
)

// Exit codes.
const (
	exitCompileError = 1 // lexical, syntax or semantic error
	exitRuntimeError = 2 // runtime, read or assertion error
	exitUsageError   = 3 // bad arguments or unreadable files
)

// setup loads the configuration and installs logging. Every command calls
// it first and sends diagnostics to the returned writer.
func setup(ctx *cli.Context) (Config, io.Writer, error) {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return cfg, os.Stderr, cli.NewExitError(err.Error(), exitUsageError)
	}
	return cfg, setupOutput(cfg), nil
}

// reportError writes err to w as a colored category label followed by the
// message on its own line.
func reportError(w io.Writer, err error) {
	var e *Error
	if !errors.As(err, &e) {
		fmt.Fprintf(w, "%s\n", err)
		return
	}
	label := color.New(color.FgRed, color.Bold).Sprint(e.Kind.Label() + ":")
	fmt.Fprintf(w, "%s\n%s\n", label, e.Message)
}

func exitCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return exitUsageError
	}
	switch e.Kind {
	case LexicalError, SyntaxError, SemanticError:
		return exitCompileError
	default:
		return exitRuntimeError
	}
}

// finish reports err, if any, and converts it into an exit status.
func finish(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	reportError(w, err)
	return cli.NewExitError("", exitCode(err))
}

// sourceArg reads the file named by the single command argument.
func sourceArg(ctx *cli.Context, w io.Writer) (string, error) {
	if ctx.NArg() != 1 {
		fmt.Fprintln(w, "Give the name of the source file as a parameter.")
		return "", cli.NewExitError("", exitUsageError)
	}
	filename := ctx.Args().First()
	source, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "File %q not found.\n", filename)
		return "", cli.NewExitError("", exitUsageError)
	}
	if err != nil {
		return "", cli.NewExitError(fmt.Sprintf("Error reading file %s: %v", filename, err), exitUsageError)
	}
	return string(source), nil
}

// openInput returns the word source for read statements.
func openInput(cfg Config) (WordReader, func(), error) {
	if cfg.Run.Input == "" {
		return NewWordReader(os.Stdin), func() {}, nil
	}
	f, err := os.Open(cfg.Run.Input)
	if err != nil {
		return nil, nil, cli.NewExitError(fmt.Sprintf("Error opening input %s: %v", cfg.Run.Input, err), exitUsageError)
	}
	return NewWordReader(f), func() { f.Close() }, nil
}

func execute(cfg Config, w io.Writer, source string) error {
	in, closeInput, err := openInput(cfg)
	if err != nil {
		return err
	}
	defer closeInput()
	return finish(w, Run(source, in, os.Stdout))
}

// runFile is the run command and the default action.
func runFile(ctx *cli.Context) error {
	cfg, w, err := setup(ctx)
	if err != nil {
		return err
	}
	source, err := sourceArg(ctx, w)
	if err != nil {
		return err
	}
	logger.Debug("Running program", "file", ctx.Args().First())
	return execute(cfg, w, source)
}

func evalCode(ctx *cli.Context) error {
	cfg, w, err := setup(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return cli.NewExitError("eval: expected exactly one code argument", exitUsageError)
	}
	return execute(cfg, w, ctx.Args().First())
}

func checkFile(ctx *cli.Context) error {
	_, w, err := setup(ctx)
	if err != nil {
		return err
	}
	source, err := sourceArg(ctx, w)
	if err != nil {
		return err
	}
	prog, table, err := CheckSource(source)
	if err != nil {
		return finish(w, err)
	}
	for _, sym := range table.Symbols() {
		logger.Debug("Symbol", "name", sym.Name, "type", sym.Type, "row", sym.Row)
	}
	logger.Debug("AST", "sexpr", ToSExpr(prog))
	fmt.Printf("%s: no errors found\n", ctx.Args().First())
	return nil
}

func dumpTokens(ctx *cli.Context) error {
	_, w, err := setup(ctx)
	if err != nil {
		return err
	}
	source, err := sourceArg(ctx, w)
	if err != nil {
		return err
	}
	tokens, err := Tokenize(source)
	if err != nil {
		return finish(w, err)
	}
	for _, tok := range tokens {
		fmt.Println(tok)
	}
	return nil
}

func dumpAST(ctx *cli.Context) error {
	_, w, err := setup(ctx)
	if err != nil {
		return err
	}

	var node Node
	if ctx.Bool(astExprFlag.Name) {
		if ctx.NArg() != 1 {
			return cli.NewExitError("ast: expected exactly one expression argument", exitUsageError)
		}
		expr, err := NewParser(ctx.Args().First()).ParseExpression()
		if err != nil {
			return finish(w, err)
		}
		node = expr
	} else {
		source, err := sourceArg(ctx, w)
		if err != nil {
			return err
		}
		prog, err := ParseSource(source)
		if err != nil {
			return finish(w, err)
		}
		node = prog
	}

	switch format := ctx.String(astFormatFlag.Name); format {
	case "sexpr":
		fmt.Println(ToSExpr(node))
	case "yaml":
		out, err := ToYAML(node)
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
	default:
		return cli.NewExitError(fmt.Sprintf("ast: unknown format %q", format), exitUsageError)
	}
	return nil
}

func runREPL(ctx *cli.Context) error {
	_, w, err := setup(ctx)
	if err != nil {
		return err
	}
	lines, closeLines := newLineSource()
	defer closeLines()
	logger.Info("Starting Mini-PL session, end input to quit")
	return NewREPL(lines, os.Stdout).Loop(w)
}
