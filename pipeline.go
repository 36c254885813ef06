package main

import (
	"io"
	"time"

	"github.com/inconshreveable/log15"
)

var logger = log15.New("module", "minipl")

// ParseSource scans and parses a whole program.
func ParseSource(source string) (*Program, error) {
	start := time.Now()
	prog, err := NewParser(source).ParseProgram()
	if err != nil {
		logger.Debug("Parsing failed", "err", err)
		return nil, err
	}
	logger.Debug("Parsed program", "statements", statementCount(prog.Statements), "elapsed", time.Since(start))
	return prog, nil
}

// CheckSource parses and type-checks a program without running it.
func CheckSource(source string) (*Program, *SymbolTable, error) {
	prog, err := ParseSource(source)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	table, err := Check(prog)
	if err != nil {
		logger.Debug("Type checking failed", "err", err)
		return nil, nil, err
	}
	logger.Debug("Checked program", "symbols", table.Len(), "elapsed", time.Since(start))
	return prog, table, nil
}

// Run parses, checks and executes source. read statements take words from
// in and print statements write to out.
func Run(source string, in WordReader, out io.Writer) error {
	prog, table, err := CheckSource(source)
	if err != nil {
		return err
	}
	start := time.Now()
	err = NewInterpreter(table, in, out).Run(prog)
	logger.Debug("Executed program", "elapsed", time.Since(start), "err", err)
	return err
}

// Tokenize scans source and returns every token up to and including EOF.
func Tokenize(source string) ([]Token, error) {
	tokens, err := NewScanner(source).Tokenize()
	if err != nil {
		return nil, err
	}
	logger.Debug("Scanned source", "tokens", len(tokens))
	return tokens, nil
}
