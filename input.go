package main

import (
	"bufio"
	"io"
	"strings"
)

// WordReader supplies whitespace-delimited words to read statements. It
// returns io.EOF once input is exhausted.
type WordReader interface {
	ReadWord() (string, error)
}

// LineWordReader reads its source a line at a time and hands out one word
// per ReadWord call. Words left over on a line are kept for later calls.
type LineWordReader struct {
	scanner *bufio.Scanner
	words   []string
}

func NewWordReader(r io.Reader) *LineWordReader {
	return &LineWordReader{scanner: bufio.NewScanner(r)}
}

func (r *LineWordReader) ReadWord() (string, error) {
	for len(r.words) == 0 {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		r.words = strings.Fields(r.scanner.Text())
	}
	word := r.words[0]
	r.words = r.words[1:]
	return word, nil
}
