package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessindex/internal/errors"
)

// inputLine is one FEN line with its place in the input.
type inputLine struct {
	File string
	Line int // 1-based
	Text string
}

// readInput reads FEN lines from the named files, or from stdin when there
// are none. Blank lines and lines starting with '#' are skipped.
func readInput(stdin io.Reader, paths []string) ([]inputLine, error) {
	if len(paths) == 0 {
		return scanLines(stdin, "-")
	}

	var lines []inputLine
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		got, err := scanLines(f, path)
		f.Close()
		if err != nil {
			return nil, err
		}
		lines = append(lines, got...)
	}
	return lines, nil
}

func scanLines(r io.Reader, name string) ([]inputLine, error) {
	var lines []inputLine
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, inputLine{File: name, Line: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return lines, nil
}

func texts(lines []inputLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
