package products

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kbukum/injector/di"
)

// Line is a trimmed, non-empty line and its 1-based number in the file.
type Line struct {
	Number int
	Text   string
}

// FileReader reads the non-empty lines of a file.
type FileReader interface {
	ReadLines(path string) ([]Line, error)
}

type fileReader struct {
	di.Component
}

func (*fileReader) ReadLines(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't read file %s: %w", path, err)
	}
	defer f.Close()

	var lines []Line
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text != "" {
			lines = append(lines, Line{Number: n, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read file %s: %w", path, err)
	}
	return lines, nil
}
