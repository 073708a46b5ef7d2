package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseClassList reads one fully qualified class name per line. A line
// wrapped in parentheses is a regular expression instead. Blank lines and
// lines starting with # are ignored.
func ParseClassList(r io.Reader) (names, patterns []string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
		case len(line) >= 2 && strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")"):
			patterns = append(patterns, line[1:len(line)-1])
		default:
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return names, patterns, nil
}

func ReadClassList(path string) (names, patterns []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read class list: %w", err)
	}
	defer f.Close()

	names, patterns, err = ParseClassList(f)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read class list %s: %w", path, err)
	}
	return names, patterns, nil
}
