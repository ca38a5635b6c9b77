package fs

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"
)

// IgnoreFileName is the optional per-core file listing extra ignore patterns.
const IgnoreFileName = ".peekignore"

// defaultIgnorePatterns are always applied regardless of config or .peekignore.
var defaultIgnorePatterns = []string{IgnoreFileName}

// IgnoreMatcher decides which files in a core directory are left out of a
// scan. Name patterns (no '/') apply to the file name in every core, so
// "*.srm" drops save files everywhere. Core patterns (with '/') apply to
// "<core>/<file>", so "SNES/*.txt" only touches the SNES directory.
type IgnoreMatcher struct {
	names []string
	cores []string
}

// NewIgnoreMatcher sorts raw pattern lines into name and core patterns.
// Blank lines and lines starting with '#' are skipped.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	m.add(lines)
	return m
}

func (m *IgnoreMatcher) add(lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"):
		case strings.Contains(line, "/"):
			m.cores = append(m.cores, line)
		default:
			m.names = append(m.names, line)
		}
	}
}

// With returns a new matcher holding the receiver's patterns plus lines.
func (m *IgnoreMatcher) With(lines []string) *IgnoreMatcher {
	combined := &IgnoreMatcher{
		names: append([]string(nil), m.names...),
		cores: append([]string(nil), m.cores...),
	}
	combined.add(lines)
	return combined
}

// Len returns the number of active patterns.
func (m *IgnoreMatcher) Len() int {
	return len(m.names) + len(m.cores)
}

// Match reports whether file name inside core is ignored.
func (m *IgnoreMatcher) Match(core, name string) bool {
	return matchAny(m.names, name) || matchAny(m.cores, core+"/"+name)
}

// matchAny reports whether any pattern matches s. Malformed patterns never match.
func matchAny(patterns []string, s string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, s); err == nil && ok {
			return true
		}
	}
	return false
}

// ParseIgnoreFile returns the raw lines of an ignore file.
// A missing file yields no lines and no error.
func ParseIgnoreFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}
