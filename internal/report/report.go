// Package report writes per-core tab separated report files.
package report

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"peek-go/internal/peek"
)

// asciiOnly replaces every rune outside 7-bit ASCII with '?'.
var asciiOnly = runes.Map(func(r rune) rune {
	if r > unicode.MaxASCII {
		return '?'
	}
	return r
})

// Writer is a report file. Every row is encoded and written with a single
// Write call, so a failed scan never leaves half a row behind.
type Writer struct {
	f    *os.File
	path string
}

// Create creates or truncates the report at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}
	return &Writer{f: f, path: path}, nil
}

// Path returns the report file path.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) WriteHeader() error {
	return w.writeLine(peek.ReportHeader)
}

func (w *Writer) WriteRow(name, regions, year, developer, genre string) error {
	return w.writeLine(strings.Join([]string{name, regions, year, developer, genre}, "\t") + "\n")
}

func (w *Writer) Close() error {
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}

func (w *Writer) writeLine(line string) error {
	encoded, _, err := transform.String(asciiOnly, line)
	if err != nil {
		return fmt.Errorf("encoding report line: %w", err)
	}
	if _, err := w.f.WriteString(encoded); err != nil {
		return fmt.Errorf("writing report line: %w", err)
	}
	return nil
}

// Opener creates Writers on the local filesystem.
type Opener struct{}

func (Opener) Create(path string) (peek.ReportWriter, error) {
	return Create(path)
}

// Compile-time checks
var (
	_ peek.ReportWriter = (*Writer)(nil)
	_ peek.ReportOpener = Opener{}
)
