// Package wordlist loads the words substituted for "/x" placeholders.
//
// Plain-text files provide one word per line; surrounding whitespace is
// trimmed and blank lines are ignored. Markdown files provide the text of
// each list item, and YAML files provide a sequence of strings (optionally
// under a "words" key). In every format the file order is preserved and
// duplicates are kept.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents the format of a wordlist file
type Format int

const (
	// FormatText is one word per line (any unrecognized extension)
	FormatText Format = iota
	// FormatMarkdown represents a Markdown (.md, .markdown) wordlist
	FormatMarkdown
	// FormatYAML represents a YAML (.yaml, .yml) wordlist
	FormatYAML
)

// String returns the string representation of the Format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	default:
		return "text"
	}
}

// WordlistLoadError is returned when a wordlist file cannot be read or parsed.
type WordlistLoadError struct {
	Path string
	Err  error
}

// Error implements the error interface for WordlistLoadError.
func (e *WordlistLoadError) Error() string {
	return fmt.Sprintf("error reading wordlist file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WordlistLoadError) Unwrap() error {
	return e.Err
}

// Loader is the interface that all wordlist readers implement
type Loader interface {
	// Load reads words from r in file order
	Load(r io.Reader) ([]string, error)
}

// DetectFormat detects the wordlist format based on file extension
//   - .md, .markdown -> FormatMarkdown
//   - .yaml, .yml -> FormatYAML
//   - all others -> FormatText
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// NewLoader creates a loader for the specified format
func NewLoader(format Format) Loader {
	switch format {
	case FormatMarkdown:
		return NewMarkdownLoader()
	case FormatYAML:
		return YAMLLoader{}
	default:
		return TextLoader{}
	}
}

// LoadFile detects the format of path, opens it and reads its words.
// All failures are reported as *WordlistLoadError.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &WordlistLoadError{Path: path, Err: err}
	}
	defer file.Close()

	words, err := NewLoader(DetectFormat(path)).Load(file)
	if err != nil {
		return nil, &WordlistLoadError{Path: path, Err: err}
	}
	return words, nil
}

// TextLoader reads one word per line.
type TextLoader struct{}

// Load implements Loader.
func (TextLoader) Load(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var words []string
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return words, nil
}
