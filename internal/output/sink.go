// Package output writes candidate lists, one candidate per line, either to a
// stream or atomically to a file.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Sink receives the complete, sorted candidate list.
type Sink interface {
	Write(candidates []string) error
}

// NewSink returns a FileSink when path is set and a StreamSink on w otherwise.
func NewSink(path string, w io.Writer) Sink {
	if path != "" {
		return NewFileSink(path)
	}
	return NewStreamSink(w)
}

// writeLines writes each candidate followed by a newline through a buffer.
func writeLines(w io.Writer, candidates []string) error {
	bw := bufio.NewWriter(w)
	for _, c := range candidates {
		if _, err := bw.WriteString(c); err != nil {
			return fmt.Errorf("failed to write candidate: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write candidate: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// StreamSink writes candidates to an io.Writer.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink creates a StreamSink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Write implements Sink.
func (s *StreamSink) Write(candidates []string) error {
	return writeLines(s.w, candidates)
}

// FileSink replaces a file with the candidate list. Concurrent runs writing
// the same path are serialized on "<path>.lock", and readers never observe
// a partially written list.
type FileSink struct {
	path string
}

// NewFileSink creates a FileSink for path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the destination file path.
func (s *FileSink) Path() string {
	return s.path
}

// LockPath returns the path of the lock file guarding the destination.
func (s *FileSink) LockPath() string {
	return s.path + ".lock"
}

// Write implements Sink.
func (s *FileSink) Write(candidates []string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := flock.New(s.LockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	defer lock.Unlock()

	return s.replace(candidates)
}

// replace writes candidates to a temp file beside the destination and
// renames it into place. The destination is untouched on failure.
func (s *FileSink) replace(candidates []string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = writeLines(tmp, candidates); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
